package prompt

import (
	"strings"
	"testing"

	"onmodel/internal/domain"
	"onmodel/internal/presets"
)

func sampleCombo() domain.Combo {
	return domain.Combo{
		ID:          "editorial-front-hero-1",
		ShotID:      "front-hero",
		ShotPrompt:  "front-facing full body hero shot",
		AspectRatio: "3:4",
		ModelID:     "editorial",
		ModelPrompt: "tall editorial runway model",
		ModelNotes:  "Runway-ready aesthetic for high-fashion positioning.",
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	c := NewCompiler(nil)
	params := domain.BatchParams{ProductName: "Silk Wrap Dress", Highlights: "mulberry silk", Vibe: "street", TargetCustomer: "genz-trend", PricePoint: "couture"}
	first := c.Compile(sampleCombo(), params)
	second := c.Compile(sampleCombo(), params)
	if first != second {
		t.Fatalf("compile not deterministic:\n%q\n%q", first, second)
	}
}

func TestCompileSegmentOrder(t *testing.T) {
	lib := presets.Default()
	c := NewCompiler(lib)
	params := domain.BatchParams{ProductName: "  Silk Wrap Dress ", Highlights: "mulberry silk", Vibe: "lifestyle", TargetCustomer: "bridal-edit", PricePoint: "accessible"}
	got := c.Compile(sampleCombo(), params)

	ordered := []string{
		"Ultra realistic fashion photography of Silk Wrap Dress styled on tall editorial runway model.",
		"Runway-ready aesthetic for high-fashion positioning.",
		"front-facing full body hero shot",
		lib.Vibe("lifestyle").Prompt,
		lib.PriceNarrative("accessible"),
		lib.TargetNarrative("bridal-edit"),
		"Key fabrication notes: mulberry silk.",
		qualityDirectives[0],
		qualityDirectives[1],
		qualityDirectives[2],
	}
	if want := strings.Join(ordered, " "); got.Prompt != want {
		t.Fatalf("prompt mismatch:\n got: %q\nwant: %q", got.Prompt, want)
	}
	wantNeg := DefaultNegativePrompt + ", " + lib.Vibe("lifestyle").Negative + ", " + GarmentExclusions
	if got.NegativePrompt != wantNeg {
		t.Fatalf("negative mismatch:\n got: %q\nwant: %q", got.NegativePrompt, wantNeg)
	}
}

func TestCompileOmitsEmptySegments(t *testing.T) {
	combo := sampleCombo()
	combo.ModelNotes = ""
	got := NewCompiler(nil).Compile(combo, domain.BatchParams{Highlights: "   "})
	if strings.Contains(got.Prompt, "  ") {
		t.Fatalf("prompt contains blank segment: %q", got.Prompt)
	}
	if strings.Contains(got.Prompt, "Key fabrication notes") {
		t.Fatalf("blank highlights must be omitted: %q", got.Prompt)
	}
	if !strings.HasPrefix(got.Prompt, "Ultra realistic fashion photography of "+GenericProduct+" styled on") {
		t.Fatalf("generic product phrase missing: %q", got.Prompt)
	}
}

func TestCompileUnknownKeysFallBack(t *testing.T) {
	lib := presets.Default()
	got := NewCompiler(lib).Compile(sampleCombo(), domain.BatchParams{Vibe: "moon", TargetCustomer: "aliens", PricePoint: "free"})
	for _, want := range []string{lib.Vibe(presets.DefaultVibe).Prompt, presets.DefaultTargetNarrative, presets.DefaultPriceNarrative} {
		if !strings.Contains(got.Prompt, want) {
			t.Fatalf("prompt missing fallback %q: %q", want, got.Prompt)
		}
	}
}

func TestNegativePromptAlwaysHasDefaultClause(t *testing.T) {
	lib := presets.Default()
	c := NewCompiler(lib)
	keys := []string{"", "does-not-exist"}
	for _, v := range lib.Vibes() {
		keys = append(keys, v.Key)
	}
	for _, key := range keys {
		got := c.Compile(sampleCombo(), domain.BatchParams{Vibe: key})
		if !strings.Contains(got.NegativePrompt, DefaultNegativePrompt) {
			t.Fatalf("vibe %q negative prompt lacks default clause: %q", key, got.NegativePrompt)
		}
	}
}
