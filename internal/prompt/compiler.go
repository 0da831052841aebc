package prompt

import (
	"fmt"
	"strings"

	"onmodel/internal/domain"
	"onmodel/internal/presets"
)

// DefaultNegativePrompt is included verbatim in every negative prompt.
const DefaultNegativePrompt = "low quality, distorted body, deformed hands, double limb, cropped face, cartoon, text overlay, logo watermark, frame, render artifact"

// GarmentExclusions guards against garment and body artefacts.
const GarmentExclusions = "unrealistic body, duplicated garment, missing garment, blur, grain, noisy render, sketch, painting"

// GenericProduct stands in for the product name when none is supplied.
const GenericProduct = "the garment provided in the reference image"

var qualityDirectives = []string{
	"Emphasise true-to-life fabric drape, authentic fit, and tactile texture fidelity.",
	"Shot on medium format camera, impeccable retouching, 8k resolution, editorial grade color science.",
	"Ensure the garment faithfully matches the uploaded reference in color, print, and construction.",
}

// Bundle is the compiled text sent to the provider for one combo.
type Bundle struct {
	Prompt         string
	NegativePrompt string
}

// Compiler turns a combo and the batch parameters into a Bundle. It holds no
// mutable state and is safe for concurrent use.
type Compiler struct {
	lib *presets.Library
}

// NewCompiler returns a compiler over lib, or over the built-in presets when
// lib is nil.
func NewCompiler(lib *presets.Library) *Compiler {
	if lib == nil {
		lib = presets.Default()
	}
	return &Compiler{lib: lib}
}

// Compile is deterministic: identical input yields byte-identical output.
func (c *Compiler) Compile(combo domain.Combo, params domain.BatchParams) Bundle {
	vibe := c.lib.Vibe(params.Vibe)

	product := strings.TrimSpace(params.ProductName)
	if product == "" {
		product = GenericProduct
	}

	var highlights string
	if h := strings.TrimSpace(params.Highlights); h != "" {
		highlights = fmt.Sprintf("Key fabrication notes: %s.", h)
	}

	segments := []string{
		fmt.Sprintf("Ultra realistic fashion photography of %s styled on %s.", product, strings.TrimSpace(combo.ModelPrompt)),
		combo.ModelNotes,
		combo.ShotPrompt,
		vibe.Prompt,
		c.lib.PriceNarrative(params.PricePoint),
		c.lib.TargetNarrative(params.TargetCustomer),
		highlights,
	}
	segments = append(segments, qualityDirectives...)

	return Bundle{
		Prompt:         joinNonEmpty(segments, " "),
		NegativePrompt: joinNonEmpty([]string{DefaultNegativePrompt, vibe.Negative, GarmentExclusions}, ", "),
	}
}

func joinNonEmpty(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
