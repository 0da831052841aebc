package presets

import (
	"strings"

	"golang.org/x/text/cases"
)

// Shot is a camera framing preset.
type Shot struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	Prompt      string `json:"prompt" yaml:"prompt"`
	AspectRatio string `json:"aspectRatio" yaml:"aspect_ratio"`
}

// Model is a casting preset describing who wears the garment.
type Model struct {
	ID     string `json:"id" yaml:"id"`
	Label  string `json:"label" yaml:"label"`
	Prompt string `json:"prompt" yaml:"prompt"`
	Notes  string `json:"notes" yaml:"notes"`
}

// Vibe is a lighting and art-direction preset.
type Vibe struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	Prompt   string `json:"prompt" yaml:"prompt"`
	Negative string `json:"negative" yaml:"negative"`
}

// Narrative is a positioning sentence keyed by audience or price tier.
type Narrative struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	Text        string `json:"narrative" yaml:"narrative"`
}

// Dimensions is the pixel size requested from the provider.
type Dimensions struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Aspect binds an aspect ratio key to its dimensions.
type Aspect struct {
	Ratio      string `json:"ratio" yaml:"ratio"`
	Dimensions `yaml:",inline"`
}

const (
	DefaultVibe        = "luxury"
	DefaultAspectRatio = "3:4"
	DefaultTarget      = "premium-millennial"
	DefaultPricePoint  = "premium"

	DefaultTargetNarrative = "Designed for aspirational fashion consumers."
	DefaultPriceNarrative  = "Highlight refined craftsmanship and premium finishing."
)

// Library is an immutable set of preset tables. Lookups never fail: unknown
// keys resolve to the documented defaults.
type Library struct {
	shots   []Shot
	models  []Model
	vibes   []Vibe
	targets []Narrative
	prices  []Narrative
	aspects []Aspect

	shotByID    map[string]Shot
	modelByID   map[string]Model
	vibeByKey   map[string]Vibe
	targetByID  map[string]Narrative
	priceByID   map[string]Narrative
	aspectByKey map[string]Dimensions
}

func newLibrary(shots []Shot, models []Model, vibes []Vibe, targets, prices []Narrative, aspects []Aspect) *Library {
	lib := &Library{
		shots:       append([]Shot(nil), shots...),
		models:      append([]Model(nil), models...),
		vibes:       append([]Vibe(nil), vibes...),
		targets:     append([]Narrative(nil), targets...),
		prices:      append([]Narrative(nil), prices...),
		aspects:     append([]Aspect(nil), aspects...),
		shotByID:    make(map[string]Shot, len(shots)),
		modelByID:   make(map[string]Model, len(models)),
		vibeByKey:   make(map[string]Vibe, len(vibes)),
		targetByID:  make(map[string]Narrative, len(targets)),
		priceByID:   make(map[string]Narrative, len(prices)),
		aspectByKey: make(map[string]Dimensions, len(aspects)),
	}
	for _, s := range lib.shots {
		lib.shotByID[normalizeKey(s.ID)] = s
	}
	for _, m := range lib.models {
		lib.modelByID[normalizeKey(m.ID)] = m
	}
	for _, v := range lib.vibes {
		lib.vibeByKey[normalizeKey(v.Key)] = v
	}
	for _, t := range lib.targets {
		lib.targetByID[normalizeKey(t.ID)] = t
	}
	for _, p := range lib.prices {
		lib.priceByID[normalizeKey(p.ID)] = p
	}
	for _, a := range lib.aspects {
		lib.aspectByKey[normalizeKey(a.Ratio)] = a.Dimensions
	}
	return lib
}

var defaultLibrary = newLibrary(defaultShots, defaultModels, defaultVibes, defaultTargets, defaultPrices, defaultAspects)

// Default returns the built-in preset library.
func Default() *Library {
	return defaultLibrary
}

// normalizeKey folds case so "Luxury" and "luxury" resolve to the same entry.
// A Caser is stateful, so one is created per call.
func normalizeKey(key string) string {
	return cases.Fold().String(strings.TrimSpace(key))
}

// Shot looks up a shot preset by ID.
func (l *Library) Shot(id string) (Shot, bool) {
	s, ok := l.shotByID[normalizeKey(id)]
	return s, ok
}

// Model looks up a model preset by ID.
func (l *Library) Model(id string) (Model, bool) {
	m, ok := l.modelByID[normalizeKey(id)]
	return m, ok
}

// Vibe resolves a vibe, falling back to the luxury studio preset.
func (l *Library) Vibe(key string) Vibe {
	if v, ok := l.vibeByKey[normalizeKey(key)]; ok {
		return v
	}
	return l.vibeByKey[DefaultVibe]
}

// TargetNarrative resolves the audience narrative for key.
func (l *Library) TargetNarrative(key string) string {
	if t, ok := l.targetByID[normalizeKey(key)]; ok && t.Text != "" {
		return t.Text
	}
	return DefaultTargetNarrative
}

// PriceNarrative resolves the price positioning narrative for key.
func (l *Library) PriceNarrative(key string) string {
	if p, ok := l.priceByID[normalizeKey(key)]; ok && p.Text != "" {
		return p.Text
	}
	return DefaultPriceNarrative
}

// Dimensions maps an aspect ratio to pixel dimensions; unknown ratios use 3:4.
func (l *Library) Dimensions(aspect string) Dimensions {
	if d, ok := l.aspectByKey[normalizeKey(aspect)]; ok {
		return d
	}
	return l.aspectByKey[DefaultAspectRatio]
}

// Shots returns the shot presets in display order.
func (l *Library) Shots() []Shot { return append([]Shot(nil), l.shots...) }

// Models returns the model presets in display order.
func (l *Library) Models() []Model { return append([]Model(nil), l.models...) }

// Vibes returns the vibe presets in display order.
func (l *Library) Vibes() []Vibe { return append([]Vibe(nil), l.vibes...) }

// Targets returns the target-customer presets in display order.
func (l *Library) Targets() []Narrative { return append([]Narrative(nil), l.targets...) }

// PricePoints returns the price-point presets in display order.
func (l *Library) PricePoints() []Narrative { return append([]Narrative(nil), l.prices...) }

// Aspects returns the dimension table in display order.
func (l *Library) Aspects() []Aspect { return append([]Aspect(nil), l.aspects...) }
