package presets

// Catalog is the listing served to clients building a batch.
type Catalog struct {
	Shots       []Shot      `json:"shots"`
	Models      []Model     `json:"models"`
	Vibes       []Vibe      `json:"vibes"`
	Targets     []Narrative `json:"targets"`
	PricePoints []Narrative `json:"pricePoints"`
	Aspects     []Aspect    `json:"aspectRatios"`
	Defaults    Defaults    `json:"defaults"`
}

// Defaults are the selections a fresh form starts with.
type Defaults struct {
	Vibe           string   `json:"vibe"`
	TargetCustomer string   `json:"targetCustomer"`
	PricePoint     string   `json:"pricePoint"`
	Shots          []string `json:"shots"`
	Models         []string `json:"models"`
}

// Catalog lists every preset table. All shots and models are preselected.
func (l *Library) Catalog() Catalog {
	defaults := Defaults{
		Vibe:           DefaultVibe,
		TargetCustomer: DefaultTarget,
		PricePoint:     DefaultPricePoint,
	}
	for _, s := range l.shots {
		defaults.Shots = append(defaults.Shots, s.ID)
	}
	for _, m := range l.models {
		defaults.Models = append(defaults.Models, m.ID)
	}
	return Catalog{
		Shots:       l.Shots(),
		Models:      l.Models(),
		Vibes:       l.Vibes(),
		Targets:     l.Targets(),
		PricePoints: l.PricePoints(),
		Aspects:     l.Aspects(),
		Defaults:    defaults,
	}
}
