// Command promptpreview compiles the prompt for one shot and model without
// calling the provider.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"onmodel/internal/domain"
	"onmodel/internal/infra"
	"onmodel/internal/presets"
	"onmodel/internal/prompt"
)

type preview struct {
	ComboID        string `json:"comboId"`
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negativePrompt"`
	AspectRatio    string `json:"aspectRatio"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

func main() {
	_ = godotenv.Load()
	logger := infra.NewLogger("cli")

	var (
		presetsFile = flag.String("presets", os.Getenv("PRESETS_FILE"), "YAML preset override file")
		shots       = flag.String("shot", "front-hero", "shot preset id")
		models      = flag.String("model", "editorial", "model preset id")
		vibe        = flag.String("vibe", presets.DefaultVibe, "vibe key")
		target      = flag.String("target", presets.DefaultTarget, "target customer key")
		price       = flag.String("price", presets.DefaultPricePoint, "price point key")
		product     = flag.String("product", "", "product name")
		highlights  = flag.String("highlights", "", "fabrication highlights")
		asJSON      = flag.Bool("json", false, "print JSON instead of text")
	)
	flag.Parse()

	lib, err := presets.LoadFile(*presetsFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load presets")
	}
	combos := lib.ExpandCombos([]string{*shots}, []string{*models})
	if len(combos) == 0 {
		logger.Fatal().Str("shot", *shots).Str("model", *models).Msg("unknown shot or model preset")
	}
	params := domain.BatchParams{
		ProductName:    *product,
		Highlights:     *highlights,
		Vibe:           *vibe,
		TargetCustomer: *target,
		PricePoint:     *price,
	}

	compiler := prompt.NewCompiler(lib)
	combo := combos[0]
	bundle := compiler.Compile(combo, params)
	dims := lib.Dimensions(combo.AspectRatio)
	out := preview{
		ComboID:        combo.ID,
		Prompt:         bundle.Prompt,
		NegativePrompt: bundle.NegativePrompt,
		AspectRatio:    combo.AspectRatio,
		Width:          dims.Width,
		Height:         dims.Height,
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			logger.Fatal().Err(err).Msg("encode preview")
		}
		return
	}
	fmt.Printf("combo:    %s\n", out.ComboID)
	fmt.Printf("size:     %dx%d (%s)\n", out.Width, out.Height, out.AspectRatio)
	fmt.Printf("prompt:   %s\n", out.Prompt)
	fmt.Printf("negative: %s\n", out.NegativePrompt)
}
