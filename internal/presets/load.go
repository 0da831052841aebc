package presets

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type overrideFile struct {
	Shots       []Shot      `yaml:"shots"`
	Models      []Model     `yaml:"models"`
	Vibes       []Vibe      `yaml:"vibes"`
	Targets     []Narrative `yaml:"targets"`
	PricePoints []Narrative `yaml:"price_points"`
	Aspects     []Aspect    `yaml:"aspect_ratios"`
}

// LoadFile builds a library from the defaults merged with the YAML file at
// path. Entries whose key already exists replace the default in place; new
// keys are appended. An empty path returns the defaults.
func LoadFile(path string) (*Library, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("presets: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse merges a YAML override document into the defaults.
func Parse(raw []byte) (*Library, error) {
	var file overrideFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("presets: decode yaml: %w", err)
	}
	if err := file.validate(); err != nil {
		return nil, err
	}
	base := Default()
	return newLibrary(
		merge(base.shots, file.Shots, func(s Shot) string { return s.ID }),
		merge(base.models, file.Models, func(m Model) string { return m.ID }),
		merge(base.vibes, file.Vibes, func(v Vibe) string { return v.Key }),
		merge(base.targets, file.Targets, func(n Narrative) string { return n.ID }),
		merge(base.prices, file.PricePoints, func(n Narrative) string { return n.ID }),
		merge(base.aspects, file.Aspects, func(a Aspect) string { return a.Ratio }),
	), nil
}

func (f overrideFile) validate() error {
	for i, s := range f.Shots {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("presets: shots[%d]: id is required", i)
		}
	}
	for i, m := range f.Models {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("presets: models[%d]: id is required", i)
		}
	}
	for i, v := range f.Vibes {
		if strings.TrimSpace(v.Key) == "" {
			return fmt.Errorf("presets: vibes[%d]: key is required", i)
		}
	}
	for i, t := range f.Targets {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("presets: targets[%d]: id is required", i)
		}
	}
	for i, p := range f.PricePoints {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("presets: price_points[%d]: id is required", i)
		}
	}
	for i, a := range f.Aspects {
		if strings.TrimSpace(a.Ratio) == "" {
			return fmt.Errorf("presets: aspect_ratios[%d]: ratio is required", i)
		}
		if a.Width <= 0 || a.Height <= 0 {
			return fmt.Errorf("presets: aspect_ratios[%d]: width and height must be positive", i)
		}
	}
	return nil
}

func merge[T any](base, overrides []T, key func(T) string) []T {
	out := append([]T(nil), base...)
	index := make(map[string]int, len(out))
	for i, item := range out {
		index[normalizeKey(key(item))] = i
	}
	for _, item := range overrides {
		k := normalizeKey(key(item))
		if i, ok := index[k]; ok {
			out[i] = item
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}
