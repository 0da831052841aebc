package presets

import (
	"fmt"

	"github.com/google/uuid"

	"onmodel/internal/domain"
)

// ExpandCombos builds the model x shot cross-product for the selected preset
// IDs. Order follows the library (models outer, shots inner), not the order of
// the selection, and unknown IDs are ignored. Each combo gets a fresh ID of
// the form "<model>-<shot>-<uuid>".
func (l *Library) ExpandCombos(shotIDs, modelIDs []string) []domain.Combo {
	selectedShots := selectionSet(shotIDs)
	selectedModels := selectionSet(modelIDs)

	var combos []domain.Combo
	for _, model := range l.models {
		if _, ok := selectedModels[normalizeKey(model.ID)]; !ok {
			continue
		}
		for _, shot := range l.shots {
			if _, ok := selectedShots[normalizeKey(shot.ID)]; !ok {
				continue
			}
			combos = append(combos, domain.Combo{
				ID:          fmt.Sprintf("%s-%s-%s", model.ID, shot.ID, uuid.NewString()),
				ShotID:      shot.ID,
				ShotLabel:   shot.Label,
				ShotPrompt:  shot.Prompt,
				AspectRatio: shot.AspectRatio,
				ModelID:     model.ID,
				ModelLabel:  model.Label,
				ModelPrompt: model.Prompt,
				ModelNotes:  model.Notes,
			})
		}
	}
	return combos
}

func selectionSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[normalizeKey(id)] = struct{}{}
	}
	return set
}
