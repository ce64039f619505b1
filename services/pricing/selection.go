package pricing

import "tidywave/models"

// BuildSelections resolves a client's structured service parameters into
// per-block selections by each block's semantic key. Blocks keyed "custom"
// and blocks whose parameter is absent get no selection and therefore no
// contribution.
func BuildSelections(blocks []models.PricingBlock, params models.ServiceParameters) []models.PricingSelection {
	var selections []models.PricingSelection

	for _, block := range blocks {
		if !block.Active {
			continue
		}

		sel := models.PricingSelection{BlockID: block.ID}
		switch block.Kind {
		case models.BlockKindQuantity:
			switch block.Key {
			case models.KeyCushionRemovable:
				sel.Quantity = params.RemovableCushionCount
			case models.KeyCushionUnremovable:
				sel.Quantity = params.UnremovableCushionCount
			case models.KeyPillow:
				sel.Quantity = params.PillowCount
			case models.KeyWindow:
				sel.Quantity = params.WindowCount
			case models.KeyRug:
				sel.Quantity = params.RugCount
			default:
				continue
			}
		case models.BlockKindTypeChoice:
			if params.FabricType == "" {
				continue
			}
			sel.SelectedType = params.FabricType
		case models.BlockKindToggle:
			switch block.Key {
			case models.KeyBaseCleaning:
				sel.ToggleEnabled = params.BaseCleaning
			case models.KeyPetHair:
				sel.ToggleEnabled = params.PetHair
			case models.KeyUrineStains:
				sel.ToggleEnabled = params.UrineStains
			case models.KeyAcceleratedDrying:
				sel.ToggleEnabled = params.AcceleratedDrying
			default:
				continue
			}
		default:
			continue
		}

		selections = append(selections, sel)
	}

	return selections
}
