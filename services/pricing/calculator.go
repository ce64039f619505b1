// Package pricing implements the deterministic price calculator for service
// orders: per-block contributions, itemized breakdowns, and order-level
// aggregation with currency and duration rounding.
package pricing

import (
	"fmt"

	"tidywave/models"
)

// Fixed time rates of the business rule. These are constants, not
// configuration.
const (
	// MinutesPerQuantityUnit is the estimated work time per quantity unit.
	MinutesPerQuantityUnit = 15
	// MinutesPerTypeChoice is the flat estimated time for a type selection.
	MinutesPerTypeChoice = 30
	// DurationStepMinutes is the granularity order durations are rounded to.
	DurationStepMinutes = 30
)

// Calculator prices one service instance from its active, ordered pricing
// blocks and a caller's selections. It is stateless and never fails: malformed
// configuration contributes zero with a descriptive breakdown entry.
type Calculator struct{}

// Calculate dispatches each selection to its block's kind-specific pricing
// rule and accumulates price, estimated time, and a per-block breakdown.
// Selections referencing missing or inactive blocks are skipped entirely.
// The returned total is the unrounded sum of contributions.
func (Calculator) Calculate(blocks []models.PricingBlock, selections []models.PricingSelection) models.Quote {
	quote := models.Quote{Breakdown: []models.BreakdownEntry{}}

	for _, sel := range selections {
		block := findActiveBlock(blocks, sel.BlockID)
		if block == nil {
			continue
		}

		var entry models.BreakdownEntry
		switch block.Kind {
		case models.BlockKindQuantity:
			entry = quantityContribution(block, sel)
		case models.BlockKindTypeChoice:
			entry = typeChoiceContribution(block, sel)
		case models.BlockKindToggle:
			entry = toggleContribution(block, sel)
		default:
			continue
		}

		quote.TotalPrice += entry.Price
		quote.EstimatedTimeMinutes += entry.TimeMinutes
		quote.Breakdown = append(quote.Breakdown, entry)
	}

	return quote
}

func findActiveBlock(blocks []models.PricingBlock, id string) *models.PricingBlock {
	for i := range blocks {
		if blocks[i].ID == id && blocks[i].Active {
			return &blocks[i]
		}
	}
	return nil
}

// quantityContribution prices quantity × unit price. The quantity is clamped
// into [0, max_quantity]; the configured minimum is advisory only and not
// enforced here.
func quantityContribution(block *models.PricingBlock, sel models.PricingSelection) models.BreakdownEntry {
	opt := block.Quantity
	if opt == nil {
		return models.BreakdownEntry{
			BlockName:   block.Name,
			BlockKind:   block.Kind,
			Description: fmt.Sprintf("%s: option not configured", block.Name),
		}
	}

	qty := sel.Quantity
	if qty < 0 {
		qty = 0
	}
	if opt.MaxQuantity > 0 && qty > opt.MaxQuantity {
		qty = opt.MaxQuantity
	}

	return models.BreakdownEntry{
		BlockName:   block.Name,
		BlockKind:   block.Kind,
		Quantity:    qty,
		UnitPrice:   opt.UnitPrice,
		Price:       float64(qty) * opt.UnitPrice,
		TimeMinutes: qty * MinutesPerQuantityUnit,
		Description: fmt.Sprintf("%d %s × $%.2f", qty, opt.UnitName, opt.UnitPrice),
	}
}

// typeChoiceContribution prices the named choice selected from the block's
// configured options. A missing payload, empty selection, or unknown name
// contributes zero with a descriptive note; it is never an error.
func typeChoiceContribution(block *models.PricingBlock, sel models.PricingSelection) models.BreakdownEntry {
	entry := models.BreakdownEntry{
		BlockName: block.Name,
		BlockKind: block.Kind,
	}

	opt := block.Type
	if opt == nil || len(opt.Choices) == 0 {
		entry.Description = fmt.Sprintf("%s: option not configured", block.Name)
		return entry
	}
	if sel.SelectedType == "" {
		entry.Description = fmt.Sprintf("%s: type not selected", block.Name)
		return entry
	}

	for _, choice := range opt.Choices {
		if choice.Name == sel.SelectedType {
			entry.SelectedType = sel.SelectedType
			entry.Price = choice.Price
			entry.TimeMinutes = MinutesPerTypeChoice
			entry.Description = fmt.Sprintf("%s: %s", block.Name, sel.SelectedType)
			return entry
		}
	}

	entry.SelectedType = sel.SelectedType
	entry.Description = fmt.Sprintf("%s: selected type not found", block.Name)
	return entry
}

// toggleContribution records the configured percentage in the breakdown but
// contributes zero price: percentage surcharges are advisory metadata inside
// the calculator and are never resolved against a base amount here.
func toggleContribution(block *models.PricingBlock, sel models.PricingSelection) models.BreakdownEntry {
	entry := models.BreakdownEntry{
		BlockName: block.Name,
		BlockKind: block.Kind,
	}

	opt := block.Toggle
	if opt == nil {
		entry.Description = fmt.Sprintf("%s: option not configured", block.Name)
		return entry
	}
	if !sel.ToggleEnabled {
		entry.Description = fmt.Sprintf("%s: disabled", block.Name)
		return entry
	}

	entry.Enabled = true
	entry.PercentageIncrease = opt.PercentageIncrease
	entry.Description = fmt.Sprintf("%s: +%g%%", block.Name, opt.PercentageIncrease)
	return entry
}
