package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidywave/models"
)

func upholsteryBlocks() []models.PricingBlock {
	return []models.PricingBlock{
		{
			ID: "blk-cushions", Name: "Removable cushions", Kind: models.BlockKindQuantity,
			Key: models.KeyCushionRemovable, OrderIndex: 1, Active: true,
			Quantity: &models.QuantityOption{Name: "Cushions", UnitPrice: 10, MinQuantity: 1, MaxQuantity: 20, UnitName: "cushion"},
		},
		{
			ID: "blk-fabric", Name: "Fabric type", Kind: models.BlockKindTypeChoice,
			Key: models.KeyCustom, OrderIndex: 2, Active: true,
			Type: &models.TypeOption{Name: "Fabric", Choices: []models.TypeChoice{
				{Name: "cotton", Price: 20},
				{Name: "silk", Price: 40},
			}},
		},
		{
			ID: "blk-pet-hair", Name: "Pet hair removal", Kind: models.BlockKindToggle,
			Key: models.KeyPetHair, OrderIndex: 3, Active: true,
			Toggle: &models.ToggleOption{Name: "Pet hair", PercentageIncrease: 15},
		},
	}
}

func TestCalculateQuantity(t *testing.T) {
	calc := Calculator{}
	blocks := upholsteryBlocks()

	tests := []struct {
		name     string
		quantity int
		price    float64
		minutes  int
	}{
		{"simple", 3, 30, 45},
		{"zero", 0, 0, 0},
		{"negative clamps to zero", -4, 0, 0},
		{"above max clamps to max", 25, 200, 300},
		{"below advisory min accepted", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := calc.Calculate(blocks, []models.PricingSelection{
				{BlockID: "blk-cushions", Quantity: tt.quantity},
			})
			assert.Equal(t, tt.price, quote.TotalPrice)
			assert.Equal(t, tt.minutes, quote.EstimatedTimeMinutes)
		})
	}
}

func TestCalculateTypeChoice(t *testing.T) {
	calc := Calculator{}
	blocks := upholsteryBlocks()

	quote := calc.Calculate(blocks, []models.PricingSelection{
		{BlockID: "blk-fabric", SelectedType: "silk"},
	})
	assert.Equal(t, 40.0, quote.TotalPrice)
	assert.Equal(t, MinutesPerTypeChoice, quote.EstimatedTimeMinutes)
	require.Len(t, quote.Breakdown, 1)
	assert.Equal(t, "silk", quote.Breakdown[0].SelectedType)
}

func TestCalculateTypeChoiceDegenerate(t *testing.T) {
	calc := Calculator{}
	blocks := upholsteryBlocks()

	tests := []struct {
		name     string
		selected string
	}{
		{"no selection", ""},
		{"unknown choice", "velvet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := calc.Calculate(blocks, []models.PricingSelection{
				{BlockID: "blk-fabric", SelectedType: tt.selected},
			})
			assert.Zero(t, quote.TotalPrice)
			assert.Zero(t, quote.EstimatedTimeMinutes)
			require.Len(t, quote.Breakdown, 1, "degenerate selections still get a breakdown entry")
			assert.NotEmpty(t, quote.Breakdown[0].Description)
		})
	}
}

func TestCalculateToggleContributesZero(t *testing.T) {
	calc := Calculator{}
	blocks := upholsteryBlocks()

	quote := calc.Calculate(blocks, []models.PricingSelection{
		{BlockID: "blk-pet-hair", ToggleEnabled: true},
	})
	assert.Zero(t, quote.TotalPrice)
	assert.Zero(t, quote.EstimatedTimeMinutes)
	require.Len(t, quote.Breakdown, 1)
	assert.True(t, quote.Breakdown[0].Enabled)
	assert.Equal(t, 15.0, quote.Breakdown[0].PercentageIncrease)
}

func TestCalculateToggleDisabled(t *testing.T) {
	calc := Calculator{}

	quote := calc.Calculate(upholsteryBlocks(), []models.PricingSelection{
		{BlockID: "blk-pet-hair", ToggleEnabled: false},
	})
	assert.Zero(t, quote.TotalPrice)
	require.Len(t, quote.Breakdown, 1)
	assert.False(t, quote.Breakdown[0].Enabled)
	assert.Zero(t, quote.Breakdown[0].PercentageIncrease)
}

func TestCalculateSkipsMissingAndInactiveBlocks(t *testing.T) {
	calc := Calculator{}
	blocks := upholsteryBlocks()
	blocks[0].Active = false

	quote := calc.Calculate(blocks, []models.PricingSelection{
		{BlockID: "blk-cushions", Quantity: 3},
		{BlockID: "blk-nowhere", Quantity: 9},
	})
	assert.Zero(t, quote.TotalPrice)
	assert.Empty(t, quote.Breakdown)
}

func TestCalculateMisconfiguredBlock(t *testing.T) {
	calc := Calculator{}
	blocks := []models.PricingBlock{{
		ID: "blk-broken", Name: "Broken", Kind: models.BlockKindQuantity,
		Key: models.KeyRug, Active: true,
	}}

	quote := calc.Calculate(blocks, []models.PricingSelection{
		{BlockID: "blk-broken", Quantity: 2},
	})
	assert.Zero(t, quote.TotalPrice)
	require.Len(t, quote.Breakdown, 1)
	assert.Contains(t, quote.Breakdown[0].Description, "not configured")
}

func TestCalculateCombined(t *testing.T) {
	calc := Calculator{}

	quote := calc.Calculate(upholsteryBlocks(), []models.PricingSelection{
		{BlockID: "blk-cushions", Quantity: 2},
		{BlockID: "blk-fabric", SelectedType: "cotton"},
		{BlockID: "blk-pet-hair", ToggleEnabled: true},
	})
	assert.Equal(t, 40.0, quote.TotalPrice)
	assert.Equal(t, 60, quote.EstimatedTimeMinutes)
	assert.Len(t, quote.Breakdown, 3)
}

func TestBuildSelections(t *testing.T) {
	blocks := upholsteryBlocks()
	params := models.ServiceParameters{
		RemovableCushionCount: 4,
		FabricType:            "silk",
		PetHair:               true,
	}

	selections := BuildSelections(blocks, params)
	require.Len(t, selections, 3)
	assert.Equal(t, models.PricingSelection{BlockID: "blk-cushions", Quantity: 4}, selections[0])
	assert.Equal(t, models.PricingSelection{BlockID: "blk-fabric", SelectedType: "silk"}, selections[1])
	assert.Equal(t, models.PricingSelection{BlockID: "blk-pet-hair", ToggleEnabled: true}, selections[2])
}

func TestBuildSelectionsSkipsAbsentParameters(t *testing.T) {
	// No fabric selected: the type_choice block gets no selection at all
	// rather than an empty one.
	selections := BuildSelections(upholsteryBlocks(), models.ServiceParameters{
		RemovableCushionCount: 1,
	})
	require.Len(t, selections, 2)
	assert.Equal(t, "blk-cushions", selections[0].BlockID)
	assert.Equal(t, "blk-pet-hair", selections[1].BlockID)
}

func TestBuildSelectionsSkipsInactive(t *testing.T) {
	blocks := upholsteryBlocks()
	for i := range blocks {
		blocks[i].Active = false
	}

	assert.Empty(t, BuildSelections(blocks, models.ServiceParameters{RemovableCushionCount: 2}))
}
