package models

// PricingSelection is the caller's input resolving one pricing block for one
// computation. Exactly one of Quantity, SelectedType, ToggleEnabled is
// meaningful depending on the referenced block's kind. Transient, not
// persisted.
type PricingSelection struct {
	BlockID       string `json:"block_id"`
	Quantity      int    `json:"quantity,omitempty"`
	SelectedType  string `json:"selected_type,omitempty"`
	ToggleEnabled bool   `json:"toggle_enabled,omitempty"`
}

// BreakdownEntry is one block's computed contribution, returned for
// transparency. Kind-specific fields are populated only where they apply.
type BreakdownEntry struct {
	BlockName          string    `json:"block_name"`
	BlockKind          BlockKind `json:"block_kind"`
	Quantity           int       `json:"quantity,omitempty"`
	UnitPrice          float64   `json:"unit_price,omitempty"`
	SelectedType       string    `json:"selected_type,omitempty"`
	Enabled            bool      `json:"enabled,omitempty"`
	PercentageIncrease float64   `json:"percentage_increase,omitempty"`
	Price              float64   `json:"price"`
	TimeMinutes        int       `json:"time_minutes"`
	Description        string    `json:"description"`
}

// Quote is the result of pricing one service instance. TotalPrice is the
// unrounded sum of contributions; currency rounding is the caller's concern.
type Quote struct {
	TotalPrice           float64          `json:"total_price"`
	Breakdown            []BreakdownEntry `json:"breakdown"`
	EstimatedTimeMinutes int              `json:"estimated_time_minutes"`
}

// ServiceParameters is the structured per-item input a client submits with an
// order. Each field feeds the pricing block carrying the matching semantic
// key.
type ServiceParameters struct {
	RemovableCushionCount   int    `json:"removable_cushion_count"`
	UnremovableCushionCount int    `json:"unremovable_cushion_count"`
	PillowCount             int    `json:"pillow_count"`
	WindowCount             int    `json:"window_count"`
	RugCount                int    `json:"rug_count"`
	FabricType              string `json:"fabric_type,omitempty"`
	BaseCleaning            bool   `json:"base_cleaning"`
	PetHair                 bool   `json:"pet_hair"`
	UrineStains             bool   `json:"urine_stains"`
	AcceleratedDrying       bool   `json:"accelerated_drying"`
}
