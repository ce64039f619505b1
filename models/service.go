package models

import "time"

// BlockKind discriminates the pricing dimension a block configures.
type BlockKind string

const (
	BlockKindQuantity   BlockKind = "quantity"
	BlockKindTypeChoice BlockKind = "type_choice"
	BlockKindToggle     BlockKind = "toggle"
)

// BlockKey is the stable semantic identity of a pricing block. It is set once
// at block creation and used to resolve structured order parameters to block
// selections without matching on display names.
type BlockKey string

const (
	KeyCushionRemovable   BlockKey = "cushion_removable"
	KeyCushionUnremovable BlockKey = "cushion_unremovable"
	KeyPillow             BlockKey = "pillow"
	KeyWindow             BlockKey = "window"
	KeyRug                BlockKey = "rug"
	KeyBaseCleaning       BlockKey = "base_cleaning"
	KeyPetHair            BlockKey = "pet_hair"
	KeyUrineStains        BlockKey = "urine_stains"
	KeyAcceleratedDrying  BlockKey = "accelerated_drying"
	KeyCustom             BlockKey = "custom"
)

// ValidBlockKey reports whether k is one of the recognised semantic keys.
func ValidBlockKey(k BlockKey) bool {
	switch k {
	case KeyCushionRemovable, KeyCushionUnremovable, KeyPillow, KeyWindow, KeyRug,
		KeyBaseCleaning, KeyPetHair, KeyUrineStains, KeyAcceleratedDrying, KeyCustom:
		return true
	}
	return false
}

// QuantityOption configures a quantity-kind block: a per-unit price with
// advisory quantity bounds.
type QuantityOption struct {
	Name        string  `bson:"name" json:"name"`
	UnitPrice   float64 `bson:"unit_price" json:"unit_price"`
	MinQuantity int     `bson:"min_quantity" json:"min_quantity"`
	MaxQuantity int     `bson:"max_quantity" json:"max_quantity"`
	UnitName    string  `bson:"unit_name" json:"unit_name"`
}

// TypeChoice is one named choice within a type_choice block.
type TypeChoice struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

// TypeOption configures a type_choice-kind block.
type TypeOption struct {
	Name    string       `bson:"name" json:"name"`
	Choices []TypeChoice `bson:"choices" json:"choices"`
}

// ToggleOption configures a toggle-kind block. The percentage is recorded in
// pricing breakdowns but never resolved against a base amount by the
// calculator itself.
type ToggleOption struct {
	Name               string  `bson:"name" json:"name"`
	ShortDescription   string  `bson:"short_description" json:"short_description"`
	FullDescription    string  `bson:"full_description,omitempty" json:"full_description,omitempty"`
	PercentageIncrease float64 `bson:"percentage_increase" json:"percentage_increase"`
}

// PricingBlock is one configurable pricing dimension of a service. Exactly one
// of the option payloads is set, matching Kind.
type PricingBlock struct {
	ID         string          `bson:"id" json:"id"`
	Name       string          `bson:"name" json:"name"`
	Kind       BlockKind       `bson:"kind" json:"kind"`
	Key        BlockKey        `bson:"key" json:"key"`
	OrderIndex int             `bson:"order_index" json:"order_index"`
	Required   bool            `bson:"required" json:"required"`
	Active     bool            `bson:"active" json:"active"`
	Quantity   *QuantityOption `bson:"quantity_option,omitempty" json:"quantity_option,omitempty"`
	Type       *TypeOption     `bson:"type_option,omitempty" json:"type_option,omitempty"`
	Toggle     *ToggleOption   `bson:"toggle_option,omitempty" json:"toggle_option,omitempty"`
	CreatedAt  time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `bson:"updated_at" json:"updated_at"`
}

// Service is a catalog entry owning an ordered list of pricing blocks.
// Services referenced by orders are never deleted; they are unpublished.
type Service struct {
	ID            string         `bson:"id" json:"id"`
	Name          string         `bson:"name" json:"name"`
	Description   string         `bson:"description" json:"description"`
	Published     bool           `bson:"published" json:"published"`
	PricingBlocks []PricingBlock `bson:"pricing_blocks" json:"pricing_blocks"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// ActiveBlocks returns the active pricing blocks ordered by display index.
// The calculator contract expects inactive blocks to be filtered out already.
func (s *Service) ActiveBlocks() []PricingBlock {
	blocks := make([]PricingBlock, 0, len(s.PricingBlocks))
	for _, b := range s.PricingBlocks {
		if b.Active {
			blocks = append(blocks, b)
		}
	}
	for i := 1; i < len(blocks); i++ {
		for j := i; j > 0 && blocks[j-1].OrderIndex > blocks[j].OrderIndex; j-- {
			blocks[j-1], blocks[j] = blocks[j], blocks[j-1]
		}
	}
	return blocks
}

// BlockByID finds a pricing block by its identifier.
func (s *Service) BlockByID(id string) *PricingBlock {
	for i := range s.PricingBlocks {
		if s.PricingBlocks[i].ID == id {
			return &s.PricingBlocks[i]
		}
	}
	return nil
}
