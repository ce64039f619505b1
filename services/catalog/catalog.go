// Package catalog manages the service catalog: the services offered, their
// publish state, and the pricing blocks that drive the price calculator.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	serviceRepo "tidywave/database/repository/service"
	"tidywave/models"
	"tidywave/utils"
)

// ServiceInput carries the admin-editable fields of a catalog service.
type ServiceInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// BlockInput carries the admin-editable fields of a pricing block. Exactly
// one option payload must be set and it must match Kind.
type BlockInput struct {
	Name     string                 `json:"name" binding:"required"`
	Kind     models.BlockKind       `json:"kind" binding:"required"`
	Key      models.BlockKey        `json:"key" binding:"required"`
	Required bool                   `json:"required"`
	Quantity *models.QuantityOption `json:"quantity_option,omitempty"`
	Type     *models.TypeOption     `json:"type_option,omitempty"`
	Toggle   *models.ToggleOption   `json:"toggle_option,omitempty"`
}

// Service exposes the catalog management operations.
type Service struct {
	Services serviceRepo.ServiceRepository
}

// CreateService adds a new catalog entry. New services start unpublished so
// their pricing can be configured before clients see them.
func (s *Service) CreateService(ctx context.Context, input ServiceInput) (*models.Service, error) {
	if input.Name == "" {
		return nil, &CatalogError{Code: CodeInvalidService, Message: "service name is required"}
	}

	now := time.Now().UTC()
	svc := &models.Service{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Published:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Services.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	utils.GetLogger().Info("service created",
		zap.String("serviceID", svc.ID), zap.String("name", svc.Name))
	return svc, nil
}

// UpdateService renames or redescribes a service.
func (s *Service) UpdateService(ctx context.Context, id string, input ServiceInput) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		svc.Name = input.Name
	}
	svc.Description = input.Description
	svc.UpdatedAt = time.Now().UTC()

	if err := s.Services.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

// SetPublished flips a service's visibility to clients. Services are never
// deleted; unpublishing is the retirement path so historical orders keep a
// resolvable service reference.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	svc.Published = published
	svc.UpdatedAt = time.Now().UTC()
	if err := s.Services.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	utils.GetLogger().Info("service publish state changed",
		zap.String("serviceID", id), zap.Bool("published", published))
	return svc, nil
}

// GetService returns any service by ID, published or not.
func (s *Service) GetService(ctx context.Context, id string) (*models.Service, error) {
	return s.Services.GetByID(ctx, id)
}

// GetPublishedService returns the service only if it is published.
func (s *Service) GetPublishedService(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.Published {
		return nil, serviceRepo.ErrNotFound
	}
	return svc, nil
}

// ListServices returns the catalog, optionally restricted to the published
// services clients may see.
func (s *Service) ListServices(ctx context.Context, publishedOnly bool) ([]models.Service, error) {
	return s.Services.GetAll(ctx, publishedOnly)
}

// PricingStructure is the client-facing view of a published service's active
// pricing blocks, in display order.
func (s *Service) PricingStructure(ctx context.Context, serviceID string) ([]models.PricingBlock, error) {
	svc, err := s.GetPublishedService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return svc.ActiveBlocks(), nil
}

// AddBlock appends a pricing block to a service. The block is validated
// against its kind, gets the next display index, and starts active.
func (s *Service) AddBlock(ctx context.Context, serviceID string, input BlockInput) (*models.PricingBlock, error) {
	if err := validateBlockInput(input); err != nil {
		return nil, err
	}

	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	nextIndex := 0
	for _, b := range svc.PricingBlocks {
		if b.OrderIndex >= nextIndex {
			nextIndex = b.OrderIndex + 1
		}
	}

	now := time.Now().UTC()
	block := models.PricingBlock{
		ID:         uuid.New().String(),
		Name:       input.Name,
		Kind:       input.Kind,
		Key:        input.Key,
		OrderIndex: nextIndex,
		Required:   input.Required,
		Active:     true,
		Quantity:   input.Quantity,
		Type:       input.Type,
		Toggle:     input.Toggle,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	svc.PricingBlocks = append(svc.PricingBlocks, block)
	svc.UpdatedAt = now

	if err := s.Services.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to add pricing block: %w", err)
	}
	return &block, nil
}

// UpdateBlock edits an existing pricing block in place. Kind and Key are
// immutable once created: they define what the block means to orders already
// priced against it.
func (s *Service) UpdateBlock(ctx context.Context, serviceID, blockID string, input BlockInput) (*models.PricingBlock, error) {
	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	block := svc.BlockByID(blockID)
	if block == nil {
		return nil, &CatalogError{Code: CodeUnknownBlock, Message: fmt.Sprintf("pricing block %s not found", blockID)}
	}
	if input.Kind != "" && input.Kind != block.Kind {
		return nil, newInvalidBlockError("block kind cannot be changed from %s to %s", block.Kind, input.Kind)
	}
	if input.Key != "" && input.Key != block.Key {
		return nil, newInvalidBlockError("block key cannot be changed from %s to %s", block.Key, input.Key)
	}

	check := BlockInput{
		Name:     input.Name,
		Kind:     block.Kind,
		Key:      block.Key,
		Quantity: input.Quantity,
		Type:     input.Type,
		Toggle:   input.Toggle,
	}
	if err := validateBlockInput(check); err != nil {
		return nil, err
	}

	block.Name = input.Name
	block.Required = input.Required
	block.Quantity = input.Quantity
	block.Type = input.Type
	block.Toggle = input.Toggle
	block.UpdatedAt = time.Now().UTC()
	svc.UpdatedAt = block.UpdatedAt

	if err := s.Services.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update pricing block: %w", err)
	}
	return block, nil
}

// SetBlockActive activates or deactivates a block. Deactivated blocks stop
// contributing to new quotes but stay on the service for order history.
func (s *Service) SetBlockActive(ctx context.Context, serviceID, blockID string, active bool) error {
	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		return err
	}

	block := svc.BlockByID(blockID)
	if block == nil {
		return &CatalogError{Code: CodeUnknownBlock, Message: fmt.Sprintf("pricing block %s not found", blockID)}
	}

	block.Active = active
	block.UpdatedAt = time.Now().UTC()
	svc.UpdatedAt = block.UpdatedAt
	if err := s.Services.Update(ctx, svc); err != nil {
		return fmt.Errorf("failed to update pricing block: %w", err)
	}
	return nil
}

// ReorderBlocks rewrites the display order from an explicit permutation of
// the service's block IDs. Missing or unknown IDs reject the whole request.
func (s *Service) ReorderBlocks(ctx context.Context, serviceID string, orderedIDs []string) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if len(orderedIDs) != len(svc.PricingBlocks) {
		return nil, &CatalogError{
			Code:    CodeBadReorder,
			Message: fmt.Sprintf("expected %d block IDs, got %d", len(svc.PricingBlocks), len(orderedIDs)),
		}
	}

	seen := make(map[string]bool, len(orderedIDs))
	for index, id := range orderedIDs {
		if seen[id] {
			return nil, &CatalogError{Code: CodeBadReorder, Message: fmt.Sprintf("duplicate block ID %s", id)}
		}
		seen[id] = true

		block := svc.BlockByID(id)
		if block == nil {
			return nil, &CatalogError{Code: CodeBadReorder, Message: fmt.Sprintf("unknown block ID %s", id)}
		}
		block.OrderIndex = index
	}

	svc.UpdatedAt = time.Now().UTC()
	if err := s.Services.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to reorder pricing blocks: %w", err)
	}
	return svc, nil
}

// validateBlockInput enforces the one-payload-per-kind shape and the semantic
// key vocabulary before a block is accepted.
func validateBlockInput(input BlockInput) error {
	if input.Name == "" {
		return newInvalidBlockError("block name is required")
	}
	if !models.ValidBlockKey(input.Key) {
		return newInvalidBlockError("unknown block key %q", input.Key)
	}

	switch input.Kind {
	case models.BlockKindQuantity:
		if input.Quantity == nil || input.Type != nil || input.Toggle != nil {
			return newInvalidBlockError("quantity blocks need exactly the quantity option")
		}
		if input.Quantity.UnitPrice < 0 {
			return newInvalidBlockError("unit price cannot be negative")
		}
		if input.Quantity.MaxQuantity > 0 && input.Quantity.MinQuantity > input.Quantity.MaxQuantity {
			return newInvalidBlockError("min quantity %d exceeds max quantity %d",
				input.Quantity.MinQuantity, input.Quantity.MaxQuantity)
		}
	case models.BlockKindTypeChoice:
		if input.Type == nil || input.Quantity != nil || input.Toggle != nil {
			return newInvalidBlockError("type choice blocks need exactly the type option")
		}
		if len(input.Type.Choices) == 0 {
			return newInvalidBlockError("type choice blocks need at least one choice")
		}
		names := make(map[string]bool, len(input.Type.Choices))
		for _, choice := range input.Type.Choices {
			if choice.Name == "" {
				return newInvalidBlockError("type choices need names")
			}
			if names[choice.Name] {
				return newInvalidBlockError("duplicate type choice %q", choice.Name)
			}
			names[choice.Name] = true
		}
	case models.BlockKindToggle:
		if input.Toggle == nil || input.Quantity != nil || input.Type != nil {
			return newInvalidBlockError("toggle blocks need exactly the toggle option")
		}
	default:
		return newInvalidBlockError("unknown block kind %q", input.Kind)
	}
	return nil
}
