package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serviceRepo "tidywave/database/repository/service"
	"tidywave/models"
)

type memServiceRepo struct {
	services map[string]*models.Service
}

func newMemServiceRepo() *memServiceRepo {
	return &memServiceRepo{services: map[string]*models.Service{}}
}

func (r *memServiceRepo) Create(_ context.Context, svc *models.Service) error {
	clone := *svc
	r.services[svc.ID] = &clone
	return nil
}

func (r *memServiceRepo) Update(_ context.Context, svc *models.Service) error {
	if _, ok := r.services[svc.ID]; !ok {
		return serviceRepo.ErrNotFound
	}
	clone := *svc
	r.services[svc.ID] = &clone
	return nil
}

func (r *memServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	if svc, ok := r.services[id]; ok {
		clone := *svc
		clone.PricingBlocks = append([]models.PricingBlock(nil), svc.PricingBlocks...)
		return &clone, nil
	}
	return nil, serviceRepo.ErrNotFound
}

func (r *memServiceRepo) GetAll(_ context.Context, publishedOnly bool) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range r.services {
		if publishedOnly && !svc.Published {
			continue
		}
		out = append(out, *svc)
	}
	return out, nil
}

func quantityInput(name string, key models.BlockKey) BlockInput {
	return BlockInput{
		Name: name,
		Kind: models.BlockKindQuantity,
		Key:  key,
		Quantity: &models.QuantityOption{
			Name: name, UnitPrice: 10, MaxQuantity: 30, UnitName: "item",
		},
	}
}

func TestCreateServiceStartsUnpublished(t *testing.T) {
	svc := &Service{Services: newMemServiceRepo()}

	created, err := svc.CreateService(context.Background(), ServiceInput{Name: "Sofa Cleaning"})
	require.NoError(t, err)
	assert.False(t, created.Published)
	assert.NotEmpty(t, created.ID)
}

func TestPublishLifecycle(t *testing.T) {
	repo := newMemServiceRepo()
	svc := &Service{Services: repo}

	created, err := svc.CreateService(context.Background(), ServiceInput{Name: "Sofa Cleaning"})
	require.NoError(t, err)

	_, err = svc.GetPublishedService(context.Background(), created.ID)
	assert.ErrorIs(t, err, serviceRepo.ErrNotFound)

	_, err = svc.SetPublished(context.Background(), created.ID, true)
	require.NoError(t, err)

	got, err := svc.GetPublishedService(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, got.Published)
}

func TestAddBlockAssignsNextIndex(t *testing.T) {
	svc := &Service{Services: newMemServiceRepo()}
	created, err := svc.CreateService(context.Background(), ServiceInput{Name: "Sofa Cleaning"})
	require.NoError(t, err)

	first, err := svc.AddBlock(context.Background(), created.ID, quantityInput("Cushions", models.KeyCushionRemovable))
	require.NoError(t, err)
	second, err := svc.AddBlock(context.Background(), created.ID, quantityInput("Pillows", models.KeyPillow))
	require.NoError(t, err)

	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, 1, second.OrderIndex)
	assert.True(t, first.Active)
}

func TestAddBlockValidation(t *testing.T) {
	svc := &Service{Services: newMemServiceRepo()}
	created, err := svc.CreateService(context.Background(), ServiceInput{Name: "Sofa Cleaning"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input BlockInput
	}{
		{"unknown key", BlockInput{
			Name: "X", Kind: models.BlockKindQuantity, Key: "sofa_legs",
			Quantity: &models.QuantityOption{UnitPrice: 5},
		}},
		{"missing payload", BlockInput{
			Name: "X", Kind: models.BlockKindQuantity, Key: models.KeyPillow,
		}},
		{"wrong payload for kind", BlockInput{
			Name: "X", Kind: models.BlockKindToggle, Key: models.KeyPetHair,
			Quantity: &models.QuantityOption{UnitPrice: 5},
		}},
		{"two payloads", BlockInput{
			Name: "X", Kind: models.BlockKindQuantity, Key: models.KeyPillow,
			Quantity: &models.QuantityOption{UnitPrice: 5},
			Toggle:   &models.ToggleOption{Name: "X"},
		}},
		{"type choice without choices", BlockInput{
			Name: "X", Kind: models.BlockKindTypeChoice, Key: models.KeyCustom,
			Type: &models.TypeOption{Name: "Fabric"},
		}},
		{"duplicate type choices", BlockInput{
			Name: "X", Kind: models.BlockKindTypeChoice, Key: models.KeyCustom,
			Type: &models.TypeOption{Name: "Fabric", Choices: []models.TypeChoice{
				{Name: "silk", Price: 40}, {Name: "silk", Price: 45},
			}},
		}},
		{"negative unit price", BlockInput{
			Name: "X", Kind: models.BlockKindQuantity, Key: models.KeyPillow,
			Quantity: &models.QuantityOption{UnitPrice: -1},
		}},
		{"min above max", BlockInput{
			Name: "X", Kind: models.BlockKindQuantity, Key: models.KeyPillow,
			Quantity: &models.QuantityOption{UnitPrice: 5, MinQuantity: 10, MaxQuantity: 4},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddBlock(context.Background(), created.ID, tt.input)
			var catErr *CatalogError
			require.ErrorAs(t, err, &catErr)
			assert.Equal(t, CodeInvalidBlock, catErr.Code)
		})
	}
}

func TestUpdateBlockKindImmutable(t *testing.T) {
	svc := &Service{Services: newMemServiceRepo()}
	created, err := svc.CreateService(context.Background(), ServiceInput{Name: "Sofa Cleaning"})
	require.NoError(t, err)
	block, err := svc.AddBlock(context.Background(), created.ID, quantityInput("Cushions", models.KeyCushionRemovable))
	require.NoError(t, err)

	_, err = svc.UpdateBlock(context.Background(), created.ID, block.ID, BlockInput{
		Name: "Cushions", Kind: models.BlockKindToggle, Key: models.KeyCushionRemovable,
		Toggle: &models.ToggleOption{Name: "Cushions"},
	})
	var catErr *CatalogError
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, CodeInvalidBlock, catErr.Code)
}

func TestSetBlockActiveHidesFromPricingStructure(t *testing.T) {
	svc := &Service{Services: newMemServiceRepo()}
	created, err := svc.CreateService(context.Background(), ServiceInput{Name: "Sofa Cleaning"})
	require.NoError(t, err)
	block, err := svc.AddBlock(context.Background(), created.ID, quantityInput("Cushions", models.KeyCushionRemovable))
	require.NoError(t, err)
	_, err = svc.SetPublished(context.Background(), created.ID, true)
	require.NoError(t, err)

	structure, err := svc.PricingStructure(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, structure, 1)

	require.NoError(t, svc.SetBlockActive(context.Background(), created.ID, block.ID, false))

	structure, err = svc.PricingStructure(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, structure)
}

func TestReorderBlocks(t *testing.T) {
	svc := &Service{Services: newMemServiceRepo()}
	created, err := svc.CreateService(context.Background(), ServiceInput{Name: "Sofa Cleaning"})
	require.NoError(t, err)
	first, err := svc.AddBlock(context.Background(), created.ID, quantityInput("Cushions", models.KeyCushionRemovable))
	require.NoError(t, err)
	second, err := svc.AddBlock(context.Background(), created.ID, quantityInput("Pillows", models.KeyPillow))
	require.NoError(t, err)

	updated, err := svc.ReorderBlocks(context.Background(), created.ID, []string{second.ID, first.ID})
	require.NoError(t, err)

	ordered := updated.ActiveBlocks()
	require.Len(t, ordered, 2)
	assert.Equal(t, second.ID, ordered[0].ID)
	assert.Equal(t, first.ID, ordered[1].ID)
}

func TestReorderBlocksRejectsBadPermutations(t *testing.T) {
	svc := &Service{Services: newMemServiceRepo()}
	created, err := svc.CreateService(context.Background(), ServiceInput{Name: "Sofa Cleaning"})
	require.NoError(t, err)
	first, err := svc.AddBlock(context.Background(), created.ID, quantityInput("Cushions", models.KeyCushionRemovable))
	require.NoError(t, err)
	_, err = svc.AddBlock(context.Background(), created.ID, quantityInput("Pillows", models.KeyPillow))
	require.NoError(t, err)

	tests := []struct {
		name string
		ids  []string
	}{
		{"wrong length", []string{first.ID}},
		{"duplicate ID", []string{first.ID, first.ID}},
		{"unknown ID", []string{first.ID, "blk-else"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ReorderBlocks(context.Background(), created.ID, tt.ids)
			var catErr *CatalogError
			require.ErrorAs(t, err, &catErr)
			assert.Equal(t, CodeBadReorder, catErr.Code)
		})
	}
}
