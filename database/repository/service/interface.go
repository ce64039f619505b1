package serviceRepo

import (
	"context"

	"tidywave/models"
)

// ServiceRepository abstracts persistence of catalog services and their
// embedded pricing blocks. Services referenced by orders are never deleted;
// unpublishing removes them from the public catalog instead.
type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	Update(ctx context.Context, svc *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	GetAll(ctx context.Context, publishedOnly bool) ([]models.Service, error)
}
