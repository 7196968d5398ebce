package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/models"
	"github.com/agrox/fieldops/internal/validation"
)

type OrderRepository interface {
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.OrderRequest, error)
	Create(ctx context.Context, owner uuid.UUID, requestType, details string) (*models.OrderRequest, error)
}

type OrderService struct {
	repo OrderRepository
}

func NewOrderService(repo OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// Submit stores a request; an empty type means a day off.
func (s *OrderService) Submit(ctx context.Context, owner uuid.UUID, requestType, details string) (*models.OrderRequest, error) {
	requestType, err := validation.OneOf(requestType, models.OrderTypeDayOff, i18n.KeyOrderTypeInvalid, models.OrderTypes...)
	if err != nil {
		return nil, err
	}
	details, err = validation.Text(details, i18n.KeyOrderDetailsRequired, validation.MaxDescriptionLength)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, owner, requestType, details)
}

// List returns the owner's requests, newest first.
func (s *OrderService) List(ctx context.Context, owner uuid.UUID) (Listing[models.OrderRequest], error) {
	items, err := s.repo.ListByOwner(ctx, owner)
	return newListing(items, err)
}
