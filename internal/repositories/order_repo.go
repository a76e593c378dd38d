package repositories

import (
	"context"

	"storefront/internal/models"
)

// OrderFilter narrows an order listing.
type OrderFilter struct {
	UserID string              // empty means every user
	Status *models.OrderStatus // nil means every status
	Skip   int
	Limit  int
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create writes the header and all items in one transaction.
	Create(ctx context.Context, order *models.Order) error
	OrderNumberExists(ctx context.Context, number string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	Update(ctx context.Context, order *models.Order) error
	Statistics(ctx context.Context) (*models.OrderStatistics, error)
}
