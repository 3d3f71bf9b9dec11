package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines the persistence contract for orders.
// Reads always load the order with its items.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, order *Order) error
}
