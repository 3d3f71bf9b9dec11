package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for carts.
// FindByUserID returns nil (no error) when the user has no cart yet;
// lazy creation is the application layer's job.
type Repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)
	FindItemByID(ctx context.Context, itemID uuid.UUID) (*CartItem, error)
	Save(ctx context.Context, cart *Cart) error
	SaveItem(ctx context.Context, item *CartItem) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	DeleteItems(ctx context.Context, cartID uuid.UUID) error
}
