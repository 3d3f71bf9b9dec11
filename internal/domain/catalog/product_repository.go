package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines the persistence contract for products.
//
// The stock ledger operations (CheckAvailable, DecrementStock,
// IncrementStock) are the only way product stock may be mutated.
// DecrementStock must be conditional: two concurrent decrements that
// would jointly overdraw stock must not both succeed.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CheckAvailable reports whether at least quantity units are in stock.
	// The answer is advisory: stock can change immediately after the read.
	CheckAvailable(ctx context.Context, id uuid.UUID, quantity int) (bool, error)

	// DecrementStock atomically subtracts quantity from the product's stock.
	// Returns shared.ErrInsufficientStock if fewer than quantity units
	// remain at the instant of the write, and shared.ErrNotFound if the
	// product does not exist.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// IncrementStock atomically adds quantity to the product's stock (restock).
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}
