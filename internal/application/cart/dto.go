package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
)

// AddItemRequest is the input for adding a product to the cart.
// Quantity is a delta: it is added to any existing line for the product.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// UpdateItemRequest is the input for overwriting a cart line's quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// ItemResponse is the API representation of a cart line, with the
// referenced product's current details joined in
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse is the API representation of a cart
type CartResponse struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Items     []ItemResponse  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToCartResponse joins a cart with the current product catalog details.
// Lines whose product has vanished from the catalog are shown without
// name or price rather than dropped.
func ToCartResponse(c *cart.Cart, products map[uuid.UUID]catalog.Product) *CartResponse {
	resp := &CartResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     make([]ItemResponse, 0, len(c.Items)),
		Total:     decimal.Zero,
		UpdatedAt: c.UpdatedAt,
	}

	for i := range c.Items {
		item := &c.Items[i]
		line := ItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Subtotal:  decimal.Zero,
		}
		if p, ok := products[item.ProductID]; ok {
			line.ProductName = p.Name
			line.UnitPrice = p.Price
			line.Subtotal = p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		}
		resp.Total = resp.Total.Add(line.Subtotal)
		resp.Items = append(resp.Items, line)
	}
	resp.Total = resp.Total.Round(2)

	return resp
}
