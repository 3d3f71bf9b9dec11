package cart

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Cart is a user's shopping cart. Each user has at most one cart, created
// lazily on first access. The cart is the aggregate root; items are only
// reachable through it.
type Cart struct {
	shared.BaseEntity
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// CartItem is a single product line in a cart. Quantity is always positive;
// a line that would drop to zero is removed instead.
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	Quantity  int       `gorm:"not null;check:quantity > 0"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCart creates an empty cart for the given user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &Cart{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Items:      []CartItem{},
	}, nil
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem returns the line for the given product, or nil if absent
func (c *Cart) FindItem(productID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem increments the quantity of an existing line or appends a new one.
// It returns the affected line.
func (c *Cart) AddItem(productID uuid.UUID, quantity int) (*CartItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	if item := c.FindItem(productID); item != nil {
		item.Quantity += quantity
		item.Touch()
		c.Touch()
		return item, nil
	}

	c.Items = append(c.Items, CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	c.Touch()

	return &c.Items[len(c.Items)-1], nil
}

// SetItemQuantity overwrites the quantity of an existing line. Unlike
// AddItem the quantity is absolute, not a delta.
func (c *Cart) SetItemQuantity(productID uuid.UUID, quantity int) (*CartItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	item := c.FindItem(productID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Item not found in cart")
	}

	item.Quantity = quantity
	item.Touch()
	c.Touch()

	return item, nil
}

// RemoveItem deletes the line for the given product
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Item not found in cart")
}

// Clear removes all items
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.Touch()
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return nil
}
