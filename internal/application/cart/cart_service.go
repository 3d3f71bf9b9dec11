package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartService handles cart mutations for a single user.
//
// Stock checks here are advisory: they cap what a cart line can hold at
// mutation time, but checkout re-validates against live stock. The one
// deliberate oddity is AddItem's compensating clamp, kept because callers
// rely on seeing the clamped line after a failed add.
type CartService struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.Repository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart, creating an empty one on first access
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// AddItem adds quantity units of a product to the user's cart, creating the
// cart and the line as needed. If a line for the product already exists its
// quantity is incremented.
//
// When the resulting line quantity exceeds the product's current stock, the
// line is clamped down to exactly the stock level (never below what the line
// held before this call) and an insufficient stock error is returned. The
// clamp is persisted: it is a compensating write, not a rollback.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if !product.HasStock(req.Quantity) {
		return nil, insufficientStock(product.ID)
	}

	c, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	previous := 0
	if line := c.FindItem(req.ProductID); line != nil {
		previous = line.Quantity
	}

	item, err := c.AddItem(req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}

	// Re-read stock after the upsert; a concurrent mutation or an
	// accumulated line can push the quantity over what is available.
	fresh, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if item.Quantity > fresh.Stock {
		clamped := fresh.Stock
		if clamped < previous {
			clamped = previous
		}
		if clamped <= 0 {
			if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
				return nil, err
			}
			_ = c.RemoveItem(req.ProductID)
		} else {
			item.Quantity = clamped
			if err := s.cartRepo.SaveItem(ctx, item); err != nil {
				return nil, err
			}
		}
		return nil, insufficientStock(fresh.ID)
	}

	return s.toResponse(ctx, c)
}

// UpdateItem overwrites the quantity of a cart line. The line must belong to
// the caller's cart; a foreign or unknown item id reports not found so the
// existence of other users' lines is never leaked.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	c, item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	available, err := s.productRepo.CheckAvailable(ctx, item.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, insufficientStock(item.ProductID)
	}

	if _, err := c.SetItemQuantity(item.ProductID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, c)
}

// RemoveItem deletes a cart line, ownership-checked like UpdateItem
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error) {
	c, item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
		return nil, err
	}
	_ = c.RemoveItem(item.ProductID)

	return s.toResponse(ctx, c)
}

// Clear deletes all lines from the user's cart. A missing cart is a no-op.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return nil
	}
	return s.cartRepo.DeleteItems(ctx, c.ID)
}

func (s *CartService) getOrCreateCart(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	c, err = cart.NewCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// findOwnedItem locates a cart line through the caller's cart, so a line id
// belonging to another user resolves to not found
func (s *CartService) findOwnedItem(ctx context.Context, userID, itemID uuid.UUID) (*cart.Cart, *cart.CartItem, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if c == nil {
		return nil, nil, shared.NewDomainError("NOT_FOUND", "Item not found in cart")
	}

	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return c, &c.Items[i], nil
		}
	}
	return nil, nil, shared.NewDomainError("NOT_FOUND", "Item not found in cart")
}

func (s *CartService) toResponse(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	if len(c.Items) == 0 {
		return ToCartResponse(c, nil), nil
	}

	ids := make([]uuid.UUID, 0, len(c.Items))
	for i := range c.Items {
		ids = append(ids, c.Items[i].ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return ToCartResponse(c, byID), nil
}

func insufficientStock(productID uuid.UUID) error {
	return shared.NewDomainErrorf(shared.ErrInsufficientStock.Code, "Insufficient stock for product %s", productID)
}
