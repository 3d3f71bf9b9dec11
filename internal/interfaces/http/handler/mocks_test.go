package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// asUser injects JWT context keys the way the auth middleware would
func asUser(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Set(middleware.JWTRoleKey, role)
		c.Next()
	}
}

// mockProductRepository is an in-memory catalog.ProductRepository

type mockProductRepository struct {
	products  map[uuid.UUID]*catalog.Product
	returnErr error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*catalog.Product)}
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	if p, ok := m.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	var result []catalog.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	var result []catalog.Product
	for _, p := range m.products {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(m.products)), m.returnErr
}

func (m *mockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	if _, ok := m.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) CheckAvailable(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	if m.returnErr != nil {
		return false, m.returnErr
	}
	p, ok := m.products[id]
	if !ok {
		return false, nil
	}
	return quantity > 0 && p.Stock >= quantity, nil
}

func (m *mockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	p, ok := m.products[id]
	if !ok {
		return shared.ErrNotFound
	}
	if p.Stock < quantity {
		return shared.ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

func (m *mockProductRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	p, ok := m.products[id]
	if !ok {
		return shared.ErrNotFound
	}
	p.Stock += quantity
	return nil
}

// mockCartRepository is an in-memory cart.Repository

type mockCartRepository struct {
	carts     map[uuid.UUID]*cart.Cart
	returnErr error
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{carts: make(map[uuid.UUID]*cart.Cart)}
}

func (m *mockCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	for _, c := range m.carts {
		if c.UserID == userID {
			copied := *c
			copied.Items = append([]cart.CartItem(nil), c.Items...)
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockCartRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*cart.CartItem, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	for _, c := range m.carts {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				copied := c.Items[i]
				return &copied, nil
			}
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	copied := *c
	copied.Items = append([]cart.CartItem(nil), c.Items...)
	m.carts[c.ID] = &copied
	return nil
}

func (m *mockCartRepository) SaveItem(ctx context.Context, item *cart.CartItem) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	c, ok := m.carts[item.CartID]
	if !ok {
		return shared.ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i] = *item
			return nil
		}
	}
	c.Items = append(c.Items, *item)
	return nil
}

func (m *mockCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	for _, c := range m.carts {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return nil
			}
		}
	}
	return shared.ErrNotFound
}

func (m *mockCartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	if c, ok := m.carts[cartID]; ok {
		c.Items = nil
	}
	return nil
}

// mockOrderRepository is an in-memory order.Repository

type mockOrderRepository struct {
	orders    map[uuid.UUID]*order.Order
	returnErr error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*order.Order)}
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	if o, ok := m.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	var result []order.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockOrderRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.returnErr != nil {
		return 0, m.returnErr
	}
	var count int64
	for _, o := range m.orders {
		if o.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	copied := *o
	m.orders[o.ID] = &copied
	return nil
}
