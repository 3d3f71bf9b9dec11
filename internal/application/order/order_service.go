package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderService handles reads and status updates on placed orders
type OrderService struct {
	orderRepo order.Repository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// FindAllForUser returns a page of the user's own orders
func (s *OrderService) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToOrderResponses(orders), total, filter.Page, filter.PageSize)
	return &page, nil
}

// FindOne returns a single order. Non-admin callers only see their own
// orders; an order belonging to someone else reports not found rather than
// forbidden, so order ids cannot be probed for existence.
func (s *OrderService) FindOne(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && !o.BelongsTo(userID) {
		return nil, shared.NewDomainError(shared.ErrNotFound.Code, "Order not found")
	}

	return ToOrderResponse(o), nil
}

// UpdateStatus moves an order to the given fulfillment status. Any known
// status value is accepted from any current status.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.SetStatus(order.Status(req.Status)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	return ToOrderResponse(o), nil
}
