package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	cartdomain "github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// CheckoutService converts a cart into an order. It is the only place in
// the system where more than one aggregate changes in a single operation,
// so all writes run inside one TransactionScope.
type CheckoutService struct {
	cartRepo    cartdomain.Repository
	productRepo catalog.ProductRepository
	scope       TransactionScope
	logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	cartRepo cartdomain.Repository,
	productRepo catalog.ProductRepository,
	scope TransactionScope,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		scope:       scope,
		logger:      logger,
	}
}

// Checkout places an order from the user's current cart.
//
// Unit prices are snapshotted from the initial cart read and never re-read,
// so the customer pays the price they were shown. Stock is validated again
// inside the transaction, and the per-line conditional decrement is the
// authoritative guard against oversell. Any failure rolls the whole attempt
// back: no order, no stock change, no cart clear.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	address, err := req.ShippingAddress.ToAddress()
	if err != nil {
		return nil, err
	}

	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	lines, err := s.quoteLines(ctx, c)
	if err != nil {
		return nil, err
	}

	// Total is computed by the aggregate from the quoted lines, in exact
	// decimal arithmetic, and never recomputed after this point.
	o, err := order.NewOrder(userID, address, req.PaymentMethod, lines)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Bulk re-check before writing anything: stock may have moved
		// since the cart was quoted. The per-line decrement below remains
		// the authoritative guard; this is the cheap early exit.
		for _, line := range lines {
			product, err := repos.Products().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product.Stock < line.Quantity {
				return insufficientStock(product.ID)
			}
		}

		if err := repos.Orders().Save(ctx, o); err != nil {
			return err
		}

		// A concurrent checkout can drain stock between the re-check
		// above and here; the conditional decrement catches that and
		// aborts the transaction.
		for _, line := range lines {
			if err := repos.Products().DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		return repos.Carts().DeleteItems(ctx, c.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("items", len(o.Items)),
	)

	return ToOrderResponse(o), nil
}

// quoteLines joins the cart lines with current catalog prices. These are
// the prices the customer is charged.
func (s *CheckoutService) quoteLines(ctx context.Context, c *cartdomain.Cart) ([]order.Line, error) {
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

	lines := make([]order.Line, 0, len(c.Items))
	for i := range c.Items {
		item := &c.Items[i]
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, shared.NewDomainErrorf(shared.ErrNotFound.Code, "Product %s no longer exists", item.ProductID)
		}
		lines = append(lines, order.Line{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	return lines, nil
}

func insufficientStock(productID uuid.UUID) error {
	return shared.NewDomainErrorf(shared.ErrInsufficientStock.Code, "Insufficient stock for product %s", productID)
}
