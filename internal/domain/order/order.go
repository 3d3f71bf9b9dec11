package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Status is the fulfillment state of an order
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid returns true if the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the payment state of an order, tracked independently
// of the fulfillment status
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// IsValid returns true if the payment status is one of the known values
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Order is a placed order. It is created only by checkout, never directly.
// Line items snapshot the product price at purchase time, so later catalog
// changes leave placed orders untouched.
type Order struct {
	shared.BaseEntity
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status          Status              `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaymentStatus   PaymentStatus       `gorm:"type:varchar(20);not null;default:'PENDING';column:payment_status"`
	PaymentMethod   string              `gorm:"type:varchar(50);not null;column:payment_method"`
	Total           decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	ShippingAddress valueobject.Address `gorm:"type:jsonb;column:shipping_address"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a single line of a placed order. UnitPrice is the price
// captured at checkout time.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null;check:quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;column:unit_price"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Line describes one product line going into a new order
type Line struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// NewOrder creates a pending order from the given lines. The total is
// computed from the lines, never taken from the caller.
func NewOrder(userID uuid.UUID, address valueobject.Address, paymentMethod string, lines []Line) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.ErrEmptyCart
	}

	o := &Order{
		BaseEntity:      shared.NewBaseEntity(),
		UserID:          userID,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		PaymentMethod:   paymentMethod,
		ShippingAddress: address,
		Total:           decimal.Zero,
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}

		o.Items = append(o.Items, OrderItem{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    o.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
		o.Total = o.Total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	o.Total = o.Total.Round(2)

	return o, nil
}

// SetStatus moves the order to the given fulfillment status. Any known
// status may follow any other; operators fix mis-shipped orders by setting
// the status back, so no transition graph is enforced here.
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(status))
	}

	o.Status = status
	o.Touch()

	return nil
}

// SetPaymentStatus moves the order to the given payment status
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown payment status: "+string(status))
	}

	o.PaymentStatus = status
	o.Touch()

	return nil
}

// TotalMoney returns the order total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Total)
}

// BelongsTo returns true if the order was placed by the given user
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID == userID
}
