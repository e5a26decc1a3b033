package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsTerminal reports whether the status permits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	OrderID         string
	UserID          string
	UserTag         string
	Region          string
	AccountType     string
	OriginalPrice   decimal.Decimal
	Price           decimal.Decimal
	DiscountApplied bool
	DiscountCode    string
	DiscountType    DiscountType
	DiscountValue   decimal.Decimal
	DiscountAmount  decimal.Decimal
	PaymentMethod   string
	AdditionalNotes string
	Status          OrderStatus
	ChannelID       string
	HandledBy       string
	StaffNotes      string

	AccountDelivered bool
	DeliveryDate     *time.Time
	CompletedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
