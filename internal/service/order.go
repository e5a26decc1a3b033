package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/creatok/storebot/internal/domain"
	"github.com/creatok/storebot/internal/repository"
)

// OrderChannels is the channel provisioning the order lifecycle consumes.
type OrderChannels interface {
	CreateOrderChannel(ctx context.Context, orderID, userID string) (string, error)
	Rename(ctx context.Context, channelID, name string) error
	HideFromEveryone(ctx context.Context, channelID string) error
}

// OrderNotifier presents order lifecycle events. Channel and DM delivery is
// best-effort; a notification failure never affects the order state.
type OrderNotifier interface {
	OrderChannelIntro(ctx context.Context, o *domain.Order) error
	StaffNewOrder(ctx context.Context, o *domain.Order)
	BuyerCancelled(ctx context.Context, o *domain.Order, actorTag string)
	BuyerDelivered(ctx context.Context, o *domain.Order)
	AuditOrder(ctx context.Context, action string, o *domain.Order, actor domain.Actor)
}

// OrderService creates and transitions purchase orders. Orders are
// append-only history; cancelled and completed are terminal.
type OrderService struct {
	orders    repository.OrderRepository
	users     repository.UserRepository
	discounts *DiscountService
	channels  OrderChannels
	notifier  OrderNotifier
}

func NewOrderService(orders repository.OrderRepository, users repository.UserRepository, discounts *DiscountService, channels OrderChannels, notifier OrderNotifier) *OrderService {
	return &OrderService{
		orders:    orders,
		users:     users,
		discounts: discounts,
		channels:  channels,
		notifier:  notifier,
	}
}

// SubmitOrderInput is an accepted purchase-form submission.
type SubmitOrderInput struct {
	Buyer         domain.Actor
	Region        string
	AccountType   string
	Price         decimal.Decimal
	PaymentMethod string
	DiscountCode  string
	Notes         string
}

// SubmitOrderResult carries the recorded order plus, when a supplied code was
// rejected, the reason to surface to the buyer.
type SubmitOrderResult struct {
	Order          *domain.Order
	DiscountReason string
}

// Submit records a purchase order. An invalid discount code is non-fatal:
// the order proceeds at full price and the rejection reason is returned.
// Channel provisioning is also non-fatal; staff follow up manually when it
// fails.
func (s *OrderService) Submit(ctx context.Context, in SubmitOrderInput) (*SubmitOrderResult, error) {
	orderID := newOrderID()

	if _, err := s.users.GetOrCreate(ctx, in.Buyer.ID, in.Buyer.Tag); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	order := &domain.Order{
		OrderID:         orderID,
		UserID:          in.Buyer.ID,
		UserTag:         in.Buyer.Tag,
		Region:          in.Region,
		AccountType:     in.AccountType,
		OriginalPrice:   in.Price,
		Price:           in.Price,
		DiscountCode:    "None",
		DiscountType:    domain.DiscountTypeNone,
		PaymentMethod:   in.PaymentMethod,
		AdditionalNotes: notesOrNone(in.Notes),
		Status:          domain.OrderStatusPending,
	}

	result := &SubmitOrderResult{Order: order}
	var validation *ValidationResult
	if in.DiscountCode != "" {
		v, err := s.discounts.Validate(ctx, in.DiscountCode, in.Buyer.ID, OrderContext{
			Region:      in.Region,
			AccountType: in.AccountType,
			Price:       in.Price,
		})
		switch {
		case err != nil:
			slog.Error("discount validation errored", "code", in.DiscountCode, "order", orderID, "error", err)
			result.DiscountReason = "Discount code could not be verified"
		case v.Valid:
			validation = v
			order.DiscountApplied = true
			order.DiscountCode = v.Discount.Code
			order.DiscountType = v.Discount.Type
			order.DiscountValue = v.Discount.Value
			order.DiscountAmount = v.Amount
			order.Price = v.FinalPrice
		default:
			result.DiscountReason = v.Reason
		}
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if err := s.users.RecordPurchase(ctx, in.Buyer.ID, order.Price); err != nil {
		slog.Warn("could not update buyer purchase stats", "user", in.Buyer.ID, "error", err)
	}

	// Usage state mutates only after the order exists in the store.
	if validation != nil {
		if err := s.discounts.Apply(ctx, order.DiscountCode, in.Buyer.ID, in.Buyer.Tag, orderID, order.DiscountAmount); err != nil {
			slog.Error("could not record discount usage", "code", order.DiscountCode, "order", orderID, "error", err)
		}
	}

	channelID, err := s.channels.CreateOrderChannel(ctx, orderID, in.Buyer.ID)
	if err != nil {
		slog.Warn("order channel creation failed, staff to follow up", "order", orderID, "error", err)
	} else {
		order.ChannelID = channelID
		if _, err := s.orders.UpdateStatus(ctx, orderID, domain.OrderStatusProcessing, repository.OrderStatusPatch{ChannelID: &channelID}); err != nil {
			slog.Error("could not link order channel", "order", orderID, "error", err)
		} else {
			order.Status = domain.OrderStatusProcessing
		}
		if err := s.notifier.OrderChannelIntro(ctx, order); err != nil {
			slog.Warn("order channel intro failed", "order", orderID, "error", err)
		}
	}

	s.notifier.StaffNewOrder(ctx, order)
	s.notifier.AuditOrder(ctx, "submitted", order, in.Buyer)

	slog.Info("order submitted",
		"order", orderID,
		"user", in.Buyer.Tag,
		"product", order.AccountType+" "+order.Region,
		"original", order.OriginalPrice,
		"final", order.Price,
		"discount", order.DiscountCode,
	)
	return result, nil
}

// UpdateStatus transitions an order. Completed and cancelled are terminal:
// further updates are rejected with ErrTerminalState and nothing mutates.
// The store commit happens first; channel renames, visibility changes, and
// buyer notifications are best-effort afterwards and never roll it back.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, actor domain.Actor, staffNotes string) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown order status %q", status)
	}

	current, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current.Status.IsTerminal() {
		return nil, domain.ErrTerminalState
	}

	patch := repository.OrderStatusPatch{HandledBy: &actor.Tag}
	if staffNotes != "" {
		patch.StaffNotes = &staffNotes
	}
	order, err := s.orders.UpdateStatus(ctx, orderID, status, patch)
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.OrderStatusCompleted:
		if order.ChannelID != "" {
			if err := s.channels.Rename(ctx, order.ChannelID, "completed-"+orderID); err != nil {
				slog.Warn("could not rename completed order channel", "order", orderID, "error", err)
			}
		}
		s.notifier.BuyerDelivered(ctx, order)
	case domain.OrderStatusCancelled:
		if order.ChannelID != "" {
			if err := s.channels.Rename(ctx, order.ChannelID, "cancelled-"+orderID); err != nil {
				slog.Warn("could not rename cancelled order channel", "order", orderID, "error", err)
			}
			if err := s.channels.HideFromEveryone(ctx, order.ChannelID); err != nil {
				slog.Warn("could not hide cancelled order channel", "order", orderID, "error", err)
			}
		}
		s.notifier.BuyerCancelled(ctx, order, actor.Tag)
	}

	s.notifier.AuditOrder(ctx, string(status), order, actor)
	slog.Info("order status updated", "order", orderID, "status", status, "by", actor.Tag)
	return order, nil
}

// Cancel is the cancel-button path: UpdateStatus(cancelled) for non-terminal
// orders.
func (s *OrderService) Cancel(ctx context.Context, orderID string, actor domain.Actor) (*domain.Order, error) {
	return s.UpdateStatus(ctx, orderID, domain.OrderStatusCancelled, actor, "")
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.Get(ctx, orderID)
}

func (s *OrderService) ListPending(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListPending(ctx)
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// newOrderID derives an order ID from the submission time, like the order
// reference printed on buyer receipts.
func newOrderID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func notesOrNone(notes string) string {
	if notes == "" {
		return "None"
	}
	return notes
}
