package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/creatok/storebot/internal/config"
	"github.com/creatok/storebot/internal/domain"
	"github.com/creatok/storebot/internal/repository"
)

// OrderContext is the slice of an order a discount is validated against.
type OrderContext struct {
	Region      string
	AccountType string
	Price       decimal.Decimal
}

// ValidationResult is the outcome of a discount check. An invalid code is
// not an error: Reason carries the first violated rule, human-readable.
type ValidationResult struct {
	Valid      bool
	Reason     string
	Discount   *domain.Discount
	Amount     decimal.Decimal
	FinalPrice decimal.Decimal
}

// DiscountService validates and applies discount codes. Validate is a pure
// check; Apply is the separate mutating step invoked only once an order has
// been durably recorded, so dry-run validations never touch usage state.
type DiscountService struct {
	discounts repository.DiscountRepository
}

func NewDiscountService(discounts repository.DiscountRepository) *DiscountService {
	return &DiscountService{discounts: discounts}
}

func invalid(reason string) *ValidationResult {
	return &ValidationResult{Valid: false, Reason: reason, Amount: decimal.Zero}
}

// Validate runs the eligibility checks in their documented order; the first
// failing check wins and sets the reason. It never mutates usage state.
func (s *DiscountService) Validate(ctx context.Context, code, userID string, order OrderContext) (*ValidationResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	d, err := s.discounts.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrDiscountNotFound) {
			return invalid("Invalid or inactive discount code"), nil
		}
		return nil, fmt.Errorf("get discount: %w", err)
	}
	if !d.IsActive {
		return invalid("Invalid or inactive discount code"), nil
	}

	now := time.Now()
	if d.ValidUntil != nil && now.After(*d.ValidUntil) {
		return invalid("Discount code has expired"), nil
	}
	if now.Before(d.ValidFrom) {
		return invalid("Discount code is not yet valid"), nil
	}
	if d.UsageLimit != nil && d.UsageCount >= *d.UsageLimit {
		return invalid("Discount code usage limit reached"), nil
	}
	if order.Price.LessThan(d.MinimumOrder) {
		return invalid(fmt.Sprintf("Minimum order amount of $%s required", d.MinimumOrder.StringFixed(2))), nil
	}
	if !d.RegionAllowed(order.Region) {
		return invalid("Discount code not valid for your region"), nil
	}
	if !d.TypeAllowed(order.AccountType) {
		return invalid("Discount code not valid for this account type"), nil
	}

	uses, err := s.discounts.CountUsagesByUser(ctx, code, userID)
	if err != nil {
		return nil, fmt.Errorf("count usages: %w", err)
	}
	if uses >= d.UserLimit {
		return invalid("You have already used this discount code"), nil
	}

	amount := ComputeDiscountAmount(d, order.Price)
	return &ValidationResult{
		Valid:      true,
		Discount:   d,
		Amount:     amount,
		FinalPrice: order.Price.Sub(amount),
	}, nil
}

// ComputeDiscountAmount calculates the monetary reduction for a price.
// Percentage amounts are capped at MaximumDiscount when set; fixed amounts
// are capped at the price so the final price never goes negative. The result
// is rounded half-up to 2 decimal places.
func ComputeDiscountAmount(d *domain.Discount, price decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch d.Type {
	case domain.DiscountTypePercentage:
		amount = price.Mul(d.Value).Div(decimal.NewFromInt(100))
		if d.MaximumDiscount != nil && amount.GreaterThan(*d.MaximumDiscount) {
			amount = *d.MaximumDiscount
		}
	case domain.DiscountTypeFixedAmount:
		amount = d.Value
		if amount.GreaterThan(price) {
			amount = price
		}
	}
	return amount.Round(2)
}

// Apply records one use of the code: bumps the counter and appends the
// usage-log entry. Call only after the order exists in the store.
func (s *DiscountService) Apply(ctx context.Context, code, userID, userTag, orderID string, amount decimal.Decimal) error {
	usage := &domain.DiscountUsage{
		Code:    strings.ToUpper(strings.TrimSpace(code)),
		UserID:  userID,
		UserTag: userTag,
		OrderID: orderID,
		Amount:  amount,
	}
	if err := s.discounts.RecordUsage(ctx, usage); err != nil {
		return fmt.Errorf("record discount usage: %w", err)
	}
	slog.Info("discount applied", "code", usage.Code, "user", userTag, "order", orderID, "amount", amount)
	return nil
}

// CreateDiscountInput carries the staff-supplied fields for a new code.
type CreateDiscountInput struct {
	Code            string
	Type            domain.DiscountType
	Value           decimal.Decimal
	Description     string
	UsageLimit      *int64
	UserLimit       int64
	MinimumOrder    decimal.Decimal
	MaximumDiscount *decimal.Decimal
	ValidUntil      *time.Time
	AllowedRegions  []string
	AllowedTypes    []string
	CreatedBy       string
}

func (s *DiscountService) Create(ctx context.Context, in CreateDiscountInput) (*domain.Discount, error) {
	if in.Type != domain.DiscountTypePercentage && in.Type != domain.DiscountTypeFixedAmount {
		return nil, fmt.Errorf("unknown discount type %q", in.Type)
	}
	if in.Value.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("discount value must be positive")
	}
	if in.UserLimit <= 0 {
		in.UserLimit = config.DefaultUserDiscountLimit
	}

	d := &domain.Discount{
		Code:            strings.ToUpper(strings.TrimSpace(in.Code)),
		Type:            in.Type,
		Value:           in.Value,
		Description:     in.Description,
		IsActive:        true,
		UsageLimit:      in.UsageLimit,
		UserLimit:       in.UserLimit,
		MinimumOrder:    in.MinimumOrder,
		MaximumDiscount: in.MaximumDiscount,
		ValidFrom:       time.Now(),
		ValidUntil:      in.ValidUntil,
		AllowedRegions:  in.AllowedRegions,
		AllowedTypes:    in.AllowedTypes,
		CreatedBy:       in.CreatedBy,
	}
	if err := s.discounts.Insert(ctx, d); err != nil {
		return nil, fmt.Errorf("create discount: %w", err)
	}
	slog.Info("discount created", "code", d.Code, "type", d.Type, "by", d.CreatedBy)
	return d, nil
}

func (s *DiscountService) List(ctx context.Context, activeOnly bool) ([]domain.Discount, error) {
	return s.discounts.List(ctx, activeOnly)
}

func (s *DiscountService) SetActive(ctx context.Context, code string, active bool) error {
	return s.discounts.SetActive(ctx, strings.ToUpper(strings.TrimSpace(code)), active)
}

func (s *DiscountService) Delete(ctx context.Context, code string) error {
	return s.discounts.Delete(ctx, strings.ToUpper(strings.TrimSpace(code)))
}
