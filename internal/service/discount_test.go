package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/creatok/storebot/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr[T any](v T) *T { return &v }

func welcomeDiscount() *domain.Discount {
	return &domain.Discount{
		Code:            "WELCOME25",
		Type:            domain.DiscountTypePercentage,
		Value:           dec("25"),
		IsActive:        true,
		UserLimit:       1,
		MinimumOrder:    dec("100"),
		MaximumDiscount: ptr(dec("50")),
		ValidFrom:       time.Now().Add(-time.Hour),
	}
}

func orderCtx(price string) OrderContext {
	return OrderContext{Region: "US", AccountType: "Aged Account", Price: dec(price)}
}

func TestValidatePercentageWithCap(t *testing.T) {
	svc := NewDiscountService(newFakeDiscountRepo(welcomeDiscount()))

	v, err := svc.Validate(context.Background(), "WELCOME25", "u1", orderCtx("300"))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !v.Valid {
		t.Fatalf("invalid: %s", v.Reason)
	}
	// 25% of 300 is 75, capped at the 50 maximum.
	if !v.Amount.Equal(dec("50")) {
		t.Errorf("Amount = %s, want 50", v.Amount)
	}
	if !v.FinalPrice.Equal(dec("250")) {
		t.Errorf("FinalPrice = %s, want 250", v.FinalPrice)
	}
}

func TestValidateLowercasesAndTrims(t *testing.T) {
	svc := NewDiscountService(newFakeDiscountRepo(welcomeDiscount()))

	v, err := svc.Validate(context.Background(), "  welcome25 ", "u1", orderCtx("200"))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !v.Valid {
		t.Fatalf("invalid: %s", v.Reason)
	}
	if !v.Amount.Equal(dec("50")) {
		t.Errorf("Amount = %s, want 50", v.Amount)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name       string
		discount   func() *domain.Discount
		code       string
		userUses   int64
		order      OrderContext
		wantReason string
	}{
		{
			name:       "unknown code",
			discount:   welcomeDiscount,
			code:       "NOPE",
			order:      orderCtx("300"),
			wantReason: "Invalid or inactive discount code",
		},
		{
			name: "inactive",
			discount: func() *domain.Discount {
				d := welcomeDiscount()
				d.IsActive = false
				return d
			},
			code:       "WELCOME25",
			order:      orderCtx("300"),
			wantReason: "Invalid or inactive discount code",
		},
		{
			name: "expired",
			discount: func() *domain.Discount {
				d := welcomeDiscount()
				d.ValidUntil = ptr(time.Now().Add(-time.Minute))
				return d
			},
			code:       "WELCOME25",
			order:      orderCtx("300"),
			wantReason: "Discount code has expired",
		},
		{
			name: "not yet valid",
			discount: func() *domain.Discount {
				d := welcomeDiscount()
				d.ValidFrom = time.Now().Add(time.Hour)
				return d
			},
			code:       "WELCOME25",
			order:      orderCtx("300"),
			wantReason: "Discount code is not yet valid",
		},
		{
			name: "usage limit reached",
			discount: func() *domain.Discount {
				d := welcomeDiscount()
				d.UsageLimit = ptr(int64(10))
				d.UsageCount = 10
				return d
			},
			code:       "WELCOME25",
			order:      orderCtx("300"),
			wantReason: "Discount code usage limit reached",
		},
		{
			name:       "below minimum order",
			discount:   welcomeDiscount,
			code:       "WELCOME25",
			order:      orderCtx("99.99"),
			wantReason: "Minimum order amount of $100.00 required",
		},
		{
			name: "wrong region",
			discount: func() *domain.Discount {
				d := welcomeDiscount()
				d.AllowedRegions = []string{"UK", "EU"}
				return d
			},
			code:       "WELCOME25",
			order:      orderCtx("300"),
			wantReason: "Discount code not valid for your region",
		},
		{
			name: "wrong account type",
			discount: func() *domain.Discount {
				d := welcomeDiscount()
				d.AllowedTypes = []string{"Fresh Account"}
				return d
			},
			code:       "WELCOME25",
			order:      orderCtx("300"),
			wantReason: "Discount code not valid for this account type",
		},
		{
			name:       "already used",
			discount:   welcomeDiscount,
			code:       "WELCOME25",
			userUses:   1,
			order:      orderCtx("300"),
			wantReason: "You have already used this discount code",
		},
		{
			name: "expired wins over usage limit",
			discount: func() *domain.Discount {
				d := welcomeDiscount()
				d.ValidUntil = ptr(time.Now().Add(-time.Minute))
				d.UsageLimit = ptr(int64(10))
				d.UsageCount = 10
				return d
			},
			code:       "WELCOME25",
			order:      orderCtx("300"),
			wantReason: "Discount code has expired",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeDiscountRepo(tt.discount())
			if tt.userUses > 0 {
				repo.userUses[usageKey("WELCOME25", "u1")] = tt.userUses
			}
			svc := NewDiscountService(repo)

			v, err := svc.Validate(context.Background(), tt.code, "u1", tt.order)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if v.Valid {
				t.Fatal("want invalid")
			}
			if v.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", v.Reason, tt.wantReason)
			}
		})
	}
}

func TestComputeDiscountAmount(t *testing.T) {
	tests := []struct {
		name  string
		d     *domain.Discount
		price string
		want  string
	}{
		{
			name:  "percentage rounds half up",
			d:     &domain.Discount{Type: domain.DiscountTypePercentage, Value: dec("10")},
			price: "33.33",
			want:  "3.33",
		},
		{
			name:  "percentage exact",
			d:     &domain.Discount{Type: domain.DiscountTypePercentage, Value: dec("25")},
			price: "200",
			want:  "50",
		},
		{
			name: "percentage capped",
			d: &domain.Discount{
				Type:            domain.DiscountTypePercentage,
				Value:           dec("50"),
				MaximumDiscount: ptr(dec("20")),
			},
			price: "100",
			want:  "20",
		},
		{
			name:  "fixed",
			d:     &domain.Discount{Type: domain.DiscountTypeFixedAmount, Value: dec("15")},
			price: "100",
			want:  "15",
		},
		{
			name:  "fixed clamped to price",
			d:     &domain.Discount{Type: domain.DiscountTypeFixedAmount, Value: dec("150")},
			price: "100",
			want:  "100",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDiscountAmount(tt.d, dec(tt.price))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ComputeDiscountAmount = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValidateDoesNotMutateUsage(t *testing.T) {
	repo := newFakeDiscountRepo(welcomeDiscount())
	svc := NewDiscountService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Validate(ctx, "WELCOME25", "u1", orderCtx("300")); err != nil {
			t.Fatalf("Validate: %v", err)
		}
	}
	d, _ := repo.GetByCode(ctx, "WELCOME25")
	if d.UsageCount != 0 {
		t.Errorf("UsageCount = %d, want 0 after dry runs", d.UsageCount)
	}
	if len(repo.recordedUsages()) != 0 {
		t.Error("dry-run validation must not log usages")
	}
}

func TestApplyRecordsUsage(t *testing.T) {
	repo := newFakeDiscountRepo(welcomeDiscount())
	svc := NewDiscountService(repo)
	ctx := context.Background()

	if err := svc.Apply(ctx, "welcome25", "u1", "buyer#1", "1725000000000", dec("50")); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	d, _ := repo.GetByCode(ctx, "WELCOME25")
	if d.UsageCount != 1 {
		t.Errorf("UsageCount = %d, want 1", d.UsageCount)
	}
	usages := repo.recordedUsages()
	if len(usages) != 1 || usages[0].OrderID != "1725000000000" {
		t.Errorf("usages = %+v, want one entry for the order", usages)
	}

	// The code is now exhausted for this user.
	v, err := svc.Validate(ctx, "WELCOME25", "u1", orderCtx("300"))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v.Valid || v.Reason != "You have already used this discount code" {
		t.Errorf("post-apply validate = %+v, want already-used rejection", v)
	}
}

func TestCreateDiscount(t *testing.T) {
	repo := newFakeDiscountRepo()
	svc := NewDiscountService(repo)

	d, err := svc.Create(context.Background(), CreateDiscountInput{
		Code:      "summer10",
		Type:      domain.DiscountTypePercentage,
		Value:     dec("10"),
		CreatedBy: "staff#1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Code != "SUMMER10" {
		t.Errorf("Code = %q, want uppercased", d.Code)
	}
	if !d.IsActive {
		t.Error("new discounts start active")
	}
	if d.UserLimit != 1 {
		t.Errorf("UserLimit = %d, want default 1", d.UserLimit)
	}
}

func TestCreateDiscountRejectsBadInput(t *testing.T) {
	svc := NewDiscountService(newFakeDiscountRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateDiscountInput{Code: "X", Type: "bogus", Value: dec("10")}); err == nil {
		t.Error("want error for unknown type")
	}
	if _, err := svc.Create(ctx, CreateDiscountInput{Code: "X", Type: domain.DiscountTypePercentage, Value: dec("0")}); err == nil {
		t.Error("want error for zero value")
	}
}
