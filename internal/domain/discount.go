package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
	DiscountTypeNone        DiscountType = "none"
)

type Discount struct {
	Code            string
	Type            DiscountType
	Value           decimal.Decimal
	Description     string
	IsActive        bool
	UsageLimit      *int64
	UsageCount      int64
	UserLimit       int64
	MinimumOrder    decimal.Decimal
	MaximumDiscount *decimal.Decimal
	ValidFrom       time.Time
	ValidUntil      *time.Time
	AllowedRegions  []string
	AllowedTypes    []string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RegionAllowed reports whether the code may be used for orders in region.
// An empty allow-list means unrestricted.
func (d *Discount) RegionAllowed(region string) bool {
	if len(d.AllowedRegions) == 0 {
		return true
	}
	for _, r := range d.AllowedRegions {
		if r == region {
			return true
		}
	}
	return false
}

// TypeAllowed reports whether the code may be used for the account type.
func (d *Discount) TypeAllowed(accountType string) bool {
	if len(d.AllowedTypes) == 0 {
		return true
	}
	for _, t := range d.AllowedTypes {
		if t == accountType {
			return true
		}
	}
	return false
}

// DiscountUsage is an append-only usage-log entry, recorded only after the
// owning order has been persisted.
type DiscountUsage struct {
	ID      int64
	Code    string
	UserID  string
	UserTag string
	OrderID string
	Amount  decimal.Decimal
	UsedAt  time.Time
}
