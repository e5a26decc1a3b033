package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry shown in the purchase flow's account picker.
type Product struct {
	ID        string
	Region    string
	Label     string
	Price     decimal.Decimal
	Followers string
	SortOrder int64
	Active    bool
	CreatedAt time.Time
}
