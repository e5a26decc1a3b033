package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is created lazily on first contact and updated on every tracked
// interaction, purchase, or region change.
type User struct {
	ID               string
	Tag              string
	Region           string
	Interactions     int64
	Purchases        int64
	TotalSpent       decimal.Decimal
	JoinedAt         time.Time
	LastActive       time.Time
	LastPurchaseDate *time.Time
}
