package config

import "time"

const (
	// Ticket lifecycle
	TicketAutoCloseDelay     = 5 * time.Minute
	TicketChannelDeleteDelay = 10 * time.Second
	TicketCounterSeed        = 1000

	// Discount defaults
	DefaultUserDiscountLimit = 1

	// Rate limits (interactions per minute per user)
	RateLimitPerMinute = 20

	// Outbound call timeout for fire-and-forget notifications
	NotifyTimeout = 10 * time.Second

	// Discord embed limits
	MaxEmbedDescriptionLen = 4096
	MaxFieldValueLen       = 1024
)

// Regions sellable through the purchase flow.
var Regions = []string{"US", "UK", "EU", "Non-TTS"}

// TicketCategories accepted on the create-ticket buttons.
var TicketCategories = map[string]string{
	"general":   "🆘 General Support",
	"purchase":  "🛒 Purchase Support",
	"technical": "🔧 Technical Support",
}
