package domain

import "time"

type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusResolved TicketStatus = "resolved"
	TicketStatusClosed   TicketStatus = "closed"
)

type TicketCategory string

const (
	TicketCategoryGeneral   TicketCategory = "general"
	TicketCategoryPurchase  TicketCategory = "purchase"
	TicketCategoryTechnical TicketCategory = "technical"
)

// Ticket is the in-process record behind a private support channel. It lives
// in the ticket registry for exactly as long as the channel does.
type Ticket struct {
	Number     int
	UserID     string
	ChannelID  string
	CreatedBy  string
	Category   TicketCategory
	Status     TicketStatus
	CreatedAt  time.Time
	ResolvedBy string
	ResolvedAt *time.Time
	ClosedBy   string
	ClosedAt   *time.Time

	// AutoClose holds the pending auto-close task scheduled on resolve,
	// nil otherwise. Cancelled by a manual close.
	AutoClose CancellableTask
}

// CancellableTask is a deferred side effect that can be cancelled exactly once.
// Cancel reports whether the task was still pending.
type CancellableTask interface {
	Cancel() bool
}

// IsTerminal reports whether no further transitions are allowed.
func (t *Ticket) IsTerminal() bool {
	return t.Status == TicketStatusClosed
}
