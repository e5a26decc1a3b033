package service

import (
	"sync"
	"time"

	"github.com/creatok/storebot/internal/config"
	"github.com/creatok/storebot/internal/domain"
)

// TicketRegistry is the process-wide mapping from backing channel ID to live
// ticket state. It is volatile: active tickets do not survive a restart.
// All state transitions happen atomically under the registry lock, which is
// what makes racing close paths (manual button vs auto-close timer) safe
// without locking across I/O.
type TicketRegistry struct {
	mu        sync.Mutex
	byChannel map[string]*domain.Ticket
	counter   int
}

func NewTicketRegistry() *TicketRegistry {
	return &TicketRegistry{
		byChannel: make(map[string]*domain.Ticket),
		counter:   config.TicketCounterSeed,
	}
}

// NextNumber allocates the next ticket number. Numbers restart from the seed
// on process restart; the registry is volatile anyway.
func (r *TicketRegistry) NextNumber() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return r.counter
}

func (r *TicketRegistry) Register(t *domain.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byChannel[t.ChannelID] = t
}

// Remove drops the registry entry. Idempotent.
func (r *TicketRegistry) Remove(channelID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byChannel, channelID)
}

// Snapshot returns a copy of the ticket registered for the channel.
func (r *TicketRegistry) Snapshot(channelID string) (domain.Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byChannel[channelID]
	if !ok {
		return domain.Ticket{}, false
	}
	return *t, true
}

// OpenTicketFor returns a copy of the user's open ticket, if any.
func (r *TicketRegistry) OpenTicketFor(userID string) (domain.Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byChannel {
		if t.UserID == userID && t.Status == domain.TicketStatusOpen {
			return *t, true
		}
	}
	return domain.Ticket{}, false
}

// OpenCount reports how many tickets are currently open.
func (r *TicketRegistry) OpenCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.byChannel {
		if t.Status == domain.TicketStatusOpen {
			n++
		}
	}
	return n
}

// StatusIs re-reads the live status. Timer callbacks use this instead of a
// closure-captured snapshot.
func (r *TicketRegistry) StatusIs(channelID string, status domain.TicketStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byChannel[channelID]
	return ok && t.Status == status
}

// Resolve transitions open → resolved, recording the resolver.
func (r *TicketRegistry) Resolve(channelID string, actor domain.Actor, now time.Time) (domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byChannel[channelID]
	if !ok {
		return domain.Ticket{}, domain.ErrTicketNotFound
	}
	if t.Status != domain.TicketStatusOpen {
		return domain.Ticket{}, domain.ErrAlreadyResolved
	}
	t.Status = domain.TicketStatusResolved
	t.ResolvedBy = actor.Tag
	t.ResolvedAt = &now
	return *t, nil
}

// SetAutoClose attaches the pending auto-close task to a still-resolved
// ticket. It reports false when the ticket changed state (or vanished) since
// the resolve, in which case the caller must cancel the task itself.
func (r *TicketRegistry) SetAutoClose(channelID string, task domain.CancellableTask) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byChannel[channelID]
	if !ok || t.Status != domain.TicketStatusResolved {
		return false
	}
	t.AutoClose = task
	return true
}

// Close transitions to closed and detaches any pending auto-close task so the
// caller can cancel it outside the lock. Exactly one caller wins a racing
// close; the loser gets ErrTicketClosed.
func (r *TicketRegistry) Close(channelID string, actor domain.Actor, now time.Time) (domain.Ticket, domain.CancellableTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byChannel[channelID]
	if !ok {
		return domain.Ticket{}, nil, domain.ErrTicketNotFound
	}
	if t.Status == domain.TicketStatusClosed {
		return domain.Ticket{}, nil, domain.ErrTicketClosed
	}
	t.Status = domain.TicketStatusClosed
	t.ClosedBy = actor.Tag
	t.ClosedAt = &now
	task := t.AutoClose
	t.AutoClose = nil
	return *t, task, nil
}
