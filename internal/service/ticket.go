package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/creatok/storebot/internal/config"
	"github.com/creatok/storebot/internal/domain"
	"github.com/creatok/storebot/internal/scheduler"
)

// TicketChannels is the slice of channel provisioning the ticket lifecycle
// needs. Failures are NotFound/Forbidden-mapped domain errors.
type TicketChannels interface {
	CreateTicketChannel(ctx context.Context, number int, userID string) (string, error)
	Rename(ctx context.Context, channelID, name string) error
	Delete(ctx context.Context, channelID string) error
}

// TicketNotifier presents ticket lifecycle events to users and to the
// audit/log channel. Audit delivery is fire-and-forget.
type TicketNotifier interface {
	Welcome(ctx context.Context, t *domain.Ticket) error
	ClosureSummary(ctx context.Context, t *domain.Ticket, actor domain.Actor, auto bool) error
	AuditTicket(ctx context.Context, action string, t *domain.Ticket, actor domain.Actor, auto bool)
}

// TicketService drives the ticket state machine:
// open → resolved → closed (auto-timer or manual), or open → closed directly.
type TicketService struct {
	reg      *TicketRegistry
	channels TicketChannels
	notifier TicketNotifier
	sched    scheduler.Scheduler
}

func NewTicketService(reg *TicketRegistry, channels TicketChannels, notifier TicketNotifier, sched scheduler.Scheduler) *TicketService {
	return &TicketService{reg: reg, channels: channels, notifier: notifier, sched: sched}
}

// Ticket returns a copy of the ticket backing the channel, if one exists.
func (s *TicketService) Ticket(channelID string) (domain.Ticket, bool) {
	return s.reg.Snapshot(channelID)
}

// OpenCount reports currently open tickets.
func (s *TicketService) OpenCount() int {
	return s.reg.OpenCount()
}

// Create opens a ticket for the requester: provisions the private channel,
// registers the ticket, posts the welcome message with the resolve/close
// controls. A requester with an existing open ticket gets ErrDuplicateTicket
// along with that ticket so the caller can point at its channel.
func (s *TicketService) Create(ctx context.Context, requester domain.Actor, category domain.TicketCategory) (*domain.Ticket, error) {
	if existing, ok := s.reg.OpenTicketFor(requester.ID); ok {
		return &existing, domain.ErrDuplicateTicket
	}

	number := s.reg.NextNumber()
	channelID, err := s.channels.CreateTicketChannel(ctx, number, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("create ticket channel: %w", err)
	}

	t := &domain.Ticket{
		Number:    number,
		UserID:    requester.ID,
		ChannelID: channelID,
		CreatedBy: requester.Tag,
		Category:  category,
		Status:    domain.TicketStatusOpen,
		CreatedAt: time.Now(),
	}
	s.reg.Register(t)

	if err := s.notifier.Welcome(ctx, t); err != nil {
		slog.Warn("ticket welcome message failed", "ticket", t.Number, "error", err)
	}
	s.notifier.AuditTicket(ctx, "created", t, requester, false)

	slog.Info("ticket created", "ticket", t.Number, "user", requester.Tag, "channel", channelID)
	return t, nil
}

// Resolve marks the ticket resolved, renames the channel, and schedules the
// auto-close. Only staff or the ticket owner may resolve.
func (s *TicketService) Resolve(ctx context.Context, channelID string, actor domain.Actor) (*domain.Ticket, error) {
	snap, ok := s.reg.Snapshot(channelID)
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	if !actor.IsStaff && actor.ID != snap.UserID {
		return nil, domain.ErrForbidden
	}

	t, err := s.reg.Resolve(channelID, actor, time.Now())
	if err != nil {
		return nil, err
	}

	// State is committed; channel rename is best-effort.
	if err := s.channels.Rename(ctx, channelID, fmt.Sprintf("resolved-%d", t.Number)); err != nil {
		slog.Warn("could not rename resolved ticket channel", "ticket", t.Number, "error", err)
	}
	s.notifier.AuditTicket(ctx, "resolved", &t, actor, false)

	task := s.sched.After(config.TicketAutoCloseDelay, fmt.Sprintf("ticket-%d-autoclose", t.Number), func() {
		s.autoClose(channelID, t.Number)
	})
	if !s.reg.SetAutoClose(channelID, task) {
		// A manual close slipped in between the transition and here.
		task.Cancel()
	}

	slog.Info("ticket resolved", "ticket", t.Number, "by", actor.Tag)
	return &t, nil
}

// Close transitions the ticket to closed, cancels any pending auto-close,
// posts the closure summary, and schedules the delayed channel deletion.
// The automatic path (auto=true) bypasses the permission check. Racing
// closers are resolved by the registry: the loser gets ErrTicketClosed.
func (s *TicketService) Close(ctx context.Context, channelID string, actor domain.Actor, auto bool) (*domain.Ticket, error) {
	snap, ok := s.reg.Snapshot(channelID)
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	if !auto && !actor.IsStaff && actor.ID != snap.UserID {
		return nil, domain.ErrForbidden
	}

	t, pending, err := s.reg.Close(channelID, actor, time.Now())
	if err != nil {
		return nil, err
	}
	if pending != nil {
		pending.Cancel()
	}

	if err := s.notifier.ClosureSummary(ctx, &t, actor, auto); err != nil {
		slog.Warn("closure summary failed", "ticket", t.Number, "error", err)
	}
	s.notifier.AuditTicket(ctx, "closed", &t, actor, auto)

	s.sched.After(config.TicketChannelDeleteDelay, fmt.Sprintf("ticket-%d-delete", t.Number), func() {
		s.deleteChannel(channelID, t.Number)
	})

	slog.Info("ticket closed", "ticket", t.Number, "by", actor.Tag, "auto", auto)
	return &t, nil
}

// autoClose is the timer callback. It re-reads live state at fire time: a
// manual close during the wait makes this a silent no-op.
func (s *TicketService) autoClose(channelID string, number int) {
	if !s.reg.StatusIs(channelID, domain.TicketStatusResolved) {
		slog.Info("auto-close skipped, ticket no longer resolved", "ticket", number)
		return
	}
	_, err := s.Close(context.Background(), channelID, domain.SystemActor, true)
	if err != nil && !errors.Is(err, domain.ErrTicketClosed) && !errors.Is(err, domain.ErrTicketNotFound) {
		slog.Error("auto-close failed", "ticket", number, "error", err)
	}
}

// deleteChannel removes the backing channel. Deletion is best-effort; the
// registry entry goes away no matter what.
func (s *TicketService) deleteChannel(channelID string, number int) {
	defer s.reg.Remove(channelID)

	err := s.channels.Delete(context.Background(), channelID)
	switch {
	case err == nil:
		slog.Info("ticket channel deleted", "ticket", number)
	case errors.Is(err, domain.ErrChannelNotFound):
		slog.Warn("ticket channel already gone", "ticket", number)
	case errors.Is(err, domain.ErrForbidden):
		slog.Warn("no permission to delete ticket channel", "ticket", number, "channel", channelID)
	default:
		slog.Error("ticket channel deletion failed", "ticket", number, "error", err)
	}
}
