package service

import (
	"context"
	"errors"
	"testing"

	"github.com/creatok/storebot/internal/domain"
	"github.com/creatok/storebot/internal/scheduler"
)

var (
	buyer = domain.Actor{ID: "u1", Tag: "buyer#1"}
	staff = domain.Actor{ID: "s1", Tag: "staff#1", IsStaff: true}
	other = domain.Actor{ID: "u2", Tag: "other#2"}
)

func newTicketFixture() (*TicketService, *fakeTicketChannels, *fakeTicketNotifier, *scheduler.Fake) {
	channels := &fakeTicketChannels{}
	notifier := &fakeTicketNotifier{}
	sched := scheduler.NewFake()
	svc := NewTicketService(NewTicketRegistry(), channels, notifier, sched)
	return svc, channels, notifier, sched
}

func TestCreateTicket(t *testing.T) {
	svc, channels, notifier, _ := newTicketFixture()

	tk, err := svc.Create(context.Background(), buyer, domain.TicketCategoryGeneral)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tk.Status != domain.TicketStatusOpen {
		t.Errorf("status = %q, want open", tk.Status)
	}
	if tk.Number <= 1000 {
		t.Errorf("number = %d, want > seed", tk.Number)
	}
	if channels.created != 1 {
		t.Errorf("channels created = %d, want 1", channels.created)
	}
	if notifier.welcomes != 1 {
		t.Errorf("welcomes = %d, want 1", notifier.welcomes)
	}
	if got := svc.OpenCount(); got != 1 {
		t.Errorf("OpenCount = %d, want 1", got)
	}
}

func TestCreateTicketDuplicate(t *testing.T) {
	svc, channels, _, _ := newTicketFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, buyer, domain.TicketCategoryGeneral)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup, err := svc.Create(ctx, buyer, domain.TicketCategoryPurchase)
	if !errors.Is(err, domain.ErrDuplicateTicket) {
		t.Fatalf("err = %v, want ErrDuplicateTicket", err)
	}
	if dup == nil || dup.ChannelID != first.ChannelID {
		t.Errorf("duplicate should return the existing ticket")
	}
	if channels.created != 1 {
		t.Errorf("channels created = %d, want 1", channels.created)
	}

	// A different user is not blocked.
	if _, err := svc.Create(ctx, other, domain.TicketCategoryGeneral); err != nil {
		t.Errorf("second user Create: %v", err)
	}
}

func TestCreateTicketChannelFailure(t *testing.T) {
	svc, channels, _, _ := newTicketFixture()
	channels.createErr = errors.New("api down")

	if _, err := svc.Create(context.Background(), buyer, domain.TicketCategoryGeneral); err == nil {
		t.Fatal("want error when channel creation fails")
	}
	if svc.OpenCount() != 0 {
		t.Error("failed creation must not register a ticket")
	}
	// Channel creation failure must not burn the user's one-open-ticket slot.
	channels.createErr = nil
	if _, err := svc.Create(context.Background(), buyer, domain.TicketCategoryGeneral); err != nil {
		t.Errorf("retry after failure: %v", err)
	}
}

func TestResolveSchedulesAutoClose(t *testing.T) {
	svc, channels, _, sched := newTicketFixture()
	ctx := context.Background()

	tk, _ := svc.Create(ctx, buyer, domain.TicketCategoryGeneral)
	resolved, err := svc.Resolve(ctx, tk.ChannelID, staff)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Status != domain.TicketStatusResolved {
		t.Errorf("status = %q, want resolved", resolved.Status)
	}
	if resolved.ResolvedBy != staff.Tag {
		t.Errorf("ResolvedBy = %q, want %q", resolved.ResolvedBy, staff.Tag)
	}
	if len(channels.renames) != 1 || channels.renames[0] != "resolved-1001" {
		t.Errorf("renames = %v, want [resolved-1001]", channels.renames)
	}
	if got := len(sched.Pending()); got != 1 {
		t.Fatalf("pending tasks = %d, want auto-close scheduled", got)
	}
}

func TestResolvePermissions(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{"owner", buyer, nil},
		{"staff", staff, nil},
		{"stranger", other, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newTicketFixture()
			ctx := context.Background()
			tk, _ := svc.Create(ctx, buyer, domain.TicketCategoryGeneral)

			_, err := svc.Resolve(ctx, tk.ChannelID, tt.actor)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveTwice(t *testing.T) {
	svc, _, _, _ := newTicketFixture()
	ctx := context.Background()
	tk, _ := svc.Create(ctx, buyer, domain.TicketCategoryGeneral)

	if _, err := svc.Resolve(ctx, tk.ChannelID, staff); err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	if _, err := svc.Resolve(ctx, tk.ChannelID, staff); !errors.Is(err, domain.ErrAlreadyResolved) {
		t.Errorf("err = %v, want ErrAlreadyResolved", err)
	}
}

func TestAutoCloseFires(t *testing.T) {
	svc, channels, notifier, sched := newTicketFixture()
	ctx := context.Background()

	tk, _ := svc.Create(ctx, buyer, domain.TicketCategoryGeneral)
	if _, err := svc.Resolve(ctx, tk.ChannelID, staff); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	sched.FireAll() // auto-close timer
	got, ok := svc.Ticket(tk.ChannelID)
	if !ok || got.Status != domain.TicketStatusClosed {
		t.Fatalf("status after auto-close = %v, want closed", got.Status)
	}
	if got.ClosedBy != domain.SystemActor.Tag {
		t.Errorf("ClosedBy = %q, want system actor", got.ClosedBy)
	}

	sched.FireAll() // delayed channel deletion
	if dels := channels.deletions(); len(dels) != 1 || dels[0] != tk.ChannelID {
		t.Errorf("deletions = %v, want [%s]", dels, tk.ChannelID)
	}
	if _, ok := svc.Ticket(tk.ChannelID); ok {
		t.Error("registry entry should be gone after deletion")
	}
	wantAudits := []string{"created", "resolved", "closed"}
	if audits := notifier.auditActions(); len(audits) != len(wantAudits) {
		t.Errorf("audits = %v, want %v", audits, wantAudits)
	}
}

func TestManualCloseCancelsAutoClose(t *testing.T) {
	svc, channels, notifier, sched := newTicketFixture()
	ctx := context.Background()

	tk, _ := svc.Create(ctx, buyer, domain.TicketCategoryGeneral)
	if _, err := svc.Resolve(ctx, tk.ChannelID, staff); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	autoClose := sched.Pending()[0]

	closed, err := svc.Close(ctx, tk.ChannelID, staff, false)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if closed.Status != domain.TicketStatusClosed {
		t.Errorf("status = %q, want closed", closed.Status)
	}
	if !autoClose.Cancelled() {
		t.Error("manual close must cancel the pending auto-close")
	}

	// Firing the cancelled timer anyway must be a no-op.
	autoClose.Fire()
	sched.FireAll()
	if dels := channels.deletions(); len(dels) != 1 {
		t.Errorf("deletions = %v, want exactly one", dels)
	}
	closes := 0
	for _, a := range notifier.auditActions() {
		if a == "closed" {
			closes++
		}
	}
	if closes != 1 {
		t.Errorf("closed audit entries = %d, want 1", closes)
	}
}

func TestAutoCloseAfterManualCloseIsNoOp(t *testing.T) {
	svc, _, notifier, _ := newTicketFixture()
	ctx := context.Background()

	tk, _ := svc.Create(ctx, buyer, domain.TicketCategoryGeneral)
	svc.Resolve(ctx, tk.ChannelID, staff)

	// Simulate the race where the timer callback starts after the manual
	// close already won: fire the auto-close body directly.
	if _, err := svc.Close(ctx, tk.ChannelID, buyer, false); err != nil {
		t.Fatalf("Close: %v", err)
	}
	svc.autoClose(tk.ChannelID, tk.Number)

	closes := 0
	for _, a := range notifier.auditActions() {
		if a == "closed" {
			closes++
		}
	}
	if closes != 1 {
		t.Errorf("closed audit entries = %d, want 1", closes)
	}
}

func TestCloseOpenTicketDirectly(t *testing.T) {
	svc, _, _, sched := newTicketFixture()
	ctx := context.Background()

	tk, _ := svc.Create(ctx, buyer, domain.TicketCategoryTechnical)
	closed, err := svc.Close(ctx, tk.ChannelID, buyer, false)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if closed.Status != domain.TicketStatusClosed {
		t.Errorf("status = %q, want closed", closed.Status)
	}
	if got := len(sched.Pending()); got != 1 {
		t.Errorf("pending = %d, want only channel deletion", got)
	}
}

func TestClosePermissions(t *testing.T) {
	svc, _, _, _ := newTicketFixture()
	ctx := context.Background()
	tk, _ := svc.Create(ctx, buyer, domain.TicketCategoryGeneral)

	if _, err := svc.Close(ctx, tk.ChannelID, other, false); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("stranger close err = %v, want ErrForbidden", err)
	}
}

func TestCloseUnknownChannel(t *testing.T) {
	svc, _, _, _ := newTicketFixture()
	if _, err := svc.Close(context.Background(), "no-such", staff, false); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Errorf("err = %v, want ErrTicketNotFound", err)
	}
}

func TestCloseTwice(t *testing.T) {
	svc, _, _, _ := newTicketFixture()
	ctx := context.Background()
	tk, _ := svc.Create(ctx, buyer, domain.TicketCategoryGeneral)

	if _, err := svc.Close(ctx, tk.ChannelID, staff, false); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if _, err := svc.Close(ctx, tk.ChannelID, staff, false); !errors.Is(err, domain.ErrTicketClosed) {
		t.Errorf("second Close err = %v, want ErrTicketClosed", err)
	}
}

func TestDeleteChannelToleratesMissingChannel(t *testing.T) {
	svc, channels, _, sched := newTicketFixture()
	ctx := context.Background()

	tk, _ := svc.Create(ctx, buyer, domain.TicketCategoryGeneral)
	channels.deleteErr = domain.ErrChannelNotFound
	if _, err := svc.Close(ctx, tk.ChannelID, staff, false); err != nil {
		t.Fatalf("Close: %v", err)
	}
	sched.FireAll()
	if _, ok := svc.Ticket(tk.ChannelID); ok {
		t.Error("registry must be cleaned up even when the channel is already gone")
	}
}

func TestTicketNumbersAreSequential(t *testing.T) {
	svc, _, _, _ := newTicketFixture()
	ctx := context.Background()

	a, _ := svc.Create(ctx, buyer, domain.TicketCategoryGeneral)
	b, _ := svc.Create(ctx, other, domain.TicketCategoryGeneral)
	if b.Number != a.Number+1 {
		t.Errorf("numbers %d, %d, want sequential", a.Number, b.Number)
	}
}
