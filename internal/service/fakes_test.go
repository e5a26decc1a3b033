package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/creatok/storebot/internal/domain"
	"github.com/creatok/storebot/internal/repository"
)

type fakeTicketChannels struct {
	mu        sync.Mutex
	created   int
	renames   []string
	deleted   []string
	createErr error
	renameErr error
	deleteErr error
}

func (f *fakeTicketChannels) CreateTicketChannel(_ context.Context, number int, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created++
	return fmt.Sprintf("chan-%d", number), nil
}

func (f *fakeTicketChannels) Rename(_ context.Context, _, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.renameErr != nil {
		return f.renameErr
	}
	f.renames = append(f.renames, name)
	return nil
}

func (f *fakeTicketChannels) Delete(_ context.Context, channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, channelID)
	return nil
}

func (f *fakeTicketChannels) deletions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

type auditEntry struct {
	action string
	actor  string
	auto   bool
}

type fakeTicketNotifier struct {
	mu         sync.Mutex
	welcomes   int
	summaries  int
	audits     []auditEntry
	welcomeErr error
	summaryErr error
}

func (f *fakeTicketNotifier) Welcome(_ context.Context, _ *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomes++
	return f.welcomeErr
}

func (f *fakeTicketNotifier) ClosureSummary(_ context.Context, _ *domain.Ticket, _ domain.Actor, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries++
	return f.summaryErr
}

func (f *fakeTicketNotifier) AuditTicket(_ context.Context, action string, _ *domain.Ticket, actor domain.Actor, auto bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.audits = append(f.audits, auditEntry{action: action, actor: actor.Tag, auto: auto})
}

func (f *fakeTicketNotifier) auditActions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.audits))
	for i, a := range f.audits {
		out[i] = a.action
	}
	return out
}

type fakeDiscountRepo struct {
	mu        sync.Mutex
	byCode    map[string]*domain.Discount
	userUses  map[string]int64
	usages    []domain.DiscountUsage
	recordErr error
}

func newFakeDiscountRepo(discounts ...*domain.Discount) *fakeDiscountRepo {
	f := &fakeDiscountRepo{
		byCode:   make(map[string]*domain.Discount),
		userUses: make(map[string]int64),
	}
	for _, d := range discounts {
		f.byCode[d.Code] = d
	}
	return f
}

func usageKey(code, userID string) string { return code + "/" + userID }

func (f *fakeDiscountRepo) GetByCode(_ context.Context, code string) (*domain.Discount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.byCode[code]
	if !ok {
		return nil, domain.ErrDiscountNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDiscountRepo) Insert(_ context.Context, d *domain.Discount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byCode[d.Code] = d
	return nil
}

func (f *fakeDiscountRepo) SetActive(_ context.Context, code string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.byCode[code]
	if !ok {
		return domain.ErrDiscountNotFound
	}
	d.IsActive = active
	return nil
}

func (f *fakeDiscountRepo) Delete(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byCode[code]; !ok {
		return domain.ErrDiscountNotFound
	}
	delete(f.byCode, code)
	return nil
}

func (f *fakeDiscountRepo) List(_ context.Context, activeOnly bool) ([]domain.Discount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Discount
	for _, d := range f.byCode {
		if activeOnly && !d.IsActive {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDiscountRepo) CountUsagesByUser(_ context.Context, code, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userUses[usageKey(code, userID)], nil
}

func (f *fakeDiscountRepo) RecordUsage(_ context.Context, usage *domain.DiscountUsage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	d, ok := f.byCode[usage.Code]
	if !ok {
		return domain.ErrDiscountNotFound
	}
	d.UsageCount++
	f.userUses[usageKey(usage.Code, usage.UserID)]++
	f.usages = append(f.usages, *usage)
	return nil
}

func (f *fakeDiscountRepo) recordedUsages() []domain.DiscountUsage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.DiscountUsage(nil), f.usages...)
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Order
	insErr error
}

func newFakeOrderRepoWith(orders ...*domain.Order) *fakeOrderRepo {
	f := &fakeOrderRepo{byID: make(map[string]*domain.Order)}
	for _, o := range orders {
		f.byID[o.OrderID] = o
	}
	return f
}

func (f *fakeOrderRepo) Insert(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insErr != nil {
		return f.insErr
	}
	cp := *order
	f.byID[order.OrderID] = &cp
	return nil
}

func (f *fakeOrderRepo) Get(_ context.Context, orderID string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, orderID string, status domain.OrderStatus, patch repository.OrderStatusPatch) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Status = status
	if patch.ChannelID != nil {
		o.ChannelID = *patch.ChannelID
	}
	if patch.HandledBy != nil {
		o.HandledBy = *patch.HandledBy
	}
	if patch.StaffNotes != nil {
		o.StaffNotes = *patch.StaffNotes
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Order
	for _, o := range f.byID {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListPending(_ context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Order
	for _, o := range f.byID {
		if o.Status == domain.OrderStatusPending || o.Status == domain.OrderStatusProcessing {
			out = append(out, *o)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	purchases []decimal.Decimal
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Get(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetOrCreate(_ context.Context, id, tag string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		u = &domain.User{ID: id, Tag: tag}
		f.users[id] = u
	}
	u.Tag = tag
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) TrackInteraction(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Interactions++
	return nil
}

func (f *fakeUserRepo) RecordPurchase(_ context.Context, id string, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Purchases++
	u.TotalSpent = u.TotalSpent.Add(amount)
	f.purchases = append(f.purchases, amount)
	return nil
}

func (f *fakeUserRepo) UpdateRegion(_ context.Context, id, region string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Region = region
	return nil
}

type fakeOrderChannels struct {
	mu        sync.Mutex
	created   []string
	renames   []string
	hidden    []string
	createErr error
}

func (f *fakeOrderChannels) CreateOrderChannel(_ context.Context, orderID, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	id := "order-chan-" + orderID
	f.created = append(f.created, id)
	return id, nil
}

func (f *fakeOrderChannels) Rename(_ context.Context, _, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renames = append(f.renames, name)
	return nil
}

func (f *fakeOrderChannels) HideFromEveryone(_ context.Context, channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hidden = append(f.hidden, channelID)
	return nil
}

type fakeOrderNotifier struct {
	mu         sync.Mutex
	intros     int
	staffNew   int
	cancelled  int
	delivered  int
	auditNames []string
}

func (f *fakeOrderNotifier) OrderChannelIntro(_ context.Context, _ *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intros++
	return nil
}

func (f *fakeOrderNotifier) StaffNewOrder(_ context.Context, _ *domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staffNew++
}

func (f *fakeOrderNotifier) BuyerCancelled(_ context.Context, _ *domain.Order, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled++
}

func (f *fakeOrderNotifier) BuyerDelivered(_ context.Context, _ *domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delivered++
}

func (f *fakeOrderNotifier) AuditOrder(_ context.Context, action string, _ *domain.Order, _ domain.Actor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auditNames = append(f.auditNames, action)
}
