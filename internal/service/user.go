package service

import (
	"context"
	"log/slog"

	"github.com/creatok/storebot/internal/domain"
	"github.com/creatok/storebot/internal/repository"
)

// UserService tracks community members and their activity.
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// FindOrCreate upserts the member record, refreshing tag and last-active.
func (s *UserService) FindOrCreate(ctx context.Context, id, tag string) (*domain.User, error) {
	return s.users.GetOrCreate(ctx, id, tag)
}

// TrackInteraction bumps the member's interaction counter. Failures are
// logged, not surfaced; activity stats never block a command.
func (s *UserService) TrackInteraction(ctx context.Context, id string) {
	if err := s.users.TrackInteraction(ctx, id); err != nil {
		slog.Warn("could not track interaction", "user", id, "error", err)
	}
}

// SetRegion records the member's chosen region.
func (s *UserService) SetRegion(ctx context.Context, id, region string) error {
	return s.users.UpdateRegion(ctx, id, region)
}

// Stats returns the member record for profile display.
func (s *UserService) Stats(ctx context.Context, id string) (*domain.User, error) {
	return s.users.Get(ctx, id)
}
