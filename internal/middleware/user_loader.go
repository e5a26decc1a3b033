package middleware

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/creatok/storebot/internal/domain"
	"github.com/creatok/storebot/internal/service"
)

type ctxKey string

const UserKey ctxKey = "user"

// GetUser extracts the loaded member record from context.
func GetUser(ctx context.Context) *domain.User {
	u, ok := ctx.Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// UserLoader returns middleware that upserts the acting member and makes the
// record available via GetUser. Every interaction also counts toward the
// member's activity stats.
func UserLoader(users *service.UserService) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
			from := InteractionUser(i)
			if from == nil {
				next(ctx, s, i)
				return
			}

			user, err := users.FindOrCreate(ctx, from.ID, from.Username)
			if err != nil {
				slog.Error("could not load user", "user_id", from.ID, "error", err)
				next(ctx, s, i)
				return
			}
			users.TrackInteraction(ctx, from.ID)

			next(context.WithValue(ctx, UserKey, user), s, i)
		}
	}
}
