package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"
)

// Recover returns middleware that recovers from panics.
func Recover() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("panic recovered in handler",
						"panic", r,
						"stack", string(debug.Stack()),
					)
				}
			}()
			next(ctx, s, i)
		}
	}
}
