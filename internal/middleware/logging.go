package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Logging returns middleware that logs interaction processing time.
func Logging() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
			start := time.Now()

			name := ""
			switch i.Type {
			case discordgo.InteractionApplicationCommand:
				name = i.ApplicationCommandData().Name
			case discordgo.InteractionMessageComponent:
				name = i.MessageComponentData().CustomID
			case discordgo.InteractionModalSubmit:
				name = i.ModalSubmitData().CustomID
			}

			userID := ""
			if u := InteractionUser(i); u != nil {
				userID = u.ID
			}

			next(ctx, s, i)

			slog.Debug("interaction processed",
				"type", i.Type.String(),
				"name", name,
				"user_id", userID,
				"duration", time.Since(start),
			)
		}
	}
}
