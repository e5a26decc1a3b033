package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/creatok/storebot/internal/config"
	"github.com/creatok/storebot/internal/discord"
)

type rateWindow struct {
	minute int64
	count  int
}

// RateLimit returns middleware that enforces a per-user per-minute cap on
// interactions. Counters live in memory and reset each minute.
func RateLimit() Middleware {
	var (
		mu      sync.Mutex
		windows = make(map[string]*rateWindow)
	)

	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
			u := InteractionUser(i)
			if u == nil {
				next(ctx, s, i)
				return
			}

			minute := time.Now().Unix() / 60
			mu.Lock()
			w, ok := windows[u.ID]
			if !ok || w.minute != minute {
				w = &rateWindow{minute: minute}
				windows[u.ID] = w
			}
			w.count++
			count := w.count
			// Drop stale entries so the map does not grow unbounded.
			if len(windows) > 10000 {
				for id, win := range windows {
					if win.minute != minute {
						delete(windows, id)
					}
				}
			}
			mu.Unlock()

			if count > config.RateLimitPerMinute {
				slog.Debug("rate limited", "user_id", u.ID, "count", count)
				r := discord.NewResponder(s, i.Interaction)
				if err := r.Text("⏳ Slow down a little and try again in a minute.", true); err != nil {
					slog.Warn("rate limit notice failed", "user_id", u.ID, "error", err)
				}
				return
			}

			next(ctx, s, i)
		}
	}
}
