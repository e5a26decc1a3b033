package middleware

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// HandlerFunc processes one gateway interaction.
type HandlerFunc func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate)

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain applies middlewares outermost-first.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// InteractionUser returns the acting user for guild and DM interactions.
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}
