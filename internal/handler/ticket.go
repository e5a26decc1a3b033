package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/creatok/storebot/internal/discord"
	"github.com/creatok/storebot/internal/domain"
)

// ticketCommand is the /ticket slash command; the category comes from the
// command option.
func (h *Handler) ticketCommand(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	category := domain.TicketCategoryGeneral
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "category" {
			category = domain.TicketCategory(opt.StringValue())
		}
	}
	h.openTicket(ctx, r, category, actor)
}

// createTicketButton handles the panel buttons.
func (h *Handler) createTicketButton(ctx context.Context, r *discord.Responder, customID string, actor domain.Actor) {
	category, err := discord.ParseTicketCategory(customID)
	if err != nil {
		slog.Warn("bad ticket button", "custom_id", customID, "error", err)
		replyErr(r, "That button is no longer valid.")
		return
	}
	h.openTicket(ctx, r, category, actor)
}

func (h *Handler) openTicket(ctx context.Context, r *discord.Responder, category domain.TicketCategory, actor domain.Actor) {
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}

	t, err := h.tickets.Create(ctx, actor, category)
	switch {
	case errors.Is(err, domain.ErrDuplicateTicket):
		r.Text(fmt.Sprintf("You already have an open ticket: <#%s>", t.ChannelID), true)
	case err != nil:
		slog.Error("ticket creation failed", "user", actor.ID, "error", err)
		replyErr(r, "Could not create your ticket. Please try again later.")
	default:
		r.Text(fmt.Sprintf("🎫 Ticket **#%d** created: <#%s>", t.Number, t.ChannelID), true)
	}
}

// resolveTicket serves both the /resolve command and the resolve button;
// either way the ticket is the one backing the current channel.
func (h *Handler) resolveTicket(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	if err := r.Defer(false); err != nil {
		slog.Warn("defer failed", "error", err)
	}

	t, err := h.tickets.Resolve(ctx, i.ChannelID, actor)
	switch {
	case errors.Is(err, domain.ErrTicketNotFound):
		replyErr(r, "This is not a ticket channel.")
	case errors.Is(err, domain.ErrForbidden):
		replyErr(r, "Only staff or the ticket owner can resolve this ticket.")
	case errors.Is(err, domain.ErrAlreadyResolved):
		replyErr(r, "This ticket is already resolved or closed.")
	case err != nil:
		slog.Error("resolve failed", "channel", i.ChannelID, "error", err)
		replyErr(r, "Could not resolve the ticket.")
	default:
		r.Text(fmt.Sprintf(
			"✅ Ticket **#%d** marked resolved by %s. It will close automatically in 5 minutes unless reopened.",
			t.Number, actor.Tag), false)
	}
}

func (h *Handler) closeTicket(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	if err := r.Defer(false); err != nil {
		slog.Warn("defer failed", "error", err)
	}

	t, err := h.tickets.Close(ctx, i.ChannelID, actor, false)
	switch {
	case errors.Is(err, domain.ErrTicketNotFound):
		replyErr(r, "This is not a ticket channel.")
	case errors.Is(err, domain.ErrForbidden):
		replyErr(r, "Only staff or the ticket owner can close this ticket.")
	case errors.Is(err, domain.ErrTicketClosed):
		replyErr(r, "This ticket is already closed.")
	case err != nil:
		slog.Error("close failed", "channel", i.ChannelID, "error", err)
		replyErr(r, "Could not close the ticket.")
	default:
		r.Text(fmt.Sprintf("🔒 Ticket **#%d** closed. This channel will be removed shortly.", t.Number), false)
	}
}
