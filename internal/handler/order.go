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

func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	for _, opt := range i.ApplicationCommandData().Options {
		out[opt.Name] = opt
	}
	return out
}

func optString(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// myOrders shows the member their own order history.
func (h *Handler) myOrders(ctx context.Context, r *discord.Responder, actor domain.Actor) {
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}
	orders, err := h.orders.ListByUser(ctx, actor.ID)
	if err != nil {
		slog.Error("order history failed", "user", actor.ID, "error", err)
		replyErr(r, "Could not load your orders.")
		return
	}
	r.Send(discord.Message{
		Embeds:    []*discordgo.MessageEmbed{discord.OrderListEmbed("📦 Your Orders", orders)},
		Ephemeral: true,
	})
}

func (h *Handler) profile(ctx context.Context, r *discord.Responder, actor domain.Actor) {
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}
	u, err := h.users.Stats(ctx, actor.ID)
	if err != nil {
		slog.Error("profile load failed", "user", actor.ID, "error", err)
		replyErr(r, "Could not load your profile.")
		return
	}
	r.Send(discord.Message{
		Embeds:    []*discordgo.MessageEmbed{discord.ProfileEmbed(u)},
		Ephemeral: true,
	})
}

// orderInfo is the staff view of a single order.
func (h *Handler) orderInfo(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	if !actor.IsStaff {
		replyErr(r, "Staff only.")
		return
	}
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}
	orderID := optString(commandOptions(i), "order_id")
	o, err := h.orders.Get(ctx, orderID)
	if errors.Is(err, domain.ErrOrderNotFound) {
		replyErr(r, "Order not found.")
		return
	}
	if err != nil {
		slog.Error("order lookup failed", "order", orderID, "error", err)
		replyErr(r, "Could not load the order.")
		return
	}
	r.Send(discord.Message{
		Embeds:    []*discordgo.MessageEmbed{discord.OrderDetailEmbed(o)},
		Ephemeral: true,
	})
}

func (h *Handler) pendingOrders(ctx context.Context, r *discord.Responder, actor domain.Actor) {
	if !actor.IsStaff {
		replyErr(r, "Staff only.")
		return
	}
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}
	orders, err := h.orders.ListPending(ctx)
	if err != nil {
		slog.Error("pending orders failed", "error", err)
		replyErr(r, "Could not load pending orders.")
		return
	}
	r.Send(discord.Message{
		Embeds:    []*discordgo.MessageEmbed{discord.OrderListEmbed("⏳ Open Orders", orders)},
		Ephemeral: true,
	})
}

// orderStatus is the staff transition command.
func (h *Handler) orderStatus(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	if !actor.IsStaff {
		replyErr(r, "Staff only.")
		return
	}
	opts := commandOptions(i)
	h.transitionOrder(ctx, r,
		optString(opts, "order_id"),
		domain.OrderStatus(optString(opts, "status")),
		actor,
		optString(opts, "notes"),
	)
}

// completeOrder is shorthand for the completed transition.
func (h *Handler) completeOrder(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	if !actor.IsStaff {
		replyErr(r, "Staff only.")
		return
	}
	opts := commandOptions(i)
	h.transitionOrder(ctx, r, optString(opts, "order_id"), domain.OrderStatusCompleted, actor, optString(opts, "notes"))
}

func (h *Handler) transitionOrder(ctx context.Context, r *discord.Responder, orderID string, status domain.OrderStatus, actor domain.Actor, notes string) {
	if err := r.Defer(false); err != nil {
		slog.Warn("defer failed", "error", err)
	}
	o, err := h.orders.UpdateStatus(ctx, orderID, status, actor, notes)
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		replyErr(r, "Order not found.")
	case errors.Is(err, domain.ErrTerminalState):
		replyErr(r, "That order is already completed or cancelled.")
	case err != nil:
		slog.Error("order transition failed", "order", orderID, "status", status, "error", err)
		replyErr(r, "Could not update the order.")
	default:
		r.Text(fmt.Sprintf("📦 Order **#%s** is now **%s**.", o.OrderID, o.Status), false)
	}
}

func (h *Handler) doCancel(ctx context.Context, r *discord.Responder, orderID string, actor domain.Actor) {
	o, err := h.orders.Cancel(ctx, orderID, actor)
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		replyErr(r, "Order not found.")
	case errors.Is(err, domain.ErrTerminalState):
		replyErr(r, "That order is already completed or cancelled.")
	case err != nil:
		slog.Error("order cancel failed", "order", orderID, "error", err)
		replyErr(r, "Could not cancel the order.")
	default:
		r.Text(fmt.Sprintf("❌ Order **#%s** cancelled.", o.OrderID), false)
	}
}
