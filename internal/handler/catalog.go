package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"github.com/creatok/storebot/internal/discord"
	"github.com/creatok/storebot/internal/domain"
	"github.com/creatok/storebot/internal/service"
)

func (h *Handler) addProduct(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	if !actor.IsStaff {
		replyErr(r, "Staff only.")
		return
	}
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}

	opts := commandOptions(i)
	price, err := decimal.NewFromString(optString(opts, "price"))
	if err != nil {
		replyErr(r, "Price must be a number.")
		return
	}
	in := service.AddProductInput{
		Region:    optString(opts, "region"),
		Label:     optString(opts, "label"),
		Price:     price,
		Followers: optString(opts, "followers"),
	}
	if opt, ok := opts["sort_order"]; ok {
		in.SortOrder = opt.IntValue()
	}

	p, err := h.catalog.Add(ctx, in)
	if err != nil {
		slog.Error("product add failed", "label", in.Label, "error", err)
		replyErr(r, "Could not add the product: "+err.Error())
		return
	}
	r.Text(fmt.Sprintf("🛍️ **%s** (%s) listed at $%s. ID: `%s`", p.Label, p.Region, p.Price.StringFixed(2), p.ID), true)
}

func (h *Handler) removeProduct(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	if !actor.IsStaff {
		replyErr(r, "Staff only.")
		return
	}
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}

	id := optString(commandOptions(i), "product_id")
	err := h.catalog.Remove(ctx, id)
	if errors.Is(err, domain.ErrProductNotFound) {
		replyErr(r, "No such product.")
		return
	}
	if err != nil {
		slog.Error("product remove failed", "product", id, "error", err)
		replyErr(r, "Could not remove the product.")
		return
	}
	r.Text("🗑️ Product removed.", true)
}

func (h *Handler) updatePrice(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	if !actor.IsStaff {
		replyErr(r, "Staff only.")
		return
	}
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}

	opts := commandOptions(i)
	id := optString(opts, "product_id")
	price, err := decimal.NewFromString(optString(opts, "price"))
	if err != nil {
		replyErr(r, "Price must be a number.")
		return
	}
	err = h.catalog.UpdatePrice(ctx, id, price)
	if errors.Is(err, domain.ErrProductNotFound) {
		replyErr(r, "No such product.")
		return
	}
	if err != nil {
		slog.Error("price update failed", "product", id, "error", err)
		replyErr(r, "Could not update the price: "+err.Error())
		return
	}
	r.Text(fmt.Sprintf("💲 Price updated to $%s.", price.StringFixed(2)), true)
}

func (h *Handler) listProducts(ctx context.Context, r *discord.Responder, actor domain.Actor) {
	if !actor.IsStaff {
		replyErr(r, "Staff only.")
		return
	}
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}

	products, err := h.catalog.List(ctx)
	if err != nil {
		slog.Error("product list failed", "error", err)
		replyErr(r, "Could not load the catalog.")
		return
	}
	var desc string
	for _, p := range products {
		desc += fmt.Sprintf("`%s` **%s** (%s) - $%s\n", p.ID, p.Label, p.Region, p.Price.StringFixed(2))
	}
	if desc == "" {
		desc = "The catalog is empty."
	}
	r.Send(discord.Message{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "🛍️ Catalog",
			Description: desc,
			Color:       discord.ColorOrder,
		}},
		Ephemeral: true,
	})
}
