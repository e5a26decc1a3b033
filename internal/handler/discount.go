package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"github.com/creatok/storebot/internal/discord"
	"github.com/creatok/storebot/internal/domain"
	"github.com/creatok/storebot/internal/service"
)

// discountCommand dispatches the /discount subcommands. All of them are
// staff-gated.
func (h *Handler) discountCommand(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	if !actor.IsStaff {
		replyErr(r, "Staff only.")
		return
	}
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	for _, opt := range sub.Options {
		opts[opt.Name] = opt
	}

	switch sub.Name {
	case "create":
		h.createDiscount(ctx, r, opts, actor)
	case "list":
		h.listDiscounts(ctx, r)
	case "toggle":
		h.toggleDiscount(ctx, r, opts)
	case "delete":
		h.deleteDiscount(ctx, r, opts)
	default:
		slog.Warn("unknown discount subcommand", "name", sub.Name)
	}
}

func (h *Handler) createDiscount(ctx context.Context, r *discord.Responder, opts map[string]*discordgo.ApplicationCommandInteractionDataOption, actor domain.Actor) {
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}

	value, err := decimal.NewFromString(optString(opts, "value"))
	if err != nil {
		replyErr(r, "Value must be a number.")
		return
	}

	in := service.CreateDiscountInput{
		Code:        optString(opts, "code"),
		Type:        domain.DiscountType(optString(opts, "type")),
		Value:       value,
		Description: optString(opts, "description"),
		CreatedBy:   actor.Tag,
	}
	if raw := optString(opts, "min_order"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			replyErr(r, "Minimum order must be a number.")
			return
		}
		in.MinimumOrder = min
	}
	if raw := optString(opts, "max_discount"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			replyErr(r, "Maximum discount must be a number.")
			return
		}
		in.MaximumDiscount = &max
	}
	if opt, ok := opts["usage_limit"]; ok {
		limit := opt.IntValue()
		in.UsageLimit = &limit
	}
	if opt, ok := opts["user_limit"]; ok {
		in.UserLimit = opt.IntValue()
	}
	if opt, ok := opts["valid_days"]; ok {
		until := time.Now().AddDate(0, 0, int(opt.IntValue()))
		in.ValidUntil = &until
	}
	if raw := optString(opts, "regions"); raw != "" {
		in.AllowedRegions = splitCSV(raw)
	}
	if raw := optString(opts, "account_types"); raw != "" {
		in.AllowedTypes = splitCSV(raw)
	}

	d, err := h.discounts.Create(ctx, in)
	if err != nil {
		slog.Error("discount creation failed", "code", in.Code, "error", err)
		replyErr(r, "Could not create the code: "+err.Error())
		return
	}
	r.Text(fmt.Sprintf("🎟️ Discount **%s** created.", d.Code), true)
}

func (h *Handler) listDiscounts(ctx context.Context, r *discord.Responder) {
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}
	discounts, err := h.discounts.List(ctx, false)
	if err != nil {
		slog.Error("discount list failed", "error", err)
		replyErr(r, "Could not load discount codes.")
		return
	}
	r.Send(discord.Message{
		Embeds:    []*discordgo.MessageEmbed{discord.DiscountListEmbed(discounts)},
		Ephemeral: true,
	})
}

func (h *Handler) toggleDiscount(ctx context.Context, r *discord.Responder, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}
	code := optString(opts, "code")
	active := false
	if opt, ok := opts["active"]; ok {
		active = opt.BoolValue()
	}
	err := h.discounts.SetActive(ctx, code, active)
	if errors.Is(err, domain.ErrDiscountNotFound) {
		replyErr(r, "No such discount code.")
		return
	}
	if err != nil {
		slog.Error("discount toggle failed", "code", code, "error", err)
		replyErr(r, "Could not update the code.")
		return
	}
	state := "disabled"
	if active {
		state = "enabled"
	}
	r.Text(fmt.Sprintf("🎟️ **%s** %s.", strings.ToUpper(code), state), true)
}

func (h *Handler) deleteDiscount(ctx context.Context, r *discord.Responder, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}
	code := optString(opts, "code")
	err := h.discounts.Delete(ctx, code)
	if errors.Is(err, domain.ErrDiscountNotFound) {
		replyErr(r, "No such discount code.")
		return
	}
	if err != nil {
		slog.Error("discount delete failed", "code", code, "error", err)
		replyErr(r, "Could not delete the code.")
		return
	}
	r.Text(fmt.Sprintf("🗑️ **%s** deleted.", strings.ToUpper(code)), true)
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
