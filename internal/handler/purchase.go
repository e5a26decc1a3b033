package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/creatok/storebot/internal/discord"
	"github.com/creatok/storebot/internal/domain"
	"github.com/creatok/storebot/internal/service"
)

// showRegionPicker answers the generic browse button with the region choice.
func (h *Handler) showRegionPicker(_ context.Context, r *discord.Responder) {
	if err := r.Send(discord.RegionPicker()); err != nil {
		slog.Warn("region picker failed", "error", err)
	}
}

// buyRegion lists one region's catalog with the account select menu.
func (h *Handler) buyRegion(ctx context.Context, r *discord.Responder, customID string) {
	region, err := discord.ParseBuyRegion(customID)
	if err != nil {
		slog.Warn("bad buy button", "custom_id", customID, "error", err)
		replyErr(r, "That button is no longer valid.")
		return
	}
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}

	products, err := h.catalog.ListByRegion(ctx, region)
	if err != nil {
		slog.Error("catalog load failed", "region", region, "error", err)
		replyErr(r, "Could not load the catalog. Please try again later.")
		return
	}
	r.Send(discord.Message{
		Embeds:     []*discordgo.MessageEmbed{discord.ProductListEmbed(region, products)},
		Components: discord.AccountSelectMenu(region, products),
		Ephemeral:  true,
	})
}

// accountSelected opens the purchase modal for the picked product. The
// select value is already an encoded order form, so the modal reuses it as
// its own custom ID. No defer here: a modal must be the first response.
func (h *Handler) accountSelected(_ context.Context, r *discord.Responder, i *discordgo.InteractionCreate) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}
	form, err := discord.ParseOrderForm(values[0])
	if err != nil {
		slog.Warn("bad account selection", "value", values[0], "error", err)
		replyErr(r, "That selection is no longer valid.")
		return
	}
	customID, title, components := discord.OrderModal(form)
	if err := r.Modal(customID, title, components); err != nil {
		slog.Error("could not open order modal", "error", err)
	}
}

// orderSubmitted handles the purchase modal submission: it rebuilds the
// product from the modal ID, reads the form fields, and runs the order flow.
func (h *Handler) orderSubmitted(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, customID string, actor domain.Actor) {
	form, err := discord.ParseOrderForm(customID)
	if err != nil {
		slog.Warn("bad order modal", "custom_id", customID, "error", err)
		replyErr(r, "That order form is no longer valid.")
		return
	}
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}

	fields := modalFields(i.ModalSubmitData())
	res, err := h.orders.Submit(ctx, service.SubmitOrderInput{
		Buyer:         actor,
		Region:        form.Region,
		AccountType:   form.AccountType,
		Price:         form.Price,
		PaymentMethod: strings.TrimSpace(fields["payment_method"]),
		DiscountCode:  strings.TrimSpace(fields["discount_code"]),
		Notes:         strings.TrimSpace(fields["notes"]),
	})
	if err != nil {
		slog.Error("order submission failed", "user", actor.ID, "error", err)
		replyErr(r, "Could not submit your order. Please try again or open a support ticket.")
		return
	}

	o := res.Order
	msg := fmt.Sprintf("🛒 Order **#%s** received! Total: **$%s**", o.OrderID, o.Price.StringFixed(2))
	if o.DiscountApplied {
		msg += fmt.Sprintf(" (%s saved you $%s)", o.DiscountCode, o.DiscountAmount.StringFixed(2))
	}
	if res.DiscountReason != "" {
		msg += "\n⚠️ " + res.DiscountReason + " - your order went through at full price."
	}
	if o.ChannelID != "" {
		msg += fmt.Sprintf("\nYour private order channel: <#%s>", o.ChannelID)
	} else {
		msg += "\nA staff member will contact you shortly."
	}
	r.Text(msg, true)
}

// cancelOrderButton is the buyer-facing cancel control in the order channel.
func (h *Handler) cancelOrderButton(ctx context.Context, r *discord.Responder, customID string, actor domain.Actor) {
	orderID, err := discord.ParseCancelOrder(customID)
	if err != nil {
		slog.Warn("bad cancel button", "custom_id", customID, "error", err)
		replyErr(r, "That button is no longer valid.")
		return
	}
	if err := r.Defer(false); err != nil {
		slog.Warn("defer failed", "error", err)
	}

	o, err := h.orders.Get(ctx, orderID)
	if err != nil {
		replyErr(r, "Order not found.")
		return
	}
	if !actor.IsStaff && actor.ID != o.UserID {
		replyErr(r, "Only the buyer or staff can cancel this order.")
		return
	}
	h.doCancel(ctx, r, orderID, actor)
}

// modalFields flattens the modal's text inputs into a name → value map.
func modalFields(data discordgo.ModalSubmitInteractionData) map[string]string {
	out := make(map[string]string)
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range ar.Components {
			if input, ok := c.(*discordgo.TextInput); ok {
				out[input.CustomID] = input.Value
			}
		}
	}
	return out
}
