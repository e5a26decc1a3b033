package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/creatok/storebot/internal/discord"
	"github.com/creatok/storebot/internal/domain"
)

// setupTicketPanel posts the persistent support panel into the current
// channel. Admin only; panels are posted once and live forever.
func (h *Handler) setupTicketPanel(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	if !h.cfg.IsAdmin(actor.ID) {
		replyErr(r, "Admin only.")
		return
	}
	embed, components := discord.TicketPanel()
	_, err := h.session.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		slog.Error("ticket panel post failed", "channel", i.ChannelID, "error", err)
		replyErr(r, "Could not post the panel.")
		return
	}
	r.Text("🎫 Support panel posted.", true)
}

// setupBuyPanel posts the storefront panel into the current channel.
func (h *Handler) setupBuyPanel(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	if !h.cfg.IsAdmin(actor.ID) {
		replyErr(r, "Admin only.")
		return
	}
	embed, components := discord.BuyPanel()
	_, err := h.session.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		slog.Error("buy panel post failed", "channel", i.ChannelID, "error", err)
		replyErr(r, "Could not post the panel.")
		return
	}
	r.Text("🛍️ Store panel posted.", true)
}

// assignRegionRole grants the region interest role and records the member's
// region preference.
func (h *Handler) assignRegionRole(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, customID string, actor domain.Actor) {
	region, err := discord.ParseRegionRole(customID)
	if err != nil {
		slog.Warn("bad region button", "custom_id", customID, "error", err)
		replyErr(r, "That button is no longer valid.")
		return
	}
	if err := r.Defer(true); err != nil {
		slog.Warn("defer failed", "error", err)
	}

	roleID := h.cfg.RegionRole(region)
	if roleID == "" {
		replyErr(r, "No role is configured for that region.")
		return
	}
	if err := h.session.GuildMemberRoleAdd(h.cfg.GuildID, actor.ID, roleID, discordgo.WithContext(ctx)); err != nil {
		slog.Error("role assignment failed", "user", actor.ID, "role", roleID, "error", err)
		replyErr(r, "Could not assign the role.")
		return
	}
	if err := h.users.SetRegion(ctx, actor.ID, region); err != nil {
		slog.Warn("could not save region preference", "user", actor.ID, "error", err)
	}

	msg := fmt.Sprintf("📍 You now have the **%s** role.", region)
	if ch := h.cfg.RegionChannel(region); ch != "" {
		msg += fmt.Sprintf(" Check out <#%s>!", ch)
	}
	r.Text(msg, true)
}

// channelJump points the member at the region's interest channel.
func (h *Handler) channelJump(_ context.Context, r *discord.Responder, customID string) {
	region, err := discord.ParseChannelJump(customID)
	if err != nil {
		slog.Warn("bad channel button", "custom_id", customID, "error", err)
		replyErr(r, "That button is no longer valid.")
		return
	}
	ch := h.cfg.RegionChannel(region)
	if ch == "" {
		replyErr(r, "No channel is configured for that region.")
		return
	}
	r.Text(fmt.Sprintf("➡️ Head over to <#%s>.", ch), true)
}
