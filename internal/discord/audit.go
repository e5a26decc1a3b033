package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/creatok/storebot/internal/config"
	"github.com/creatok/storebot/internal/domain"
)

// AuditTicket mirrors a ticket lifecycle event into the support log channel.
// Delivery is fire-and-forget.
func (n *Notifier) AuditTicket(_ context.Context, action string, t *domain.Ticket, actor domain.Actor, auto bool) {
	by := actor.Tag
	if auto {
		by = "auto-close"
	}
	n.audit(&discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎫 Ticket #%d %s", t.Number, action),
		Color: ticketActionColor(action),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: t.CreatedBy, Inline: true},
			{Name: "By", Value: by, Inline: true},
			{Name: "Category", Value: string(t.Category), Inline: true},
			{Name: "Channel", Value: fmt.Sprintf("<#%s>", t.ChannelID), Inline: true},
		},
		Timestamp: timestamp(),
	})
}

// AuditOrder mirrors an order lifecycle event into the support log channel.
func (n *Notifier) AuditOrder(_ context.Context, action string, o *domain.Order, actor domain.Actor) {
	n.audit(&discordgo.MessageEmbed{
		Title: fmt.Sprintf("🛒 Order #%s %s", o.OrderID, action),
		Color: ColorOrder,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Buyer", Value: o.UserTag, Inline: true},
			{Name: "By", Value: actor.Tag, Inline: true},
			{Name: "Account", Value: fmt.Sprintf("%s (%s)", o.AccountType, o.Region), Inline: true},
			{Name: "Price", Value: priceLine(o), Inline: true},
			{Name: "Status", Value: string(o.Status), Inline: true},
		},
		Timestamp: timestamp(),
	})
}

func ticketActionColor(action string) int {
	switch action {
	case "resolved":
		return ColorResolved
	case "closed":
		return ColorClosed
	default:
		return ColorTicketOpen
	}
}

// audit posts to the support log channel on its own deadline so a slow log
// channel never stalls the caller's interaction.
func (n *Notifier) audit(embed *discordgo.MessageEmbed) {
	if n.cfg.SupportLogChannel == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), config.NotifyTimeout)
	defer cancel()

	if _, err := n.s.ChannelMessageSendEmbed(n.cfg.SupportLogChannel, embed, discordgo.WithContext(ctx)); err != nil {
		slog.Error("audit log delivery failed", "title", embed.Title, "error", err)
	}
}
