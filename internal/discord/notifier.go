package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/creatok/storebot/internal/config"
	"github.com/creatok/storebot/internal/domain"
)

// Notifier posts lifecycle messages into ticket and order channels, alerts
// staff, and DMs buyers. DM delivery is best-effort; members can block DMs.
type Notifier struct {
	s   *discordgo.Session
	cfg *config.Config
}

func NewNotifier(s *discordgo.Session, cfg *config.Config) *Notifier {
	return &Notifier{s: s, cfg: cfg}
}

func (n *Notifier) Welcome(ctx context.Context, t *domain.Ticket) error {
	_, err := n.s.ChannelMessageSendComplex(t.ChannelID, &discordgo.MessageSend{
		Content:    fmt.Sprintf("<@%s> | <@&%s>", t.UserID, n.cfg.StaffRoleID),
		Embeds:     []*discordgo.MessageEmbed{welcomeEmbed(t)},
		Components: ticketControls(),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send ticket welcome: %w", err)
	}
	return nil
}

func (n *Notifier) ClosureSummary(ctx context.Context, t *domain.Ticket, actor domain.Actor, auto bool) error {
	_, err := n.s.ChannelMessageSendEmbed(t.ChannelID, closureEmbed(t, actor, auto), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send closure summary: %w", err)
	}
	return nil
}

func (n *Notifier) OrderChannelIntro(ctx context.Context, o *domain.Order) error {
	_, err := n.s.ChannelMessageSendComplex(o.ChannelID, &discordgo.MessageSend{
		Content:    fmt.Sprintf("<@%s> | <@&%s>", o.UserID, n.cfg.StaffRoleID),
		Embeds:     []*discordgo.MessageEmbed{orderIntroEmbed(o)},
		Components: orderIntroControls(o),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send order intro: %w", err)
	}
	return nil
}

func (n *Notifier) StaffNewOrder(ctx context.Context, o *domain.Order) {
	if n.cfg.OrdersChannel == "" {
		return
	}
	_, err := n.s.ChannelMessageSendEmbed(n.cfg.OrdersChannel, staffOrderEmbed(o), discordgo.WithContext(ctx))
	if err != nil {
		slog.Warn("staff order alert failed", "order", o.OrderID, "error", err)
	}
}

func (n *Notifier) BuyerDelivered(ctx context.Context, o *domain.Order) {
	n.dmEmbed(ctx, o.UserID, deliveredEmbed(o))
}

func (n *Notifier) BuyerCancelled(ctx context.Context, o *domain.Order, actorTag string) {
	n.dmEmbed(ctx, o.UserID, cancelledEmbed(o, actorTag))
}

func (n *Notifier) dmEmbed(ctx context.Context, userID string, embed *discordgo.MessageEmbed) {
	dm, err := n.s.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		slog.Warn("could not open DM channel", "user", userID, "error", err)
		return
	}
	if _, err := n.s.ChannelMessageSendEmbed(dm.ID, embed, discordgo.WithContext(ctx)); err != nil {
		slog.Warn("could not DM user", "user", userID, "error", err)
	}
}
