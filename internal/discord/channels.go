package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/creatok/storebot/internal/config"
	"github.com/creatok/storebot/internal/domain"
)

const memberChannelPerms = discordgo.PermissionViewChannel |
	discordgo.PermissionSendMessages |
	discordgo.PermissionAttachFiles |
	discordgo.PermissionReadMessageHistory

const staffChannelPerms = memberChannelPerms | discordgo.PermissionManageMessages

// ChannelManager provisions the private per-ticket and per-order channels.
type ChannelManager struct {
	s   *discordgo.Session
	cfg *config.Config
}

func NewChannelManager(s *discordgo.Session, cfg *config.Config) *ChannelManager {
	return &ChannelManager{s: s, cfg: cfg}
}

// privateOverwrites hides the channel from the guild and grants the member
// and the staff role access.
func (m *ChannelManager) privateOverwrites(userID string) []*discordgo.PermissionOverwrite {
	return []*discordgo.PermissionOverwrite{
		{
			ID:   m.cfg.GuildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    userID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: memberChannelPerms,
		},
		{
			ID:    m.cfg.StaffRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: staffChannelPerms,
		},
	}
}

func (m *ChannelManager) createPrivate(ctx context.Context, name, parentID, userID string) (string, error) {
	ch, err := m.s.GuildChannelCreateComplex(m.cfg.GuildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             parentID,
		PermissionOverwrites: m.privateOverwrites(userID),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("create channel %q: %w", name, mapRESTError(err))
	}
	return ch.ID, nil
}

func (m *ChannelManager) CreateTicketChannel(ctx context.Context, number int, userID string) (string, error) {
	return m.createPrivate(ctx, fmt.Sprintf("ticket-%d", number), m.cfg.TicketCategoryID, userID)
}

func (m *ChannelManager) CreateOrderChannel(ctx context.Context, orderID, userID string) (string, error) {
	return m.createPrivate(ctx, "order-"+orderID, m.cfg.OrderCategoryID, userID)
}

func (m *ChannelManager) Rename(ctx context.Context, channelID, name string) error {
	_, err := m.s.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("rename channel: %w", mapRESTError(err))
	}
	return nil
}

func (m *ChannelManager) Delete(ctx context.Context, channelID string) error {
	_, err := m.s.ChannelDelete(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete channel: %w", mapRESTError(err))
	}
	return nil
}

// HideFromEveryone revokes the guild-wide view permission, leaving member
// and staff overwrites in place.
func (m *ChannelManager) HideFromEveryone(ctx context.Context, channelID string) error {
	err := m.s.ChannelPermissionSet(channelID, m.cfg.GuildID, discordgo.PermissionOverwriteTypeRole,
		0, discordgo.PermissionViewChannel, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("hide channel: %w", mapRESTError(err))
	}
	return nil
}

// mapRESTError folds the REST error codes the lifecycle handles onto domain
// sentinels. An already-deleted channel and a permission gap are expected
// conditions, not faults.
func mapRESTError(err error) error {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) || rest.Message == nil {
		return err
	}
	switch rest.Message.Code {
	case discordgo.ErrCodeUnknownChannel:
		return fmt.Errorf("%w: %s", domain.ErrChannelNotFound, rest.Message.Message)
	case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, rest.Message.Message)
	}
	return err
}
