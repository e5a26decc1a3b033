package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken    string `env:"DISCORD_TOKEN,required"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	GuildID     string `env:"GUILD_ID,required"`

	// Roles
	StaffRoleID  string `env:"STAFF_ROLE_ID,required"`
	USRegionRole string `env:"US_REGION_ROLE_ID"`
	UKRegionRole string `env:"UK_REGION_ROLE_ID"`
	EURegionRole string `env:"EU_REGION_ROLE_ID"`

	// Channel layout
	TicketCategoryID  string `env:"TICKET_CATEGORY_ID"`
	OrderCategoryID   string `env:"ORDER_CATEGORY_ID"`
	SupportLogChannel string `env:"SUPPORT_LOG_CHANNEL_ID"`
	OrdersChannel     string `env:"ORDERS_CHANNEL_ID"`
	GeneralChannel    string `env:"GENERAL_CHANNEL_ID"`
	BuyChannel        string `env:"BUY_CHANNEL_ID"`
	USInterestChannel string `env:"US_INTEREST_CHANNEL_ID"`
	UKInterestChannel string `env:"UK_INTEREST_CHANNEL_ID"`
	EUInterestChannel string `env:"EU_INTEREST_CHANNEL_ID"`

	// Admin
	AdminIDs []string `env:"ADMIN_IDS" envSeparator:","`

	// Bot behavior
	RegisterCommands bool `env:"BOT_REGISTER_COMMANDS" envDefault:"true"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(userID string) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// RegionRole maps a region code to its interest role ID. Empty when unmapped.
func (c *Config) RegionRole(region string) string {
	switch region {
	case "US":
		return c.USRegionRole
	case "UK":
		return c.UKRegionRole
	case "EU":
		return c.EURegionRole
	default:
		return ""
	}
}

// RegionChannel maps a region code to its interest channel ID.
func (c *Config) RegionChannel(region string) string {
	switch region {
	case "US":
		return c.USInterestChannel
	case "UK":
		return c.UKInterestChannel
	case "EU":
		return c.EUInterestChannel
	default:
		return ""
	}
}
