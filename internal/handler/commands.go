package handler

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "ticket",
		Description: "Open a support ticket",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "category",
				Description: "What kind of help do you need?",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "General Support", Value: "general"},
					{Name: "Purchase Support", Value: "purchase"},
					{Name: "Technical Support", Value: "technical"},
				},
			},
		},
	},
	{
		Name:        "resolve",
		Description: "Mark the current ticket as resolved",
	},
	{
		Name:        "close",
		Description: "Close the current ticket",
	},
	{
		Name:        "my-orders",
		Description: "Show your order history",
	},
	{
		Name:        "profile",
		Description: "Show your member profile",
	},
	{
		Name:        "order-info",
		Description: "Show one order in detail (staff)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "order_id", Description: "Order ID", Required: true},
		},
	},
	{
		Name:        "pending-orders",
		Description: "List open orders (staff)",
	},
	{
		Name:        "order-status",
		Description: "Change an order's status (staff)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "order_id", Description: "Order ID", Required: true},
			{
				Type: discordgo.ApplicationCommandOptionString, Name: "status", Description: "New status", Required: true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Processing", Value: "processing"},
					{Name: "Completed", Value: "completed"},
					{Name: "Cancelled", Value: "cancelled"},
				},
			},
			{Type: discordgo.ApplicationCommandOptionString, Name: "notes", Description: "Staff notes"},
		},
	},
	{
		Name:        "complete-order",
		Description: "Mark an order delivered (staff)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "order_id", Description: "Order ID", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "notes", Description: "Staff notes"},
		},
	},
	{
		Name:        "discount",
		Description: "Manage discount codes (staff)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "create", Description: "Create a discount code",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "code", Description: "Code", Required: true},
					{
						Type: discordgo.ApplicationCommandOptionString, Name: "type", Description: "Discount type", Required: true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Percentage", Value: "percentage"},
							{Name: "Fixed amount", Value: "fixed_amount"},
						},
					},
					{Type: discordgo.ApplicationCommandOptionString, Name: "value", Description: "Percent or dollar amount", Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "What is this code for?"},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "usage_limit", Description: "Total allowed uses"},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "user_limit", Description: "Uses per member (default 1)"},
					{Type: discordgo.ApplicationCommandOptionString, Name: "min_order", Description: "Minimum order amount"},
					{Type: discordgo.ApplicationCommandOptionString, Name: "max_discount", Description: "Cap for percentage codes"},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "valid_days", Description: "Days until expiry"},
					{Type: discordgo.ApplicationCommandOptionString, Name: "regions", Description: "Allowed regions, comma separated"},
					{Type: discordgo.ApplicationCommandOptionString, Name: "account_types", Description: "Allowed account types, comma separated"},
				},
			},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list", Description: "List discount codes"},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "toggle", Description: "Enable or disable a code",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "code", Description: "Code", Required: true},
					{Type: discordgo.ApplicationCommandOptionBoolean, Name: "active", Description: "Enable?", Required: true},
				},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "delete", Description: "Delete a code",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "code", Description: "Code", Required: true},
				},
			},
		},
	},
	{
		Name:        "add-product",
		Description: "List a new account for sale (staff)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "region", Description: "Region", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "label", Description: "Listing name", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "price", Description: "Price in USD", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "followers", Description: "Follower count label"},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "sort_order", Description: "Position in the listing"},
		},
	},
	{
		Name:        "remove-product",
		Description: "Remove a listing (staff)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "product_id", Description: "Product ID", Required: true},
		},
	},
	{
		Name:        "update-price",
		Description: "Change a listing's price (staff)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "product_id", Description: "Product ID", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "price", Description: "New price in USD", Required: true},
		},
	},
	{
		Name:        "list-products",
		Description: "Show the full catalog with IDs (staff)",
	},
	{
		Name:        "setup-tickets",
		Description: "Post the support panel here (admin)",
	},
	{
		Name:        "setup-buy",
		Description: "Post the store panel here (admin)",
	},
}

// RegisterCommands bulk-registers the guild's slash commands. Bulk overwrite
// replaces the whole set, so removed commands disappear on the next deploy.
func (h *Handler) RegisterCommands() error {
	_, err := h.session.ApplicationCommandBulkOverwrite(h.session.State.User.ID, h.cfg.GuildID, commands)
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	return nil
}
