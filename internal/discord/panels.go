package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/creatok/storebot/internal/config"
	"github.com/creatok/storebot/internal/domain"
)

// TicketPanel is the persistent support panel: one embed plus a create
// button per ticket category.
func TicketPanel() (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title: "🎫 Creatok Support",
		Description: "Need help? Open a ticket and our team will assist you.\n\n" +
			"🆘 **General** - questions and anything else\n" +
			"🛒 **Purchase** - help with an order\n" +
			"🔧 **Technical** - account access or delivery issues",
		Color:  ColorTicketOpen,
		Footer: &discordgo.MessageEmbedFooter{Text: "One open ticket per member"},
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "General",
					Style:    discordgo.PrimaryButton,
					CustomID: TicketCreateID(domain.TicketCategoryGeneral),
					Emoji:    &discordgo.ComponentEmoji{Name: "🆘"},
				},
				discordgo.Button{
					Label:    "Purchase",
					Style:    discordgo.PrimaryButton,
					CustomID: TicketCreateID(domain.TicketCategoryPurchase),
					Emoji:    &discordgo.ComponentEmoji{Name: "🛒"},
				},
				discordgo.Button{
					Label:    "Technical",
					Style:    discordgo.PrimaryButton,
					CustomID: TicketCreateID(domain.TicketCategoryTechnical),
					Emoji:    &discordgo.ComponentEmoji{Name: "🔧"},
				},
			},
		},
	}
	return embed, components
}

// BuyPanel is the persistent storefront panel: one buy button per region.
func BuyPanel() (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title: "🛍️ Creatok Store",
		Description: "Pick a region to browse available accounts.\n" +
			"Prices include full account transfer and after-sale support.",
		Color:  ColorOrder,
		Footer: &discordgo.MessageEmbedFooter{Text: "Creatok Store"},
	}
	var buttons []discordgo.MessageComponent
	for _, region := range config.Regions {
		buttons = append(buttons, discordgo.Button{
			Label:    region + " Accounts",
			Style:    discordgo.SecondaryButton,
			CustomID: BuyID(region),
		})
	}
	browse := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Browse Accounts",
				Style:    discordgo.PrimaryButton,
				CustomID: ShowAccountOptionsID,
				Emoji:    &discordgo.ComponentEmoji{Name: "🛍️"},
			},
		},
	}
	return embed, []discordgo.MessageComponent{browse, discordgo.ActionsRow{Components: buttons}}
}

// RegionPicker offers the region choice inline, used when a member clicks
// the generic browse button.
func RegionPicker() Message {
	var buttons []discordgo.MessageComponent
	for _, region := range config.Regions {
		buttons = append(buttons, discordgo.Button{
			Label:    region,
			Style:    discordgo.SecondaryButton,
			CustomID: BuyID(region),
		})
	}
	return Message{
		Content:    "Which region are you shopping for?",
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}},
		Ephemeral:  true,
	}
}

// OrderDetailEmbed is the staff view of one order.
func OrderDetailEmbed(o *domain.Order) *discordgo.MessageEmbed {
	channel := "none"
	if o.ChannelID != "" {
		channel = fmt.Sprintf("<#%s>", o.ChannelID)
	}
	handledBy := o.HandledBy
	if handledBy == "" {
		handledBy = "unassigned"
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: "Buyer", Value: fmt.Sprintf("%s (<@%s>)", o.UserTag, o.UserID), Inline: true},
		{Name: "Status", Value: string(o.Status), Inline: true},
		{Name: "Account", Value: fmt.Sprintf("%s (%s)", o.AccountType, o.Region), Inline: true},
		{Name: "Price", Value: priceLine(o), Inline: true},
		{Name: "Payment", Value: o.PaymentMethod, Inline: true},
		{Name: "Channel", Value: channel, Inline: true},
		{Name: "Handled By", Value: handledBy, Inline: true},
	}
	if o.StaffNotes != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Staff Notes", Value: truncate(o.StaffNotes, config.MaxFieldValueLen),
		})
	}
	if o.AdditionalNotes != "" && o.AdditionalNotes != "None" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Buyer Notes", Value: truncate(o.AdditionalNotes, config.MaxFieldValueLen),
		})
	}
	return &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("Order #%s", o.OrderID),
		Color:     ColorOrder,
		Fields:    fields,
		Timestamp: timestamp(),
	}
}

// OrderListEmbed summarizes several orders, most recent view for staff or
// the buyer's own history.
func OrderListEmbed(title string, orders []domain.Order) *discordgo.MessageEmbed {
	desc := ""
	for _, o := range orders {
		desc += fmt.Sprintf("**#%s** - %s (%s), $%s, `%s`\n",
			o.OrderID, o.AccountType, o.Region, o.Price.StringFixed(2), o.Status)
	}
	if desc == "" {
		desc = "Nothing here yet."
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: truncate(desc, config.MaxEmbedDescriptionLen),
		Color:       ColorOrder,
		Timestamp:   timestamp(),
	}
}

// ProfileEmbed shows a member their own stats.
func ProfileEmbed(u *domain.User) *discordgo.MessageEmbed {
	region := u.Region
	if region == "" {
		region = "not set"
	}
	return &discordgo.MessageEmbed{
		Title: "👤 " + u.Tag,
		Color: ColorTicketOpen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Region", Value: region, Inline: true},
			{Name: "Purchases", Value: fmt.Sprintf("%d", u.Purchases), Inline: true},
			{Name: "Total Spent", Value: "$" + u.TotalSpent.StringFixed(2), Inline: true},
			{Name: "Interactions", Value: fmt.Sprintf("%d", u.Interactions), Inline: true},
		},
		Timestamp: timestamp(),
	}
}
