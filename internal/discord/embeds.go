package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/creatok/storebot/internal/config"
	"github.com/creatok/storebot/internal/domain"
)

// Embed colors, one per lifecycle event family.
const (
	ColorTicketOpen = 0x00AE86
	ColorResolved   = 0x57F287
	ColorClosed     = 0xED4245
	ColorOrder      = 0x5865F2
	ColorDiscount   = 0xFFD700
)

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// welcomeEmbed greets the ticket opener inside the fresh channel.
func welcomeEmbed(t *domain.Ticket) *discordgo.MessageEmbed {
	label, ok := config.TicketCategories[string(t.Category)]
	if !ok {
		label = string(t.Category)
	}
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Ticket #%d", t.Number),
		Description: fmt.Sprintf(
			"Welcome <@%s>!\n\n**Category:** %s\n\nDescribe your issue and our team will be with you shortly.",
			t.UserID, label),
		Color:     ColorTicketOpen,
		Timestamp: timestamp(),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Creatok Support"},
	}
}

// ticketControls are the resolve/close buttons posted with the welcome.
func ticketControls() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Mark Resolved",
					Style:    discordgo.SuccessButton,
					CustomID: ResolveTicketID,
					Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
				},
				discordgo.Button{
					Label:    "Close Ticket",
					Style:    discordgo.DangerButton,
					CustomID: CloseTicketID,
					Emoji:    &discordgo.ComponentEmoji{Name: "🔒"},
				},
			},
		},
	}
}

func closureEmbed(t *domain.Ticket, actor domain.Actor, auto bool) *discordgo.MessageEmbed {
	closedBy := actor.Tag
	if auto {
		closedBy = "Auto-close (resolved)"
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: "Opened By", Value: t.CreatedBy, Inline: true},
		{Name: "Closed By", Value: closedBy, Inline: true},
		{Name: "Category", Value: string(t.Category), Inline: true},
	}
	if t.ResolvedBy != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Resolved By", Value: t.ResolvedBy, Inline: true})
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Ticket #%d Closed", t.Number),
		Description: "This channel will be removed shortly.",
		Color:       ColorClosed,
		Fields:      fields,
		Timestamp:   timestamp(),
	}
}

func priceLine(o *domain.Order) string {
	if !o.DiscountApplied {
		return fmt.Sprintf("$%s", o.Price.StringFixed(2))
	}
	return fmt.Sprintf("~~$%s~~ **$%s** (%s: -$%s)",
		o.OriginalPrice.StringFixed(2), o.Price.StringFixed(2), o.DiscountCode, o.DiscountAmount.StringFixed(2))
}

// orderIntroEmbed opens the private order channel with the full order recap.
func orderIntroEmbed(o *domain.Order) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Order #%s", o.OrderID),
		Description: fmt.Sprintf(
			"Thanks for your purchase, <@%s>! A staff member will process your order here.", o.UserID),
		Color: ColorOrder,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Account", Value: fmt.Sprintf("%s (%s)", o.AccountType, o.Region), Inline: true},
			{Name: "Price", Value: priceLine(o), Inline: true},
			{Name: "Payment", Value: o.PaymentMethod, Inline: true},
			{Name: "Notes", Value: truncate(o.AdditionalNotes, config.MaxFieldValueLen), Inline: false},
		},
		Timestamp: timestamp(),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Creatok Store"},
	}
}

func orderIntroControls(o *domain.Order) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Cancel Order",
					Style:    discordgo.DangerButton,
					CustomID: CancelOrderID(o.OrderID),
					Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
				},
			},
		},
	}
}

// staffOrderEmbed alerts the staff orders channel about a new submission.
func staffOrderEmbed(o *domain.Order) *discordgo.MessageEmbed {
	channel := "not created"
	if o.ChannelID != "" {
		channel = fmt.Sprintf("<#%s>", o.ChannelID)
	}
	return &discordgo.MessageEmbed{
		Title: "🛒 New Order",
		Color: ColorOrder,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Order ID", Value: o.OrderID, Inline: true},
			{Name: "Buyer", Value: fmt.Sprintf("%s (<@%s>)", o.UserTag, o.UserID), Inline: true},
			{Name: "Account", Value: fmt.Sprintf("%s (%s)", o.AccountType, o.Region), Inline: true},
			{Name: "Price", Value: priceLine(o), Inline: true},
			{Name: "Payment", Value: o.PaymentMethod, Inline: true},
			{Name: "Channel", Value: channel, Inline: true},
		},
		Timestamp: timestamp(),
	}
}

func deliveredEmbed(o *domain.Order) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "✅ Order Delivered",
		Description: fmt.Sprintf(
			"Your order **#%s** (%s, %s) is complete. Thanks for shopping with Creatok!",
			o.OrderID, o.AccountType, o.Region),
		Color:     ColorResolved,
		Timestamp: timestamp(),
	}
}

func cancelledEmbed(o *domain.Order, actorTag string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "❌ Order Cancelled",
		Description: fmt.Sprintf(
			"Order **#%s** (%s, %s) was cancelled by %s. Open a support ticket if this was a mistake.",
			o.OrderID, o.AccountType, o.Region, actorTag),
		Color:     ColorClosed,
		Timestamp: timestamp(),
	}
}

// DiscountListEmbed renders the active code list for staff.
func DiscountListEmbed(discounts []domain.Discount) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, d := range discounts {
		state := "🟢"
		if !d.IsActive {
			state = "🔴"
		}
		value := d.Value.String() + "%"
		if d.Type == domain.DiscountTypeFixedAmount {
			value = "$" + d.Value.StringFixed(2)
		}
		used := fmt.Sprintf("%d", d.UsageCount)
		if d.UsageLimit != nil {
			used = fmt.Sprintf("%d/%d", d.UsageCount, *d.UsageLimit)
		}
		fmt.Fprintf(&b, "%s **%s** - %s off, used %s\n", state, d.Code, value, used)
	}
	if b.Len() == 0 {
		b.WriteString("No discount codes configured.")
	}
	return &discordgo.MessageEmbed{
		Title:       "🎟️ Discount Codes",
		Description: truncate(b.String(), config.MaxEmbedDescriptionLen),
		Color:       ColorDiscount,
		Timestamp:   timestamp(),
	}
}

// ProductListEmbed renders the catalog for one region's buy flow.
func ProductListEmbed(region string, products []domain.Product) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, p := range products {
		fmt.Fprintf(&b, "**%s** - $%s", p.Label, p.Price.StringFixed(2))
		if p.Followers != "" {
			fmt.Fprintf(&b, " (%s followers)", p.Followers)
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		b.WriteString("No accounts listed for this region right now.")
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🛍️ %s Accounts", region),
		Description: truncate(b.String(), config.MaxEmbedDescriptionLen),
		Color:       ColorOrder,
		Timestamp:   timestamp(),
	}
}

// AccountSelectMenu offers one region's products as a select menu. Each
// option value is an encoded order form so the modal handler needs no state.
func AccountSelectMenu(region string, products []domain.Product) []discordgo.MessageComponent {
	opts := make([]discordgo.SelectMenuOption, 0, len(products))
	for _, p := range products {
		opts = append(opts, discordgo.SelectMenuOption{
			Label:       fmt.Sprintf("%s - $%s", p.Label, p.Price.StringFixed(2)),
			Value:       EncodeOrderForm(OrderForm{Region: region, AccountType: p.Label, Price: p.Price}),
			Description: truncate(p.Followers, 100),
		})
	}
	if len(opts) == 0 {
		return nil
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    AccountSelectID,
					Placeholder: "Choose an account...",
					Options:     opts,
				},
			},
		},
	}
}

// orderModal is the purchase form shown after picking a product.
func OrderModal(form OrderForm) (customID, title string, components []discordgo.MessageComponent) {
	title = fmt.Sprintf("Order: %s (%s)", form.AccountType, form.Region)
	components = []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    "payment_method",
				Label:       "Payment method (PayPal, BTC, ...)",
				Style:       discordgo.TextInputShort,
				Required:    true,
				MaxLength:   50,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    "discount_code",
				Label:       "Discount code (optional)",
				Style:       discordgo.TextInputShort,
				Required:    false,
				MaxLength:   30,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    "notes",
				Label:       "Anything we should know? (optional)",
				Style:       discordgo.TextInputParagraph,
				Required:    false,
				MaxLength:   500,
			},
		}},
	}
	return EncodeOrderForm(form), title, components
}
