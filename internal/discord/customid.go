package discord

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/creatok/storebot/internal/domain"
)

// Component custom IDs route button, select, and modal interactions back to
// their handlers. Stable IDs survive restarts, so state rides in the ID
// itself rather than in process memory.
const (
	ResolveTicketID      = "resolve_ticket"
	CloseTicketID        = "close_ticket"
	ShowAccountOptionsID = "show_account_options"
	AccountSelectID      = "account_selection"

	ticketCreatePrefix = "create_ticket_"
	cancelOrderPrefix  = "cancel_order_"
	buyPrefix          = "buy_"
	regionPrefix       = "region_"
	channelPrefix      = "channel_"
	orderModalPrefix   = "order_"
)

func TicketCreateID(category domain.TicketCategory) string {
	return ticketCreatePrefix + string(category)
}

// ParseTicketCategory extracts the category from a create-ticket button ID.
func ParseTicketCategory(customID string) (domain.TicketCategory, error) {
	raw, ok := strings.CutPrefix(customID, ticketCreatePrefix)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCustomID, customID)
	}
	switch c := domain.TicketCategory(raw); c {
	case domain.TicketCategoryGeneral, domain.TicketCategoryPurchase, domain.TicketCategoryTechnical:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown ticket category %q", domain.ErrInvalidCustomID, raw)
}

func CancelOrderID(orderID string) string {
	return cancelOrderPrefix + orderID
}

func ParseCancelOrder(customID string) (string, error) {
	orderID, ok := strings.CutPrefix(customID, cancelOrderPrefix)
	if !ok || orderID == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCustomID, customID)
	}
	return orderID, nil
}

func BuyID(region string) string {
	return buyPrefix + strings.ToLower(region)
}

func ParseBuyRegion(customID string) (string, error) {
	region, ok := strings.CutPrefix(customID, buyPrefix)
	if !ok || region == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCustomID, customID)
	}
	return strings.ToUpper(region), nil
}

func RegionRoleID(region string) string {
	return regionPrefix + strings.ToLower(region)
}

func ParseRegionRole(customID string) (string, error) {
	region, ok := strings.CutPrefix(customID, regionPrefix)
	if !ok || region == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCustomID, customID)
	}
	return strings.ToUpper(region), nil
}

func ChannelJumpID(region string) string {
	return channelPrefix + strings.ToLower(region)
}

func ParseChannelJump(customID string) (string, error) {
	region, ok := strings.CutPrefix(customID, channelPrefix)
	if !ok || region == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCustomID, customID)
	}
	return strings.ToUpper(region), nil
}

// OrderForm identifies the product a purchase modal was opened for. The
// modal's custom ID carries it so the submission handler can reconstruct the
// product without any server-side session.
type OrderForm struct {
	Region      string
	AccountType string
	Price       decimal.Decimal
}

// EncodeOrderForm builds an order modal ID like
// "order_US_Aged_Account_300". Spaces in the account type become
// underscores; the price is always the last segment.
func EncodeOrderForm(f OrderForm) string {
	return orderModalPrefix + f.Region + "_" + strings.ReplaceAll(f.AccountType, " ", "_") + "_" + f.Price.String()
}

// ParseOrderForm is the inverse of EncodeOrderForm.
func ParseOrderForm(customID string) (OrderForm, error) {
	raw, ok := strings.CutPrefix(customID, orderModalPrefix)
	if !ok {
		return OrderForm{}, fmt.Errorf("%w: %q", domain.ErrInvalidCustomID, customID)
	}
	parts := strings.Split(raw, "_")
	if len(parts) < 3 {
		return OrderForm{}, fmt.Errorf("%w: %q", domain.ErrInvalidCustomID, customID)
	}
	price, err := decimal.NewFromString(parts[len(parts)-1])
	if err != nil {
		return OrderForm{}, fmt.Errorf("%w: bad price in %q", domain.ErrInvalidCustomID, customID)
	}
	return OrderForm{
		Region:      parts[0],
		AccountType: strings.Join(parts[1:len(parts)-1], " "),
		Price:       price,
	}, nil
}

// IsOrderForm reports whether a modal custom ID belongs to the purchase form.
func IsOrderForm(customID string) bool {
	return strings.HasPrefix(customID, orderModalPrefix)
}

// IsTicketCreate reports whether a button custom ID opens a ticket.
func IsTicketCreate(customID string) bool {
	return strings.HasPrefix(customID, ticketCreatePrefix)
}

// IsCancelOrder reports whether a button custom ID cancels an order.
func IsCancelOrder(customID string) bool {
	return strings.HasPrefix(customID, cancelOrderPrefix)
}

// IsBuy reports whether a button custom ID starts the buy flow for a region.
func IsBuy(customID string) bool {
	return strings.HasPrefix(customID, buyPrefix)
}

// IsRegionRole reports whether a button custom ID assigns a region role.
func IsRegionRole(customID string) bool {
	return strings.HasPrefix(customID, regionPrefix)
}

// IsChannelJump reports whether a button custom ID links a region channel.
func IsChannelJump(customID string) bool {
	return strings.HasPrefix(customID, channelPrefix)
}
