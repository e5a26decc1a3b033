package handler

import (
	"github.com/bwmarrin/discordgo"

	"github.com/creatok/storebot/internal/config"
	"github.com/creatok/storebot/internal/service"
)

// Handler holds all dependencies needed by command and component handlers.
type Handler struct {
	session   *discordgo.Session
	cfg       *config.Config
	tickets   *service.TicketService
	orders    *service.OrderService
	discounts *service.DiscountService
	users     *service.UserService
	catalog   *service.CatalogService
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Session   *discordgo.Session
	Cfg       *config.Config
	Tickets   *service.TicketService
	Orders    *service.OrderService
	Discounts *service.DiscountService
	Users     *service.UserService
	Catalog   *service.CatalogService
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		session:   deps.Session,
		cfg:       deps.Cfg,
		tickets:   deps.Tickets,
		orders:    deps.Orders,
		discounts: deps.Discounts,
		users:     deps.Users,
		catalog:   deps.Catalog,
	}
}

// isStaff reports whether the interacting member carries the staff role or is
// a configured admin.
func (h *Handler) isStaff(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	if h.cfg.IsAdmin(i.Member.User.ID) {
		return true
	}
	for _, role := range i.Member.Roles {
		if role == h.cfg.StaffRoleID {
			return true
		}
	}
	return false
}
