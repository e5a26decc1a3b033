package handler

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/creatok/storebot/internal/discord"
	"github.com/creatok/storebot/internal/domain"
	"github.com/creatok/storebot/internal/middleware"
)

// Handle is the single gateway entry point: it routes every interaction to
// its command, component, or modal handler. It is wrapped by the middleware
// chain in main.
func (h *Handler) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	r := discord.NewResponder(s, i.Interaction)
	actor := h.actorFrom(i)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(ctx, r, i, actor)
	case discordgo.InteractionMessageComponent:
		h.handleComponent(ctx, r, i, actor)
	case discordgo.InteractionModalSubmit:
		h.handleModal(ctx, r, i, actor)
	}
}

func (h *Handler) actorFrom(i *discordgo.InteractionCreate) domain.Actor {
	u := middleware.InteractionUser(i)
	if u == nil {
		return domain.Actor{}
	}
	return domain.Actor{ID: u.ID, Tag: u.Username, IsStaff: h.isStaff(i)}
}

func (h *Handler) handleCommand(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "ticket":
		h.ticketCommand(ctx, r, i, actor)
	case "resolve":
		h.resolveTicket(ctx, r, i, actor)
	case "close":
		h.closeTicket(ctx, r, i, actor)
	case "my-orders":
		h.myOrders(ctx, r, actor)
	case "profile":
		h.profile(ctx, r, actor)
	case "order-info":
		h.orderInfo(ctx, r, i, actor)
	case "pending-orders":
		h.pendingOrders(ctx, r, actor)
	case "order-status":
		h.orderStatus(ctx, r, i, actor)
	case "complete-order":
		h.completeOrder(ctx, r, i, actor)
	case "discount":
		h.discountCommand(ctx, r, i, actor)
	case "add-product":
		h.addProduct(ctx, r, i, actor)
	case "remove-product":
		h.removeProduct(ctx, r, i, actor)
	case "update-price":
		h.updatePrice(ctx, r, i, actor)
	case "list-products":
		h.listProducts(ctx, r, actor)
	case "setup-tickets":
		h.setupTicketPanel(ctx, r, i, actor)
	case "setup-buy":
		h.setupBuyPanel(ctx, r, i, actor)
	default:
		slog.Warn("unknown command", "name", data.Name)
	}
}

func (h *Handler) handleComponent(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	customID := i.MessageComponentData().CustomID
	switch {
	case customID == discord.ResolveTicketID:
		h.resolveTicket(ctx, r, i, actor)
	case customID == discord.CloseTicketID:
		h.closeTicket(ctx, r, i, actor)
	case customID == discord.ShowAccountOptionsID:
		h.showRegionPicker(ctx, r)
	case customID == discord.AccountSelectID:
		h.accountSelected(ctx, r, i)
	case discord.IsTicketCreate(customID):
		h.createTicketButton(ctx, r, customID, actor)
	case discord.IsCancelOrder(customID):
		h.cancelOrderButton(ctx, r, customID, actor)
	case discord.IsBuy(customID):
		h.buyRegion(ctx, r, customID)
	case discord.IsRegionRole(customID):
		h.assignRegionRole(ctx, r, i, customID, actor)
	case discord.IsChannelJump(customID):
		h.channelJump(ctx, r, customID)
	default:
		slog.Warn("unknown component", "custom_id", customID)
	}
}

func (h *Handler) handleModal(ctx context.Context, r *discord.Responder, i *discordgo.InteractionCreate, actor domain.Actor) {
	customID := i.ModalSubmitData().CustomID
	if discord.IsOrderForm(customID) {
		h.orderSubmitted(ctx, r, i, customID, actor)
		return
	}
	slog.Warn("unknown modal", "custom_id", customID)
}

// replyErr sends a short ephemeral failure notice; the detailed error goes to
// the log only.
func replyErr(r *discord.Responder, msg string) {
	if err := r.Text("❌ "+msg, true); err != nil {
		slog.Warn("error reply failed", "error", err)
	}
}
