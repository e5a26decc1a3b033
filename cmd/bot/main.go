package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	storebot "github.com/creatok/storebot"
	"github.com/creatok/storebot/internal/config"
	"github.com/creatok/storebot/internal/discord"
	"github.com/creatok/storebot/internal/handler"
	"github.com/creatok/storebot/internal/middleware"
	"github.com/creatok/storebot/internal/repository"
	"github.com/creatok/storebot/internal/scheduler"
	"github.com/creatok/storebot/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(storebot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	discountRepo := repository.NewDiscountRepository(pool)
	productRepo := repository.NewProductRepository(pool)

	// Create gateway session
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		os.Exit(1)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages

	// Initialize services
	channels := discord.NewChannelManager(session, cfg)
	notifier := discord.NewNotifier(session, cfg)
	userService := service.NewUserService(userRepo)
	discountService := service.NewDiscountService(discountRepo)
	catalogService := service.NewCatalogService(productRepo)
	ticketService := service.NewTicketService(
		service.NewTicketRegistry(), channels, notifier, scheduler.New())
	orderService := service.NewOrderService(orderRepo, userRepo, discountService, channels, notifier)

	// Initialize handler
	h := handler.New(handler.Deps{
		Session:   session,
		Cfg:       cfg,
		Tickets:   ticketService,
		Orders:    orderService,
		Discounts: discountService,
		Users:     userService,
		Catalog:   catalogService,
	})

	// Route every interaction through the middleware chain
	handle := middleware.Chain(h.Handle,
		middleware.Recover(),
		middleware.Logging(),
		middleware.RateLimit(),
		middleware.UserLoader(userService),
	)
	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		handle(ctx, s, i)
	})
	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		slog.Info("gateway ready", "user", r.User.Username, "guilds", len(r.Guilds))
	})

	// Connect
	if err := session.Open(); err != nil {
		slog.Error("failed to open gateway connection", "error", err)
		os.Exit(1)
	}
	defer session.Close()

	if cfg.RegisterCommands {
		if err := h.RegisterCommands(); err != nil {
			slog.Error("failed to register commands", "error", err)
			os.Exit(1)
		}
		slog.Info("slash commands registered", "guild", cfg.GuildID)
	}

	slog.Info("bot started")
	<-ctx.Done()
	slog.Info("shutting down")
}
