package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/bangla-ai/platform/internal/adapter/ai/openai"
	"github.com/bangla-ai/platform/internal/adapter/cache"
	"github.com/bangla-ai/platform/internal/adapter/http/fiber/handlers"
	"github.com/bangla-ai/platform/internal/adapter/http/fiber/middleware"
	"github.com/bangla-ai/platform/internal/adapter/queue"
	"github.com/bangla-ai/platform/internal/adapter/storage/postgres"
	"github.com/bangla-ai/platform/internal/adapter/vault"
	wsAdapter "github.com/bangla-ai/platform/internal/adapter/websocket"
	"github.com/bangla-ai/platform/internal/observability/telemetry"
	"github.com/bangla-ai/platform/internal/service/analytics"
	"github.com/bangla-ai/platform/internal/service/catalog"
	"github.com/bangla-ai/platform/internal/service/dialogue"
	"github.com/bangla-ai/platform/internal/service/language"
	"github.com/bangla-ai/platform/internal/service/localization"
	"github.com/bangla-ai/platform/internal/service/nlu"
	"github.com/bangla-ai/platform/internal/service/notification"
	"github.com/bangla-ai/platform/internal/service/orchestrator"
	"github.com/bangla-ai/platform/internal/service/resolver"
	"github.com/bangla-ai/platform/internal/service/whatsapp"
	"github.com/bangla-ai/platform/pkg/config"
)

const (
	serviceName    = "bangla-dialogue-engine"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Bangla Dialogue Engine",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Resolve secrets from Vault when enabled
	if cfg.Vault.Enabled {
		secrets, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		if key, err := secrets.GetOpenAIAPIKey(); err == nil {
			cfg.OpenAI.APIKey = key
		}
		if key, err := secrets.GetSendGridAPIKey(); err == nil {
			cfg.Notification.Email.APIKey = key
		}
		if dsn, err := secrets.GetDatabaseCredentials(); err == nil {
			cfg.Database.URL = dsn
		}
	}

	// 4. Initialize OpenTelemetry (Distributed Tracing)
	tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.Jaeger.Endpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// 5. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// 6. Initialize Cache (Redis, local fallback for development)
	appCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-process cache", zap.Error(err))
		appCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer appCache.Close()

	// 7. Initialize Message Queue
	messageQueue, err := queue.New(cfg.Queue.Provider, cfg.Queue.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer messageQueue.Close()

	// 8. Initialize Repositories
	productRepo := postgres.NewProductRepository(db, logger)
	templateRepo := postgres.NewTemplateRepository(db, logger)
	conversationRepo := postgres.NewConversationRepository(db, logger)

	// 9. Initialize NLU (model primary, keyword fallback)
	modelClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
	detector := language.NewDetector()

	var keywordTable nlu.KeywordTable
	if cfg.NLU.KeywordFile != "" {
		keywordTable, err = nlu.LoadKeywordTable(cfg.NLU.KeywordFile)
		if err != nil {
			logger.Fatal("Failed to load keyword table", zap.Error(err))
		}
	}
	nluService := nlu.NewService(modelClient, detector, keywordTable, cfg.OpenAI.Timeout, logger)

	// 10. Initialize Localization
	localizer := localization.NewEngine(templateRepo, logger)
	if err := localizer.Preload(context.Background()); err != nil {
		logger.Warn("Template preload failed, defaults only", zap.Error(err))
	}

	// 11. Initialize Catalog and Dialogue
	catalogService := catalog.NewService(productRepo, localizer, logger)
	dialogueService, err := dialogue.NewService(catalogService, localizer, logger)
	if err != nil {
		logger.Fatal("Failed to build dialogue registry", zap.Error(err))
	}

	// 12. Initialize Resolver Registry
	resolverRegistry := resolver.NewRegistry(cfg.Resolver.BaseURL, cfg.Resolver.APIKey, logger)

	// 13. Initialize Agent Notifications
	notifier, err := notification.NewService(&notification.Config{
		Provider:       cfg.Notification.Email.Provider,
		FromEmail:      cfg.Notification.Email.From,
		FromName:       cfg.Notification.Email.FromName,
		AgentEmail:     cfg.Notification.AgentEmail,
		SendGridAPIKey: cfg.Notification.Email.APIKey,
		SMTPHost:       cfg.Notification.Email.SMTPHost,
		SMTPPort:       cfg.Notification.Email.SMTPPort,
		SMTPUsername:   cfg.Notification.Email.SMTPUsername,
		SMTPPassword:   cfg.Notification.Email.SMTPPassword,
		SMTPUseTLS:     cfg.Notification.Email.SMTPUseTLS,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize notifications", zap.Error(err))
	}

	// 14. Initialize Orchestrator (the full pipeline)
	orchestratorService := orchestrator.NewService(
		nluService,
		dialogueService,
		resolverRegistry,
		localizer,
		appCache,
		conversationRepo,
		messageQueue,
		notifier,
		logger,
	)

	// 15. Initialize WebSocket Hub (live dashboard) and webchat stream
	wsHub := wsAdapter.NewHub()
	go wsHub.Run()

	if err := messageQueue.Subscribe(orchestrator.DecisionsSubject, func(msg []byte) error {
		wsHub.Broadcast(msg)
		return nil
	}); err != nil {
		logger.Warn("Decision feed subscription failed", zap.Error(err))
	}

	chatStreamHandler := wsAdapter.NewChatStreamHandler(orchestratorService, logger)

	// 15a. Analytics aggregator feeding off the decision stream
	aggregator := analytics.NewAggregator(logger)
	if err := aggregator.Start(messageQueue, orchestrator.DecisionsSubject); err != nil {
		logger.Warn("Analytics subscription failed", zap.Error(err))
	}

	// 15b. Outbound WhatsApp replies, when a provider is configured
	var replier handlers.Replier
	if cfg.Notification.WhatsApp.Provider != "" {
		whatsappService, err := whatsapp.NewService(whatsapp.Config{
			Provider:    cfg.Notification.WhatsApp.Provider,
			AccountSID:  cfg.Notification.WhatsApp.AccountSID,
			AuthToken:   cfg.Notification.WhatsApp.AuthToken,
			FromPhone:   cfg.Notification.WhatsApp.FromPhone,
			MetaToken:   cfg.Notification.WhatsApp.MetaToken,
			MetaPhoneID: cfg.Notification.WhatsApp.MetaPhoneID,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize WhatsApp provider", zap.Error(err))
		}
		replier = whatsappService
	}

	// 16. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.NewCORS(cfg.CORS))
	app.Use(middleware.CircuitBreaker(logger))

	// Health Check Endpoints
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := sqlDB.Ping(); err != nil {
			return c.Status(503).SendString("Database not ready")
		}
		if err := appCache.Ping(); err != nil {
			return c.Status(503).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// API v1 Routes
	v1 := app.Group("/api/v1")

	// Channel webhooks (provider-authenticated, not JWT)
	webhookHandler := handlers.NewWebhookHandler(orchestratorService, cfg.Webhook.VerifyToken, replier, logger)
	v1.Get("/webhooks/:channel", webhookHandler.Verify)
	v1.Post("/webhooks/:channel", webhookHandler.Receive)

	// Protected routes
	protected := v1.Group("", middleware.TenantRequired(cfg.JWT.Secret))

	// Chat routes
	chatHandler := handlers.NewChatHandler(orchestratorService, conversationRepo, logger)
	protected.Post("/chat/messages", chatHandler.Send)
	protected.Get("/conversations/:id/turns", chatHandler.History)

	// Catalog routes
	productHandler := handlers.NewProductHandler(productRepo, logger)
	protected.Get("/products", productHandler.List)
	protected.Get("/products/search", productHandler.Search)
	protected.Get("/products/categories", productHandler.Categories)
	protected.Get("/products/:id", productHandler.Get)

	admin := protected.Group("", middleware.AdminRequired())
	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)

	// Template routes (admin)
	templateHandler := handlers.NewTemplateHandler(templateRepo, localizer, logger)
	admin.Get("/templates", templateHandler.List)
	admin.Get("/templates/:key", templateHandler.Get)
	admin.Put("/templates", templateHandler.Upsert)
	admin.Delete("/templates/:key", templateHandler.Delete)

	// Analytics routes
	analyticsHandler := handlers.NewAnalyticsHandler(aggregator, logger)
	protected.Get("/analytics/summary", analyticsHandler.Summary)

	// WebSocket routes
	wsAdapter.SetupChatRoutes(app, chatStreamHandler)

	app.Use("/ws/decisions", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/decisions", websocket.New(func(c *websocket.Conn) {
		wsHub.AddClient(c, c.Query("tenantId"))
	}))

	// 17. Start Background Workers
	go startBackgroundWorkers(messageQueue, logger)

	// 18. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 19. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// startBackgroundWorkers runs async consumers off the message queue.
func startBackgroundWorkers(mq queue.MessageQueue, logger *zap.Logger) {
	logger.Info("Starting background workers")

	// Worker: audit log of decision events
	if err := mq.Subscribe(orchestrator.DecisionsSubject, func(msg []byte) error {
		logger.Debug("Decision event", zap.ByteString("msg", msg))
		return nil
	}); err != nil {
		logger.Warn("Audit subscription failed", zap.Error(err))
	}
}
