package bootstrap

import (
	"context"
	"log"

	"irene-companion-be/internal/config"
	"irene-companion-be/internal/controller"
	"irene-companion-be/internal/pkg/logger"
	"irene-companion-be/internal/repository/memory"
	"irene-companion-be/internal/repository/unitofwork"
	"irene-companion-be/internal/service"
	"irene-companion-be/internal/websocket"
	"irene-companion-be/pkg/chatbot"
	pktNats "irene-companion-be/pkg/nats"
	"irene-companion-be/pkg/safety"
	"irene-companion-be/pkg/sentiment"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	ProfileController controller.IProfileController
	QuoteController   controller.IQuoteController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS (flagged-message audit mirror; optional)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	var auditPub service.AuditPublisher
	if natsPub != nil {
		auditPub = natsPub
	}

	// Redis (cross-instance snapshot fan-out for the hub). Optional; the hub
	// runs local-only without it.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// WebSocket Hub
	hubLogger := logger.NewIsolatedLogger(cfg.App.HubLogFilePath)
	wsHub := websocket.NewHub(rdb, hubLogger)
	go wsHub.Run()

	// 3. Services
	sentimentClassifier := sentiment.NewClient(cfg.Chat.SentimentBaseURL)
	responseGenerator := chatbot.NewClient(cfg.Keys.GoogleGemini, cfg.Chat.GeminiModel)
	safetyFilter := safety.NewKeywordFilter(safety.DefaultKeywords...)
	sessionStateRepo := memory.NewSessionStateRepository()

	publisherService := service.NewPublisherService(cfg.Chat.SnapshotTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Chat.SnapshotTopic,
		wsHub, // Hub implements SnapshotDelivery
	)

	chatService := service.NewChatService(
		uowFactory,
		safetyFilter,
		sentimentClassifier,
		responseGenerator,
		publisherService,
		auditPub,
		sessionStateRepo,
		sysLogger,
	)
	profileService := service.NewProfileService(uowFactory)
	quoteService := service.NewQuoteService()

	// 4. Controllers
	return &Container{
		ConsumerService:   consumerService,
		WebSocketHub:      wsHub,
		ChatController:    controller.NewChatController(chatService, wsHub),
		ProfileController: controller.NewProfileController(profileService),
		QuoteController:   controller.NewQuoteController(quoteService),
	}
}
