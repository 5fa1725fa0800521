package bootstrap

import (
	"context"
	"log"

	"lexi-chat-be/internal/config"
	"lexi-chat-be/internal/controller"
	"lexi-chat-be/internal/handler"
	"lexi-chat-be/internal/pkg/logger"
	"lexi-chat-be/internal/repository/contract"
	"lexi-chat-be/internal/repository/implementation"
	"lexi-chat-be/internal/repository/memory"
	"lexi-chat-be/internal/service"
	"lexi-chat-be/internal/websocket"
	"lexi-chat-be/pkg/document"
	"lexi-chat-be/pkg/llm/factory"

	pktNats "lexi-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController
	AssistController   controller.IAssistController
	UsageController    controller.IUsageController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	EventHandler *handler.EventHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 2.5 Infrastructure
	// NATS mirror is optional; the in-process bus still works without it.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	redisUp := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		redisUp = false
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/events.log")
	var hubRdb *redis.Client
	if redisUp {
		hubRdb = rdb
	}
	wsHub := websocket.NewHub(hubRdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EventTopic,
		wsHub,
		natsPub,
		sysLogger,
	)

	sessionService := service.NewSessionService(publisherService, sysLogger)

	var usageRepo contract.UsageRepository
	if redisUp {
		usageRepo = implementation.NewUsageRepositoryRedis(rdb)
	} else {
		usageRepo = memory.NewUsageRepository()
	}
	usageService := service.NewUsageService(
		usageRepo,
		service.SystemClock{},
		cfg.Chat.ThinkLongerDailyLimit,
		sysLogger,
	)

	chatService := service.NewChatService(
		sessionService,
		usageService,
		llmProvider,
		service.ModelConfig{
			Default:     cfg.Ai.LLMModel,
			ThinkLonger: cfg.Ai.ThinkLongerModel,
		},
		sysLogger,
	)

	assistService := service.NewAssistService(sessionService, llmProvider, sysLogger)
	documentService := service.NewDocumentService(document.NewParser(), sysLogger)

	// 4. Controllers
	return &Container{
		ChatController:     controller.NewChatController(sessionService, chatService),
		DocumentController: controller.NewDocumentController(documentService),
		AssistController:   controller.NewAssistController(assistService),
		UsageController:    controller.NewUsageController(usageService),

		ConsumerService: consumerService,

		EventHandler: handler.NewEventHandler(wsHub, wsLogger),
		WebSocketHub: wsHub,
	}
}
