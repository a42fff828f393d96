package bootstrap

import (
	"context"
	"log"

	"retail-assistant-be/internal/config"
	"retail-assistant-be/internal/controller"
	"retail-assistant-be/internal/handler"
	"retail-assistant-be/internal/pkg/logger"
	"retail-assistant-be/internal/pkg/mailer"
	"retail-assistant-be/internal/repository/memory"
	"retail-assistant-be/internal/repository/unitofwork"
	"retail-assistant-be/internal/service"
	"retail-assistant-be/internal/websocket"
	"retail-assistant-be/pkg/dialogue"
	"retail-assistant-be/pkg/embedding"
	"retail-assistant-be/pkg/llm/factory"
	"retail-assistant-be/pkg/rag/history"
	"retail-assistant-be/pkg/rag/pipeline"
	"retail-assistant-be/pkg/rag/retrieval"

	pktNats "retail-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	KnowledgeController controller.IKnowledgeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-Memory Session Registry
	sessionRegistry := memory.NewSessionRegistry()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.EmbedChunkTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EmbedChunkTopic,
		uowFactory,
		embeddingProvider,
	)

	directory := service.NewCustomerDirectory(uowFactory, natsPub, sysLogger)
	machine := dialogue.NewMachine(directory)

	retriever := retrieval.NewRetrieverWithTopK(uowFactory, embeddingProvider, cfg.Ai.RetrievalTopK)
	historyLoader := history.NewLoaderWithWindow(cfg.Ai.HistoryWindow)
	answerPipeline := pipeline.NewAnswerPipeline(retriever, llmProvider, historyLoader, sysLogger)

	assistantService := service.NewAssistantService(
		sessionRegistry,
		machine,
		answerPipeline,
		uowFactory,
		sysLogger,
	)
	knowledgeService := service.NewKnowledgeService(
		uowFactory,
		publisherService,
		retriever,
		sysLogger,
	)

	// Notification system
	notifService := service.NewNotificationService(natsSub, wsHub, emailService, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		ConsumerService: consumerService,
	}
}
