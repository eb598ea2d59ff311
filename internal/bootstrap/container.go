package bootstrap

import (
	"context"
	"log"

	"support-chat-be/internal/config"
	"support-chat-be/internal/controller"
	"support-chat-be/internal/entity"
	"support-chat-be/internal/pkg/logger"
	"support-chat-be/internal/repository/implementation"
	"support-chat-be/internal/repository/unitofwork"
	"support-chat-be/internal/service"
	"support-chat-be/pkg/embedding"
	"support-chat-be/pkg/events"
	"support-chat-be/pkg/llm/factory"
	pktNats "support-chat-be/pkg/nats"
	"support-chat-be/pkg/rag"
	"support-chat-be/pkg/ragcontext"
	"support-chat-be/pkg/retrieval"
	"support-chat-be/pkg/websearch"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const processDocumentTopic = "PROCESS_DOCUMENT"

type Container struct {
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController

	// Background services, run by main.go
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-process bus for the ingestion pipeline
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		provider, err := embedding.NewOpenAIProvider(cfg.Keys.OpenAI, "")
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize embedding provider: %v", err)
		}
		embeddingProvider = provider
		log.Printf("[INFO] Using Embedding Provider: OPENAI")
	}

	// Generation chain: configured family first, alternate as fallback
	primaryKey := cfg.Keys.OpenAI
	if cfg.Ai.LLMProvider == entity.ProviderAnthropic {
		primaryKey = cfg.Keys.Anthropic
	}
	llmChain, err := factory.NewChain(cfg.Ai.LLMProvider, primaryKey, cfg.Ai.LLMModel, map[string]string{
		entity.ProviderOpenAI:    cfg.Keys.OpenAI,
		entity.ProviderAnthropic: cfg.Keys.Anthropic,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// NATS lifecycle bus, optional
	var natsPub *pktNats.Publisher
	if cfg.App.NatsEnabled {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}
	if natsPub != nil {
		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else if err := natsSub.SubscribeLifecycle("document-audit", documentAuditHandler(sysLogger)); err != nil {
			log.Printf("[WARN] Failed to subscribe to lifecycle events: %v", err)
		}
	}

	// Repositories used outside units of work
	docRepo := implementation.NewDocumentRepository(db)
	chunkRepo := implementation.NewDocumentChunkRepository(db)
	aiConfigRepo := implementation.NewAiConfigRepository(db)
	usageRepo := implementation.NewUsageLogRepository(db)
	knowledgeRepo := implementation.NewKnowledgeRepository(db)

	// Retrieval core
	retriever := retrieval.NewRetriever(chunkRepo, docRepo, embeddingProvider, chunkRepo, sysLogger)
	assembler := ragcontext.NewAssembler()

	// External knowledge chain
	var searchers []websearch.Searcher
	if cfg.Keys.Perplexity != "" {
		searchers = append(searchers, websearch.NewPerplexityClient(cfg.Keys.Perplexity))
	}
	if cfg.Ai.SearxURL != "" {
		searchers = append(searchers, websearch.NewSearxClient(cfg.Ai.SearxURL))
	}
	searchers = append(searchers, websearch.NewDuckDuckGoClient())
	searchChain := websearch.NewChain(sysLogger, searchers...)

	topicCache := rag.NewTopicCache(knowledgeRepo)

	orchestrator := rag.NewOrchestrator(rag.Config{
		Documents:          docRepo,
		Retriever:          retriever,
		Assembler:          assembler,
		Providers:          llmChain,
		Search:             searchChain,
		Knowledge:          knowledgeRepo,
		Topics:             topicCache,
		AiConfig:           aiConfigRepo,
		Usage:              usageRepo,
		Logger:             sysLogger,
		DefaultModel:       cfg.Ai.LLMModel,
		DefaultTemperature: cfg.Ai.Temperature,
	})

	// Services
	publisherService := service.NewPublisherService(processDocumentTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		processDocumentTopic,
		uowFactory,
		embeddingProvider,
		natsPub,
		sysLogger,
	)
	documentService := service.NewDocumentService(uowFactory, publisherService, natsPub)
	chatService := service.NewChatService(orchestrator, cfg.Ai.DefaultLanguage)

	return &Container{
		ChatController:     controller.NewChatController(chatService),
		DocumentController: controller.NewDocumentController(documentService),
		ConsumerService:    consumerService,
	}
}

// documentAuditHandler writes an audit line for every lifecycle event seen on
// the bus, so status transitions are traceable across instances.
func documentAuditHandler(sysLogger logger.ILogger) pktNats.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		sysLogger.Info("audit", "document lifecycle event", map[string]interface{}{
			"type":    event.EventType(),
			"payload": event.Payload(),
		})
		return nil
	}
}
