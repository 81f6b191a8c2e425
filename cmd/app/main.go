package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retail-ai-assistant/internal/config"
	"retail-ai-assistant/internal/domain/ports/adapter"
	"retail-ai-assistant/internal/domain/ports/repository"
	aiAdapters "retail-ai-assistant/internal/infra/adapters/ai"
	pg "retail-ai-assistant/internal/infra/db/postgres"
	"retail-ai-assistant/internal/infra/logging"
	"retail-ai-assistant/internal/infra/memory"
	"retail-ai-assistant/internal/infra/metrics"
	red "retail-ai-assistant/internal/infra/redis"
	"retail-ai-assistant/internal/infra/retrieval"
	"retail-ai-assistant/internal/infra/web"
	"retail-ai-assistant/internal/infra/worker"
	"retail-ai-assistant/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop AI fallback, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Session store ----
	var (
		history repository.HistoryRepository
		states  repository.OrderStateRepository
	)
	switch cfg.Session.Backend {
	case "redis":
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		history = red.NewHistoryRepo(redisClient, cfg.Session.HistoryLimit, cfg.Session.TTL)
		states = red.NewOrderStateRepo(redisClient, cfg.Session.TTL)
	default:
		store := memory.NewSessionStore(cfg.Session.HistoryLimit)
		history = store
		states = store
	}
	logger.Info().Str("backend", cfg.Session.Backend).Msg("session store ready")

	// ---- AI adapters (Gemini -> OpenAI-compatible -> noop in dev) ----
	var (
		gen      adapter.TextGenerator
		embedder adapter.Embedder
		provider string
	)
	switch {
	case cfg.AI.GeminiKey != "":
		gemini, err := aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.Model, cfg.AI.EmbedModel, cfg.AI.MaxOutputTokens)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini adapter")
		}
		gen, embedder, provider = gemini, gemini, "gemini"
	case cfg.AI.OpenAIKey != "":
		oa, err := aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.Model, cfg.AI.OpenAIBaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai adapter")
		}
		gen, provider = oa, "openai"
		logger.Warn().Msg("no gemini key: retrieval will use noop embeddings")
		embedder = aiAdapters.NewNoopAIAdapter()
	case cfg.Runtime.Dev:
		noop := aiAdapters.NewNoopAIAdapter()
		gen, embedder, provider = noop, noop, "noop"
	default:
		logger.Fatal().Msg("no AI provider configured: set ai.gemini_key or ai.openai_key")
	}
	gen = aiAdapters.NewLimitedGenerator(gen, provider, cfg.AI.ConcurrentLimit)
	logger.Info().Str("provider", provider).Str("model", cfg.AI.Model).Msg("AI adapter ready")

	// ---- Retrieval ----
	retriever := retrieval.NewPgVectorRetriever(pool, embedder, cfg.Retrieval.Collections, cfg.Retrieval.QueryPrefix, logger)

	// ---- Order persistence (background writes) ----
	workerPool := worker.NewPool(4, logger)
	workerPool.Start(ctx)
	orders := worker.NewAsyncOrderWriter(pg.NewOrderRepo(pool), workerPool, logger)

	// ---- Use cases ----
	intents := usecase.NewIntentClassifier(gen)
	sentiments := usecase.NewSentimentClassifier(gen)
	answers := usecase.NewAnswerGenerator(gen, logger)
	orderFlow := usecase.NewOrderFlowUC(states, orders, logger)
	dialogue := usecase.NewDialogueUseCase(intents, sentiments, answers, orderFlow, retriever, history, states, cfg.Retrieval.TopK, logger)

	// ---- HTTP ----
	srv := web.NewServer(cfg.Server.Port, dialogue, logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		logger.Error().Err(err).Msg("http server stopped")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	workerPool.Stop()
}
