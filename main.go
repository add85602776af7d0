package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/aidalabs/aida-bot/internal/completion"
	"github.com/aidalabs/aida-bot/internal/config"
	"github.com/aidalabs/aida-bot/internal/handlers"
	"github.com/aidalabs/aida-bot/internal/middleware"
	"github.com/aidalabs/aida-bot/internal/pipeline"
	"github.com/aidalabs/aida-bot/internal/quota"
	"github.com/aidalabs/aida-bot/store"
	"github.com/aidalabs/aida-bot/types"
)

func main() {
	cfg, err := config.Load("config.env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rdb, err := store.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB, "aida")
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	pgStore, err := store.NewPostgresStore(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pgStore.Close()

	var userStore types.UserStore = store.NewCachedUserStore(pgStore, rdb, cfg.UserCacheTTLHours, logger)

	httpClient := &http.Client{
		Timeout: 2 * time.Minute,
	}
	pollTimeout := 50 * time.Second

	b, err := bot.New(
		cfg.BotToken,
		bot.WithHTTPClient(pollTimeout, httpClient),
	)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	llm := completion.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	policy := quota.NewPolicy(cfg.DailyMessageLimit)
	pipe := pipeline.New(userStore, policy, llm, &handlers.TelegramSender{Bot: b}, logger)

	h := handlers.NewHandlers(userStore, pipe, logger)
	middlewares := middleware.NewMessageAnalyzer()

	handlerChain := middlewares.ExtractIdentityMiddleware(
		middlewares.AnalyzeMessageMiddleware(
			h.MainHandler,
		),
	)

	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil
	}, handlerChain)

	logger.Info("AIDA bot started")
	b.Start(ctx)
}
