package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/onekill0503/dnd-bot/internal/analyzer"
	"github.com/onekill0503/dnd-bot/internal/config"
	"github.com/onekill0503/dnd-bot/internal/dice"
	v1 "github.com/onekill0503/dnd-bot/internal/handlers/api/v1"
	"github.com/onekill0503/dnd-bot/internal/narrative"
	"github.com/onekill0503/dnd-bot/internal/orchestrators/character"
	"github.com/onekill0503/dnd-bot/internal/orchestrators/session"
	"github.com/onekill0503/dnd-bot/internal/pkg/clock"
	"github.com/onekill0503/dnd-bot/internal/pkg/idgen"
	"github.com/onekill0503/dnd-bot/internal/redis"
	sessionrepo "github.com/onekill0503/dnd-bot/internal/repositories/session"
	"github.com/onekill0503/dnd-bot/internal/rules"
)

const (
	shutdownTimeout  = 30 * time.Second
	evictionInterval = 5 * time.Minute
)

var (
	httpAddr  string
	redisAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the dungeon master HTTP server with narration and session storage.`,
	RunE:  runServer,
}

func init() {
	serveCmd.Flags().StringVar(&httpAddr, "addr", "", "HTTP listen address (overrides DND_HTTP_ADDR)")
	serveCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address or URL (overrides DND_REDIS_ADDR)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if redisAddr != "" {
		cfg.RedisAddr = redisAddr
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	if cfg.SlogLevel() > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := buildRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	book := rules.Default()
	clk := clock.New()
	roller := dice.NewRoller(nil)

	characters, err := character.New(&character.Config{
		Roller:      roller,
		IDGenerator: idgen.NewUUID(idgen.PrefixItem),
		Rules:       book,
		Clock:       clk,
	})
	if err != nil {
		return fmt.Errorf("failed to create character orchestrator: %w", err)
	}

	actionAnalyzer, err := analyzer.New(&analyzer.Config{Roller: roller})
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	openAI := narrative.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OpenAITimeout,
	}
	generator, err := narrative.NewOpenAIGenerator(&openAI)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	prompts := narrative.NewPromptBuilder(book)
	bus := events.NewBus()

	narrator, err := buildNarrator(cfg, openAI, prompts, clk)
	if err != nil {
		return err
	}
	if narrator != nil {
		narrator.Attach(bus)
		defer func() {
			narrator.Wait()
			if err := narrator.Detach(bus); err != nil {
				slog.Warn("Failed to detach narrator", "error", err)
			}
		}()
	}

	sessions, err := session.New(&session.Config{
		Repository:       repo,
		Characters:       characters,
		Analyzer:         actionAnalyzer,
		Generator:        generator,
		EventBus:         bus,
		Prompts:          prompts,
		Rules:            book,
		Clock:            clk,
		DefaultPartySize: cfg.DefaultMaxPlayers,
	})
	if err != nil {
		return fmt.Errorf("failed to create session orchestrator: %w", err)
	}

	handler, err := v1.NewHandler(&v1.HandlerConfig{
		SessionService: sessions,
		Roller:         roller,
	})
	if err != nil {
		return fmt.Errorf("failed to create handler: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "addr", cfg.HTTPAddr, "redis", cfg.RedisAddr != "")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal, gracefully stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop", "error", err)
			return srv.Close()
		}
		slog.Info("Server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

// buildRepository returns the cached session store, backed by redis when configured
func buildRepository(ctx context.Context, cfg *config.Config) (sessionrepo.Repository, func(), error) {
	if cfg.RedisAddr == "" {
		slog.Info("No redis configured, sessions are kept in memory only")
		cached := sessionrepo.NewCached(&sessionrepo.CachedConfig{TTL: cfg.SessionTTL})
		go cached.RunEviction(ctx, evictionInterval)
		return cached, func() {}, nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeClient := func() {
		if err := client.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}

	if err := redis.Ping(ctx, client, 5*time.Second); err != nil {
		closeClient()
		return nil, nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	durable, err := sessionrepo.NewRedis(&sessionrepo.RedisConfig{Client: client, TTL: cfg.SessionTTL})
	if err != nil {
		closeClient()
		return nil, nil, fmt.Errorf("failed to create session repository: %w", err)
	}

	cached := sessionrepo.NewCached(&sessionrepo.CachedConfig{Durable: durable, TTL: cfg.SessionTTL})
	go cached.RunEviction(ctx, evictionInterval)
	return cached, closeClient, nil
}

// buildNarrator wires voice output. No narration directory means no narrator.
func buildNarrator(
	cfg *config.Config,
	openAI narrative.OpenAIConfig,
	prompts *narrative.PromptBuilder,
	clk clock.Clock,
) (*narrative.Narrator, error) {
	if cfg.NarrationDir == "" {
		return nil, nil
	}

	synth, err := narrative.NewOpenAISynthesizer(&narrative.SpeechConfig{
		OpenAI: openAI,
		Model:  cfg.TTSModel,
		Voice:  cfg.TTSVoice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesizer: %w", err)
	}

	sink, err := narrative.NewFileSink(cfg.NarrationDir, clk)
	if err != nil {
		return nil, fmt.Errorf("failed to create narration sink: %w", err)
	}

	narrator, err := narrative.NewNarrator(&narrative.NarratorConfig{
		Synthesizer: synth,
		Sink:        sink,
		Prompts:     prompts,
		Voice:       cfg.TTSVoice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create narrator: %w", err)
	}
	return narrator, nil
}

func newRedisClient(cfg *config.Config) (redis.Client, error) {
	client, err := redis.Dial(cfg.RedisAddr, redis.Options{
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		MaxRetries:  3,
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return client, nil
}
