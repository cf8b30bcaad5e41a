package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/analyze"
	"github.com/claimlens/claimlens/internal/api"
	"github.com/claimlens/claimlens/internal/evidence"
	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/llm"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/notify"
	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/resolve"
	"github.com/claimlens/claimlens/internal/search"
	"github.com/claimlens/claimlens/internal/store"
	"github.com/claimlens/claimlens/internal/util"
)

var (
	addr    string
	logMode string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the fact-check HTTP service",
	Long: `Serve starts the claimlens HTTP API:

  POST /api/fact-check      submit text, an image, or a post URL
  GET  /api/fact-check/:id  poll the persisted result
  GET  /results/:id         human-readable result page

Example:
  OPENAI_API_KEY=... BRAVE_API_KEY=... claimlens serve --addr :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&logMode, "log-mode", "dev", "log mode (dev, prod)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if addr != "" {
		cfg.Server.Addr = addr
	}

	log, err := newLogger(logMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.LLM.APIKey == "" && cfg.LLM.Provider != "ollama" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("init LLM provider: %w", err)
	}

	limiter := util.NewLimiter(cfg.HTTP.RequestsPerSecond, 3)
	searcher := search.NewBraveClient(cfg.Search, limiter, log)

	var robots *util.RobotsChecker
	if cfg.HTTP.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}
	mirrors := resolve.NewMirrorFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, limiter, robots)
	resolver := resolve.NewResolver(provider, mirrors, cfg.Mirrors.Hosts, searcher, log)

	st := buildStore(cfg.Store, log)

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.Notify.Endpoint != "" {
		notifier = notify.NewNtfyNotifier(cfg.Notify, log)
	}

	runner := pipeline.NewRunner(log)
	p := pipeline.NewPipeline(
		extract.NewClaimExtractor(provider, log),
		evidence.NewGatherer(extract.NewQueryDeriver(provider, log), searcher, cfg.Search.ResultsPerPage, log),
		analyze.NewAnalyzer(provider, log),
		analyze.NewSynthesizer(provider),
		st, notifier, runner, cfg.Server.BaseURL, log,
	)

	server := api.NewServer(resolver, p, st, cfg.Server, log)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("claimlens listening", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		log.Infow("shutting down", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warnw("http shutdown", "error", err)
	}

	// Let in-flight fact-checks reach a terminal state before exiting.
	if err := runner.Shutdown(shutdownCtx); err != nil {
		log.Warnw("background pipelines did not finish in time", "error", err)
	}

	return nil
}

// buildStore wires redis with an in-memory fallback, or memory-only when
// redis is unreachable at startup
func buildStore(cfg model.StoreConfig, log *zap.SugaredLogger) store.Store {
	memory := store.NewMemoryStore(cfg.Retention)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisStore, err := store.NewRedisStore(ctx, cfg)
	if err != nil {
		log.Warnw("redis unavailable, results will not survive restarts", "error", err)
		return memory
	}

	log.Infow("using redis result store", "addr", cfg.RedisAddr)
	return store.NewFallbackStore(redisStore, memory, log)
}

func newLogger(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch mode {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
