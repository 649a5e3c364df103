package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"newssummarizer/internal/article"
	"newssummarizer/internal/config"
	"newssummarizer/internal/pipeline"
	"newssummarizer/internal/summarizer"
	"newssummarizer/internal/web"
)

const (
	readHeaderTimeout = 10 * time.Second
	writeTimeoutSlack = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return err
	}
	log.InfoContext(ctx, "Config is loaded",
		"envFile", cfg.EnvFile,
		"addr", cfg.Addr,
		"model", cfg.Model,
		"extractor", cfg.Extractor)

	s, err := initSummarizer(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize summarizer",
			"error", err,
			"model", cfg.Model,
			"baseURL", cfg.LLMBaseURL)

		return err
	}

	p := pipeline.New(
		article.NewFetcher(cfg.FetchTimeout, cfg.FetchMaxBytes, log),
		initExtractor(cfg),
		s,
		cfg.SummarizeTimeout,
		log,
	)

	server, err := web.NewServer(p, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize web server",
			"error", err)

		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.FetchTimeout + cfg.SummarizeTimeout + writeTimeoutSlack,
		IdleTimeout:       idleTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()
	log.InfoContext(ctx, "Server is started",
		"addr", cfg.Addr)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Server failed",
				"error", err,
				"addr", cfg.Addr)

			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, "Failed to shut down server",
			"error", err)
	}
	cancel()

	log.InfoContext(ctx, "Server is stopped",
		"uptimeSeconds", time.Since(start).Seconds())

	return nil
}

func initSummarizer(
	ctx context.Context,
	cfg config.Config,
	log *slog.Logger,
) (summarizer.Summarizer, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		log.WarnContext(ctx, "GEMINI_API_KEY is missing so summary requests will fail",
			"envVar", "GEMINI_API_KEY")
	}

	s, err := summarizer.NewOpenAISummarizer(cfg.GeminiAPIKey, cfg.LLMBaseURL, cfg.Model, cfg.Temperature)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "Summarizer is initialized",
		"model", cfg.Model,
		"temperature", cfg.Temperature)

	return s, nil
}

func initExtractor(cfg config.Config) article.Extractor {
	if cfg.Extractor == config.ExtractorReadability {
		return article.ReadabilityExtractor{}
	}

	return article.ParagraphExtractor{}
}
