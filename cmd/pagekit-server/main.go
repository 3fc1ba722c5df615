package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/harbormail/pagekit/internal/api"
	"github.com/harbormail/pagekit/pkg/config"
	"github.com/harbormail/pagekit/pkg/i18n"
	"github.com/harbormail/pagekit/pkg/model"
	"github.com/harbormail/pagekit/pkg/orchestrator"
	"github.com/harbormail/pagekit/pkg/tags"
	tagsqlite "github.com/harbormail/pagekit/pkg/tags/sqlite"
)

func main() {
	var (
		configFlag    = flag.String("config", "", "configuration file (YAML)")
		shutdownGrace = flag.Duration("grace", 5*time.Second, "shutdown grace period")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := buildLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	tagSource, closeTags, err := buildTagSource(cfg)
	if err != nil {
		logger.Fatal("open tag source", zap.Error(err))
	}
	defer closeTags()

	catalog, err := i18n.Default()
	if err != nil {
		logger.Fatal("load translations", zap.Error(err))
	}

	options := []orchestrator.Option{
		orchestrator.WithTagSource(tagSource),
		orchestrator.WithTranslator(catalog),
		orchestrator.WithDefaultLocale(cfg.Locale),
	}
	if cfg.Theme != "" {
		options = append(options, orchestrator.WithThemeDefaults(cfg.Theme, cfg.ThemeVariant))
	}

	orch := orchestrator.New(options...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := api.NewServer(ctx, cfg, orch, logger)
	if err != nil {
		logger.Fatal("build server", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: server.Routes(),
	}

	logger.Info("listening",
		zap.String("addr", cfg.Addr()),
		zap.String("locale", cfg.Locale),
		zap.String("theme", cfg.Theme),
	)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		logger.Fatal("listen", zap.Error(err))
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// buildTagSource opens the SQLite tag store when a database path is
// configured and falls back to a small built-in set otherwise.
func buildTagSource(cfg config.Config) (tags.Source, func(), error) {
	if cfg.TagsDB != "" {
		store, err := tagsqlite.Open(cfg.TagsDB)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	source := tags.NewStaticSource(defaultPriorityTags(), nil)
	return source, func() {}, nil
}

func defaultPriorityTags() []model.Tag {
	return []model.Tag{
		{Slug: "inbox", Name: "Inbox", URL: "/in/inbox/"},
		{Slug: "drafts", Name: "Drafts", URL: "/in/drafts/"},
		{Slug: "sent", Name: "Sent", URL: "/in/sent/"},
		{Slug: "spam", Name: "Spam", URL: "/in/spam/"},
		{Slug: "trash", Name: "Trash", URL: "/in/trash/"},
	}
}
