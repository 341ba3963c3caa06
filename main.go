package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsqio/go-nsq"

	"shopsready/backend/internal/adapter/gemini"
	"shopsready/backend/internal/app"
	"shopsready/backend/internal/config"
	"shopsready/backend/internal/logger"
)

func main() {
	// Initialize structured logger with correlation-id enrichment
	handler := logger.NewContextHandler(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer deps.DB.Close()

	if cfg.GeminiAPIKey == "" {
		slog.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}
	extractor, err := gemini.NewExtractor(ctx, cfg.GeminiAPIKey)
	if err != nil {
		slog.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}
	defer extractor.Close()

	application, err := app.New(cfg, deps.DB, extractor, deps.NSQProducer)
	if err != nil {
		slog.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	consumers := startAuditConsumers(cfg, application)
	defer func() {
		for _, c := range consumers {
			c.Stop()
		}
	}()

	if err := application.Run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// startAuditConsumers subscribes the audit trail to both pipeline topics.
// Consumer failures are non-fatal: the API keeps serving without the trail.
func startAuditConsumers(cfg *config.Config, application *app.App) []*nsq.Consumer {
	subscriptions := []struct {
		topic   string
		handler nsq.HandlerFunc
	}{
		{config.TopicRunLifecycle, application.AuditConsumer.HandleLifecycle},
		{config.TopicExport, application.AuditConsumer.HandleExport},
	}

	var consumers []*nsq.Consumer
	for _, sub := range subscriptions {
		consumer, err := nsq.NewConsumer(sub.topic, "audit", nsq.NewConfig())
		if err != nil {
			slog.Error("failed to create consumer", "error", err, "topic", sub.topic)
			continue
		}
		consumer.AddHandler(sub.handler)
		if err := consumer.ConnectToNSQLookupd(cfg.NSQLookupd); err != nil {
			slog.Error("failed to connect consumer to lookupd", "error", err, "topic", sub.topic)
			continue
		}
		consumers = append(consumers, consumer)
	}
	return consumers
}
