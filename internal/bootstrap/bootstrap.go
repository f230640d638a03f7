// Package bootstrap wires the pipeline together for the hosts.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/realty-assistant/internal/catalog"
	"github.com/kirillkom/realty-assistant/internal/config"
	"github.com/kirillkom/realty-assistant/internal/core/parser"
	"github.com/kirillkom/realty-assistant/internal/core/ports"
	"github.com/kirillkom/realty-assistant/internal/core/transform"
	"github.com/kirillkom/realty-assistant/internal/core/usecase"
	auditpg "github.com/kirillkom/realty-assistant/internal/infrastructure/audit/postgres"
	"github.com/kirillkom/realty-assistant/internal/infrastructure/normalizer/lemmad"
	"github.com/kirillkom/realty-assistant/internal/infrastructure/normalizer/static"
	natsqueue "github.com/kirillkom/realty-assistant/internal/infrastructure/queue/nats"
	"github.com/kirillkom/realty-assistant/internal/infrastructure/resilience"
	mongostore "github.com/kirillkom/realty-assistant/internal/infrastructure/storage/mongo"
	"github.com/kirillkom/realty-assistant/internal/observability/metrics"
	"github.com/kirillkom/realty-assistant/internal/render"
)

type App struct {
	Config  config.Config
	Catalog *catalog.Catalog
	Chat    *usecase.ChatUseCase
	Metrics *metrics.QueryMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	cat, err := catalog.Load(cfg.PatternsPath, cfg.ActionGapMax)
	if err != nil {
		return nil, fmt.Errorf("load pattern catalog: %w", err)
	}

	executorCfg := resilience.DefaultConfig()
	executorCfg.BreakerEnabled = cfg.BreakerEnabled
	executor := resilience.NewExecutor(executorCfg)

	var normalizer ports.Normalizer
	if cfg.NormalizerURL != "" {
		normalizer = lemmad.New(cfg.NormalizerURL, executor)
	} else {
		normalizer = static.New(cat.StopWords(), cat.Lemmas())
	}

	client, err := mongostore.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	store := mongostore.NewStore(client.Database(cfg.MongoDatabase), executor)

	closers := []func(){func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Warn("mongo_disconnect_failed", "error", err)
		}
	}}

	var events ports.EventPublisher
	if cfg.NATSURL != "" {
		publisher, err := natsqueue.New(cfg.NATSURL, cfg.NATSSubject, natsqueue.Options{Executor: executor})
		if err != nil {
			return nil, fmt.Errorf("init event publisher: %w", err)
		}
		events = publisher
		closers = append(closers, publisher.Close)
	}

	var audit ports.AuditLog
	if cfg.AuditPostgresDSN != "" {
		db, err := auditpg.OpenDB(cfg.AuditPostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open audit db: %w", err)
		}
		log := auditpg.NewAuditLog(db)
		if err := log.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure audit schema: %w", err)
		}
		audit = log
		closers = append(closers, func() { _ = db.Close() })
	}

	queryMetrics := metrics.NewQueryMetrics("realty-assistant")

	transformer := transform.NewTransformer(cat, normalizer)
	dispatcher := usecase.NewDispatchUseCase(cat, transformer, store, events, audit)
	chat := usecase.NewChatUseCase(
		normalizer,
		parser.NewQuitDetector(cat),
		parser.NewLocator(cat),
		parser.NewClassifier(cat),
		dispatcher,
		render.NewRenderer(),
		queryMetrics,
	)

	return &App{
		Config:  cfg,
		Catalog: cat,
		Chat:    chat,
		Metrics: queryMetrics,
		closeFn: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
