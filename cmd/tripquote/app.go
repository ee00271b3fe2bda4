package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tripquote/internal/app/bus"
	"tripquote/internal/app/dto"
	"tripquote/internal/app/form"
	bookingapp "tripquote/internal/app/handlers/booking"
	packagesapp "tripquote/internal/app/handlers/packages"
	"tripquote/internal/app/middleware"
	appoutbox "tripquote/internal/app/outbox"
	domainbooking "tripquote/internal/domain/booking"
	"tripquote/internal/domain/catalog"
	"tripquote/internal/infra/broker/kafka"
	"tripquote/internal/infra/config"
	mongodb "tripquote/internal/infra/db/mongo"
	ginserver "tripquote/internal/infra/http/gin"
	"tripquote/internal/infra/obs"
	infraoutbox "tripquote/internal/infra/outbox"
	"tripquote/internal/infra/storage/memory"
	redisstore "tripquote/internal/infra/storage/redis"
)

type application struct {
	handlers   ginserver.Handlers
	checks     map[string]obs.Check
	background []func(context.Context) error
	closers    []func(context.Context) error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{checks: map[string]obs.Check{}}

	cat, err := loadCatalog(cfg.CatalogFixtures, logger)
	if err != nil {
		return nil, err
	}

	var publisher appoutbox.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		publisher = producer
		app.closers = append(app.closers, func(context.Context) error { return producer.Close() })
	}

	sessions, err := app.sessionStore(cfg)
	if err != nil {
		return nil, err
	}

	var (
		submissions domainbooking.Repository
		box         appoutbox.Outbox
		idemStore   middleware.IdempotencyStore
	)
	switch cfg.SubmissionStore {
	case config.StoreMongo:
		client, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		app.checks["mongo"] = client.Ping
		app.closers = append(app.closers, client.Close)
		submissions = mongodb.NewSubmissionRepository(client.DB)
		idemStore = mongodb.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
		store := infraoutbox.NewStore(client.DB)
		box = store
		if publisher != nil {
			worker := &infraoutbox.Worker{
				Queue:       store,
				Publisher:   publisher,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
				Logger:      logger.With("component", "outbox"),
			}
			app.background = append(app.background, worker.Run)
		} else {
			logger.Warn("KAFKA_BROKERS not set, outbox events stay pending in mongo")
		}
	default:
		submissions = memory.NewSubmissionRepository()
		idemStore = memory.NewIdempotencyStore(cfg.IdempotencyTTL)
		box = memory.NewOutbox(publisher, cfg.KafkaTopicPrefix, logger.With("component", "outbox"))
	}

	base := bus.NewInMemory()
	bus.Register[packagesapp.ListPackagesQuery, dto.PackageTable](base, &packagesapp.ListPackagesHandler{Catalog: cat})
	bus.Register[bookingapp.QuoteQuery, dto.Quote](base, &bookingapp.QuoteHandler{Catalog: cat})
	bus.Register[bookingapp.SubmitBookingCommand, *bookingapp.SubmitBookingResult](base, &bookingapp.SubmitBookingHandler{
		Catalog:     cat,
		Submissions: submissions,
		Outbox:      box,
		Encoder:     appoutbox.JSONEncoder{},
	})
	dispatcher := middleware.Chain(base,
		middleware.Logging(logger),
		middleware.Idempotency(idemStore, cfg.IdempotencyTTL),
		middleware.OutboxFlush(box),
	)

	forms := &form.Service{
		Catalog:   cat,
		Store:     sessions,
		Submitter: bookingapp.Submitter{Bus: dispatcher},
		Logger:    logger.With("component", "form"),
	}

	app.handlers = ginserver.Handlers{
		Packages: ginserver.PackagesHandler{Queries: dispatcher},
		Quote:    ginserver.QuoteHandler{Queries: dispatcher},
		Form:     ginserver.FormHandler{Forms: forms},
	}
	return app, nil
}

func (a *application) sessionStore(cfg config.Config) (form.SessionStore, error) {
	if cfg.SessionStore != config.StoreRedis {
		return memory.NewSessionStore(cfg.SessionTTL), nil
	}
	client := redisstore.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	store := redisstore.NewSessionStore(client, cfg.SessionTTL)
	a.checks["redis"] = store.Ping
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	return store, nil
}

func (a *application) close(logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}
}

// loadCatalog reads a JSON array of packages, falling back to the built-in catalog when no
// path is configured or the file does not exist.
func loadCatalog(path string, logger *slog.Logger) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("catalog fixtures file not found, using defaults", "path", path)
			return catalog.Default(), nil
		}
		return nil, fmt.Errorf("read catalog fixtures: %w", err)
	}
	var packages []catalog.Package
	if err := json.Unmarshal(data, &packages); err != nil {
		return nil, fmt.Errorf("decode catalog fixtures: %w", err)
	}
	cat, err := catalog.New(packages)
	if err != nil {
		return nil, fmt.Errorf("catalog fixtures %s: %w", path, err)
	}
	logger.Info("catalog fixtures loaded", "path", path, "packages", cat.Len())
	return cat, nil
}
