package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/catalog/config"
	"github.com/Astemirdum/library-catalog/catalog/internal/handler"
	"github.com/Astemirdum/library-catalog/catalog/internal/repository"
	"github.com/Astemirdum/library-catalog/catalog/internal/server"
	"github.com/Astemirdum/library-catalog/catalog/internal/service"
	"github.com/Astemirdum/library-catalog/catalog/internal/views"
	"github.com/Astemirdum/library-catalog/catalog/migrations"
	"github.com/Astemirdum/library-catalog/catalog/seed"
	"github.com/Astemirdum/library-catalog/pkg/circuit_breaker"
	"github.com/Astemirdum/library-catalog/pkg/kafka"
	"github.com/Astemirdum/library-catalog/pkg/logger"
	"github.com/Astemirdum/library-catalog/pkg/postgres"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "catalog")
	defer log.Sync() //nolint:errcheck

	repo, closeRepo, err := NewRepository(context.Background(), cfg, log)
	if err != nil {
		return errors.Wrap(err, "repository")
	}
	defer closeRepo()

	events, closeEvents, err := newPublisher(cfg.Kafka, log)
	if err != nil {
		return errors.Wrap(err, "kafka")
	}
	defer closeEvents()

	svc := service.NewService(repo, events, log)

	renderer, err := views.NewRenderer()
	if err != nil {
		return errors.Wrap(err, "views")
	}

	h := handler.New(svc, renderer, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}

// NewRepository opens the store selected by cfg.Store.Driver. The returned
// func releases it.
func NewRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverBolt:
		repo, err := repository.NewBolt(cfg.Store.BoltPath, log)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Warn("bolt close", zap.Error(err))
			}
		}, nil
	case config.StoreDriverPostgres:
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgres(db, log), db.Close, nil
	default:
		return nil, nil, errors.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func newPublisher(cfg kafka.Config, log *zap.Logger) (service.EventPublisher, func(), error) {
	if !cfg.Enabled() {
		log.Info("kafka brokers not configured, catalog events are dropped")
		return kafka.NopPublisher{}, func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, nil, err
	}
	cb := circuit_breaker.New(20, 10*time.Second, 0.5, 3)
	pub := kafka.NewPublisher(producer, cfg.Topic, cb)
	return pub, func() {
		if err := pub.Close(); err != nil {
			log.Warn("kafka producer close", zap.Error(err))
		}
	}, nil
}

// Seed opens the configured store and inserts the demo catalog.
func Seed(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	repo, closeRepo, err := NewRepository(ctx, cfg, log)
	if err != nil {
		return errors.Wrap(err, "repository")
	}
	defer closeRepo()
	return seed.Seed(ctx, repo, log)
}
