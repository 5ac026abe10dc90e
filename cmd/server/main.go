// Command server runs the person registry HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"registru/internal/audit"
	"registru/internal/person/handler"
	"registru/internal/person/metrics"
	"registru/internal/person/service"
	"registru/internal/person/store"
	"registru/internal/photo"
	"registru/internal/platform/config"
	"registru/internal/platform/database"
	"registru/internal/platform/health"
	"registru/internal/platform/httpserver"
	"registru/internal/platform/kafka/producer"
	"registru/internal/platform/logger"
	"registru/internal/platform/redis"
	httptransport "registru/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	healthHandler := health.New(cfg.Environment)

	// Persistence: postgres when configured, in-memory otherwise.
	pool, err := database.New(cfg.Database)
	if err != nil {
		return err
	}
	var personStore service.PersonStore
	if pool != nil {
		defer pool.Close()
		healthHandler.RegisterCheck("database", func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Health(checkCtx)
		})
		personStore = store.NewPostgres(pool.DB())
		log.Info("using postgres person store")
	} else {
		personStore = store.NewInMemory()
		log.Info("using in-memory person store")
	}

	// Optional person cache.
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	var cache *service.Cache
	if redisClient != nil {
		defer redisClient.Close()
		healthHandler.RegisterCheck("redis", func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Health(checkCtx)
		})
		cache = service.NewCache(redisClient, cfg.Redis.PersonTTL, log)
		log.Info("person cache enabled", "ttl", cfg.Redis.PersonTTL)
	}

	// Optional audit trail to Kafka.
	var auditPublisher audit.Publisher = audit.NewMemory()
	if cfg.Kafka.Brokers != "" {
		kafkaProducer, err := producer.New(cfg.Kafka, log)
		if err != nil {
			return err
		}
		defer kafkaProducer.Close()
		healthHandler.RegisterCheck("kafka", func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return kafkaProducer.Health(checkCtx)
		})
		auditPublisher = audit.NewKafkaPublisher(kafkaProducer, cfg.Kafka.AuditTopic, log)
		log.Info("audit events publishing to kafka", "topic", cfg.Kafka.AuditTopic)
	}

	photoStore, err := photo.NewDisk(cfg.Photos.Dir)
	if err != nil {
		return err
	}

	svc := service.New(personStore,
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithAuditPublisher(auditPublisher),
		service.WithCache(cache),
		service.WithPhotoStore(photoStore),
		service.WithPageSize(cfg.Listing.PageSize),
	)

	if cfg.SeedDemo {
		if err := store.SeedDemoData(ctx, personStore, time.Now()); err != nil {
			return err
		}
		log.Info("seeded demo data")
	}

	personHandler := handler.New(svc, log)
	router := httptransport.NewRouter(personHandler, healthHandler, log)
	server := httpserver.New(cfg.Addr, router)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
