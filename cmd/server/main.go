package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"catalog/internal/catalog/metrics"
	"catalog/internal/catalog/notify"
	"catalog/internal/catalog/service"
	"catalog/internal/catalog/store"
	"catalog/internal/platform/config"
	"catalog/internal/platform/httpserver"
	"catalog/internal/platform/logger"
	platformredis "catalog/internal/platform/redis"
	graphqltransport "catalog/internal/transport/graphql"
	httptransport "catalog/internal/transport/http"
	"catalog/pkg/email"
)

// main wires the storage, notification, and transport layers together and
// keeps the server lifecycle small. Business logic lives in the catalog
// packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Backing store: Postgres when configured, in-memory otherwise.
	var st store.Store
	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("failed to reach postgres", "error", err)
			os.Exit(1)
		}
		pg := store.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		st = pg
		log.Info("using postgres store")
	} else {
		st = store.NewInMemory()
		log.Info("using in-memory store")
	}

	// Optional read-through cache in front of the store.
	redisClient, err := platformredis.New(config.RedisFromEnv())
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		st = store.NewCached(st, redisClient.Client, cfg.CacheTTL, log)
		log.Info("item cache enabled", "ttl", cfg.CacheTTL)
	}

	// Notifications: Kafka when brokers are configured, log-only otherwise.
	var notifier notify.Notifier
	var kafkaNotifier *notify.KafkaNotifier
	if len(cfg.KafkaBrokers) > 0 {
		kafkaNotifier, err = notify.NewKafkaNotifier(ctx, cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		notifier = kafkaNotifier
		log.Info("kafka notifications enabled", "topic", cfg.KafkaTopic)
	} else {
		notifier = notify.NewLogNotifier(log)
	}

	if cfg.Seed {
		store.Seed(ctx, st)
		log.Info("seeded demo items")
	}

	svc := service.New(st,
		service.WithNotifier(notifier, email.RecipientFor(cfg.NotifyEmail)),
		service.WithMetrics(metrics.New()),
		service.WithLogger(log),
	)

	items := httptransport.NewItemHandler(svc, log)
	graphqlHandler, err := graphqltransport.NewHandler(svc, log)
	if err != nil {
		log.Error("failed to build graphql schema", "error", err)
		os.Exit(1)
	}
	router := httptransport.NewRouter(items, graphqlHandler, log)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting catalog server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if kafkaNotifier != nil {
			if err := kafkaNotifier.Close(shutdownCtx); err != nil {
				log.Warn("kafka flush on shutdown failed", "error", err)
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
