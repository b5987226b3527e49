package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fitstore/storefront/internal/api"
	"github.com/fitstore/storefront/internal/infrastructure/config"
	storemongo "github.com/fitstore/storefront/internal/infrastructure/db/mongo"
	storeredis "github.com/fitstore/storefront/internal/infrastructure/db/redis"
	"github.com/fitstore/storefront/internal/infrastructure/mail"
	"github.com/fitstore/storefront/internal/infrastructure/payment"
	"github.com/fitstore/storefront/internal/infrastructure/queue"
	"github.com/fitstore/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := storemongo.Connect(ctx, storemongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := storeredis.Connect(ctx, storeredis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	mailer := mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	dispatcher := queue.NewMailDispatcher(0, mailer, log)
	dispatcher.Start(ctx)

	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey, log)

	e := api.NewRouter(db, rdb, dispatcher, gateway, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := storemongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := storemongo.NewItemRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := storemongo.NewCartRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return storemongo.NewOrderRepository(db).EnsureIndexes(ctx)
}
