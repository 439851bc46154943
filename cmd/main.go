package main

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/remitbase/settlement/internal/api"
	"github.com/remitbase/settlement/internal/clients/auth"
	"github.com/remitbase/settlement/internal/clients/fxprovider"
	"github.com/remitbase/settlement/internal/fx"
	"github.com/remitbase/settlement/internal/rates"
	"github.com/remitbase/settlement/internal/repository"
	"github.com/remitbase/settlement/internal/service"
	"github.com/remitbase/settlement/pkg/broker"
	"github.com/remitbase/settlement/pkg/config"
	"github.com/remitbase/settlement/pkg/job"
	"github.com/remitbase/settlement/pkg/logger"
	"github.com/remitbase/settlement/pkg/postgres"
	"github.com/remitbase/settlement/pkg/security"
)

const (
	ReadTimeout  = 3 * time.Second
	WriteTimeout = 5 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l, err := logger.New(cfg.Logger.Level)
	panicOnErr("create logger", err)

	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConn)
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	err = postgres.UpMigrations(cfg.Postgres.DSN)
	panicOnErr("up migrations", err)

	repo := repository.New(pool)

	flatFee, err := decimal.NewFromString(cfg.Policy.FlatFee)
	panicOnErr("parse flat fee", err)

	taxRate, err := decimal.NewFromString(cfg.Policy.TaxRate)
	panicOnErr("parse tax rate", err)

	policy := fx.Policy{FlatFee: flatFee, TaxRate: taxRate}

	var rateSource service.RateSource = rates.NewStatic()
	if cfg.FXProvider.Enabled {
		rateSource = fxprovider.NewClient(cfg.FXProvider.BaseURL, cfg.FXProvider.APIKey)
	}

	producer := broker.NewProducer(l, cfg.Kafka.Brokers, cfg.Kafka.SettlementsTopic)
	defer producer.Close()

	s := service.New(repo, rateSource, producer, policy)

	authService := auth.NewClient(cfg.AuthServiceURL)

	{
		job.NewRunner().
			Register("settle processing transactions", time.Hour, s.SettleAllProcessing).
			Start(ctx)
	}

	var webhookPublicKey *rsa.PublicKey

	if cfg.HTTP.WebhookSignCheck {
		decodedPKey, err := base64.StdEncoding.DecodeString(cfg.HTTP.WebhookPublicKey)
		panicOnErr("decode webhook public key", err)

		webhookPublicKey, err = security.ParsePublicKey(decodedPKey)
		panicOnErr("parse webhook public key", err)
	}

	handler := api.NewHandler(s, cfg.HTTP.WebhookSignCheck, webhookPublicKey)
	mw := api.NewMiddleware(authService, cfg.HTTP.WebhookKeyCheck, cfg.HTTP.WebhookAPIKey, cfg.HTTP.WebhookIPWL)

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "service started", "port", cfg.HTTP.Port)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		err = server.Shutdown(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}
	}()

	wg.Wait()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
