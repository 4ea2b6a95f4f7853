// @title                      Bistro Boss Ordering API
// @version                    1.0
// @description                Restaurant ordering backend: bearer tokens, carts, payment intents and checkout.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"

	"github.com/bistroboss/ordering-system/internal/api"
	"github.com/bistroboss/ordering-system/internal/api/handler"
	"github.com/bistroboss/ordering-system/internal/core/service"
	mongodb "github.com/bistroboss/ordering-system/internal/infrastructure/db/mongo"
	redisdb "github.com/bistroboss/ordering-system/internal/infrastructure/db/redis"
	"github.com/bistroboss/ordering-system/internal/infrastructure/payment"
	"github.com/bistroboss/ordering-system/internal/infrastructure/queue"
	"github.com/bistroboss/ordering-system/internal/infrastructure/telemetry"
	"github.com/bistroboss/ordering-system/internal/pkg/config"
	"github.com/bistroboss/ordering-system/pkg/logger"
)

// Version is stamped at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	app := &cli.App{
		Name:    "bistro-boss",
		Usage:   "Bistro Boss ordering API",
		Version: Version,
		Action:  serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API and the cart cleanup workers",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Create the MongoDB indexes the repositories rely on",
				Action: migrate,
			},
			{
				Name:   "reconcile",
				Usage:  "Retry every pending cart cleanup once and exit",
				Action: reconcile,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtimeDeps holds the process-wide resources shared by every command.
type runtimeDeps struct {
	cfg     *config.Config
	log     zerolog.Logger
	mongo   *mongo.Client
	db      *mongo.Database
	cache   *goredis.Client
	closers []func(context.Context)
}

func (d *runtimeDeps) close() {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.ShutdownTimeout)
	defer cancel()
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i](ctx)
	}
}

func bootstrap(ctx context.Context) (*runtimeDeps, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: cfg.Tracing.ServiceName,
		Env:     cfg.Env,
	})

	deps := &runtimeDeps{cfg: cfg, log: log}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	deps.mongo, deps.db = mongoClient, db
	deps.closers = append(deps.closers, func(ctx context.Context) {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	})

	cache, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		deps.close()
		return nil, err
	}
	deps.cache = cache
	deps.closers = append(deps.closers, func(context.Context) {
		if err := cache.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	})

	return deps, nil
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer deps.close()
	cfg, log := deps.cfg, deps.log

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.Tracing.OTLPEndpoint,
		ServiceName: cfg.Tracing.ServiceName,
		Version:     Version,
		Env:         cfg.Env,
	})
	if err != nil {
		return err
	}
	deps.closers = append(deps.closers, func(ctx context.Context) {
		if err := shutdownTracing(ctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	})

	if err := mongodb.EnsureIndexes(ctx, deps.db); err != nil {
		log.Warn().Err(err).Msg("ensure indexes")
	}

	users := mongodb.NewUserRepository(deps.db)
	carts := mongodb.NewCartRepository(deps.db)
	journal := redisdb.NewCleanupJournal(deps.cache, logger.Component("cleanup_journal"))

	reconciler := queue.NewReconciler(carts, journal, queue.Options{
		Workers:     cfg.Checkout.CleanupWorkers,
		MaxAttempts: cfg.Checkout.CleanupMaxAttempts,
	}, logger.Component("reconciler"))

	if cfg.Payment.SecretKey == "" {
		log.Warn().Msg("PAYMENT_TOKEN is not set; payment intents will be rejected by the processor")
	}
	gateway := payment.NewStripeGateway(cfg.Payment.SecretKey, nil, logger.Component("stripe"))

	checkoutDeps := service.CheckoutDeps{
		Payments: mongodb.NewPaymentRepository(deps.db),
		Carts:    carts,
		Guard:    redisdb.NewIdempotencyGuard(deps.cache),
		Journal:  journal,
		Cleanup:  reconciler,
	}
	if cfg.Checkout.Mode == service.CheckoutTransaction {
		checkoutDeps.Store = mongodb.NewCheckoutStore(deps.db)
	}
	checkouts := service.NewCheckoutService(checkoutDeps, cfg.Checkout.Mode, logger.Component("checkout"))

	e := api.NewRouter(api.Dependencies{
		Log:    log,
		Tokens: service.NewTokenService(users, cfg.Token.Secret, cfg.Token.IssuanceMode, logger.Component("tokens")),
		Users:  service.NewUserService(users, logger.Component("users")),
		Carts:  service.NewCartService(carts, mongodb.NewMenuRepository(deps.db), logger.Component("carts")),
		Payments: service.NewPaymentService(gateway, carts, service.PaymentOptions{
			Currency:          cfg.Payment.Currency,
			PaymentMethodType: cfg.Payment.MethodType,
			PriceCheck:        cfg.Payment.PriceCheck,
		}, logger.Component("payments")),
		Checkouts: checkouts,
		Health: map[string]handler.DependencyCheck{
			"mongo": func(ctx context.Context) error { return deps.mongo.Ping(ctx, readpref.Primary()) },
			"redis": redisdb.Ping(deps.cache),
		},
		GuardPromotion: cfg.Token.GuardPromote,
	})

	g, gctx := errgroup.WithContext(ctx)

	reconciler.Start(gctx)
	g.Go(func() error {
		if _, err := reconciler.Resume(gctx); err != nil {
			log.Warn().Err(err).Msg("resume pending cart cleanups")
		}
		return nil
	})

	g.Go(func() error {
		log.Info().
			Str("port", cfg.Port).
			Str("checkout_mode", checkouts.Mode()).
			Str("version", Version).
			Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http server shutdown")
		}
		reconciler.Wait()
		log.Info().Msg("http server stopped")
		return nil
	})

	return g.Wait()
}

func migrate(c *cli.Context) error {
	deps, err := bootstrap(c.Context)
	if err != nil {
		return err
	}
	defer deps.close()

	if err := mongodb.EnsureIndexes(c.Context, deps.db); err != nil {
		return err
	}
	deps.log.Info().Str("database", deps.cfg.Mongo.Database).Msg("indexes ensured")
	return nil
}

func reconcile(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer deps.close()

	carts := mongodb.NewCartRepository(deps.db)
	journal := redisdb.NewCleanupJournal(deps.cache, logger.Component("cleanup_journal"))
	reconciler := queue.NewReconciler(carts, journal, queue.Options{
		Workers:     1,
		MaxAttempts: deps.cfg.Checkout.CleanupMaxAttempts,
	}, logger.Component("reconciler"))

	start := time.Now()
	done, remaining, err := reconciler.ReconcileOnce(ctx)
	deps.log.Info().
		Int("completed", done).
		Int("remaining", remaining).
		Dur("took", time.Since(start)).
		Msg("reconcile finished")
	return err
}
