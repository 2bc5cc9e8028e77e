package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/mahalaxmi-storefront/api/responses"
	"github.com/angelmondragon/mahalaxmi-storefront/api/routes"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/admin"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/auth"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/cart"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/categories"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/checkout"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/products"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/session"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/config"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/instance"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/metrics"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/redis"
	"github.com/angelmondragon/mahalaxmi-storefront/web"
)

const (
	serviceName     = "storefront"
	shutdownTimeout = 15 * time.Second
)

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		InstanceID:  instance.GetID(),
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "storefront stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	api, err := apiclient.New(cfg.Backend,
		apiclient.WithLogger(logg),
		apiclient.WithMetrics(metrics.NewBackendMetrics(registry)),
	)
	if err != nil {
		return err
	}

	params, err := wire(cfg, logg, redisClient, api)
	if err != nil {
		return err
	}
	params.Gatherer = registry

	handler, err := routes.NewRouter(params)
	if err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"addr":        addr,
		"backend_url": cfg.Backend.URL,
	})
	logg.Info(logCtx, "starting storefront server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down storefront server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// wire builds the backend services and per-session stores shared by every handler.
func wire(cfg *config.Config, logg *logger.Logger, redisClient *redis.Client, api apiclient.API) (routes.Params, error) {
	var errs error
	authSvc, err := auth.NewService(api)
	errs = multierr.Append(errs, err)
	productSvc, err := products.NewService(api)
	errs = multierr.Append(errs, err)
	categorySvc, err := categories.NewService(api)
	errs = multierr.Append(errs, err)
	cartSvc, err := cart.NewService(api)
	errs = multierr.Append(errs, err)
	orderSvc, err := orders.NewService(api)
	errs = multierr.Append(errs, err)
	adminSvc, err := admin.NewService(api)
	errs = multierr.Append(errs, err)
	if errs != nil {
		return routes.Params{}, errs
	}

	carts, err := cart.NewStore(cartSvc, redisClient, cfg.Session.TTL)
	if err != nil {
		return routes.Params{}, err
	}
	drafts, err := checkout.NewDraftStore(redisClient, cfg.Session.TTL)
	if err != nil {
		return routes.Params{}, err
	}
	flow, err := checkout.NewFlow(drafts, orderSvc, carts, logg)
	if err != nil {
		return routes.Params{}, err
	}
	sessions, err := session.NewStore(redisClient, cfg.Session.TTL, carts, session.ForgetFunc(drafts.Reset))
	if err != nil {
		return routes.Params{}, err
	}
	flashes, err := session.NewFlashes(redisClient)
	if err != nil {
		return routes.Params{}, err
	}
	views, err := web.New()
	if err != nil {
		return routes.Params{}, err
	}
	responder, err := responses.NewResponder(responses.ResponderParams{
		Views:    views,
		Flashes:  flashes,
		Auth:     sessions,
		Carts:    carts,
		Logger:   logg,
		SiteName: cfg.App.SiteName,
	})
	if err != nil {
		return routes.Params{}, err
	}

	return routes.Params{
		Config:     cfg,
		Logger:     logg,
		Redis:      redisClient,
		Responder:  responder,
		Sessions:   sessions,
		Carts:      carts,
		Drafts:     drafts,
		Checkout:   flow,
		Auth:       authSvc,
		Products:   productSvc,
		Categories: categorySvc,
		Orders:     orderSvc,
		Admin:      adminSvc,
	}, nil
}
