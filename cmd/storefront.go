package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/cart"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/catalog"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/checkout"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common/constants"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/config"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/controller"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/infra"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/middleware"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/order"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/otel"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/supabase"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/user"
)

func RunStorefrontService(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunStorefrontService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppStorefrontService).
		Str(log.KeyTag, "main RunStorefrontService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.AppStorefrontService)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, constants.AppStorefrontService, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		c = logger.WithContext(c)
		err = otel.ShutdownOtel(c, otelShutdowns)
		if err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	c = logger.WithContext(c)
	cache := infra.NewCacheClient(c, cfg.Cache)
	defer func() {
		logger = logger.With().Str(log.KeyProcess, "shutting down cache").Logger()
		logger.Info().Msg("shutting down cache")
		err = cache.Close()
		if err != nil {
			err = fmt.Errorf("failed shutting down cache with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown cache")
	}()
	logger.Info().Msg("initialized cache")

	logger = logger.With().Str(log.KeyProcess, "initializing supabase client").Logger()
	logger.Info().Msg("initializing supabase client")
	supabaseClient := supabase.NewClient(cfg.Supabase)
	logger.Info().Msg("initialized supabase client")

	logger = logger.With().Str(log.KeyProcess, "initializing cart store").Logger()
	logger.Info().Msg("initializing cart store")
	sessionTTL := time.Duration(cfg.Cart.SessionTTLMinutes) * time.Minute
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	cartStore := cart.NewStore(sessionTTL)
	c = logger.WithContext(c)
	cartStore.StartJanitor(c)
	logger.Info().Msg("initialized cart store")

	logger = logger.With().Str(log.KeyProcess, "initializing services").Logger()
	logger.Info().Msg("initializing services")
	catalogService := catalog.NewService(supabaseClient, cache)
	checkoutService := checkout.NewService(cartStore, supabaseClient)
	orderService := order.NewService(supabaseClient)
	userService := user.NewService(supabaseClient, cfg.Supabase)
	logger.Info().Msg("initialized services")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(constants.AppStorefrontService),
		middleware.Logging,
		middleware.RecoverPanic,
		middleware.Session,
		middleware.OptionalAuth(cfg.Supabase.JWTSecret),
	)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	controller.AttachProductController(router, catalogService)
	controller.AttachCartController(router, cartStore, catalogService)
	controller.AttachCheckoutController(router, checkoutService)

	orderRouter := router.PathPrefix("/orders").Subrouter()
	orderRouter.Use(middleware.Auth(cfg.Supabase.JWTSecret))
	controller.AttachOrderController(orderRouter, orderService)

	authedUserRouter := router.PathPrefix("/auth").Subrouter()
	authedUserRouter.Use(middleware.Auth(cfg.Supabase.JWTSecret))
	controller.AttachUserController(router, authedUserRouter, userService)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	httpServer := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	go func() {
		logger = logger.With().Str(log.KeyProcess, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("error=%w occured while server is running", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()

	<-c.Done()
	logger = logger.With().Str(log.KeyProcess, "shutting down http server").Logger()
	logger.Info().Msg("received interuption signal shutting down")
	err = httpServer.Shutdown(context.Background())
	if err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("shutdown http server")
}
