package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/arhyth/bankx"
	"github.com/rs/zerolog"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfp := flag.String("config", "config.yml", "path to configuration file")
	flag.Parse()
	cfgfl, err := os.Open(*cfp)
	if err != nil {
		logger.Fatal().Err(err).Msg("error opening config file")
	}
	cfg, err := bankx.LoadConfig(cfgfl)
	cfgfl.Close()
	if err != nil {
		logger.Fatal().Err(err).Msg("error decoding config file")
	}

	var repo bankx.Repository
	switch cfg.Database.Driver {
	case "memory":
		logger.Warn().Msg("using in-memory store, data will not survive restarts")
		repo = bankx.NewMemoryStore()
	case "postgres":
		pgendpt, err := bankx.NewPostgresEndpoint(cfg.Database.ConnectionString, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("error starting database")
		}
		defer pgendpt.Close()
		repo = pgendpt
	default:
		logger.Fatal().Str("driver", cfg.Database.Driver).Msg("unknown database driver")
	}

	var pub bankx.Publisher = bankx.NopPublisher{}
	if cfg.Events.NatsURL != "" {
		np, err := bankx.NewNATSPublisher(cfg.Events.NatsURL, cfg.Events.Subject)
		if err != nil {
			logger.Fatal().Err(err).Msg("error connecting to NATS")
		}
		defer np.Close()
		pub = np
	}

	pem, err := os.ReadFile(cfg.Auth.PublicKeyPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("error reading token public key")
	}
	auth, err := bankx.NewJWTAuthenticator(pem)
	if err != nil {
		logger.Fatal().Err(err).Msg("error parsing token public key")
	}

	core, err := bankx.NewService(repo, cfg, pub, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error starting service")
	}
	metrics := bankx.NewMetrics()
	svc := bankx.Chain(core,
		bankx.NewInstrumentingMiddleware(metrics),
		bankx.NewValidationMiddleware(),
		bankx.NewCircuitBreakMiddleware(bankx.NewServiceBreaker(cfg, &logger)),
		bankx.NewLimitMiddleware(bankx.NewServiceLimits(cfg)),
	)
	hndlr := bankx.NewHTTPHandler(svc, auth, metrics, &logger)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      hndlr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-done
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err = server.Shutdown(ctx); err != nil {
		logger.Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server stopped")
}
