package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/totegamma/music-gateway/client"
	"github.com/totegamma/music-gateway/internal/config"
	"github.com/totegamma/music-gateway/internal/infra/gateway"
	"github.com/totegamma/music-gateway/internal/logging"
	"github.com/totegamma/music-gateway/internal/present/graph"
	"github.com/totegamma/music-gateway/internal/present/rest"
	"github.com/totegamma/music-gateway/internal/telemetry"
	"github.com/totegamma/music-gateway/internal/usecase"
)

const (
	serviceName = "music-gateway"
	version     = "1.0.0"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, closer := logging.New(cfg.Log)
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Trace.Enable {
		shutdown, err := telemetry.Setup(ctx, serviceName, version, cfg.Trace.Endpoint)
		if err != nil {
			slog.Error("failed to set up tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	opts := []client.Option{
		client.WithTimeout(cfg.Client.TimeoutDuration),
		client.WithUserAgent(serviceName + "/" + version),
	}
	if cfg.Client.Rate > 0 {
		opts = append(opts, client.WithRateLimit(cfg.Client.Rate, cfg.Client.Burst))
	}
	cl := client.New(opts...)

	services := cfg.Services.Map()
	for _, name := range services.Keys() {
		if url, _ := services.Get(name); url == "" {
			slog.Warn("service is not configured", slog.String("module", "main"), slog.String("service", name))
		}
	}

	gw := usecase.Gateways{
		Albums:  gateway.NewAlbumGateway(cl, cfg.Services.Albums),
		Tracks:  gateway.NewTrackGateway(cl, cfg.Services.Tracks),
		Artists: gateway.NewArtistGateway(cl, cfg.Services.Artists),
		Bands:   gateway.NewBandGateway(cl, cfg.Services.Bands),
		Genres:  gateway.NewGenreGateway(cl, cfg.Services.Genres),
		Users:   gateway.NewUserGateway(cl, cfg.Services.Users),
	}
	ucOpts := usecase.Options{FanOut: cfg.Client.FanOut}

	exec, err := graph.New(graph.Usecases{
		Albums:   usecase.NewAlbumUsecase(gw, ucOpts),
		Tracks:   usecase.NewTrackUsecase(gw, ucOpts),
		Artists:  usecase.NewArtistUsecase(gw, ucOpts),
		Bands:    usecase.NewBandUsecase(gw, ucOpts),
		Genres:   usecase.NewGenreUsecase(gw),
		Users:    usecase.NewUserUsecase(gw),
		Resolver: usecase.NewResolver(gw, ucOpts),
	}, cfg.Client.FanOut)
	if err != nil {
		slog.Error("failed to load schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if cfg.Trace.Enable {
		e.Use(otelecho.Middleware(serviceName))
	}

	rest.NewHandler(exec, services).RegisterRoutes(e)

	go func() {
		slog.Info("listening", slog.String("module", "main"), slog.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down", slog.String("error", err.Error()))
	}
}
