package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/WanderingWalnut/Grantly/common/id"
	"github.com/WanderingWalnut/Grantly/common/llm"
	"github.com/WanderingWalnut/Grantly/common/logger"
	"github.com/WanderingWalnut/Grantly/common/otel"
	"github.com/WanderingWalnut/Grantly/core/config"
	"github.com/WanderingWalnut/Grantly/core/db"
	"github.com/WanderingWalnut/Grantly/internal/discovery"
	"github.com/WanderingWalnut/Grantly/internal/drafter"
	"github.com/WanderingWalnut/Grantly/internal/http/middleware"
	httprouter "github.com/WanderingWalnut/Grantly/internal/http/router"
	"github.com/WanderingWalnut/Grantly/internal/locator"
	"github.com/WanderingWalnut/Grantly/internal/service"
	"github.com/WanderingWalnut/Grantly/internal/store"
	"github.com/WanderingWalnut/Grantly/internal/warmer"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "grantly starting", "env", cfg.Env, "mode", cfg.Discovery.Mode)
	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	finder, err := discovery.FromConfig(cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to configure grant discovery", "error", err)
		os.Exit(1)
	}

	servicesCfg := service.ServicesConfig{
		Finder: finder,
		Locator: locator.New(locator.Config{
			UserAgent: cfg.Locator.UserAgent,
			LinkHint:  cfg.Locator.LinkHint,
			Timeout:   cfg.Locator.Timeout,
		}),
		Cache:  locator.NoopCache(),
		Probes: map[string]func(context.Context) error{},
	}

	if cfg.DB.Enabled() {
		database, err := db.New(ctx, cfg.DB)
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "database connected")

		servicesCfg.Stores = store.NewStores(database.Conn())
		servicesCfg.TxRunner = service.NewTxRunner(database)
		servicesCfg.Probes["postgres"] = database.Ping
	} else {
		slog.InfoContext(ctx, "database disabled, organization routes not mounted")
	}

	if cfg.Redis.Enabled() {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}

		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		slog.InfoContext(ctx, "redis connected", "link_cache_ttl", cfg.Locator.CacheTTL.String())

		servicesCfg.Cache = locator.NewRedisCache(redisClient, cfg.Locator.CacheTTL)
		servicesCfg.Probes["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	var draftLLM llm.Client
	if cfg.DraftLLM.Enabled() {
		draftLLM, err = llm.New(llm.Config{
			APIKey:  cfg.DraftLLM.APIKey,
			BaseURL: cfg.DraftLLM.BaseURL,
			Model:   cfg.DraftLLM.Model,
			Timeout: cfg.DraftLLM.Timeout,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create draft llm client", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "draft llm configured", "model", draftLLM.Model())
	}
	servicesCfg.Drafter = drafter.New(draftLLM, drafter.NewPDFExtractor(), drafter.Config{
		MaxTokens: cfg.DraftLLM.MaxTokens,
		Timeout:   cfg.Locator.Timeout,
	})

	services := service.NewServices(servicesCfg)

	var linkWarmer *warmer.Warmer
	switch {
	case cfg.Locator.WarmSchedule == "":
	case !cfg.Redis.Enabled():
		slog.WarnContext(ctx, "link warmer disabled, it needs a redis link cache", "schedule", cfg.Locator.WarmSchedule)
	default:
		dataset := discovery.NewDataset(cfg.Discovery.DatasetPath)
		linkWarmer = warmer.New(cfg.Locator.WarmSchedule, services.ApplicationLinks(), dataset.Grants)
		if err := linkWarmer.Start(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to start link warmer", "error", err)
			os.Exit(1)
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Drafts wait on the model for up to DRAFT_LLM_TIMEOUT_SECONDS.
		WriteTimeout: cfg.DraftLLM.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port, "mode", finder.Mode())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCtx.Done()
	slog.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if linkWarmer != nil {
		select {
		case <-linkWarmer.Stop().Done():
		case <-shutdownCtx.Done():
			slog.WarnContext(shutdownCtx, "link warmer did not stop in time")
		}
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// The otelgin span must exist before Recovery and Logger read it.
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services)

	return router
}

const banner = `
 ██████╗ ██████╗  █████╗ ███╗   ██╗████████╗██╗  ██╗   ██╗
██╔════╝ ██╔══██╗██╔══██╗████╗  ██║╚══██╔══╝██║  ╚██╗ ██╔╝
██║  ███╗██████╔╝███████║██╔██╗ ██║   ██║   ██║   ╚████╔╝ 
██║   ██║██╔══██╗██╔══██║██║╚██╗██║   ██║   ██║    ╚██╔╝  
╚██████╔╝██║  ██║██║  ██║██║ ╚████║   ██║   ███████╗██║   
 ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝   ╚═╝   ╚══════╝╚═╝   
`
