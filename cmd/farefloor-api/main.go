// README: Entry point; loads config, wires schedule sources, pricing and scenario services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"farefloor/internal/config"
	httptransport "farefloor/internal/http"
	"farefloor/internal/infra"
	"farefloor/internal/logging"
	"farefloor/internal/maps"
	"farefloor/internal/modules/pricing"
	"farefloor/internal/modules/scenario"
	"farefloor/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("farefloor-api", logging.LevelError).Error("load config", "error", err)
		os.Exit(1)
	}
	log := logging.New("farefloor-api", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Init()
	gin.SetMode(gin.ReleaseMode)

	schedules := pricing.NewSchedules(cfg.Schedules, log)
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Error("db init", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		schedules.WithCatalog(pricing.NewStore(dbPool))

		if cfg.Redis.Addr != "" {
			redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
			if err != nil {
				log.Error("redis init", "error", err)
				os.Exit(1)
			}
			defer redisClient.Close()
			schedules.WithCache(pricing.NewCache(redisClient, cfg.Redis.CacheTTL))
		}
	} else if cfg.Redis.Addr != "" {
		log.Warn("FAREFLOOR_REDIS_ADDR ignored without FAREFLOOR_DB_DSN")
	}

	pricingSvc := pricing.NewService(schedules, log)
	scenarioSvc := scenario.NewService(pricingSvc, cfg.Thresholds)

	deps := httptransport.RouterDeps{
		Pricing:  pricingSvc,
		Scenario: scenarioSvc,
		Log:      log,
	}
	if cfg.Maps.APIKey != "" {
		routes, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Error("maps init", "error", err)
			os.Exit(1)
		}
		deps.Routes = routes
	}
	if cfg.Firebase.ProjectID != "" {
		verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Error("firebase init", "error", err)
			os.Exit(1)
		}
		deps.Verifier = verifier
	} else {
		log.Warn("FAREFLOOR_FIREBASE_PROJECT_ID not set; API auth disabled")
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httptransport.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("listening", "addr", cfg.HTTP.Addr, "tenants", len(cfg.Schedules))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server", "error", err)
		os.Exit(1)
	}
}
