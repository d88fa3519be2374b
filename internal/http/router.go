// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"farefloor/internal/http/handlers"
	"farefloor/internal/http/middleware"
	"farefloor/internal/infra"
	"farefloor/internal/modules/pricing"
	"farefloor/internal/modules/scenario"
)

type RouterDeps struct {
	Pricing  *pricing.Service
	Scenario *scenario.Service
	// Routes is nil when no Maps API key is configured.
	Routes handlers.RouteEstimator
	// Verifier is nil when auth is disabled.
	Verifier infra.TokenVerifier
	Log      *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.Logging(deps.Log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	if deps.Verifier != nil {
		api.Use(middleware.Auth(deps.Verifier))
	}

	fares := handlers.NewFareHandler(deps.Pricing, deps.Scenario, deps.Routes)
	api.POST("/fares/quote", fares.Quote)
	api.POST("/fares/compare", fares.Compare)
	api.POST("/fares/route-quote", fares.RouteQuote)
	api.GET("/schedules", fares.ListSchedules)
	api.GET("/schedules/:tenant", fares.GetSchedule)

	return r
}
