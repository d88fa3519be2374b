// README: Fare handlers: single quote, two-route comparison, maps-backed quote and schedule lookup.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"farefloor/internal/maps"
	"farefloor/internal/modules/pricing"
	"farefloor/internal/modules/scenario"
	"farefloor/internal/types"
)

// RouteEstimator resolves trip minutes and kilometres for an origin/destination pair.
type RouteEstimator interface {
	EstimateLeg(ctx context.Context, req maps.LegRequest) (maps.Leg, error)
}

type FareHandler struct {
	pricing  *pricing.Service
	scenario *scenario.Service
	routes   RouteEstimator
}

// NewFareHandler wires the fare endpoints. routes may be nil, in which case
// RouteQuote answers 503.
func NewFareHandler(pricingSvc *pricing.Service, scenarioSvc *scenario.Service, routes RouteEstimator) *FareHandler {
	return &FareHandler{pricing: pricingSvc, scenario: scenarioSvc, routes: routes}
}

type quoteReq struct {
	Tenant       string `json:"tenant"`
	EnforceFloor bool   `json:"enforce_floor"`
	pricing.TripAttributes
}

type compareReq struct {
	Tenant       string                 `json:"tenant"`
	Name         string                 `json:"name"`
	EnforceFloor bool                   `json:"enforce_floor"`
	RouteA       pricing.TripAttributes `json:"route_a"`
	RouteB       pricing.TripAttributes `json:"route_b"`
}

type routeQuoteReq struct {
	Tenant          string   `json:"tenant"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	Waypoints       []string `json:"waypoints"`
	AvoidTolls      bool     `json:"avoid_tolls"`
	TollFee         float64  `json:"toll_fee"`
	SurgeMultiplier float64  `json:"surge_multiplier"`
	IsPeakHour      bool     `json:"is_peak_hour"`
	EnforceFloor    bool     `json:"enforce_floor"`
}

type routeQuoteResp struct {
	Trip  pricing.TripAttributes `json:"trip"`
	Quote pricing.Quote          `json:"quote"`
}

func (h *FareHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	q, err := h.pricing.Quote(c.Request.Context(), tenantFor(c, req.Tenant), req.TripAttributes, req.EnforceFloor)
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}

func (h *FareHandler) Compare(c *gin.Context) {
	var req compareReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	report, err := h.scenario.Run(c.Request.Context(), tenantFor(c, req.Tenant), scenario.RouteScenario{
		Name:   req.Name,
		RouteA: req.RouteA,
		RouteB: req.RouteB,
	}, req.EnforceFloor)
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, report)
}

func (h *FareHandler) RouteQuote(c *gin.Context) {
	if h.routes == nil {
		writeError(c, http.StatusServiceUnavailable, "route estimation not configured")
		return
	}
	var req routeQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Origin == "" || req.Destination == "" {
		writeError(c, http.StatusBadRequest, "origin and destination are required")
		return
	}

	leg, err := h.routes.EstimateLeg(c.Request.Context(), maps.LegRequest{
		Origin:      req.Origin,
		Destination: req.Destination,
		Waypoints:   req.Waypoints,
		AvoidTolls:  req.AvoidTolls,
	})
	if err != nil {
		if errors.Is(err, maps.ErrNoRoute) {
			writePricingError(c, err)
			return
		}
		writeError(c, http.StatusBadGateway, "route estimation failed")
		return
	}

	trip := pricing.TripAttributes{
		TimeMinutes:     leg.Minutes,
		DistanceKm:      leg.DistanceKm,
		TollFee:         req.TollFee,
		SurgeMultiplier: req.SurgeMultiplier,
		IsPeakHour:      req.IsPeakHour,
	}
	q, err := h.pricing.Quote(c.Request.Context(), tenantFor(c, req.Tenant), trip, req.EnforceFloor)
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, routeQuoteResp{Trip: trip, Quote: q})
}

func (h *FareHandler) ListSchedules(c *gin.Context) {
	tenants, err := h.pricing.Tenants(c.Request.Context())
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"tenants": tenants})
}

func (h *FareHandler) GetSchedule(c *gin.Context) {
	tenant := types.ID(c.Param("tenant"))
	if claimed := tenantFor(c, ""); claimed != "" && claimed != tenant {
		writeError(c, http.StatusForbidden, "tenant mismatch")
		return
	}
	sched, err := h.pricing.Schedule(c.Request.Context(), tenant)
	if err != nil {
		writePricingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"tenant": tenant, "schedule": sched})
}
