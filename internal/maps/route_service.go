package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

var ErrNoRoute = errors.New("no route found")

// LegRequest describes the route whose time and distance feed a fare.
// Waypoints force a route through intermediate stops (the "midpoint" trick);
// AvoidTolls asks for a toll-free route.
type LegRequest struct {
	Origin      string
	Destination string
	Waypoints   []string
	AvoidTolls  bool
}

// Leg is the driving time and distance of a whole route, summed over its legs.
type Leg struct {
	Minutes    float64
	DistanceKm float64
}

// RouteService resolves trip time and distance with the Google Maps Directions API.
// It takes the first route returned and does no route selection of its own.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

func (s *RouteService) EstimateLeg(ctx context.Context, req LegRequest) (Leg, error) {
	r := &maps.DirectionsRequest{
		Origin:      req.Origin,
		Destination: req.Destination,
		Waypoints:   req.Waypoints,
		Mode:        maps.TravelModeDriving,
	}
	if req.AvoidTolls {
		r.Avoid = []maps.Avoid{maps.AvoidTolls}
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return Leg{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Leg{}, ErrNoRoute
	}
	return sumLegs(routes[0].Legs), nil
}

func sumLegs(legs []*maps.Leg) Leg {
	var (
		total  time.Duration
		meters int
	)
	for _, l := range legs {
		if l == nil {
			continue
		}
		total += l.Duration
		meters += l.Distance.Meters
	}
	return Leg{
		Minutes:    total.Minutes(),
		DistanceKm: float64(meters) / 1000,
	}
}
