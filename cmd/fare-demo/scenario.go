package main

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"farefloor/internal/modules/pricing"
	"farefloor/internal/modules/scenario"
)

type scenarioFile struct {
	Scenarios []scenario.RouteScenario `yaml:"scenarios"`
}

// defaultScenario is a peak-hour trip served by a fast toll route (A) and a
// slower toll-free route through a midpoint (B).
func defaultScenario() scenario.RouteScenario {
	return scenario.RouteScenario{
		Name: "Direct toll route vs midpoint toll-free route",
		RouteA: pricing.TripAttributes{
			TimeMinutes:     45.0,
			DistanceKm:      60.0,
			TollFee:         8.13,
			SurgeMultiplier: 1.70,
			IsPeakHour:      true,
		},
		RouteB: pricing.TripAttributes{
			TimeMinutes:     57.0,
			DistanceKm:      65.0,
			TollFee:         0,
			SurgeMultiplier: 0.75,
			IsPeakHour:      true,
		},
	}
}

func loadScenarios(path string) ([]scenario.RouteScenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Scenarios) == 0 {
		return nil, errors.New("no scenarios in file")
	}
	return f.Scenarios, nil
}
