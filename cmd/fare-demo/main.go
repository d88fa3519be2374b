// README: Reference CLI; prices the two-route demo trip with and without the peak surge floor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"farefloor/internal/config"
	"farefloor/internal/logging"
	"farefloor/internal/modules/pricing"
	"farefloor/internal/modules/scenario"
	"farefloor/internal/types"
)

func main() {
	var (
		mode         = flag.String("mode", modeBoth, "floor runs: both (without, then with), off or on")
		mitigate     = flag.Bool("mitigate", false, "shorthand for -mode=on")
		scenarioPath = flag.String("scenario", "", "YAML file with scenarios (defaults to the built-in demo trip)")
		tenant       = flag.String("tenant", string(pricing.DefaultTenant), "rate schedule tenant")
	)
	flag.Parse()

	log := logging.New("fare-demo", logging.LevelWarn)

	if *mitigate {
		*mode = modeOn
	}
	modes, err := floorModes(*mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	scenarios := []scenario.RouteScenario{defaultScenario()}
	if *scenarioPath != "" {
		scenarios, err = loadScenarios(*scenarioPath)
		if err != nil {
			log.Error("load scenarios", "path", *scenarioPath, "error", err)
			os.Exit(1)
		}
	}

	pricingSvc := pricing.NewService(pricing.NewSchedules(cfg.Schedules, log), log)
	scenarioSvc := scenario.NewService(pricingSvc, cfg.Thresholds)

	printThresholds(os.Stdout, scenarioSvc.Thresholds())

	ctx := context.Background()
	for _, sc := range scenarios {
		for _, enforce := range modes {
			report, err := scenarioSvc.Run(ctx, types.ID(*tenant), sc, enforce)
			if err != nil {
				fmt.Fprintf(os.Stderr, "scenario %q: %v\n", sc.Name, err)
				os.Exit(1)
			}
			printReport(os.Stdout, sc, report)
		}
	}
}

const (
	modeBoth = "both"
	modeOff  = "off"
	modeOn   = "on"
)

// floorModes maps -mode to the enforce-floor values to run, in order.
func floorModes(mode string) ([]bool, error) {
	switch mode {
	case modeBoth:
		return []bool{false, true}, nil
	case modeOff:
		return []bool{false}, nil
	case modeOn:
		return []bool{true}, nil
	default:
		return nil, fmt.Errorf("unknown -mode %q (want both, off or on)", mode)
	}
}
