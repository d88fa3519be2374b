package main

import (
	"fmt"
	"io"
	"strings"

	"farefloor/internal/modules/pricing"
	"farefloor/internal/modules/scenario"
)

func printThresholds(w io.Writer, th scenario.Thresholds) {
	fmt.Fprintf(w, "Loophole threshold: $%.2f  Consistency threshold: $%.2f\n",
		th.LoopholeThreshold, th.ConsistencyThreshold)
}

func printReport(w io.Writer, sc scenario.RouteScenario, r scenario.Report) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\nFARE CALCULATION (floor enforced: %t)\n", rule, r.FloorEnforced)
	if sc.Name != "" {
		fmt.Fprintf(w, "%s\n", sc.Name)
	}
	fmt.Fprintln(w, rule)

	printRoute(w, "Route A", r.RouteA)
	printRoute(w, "Route B", r.RouteB)

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("-", 50))
	fmt.Fprintf(w, "Route A: $%.2f\n", r.RouteA.FinalFare)
	fmt.Fprintf(w, "Route B: $%.2f\n", r.RouteB.FinalFare)
	fmt.Fprintf(w, "Difference: $%.2f\n", r.Comparison.Difference)
	fmt.Fprintf(w, "Verdict: %s\n", verdict(r.Comparison.Outcome))
}

func printRoute(w io.Writer, name string, f pricing.FareBreakdown) {
	fmt.Fprintf(w, "\n--- %s ---\n", name)
	fmt.Fprintf(w, "  Base cost (time+distance): $%.2f\n", f.BaseCost)
	fmt.Fprintf(w, "  Toll fee:                  $%.2f\n", f.TollFee)
	fmt.Fprintf(w, "  Surge requested:           %.2fx\n", f.SurgeMultiplier)
	if f.FloorApplied {
		fmt.Fprintf(w, "  Surge applied:             %.2fx (peak floor)\n", f.EffectiveSurgeMultiplier)
	} else {
		fmt.Fprintf(w, "  Surge applied:             %.2fx\n", f.EffectiveSurgeMultiplier)
	}
	fmt.Fprintf(w, "  Final fare:                $%.2f\n", f.FinalFare)
}

func verdict(o scenario.Outcome) string {
	switch o {
	case scenario.OutcomeLoopholeDetected:
		return "loophole active, the fare gap between routes is too wide"
	case scenario.OutcomeMitigationSuccessful:
		return "mitigation successful, route B is priced consistently with peak demand"
	default:
		return "price difference is reasonable"
	}
}
