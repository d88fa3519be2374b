package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "farefloor_"

var (
	registerOnce sync.Once

	quotesTotal      *prometheus.CounterVec
	quoteErrorsTotal *prometheus.CounterVec
	quoteLatency     prometheus.Histogram
	comparisonsTotal *prometheus.CounterVec
)

// Init registers the fare metrics with the default registry. Recording functions
// are no-ops until Init has run.
func Init() {
	registerOnce.Do(func() {
		quotesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "quotes_total",
				Help: "Total computed fares by whether the peak surge floor was applied",
			},
			[]string{"floor_applied"},
		)
		quoteErrorsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "quote_errors_total",
				Help: "Total rejected fare requests by reason",
			},
			[]string{"reason"},
		)
		quoteLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "quote_latency_seconds",
				Help:    "Fare quote latency in seconds, including schedule resolution",
				Buckets: prometheus.DefBuckets,
			},
		)
		comparisonsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "comparisons_total",
				Help: "Total route comparisons by outcome",
			},
			[]string{"outcome"},
		)

		prometheus.MustRegister(
			quotesTotal,
			quoteErrorsTotal,
			quoteLatency,
			comparisonsTotal,
		)
	})
}

// ObserveQuote records a successful fare computation.
func ObserveQuote(floorApplied bool, duration time.Duration) {
	if quotesTotal != nil {
		quotesTotal.WithLabelValues(strconv.FormatBool(floorApplied)).Inc()
	}
	if quoteLatency != nil {
		quoteLatency.Observe(duration.Seconds())
	}
}

// IncQuoteError increments the rejected quote counter.
func IncQuoteError(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if quoteErrorsTotal != nil {
		quoteErrorsTotal.WithLabelValues(reason).Inc()
	}
}

// IncComparison increments the comparison outcome counter.
func IncComparison(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	if comparisonsTotal != nil {
		comparisonsTotal.WithLabelValues(outcome).Inc()
	}
}
