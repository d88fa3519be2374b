package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordBeforeInitIsNoop(t *testing.T) {
	if quotesTotal != nil {
		t.Skip("metrics already initialised")
	}
	ObserveQuote(true, time.Millisecond)
	IncQuoteError("invalid_input")
	IncComparison("reasonable")
}

func TestCounters(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(quotesTotal.WithLabelValues("true"))
	ObserveQuote(true, 2*time.Millisecond)
	if got := testutil.ToFloat64(quotesTotal.WithLabelValues("true")); got != before+1 {
		t.Fatalf("quotes_total{floor_applied=true} = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(quoteErrorsTotal.WithLabelValues("unknown"))
	IncQuoteError("")
	if got := testutil.ToFloat64(quoteErrorsTotal.WithLabelValues("unknown")); got != before+1 {
		t.Fatalf("quote_errors_total{reason=unknown} = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(comparisonsTotal.WithLabelValues("loophole_detected"))
	IncComparison("loophole_detected")
	if got := testutil.ToFloat64(comparisonsTotal.WithLabelValues("loophole_detected")); got != before+1 {
		t.Fatalf("comparisons_total = %v, want %v", got, before+1)
	}
}
