package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func caseByName(t *testing.T, r *Runner, name string) TestCase {
	t.Helper()
	for _, tc := range r.cases() {
		if tc.Name == name {
			return tc
		}
	}
	t.Fatalf("no case named %q", name)
	return TestCase{}
}

func TestDBCases_BadDSNFails(t *testing.T) {
	r := NewRunner(Config{DSN: "postgres://bench@localhost:notaport/farefloor"})
	ctx := context.Background()
	r.connect(ctx)

	for _, name := range []string{"Env: Postgres connect", "Migration: tables exist"} {
		res := caseByName(t, r, name).Run(ctx, r)
		if res.Status != statusFail {
			t.Errorf("%s: status = %s (%s), want FAIL", name, res.Status, res.Note)
		}
	}
}

func TestDBCases_NoDSNSkips(t *testing.T) {
	r := NewRunner(Config{})
	ctx := context.Background()
	r.connect(ctx)

	res := caseByName(t, r, "Env: Postgres connect").Run(ctx, r)
	if res.Status != statusSkip {
		t.Fatalf("status = %s, want SKIP", res.Status)
	}
}

func TestQuoteCase_ChecksFare(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fare":{"final_fare":148.32,"floor_applied":true}}`))
	}))
	defer srv.Close()

	r := NewRunner(Config{BaseURL: srv.URL, Timeout: time.Second})
	ctx := context.Background()

	if res := quoteCase("hit", nil, 148.32, true).Run(ctx, r); res.Status != statusPass {
		t.Fatalf("matching fare: %s (%s)", res.Status, res.Note)
	}
	if res := quoteCase("miss", nil, 92.70, false).Run(ctx, r); res.Status != statusFail {
		t.Fatalf("wrong fare: %s (%s)", res.Status, res.Note)
	}
}

func TestExtractTables(t *testing.T) {
	got, err := extractTables(filepath.Join("..", "..", "migrations", "0001_rate_schedules.sql"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if want := []string{"rate_schedules"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("tables = %v, want %v", got, want)
	}
}
