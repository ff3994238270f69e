// Package testutil provides common utility functions for testing.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// RateAPI is a fake exchange rate endpoint answering GET ?base=CODE with the
// table registered for that base.
type RateAPI struct {
	URL string

	mu       sync.Mutex
	tables   map[string]map[string]float64
	status   int
	requests []string
}

// NewRateAPI starts a fake rate endpoint that is closed when the test ends.
func NewRateAPI(t testing.TB, tables map[string]map[string]float64) *RateAPI {
	t.Helper()
	api := &RateAPI{tables: tables, status: http.StatusOK}
	srv := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(srv.Close)
	api.URL = srv.URL
	return api
}

// DefaultRates covers the USD/NPR pair in both directions.
func DefaultRates() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"USD": {"USD": 1, "NPR": 133.5, "EUR": 0.9},
		"NPR": {"NPR": 1, "USD": 0.0075},
		"EUR": {"EUR": 1, "NPR": 145, "USD": 1.1},
	}
}

// SetStatus makes every following request fail with status when it is not 200.
func (a *RateAPI) SetStatus(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = status
}

// Requests returns the base codes requested so far, in order.
func (a *RateAPI) Requests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.requests...)
}

func (a *RateAPI) serve(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(r.URL.Query().Get("base"))

	a.mu.Lock()
	a.requests = append(a.requests, base)
	status := a.status
	rates, ok := a.tables[base]
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"result":"error"}`))
		return
	}
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "error", "error-type": "unsupported-code"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"result":    "success",
		"base_code": base,
		"rates":     rates,
	})
}
