package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/finance-toolkit/internal/calculator"
	"github.com/iwvelando/finance-toolkit/pkg/chart"
	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/exchange"
	"github.com/iwvelando/finance-toolkit/pkg/format"
	"github.com/iwvelando/finance-toolkit/pkg/input"
	"github.com/iwvelando/finance-toolkit/pkg/validation"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// Dependencies are the domain services the handler serves.
type Dependencies struct {
	Registry  *calculator.Registry
	Rates     exchange.RateSource
	Formatter *format.Formatter
}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	registry    *calculator.Registry
	rates       exchange.RateSource
	formatter   *format.Formatter
}

// NewHandler constructs the HTTP handler that serves the web UI and calculator API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string, deps Dependencies) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if deps.Formatter == nil {
		deps.Formatter = format.Default()
	}
	if deps.Registry == nil {
		deps.Registry = calculator.NewRegistry(deps.Formatter, logger)
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		registry:    deps.Registry,
		rates:       deps.Rates,
		formatter:   deps.Formatter,
	}

	mux := http.NewServeMux()

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Calculator catalogue and evaluation
	mux.HandleFunc("/api/calculators", h.handleCalculators)
	mux.HandleFunc("/api/calculators/{id}", h.handleCalculator)

	// Currency converter
	mux.HandleFunc("/api/currencies", h.handleCurrencies)
	mux.HandleFunc("/api/exchange/rates", h.handleRates)
	mux.HandleFunc("/api/exchange/convert", h.handleConvert)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return h.withRequestLogging(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestLogging assigns each request an id and logs it once it completes.
func (h *handler) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		h.logger.Debug("request completed",
			zap.String("op", "server.request"),
			zap.String("requestId", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCalculators(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"calculators": h.registry.Infos(),
	})
}

type evaluateRequest struct {
	Values map[string]string `json:"values"`
	Theme  string            `json:"theme"`
}

func (h *handler) handleCalculator(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculator"

	calc, ok := h.registry.Get(r.PathValue("id"))
	if !ok {
		h.respondErrorWithOp(w, r, http.StatusNotFound, fmt.Sprintf("unknown calculator %q", r.PathValue("id")), op)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, http.StatusOK, calculator.Describe(calc))
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
				return
			}
			h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
			return
		}
		if err := validation.ValidateTheme(req.Theme); err != nil {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
			return
		}

		h.writeJSON(w, http.StatusOK, calc.Evaluate(req.Values, chart.ParseTheme(req.Theme)))
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"currencies": exchange.SupportedCurrencies(),
		"from":       constants.DefaultFromCurrency,
		"to":         constants.DefaultToCurrency,
	})
}

func (h *handler) handleRates(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRates"

	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	base := exchange.NormalizeCode(r.URL.Query().Get("base"))
	if base == "" {
		base = constants.DefaultFromCurrency
	}
	if !exchange.IsSupported(base) {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("unsupported currency %q", base), op)
		return
	}

	table, ok := h.fetchRates(w, r, base, op)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, table)
}

type conversionResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Rate      float64 `json:"rate"`
	Converted float64 `json:"converted"`
	RateInfo  string  `json:"rateInfo"`
	Text      string  `json:"text"`
}

func (h *handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConvert"

	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	from := exchange.NormalizeCode(query.Get("from"))
	if from == "" {
		from = constants.DefaultFromCurrency
	}
	to := exchange.NormalizeCode(query.Get("to"))
	if to == "" {
		to = constants.DefaultToCurrency
	}
	for _, code := range []string{from, to} {
		if !exchange.IsSupported(code) {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("unsupported currency %q", code), op)
			return
		}
	}
	amount := input.FloatOrZero(query.Get("amount"))

	table, ok := h.fetchRates(w, r, from, op)
	if !ok {
		return
	}

	converted, err := exchange.Convert(amount, table, from, to)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadGateway, exchange.UnavailableMessage, op)
		return
	}
	rate, _ := table.Rate(to)

	h.writeJSON(w, http.StatusOK, conversionResponse{
		From:      from,
		To:        to,
		Amount:    amount,
		Rate:      rate,
		Converted: converted,
		RateInfo:  format.RateInfo(from, to, rate),
		Text:      h.formatter.CurrencyOf(converted, to),
	})
}

// fetchRates loads the table for base, answering 502 with the user-facing
// message when rates cannot be fetched.
func (h *handler) fetchRates(w http.ResponseWriter, r *http.Request, base, op string) (exchange.RateTable, bool) {
	if h.rates == nil {
		h.respondErrorWithOp(w, r, http.StatusServiceUnavailable, exchange.UnavailableMessage, op)
		return exchange.RateTable{}, false
	}

	table, err := h.rates.Fetch(r.Context(), base)
	if err != nil {
		h.logger.Error("exchange rate api error",
			zap.String("op", op),
			zap.String("requestId", requestID(r)),
			zap.String("base", base),
			zap.Error(err),
		)
		h.respondErrorWithOp(w, r, http.StatusBadGateway, exchange.UnavailableMessage, op)
		return exchange.RateTable{}, false
	}
	return table, true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Warn("request failed",
		zap.String("op", op),
		zap.String("requestId", requestID(r)),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
