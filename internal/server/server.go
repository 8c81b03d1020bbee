package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/moradia-app/moradia/internal/calculation"
	"github.com/moradia-app/moradia/internal/compare"
	"github.com/moradia-app/moradia/internal/config"
	"github.com/moradia-app/moradia/internal/domain"
)

const maxRequestBytes = 1 << 20 // 1 MiB of JSON is far beyond any real input

// ListenAndServe runs the API server until the listener fails.
func ListenAndServe(cfg *Config, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: NewHandler(logger),
	}
	return srv.ListenAndServe()
}

type handler struct {
	logger *zap.Logger
	engine *compare.Engine
}

// NewHandler constructs the HTTP handler serving the simulation API.
func NewHandler(logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handler{
		logger: logger,
		engine: compare.NewEngine(logger),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/loan", h.handleLoan)
	mux.HandleFunc("/api/compare", h.handleCompare)
	mux.HandleFunc("/healthz", h.handleHealth)
	return mux
}

// loanRequest is the wire form of a standalone loan simulation.
type loanRequest struct {
	LoanValue                  json.Number               `json:"loanValue"`
	TermMonths                 int                       `json:"termMonths"`
	System                     domain.LoanSystem         `json:"system"`
	InterestRates              domain.RatePair           `json:"interestRates"`
	Amortizations              []domain.AmortizationSpec `json:"amortizations"`
	AnnualInflationRatePercent json.Number               `json:"annualInflationRatePercent"`
}

func (h *handler) handleLoan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	var req loanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	loanValue, err := decimalFromNumber(req.LoanValue)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("loanValue: %w", err))
		return
	}
	inflation, err := decimalFromNumber(req.AnnualInflationRatePercent)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("annualInflationRatePercent: %w", err))
		return
	}

	monthlyRate, err := calculation.ResolveMonthlyRate(req.InterestRates)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	result, err := calculation.SimulateLoan(domain.LoanParameters{
		LoanValue:          loanValue,
		TermMonths:         req.TermMonths,
		MonthlyRatePercent: monthlyRate,
		System:             req.System,
	}, req.Amortizations, inflation, h.logger)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	var input domain.SimulationInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	parser := config.NewInputParser()
	if err := parser.Validate(&input); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	enhanced := r.URL.Query().Get("enhanced") == "true"
	if enhanced {
		result, err := h.engine.EnhancedCompare(&input)
		if err != nil {
			h.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		h.writeJSON(w, http.StatusOK, result)
		return
	}

	result, err := h.engine.Compare(&input)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, err error) {
	h.logger.Warn("request failed", zap.Int("status", status), zap.Error(err))
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decimalFromNumber(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(string(n))
}
