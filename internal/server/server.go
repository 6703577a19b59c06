// Package server provides the optional HTTP interface: arithmetic endpoints,
// a health check, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apint "github.com/agbru/apint"
	"github.com/agbru/apint/internal/logging"
)

// Config holds the server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// ReadTimeout bounds the time spent reading a request.
	ReadTimeout time.Duration
	// WriteTimeout bounds the time spent writing a response.
	WriteTimeout time.Duration
	// Security configures the security middleware. Zero value means
	// DefaultSecurityConfig.
	Security SecurityConfig
}

// Server is the HTTP server exposing arithmetic operations over a REST-style
// API along with /metrics and /healthz endpoints.
type Server struct {
	cfg      Config
	metrics  *Metrics
	security SecurityConfig
	logger   logging.Logger
	httpSrv  *http.Server
}

// New creates a Server. A nil logger defaults to the standard library adapter.
func New(cfg Config, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	security := cfg.Security
	if security.AllowedOrigins == nil && !security.EnableCORS && security.MaxOperandBits == 0 {
		security = DefaultSecurityConfig()
	}
	return &Server{
		cfg:      cfg,
		metrics:  NewMetrics(),
		security: security,
		logger:   logger,
	}
}

// Routes builds the HTTP handler with all middleware applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	mux.HandleFunc("/v1/eval", s.wrap(s.handleEval))
	mux.HandleFunc("/v1/modpow", s.wrap(s.handleModPow))
	return mux
}

// wrap applies the security and metrics middleware to a handler.
func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(h))
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.cfg.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

// metricsMiddleware tracks in-flight requests, totals, and latency.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		start := time.Now()
		defer func() {
			s.metrics.DecrementActiveRequests()
			s.metrics.ObserveRequest(time.Since(start))
		}()
		next(w, r)
	}
}

// handleMetrics serves Prometheus metrics. Only GET is allowed.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("method not allowed on /metrics", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// evalResponse is the JSON body returned by arithmetic endpoints.
type evalResponse struct {
	Result    string `json:"result"`
	Remainder string `json:"remainder,omitempty"`
	Radix     int    `json:"radix"`
	Duration  string `json:"duration"`
}

// errorResponse is the JSON body returned on failures.
type errorResponse struct {
	Error string `json:"error"`
}

// handleEval evaluates a binary operation on two signed operands:
// GET /v1/eval?op=add|sub|mul|div|gcd&x=...&y=...&radix=10
func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	radix, err := s.parseRadix(q.Get("radix"))
	if err != nil {
		s.failCompute(w, http.StatusBadRequest, err)
		return
	}

	x, err := s.parseOperand(q.Get("x"), radix)
	if err != nil {
		s.failCompute(w, http.StatusBadRequest, fmt.Errorf("operand x: %w", err))
		return
	}
	y, err := s.parseOperand(q.Get("y"), radix)
	if err != nil {
		s.failCompute(w, http.StatusBadRequest, fmt.Errorf("operand y: %w", err))
		return
	}

	start := time.Now()
	resp := evalResponse{Radix: radix}
	switch op := q.Get("op"); op {
	case "add":
		resp.Result = x.Add(y).Text(radix)
	case "sub":
		resp.Result = x.Sub(y).Text(radix)
	case "mul":
		resp.Result = x.Mul(y).Text(radix)
	case "div":
		quo, rem, divErr := x.DivRem(y)
		if divErr != nil {
			s.failCompute(w, http.StatusUnprocessableEntity, divErr)
			return
		}
		resp.Result = quo.Text(radix)
		resp.Remainder = rem.Text(radix)
	case "gcd":
		resp.Result = x.Gcd(y).Text(radix)
	default:
		s.failCompute(w, http.StatusBadRequest, fmt.Errorf("unknown operation %q", op))
		return
	}
	resp.Duration = time.Since(start).String()

	s.writeJSON(w, http.StatusOK, resp)
}

// handleModPow computes base^exp mod m:
// GET /v1/modpow?base=...&exp=...&mod=...&radix=10
func (s *Server) handleModPow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	radix, err := s.parseRadix(q.Get("radix"))
	if err != nil {
		s.failCompute(w, http.StatusBadRequest, err)
		return
	}

	parse := func(name string) (apint.Nat, error) {
		raw := q.Get(name)
		if err := s.checkOperandSize(raw, radix); err != nil {
			return apint.Nat{}, fmt.Errorf("operand %s: %w", name, err)
		}
		v, err := apint.ParseNat(raw, radix)
		if err != nil {
			return apint.Nat{}, fmt.Errorf("operand %s: %w", name, err)
		}
		return v, nil
	}

	base, err := parse("base")
	if err != nil {
		s.failCompute(w, http.StatusBadRequest, err)
		return
	}
	exp, err := parse("exp")
	if err != nil {
		s.failCompute(w, http.StatusBadRequest, err)
		return
	}
	mod, err := parse("mod")
	if err != nil {
		s.failCompute(w, http.StatusBadRequest, err)
		return
	}

	ring, err := apint.NewRing(mod)
	if err != nil {
		s.failCompute(w, http.StatusUnprocessableEntity, err)
		return
	}

	start := time.Now()
	result := ring.Reduce(base).Pow(exp)
	s.writeJSON(w, http.StatusOK, evalResponse{
		Result:   result.ToNat().Text(radix),
		Radix:    radix,
		Duration: time.Since(start).String(),
	})
}

// parseRadix interprets the radix query parameter, defaulting to 10.
func (s *Server) parseRadix(raw string) (int, error) {
	if raw == "" {
		return 10, nil
	}
	var radix int
	if _, err := fmt.Sscanf(raw, "%d", &radix); err != nil {
		return 0, fmt.Errorf("invalid radix %q", raw)
	}
	if radix < 2 || radix > 36 {
		return 0, fmt.Errorf("radix %d out of range [2, 36]", radix)
	}
	return radix, nil
}

// parseOperand parses a signed operand after enforcing the operand size cap.
func (s *Server) parseOperand(raw string, radix int) (apint.Int, error) {
	if err := s.checkOperandSize(raw, radix); err != nil {
		return apint.Int{}, err
	}
	return apint.ParseInt(raw, radix)
}

// checkOperandSize rejects operands whose bit length would exceed the
// configured cap. The bound is estimated from the digit count, which
// overshoots by at most one digit's worth of bits.
func (s *Server) checkOperandSize(raw string, radix int) error {
	if s.security.MaxOperandBits <= 0 {
		return nil
	}
	// ceil(log2(radix)) bits per digit is a safe upper bound
	bitsPerDigit := 1
	for 1<<bitsPerDigit < radix {
		bitsPerDigit++
	}
	if len(raw)*bitsPerDigit > s.security.MaxOperandBits+bitsPerDigit {
		return fmt.Errorf("operand exceeds %d bit limit", s.security.MaxOperandBits)
	}
	return nil
}

// failCompute logs the error, counts it, and writes a JSON error response.
func (s *Server) failCompute(w http.ResponseWriter, status int, err error) {
	s.metrics.IncrementComputeErrors()
	s.logger.Debug("compute request rejected", logging.Err(err), logging.Int("status", status))
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", err)
	}
}
