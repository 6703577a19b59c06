package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDefaultSecurityConfig(t *testing.T) {
	config := DefaultSecurityConfig()

	if !config.EnableCORS {
		t.Error("CORS should be enabled by default")
	}
	if len(config.AllowedOrigins) != 1 || config.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want wildcard only", config.AllowedOrigins)
	}
	if len(config.AllowedMethods) != 2 || config.AllowedMethods[0] != "GET" || config.AllowedMethods[1] != "OPTIONS" {
		t.Errorf("AllowedMethods = %v, want [GET OPTIONS]", config.AllowedMethods)
	}
	if config.MaxOperandBits != 1<<20 {
		t.Errorf("MaxOperandBits = %d, want %d", config.MaxOperandBits, 1<<20)
	}
}

// applyMiddleware runs a request through SecurityMiddleware with a recording
// next handler and returns the recorder plus whether next ran.
func applyMiddleware(config SecurityConfig, method, origin string) (*httptest.ResponseRecorder, bool) {
	nextCalled := false
	handler := SecurityMiddleware(config, func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(method, "/v1/eval", http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec, nextCalled
}

func TestSecurityMiddlewareHeaders(t *testing.T) {
	rec, nextCalled := applyMiddleware(DefaultSecurityConfig(), "GET", "")

	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"X-XSS-Protection":        "1; mode=block",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
	if !nextCalled {
		t.Error("next handler was not reached")
	}
}

func TestSecurityMiddlewareCORS(t *testing.T) {
	allow := func(origins ...string) SecurityConfig {
		return SecurityConfig{
			EnableCORS:     true,
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET"},
		}
	}

	tests := []struct {
		name       string
		config     SecurityConfig
		origin     string
		wantOrigin string // empty means no CORS headers expected
	}{
		{"disabled", SecurityConfig{EnableCORS: false}, "http://example.com", ""},
		{"wildcard", allow("*"), "http://example.com", "*"},
		{"wildcard without origin header", allow("*"), "", "*"},
		{"exact match", allow("http://calc.example"), "http://calc.example", "http://calc.example"},
		{"second of several", allow("http://a.example", "http://b.example"), "http://b.example", "http://b.example"},
		{"rejected origin", allow("http://calc.example"), "http://evil.example", ""},
		{"specific list without origin header", allow("http://calc.example"), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := applyMiddleware(tt.config, "GET", tt.origin)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if got != tt.wantOrigin {
				t.Fatalf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.wantOrigin == "" {
				return
			}
			for _, h := range []string{"Access-Control-Allow-Methods", "Access-Control-Allow-Headers", "Access-Control-Max-Age"} {
				if rec.Header().Get(h) == "" {
					t.Errorf("%s should be set when the origin is allowed", h)
				}
			}
		})
	}
}

func TestSecurityMiddlewarePreflight(t *testing.T) {
	rec, nextCalled := applyMiddleware(DefaultSecurityConfig(), "OPTIONS", "http://example.com")

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if nextCalled {
		t.Error("preflight must be answered by the middleware, not the handler")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("preflight response should carry CORS headers")
	}
}

func TestSecurityMiddlewarePassThrough(t *testing.T) {
	// Every non-OPTIONS method reaches the handler with headers applied;
	// method restrictions are the handlers' concern.
	for _, method := range []string{"GET", "POST", "PUT", "DELETE"} {
		t.Run(method, func(t *testing.T) {
			rec, nextCalled := applyMiddleware(DefaultSecurityConfig(), method, "")
			if !nextCalled {
				t.Fatalf("%s request did not reach the handler", method)
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Errorf("security headers missing on %s", method)
			}
		})
	}

	body := "2312312312312312"
	handler := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/v1/eval", http.NoBody))
	if rec.Code != http.StatusOK || rec.Body.String() != body {
		t.Errorf("handler response altered: code %d body %q", rec.Code, rec.Body.String())
	}
}
