package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the security middleware applied to every request.
type SecurityConfig struct {
	// EnableCORS enables Cross-Origin Resource Sharing headers.
	EnableCORS bool
	// AllowedOrigins lists origins permitted for CORS. "*" allows any origin.
	AllowedOrigins []string
	// AllowedMethods lists HTTP methods advertised in CORS responses.
	AllowedMethods []string
	// MaxOperandBits caps the bit length of operands accepted by compute
	// endpoints. Requests with larger operands are rejected before any
	// arithmetic is attempted.
	MaxOperandBits int
}

// DefaultSecurityConfig returns the security settings used when none are
// provided: permissive CORS for read-only access and a 1 Mi-bit operand cap.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxOperandBits: 1 << 20,
	}
}

// corsOrigin returns the Access-Control-Allow-Origin value for the request
// origin, or "" when the origin is not allowed. The wildcard "*" matches
// every request, including those without an Origin header.
func corsOrigin(config SecurityConfig, origin string) string {
	for _, allowed := range config.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if origin != "" && allowed == origin {
			return origin
		}
	}
	return ""
}

// SecurityMiddleware wraps next with security headers, CORS handling, and
// OPTIONS preflight short-circuiting. Security headers are set on every
// response regardless of method or CORS configuration.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := corsOrigin(config, r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}
