package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/good-yellow-bee/liveguide/internal/api/respond"
)

// cspNonceKey stores the request-specific CSP nonce in context.
const cspNonceKey contextKey = "csp_nonce"

// GetCSPNonce returns the per-request CSP nonce from context.
func GetCSPNonce(ctx context.Context) string {
	if v := ctx.Value(cspNonceKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func generateCSPNonce() (string, error) {
	nonceBytes := make([]byte, 16)
	if _, err := rand.Read(nonceBytes); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(nonceBytes), nil
}

// buildCSPHeader builds the policy for the guide builder UI. Component
// previews render in a sandboxed srcdoc iframe, so this policy governs
// the host document only. Without a nonce the policy degrades to
// unsafe-inline rather than blocking the UI's inline bootstrap.
func buildCSPHeader(nonce string) string {
	scriptSrc := []string{"'self'", "https://cdn.jsdelivr.net"}
	if nonce != "" {
		scriptSrc = append([]string{"'self'", "'nonce-" + nonce + "'"}, "https://cdn.jsdelivr.net")
	} else {
		scriptSrc = append([]string{"'self'", "'unsafe-inline'"}, "https://cdn.jsdelivr.net")
	}

	return "default-src 'self'; " +
		"script-src " + strings.Join(scriptSrc, " ") + "; " +
		"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; " +
		"font-src 'self' https://fonts.gstatic.com; " +
		"img-src 'self' data:; " +
		"connect-src 'self'; " +
		"object-src 'none'; " +
		"base-uri 'self'; " +
		"frame-ancestors 'none'"
}

// SecurityHeaders adds the standard security headers to every response.
// img-src allows data: because the guide inlines assets as data URIs.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce, err := generateCSPNonce()
		if err != nil {
			log.Printf("csp nonce generation failed: %v", err)
		} else {
			r = r.WithContext(context.WithValue(r.Context(), cspNonceKey, nonce))
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", buildCSPHeader(nonce))

		// HSTS only over TLS
		if IsRequestSecure(r) {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		next.ServeHTTP(w, r)
	})
}

// Recoverer converts a handler panic into a logged 500 response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC recovered: %v\nRequest: %s %s\nStack:\n%s",
					err, r.Method, r.URL.Path, debug.Stack())
				respond.JSONError(w, respond.ErrInternalServer)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
