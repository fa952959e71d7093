package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

// CSRFTokenContextKey is the context key for the session's CSRF token
const CSRFTokenContextKey contextKey = "csrf_token"

// CSRFMiddleware provides CSRF protection functionality
type CSRFMiddleware struct {
	store sessions.Store
}

// NewCSRFMiddleware creates a new CSRF middleware
func NewCSRFMiddleware(store sessions.Store) *CSRFMiddleware {
	return &CSRFMiddleware{
		store: store,
	}
}

// EnsureCSRFToken makes sure a CSRF token is present in the session
// and exposes it on the request context for templates
func (m *CSRFMiddleware) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, "session")
		if err == nil {
			token, ok := session.Values["csrf_token"].(string)
			if !ok || token == "" {
				token = GenerateCSRFToken()
				session.Values["csrf_token"] = token
				session.Save(r, w)
			}

			ctx := context.WithValue(r.Context(), CSRFTokenContextKey, token)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

// CSRFProtection validates the CSRF token on state-changing requests
func (m *CSRFMiddleware) CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "GET" || r.Method == "HEAD" || r.Method == "OPTIONS" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.store.Get(r, "session")
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		sessionToken, ok := session.Values["csrf_token"].(string)
		if !ok || sessionToken == "" {
			http.Error(w, "CSRF token not found in session", http.StatusForbidden)
			return
		}

		requestToken := r.Header.Get("X-CSRF-Token")
		if requestToken == "" {
			requestToken = r.FormValue("csrf_token")
		}

		if requestToken != sessionToken {
			if IsHTMXRequest(r) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`<div class="error-banner">Security token mismatch. Please refresh the page and try again.</div>`))
			} else {
				http.Error(w, "CSRF token mismatch", http.StatusForbidden)
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GenerateCSRFToken generates a CSRF token for the session
func GenerateCSRFToken() string {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		// Fallback to timestamp-based token if crypto/rand fails
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(tokenBytes)
}

// GetCSRFToken retrieves the CSRF token from the context
func GetCSRFToken(ctx context.Context) string {
	token, ok := ctx.Value(CSRFTokenContextKey).(string)
	if !ok {
		return ""
	}
	return token
}
