package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

type contextKey string

// CartTokenContextKey is the context key for the visitor's cart token
const CartTokenContextKey contextKey = "cart_token"

// SessionMiddleware manages the visitor session cookie carrying the
// cart token
type SessionMiddleware struct {
	store sessions.Store
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(store sessions.Store) *SessionMiddleware {
	return &SessionMiddleware{
		store: store,
	}
}

// EnsureCartToken makes sure every visitor carries a cart token in the
// session and exposes it on the request context
func (m *SessionMiddleware) EnsureCartToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, "session")
		if err != nil {
			// A corrupt cookie gets replaced with a fresh session
			session.Options.MaxAge = -1
		}

		token, ok := session.Values["cart_token"].(string)
		if !ok || token == "" {
			token = uuid.New().String()
			session.Values["cart_token"] = token
			session.Options.MaxAge = 0
			if err := session.Save(r, w); err != nil {
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}
		}

		ctx := context.WithValue(r.Context(), CartTokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCartToken retrieves the cart token from the context
func GetCartToken(ctx context.Context) string {
	token, ok := ctx.Value(CartTokenContextKey).(string)
	if !ok {
		return ""
	}
	return token
}

// IsHTMXRequest checks if the request is from HTMX
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// SecureHeaders adds security headers to responses
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' https:;")

		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
