package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

func TestEnsureCartToken_NewVisitor(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret-key"))
	sessionMiddleware := NewSessionMiddleware(store)

	var seenToken string
	handler := sessionMiddleware.EnsureCartToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenToken = GetCartToken(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if seenToken == "" {
		t.Fatal("cart token missing from context for new visitor")
	}
	if _, err := uuid.Parse(seenToken); err != nil {
		t.Errorf("cart token %q is not a valid UUID: %v", seenToken, err)
	}
	if len(w.Result().Cookies()) == 0 {
		t.Error("no session cookie set for new visitor")
	}
}

func TestEnsureCartToken_ReturningVisitor(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret-key"))
	sessionMiddleware := NewSessionMiddleware(store)

	var tokens []string
	handler := sessionMiddleware.EnsureCartToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokens = append(tokens, GetCartToken(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest("GET", "/", nil)
	firstRec := httptest.NewRecorder()
	handler.ServeHTTP(firstRec, first)

	second := httptest.NewRequest("GET", "/cart", nil)
	for _, cookie := range firstRec.Result().Cookies() {
		second.AddCookie(cookie)
	}
	secondRec := httptest.NewRecorder()
	handler.ServeHTTP(secondRec, second)

	if len(tokens) != 2 {
		t.Fatalf("handler called %d times, want 2", len(tokens))
	}
	if tokens[0] != tokens[1] {
		t.Errorf("returning visitor got a new token: %q then %q", tokens[0], tokens[1])
	}
}

func TestGetCartToken_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	if token := GetCartToken(req.Context()); token != "" {
		t.Errorf("GetCartToken() = %q, want empty string", token)
	}
}

func TestIsHTMXRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if IsHTMXRequest(req) {
		t.Error("plain request detected as HTMX")
	}

	req.Header.Set("HX-Request", "true")
	if !IsHTMXRequest(req) {
		t.Error("HTMX request not detected")
	}
}

func TestSecureHeaders(t *testing.T) {
	handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}

func TestRequireAdminToken(t *testing.T) {
	handler := RequireAdminToken("secret-admin-token")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{"missing token", "", "", http.StatusUnauthorized},
		{"wrong token", "X-Admin-Token", "wrong", http.StatusUnauthorized},
		{"valid header token", "X-Admin-Token", "secret-admin-token", http.StatusOK},
		{"valid bearer token", "Authorization", "Bearer secret-admin-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/admin/books", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireAdminToken_NotConfigured(t *testing.T) {
	handler := RequireAdminToken("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/admin/books", nil)
	req.Header.Set("X-Admin-Token", "anything")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 when admin token is not configured", w.Code)
	}
}
