package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func sessionCookie(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	CreateSession(w, userID)
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestSessionRoundTrip(t *testing.T) {
	c := sessionCookie(t, "user-123")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	userID, ok := ParseSession(req)
	if !ok {
		t.Fatal("expected valid session")
	}
	if userID != "user-123" {
		t.Fatalf("userID = %s, want user-123", userID)
	}
}

func TestSessionTamperRejected(t *testing.T) {
	c := sessionCookie(t, "user-123")

	// Swap the user id but keep the original signature.
	idx := strings.LastIndex(c.Value, ".")
	forged := &http.Cookie{Name: c.Name, Value: "someone-else" + c.Value[idx:]}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(forged)
	if _, ok := ParseSession(req); ok {
		t.Fatal("tampered session accepted")
	}
}

func TestSessionMalformedRejected(t *testing.T) {
	for _, value := range []string{"", "no-separator", ".leading-dot"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: value})
		if _, ok := ParseSession(req); ok {
			t.Fatalf("malformed session %q accepted", value)
		}
	}
}

func TestClearSessionExpiresCookie(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSession(w)
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].Value != "" || !cookies[0].Expires.Before(time.Now()) {
		t.Fatalf("cookie not cleared: %+v", cookies[0])
	}
}

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Middleware(RequireAuth(next))

	// No cookie.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}

	// Valid cookie passes through.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, "user-123"))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 with session, got %d", w.Code)
	}
}

func TestRequireAuthVerifier(t *testing.T) {
	SetUserVerifier(func(ctx context.Context, userID string) bool { return userID == "known" })
	t.Cleanup(func() { SetUserVerifier(nil) })

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Middleware(RequireAuth(next))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, "unknown"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for vanished user, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, "known"))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for known user, got %d", w.Code)
	}
}
