package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "s3cretpass") {
		t.Fatalf("expected password to match")
	}
	if CheckPassword(hash, "other") {
		t.Fatalf("expected mismatch to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Now()
	tok := IssueToken(42, now)
	uid, ok := ParseToken(tok, now.Add(time.Hour))
	if !ok || uid != 42 {
		t.Fatalf("expected uid 42, got %d ok=%v", uid, ok)
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	tok := IssueToken(42, now)
	if _, ok := ParseToken(tok, now.Add(TokenTTL+time.Minute)); ok {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestTokenTampered(t *testing.T) {
	tok := IssueToken(42, time.Now())
	parts := strings.Split(tok, ".")
	forged := "99." + parts[1] + "." + parts[2]
	if _, ok := ParseToken(forged, time.Now()); ok {
		t.Fatalf("expected forged token to be rejected")
	}
	if _, ok := ParseToken("garbage", time.Now()); ok {
		t.Fatalf("expected malformed token to be rejected")
	}
}

func TestMiddlewareAttachesUser(t *testing.T) {
	tok := IssueToken(7, time.Now())
	var got uint
	h := Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = UserIDFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != 7 {
		t.Fatalf("expected uid 7 in context, got %d", got)
	}
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	h := RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not run")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestRequireAuthUsesVerifier(t *testing.T) {
	SetUserVerifier(func(context.Context, uint) bool { return false })
	t.Cleanup(func() { SetUserVerifier(nil) })
	tok := IssueToken(7, time.Now())
	h := Middleware(RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not run for rejected user")
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}
