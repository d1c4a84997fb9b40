package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	s := NewSessions("test-secret", time.Hour)

	token, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := s.Verify(token); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewSessions("secret-a", time.Hour).Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := NewSessions("secret-b", time.Hour).Verify(token); err == nil {
		t.Error("token signed with another secret verified")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	s := NewSessions("test-secret", -time.Minute)
	token, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := s.Verify(token); err == nil {
		t.Error("expired token verified")
	}
}

func setupGateRouter(t *testing.T, s *Sessions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/settings", s.RequireWeb(), func(c *gin.Context) {
		c.String(http.StatusOK, "settings")
	})
	r.GET("/get_api_keys", s.RequireAPI(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireWebRedirectsAnonymous(t *testing.T) {
	s := NewSessions("test-secret", time.Hour)
	r := setupGateRouter(t, s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settings", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireAPIReturns401(t *testing.T) {
	s := NewSessions("test-secret", time.Hour)
	r := setupGateRouter(t, s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/get_api_keys", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticatedRequestPasses(t *testing.T) {
	s := NewSessions("test-secret", time.Hour)
	r := setupGateRouter(t, s)

	token, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, path := range []string{"/settings", "/get_api_keys"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200 with session, got %d", path, w.Code)
		}
	}
}
