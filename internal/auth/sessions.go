// Package auth implements the admin session gate. A successful login issues
// a signed token carried in a cookie; middleware variants either redirect
// browsers to the login page or answer API callers with a JSON 401.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionCookie is the cookie carrying the admin session token.
	SessionCookie = "linkboard_session"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Claims is the session token payload. There is a single admin identity,
// so the only claim beyond the registered set is the admin flag itself.
type Claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies admin session tokens.
type Sessions struct {
	secret   []byte
	duration time.Duration
}

// NewSessions creates a session service signing with secret. Tokens expire
// after duration.
func NewSessions(secret string, duration time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), duration: duration}
}

// Issue creates a signed admin session token.
func (s *Sessions) Issue() (string, error) {
	claims := Claims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "linkboard",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks a session token and confirms it carries the admin flag.
func (s *Sessions) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Admin {
		return ErrUnauthorized
	}
	return nil
}

// SetCookie attaches the session token to the response.
func (s *Sessions) SetCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookie, token, int(s.duration.Seconds()), "/", "", false, true)
}

// ClearCookie removes the session cookie.
func (s *Sessions) ClearCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// Authenticated reports whether the request carries a valid admin session.
func (s *Sessions) Authenticated(c *gin.Context) bool {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie == "" {
		return false
	}
	if err := s.Verify(cookie); err != nil {
		slog.Warn("Invalid session token", "error", err)
		return false
	}
	return true
}

// RequireWeb gates browser routes: unauthenticated requests are redirected
// to the login page.
func (s *Sessions) RequireWeb() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Authenticated(c) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAPI gates JSON routes: unauthenticated requests get a structured
// 401 instead of a redirect.
func (s *Sessions) RequireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Authenticated(c) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
