package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "linkboard_flash"

// Flash is a one-shot status banner carried across a redirect.
type Flash struct {
	Level   string // "success", "danger" or "warning"
	Message string
}

// setFlash stores a flash message for the next page render.
func setFlash(c *gin.Context, level, message string) {
	c.SetCookie(flashCookie, level+"|"+message, 60, "/", "", false, true)
}

// popFlash retrieves and clears the pending flash message, if any.
func popFlash(c *gin.Context) *Flash {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	level, message, ok := strings.Cut(value, "|")
	if !ok {
		return nil
	}
	return &Flash{Level: level, Message: message}
}

// redirectSettings sends a browser-style route back to the settings page.
func redirectSettings(c *gin.Context) {
	c.Redirect(http.StatusFound, "/settings")
}

// webError handles persistence failures on browser routes. Disk write
// failures are fatal to the request.
func webError(c *gin.Context, err error) {
	slog.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	c.String(http.StatusInternalServerError, "internal server error")
	c.Abort()
}

// apiError handles persistence failures on JSON routes.
func apiError(c *gin.Context, err error) {
	slog.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
