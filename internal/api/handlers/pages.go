package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/mightywomble/linksdashboard/internal/auth"
	"github.com/mightywomble/linksdashboard/internal/store"
)

// PagesHandler renders the server-side HTML pages and runs the login flow.
type PagesHandler struct {
	store    *store.Store
	sessions *auth.Sessions
	iconsDir string
}

func NewPagesHandler(st *store.Store, sessions *auth.Sessions, iconsDir string) *PagesHandler {
	return &PagesHandler{store: st, sessions: sessions, iconsDir: iconsDir}
}

// Index renders the dashboard.
func (h *PagesHandler) Index(c *gin.Context) {
	doc, err := h.store.Load()
	if err != nil {
		webError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"DashboardTitle": doc.DashboardTitle,
		"Groups":         doc.Groups,
		"LoggedIn":       h.sessions.Authenticated(c),
		"Flash":          popFlash(c),
	})
}

// LoginForm renders the login page.
func (h *PagesHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Flash": popFlash(c)})
}

// Login checks the submitted credentials against the document's admin
// record and opens the admin session.
func (h *PagesHandler) Login(c *gin.Context) {
	doc, err := h.store.Load()
	if err != nil {
		webError(c, err)
		return
	}

	username := c.PostForm("username")
	password := c.PostForm("password")
	if username != doc.Admin.Username || password != doc.Admin.Password {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Flash": &Flash{Level: "danger", Message: "Invalid credentials. Please try again."},
		})
		return
	}

	token, err := h.sessions.Issue()
	if err != nil {
		webError(c, err)
		return
	}
	h.sessions.SetCookie(c, token)
	setFlash(c, "success", "You were successfully logged in!")
	redirectSettings(c)
}

// Logout closes the admin session.
func (h *PagesHandler) Logout(c *gin.Context) {
	h.sessions.ClearCookie(c)
	setFlash(c, "success", "You were successfully logged out.")
	c.Redirect(http.StatusFound, "/")
}

// Settings renders the admin settings page with the group list, feed list
// and the icon assets available for groups.
func (h *PagesHandler) Settings(c *gin.Context) {
	doc, err := h.store.Load()
	if err != nil {
		webError(c, err)
		return
	}
	c.HTML(http.StatusOK, "settings.html", gin.H{
		"DashboardTitle": doc.DashboardTitle,
		"Groups":         doc.Groups,
		"Feeds":          doc.RSSFeeds,
		"AvailableIcons": h.availableIcons(),
		"Flash":          popFlash(c),
	})
}

// availableIcons lists the bundled icon assets. A missing directory is an
// empty list, not an error.
func (h *PagesHandler) availableIcons() []string {
	entries, err := os.ReadDir(h.iconsDir)
	if err != nil {
		return nil
	}
	var icons []string
	for _, e := range entries {
		if !e.IsDir() {
			icons = append(icons, filepath.Base(e.Name()))
		}
	}
	return icons
}
