package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/mightywomble/linksdashboard/internal/store"
)

// SettingsHandler serves the small JSON endpoints behind the settings page:
// API keys, the admin password and the dashboard title.
type SettingsHandler struct {
	store *store.Store
}

func NewSettingsHandler(st *store.Store) *SettingsHandler {
	return &SettingsHandler{store: st}
}

// GetAPIKeys returns the stored provider keys for display in settings.
func (h *SettingsHandler) GetAPIKeys(c *gin.Context) {
	doc, err := h.store.Load()
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"openai_api_key": doc.APIKeys.OpenAI,
		"gemini_api_key": doc.APIKeys.Gemini,
	})
}

// SaveAPIKeys updates the provider keys. Empty form fields leave the stored
// key untouched.
func (h *SettingsHandler) SaveAPIKeys(c *gin.Context) {
	openaiKey := c.PostForm("openai_api_key")
	geminiKey := c.PostForm("gemini_api_key")

	err := h.store.Update(func(doc *store.Document) error {
		if openaiKey != "" {
			doc.APIKeys.OpenAI = openaiKey
		}
		if geminiKey != "" {
			doc.APIKeys.Gemini = geminiKey
		}
		return nil
	})
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ChangeAdminPassword replaces the admin password after verifying the
// current one.
func (h *SettingsHandler) ChangeAdminPassword(c *gin.Context) {
	currentPassword := c.PostForm("current_password")
	newPassword := c.PostForm("new_password")

	if currentPassword == "" || newPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password and new password are required"})
		return
	}

	wrongPassword := false
	tooShort := false
	err := h.store.Update(func(doc *store.Document) error {
		if currentPassword != doc.Admin.Password {
			wrongPassword = true
			return store.ErrValidation
		}
		if len(newPassword) < 4 {
			tooShort = true
			return store.ErrValidation
		}
		doc.Admin.Password = newPassword
		return nil
	})
	if wrongPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		return
	}
	if tooShort {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 4 characters long"})
		return
	}
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetDashboardTitle returns the current title.
func (h *SettingsHandler) GetDashboardTitle(c *gin.Context) {
	doc, err := h.store.Load()
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard_title": doc.DashboardTitle})
}

// SaveDashboardTitle stores a new title, trimmed, capped at 50 characters.
func (h *SettingsHandler) SaveDashboardTitle(c *gin.Context) {
	title := c.PostForm("dashboard_title")

	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dashboard title is required"})
		return
	}
	if utf8.RuneCountInString(title) > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dashboard title must be 50 characters or less"})
		return
	}

	err := h.store.Update(func(doc *store.Document) error {
		doc.DashboardTitle = strings.TrimSpace(title)
		return nil
	})
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
