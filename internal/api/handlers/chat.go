package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mightywomble/linksdashboard/internal/chat"
	"github.com/mightywomble/linksdashboard/internal/store"
)

// ChatHandler forwards chat messages to the configured AI provider.
type ChatHandler struct {
	store *store.Store
	proxy *chat.Proxy
}

func NewChatHandler(st *store.Store, proxy *chat.Proxy) *ChatHandler {
	return &ChatHandler{store: st, proxy: proxy}
}

type chatRequest struct {
	Message string `json:"message"`
	Service string `json:"service"`
}

// Chat answers a dashboard chat message via the selected provider.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Service == "" {
		req.Service = "openai"
	}

	doc, err := h.store.Load()
	if err != nil {
		apiError(c, err)
		return
	}

	reply, err := h.proxy.Ask(c.Request.Context(), req.Message, req.Service, doc.APIKeys)
	if err != nil {
		if errors.Is(err, chat.ErrMissingAPIKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": reply})
}
