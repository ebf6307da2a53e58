package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maternal-companion-go/internal/service"
)

// ConversationHandler serves the session history.
type ConversationHandler struct {
	service service.ConversationService
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(service service.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// GetConversation handles GET /api/v1/chat/history?session_id=.
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	sessionID, ok := requireSessionID(c)
	if !ok {
		return
	}

	history, err := h.service.GetConversationHistory(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Failed to retrieve conversation history", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": history})
}

// ResetConversation handles DELETE /api/v1/chat/history?session_id=.
func (h *ConversationHandler) ResetConversation(c *gin.Context) {
	sessionID, ok := requireSessionID(c)
	if !ok {
		return
	}

	if err := h.service.ResetConversation(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Failed to reset conversation", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}

// ListSessions handles GET /api/v1/chat/sessions.
func (h *ConversationHandler) ListSessions(c *gin.Context) {
	sessions, err := h.service.ListSessions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "Failed to list sessions", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": sessions})
}

func requireSessionID(c *gin.Context) (string, bool) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "session_id is required", "data": nil})
		return "", false
	}
	return sessionID, true
}
