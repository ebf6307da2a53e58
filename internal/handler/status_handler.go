package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maternal-companion-go/internal/model"
	"maternal-companion-go/internal/service"
)

// LimitedModeNotice is shown when replies can only come from templates.
const LimitedModeNotice = "Running in limited mode. For full functionality, please configure your Gemini API key."

// StatusInfo describes how the service was wired at startup.
type StatusInfo struct {
	Model         string `json:"model"`
	Classifier    string `json:"classifier"`
	CacheBackend  string `json:"cacheBackend"`
	EventsEnabled bool   `json:"eventsEnabled"`
}

// StatusHandler reports service mode and the mood palette.
type StatusHandler struct {
	chatService service.ChatService
	info        StatusInfo
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(chatService service.ChatService, info StatusInfo) *StatusHandler {
	return &StatusHandler{chatService: chatService, info: info}
}

// Status handles GET /api/v1/status.
func (h *StatusHandler) Status(c *gin.Context) {
	limited := h.chatService.LimitedMode()
	notice := ""
	if limited {
		notice = LimitedModeNotice
	}

	moods := make([]model.MoodBadge, 0, len(model.AllMoods))
	for _, m := range model.AllMoods {
		moods = append(moods, service.BadgeFor(m))
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{
		"limitedMode":   limited,
		"notice":        notice,
		"model":         h.info.Model,
		"classifier":    h.info.Classifier,
		"cacheBackend":  h.info.CacheBackend,
		"eventsEnabled": h.info.EventsEnabled,
		"moods":         moods,
	}})
}

// Health handles GET /health.
func (h *StatusHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
