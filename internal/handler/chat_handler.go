// Package handler contains the HTTP and WebSocket controllers.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"maternal-companion-go/internal/model"
	"maternal-companion-go/internal/service"
	"maternal-companion-go/pkg/log"
)

var (
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // the UI may be served from another origin
		},
	}
)

// ChatHandler serves chat over JSON and over WebSocket.
type ChatHandler struct {
	chatService         service.ChatService
	conversationService service.ConversationService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService, conversationService service.ConversationService) *ChatHandler {
	return &ChatHandler{
		chatService:         chatService,
		conversationService: conversationService,
	}
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid JSON body", "data": nil})
		return
	}

	result, err := h.chatService.Respond(c.Request.Context(), req.SessionID, req.Message)
	if errors.Is(err, service.ErrEmptyMessage) {
		// nothing to answer; hand back the unchanged history
		history, err := h.conversationService.GetConversationHistory(c.Request.Context(), req.SessionID)
		if err != nil {
			log.Errorf("Failed to load conversation history: %v", err)
			history = []model.Turn{}
		}
		c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "empty message ignored", "data": gin.H{
			"sessionId": req.SessionID,
			"response":  "",
			"history":   history,
		}})
		return
	}
	if err != nil {
		log.Errorf("Failed to process chat message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to process message", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": result})
}

// wsFrame is a client frame. Plain text frames are treated as messages.
type wsFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Handle serves one WebSocket connection; the connection owns one session.
func (h *ChatHandler) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket upgrade failed", err)
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")
	log.Infof("WebSocket connection established, session: %q", sessionID)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnf("Failed to read WebSocket message: %v", err)
			}
			break
		}

		frame := parseFrame(raw)
		switch frame.Type {
		case "clear":
			if sessionID != "" {
				if err := h.conversationService.ResetConversation(c.Request.Context(), sessionID); err != nil {
					log.Errorf("Failed to reset conversation %s: %v", sessionID, err)
				}
			}
			writeJSON(conn, gin.H{"type": "cleared", "sessionId": sessionID, "timestamp": time.Now().UnixMilli()})
			continue
		case "message":
		default:
			writeJSON(conn, gin.H{"type": "error", "error": "unknown frame type: " + frame.Type})
			continue
		}

		result, err := h.chatService.Respond(c.Request.Context(), sessionID, frame.Message)
		if errors.Is(err, service.ErrEmptyMessage) {
			continue
		}
		if err != nil {
			log.Errorf("Failed to process chat message: %v", err)
			writeJSON(conn, gin.H{"type": "error", "error": "the companion is temporarily unavailable, please try again"})
			continue
		}
		sessionID = result.SessionID

		payload := struct {
			Type string `json:"type"`
			*model.ChatResult
		}{Type: "reply", ChatResult: result}
		if err := writeJSON(conn, payload); err != nil {
			log.Warnf("Failed to write WebSocket reply: %v", err)
			break
		}
	}
}

func parseFrame(raw []byte) wsFrame {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		var f wsFrame
		if err := json.Unmarshal([]byte(trimmed), &f); err == nil {
			if f.Type == "" {
				f.Type = "message"
			}
			return f
		}
	}
	return wsFrame{Type: "message", Message: string(raw)}
}

func writeJSON(conn *websocket.Conn, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, b)
}
