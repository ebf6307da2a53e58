package handler

import (
	"github.com/gin-gonic/gin"

	"maternal-companion-go/internal/middleware"
)

// NewRouter registers every route on a new gin engine.
func NewRouter(chat *ChatHandler, conversation *ConversationHandler, status *StatusHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	r.GET("/health", status.Health)

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/status", status.Status)

		chatGroup := apiV1.Group("/chat")
		{
			chatGroup.POST("", chat.Chat)
			chatGroup.GET("/history", conversation.GetConversation)
			chatGroup.DELETE("/history", conversation.ResetConversation)
			chatGroup.GET("/sessions", conversation.ListSessions)
		}
	}

	r.GET("/chat/ws", chat.Handle)
	return r
}
