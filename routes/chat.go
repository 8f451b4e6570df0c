package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/config"
	chatControllers "github.com/zarib-ali-wasif/ecommerce-api/controllers/chat"
	"github.com/zarib-ali-wasif/ecommerce-api/middleware"
)

func SetupChatRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	chat := r.Group("/chat")
	chat.Use(middleware.ValidateToken(cfg.JwtSecret))
	{
		chat.POST("/rooms", chatControllers.CreateRoomHandler(db))
		chat.GET("/rooms", chatControllers.GetUserRoomsHandler(db))
		chat.GET("/rooms/:roomID/messages", chatControllers.GetRoomMessagesHandler(db))
	}

	// The socket authenticates via its first joinRoom frame; browsers cannot
	// set headers on websocket upgrades.
	r.GET("/chat/ws", chatControllers.ChatWebSocketHandler(db))
}
