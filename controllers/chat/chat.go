package chatControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/models"
)

type CreateRoomInput struct {
	PeerID string `json:"peer_id" binding:"required"`
}

// findOrCreateRoom returns the room for an unordered user pair, creating it
// on first contact.
func findOrCreateRoom(db *gorm.DB, userID, peerID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := db.Where(
		"(member_a = ? AND member_b = ?) OR (member_a = ? AND member_b = ?)",
		userID, peerID, peerID, userID,
	).First(&room).Error
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	room = models.ChatRoom{
		ID:        uuid.NewString(),
		MemberA:   userID,
		MemberB:   peerID,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// POST /chat/rooms
func CreateRoomHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CreateRoomInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var peer models.User
		if err := db.First(&peer, "id = ?", input.PeerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Peer user not found"})
			return
		}

		room, err := findOrCreateRoom(db, userID, input.PeerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
			return
		}
		c.JSON(http.StatusOK, room)
	}
}

// GET /chat/rooms
func GetUserRoomsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var rooms []models.ChatRoom
		if err := db.
			Where("member_a = ? OR member_b = ?", userID, userID).
			Order("created_at DESC").
			Find(&rooms).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
			return
		}
		c.JSON(http.StatusOK, rooms)
	}
}

// GET /chat/rooms/:roomID/messages
func GetRoomMessagesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("roomID")

		var room models.ChatRoom
		if err := db.First(&room, "id = ?", roomID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		var messages []models.ChatMessage
		if err := db.
			Where("room_id = ?", roomID).
			Order("created_at").
			Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}
		c.JSON(http.StatusOK, messages)
	}
}
