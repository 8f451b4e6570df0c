package chatControllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zarib-ali-wasif/ecommerce-api/models"
	"github.com/zarib-ali-wasif/ecommerce-api/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatEvent is the envelope for every frame on the chat socket.
type ChatEvent struct {
	Event   string `json:"event"` // joinRoom | sendMessage | newMessage
	RoomID  string `json:"room_id"`
	UserID  string `json:"user_id,omitempty"`
	Content string `json:"content,omitempty"`
	SentAt  string `json:"sent_at,omitempty"`
}

type hub struct {
	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]bool
}

var chatHub = hub{rooms: make(map[string]map[*websocket.Conn]bool)}

func (h *hub) join(roomID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[roomID][conn] = true
}

func (h *hub) leave(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for roomID, members := range h.rooms {
		if members[conn] {
			delete(members, conn)
			if len(members) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
}

func (h *hub) broadcast(roomID string, event ChatEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.rooms[roomID] {
		if err := conn.WriteJSON(event); err != nil {
			conn.Close()
			delete(h.rooms[roomID], conn)
		}
	}
}

// ChatWebSocketHandler runs one client connection: joinRoom subscribes the
// connection to a room, sendMessage persists the message and fans it out as
// newMessage to every member of that room.
func ChatWebSocketHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer func() {
			chatHub.leave(conn)
			conn.Close()
		}()

		for {
			var event ChatEvent
			if err := conn.ReadJSON(&event); err != nil {
				break
			}

			switch event.Event {
			case "joinRoom":
				if event.RoomID == "" {
					continue
				}
				var room models.ChatRoom
				if err := db.First(&room, "id = ?", event.RoomID).Error; err != nil {
					conn.WriteJSON(gin.H{"error": "Room not found"})
					continue
				}
				chatHub.join(event.RoomID, conn)

			case "sendMessage":
				if event.RoomID == "" || event.Content == "" {
					continue
				}
				message := models.ChatMessage{
					RoomID:    event.RoomID,
					SenderID:  event.UserID,
					Content:   event.Content,
					CreatedAt: time.Now(),
				}
				if err := db.Create(&message).Error; err != nil {
					utils.Zlog.Error("Failed to persist chat message",
						zap.String("room_id", event.RoomID), zap.Error(err))
					continue
				}
				chatHub.broadcast(event.RoomID, ChatEvent{
					Event:   "newMessage",
					RoomID:  event.RoomID,
					UserID:  event.UserID,
					Content: event.Content,
					SentAt:  message.CreatedAt.Format(time.RFC3339),
				})
			}
		}
	}
}
