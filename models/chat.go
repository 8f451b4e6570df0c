package models

import "time"

// ChatRoom is a two-party conversation.
type ChatRoom struct {
	ID        string        `gorm:"primaryKey" json:"id"`
	MemberA   string        `gorm:"index" json:"member_a"`
	MemberB   string        `gorm:"index" json:"member_b"`
	Messages  []ChatMessage `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    string    `gorm:"index" json:"room_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
