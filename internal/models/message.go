package models

import "time"

// Message is a direct or global announcement. Exactly one of
// {RecipientID set, IsGlobal} holds for every row.
type Message struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SenderID    uint       `gorm:"not null;index" json:"senderId"`
	RecipientID *uint      `json:"recipientId"`
	Subject     string     `gorm:"not null" json:"subject"`
	Content     string     `gorm:"not null" json:"content"`
	IsGlobal    bool       `gorm:"default:false" json:"isGlobal"`
	CreatedAt   time.Time  `json:"createdAt"`
	ReadAt      *time.Time `json:"readAt"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
