package models

import "time"

type ForumQuestion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	User    *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Answers []ForumAnswer `gorm:"foreignKey:QuestionID" json:"answers"`
}

type ForumAnswer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"questionId"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	Content    string    `gorm:"not null" json:"content"`
	CreatedAt  time.Time `json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
