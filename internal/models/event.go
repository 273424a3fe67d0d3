package models

import "time"

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `gorm:"not null" json:"date"`
	StartTime   string    `gorm:"not null" json:"startTime"`
	EndTime     string    `gorm:"not null" json:"endTime"`
	Location    string    `json:"location,omitempty"`
	CreatedBy   uint      `json:"createdBy"`
}
