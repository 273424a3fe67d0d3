package models

import "time"

type NotificationType string

const (
	NotificationEvent       NotificationType = "event"
	NotificationWorkDay     NotificationType = "work_day"
	NotificationPayment     NotificationType = "payment"
	NotificationWeather     NotificationType = "weather"
	NotificationMaintenance NotificationType = "maintenance"
	NotificationApplication NotificationType = "application"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

type NotificationStatus string

const (
	NotificationUnread   NotificationStatus = "unread"
	NotificationRead     NotificationStatus = "read"
	NotificationArchived NotificationStatus = "archived"
)

// Notification is an in-app alert record, separate from email delivery.
// UserID is nil iff IsGlobal, in which case it is visible to every user.
// ReadAt is set iff Status is no longer unread.
type Notification struct {
	ID                uint                 `gorm:"primaryKey" json:"id"`
	Title             string               `gorm:"not null" json:"title"`
	Message           string               `gorm:"not null" json:"message"`
	Type              NotificationType     `gorm:"not null" json:"type"`
	Priority          NotificationPriority `gorm:"not null;default:medium" json:"priority"`
	Status            NotificationStatus   `gorm:"not null;default:unread" json:"status"`
	UserID            *uint                `gorm:"index" json:"userId"`
	IsGlobal          bool                 `gorm:"default:false" json:"isGlobal"`
	RelatedEntityType string               `json:"relatedEntityType,omitempty"`
	RelatedEntityID   *uint                `json:"relatedEntityId"`
	ExpiresAt         *time.Time           `json:"expiresAt"`
	CreatedAt         time.Time            `json:"createdAt"`
	ReadAt            *time.Time           `json:"readAt"`
	ActionLink        string               `json:"actionLink,omitempty"`
}
