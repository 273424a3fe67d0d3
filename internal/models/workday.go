package models

import "time"

type AttendanceStatus string

const (
	AttendanceSignedUp AttendanceStatus = "signed_up"
	AttendanceAttended AttendanceStatus = "attended"
	AttendanceMissed   AttendanceStatus = "missed"
)

type WorkDay struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description,omitempty"`
	Date         time.Time `gorm:"not null" json:"date"`
	StartTime    string    `gorm:"not null" json:"startTime"`
	EndTime      string    `gorm:"not null" json:"endTime"`
	MaxAttendees int       `json:"maxAttendees"`
	CreatedBy    uint      `json:"createdBy"`

	Attendances []WorkDayAttendance `gorm:"foreignKey:WorkDayID" json:"attendances,omitempty"`
}

// WorkDayAttendance records one user's signup for one work day. A user
// may sign up only once per work day (enforced by the signup handler).
type WorkDayAttendance struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	WorkDayID uint             `gorm:"not null;index" json:"workDayId"`
	UserID    uint             `gorm:"not null;index" json:"userId"`
	Status    AttendanceStatus `gorm:"not null;default:signed_up" json:"status"`
}
