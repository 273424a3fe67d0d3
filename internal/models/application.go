package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

type GardenerType string

const (
	GardenerNew       GardenerType = "new"
	GardenerReturning GardenerType = "returning"
)

// Application is a gardener's request for a plot. ProcessedAt and
// ProcessedBy are set iff Status is no longer pending.
type Application struct {
	ID                  uint              `gorm:"primaryKey" json:"id"`
	UserID              uint              `gorm:"not null;index" json:"userId"`
	Status              ApplicationStatus `gorm:"not null;default:pending" json:"status"`
	GardenerType        GardenerType      `gorm:"not null" json:"gardenerType"`
	PreferredArea       string            `json:"preferredArea,omitempty"`
	RequestedPlotID     *uint             `json:"requestedPlotId"`
	SpecialRequests     string            `json:"specialRequests,omitempty"`
	GardeningExperience string            `json:"gardeningExperience,omitempty"`
	SubmittedAt         time.Time         `json:"submittedAt"`
	ProcessedAt         *time.Time        `json:"processedAt"`
	ProcessedBy         *uint             `json:"processedBy"`
	ProcessingNotes     string            `json:"processingNotes,omitempty"`
	Priority            int               `gorm:"default:0" json:"priority"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
