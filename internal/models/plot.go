package models

type PlotStatus string

const (
	PlotAvailable   PlotStatus = "available"
	PlotAssigned    PlotStatus = "assigned"
	PlotPaid        PlotStatus = "paid"
	PlotUnavailable PlotStatus = "unavailable"
)

// Plot is a garden bed unit assignable to at most one gardener.
// AssignedTo is non-nil iff Status is assigned or paid.
type Plot struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	PlotNumber string     `gorm:"uniqueIndex;not null" json:"plotNumber"`
	Status     PlotStatus `gorm:"not null;default:available" json:"status"`
	Area       string     `gorm:"not null" json:"area"`
	Size       string     `gorm:"not null" json:"size"`
	YearlyFee  int        `gorm:"not null" json:"yearlyFee"` // cents
	Notes      string     `json:"notes,omitempty"`
	AssignedTo *uint      `json:"assignedTo"`

	Assignee *User `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}
