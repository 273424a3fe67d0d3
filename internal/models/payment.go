package models

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// Payment tracks a yearly plot fee. Amount is integer cents.
// PaidDate is set iff Status is paid.
type Payment struct {
	ID       uint          `gorm:"primaryKey" json:"id"`
	UserID   uint          `gorm:"not null;index" json:"userId"`
	PlotID   uint          `gorm:"not null;index" json:"plotId"`
	Amount   int           `gorm:"not null" json:"amount"`
	Status   PaymentStatus `gorm:"not null;default:pending" json:"status"`
	DueDate  time.Time     `gorm:"not null" json:"dueDate"`
	PaidDate *time.Time    `json:"paidDate"`
	Notes    string        `json:"notes,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Plot *Plot `gorm:"foreignKey:PlotID" json:"plot,omitempty"`
}
