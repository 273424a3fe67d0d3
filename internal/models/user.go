package models

import "time"

type UserRole string

const (
	RoleGardener  UserRole = "gardener"
	RoleCommittee UserRole = "committee"
	RoleManager   UserRole = "manager"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"not null" json:"firstName"`
	LastName     string    `gorm:"not null" json:"lastName"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Role         UserRole  `gorm:"not null;default:gardener" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`

	// Relationships
	Applications []Application `gorm:"foreignKey:UserID" json:"-"`
	Payments     []Payment     `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
