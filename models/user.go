package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	FirstName     string     `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName      string     `gorm:"type:varchar(255);not null" json:"last_name"`
	Email         string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password      string     `gorm:"type:varchar(255);not null" json:"-"`
	Role          string     `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	Address       string     `gorm:"type:varchar(255)" json:"address"`
	Phone         string     `gorm:"type:varchar(30)" json:"phone"`
	Status        string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	LastSessionAt *time.Time `json:"last_session_at,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}
