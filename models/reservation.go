package models

import "time"

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusNoShow    = "no_show"
)

type Reservation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	User            User      `gorm:"foreignKey:UserID" json:"-"`
	TableID         uint      `gorm:"not null;index" json:"table_id"`
	Table           Table     `gorm:"foreignKey:TableID" json:"table"`
	PartySize       int       `gorm:"not null" json:"party_size"`
	ReservationDate time.Time `gorm:"type:date;not null" json:"reservation_date"`
	ReservationTime string    `gorm:"type:varchar(10);not null" json:"reservation_time"`
	Notes           string    `gorm:"type:text" json:"notes"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// IsTerminalReservationStatus reports whether a reservation in this status no
// longer holds its table.
func IsTerminalReservationStatus(status string) bool {
	switch status {
	case ReservationStatusCompleted, ReservationStatusCancelled, ReservationStatusNoShow:
		return true
	}
	return false
}

// ValidReservationStatus reports whether status is one of the known
// reservation states.
func ValidReservationStatus(status string) bool {
	switch status {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCompleted, ReservationStatusCancelled, ReservationStatusNoShow:
		return true
	}
	return false
}
