package models

import "time"

const (
	DishStatusAvailable   = "available"
	DishStatusUnavailable = "unavailable"
)

type Dish struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	CategoryID      *uint         `gorm:"index" json:"category_id,omitempty"`
	Category        *MenuCategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	Name            string        `gorm:"type:varchar(255);not null" json:"name"`
	Description     string        `gorm:"type:text" json:"description"`
	Price           float64       `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL        *string       `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	PrepTimeMinutes int           `json:"prep_time_minutes"`
	Ingredients     string        `gorm:"type:text" json:"ingredients"`
	IsVegetarian    bool          `gorm:"not null;default:false" json:"is_vegetarian"`
	IsSpicy         bool          `gorm:"not null;default:false" json:"is_spicy"`
	Status          string        `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt       time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null" json:"updated_at"`
}
