package models

import "time"

const (
	OrderStatusPending       = "pending"
	OrderStatusInPreparation = "in_preparation"
	OrderStatusReady         = "ready"
	OrderStatusDelivered     = "delivered"
	OrderStatusCancelled     = "cancelled"
)

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"not null;index" json:"user_id"`
	User       User        `gorm:"foreignKey:UserID" json:"-"`
	TableID    *uint       `gorm:"index" json:"table_id,omitempty"`
	Table      *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Total      float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	Status     string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt  time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"not null" json:"updated_at"`
}

// IsTerminalOrderStatus reports whether an order can no longer change state.
func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}

// AllowedOrderTransition reports whether an order may move from one status to
// the next. Cancelling is allowed from any non-terminal state; everything else
// follows the kitchen flow.
func AllowedOrderTransition(from, to string) bool {
	if IsTerminalOrderStatus(from) {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	switch from {
	case OrderStatusPending:
		return to == OrderStatusInPreparation
	case OrderStatusInPreparation:
		return to == OrderStatusReady
	case OrderStatusReady:
		return to == OrderStatusDelivered
	}
	return false
}
