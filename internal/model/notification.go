package model

import "github.com/google/uuid"

type NotificationType string

const (
	NotifReservation NotificationType = "RESERVATION"
	NotifLowStock    NotificationType = "LOW_STOCK"
	NotifExpiry      NotificationType = "EXPIRY"
	NotifOrder       NotificationType = "ORDER"
)

// Notification is an in-app record only; delivery channels live outside this
// service and failures to write one never fail the triggering operation.
type Notification struct {
	BaseModel
	UserID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Title   string           `gorm:"type:varchar(255);not null" json:"title"`
	Message string           `gorm:"type:text" json:"message"`
	IsRead  bool             `gorm:"default:false;index" json:"is_read"`
}
