package model

import "github.com/google/uuid"

// Restaurant is the root aggregate every table, menu and inventory item hangs off
type Restaurant struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id" validate:"uuid_required"`
	Cuisine     string    `gorm:"type:varchar(100)" json:"cuisine"`
	Address     string    `gorm:"type:text" json:"address"`
	PhoneNumber string    `gorm:"type:varchar(20)" json:"phone_number"`

	// Opening hours in HH:MM, minute precision
	OpeningTime string `gorm:"type:varchar(5);default:'09:00'" json:"opening_time"`
	ClosingTime string `gorm:"type:varchar(5);default:'23:00'" json:"closing_time"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	Tables []Table `json:"tables,omitempty"`
}
