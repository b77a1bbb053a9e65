package model

import "github.com/google/uuid"

// Menu groups the items a restaurant offers (e.g. "Lunch", "Dinner").
type Menu struct {
	BaseModel
	RestaurantID uuid.UUID   `gorm:"type:uuid;not null;index" json:"restaurant_id" validate:"uuid_required"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Name         string      `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description  string      `gorm:"type:text" json:"description"`
	IsActive     bool        `gorm:"default:true" json:"is_active"`

	Items []MenuItem `gorm:"foreignKey:MenuID" json:"items,omitempty"`
}

type MenuItem struct {
	BaseModel
	MenuID      uuid.UUID `gorm:"type:uuid;not null;index" json:"menu_id" validate:"uuid_required"`
	Menu        *Menu     `gorm:"foreignKey:MenuID" json:"menu,omitempty"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null" json:"price" validate:"gte=0"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
}
