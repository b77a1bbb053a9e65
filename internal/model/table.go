package model

import "github.com/google/uuid"

type TableStatus string

const (
	TableAvailable    TableStatus = "AVAILABLE"
	TableReserved     TableStatus = "RESERVED"
	TableOccupied     TableStatus = "OCCUPIED"
	TableOutOfService TableStatus = "OUT_OF_SERVICE"
)

// Table represents a physical table inside a restaurant.
// TableNumber is unique per restaurant, not globally.
type Table struct {
	BaseModel
	RestaurantID  uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_restaurant_table_number" json:"restaurant_id" validate:"uuid_required"`
	Restaurant    *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	TableNumber   string      `gorm:"type:varchar(20);not null;uniqueIndex:idx_restaurant_table_number" json:"table_number" validate:"required"`
	Capacity      int         `gorm:"not null" json:"capacity" validate:"required,gt=0"`
	Location      string      `gorm:"type:varchar(100)" json:"location"` // e.g. "terrace", "main hall"
	Status        TableStatus `gorm:"type:varchar(20);default:'AVAILABLE'" json:"status"`
	MinimumCharge int64       `gorm:"default:0" json:"minimum_charge"`
}

func (Table) TableName() string {
	return "restaurant_tables"
}
