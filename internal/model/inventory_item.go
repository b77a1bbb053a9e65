package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a stocked good owned by a restaurant. Quantity is a
// materialized view over the item's stock transactions: after every mutation
// it equals the sum of all signed quantity changes in the ledger.
type InventoryItem struct {
	BaseModel
	RestaurantID uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_restaurant_sku" json:"restaurant_id" validate:"uuid_required"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	SupplierID   *uuid.UUID  `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier     *Supplier   `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	Name       string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category   string     `gorm:"type:varchar(100);index" json:"category"`
	Quantity   int        `gorm:"default:0" json:"quantity" validate:"gte=0"`
	Unit       string     `gorm:"type:varchar(20)" json:"unit"`
	UnitPrice  int64      `gorm:"default:0" json:"unit_price" validate:"gte=0"`
	Threshold  int        `gorm:"default:0" json:"threshold" validate:"gte=0"`
	SKU        *string    `gorm:"type:varchar(50);uniqueIndex:idx_restaurant_sku" json:"sku,omitempty"`
	ExpiryDate *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`

	Transactions []StockTransaction `gorm:"foreignKey:InventoryItemID" json:"transactions,omitempty"`
}

// IsLowStock reports whether the item is at or below its reorder threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.Threshold
}
