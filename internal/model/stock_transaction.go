package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxIn         TransactionType = "IN"
	TxOut        TransactionType = "OUT"
	TxAdjustment TransactionType = "ADJUSTMENT"
)

// StockTransaction is one append-only ledger row. Rows are never updated or
// deleted once written; replaying QuantityChange in chronological order
// reconstructs the item's current quantity.
//
// QuantityChange is always the signed delta applied to the item (OUT rows are
// negative). BalanceAfter is the materialized quantity after the row was
// applied, so ADJUSTMENT targets stay auditable without overloading the delta.
type StockTransaction struct {
	BaseModel
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index" json:"inventory_item_id" validate:"uuid_required"`
	InventoryItem   *InventoryItem  `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
	Type            TransactionType `gorm:"type:varchar(15);not null" json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	QuantityChange  int             `gorm:"not null" json:"quantity_change"`
	BalanceAfter    int             `gorm:"not null" json:"balance_after"`
	ReferenceID     string          `gorm:"type:varchar(100)" json:"reference_id,omitempty"`
	Reason          string          `gorm:"type:text" json:"reason"`
	PerformedBy     uuid.UUID       `gorm:"type:uuid;not null" json:"performed_by"`
}
