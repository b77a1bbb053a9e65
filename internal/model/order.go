package model

import "github.com/google/uuid"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is a customer's food order. Item prices are snapshotted from the menu
// at creation time so later menu edits do not change past totals.
type Order struct {
	BaseModel
	OrderNumber  string      `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_number"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
	User         *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RestaurantID uuid.UUID   `gorm:"type:uuid;not null;index" json:"restaurant_id" validate:"uuid_required"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	TableID      *uuid.UUID  `gorm:"type:uuid" json:"table_id,omitempty"`
	Table        *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`

	Status      OrderStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	TotalAmount int64       `gorm:"not null" json:"total_amount"`
	Note        string      `gorm:"type:text" json:"note,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

type OrderItem struct {
	BaseModel
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null" json:"menu_item_id" validate:"uuid_required"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"` // snapshot
	UnitPrice  int64     `gorm:"not null" json:"unit_price"`             // snapshot
	Quantity   int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderDelivered},
}

// CanTransitionTo reports whether the status change is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
