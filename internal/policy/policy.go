package policy

import (
	"github.com/google/uuid"

	"go-restaurant-ws/internal/model"
)

// Actor is the authenticated caller every mutating service entry point
// receives. RestaurantID is set for owners and staff only.
type Actor struct {
	ID           uuid.UUID
	Role         string
	RestaurantID *uuid.UUID
}

// Action names a capability checked against the table below.
type Action string

const (
	RestaurantCreate Action = "restaurant:create"
	RestaurantUpdate Action = "restaurant:update"
	RestaurantDelete Action = "restaurant:delete"

	TableCreate Action = "table:create"
	TableUpdate Action = "table:update"
	TableDelete Action = "table:delete"

	ReservationCreate Action = "reservation:create"
	ReservationUpdate Action = "reservation:update"
	ReservationCancel Action = "reservation:cancel"
	ReservationView   Action = "reservation:view"

	InventoryCreate   Action = "inventory:create"
	InventoryUpdate   Action = "inventory:update"
	InventoryTransact Action = "inventory:transact"
	InventoryTransfer Action = "inventory:transfer"
	InventoryView     Action = "inventory:view"

	SupplierCreate Action = "supplier:create"
	SupplierUpdate Action = "supplier:update"
	SupplierDelete Action = "supplier:delete"

	MenuManage Action = "menu:manage"

	OrderCreate Action = "order:create"
	OrderUpdate Action = "order:update"

	UserManage Action = "user:manage"

	ReportView Action = "report:view"
)

// capabilities maps (role, action) -> allowed. Ownership refinements (a
// customer acting on their own reservation, staff scoped to their restaurant)
// stay in the services; this table only answers "may this role ever do this".
var capabilities = map[string]map[Action]bool{
	model.RoleAdmin: allOf(
		RestaurantCreate, RestaurantUpdate, RestaurantDelete,
		TableCreate, TableUpdate, TableDelete,
		ReservationCreate, ReservationUpdate, ReservationCancel, ReservationView,
		InventoryCreate, InventoryUpdate, InventoryTransact, InventoryTransfer, InventoryView,
		SupplierCreate, SupplierUpdate, SupplierDelete,
		MenuManage, OrderCreate, OrderUpdate, UserManage, ReportView,
	),
	model.RoleRestaurantOwner: allOf(
		RestaurantUpdate,
		TableCreate, TableUpdate, TableDelete,
		ReservationCreate, ReservationUpdate, ReservationCancel, ReservationView,
		InventoryCreate, InventoryUpdate, InventoryTransact, InventoryTransfer, InventoryView,
		SupplierCreate, SupplierUpdate, SupplierDelete,
		MenuManage, OrderCreate, OrderUpdate, ReportView,
	),
	model.RoleRestaurantStaff: allOf(
		ReservationCreate, ReservationUpdate, ReservationCancel, ReservationView,
		InventoryCreate, InventoryUpdate, InventoryTransact, InventoryTransfer, InventoryView,
		MenuManage, OrderCreate, OrderUpdate, ReportView,
	),
	model.RoleCustomer: allOf(
		ReservationCreate, ReservationCancel, ReservationView,
		OrderCreate,
	),
	model.RoleDriver: allOf(
		OrderUpdate,
	),
}

func allOf(actions ...Action) map[Action]bool {
	m := make(map[Action]bool, len(actions))
	for _, a := range actions {
		m[a] = true
	}
	return m
}

// Allow reports whether the role may ever perform the action.
// Unknown roles and unknown actions are denied.
func Allow(role string, action Action) bool {
	return capabilities[role][action]
}

// IsAdmin reports whether the actor is unrestricted by restaurant scope.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// WorksAt reports whether the actor is owner or staff of the given restaurant.
func (a Actor) WorksAt(restaurantID uuid.UUID) bool {
	return a.RestaurantID != nil && *a.RestaurantID == restaurantID
}
