package policy

import (
	"testing"

	"go-restaurant-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		action Action
		want   bool
	}{
		{"admin creates restaurants", model.RoleAdmin, RestaurantCreate, true},
		{"admin manages users", model.RoleAdmin, UserManage, true},
		{"owner cannot create restaurants", model.RoleRestaurantOwner, RestaurantCreate, false},
		{"owner updates own restaurant", model.RoleRestaurantOwner, RestaurantUpdate, true},
		{"owner manages suppliers", model.RoleRestaurantOwner, SupplierCreate, true},
		{"staff moves stock", model.RoleRestaurantStaff, InventoryTransact, true},
		{"staff cannot manage suppliers", model.RoleRestaurantStaff, SupplierCreate, false},
		{"staff cannot delete tables", model.RoleRestaurantStaff, TableDelete, false},
		{"customer books a table", model.RoleCustomer, ReservationCreate, true},
		{"customer cancels", model.RoleCustomer, ReservationCancel, true},
		{"customer cannot confirm reservations", model.RoleCustomer, ReservationUpdate, false},
		{"customer cannot touch inventory", model.RoleCustomer, InventoryView, false},
		{"customer orders food", model.RoleCustomer, OrderCreate, true},
		{"driver updates order status", model.RoleDriver, OrderUpdate, true},
		{"driver cannot order", model.RoleDriver, OrderCreate, false},
		{"driver cannot view reports", model.RoleDriver, ReportView, false},
		{"unknown role denied", "SOUS_CHEF", ReservationView, false},
		{"unknown action denied", model.RoleAdmin, Action("kitchen:nuke"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.role, tt.action))
		})
	}
}

func TestActorScope(t *testing.T) {
	restaurantID := uuid.New()

	admin := Actor{ID: uuid.New(), Role: model.RoleAdmin}
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.WorksAt(restaurantID)) // admins pass on IsAdmin, not WorksAt

	staff := Actor{ID: uuid.New(), Role: model.RoleRestaurantStaff, RestaurantID: &restaurantID}
	assert.False(t, staff.IsAdmin())
	assert.True(t, staff.WorksAt(restaurantID))
	assert.False(t, staff.WorksAt(uuid.New()))

	customer := Actor{ID: uuid.New(), Role: model.RoleCustomer}
	assert.False(t, customer.WorksAt(restaurantID))
}
