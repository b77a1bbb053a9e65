package model

// Role represents user roles in the system
type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string `gorm:"type:varchar(100)" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// Role codes as constants
const (
	RoleAdmin           = "ADMIN"
	RoleRestaurantOwner = "RESTAURANT_OWNER"
	RoleRestaurantStaff = "RESTAURANT_STAFF"
	RoleCustomer        = "CUSTOMER"
	RoleDriver          = "DRIVER"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Full platform access across all restaurants",
	},
	{
		Code:        RoleRestaurantOwner,
		Name:        "Restaurant Owner",
		Description: "Manages their own restaurant, staff, menu and inventory",
	},
	{
		Code:        RoleRestaurantStaff,
		Name:        "Restaurant Staff",
		Description: "Operates reservations, orders and inventory within their restaurant",
	},
	{
		Code:        RoleCustomer,
		Name:        "Customer",
		Description: "Books tables and places orders",
	},
	{
		Code:        RoleDriver,
		Name:        "Driver",
		Description: "Delivers orders",
	},
}
