package model

// Supplier provides inventory items. Email and phone are unique across the
// platform; a supplier cannot be deleted while items still reference it.
type Supplier struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactName string `gorm:"type:varchar(255)" json:"contact_name"`
	PhoneNumber string `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone_number" validate:"required"`
	Email       string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Address     string `gorm:"type:text" json:"address"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}
