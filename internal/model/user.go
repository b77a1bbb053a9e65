package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password    string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName    string     `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	PhoneNumber string     `gorm:"type:varchar(20)" json:"phone_number"`
	RoleID      *uint      `gorm:"index" json:"role_id"`
	Role        *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastSeenAt  *time.Time `json:"last_seen_at,omitempty"`

	// Owners and staff are bound to one restaurant; nil for admins, customers, drivers
	RestaurantID *uuid.UUID  `gorm:"type:uuid;index" json:"restaurant_id,omitempty"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`

	TokenVersion string `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// RoleCode returns the user's role code, or empty when no role is assigned
func (u *User) RoleCode() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Code
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	PhoneNumber  string     `json:"phone_number"`
	RoleID       *uint      `json:"role_id,omitempty"`
	Role         *Role      `json:"role,omitempty"`
	RestaurantID *uuid.UUID `json:"restaurant_id,omitempty"`
	IsActive     bool       `json:"is_active"`
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		PhoneNumber:  u.PhoneNumber,
		RoleID:       u.RoleID,
		Role:         u.Role,
		RestaurantID: u.RestaurantID,
		IsActive:     u.IsActive,
		LastSeenAt:   u.LastSeenAt,
	}
}
