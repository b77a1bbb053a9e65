package model

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
)

type ReservationType string

const (
	ReservationTable          ReservationType = "TABLE"
	ReservationFullRestaurant ReservationType = "FULL_RESTAURANT"
)

// DefaultReservationDuration is how long a booking occupies its table, in minutes.
const DefaultReservationDuration = 120

// Reservation books a table (or the whole restaurant) for a date and time
// slot. ReservationTime is the HH:MM wall-clock start and Duration is in
// minutes. Rows are never hard-deleted; cancellation is a status.
type Reservation struct {
	BaseModel
	ReservationNumber string      `gorm:"type:varchar(30);uniqueIndex;not null" json:"reservation_number"`
	UserID            uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
	User              *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RestaurantID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"restaurant_id" validate:"uuid_required"`
	Restaurant        *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`

	// Nil for FULL_RESTAURANT reservations
	TableID *uuid.UUID `gorm:"type:uuid;index" json:"table_id,omitempty"`
	Table   *Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`

	ReservationType ReservationType `gorm:"type:varchar(20);default:'TABLE'" json:"reservation_type" validate:"required,oneof=TABLE FULL_RESTAURANT"`
	ReservationDate time.Time       `gorm:"type:date;not null;index" json:"reservation_date" validate:"required"`
	ReservationTime string          `gorm:"type:varchar(5);not null" json:"reservation_time" validate:"required"`
	Duration        int             `gorm:"default:120" json:"duration"`
	GuestCount      int             `gorm:"not null" json:"guest_count" validate:"required,gt=0"`

	Status         ReservationStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	DepositAmount  int64             `gorm:"default:0" json:"deposit_amount"`
	SpecialRequest string            `gorm:"type:text" json:"special_request,omitempty"`
}

// reservationTransitions is the full lifecycle state machine.
// COMPLETED, CANCELLED and NO_SHOW are terminal.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCompleted, ReservationCancelled, ReservationNoShow},
}

// CanTransitionTo reports whether the status change is allowed by the lifecycle.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s ReservationStatus) IsTerminal() bool {
	return len(reservationTransitions[s]) == 0
}

// IsActive reports whether the reservation still occupies its time slot.
func (s ReservationStatus) IsActive() bool {
	return s == ReservationPending || s == ReservationConfirmed
}
