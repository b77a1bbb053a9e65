package repository

import (
	"time"

	"go-restaurant-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	FindByID(id uuid.UUID) (*model.Reservation, error)
	FindByUser(userID uuid.UUID) ([]model.Reservation, error)
	FindByRestaurant(restaurantID uuid.UUID) ([]model.Reservation, error)
	FindByRestaurantAndDate(restaurantID uuid.UUID, date time.Time) ([]model.Reservation, error)

	// FindConflicting returns active (PENDING/CONFIRMED) reservations on the
	// same table and date whose booking window overlaps [startMin, endMin),
	// excluding the reservation being updated if any. It takes *gorm.DB so the
	// check can run inside the same transaction that inserts the new row.
	FindConflicting(tx *gorm.DB, tableID uuid.UUID, date time.Time,
		startMin, endMin int, excludeID *uuid.UUID) ([]model.Reservation, error)

	CountActiveByTable(tableID uuid.UUID) (int64, error)
}

type reservationRepo struct {
	db *gorm.DB
}

func NewReservationRepo(db *gorm.DB) ReservationRepository {
	return &reservationRepo{db}
}

func (r *reservationRepo) FindByID(id uuid.UUID) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := r.db.Preload("Table").Preload("Restaurant").First(&reservation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepo) FindByUser(userID uuid.UUID) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.db.Preload("Table").Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("reservation_date DESC, reservation_time DESC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepo) FindByRestaurant(restaurantID uuid.UUID) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.db.Preload("Table").Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order("reservation_date DESC, reservation_time DESC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepo) FindByRestaurantAndDate(restaurantID uuid.UUID, date time.Time) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.db.Preload("Table").Preload("User").
		Where("restaurant_id = ? AND reservation_date = ?", restaurantID, date).
		Order("reservation_time ASC").
		Find(&reservations).Error
	return reservations, err
}

// FindConflicting prefilters by table, date and active status in SQL, then
// checks the minute-precision window overlap in Go.
func (r *reservationRepo) FindConflicting(tx *gorm.DB, tableID uuid.UUID, date time.Time,
	startMin, endMin int, excludeID *uuid.UUID) ([]model.Reservation, error) {

	query := tx.Where("table_id = ?", tableID).
		Where("reservation_date = ?", date).
		Where("status IN ?", []model.ReservationStatus{model.ReservationPending, model.ReservationConfirmed})

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var candidates []model.Reservation
	if err := query.Find(&candidates).Error; err != nil {
		return nil, err
	}

	var conflicting []model.Reservation
	for _, existing := range candidates {
		s := timeToMinutes(existing.ReservationTime)
		d := existing.Duration
		if d <= 0 {
			d = model.DefaultReservationDuration
		}
		if windowsOverlap(startMin, endMin, s, s+d) {
			conflicting = append(conflicting, existing)
		}
	}

	return conflicting, nil
}

func (r *reservationRepo) CountActiveByTable(tableID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Reservation{}).
		Where("table_id = ?", tableID).
		Where("status IN ?", []model.ReservationStatus{model.ReservationPending, model.ReservationConfirmed}).
		Count(&count).Error
	return count, err
}

// windowsOverlap checks two half-open [start, end) minute intervals.
func windowsOverlap(s1, e1, s2, e2 int) bool {
	return !(e1 <= s2 || e2 <= s1)
}

// timeToMinutes converts HH:MM string to minutes since midnight
func timeToMinutes(timeStr string) int {
	var hours, minutes int
	if len(timeStr) >= 5 {
		hours = int(timeStr[0]-'0')*10 + int(timeStr[1]-'0')
		minutes = int(timeStr[3]-'0')*10 + int(timeStr[4]-'0')
	}
	return hours*60 + minutes
}
