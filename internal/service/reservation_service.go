package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/policy"
	"go-restaurant-ws/internal/repository"
	"go-restaurant-ws/internal/ws"
	"go-restaurant-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Error definitions
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTimeFormat = fmt.Errorf("%w: invalid time format, use HH:MM (e.g., 18:30)", ErrValidation)
	ErrInvalidDateFormat = fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrValidation)
)

type ReservationService interface {
	CreateReservation(req *CreateReservationRequest, actor policy.Actor) (*model.Reservation, error)
	UpdateReservation(id uuid.UUID, req *UpdateReservationRequest, actor policy.Actor) (*model.Reservation, error)
	UpdateStatus(id uuid.UUID, next model.ReservationStatus, actor policy.Actor) (*model.Reservation, error)
	CancelReservation(id uuid.UUID, actor policy.Actor) (*model.Reservation, error)
	GetReservation(id uuid.UUID, actor policy.Actor) (*model.Reservation, error)
	ListByRestaurant(restaurantID uuid.UUID, actor policy.Actor) ([]model.Reservation, error)
	ListByUser(actor policy.Actor) ([]model.Reservation, error)
	FindAvailableTables(restaurantID uuid.UUID, dateStr, timeStr string, guestCount, duration int) ([]model.Table, error)
	IsTableAvailable(tableID uuid.UUID, dateStr, timeStr string, duration int, excludeID *uuid.UUID) (bool, error)
}

type CreateReservationRequest struct {
	UserID          string                  `json:"user_id"` // defaults to the actor
	RestaurantID    string                  `json:"restaurant_id" validate:"required"`
	TableID         *string                 `json:"table_id"`
	ReservationType model.ReservationType   `json:"reservation_type" validate:"required,oneof=TABLE FULL_RESTAURANT"`
	ReservationDate string                  `json:"reservation_date" validate:"required"` // YYYY-MM-DD
	ReservationTime string                  `json:"reservation_time" validate:"required"` // HH:MM
	Duration        int                     `json:"duration"`
	GuestCount      int                     `json:"guest_count" validate:"required,gt=0"`
	Status          model.ReservationStatus `json:"status"`
	DepositAmount   int64                   `json:"deposit_amount"`
	SpecialRequest  string                  `json:"special_request"`
}

type UpdateReservationRequest struct {
	TableID         *string                  `json:"table_id"`
	ReservationDate *string                  `json:"reservation_date"` // YYYY-MM-DD
	ReservationTime *string                  `json:"reservation_time"` // HH:MM
	Duration        *int                     `json:"duration"`
	GuestCount      *int                     `json:"guest_count"`
	Status          *model.ReservationStatus `json:"status"`
	DepositAmount   *int64                   `json:"deposit_amount"`
	SpecialRequest  *string                  `json:"special_request"`
}

type reservationService struct {
	db               *gorm.DB
	reservationRepo  repository.ReservationRepository
	tableRepo        repository.TableRepository
	restaurantRepo   repository.RestaurantRepository
	notificationRepo repository.NotificationRepository
	wsHub            *ws.Hub
}

func NewReservationService(
	db *gorm.DB,
	rRepo repository.ReservationRepository,
	tRepo repository.TableRepository,
	restRepo repository.RestaurantRepository,
	nRepo repository.NotificationRepository,
	hub *ws.Hub,
) ReservationService {
	return &reservationService{
		db:               db,
		reservationRepo:  rRepo,
		tableRepo:        tRepo,
		restaurantRepo:   restRepo,
		notificationRepo: nRepo,
		wsHub:            hub,
	}
}

// validateTimeFormat validates HH:MM format (00:00 - 23:59)
func validateTimeFormat(timeStr string) error {
	pattern := `^([01][0-9]|2[0-3]):([0-5][0-9])$`
	matched, _ := regexp.MatchString(pattern, timeStr)
	if !matched {
		return ErrInvalidTimeFormat
	}
	return nil
}

// parseDate validates YYYY-MM-DD format and returns the parsed date
func parseDate(dateStr string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return parsed, nil
}

// minutesOfDay converts HH:MM to minutes since midnight
func minutesOfDay(timeStr string) int {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0
	}
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes
}

// generateNumber builds a human-readable, practically unique identifier,
// e.g. RSV-20260825143015-0042. Collisions are caught by the unique index.
func generateNumber(prefix string) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, time.Now().Format("20060102150405"), rand.Intn(10000))
}

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
}

// authorize checks the capability table plus the ownership refinements:
// customers may touch only their own reservations, owners/staff only their
// own restaurant, admins are unrestricted.
func (s *reservationService) authorize(actor policy.Actor, action policy.Action, reservation *model.Reservation) error {
	if !policy.Allow(actor.Role, action) {
		return apperr.ErrForbidden
	}
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role == model.RoleCustomer {
		if reservation.UserID != actor.ID {
			return apperr.ErrForbidden
		}
		return nil
	}
	if !actor.WorksAt(reservation.RestaurantID) {
		return apperr.ErrForbidden
	}
	return nil
}

func (s *reservationService) CreateReservation(req *CreateReservationRequest, actor policy.Actor) (*model.Reservation, error) {
	if !policy.Allow(actor.Role, policy.ReservationCreate) {
		return nil, apperr.ErrForbidden
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if err := validateTimeFormat(req.ReservationTime); err != nil {
		return nil, err
	}
	date, err := parseDate(req.ReservationDate)
	if err != nil {
		return nil, err
	}
	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid restaurant ID", ErrValidation)
	}
	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		return nil, apperr.NotFound("restaurant")
	}

	// Customers always book for themselves; staff may book on behalf of anyone.
	userID := actor.ID
	if req.UserID != "" {
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
		}
		if actor.Role == model.RoleCustomer && parsed != actor.ID {
			return nil, apperr.ErrForbidden
		}
		userID = parsed
	}
	if !actor.IsAdmin() && actor.Role != model.RoleCustomer && !actor.WorksAt(restaurantID) {
		return nil, apperr.ErrForbidden
	}

	if req.ReservationType == model.ReservationTable && req.TableID == nil {
		return nil, fmt.Errorf("%w: table reservations require a table_id", ErrValidation)
	}

	duration := req.Duration
	if duration <= 0 {
		duration = model.DefaultReservationDuration
	}

	status := req.Status
	if status == "" || actor.Role == model.RoleCustomer {
		status = model.ReservationPending
	}
	if status != model.ReservationPending && status != model.ReservationConfirmed {
		return nil, apperr.ErrInvalidStatusTransition
	}

	reservation := &model.Reservation{
		UserID:          userID,
		RestaurantID:    restaurantID,
		ReservationType: req.ReservationType,
		ReservationDate: date,
		ReservationTime: req.ReservationTime,
		Duration:        duration,
		GuestCount:      req.GuestCount,
		Status:          status,
		DepositAmount:   req.DepositAmount,
		SpecialRequest:  req.SpecialRequest,
	}
	reservation.CreatedBy = actor.ID.String()
	reservation.UpdatedBy = actor.ID.String()

	startMin := minutesOfDay(req.ReservationTime)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.TableID != nil {
			tableID, err := uuid.Parse(*req.TableID)
			if err != nil {
				return fmt.Errorf("%w: invalid table ID", ErrValidation)
			}

			// Lock the table row so concurrent bookings of the same table
			// serialize; the conflict check below then runs against a stable
			// active-reservation set.
			var table model.Table
			if err := lockForUpdate(tx).First(&table, "id = ?", tableID).Error; err != nil {
				return apperr.NotFound("table")
			}
			if table.RestaurantID != restaurantID {
				return fmt.Errorf("%w: table belongs to another restaurant", apperr.ErrInvalidOperation)
			}
			if table.Status == model.TableOutOfService {
				return apperr.ErrTableUnavailable
			}
			if req.GuestCount > table.Capacity {
				return apperr.ErrCapacityExceeded
			}

			conflicts, err := s.reservationRepo.FindConflicting(tx, table.ID, date, startMin, startMin+duration, nil)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return apperr.ErrTableUnavailable
			}
			reservation.TableID = &table.ID
		} else {
			// Full-restaurant booking: every table that is free for the slot
			// contributes its capacity.
			available, err := s.findAvailableTablesTx(tx, restaurantID, date, startMin, duration, 1, nil)
			if err != nil {
				return err
			}
			totalCapacity := 0
			for _, t := range available {
				totalCapacity += t.Capacity
			}
			if totalCapacity < req.GuestCount {
				return apperr.ErrCapacityExceeded
			}
		}

		reservation.ReservationNumber = generateNumber("RSV")
		if err := tx.Create(reservation).Error; err != nil {
			return err
		}

		if reservation.TableID != nil {
			if err := s.tableRepo.UpdateStatus(tx, *reservation.TableID, model.TableReserved, actor.ID.String()); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("reservation_created", reservation)
	s.notify(userID, model.NotifReservation, "Reservation created",
		fmt.Sprintf("Reservation %s for %d guests on %s at %s", reservation.ReservationNumber, reservation.GuestCount, req.ReservationDate, req.ReservationTime))

	return reservation, nil
}

func (s *reservationService) UpdateReservation(id uuid.UUID, req *UpdateReservationRequest, actor policy.Actor) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("reservation")
	}
	if err := s.authorize(actor, policy.ReservationUpdate, reservation); err != nil {
		return nil, err
	}
	if reservation.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: reservation is %s and can no longer be modified", apperr.ErrInvalidOperation, reservation.Status)
	}

	newDate := reservation.ReservationDate
	if req.ReservationDate != nil {
		if newDate, err = parseDate(*req.ReservationDate); err != nil {
			return nil, err
		}
	}
	newTime := reservation.ReservationTime
	if req.ReservationTime != nil {
		if err := validateTimeFormat(*req.ReservationTime); err != nil {
			return nil, err
		}
		newTime = *req.ReservationTime
	}
	newDuration := reservation.Duration
	if req.Duration != nil && *req.Duration > 0 {
		newDuration = *req.Duration
	}
	newGuestCount := reservation.GuestCount
	if req.GuestCount != nil {
		if *req.GuestCount <= 0 {
			return nil, fmt.Errorf("%w: guest count must be positive", ErrValidation)
		}
		newGuestCount = *req.GuestCount
	}

	newTableID := reservation.TableID
	if req.TableID != nil {
		parsed, err := uuid.Parse(*req.TableID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid table ID", ErrValidation)
		}
		newTableID = &parsed
	}

	var newStatus *model.ReservationStatus
	if req.Status != nil && *req.Status != reservation.Status {
		if !reservation.Status.CanTransitionTo(*req.Status) {
			return nil, apperr.ErrInvalidStatusTransition
		}
		newStatus = req.Status
	}

	slotChanged := newTableID != nil &&
		(req.TableID != nil || req.ReservationDate != nil || req.ReservationTime != nil ||
			req.Duration != nil || req.GuestCount != nil)

	oldTableID := reservation.TableID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if slotChanged {
			var table model.Table
			if err := lockForUpdate(tx).First(&table, "id = ?", *newTableID).Error; err != nil {
				return apperr.NotFound("table")
			}
			if table.RestaurantID != reservation.RestaurantID {
				return fmt.Errorf("%w: table belongs to another restaurant", apperr.ErrInvalidOperation)
			}
			if newGuestCount > table.Capacity {
				return apperr.ErrCapacityExceeded
			}

			// Re-run the conflict check excluding the reservation itself
			startMin := minutesOfDay(newTime)
			conflicts, err := s.reservationRepo.FindConflicting(tx, table.ID, newDate, startMin, startMin+newDuration, &reservation.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return apperr.ErrTableUnavailable
			}
		}

		reservation.ReservationDate = newDate
		reservation.ReservationTime = newTime
		reservation.Duration = newDuration
		reservation.GuestCount = newGuestCount
		reservation.TableID = newTableID
		if req.DepositAmount != nil {
			reservation.DepositAmount = *req.DepositAmount
		}
		if req.SpecialRequest != nil {
			reservation.SpecialRequest = *req.SpecialRequest
		}
		if newStatus != nil {
			reservation.Status = *newStatus
		}
		reservation.UpdatedBy = actor.ID.String()
		reservation.Table = nil
		reservation.Restaurant = nil
		reservation.User = nil

		if err := tx.Save(reservation).Error; err != nil {
			return err
		}

		// Table status synchronization
		if oldTableID != nil && (newTableID == nil || *oldTableID != *newTableID) {
			if err := s.tableRepo.UpdateStatus(tx, *oldTableID, model.TableAvailable, actor.ID.String()); err != nil {
				return err
			}
		}
		if newTableID != nil {
			target := model.TableReserved
			if reservation.Status.IsTerminal() {
				target = model.TableAvailable
			}
			if err := s.tableRepo.UpdateStatus(tx, *newTableID, target, actor.ID.String()); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("reservation_updated", reservation)
	return reservation, nil
}

func (s *reservationService) UpdateStatus(id uuid.UUID, next model.ReservationStatus, actor policy.Actor) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("reservation")
	}
	action := policy.ReservationUpdate
	if next == model.ReservationCancelled {
		action = policy.ReservationCancel
	}
	if err := s.authorize(actor, action, reservation); err != nil {
		return nil, err
	}
	if !reservation.Status.CanTransitionTo(next) {
		return nil, apperr.ErrInvalidStatusTransition
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Reservation{}).
			Where("id = ?", reservation.ID).
			Updates(map[string]interface{}{
				"status":     next,
				"updated_by": actor.ID.String(),
			}).Error; err != nil {
			return err
		}

		// CONFIRMED is the only transition that reserves the table; every
		// terminal state frees it.
		if reservation.TableID != nil {
			switch {
			case next == model.ReservationConfirmed:
				return s.tableRepo.UpdateStatus(tx, *reservation.TableID, model.TableReserved, actor.ID.String())
			case next.IsTerminal():
				return s.tableRepo.UpdateStatus(tx, *reservation.TableID, model.TableAvailable, actor.ID.String())
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	reservation.Status = next
	s.wsHub.Publish("reservation_status_changed", reservation)
	s.notify(reservation.UserID, model.NotifReservation, "Reservation "+strings.ToLower(string(next)),
		fmt.Sprintf("Reservation %s is now %s", reservation.ReservationNumber, next))

	return reservation, nil
}

func (s *reservationService) CancelReservation(id uuid.UUID, actor policy.Actor) (*model.Reservation, error) {
	return s.UpdateStatus(id, model.ReservationCancelled, actor)
}

func (s *reservationService) GetReservation(id uuid.UUID, actor policy.Actor) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("reservation")
	}
	if err := s.authorize(actor, policy.ReservationView, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *reservationService) ListByRestaurant(restaurantID uuid.UUID, actor policy.Actor) ([]model.Reservation, error) {
	if !policy.Allow(actor.Role, policy.ReservationView) {
		return nil, apperr.ErrForbidden
	}
	if !actor.IsAdmin() && !actor.WorksAt(restaurantID) {
		return nil, apperr.ErrForbidden
	}
	return s.reservationRepo.FindByRestaurant(restaurantID)
}

func (s *reservationService) ListByUser(actor policy.Actor) ([]model.Reservation, error) {
	return s.reservationRepo.FindByUser(actor.ID)
}

func (s *reservationService) FindAvailableTables(restaurantID uuid.UUID, dateStr, timeStr string, guestCount, duration int) ([]model.Table, error) {
	if err := validateTimeFormat(timeStr); err != nil {
		return nil, err
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		duration = model.DefaultReservationDuration
	}
	if guestCount <= 0 {
		guestCount = 1
	}
	return s.findAvailableTablesTx(s.db, restaurantID, date, minutesOfDay(timeStr), duration, guestCount, nil)
}

func (s *reservationService) IsTableAvailable(tableID uuid.UUID, dateStr, timeStr string, duration int, excludeID *uuid.UUID) (bool, error) {
	if err := validateTimeFormat(timeStr); err != nil {
		return false, err
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return false, err
	}
	if duration <= 0 {
		duration = model.DefaultReservationDuration
	}
	startMin := minutesOfDay(timeStr)
	conflicts, err := s.reservationRepo.FindConflicting(s.db, tableID, date, startMin, startMin+duration, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// findAvailableTablesTx returns AVAILABLE tables with enough capacity that
// have no conflicting active reservation in the requested window.
func (s *reservationService) findAvailableTablesTx(tx *gorm.DB, restaurantID uuid.UUID, date time.Time,
	startMin, duration, guestCount int, excludeID *uuid.UUID) ([]model.Table, error) {

	var tables []model.Table
	if err := tx.Where("restaurant_id = ? AND status = ? AND capacity >= ?",
		restaurantID, model.TableAvailable, guestCount).
		Order("capacity ASC").
		Find(&tables).Error; err != nil {
		return nil, err
	}

	var available []model.Table
	for _, table := range tables {
		conflicts, err := s.reservationRepo.FindConflicting(tx, table.ID, date, startMin, startMin+duration, excludeID)
		if err != nil {
			return nil, err
		}
		if len(conflicts) == 0 {
			available = append(available, table)
		}
	}
	return available, nil
}

// notify writes an in-app notification, best effort: a failed write is logged
// and never fails the operation that triggered it.
func (s *reservationService) notify(userID uuid.UUID, notifType model.NotificationType, title, message string) {
	if s.notificationRepo == nil {
		return
	}
	n := &model.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.Create(n); err != nil {
		log.Printf("Warning: failed to create notification for %s: %v", userID, err)
	}
}
