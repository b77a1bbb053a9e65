package service

import (
	"fmt"

	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/policy"
	"go-restaurant-ws/internal/repository"
	"go-restaurant-ws/pkg/validator"

	"github.com/google/uuid"
)

type TableService interface {
	CreateTable(req *model.Table, actor policy.Actor) error
	UpdateTable(id uuid.UUID, req *UpdateTableRequest, actor policy.Actor) (*model.Table, error)
	DeleteTable(id uuid.UUID, actor policy.Actor) error
	GetTable(id uuid.UUID) (*model.Table, error)
	ListByRestaurant(restaurantID uuid.UUID) ([]model.Table, error)
}

type UpdateTableRequest struct {
	TableNumber   *string            `json:"table_number"`
	Capacity      *int               `json:"capacity"`
	Location      *string            `json:"location"`
	Status        *model.TableStatus `json:"status"`
	MinimumCharge *int64             `json:"minimum_charge"`
}

type tableService struct {
	tableRepo       repository.TableRepository
	restaurantRepo  repository.RestaurantRepository
	reservationRepo repository.ReservationRepository
}

func NewTableService(tRepo repository.TableRepository, restRepo repository.RestaurantRepository, rRepo repository.ReservationRepository) TableService {
	return &tableService{
		tableRepo:       tRepo,
		restaurantRepo:  restRepo,
		reservationRepo: rRepo,
	}
}

func (s *tableService) scopeCheck(actor policy.Actor, action policy.Action, restaurantID uuid.UUID) error {
	if !policy.Allow(actor.Role, action) {
		return apperr.ErrForbidden
	}
	if !actor.IsAdmin() && !actor.WorksAt(restaurantID) {
		return apperr.ErrForbidden
	}
	return nil
}

func (s *tableService) CreateTable(req *model.Table, actor policy.Actor) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if err := s.scopeCheck(actor, policy.TableCreate, req.RestaurantID); err != nil {
		return err
	}
	if _, err := s.restaurantRepo.FindByID(req.RestaurantID); err != nil {
		return apperr.NotFound("restaurant")
	}

	// Table numbers are unique per restaurant
	if existing, _ := s.tableRepo.FindByNumber(req.RestaurantID, req.TableNumber); existing != nil {
		return apperr.Conflict(fmt.Sprintf("table number %q already exists", req.TableNumber))
	}

	if req.Status == "" {
		req.Status = model.TableAvailable
	}
	req.CreatedBy = actor.ID.String()
	req.UpdatedBy = actor.ID.String()
	return s.tableRepo.Create(req)
}

func (s *tableService) UpdateTable(id uuid.UUID, req *UpdateTableRequest, actor policy.Actor) (*model.Table, error) {
	table, err := s.tableRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("table")
	}
	if err := s.scopeCheck(actor, policy.TableUpdate, table.RestaurantID); err != nil {
		return nil, err
	}

	if req.TableNumber != nil && *req.TableNumber != table.TableNumber {
		if existing, _ := s.tableRepo.FindByNumber(table.RestaurantID, *req.TableNumber); existing != nil {
			return nil, apperr.Conflict(fmt.Sprintf("table number %q already exists", *req.TableNumber))
		}
		table.TableNumber = *req.TableNumber
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, fmt.Errorf("%w: capacity must be positive", ErrValidation)
		}
		table.Capacity = *req.Capacity
	}
	if req.Location != nil {
		table.Location = *req.Location
	}
	if req.Status != nil {
		table.Status = *req.Status
	}
	if req.MinimumCharge != nil {
		table.MinimumCharge = *req.MinimumCharge
	}
	table.UpdatedBy = actor.ID.String()

	if err := s.tableRepo.Update(table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *tableService) DeleteTable(id uuid.UUID, actor policy.Actor) error {
	table, err := s.tableRepo.FindByID(id)
	if err != nil {
		return apperr.NotFound("table")
	}
	if err := s.scopeCheck(actor, policy.TableDelete, table.RestaurantID); err != nil {
		return err
	}

	// A table with active reservations cannot be removed
	active, err := s.reservationRepo.CountActiveByTable(id)
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("%w: table has %d active reservations", apperr.ErrInvalidOperation, active)
	}

	return s.tableRepo.Delete(id, actor.ID.String())
}

func (s *tableService) GetTable(id uuid.UUID) (*model.Table, error) {
	table, err := s.tableRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("table")
	}
	return table, nil
}

func (s *tableService) ListByRestaurant(restaurantID uuid.UUID) ([]model.Table, error) {
	return s.tableRepo.FindByRestaurant(restaurantID)
}
