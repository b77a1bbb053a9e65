package service

import (
	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/policy"
	"go-restaurant-ws/internal/repository"
	"go-restaurant-ws/pkg/validator"

	"github.com/google/uuid"
)

type RestaurantService interface {
	CreateRestaurant(req *model.Restaurant, actor policy.Actor) error
	UpdateRestaurant(id uuid.UUID, req *UpdateRestaurantRequest, actor policy.Actor) (*model.Restaurant, error)
	GetRestaurant(id uuid.UUID) (*model.Restaurant, error)
	ListRestaurants() ([]model.Restaurant, error)
}

type UpdateRestaurantRequest struct {
	Name        *string `json:"name"`
	Cuisine     *string `json:"cuisine"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	OpeningTime *string `json:"opening_time"` // HH:MM
	ClosingTime *string `json:"closing_time"` // HH:MM
	IsActive    *bool   `json:"is_active"`
}

type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
}

func NewRestaurantService(restaurantRepo repository.RestaurantRepository) RestaurantService {
	return &restaurantService{restaurantRepo: restaurantRepo}
}

func (s *restaurantService) CreateRestaurant(req *model.Restaurant, actor policy.Actor) error {
	if !policy.Allow(actor.Role, policy.RestaurantCreate) {
		return apperr.ErrForbidden
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if req.OpeningTime != "" {
		if err := validateTimeFormat(req.OpeningTime); err != nil {
			return err
		}
	}
	if req.ClosingTime != "" {
		if err := validateTimeFormat(req.ClosingTime); err != nil {
			return err
		}
	}
	req.IsActive = true
	req.CreatedBy = actor.ID.String()
	req.UpdatedBy = actor.ID.String()
	return s.restaurantRepo.Create(req)
}

func (s *restaurantService) UpdateRestaurant(id uuid.UUID, req *UpdateRestaurantRequest, actor policy.Actor) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("restaurant")
	}
	if !policy.Allow(actor.Role, policy.RestaurantUpdate) {
		return nil, apperr.ErrForbidden
	}
	if !actor.IsAdmin() && restaurant.OwnerID != actor.ID {
		return nil, apperr.ErrForbidden
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Cuisine != nil {
		restaurant.Cuisine = *req.Cuisine
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.PhoneNumber != nil {
		restaurant.PhoneNumber = *req.PhoneNumber
	}
	if req.OpeningTime != nil {
		if err := validateTimeFormat(*req.OpeningTime); err != nil {
			return nil, err
		}
		restaurant.OpeningTime = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		if err := validateTimeFormat(*req.ClosingTime); err != nil {
			return nil, err
		}
		restaurant.ClosingTime = *req.ClosingTime
	}
	if req.IsActive != nil {
		restaurant.IsActive = *req.IsActive
	}
	restaurant.UpdatedBy = actor.ID.String()

	if err := s.restaurantRepo.Update(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *restaurantService) GetRestaurant(id uuid.UUID) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("restaurant")
	}
	return restaurant, nil
}

func (s *restaurantService) ListRestaurants() ([]model.Restaurant, error) {
	return s.restaurantRepo.FindAll()
}
