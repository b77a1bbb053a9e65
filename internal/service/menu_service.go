package service

import (
	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/policy"
	"go-restaurant-ws/internal/repository"
	"go-restaurant-ws/pkg/validator"

	"github.com/google/uuid"
)

type MenuService interface {
	CreateMenu(req *model.Menu, actor policy.Actor) error
	UpdateMenu(id uuid.UUID, req *UpdateMenuRequest, actor policy.Actor) (*model.Menu, error)
	DeleteMenu(id uuid.UUID, actor policy.Actor) error
	GetMenu(id uuid.UUID) (*model.Menu, error)
	ListByRestaurant(restaurantID uuid.UUID) ([]model.Menu, error)

	AddItem(menuID uuid.UUID, req *model.MenuItem, actor policy.Actor) error
	UpdateItem(itemID uuid.UUID, req *UpdateMenuItemRequest, actor policy.Actor) (*model.MenuItem, error)
	DeleteItem(itemID uuid.UUID, actor policy.Actor) error
}

type UpdateMenuRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateMenuItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Category    *string `json:"category"`
	IsAvailable *bool   `json:"is_available"`
}

type menuService struct {
	menuRepo       repository.MenuRepository
	restaurantRepo repository.RestaurantRepository
}

func NewMenuService(menuRepo repository.MenuRepository, restaurantRepo repository.RestaurantRepository) MenuService {
	return &menuService{menuRepo: menuRepo, restaurantRepo: restaurantRepo}
}

func (s *menuService) scopeCheck(actor policy.Actor, restaurantID uuid.UUID) error {
	if !policy.Allow(actor.Role, policy.MenuManage) {
		return apperr.ErrForbidden
	}
	if !actor.IsAdmin() && !actor.WorksAt(restaurantID) {
		return apperr.ErrForbidden
	}
	return nil
}

func (s *menuService) CreateMenu(req *model.Menu, actor policy.Actor) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if err := s.scopeCheck(actor, req.RestaurantID); err != nil {
		return err
	}
	if _, err := s.restaurantRepo.FindByID(req.RestaurantID); err != nil {
		return apperr.NotFound("restaurant")
	}
	req.IsActive = true
	req.CreatedBy = actor.ID.String()
	req.UpdatedBy = actor.ID.String()
	return s.menuRepo.Create(req)
}

func (s *menuService) UpdateMenu(id uuid.UUID, req *UpdateMenuRequest, actor policy.Actor) (*model.Menu, error) {
	menu, err := s.menuRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("menu")
	}
	if err := s.scopeCheck(actor, menu.RestaurantID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}
	menu.UpdatedBy = actor.ID.String()
	menu.Items = nil

	if err := s.menuRepo.Update(menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *menuService) DeleteMenu(id uuid.UUID, actor policy.Actor) error {
	menu, err := s.menuRepo.FindByID(id)
	if err != nil {
		return apperr.NotFound("menu")
	}
	if err := s.scopeCheck(actor, menu.RestaurantID); err != nil {
		return err
	}
	return s.menuRepo.Delete(id, actor.ID.String())
}

func (s *menuService) GetMenu(id uuid.UUID) (*model.Menu, error) {
	menu, err := s.menuRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("menu")
	}
	return menu, nil
}

func (s *menuService) ListByRestaurant(restaurantID uuid.UUID) ([]model.Menu, error) {
	return s.menuRepo.FindByRestaurant(restaurantID)
}

func (s *menuService) AddItem(menuID uuid.UUID, req *model.MenuItem, actor policy.Actor) error {
	menu, err := s.menuRepo.FindByID(menuID)
	if err != nil {
		return apperr.NotFound("menu")
	}
	if err := s.scopeCheck(actor, menu.RestaurantID); err != nil {
		return err
	}
	req.MenuID = menu.ID
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	req.IsAvailable = true
	req.CreatedBy = actor.ID.String()
	req.UpdatedBy = actor.ID.String()
	return s.menuRepo.CreateItem(req)
}

func (s *menuService) UpdateItem(itemID uuid.UUID, req *UpdateMenuItemRequest, actor policy.Actor) (*model.MenuItem, error) {
	item, err := s.menuRepo.FindItemByID(itemID)
	if err != nil {
		return nil, apperr.NotFound("menu item")
	}
	menu, err := s.menuRepo.FindByID(item.MenuID)
	if err != nil {
		return nil, apperr.NotFound("menu")
	}
	if err := s.scopeCheck(actor, menu.RestaurantID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	item.UpdatedBy = actor.ID.String()

	if err := s.menuRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) DeleteItem(itemID uuid.UUID, actor policy.Actor) error {
	item, err := s.menuRepo.FindItemByID(itemID)
	if err != nil {
		return apperr.NotFound("menu item")
	}
	menu, err := s.menuRepo.FindByID(item.MenuID)
	if err != nil {
		return apperr.NotFound("menu")
	}
	if err := s.scopeCheck(actor, menu.RestaurantID); err != nil {
		return err
	}
	return s.menuRepo.DeleteItem(itemID, actor.ID.String())
}
