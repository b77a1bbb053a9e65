package service

import (
	"fmt"

	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/policy"
	"go-restaurant-ws/internal/repository"
	"go-restaurant-ws/internal/ws"
	"go-restaurant-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(req *CreateOrderRequest, actor policy.Actor) (*model.Order, error)
	UpdateStatus(id uuid.UUID, next model.OrderStatus, actor policy.Actor) (*model.Order, error)
	GetOrder(id uuid.UUID, actor policy.Actor) (*model.Order, error)
	ListByRestaurant(restaurantID uuid.UUID, actor policy.Actor) ([]model.Order, error)
	ListByUser(actor policy.Actor) ([]model.Order, error)
}

type CreateOrderRequest struct {
	RestaurantID string             `json:"restaurant_id" validate:"required"`
	TableID      *string            `json:"table_id"`
	Note         string             `json:"note"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
}

type orderService struct {
	db             *gorm.DB
	orderRepo      repository.OrderRepository
	menuRepo       repository.MenuRepository
	restaurantRepo repository.RestaurantRepository
	wsHub          *ws.Hub
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	restaurantRepo repository.RestaurantRepository,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		db:             db,
		orderRepo:      orderRepo,
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
		wsHub:          hub,
	}
}

// CreateOrder snapshots menu prices into the order items and computes the
// total inside one unit of work.
func (s *orderService) CreateOrder(req *CreateOrderRequest, actor policy.Actor) (*model.Order, error) {
	if !policy.Allow(actor.Role, policy.OrderCreate) {
		return nil, apperr.ErrForbidden
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid restaurant ID", ErrValidation)
	}
	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		return nil, apperr.NotFound("restaurant")
	}

	menuItemIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, it := range req.Items {
		id, err := uuid.Parse(it.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid menu item ID", ErrValidation)
		}
		menuItemIDs = append(menuItemIDs, id)
	}
	menuItems, err := s.menuRepo.FindItemsByIDs(menuItemIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		byID[mi.ID] = mi
	}

	order := &model.Order{
		OrderNumber:  generateNumber("ORD"),
		UserID:       actor.ID,
		RestaurantID: restaurantID,
		Status:       model.OrderPending,
		Note:         req.Note,
	}
	if req.TableID != nil {
		tableID, err := uuid.Parse(*req.TableID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid table ID", ErrValidation)
		}
		order.TableID = &tableID
	}
	order.CreatedBy = actor.ID.String()
	order.UpdatedBy = actor.ID.String()

	var total int64
	for i, it := range req.Items {
		mi, ok := byID[menuItemIDs[i]]
		if !ok {
			return nil, apperr.NotFound("menu item")
		}
		if !mi.IsAvailable {
			return nil, fmt.Errorf("%w: menu item %q is not available", apperr.ErrInvalidOperation, mi.Name)
		}
		line := model.OrderItem{
			MenuItemID: mi.ID,
			Name:       mi.Name,
			UnitPrice:  mi.Price,
			Quantity:   it.Quantity,
		}
		line.CreatedBy = actor.ID.String()
		line.UpdatedBy = actor.ID.String()
		order.Items = append(order.Items, line)
		total += mi.Price * int64(it.Quantity)
	}
	order.TotalAmount = total

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("order_created", order)
	return order, nil
}

func (s *orderService) UpdateStatus(id uuid.UUID, next model.OrderStatus, actor policy.Actor) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("order")
	}
	if !policy.Allow(actor.Role, policy.OrderUpdate) {
		return nil, apperr.ErrForbidden
	}
	if !actor.IsAdmin() && actor.Role != model.RoleDriver && !actor.WorksAt(order.RestaurantID) {
		return nil, apperr.ErrForbidden
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, apperr.ErrInvalidStatusTransition
	}

	order.Status = next
	order.UpdatedBy = actor.ID.String()
	order.Items = nil
	order.Restaurant = nil
	order.User = nil
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	s.wsHub.Publish("order_status_changed", order)
	return order, nil
}

func (s *orderService) GetOrder(id uuid.UUID, actor policy.Actor) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("order")
	}
	if actor.Role == model.RoleCustomer && order.UserID != actor.ID {
		return nil, apperr.ErrForbidden
	}
	if (actor.Role == model.RoleRestaurantOwner || actor.Role == model.RoleRestaurantStaff) && !actor.WorksAt(order.RestaurantID) {
		return nil, apperr.ErrForbidden
	}
	return order, nil
}

func (s *orderService) ListByRestaurant(restaurantID uuid.UUID, actor policy.Actor) ([]model.Order, error) {
	if !actor.IsAdmin() && !actor.WorksAt(restaurantID) {
		return nil, apperr.ErrForbidden
	}
	return s.orderRepo.FindByRestaurant(restaurantID)
}

func (s *orderService) ListByUser(actor policy.Actor) ([]model.Order, error) {
	return s.orderRepo.FindByUser(actor.ID)
}
