package service

import (
	"errors"

	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/model"
	"go-restaurant-ws/internal/policy"
	"go-restaurant-ws/internal/repository"
	"go-restaurant-ws/pkg/validator"

	"github.com/google/uuid"
)

type UserService interface {
	CreateUser(req *CreateUserRequest, actor policy.Actor) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor policy.Actor) (*model.User, error)
	DeleteUser(userID uuid.UUID, actor policy.Actor) error
	GetAllUsers(actor policy.Actor) ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID, actor policy.Actor) (*model.UserResponse, error)
	GetUsersByRestaurant(restaurantID uuid.UUID, actor policy.Actor) ([]model.UserResponse, error)
}

type CreateUserRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=6"`
	FullName     string  `json:"full_name" validate:"required"`
	PhoneNumber  string  `json:"phone_number"`
	RoleCode     string  `json:"role_code" validate:"required"`
	RestaurantID *string `json:"restaurant_id"` // required for owner/staff roles
}

type UpdateUserRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=6"` // optional
	FullName     string  `json:"full_name" validate:"required"`
	PhoneNumber  string  `json:"phone_number"`
	RoleCode     string  `json:"role_code" validate:"required"`
	RestaurantID *string `json:"restaurant_id"`
	IsActive     *bool   `json:"is_active"`
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// resolveBinding validates the role/restaurant pairing. Owners and staff must
// be bound to a restaurant; every other role must not be.
func resolveBinding(roleCode string, restaurantID *string) (*uuid.UUID, error) {
	scoped := roleCode == model.RoleRestaurantOwner || roleCode == model.RoleRestaurantStaff
	if !scoped {
		if restaurantID != nil && *restaurantID != "" {
			return nil, errors.New("restaurant_id is only valid for owner and staff roles")
		}
		return nil, nil
	}
	if restaurantID == nil || *restaurantID == "" {
		return nil, errors.New("restaurant_id is required for owner and staff roles")
	}
	id, err := uuid.Parse(*restaurantID)
	if err != nil {
		return nil, errors.New("invalid restaurant_id")
	}
	return &id, nil
}

// authorizeManage lets admins manage anyone; owners only their own staff.
func (s *userService) authorizeManage(actor policy.Actor, roleCode string, restaurantID *uuid.UUID) error {
	if !policy.Allow(actor.Role, policy.UserManage) && actor.Role != model.RoleRestaurantOwner {
		return apperr.ErrForbidden
	}
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role == model.RoleRestaurantOwner {
		if roleCode != model.RoleRestaurantStaff {
			return apperr.ErrForbidden
		}
		if restaurantID == nil || !actor.WorksAt(*restaurantID) {
			return apperr.ErrForbidden
		}
		return nil
	}
	return apperr.ErrForbidden
}

func (s *userService) CreateUser(req *CreateUserRequest, actor policy.Actor) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	restaurantID, err := resolveBinding(req.RoleCode, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeManage(actor, req.RoleCode, restaurantID); err != nil {
		return nil, err
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailExists
	}

	role, err := s.roleRepo.FindByCode(req.RoleCode)
	if err != nil {
		return nil, errors.New("role not found")
	}

	user := &model.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		RoleID:       &role.ID,
		RestaurantID: restaurantID,
		IsActive:     true,
	}
	user.CreatedBy = actor.ID.String()
	user.UpdatedBy = actor.ID.String()

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	user.Role = role

	return user, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest, actor policy.Actor) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	restaurantID, err := resolveBinding(req.RoleCode, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	// Must be allowed to manage both the current and the target shape
	if err := s.authorizeManage(actor, user.RoleCode(), user.RestaurantID); err != nil {
		return nil, err
	}
	if err := s.authorizeManage(actor, req.RoleCode, restaurantID); err != nil {
		return nil, err
	}

	if req.Email != user.Email {
		if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
			return nil, ErrEmailExists
		}
	}

	role, err := s.roleRepo.FindByCode(req.RoleCode)
	if err != nil {
		return nil, errors.New("role not found")
	}

	user.Email = req.Email
	user.FullName = req.FullName
	user.PhoneNumber = req.PhoneNumber
	user.RoleID = &role.ID
	user.Role = nil
	user.RestaurantID = restaurantID
	user.Restaurant = nil
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedBy = actor.ID.String()

	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return s.userRepo.FindByID(userID)
}

func (s *userService) DeleteUser(userID uuid.UUID, actor policy.Actor) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if err := s.authorizeManage(actor, user.RoleCode(), user.RestaurantID); err != nil {
		return err
	}
	if user.ID == actor.ID {
		return errors.New("cannot delete your own account")
	}
	return s.userRepo.Delete(userID)
}

func (s *userService) GetAllUsers(actor policy.Actor) ([]model.UserResponse, error) {
	if !policy.Allow(actor.Role, policy.UserManage) {
		return nil, apperr.ErrForbidden
	}
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

func (s *userService) GetUserByID(id uuid.UUID, actor policy.Actor) (*model.UserResponse, error) {
	if id != actor.ID && !actor.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	response := user.ToResponse()
	return &response, nil
}

func (s *userService) GetUsersByRestaurant(restaurantID uuid.UUID, actor policy.Actor) ([]model.UserResponse, error) {
	if !actor.IsAdmin() && !actor.WorksAt(restaurantID) {
		return nil, apperr.ErrForbidden
	}
	users, err := s.userRepo.FindByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

func toResponses(users []model.User) []model.UserResponse {
	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses
}
