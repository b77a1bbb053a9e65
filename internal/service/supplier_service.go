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

type SupplierService interface {
	CreateSupplier(req *model.Supplier, actor policy.Actor) error
	UpdateSupplier(id uuid.UUID, req *UpdateSupplierRequest, actor policy.Actor) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID, actor policy.Actor) error
	GetSupplier(id uuid.UUID) (*model.Supplier, error)
	ListSuppliers() ([]model.Supplier, error)
}

type UpdateSupplierRequest struct {
	Name        *string `json:"name"`
	ContactName *string `json:"contact_name"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	IsActive    *bool   `json:"is_active"`
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) CreateSupplier(req *model.Supplier, actor policy.Actor) error {
	if !policy.Allow(actor.Role, policy.SupplierCreate) {
		return apperr.ErrForbidden
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	if existing, _ := s.supplierRepo.FindByEmail(req.Email); existing != nil {
		return apperr.Conflict(fmt.Sprintf("supplier email %q already exists", req.Email))
	}
	if existing, _ := s.supplierRepo.FindByPhone(req.PhoneNumber); existing != nil {
		return apperr.Conflict(fmt.Sprintf("supplier phone %q already exists", req.PhoneNumber))
	}

	req.IsActive = true
	req.CreatedBy = actor.ID.String()
	req.UpdatedBy = actor.ID.String()
	return s.supplierRepo.Create(req)
}

func (s *supplierService) UpdateSupplier(id uuid.UUID, req *UpdateSupplierRequest, actor policy.Actor) (*model.Supplier, error) {
	if !policy.Allow(actor.Role, policy.SupplierUpdate) {
		return nil, apperr.ErrForbidden
	}
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("supplier")
	}

	if req.Email != nil && *req.Email != supplier.Email {
		if existing, _ := s.supplierRepo.FindByEmail(*req.Email); existing != nil {
			return nil, apperr.Conflict(fmt.Sprintf("supplier email %q already exists", *req.Email))
		}
		supplier.Email = *req.Email
	}
	if req.PhoneNumber != nil && *req.PhoneNumber != supplier.PhoneNumber {
		if existing, _ := s.supplierRepo.FindByPhone(*req.PhoneNumber); existing != nil {
			return nil, apperr.Conflict(fmt.Sprintf("supplier phone %q already exists", *req.PhoneNumber))
		}
		supplier.PhoneNumber = *req.PhoneNumber
	}
	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.ContactName != nil {
		supplier.ContactName = *req.ContactName
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}
	supplier.UpdatedBy = actor.ID.String()

	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) DeleteSupplier(id uuid.UUID, actor policy.Actor) error {
	if !policy.Allow(actor.Role, policy.SupplierDelete) {
		return apperr.ErrForbidden
	}
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		return apperr.NotFound("supplier")
	}

	// A supplier still referenced by inventory items cannot be removed
	count, err := s.supplierRepo.CountItemsReferencing(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: supplier is referenced by %d inventory items", apperr.ErrInvalidOperation, count)
	}

	return s.supplierRepo.Delete(id, actor.ID.String())
}

func (s *supplierService) GetSupplier(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("supplier")
	}
	return supplier, nil
}

func (s *supplierService) ListSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}
