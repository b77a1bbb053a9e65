package repository

import (
	"go-restaurant-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	Update(supplier *model.Supplier) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Supplier, error)
	FindAll() ([]model.Supplier, error)
	FindByEmail(email string) (*model.Supplier, error)
	FindByPhone(phone string) (*model.Supplier, error)
	CountItemsReferencing(supplierID uuid.UUID) (int64, error)
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *supplierRepo) Update(supplier *model.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *supplierRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.Supplier{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"deleted_by": deletedBy,
	}).Error
}

func (r *supplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) FindAll() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) FindByEmail(email string) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.Where("email = ?", email).First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) FindByPhone(phone string) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.Where("phone_number = ?", phone).First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) CountItemsReferencing(supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.InventoryItem{}).Where("supplier_id = ?", supplierID).Count(&count).Error
	return count, err
}
