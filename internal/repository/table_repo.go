package repository

import (
	"go-restaurant-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TableRepository interface {
	Create(table *model.Table) error
	Update(table *model.Table) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Table, error)
	FindByRestaurant(restaurantID uuid.UUID) ([]model.Table, error)
	FindByNumber(restaurantID uuid.UUID, tableNumber string) (*model.Table, error)

	// UpdateStatus takes *gorm.DB so it can run inside a transaction
	UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.TableStatus, updatedBy string) error
}

type tableRepo struct {
	db *gorm.DB
}

func NewTableRepo(db *gorm.DB) TableRepository {
	return &tableRepo{db}
}

func (r *tableRepo) Create(table *model.Table) error {
	return r.db.Create(table).Error
}

func (r *tableRepo) Update(table *model.Table) error {
	return r.db.Save(table).Error
}

func (r *tableRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.Table{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"deleted_by": deletedBy,
	}).Error
}

func (r *tableRepo) FindByID(id uuid.UUID) (*model.Table, error) {
	var table model.Table
	if err := r.db.First(&table, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepo) FindByRestaurant(restaurantID uuid.UUID) ([]model.Table, error) {
	var tables []model.Table
	err := r.db.Where("restaurant_id = ?", restaurantID).Order("table_number ASC").Find(&tables).Error
	return tables, err
}

func (r *tableRepo) FindByNumber(restaurantID uuid.UUID, tableNumber string) (*model.Table, error) {
	var table model.Table
	if err := r.db.Where("restaurant_id = ? AND table_number = ?", restaurantID, tableNumber).First(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.TableStatus, updatedBy string) error {
	return tx.Model(&model.Table{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}
