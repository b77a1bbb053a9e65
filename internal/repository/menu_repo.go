package repository

import (
	"go-restaurant-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(menu *model.Menu) error
	Update(menu *model.Menu) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Menu, error)
	FindByRestaurant(restaurantID uuid.UUID) ([]model.Menu, error)

	CreateItem(item *model.MenuItem) error
	UpdateItem(item *model.MenuItem) error
	DeleteItem(id uuid.UUID, deletedBy string) error
	FindItemByID(id uuid.UUID) (*model.MenuItem, error)
	FindItemsByIDs(ids []uuid.UUID) ([]model.MenuItem, error)
}

type menuRepo struct {
	db *gorm.DB
}

func NewMenuRepo(db *gorm.DB) MenuRepository {
	return &menuRepo{db}
}

func (r *menuRepo) Create(menu *model.Menu) error {
	return r.db.Create(menu).Error
}

func (r *menuRepo) Update(menu *model.Menu) error {
	return r.db.Save(menu).Error
}

func (r *menuRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.Menu{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"deleted_by": deletedBy,
	}).Error
}

func (r *menuRepo) FindByID(id uuid.UUID) (*model.Menu, error) {
	var menu model.Menu
	if err := r.db.Preload("Items").First(&menu, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepo) FindByRestaurant(restaurantID uuid.UUID) ([]model.Menu, error) {
	var menus []model.Menu
	err := r.db.Preload("Items").
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC").
		Find(&menus).Error
	return menus, err
}

func (r *menuRepo) CreateItem(item *model.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuRepo) UpdateItem(item *model.MenuItem) error {
	return r.db.Save(item).Error
}

func (r *menuRepo) DeleteItem(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.MenuItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"deleted_by": deletedBy,
	}).Error
}

func (r *menuRepo) FindItemByID(id uuid.UUID) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepo) FindItemsByIDs(ids []uuid.UUID) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.Where("id IN ?", ids).Find(&items).Error
	return items, err
}
