package repository

import (
	"go-restaurant-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RestaurantRepository interface {
	Create(restaurant *model.Restaurant) error
	Update(restaurant *model.Restaurant) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Restaurant, error)
	FindAll() ([]model.Restaurant, error)
	FindByOwner(ownerID uuid.UUID) ([]model.Restaurant, error)
}

type restaurantRepo struct {
	db *gorm.DB
}

func NewRestaurantRepo(db *gorm.DB) RestaurantRepository {
	return &restaurantRepo{db}
}

func (r *restaurantRepo) Create(restaurant *model.Restaurant) error {
	return r.db.Create(restaurant).Error
}

func (r *restaurantRepo) Update(restaurant *model.Restaurant) error {
	return r.db.Save(restaurant).Error
}

func (r *restaurantRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.Restaurant{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
		"deleted_by": deletedBy,
	}).Error
}

func (r *restaurantRepo) FindByID(id uuid.UUID) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepo) FindAll() ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	err := r.db.Order("name ASC").Find(&restaurants).Error
	return restaurants, err
}

func (r *restaurantRepo) FindByOwner(ownerID uuid.UUID) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	err := r.db.Where("owner_id = ?", ownerID).Find(&restaurants).Error
	return restaurants, err
}
