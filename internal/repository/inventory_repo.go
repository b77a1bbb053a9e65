package repository

import (
	"time"

	"go-restaurant-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(item *model.InventoryItem) error
	Update(item *model.InventoryItem) error
	FindByID(id uuid.UUID) (*model.InventoryItem, error)
	FindByRestaurant(restaurantID uuid.UUID) ([]model.InventoryItem, error)
	FindBySKU(restaurantID uuid.UUID, sku string) (*model.InventoryItem, error)

	// UpdateQuantity takes *gorm.DB so it can run inside a transaction
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error

	FindLowStock(restaurantID uuid.UUID) ([]model.InventoryItem, error)
	FindExpiringSoon(restaurantID uuid.UUID, within time.Duration) ([]model.InventoryItem, error)
	TotalValue(restaurantID uuid.UUID) (int64, error)
	CategoryBreakdown(restaurantID uuid.UUID) ([]CategoryCount, error)
}

// CategoryCount aggregates items and stock value per category
type CategoryCount struct {
	Category  string `json:"category"`
	ItemCount int64  `json:"item_count"`
	Quantity  int64  `json:"quantity"`
	Value     int64  `json:"value"`
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(item *model.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *inventoryRepo) Update(item *model.InventoryItem) error {
	return r.db.Save(item).Error
}

func (r *inventoryRepo) FindByID(id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := r.db.Preload("Supplier").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) FindByRestaurant(restaurantID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Preload("Supplier").
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindBySKU(restaurantID uuid.UUID, sku string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := r.db.Where("restaurant_id = ? AND sku = ?", restaurantID, sku).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error {
	return tx.Model(&model.InventoryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   newQuantity,
			"updated_by": updatedBy,
		}).Error
}

func (r *inventoryRepo) FindLowStock(restaurantID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Where("restaurant_id = ? AND quantity <= threshold", restaurantID).
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindExpiringSoon(restaurantID uuid.UUID, within time.Duration) ([]model.InventoryItem, error) {
	cutoff := time.Now().Add(within)
	var items []model.InventoryItem
	err := r.db.Where("restaurant_id = ? AND expiry_date IS NOT NULL AND expiry_date <= ?", restaurantID, cutoff).
		Order("expiry_date ASC").
		Find(&items).Error
	return items, err
}

func (r *inventoryRepo) TotalValue(restaurantID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.Model(&model.InventoryItem{}).
		Where("restaurant_id = ?", restaurantID).
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *inventoryRepo) CategoryBreakdown(restaurantID uuid.UUID) ([]CategoryCount, error) {
	var results []CategoryCount
	err := r.db.Model(&model.InventoryItem{}).
		Select(`
			category,
			COUNT(*) as item_count,
			COALESCE(SUM(quantity), 0) as quantity,
			COALESCE(SUM(quantity * unit_price), 0) as value
		`).
		Where("restaurant_id = ?", restaurantID).
		Group("category").
		Order("category ASC").
		Scan(&results).Error
	return results, err
}
