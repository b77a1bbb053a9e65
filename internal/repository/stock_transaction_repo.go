package repository

import (
	"time"

	"go-restaurant-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockTransactionRepository is read-only apart from Create: ledger rows are
// immutable history and are never updated or deleted.
type StockTransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.StockTransaction) error
	FindByItem(itemID uuid.UUID) ([]model.StockTransaction, error)
	FindByID(id uuid.UUID) (*model.StockTransaction, error)
	FindByRestaurant(restaurantID uuid.UUID, limit int) ([]model.StockTransaction, error)
	GetStockMovement(restaurantID uuid.UUID, startDate, endDate time.Time) ([]StockMovementData, error)
}

// StockMovementData buckets ledger activity per day for chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
	Adjusted int    `json:"adjusted"`
}

type stockTransactionRepo struct {
	db *gorm.DB
}

func NewStockTransactionRepo(db *gorm.DB) StockTransactionRepository {
	return &stockTransactionRepo{db}
}

func (r *stockTransactionRepo) Create(tx *gorm.DB, transaction *model.StockTransaction) error {
	return tx.Create(transaction).Error
}

func (r *stockTransactionRepo) FindByItem(itemID uuid.UUID) ([]model.StockTransaction, error) {
	var transactions []model.StockTransaction
	err := r.db.Where("inventory_item_id = ?", itemID).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *stockTransactionRepo) FindByID(id uuid.UUID) (*model.StockTransaction, error) {
	var transaction model.StockTransaction
	if err := r.db.Preload("InventoryItem").First(&transaction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *stockTransactionRepo) FindByRestaurant(restaurantID uuid.UUID, limit int) ([]model.StockTransaction, error) {
	var transactions []model.StockTransaction
	query := r.db.
		Joins("JOIN inventory_items ON inventory_items.id = stock_transactions.inventory_item_id").
		Where("inventory_items.restaurant_id = ?", restaurantID).
		Preload("InventoryItem").
		Order("stock_transactions.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&transactions).Error
	return transactions, err
}

func (r *stockTransactionRepo) GetStockMovement(restaurantID uuid.UUID, startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.StockTransaction{}).
		Joins("JOIN inventory_items ON inventory_items.id = stock_transactions.inventory_item_id").
		Select(`
			DATE(stock_transactions.created_at) as date,
			COALESCE(SUM(CASE WHEN stock_transactions.type = 'IN' THEN stock_transactions.quantity_change ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN stock_transactions.type = 'OUT' THEN -stock_transactions.quantity_change ELSE 0 END), 0) as outbound,
			COALESCE(SUM(CASE WHEN stock_transactions.type = 'ADJUSTMENT' THEN stock_transactions.quantity_change ELSE 0 END), 0) as adjusted
		`).
		Where("inventory_items.restaurant_id = ?", restaurantID).
		Where("stock_transactions.created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(stock_transactions.created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound, &data.Adjusted); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
