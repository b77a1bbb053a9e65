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

type InventoryService interface {
	CreateItem(req *CreateInventoryItemRequest, actor policy.Actor) (*model.InventoryItem, error)
	UpdateItem(id uuid.UUID, req *UpdateInventoryItemRequest, actor policy.Actor) (*model.InventoryItem, error)
	GetItem(id uuid.UUID, actor policy.Actor) (*model.InventoryItem, error)
	ListItems(restaurantID uuid.UUID, actor policy.Actor) ([]model.InventoryItem, error)

	ApplyStockTransaction(itemID uuid.UUID, req *StockTransactionRequest, actor policy.Actor) (*model.StockTransaction, error)
	AdjustStock(itemID uuid.UUID, newQuantity int, reason string, actor policy.Actor) (*model.StockTransaction, error)
	TransferStock(req *TransferStockRequest, actor policy.Actor) (*TransferResult, error)
	ListTransactions(itemID uuid.UUID, actor policy.Actor) ([]model.StockTransaction, error)
}

type CreateInventoryItemRequest struct {
	RestaurantID string  `json:"restaurant_id" validate:"required"`
	SupplierID   *string `json:"supplier_id"`
	Name         string  `json:"name" validate:"required"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity" validate:"gte=0"`
	Unit         string  `json:"unit"`
	UnitPrice    int64   `json:"unit_price" validate:"gte=0"`
	Threshold    int     `json:"threshold" validate:"gte=0"`
	SKU          *string `json:"sku"`
	ExpiryDate   *string `json:"expiry_date"` // YYYY-MM-DD
}

type UpdateInventoryItemRequest struct {
	SupplierID *string `json:"supplier_id"`
	Name       *string `json:"name"`
	Category   *string `json:"category"`
	Unit       *string `json:"unit"`
	UnitPrice  *int64  `json:"unit_price"`
	Threshold  *int    `json:"threshold"`
	SKU        *string `json:"sku"`
	ExpiryDate *string `json:"expiry_date"` // YYYY-MM-DD
}

// StockTransactionRequest drives ApplyStockTransaction. For IN and OUT,
// Quantity is the amount moved (must be positive); for ADJUSTMENT it is the
// absolute target quantity the item is set to.
type StockTransactionRequest struct {
	Quantity    int                   `json:"quantity" validate:"gte=0"`
	Type        model.TransactionType `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	ReferenceID string                `json:"reference_id"`
	Reason      string                `json:"reason"`
}

type TransferStockRequest struct {
	FromItemID string `json:"from_item_id" validate:"required"`
	ToItemID   string `json:"to_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	Reason     string `json:"reason"`
}

// TransferResult bundles everything a transfer touched.
type TransferResult struct {
	FromTransaction *model.StockTransaction `json:"from_transaction"`
	ToTransaction   *model.StockTransaction `json:"to_transaction"`
	FromItem        *model.InventoryItem    `json:"from_item"`
	ToItem          *model.InventoryItem    `json:"to_item"`
}

type inventoryService struct {
	db               *gorm.DB
	itemRepo         repository.InventoryRepository
	txRepo           repository.StockTransactionRepository
	supplierRepo     repository.SupplierRepository
	restaurantRepo   repository.RestaurantRepository
	notificationRepo repository.NotificationRepository
	wsHub            *ws.Hub
}

func NewInventoryService(
	db *gorm.DB,
	itemRepo repository.InventoryRepository,
	txRepo repository.StockTransactionRepository,
	supplierRepo repository.SupplierRepository,
	restaurantRepo repository.RestaurantRepository,
	notificationRepo repository.NotificationRepository,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		db:               db,
		itemRepo:         itemRepo,
		txRepo:           txRepo,
		supplierRepo:     supplierRepo,
		restaurantRepo:   restaurantRepo,
		notificationRepo: notificationRepo,
		wsHub:            hub,
	}
}

func (s *inventoryService) scopeCheck(actor policy.Actor, action policy.Action, restaurantID uuid.UUID) error {
	if !policy.Allow(actor.Role, action) {
		return apperr.ErrForbidden
	}
	if !actor.IsAdmin() && !actor.WorksAt(restaurantID) {
		return apperr.ErrForbidden
	}
	return nil
}

func (s *inventoryService) CreateItem(req *CreateInventoryItemRequest, actor policy.Actor) (*model.InventoryItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid restaurant ID", ErrValidation)
	}
	if err := s.scopeCheck(actor, policy.InventoryCreate, restaurantID); err != nil {
		return nil, err
	}
	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		return nil, apperr.NotFound("restaurant")
	}

	// SKU is unique within the restaurant, when provided
	if req.SKU != nil && *req.SKU != "" {
		if existing, _ := s.itemRepo.FindBySKU(restaurantID, *req.SKU); existing != nil {
			return nil, apperr.Conflict(fmt.Sprintf("SKU %q already exists", *req.SKU))
		}
	}

	item := &model.InventoryItem{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		UnitPrice:    req.UnitPrice,
		Threshold:    req.Threshold,
	}
	if req.SKU != nil && *req.SKU != "" {
		item.SKU = req.SKU
	}
	if req.SupplierID != nil {
		supplierID, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid supplier ID", ErrValidation)
		}
		if _, err := s.supplierRepo.FindByID(supplierID); err != nil {
			return nil, apperr.NotFound("supplier")
		}
		item.SupplierID = &supplierID
	}
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		expiry, err := parseDate(*req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		item.ExpiryDate = &expiry
	}
	item.CreatedBy = actor.ID.String()
	item.UpdatedBy = actor.ID.String()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}

		// Seed the ledger so quantity == sum of transactions holds from birth
		if item.Quantity > 0 {
			initial := &model.StockTransaction{
				InventoryItemID: item.ID,
				Type:            model.TxIn,
				QuantityChange:  item.Quantity,
				BalanceAfter:    item.Quantity,
				Reason:          "Initial stock",
				PerformedBy:     actor.ID,
			}
			initial.CreatedBy = actor.ID.String()
			initial.UpdatedBy = actor.ID.String()
			if err := s.txRepo.Create(tx, initial); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("inventory_item_created", item)
	return item, nil
}

func (s *inventoryService) UpdateItem(id uuid.UUID, req *UpdateInventoryItemRequest, actor policy.Actor) (*model.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("inventory item")
	}
	if err := s.scopeCheck(actor, policy.InventoryUpdate, item.RestaurantID); err != nil {
		return nil, err
	}

	if req.SKU != nil && (item.SKU == nil || *req.SKU != *item.SKU) {
		if existing, _ := s.itemRepo.FindBySKU(item.RestaurantID, *req.SKU); existing != nil {
			return nil, apperr.Conflict(fmt.Sprintf("SKU %q already exists", *req.SKU))
		}
		item.SKU = req.SKU
	}
	if req.SupplierID != nil {
		supplierID, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid supplier ID", ErrValidation)
		}
		if _, err := s.supplierRepo.FindByID(supplierID); err != nil {
			return nil, apperr.NotFound("supplier")
		}
		item.SupplierID = &supplierID
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unit price cannot be negative", ErrValidation)
		}
		item.UnitPrice = *req.UnitPrice
	}
	if req.Threshold != nil {
		if *req.Threshold < 0 {
			return nil, fmt.Errorf("%w: threshold cannot be negative", ErrValidation)
		}
		item.Threshold = *req.Threshold
	}
	if req.ExpiryDate != nil {
		if *req.ExpiryDate == "" {
			item.ExpiryDate = nil
		} else {
			expiry, err := parseDate(*req.ExpiryDate)
			if err != nil {
				return nil, err
			}
			item.ExpiryDate = &expiry
		}
	}
	item.UpdatedBy = actor.ID.String()
	item.Supplier = nil
	item.Restaurant = nil

	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) GetItem(id uuid.UUID, actor policy.Actor) (*model.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("inventory item")
	}
	if err := s.scopeCheck(actor, policy.InventoryView, item.RestaurantID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) ListItems(restaurantID uuid.UUID, actor policy.Actor) ([]model.InventoryItem, error) {
	if err := s.scopeCheck(actor, policy.InventoryView, restaurantID); err != nil {
		return nil, err
	}
	return s.itemRepo.FindByRestaurant(restaurantID)
}

// ApplyStockTransaction is the single quantity-mutating path: the item update
// and the ledger row commit or roll back together.
func (s *inventoryService) ApplyStockTransaction(itemID uuid.UUID, req *StockTransactionRequest, actor policy.Actor) (*model.StockTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	existing, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		return nil, apperr.NotFound("inventory item")
	}
	if err := s.scopeCheck(actor, policy.InventoryTransact, existing.RestaurantID); err != nil {
		return nil, err
	}

	var row *model.StockTransaction
	var newQuantity int

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var item model.InventoryItem
		if err := lockForUpdate(tx).First(&item, "id = ?", itemID).Error; err != nil {
			return apperr.NotFound("inventory item")
		}

		var delta int
		switch req.Type {
		case model.TxIn:
			if req.Quantity <= 0 {
				return fmt.Errorf("%w: quantity must be positive", ErrValidation)
			}
			delta = req.Quantity
			newQuantity = item.Quantity + delta
		case model.TxOut:
			if req.Quantity <= 0 {
				return fmt.Errorf("%w: quantity must be positive", ErrValidation)
			}
			if item.Quantity < req.Quantity {
				return apperr.ErrInsufficientStock
			}
			delta = -req.Quantity
			newQuantity = item.Quantity - req.Quantity
		case model.TxAdjustment:
			// Quantity is the absolute target; the ledger row records the
			// signed delta so replay still reconstructs the balance.
			newQuantity = req.Quantity
			delta = newQuantity - item.Quantity
		default:
			return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, req.Type)
		}

		row = &model.StockTransaction{
			InventoryItemID: item.ID,
			Type:            req.Type,
			QuantityChange:  delta,
			BalanceAfter:    newQuantity,
			ReferenceID:     req.ReferenceID,
			Reason:          req.Reason,
			PerformedBy:     actor.ID,
		}
		row.CreatedBy = actor.ID.String()
		row.UpdatedBy = actor.ID.String()
		if err := s.txRepo.Create(tx, row); err != nil {
			return err
		}

		return s.itemRepo.UpdateQuantity(tx, item.ID, newQuantity, actor.ID.String())
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("stock_transaction", row)
	if newQuantity <= existing.Threshold {
		s.alertLowStock(existing, newQuantity)
	}

	return row, nil
}

// AdjustStock sets the item to an absolute target quantity; the convention is
// that ADJUSTMENT transactions always carry a target, never a relative delta.
func (s *inventoryService) AdjustStock(itemID uuid.UUID, newQuantity int, reason string, actor policy.Actor) (*model.StockTransaction, error) {
	if newQuantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	if reason == "" {
		reason = "Manual adjustment"
	}
	return s.ApplyStockTransaction(itemID, &StockTransactionRequest{
		Quantity: newQuantity,
		Type:     model.TxAdjustment,
		Reason:   reason,
	}, actor)
}

func (s *inventoryService) TransferStock(req *TransferStockRequest, actor policy.Actor) (*TransferResult, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	fromID, err := uuid.Parse(req.FromItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid source item ID", ErrValidation)
	}
	toID, err := uuid.Parse(req.ToItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid destination item ID", ErrValidation)
	}
	if fromID == toID {
		return nil, fmt.Errorf("%w: cannot transfer an item to itself", apperr.ErrInvalidOperation)
	}

	fromItem, err := s.itemRepo.FindByID(fromID)
	if err != nil {
		return nil, apperr.NotFound("source inventory item")
	}
	toItem, err := s.itemRepo.FindByID(toID)
	if err != nil {
		return nil, apperr.NotFound("destination inventory item")
	}

	// Non-admin actors may only move stock within their own restaurant
	if !actor.IsAdmin() {
		if fromItem.RestaurantID != toItem.RestaurantID {
			return nil, apperr.ErrCrossRestaurantTransfer
		}
		if err := s.scopeCheck(actor, policy.InventoryTransfer, fromItem.RestaurantID); err != nil {
			return nil, err
		}
	}

	result := &TransferResult{}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Lock both rows in deterministic ID order so two opposing transfers
		// cannot deadlock.
		first, second := fromID, toID
		if second.String() < first.String() {
			first, second = second, first
		}
		var a, b model.InventoryItem
		if err := lockForUpdate(tx).First(&a, "id = ?", first).Error; err != nil {
			return apperr.NotFound("inventory item")
		}
		if err := lockForUpdate(tx).First(&b, "id = ?", second).Error; err != nil {
			return apperr.NotFound("inventory item")
		}
		src, dst := &a, &b
		if src.ID != fromID {
			src, dst = &b, &a
		}

		if src.Quantity < req.Quantity {
			return apperr.ErrInsufficientStock
		}

		srcBalance := src.Quantity - req.Quantity
		dstBalance := dst.Quantity + req.Quantity

		outRow := &model.StockTransaction{
			InventoryItemID: src.ID,
			Type:            model.TxOut,
			QuantityChange:  -req.Quantity,
			BalanceAfter:    srcBalance,
			ReferenceID:     fmt.Sprintf("TRANSFER_TO_%s", dst.ID),
			Reason:          req.Reason,
			PerformedBy:     actor.ID,
		}
		outRow.CreatedBy = actor.ID.String()
		outRow.UpdatedBy = actor.ID.String()
		inRow := &model.StockTransaction{
			InventoryItemID: dst.ID,
			Type:            model.TxIn,
			QuantityChange:  req.Quantity,
			BalanceAfter:    dstBalance,
			ReferenceID:     fmt.Sprintf("TRANSFER_FROM_%s", src.ID),
			Reason:          req.Reason,
			PerformedBy:     actor.ID,
		}
		inRow.CreatedBy = actor.ID.String()
		inRow.UpdatedBy = actor.ID.String()

		if err := s.txRepo.Create(tx, outRow); err != nil {
			return err
		}
		if err := s.txRepo.Create(tx, inRow); err != nil {
			return err
		}
		if err := s.itemRepo.UpdateQuantity(tx, src.ID, srcBalance, actor.ID.String()); err != nil {
			return err
		}
		if err := s.itemRepo.UpdateQuantity(tx, dst.ID, dstBalance, actor.ID.String()); err != nil {
			return err
		}

		src.Quantity = srcBalance
		dst.Quantity = dstBalance
		result.FromTransaction = outRow
		result.ToTransaction = inRow
		result.FromItem = src
		result.ToItem = dst
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("stock_transfer", result)
	if result.FromItem.IsLowStock() {
		s.alertLowStock(result.FromItem, result.FromItem.Quantity)
	}

	return result, nil
}

func (s *inventoryService) ListTransactions(itemID uuid.UUID, actor policy.Actor) ([]model.StockTransaction, error) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		return nil, apperr.NotFound("inventory item")
	}
	if err := s.scopeCheck(actor, policy.InventoryView, item.RestaurantID); err != nil {
		return nil, err
	}
	return s.txRepo.FindByItem(itemID)
}

// alertLowStock notifies the restaurant owner, best effort.
func (s *inventoryService) alertLowStock(item *model.InventoryItem, quantity int) {
	s.wsHub.Publish("low_stock", map[string]interface{}{
		"item_id":   item.ID,
		"name":      item.Name,
		"quantity":  quantity,
		"threshold": item.Threshold,
	})
	if s.notificationRepo == nil {
		return
	}
	restaurant, err := s.restaurantRepo.FindByID(item.RestaurantID)
	if err != nil {
		return
	}
	n := &model.Notification{
		UserID:  restaurant.OwnerID,
		Type:    model.NotifLowStock,
		Title:   "Low stock: " + item.Name,
		Message: fmt.Sprintf("%s is down to %d %s (threshold %d)", item.Name, quantity, item.Unit, item.Threshold),
	}
	if err := s.notificationRepo.Create(n); err != nil {
		return
	}
}
