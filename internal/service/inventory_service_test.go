package service

import (
	"testing"

	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ledger invariant: quantity equals the sum of all signed changes
func assertLedgerBalanced(t *testing.T, env *testEnv, itemID uuid.UUID) {
	t.Helper()
	item := env.reloadItem(t, itemID)
	sum := 0
	for _, row := range env.ledgerFor(t, itemID) {
		sum += row.QuantityChange
	}
	assert.Equal(t, item.Quantity, sum, "item quantity must equal the ledger sum")
}

func TestCreateItemSeedsLedger(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	staff := staffActor(restaurant.ID)

	item, err := env.inventory.CreateItem(&CreateInventoryItemRequest{
		RestaurantID: restaurant.ID.String(),
		Name:         "Flour",
		Quantity:     50,
		Threshold:    10,
		Unit:         "kg",
		UnitPrice:    200,
	}, staff)
	require.NoError(t, err)

	rows := env.ledgerFor(t, item.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, model.TxIn, rows[0].Type)
	assert.Equal(t, 50, rows[0].QuantityChange)
	assert.Equal(t, 50, rows[0].BalanceAfter)
	assert.Equal(t, "Initial stock", rows[0].Reason)
	assertLedgerBalanced(t, env, item.ID)
}

func TestCreateItemZeroQuantityHasNoLedgerRow(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	staff := staffActor(restaurant.ID)

	item, err := env.inventory.CreateItem(&CreateInventoryItemRequest{
		RestaurantID: restaurant.ID.String(),
		Name:         "Saffron",
	}, staff)
	require.NoError(t, err)
	assert.Empty(t, env.ledgerFor(t, item.ID))
}

func TestCreateItemDuplicateSKU(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	staff := staffActor(restaurant.ID)

	sku := "FLR-001"
	_, err := env.inventory.CreateItem(&CreateInventoryItemRequest{
		RestaurantID: restaurant.ID.String(),
		Name:         "Flour",
		SKU:          &sku,
	}, staff)
	require.NoError(t, err)

	_, err = env.inventory.CreateItem(&CreateInventoryItemRequest{
		RestaurantID: restaurant.ID.String(),
		Name:         "Flour 2",
		SKU:          &sku,
	}, staff)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestStockTransactionInOutSemantics(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	item := env.seedItem(t, restaurant.ID, "Rice", 0, 5)
	staff := staffActor(restaurant.ID)

	in, err := env.inventory.ApplyStockTransaction(item.ID, &StockTransactionRequest{
		Quantity: 50, Type: model.TxIn, Reason: "Delivery",
	}, staff)
	require.NoError(t, err)
	assert.Equal(t, 50, in.QuantityChange)
	assert.Equal(t, 50, in.BalanceAfter)
	assert.Equal(t, 50, env.reloadItem(t, item.ID).Quantity)

	out, err := env.inventory.ApplyStockTransaction(item.ID, &StockTransactionRequest{
		Quantity: 45, Type: model.TxOut, Reason: "Service",
	}, staff)
	require.NoError(t, err)
	assert.Equal(t, -45, out.QuantityChange)
	assert.Equal(t, 5, out.BalanceAfter)

	final := env.reloadItem(t, item.ID)
	assert.Equal(t, 5, final.Quantity)
	assert.True(t, final.IsLowStock())
	assertLedgerBalanced(t, env, item.ID)
}

func TestStockTransactionOutInsufficient(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	item := env.seedItem(t, restaurant.ID, "Rice", 10, 2)
	staff := staffActor(restaurant.ID)

	_, err := env.inventory.ApplyStockTransaction(item.ID, &StockTransactionRequest{
		Quantity: 11, Type: model.TxOut,
	}, staff)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)

	// A rejected movement leaves no trace
	assert.Equal(t, 10, env.reloadItem(t, item.ID).Quantity)
	assert.Empty(t, env.ledgerFor(t, item.ID))
}

func TestAdjustmentIsAbsoluteTarget(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	item := env.seedItem(t, restaurant.ID, "Sugar", 30, 5)
	staff := staffActor(restaurant.ID)

	row, err := env.inventory.AdjustStock(item.ID, 12, "Stocktake", staff)
	require.NoError(t, err)
	assert.Equal(t, model.TxAdjustment, row.Type)
	assert.Equal(t, -18, row.QuantityChange) // delta is recorded, target is applied
	assert.Equal(t, 12, row.BalanceAfter)
	assert.Equal(t, 12, env.reloadItem(t, item.ID).Quantity)

	// Adjusting upward works the same way
	row, err = env.inventory.AdjustStock(item.ID, 40, "", staff)
	require.NoError(t, err)
	assert.Equal(t, 28, row.QuantityChange)
	assert.Equal(t, "Manual adjustment", row.Reason)
	assert.Equal(t, 40, env.reloadItem(t, item.ID).Quantity)
}

func TestAdjustStockNegativeRejected(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	item := env.seedItem(t, restaurant.ID, "Sugar", 5, 2)
	staff := staffActor(restaurant.ID)

	_, err := env.inventory.AdjustStock(item.ID, -1, "", staff)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransferStock(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	src := env.seedItem(t, restaurant.ID, "Olive Oil Bar", 20, 2)
	dst := env.seedItem(t, restaurant.ID, "Olive Oil Kitchen", 3, 2)
	staff := staffActor(restaurant.ID)

	result, err := env.inventory.TransferStock(&TransferStockRequest{
		FromItemID: src.ID.String(),
		ToItemID:   dst.ID.String(),
		Quantity:   7,
		Reason:     "Rebalance",
	}, staff)
	require.NoError(t, err)

	assert.Equal(t, 13, result.FromItem.Quantity)
	assert.Equal(t, 10, result.ToItem.Quantity)

	// Paired ledger rows reference each other's item
	assert.Equal(t, model.TxOut, result.FromTransaction.Type)
	assert.Equal(t, -7, result.FromTransaction.QuantityChange)
	assert.Equal(t, "TRANSFER_TO_"+dst.ID.String(), result.FromTransaction.ReferenceID)
	assert.Equal(t, model.TxIn, result.ToTransaction.Type)
	assert.Equal(t, 7, result.ToTransaction.QuantityChange)
	assert.Equal(t, "TRANSFER_FROM_"+src.ID.String(), result.ToTransaction.ReferenceID)

	// Stock is conserved across the pair
	total := env.reloadItem(t, src.ID).Quantity + env.reloadItem(t, dst.ID).Quantity
	assert.Equal(t, 23, total)
}

func TestTransferStockInsufficientLeavesBothUntouched(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	src := env.seedItem(t, restaurant.ID, "Butter A", 5, 1)
	dst := env.seedItem(t, restaurant.ID, "Butter B", 5, 1)
	staff := staffActor(restaurant.ID)

	_, err := env.inventory.TransferStock(&TransferStockRequest{
		FromItemID: src.ID.String(),
		ToItemID:   dst.ID.String(),
		Quantity:   6,
	}, staff)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)

	assert.Equal(t, 5, env.reloadItem(t, src.ID).Quantity)
	assert.Equal(t, 5, env.reloadItem(t, dst.ID).Quantity)
	assert.Empty(t, env.ledgerFor(t, src.ID))
	assert.Empty(t, env.ledgerFor(t, dst.ID))
}

func TestTransferStockToItself(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	item := env.seedItem(t, restaurant.ID, "Salt", 10, 1)
	staff := staffActor(restaurant.ID)

	_, err := env.inventory.TransferStock(&TransferStockRequest{
		FromItemID: item.ID.String(),
		ToItemID:   item.ID.String(),
		Quantity:   1,
	}, staff)
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
}

func TestTransferStockCrossRestaurant(t *testing.T) {
	env := newTestEnv(t)
	restaurantA := env.seedRestaurant(t)
	restaurantB := env.seedRestaurant(t)
	src := env.seedItem(t, restaurantA.ID, "Wine", 10, 1)
	dst := env.seedItem(t, restaurantB.ID, "Wine", 2, 1)
	staff := staffActor(restaurantA.ID)

	// Staff cannot move stock across restaurants
	_, err := env.inventory.TransferStock(&TransferStockRequest{
		FromItemID: src.ID.String(),
		ToItemID:   dst.ID.String(),
		Quantity:   3,
	}, staff)
	assert.ErrorIs(t, err, apperr.ErrCrossRestaurantTransfer)

	// Admins can
	_, err = env.inventory.TransferStock(&TransferStockRequest{
		FromItemID: src.ID.String(),
		ToItemID:   dst.ID.String(),
		Quantity:   3,
	}, adminActor())
	assert.NoError(t, err)
}

func TestInventoryScopeChecks(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	other := env.seedRestaurant(t)
	item := env.seedItem(t, restaurant.ID, "Pepper", 10, 1)
	foreignStaff := staffActor(other.ID)

	_, err := env.inventory.GetItem(item.ID, foreignStaff)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.inventory.ApplyStockTransaction(item.ID, &StockTransactionRequest{
		Quantity: 1, Type: model.TxIn,
	}, foreignStaff)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	customer := customerActor()
	_, err = env.inventory.ListItems(restaurant.ID, customer)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestLowStockAlertNotifiesOwner(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	item := env.seedItem(t, restaurant.ID, "Cream", 50, 10)
	staff := staffActor(restaurant.ID)

	_, err := env.inventory.ApplyStockTransaction(item.ID, &StockTransactionRequest{
		Quantity: 45, Type: model.TxOut,
	}, staff)
	require.NoError(t, err)

	notifications, err := env.notificationRepo.FindByUser(restaurant.OwnerID, true)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotifLowStock, notifications[0].Type)
}
