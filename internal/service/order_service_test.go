package service

import (
	"strings"
	"testing"

	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) seedMenuItem(t *testing.T, restaurantID uuid.UUID, name string, price int64, available bool) *model.MenuItem {
	t.Helper()
	menu := &model.Menu{
		RestaurantID: restaurantID,
		Name:         "Dinner",
		IsActive:     true,
	}
	require.NoError(t, e.db.Create(menu).Error)
	item := &model.MenuItem{
		MenuID:      menu.ID,
		Name:        name,
		Price:       price,
		IsAvailable: available,
	}
	require.NoError(t, e.db.Create(item).Error)
	return item
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	pasta := env.seedMenuItem(t, restaurant.ID, "Pasta", 1500, true)
	wine := env.seedMenuItem(t, restaurant.ID, "House Wine", 600, true)
	customer := customerActor()

	order, err := env.orders.CreateOrder(&CreateOrderRequest{
		RestaurantID: restaurant.ID.String(),
		Items: []OrderItemRequest{
			{MenuItemID: pasta.ID.String(), Quantity: 2},
			{MenuItemID: wine.ID.String(), Quantity: 3},
		},
	}, customer)
	require.NoError(t, err)

	assert.Equal(t, model.OrderPending, order.Status)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Equal(t, int64(2*1500+3*600), order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Pasta", order.Items[0].Name)
	assert.Equal(t, int64(1500), order.Items[0].UnitPrice)

	// Later menu edits must not change the recorded total
	pasta.Price = 9999
	require.NoError(t, env.db.Save(pasta).Error)
	saved, err := env.orders.GetOrder(order.ID, customer)
	require.NoError(t, err)
	assert.Equal(t, int64(2*1500+3*600), saved.TotalAmount)
}

func TestCreateOrderUnavailableItem(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	soup := env.seedMenuItem(t, restaurant.ID, "Soup of Yesterday", 800, false)

	_, err := env.orders.CreateOrder(&CreateOrderRequest{
		RestaurantID: restaurant.ID.String(),
		Items:        []OrderItemRequest{{MenuItemID: soup.ID.String(), Quantity: 1}},
	}, customerActor())
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
}

func TestCreateOrderUnknownMenuItem(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)

	_, err := env.orders.CreateOrder(&CreateOrderRequest{
		RestaurantID: restaurant.ID.String(),
		Items:        []OrderItemRequest{{MenuItemID: uuid.New().String(), Quantity: 1}},
	}, customerActor())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateOrderRequiresItems(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)

	_, err := env.orders.CreateOrder(&CreateOrderRequest{
		RestaurantID: restaurant.ID.String(),
	}, customerActor())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	pasta := env.seedMenuItem(t, restaurant.ID, "Pasta", 1500, true)
	staff := staffActor(restaurant.ID)

	order, err := env.orders.CreateOrder(&CreateOrderRequest{
		RestaurantID: restaurant.ID.String(),
		Items:        []OrderItemRequest{{MenuItemID: pasta.ID.String(), Quantity: 1}},
	}, customerActor())
	require.NoError(t, err)

	// PENDING cannot jump straight to DELIVERED
	_, err = env.orders.UpdateStatus(order.ID, model.OrderDelivered, staff)
	assert.ErrorIs(t, err, apperr.ErrInvalidStatusTransition)

	for _, next := range []model.OrderStatus{model.OrderPreparing, model.OrderReady, model.OrderDelivered} {
		order, err = env.orders.UpdateStatus(order.ID, next, staff)
		require.NoError(t, err)
		assert.Equal(t, next, order.Status)
	}

	// DELIVERED is terminal
	_, err = env.orders.UpdateStatus(order.ID, model.OrderCancelled, staff)
	assert.ErrorIs(t, err, apperr.ErrInvalidStatusTransition)
}

func TestOrderStatusUpdateScope(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	other := env.seedRestaurant(t)
	pasta := env.seedMenuItem(t, restaurant.ID, "Pasta", 1500, true)

	order, err := env.orders.CreateOrder(&CreateOrderRequest{
		RestaurantID: restaurant.ID.String(),
		Items:        []OrderItemRequest{{MenuItemID: pasta.ID.String(), Quantity: 1}},
	}, customerActor())
	require.NoError(t, err)

	_, err = env.orders.UpdateStatus(order.ID, model.OrderPreparing, staffActor(other.ID))
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// Drivers move orders without any restaurant binding
	_, err = env.orders.UpdateStatus(order.ID, model.OrderPreparing, driverActor())
	assert.NoError(t, err)
}

func TestGetOrderHiddenFromOtherCustomers(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	pasta := env.seedMenuItem(t, restaurant.ID, "Pasta", 1500, true)
	owner := customerActor()

	order, err := env.orders.CreateOrder(&CreateOrderRequest{
		RestaurantID: restaurant.ID.String(),
		Items:        []OrderItemRequest{{MenuItemID: pasta.ID.String(), Quantity: 1}},
	}, owner)
	require.NoError(t, err)

	_, err = env.orders.GetOrder(order.ID, customerActor())
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.orders.GetOrder(order.ID, owner)
	assert.NoError(t, err)
}
