package service

import (
	"testing"
	"time"

	"go-restaurant-ws/internal/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowStockReport(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	env.seedItem(t, restaurant.ID, "Flour", 5, 10) // below threshold
	env.seedItem(t, restaurant.ID, "Rice", 50, 10) // healthy
	env.seedItem(t, restaurant.ID, "Salt", 10, 10) // exactly at threshold

	items, err := env.reports.LowStock(restaurant.ID, ownerActor(restaurant.ID))
	require.NoError(t, err)
	require.Len(t, items, 2)
	names := []string{items[0].Name, items[1].Name}
	assert.ElementsMatch(t, []string{"Flour", "Salt"}, names)
}

func TestExpiringSoonReport(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)

	soon := time.Now().Add(3 * 24 * time.Hour)
	far := time.Now().Add(30 * 24 * time.Hour)

	milk := env.seedItem(t, restaurant.ID, "Milk", 10, 1)
	milk.ExpiryDate = &soon
	require.NoError(t, env.db.Save(milk).Error)

	honey := env.seedItem(t, restaurant.ID, "Honey", 10, 1)
	honey.ExpiryDate = &far
	require.NoError(t, env.db.Save(honey).Error)

	env.seedItem(t, restaurant.ID, "Salt", 10, 1) // no expiry date

	items, err := env.reports.ExpiringSoon(restaurant.ID, ownerActor(restaurant.ID))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Milk", items[0].Name)
}

func TestValuationReport(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	env.seedItem(t, restaurant.ID, "Flour", 10, 1) // 10 * 100
	env.seedItem(t, restaurant.ID, "Rice", 5, 1)   // 5 * 100

	report, err := env.reports.Valuation(restaurant.ID, ownerActor(restaurant.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1500), report.TotalValue)
	assert.Equal(t, 2, report.ItemCount)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestStockMovementRejectsInvertedRange(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)

	now := time.Now()
	_, err := env.reports.StockMovement(restaurant.ID, now, now.Add(-time.Hour), ownerActor(restaurant.ID))
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
}

func TestReportScope(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	other := env.seedRestaurant(t)

	_, err := env.reports.Dashboard(restaurant.ID, customerActor())
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.reports.Dashboard(restaurant.ID, staffActor(other.ID))
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.reports.Dashboard(uuid.New(), adminActor())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
