package service

import (
	"testing"

	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTableDuplicateNumber(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	owner := ownerActor(restaurant.ID)

	err := env.tables.CreateTable(&model.Table{
		RestaurantID: restaurant.ID,
		TableNumber:  "T1",
		Capacity:     4,
	}, owner)
	require.NoError(t, err)

	err = env.tables.CreateTable(&model.Table{
		RestaurantID: restaurant.ID,
		TableNumber:  "T1",
		Capacity:     2,
	}, owner)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestCreateTableSameNumberDifferentRestaurant(t *testing.T) {
	env := newTestEnv(t)
	restaurantA := env.seedRestaurant(t)
	restaurantB := env.seedRestaurant(t)

	err := env.tables.CreateTable(&model.Table{
		RestaurantID: restaurantA.ID,
		TableNumber:  "T1",
		Capacity:     4,
	}, ownerActor(restaurantA.ID))
	require.NoError(t, err)

	// Numbers are scoped per restaurant
	err = env.tables.CreateTable(&model.Table{
		RestaurantID: restaurantB.ID,
		TableNumber:  "T1",
		Capacity:     4,
	}, ownerActor(restaurantB.ID))
	assert.NoError(t, err)
}

func TestCreateTableDefaultsToAvailable(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)

	table := &model.Table{
		RestaurantID: restaurant.ID,
		TableNumber:  "T9",
		Capacity:     2,
	}
	require.NoError(t, env.tables.CreateTable(table, ownerActor(restaurant.ID)))
	assert.Equal(t, model.TableAvailable, table.Status)
}

func TestCreateTableScope(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	other := env.seedRestaurant(t)

	err := env.tables.CreateTable(&model.Table{
		RestaurantID: restaurant.ID,
		TableNumber:  "T1",
		Capacity:     4,
	}, ownerActor(other.ID))
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	err = env.tables.CreateTable(&model.Table{
		RestaurantID: restaurant.ID,
		TableNumber:  "T1",
		Capacity:     4,
	}, customerActor())
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestDeleteTableWithActiveReservations(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)
	staff := staffActor(restaurant.ID)

	_, err := env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         strPtr(table.ID.String()),
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "19:00",
		GuestCount:      2,
	}, staff)
	require.NoError(t, err)

	err = env.tables.DeleteTable(table.ID, staff)
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)

	// Still there
	_, err = env.tables.GetTable(table.ID)
	assert.NoError(t, err)
}

func TestDeleteTableWithoutReservations(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)

	require.NoError(t, env.tables.DeleteTable(table.ID, ownerActor(restaurant.ID)))

	_, err := env.tables.GetTable(table.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateTableRenameCollision(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	env.seedTable(t, restaurant.ID, "T1", 4)
	table := env.seedTable(t, restaurant.ID, "T2", 4)
	owner := ownerActor(restaurant.ID)

	rename := "T1"
	_, err := env.tables.UpdateTable(table.ID, &UpdateTableRequest{TableNumber: &rename}, owner)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	capacity := 0
	_, err = env.tables.UpdateTable(table.ID, &UpdateTableRequest{Capacity: &capacity}, owner)
	assert.ErrorIs(t, err, ErrValidation)
}
