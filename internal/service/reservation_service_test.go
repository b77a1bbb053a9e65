package service

import (
	"testing"

	"go-restaurant-ws/internal/apperr"
	"go-restaurant-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateReservation(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)
	staff := staffActor(restaurant.ID)

	tableID := table.ID.String()
	req := &CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         &tableID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:30",
		GuestCount:      3,
	}

	reservation, err := env.reservations.CreateReservation(req, staff)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationPending, reservation.Status)
	assert.Equal(t, model.DefaultReservationDuration, reservation.Duration)
	assert.Contains(t, reservation.ReservationNumber, "RSV-")

	// Assigning a table marks it RESERVED
	assert.Equal(t, model.TableReserved, env.reloadTable(t, table.ID).Status)
}

func TestCreateReservationConflicts(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)
	staff := staffActor(restaurant.ID)
	tableID := table.ID.String()

	book := func(timeStr string, duration int) (*model.Reservation, error) {
		return env.reservations.CreateReservation(&CreateReservationRequest{
			RestaurantID:    restaurant.ID.String(),
			TableID:         &tableID,
			ReservationType: model.ReservationTable,
			ReservationDate: "2026-09-01",
			ReservationTime: timeStr,
			Duration:        duration,
			GuestCount:      2,
		}, staff)
	}

	_, err := book("18:00", 120)
	require.NoError(t, err)

	cases := []struct {
		name     string
		time     string
		duration int
		wantErr  error
	}{
		{"identical slot", "18:00", 120, apperr.ErrTableUnavailable},
		{"overlapping start", "19:00", 120, apperr.ErrTableUnavailable},
		{"contained window", "18:30", 30, apperr.ErrTableUnavailable},
		{"ends before", "16:00", 120, nil},
		{"starts at end boundary", "20:00", 60, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := book(tc.time, tc.duration)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateReservationOnDifferentDateDoesNotConflict(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)
	staff := staffActor(restaurant.ID)
	tableID := table.ID.String()

	for _, date := range []string{"2026-09-01", "2026-09-02"} {
		_, err := env.reservations.CreateReservation(&CreateReservationRequest{
			RestaurantID:    restaurant.ID.String(),
			TableID:         &tableID,
			ReservationType: model.ReservationTable,
			ReservationDate: date,
			ReservationTime: "18:00",
			GuestCount:      2,
		}, staff)
		require.NoError(t, err)
	}
}

func TestCreateReservationCapacityExceeded(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 2)
	staff := staffActor(restaurant.ID)
	tableID := table.ID.String()

	_, err := env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         &tableID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      5,
	}, staff)
	assert.ErrorIs(t, err, apperr.ErrCapacityExceeded)
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
}

func TestCreateReservationValidation(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)
	staff := staffActor(restaurant.ID)
	tableID := table.ID.String()

	base := CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         &tableID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      2,
	}

	t.Run("bad time format", func(t *testing.T) {
		req := base
		req.ReservationTime = "25:99"
		_, err := env.reservations.CreateReservation(&req, staff)
		assert.ErrorIs(t, err, ErrValidation)
	})
	t.Run("bad date format", func(t *testing.T) {
		req := base
		req.ReservationDate = "01-09-2026"
		_, err := env.reservations.CreateReservation(&req, staff)
		assert.ErrorIs(t, err, ErrValidation)
	})
	t.Run("table reservation without table", func(t *testing.T) {
		req := base
		req.TableID = nil
		_, err := env.reservations.CreateReservation(&req, staff)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestCustomerReservationsForcedPending(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)
	customer := customerActor()
	tableID := table.ID.String()

	reservation, err := env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         &tableID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      2,
		Status:          model.ReservationConfirmed, // must be ignored
	}, customer)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationPending, reservation.Status)
	assert.Equal(t, customer.ID, reservation.UserID)
}

func TestCustomerCannotBookForOthers(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)
	customer := customerActor()
	other := customerActor()
	tableID := table.ID.String()

	_, err := env.reservations.CreateReservation(&CreateReservationRequest{
		UserID:          other.ID.String(),
		RestaurantID:    restaurant.ID.String(),
		TableID:         &tableID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      2,
	}, customer)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestReservationStatusLifecycle(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)
	staff := staffActor(restaurant.ID)
	tableID := table.ID.String()

	reservation, err := env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         &tableID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      2,
	}, staff)
	require.NoError(t, err)

	// PENDING -> COMPLETED skips CONFIRMED and must fail
	_, err = env.reservations.UpdateStatus(reservation.ID, model.ReservationCompleted, staff)
	assert.ErrorIs(t, err, apperr.ErrInvalidStatusTransition)

	confirmed, err := env.reservations.UpdateStatus(reservation.ID, model.ReservationConfirmed, staff)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationConfirmed, confirmed.Status)
	assert.Equal(t, model.TableReserved, env.reloadTable(t, table.ID).Status)

	completed, err := env.reservations.UpdateStatus(reservation.ID, model.ReservationCompleted, staff)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCompleted, completed.Status)
	// Terminal states free the table
	assert.Equal(t, model.TableAvailable, env.reloadTable(t, table.ID).Status)

	// Terminal is terminal
	_, err = env.reservations.UpdateStatus(reservation.ID, model.ReservationConfirmed, staff)
	assert.ErrorIs(t, err, apperr.ErrInvalidStatusTransition)
}

func TestCancelReservationFreesTable(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)
	staff := staffActor(restaurant.ID)
	tableID := table.ID.String()

	reservation, err := env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         &tableID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      2,
	}, staff)
	require.NoError(t, err)

	cancelled, err := env.reservations.CancelReservation(reservation.ID, staff)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, cancelled.Status)
	assert.Equal(t, model.TableAvailable, env.reloadTable(t, table.ID).Status)

	// Cancelled slot no longer blocks the table
	_, err = env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         &tableID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      2,
	}, staff)
	assert.NoError(t, err)
}

func TestUpdateReservationExcludesSelfFromConflictCheck(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)
	staff := staffActor(restaurant.ID)
	tableID := table.ID.String()

	reservation, err := env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         &tableID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      2,
	}, staff)
	require.NoError(t, err)

	// Shifting its own slot by 30 minutes overlaps itself only, so it must pass
	updated, err := env.reservations.UpdateReservation(reservation.ID, &UpdateReservationRequest{
		ReservationTime: strPtr("18:30"),
	}, staff)
	require.NoError(t, err)
	assert.Equal(t, "18:30", updated.ReservationTime)
}

func TestUpdateReservationMovesTables(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	tableA := env.seedTable(t, restaurant.ID, "A", 4)
	tableB := env.seedTable(t, restaurant.ID, "B", 4)
	staff := staffActor(restaurant.ID)
	tableAID := tableA.ID.String()

	reservation, err := env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         &tableAID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      2,
	}, staff)
	require.NoError(t, err)

	tableBID := tableB.ID.String()
	_, err = env.reservations.UpdateReservation(reservation.ID, &UpdateReservationRequest{
		TableID: &tableBID,
	}, staff)
	require.NoError(t, err)

	assert.Equal(t, model.TableAvailable, env.reloadTable(t, tableA.ID).Status)
	assert.Equal(t, model.TableReserved, env.reloadTable(t, tableB.ID).Status)
}

func TestUpdateTerminalReservationFails(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)
	staff := staffActor(restaurant.ID)
	tableID := table.ID.String()

	reservation, err := env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         &tableID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      2,
	}, staff)
	require.NoError(t, err)
	_, err = env.reservations.CancelReservation(reservation.ID, staff)
	require.NoError(t, err)

	_, err = env.reservations.UpdateReservation(reservation.ID, &UpdateReservationRequest{
		ReservationTime: strPtr("20:00"),
	}, staff)
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
}

func TestFullRestaurantReservationAggregatesCapacity(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	env.seedTable(t, restaurant.ID, "A", 4)
	env.seedTable(t, restaurant.ID, "B", 6)
	staff := staffActor(restaurant.ID)

	// 10 seats total: exactly 10 fits, 11 does not
	_, err := env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		ReservationType: model.ReservationFullRestaurant,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      10,
	}, staff)
	require.NoError(t, err)

	_, err = env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		ReservationType: model.ReservationFullRestaurant,
		ReservationDate: "2026-09-02",
		ReservationTime: "18:00",
		GuestCount:      11,
	}, staff)
	assert.ErrorIs(t, err, apperr.ErrCapacityExceeded)
}

func TestFindAvailableTables(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	small := env.seedTable(t, restaurant.ID, "S", 2)
	big := env.seedTable(t, restaurant.ID, "B", 8)
	staff := staffActor(restaurant.ID)
	smallID := small.ID.String()

	_, err := env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         &smallID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      2,
	}, staff)
	require.NoError(t, err)

	// The small table is now RESERVED and excluded; only the big one remains
	available, err := env.reservations.FindAvailableTables(restaurant.ID, "2026-09-01", "19:00", 2, 60)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, big.ID, available[0].ID)

	// Capacity filter excludes too-small tables
	available, err = env.reservations.FindAvailableTables(restaurant.ID, "2026-09-02", "18:00", 5, 60)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, big.ID, available[0].ID)
}

func TestReservationScopeChecks(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedRestaurant(t)
	otherRestaurant := env.seedRestaurant(t)
	table := env.seedTable(t, restaurant.ID, "T1", 4)
	staff := staffActor(restaurant.ID)
	foreignStaff := staffActor(otherRestaurant.ID)
	tableID := table.ID.String()

	reservation, err := env.reservations.CreateReservation(&CreateReservationRequest{
		RestaurantID:    restaurant.ID.String(),
		TableID:         &tableID,
		ReservationType: model.ReservationTable,
		ReservationDate: "2026-09-01",
		ReservationTime: "18:00",
		GuestCount:      2,
	}, staff)
	require.NoError(t, err)

	_, err = env.reservations.GetReservation(reservation.ID, foreignStaff)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.reservations.UpdateStatus(reservation.ID, model.ReservationConfirmed, foreignStaff)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	otherCustomer := customerActor()
	_, err = env.reservations.GetReservation(reservation.ID, otherCustomer)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
