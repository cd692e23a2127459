package store

import (
	"testing"
	"time"

	"car_rental/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarStore_CreateStoresNullForNonNumeric(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.Cars.Create(ctx, domain.CarForm{
		"carNumber":      "ABC-1",
		"rentPerWeek":    "300",
		"amountReceiver": "NaN",
		"expense":        "abc",
		"rented":         "false",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.Cars.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RentPerWeek)
	assert.Equal(t, 300.0, *got.RentPerWeek)
	assert.Nil(t, got.AmountReceiver)
	assert.Nil(t, got.Expense)
	assert.False(t, got.Rented)
}

func TestCarStore_CreateValidationWritesNothing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Cars.Create(ctx, domain.CarForm{"rentPerWeek": -1.0})
	require.ErrorIs(t, err, domain.ErrValidation)

	cars, err := s.Cars.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cars)
}

func TestCarStore_ListNewestFirst(t *testing.T) {
	s, gdb := newTestStore(t)
	base := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	for i, number := range []string{"old", "newest", "middle"} {
		offset := map[int]int{0: 0, 1: 2, 2: 1}[i]
		require.NoError(t, gdb.Create(&domain.Car{CarNumber: number, CreatedAt: base.AddDate(0, 0, offset)}).Error)
	}

	cars, err := s.Cars.List(ctx)
	require.NoError(t, err)

	require.Len(t, cars, 3)
	assert.Equal(t, "newest", cars[0].CarNumber)
	assert.Equal(t, "middle", cars[1].CarNumber)
	assert.Equal(t, "old", cars[2].CarNumber)
}

func TestCarStore_ListByRented(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Cars.Create(ctx, domain.CarForm{"carNumber": "FREE", "rented": false})
	require.NoError(t, err)
	_, err = s.Cars.Create(ctx, domain.CarForm{"carNumber": "OUT", "rented": true})
	require.NoError(t, err)

	available, err := s.Cars.ListByRented(ctx, false)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "FREE", available[0].CarNumber)

	rented, err := s.Cars.ListByRented(ctx, true)
	require.NoError(t, err)
	require.Len(t, rented, 1)
	assert.Equal(t, "OUT", rented[0].CarNumber)
}

func TestCarStore_UpdateWritesOnlyProvidedFields(t *testing.T) {
	s, _ := newTestStore(t)
	car, err := s.Cars.Create(ctx, domain.CarForm{"carNumber": "ABC-1", "rentPerWeek": 300.0, "rented": false})
	require.NoError(t, err)

	updated, err := s.Cars.Update(ctx, car.ID, domain.CarForm{
		"rented":         true,
		"driverId":       "D1",
		"week":           "2",
		"amountReceiver": 150.0,
		"rentedDate":     "2026-03-10",
	})
	require.NoError(t, err)
	assert.True(t, updated.Rented)
	assert.Equal(t, "ABC-1", updated.CarNumber)

	got, err := s.Cars.Get(ctx, car.ID)
	require.NoError(t, err)
	assert.True(t, got.Rented)
	assert.Equal(t, "D1", got.DriverID)
	require.NotNil(t, got.Week)
	assert.Equal(t, 2, *got.Week)
	require.NotNil(t, got.AmountReceiver)
	assert.Equal(t, 150.0, *got.AmountReceiver)
	require.NotNil(t, got.RentPerWeek)
	assert.Equal(t, 300.0, *got.RentPerWeek)

	// Flipping rented off leaves the driver and date in place
	_, err = s.Cars.Update(ctx, car.ID, domain.CarForm{"rented": false, "amountReceiver": nil})
	require.NoError(t, err)
	got, err = s.Cars.Get(ctx, car.ID)
	require.NoError(t, err)
	assert.False(t, got.Rented)
	assert.Equal(t, "D1", got.DriverID)
	assert.Equal(t, "2026-03-10", got.RentedDate)
	assert.Nil(t, got.AmountReceiver)
}

func TestCarStore_UpdateMissing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Cars.Update(ctx, 42, domain.CarForm{"rented": true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCarStore_Delete(t *testing.T) {
	s, _ := newTestStore(t)
	car, err := s.Cars.Create(ctx, domain.CarForm{"carNumber": "ABC-1"})
	require.NoError(t, err)

	require.NoError(t, s.Cars.Delete(ctx, car.ID))

	_, err = s.Cars.Get(ctx, car.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Cars.Delete(ctx, car.ID), domain.ErrNotFound)
}

func TestCarStore_ListByDriver(t *testing.T) {
	s, _ := newTestStore(t)
	for _, id := range []string{"12345", "999", "12345"} {
		_, err := s.Cars.Create(ctx, domain.CarForm{"driverId": id, "rented": true})
		require.NoError(t, err)
	}

	cars, err := s.Cars.ListByDriver(ctx, "12345")
	require.NoError(t, err)
	assert.Len(t, cars, 2)
	assert.Greater(t, cars[0].ID, cars[1].ID)

	none, err := s.Cars.ListByDriver(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
