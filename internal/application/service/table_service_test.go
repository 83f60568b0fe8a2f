package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/pkg/apperror"
)

func TestCreateTableRejectsDuplicateNumber(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	table, err := env.tables.Create(ctx, 12, 4)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusEmpty, table.Status)

	_, err = env.tables.Create(ctx, 12, 2)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
}

func TestTableCannotBeFreedWithOpenOrder(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 3)
	dish := env.seedDish(t, "Pasta", 30000, nil, 0)
	env.openTab(t, table, dish, 1, staff.ID)

	_, err := env.tables.UpdateStatus(ctx, table.ID, enum.TableStatusEmpty)
	assert.Error(t, err)

	err = env.tables.Delete(ctx, table.ID)
	assert.Error(t, err)

	// Waitstaff can still flag the table for the floor flow
	updated, err := env.tables.UpdateStatus(ctx, table.ID, enum.TableStatusAwaitingPayment)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusAwaitingPayment, updated.Status)
}

func TestReservationConflictWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	table := env.seedTable(t, 8)
	slot := time.Now().Add(2 * time.Hour)

	first, err := env.reservations.Create(ctx, CreateReservationInput{
		TableID:    table.ID,
		GuestName:  "Dewi",
		GuestPhone: "0811",
		PartySize:  2,
		ReservedAt: slot,
	})
	require.NoError(t, err)

	// One hour later is inside the 90 minute window
	_, err = env.reservations.Create(ctx, CreateReservationInput{
		TableID:    table.ID,
		GuestName:  "Budi",
		PartySize:  2,
		ReservedAt: slot.Add(time.Hour),
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
	assert.NotNil(t, appErr.Details)

	// Two hours later is clear of the window
	_, err = env.reservations.Create(ctx, CreateReservationInput{
		TableID:    table.ID,
		GuestName:  "Budi",
		PartySize:  2,
		ReservedAt: slot.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	_ = first
}

func TestReservationPartySizeCapacityCheck(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	table := env.seedTable(t, 9)

	_, err := env.reservations.Create(ctx, CreateReservationInput{
		TableID:    table.ID,
		GuestName:  "Group",
		PartySize:  10,
		ReservedAt: time.Now().Add(3 * time.Hour),
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, 422, appErr.Code)
}

func TestReservationNearTermMarksTableReserved(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	table := env.seedTable(t, 10)

	res, err := env.reservations.Create(ctx, CreateReservationInput{
		TableID:    table.ID,
		GuestName:  "Sari",
		PartySize:  2,
		ReservedAt: time.Now().Add(30 * time.Minute),
	})
	require.NoError(t, err)

	board, err := env.tables.Get(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusReserved, board.Status)

	require.NoError(t, env.reservations.Cancel(ctx, res.ID))

	board, err = env.tables.Get(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusEmpty, board.Status)

	assert.Error(t, env.reservations.Cancel(ctx, res.ID))
}
