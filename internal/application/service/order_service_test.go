package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/pkg/apperror"
)

func TestCreateOrderOpensTab(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "10")
	ctx := context.Background()

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 5)
	flour := env.seedMaterial(t, "flour", 1000)
	dish := env.seedDish(t, "Margherita", 40000, flour, 200)

	order, invoice := env.openTab(t, table, dish, 2, staff.ID)

	assert.Equal(t, enum.OrderStatusSent, order.Status)
	assert.Equal(t, int64(80000), invoice.Subtotal)

	// Admission only checks stock, settlement deducts it
	mat, err := env.materialRepo.GetByID(ctx, flour.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(1000), mat.OnHand)

	updated, err := env.tableRepo.GetByID(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusOccupied, updated.Status)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "10")
	ctx := context.Background()

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 5)
	cheese := env.seedMaterial(t, "cheese", 5)
	dish := env.seedDish(t, "Quattro Formaggi", 50000, cheese, 5)

	_, err := env.orders.Create(ctx, CreateOrderInput{
		TableID:   table.ID,
		Items:     []OrderItemInput{{DishID: dish.ID, Quantity: 2}},
		CreatedBy: staff.ID,
	})
	require.Error(t, err)

	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	assert.NotNil(t, appErr.Details)

	// Nothing was admitted and stock is untouched
	mat, err := env.materialRepo.GetByID(ctx, cheese.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(5), mat.OnHand)

	active, err := env.orderRepo.GetActiveByTable(ctx, table.ID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestCreateOrderAppendsToActiveTab(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 5)
	dish := env.seedDish(t, "Lemonade", 8000, nil, 0)

	first, _ := env.openTab(t, table, dish, 1, staff.ID)

	second, err := env.orders.Create(ctx, CreateOrderInput{
		TableID:   table.ID,
		Items:     []OrderItemInput{{DishID: dish.ID, Quantity: 2}},
		CreatedBy: staff.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	lines, err := env.lineRepo.GetByOrderID(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	invoice, err := env.invoiceRepo.GetOpenByOrder(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(24000), invoice.Subtotal)
}

func TestVoidItemWithManagerPIN(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	env.seedStaff(t, "manager", "pin-4421", "void-items")
	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 2)
	dish := env.seedDish(t, "Tiramisu", 18000, nil, 0)

	order, err := env.orders.Create(ctx, CreateOrderInput{
		TableID: table.ID,
		Items: []OrderItemInput{
			{DishID: dish.ID, Quantity: 1},
			{DishID: dish.ID, Quantity: 2},
		},
		CreatedBy: staff.ID,
	})
	require.NoError(t, err)

	lines, err := env.lineRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	target := lines[0]

	// A wrong PIN is rejected before anything changes
	err = env.orders.VoidItem(ctx, order.ID, target.ID, "dropped plate", "wrong-pin", staff.ID)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)

	require.NoError(t, env.orders.VoidItem(ctx, order.ID, target.ID, "dropped plate", "pin-4421", staff.ID))

	voided, err := env.lineRepo.GetByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.LineStatusVoided, voided.Status)

	// The invoice no longer counts the voided line
	invoice, err := env.invoiceRepo.GetOpenByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(18000*3)-target.Total(), invoice.Subtotal)
}

func TestVoidServedLineRejected(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	env.seedStaff(t, "manager", "pin-4421", "void-items")
	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 2)
	dish := env.seedDish(t, "Espresso", 6000, nil, 0)

	order, _ := env.openTab(t, table, dish, 1, staff.ID)

	lines, err := env.lineRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.NoError(t, env.lineRepo.UpdateStatus(ctx, lines[0].ID, enum.LineStatusServed))

	err = env.orders.VoidItem(ctx, order.ID, lines[0].ID, "changed mind", "pin-4421", staff.ID)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestUpdateLineStatusStepByStep(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 3)
	dish := env.seedDish(t, "Ramen", 32000, nil, 0)

	order, _ := env.openTab(t, table, dish, 1, staff.ID)
	lines, err := env.lineRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	lineID := lines[0].ID

	// Skipping a stage is not allowed
	err = env.orders.UpdateLineStatus(ctx, order.ID, lineID, enum.LineStatusDone)
	assert.Error(t, err)

	require.NoError(t, env.orders.UpdateLineStatus(ctx, order.ID, lineID, enum.LineStatusInProgress))
	require.NoError(t, env.orders.UpdateLineStatus(ctx, order.ID, lineID, enum.LineStatusDone))
	require.NoError(t, env.orders.UpdateLineStatus(ctx, order.ID, lineID, enum.LineStatusServed))

	// Served is terminal for the kitchen pipeline
	err = env.orders.UpdateLineStatus(ctx, order.ID, lineID, enum.LineStatusServed+1)
	assert.Error(t, err)
}

func TestRemoveLineOnlyBeforePrep(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 3)
	dish := env.seedDish(t, "Gyoza", 15000, nil, 0)

	order, _ := env.openTab(t, table, dish, 1, staff.ID)
	lines, err := env.lineRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	lineID := lines[0].ID

	require.NoError(t, env.lineRepo.UpdateStatus(ctx, lineID, enum.LineStatusInProgress))

	_, err = env.orders.Update(ctx, order.ID, UpdateOrderInput{RemoveLineIDs: []uuid.UUID{lineID}})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestCancelOrderFreesTable(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 7)
	dish := env.seedDish(t, "Pad Thai", 28000, nil, 0)

	order, _ := env.openTab(t, table, dish, 1, staff.ID)

	require.NoError(t, env.orders.Cancel(ctx, order.ID))

	cancelled, err := env.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, cancelled.Status)

	freed, err := env.tableRepo.GetByID(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusEmpty, freed.Status)

	// Cancelling twice is an invalid transition
	assert.Error(t, env.orders.Cancel(ctx, order.ID))
}
