package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/dinehub-api/internal/domain/enum"
)

func TestCheckSufficiencyReportsShortages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	beef := env.seedMaterial(t, "beef", 100)
	onion := env.seedMaterial(t, "onion", 50)

	shortages, err := env.inventory.CheckSufficiency(ctx, map[uuid.UUID]float64{
		beef.ID:  150,
		onion.ID: 30,
	})
	require.NoError(t, err)
	require.Len(t, shortages, 1)
	assert.Equal(t, "beef", shortages[0].Name)
	assert.Equal(t, float64(150), shortages[0].Required)
	assert.Equal(t, float64(100), shortages[0].Available)
}

func TestComputeRequirementAggregates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dough := env.seedMaterial(t, "dough", 1000)
	dishA := env.seedDish(t, "Small Pizza", 30000, dough, 200)
	dishB := env.seedDish(t, "Large Pizza", 50000, dough, 350)

	requirement, err := env.inventory.ComputeRequirement(ctx, []RequestedItem{
		{DishID: dishA.ID, Quantity: 2},
		{DishID: dishB.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(750), requirement[dough.ID])
}

func TestDeductSkipsVoidedLines(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	env.seedStaff(t, "manager", "pin-1111", "void-items")
	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 6)
	meat := env.seedMaterial(t, "meat", 500)
	dish := env.seedDish(t, "Kebab", 25000, meat, 100)

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
	var single uuid.UUID
	for _, line := range lines {
		if line.Quantity == 1 {
			single = line.ID
		}
	}
	require.NoError(t, env.orders.VoidItem(ctx, order.ID, single, "spilled", "pin-1111", staff.ID))

	require.NoError(t, env.inventory.Deduct(ctx, order.ID))

	// Only the two live units consumed stock
	mat, err := env.materialRepo.GetByID(ctx, meat.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(300), mat.OnHand)
}

func TestAddStockRecordsIntake(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	salt := env.seedMaterial(t, "salt", 10)

	require.NoError(t, env.inventory.AddStock(ctx, salt.ID, 40))

	mat, err := env.materialRepo.GetByID(ctx, salt.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(50), mat.OnHand)

	assert.Error(t, env.inventory.AddStock(ctx, salt.ID, -5))
}

func TestVoidedLineExcludedFromKitchenWork(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 6)
	dish := env.seedDish(t, "Toast", 7000, nil, 0)

	order, _ := env.openTab(t, table, dish, 1, staff.ID)
	lines, err := env.lineRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.NoError(t, env.lineRepo.UpdateStatus(ctx, lines[0].ID, enum.LineStatusVoided))

	// A voided line cannot move through the pipeline
	err = env.orders.UpdateLineStatus(ctx, order.ID, lines[0].ID, enum.LineStatusInProgress)
	assert.Error(t, err)
}
