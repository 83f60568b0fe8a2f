package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
)

func TestComputeTotals(t *testing.T) {
	lines := []entity.OrderLine{
		{Quantity: 2, UnitPrice: 10000},
		{Quantity: 1, UnitPrice: 5000},
		{Quantity: 3, UnitPrice: 9999, Status: enum.LineStatusVoided},
	}

	subtotal, vat, grandTotal := ComputeTotals(lines, 5000, 10)

	assert.Equal(t, int64(25000), subtotal)
	assert.Equal(t, int64(2000), vat)
	assert.Equal(t, int64(22000), grandTotal)
	assert.Equal(t, subtotal-5000+vat, grandTotal)
}

func TestComputeTotalsZeroDiscount(t *testing.T) {
	lines := []entity.OrderLine{{Quantity: 1, UnitPrice: 55000}}

	subtotal, vat, grandTotal := ComputeTotals(lines, 0, 0)

	assert.Equal(t, int64(55000), subtotal)
	assert.Equal(t, int64(0), vat)
	assert.Equal(t, int64(55000), grandTotal)
}

func TestCreateFromOrderTotals(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "10")

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "Grilled Chicken", 10000, nil, 0)

	_, invoice := env.openTab(t, table, dish, 2, staff.ID)

	assert.Equal(t, enum.InvoiceStatusOpen, invoice.Status)
	assert.Equal(t, int64(20000), invoice.Subtotal)
	assert.Equal(t, int64(2000), invoice.VAT)
	assert.Equal(t, int64(22000), invoice.GrandTotal)
	assert.Equal(t, invoice.Subtotal-invoice.Discount+invoice.VAT, invoice.GrandTotal)
}

func TestSyncWithOrderIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "10")
	ctx := context.Background()

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "Fried Rice", 10000, nil, 0)

	order, _ := env.openTab(t, table, dish, 2, staff.ID)

	lines, err := env.lineRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	require.NoError(t, env.lineRepo.UpdateStatus(ctx, lines[0].ID, enum.LineStatusVoided))

	require.NoError(t, env.invoices.SyncWithOrder(ctx, order.ID))
	invoice, err := env.invoiceRepo.GetOpenByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), invoice.Subtotal)
	assert.Equal(t, int64(0), invoice.GrandTotal)

	// A second sync must not change anything
	require.NoError(t, env.invoices.SyncWithOrder(ctx, order.ID))
	again, err := env.invoiceRepo.GetOpenByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.Subtotal, again.Subtotal)
	assert.Equal(t, invoice.VAT, again.VAT)
	assert.Equal(t, invoice.GrandTotal, again.GrandTotal)
}

func TestSplitByPeopleSumsExactly(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "Seafood Platter", 55000, nil, 0)

	_, invoice := env.openTab(t, table, dish, 1, staff.ID)
	require.Equal(t, int64(55000), invoice.GrandTotal)

	shares, err := env.invoices.SplitByPeople(ctx, invoice.ID, 3, staff.ID)
	require.NoError(t, err)
	require.Len(t, shares, 3)

	// The original bill absorbs the rounding remainder
	assert.Equal(t, invoice.ID, shares[0].ID)
	assert.Equal(t, int64(18334), shares[0].GrandTotal)
	assert.Equal(t, int64(18333), shares[1].GrandTotal)
	assert.Equal(t, int64(18333), shares[2].GrandTotal)

	var sum int64
	for _, share := range shares {
		sum += share.GrandTotal
	}
	assert.Equal(t, int64(55000), sum)
}

func TestSplitByPeopleRejectsSinglePerson(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "Soup", 10000, nil, 0)

	_, invoice := env.openTab(t, table, dish, 1, staff.ID)

	_, err := env.invoices.SplitByPeople(context.Background(), invoice.ID, 1, staff.ID)
	assert.Error(t, err)
}

func TestSplitByItemsConservesLines(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 1)
	dishA := env.seedDish(t, "Salad", 10000, nil, 0)
	dishB := env.seedDish(t, "Steak", 20000, nil, 0)

	order, err := env.orders.Create(ctx, CreateOrderInput{
		TableID: table.ID,
		Items: []OrderItemInput{
			{DishID: dishA.ID, Quantity: 1},
			{DishID: dishB.ID, Quantity: 1},
		},
		CreatedBy: staff.ID,
	})
	require.NoError(t, err)

	invoice, err := env.invoiceRepo.GetOpenByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, int64(30000), invoice.Subtotal)

	lines, err := env.lineRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	var steakLine entity.OrderLine
	for _, line := range lines {
		if line.DishID == dishB.ID {
			steakLine = line
		}
	}

	newInvoice, err := env.invoices.SplitByItems(ctx, invoice.ID, []uuid.UUID{steakLine.ID}, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), newInvoice.Subtotal)

	original, err := env.invoiceRepo.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), original.Subtotal)

	// Line count is conserved across the two orders
	remaining, err := env.lineRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	moved, err := env.lineRepo.GetByOrderID(ctx, newInvoice.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 2, len(remaining)+len(moved))
}

func TestMergeInvoices(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 1)
	dishA := env.seedDish(t, "Pasta", 15000, nil, 0)
	dishB := env.seedDish(t, "Pizza", 25000, nil, 0)

	orderA, invoiceA := env.openTab(t, table, dishA, 1, staff.ID)

	// A second tab on the same table, created directly since the
	// service would append to the first one
	orderB := &entity.Order{TableID: &table.ID, CreatedBy: staff.ID, Status: enum.OrderStatusSent}
	require.NoError(t, env.orderRepo.Create(ctx, orderB))
	require.NoError(t, env.lineRepo.CreateBatch(ctx, []entity.OrderLine{
		{OrderID: orderB.ID, DishID: dishB.ID, Quantity: 1, UnitPrice: 25000},
		{OrderID: orderB.ID, DishID: dishA.ID, Quantity: 1, UnitPrice: 15000},
	}))
	invoiceB, err := env.invoices.CreateFromOrder(ctx, orderB.ID, 0, "", staff.ID)
	require.NoError(t, err)

	merged, err := env.invoices.MergeInvoices(ctx, []uuid.UUID{invoiceA.ID, invoiceB.ID}, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(55000), merged.Subtotal)
	assert.Equal(t, int64(55000), merged.GrandTotal)

	mergedLines, err := env.lineRepo.GetByOrderID(ctx, merged.OrderID)
	require.NoError(t, err)
	assert.Len(t, mergedLines, 3)

	// Source bills and orders are gone
	goneA, err := env.invoiceRepo.GetByID(ctx, invoiceA.ID)
	require.NoError(t, err)
	assert.Nil(t, goneA)
	goneB, err := env.invoiceRepo.GetByID(ctx, invoiceB.ID)
	require.NoError(t, err)
	assert.Nil(t, goneB)
	goneOrder, err := env.orderRepo.GetByID(ctx, orderA.ID)
	require.NoError(t, err)
	assert.Nil(t, goneOrder)
}

func TestDiscountRequiresApproval(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	env.seedStaff(t, "manager", "approve-me", "apply-discounts")
	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "Burger", 30000, nil, 0)

	// Without a valid PIN the discounted order is rejected
	_, err := env.orders.Create(ctx, CreateOrderInput{
		TableID:   table.ID,
		Items:     []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
		Discount:  5000,
		CreatedBy: staff.ID,
	})
	assert.Error(t, err)

	order, err := env.orders.Create(ctx, CreateOrderInput{
		TableID:     table.ID,
		Items:       []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
		Discount:    5000,
		ApproverPIN: "approve-me",
		CreatedBy:   staff.ID,
	})
	require.NoError(t, err)

	invoice, err := env.invoiceRepo.GetOpenByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), invoice.Discount)
	assert.Equal(t, int64(25000), invoice.GrandTotal)
}
