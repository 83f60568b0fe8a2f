package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/pkg/apperror"
)

func TestCreateCustomerDuplicatePhone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer, err := env.customers.Create(ctx, "Andi", "0811223344", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), customer.Points)

	_, err = env.customers.Create(ctx, "Other Andi", "0811223344", nil)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
}

func TestCustomerSearchAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.customers.Create(ctx, "Siti Rahma", "0811000001", nil)
	require.NoError(t, err)
	created, err := env.customers.Create(ctx, "Rahmat", "0811000002", nil)
	require.NoError(t, err)

	matches, err := env.customers.List(ctx, "rahma")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	email := "rahmat@example.com"
	updated, err := env.customers.Update(ctx, created.ID, "", &email)
	require.NoError(t, err)
	assert.Equal(t, "Rahmat", updated.Name)
	require.NotNil(t, updated.Email)
	assert.Equal(t, email, *updated.Email)
}

func TestPointHistoryRecordedOnPayment(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	cashier := env.seedStaff(t, "cashier", "secret123", "manage-payments", "manage-orders")
	table := env.seedTable(t, 5)
	dish := env.seedDish(t, "Nasi Goreng", 10000, nil, 0)
	customer, err := env.customers.Create(ctx, "Member", "0811999999", nil)
	require.NoError(t, err)
	customer.Points = 10
	require.NoError(t, env.customerRepo.Update(ctx, customer))

	_, invoice := env.openTab(t, table, dish, 1, cashier.ID)

	result, err := env.payments.Pay(ctx, PayInput{
		InvoiceID:  invoice.ID,
		CustomerID: &customer.ID,
		UsePoints:  3,
		Payments:   []PaymentEntry{{Method: enum.PaymentMethodCash, Amount: 7000}},
		CashierID:  cashier.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.PointsUsed)

	history, err := env.customers.History(ctx, customer.ID)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, int64(-3), history[0].Delta)
}
