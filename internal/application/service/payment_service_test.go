package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/pkg/apperror"
)

func TestPayCashWithChange(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	cashier := env.seedStaff(t, "cashier", "secret123", "manage-payments")
	table := env.seedTable(t, 1)
	rice := env.seedMaterial(t, "rice", 1000)
	dish := env.seedDish(t, "Nasi Goreng", 55000, rice, 150)

	order, invoice := env.openTab(t, table, dish, 1, cashier.ID)

	result, err := env.payments.Pay(ctx, PayInput{
		InvoiceID: invoice.ID,
		Payments:  []PaymentEntry{{Method: enum.PaymentMethodCash, Amount: 60000}},
		CashierID: cashier.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(55000), result.GrandTotal)
	assert.Equal(t, int64(5000), result.ChangeDue)

	paid, err := env.invoiceRepo.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	closed, err := env.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusClosed, closed.Status)

	freed, err := env.tableRepo.GetByID(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusEmpty, freed.Status)

	// Stock is deducted at settlement
	mat, err := env.materialRepo.GetByID(ctx, rice.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(850), mat.OnHand)

	movements, err := env.movementRepo.ListByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 1)

	// The drawer sees the applied amount, not the tendered one
	payments, err := env.paymentRepo.ListByInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.NotNil(t, payments[0].Detail)
	assert.Equal(t, int64(55000), payments[0].Detail.AppliedAmount)
	assert.Equal(t, int64(5000), payments[0].Detail.ChangeReturned)
}

func TestPayInsufficientAmount(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	cashier := env.seedStaff(t, "cashier", "secret123", "manage-payments")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "Sushi Set", 55000, nil, 0)

	_, invoice := env.openTab(t, table, dish, 1, cashier.ID)

	_, err := env.payments.Pay(ctx, PayInput{
		InvoiceID: invoice.ID,
		Payments:  []PaymentEntry{{Method: enum.PaymentMethodCard, Amount: 50000}},
		CashierID: cashier.ID,
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)

	// The invoice stays open and no payments stick
	still, err := env.invoiceRepo.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusOpen, still.Status)

	payments, err := env.paymentRepo.ListByInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestPayTwiceRejected(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	cashier := env.seedStaff(t, "cashier", "secret123", "manage-payments")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "Curry", 30000, nil, 0)

	_, invoice := env.openTab(t, table, dish, 1, cashier.ID)

	pay := PayInput{
		InvoiceID: invoice.ID,
		Payments:  []PaymentEntry{{Method: enum.PaymentMethodCash, Amount: 30000}},
		CashierID: cashier.ID,
	}
	_, err := env.payments.Pay(ctx, pay)
	require.NoError(t, err)

	_, err = env.payments.Pay(ctx, pay)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestPayMixedMethods(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	cashier := env.seedStaff(t, "cashier", "secret123", "manage-payments")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "BBQ Platter", 90000, nil, 0)

	_, invoice := env.openTab(t, table, dish, 1, cashier.ID)

	result, err := env.payments.Pay(ctx, PayInput{
		InvoiceID: invoice.ID,
		Payments: []PaymentEntry{
			{Method: enum.PaymentMethodCard, Amount: 50000},
			{Method: enum.PaymentMethodCash, Amount: 40000},
		},
		CashierID: cashier.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.ChangeDue)

	payments, err := env.paymentRepo.ListByInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestPayNonCashCannotOverpay(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	cashier := env.seedStaff(t, "cashier", "secret123", "manage-payments")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "Tea", 10000, nil, 0)

	_, invoice := env.openTab(t, table, dish, 1, cashier.ID)

	_, err := env.payments.Pay(ctx, PayInput{
		InvoiceID: invoice.ID,
		Payments:  []PaymentEntry{{Method: enum.PaymentMethodCard, Amount: 15000}},
		CashierID: cashier.ID,
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestPayWithLoyaltyPoints(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	cashier := env.seedStaff(t, "cashier", "secret123", "manage-payments")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "Steak Dinner", 55000, nil, 0)

	customer := &entity.Customer{Name: "Dewi", Phone: "0811111111", Points: 10}
	require.NoError(t, env.customerRepo.Create(ctx, customer))

	_, invoice := env.openTab(t, table, dish, 1, cashier.ID)

	result, err := env.payments.Pay(ctx, PayInput{
		InvoiceID:  invoice.ID,
		Payments:   []PaymentEntry{{Method: enum.PaymentMethodCash, Amount: 50000}},
		UsePoints:  5,
		CustomerID: &customer.ID,
		CashierID:  cashier.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.PointsUsed)
	assert.Equal(t, int64(0), result.ChangeDue)

	// 5 points at 1000 per point covered 5000 of the bill
	updated, err := env.customerRepo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), updated.Points)

	paid, err := env.invoiceRepo.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, paid.Status)
}

func TestPayPointsExceedBalance(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	cashier := env.seedStaff(t, "cashier", "secret123", "manage-payments")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "Noodles", 20000, nil, 0)

	customer := &entity.Customer{Name: "Budi", Phone: "0822222222", Points: 2}
	require.NoError(t, env.customerRepo.Create(ctx, customer))

	_, invoice := env.openTab(t, table, dish, 1, cashier.ID)

	_, err := env.payments.Pay(ctx, PayInput{
		InvoiceID:  invoice.ID,
		UsePoints:  5,
		CustomerID: &customer.ID,
		CashierID:  cashier.ID,
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
}
