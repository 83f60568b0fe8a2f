package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/dinehub-api/internal/domain/enum"
)

func TestShiftLifecycleAndZReport(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	cashier := env.seedStaff(t, "cashier", "secret123", "manage-shifts", "manage-payments")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "Set Menu", 55000, nil, 0)

	shift, err := env.shifts.Open(ctx, cashier.ID, 100000)
	require.NoError(t, err)
	assert.Equal(t, enum.ShiftStatusActive, shift.Status)

	// A cash sale with change during the shift
	_, invoice := env.openTab(t, table, dish, 1, cashier.ID)
	_, err = env.payments.Pay(ctx, PayInput{
		InvoiceID: invoice.ID,
		Payments:  []PaymentEntry{{Method: enum.PaymentMethodCash, Amount: 60000}},
		CashierID: cashier.ID,
	})
	require.NoError(t, err)

	report, err := env.shifts.Close(ctx, shift.ID, cashier.ID, 154000)
	require.NoError(t, err)

	// Expected drawer = opening float + applied cash, not tendered cash
	assert.Equal(t, int64(155000), report.ExpectedCash)
	assert.Equal(t, int64(154000), report.ActualCash)
	assert.Equal(t, int64(-1000), report.Variance)

	require.NotEmpty(t, report.Lines)
	var cashTotal int64
	for _, line := range report.Lines {
		if line.Method == enum.PaymentMethodCash {
			cashTotal = line.Total
		}
	}
	assert.Equal(t, int64(55000), cashTotal)

	closed, err := env.shiftRepo.GetByID(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ShiftStatusClosed, closed.Status)

	// Closing again must not produce a second report
	_, err = env.shifts.Close(ctx, shift.ID, cashier.ID, 154000)
	assert.Error(t, err)

	fetched, err := env.shifts.GetZReport(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, fetched.ID)
}

func TestOpenSecondShiftRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cashier := env.seedStaff(t, "cashier", "secret123", "manage-shifts")

	_, err := env.shifts.Open(ctx, cashier.ID, 50000)
	require.NoError(t, err)

	_, err = env.shifts.Open(ctx, cashier.ID, 50000)
	assert.Error(t, err)
}

func TestCloseForeignShiftRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cashier := env.seedStaff(t, "cashier", "secret123", "manage-shifts")
	other := env.seedStaff(t, "other", "secret456", "manage-shifts")

	shift, err := env.shifts.Open(ctx, cashier.ID, 50000)
	require.NoError(t, err)

	_, err = env.shifts.Close(ctx, shift.ID, other.ID, 50000)
	assert.Error(t, err)
}

func TestZReportCSVExport(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	cashier := env.seedStaff(t, "cashier", "secret123", "manage-shifts", "manage-payments")
	table := env.seedTable(t, 1)
	dish := env.seedDish(t, "Combo", 40000, nil, 0)

	shift, err := env.shifts.Open(ctx, cashier.ID, 0)
	require.NoError(t, err)

	_, invoice := env.openTab(t, table, dish, 1, cashier.ID)
	_, err = env.payments.Pay(ctx, PayInput{
		InvoiceID: invoice.ID,
		Payments:  []PaymentEntry{{Method: enum.PaymentMethodQR, Amount: 40000}},
		CashierID: cashier.ID,
	})
	require.NoError(t, err)

	_, err = env.shifts.Close(ctx, shift.ID, cashier.ID, 0)
	require.NoError(t, err)

	data, err := env.shifts.ExportZReportCSV(ctx, shift.ID)
	require.NoError(t, err)

	csv := string(data)
	assert.True(t, strings.Contains(csv, "Expected Cash"))
	assert.True(t, strings.Contains(csv, "QR"))
	assert.True(t, strings.Contains(csv, "40000"))
}
