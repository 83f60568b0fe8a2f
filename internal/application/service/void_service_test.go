package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/dinehub-api/internal/domain/enum"
)

func TestVoidRequestApprovalFlow(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	env.seedStaff(t, "manager", "pin-9000", "approve-voids")
	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 4)
	dish := env.seedDish(t, "Wings", 22000, nil, 0)

	order, invoice := env.openTab(t, table, dish, 1, staff.ID)
	lines, err := env.lineRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	lineID := lines[0].ID

	request, err := env.voids.CreateRequest(ctx, order.ID, lineID, "guest complaint", staff.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.VoidStatusPending, request.Status)

	// Only one pending request per line
	_, err = env.voids.CreateRequest(ctx, order.ID, lineID, "again", staff.ID)
	assert.Error(t, err)

	decided, err := env.voids.Approve(ctx, request.ID, "pin-9000", "confirmed with guest")
	require.NoError(t, err)
	assert.Equal(t, enum.VoidStatusApproved, decided.Status)
	require.NotNil(t, decided.DecidedAt)
	require.NotNil(t, decided.ApprovedBy)

	voided, err := env.lineRepo.GetByID(ctx, lineID)
	require.NoError(t, err)
	assert.Equal(t, enum.LineStatusVoided, voided.Status)

	// The bill shrank with the approved void
	synced, err := env.invoiceRepo.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), synced.Subtotal)

	// Approving a decided request fails
	_, err = env.voids.Approve(ctx, request.ID, "pin-9000", "")
	assert.Error(t, err)
}

func TestVoidRequestRejection(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	manager := env.seedStaff(t, "manager", "pin-9000", "approve-voids")
	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 4)
	dish := env.seedDish(t, "Fries", 12000, nil, 0)

	order, invoice := env.openTab(t, table, dish, 1, staff.ID)
	lines, err := env.lineRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)

	request, err := env.voids.CreateRequest(ctx, order.ID, lines[0].ID, "wrong item", staff.ID)
	require.NoError(t, err)

	decided, err := env.voids.Reject(ctx, request.ID, "item already served", manager.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.VoidStatusRejected, decided.Status)

	// The line and the bill are untouched
	line, err := env.lineRepo.GetByID(ctx, lines[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, enum.LineStatusVoided, line.Status)

	same, err := env.invoiceRepo.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), same.Subtotal)
}

func TestVoidApproveBadPIN(t *testing.T) {
	env := newTestEnv(t)
	env.setVATRate(t, "0")
	ctx := context.Background()

	env.seedStaff(t, "manager", "pin-9000", "approve-voids")
	staff := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	table := env.seedTable(t, 4)
	dish := env.seedDish(t, "Mochi", 9000, nil, 0)

	order, _ := env.openTab(t, table, dish, 1, staff.ID)
	lines, err := env.lineRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)

	request, err := env.voids.CreateRequest(ctx, order.ID, lines[0].ID, "cold food", staff.ID)
	require.NoError(t, err)

	// The waiter's own password holds no approval power
	_, err = env.voids.Approve(ctx, request.ID, "secret123", "")
	require.Error(t, err)

	pending, err := env.voidRepo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.VoidStatusPending, pending.Status)
}
