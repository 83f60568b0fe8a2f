package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/dinehub-api/pkg/apperror"
	"github.com/sangkips/dinehub-api/pkg/pagination"
)

func TestVerifyPINEmptyRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.approval.VerifyPIN(context.Background(), "", PermissionVoidItems, "")
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Code)
}

func TestVerifyPINRequiresPermissionHolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedStaff(t, "waiter", "waiter-pin", "manage-orders")
	manager := env.seedStaff(t, "manager", "manager-pin", "void-items")

	// A PIN belonging to someone without the permission does not count
	_, err := env.approval.VerifyPIN(ctx, "waiter-pin", PermissionVoidItems, "")
	assert.Error(t, err)

	approver, err := env.approval.VerifyPIN(ctx, "manager-pin", PermissionVoidItems, "")
	require.NoError(t, err)
	assert.Equal(t, manager.ID, approver.ID)
}

func TestVerifyPINScopedToManagerName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedStaff(t, "alice", "pin-alice", "approve-voids")
	bob := env.seedStaff(t, "bob", "pin-bob", "approve-voids")

	// Scoping to one name excludes the other approver's PIN
	_, err := env.approval.VerifyPIN(ctx, "pin-alice", PermissionApproveVoids, "bob Tester")
	assert.Error(t, err)

	approver, err := env.approval.VerifyPIN(ctx, "pin-bob", PermissionApproveVoids, "bob Tester")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, approver.ID)
}

func TestRecordApprovalAppearsInAudit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	waiter := env.seedStaff(t, "waiter", "secret123", "manage-orders")
	manager := env.seedStaff(t, "manager", "pin-7777", "apply-discounts")

	require.NoError(t, env.approval.RecordApproval(ctx, "discount.applied", waiter.ID, manager, nil, "10% off"))

	logs, pg, err := env.approval.ListAudit(ctx, "discount.applied", &pagination.PaginationParams{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, int64(1), pg.Total)
	assert.Equal(t, waiter.ID, logs[0].RequestedBy)
	require.NotNil(t, logs[0].ApprovedBy)
	assert.Equal(t, manager.ID, *logs[0].ApprovedBy)
	assert.Equal(t, "10% off", logs[0].Detail)
}
