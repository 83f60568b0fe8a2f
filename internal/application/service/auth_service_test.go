package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/dinehub-api/internal/infrastructure/repository"
	"github.com/sangkips/dinehub-api/pkg/utils"
)

func newTestAuth(env *testEnv) *AuthService {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(repository.NewUserRepository(env.db), jwtManager)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuth(env)
	ctx := context.Background()

	user := env.seedStaff(t, "cashier", "secret123", "manage-payments")

	result, err := auth.Login(ctx, user.Email, "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, user.ID, result.User.ID)

	_, err = auth.Login(ctx, user.Email, "wrong-password")
	assert.Error(t, err)

	_, err = auth.Login(ctx, "nobody@example.com", "secret123")
	assert.Error(t, err)
}

func TestRefreshRotatesTokens(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuth(env)
	ctx := context.Background()

	user := env.seedStaff(t, "cashier", "secret123", "manage-payments")

	first, err := auth.Login(ctx, user.Email, "secret123")
	require.NoError(t, err)

	second, err := auth.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)
	assert.Equal(t, user.ID, second.User.ID)

	_, err = auth.Refresh(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuth(env)
	ctx := context.Background()

	user := env.seedStaff(t, "cashier", "secret123", "manage-payments")

	err := auth.ChangePassword(ctx, user.ID, "wrong", "brand-new-pass")
	assert.Error(t, err)

	err = auth.ChangePassword(ctx, user.ID, "secret123", "short")
	assert.Error(t, err)

	require.NoError(t, auth.ChangePassword(ctx, user.ID, "secret123", "brand-new-pass"))

	_, err = auth.Login(ctx, user.Email, "secret123")
	assert.Error(t, err)
	_, err = auth.Login(ctx, user.Email, "brand-new-pass")
	require.NoError(t, err)
}
