package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Farmacia-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(
		memory.NewUserRepository(memory.NewStore()),
		auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "farmacia-test"},
	)
}

func TestAuthUseCase_RegisterYLogin(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmpleado, u.Role)
	assert.Equal(t, "caja1", u.Name)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "caja1", Password: "otroSecreto"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	res, err := uc.Login(ctx, dto.LoginRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, 1800, res.ExpiresIn)

	claims, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "caja1", claims.Username)
	assert.Equal(t, entity.RoleEmpleado, claims.Role)

	me, err := uc.CurrentUser(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "caja1", me.Username)
}

func TestAuthUseCase_LoginFallido(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "admin", Password: "secreto123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.CurrentUser(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthUseCase_RegisterPasswordCorta(t *testing.T) {
	_, err := newAuth().RegisterUser(context.Background(), dto.RegisterRequest{Username: "x", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
