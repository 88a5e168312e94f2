package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/auth"
	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
	"github.com/jhoicas/lot-expiry-notifications/internal/testutil"
	"github.com/jhoicas/lot-expiry-notifications/pkg/jwt"
)

const secret = "auth-test-secret"

func newUseCase(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &testutil.UserRepo{Items: []*entity.User{
		{ID: "u1", Email: "bodega@bodega.co", Name: "Bodega", Role: entity.RoleBodeguero, Status: "active", PasswordHash: string(hash), TZ: "America/Bogota"},
		{ID: "u2", Email: "suspendido@bodega.co", Role: entity.RoleBodeguero, Status: "suspended", PasswordHash: string(hash)},
	}}
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestLogin_GeneraTokenConRol(t *testing.T) {
	uc := newUseCase(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " Bodega@bodega.co ", Password: "clave-segura"})
	require.NoError(t, err)

	assert.Equal(t, "u1", out.User.ID)
	assert.Equal(t, "America/Bogota", out.User.TZ)
	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "bodega@bodega.co", claims.Email)
	assert.Equal(t, entity.RoleBodeguero, claims.Role)
}

func TestLogin_Errores(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "nadie@bodega.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "bodega@bodega.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "suspendido@bodega.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
