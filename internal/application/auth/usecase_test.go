package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/domain"
	"github.com/magicstars/ops-api/internal/domain/entity"
	"github.com/magicstars/ops-api/pkg/jwt"
	"github.com/magicstars/ops-api/pkg/logger"
)

const testSecret = "test-secret"

type fakeUsuarioRepo struct {
	byEmail map[string]*entity.Usuario
}

func (r *fakeUsuarioRepo) FindByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	return r.byEmail[email], nil
}

func (r *fakeUsuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type fakeBlacklist struct {
	revoked map[string]time.Duration
}

func (b *fakeBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	b.revoked[jti] = ttl
	return nil
}

func (b *fakeBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := b.revoked[jti]
	return ok, nil
}

func newTestUseCase(t *testing.T) (*AuthUseCase, *fakeBlacklist) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUsuarioRepo{byEmail: map[string]*entity.Usuario{
		"ana@magicstars.cr": {
			ID: "u-1", Email: "ana@magicstars.cr", PasswordHash: string(hash),
			Nombre: "Ana", Role: entity.RoleMensajero, Activo: true,
		},
		"admin@magicstars.cr": {
			ID: "u-2", Email: "admin@magicstars.cr", PasswordHash: string(hash),
			Nombre: "Admin", Role: entity.RoleAdmin, Activo: true,
		},
		"baja@magicstars.cr": {
			ID: "u-3", Email: "baja@magicstars.cr", PasswordHash: string(hash),
			Nombre: "Baja", Role: entity.RoleMensajero, Activo: false,
		},
	}}
	bl := &fakeBlacklist{revoked: map[string]time.Duration{}}
	uc := NewAuthUseCase(repo, bl, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, logger.Nop())
	return uc, bl
}

func TestLogin_OK(t *testing.T) {
	uc, _ := newTestUseCase(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " Ana@MagicStars.cr ", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, dto.UserResponse{ID: "u-1", Email: "ana@magicstars.cr", Nombre: "Ana", Role: entity.RoleMensajero}, out.User)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, entity.RoleMensajero, claims.Role)
	assert.Equal(t, "Ana", claims.Mensajero)
	assert.NotEmpty(t, claims.ID)
}

func TestLogin_AdminNoLlevaMensajero(t *testing.T) {
	uc, _ := newTestUseCase(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@magicstars.cr", Password: "secreta123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Empty(t, claims.Mensajero)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@magicstars.cr", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@magicstars.cr", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "baja@magicstars.cr", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogoutRevocaToken(t *testing.T) {
	uc, bl := newTestUseCase(t)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@magicstars.cr", Password: "secreta123"})
	require.NoError(t, err)

	claims, err := uc.Authenticate(ctx, out.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, claims))
	ttl, ok := bl.revoked[claims.ID]
	require.True(t, ok)
	assert.InDelta(t, float64(time.Hour), float64(ttl), float64(time.Minute))

	_, err = uc.Authenticate(ctx, out.Token)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}

func TestAuthenticate_TokenInvalido(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Authenticate(context.Background(), "no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	other, err := jwt.Generate("otro-secreto", "u-1", entity.RoleAdmin, "", "test", 5)
	require.NoError(t, err)
	_, err = uc.Authenticate(context.Background(), other)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe(t *testing.T) {
	uc, _ := newTestUseCase(t)

	u, err := uc.Me(context.Background(), "u-2")
	require.NoError(t, err)
	assert.Equal(t, "admin@magicstars.cr", u.Email)

	_, err = uc.Me(context.Background(), "u-3")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Me(context.Background(), "u-404")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
