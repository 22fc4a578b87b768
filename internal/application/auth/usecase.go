package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/application/ports"
	"github.com/magicstars/ops-api/internal/domain"
	"github.com/magicstars/ops-api/internal/domain/entity"
	"github.com/magicstars/ops-api/internal/domain/repository"
	"github.com/magicstars/ops-api/pkg/jwt"
	"github.com/magicstars/ops-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login, sesión actual, logout con revocación y validación de tokens.
type AuthUseCase struct {
	userRepo  repository.UsuarioRepository
	blacklist ports.TokenBlacklist
	jwtCfg    JWTConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UsuarioRepository, blacklist ports.TokenBlacklist, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, blacklist: blacklist, jwtCfg: jwtCfg, log: log.Named("auth"), now: time.Now}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Usuario inexistente o password incorrecto → ErrInvalidCredentials; usuario inactivo → ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		uc.log.Error().Err(err).Str("email", email).Msg("❌ buscar usuario")
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Activo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, mensajeroDe(user), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login")
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Authenticate valida firma, expiración y revocación del token.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.ID != "" {
		revoked, err := uc.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			uc.log.Error().Err(err).Msg("❌ consultar revocación de token")
			return nil, err
		}
		if revoked {
			return nil, domain.ErrTokenRevoked
		}
	}
	return claims, nil
}

// Me devuelve el usuario de la sesión. ErrUnauthorized si ya no existe o está inactivo.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Msg("❌ obtener usuario")
		return nil, err
	}
	if user == nil || !user.Activo {
		return nil, domain.ErrUnauthorized
	}
	return toUserResponse(user), nil
}

// Logout revoca el token hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return domain.ErrUnauthorized
	}
	ttl := claims.RemainingTTL(uc.now())
	if ttl <= 0 {
		return nil
	}
	if err := uc.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		uc.log.Error().Err(err).Str("user_id", claims.UserID).Msg("❌ revocar token")
		return err
	}
	return nil
}

func mensajeroDe(u *entity.Usuario) string {
	if u.Role == entity.RoleMensajero || u.Role == entity.RoleMensajeroLider {
		return u.Nombre
	}
	return ""
}

func toUserResponse(u *entity.Usuario) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:     u.ID,
		Email:  u.Email,
		Nombre: u.Nombre,
		Role:   u.Role,
	}
}
