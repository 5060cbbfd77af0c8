package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
	"github.com/jhoicas/cpc-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación por username y password.
type AuthUseCase struct {
	userRepo repository.UsuarioRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password, genera JWT con rol y permisos y retorna token + usuario.
// Usuario inexistente devuelve ErrUserNotFound, password incorrecto ErrUnauthorized e inactivo ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(in.Username)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Activo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identidad{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Rol,
		Permisos: user.Permisos,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *usecase.ToUsuarioResponse(user),
	}, nil
}
