package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sysacopio/acopio-api/internal/application/dto"
	"github.com/sysacopio/acopio-api/internal/application/historial"
	"github.com/sysacopio/acopio-api/internal/domain"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
	"github.com/sysacopio/acopio-api/pkg/jwt"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

// ModuloAuth es la etiqueta de módulo usada en el historial.
const ModuloAuth = "AUTH"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase caso de uso de autenticación.
type UseCase struct {
	usuarioRepo   repository.UsuarioRepository
	historialRepo repository.HistorialRepository
	jwtCfg        JWTConfig
	log           *logger.Logger
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(
	usuarioRepo repository.UsuarioRepository,
	historialRepo repository.HistorialRepository,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		usuarioRepo:   usuarioRepo,
		historialRepo: historialRepo,
		jwtCfg:        jwtCfg,
		log:           log,
	}
}

// Login verifica username/password, genera JWT y deja el ingreso en el
// historial. Credenciales inválidas y usuario inexistente responden igual
// para no filtrar qué usuarios existen.
func (uc *UseCase) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, fmt.Errorf("consultar usuario: %w", err)
	}
	if usuario == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("username", in.Username).Msg("intento de login con credenciales inválidas")
		return nil, domain.ErrUnauthorized
	}
	if !usuario.Activo {
		return nil, fmt.Errorf("%w: cuenta desactivada", domain.ErrUnauthorized)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Username, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}

	if err := historial.Registrar(uc.historialRepo, uc.log, usuario,
		entity.AccionLogin,
		fmt.Sprintf("Usuario %s inició sesión", usuario.Username),
		ModuloAuth, nil); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		Usuario: dto.UsuarioResponse{
			ID:             usuario.ID,
			Username:       usuario.Username,
			NombreCompleto: usuario.NombreCompleto,
			Rol:            usuario.Rol,
			Activo:         usuario.Activo,
		},
	}, nil
}

// HashPassword hashea una contraseña con bcrypt (para el seed y la creación
// de usuarios).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
