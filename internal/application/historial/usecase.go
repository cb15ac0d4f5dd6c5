package historial

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sysacopio/acopio-api/internal/domain"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

// UseCase registra y consulta el historial de movimientos (auditoría).
type UseCase struct {
	repo repository.HistorialRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.HistorialRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log}
}

// Registrar inserta una entrada de historial usando el repositorio dado (el
// del pool o uno atado a la transacción del caller, para que la auditoría se
// confirme junto con la mutación principal).
//
// Política: un usuario nulo se registra en el log y se descarta sin error —
// la falta de auditoría nunca debe bloquear la operación principal. Cualquier
// otra falla (almacenamiento caído) sí se propaga como domain.ErrAuditoria
// para que el caller decida si es fatal.
func Registrar(
	repo repository.HistorialRepository,
	log *logger.Logger,
	usuario *entity.Usuario,
	accion, descripcion, modulo string,
	detalles map[string]any,
) error {
	if usuario == nil {
		log.Error().
			Str("accion", accion).
			Str("modulo", modulo).
			Msg("intento de registrar acción con usuario nulo")
		return nil
	}

	mov := &entity.HistorialMovimiento{
		ID:                  uuid.New().String(),
		UsuarioID:           usuario.ID,
		Username:            usuario.Username,
		Accion:              accion,
		Descripcion:         descripcion,
		Modulo:              modulo,
		FechaHora:           time.Now(),
		DetallesAdicionales: detalles,
	}
	if err := repo.Create(mov); err != nil {
		return fmt.Errorf("%w: acción %s: %v", domain.ErrAuditoria, accion, err)
	}
	log.Info().
		Str("accion", accion).
		Str("descripcion", descripcion).
		Str("usuario", usuario.Username).
		Msg("acción registrada en historial")
	return nil
}

// LogAccion registra una acción con el repositorio del caso de uso (fuera de
// transacción).
func (uc *UseCase) LogAccion(_ context.Context, usuario *entity.Usuario, accion, descripcion, modulo string, detalles map[string]any) error {
	return Registrar(uc.repo, uc.log, usuario, accion, descripcion, modulo, detalles)
}

// Todos devuelve el historial completo ordenado por fecha descendente.
func (uc *UseCase) Todos(_ context.Context) ([]*entity.HistorialMovimiento, error) {
	return uc.repo.List()
}

// PorUsuario devuelve el historial de un usuario.
func (uc *UseCase) PorUsuario(_ context.Context, usuarioID string) ([]*entity.HistorialMovimiento, error) {
	return uc.repo.ListByUsuario(usuarioID)
}

// PorModulo devuelve el historial de un módulo del sistema.
func (uc *UseCase) PorModulo(_ context.Context, modulo string) ([]*entity.HistorialMovimiento, error) {
	return uc.repo.ListByModulo(modulo)
}

// EntreFechas devuelve el historial entre dos instantes.
func (uc *UseCase) EntreFechas(_ context.Context, inicio, fin time.Time) ([]*entity.HistorialMovimiento, error) {
	return uc.repo.ListByFechas(inicio, fin)
}

// Recientes devuelve el historial de las últimas 24 horas.
func (uc *UseCase) Recientes(ctx context.Context) ([]*entity.HistorialMovimiento, error) {
	hace24h := time.Now().Add(-24 * time.Hour)
	return uc.repo.ListByFechas(hace24h, time.Now())
}

// Hoy devuelve el historial del día en curso.
func (uc *UseCase) Hoy(ctx context.Context) ([]*entity.HistorialMovimiento, error) {
	y, m, d := time.Now().Date()
	inicio := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return uc.repo.ListByFechas(inicio, inicio.AddDate(0, 0, 1))
}
