package repository

import (
	"time"

	"github.com/sysacopio/acopio-api/internal/domain/entity"
)

// HistorialRepository define el puerto de persistencia para el historial de
// movimientos. Solo inserta y consulta: las entradas nunca se modifican.
type HistorialRepository interface {
	Create(mov *entity.HistorialMovimiento) error
	List() ([]*entity.HistorialMovimiento, error)
	ListByUsuario(usuarioID string) ([]*entity.HistorialMovimiento, error)
	ListByModulo(modulo string) ([]*entity.HistorialMovimiento, error)
	ListByFechas(inicio, fin time.Time) ([]*entity.HistorialMovimiento, error)
}
