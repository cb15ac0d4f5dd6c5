package repository

import (
	"time"

	"github.com/sysacopio/acopio-api/internal/domain/entity"
)

// AcopioRepository define el puerto de persistencia para Acopio y detalles.
type AcopioRepository interface {
	// Create inserta la cabecera. Retorna domain.ErrDuplicado si el
	// numero_acopio ya existe (índice único): el caso de uso reintenta con la
	// siguiente secuencia.
	Create(acopio *entity.Acopio) error
	CreateDetalle(detalle *entity.AcopioDetalle) error
	Update(acopio *entity.Acopio) error
	GetByID(id int64) (*entity.Acopio, error)
	GetDetalles(acopioID int64) ([]*entity.AcopioDetalle, error)
	List() ([]*entity.Acopio, error)
	ListByProveedor(proveedorID int64) ([]*entity.Acopio, error)
	ListByFechas(inicio, fin time.Time) ([]*entity.Acopio, error)
	// FindMaxNumero devuelve el mayor numero_acopio que cumple el patrón SQL
	// LIKE (ej. "ACO-2025-%"), o "" si no hay ninguno.
	FindMaxNumero(patron string) (string, error)
	CountByFechas(inicio, fin time.Time) (int64, error)
}
