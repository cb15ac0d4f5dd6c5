package acopio

import (
	"context"

	"github.com/sysacopio/acopio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repositorios de
// acopio e historial atados a ella. La numeración, la inserción de cabecera y
// detalles y la entrada de auditoría se confirman (o revierten) juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		acopioRepo repository.AcopioRepository,
		historialRepo repository.HistorialRepository,
	) error) error
}
