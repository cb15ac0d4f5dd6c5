package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un acopio.
const (
	EstadoActivo  = "ACTIVO"
	EstadoAnulado = "ANULADO"
)

// Acopio representa la cabecera de una compra de mineral a un proveedor.
// El NumeroAcopio (ACO-YYYY-NNNN) se asigna en la creación y es único;
// la anulación no borra el registro, solo cambia el estado.
type Acopio struct {
	ID            int64
	NumeroAcopio  string
	ProveedorID   int64
	UsuarioID     string
	FechaAcopio   time.Time
	Estado        string
	TotalPagar    decimal.Decimal
	Observaciones string
	Detalles      []*AcopioDetalle
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CalcularTotal suma el importe de cada detalle. El total nunca se acumula
// aparte: siempre se deriva de las líneas para que coincida con recalcular.
func (a *Acopio) CalcularTotal() {
	total := decimal.Zero
	for _, d := range a.Detalles {
		total = total.Add(d.Importe)
	}
	a.TotalPagar = total
}
