package entity

import "github.com/shopspring/decimal"

// AcopioDetalle representa una línea de un acopio. NumeroItem es 1-based,
// contiguo dentro del acopio y no se renumera jamás. Importe es función pura
// de los cinco insumos (ver pricing.Calcular).
type AcopioDetalle struct {
	ID              int64
	AcopioID        int64
	NumeroItem      int
	MaterialID      int64
	Peso            decimal.Decimal // gramos brutos pesados en balanza
	Ley             decimal.Decimal // fracción 0..1
	Deduccion       decimal.Decimal // fracción 0..1 descontada del contenido fino
	PrecioOnzaBase  decimal.Decimal // USD por onza troy
	TipoCambioDolar decimal.Decimal // soles por USD
	Importe         decimal.Decimal // soles, 2 decimales
}
