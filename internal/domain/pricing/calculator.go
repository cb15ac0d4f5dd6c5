// Package pricing implementa el cálculo de valorización de una línea de
// acopio (servicio de dominio, sin dependencias de infraestructura).
//
// Fórmula:
//
//	contenidoFino = peso * ley
//	neto          = contenidoFino * (1 - deduccion)
//	precioGramo   = precioOnzaBase / 31.1035   (gramos por onza troy)
//	importe       = neto * precioGramo * tipoCambioDolar, redondeado a 2 decimales
//
// Todo en decimal: el mismo input produce siempre el mismo importe, sin deriva
// de coma flotante entre recálculos.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sysacopio/acopio-api/internal/domain"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
)

// GramosPorOnzaTroy es el factor de conversión onza troy -> gramos.
var GramosPorOnzaTroy = decimal.NewFromFloat(31.1035)

var uno = decimal.NewFromInt(1)

// Calcular valoriza una línea. Rechaza con domain.ErrEntradaInvalida los
// insumos fuera de rango; una línea que no valida nunca debe persistirse.
func Calcular(peso, ley, deduccion, precioOnza, tipoCambio decimal.Decimal) (decimal.Decimal, error) {
	if peso.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: peso negativo (%s)", domain.ErrEntradaInvalida, peso)
	}
	if !ley.IsPositive() || ley.GreaterThan(uno) {
		return decimal.Zero, fmt.Errorf("%w: ley fuera de rango (0,1]: %s", domain.ErrEntradaInvalida, ley)
	}
	if deduccion.IsNegative() || deduccion.GreaterThanOrEqual(uno) {
		return decimal.Zero, fmt.Errorf("%w: deducción fuera de rango [0,1): %s", domain.ErrEntradaInvalida, deduccion)
	}
	if precioOnza.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: precio por onza negativo (%s)", domain.ErrEntradaInvalida, precioOnza)
	}
	if !tipoCambio.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: tipo de cambio no positivo (%s)", domain.ErrEntradaInvalida, tipoCambio)
	}

	neto := peso.Mul(ley).Mul(uno.Sub(deduccion))
	precioGramo := precioOnza.Div(GramosPorOnzaTroy)
	importe := neto.Mul(precioGramo).Mul(tipoCambio)
	return importe.Round(2), nil
}

// CalcularDetalle valoriza el detalle en sitio, dejando el Importe calculado.
func CalcularDetalle(d *entity.AcopioDetalle) error {
	importe, err := Calcular(d.Peso, d.Ley, d.Deduccion, d.PrecioOnzaBase, d.TipoCambioDolar)
	if err != nil {
		return err
	}
	d.Importe = importe
	return nil
}

// CalcularTotal suma el importe recalculado de cada detalle. Por construcción
// coincide con sumar los importes almacenados: recalcular desde los mismos
// insumos siempre da el mismo resultado.
func CalcularTotal(detalles []*entity.AcopioDetalle) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range detalles {
		importe, err := Calcular(d.Peso, d.Ley, d.Deduccion, d.PrecioOnzaBase, d.TipoCambioDolar)
		if err != nil {
			return decimal.Zero, fmt.Errorf("item %d: %w", d.NumeroItem, err)
		}
		total = total.Add(importe)
	}
	return total, nil
}
