package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAcopioRequest body para POST /api/acopios.
type CreateAcopioRequest struct {
	ProveedorID   int64               `json:"proveedor_id"`
	FechaAcopio   string              `json:"fecha_acopio,omitempty"` // YYYY-MM-DD; por defecto hoy
	Observaciones string              `json:"observaciones,omitempty"`
	Items         []AcopioItemRequest `json:"items"`
}

// AcopioItemRequest línea del acopio: los cinco insumos del cálculo.
type AcopioItemRequest struct {
	MaterialID      int64           `json:"material_id"`
	Peso            decimal.Decimal `json:"peso"`              // gramos
	Ley             decimal.Decimal `json:"ley"`               // fracción 0..1
	Deduccion       decimal.Decimal `json:"deduccion"`         // fracción 0..1
	PrecioOnzaBase  decimal.Decimal `json:"precio_onza_base"`  // USD por onza troy
	TipoCambioDolar decimal.Decimal `json:"tipo_cambio_dolar"` // soles por USD
}

// AnularAcopioRequest body para POST /api/acopios/:id/anular.
type AnularAcopioRequest struct {
	Motivo string `json:"motivo"`
}

// AcopioResponse cabecera del acopio en respuestas.
type AcopioResponse struct {
	ID            int64                   `json:"id"`
	NumeroAcopio  string                  `json:"numero_acopio"`
	ProveedorID   int64                   `json:"proveedor_id"`
	UsuarioID     string                  `json:"usuario_id"`
	FechaAcopio   time.Time               `json:"fecha_acopio"`
	Estado        string                  `json:"estado"`
	TotalPagar    decimal.Decimal         `json:"total_pagar"`
	Observaciones string                  `json:"observaciones,omitempty"`
	Detalles      []AcopioDetalleResponse `json:"detalles,omitempty"`
}

// AcopioDetalleResponse línea del acopio con el importe calculado.
type AcopioDetalleResponse struct {
	NumeroItem      int             `json:"numero_item"`
	MaterialID      int64           `json:"material_id"`
	Peso            decimal.Decimal `json:"peso"`
	Ley             decimal.Decimal `json:"ley"`
	Deduccion       decimal.Decimal `json:"deduccion"`
	PrecioOnzaBase  decimal.Decimal `json:"precio_onza_base"`
	TipoCambioDolar decimal.Decimal `json:"tipo_cambio_dolar"`
	Importe         decimal.Decimal `json:"importe"`
}

// CalcularImporteRequest body para POST /api/acopios/calcular (simulación sin
// persistir).
type CalcularImporteRequest struct {
	Peso            decimal.Decimal `json:"peso"`
	Ley             decimal.Decimal `json:"ley"`
	Deduccion       decimal.Decimal `json:"deduccion"`
	PrecioOnzaBase  decimal.Decimal `json:"precio_onza_base"`
	TipoCambioDolar decimal.Decimal `json:"tipo_cambio_dolar"`
}

// CalcularImporteResponse resultado de la simulación.
type CalcularImporteResponse struct {
	Importe decimal.Decimal `json:"importe"`
}

// ImprimirRequest body para POST /api/acopios/:id/voucher/imprimir.
// Impresora vacía imprime en la predeterminada del sistema; Dialogo delega la
// elección al selector interactivo del servidor.
type ImprimirRequest struct {
	Impresora string `json:"impresora,omitempty"`
	Dialogo   bool   `json:"dialogo,omitempty"`
}

// ImprimirResponse resultado de un trabajo de impresión.
type ImprimirResponse struct {
	Impresora      string `json:"impresora"`
	UsoAlternativa bool   `json:"uso_alternativa,omitempty"`
}
