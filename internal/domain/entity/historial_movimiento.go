package entity

import "time"

// Acciones registradas en el historial (vocabulario cerrado).
const (
	AccionRegistroAcopio   = "REGISTRO_ACOPIO"
	AccionAnulacionAcopio  = "ANULACION_ACOPIO"
	AccionImpresionVoucher = "IMPRESION_VOUCHER"
	AccionLogin            = "LOGIN"
)

// HistorialMovimiento es una entrada inmutable de auditoría: quién hizo qué,
// en qué módulo y cuándo. DetallesAdicionales lleva un payload JSON opcional
// de correlación (ej. {"acopioId": 42} para reimprimir un voucher).
type HistorialMovimiento struct {
	ID                  string
	UsuarioID           string
	Username            string
	Accion              string
	Descripcion         string
	Modulo              string
	FechaHora           time.Time
	DetallesAdicionales map[string]any
}
