package dto

import "time"

// HistorialResponse entrada del historial de movimientos en respuestas.
type HistorialResponse struct {
	ID                  string         `json:"id"`
	UsuarioID           string         `json:"usuario_id"`
	Username            string         `json:"username"`
	Accion              string         `json:"accion"`
	Descripcion         string         `json:"descripcion"`
	Modulo              string         `json:"modulo"`
	FechaHora           time.Time      `json:"fecha_hora"`
	DetallesAdicionales map[string]any `json:"detalles_adicionales,omitempty"`
}
