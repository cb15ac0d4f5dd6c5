package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers los mapean a
// códigos HTTP con errors.Is; las capas intermedias los envuelven con %w para
// conservar el contexto (número de acopio, plantilla, impresora).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrEntradaInvalida       = errors.New("entrada inválida")
	ErrDuplicado             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrPeriodoAgotado        = errors.New("secuencia de numeración agotada para el periodo")
	ErrPlantillaNoEncontrada = errors.New("plantilla de reporte no encontrada")
	ErrRender                = errors.New("error al generar el reporte")
	ErrImpresoraNoEncontrada = errors.New("impresora no encontrada")
	ErrAuditoria             = errors.New("no se pudo registrar la auditoría")
)
