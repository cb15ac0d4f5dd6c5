package entity

import "time"

// Proveedor representa a la persona o empresa que entrega mineral.
type Proveedor struct {
	ID              int64
	NombreCompleto  string
	TipoDocumento   string // DNI, RUC, CE
	NumeroDocumento string
	Direccion       string
	Telefono        string
	Activo          bool
	CreatedAt       time.Time
}
