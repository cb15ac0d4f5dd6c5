package dto

// CreateProveedorRequest body para POST /api/proveedores.
type CreateProveedorRequest struct {
	NombreCompleto  string `json:"nombre_completo"`
	TipoDocumento   string `json:"tipo_documento"` // DNI, RUC, CE
	NumeroDocumento string `json:"numero_documento"`
	Direccion       string `json:"direccion,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
}

// ProveedorResponse proveedor en respuestas.
type ProveedorResponse struct {
	ID              int64  `json:"id"`
	NombreCompleto  string `json:"nombre_completo"`
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	Direccion       string `json:"direccion,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Activo          bool   `json:"activo"`
}
