package entity

// Material representa un tipo de mineral acopiable (ej. Oro).
type Material struct {
	ID          int64
	Nombre      string
	Descripcion string
	Activo      bool
}
