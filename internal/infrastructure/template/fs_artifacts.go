package template

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sysacopio/acopio-api/internal/application/report"
	"github.com/sysacopio/acopio-api/internal/domain"
)

const extArtefacto = ".reporte.gob"

var _ report.AlmacenArtefactos = (*FSArtifacts)(nil)

// FSArtifacts guarda artefactos compilados (<dir>/<nombre>.reporte.gob).
type FSArtifacts struct {
	dir string
}

// NewFSArtifacts construye el almacén sobre el directorio dado.
func NewFSArtifacts(dir string) *FSArtifacts {
	return &FSArtifacts{dir: dir}
}

// Cargar devuelve los bytes del artefacto, o domain.ErrPlantillaNoEncontrada
// si no hay ninguno.
func (a *FSArtifacts) Cargar(nombre string) ([]byte, error) {
	data, err := os.ReadFile(a.Ruta(nombre))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrPlantillaNoEncontrada
		}
		return nil, fmt.Errorf("leer artefacto: %w", err)
	}
	return data, nil
}

// Guardar escribe el artefacto creando el directorio si hace falta.
func (a *FSArtifacts) Guardar(nombre string, data []byte) error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio de artefactos: %w", err)
	}
	if err := os.WriteFile(a.Ruta(nombre), data, 0o644); err != nil {
		return fmt.Errorf("guardar artefacto: %w", err)
	}
	return nil
}

// Ruta es la ubicación del artefacto.
func (a *FSArtifacts) Ruta(nombre string) string {
	return filepath.Join(a.dir, nombre+extArtefacto)
}
