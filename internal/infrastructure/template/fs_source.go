// Package template implementa sobre el sistema de archivos los puertos de
// fuentes y artefactos de plantillas de reporte.
package template

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sysacopio/acopio-api/internal/application/report"
	"github.com/sysacopio/acopio-api/internal/domain"
)

const extFuente = ".reporte.json"

var _ report.FuentePlantillas = (*FSSource)(nil)

// FSSource lee fuentes de plantilla (<dir>/<nombre>.reporte.json).
type FSSource struct {
	dir string
}

// NewFSSource construye la fuente sobre el directorio dado.
func NewFSSource(dir string) *FSSource {
	return &FSSource{dir: dir}
}

// Leer devuelve los bytes de la fuente, o domain.ErrPlantillaNoEncontrada si
// el archivo no existe.
func (s *FSSource) Leer(nombre string) ([]byte, error) {
	data, err := os.ReadFile(s.Ruta(nombre))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrPlantillaNoEncontrada
		}
		return nil, fmt.Errorf("leer fuente de plantilla: %w", err)
	}
	return data, nil
}

// Ruta es la ubicación esperada de la fuente.
func (s *FSSource) Ruta(nombre string) string {
	return filepath.Join(s.dir, nombre+extFuente)
}
