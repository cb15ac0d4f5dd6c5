package report

import (
	"context"

	domreport "github.com/sysacopio/acopio-api/internal/domain/report"
)

// FuentePlantillas resuelve el nombre de una plantilla a sus bytes fuente.
type FuentePlantillas interface {
	// Leer retorna domain.ErrPlantillaNoEncontrada si la fuente no existe.
	Leer(nombre string) ([]byte, error)
	// Ruta es la ubicación esperada de la fuente (para mensajes de error).
	Ruta(nombre string) string
}

// AlmacenArtefactos guarda y carga artefactos compilados en almacenamiento
// durable, para que los siguientes arranques del proceso no recompilen.
type AlmacenArtefactos interface {
	// Cargar retorna domain.ErrPlantillaNoEncontrada si no hay artefacto.
	Cargar(nombre string) ([]byte, error)
	Guardar(nombre string, data []byte) error
	Ruta(nombre string) string
}

// OpcionesExcel controla la exportación a hoja de cálculo. Las decide el
// caller; el núcleo no impone defaults distintos a los históricos.
type OpcionesExcel struct {
	UnaPaginaPorHoja  bool
	DetectarTipoCelda bool
	ColapsarFilas     bool
	FondoBlanco       bool
}

// OpcionesExcelPorDefecto replica la configuración histórica de exportación.
func OpcionesExcelPorDefecto() OpcionesExcel {
	return OpcionesExcel{
		UnaPaginaPorHoja:  false,
		DetectarTipoCelda: true,
		ColapsarFilas:     false,
		FondoBlanco:       false,
	}
}

// ExportadorPDF convierte un reporte generado en un documento PDF.
type ExportadorPDF interface {
	Exportar(r *domreport.ReporteGenerado) ([]byte, error)
}

// ExportadorExcel convierte un reporte generado en un libro XLSX.
type ExportadorExcel interface {
	Exportar(r *domreport.ReporteGenerado, opts OpcionesExcel) ([]byte, error)
}

// ExportadorHTML convierte un reporte generado en un documento HTML.
type ExportadorHTML interface {
	Exportar(r *domreport.ReporteGenerado) ([]byte, error)
}

// ServicioImpresion abstrae el spooler del sistema (CUPS en producción).
type ServicioImpresion interface {
	ListarImpresoras() ([]string, error)
	// ImpresoraPredeterminada retorna "" si el sistema no tiene una.
	ImpresoraPredeterminada() (string, error)
	Imprimir(ctx context.Context, impresora string, pdf []byte) error
}

// SelectorImpresora es el paso interactivo de ImprimirConDialogo. Vive detrás
// de esta interfaz para que el resto del pipeline sea testeable sin pantalla.
type SelectorImpresora interface {
	Seleccionar(ctx context.Context, disponibles []string) (string, error)
}
