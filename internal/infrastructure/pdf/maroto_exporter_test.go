package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domreport "github.com/sysacopio/acopio-api/internal/domain/report"
)

func TestExportar(t *testing.T) {
	r := &domreport.ReporteGenerado{
		Plantilla: "comprobante_acopio",
		Titulo:    "COMPROBANTE DE ACOPIO ACO-2025-0001",
		Subtitulo: "Proveedor: Minera El Dorado SAC",
		Columnas: []domreport.Columna{
			{Campo: "numeroItem", Titulo: "Item", Ancho: 1, Alineacion: domreport.AlineacionDerecha, Formato: domreport.FormatoEntero},
			{Campo: "peso", Titulo: "Peso (g)", Ancho: 3, Alineacion: domreport.AlineacionIzquierda},
			{Campo: "importe", Titulo: "Importe", Ancho: 3, Alineacion: domreport.AlineacionDerecha, Formato: domreport.FormatoMoneda},
		},
		Paginas: []domreport.Pagina{
			{Numero: 1, Filas: [][]string{{"1", "10.000", "2,034.18"}}},
		},
		PiePagina:  []string{"TOTAL A PAGAR S/. 2,034.18"},
		TotalFilas: 1,
		GeneradoEn: time.Now(),
	}

	out, err := NewMarotoExporter().Exportar(r)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestExportarMultiplesPaginas(t *testing.T) {
	filas := make([][]string, 30)
	for i := range filas {
		filas[i] = []string{"ACO-2025-0001", "100.00"}
	}
	r := &domreport.ReporteGenerado{
		Plantilla: "reporte_acopios_periodo",
		Titulo:    "ACOPIOS DEL PERIODO",
		Columnas: []domreport.Columna{
			{Campo: "numeroAcopio", Titulo: "Número", Ancho: 6},
			{Campo: "totalPagar", Titulo: "Total", Ancho: 3, Formato: domreport.FormatoMoneda},
		},
		Paginas: []domreport.Pagina{
			{Numero: 1, Filas: filas},
			{Numero: 2, Filas: filas[:5]},
		},
		TotalFilas: 35,
		GeneradoEn: time.Now(),
	}

	out, err := NewMarotoExporter().Exportar(r)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
