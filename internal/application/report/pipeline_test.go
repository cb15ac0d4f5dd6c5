package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysacopio/acopio-api/internal/domain"
	domreport "github.com/sysacopio/acopio-api/internal/domain/report"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

type fakeExportadorPDF struct {
	llamadas int
}

func (f *fakeExportadorPDF) Exportar(r *domreport.ReporteGenerado) ([]byte, error) {
	f.llamadas++
	return []byte("PDF:" + r.Plantilla), nil
}

type fakeExportadorExcel struct {
	ultimasOpts OpcionesExcel
}

func (f *fakeExportadorExcel) Exportar(r *domreport.ReporteGenerado, opts OpcionesExcel) ([]byte, error) {
	f.ultimasOpts = opts
	return []byte("XLSX:" + r.Plantilla), nil
}

type fakeExportadorHTML struct{}

func (fakeExportadorHTML) Exportar(r *domreport.ReporteGenerado) ([]byte, error) {
	return []byte("<html>" + r.Plantilla + "</html>"), nil
}

type trabajoImpresion struct {
	impresora string
	pdf       []byte
}

type fakeImpresion struct {
	impresoras     []string
	predeterminada string
	trabajos       []trabajoImpresion
	errListar      error
}

func (f *fakeImpresion) ListarImpresoras() ([]string, error) {
	if f.errListar != nil {
		return nil, f.errListar
	}
	return f.impresoras, nil
}

func (f *fakeImpresion) ImpresoraPredeterminada() (string, error) {
	return f.predeterminada, nil
}

func (f *fakeImpresion) Imprimir(_ context.Context, impresora string, pdf []byte) error {
	f.trabajos = append(f.trabajos, trabajoImpresion{impresora: impresora, pdf: pdf})
	return nil
}

type fakeSelector struct {
	eleccion   string
	ofrecidas  []string
	invocado   bool
	errCancela error
}

func (f *fakeSelector) Seleccionar(_ context.Context, disponibles []string) (string, error) {
	f.invocado = true
	f.ofrecidas = disponibles
	if f.errCancela != nil {
		return "", f.errCancela
	}
	return f.eleccion, nil
}

func reporteDePrueba() *domreport.ReporteGenerado {
	return &domreport.ReporteGenerado{
		Plantilla: "comprobante_acopio",
		Titulo:    "COMPROBANTE DE ACOPIO ACO-2025-0001",
		Columnas: []domreport.Columna{
			{Campo: "numeroItem", Titulo: "Item", Ancho: 1, Formato: domreport.FormatoEntero},
			{Campo: "importe", Titulo: "Importe", Ancho: 3, Formato: domreport.FormatoMoneda},
		},
		Paginas: []domreport.Pagina{
			{Numero: 1, Filas: [][]string{{"1", "2,034.18"}}},
		},
		TotalFilas: 1,
		GeneradoEn: time.Now(),
	}
}

func armarPipeline(impresion *fakeImpresion, selector *fakeSelector) (*Pipeline, *fakeExportadorPDF, *fakeExportadorExcel) {
	pdf := &fakeExportadorPDF{}
	excel := &fakeExportadorExcel{}
	p := NewPipeline(pdf, excel, fakeExportadorHTML{}, impresion, selector, logger.Nop())
	return p, pdf, excel
}

func TestExportacionesIndependientes(t *testing.T) {
	p, _, excel := armarPipeline(&fakeImpresion{}, &fakeSelector{})
	r := reporteDePrueba()

	pdf1, err := p.ExportarPDF(r)
	require.NoError(t, err)
	pdf2, err := p.ExportarPDF(r)
	require.NoError(t, err)
	assert.Equal(t, pdf1, pdf2, "el reporte no se consume al exportar")

	xlsx, err := p.ExportarExcel(r, OpcionesExcelPorDefecto())
	require.NoError(t, err)
	assert.Equal(t, []byte("XLSX:comprobante_acopio"), xlsx)
	assert.True(t, excel.ultimasOpts.DetectarTipoCelda)
	assert.False(t, excel.ultimasOpts.UnaPaginaPorHoja)

	html, err := p.ExportarHTML(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("<html>comprobante_acopio</html>"), html)

	assert.Equal(t, 1, r.TotalFilas, "las exportaciones no mutan el reporte")
}

func TestImprimirDirectoIgnoraMayusculas(t *testing.T) {
	impresion := &fakeImpresion{impresoras: []string{"HP-LaserJet", "EPSON-TM20"}}
	p, _, _ := armarPipeline(impresion, &fakeSelector{})

	err := p.ImprimirDirecto(context.Background(), reporteDePrueba(), "epson-tm20")
	require.NoError(t, err)

	require.Len(t, impresion.trabajos, 1)
	assert.Equal(t, "EPSON-TM20", impresion.trabajos[0].impresora, "se usa el nombre canónico enumerado")
	assert.Equal(t, []byte("PDF:comprobante_acopio"), impresion.trabajos[0].pdf)
}

func TestImprimirDirectoImpresoraDesconocida(t *testing.T) {
	impresion := &fakeImpresion{impresoras: []string{"HP-LaserJet"}}
	p, pdf, _ := armarPipeline(impresion, &fakeSelector{})

	err := p.ImprimirDirecto(context.Background(), reporteDePrueba(), "Canon-G3110")
	assert.ErrorIs(t, err, domain.ErrImpresoraNoEncontrada)
	assert.Contains(t, err.Error(), "Canon-G3110")
	assert.Empty(t, impresion.trabajos)
	assert.Zero(t, pdf.llamadas, "sin impresora no se genera el PDF")
}

func TestImprimirPredeterminada(t *testing.T) {
	impresion := &fakeImpresion{
		impresoras:     []string{"HP-LaserJet", "EPSON-TM20"},
		predeterminada: "EPSON-TM20",
	}
	p, _, _ := armarPipeline(impresion, &fakeSelector{})

	resultado, err := p.ImprimirPredeterminada(context.Background(), reporteDePrueba())
	require.NoError(t, err)
	assert.Equal(t, "EPSON-TM20", resultado.Impresora)
	assert.False(t, resultado.UsoAlternativa)
	require.Len(t, impresion.trabajos, 1)
}

func TestImprimirPredeterminadaSinPredeterminadaUsaLaPrimera(t *testing.T) {
	impresion := &fakeImpresion{impresoras: []string{"HP-LaserJet", "EPSON-TM20"}}
	p, _, _ := armarPipeline(impresion, &fakeSelector{})

	resultado, err := p.ImprimirPredeterminada(context.Background(), reporteDePrueba())
	require.NoError(t, err)
	assert.Equal(t, "HP-LaserJet", resultado.Impresora)
	assert.True(t, resultado.UsoAlternativa, "el caller puede distinguir el camino de respaldo")
}

func TestImprimirPredeterminadaSinImpresoras(t *testing.T) {
	impresion := &fakeImpresion{}
	p, _, _ := armarPipeline(impresion, &fakeSelector{})

	_, err := p.ImprimirPredeterminada(context.Background(), reporteDePrueba())
	assert.ErrorIs(t, err, domain.ErrImpresoraNoEncontrada)
	assert.Empty(t, impresion.trabajos)
}

func TestImprimirConDialogo(t *testing.T) {
	impresion := &fakeImpresion{impresoras: []string{"HP-LaserJet", "EPSON-TM20"}}
	selector := &fakeSelector{eleccion: "EPSON-TM20"}
	p, _, _ := armarPipeline(impresion, selector)

	elegida, err := p.ImprimirConDialogo(context.Background(), reporteDePrueba())
	require.NoError(t, err)
	assert.Equal(t, "EPSON-TM20", elegida)
	assert.True(t, selector.invocado)
	assert.Equal(t, []string{"HP-LaserJet", "EPSON-TM20"}, selector.ofrecidas)
	require.Len(t, impresion.trabajos, 1)
	assert.Equal(t, "EPSON-TM20", impresion.trabajos[0].impresora)
}

func TestImprimirConDialogoCancelado(t *testing.T) {
	impresion := &fakeImpresion{impresoras: []string{"HP-LaserJet"}}
	selector := &fakeSelector{errCancela: errors.New("cancelado por el usuario")}
	p, _, _ := armarPipeline(impresion, selector)

	_, err := p.ImprimirConDialogo(context.Background(), reporteDePrueba())
	require.Error(t, err)
	assert.Empty(t, impresion.trabajos)
}

func TestImprimirDirectoFallaEnumeracion(t *testing.T) {
	impresion := &fakeImpresion{errListar: errors.New("spooler caído")}
	p, _, _ := armarPipeline(impresion, &fakeSelector{})

	err := p.ImprimirDirecto(context.Background(), reporteDePrueba(), "HP-LaserJet")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrImpresoraNoEncontrada)
}
