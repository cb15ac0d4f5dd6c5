// Package pdf implementa la exportación de reportes a PDF usando Maroto v2.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────┐
//	│  TÍTULO (banda ya renderizada)              │
//	│  Subtítulo                                  │
//	│  ─────────────────────────────────────────  │
//	│  TABLA: cabeceras + filas ya formateadas    │
//	│  ─────────────────────────────────────────  │
//	│  PIE DE PÁGINA (líneas de totales)          │
//	│  Generado: fecha · N filas                  │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appreport "github.com/sysacopio/acopio-api/internal/application/report"
	domreport "github.com/sysacopio/acopio-api/internal/domain/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ appreport.ExportadorPDF = (*MarotoExporter)(nil)

// MarotoExporter implementa report.ExportadorPDF usando Maroto v2. Consume el
// reporte ya renderizado: todo el texto llega formateado, aquí solo se
// diagrama.
type MarotoExporter struct{}

// NewMarotoExporter construye el exportador.
func NewMarotoExporter() *MarotoExporter { return &MarotoExporter{} }

// Exportar genera el PDF y devuelve sus bytes.
func (e *MarotoExporter) Exportar(r *domreport.ReporteGenerado) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(tamanoPagina(r.TamanoPagina)).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Titulo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(tituloRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for i, pagina := range r.Paginas {
		if i > 0 {
			m.AddRows(line.NewRow(2))
		}
		m.AddRows(cabeceraTablaRow(r.Columnas))
		for _, fila := range pagina.Filas {
			m.AddRows(filaRow(r.Columnas, fila))
		}
	}

	if len(r.PiePagina) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		for _, linea := range r.PiePagina {
			m.AddRows(row.New(6).Add(
				col.New(12).Add(text.New(linea, props.Text{
					Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 1,
				})),
			))
		}
	}

	m.AddRows(row.New(6).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Generado: %s   ·   %d filas",
				domreport.FormatearFecha(r.GeneradoEn), r.TotalFilas),
			props.Text{Size: 7, Align: align.Right, Top: 2, Color: colorGray},
		)),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func tamanoPagina(t string) pagesize.Type {
	switch t {
	case "Carta", "Letter":
		return pagesize.Letter
	default:
		return pagesize.A4
	}
}

func tituloRow(r *domreport.ReporteGenerado) core.Row {
	alto := float64(10)
	cols := []core.Component{
		text.New(r.Titulo, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
	}
	if r.Subtitulo != "" {
		alto = 16
		cols = append(cols, text.New(r.Subtitulo, props.Text{
			Size: 9, Top: 9, Color: colorGray,
		}))
	}
	return row.New(alto).Add(col.New(12).Add(cols...))
}

func cabeceraTablaRow(columnas []domreport.Columna) core.Row {
	cols := make([]core.Col, 0, len(columnas)+1)
	usado := 0
	for _, c := range columnas {
		usado += c.Ancho
		cols = append(cols, col.New(c.Ancho).Add(text.New(c.Titulo, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alinear(c.Alineacion),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	if usado < 12 {
		cols = append(cols, col.New(12-usado))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(cols...)
}

func filaRow(columnas []domreport.Columna, celdas []string) core.Row {
	cols := make([]core.Col, 0, len(columnas)+1)
	usado := 0
	for i, c := range columnas {
		usado += c.Ancho
		cols = append(cols, col.New(c.Ancho).Add(text.New(celdas[i], props.Text{
			Size: 8, Align: alinear(c.Alineacion), Top: 1, Left: 1, Right: 1,
		})))
	}
	if usado < 12 {
		cols = append(cols, col.New(12-usado))
	}
	return row.New(6).Add(cols...)
}

func alinear(a string) align.Type {
	switch a {
	case domreport.AlineacionDerecha:
		return align.Right
	case domreport.AlineacionCentro:
		return align.Center
	default:
		return align.Left
	}
}
