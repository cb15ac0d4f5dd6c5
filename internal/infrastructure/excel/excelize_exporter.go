// Package excel implementa la exportación de reportes a XLSX usando excelize.
package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	appreport "github.com/sysacopio/acopio-api/internal/application/report"
	domreport "github.com/sysacopio/acopio-api/internal/domain/report"
)

var _ appreport.ExportadorExcel = (*ExcelizeExporter)(nil)

// ExcelizeExporter implementa report.ExportadorExcel. Las opciones controlan
// la distribución (una hoja por página o todo junto) y si los valores
// numéricos se escriben como números o como el texto ya formateado.
type ExcelizeExporter struct{}

// NewExcelizeExporter construye el exportador.
func NewExcelizeExporter() *ExcelizeExporter { return &ExcelizeExporter{} }

// Exportar genera el libro XLSX y devuelve sus bytes.
func (e *ExcelizeExporter) Exportar(r *domreport.ReporteGenerado, opts appreport.OpcionesExcel) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	estiloCabecera, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo cabecera: %w", err)
	}
	var estiloFondo int
	if !opts.FondoBlanco {
		estiloFondo, err = f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F2F2F2"}},
		})
		if err != nil {
			return nil, fmt.Errorf("excel: estilo fondo: %w", err)
		}
	}

	if opts.UnaPaginaPorHoja {
		for _, pagina := range r.Paginas {
			hoja := fmt.Sprintf("Página %d", pagina.Numero)
			if _, err := f.NewSheet(hoja); err != nil {
				return nil, fmt.Errorf("excel: crear hoja: %w", err)
			}
			if err := e.escribirHoja(f, hoja, r, pagina.Filas, opts, estiloCabecera, estiloFondo); err != nil {
				return nil, err
			}
		}
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("excel: eliminar hoja inicial: %w", err)
		}
	} else {
		hoja := "Reporte"
		if err := f.SetSheetName("Sheet1", hoja); err != nil {
			return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
		}
		var filas [][]string
		for _, pagina := range r.Paginas {
			filas = append(filas, pagina.Filas...)
		}
		if err := e.escribirHoja(f, hoja, r, filas, opts, estiloCabecera, estiloFondo); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *ExcelizeExporter) escribirHoja(
	f *excelize.File,
	hoja string,
	r *domreport.ReporteGenerado,
	filas [][]string,
	opts appreport.OpcionesExcel,
	estiloCabecera, estiloFondo int,
) error {
	fila := 1
	if err := f.SetCellValue(hoja, celda(1, fila), r.Titulo); err != nil {
		return fmt.Errorf("excel: escribir título: %w", err)
	}
	fila++
	if r.Subtitulo != "" {
		if err := f.SetCellValue(hoja, celda(1, fila), r.Subtitulo); err != nil {
			return fmt.Errorf("excel: escribir subtítulo: %w", err)
		}
		fila++
	}
	if !opts.ColapsarFilas {
		fila++ // línea en blanco antes de la tabla
	}

	filaCabecera := fila
	for i, c := range r.Columnas {
		if err := f.SetCellValue(hoja, celda(i+1, fila), c.Titulo); err != nil {
			return fmt.Errorf("excel: escribir cabecera: %w", err)
		}
	}
	if err := f.SetCellStyle(hoja, celda(1, filaCabecera), celda(len(r.Columnas), filaCabecera), estiloCabecera); err != nil {
		return fmt.Errorf("excel: aplicar estilo de cabecera: %w", err)
	}
	fila++

	for _, celdas := range filas {
		for i, valor := range celdas {
			ref := celda(i+1, fila)
			if err := e.escribirCelda(f, hoja, ref, valor, r.Columnas[i].Formato, opts); err != nil {
				return err
			}
		}
		if !opts.FondoBlanco && fila%2 == 0 {
			if err := f.SetCellStyle(hoja, celda(1, fila), celda(len(r.Columnas), fila), estiloFondo); err != nil {
				return fmt.Errorf("excel: aplicar fondo: %w", err)
			}
		}
		fila++
	}

	if !opts.ColapsarFilas {
		fila++
	}
	for _, linea := range r.PiePagina {
		if err := f.SetCellValue(hoja, celda(1, fila), linea); err != nil {
			return fmt.Errorf("excel: escribir pie: %w", err)
		}
		fila++
	}
	return nil
}

// escribirCelda escribe un valor ya formateado. Con DetectarTipoCelda los
// enteros y montos se convierten al número subyacente para que Excel pueda
// operar con ellos; sin la opción todo va como texto.
func (e *ExcelizeExporter) escribirCelda(f *excelize.File, hoja, ref, valor, formato string, opts appreport.OpcionesExcel) error {
	if opts.DetectarTipoCelda {
		switch formato {
		case domreport.FormatoEntero:
			if n, err := strconv.ParseInt(valor, 10, 64); err == nil {
				if err := f.SetCellValue(hoja, ref, n); err != nil {
					return fmt.Errorf("excel: escribir celda: %w", err)
				}
				return nil
			}
		case domreport.FormatoMoneda:
			limpio := strings.ReplaceAll(valor, ",", "")
			if x, err := strconv.ParseFloat(limpio, 64); err == nil {
				if err := f.SetCellValue(hoja, ref, x); err != nil {
					return fmt.Errorf("excel: escribir celda: %w", err)
				}
				return nil
			}
		}
	}
	if err := f.SetCellValue(hoja, ref, valor); err != nil {
		return fmt.Errorf("excel: escribir celda: %w", err)
	}
	return nil
}

func celda(columna, fila int) string {
	ref, _ := excelize.CoordinatesToCellName(columna, fila)
	return ref
}
