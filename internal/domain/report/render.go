package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/sysacopio/acopio-api/internal/domain"
)

// Locale fijado para todo formateo numérico y de fechas de los reportes.
// Nunca se hereda del entorno: el separador decimal debe ser el mismo en
// cualquier máquina donde corra el proceso.
var (
	localeReportes  = language.MustParse("es-PE")
	printerReportes = message.NewPrinter(localeReportes)
)

// FormatoFechaCorta es el formato de fechas usado en todos los reportes.
const FormatoFechaCorta = "02/01/2006"

// Fila es un registro del datasource del render (campo -> valor).
type Fila map[string]any

// Pagina agrupa las filas ya formateadas de una página.
type Pagina struct {
	Numero int
	Filas  [][]string // en el orden de las columnas de la plantilla
}

// ReporteGenerado es el resultado inmutable de ligar una plantilla con
// parámetros y filas: paginado, con todo el texto ya formateado. Cada
// exportación lo consume sin modificarlo.
type ReporteGenerado struct {
	Plantilla    string
	Titulo       string
	Subtitulo    string
	TamanoPagina string
	Columnas     []Columna
	Paginas      []Pagina
	PiePagina    []string
	Parametros   map[string]string
	TotalFilas   int
	GeneradoEn   time.Time
}

// Render liga la plantilla con los parámetros y las filas (secuencia finita,
// ordenada, de una sola pasada) y produce el reporte paginado.
// Falla con domain.ErrRender si falta un parámetro requerido o si una fila no
// tiene la forma que piden las columnas.
func (p *PlantillaCompilada) Render(params map[string]any, filas []Fila) (*ReporteGenerado, error) {
	formateados := make(map[string]string, len(params))
	for k, v := range params {
		formateados[k] = FormatearValor(v)
	}
	for _, requerido := range p.Def.Parametros {
		if _, ok := formateados[requerido]; !ok {
			return nil, fmt.Errorf("%w: plantilla %s: falta el parámetro %q",
				domain.ErrRender, p.Def.Nombre, requerido)
		}
	}

	titulo, err := p.ejecutarBanda(p.titulo, formateados)
	if err != nil {
		return nil, err
	}
	subtitulo, err := p.ejecutarBanda(p.subtitulo, formateados)
	if err != nil {
		return nil, err
	}

	r := &ReporteGenerado{
		Plantilla:    p.Def.Nombre,
		Titulo:       titulo,
		Subtitulo:    subtitulo,
		TamanoPagina: p.Def.TamanoPagina,
		Columnas:     append([]Columna(nil), p.Def.Columnas...),
		Parametros:   formateados,
		TotalFilas:   len(filas),
		GeneradoEn:   time.Now(),
	}

	var pagina Pagina
	pagina.Numero = 1
	for i, fila := range filas {
		celdas := make([]string, len(p.Def.Columnas))
		for j, col := range p.Def.Columnas {
			valor, ok := fila[col.Campo]
			if !ok {
				return nil, fmt.Errorf("%w: plantilla %s: la fila %d no tiene el campo %q",
					domain.ErrRender, p.Def.Nombre, i+1, col.Campo)
			}
			celda, err := formatearCelda(valor, col.Formato)
			if err != nil {
				return nil, fmt.Errorf("%w: plantilla %s: fila %d, campo %q: %v",
					domain.ErrRender, p.Def.Nombre, i+1, col.Campo, err)
			}
			celdas[j] = celda
		}
		pagina.Filas = append(pagina.Filas, celdas)
		if len(pagina.Filas) == p.Def.FilasPorPagina {
			r.Paginas = append(r.Paginas, pagina)
			pagina = Pagina{Numero: len(r.Paginas) + 1}
		}
	}
	if len(pagina.Filas) > 0 || len(r.Paginas) == 0 {
		r.Paginas = append(r.Paginas, pagina)
	}

	for _, t := range p.pie {
		linea, err := p.ejecutarBanda(t, formateados)
		if err != nil {
			return nil, err
		}
		r.PiePagina = append(r.PiePagina, linea)
	}
	return r, nil
}

// FormatearMoneda formatea un monto con el locale fijado (#,##0.00).
func FormatearMoneda(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printerReportes.Sprintf("%v", number.Decimal(f, number.Scale(2)))
}

// FormatearFecha formatea una fecha como dd/MM/yyyy.
func FormatearFecha(t time.Time) string {
	return t.Format(FormatoFechaCorta)
}

// FormatearValor formatea un valor de parámetro según su tipo dinámico.
func FormatearValor(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case decimal.Decimal:
		return FormatearMoneda(x)
	case time.Time:
		return FormatearFecha(x)
	case int:
		return printerReportes.Sprintf("%v", number.Decimal(x))
	case int64:
		return printerReportes.Sprintf("%v", number.Decimal(x))
	default:
		return fmt.Sprint(x)
	}
}

func formatearCelda(v any, formato string) (string, error) {
	switch formato {
	case FormatoMoneda:
		d, ok := v.(decimal.Decimal)
		if !ok {
			return "", fmt.Errorf("se esperaba un decimal, llegó %T", v)
		}
		return FormatearMoneda(d), nil
	case FormatoFecha:
		t, ok := v.(time.Time)
		if !ok {
			return "", fmt.Errorf("se esperaba una fecha, llegó %T", v)
		}
		return FormatearFecha(t), nil
	case FormatoEntero:
		switch n := v.(type) {
		case int:
			return fmt.Sprintf("%d", n), nil
		case int64:
			return fmt.Sprintf("%d", n), nil
		default:
			return "", fmt.Errorf("se esperaba un entero, llegó %T", v)
		}
	default: // texto
		return fmt.Sprint(v), nil
	}
}
