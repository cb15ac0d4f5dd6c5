// Package htmlexport implementa la exportación de reportes a HTML. El
// documento se arma como árbol XHTML con etree, nunca concatenando strings:
// el escape de los valores queda garantizado por la librería.
package htmlexport

import (
	"fmt"

	"github.com/beevik/etree"

	appreport "github.com/sysacopio/acopio-api/internal/application/report"
	domreport "github.com/sysacopio/acopio-api/internal/domain/report"
)

var _ appreport.ExportadorHTML = (*EtreeExporter)(nil)

// EtreeExporter implementa report.ExportadorHTML.
type EtreeExporter struct{}

// NewEtreeExporter construye el exportador.
func NewEtreeExporter() *EtreeExporter { return &EtreeExporter{} }

// Exportar genera el documento HTML y devuelve sus bytes.
func (e *EtreeExporter) Exportar(r *domreport.ReporteGenerado) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("lang", "es")

	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	head.CreateElement("title").SetText(r.Titulo)
	head.CreateElement("style").SetText(estilos)

	body := html.CreateElement("body")
	body.CreateElement("h1").SetText(r.Titulo)
	if r.Subtitulo != "" {
		body.CreateElement("h2").SetText(r.Subtitulo)
	}

	for _, pagina := range r.Paginas {
		seccion := body.CreateElement("section")
		seccion.CreateAttr("class", "pagina")
		seccion.CreateAttr("data-pagina", fmt.Sprintf("%d", pagina.Numero))

		tabla := seccion.CreateElement("table")
		thead := tabla.CreateElement("thead")
		filaCabecera := thead.CreateElement("tr")
		for _, c := range r.Columnas {
			th := filaCabecera.CreateElement("th")
			th.CreateAttr("class", "al-"+c.Alineacion)
			th.SetText(c.Titulo)
		}
		tbody := tabla.CreateElement("tbody")
		for _, fila := range pagina.Filas {
			tr := tbody.CreateElement("tr")
			for i, valor := range fila {
				td := tr.CreateElement("td")
				td.CreateAttr("class", "al-"+r.Columnas[i].Alineacion)
				td.SetText(valor)
			}
		}
	}

	if len(r.PiePagina) > 0 {
		pie := body.CreateElement("footer")
		for _, linea := range r.PiePagina {
			pie.CreateElement("p").SetText(linea)
		}
	}

	generado := body.CreateElement("p")
	generado.CreateAttr("class", "generado")
	generado.SetText(fmt.Sprintf("Generado: %s · %d filas",
		domreport.FormatearFecha(r.GeneradoEn), r.TotalFilas))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("html: serializar documento: %w", err)
	}
	return out, nil
}

const estilos = `
body { font-family: Helvetica, Arial, sans-serif; font-size: 13px; margin: 2em; }
h1 { color: #00467f; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5em; }
th { background: #00467f; color: #fff; padding: 4px 6px; }
td { border-bottom: 1px solid #ddd; padding: 3px 6px; }
.al-derecha { text-align: right; }
.al-centro { text-align: center; }
.al-izquierda { text-align: left; }
footer p { font-weight: bold; text-align: right; }
.generado { color: #646464; font-size: 11px; text-align: right; }
`
