// Package report define el modelo de plantillas de reporte: una definición
// JSON escrita a mano (bandas de título y pie como text/template, columnas
// tipadas) que se compila a una forma ejecutable reutilizable, y el render
// que la combina con parámetros y filas para producir un reporte paginado.
package report

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/sysacopio/acopio-api/internal/domain"
)

// Formatos de columna soportados.
const (
	FormatoTexto  = "texto"
	FormatoEntero = "entero"
	FormatoMoneda = "moneda"
	FormatoFecha  = "fecha"
)

// Alineaciones de celda.
const (
	AlineacionIzquierda = "izquierda"
	AlineacionCentro    = "centro"
	AlineacionDerecha   = "derecha"
)

// Columna describe una columna del detalle del reporte.
type Columna struct {
	Campo      string `json:"campo"`
	Titulo     string `json:"titulo"`
	Ancho      int    `json:"ancho"` // proporción en la grilla de 12 columnas
	Alineacion string `json:"alineacion,omitempty"`
	Formato    string `json:"formato,omitempty"`
}

// Definicion es el esquema fuente de una plantilla (.reporte.json).
// Titulo, Subtitulo y PiePagina son expresiones text/template evaluadas
// contra los parámetros del render.
type Definicion struct {
	Nombre         string    `json:"nombre"`
	Titulo         string    `json:"titulo"`
	Subtitulo      string    `json:"subtitulo,omitempty"`
	TamanoPagina   string    `json:"tamanoPagina,omitempty"`   // default A4
	FilasPorPagina int       `json:"filasPorPagina,omitempty"` // default 30
	Parametros     []string  `json:"parametros"`               // requeridos en el render
	Columnas       []Columna `json:"columnas"`
	PiePagina      []string  `json:"piePagina,omitempty"`
}

// PlantillaCompilada es la forma ejecutable: definición validada y
// normalizada más las bandas text/template ya parseadas. Se reutiliza para
// cualquier cantidad de renders.
type PlantillaCompilada struct {
	Def       Definicion
	titulo    *template.Template
	subtitulo *template.Template
	pie       []*template.Template
}

// Compilar parsea la fuente JSON, valida, normaliza (defaults) y parsea las
// bandas. Es el único camino de una fuente a una plantilla ejecutable.
func Compilar(nombre string, src []byte) (*PlantillaCompilada, error) {
	var def Definicion
	if err := json.Unmarshal(src, &def); err != nil {
		return nil, fmt.Errorf("plantilla %s: JSON inválido: %w", nombre, err)
	}
	if def.Nombre == "" {
		def.Nombre = nombre
	}
	if err := validar(&def); err != nil {
		return nil, fmt.Errorf("plantilla %s: %w", nombre, err)
	}
	normalizar(&def)
	return parsear(def)
}

// DesdeDefinicion re-arma la plantilla ejecutable a partir de una definición
// ya validada y normalizada (la del artefacto compilado). Salta la
// validación y la resolución de fuente.
func DesdeDefinicion(def Definicion) (*PlantillaCompilada, error) {
	return parsear(def)
}

func validar(def *Definicion) error {
	if def.Titulo == "" {
		return fmt.Errorf("falta el título")
	}
	if len(def.Columnas) == 0 {
		return fmt.Errorf("sin columnas de detalle")
	}
	ancho := 0
	for i, c := range def.Columnas {
		if c.Campo == "" {
			return fmt.Errorf("columna %d sin campo", i+1)
		}
		switch c.Formato {
		case "", FormatoTexto, FormatoEntero, FormatoMoneda, FormatoFecha:
		default:
			return fmt.Errorf("columna %s: formato desconocido %q", c.Campo, c.Formato)
		}
		switch c.Alineacion {
		case "", AlineacionIzquierda, AlineacionCentro, AlineacionDerecha:
		default:
			return fmt.Errorf("columna %s: alineación desconocida %q", c.Campo, c.Alineacion)
		}
		ancho += c.Ancho
	}
	if ancho > 12 {
		return fmt.Errorf("las columnas suman ancho %d (máximo 12)", ancho)
	}
	return nil
}

func normalizar(def *Definicion) {
	if def.TamanoPagina == "" {
		def.TamanoPagina = "A4"
	}
	if def.FilasPorPagina <= 0 {
		def.FilasPorPagina = 30
	}
	for i := range def.Columnas {
		c := &def.Columnas[i]
		if c.Formato == "" {
			c.Formato = FormatoTexto
		}
		if c.Alineacion == "" {
			if c.Formato == FormatoMoneda || c.Formato == FormatoEntero {
				c.Alineacion = AlineacionDerecha
			} else {
				c.Alineacion = AlineacionIzquierda
			}
		}
		if c.Ancho <= 0 {
			c.Ancho = 1
		}
		if c.Titulo == "" {
			c.Titulo = c.Campo
		}
	}
}

func parsear(def Definicion) (*PlantillaCompilada, error) {
	p := &PlantillaCompilada{Def: def}
	var err error
	if p.titulo, err = parsearBanda(def.Nombre, "titulo", def.Titulo); err != nil {
		return nil, err
	}
	if def.Subtitulo != "" {
		if p.subtitulo, err = parsearBanda(def.Nombre, "subtitulo", def.Subtitulo); err != nil {
			return nil, err
		}
	}
	for i, linea := range def.PiePagina {
		t, err := parsearBanda(def.Nombre, fmt.Sprintf("pie%d", i), linea)
		if err != nil {
			return nil, err
		}
		p.pie = append(p.pie, t)
	}
	return p, nil
}

func parsearBanda(plantilla, banda, src string) (*template.Template, error) {
	t, err := template.New(plantilla + ":" + banda).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("plantilla %s: banda %s: %w", plantilla, banda, err)
	}
	return t, nil
}

func (p *PlantillaCompilada) ejecutarBanda(t *template.Template, params map[string]string) (string, error) {
	if t == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("%w: plantilla %s: %v", domain.ErrRender, p.Def.Nombre, err)
	}
	return buf.String(), nil
}

// Artefacto serializa la definición normalizada con gob. Cargar un artefacto
// evita releer y validar la fuente en el siguiente arranque del proceso.
func (p *PlantillaCompilada) Artefacto() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(p.Def); err != nil {
		return nil, fmt.Errorf("serializar artefacto %s: %w", p.Def.Nombre, err)
	}
	return buf.Bytes(), nil
}

// CargarArtefacto reconstruye la plantilla ejecutable desde un artefacto gob.
func CargarArtefacto(data []byte) (*PlantillaCompilada, error) {
	var def Definicion
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&def); err != nil {
		return nil, fmt.Errorf("artefacto corrupto: %w", err)
	}
	return parsear(def)
}
