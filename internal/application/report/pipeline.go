package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/sysacopio/acopio-api/internal/domain"
	domreport "github.com/sysacopio/acopio-api/internal/domain/report"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

// Pipeline convierte un reporte generado en sus salidas finales: PDF, hoja de
// cálculo, HTML o impresión. Cada llamada consume el reporte sin mutarlo, así
// que exportar dos veces produce dos salidas independientes.
type Pipeline struct {
	pdf       ExportadorPDF
	excel     ExportadorExcel
	html      ExportadorHTML
	impresion ServicioImpresion
	selector  SelectorImpresora
	log       *logger.Logger
}

// NewPipeline construye el pipeline de exportación.
func NewPipeline(
	pdf ExportadorPDF,
	excel ExportadorExcel,
	html ExportadorHTML,
	impresion ServicioImpresion,
	selector SelectorImpresora,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		pdf:       pdf,
		excel:     excel,
		html:      html,
		impresion: impresion,
		selector:  selector,
		log:       log,
	}
}

// ExportarPDF produce el documento PDF del reporte.
func (p *Pipeline) ExportarPDF(r *domreport.ReporteGenerado) ([]byte, error) {
	p.log.Info().Str("plantilla", r.Plantilla).Msg("exportando reporte a PDF")
	return p.pdf.Exportar(r)
}

// ExportarExcel produce el libro XLSX del reporte con las opciones dadas.
func (p *Pipeline) ExportarExcel(r *domreport.ReporteGenerado, opts OpcionesExcel) ([]byte, error) {
	p.log.Info().Str("plantilla", r.Plantilla).Msg("exportando reporte a Excel")
	return p.excel.Exportar(r, opts)
}

// ExportarHTML produce el documento HTML del reporte.
func (p *Pipeline) ExportarHTML(r *domreport.ReporteGenerado) ([]byte, error) {
	p.log.Info().Str("plantilla", r.Plantilla).Msg("exportando reporte a HTML")
	return p.html.Exportar(r)
}

// ImprimirDirecto envía el reporte a la impresora nombrada. El nombre se
// compara contra las impresoras enumeradas sin distinguir mayúsculas; si
// ninguna coincide falla con domain.ErrImpresoraNoEncontrada sin tocar el
// reporte.
func (p *Pipeline) ImprimirDirecto(ctx context.Context, r *domreport.ReporteGenerado, impresora string) error {
	p.log.Info().Str("impresora", impresora).Msg("imprimiendo directamente")

	disponibles, err := p.impresion.ListarImpresoras()
	if err != nil {
		return fmt.Errorf("enumerar impresoras: %w", err)
	}
	elegida := ""
	for _, nombre := range disponibles {
		if strings.EqualFold(nombre, impresora) {
			elegida = nombre
			break
		}
	}
	if elegida == "" {
		return fmt.Errorf("%w: %s", domain.ErrImpresoraNoEncontrada, impresora)
	}
	return p.enviar(ctx, r, elegida)
}

// ResultadoImpresion informa a qué impresora se envió el trabajo y si se usó
// una alternativa por falta de predeterminada (señal de advertencia
// distinguible del camino exitoso normal).
type ResultadoImpresion struct {
	Impresora      string
	UsoAlternativa bool
}

// ImprimirPredeterminada envía el reporte a la impresora predeterminada del
// sistema. Si no hay predeterminada usa la primera enumerada, dejando
// constancia en el resultado y en el log; sin ninguna impresora falla con un
// mensaje claro.
func (p *Pipeline) ImprimirPredeterminada(ctx context.Context, r *domreport.ReporteGenerado) (ResultadoImpresion, error) {
	predeterminada, err := p.impresion.ImpresoraPredeterminada()
	if err != nil {
		return ResultadoImpresion{}, fmt.Errorf("consultar impresora predeterminada: %w", err)
	}
	resultado := ResultadoImpresion{Impresora: predeterminada}
	if predeterminada == "" {
		disponibles, err := p.impresion.ListarImpresoras()
		if err != nil {
			return ResultadoImpresion{}, fmt.Errorf("enumerar impresoras: %w", err)
		}
		if len(disponibles) == 0 {
			return ResultadoImpresion{}, fmt.Errorf("%w: no hay ninguna impresora instalada en el sistema",
				domain.ErrImpresoraNoEncontrada)
		}
		resultado.Impresora = disponibles[0]
		resultado.UsoAlternativa = true
		p.log.Warn().Str("impresora", resultado.Impresora).
			Msg("no hay impresora predeterminada, usando la primera disponible")
	}
	if err := p.enviar(ctx, r, resultado.Impresora); err != nil {
		return ResultadoImpresion{}, err
	}
	return resultado, nil
}

// ImprimirConDialogo delega la elección de impresora al selector interactivo
// inyectado y envía el reporte a la elegida. No es determinista por contrato:
// el selector puede ser un humano.
func (p *Pipeline) ImprimirConDialogo(ctx context.Context, r *domreport.ReporteGenerado) (string, error) {
	disponibles, err := p.impresion.ListarImpresoras()
	if err != nil {
		return "", fmt.Errorf("enumerar impresoras: %w", err)
	}
	elegida, err := p.selector.Seleccionar(ctx, disponibles)
	if err != nil {
		return "", fmt.Errorf("selección de impresora: %w", err)
	}
	if err := p.enviar(ctx, r, elegida); err != nil {
		return "", err
	}
	return elegida, nil
}

func (p *Pipeline) enviar(ctx context.Context, r *domreport.ReporteGenerado, impresora string) error {
	pdf, err := p.pdf.Exportar(r)
	if err != nil {
		return fmt.Errorf("generar PDF para impresión: %w", err)
	}
	if err := p.impresion.Imprimir(ctx, impresora, pdf); err != nil {
		return fmt.Errorf("imprimir en %s: %w", impresora, err)
	}
	p.log.Info().Str("impresora", impresora).Msg("reporte enviado a impresora")
	return nil
}
