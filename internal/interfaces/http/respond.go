package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/sysacopio/acopio-api/internal/application/dto"
	appreport "github.com/sysacopio/acopio-api/internal/application/report"
	"github.com/sysacopio/acopio-api/internal/domain"
	domreport "github.com/sysacopio/acopio-api/internal/domain/report"
)

// respuestaError traduce los errores de dominio a códigos HTTP. Todo lo no
// reconocido es un 500 genérico.
func respuestaError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrImpresoraNoEncontrada):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRINTER_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrPeriodoAgotado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PERIODO_AGOTADO", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrPlantillaNoEncontrada):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "TEMPLATE_NOT_FOUND", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Formatos de descarga de reportes.
const (
	FormatoPDF   = "pdf"
	FormatoExcel = "xlsx"
	FormatoHTML  = "html"
)

// entregarReporte escribe los bytes del reporte con el content type y el
// nombre de archivo del formato pedido.
func entregarReporte(c *fiber.Ctx, nombre, formato string, data []byte) error {
	var contentType string
	switch formato {
	case FormatoPDF:
		contentType = "application/pdf"
	case FormatoExcel:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatoHTML:
		contentType = "text/html; charset=utf-8"
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: fmt.Sprintf("formato no soportado: %s (use pdf, xlsx o html)", formato),
		})
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.%s"`, nombre, formato))
	return c.Send(data)
}

// exportarSegunFormato resuelve el formato pedido contra el pipeline. El
// Excel usa las opciones históricas por defecto.
func exportarSegunFormato(p *appreport.Pipeline, r *domreport.ReporteGenerado, formato string) ([]byte, error) {
	switch formato {
	case FormatoPDF:
		return p.ExportarPDF(r)
	case FormatoExcel:
		return p.ExportarExcel(r, appreport.OpcionesExcelPorDefecto())
	case FormatoHTML:
		return p.ExportarHTML(r)
	default:
		return nil, fmt.Errorf("%w: formato no soportado: %s", domain.ErrEntradaInvalida, formato)
	}
}
