package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sysacopio/acopio-api/internal/application/dto"
	appreport "github.com/sysacopio/acopio-api/internal/application/report"
)

// ReportesHandler maneja los reportes consolidados y la lista de impresoras.
type ReportesHandler struct {
	uc       *appreport.ReportesUseCase
	pipeline *appreport.Pipeline
	spooler  appreport.ServicioImpresion
}

// NewReportesHandler construye el handler de reportes.
func NewReportesHandler(
	uc *appreport.ReportesUseCase,
	pipeline *appreport.Pipeline,
	spooler appreport.ServicioImpresion,
) *ReportesHandler {
	return &ReportesHandler{uc: uc, pipeline: pipeline, spooler: spooler}
}

// AcopiosPeriodo godoc
// @Summary      Reporte de acopios por periodo
// @Tags         reportes
// @Produce      application/pdf
// @Param        inicio   query  string  true   "fecha inicio YYYY-MM-DD"
// @Param        fin      query  string  true   "fecha fin YYYY-MM-DD"
// @Param        formato  query  string  false  "pdf (default), xlsx o html"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/acopios-periodo [get]
func (h *ReportesHandler) AcopiosPeriodo(c *fiber.Ctx) error {
	inicio, fin, err := parsearRangoFechas(c.Query("inicio"), c.Query("fin"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	formato := c.Query("formato", FormatoPDF)
	r, err := h.uc.AcopiosPeriodo(c.Context(), inicio, fin)
	if err != nil {
		return respuestaError(c, err)
	}
	data, err := exportarSegunFormato(h.pipeline, r, formato)
	if err != nil {
		return respuestaError(c, err)
	}
	nombre := "acopios-" + c.Query("inicio") + "-" + c.Query("fin")
	return entregarReporte(c, nombre, formato, data)
}

// ProveedorHistorico godoc
// @Summary      Reporte histórico de un proveedor
// @Tags         reportes
// @Produce      application/pdf
// @Param        id       path   int     true   "ID del proveedor"
// @Param        formato  query  string  false  "pdf (default), xlsx o html"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/proveedores/{id}/historico [get]
func (h *ReportesHandler) ProveedorHistorico(c *fiber.Ctx) error {
	id, err := parsearID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	formato := c.Query("formato", FormatoPDF)
	r, err := h.uc.ProveedorHistorico(c.Context(), id)
	if err != nil {
		return respuestaError(c, err)
	}
	data, err := exportarSegunFormato(h.pipeline, r, formato)
	if err != nil {
		return respuestaError(c, err)
	}
	nombre := "proveedor-historico-" + c.Params("id")
	return entregarReporte(c, nombre, formato, data)
}

// Impresoras godoc
// @Summary      Listar impresoras instaladas
// @Tags         reportes
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/impresoras [get]
func (h *ReportesHandler) Impresoras(c *fiber.Ctx) error {
	disponibles, err := h.spooler.ListarImpresoras()
	if err != nil {
		return respuestaError(c, err)
	}
	predeterminada, err := h.spooler.ImpresoraPredeterminada()
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{
		"impresoras":     disponibles,
		"predeterminada": predeterminada,
	})
}
