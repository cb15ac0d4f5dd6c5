package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sysacopio/acopio-api/internal/application/acopio"
	"github.com/sysacopio/acopio-api/internal/application/dto"
	appreport "github.com/sysacopio/acopio-api/internal/application/report"
	"github.com/sysacopio/acopio-api/internal/domain"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/internal/domain/pricing"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
)

// AcopioHandler maneja el registro, anulación, consulta y voucher de acopios.
type AcopioHandler struct {
	uc          *acopio.UseCase
	voucherUC   *acopio.VoucherUseCase
	pipeline    *appreport.Pipeline
	usuarioRepo repository.UsuarioRepository
}

// NewAcopioHandler construye el handler de acopios.
func NewAcopioHandler(
	uc *acopio.UseCase,
	voucherUC *acopio.VoucherUseCase,
	pipeline *appreport.Pipeline,
	usuarioRepo repository.UsuarioRepository,
) *AcopioHandler {
	return &AcopioHandler{uc: uc, voucherUC: voucherUC, pipeline: pipeline, usuarioRepo: usuarioRepo}
}

// actor resuelve el usuario autenticado del token contra la base, para que la
// auditoría lleve el nombre completo y no solo el ID.
func (h *AcopioHandler) actor(c *fiber.Ctx) (*entity.Usuario, error) {
	userID := GetUserID(c)
	usuario, err := h.usuarioRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("consultar usuario del token: %w", err)
	}
	if usuario == nil {
		// El usuario fue eliminado después de emitido el token.
		return nil, fmt.Errorf("%w: usuario %s no existe", domain.ErrUnauthorized, userID)
	}
	return usuario, nil
}

// Create godoc
// @Summary      Registrar un acopio
// @Tags         acopios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAcopioRequest  true  "proveedor, fecha e items"
// @Success      201   {object}  dto.AcopioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/acopios [post]
func (h *AcopioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAcopioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProveedorID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "proveedor_id es requerido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items no puede estar vacío"})
	}

	var fecha time.Time
	if in.FechaAcopio != "" {
		var err error
		fecha, err = time.ParseInLocation("2006-01-02", in.FechaAcopio, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_acopio debe tener formato YYYY-MM-DD"})
		}
	}

	usuario, err := h.actor(c)
	if err != nil {
		return respuestaError(c, err)
	}

	items := make([]acopio.Item, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, acopio.Item{
			MaterialID:      it.MaterialID,
			Peso:            it.Peso,
			Ley:             it.Ley,
			Deduccion:       it.Deduccion,
			PrecioOnzaBase:  it.PrecioOnzaBase,
			TipoCambioDolar: it.TipoCambioDolar,
		})
	}

	creado, err := h.uc.Crear(c.Context(), usuario, in.ProveedorID, fecha, in.Observaciones, items)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(acopioToResponse(creado))
}

// List godoc
// @Summary      Listar acopios
// @Tags         acopios
// @Produce      json
// @Param        hoy           query  bool    false  "solo los del día en curso"
// @Param        proveedor_id  query  int     false  "filtrar por proveedor"
// @Param        inicio        query  string  false  "fecha inicio YYYY-MM-DD"
// @Param        fin           query  string  false  "fecha fin YYYY-MM-DD"
// @Success      200  {array}  dto.AcopioResponse
// @Router       /api/acopios [get]
func (h *AcopioHandler) List(c *fiber.Ctx) error {
	var (
		acopios []*entity.Acopio
		err     error
	)
	switch {
	case c.QueryBool("hoy"):
		acopios, err = h.uc.Hoy(c.Context())
	case c.Query("proveedor_id") != "":
		var proveedorID int64
		proveedorID, err = strconv.ParseInt(c.Query("proveedor_id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "proveedor_id debe ser numérico"})
		}
		acopios, err = h.uc.PorProveedor(c.Context(), proveedorID)
	case c.Query("inicio") != "" || c.Query("fin") != "":
		inicio, fin, perr := parsearRangoFechas(c.Query("inicio"), c.Query("fin"))
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: perr.Error()})
		}
		acopios, err = h.uc.PorFechas(c.Context(), inicio, fin)
	default:
		acopios, err = h.uc.Todos(c.Context())
	}
	if err != nil {
		return respuestaError(c, err)
	}
	out := make([]dto.AcopioResponse, 0, len(acopios))
	for _, a := range acopios {
		out = append(out, acopioToResponse(a))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un acopio con sus detalles
// @Tags         acopios
// @Produce      json
// @Param        id  path  int  true  "ID del acopio"
// @Success      200  {object}  dto.AcopioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/acopios/{id} [get]
func (h *AcopioHandler) GetByID(c *fiber.Ctx) error {
	id, err := parsearID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	a, err := h.uc.ObtenerPorID(c.Context(), id)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(acopioToResponse(a))
}

// Anular godoc
// @Summary      Anular un acopio
// @Tags         acopios
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del acopio"
// @Param        body  body  dto.AnularAcopioRequest  true  "motivo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/acopios/{id}/anular [post]
func (h *AcopioHandler) Anular(c *fiber.Ctx) error {
	id, err := parsearID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.AnularAcopioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Motivo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "motivo es requerido"})
	}
	usuario, err := h.actor(c)
	if err != nil {
		return respuestaError(c, err)
	}
	if err := h.uc.Anular(c.Context(), usuario, id, in.Motivo); err != nil {
		return respuestaError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Calcular godoc
// @Summary      Simular el importe de una línea sin persistir
// @Tags         acopios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalcularImporteRequest  true  "los cinco insumos del cálculo"
// @Success      200  {object}  dto.CalcularImporteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/acopios/calcular [post]
func (h *AcopioHandler) Calcular(c *fiber.Ctx) error {
	var in dto.CalcularImporteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	importe, err := pricing.Calcular(in.Peso, in.Ley, in.Deduccion, in.PrecioOnzaBase, in.TipoCambioDolar)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(dto.CalcularImporteResponse{Importe: importe})
}

// Resumen godoc
// @Summary      Resumen de acopios por rango de fechas
// @Tags         acopios
// @Produce      json
// @Param        inicio  query  string  true  "fecha inicio YYYY-MM-DD"
// @Param        fin     query  string  true  "fecha fin YYYY-MM-DD"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/acopios/resumen [get]
func (h *AcopioHandler) Resumen(c *fiber.Ctx) error {
	inicio, fin, err := parsearRangoFechas(c.Query("inicio"), c.Query("fin"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resumen, err := h.uc.ResumenPorFechas(c.Context(), inicio, fin)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{
		"cantidad":    resumen.Cantidad,
		"total_pagar": resumen.TotalPagar,
	})
}

// Voucher godoc
// @Summary      Descargar el voucher del acopio
// @Tags         acopios
// @Produce      application/pdf
// @Param        id       path   int     true   "ID del acopio"
// @Param        formato  query  string  false  "pdf (default), xlsx o html"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/acopios/{id}/voucher [get]
func (h *AcopioHandler) Voucher(c *fiber.Ctx) error {
	id, err := parsearID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	formato := c.Query("formato", FormatoPDF)
	usuario, err := h.actor(c)
	if err != nil {
		return respuestaError(c, err)
	}
	r, err := h.voucherUC.Generar(c.Context(), usuario, id)
	if err != nil {
		return respuestaError(c, err)
	}
	data, err := exportarSegunFormato(h.pipeline, r, formato)
	if err != nil {
		return respuestaError(c, err)
	}
	return entregarReporte(c, fmt.Sprintf("voucher-%d", id), formato, data)
}

// Imprimir godoc
// @Summary      Imprimir el voucher del acopio
// @Description  Con impresora nombrada imprime directo; sin nombre usa la
// @Description  predeterminada del sistema; con dialogo=true la elige el
// @Description  selector interactivo del servidor.
// @Tags         acopios
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del acopio"
// @Param        body  body  dto.ImprimirRequest  true  "impresora (opcional), dialogo (opcional)"
// @Success      200  {object}  dto.ImprimirResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/acopios/{id}/voucher/imprimir [post]
func (h *AcopioHandler) Imprimir(c *fiber.Ctx) error {
	id, err := parsearID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.ImprimirRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	usuario, err := h.actor(c)
	if err != nil {
		return respuestaError(c, err)
	}
	r, err := h.voucherUC.Generar(c.Context(), usuario, id)
	if err != nil {
		return respuestaError(c, err)
	}

	switch {
	case in.Dialogo:
		elegida, err := h.pipeline.ImprimirConDialogo(c.Context(), r)
		if err != nil {
			return respuestaError(c, err)
		}
		return c.JSON(dto.ImprimirResponse{Impresora: elegida})
	case in.Impresora != "":
		if err := h.pipeline.ImprimirDirecto(c.Context(), r, in.Impresora); err != nil {
			return respuestaError(c, err)
		}
		return c.JSON(dto.ImprimirResponse{Impresora: in.Impresora})
	default:
		resultado, err := h.pipeline.ImprimirPredeterminada(c.Context(), r)
		if err != nil {
			return respuestaError(c, err)
		}
		return c.JSON(dto.ImprimirResponse{
			Impresora:      resultado.Impresora,
			UsoAlternativa: resultado.UsoAlternativa,
		})
	}
}

func parsearID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// parsearRangoFechas interpreta inicio/fin YYYY-MM-DD como el rango
// [inicio 00:00, fin+1día 00:00) en hora local.
func parsearRangoFechas(inicio, fin string) (time.Time, time.Time, error) {
	if inicio == "" || fin == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("inicio y fin son requeridos juntos")
	}
	desde, err := time.ParseInLocation("2006-01-02", inicio, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("inicio debe tener formato YYYY-MM-DD")
	}
	hasta, err := time.ParseInLocation("2006-01-02", fin, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fin debe tener formato YYYY-MM-DD")
	}
	if hasta.Before(desde) {
		return time.Time{}, time.Time{}, fmt.Errorf("fin no puede ser anterior a inicio")
	}
	return desde, hasta.AddDate(0, 0, 1), nil
}

func acopioToResponse(a *entity.Acopio) dto.AcopioResponse {
	out := dto.AcopioResponse{
		ID:            a.ID,
		NumeroAcopio:  a.NumeroAcopio,
		ProveedorID:   a.ProveedorID,
		UsuarioID:     a.UsuarioID,
		FechaAcopio:   a.FechaAcopio,
		Estado:        a.Estado,
		TotalPagar:    a.TotalPagar,
		Observaciones: a.Observaciones,
	}
	for _, d := range a.Detalles {
		out.Detalles = append(out.Detalles, dto.AcopioDetalleResponse{
			NumeroItem:      d.NumeroItem,
			MaterialID:      d.MaterialID,
			Peso:            d.Peso,
			Ley:             d.Ley,
			Deduccion:       d.Deduccion,
			PrecioOnzaBase:  d.PrecioOnzaBase,
			TipoCambioDolar: d.TipoCambioDolar,
			Importe:         d.Importe,
		})
	}
	return out
}
