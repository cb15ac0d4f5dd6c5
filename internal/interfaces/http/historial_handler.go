package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sysacopio/acopio-api/internal/application/dto"
	"github.com/sysacopio/acopio-api/internal/application/historial"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
)

// HistorialHandler maneja la consulta del historial de movimientos. Las
// entradas se crean desde los casos de uso, nunca desde la API.
type HistorialHandler struct {
	uc *historial.UseCase
}

// NewHistorialHandler construye el handler de historial.
func NewHistorialHandler(uc *historial.UseCase) *HistorialHandler {
	return &HistorialHandler{uc: uc}
}

// List godoc
// @Summary      Consultar el historial de movimientos
// @Tags         historial
// @Produce      json
// @Param        usuario_id  query  string  false  "filtrar por usuario"
// @Param        modulo      query  string  false  "filtrar por módulo (ACOPIO, AUTH)"
// @Param        hoy         query  bool    false  "solo el día en curso"
// @Param        recientes   query  bool    false  "últimas 24 horas"
// @Param        inicio      query  string  false  "fecha inicio YYYY-MM-DD"
// @Param        fin         query  string  false  "fecha fin YYYY-MM-DD"
// @Success      200  {array}  dto.HistorialResponse
// @Router       /api/historial [get]
func (h *HistorialHandler) List(c *fiber.Ctx) error {
	var (
		movs []*entity.HistorialMovimiento
		err  error
	)
	switch {
	case c.Query("usuario_id") != "":
		movs, err = h.uc.PorUsuario(c.Context(), c.Query("usuario_id"))
	case c.Query("modulo") != "":
		movs, err = h.uc.PorModulo(c.Context(), c.Query("modulo"))
	case c.QueryBool("hoy"):
		movs, err = h.uc.Hoy(c.Context())
	case c.QueryBool("recientes"):
		movs, err = h.uc.Recientes(c.Context())
	case c.Query("inicio") != "" || c.Query("fin") != "":
		inicio, fin, perr := parsearRangoFechas(c.Query("inicio"), c.Query("fin"))
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: perr.Error()})
		}
		movs, err = h.uc.EntreFechas(c.Context(), inicio, fin)
	default:
		movs, err = h.uc.Todos(c.Context())
	}
	if err != nil {
		return respuestaError(c, err)
	}
	out := make([]dto.HistorialResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.HistorialResponse{
			ID:                  m.ID,
			UsuarioID:           m.UsuarioID,
			Username:            m.Username,
			Accion:              m.Accion,
			Descripcion:         m.Descripcion,
			Modulo:              m.Modulo,
			FechaHora:           m.FechaHora,
			DetallesAdicionales: m.DetallesAdicionales,
		})
	}
	return c.JSON(out)
}
