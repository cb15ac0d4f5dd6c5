package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sysacopio/acopio-api/internal/application/dto"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
)

// MaterialHandler maneja el catálogo de materiales acopiables.
type MaterialHandler struct {
	repo repository.MaterialRepository
}

// NewMaterialHandler construye el handler de materiales.
func NewMaterialHandler(repo repository.MaterialRepository) *MaterialHandler {
	return &MaterialHandler{repo: repo}
}

// List godoc
// @Summary      Listar materiales
// @Tags         materiales
// @Produce      json
// @Param        activos  query  bool  false  "solo materiales activos"
// @Success      200  {array}  map[string]any
// @Router       /api/materiales [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	materiales, err := h.repo.List(c.QueryBool("activos"))
	if err != nil {
		return respuestaError(c, err)
	}
	out := make([]fiber.Map, 0, len(materiales))
	for _, m := range materiales {
		out = append(out, fiber.Map{
			"id":          m.ID,
			"nombre":      m.Nombre,
			"descripcion": m.Descripcion,
			"activo":      m.Activo,
		})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar un material
// @Tags         materiales
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/materiales [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in struct {
		Nombre      string `json:"nombre"`
		Descripcion string `json:"descripcion"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	m := &entity.Material{Nombre: in.Nombre, Descripcion: in.Descripcion, Activo: true}
	if err := h.repo.Create(m); err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": m.ID, "nombre": m.Nombre})
}
