package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sysacopio/acopio-api/internal/application/dto"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
)

// ProveedorHandler maneja el padrón de proveedores.
type ProveedorHandler struct {
	repo repository.ProveedorRepository
}

// NewProveedorHandler construye el handler de proveedores.
func NewProveedorHandler(repo repository.ProveedorRepository) *ProveedorHandler {
	return &ProveedorHandler{repo: repo}
}

// Create godoc
// @Summary      Registrar un proveedor
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProveedorRequest  true  "datos del proveedor"
// @Success      201   {object}  dto.ProveedorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/proveedores [post]
func (h *ProveedorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.NombreCompleto == "" || in.TipoDocumento == "" || in.NumeroDocumento == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre_completo, tipo_documento y numero_documento son requeridos"})
	}
	p := &entity.Proveedor{
		NombreCompleto:  in.NombreCompleto,
		TipoDocumento:   in.TipoDocumento,
		NumeroDocumento: in.NumeroDocumento,
		Direccion:       in.Direccion,
		Telefono:        in.Telefono,
		Activo:          true,
	}
	if err := h.repo.Create(p); err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(proveedorToResponse(p))
}

// List godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Produce      json
// @Param        activos  query  bool  false  "solo proveedores activos"
// @Success      200  {array}  dto.ProveedorResponse
// @Router       /api/proveedores [get]
func (h *ProveedorHandler) List(c *fiber.Ctx) error {
	proveedores, err := h.repo.List(c.QueryBool("activos"))
	if err != nil {
		return respuestaError(c, err)
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for _, p := range proveedores {
		out = append(out, proveedorToResponse(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un proveedor
// @Tags         proveedores
// @Produce      json
// @Param        id  path  int  true  "ID del proveedor"
// @Success      200  {object}  dto.ProveedorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [get]
func (h *ProveedorHandler) GetByID(c *fiber.Ctx) error {
	id, err := parsearID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	p, err := h.repo.GetByID(id)
	if err != nil {
		return respuestaError(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el proveedor no existe"})
	}
	return c.JSON(proveedorToResponse(p))
}

// Desactivar godoc
// @Summary      Desactivar un proveedor
// @Description  Un proveedor desactivado ya no puede registrar acopios; su
// @Description  historial queda intacto.
// @Tags         proveedores
// @Param        id  path  int  true  "ID del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id}/desactivar [post]
func (h *ProveedorHandler) Desactivar(c *fiber.Ctx) error {
	id, err := parsearID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	p, err := h.repo.GetByID(id)
	if err != nil {
		return respuestaError(c, err)
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el proveedor no existe"})
	}
	p.Activo = false
	if err := h.repo.Update(p); err != nil {
		return respuestaError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func proveedorToResponse(p *entity.Proveedor) dto.ProveedorResponse {
	return dto.ProveedorResponse{
		ID:              p.ID,
		NombreCompleto:  p.NombreCompleto,
		TipoDocumento:   p.TipoDocumento,
		NumeroDocumento: p.NumeroDocumento,
		Direccion:       p.Direccion,
		Telefono:        p.Telefono,
		Activo:          p.Activo,
	}
}
