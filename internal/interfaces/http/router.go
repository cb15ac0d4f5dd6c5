package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sysacopio/acopio-api/internal/application/acopio"
	"github.com/sysacopio/acopio-api/internal/application/auth"
	"github.com/sysacopio/acopio-api/internal/application/historial"
	appreport "github.com/sysacopio/acopio-api/internal/application/report"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	AcopioUC      *acopio.UseCase
	VoucherUC     *acopio.VoucherUseCase
	HistorialUC   *historial.UseCase
	ReportesUC    *appreport.ReportesUseCase
	Pipeline      *appreport.Pipeline
	Spooler       appreport.ServicioImpresion
	UsuarioRepo   repository.UsuarioRepository
	ProveedorRepo repository.ProveedorRepository
	MaterialRepo  repository.MaterialRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	soloAdmin := RequireRole(entity.RolAdmin)

	// Acopios (protegido; anular solo ADMIN)
	acopios := protected.Group("/acopios")
	acopioHandler := NewAcopioHandler(deps.AcopioUC, deps.VoucherUC, deps.Pipeline, deps.UsuarioRepo)
	acopios.Post("/", acopioHandler.Create)
	acopios.Get("/", acopioHandler.List)
	acopios.Post("/calcular", acopioHandler.Calcular)
	acopios.Get("/resumen", acopioHandler.Resumen)
	acopios.Get("/:id", acopioHandler.GetByID)
	acopios.Post("/:id/anular", soloAdmin, acopioHandler.Anular)
	acopios.Get("/:id/voucher", acopioHandler.Voucher)
	acopios.Post("/:id/voucher/imprimir", acopioHandler.Imprimir)

	// Proveedores (protegido; desactivar solo ADMIN)
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorRepo)
	proveedores.Post("/", proveedorHandler.Create)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Get("/:id", proveedorHandler.GetByID)
	proveedores.Post("/:id/desactivar", soloAdmin, proveedorHandler.Desactivar)

	// Materiales (protegido; crear solo ADMIN)
	materiales := protected.Group("/materiales")
	materialHandler := NewMaterialHandler(deps.MaterialRepo)
	materiales.Get("/", materialHandler.List)
	materiales.Post("/", soloAdmin, materialHandler.Create)

	// Historial (protegido, solo ADMIN)
	historialGroup := protected.Group("/historial", soloAdmin)
	historialHandler := NewHistorialHandler(deps.HistorialUC)
	historialGroup.Get("/", historialHandler.List)

	// Reportes e impresoras (protegido)
	reportesHandler := NewReportesHandler(deps.ReportesUC, deps.Pipeline, deps.Spooler)
	reportes := protected.Group("/reportes")
	reportes.Get("/acopios-periodo", reportesHandler.AcopiosPeriodo)
	reportes.Get("/proveedores/:id/historico", reportesHandler.ProveedorHistorico)
	protected.Get("/impresoras", reportesHandler.Impresoras)
}
