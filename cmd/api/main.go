package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sysacopio/acopio-api/internal/application/acopio"
	"github.com/sysacopio/acopio-api/internal/application/auth"
	"github.com/sysacopio/acopio-api/internal/application/historial"
	appreport "github.com/sysacopio/acopio-api/internal/application/report"
	infraexcel "github.com/sysacopio/acopio-api/internal/infrastructure/excel"
	"github.com/sysacopio/acopio-api/internal/infrastructure/htmlexport"
	infrapdf "github.com/sysacopio/acopio-api/internal/infrastructure/pdf"
	"github.com/sysacopio/acopio-api/internal/infrastructure/postgres"
	"github.com/sysacopio/acopio-api/internal/infrastructure/printing"
	"github.com/sysacopio/acopio-api/internal/infrastructure/template"
	httpRouter "github.com/sysacopio/acopio-api/internal/interfaces/http"
	"github.com/sysacopio/acopio-api/pkg/config"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("preparar esquema de base de datos")
	}

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	acopioRepo := postgres.NewAcopioRepository(pool)
	historialRepo := postgres.NewHistorialRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	numerador := acopio.NewNumerador(cfg.Acopio.Prefijo, log)
	acopioUC := acopio.NewUseCase(txRunner, acopioRepo, proveedorRepo, numerador, log)
	historialUC := historial.NewUseCase(historialRepo, log)
	authUC := auth.NewUseCase(usuarioRepo, historialRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	// Plantillas de reporte: fuente JSON + artefactos compilados en disco.
	cache := appreport.NewCachePlantillas(
		template.NewFSSource(cfg.Reportes.DirFuentes),
		template.NewFSArtifacts(cfg.Reportes.DirCompilados),
		log,
	)
	if fallas := cache.PrecompilarTodas(appreport.Plantillas()); len(fallas) > 0 {
		for nombre, ferr := range fallas {
			log.Warn().Str("plantilla", nombre).Err(ferr).Msg("plantilla no precompilada")
		}
	}

	voucherUC := acopio.NewVoucherUseCase(acopioRepo, proveedorRepo, historialRepo, cache, log)
	reportesUC := appreport.NewReportesUseCase(cache, acopioRepo, proveedorRepo, log)

	spooler := printing.NewCUPS(log)
	pipeline := appreport.NewPipeline(
		infrapdf.NewMarotoExporter(),
		infraexcel.NewExcelizeExporter(),
		htmlexport.NewEtreeExporter(),
		spooler,
		printing.NewSelectorConsola(os.Stdin, os.Stdout),
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.Reportes.SwaggerFile,
		Path:     "docs",
		Title:    "SysAcopio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		AcopioUC:      acopioUC,
		VoucherUC:     voucherUC,
		HistorialUC:   historialUC,
		ReportesUC:    reportesUC,
		Pipeline:      pipeline,
		Spooler:       spooler,
		UsuarioRepo:   usuarioRepo,
		ProveedorRepo: proveedorRepo,
		MaterialRepo:  materialRepo,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
