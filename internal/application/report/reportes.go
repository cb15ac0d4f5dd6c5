package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sysacopio/acopio-api/internal/domain"
	domreport "github.com/sysacopio/acopio-api/internal/domain/report"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

// Nombres de las plantillas del sistema.
const (
	PlantillaVoucher            = "comprobante_acopio"
	PlantillaAcopiosPeriodo     = "reporte_acopios_periodo"
	PlantillaProveedorHistorico = "reporte_proveedor_historico"
)

// Plantillas lista todas las plantillas conocidas (para pre-compilación).
func Plantillas() []string {
	return []string{PlantillaVoucher, PlantillaAcopiosPeriodo, PlantillaProveedorHistorico}
}

// ReportesUseCase genera los reportes consolidados (por periodo y por
// proveedor) a partir de la caché de plantillas.
type ReportesUseCase struct {
	cache         *CachePlantillas
	acopioRepo    repository.AcopioRepository
	proveedorRepo repository.ProveedorRepository
	log           *logger.Logger
}

// NewReportesUseCase construye el caso de uso.
func NewReportesUseCase(
	cache *CachePlantillas,
	acopioRepo repository.AcopioRepository,
	proveedorRepo repository.ProveedorRepository,
	log *logger.Logger,
) *ReportesUseCase {
	return &ReportesUseCase{
		cache:         cache,
		acopioRepo:    acopioRepo,
		proveedorRepo: proveedorRepo,
		log:           log,
	}
}

// AcopiosPeriodo genera el reporte de acopios entre dos fechas.
func (uc *ReportesUseCase) AcopiosPeriodo(_ context.Context, inicio, fin time.Time) (*domreport.ReporteGenerado, error) {
	uc.log.Info().
		Time("inicio", inicio).
		Time("fin", fin).
		Msg("generando reporte de acopios por periodo")

	acopios, err := uc.acopioRepo.ListByFechas(inicio, fin)
	if err != nil {
		return nil, fmt.Errorf("listar acopios del periodo: %w", err)
	}

	totalGeneral := decimal.Zero
	filas := make([]domreport.Fila, 0, len(acopios))
	for _, a := range acopios {
		totalGeneral = totalGeneral.Add(a.TotalPagar)
		filas = append(filas, domreport.Fila{
			"numeroAcopio": a.NumeroAcopio,
			"fechaAcopio":  a.FechaAcopio,
			"estado":       a.Estado,
			"totalPagar":   a.TotalPagar,
		})
	}

	plantilla, err := uc.cache.Resolver(PlantillaAcopiosPeriodo)
	if err != nil {
		return nil, err
	}
	params := map[string]any{
		"fechaInicio":     inicio,
		"fechaFin":        fin,
		"totalGeneral":    totalGeneral,
		"cantidadAcopios": len(acopios),
	}
	r, err := plantilla.Render(params, filas)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("registros", len(acopios)).Msg("reporte de acopios por periodo generado")
	return r, nil
}

// ProveedorHistorico genera el reporte histórico de un proveedor.
func (uc *ReportesUseCase) ProveedorHistorico(_ context.Context, proveedorID int64) (*domreport.ReporteGenerado, error) {
	proveedor, err := uc.proveedorRepo.GetByID(proveedorID)
	if err != nil {
		return nil, fmt.Errorf("consultar proveedor: %w", err)
	}
	if proveedor == nil {
		return nil, fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, proveedorID)
	}
	uc.log.Info().Str("proveedor", proveedor.NombreCompleto).Msg("generando reporte histórico del proveedor")

	acopios, err := uc.acopioRepo.ListByProveedor(proveedorID)
	if err != nil {
		return nil, fmt.Errorf("listar acopios del proveedor: %w", err)
	}

	totalPagado := decimal.Zero
	filas := make([]domreport.Fila, 0, len(acopios))
	for _, a := range acopios {
		totalPagado = totalPagado.Add(a.TotalPagar)
		filas = append(filas, domreport.Fila{
			"numeroAcopio": a.NumeroAcopio,
			"fechaAcopio":  a.FechaAcopio,
			"estado":       a.Estado,
			"totalPagar":   a.TotalPagar,
		})
	}

	plantilla, err := uc.cache.Resolver(PlantillaProveedorHistorico)
	if err != nil {
		return nil, err
	}
	direccion := proveedor.Direccion
	if direccion == "" {
		direccion = "-"
	}
	params := map[string]any{
		"proveedorNombre":    proveedor.NombreCompleto,
		"proveedorDocumento": proveedor.TipoDocumento + " - " + proveedor.NumeroDocumento,
		"proveedorDireccion": direccion,
		"totalAcopios":       len(acopios),
		"totalPagado":        totalPagado,
	}
	r, err := plantilla.Render(params, filas)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("acopios", len(acopios)).Msg("reporte histórico de proveedor generado")
	return r, nil
}
