package acopio

import (
	"context"
	"fmt"

	"github.com/sysacopio/acopio-api/internal/application/historial"
	appreport "github.com/sysacopio/acopio-api/internal/application/report"
	"github.com/sysacopio/acopio-api/internal/domain"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	domreport "github.com/sysacopio/acopio-api/internal/domain/report"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

// VoucherUseCase genera el comprobante imprimible de un acopio: resuelve la
// plantilla en la caché, liga parámetros y detalles y deja constancia en el
// historial con la referencia al acopio (para reimpresiones).
type VoucherUseCase struct {
	acopioRepo    repository.AcopioRepository
	proveedorRepo repository.ProveedorRepository
	historialRepo repository.HistorialRepository
	cache         *appreport.CachePlantillas
	log           *logger.Logger
}

// NewVoucherUseCase construye el caso de uso.
func NewVoucherUseCase(
	acopioRepo repository.AcopioRepository,
	proveedorRepo repository.ProveedorRepository,
	historialRepo repository.HistorialRepository,
	cache *appreport.CachePlantillas,
	log *logger.Logger,
) *VoucherUseCase {
	return &VoucherUseCase{
		acopioRepo:    acopioRepo,
		proveedorRepo: proveedorRepo,
		historialRepo: historialRepo,
		cache:         cache,
		log:           log,
	}
}

// Generar produce el reporte del voucher para el acopio dado. La entrada de
// auditoría IMPRESION_VOUCHER lleva {"acopioId": id} como correlación.
func (uc *VoucherUseCase) Generar(ctx context.Context, usuario *entity.Usuario, acopioID int64) (*domreport.ReporteGenerado, error) {
	uc.log.Info().Int64("acopio_id", acopioID).Msg("generando voucher")

	acopio, err := uc.acopioRepo.GetByID(acopioID)
	if err != nil {
		return nil, fmt.Errorf("consultar acopio: %w", err)
	}
	if acopio == nil {
		return nil, fmt.Errorf("%w: no se encontró el acopio con ID %d", domain.ErrNotFound, acopioID)
	}
	proveedor, err := uc.proveedorRepo.GetByID(acopio.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("consultar proveedor: %w", err)
	}
	if proveedor == nil {
		return nil, fmt.Errorf("%w: proveedor %d del acopio %s", domain.ErrNotFound, acopio.ProveedorID, acopio.NumeroAcopio)
	}
	detalles, err := uc.acopioRepo.GetDetalles(acopioID)
	if err != nil {
		return nil, fmt.Errorf("consultar detalles: %w", err)
	}

	plantilla, err := uc.cache.Resolver(appreport.PlantillaVoucher)
	if err != nil {
		return nil, err
	}

	nombreUsuario := ""
	if usuario != nil {
		nombreUsuario = usuario.NombreCompleto
	}
	params := map[string]any{
		"numeroAcopio":       acopio.NumeroAcopio,
		"fechaAcopio":        acopio.FechaAcopio,
		"proveedorNombre":    proveedor.NombreCompleto,
		"proveedorDocumento": proveedor.NumeroDocumento,
		"proveedorDireccion": proveedor.Direccion,
		"usuarioNombre":      nombreUsuario,
		"totalPagar":         acopio.TotalPagar,
		"observaciones":      acopio.Observaciones,
	}
	filas := make([]domreport.Fila, 0, len(detalles))
	for _, d := range detalles {
		filas = append(filas, domreport.Fila{
			"numeroItem":      d.NumeroItem,
			"peso":            d.Peso.StringFixed(3),
			"ley":             d.Ley.StringFixed(3),
			"deduccion":       d.Deduccion.StringFixed(3),
			"precioOnzaBase":  d.PrecioOnzaBase,
			"tipoCambioDolar": d.TipoCambioDolar.StringFixed(3),
			"importe":         d.Importe,
		})
	}

	r, err := plantilla.Render(params, filas)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("numero", acopio.NumeroAcopio).Msg("voucher generado exitosamente")

	if err := historial.Registrar(uc.historialRepo, uc.log, usuario,
		entity.AccionImpresionVoucher,
		fmt.Sprintf("Voucher generado para acopio %s", acopio.NumeroAcopio),
		ModuloAcopio,
		map[string]any{"acopioId": acopio.ID}); err != nil {
		return nil, err
	}
	return r, nil
}
