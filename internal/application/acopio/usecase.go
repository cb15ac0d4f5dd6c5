package acopio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sysacopio/acopio-api/internal/application/historial"
	"github.com/sysacopio/acopio-api/internal/domain"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/internal/domain/pricing"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
	"github.com/sysacopio/acopio-api/pkg/logger"
)

// ModuloAcopio es la etiqueta de módulo usada en el historial.
const ModuloAcopio = "ACOPIO"

// maxIntentosNumero limita los reintentos ante colisión de número (dos
// creaciones concurrentes proponiendo la misma secuencia).
const maxIntentosNumero = 5

// Item son los insumos de una línea al crear un acopio.
type Item struct {
	MaterialID      int64
	Peso            decimal.Decimal
	Ley             decimal.Decimal
	Deduccion       decimal.Decimal
	PrecioOnzaBase  decimal.Decimal
	TipoCambioDolar decimal.Decimal
}

// UseCase crea, anula y consulta acopios.
type UseCase struct {
	txRunner      TxRunner
	acopioRepo    repository.AcopioRepository
	proveedorRepo repository.ProveedorRepository
	numerador     *Numerador
	log           *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	acopioRepo repository.AcopioRepository,
	proveedorRepo repository.ProveedorRepository,
	numerador *Numerador,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		acopioRepo:    acopioRepo,
		proveedorRepo: proveedorRepo,
		numerador:     numerador,
		log:           log,
	}
}

// Crear registra un acopio completo: valida proveedor e insumos, calcula cada
// línea y el total, asigna el número del periodo y persiste cabecera,
// detalles y entrada de auditoría en una sola transacción.
//
// La reserva del número es atómica en el límite de persistencia: el insert
// choca con el índice único de numero_acopio si otro proceso tomó la misma
// secuencia, la transacción entera se revierte y se reintenta con la
// siguiente. domain.ErrPeriodoAgotado no se reintenta.
func (uc *UseCase) Crear(
	ctx context.Context,
	usuario *entity.Usuario,
	proveedorID int64,
	fecha time.Time,
	observaciones string,
	items []Item,
) (*entity.Acopio, error) {
	if usuario == nil {
		return nil, domain.ErrUnauthorized
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: el acopio no tiene detalles", domain.ErrEntradaInvalida)
	}

	proveedor, err := uc.proveedorRepo.GetByID(proveedorID)
	if err != nil {
		return nil, fmt.Errorf("consultar proveedor: %w", err)
	}
	if proveedor == nil || !proveedor.Activo {
		return nil, fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, proveedorID)
	}

	uc.log.Info().
		Str("proveedor", proveedor.NombreCompleto).
		Int("items", len(items)).
		Msg("creando nuevo acopio")

	// Calcular cada línea antes de abrir la transacción: un insumo inválido
	// jamás llega a persistirse.
	detalles := make([]*entity.AcopioDetalle, 0, len(items))
	for i, item := range items {
		d := &entity.AcopioDetalle{
			NumeroItem:      i + 1,
			MaterialID:      item.MaterialID,
			Peso:            item.Peso,
			Ley:             item.Ley,
			Deduccion:       item.Deduccion,
			PrecioOnzaBase:  item.PrecioOnzaBase,
			TipoCambioDolar: item.TipoCambioDolar,
		}
		if err := pricing.CalcularDetalle(d); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		detalles = append(detalles, d)
	}

	if fecha.IsZero() {
		fecha = time.Now()
	}
	acopio := &entity.Acopio{
		ProveedorID:   proveedorID,
		UsuarioID:     usuario.ID,
		FechaAcopio:   fecha,
		Estado:        entity.EstadoActivo,
		Observaciones: observaciones,
		Detalles:      detalles,
	}
	acopio.CalcularTotal()

	año := fecha.Year()
	for intento := 1; ; intento++ {
		err := uc.txRunner.Run(ctx, func(
			acopioRepo repository.AcopioRepository,
			historialRepo repository.HistorialRepository,
		) error {
			numero, err := uc.numerador.Siguiente(acopioRepo, año)
			if err != nil {
				return err
			}
			acopio.NumeroAcopio = numero
			acopio.CreatedAt = time.Now()
			acopio.UpdatedAt = acopio.CreatedAt

			if err := acopioRepo.Create(acopio); err != nil {
				return err
			}
			for _, d := range acopio.Detalles {
				d.AcopioID = acopio.ID
				if err := acopioRepo.CreateDetalle(d); err != nil {
					return err
				}
			}
			return historial.Registrar(historialRepo, uc.log, usuario,
				entity.AccionRegistroAcopio,
				fmt.Sprintf("Acopio %s registrado por S/. %s", numero, acopio.TotalPagar.StringFixed(2)),
				ModuloAcopio,
				map[string]any{"acopioId": acopio.ID})
		})
		if err == nil {
			uc.log.Info().Str("numero", acopio.NumeroAcopio).Msg("acopio creado exitosamente")
			return acopio, nil
		}
		if errors.Is(err, domain.ErrDuplicado) && intento < maxIntentosNumero {
			uc.log.Warn().
				Str("numero", acopio.NumeroAcopio).
				Int("intento", intento).
				Msg("colisión de número de acopio, reintentando con la siguiente secuencia")
			continue
		}
		return nil, err
	}
}

// Anular cambia el estado del acopio a ANULADO dejando el motivo en las
// observaciones. El registro no se borra: el número queda consumido.
func (uc *UseCase) Anular(ctx context.Context, usuario *entity.Usuario, id int64, motivo string) error {
	if usuario == nil {
		return domain.ErrUnauthorized
	}
	uc.log.Info().Int64("acopio_id", id).Msg("anulando acopio")

	return uc.txRunner.Run(ctx, func(
		acopioRepo repository.AcopioRepository,
		historialRepo repository.HistorialRepository,
	) error {
		acopio, err := acopioRepo.GetByID(id)
		if err != nil {
			return fmt.Errorf("consultar acopio: %w", err)
		}
		if acopio == nil {
			return fmt.Errorf("%w: no se encontró el acopio con ID %d", domain.ErrNotFound, id)
		}
		acopio.Estado = entity.EstadoAnulado
		acopio.Observaciones = entity.EstadoAnulado + ": " + motivo
		acopio.UpdatedAt = time.Now()
		if err := acopioRepo.Update(acopio); err != nil {
			return err
		}
		return historial.Registrar(historialRepo, uc.log, usuario,
			entity.AccionAnulacionAcopio,
			fmt.Sprintf("Acopio %s anulado. Motivo: %s", acopio.NumeroAcopio, motivo),
			ModuloAcopio,
			map[string]any{"acopioId": acopio.ID})
	})
}

// ObtenerPorID devuelve un acopio con sus detalles ordenados por número de item.
func (uc *UseCase) ObtenerPorID(_ context.Context, id int64) (*entity.Acopio, error) {
	acopio, err := uc.acopioRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if acopio == nil {
		return nil, fmt.Errorf("%w: no se encontró el acopio con ID %d", domain.ErrNotFound, id)
	}
	detalles, err := uc.acopioRepo.GetDetalles(id)
	if err != nil {
		return nil, err
	}
	acopio.Detalles = detalles
	return acopio, nil
}

// Todos devuelve todos los acopios (sin detalles).
func (uc *UseCase) Todos(_ context.Context) ([]*entity.Acopio, error) {
	return uc.acopioRepo.List()
}

// PorProveedor devuelve los acopios de un proveedor.
func (uc *UseCase) PorProveedor(_ context.Context, proveedorID int64) ([]*entity.Acopio, error) {
	return uc.acopioRepo.ListByProveedor(proveedorID)
}

// PorFechas devuelve los acopios en un rango de fechas.
func (uc *UseCase) PorFechas(_ context.Context, inicio, fin time.Time) ([]*entity.Acopio, error) {
	return uc.acopioRepo.ListByFechas(inicio, fin)
}

// Hoy devuelve los acopios del día en curso.
func (uc *UseCase) Hoy(ctx context.Context) ([]*entity.Acopio, error) {
	y, m, d := time.Now().Date()
	inicio := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return uc.acopioRepo.ListByFechas(inicio, inicio.AddDate(0, 0, 1))
}

// Resumen devuelve la cantidad y el total pagado de los acopios del rango,
// sin cargar detalles.
type Resumen struct {
	Cantidad   int64
	TotalPagar decimal.Decimal
}

// ResumenPorFechas calcula el resumen de un rango de fechas.
func (uc *UseCase) ResumenPorFechas(_ context.Context, inicio, fin time.Time) (Resumen, error) {
	cantidad, err := uc.acopioRepo.CountByFechas(inicio, fin)
	if err != nil {
		return Resumen{}, fmt.Errorf("contar acopios: %w", err)
	}
	acopios, err := uc.acopioRepo.ListByFechas(inicio, fin)
	if err != nil {
		return Resumen{}, fmt.Errorf("listar acopios: %w", err)
	}
	total := decimal.Zero
	for _, a := range acopios {
		total = total.Add(a.TotalPagar)
	}
	return Resumen{Cantidad: cantidad, TotalPagar: total}, nil
}
