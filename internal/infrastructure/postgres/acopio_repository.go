package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sysacopio/acopio-api/internal/domain"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
)

var _ repository.AcopioRepository = (*AcopioRepo)(nil)

// AcopioRepo implementación del puerto AcopioRepository sobre PostgreSQL
// (usable con pool o tx).
type AcopioRepo struct {
	q Querier
}

// NewAcopioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAcopioRepository(q Querier) *AcopioRepo {
	return &AcopioRepo{q: q}
}

const columnasAcopio = `id, numero_acopio, proveedor_id, usuario_id, fecha_acopio, estado, total_pagar, observaciones, created_at, updated_at`

// Create inserta la cabecera y deja el ID generado en el entity. Retorna
// domain.ErrDuplicado si el numero_acopio ya existe.
func (r *AcopioRepo) Create(a *entity.Acopio) error {
	query := `
		INSERT INTO acopios (numero_acopio, proveedor_id, usuario_id, fecha_acopio, estado, total_pagar, observaciones, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		a.NumeroAcopio, a.ProveedorID, a.UsuarioID, a.FechaAcopio, a.Estado,
		a.TotalPagar, a.Observaciones, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: numero_acopio %s", domain.ErrDuplicado, a.NumeroAcopio)
		}
		return fmt.Errorf("insert acopio: %w", err)
	}
	return nil
}

// CreateDetalle inserta una línea del acopio.
func (r *AcopioRepo) CreateDetalle(d *entity.AcopioDetalle) error {
	query := `
		INSERT INTO acopio_detalles (acopio_id, numero_item, material_id, peso, ley, deduccion, precio_onza_base, tipo_cambio_dolar, importe)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		d.AcopioID, d.NumeroItem, d.MaterialID, d.Peso, d.Ley, d.Deduccion,
		d.PrecioOnzaBase, d.TipoCambioDolar, d.Importe,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert detalle: %w", err)
	}
	return nil
}

// Update actualiza estado, observaciones y updated_at (la anulación). Los
// montos y detalles son inmutables después de crear.
func (r *AcopioRepo) Update(a *entity.Acopio) error {
	query := `
		UPDATE acopios SET estado = $2, observaciones = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, a.ID, a.Estado, a.Observaciones, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update acopio: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID (sin detalles).
func (r *AcopioRepo) GetByID(id int64) (*entity.Acopio, error) {
	query := `SELECT ` + columnasAcopio + ` FROM acopios WHERE id = $1`
	a, err := escanearAcopio(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get acopio: %w", err)
	}
	return a, nil
}

// GetDetalles obtiene las líneas de un acopio ordenadas por numero_item.
func (r *AcopioRepo) GetDetalles(acopioID int64) ([]*entity.AcopioDetalle, error) {
	query := `
		SELECT id, acopio_id, numero_item, material_id, peso, ley, deduccion, precio_onza_base, tipo_cambio_dolar, importe
		FROM acopio_detalles WHERE acopio_id = $1 ORDER BY numero_item`
	rows, err := r.q.Query(context.Background(), query, acopioID)
	if err != nil {
		return nil, fmt.Errorf("get detalles: %w", err)
	}
	defer rows.Close()

	var detalles []*entity.AcopioDetalle
	for rows.Next() {
		var d entity.AcopioDetalle
		if err := rows.Scan(&d.ID, &d.AcopioID, &d.NumeroItem, &d.MaterialID, &d.Peso,
			&d.Ley, &d.Deduccion, &d.PrecioOnzaBase, &d.TipoCambioDolar, &d.Importe); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		detalles = append(detalles, &d)
	}
	return detalles, rows.Err()
}

// List obtiene todos los acopios ordenados por fecha descendente.
func (r *AcopioRepo) List() ([]*entity.Acopio, error) {
	query := `SELECT ` + columnasAcopio + ` FROM acopios ORDER BY fecha_acopio DESC, id DESC`
	return r.listar(query)
}

// ListByProveedor obtiene los acopios de un proveedor.
func (r *AcopioRepo) ListByProveedor(proveedorID int64) ([]*entity.Acopio, error) {
	query := `SELECT ` + columnasAcopio + ` FROM acopios WHERE proveedor_id = $1 ORDER BY fecha_acopio DESC, id DESC`
	return r.listar(query, proveedorID)
}

// ListByFechas obtiene los acopios en [inicio, fin).
func (r *AcopioRepo) ListByFechas(inicio, fin time.Time) ([]*entity.Acopio, error) {
	query := `SELECT ` + columnasAcopio + ` FROM acopios WHERE fecha_acopio >= $1 AND fecha_acopio < $2 ORDER BY fecha_acopio, id`
	return r.listar(query, inicio, fin)
}

// FindMaxNumero devuelve el mayor numero_acopio que cumple el patrón LIKE, o
// "" si no hay ninguno. El orden lexicográfico coincide con el numérico
// porque la secuencia va con ceros a la izquierda.
func (r *AcopioRepo) FindMaxNumero(patron string) (string, error) {
	var max *string
	err := r.q.QueryRow(context.Background(),
		`SELECT MAX(numero_acopio) FROM acopios WHERE numero_acopio LIKE $1`, patron,
	).Scan(&max)
	if err != nil {
		return "", fmt.Errorf("max numero_acopio: %w", err)
	}
	if max == nil {
		return "", nil
	}
	return *max, nil
}

// CountByFechas cuenta los acopios en [inicio, fin).
func (r *AcopioRepo) CountByFechas(inicio, fin time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM acopios WHERE fecha_acopio >= $1 AND fecha_acopio < $2`,
		inicio, fin,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count acopios: %w", err)
	}
	return n, nil
}

func (r *AcopioRepo) listar(query string, args ...any) ([]*entity.Acopio, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list acopios: %w", err)
	}
	defer rows.Close()

	var acopios []*entity.Acopio
	for rows.Next() {
		a, err := escanearAcopio(rows)
		if err != nil {
			return nil, fmt.Errorf("scan acopio: %w", err)
		}
		acopios = append(acopios, a)
	}
	return acopios, rows.Err()
}

func escanearAcopio(row pgx.Row) (*entity.Acopio, error) {
	var a entity.Acopio
	err := row.Scan(&a.ID, &a.NumeroAcopio, &a.ProveedorID, &a.UsuarioID, &a.FechaAcopio,
		&a.Estado, &a.TotalPagar, &a.Observaciones, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
