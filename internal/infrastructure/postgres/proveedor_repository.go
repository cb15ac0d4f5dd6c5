package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sysacopio/acopio-api/internal/domain"
	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

const columnasProveedor = `id, nombre_completo, tipo_documento, numero_documento, direccion, telefono, activo, created_at`

// Create persiste un proveedor. Retorna domain.ErrDuplicado si el número de
// documento ya existe.
func (r *ProveedorRepo) Create(p *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (nombre_completo, tipo_documento, numero_documento, direccion, telefono, activo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.NombreCompleto, p.TipoDocumento, p.NumeroDocumento, p.Direccion,
		p.Telefono, p.Activo, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: documento %s", domain.ErrDuplicado, p.NumeroDocumento)
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *ProveedorRepo) GetByID(id int64) (*entity.Proveedor, error) {
	query := `SELECT ` + columnasProveedor + ` FROM proveedores WHERE id = $1`
	return r.uno(query, id)
}

// GetByDocumento obtiene un proveedor por número de documento.
func (r *ProveedorRepo) GetByDocumento(numeroDocumento string) (*entity.Proveedor, error) {
	query := `SELECT ` + columnasProveedor + ` FROM proveedores WHERE numero_documento = $1`
	return r.uno(query, numeroDocumento)
}

// List obtiene los proveedores, opcionalmente solo los activos.
func (r *ProveedorRepo) List(soloActivos bool) ([]*entity.Proveedor, error) {
	query := `SELECT ` + columnasProveedor + ` FROM proveedores`
	if soloActivos {
		query += ` WHERE activo`
	}
	query += ` ORDER BY nombre_completo`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()

	var proveedores []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(&p.ID, &p.NombreCompleto, &p.TipoDocumento, &p.NumeroDocumento,
			&p.Direccion, &p.Telefono, &p.Activo, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		proveedores = append(proveedores, &p)
	}
	return proveedores, rows.Err()
}

// Update actualiza los datos de un proveedor.
func (r *ProveedorRepo) Update(p *entity.Proveedor) error {
	query := `
		UPDATE proveedores SET nombre_completo = $2, tipo_documento = $3, numero_documento = $4, direccion = $5, telefono = $6, activo = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.NombreCompleto, p.TipoDocumento, p.NumeroDocumento, p.Direccion, p.Telefono, p.Activo)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

func (r *ProveedorRepo) uno(query string, arg any) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.NombreCompleto, &p.TipoDocumento, &p.NumeroDocumento,
		&p.Direccion, &p.Telefono, &p.Activo, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}
