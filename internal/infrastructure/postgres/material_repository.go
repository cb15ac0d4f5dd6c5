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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materiales (nombre, descripcion, activo)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query, m.Nombre, m.Descripcion, m.Activo).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: material %s", domain.ErrDuplicado, m.Nombre)
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(id int64) (*entity.Material, error) {
	var m entity.Material
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nombre, descripcion, activo FROM materiales WHERE id = $1`, id,
	).Scan(&m.ID, &m.Nombre, &m.Descripcion, &m.Activo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// List obtiene los materiales, opcionalmente solo los activos.
func (r *MaterialRepo) List(soloActivos bool) ([]*entity.Material, error) {
	query := `SELECT id, nombre, descripcion, activo FROM materiales`
	if soloActivos {
		query += ` WHERE activo`
	}
	query += ` ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list materiales: %w", err)
	}
	defer rows.Close()

	var materiales []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Nombre, &m.Descripcion, &m.Activo); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materiales = append(materiales, &m)
	}
	return materiales, rows.Err()
}

// Count cuenta los materiales registrados.
func (r *MaterialRepo) Count() (int64, error) {
	var n int64
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM materiales`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count materiales: %w", err)
	}
	return n, nil
}
