package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sysacopio/acopio-api/internal/domain/entity"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
)

var _ repository.HistorialRepository = (*HistorialRepo)(nil)

// HistorialRepo implementación sobre PostgreSQL (usable con pool o tx).
// DetallesAdicionales se guarda como JSONB.
type HistorialRepo struct {
	q Querier
}

// NewHistorialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHistorialRepository(q Querier) *HistorialRepo {
	return &HistorialRepo{q: q}
}

// Create persiste una entrada del historial.
func (r *HistorialRepo) Create(mov *entity.HistorialMovimiento) error {
	var detalles []byte
	if mov.DetallesAdicionales != nil {
		var err error
		detalles, err = json.Marshal(mov.DetallesAdicionales)
		if err != nil {
			return fmt.Errorf("serializar detalles: %w", err)
		}
	}
	query := `
		INSERT INTO historial_movimientos (id, usuario_id, username, accion, descripcion, modulo, fecha_hora, detalles_adicionales)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.UsuarioID, mov.Username, mov.Accion, mov.Descripcion,
		mov.Modulo, mov.FechaHora, detalles,
	)
	if err != nil {
		return fmt.Errorf("insert historial: %w", err)
	}
	return nil
}

const columnasHistorial = `id, usuario_id, username, accion, descripcion, modulo, fecha_hora, detalles_adicionales`

// List obtiene el historial completo, más reciente primero.
func (r *HistorialRepo) List() ([]*entity.HistorialMovimiento, error) {
	query := `SELECT ` + columnasHistorial + ` FROM historial_movimientos ORDER BY fecha_hora DESC`
	return r.listar(query)
}

// ListByUsuario obtiene el historial de un usuario.
func (r *HistorialRepo) ListByUsuario(usuarioID string) ([]*entity.HistorialMovimiento, error) {
	query := `SELECT ` + columnasHistorial + ` FROM historial_movimientos WHERE usuario_id = $1 ORDER BY fecha_hora DESC`
	return r.listar(query, usuarioID)
}

// ListByModulo obtiene el historial de un módulo.
func (r *HistorialRepo) ListByModulo(modulo string) ([]*entity.HistorialMovimiento, error) {
	query := `SELECT ` + columnasHistorial + ` FROM historial_movimientos WHERE modulo = $1 ORDER BY fecha_hora DESC`
	return r.listar(query, modulo)
}

// ListByFechas obtiene el historial en [inicio, fin).
func (r *HistorialRepo) ListByFechas(inicio, fin time.Time) ([]*entity.HistorialMovimiento, error) {
	query := `SELECT ` + columnasHistorial + ` FROM historial_movimientos WHERE fecha_hora >= $1 AND fecha_hora < $2 ORDER BY fecha_hora DESC`
	return r.listar(query, inicio, fin)
}

func (r *HistorialRepo) listar(query string, args ...any) ([]*entity.HistorialMovimiento, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list historial: %w", err)
	}
	defer rows.Close()

	var movs []*entity.HistorialMovimiento
	for rows.Next() {
		mov, err := escanearMovimiento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan historial: %w", err)
		}
		movs = append(movs, mov)
	}
	return movs, rows.Err()
}

func escanearMovimiento(row pgx.Row) (*entity.HistorialMovimiento, error) {
	var mov entity.HistorialMovimiento
	var detalles []byte
	err := row.Scan(&mov.ID, &mov.UsuarioID, &mov.Username, &mov.Accion,
		&mov.Descripcion, &mov.Modulo, &mov.FechaHora, &detalles)
	if err != nil {
		return nil, err
	}
	if len(detalles) > 0 {
		if err := json.Unmarshal(detalles, &mov.DetallesAdicionales); err != nil {
			return nil, fmt.Errorf("deserializar detalles: %w", err)
		}
	}
	return &mov, nil
}
