package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sysacopio/acopio-api/internal/application/acopio"
	"github.com/sysacopio/acopio-api/internal/domain/repository"
)

var _ acopio.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Un error de pgx dentro de la tx la deja abortada: el
// caller que quiera reintentar debe llamar Run de nuevo.
func (r *TxRunner) Run(ctx context.Context, fn func(
	acopioRepo repository.AcopioRepository,
	historialRepo repository.HistorialRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	acopioRepo := NewAcopioRepository(tx)
	historialRepo := NewHistorialRepository(tx)

	if err := fn(acopioRepo, historialRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
