package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las tablas e índices si no existen. El índice único sobre
// numero_acopio es el que garantiza la unicidad de la numeración: una
// colisión llega al caso de uso como domain.ErrDuplicado y se reintenta.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			id              TEXT PRIMARY KEY,
			username        TEXT NOT NULL UNIQUE,
			password_hash   TEXT NOT NULL,
			nombre_completo TEXT NOT NULL,
			rol             TEXT NOT NULL,
			activo          BOOLEAN NOT NULL DEFAULT TRUE,
			fecha_creacion  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS proveedores (
			id               BIGSERIAL PRIMARY KEY,
			nombre_completo  TEXT NOT NULL,
			tipo_documento   TEXT NOT NULL,
			numero_documento TEXT NOT NULL UNIQUE,
			direccion        TEXT NOT NULL DEFAULT '',
			telefono         TEXT NOT NULL DEFAULT '',
			activo           BOOLEAN NOT NULL DEFAULT TRUE,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS materiales (
			id          BIGSERIAL PRIMARY KEY,
			nombre      TEXT NOT NULL UNIQUE,
			descripcion TEXT NOT NULL DEFAULT '',
			activo      BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS acopios (
			id            BIGSERIAL PRIMARY KEY,
			numero_acopio TEXT NOT NULL,
			proveedor_id  BIGINT NOT NULL REFERENCES proveedores(id),
			usuario_id    TEXT NOT NULL REFERENCES usuarios(id),
			fecha_acopio  TIMESTAMPTZ NOT NULL,
			estado        TEXT NOT NULL,
			total_pagar   NUMERIC(14,2) NOT NULL,
			observaciones TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_acopios_numero ON acopios (numero_acopio)`,
		`CREATE TABLE IF NOT EXISTS acopio_detalles (
			id                BIGSERIAL PRIMARY KEY,
			acopio_id         BIGINT NOT NULL REFERENCES acopios(id),
			numero_item       INT NOT NULL,
			material_id       BIGINT NOT NULL REFERENCES materiales(id),
			peso              NUMERIC(12,3) NOT NULL,
			ley               NUMERIC(8,6) NOT NULL,
			deduccion         NUMERIC(8,6) NOT NULL,
			precio_onza_base  NUMERIC(12,2) NOT NULL,
			tipo_cambio_dolar NUMERIC(8,3) NOT NULL,
			importe           NUMERIC(14,2) NOT NULL,
			UNIQUE (acopio_id, numero_item)
		)`,
		`CREATE TABLE IF NOT EXISTS historial_movimientos (
			id                   TEXT PRIMARY KEY,
			usuario_id           TEXT NOT NULL,
			username             TEXT NOT NULL,
			accion               TEXT NOT NULL,
			descripcion          TEXT NOT NULL,
			modulo               TEXT NOT NULL,
			fecha_hora           TIMESTAMPTZ NOT NULL,
			detalles_adicionales JSONB
		)`,
		`CREATE INDEX IF NOT EXISTS ix_historial_fecha ON historial_movimientos (fecha_hora DESC)`,
		`CREATE INDEX IF NOT EXISTS ix_acopios_fecha ON acopios (fecha_acopio)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}
	}
	return nil
}
