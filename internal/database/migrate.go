package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/001_initial.up.sql
var initialMigrationSQL string

//go:embed migrations/002_seed_catalogs.up.sql
var seedCatalogsSQL string

var requiredTables = []string{
	"bodegas_inventario",
	"grupos_inventario",
	"unidades_medida",
	"estados_elemento_inventario",
	"elementos_inventario",
	"elementos_compuestos_inventario",
	"elementos_por_elemento_compuesto",
	"tipos_precio_elemento_inventario",
	"precios_elemento_inventario",
	"tipos_movimiento_inventario",
	"movimientos_inventario",
	"usuarios",
}

// EnsureSchema creates the tables on first start and re-applies the catalog
// seed, which is a no-op once the rows exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	exists, err := db.hasAllRequiredTables(ctx)
	if err != nil {
		return fmt.Errorf("check existing tables: %w", err)
	}

	if !exists {
		slog.Info("database schema missing tables; applying initial migration")
		if _, err := db.Pool.Exec(ctx, initialMigrationSQL); err != nil {
			return fmt.Errorf("apply initial migration: %w", err)
		}

		exists, err = db.hasAllRequiredTables(ctx)
		if err != nil {
			return fmt.Errorf("re-check tables after migration: %w", err)
		}

		if !exists {
			return fmt.Errorf("schema initialization incomplete: required tables are still missing")
		}
	}

	if _, err := db.Pool.Exec(ctx, seedCatalogsSQL); err != nil {
		return fmt.Errorf("apply catalog seed: %w", err)
	}

	slog.Info("database schema ensured")
	return nil
}

func (db *DB) hasAllRequiredTables(ctx context.Context) (bool, error) {
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name = ANY($1)
	`, requiredTables).Scan(&count)
	if err != nil {
		return false, err
	}

	return count == len(requiredTables), nil
}
