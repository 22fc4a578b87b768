package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/magicstars/ops-api/internal/application/usecase"
	"github.com/magicstars/ops-api/internal/domain/repository"
)

// Ensure TxRunner implements usecase.TiendaTxRunner.
var _ usecase.TiendaTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTiendaLocked inicia una transacción, toma un advisory lock sobre el nombre
// (en minúsculas) y ejecuta fn con un repositorio atado a la tx. Commit o Rollback.
// El lock se libera al terminar la transacción.
func (r *TxRunner) RunTiendaLocked(ctx context.Context, nombre string, fn func(repo repository.TiendaRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "tiendas:"+strings.ToLower(nombre)); err != nil {
		return fmt.Errorf("advisory lock tienda: %w", err)
	}

	if err := fn(NewTiendaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
