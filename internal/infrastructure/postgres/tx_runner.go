package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/repository"
)

var _ report.ConfigTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLocked bloquea report_configs (EXCLUSIVE: permite lecturas, serializa escrituras),
// ejecuta fn con el repositorio atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunLocked(ctx context.Context, fn func(repo repository.ReportConfigRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `LOCK TABLE report_configs IN EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("lock report_configs: %w", err)
	}
	if err := fn(NewReportConfigRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
