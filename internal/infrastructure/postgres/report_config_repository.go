package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/repository"
)

var _ repository.ReportConfigRepository = (*ReportConfigRepo)(nil)

// ReportConfigRepo persistencia de report_configs y report_config_categories.
type ReportConfigRepo struct {
	q Querier
}

// NewReportConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportConfigRepository(q Querier) *ReportConfigRepo {
	return &ReportConfigRepo{q: q}
}

// GetFirst devuelve el registro más antiguo o nil.
func (r *ReportConfigRepo) GetFirst(ctx context.Context) (*entity.ReportConfig, error) {
	query := `
		SELECT rc.id, rc.name, rc.days_threshold, rc.created_at, rc.updated_at,
		       COALESCE(array_agg(rcc.category_id ORDER BY rcc.category_id) FILTER (WHERE rcc.category_id IS NOT NULL), '{}')
		FROM report_configs rc
		LEFT JOIN report_config_categories rcc ON rcc.config_id = rc.id
		GROUP BY rc.id
		ORDER BY rc.created_at ASC, rc.id ASC
		LIMIT 1`
	var c entity.ReportConfig
	err := r.q.QueryRow(ctx, query).Scan(&c.ID, &c.Name, &c.DaysThreshold, &c.CreatedAt, &c.UpdatedAt, &c.CategoryIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report config: %w", err)
	}
	return &c, nil
}

// Count número de registros de configuración.
func (r *ReportConfigRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM report_configs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count report configs: %w", err)
	}
	return n, nil
}

// Create persiste la configuración con sus categorías.
func (r *ReportConfigRepo) Create(ctx context.Context, cfg *entity.ReportConfig) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO report_configs (id, name, days_threshold, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)`,
			cfg.ID, cfg.Name, cfg.DaysThreshold, cfg.CreatedAt, cfg.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert report config: %w", err)
		}
		return r.writeCategories(ctx, tx, cfg)
	})
}

// Update actualiza nombre, umbral y categorías.
func (r *ReportConfigRepo) Update(ctx context.Context, cfg *entity.ReportConfig) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
			UPDATE report_configs SET name = $2, days_threshold = $3, updated_at = $4
			WHERE id = $1`,
			cfg.ID, cfg.Name, cfg.DaysThreshold, cfg.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update report config: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return r.writeCategories(ctx, tx, cfg)
	})
}

func (r *ReportConfigRepo) writeCategories(ctx context.Context, tx pgx.Tx, cfg *entity.ReportConfig) error {
	err := replaceLinks(ctx, tx, "report_config_categories", "config_id", "category_id", cfg.ID, cfg.CategoryIDs)
	if err != nil && isForeignKeyViolation(err) {
		return fmt.Errorf("%w: categoría inexistente", domain.ErrInvalidInput)
	}
	return err
}
