package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/repository"
)

var _ repository.QuantRepository = (*QuantRepo)(nil)

const quantSelect = `
		SELECT q.id, q.quantity, q.in_date,
		       p.id, p.name, p.default_code, p.category_id,
		       c.id, c.parent_id, c.name, c.complete_name,
		       l.id, l.name, l.expiration_date,
		       loc.id, loc.name, loc.usage
		FROM quants q
		JOIN lots l ON l.id = q.lot_id
		JOIN products p ON p.id = q.product_id
		JOIN locations loc ON loc.id = q.location_id
		LEFT JOIN product_categories c ON c.id = p.category_id`

// QuantRepo lectura de quants con lote sobre PostgreSQL.
type QuantRepo struct {
	q Querier
}

// NewQuantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuantRepository(q Querier) *QuantRepo {
	return &QuantRepo{q: q}
}

// Find devuelve los quants con vencimiento que cumplen el filtro, por vencimiento ascendente.
func (r *QuantRepo) Find(ctx context.Context, filter repository.QuantFilter) ([]*entity.Quant, error) {
	query, args := buildQuantQuery(filter)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find quants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Quant
	for rows.Next() {
		var (
			qt                                 entity.Quant
			qty                                decimal.Decimal
			defaultCode, productCategory       *string
			catID, catParent, catName, catFull *string
			inDate, expiration                 *time.Time
		)
		if err := rows.Scan(
			&qt.ID, &qty, &inDate,
			&qt.Product.ID, &qt.Product.Name, &defaultCode, &productCategory,
			&catID, &catParent, &catName, &catFull,
			&qt.Lot.ID, &qt.Lot.Name, &expiration,
			&qt.Location.ID, &qt.Location.Name, &qt.Location.Usage,
		); err != nil {
			return nil, fmt.Errorf("scan quant: %w", err)
		}
		qt.Quantity = qty
		qt.InDate = inDate
		qt.Lot.ExpirationDate = expiration
		qt.Product.DefaultCode = derefString(defaultCode)
		qt.Product.CategoryID = derefString(productCategory)
		if catID != nil {
			qt.Category = &entity.Category{
				ID:           *catID,
				ParentID:     derefString(catParent),
				Name:         derefString(catName),
				CompleteName: derefString(catFull),
			}
		}
		list = append(list, &qt)
	}
	return list, rows.Err()
}

// buildQuantQuery arma el SELECT con los criterios del filtro y sus argumentos posicionales.
func buildQuantQuery(f repository.QuantFilter) (string, []any) {
	conds := []string{
		"l.expiration_date IS NOT NULL",
		"q.quantity > 0",
		fmt.Sprintf("loc.usage = '%s'", entity.LocationUsageInternal),
	}
	var args []any
	if f.ExpiresFrom != nil {
		args = append(args, *f.ExpiresFrom)
		conds = append(conds, fmt.Sprintf("l.expiration_date >= $%d", len(args)))
	}
	if f.ExpiresBefore != nil {
		args = append(args, *f.ExpiresBefore)
		conds = append(conds, fmt.Sprintf("l.expiration_date < $%d", len(args)))
	}
	if len(f.CategoryIDs) > 0 {
		args = append(args, f.CategoryIDs)
		conds = append(conds, fmt.Sprintf("p.category_id = ANY($%d::text[])", len(args)))
	}
	query := quantSelect + "\n\t\tWHERE " + strings.Join(conds, " AND ") +
		"\n\t\tORDER BY l.expiration_date ASC, q.id ASC"
	return query, args
}
