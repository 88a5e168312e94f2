package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.PartnerRepository  = (*PartnerRepo)(nil)
)

// CategoryRepo lectura de product_categories.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// GetByIDs categorías existentes ordenadas por ruta completa.
func (r *CategoryRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, parent_id, name, complete_name
		FROM product_categories
		WHERE id = ANY($1::text[])
		ORDER BY COALESCE(NULLIF(complete_name, ''), name) ASC, id ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var (
			c            entity.Category
			parent, full *string
		)
		if err := rows.Scan(&c.ID, &parent, &c.Name, &full); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ParentID = derefString(parent)
		c.CompleteName = derefString(full)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// PartnerRepo lectura de contactos externos.
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el adaptador.
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

// GetByIDs contactos existentes en el orden de ids.
func (r *PartnerRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Partner, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, name, email
		FROM partners
		WHERE id = ANY($1::text[])
		ORDER BY array_position($1::text[], id)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get partners: %w", err)
	}
	defer rows.Close()
	var list []*entity.Partner
	for rows.Next() {
		var (
			p     entity.Partner
			email *string
		)
		if err := rows.Scan(&p.ID, &p.Name, &email); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		p.Email = derefString(email)
		list = append(list, &p)
	}
	return list, rows.Err()
}
