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

var _ repository.RecipientRuleRepository = (*RecipientRuleRepo)(nil)

const ruleSelect = `
		SELECT r.id, r.name, r.created_at, r.updated_at,
		       COALESCE((SELECT array_agg(category_id ORDER BY category_id) FROM recipient_rule_categories WHERE rule_id = r.id), '{}'),
		       COALESCE((SELECT array_agg(user_id ORDER BY user_id) FROM recipient_rule_users WHERE rule_id = r.id), '{}'),
		       COALESCE((SELECT array_agg(partner_id ORDER BY partner_id) FROM recipient_rule_partners WHERE rule_id = r.id), '{}')
		FROM recipient_rules r`

// RecipientRuleRepo persistencia de reglas de destinatarios y sus tablas de enlace.
type RecipientRuleRepo struct {
	q Querier
}

// NewRecipientRuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipientRuleRepository(q Querier) *RecipientRuleRepo {
	return &RecipientRuleRepo{q: q}
}

// Create persiste la regla con categorías, usuarios y contactos.
func (r *RecipientRuleRepo) Create(ctx context.Context, rule *entity.RecipientRule) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO recipient_rules (id, name, created_at, updated_at)
			VALUES ($1, $2, $3, $4)`,
			rule.ID, rule.Name, rule.CreatedAt, rule.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: regla duplicada", domain.ErrInvalidInput)
			}
			return fmt.Errorf("insert recipient rule: %w", err)
		}
		return writeRuleLinks(ctx, tx, rule)
	})
}

// GetByID obtiene una regla por ID o nil.
func (r *RecipientRuleRepo) GetByID(ctx context.Context, id string) (*entity.RecipientRule, error) {
	row := r.q.QueryRow(ctx, ruleSelect+` WHERE r.id = $1`, id)
	rule, err := scanRule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipient rule: %w", err)
	}
	return rule, nil
}

// List todas las reglas en orden de creación.
func (r *RecipientRuleRepo) List(ctx context.Context) ([]*entity.RecipientRule, error) {
	rows, err := r.q.Query(ctx, ruleSelect+` ORDER BY r.created_at ASC, r.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list recipient rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecipientRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipient rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

// Update reemplaza nombre y enlaces de la regla.
func (r *RecipientRuleRepo) Update(ctx context.Context, rule *entity.RecipientRule) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `UPDATE recipient_rules SET name = $2, updated_at = $3 WHERE id = $1`,
			rule.ID, rule.Name, rule.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update recipient rule: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return writeRuleLinks(ctx, tx, rule)
	})
}

// Delete elimina la regla; los enlaces se borran en cascada.
func (r *RecipientRuleRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM recipient_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipient rule: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRule(row pgx.Row) (*entity.RecipientRule, error) {
	var rule entity.RecipientRule
	if err := row.Scan(&rule.ID, &rule.Name, &rule.CreatedAt, &rule.UpdatedAt,
		&rule.CategoryIDs, &rule.UserIDs, &rule.PartnerIDs); err != nil {
		return nil, err
	}
	return &rule, nil
}

func writeRuleLinks(ctx context.Context, tx pgx.Tx, rule *entity.RecipientRule) error {
	links := []struct {
		table, col string
		values     []string
	}{
		{"recipient_rule_categories", "category_id", rule.CategoryIDs},
		{"recipient_rule_users", "user_id", rule.UserIDs},
		{"recipient_rule_partners", "partner_id", rule.PartnerIDs},
	}
	for _, l := range links {
		if err := replaceLinks(ctx, tx, l.table, "rule_id", l.col, rule.ID, l.values); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: referencia inexistente en %s", domain.ErrInvalidInput, l.table)
			}
			return err
		}
	}
	return nil
}
