package repository

import (
	"context"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
)

// RecipientRuleRepository persistencia de reglas de destinatarios por categoría.
type RecipientRuleRepository interface {
	Create(ctx context.Context, rule *entity.RecipientRule) error
	GetByID(ctx context.Context, id string) (*entity.RecipientRule, error)
	List(ctx context.Context) ([]*entity.RecipientRule, error)
	Update(ctx context.Context, rule *entity.RecipientRule) error
	Delete(ctx context.Context, id string) error
}
