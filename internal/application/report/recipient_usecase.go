package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/expiry"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/repository"
)

// RecipientUseCase CRUD de reglas de destinatarios.
type RecipientUseCase struct {
	rules      repository.RecipientRuleRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	partners   repository.PartnerRepository
	clock      Clock
}

// NewRecipientUseCase construye el caso de uso.
func NewRecipientUseCase(rules repository.RecipientRuleRepository, categories repository.CategoryRepository, users repository.UserRepository, partners repository.PartnerRepository, clock Clock) *RecipientUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &RecipientUseCase{rules: rules, categories: categories, users: users, partners: partners, clock: clock}
}

// Create valida referencias, deriva el nombre y persiste la regla.
func (uc *RecipientUseCase) Create(ctx context.Context, in dto.RecipientRuleRequest) (*dto.RecipientRuleResponse, error) {
	now := uc.clock()
	rule := &entity.RecipientRule{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := uc.apply(ctx, rule, in); err != nil {
		return nil, err
	}
	if err := uc.rules.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("crear regla: %w", err)
	}
	return ToRecipientRuleResponse(rule), nil
}

// GetByID devuelve la regla o ErrNotFound.
func (uc *RecipientUseCase) GetByID(ctx context.Context, id string) (*dto.RecipientRuleResponse, error) {
	rule, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToRecipientRuleResponse(rule), nil
}

// List todas las reglas.
func (uc *RecipientUseCase) List(ctx context.Context) ([]dto.RecipientRuleResponse, error) {
	rules, err := uc.rules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar reglas: %w", err)
	}
	out := make([]dto.RecipientRuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, *ToRecipientRuleResponse(r))
	}
	return out, nil
}

// Update reemplaza categorías, usuarios y contactos; el nombre se recalcula.
func (uc *RecipientUseCase) Update(ctx context.Context, id string, in dto.RecipientRuleRequest) (*dto.RecipientRuleResponse, error) {
	rule, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, rule, in); err != nil {
		return nil, err
	}
	rule.UpdatedAt = uc.clock()
	if err := uc.rules.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("actualizar regla: %w", err)
	}
	return ToRecipientRuleResponse(rule), nil
}

// Delete elimina la regla.
func (uc *RecipientUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := uc.rules.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar regla: %w", err)
	}
	return nil
}

func (uc *RecipientUseCase) get(ctx context.Context, id string) (*entity.RecipientRule, error) {
	rule, err := uc.rules.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener regla: %w", err)
	}
	if rule == nil {
		return nil, domain.ErrNotFound
	}
	return rule, nil
}

func (uc *RecipientUseCase) apply(ctx context.Context, rule *entity.RecipientRule, in dto.RecipientRuleRequest) error {
	cats, categoryIDs, err := resolveCategories(ctx, uc.categories, in.CategoryIDs)
	if err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return fmt.Errorf("%w: se requiere al menos una categoría", domain.ErrInvalidInput)
	}

	userIDs := uniqueIDs(in.UserIDs)
	if len(userIDs) > 0 {
		users, err := uc.users.GetByIDs(ctx, userIDs)
		if err != nil {
			return fmt.Errorf("cargar usuarios: %w", err)
		}
		if missing := missingIDs(userIDs, len(users), func(i int) string { return users[i].ID }); len(missing) > 0 {
			return fmt.Errorf("%w: usuarios inexistentes: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
		}
	}

	partnerIDs := uniqueIDs(in.PartnerIDs)
	if len(partnerIDs) > 0 {
		partners, err := uc.partners.GetByIDs(ctx, partnerIDs)
		if err != nil {
			return fmt.Errorf("cargar contactos: %w", err)
		}
		if missing := missingIDs(partnerIDs, len(partners), func(i int) string { return partners[i].ID }); len(missing) > 0 {
			return fmt.Errorf("%w: contactos inexistentes: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
		}
	}

	rule.CategoryIDs = categoryIDs
	rule.UserIDs = userIDs
	rule.PartnerIDs = partnerIDs
	rule.Name = expiry.RuleDisplayName(cats)
	return nil
}

// ToRecipientRuleResponse convierte la entidad a DTO.
func ToRecipientRuleResponse(r *entity.RecipientRule) *dto.RecipientRuleResponse {
	return &dto.RecipientRuleResponse{
		ID:          r.ID,
		Name:        r.Name,
		CategoryIDs: nonNil(r.CategoryIDs),
		UserIDs:     nonNil(r.UserIDs),
		PartnerIDs:  nonNil(r.PartnerIDs),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
