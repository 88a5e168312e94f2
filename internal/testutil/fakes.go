// Package testutil repositorios en memoria y mocks para tests de casos de uso y handlers.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/repository"
)

// QuantRepo aplica QuantFilter sobre una lista fija de quants.
type QuantRepo struct {
	Quants []*entity.Quant
	Err    error
	Calls  []repository.QuantFilter
}

func (r *QuantRepo) Find(_ context.Context, f repository.QuantFilter) ([]*entity.Quant, error) {
	r.Calls = append(r.Calls, f)
	if r.Err != nil {
		return nil, r.Err
	}
	allowed := make(map[string]bool, len(f.CategoryIDs))
	for _, id := range f.CategoryIDs {
		allowed[id] = true
	}
	var out []*entity.Quant
	for _, q := range r.Quants {
		exp := q.Lot.ExpirationDate
		if exp == nil || !q.Quantity.IsPositive() || !q.Location.IsInternal() {
			continue
		}
		if f.ExpiresFrom != nil && exp.Before(*f.ExpiresFrom) {
			continue
		}
		if f.ExpiresBefore != nil && !exp.Before(*f.ExpiresBefore) {
			continue
		}
		if len(allowed) > 0 && (q.Category == nil || !allowed[q.Category.ID]) {
			continue
		}
		out = append(out, q)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Lot.ExpirationDate.Before(*out[j].Lot.ExpirationDate)
	})
	return out, nil
}

// ConfigRepo guarda registros de configuración en memoria; implementa también ConfigTxRunner.
type ConfigRepo struct {
	mu    sync.Mutex
	lock  sync.Mutex
	items []entity.ReportConfig
}

func (r *ConfigRepo) GetFirst(_ context.Context) (*entity.ReportConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return nil, nil
	}
	c := r.items[0]
	c.CategoryIDs = append([]string(nil), c.CategoryIDs...)
	return &c, nil
}

func (r *ConfigRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

func (r *ConfigRepo) Create(_ context.Context, cfg *entity.ReportConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *cfg)
	return nil
}

func (r *ConfigRepo) Update(_ context.Context, cfg *entity.ReportConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == cfg.ID {
			r.items[i] = *cfg
			return nil
		}
	}
	return nil
}

// RunLocked serializa fn como lo haría el bloqueo de tabla.
func (r *ConfigRepo) RunLocked(_ context.Context, fn func(repository.ReportConfigRepository) error) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return fn(r)
}

// RuleRepo reglas de destinatarios en memoria, en orden de creación.
type RuleRepo struct {
	mu    sync.Mutex
	items []entity.RecipientRule
}

func (r *RuleRepo) Create(_ context.Context, rule *entity.RecipientRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *rule)
	return nil
}

func (r *RuleRepo) GetByID(_ context.Context, id string) (*entity.RecipientRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == id {
			c := it
			return &c, nil
		}
	}
	return nil, nil
}

func (r *RuleRepo) List(_ context.Context) ([]*entity.RecipientRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.RecipientRule, 0, len(r.items))
	for _, it := range r.items {
		c := it
		out = append(out, &c)
	}
	return out, nil
}

func (r *RuleRepo) Update(_ context.Context, rule *entity.RecipientRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == rule.ID {
			r.items[i] = *rule
		}
	}
	return nil
}

func (r *RuleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// CategoryRepo categorías fijas.
type CategoryRepo struct {
	Items []*entity.Category
}

func (r *CategoryRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Category, error) {
	want := toSet(ids)
	var out []*entity.Category
	for _, c := range r.Items {
		if want[c.ID] {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayName() < out[j].DisplayName() })
	return out, nil
}

// UserRepo usuarios fijos.
type UserRepo struct {
	Items []*entity.User
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.Items {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.Items {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.User, error) {
	want := toSet(ids)
	var out []*entity.User
	for _, u := range r.Items {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

// PartnerRepo contactos fijos.
type PartnerRepo struct {
	Items []*entity.Partner
}

func (r *PartnerRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Partner, error) {
	want := toSet(ids)
	var out []*entity.Partner
	for _, p := range r.Items {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

// MailRepo registro de correos en memoria.
type MailRepo struct {
	mu    sync.Mutex
	Items []entity.MailMessage
}

func (r *MailRepo) Create(_ context.Context, msg *entity.MailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Items = append(r.Items, *msg)
	return nil
}

func (r *MailRepo) MarkSent(_ context.Context, id string, sentAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Items {
		if r.Items[i].ID == id {
			r.Items[i].State = entity.MailStateSent
			r.Items[i].SentAt = &sentAt
		}
	}
	return nil
}

func (r *MailRepo) MarkException(_ context.Context, id, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Items {
		if r.Items[i].ID == id {
			r.Items[i].State = entity.MailStateException
			r.Items[i].Error = reason
		}
	}
	return nil
}

func (r *MailRepo) List(_ context.Context, limit, offset int) ([]*entity.MailMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.MailMessage
	for i := len(r.Items) - 1; i >= 0; i-- {
		c := r.Items[i]
		out = append(out, &c)
	}
	if offset >= len(out) {
		return []*entity.MailMessage{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Snapshot copia de los correos registrados.
func (r *MailRepo) Snapshot() []entity.MailMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.MailMessage(nil), r.Items...)
}

func toSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

var (
	_ repository.QuantRepository         = (*QuantRepo)(nil)
	_ repository.ReportConfigRepository  = (*ConfigRepo)(nil)
	_ repository.RecipientRuleRepository = (*RuleRepo)(nil)
	_ repository.CategoryRepository      = (*CategoryRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.PartnerRepository       = (*PartnerRepo)(nil)
	_ repository.MailMessageRepository   = (*MailRepo)(nil)
)
