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
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/repository"
)

// ConfigUseCase casos de uso del registro único de configuración del reporte.
type ConfigUseCase struct {
	tx          ConfigTxRunner
	repo        repository.ReportConfigRepository
	categories  repository.CategoryRepository
	defaultDays int
	clock       Clock
}

// NewConfigUseCase construye el caso de uso. defaultDays se usa al crear la configuración por defecto.
func NewConfigUseCase(tx ConfigTxRunner, repo repository.ReportConfigRepository, categories repository.CategoryRepository, defaultDays int, clock Clock) *ConfigUseCase {
	if clock == nil {
		clock = time.Now
	}
	if defaultDays < 0 {
		defaultDays = entity.DefaultReportDaysThreshold
	}
	return &ConfigUseCase{tx: tx, repo: repo, categories: categories, defaultDays: defaultDays, clock: clock}
}

// GetOrCreateSingleton devuelve la configuración; si no existe la crea con valores por defecto.
func (uc *ConfigUseCase) GetOrCreateSingleton(ctx context.Context) (*entity.ReportConfig, error) {
	cfg, err := uc.repo.GetFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtener configuración: %w", err)
	}
	if cfg != nil {
		return cfg, nil
	}
	err = uc.tx.RunLocked(ctx, func(repo repository.ReportConfigRepository) error {
		existing, err := repo.GetFirst(ctx)
		if err != nil {
			return err
		}
		if existing != nil {
			cfg = existing
			return nil
		}
		cfg = uc.newConfig(entity.DefaultReportConfigName, uc.defaultDays, nil)
		return repo.Create(ctx, cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("crear configuración por defecto: %w", err)
	}
	return cfg, nil
}

// CreateConfig crea la configuración explícitamente. Devuelve ErrSingletonExists si ya hay una.
func (uc *ConfigUseCase) CreateConfig(ctx context.Context, in dto.CreateReportConfigRequest) (*entity.ReportConfig, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = entity.DefaultReportConfigName
	}
	days := uc.defaultDays
	if in.DaysThreshold != nil {
		days = *in.DaysThreshold
	}
	if days < 0 {
		return nil, fmt.Errorf("%w: days_threshold no puede ser negativo", domain.ErrInvalidInput)
	}
	categoryIDs, err := uc.checkCategories(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	cfg := uc.newConfig(name, days, categoryIDs)
	err = uc.tx.RunLocked(ctx, func(repo repository.ReportConfigRepository) error {
		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrSingletonExists
		}
		return repo.Create(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateConfig actualiza umbral, nombre y categorías. Campos nil se conservan.
func (uc *ConfigUseCase) UpdateConfig(ctx context.Context, in dto.UpdateReportConfigRequest) (*entity.ReportConfig, error) {
	cfg, err := uc.GetOrCreateSingleton(ctx)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			cfg.Name = name
		}
	}
	if in.DaysThreshold != nil {
		if *in.DaysThreshold < 0 {
			return nil, fmt.Errorf("%w: days_threshold no puede ser negativo", domain.ErrInvalidInput)
		}
		cfg.DaysThreshold = *in.DaysThreshold
	}
	if in.CategoryIDs != nil {
		ids, err := uc.checkCategories(ctx, *in.CategoryIDs)
		if err != nil {
			return nil, err
		}
		cfg.CategoryIDs = ids
	}
	cfg.UpdatedAt = uc.clock()
	if err := uc.repo.Update(ctx, cfg); err != nil {
		return nil, fmt.Errorf("actualizar configuración: %w", err)
	}
	return cfg, nil
}

func (uc *ConfigUseCase) newConfig(name string, days int, categoryIDs []string) *entity.ReportConfig {
	now := uc.clock()
	return &entity.ReportConfig{
		ID:            uuid.New().String(),
		Name:          name,
		DaysThreshold: days,
		CategoryIDs:   categoryIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// checkCategories normaliza la lista y exige que todas las categorías existan.
func (uc *ConfigUseCase) checkCategories(ctx context.Context, ids []string) ([]string, error) {
	_, normalized, err := resolveCategories(ctx, uc.categories, ids)
	return normalized, err
}

// resolveCategories quita vacíos y duplicados y carga las categorías; ErrInvalidInput si falta alguna.
func resolveCategories(ctx context.Context, repo repository.CategoryRepository, ids []string) ([]*entity.Category, []string, error) {
	normalized := uniqueIDs(ids)
	if len(normalized) == 0 {
		return nil, normalized, nil
	}
	cats, err := repo.GetByIDs(ctx, normalized)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar categorías: %w", err)
	}
	if missing := missingIDs(normalized, len(cats), func(i int) string { return cats[i].ID }); len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: categorías inexistentes: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return cats, normalized, nil
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(want []string, n int, idAt func(int) string) []string {
	found := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		found[idAt(i)] = struct{}{}
	}
	var missing []string
	for _, id := range want {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// ToConfigResponse convierte la entidad a DTO.
func ToConfigResponse(cfg *entity.ReportConfig) *dto.ReportConfigResponse {
	if cfg == nil {
		return nil
	}
	ids := cfg.CategoryIDs
	if ids == nil {
		ids = []string{}
	}
	return &dto.ReportConfigResponse{
		ID:            cfg.ID,
		Name:          cfg.Name,
		DaysThreshold: cfg.DaysThreshold,
		CategoryIDs:   ids,
		CreatedAt:     cfg.CreatedAt,
		UpdatedAt:     cfg.UpdatedAt,
	}
}
