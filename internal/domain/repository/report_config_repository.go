package repository

import (
	"context"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
)

// ReportConfigRepository persistencia del registro de configuración del reporte.
type ReportConfigRepository interface {
	// GetFirst devuelve el primer registro o nil si no hay ninguno.
	GetFirst(ctx context.Context) (*entity.ReportConfig, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, cfg *entity.ReportConfig) error
	Update(ctx context.Context, cfg *entity.ReportConfig) error
}
