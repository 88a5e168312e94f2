package repository

import (
	"context"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
)

// CategoryRepository lectura de categorías de producto.
type CategoryRepository interface {
	// GetByIDs devuelve las categorías existentes ordenadas por ruta completa; ignora IDs inexistentes.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Category, error)
}
