package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
)

// QuantFilter criterios de búsqueda de quants con lote vencible.
// Siempre se exige fecha de vencimiento, cantidad > 0 y ubicación interna.
type QuantFilter struct {
	ExpiresFrom   *time.Time // inclusivo
	ExpiresBefore *time.Time // exclusivo
	CategoryIDs   []string   // vacío = todas las categorías
}

// QuantRepository puerto de lectura de existencias por lote (DIP).
type QuantRepository interface {
	// Find devuelve los quants que cumplen el filtro ordenados por vencimiento ascendente.
	Find(ctx context.Context, filter QuantFilter) ([]*entity.Quant, error)
}
