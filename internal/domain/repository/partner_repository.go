package repository

import (
	"context"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
)

// PartnerRepository lectura de contactos externos.
type PartnerRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Partner, error)
}
