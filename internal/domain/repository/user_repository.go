package repository

import (
	"context"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
)

// UserRepository lectura de usuarios internos.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
}
