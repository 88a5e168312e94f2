package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
)

// MailMessageRepository registro de correos salientes.
type MailMessageRepository interface {
	Create(ctx context.Context, msg *entity.MailMessage) error
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
	MarkException(ctx context.Context, id, reason string) error
	List(ctx context.Context, limit, offset int) ([]*entity.MailMessage, error)
}
