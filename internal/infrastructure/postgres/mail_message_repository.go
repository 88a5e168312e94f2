package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/repository"
)

var _ repository.MailMessageRepository = (*MailMessageRepo)(nil)

// MailMessageRepo registro de correos salientes en mail_messages.
type MailMessageRepo struct {
	q Querier
}

// NewMailMessageRepository construye el adaptador.
func NewMailMessageRepository(q Querier) *MailMessageRepo {
	return &MailMessageRepo{q: q}
}

// Create inserta el correo en estado outgoing.
func (r *MailMessageRepo) Create(ctx context.Context, m *entity.MailMessage) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO mail_messages (id, subject, body_html, email_to, attachment_name, attachment_key, state, error, created_at, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.Subject, m.BodyHTML, m.EmailTo, m.AttachmentName, m.AttachmentKey, m.State, m.Error, m.CreatedAt, m.SentAt,
	)
	if err != nil {
		return fmt.Errorf("insert mail message: %w", err)
	}
	return nil
}

// MarkSent pasa el correo a sent.
func (r *MailMessageRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	return r.setState(ctx, `UPDATE mail_messages SET state = $2, sent_at = $3, error = '' WHERE id = $1`,
		id, entity.MailStateSent, sentAt)
}

// MarkException pasa el correo a exception con el motivo.
func (r *MailMessageRepo) MarkException(ctx context.Context, id, reason string) error {
	return r.setState(ctx, `UPDATE mail_messages SET state = $2, error = $3 WHERE id = $1`,
		id, entity.MailStateException, reason)
}

func (r *MailMessageRepo) setState(ctx context.Context, query string, args ...any) error {
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update mail message: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List correos más recientes primero.
func (r *MailMessageRepo) List(ctx context.Context, limit, offset int) ([]*entity.MailMessage, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, subject, body_html, email_to, attachment_name, attachment_key, state, error, created_at, sent_at
		FROM mail_messages
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list mail messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.MailMessage
	for rows.Next() {
		var m entity.MailMessage
		if err := rows.Scan(&m.ID, &m.Subject, &m.BodyHTML, &m.EmailTo, &m.AttachmentName, &m.AttachmentKey,
			&m.State, &m.Error, &m.CreatedAt, &m.SentAt); err != nil {
			return nil, fmt.Errorf("scan mail message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
