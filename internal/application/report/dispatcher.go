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

// MailDispatcher archiva los adjuntos, registra el correo y lo entrega.
// El registro pasa de outgoing a sent, o a exception si la entrega falla.
type MailDispatcher struct {
	mailer  Mailer
	archive ReportArchive
	mails   repository.MailMessageRepository
	metrics Metrics
	clock   Clock
}

// NewMailDispatcher construye el despachador. metrics nil = NopMetrics; clock nil = time.Now.
func NewMailDispatcher(mailer Mailer, archive ReportArchive, mails repository.MailMessageRepository, metrics Metrics, clock Clock) *MailDispatcher {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if clock == nil {
		clock = time.Now
	}
	return &MailDispatcher{mailer: mailer, archive: archive, mails: mails, metrics: metrics, clock: clock}
}

// Dispatch envía el correo. Devuelve el registro aun cuando la entrega falla.
func (d *MailDispatcher) Dispatch(ctx context.Context, mail OutgoingMail) (*entity.MailMessage, error) {
	if len(mail.To) == 0 {
		return nil, fmt.Errorf("%w: correo sin destinatarios", domain.ErrInvalidInput)
	}
	msg := &entity.MailMessage{
		ID:        uuid.New().String(),
		Subject:   mail.Subject,
		BodyHTML:  mail.BodyHTML,
		EmailTo:   strings.Join(mail.To, ","),
		State:     entity.MailStateOutgoing,
		CreatedAt: d.clock(),
	}

	names := make([]string, 0, len(mail.Attachments))
	keys := make([]string, 0, len(mail.Attachments))
	for _, a := range mail.Attachments {
		key, err := d.archive.Store(ctx, a.Filename, a.Content)
		if err != nil {
			return nil, fmt.Errorf("archivar %s: %w", a.Filename, err)
		}
		names = append(names, a.Filename)
		if key != "" {
			keys = append(keys, key)
		}
	}
	msg.AttachmentName = strings.Join(names, ",")
	msg.AttachmentKey = strings.Join(keys, ",")

	if err := d.mails.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("registrar correo: %w", err)
	}

	if err := d.mailer.Send(ctx, mail); err != nil {
		d.metrics.MailFailed()
		msg.State = entity.MailStateException
		msg.Error = err.Error()
		if markErr := d.mails.MarkException(ctx, msg.ID, err.Error()); markErr != nil {
			return msg, fmt.Errorf("enviar correo: %w (registrar fallo: %v)", err, markErr)
		}
		return msg, fmt.Errorf("enviar correo: %w", err)
	}

	sentAt := d.clock()
	if err := d.mails.MarkSent(ctx, msg.ID, sentAt); err != nil {
		return msg, fmt.Errorf("marcar correo enviado: %w", err)
	}
	msg.State = entity.MailStateSent
	msg.SentAt = &sentAt
	d.metrics.MailSent()
	return msg, nil
}

// List correos registrados, más recientes primero.
func (d *MailDispatcher) List(ctx context.Context, page dto.PageRequest) (*dto.MailListResponse, error) {
	page.DefaultPage()
	msgs, err := d.mails.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar correos: %w", err)
	}
	items := make([]dto.MailMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, dto.MailMessageResponse{
			ID:             m.ID,
			Subject:        m.Subject,
			EmailTo:        m.EmailTo,
			AttachmentName: m.AttachmentName,
			AttachmentKey:  m.AttachmentKey,
			State:          m.State,
			Error:          m.Error,
			CreatedAt:      m.CreatedAt,
			SentAt:         m.SentAt,
		})
	}
	return &dto.MailListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
