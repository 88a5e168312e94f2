package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
	"github.com/jhoicas/lot-expiry-notifications/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Despacho y registro de correos
// ──────────────────────────────────────────────────────────────────────────────

func TestDispatch_ArchivaYRegistra(t *testing.T) {
	e := newEnv(nil)
	e.mailerOK()

	msg, err := e.dispatcher.Dispatch(context.Background(), report.OutgoingMail{
		To:      []string{"a@x.co", "b@x.co"},
		Subject: "Asunto",
		Attachments: []report.Attachment{
			{Filename: "reporte.pdf", ContentType: "application/pdf", Content: []byte("%PDF")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MailStateSent, msg.State)
	assert.Equal(t, "a@x.co,b@x.co", msg.EmailTo)
	assert.Equal(t, "reporte.pdf", msg.AttachmentName)
	require.NotNil(t, msg.SentAt)
	e.archive.AssertCalled(t, "Store", mock.Anything, "reporte.pdf", []byte("%PDF"))
}

func TestDispatch_SinDestinatarios(t *testing.T) {
	e := newEnv(nil)

	_, err := e.dispatcher.Dispatch(context.Background(), report.OutgoingMail{Subject: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, e.mails.Snapshot())
}

func TestDispatch_FalloDeArchivoNoEnvia(t *testing.T) {
	archive := &testutil.MockArchive{}
	archive.On("Store", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket inexistente"))
	mailer := &testutil.MockMailer{}
	mails := &testutil.MailRepo{}
	d := report.NewMailDispatcher(mailer, archive, mails, nil, nil)

	_, err := d.Dispatch(context.Background(), report.OutgoingMail{
		To:          []string{"a@x.co"},
		Attachments: []report.Attachment{{Filename: "r.pdf", Content: []byte("x")}},
	})
	require.Error(t, err)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	assert.Empty(t, mails.Snapshot())
}

func TestDispatchList_MasRecientesPrimero(t *testing.T) {
	e := newEnv(nil)
	e.mailerOK()
	ctx := context.Background()
	for _, s := range []string{"uno", "dos", "tres"} {
		_, err := e.dispatcher.Dispatch(ctx, report.OutgoingMail{To: []string{"a@x.co"}, Subject: s})
		require.NoError(t, err)
	}

	list, err := e.dispatcher.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "tres", list.Items[0].Subject)
	assert.Equal(t, "dos", list.Items[1].Subject)
	assert.Equal(t, 2, list.Page.Limit)
	assert.Equal(t, entity.MailStateSent, list.Items[0].State)
	assert.WithinDuration(t, fixedNow, *list.Items[0].SentAt, time.Second)
}
