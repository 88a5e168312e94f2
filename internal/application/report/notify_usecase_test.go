package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Envío agrupado por categoría
// ──────────────────────────────────────────────────────────────────────────────

func TestSendGroupedEmails_UnCorreoPorCategoria(t *testing.T) {
	e := newEnv(stock())
	e.mailerOK()

	summary, err := e.notify.SendGroupedEmails(context.Background(), "u-admin")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Groups)
	assert.Equal(t, 3, summary.EmailsSent)

	sent := e.mailer.Sent()
	require.Len(t, sent, 3)

	assert.Equal(t, "⚠️ Lotes próximos a vencer - Refrigerados/Congelados", sent[0].Subject)
	assert.Equal(t, "Lotes_a_vencer_Refrigerados_Congelados_2026-10-19.pdf", sent[0].Attachments[0].Filename)
	assert.Equal(t, "⚠️ Lotes próximos a vencer - Medicamentos", sent[1].Subject)
	assert.Equal(t, "⚠️ Lotes próximos a vencer - Todas", sent[2].Subject)
	assert.Equal(t, "Lotes_a_vencer_Todas_2026-10-19.pdf", sent[2].Attachments[0].Filename)

	for _, m := range sent {
		assert.Equal(t, []string{"admin@bodega.co"}, m.To)
		assert.Equal(t, "application/pdf", m.Attachments[0].ContentType)
	}

	rendered := e.pdf.Rendered()
	require.Len(t, rendered, 3)
	assert.Len(t, rendered[1].Expiring, 1)
	assert.Empty(t, rendered[1].Expired, "el envío por categoría solo incluye lotes por vencer")

	mails := e.mails.Snapshot()
	require.Len(t, mails, 3)
	for _, m := range mails {
		assert.Equal(t, entity.MailStateSent, m.State)
		assert.Equal(t, "reportes/2026-10-19/x.pdf", m.AttachmentKey)
	}
	assert.Equal(t, 3, e.metrics.Sent)
	assert.Equal(t, 3, e.metrics.Reports[report.KindCategory])
}

func TestSendGroupedEmails_SinLotesNoEnvia(t *testing.T) {
	e := newEnv(nil)

	summary, err := e.notify.SendGroupedEmails(context.Background(), "u-admin")
	require.NoError(t, err)
	assert.Zero(t, summary.EmailsSent)
	e.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	assert.Empty(t, e.mails.Snapshot())
}

func TestSendGroupedEmails_UsuarioSinEmail(t *testing.T) {
	e := newEnv(stock())

	_, err := e.notify.SendGroupedEmails(context.Background(), "u-sin-email")
	assert.ErrorIs(t, err, domain.ErrNoRecipientEmail)

	_, err = e.notify.SendGroupedEmails(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSendGroupedEmails_FalloDeEnvioCorta(t *testing.T) {
	e := newEnv(stock())
	e.mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp: 550 buzón lleno"))

	summary, err := e.notify.SendGroupedEmails(context.Background(), "u-admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "550")
	assert.Zero(t, summary.EmailsSent)
	e.mailer.AssertNumberOfCalls(t, "Send", 1)

	mails := e.mails.Snapshot()
	require.Len(t, mails, 1)
	assert.Equal(t, entity.MailStateException, mails[0].State)
	assert.Contains(t, mails[0].Error, "buzón lleno")
	assert.Equal(t, 1, e.metrics.Failed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío semanal por regla
// ──────────────────────────────────────────────────────────────────────────────

func addRule(t *testing.T, e *env, r entity.RecipientRule) {
	t.Helper()
	require.NoError(t, e.rules.Create(context.Background(), &r))
}

func TestSendWeeklyReports(t *testing.T) {
	e := newEnv(stock())
	e.mailerOK()
	addRule(t, e, entity.RecipientRule{
		ID: "r-med", Name: "Destinatarios para: Medicamentos",
		CategoryIDs: []string{"cat-med"},
		UserIDs:     []string{"u-admin", "u-sin-email"},
		PartnerIDs:  []string{"pt-dup", "pt-prov"},
	})
	addRule(t, e, entity.RecipientRule{
		ID: "r-sin-destinatarios", CategoryIDs: []string{"cat-frio"},
		UserIDs: []string{"u-sin-email"}, PartnerIDs: []string{"pt-sin-email"},
	})
	addRule(t, e, entity.RecipientRule{
		ID: "r-vacia", CategoryIDs: []string{"cat-vacia"}, PartnerIDs: []string{"pt-prov"},
	})

	summary, err := e.notify.SendWeeklyReports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.RulesTotal)
	assert.Equal(t, 2, summary.EmailsSent)
	assert.Equal(t, 1, summary.RulesSkipped)
	assert.Equal(t, 1, e.metrics.Skipped)

	sent := e.mailer.Sent()
	require.Len(t, sent, 2)

	med := sent[0]
	assert.Equal(t, []string{"admin@bodega.co", "compras@proveedor.co"}, med.To, "emails deduplicados en orden")
	assert.Equal(t, "Reporte Semanal de Lotes Próximos a Vencer - Medicamentos", med.Subject)
	assert.Equal(t, "<p>Adjunto el reporte de lotes próximos a vencer.</p>", med.BodyHTML)
	require.Len(t, med.Attachments, 1)
	assert.Equal(t, "reporte_lotes_vencimiento.pdf", med.Attachments[0].Filename)

	data := e.pdf.Rendered()[0]
	assert.Len(t, data.Expiring, 1)
	assert.Len(t, data.Expired, 1)

	vacia := sent[1]
	assert.Equal(t, "Reporte Semanal de Lotes Próximos a Vencer - Insumos", vacia.Subject)
	assert.Empty(t, vacia.Attachments)
	assert.Equal(t,
		"<p>No se encontraron lotes próximos a vencer o vencidos en las categorías asignadas en los próximos 30 días.</p>",
		vacia.BodyHTML)
}

func TestSendWeeklyReports_SoloVencidosTambienAdjunta(t *testing.T) {
	e := newEnv([]*entity.Quant{quant("q4", catMed, -3, 7, internal)})
	e.mailerOK()
	addRule(t, e, entity.RecipientRule{ID: "r1", CategoryIDs: []string{"cat-med"}, UserIDs: []string{"u-admin"}})

	_, err := e.notify.SendWeeklyReports(context.Background())
	require.NoError(t, err)

	sent := e.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Len(t, sent[0].Attachments, 1)
}

func TestSendWeeklyReports_ReglaSinCategoriasIncluyeTodosLosVencidos(t *testing.T) {
	e := newEnv(stock())
	e.mailerOK()
	addRule(t, e, entity.RecipientRule{ID: "r1", UserIDs: []string{"u-admin"}})

	_, err := e.notify.SendWeeklyReports(context.Background())
	require.NoError(t, err)

	require.Len(t, e.quants.Calls, 1, "solo se consultan los vencidos")
	assert.Empty(t, e.quants.Calls[0].CategoryIDs, "vencidos sin filtro de categoría")

	sent := e.mailer.Sent()
	require.Len(t, sent, 1)
	require.Len(t, sent[0].Attachments, 1)
	data := e.pdf.Rendered()[0]
	assert.Empty(t, data.Expiring)
	assert.Equal(t, []string{"LOTE-q4"}, lotNames(data.Expired))
}

func TestSendWeeklyReports_ReglaSinCategoriasNiVencidos(t *testing.T) {
	e := newEnv([]*entity.Quant{quant("q1", catMed, 5, 10, internal)})
	e.mailerOK()
	addRule(t, e, entity.RecipientRule{ID: "r1", UserIDs: []string{"u-admin"}})

	_, err := e.notify.SendWeeklyReports(context.Background())
	require.NoError(t, err)

	sent := e.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Empty(t, sent[0].Attachments, "sin categorías no hay lotes por vencer")
}

func lotNames(lines []dto.LotLineDTO) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.LotName)
	}
	return out
}

func TestSendWeeklyReports_FalloCortaElProceso(t *testing.T) {
	e := newEnv(stock())
	e.mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("conexión rechazada"))
	addRule(t, e, entity.RecipientRule{ID: "r1", CategoryIDs: []string{"cat-med"}, UserIDs: []string{"u-admin"}})
	addRule(t, e, entity.RecipientRule{ID: "r2", CategoryIDs: []string{"cat-frio"}, UserIDs: []string{"u-admin"}})

	summary, err := e.notify.SendWeeklyReports(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "r1")
	assert.Equal(t, 1, summary.RulesTotal)
	e.mailer.AssertNumberOfCalls(t, "Send", 1)
}

func TestSendWeeklyReports_SinReglas(t *testing.T) {
	e := newEnv(stock())

	summary, err := e.notify.SendWeeklyReports(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.RulesTotal)
	e.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
