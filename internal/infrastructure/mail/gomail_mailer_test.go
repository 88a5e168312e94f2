package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
	"github.com/jhoicas/lot-expiry-notifications/pkg/logger"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func sampleMail() report.OutgoingMail {
	return report.OutgoingMail{
		To:       []string{"bodega@empresa.co", "compras@proveedor.co"},
		Subject:  "Reporte Semanal de Lotes Próximos a Vencer - Medicamentos",
		BodyHTML: "<p>Adjunto el reporte de lotes próximos a vencer.</p>",
		Attachments: []report.Attachment{
			{Filename: "reporte_lotes_vencimiento.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.4")},
		},
	}
}

func TestBuildMessage_CabecerasYAdjunto(t *testing.T) {
	msg, err := buildMessage("no-reply@empresa.co", sampleMail())
	require.NoError(t, err)

	assert.Equal(t, []string{"no-reply@empresa.co"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"bodega@empresa.co", "compras@proveedor.co"}, msg.GetHeader("To"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, `filename="reporte_lotes_vencimiento.pdf"`)
	assert.Contains(t, raw, "application/pdf")
}

func TestBuildMessage_SinDestinatarios(t *testing.T) {
	_, err := buildMessage("x@y.co", report.OutgoingMail{Subject: "x"})
	assert.Error(t, err)
}

func TestSMTPMailer_Send(t *testing.T) {
	s := &fakeSender{}
	m := &SMTPMailer{from: "no-reply@empresa.co", dialer: s}

	require.NoError(t, m.Send(context.Background(), sampleMail()))
	assert.Len(t, s.sent, 1)
}

func TestSMTPMailer_ErrorDelServidor(t *testing.T) {
	s := &fakeSender{err: errors.New("535 autenticación fallida")}
	m := &SMTPMailer{from: "no-reply@empresa.co", dialer: s}

	err := m.Send(context.Background(), sampleMail())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535")
}

func TestSMTPMailer_ContextoCancelado(t *testing.T) {
	s := &fakeSender{}
	m := &SMTPMailer{from: "no-reply@empresa.co", dialer: s}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, sampleMail()), context.Canceled)
	assert.Empty(t, s.sent)
}

func TestLogMailer_NoFalla(t *testing.T) {
	m := NewLogMailer(logger.Nop())
	assert.NoError(t, m.Send(context.Background(), sampleMail()))
}
