package report

import (
	"context"
	"time"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/repository"
)

// Clock fuente de la hora actual (inyectable en tests).
type Clock func() time.Time

// ReportData contexto que se entrega al generador del PDF.
type ReportData struct {
	Title         string
	Subtitle      string // categoría o reglas a las que corresponde el reporte
	GeneratedAt   string // dd/mm/aaaa HH:MM en la zona horaria del solicitante
	DaysThreshold int
	Expiring      []dto.LotLineDTO
	Expired       []dto.LotLineDTO
}

// ReportPDFGenerator renderiza el reporte de lotes a PDF.
type ReportPDFGenerator interface {
	GenerateLotReport(ctx context.Context, data ReportData) ([]byte, error)
}

// Attachment adjunto de un correo saliente.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// OutgoingMail correo listo para entregar.
type OutgoingMail struct {
	To          []string
	Subject     string
	BodyHTML    string
	Attachments []Attachment
}

// Mailer entrega correos al servidor de salida.
type Mailer interface {
	Send(ctx context.Context, mail OutgoingMail) error
}

// ReportArchive guarda una copia del PDF enviado y devuelve la clave del objeto.
type ReportArchive interface {
	Store(ctx context.Context, filename string, content []byte) (string, error)
}

// ConfigTxRunner ejecuta fn en una transacción con la tabla de configuración bloqueada,
// de modo que la verificación de registro único y la creación sean atómicas.
type ConfigTxRunner interface {
	RunLocked(ctx context.Context, fn func(repo repository.ReportConfigRepository) error) error
}

// Metrics contadores del envío de reportes.
type Metrics interface {
	ReportGenerated(kind string)
	MailSent()
	MailFailed()
	RuleSkipped()
}

// NopMetrics implementación vacía de Metrics.
type NopMetrics struct{}

func (NopMetrics) ReportGenerated(string) {}
func (NopMetrics) MailSent()              {}
func (NopMetrics) MailFailed()            {}
func (NopMetrics) RuleSkipped()           {}
