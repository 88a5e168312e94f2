package testutil

import (
	"context"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
	"github.com/stretchr/testify/mock"
)

// MockMailer mock de report.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, mail report.OutgoingMail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

// Sent correos recibidos por Send, en orden.
func (m *MockMailer) Sent() []report.OutgoingMail {
	var out []report.OutgoingMail
	for _, c := range m.Calls {
		if c.Method == "Send" {
			out = append(out, c.Arguments.Get(1).(report.OutgoingMail))
		}
	}
	return out
}

// MockArchive mock de report.ReportArchive.
type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Store(ctx context.Context, filename string, content []byte) (string, error) {
	args := m.Called(ctx, filename, content)
	return args.String(0), args.Error(1)
}

// MockPDF mock de report.ReportPDFGenerator.
type MockPDF struct {
	mock.Mock
}

func (m *MockPDF) GenerateLotReport(ctx context.Context, data report.ReportData) ([]byte, error) {
	args := m.Called(ctx, data)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

// Rendered datos recibidos por GenerateLotReport, en orden.
func (m *MockPDF) Rendered() []report.ReportData {
	var out []report.ReportData
	for _, c := range m.Calls {
		if c.Method == "GenerateLotReport" {
			out = append(out, c.Arguments.Get(1).(report.ReportData))
		}
	}
	return out
}

// MetricsSpy cuenta las llamadas a report.Metrics.
type MetricsSpy struct {
	Reports map[string]int
	Sent    int
	Failed  int
	Skipped int
}

func (s *MetricsSpy) ReportGenerated(kind string) {
	if s.Reports == nil {
		s.Reports = map[string]int{}
	}
	s.Reports[kind]++
}
func (s *MetricsSpy) MailSent()    { s.Sent++ }
func (s *MetricsSpy) MailFailed()  { s.Failed++ }
func (s *MetricsSpy) RuleSkipped() { s.Skipped++ }

var (
	_ report.Mailer             = (*MockMailer)(nil)
	_ report.ReportArchive      = (*MockArchive)(nil)
	_ report.ReportPDFGenerator = (*MockPDF)(nil)
	_ report.Metrics            = (*MetricsSpy)(nil)
	_ report.ConfigTxRunner     = (*ConfigRepo)(nil)
)
