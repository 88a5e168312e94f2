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
	"github.com/jhoicas/lot-expiry-notifications/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Generación del reporte PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateReport_SinLotesPorVencer(t *testing.T) {
	// Solo hay un lote vencido: sin lotes en la ventana no se genera nada.
	e := newEnv([]*entity.Quant{quant("q4", catMed, -3, 7, internal)})

	_, err := e.reports.GenerateReport(context.Background(), "u-admin")
	assert.ErrorIs(t, err, domain.ErrNoExpiringLots)
	e.pdf.AssertNotCalled(t, "GenerateLotReport", mock.Anything, mock.Anything)
}

func TestGenerateReport_ContenidoYZonaHoraria(t *testing.T) {
	e := newEnv(stock())

	got, err := e.reports.GenerateReport(context.Background(), "u-admin")
	require.NoError(t, err)
	assert.Equal(t, "reporte_lotes_vencimiento.pdf", got.Filename)
	assert.Equal(t, []byte("%PDF-1.4 fake"), got.Content)

	rendered := e.pdf.Rendered()
	require.Len(t, rendered, 1)
	data := rendered[0]
	assert.Equal(t, "19/10/2026 05:00", data.GeneratedAt, "hora de generación en la zona del usuario")
	assert.Equal(t, 30, data.DaysThreshold)
	require.Len(t, data.Expiring, 3)
	assert.Equal(t, "LOTE-q2", data.Expiring[0].LotName)
	require.Len(t, data.Expired, 1)
	assert.Equal(t, "LOTE-q4", data.Expired[0].LotName)
	assert.Equal(t, -3, data.Expired[0].DaysLeft)
	assert.Equal(t, 1, e.metrics.Reports[report.KindDownload])
}

func TestGenerateReport_UsuarioSinZonaUsaUTC(t *testing.T) {
	e := newEnv(stock())

	_, err := e.reports.GenerateReport(context.Background(), "u-sin-tz")
	require.NoError(t, err)
	assert.Equal(t, "19/10/2026 10:00", e.pdf.Rendered()[0].GeneratedAt)
}

func TestGenerateReport_RespetaCategoriasDeLaConfiguracion(t *testing.T) {
	e := newEnv(stock())
	cats := []string{"cat-med"}
	_, err := e.config.UpdateConfig(context.Background(), dto.UpdateReportConfigRequest{CategoryIDs: &cats})
	require.NoError(t, err)

	_, err = e.reports.GenerateReport(context.Background(), "u-admin")
	require.NoError(t, err)

	data := e.pdf.Rendered()[0]
	require.Len(t, data.Expiring, 1)
	assert.Equal(t, "LOTE-q1", data.Expiring[0].LotName)
	require.Len(t, data.Expired, 1)
}

func TestGenerateReport_FalloDelGenerador(t *testing.T) {
	e := newEnv(stock())
	e.pdf = &testutil.MockPDF{}
	e.pdf.On("GenerateLotReport", mock.Anything, mock.Anything).Return(nil, errors.New("fuente no encontrada"))
	uc := report.NewReportUseCase(e.config, e.finder, e.users, e.pdf, nil)

	_, err := uc.GenerateReport(context.Background(), "u-admin")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fuente no encontrada")
}

func TestExpiringYExpiredLines(t *testing.T) {
	e := newEnv(stock())
	ctx := context.Background()

	expiring, err := e.reports.ExpiringLines(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, expiring.Total)
	assert.Equal(t, 30, expiring.DaysThreshold)

	expired, err := e.reports.ExpiredLines(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired.Total)
	assert.Equal(t, "16/10/2026", expired.Items[0].ExpirationDate)
}
