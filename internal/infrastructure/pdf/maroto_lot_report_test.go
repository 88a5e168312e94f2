package pdf

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
)

func sampleData() report.ReportData {
	return report.ReportData{
		Title:         "Reporte de Lotes Próximos a Vencer",
		Subtitle:      "Configuración de Reporte de Lotes",
		GeneratedAt:   "19/10/2026 05:00",
		DaysThreshold: 30,
		Expiring: []dto.LotLineDTO{
			{ProductName: "[MED-01] Ibuprofeno 400mg", CategoryName: "Farmacia / Medicamentos", LotName: "L-2026-01",
				InDate: "20/08/2026", ExpirationDate: "24/10/2026", LocationName: "WH/Stock",
				Quantity: decimal.NewFromInt(1200), DaysLeft: 5},
			{ProductName: "Yogurt", CategoryName: "Sin categoría", LotName: "Y-7",
				ExpirationDate: "21/10/2026", LocationName: "WH/Frío",
				Quantity: decimal.RequireFromString("3.5"), DaysLeft: 2},
		},
		Expired: []dto.LotLineDTO{
			{ProductName: "Jarabe", CategoryName: "Farmacia / Medicamentos", LotName: "J-1",
				ExpirationDate: "16/10/2026", LocationName: "WH/Stock", Quantity: decimal.NewFromInt(7), DaysLeft: -3},
		},
	}
}

func TestGenerateLotReport_ProducePDF(t *testing.T) {
	g := NewMarotoLotReportGenerator("Bodega")

	b, err := g.GenerateLotReport(context.Background(), sampleData())
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestGenerateLotReport_SinLotes(t *testing.T) {
	g := NewMarotoLotReportGenerator("Bodega")
	data := sampleData()
	data.Expiring, data.Expired = nil, nil

	b, err := g.GenerateLotReport(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestGenerateLotReport_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMarotoLotReportGenerator("Bodega").GenerateLotReport(ctx, sampleData())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "25.000", formatQuantity(decimal.NewFromInt(25000)))
	assert.Equal(t, "1.000.000", formatQuantity(decimal.NewFromInt(1000000)))
	assert.Equal(t, "1.234,5", formatQuantity(decimal.RequireFromString("1234.50")))
	assert.Equal(t, "7", formatQuantity(decimal.NewFromInt(7)))
	assert.Equal(t, "-1.500", formatQuantity(decimal.NewFromInt(-1500)))
}

func TestDaysLabel(t *testing.T) {
	assert.Equal(t, "hoy", daysLabel(0))
	assert.Equal(t, "5 d", daysLabel(5))
	assert.Equal(t, "hace 3 d", daysLabel(-3))
}
