package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/expiry"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/repository"
)

const (
	reportTitle = "Reporte de Lotes Próximos a Vencer"

	// Tipos de reporte para métricas.
	KindDownload = "download"
	KindCategory = "category"
	KindWeekly   = "weekly"
)

// GeneratedReport PDF generado con su nombre de archivo.
type GeneratedReport struct {
	Filename string
	Content  []byte
	Data     ReportData
}

// ReportUseCase generación del reporte de lotes según la configuración única.
type ReportUseCase struct {
	config    *ConfigUseCase
	finder    *LotFinder
	users     repository.UserRepository
	generator ReportPDFGenerator
	metrics   Metrics
}

// NewReportUseCase construye el caso de uso. metrics nil = NopMetrics.
func NewReportUseCase(config *ConfigUseCase, finder *LotFinder, users repository.UserRepository, generator ReportPDFGenerator, metrics Metrics) *ReportUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &ReportUseCase{config: config, finder: finder, users: users, generator: generator, metrics: metrics}
}

// GenerateReport arma el PDF con lotes por vencer y vencidos de las categorías configuradas.
// Devuelve ErrNoExpiringLots si no hay lotes dentro de la ventana.
func (uc *ReportUseCase) GenerateReport(ctx context.Context, userID string) (*GeneratedReport, error) {
	cfg, err := uc.config.GetOrCreateSingleton(ctx)
	if err != nil {
		return nil, err
	}
	expiring, err := uc.finder.FindExpiringQuants(ctx, cfg.DaysThreshold, cfg.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if len(expiring) == 0 {
		return nil, domain.ErrNoExpiringLots
	}
	expired, err := uc.finder.FindExpiredQuants(ctx, cfg.CategoryIDs)
	if err != nil {
		return nil, err
	}

	tz, err := uc.userTZ(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := uc.finder.Today()
	data := ReportData{
		Title:         reportTitle,
		Subtitle:      cfg.Name,
		GeneratedAt:   GenerationTimestamp(uc.finder.Now(), tz),
		DaysThreshold: cfg.DaysThreshold,
		Expiring:      ToLotLines(expiring, today),
		Expired:       ToLotLines(expired, today),
	}
	content, err := uc.generator.GenerateLotReport(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	uc.metrics.ReportGenerated(KindDownload)
	return &GeneratedReport{Filename: expiry.WeeklyReportFilename, Content: content, Data: data}, nil
}

// ExpiringLines lotes por vencer según la configuración, como registros de presentación.
func (uc *ReportUseCase) ExpiringLines(ctx context.Context) (*dto.LotListResponse, error) {
	cfg, err := uc.config.GetOrCreateSingleton(ctx)
	if err != nil {
		return nil, err
	}
	quants, err := uc.finder.FindExpiringQuants(ctx, cfg.DaysThreshold, cfg.CategoryIDs)
	if err != nil {
		return nil, err
	}
	items := ToLotLines(quants, uc.finder.Today())
	return &dto.LotListResponse{DaysThreshold: cfg.DaysThreshold, Total: len(items), Items: items}, nil
}

// ExpiredLines lotes ya vencidos de las categorías configuradas.
func (uc *ReportUseCase) ExpiredLines(ctx context.Context) (*dto.LotListResponse, error) {
	cfg, err := uc.config.GetOrCreateSingleton(ctx)
	if err != nil {
		return nil, err
	}
	quants, err := uc.finder.FindExpiredQuants(ctx, cfg.CategoryIDs)
	if err != nil {
		return nil, err
	}
	items := ToLotLines(quants, uc.finder.Today())
	return &dto.LotListResponse{DaysThreshold: cfg.DaysThreshold, Total: len(items), Items: items}, nil
}

// userTZ zona horaria del usuario solicitante; vacío si no tiene o no existe.
func (uc *ReportUseCase) userTZ(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", nil
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("obtener usuario: %w", err)
	}
	if user == nil {
		return "", nil
	}
	return user.TZ, nil
}
