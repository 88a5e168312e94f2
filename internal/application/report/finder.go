package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/expiry"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/repository"
)

// LotFinder consulta quants por vencer y vencidos relativos a "hoy" en la zona horaria del reporte.
type LotFinder struct {
	quants repository.QuantRepository
	clock  Clock
	loc    *time.Location
}

// NewLotFinder construye el buscador. clock nil = time.Now; loc nil = UTC.
func NewLotFinder(quants repository.QuantRepository, clock Clock, loc *time.Location) *LotFinder {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &LotFinder{quants: quants, clock: clock, loc: loc}
}

// Today medianoche de hoy en la zona horaria del reporte.
func (f *LotFinder) Today() time.Time {
	return expiry.Today(f.clock(), f.loc)
}

// Now hora actual en la zona horaria del reporte.
func (f *LotFinder) Now() time.Time {
	return f.clock().In(f.loc)
}

// FindExpiringQuants lotes con hoy ≤ vencimiento ≤ hoy+thresholdDays, cantidad > 0 y
// ubicación interna; categoryIDs vacío = todas. Orden ascendente por vencimiento.
func (f *LotFinder) FindExpiringQuants(ctx context.Context, thresholdDays int, categoryIDs []string) ([]*entity.Quant, error) {
	w, err := expiry.NewWindow(f.Today(), thresholdDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	quants, err := f.quants.Find(ctx, repository.QuantFilter{
		ExpiresFrom:   &w.Start,
		ExpiresBefore: &w.End,
		CategoryIDs:   categoryIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("buscar lotes por vencer: %w", err)
	}
	return quants, nil
}

// FindExpiredQuants lotes con vencimiento anterior a hoy, mismas restricciones de cantidad y ubicación.
func (f *LotFinder) FindExpiredQuants(ctx context.Context, categoryIDs []string) ([]*entity.Quant, error) {
	today := f.Today()
	quants, err := f.quants.Find(ctx, repository.QuantFilter{
		ExpiresBefore: &today,
		CategoryIDs:   categoryIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("buscar lotes vencidos: %w", err)
	}
	return quants, nil
}
