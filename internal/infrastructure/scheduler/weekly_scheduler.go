// Package scheduler ejecuta el envío semanal del reporte de lotes en segundo plano.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/pkg/logger"
)

// WeeklySender lo que el scheduler necesita del caso de uso de notificaciones.
type WeeklySender interface {
	SendWeeklyReports(ctx context.Context) (*dto.SendSummaryResponse, error)
}

// WeeklyScheduler dispara SendWeeklyReports cada interval en una goroutine.
// Un fallo se registra y se reintenta en el siguiente tick.
type WeeklyScheduler struct {
	sender     WeeklySender
	interval   time.Duration
	runOnStart bool
	logger     *logger.Logger

	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex
}

// DefaultInterval intervalo usado cuando se recibe uno no positivo.
const DefaultInterval = 7 * 24 * time.Hour

// NewWeeklyScheduler crea el scheduler. Un interval <= 0 se reemplaza por DefaultInterval.
func NewWeeklyScheduler(sender WeeklySender, interval time.Duration, runOnStart bool, log *logger.Logger) *WeeklyScheduler {
	log = log.WithComponent("weekly-scheduler")
	if interval <= 0 {
		log.Warn().Dur("interval", interval).Dur("default", DefaultInterval).Msg("intervalo no positivo, se usa el valor por defecto")
		interval = DefaultInterval
	}
	return &WeeklyScheduler{
		sender:     sender,
		interval:   interval,
		runOnStart: runOnStart,
		logger:     log,
	}
}

// Interval intervalo efectivo entre envíos.
func (s *WeeklyScheduler) Interval() time.Duration { return s.interval }

// Start arranca el ciclo en segundo plano. Llamadas repetidas no tienen efecto.
func (s *WeeklyScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.logger.Info().Dur("interval", s.interval).Bool("run_on_start", s.runOnStart).Msg("scheduler semanal iniciado")

		if s.runOnStart {
			s.runCycle(ctx)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info().Msg("scheduler semanal detenido")
				return
			case <-ticker.C:
				s.runCycle(ctx)
			}
		}
	}()
}

// Stop detiene el ciclo y espera a que termine el envío en curso.
func (s *WeeklyScheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *WeeklyScheduler) runCycle(ctx context.Context) {
	start := time.Now()
	summary, err := s.sender.SendWeeklyReports(ctx)
	if err != nil {
		s.logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("falló el ciclo del reporte semanal")
		return
	}
	s.logger.Info().
		Dur("duration", time.Since(start)).
		Int("rules", summary.RulesTotal).
		Int("sent", summary.EmailsSent).
		Int("skipped", summary.RulesSkipped).
		Msg("ciclo del reporte semanal completado")
}
