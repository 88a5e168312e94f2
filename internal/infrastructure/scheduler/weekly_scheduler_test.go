package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/infrastructure/scheduler"
	"github.com/jhoicas/lot-expiry-notifications/pkg/logger"
)

type countingSender struct {
	calls atomic.Int32
	err   error
}

func (s *countingSender) SendWeeklyReports(context.Context) (*dto.SendSummaryResponse, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SendSummaryResponse{RulesTotal: 1, EmailsSent: 1}, nil
}

func TestWeeklyScheduler_EjecutaPorTick(t *testing.T) {
	sender := &countingSender{}
	s := scheduler.NewWeeklyScheduler(sender, 10*time.Millisecond, false, logger.Nop())

	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return sender.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestWeeklyScheduler_RunOnStart(t *testing.T) {
	sender := &countingSender{}
	s := scheduler.NewWeeklyScheduler(sender, time.Hour, true, logger.Nop())

	s.Start(context.Background())
	require.Eventually(t, func() bool { return sender.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), sender.calls.Load())
}

func TestWeeklyScheduler_ErrorNoDetieneElCiclo(t *testing.T) {
	sender := &countingSender{err: errors.New("smtp caído")}
	s := scheduler.NewWeeklyScheduler(sender, 10*time.Millisecond, true, logger.Nop())

	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return sender.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestWeeklyScheduler_StopSinStart(t *testing.T) {
	s := scheduler.NewWeeklyScheduler(&countingSender{}, time.Hour, false, logger.Nop())
	assert.NotPanics(t, s.Stop)
}

func TestWeeklyScheduler_StopDetiene(t *testing.T) {
	sender := &countingSender{}
	s := scheduler.NewWeeklyScheduler(sender, 5*time.Millisecond, false, logger.Nop())
	s.Start(context.Background())
	require.Eventually(t, func() bool { return sender.calls.Load() >= 1 }, time.Second, time.Millisecond)
	s.Stop()

	n := sender.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, sender.calls.Load(), "no hay envíos después de Stop")
}

func TestWeeklyScheduler_IntervaloNoPositivoUsaDefault(t *testing.T) {
	for _, interval := range []time.Duration{0, -5 * time.Hour} {
		sender := &countingSender{}
		s := scheduler.NewWeeklyScheduler(sender, interval, true, logger.Nop())
		assert.Equal(t, scheduler.DefaultInterval, s.Interval())

		assert.NotPanics(t, func() {
			s.Start(context.Background())
			require.Eventually(t, func() bool { return sender.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
			s.Stop()
		})
	}
}
