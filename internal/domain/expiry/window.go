// Package expiry contiene las reglas puras del reporte de vencimientos:
// ventanas de fechas, agrupación por categoría, destinatarios y nombres.
package expiry

import (
	"fmt"
	"time"
)

// Window rango de vencimiento [Start, End) en días calendario.
// Start es la medianoche de hoy; End la medianoche del día siguiente al límite,
// de modo que un lote que vence el mismo día del límite queda incluido.
type Window struct {
	Start time.Time
	End   time.Time
}

// Today devuelve la medianoche de now en loc (nil = UTC).
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
}

// NewWindow construye la ventana hoy ≤ fecha ≤ hoy+thresholdDays.
func NewWindow(today time.Time, thresholdDays int) (Window, error) {
	if thresholdDays < 0 {
		return Window{}, fmt.Errorf("días hasta vencimiento no puede ser negativo: %d", thresholdDays)
	}
	return Window{
		Start: today,
		End:   today.AddDate(0, 0, thresholdDays+1),
	}, nil
}

// Contains indica si t cae dentro de la ventana.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// DaysUntil días calendario entre today y el vencimiento (negativo si ya venció).
func DaysUntil(today, expiration time.Time) int {
	exp := Today(expiration, today.Location())
	a := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(exp.Year(), exp.Month(), exp.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
