// Package metrics contadores Prometheus del servicio y middleware HTTP.
package metrics

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
)

const namespace = "lot_expiry"

var _ report.Metrics = (*Recorder)(nil)

// Recorder implementa report.Metrics sobre contadores Prometheus.
type Recorder struct {
	reports      *prometheus.CounterVec
	mailsSent    prometheus.Counter
	mailsFailed  prometheus.Counter
	rulesSkipped prometheus.Counter
	requestCount *prometheus.CounterVec
}

// NewRecorder crea y registra los contadores en reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "PDF de lotes generados, por tipo de envío.",
		}, []string{"kind"}),
		mailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Correos entregados al servidor SMTP.",
		}),
		mailsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_failed_total",
			Help:      "Correos cuyo envío falló.",
		}),
		rulesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rules_skipped_total",
			Help:      "Reglas de destinatarios omitidas por no tener direcciones.",
		}),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		}, []string{"method", "path", "status"}),
	}
	for _, c := range []prometheus.Collector{r.reports, r.mailsSent, r.mailsFailed, r.rulesSkipped, r.requestCount} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) ReportGenerated(kind string) { r.reports.WithLabelValues(kind).Inc() }
func (r *Recorder) MailSent()                   { r.mailsSent.Inc() }
func (r *Recorder) MailFailed()                 { r.mailsFailed.Inc() }
func (r *Recorder) RuleSkipped()                { r.rulesSkipped.Inc() }

// Middleware cuenta las peticiones HTTP por método, ruta y estado. /metrics no se cuenta.
func (r *Recorder) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		err := c.Next()

		// Patrón de ruta (/recipients/:id) para no explotar la cardinalidad.
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		r.requestCount.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		return err
	}
}
