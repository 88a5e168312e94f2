package entity

import "time"

// Valores por defecto del registro de configuración.
const (
	DefaultReportConfigName    = "Configuración de Reporte de Lotes"
	DefaultReportDaysThreshold = 30
)

// ReportConfig configuración única del reporte de lotes (singleton).
// CategoryIDs vacío = todas las categorías.
type ReportConfig struct {
	ID            string
	Name          string
	DaysThreshold int
	CategoryIDs   []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
