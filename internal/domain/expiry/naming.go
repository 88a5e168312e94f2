package expiry

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
)

const (
	// WeeklyReportFilename adjunto del reporte por regla de destinatarios.
	WeeklyReportFilename = "reporte_lotes_vencimiento.pdf"

	ruleNameMaxCategories = 3
)

// RuleDisplayName nombre derivado de una regla: primeras tres categorías.
func RuleDisplayName(categories []*entity.Category) string {
	names := CategoryNames(categories)
	if len(names) > ruleNameMaxCategories {
		names = names[:ruleNameMaxCategories]
	}
	if len(names) == 0 {
		return "Sin categorías"
	}
	return "Destinatarios para: " + strings.Join(names, ", ")
}

// CategoryNames nombres cortos, omitiendo categorías nil o sin nombre.
func CategoryNames(categories []*entity.Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if c != nil && c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names
}

// CategoryReportFilename "Lotes_a_vencer_<categoría>_<AAAA-MM-DD>.pdf"; las "/" del nombre pasan a "_".
func CategoryReportFilename(categoryName string, today time.Time) string {
	return fmt.Sprintf("Lotes_a_vencer_%s_%s.pdf",
		strings.ReplaceAll(categoryName, "/", "_"), today.Format("2006-01-02"))
}

// CategorySubject asunto del correo por categoría.
func CategorySubject(categoryName string) string {
	return "⚠️ Lotes próximos a vencer - " + categoryName
}

// WeeklySubject asunto del correo semanal de una regla.
func WeeklySubject(categories []*entity.Category) string {
	return "Reporte Semanal de Lotes Próximos a Vencer - " + strings.Join(CategoryNames(categories), ", ")
}

// WeeklyBody cuerpo HTML del correo semanal.
func WeeklyBody(hasLots bool, thresholdDays int) string {
	if hasLots {
		return "<p>Adjunto el reporte de lotes próximos a vencer.</p>"
	}
	return fmt.Sprintf("<p>No se encontraron lotes próximos a vencer o vencidos en las categorías asignadas en los próximos %d días.</p>", thresholdDays)
}
