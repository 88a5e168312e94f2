package report

import (
	"time"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/expiry"
)

const (
	dateLayout      = "02/01/2006"
	timestampLayout = "02/01/2006 15:04"
	noCategoryLabel = "Sin categoría"
)

// ToLotLines convierte quants en registros de presentación. Las fechas se muestran
// en la zona horaria de today.
func ToLotLines(quants []*entity.Quant, today time.Time) []dto.LotLineDTO {
	loc := today.Location()
	lines := make([]dto.LotLineDTO, 0, len(quants))
	for _, q := range quants {
		line := dto.LotLineDTO{
			ProductName:  q.Product.DisplayName(),
			CategoryName: noCategoryLabel,
			LotName:      q.Lot.Name,
			LocationName: q.Location.Name,
			Quantity:     q.Quantity,
		}
		if name := q.Category.DisplayName(); name != "" {
			line.CategoryName = name
		}
		if q.InDate != nil {
			line.InDate = q.InDate.In(loc).Format(dateLayout)
		}
		if q.Lot.ExpirationDate != nil {
			line.ExpirationDate = q.Lot.ExpirationDate.In(loc).Format(dateLayout)
			line.DaysLeft = expiry.DaysUntil(today, *q.Lot.ExpirationDate)
		}
		lines = append(lines, line)
	}
	return lines
}

// GenerationTimestamp fecha/hora de generación en la zona horaria tz del usuario.
// tz vacío o desconocido se interpreta como UTC.
func GenerationTimestamp(now time.Time, tz string) string {
	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	return now.In(loc).Format(timestampLayout)
}
