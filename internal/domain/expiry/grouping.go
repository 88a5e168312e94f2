package expiry

import "github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"

// CatchAllCategoryName nombre del grupo para productos sin categoría.
const CatchAllCategoryName = "Todas"

// CategoryGroup quants de una misma categoría, en el orden recibido.
type CategoryGroup struct {
	Category entity.Category
	Quants   []*entity.Quant
}

// GroupByCategory particiona los quants por categoría del producto. Los quants sin
// categoría van al grupo "Todas". Los grupos salen en orden de primera aparición.
func GroupByCategory(quants []*entity.Quant) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)
	for _, q := range quants {
		cat := entity.Category{Name: CatchAllCategoryName, CompleteName: CatchAllCategoryName}
		if q.Category != nil {
			cat = *q.Category
		}
		i, ok := index[cat.ID]
		if !ok {
			i = len(groups)
			index[cat.ID] = i
			groups = append(groups, CategoryGroup{Category: cat})
		}
		groups[i].Quants = append(groups[i].Quants, q)
	}
	return groups
}
