package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quant cantidad en existencia de un producto/lote en una ubicación.
// Lo mantiene el subsistema de inventario; este servicio solo lo lee.
// Category es nil cuando el producto no tiene categoría.
type Quant struct {
	ID       string
	Product  Product
	Category *Category
	Lot      Lot
	Location Location
	Quantity decimal.Decimal
	InDate   *time.Time
}
