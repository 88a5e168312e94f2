package entity

import "time"

// Lot lote/serie de un producto con su propia fecha de vencimiento.
type Lot struct {
	ID             string
	Name           string
	ExpirationDate *time.Time
}
