package entity

// Usos de ubicación. Solo las internas cuentan como stock propio.
const (
	LocationUsageInternal = "internal"
	LocationUsageCustomer = "customer"
	LocationUsageSupplier = "supplier"
	LocationUsageTransit  = "transit"
)

// Location ubicación de almacén.
type Location struct {
	ID    string
	Name  string
	Usage string
}

// IsInternal indica si la ubicación forma parte del stock propio de la bodega.
func (l Location) IsInternal() bool { return l.Usage == LocationUsageInternal }
