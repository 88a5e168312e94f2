package entity

// Product producto almacenable. CategoryID vacío si no tiene categoría.
type Product struct {
	ID          string
	Name        string
	DefaultCode string // referencia interna
	CategoryID  string
}

// DisplayName "[REF] Nombre" cuando hay referencia interna.
func (p Product) DisplayName() string {
	if p.DefaultCode != "" {
		return "[" + p.DefaultCode + "] " + p.Name
	}
	return p.Name
}
