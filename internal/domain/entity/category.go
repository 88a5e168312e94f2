package entity

// Category categoría de producto (jerárquica). CompleteName es la ruta "Padre / Hija".
type Category struct {
	ID           string
	ParentID     string // vacío si es raíz
	Name         string
	CompleteName string
}

// DisplayName nombre para mostrar: la ruta completa si existe.
func (c *Category) DisplayName() string {
	if c == nil {
		return ""
	}
	if c.CompleteName != "" {
		return c.CompleteName
	}
	return c.Name
}
