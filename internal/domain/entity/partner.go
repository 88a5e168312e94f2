package entity

// Partner contacto externo (proveedor, cliente) que puede recibir el reporte.
type Partner struct {
	ID    string
	Name  string
	Email string
}
