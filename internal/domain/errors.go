package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrNoRecipientEmail = errors.New("el usuario no tiene email configurado")

	// ErrSingletonExists: solo puede existir un registro de configuración del reporte.
	ErrSingletonExists = errors.New("solo puede existir un registro de configuración para este reporte")
	// ErrNoExpiringLots: la generación del reporte no encontró lotes dentro de la ventana.
	ErrNoExpiringLots = errors.New("no se encontraron lotes próximos a vencer")
)
