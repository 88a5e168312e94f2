package entity

import "time"

// RecipientRule asocia categorías con usuarios internos y contactos externos.
// Name se deriva de las categorías en cada escritura.
type RecipientRule struct {
	ID          string
	Name        string
	CategoryIDs []string
	UserIDs     []string
	PartnerIDs  []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
