package dto

import "time"

// RecipientRuleRequest body para crear/actualizar una regla de destinatarios.
type RecipientRuleRequest struct {
	CategoryIDs []string `json:"category_ids" validate:"required,min=1,dive,required"`
	UserIDs     []string `json:"user_ids" validate:"omitempty,dive,required"`
	PartnerIDs  []string `json:"partner_ids" validate:"omitempty,dive,required"`
}

// RecipientRuleResponse regla de destinatarios.
type RecipientRuleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CategoryIDs []string  `json:"category_ids"`
	UserIDs     []string  `json:"user_ids"`
	PartnerIDs  []string  `json:"partner_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
