package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportConfigResponse configuración del reporte de lotes.
type ReportConfigResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	DaysThreshold int       `json:"days_threshold"`
	CategoryIDs   []string  `json:"category_ids"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateReportConfigRequest body para POST /api/lot-report/config.
type CreateReportConfigRequest struct {
	Name          string   `json:"name" validate:"max=120"`
	DaysThreshold *int     `json:"days_threshold" validate:"omitempty,min=0,max=3650"`
	CategoryIDs   []string `json:"category_ids" validate:"omitempty,dive,required"`
}

// UpdateReportConfigRequest body para PUT /api/lot-report/config. Campos nil no se modifican.
type UpdateReportConfigRequest struct {
	Name          *string   `json:"name" validate:"omitempty,max=120"`
	DaysThreshold *int      `json:"days_threshold" validate:"omitempty,min=0,max=3650"`
	CategoryIDs   *[]string `json:"category_ids"`
}

// LotLineDTO registro de un lote tal como aparece en el reporte.
type LotLineDTO struct {
	ProductName    string          `json:"product_name"`
	CategoryName   string          `json:"category_name"`
	LotName        string          `json:"lot_name"`
	InDate         string          `json:"in_date"`
	ExpirationDate string          `json:"expiration_date"`
	LocationName   string          `json:"location_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	DaysLeft       int             `json:"days_left"`
}

// LotListResponse listado de lotes (por vencer o vencidos).
type LotListResponse struct {
	DaysThreshold int          `json:"days_threshold"`
	Total         int          `json:"total"`
	Items         []LotLineDTO `json:"items"`
}

// SendSummaryResponse resultado de un envío (por categoría o semanal).
type SendSummaryResponse struct {
	Groups       int `json:"groups"`
	RulesTotal   int `json:"rules_total"`
	EmailsSent   int `json:"emails_sent"`
	RulesSkipped int `json:"rules_skipped"`
}

// MailMessageResponse correo saliente registrado.
type MailMessageResponse struct {
	ID             string     `json:"id"`
	Subject        string     `json:"subject"`
	EmailTo        string     `json:"email_to"`
	AttachmentName string     `json:"attachment_name,omitempty"`
	AttachmentKey  string     `json:"attachment_key,omitempty"`
	State          string     `json:"state"`
	Error          string     `json:"error,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
}

// MailListResponse listado paginado de correos.
type MailListResponse struct {
	Items []MailMessageResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
