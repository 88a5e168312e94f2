package entity

import "time"

// Estados de un correo saliente.
const (
	MailStateOutgoing  = "outgoing"
	MailStateSent      = "sent"
	MailStateException = "exception"
)

// MailMessage registro de un correo saliente con su adjunto archivado (si hubo).
type MailMessage struct {
	ID             string
	Subject        string
	BodyHTML       string
	EmailTo        string // direcciones separadas por coma
	AttachmentName string
	AttachmentKey  string
	State          string
	Error          string
	CreatedAt      time.Time
	SentAt         *time.Time
}
