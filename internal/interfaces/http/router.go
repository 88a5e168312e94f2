package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/auth"
	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ConfigUC    *report.ConfigUseCase
	ReportUC    *report.ReportUseCase
	NotifyUC    *report.NotifyUseCase
	RecipientUC *report.RecipientUseCase
	Dispatcher  *report.MailDispatcher
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Reporte de lotes (Bearer Token). Lectura y envíos: admin y bodeguero; escritura de configuración: admin.
	lots := api.Group("/lot-report", AuthMiddleware(deps.JWTSecret))
	readers := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	admins := RequireRole(entity.RoleAdmin)

	reportHandler := NewReportHandler(deps.ConfigUC, deps.ReportUC, deps.NotifyUC, deps.Dispatcher)
	lots.Get("/config", readers, reportHandler.GetConfig)
	lots.Post("/config", admins, reportHandler.CreateConfig)
	lots.Put("/config", admins, reportHandler.UpdateConfig)
	lots.Get("/expiring", readers, reportHandler.Expiring)
	lots.Get("/expired", readers, reportHandler.Expired)
	lots.Get("/pdf", readers, reportHandler.DownloadPDF)
	lots.Post("/send-by-category", readers, reportHandler.SendByCategory)
	lots.Post("/send-weekly", readers, reportHandler.SendWeekly)
	lots.Get("/mails", readers, reportHandler.ListMails)

	recipientHandler := NewRecipientHandler(deps.RecipientUC)
	lots.Get("/recipients", readers, recipientHandler.List)
	lots.Post("/recipients", admins, recipientHandler.Create)
	lots.Get("/recipients/:id", readers, recipientHandler.GetByID)
	lots.Put("/recipients/:id", admins, recipientHandler.Update)
	lots.Delete("/recipients/:id", admins, recipientHandler.Delete)
}
