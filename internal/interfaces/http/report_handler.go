package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
)

// ReportHandler configuración, consulta y envío del reporte de lotes.
type ReportHandler struct {
	config     *report.ConfigUseCase
	reports    *report.ReportUseCase
	notify     *report.NotifyUseCase
	dispatcher *report.MailDispatcher
}

// NewReportHandler construye el handler.
func NewReportHandler(config *report.ConfigUseCase, reports *report.ReportUseCase, notify *report.NotifyUseCase, dispatcher *report.MailDispatcher) *ReportHandler {
	return &ReportHandler{config: config, reports: reports, notify: notify, dispatcher: dispatcher}
}

// GetConfig godoc
// @Summary      Configuración del reporte (se crea con valores por defecto si no existe)
// @Tags         lot-report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ReportConfigResponse
// @Router       /api/lot-report/config [get]
func (h *ReportHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.config.GetOrCreateSingleton(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report.ToConfigResponse(cfg))
}

// CreateConfig godoc
// @Summary      Crear la configuración (solo puede existir una)
// @Tags         lot-report
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateReportConfigRequest  true  "name, days_threshold, category_ids"
// @Success      201   {object}  dto.ReportConfigResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lot-report/config [post]
func (h *ReportHandler) CreateConfig(c *fiber.Ctx) error {
	var in dto.CreateReportConfigRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	cfg, err := h.config.CreateConfig(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report.ToConfigResponse(cfg))
}

// UpdateConfig godoc
// @Summary      Actualizar umbral y categorías
// @Tags         lot-report
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateReportConfigRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ReportConfigResponse
// @Router       /api/lot-report/config [put]
func (h *ReportHandler) UpdateConfig(c *fiber.Ctx) error {
	var in dto.UpdateReportConfigRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	cfg, err := h.config.UpdateConfig(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report.ToConfigResponse(cfg))
}

// Expiring godoc
// @Summary      Lotes próximos a vencer según la configuración
// @Tags         lot-report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.LotListResponse
// @Router       /api/lot-report/expiring [get]
func (h *ReportHandler) Expiring(c *fiber.Ctx) error {
	out, err := h.reports.ExpiringLines(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Expired godoc
// @Summary      Lotes ya vencidos en las categorías configuradas
// @Tags         lot-report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.LotListResponse
// @Router       /api/lot-report/expired [get]
func (h *ReportHandler) Expired(c *fiber.Ctx) error {
	out, err := h.reports.ExpiredLines(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar el reporte PDF
// @Tags         lot-report
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/lot-report/pdf [get]
func (h *ReportHandler) DownloadPDF(c *fiber.Ctx) error {
	rep, err := h.reports.GenerateReport(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, rep.Filename))
	return c.Send(rep.Content)
}

// SendByCategory godoc
// @Summary      Enviar al usuario actual un correo por categoría
// @Tags         lot-report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SendSummaryResponse
// @Router       /api/lot-report/send-by-category [post]
func (h *ReportHandler) SendByCategory(c *fiber.Ctx) error {
	out, err := h.notify.SendGroupedEmails(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SendWeekly godoc
// @Summary      Ejecutar ahora el envío semanal por reglas de destinatarios
// @Tags         lot-report
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SendSummaryResponse
// @Router       /api/lot-report/send-weekly [post]
func (h *ReportHandler) SendWeekly(c *fiber.Ctx) error {
	out, err := h.notify.SendWeeklyReports(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMails godoc
// @Summary      Correos enviados (más recientes primero)
// @Tags         lot-report
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "máx. 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.MailListResponse
// @Router       /api/lot-report/mails [get]
func (h *ReportHandler) ListMails(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	if details := validationDetails(&page); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida", Details: details})
	}
	page.DefaultPage()
	out, err := h.dispatcher.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
