package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/expiry"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/repository"
	"github.com/jhoicas/lot-expiry-notifications/pkg/logger"
)

const (
	pdfContentType     = "application/pdf"
	categoryTitle      = "Lotes próximos a vencer"
	weeklyTitle        = "Reporte Semanal de Lotes Próximos a Vencer"
	categoryBodyFormat = "<p>Adjunto el reporte de lotes próximos a vencer de la categoría <strong>%s</strong>.</p>"
)

// NotifyUseCase envío de reportes por correo: agrupado por categoría y semanal por regla.
type NotifyUseCase struct {
	config     *ConfigUseCase
	finder     *LotFinder
	rules      repository.RecipientRuleRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	partners   repository.PartnerRepository
	generator  ReportPDFGenerator
	dispatcher *MailDispatcher
	metrics    Metrics
	log        *logger.Logger
}

// NotifyDeps dependencias de NotifyUseCase.
type NotifyDeps struct {
	Config     *ConfigUseCase
	Finder     *LotFinder
	Rules      repository.RecipientRuleRepository
	Categories repository.CategoryRepository
	Users      repository.UserRepository
	Partners   repository.PartnerRepository
	Generator  ReportPDFGenerator
	Dispatcher *MailDispatcher
	Metrics    Metrics
	Log        *logger.Logger
}

// NewNotifyUseCase construye el caso de uso.
func NewNotifyUseCase(d NotifyDeps) *NotifyUseCase {
	if d.Metrics == nil {
		d.Metrics = NopMetrics{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return &NotifyUseCase{
		config:     d.Config,
		finder:     d.Finder,
		rules:      d.Rules,
		categories: d.Categories,
		users:      d.Users,
		partners:   d.Partners,
		generator:  d.Generator,
		dispatcher: d.Dispatcher,
		metrics:    d.Metrics,
		log:        d.Log.WithComponent("notify"),
	}
}

// SendGroupedEmails envía al usuario solicitante un correo por categoría con su PDF.
// Sin lotes por vencer solo se registra en el log.
func (uc *NotifyUseCase) SendGroupedEmails(ctx context.Context, userID string) (*dto.SendSummaryResponse, error) {
	summary := &dto.SendSummaryResponse{}
	cfg, err := uc.config.GetOrCreateSingleton(ctx)
	if err != nil {
		return nil, err
	}
	quants, err := uc.finder.FindExpiringQuants(ctx, cfg.DaysThreshold, cfg.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if len(quants) == 0 {
		uc.log.Info().Int("days_threshold", cfg.DaysThreshold).Msg("no hay lotes próximos a vencer")
		return summary, nil
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Email == "" {
		return nil, domain.ErrNoRecipientEmail
	}

	today := uc.finder.Today()
	generatedAt := GenerationTimestamp(uc.finder.Now(), user.TZ)
	for _, g := range expiry.GroupByCategory(quants) {
		data := ReportData{
			Title:         categoryTitle,
			Subtitle:      g.Category.DisplayName(),
			GeneratedAt:   generatedAt,
			DaysThreshold: cfg.DaysThreshold,
			Expiring:      ToLotLines(g.Quants, today),
		}
		content, err := uc.generator.GenerateLotReport(ctx, data)
		if err != nil {
			return summary, fmt.Errorf("generar PDF de %s: %w", g.Category.Name, err)
		}
		uc.metrics.ReportGenerated(KindCategory)

		mail := OutgoingMail{
			To:       []string{user.Email},
			Subject:  expiry.CategorySubject(g.Category.Name),
			BodyHTML: fmt.Sprintf(categoryBodyFormat, g.Category.DisplayName()),
			Attachments: []Attachment{{
				Filename:    expiry.CategoryReportFilename(g.Category.Name, today),
				ContentType: pdfContentType,
				Content:     content,
			}},
		}
		if _, err := uc.dispatcher.Dispatch(ctx, mail); err != nil {
			return summary, err
		}
		summary.Groups++
		summary.EmailsSent++
	}
	uc.log.Info().Int("groups", summary.Groups).Str("user_id", userID).Msg("reportes por categoría enviados")
	return summary, nil
}

// SendWeeklyReports envía a cada regla de destinatarios el reporte de sus categorías.
// Las reglas sin direcciones se omiten; el primer fallo de generación o envío corta el proceso.
func (uc *NotifyUseCase) SendWeeklyReports(ctx context.Context) (*dto.SendSummaryResponse, error) {
	summary := &dto.SendSummaryResponse{}
	cfg, err := uc.config.GetOrCreateSingleton(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := uc.rules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar reglas: %w", err)
	}
	for _, rule := range rules {
		summary.RulesTotal++
		sent, err := uc.sendRule(ctx, rule, cfg.DaysThreshold)
		if err != nil {
			return summary, fmt.Errorf("regla %s: %w", rule.ID, err)
		}
		if !sent {
			summary.RulesSkipped++
			continue
		}
		summary.EmailsSent++
	}
	uc.log.Info().
		Int("rules", summary.RulesTotal).
		Int("sent", summary.EmailsSent).
		Int("skipped", summary.RulesSkipped).
		Msg("reporte semanal enviado")
	return summary, nil
}

func (uc *NotifyUseCase) sendRule(ctx context.Context, rule *entity.RecipientRule, days int) (bool, error) {
	users, err := uc.users.GetByIDs(ctx, rule.UserIDs)
	if err != nil {
		return false, fmt.Errorf("cargar usuarios: %w", err)
	}
	partners, err := uc.partners.GetByIDs(ctx, rule.PartnerIDs)
	if err != nil {
		return false, fmt.Errorf("cargar contactos: %w", err)
	}
	emails := expiry.CollectEmails(users, partners)
	if len(emails) == 0 {
		uc.log.Info().Str("rule_id", rule.ID).Str("rule", rule.Name).Msg("regla sin destinatarios con email, se omite")
		uc.metrics.RuleSkipped()
		return false, nil
	}

	// Sin categorías no hay lotes por vencer, pero los vencidos se buscan sin filtro.
	var categories []*entity.Category
	var expiring, expired []*entity.Quant
	if len(rule.CategoryIDs) > 0 {
		if categories, err = uc.categories.GetByIDs(ctx, rule.CategoryIDs); err != nil {
			return false, fmt.Errorf("cargar categorías: %w", err)
		}
		if expiring, err = uc.finder.FindExpiringQuants(ctx, days, rule.CategoryIDs); err != nil {
			return false, err
		}
	}
	if expired, err = uc.finder.FindExpiredQuants(ctx, rule.CategoryIDs); err != nil {
		return false, err
	}

	hasLots := len(expiring) > 0 || len(expired) > 0
	mail := OutgoingMail{
		To:       emails,
		Subject:  expiry.WeeklySubject(categories),
		BodyHTML: expiry.WeeklyBody(hasLots, days),
	}
	if hasLots {
		today := uc.finder.Today()
		data := ReportData{
			Title:         weeklyTitle,
			Subtitle:      rule.Name,
			GeneratedAt:   uc.finder.Now().Format(timestampLayout),
			DaysThreshold: days,
			Expiring:      ToLotLines(expiring, today),
			Expired:       ToLotLines(expired, today),
		}
		content, err := uc.generator.GenerateLotReport(ctx, data)
		if err != nil {
			return false, fmt.Errorf("generar PDF: %w", err)
		}
		uc.metrics.ReportGenerated(KindWeekly)
		mail.Attachments = []Attachment{{
			Filename:    expiry.WeeklyReportFilename,
			ContentType: pdfContentType,
			Content:     content,
		}}
	}
	if _, err := uc.dispatcher.Dispatch(ctx, mail); err != nil {
		return false, err
	}
	return true, nil
}
