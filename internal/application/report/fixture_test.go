package report_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
	"github.com/jhoicas/lot-expiry-notifications/internal/domain/entity"
	"github.com/jhoicas/lot-expiry-notifications/internal/testutil"
)

var (
	fixedNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	today    = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	catMed   = &entity.Category{ID: "cat-med", Name: "Medicamentos", CompleteName: "Farmacia / Medicamentos"}
	catFrio  = &entity.Category{ID: "cat-frio", Name: "Refrigerados/Congelados"}
	catVacia = &entity.Category{ID: "cat-vacia", Name: "Insumos"}
	catAseo  = &entity.Category{ID: "cat-aseo", Name: "Aseo"}

	internal = entity.Location{ID: "loc-1", Name: "WH/Stock", Usage: entity.LocationUsageInternal}
	customer = entity.Location{ID: "loc-9", Name: "Partners/Customers", Usage: entity.LocationUsageCustomer}
)

func day(offset int) *time.Time {
	t := today.AddDate(0, 0, offset).Add(9 * time.Hour)
	return &t
}

func quant(id string, cat *entity.Category, expOffset int, qty int64, loc entity.Location) *entity.Quant {
	return &entity.Quant{
		ID:       id,
		Product:  entity.Product{ID: "p-" + id, Name: "Producto " + id, DefaultCode: "REF-" + id},
		Category: cat,
		Lot:      entity.Lot{ID: "lot-" + id, Name: "LOTE-" + id, ExpirationDate: day(expOffset)},
		Location: loc,
		Quantity: decimal.NewFromInt(qty),
		InDate:   day(-60),
	}
}

// stock por vencer: q2 (+2), q1 (+5), q3 (+20, sin categoría); vencido: q4 (-3).
// q5 fuera de ventana; q6 en ubicación de cliente; q7 sin cantidad.
func stock() []*entity.Quant {
	return []*entity.Quant{
		quant("q1", catMed, 5, 10, internal),
		quant("q2", catFrio, 2, 4, internal),
		quant("q3", nil, 20, 1, internal),
		quant("q4", catMed, -3, 7, internal),
		quant("q5", catMed, 40, 3, internal),
		quant("q6", catFrio, 1, 5, customer),
		quant("q7", catFrio, 1, 0, internal),
	}
}

type env struct {
	quants     *testutil.QuantRepo
	configs    *testutil.ConfigRepo
	rules      *testutil.RuleRepo
	categories *testutil.CategoryRepo
	users      *testutil.UserRepo
	partners   *testutil.PartnerRepo
	mails      *testutil.MailRepo
	mailer     *testutil.MockMailer
	archive    *testutil.MockArchive
	pdf        *testutil.MockPDF
	metrics    *testutil.MetricsSpy

	config     *report.ConfigUseCase
	finder     *report.LotFinder
	reports    *report.ReportUseCase
	notify     *report.NotifyUseCase
	recipients *report.RecipientUseCase
	dispatcher *report.MailDispatcher
}

func newEnv(quants []*entity.Quant) *env {
	clock := func() time.Time { return fixedNow }
	e := &env{
		quants:     &testutil.QuantRepo{Quants: quants},
		configs:    &testutil.ConfigRepo{},
		rules:      &testutil.RuleRepo{},
		categories: &testutil.CategoryRepo{Items: []*entity.Category{catMed, catFrio, catVacia, catAseo}},
		users: &testutil.UserRepo{Items: []*entity.User{
			{ID: "u-admin", Email: "admin@bodega.co", Name: "Admin", Role: entity.RoleAdmin, Status: "active", TZ: "America/Bogota"},
			{ID: "u-sin-tz", Email: "bodega@bodega.co", Name: "Bodega", Role: entity.RoleBodeguero, Status: "active"},
			{ID: "u-sin-email", Name: "Sin correo", Role: entity.RoleBodeguero, Status: "active"},
		}},
		partners: &testutil.PartnerRepo{Items: []*entity.Partner{
			{ID: "pt-prov", Name: "Proveedor", Email: "compras@proveedor.co"},
			{ID: "pt-dup", Name: "Admin externo", Email: "ADMIN@bodega.co"},
			{ID: "pt-sin-email", Name: "Sin correo"},
		}},
		mails:   &testutil.MailRepo{},
		mailer:  &testutil.MockMailer{},
		archive: &testutil.MockArchive{},
		pdf:     &testutil.MockPDF{},
		metrics: &testutil.MetricsSpy{},
	}
	e.pdf.On("GenerateLotReport", mock.Anything, mock.Anything).Return([]byte("%PDF-1.4 fake"), nil).Maybe()
	e.archive.On("Store", mock.Anything, mock.Anything, mock.Anything).Return("reportes/2026-10-19/x.pdf", nil).Maybe()

	e.config = report.NewConfigUseCase(e.configs, e.configs, e.categories, entity.DefaultReportDaysThreshold, clock)
	e.finder = report.NewLotFinder(e.quants, clock, time.UTC)
	e.reports = report.NewReportUseCase(e.config, e.finder, e.users, e.pdf, e.metrics)
	e.dispatcher = report.NewMailDispatcher(e.mailer, e.archive, e.mails, e.metrics, clock)
	e.notify = report.NewNotifyUseCase(report.NotifyDeps{
		Config:     e.config,
		Finder:     e.finder,
		Rules:      e.rules,
		Categories: e.categories,
		Users:      e.users,
		Partners:   e.partners,
		Generator:  e.pdf,
		Dispatcher: e.dispatcher,
		Metrics:    e.metrics,
	})
	e.recipients = report.NewRecipientUseCase(e.rules, e.categories, e.users, e.partners, clock)
	return e
}

func (e *env) mailerOK() {
	e.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)
}

func ids(quants []*entity.Quant) []string {
	out := make([]string, 0, len(quants))
	for _, q := range quants {
		out = append(out, q.ID)
	}
	return out
}
