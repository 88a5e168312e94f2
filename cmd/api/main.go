package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/lot-expiry-notifications/internal/application/auth"
	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
	inframail "github.com/jhoicas/lot-expiry-notifications/internal/infrastructure/mail"
	inframetrics "github.com/jhoicas/lot-expiry-notifications/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/lot-expiry-notifications/internal/infrastructure/pdf"
	"github.com/jhoicas/lot-expiry-notifications/internal/infrastructure/postgres"
	"github.com/jhoicas/lot-expiry-notifications/internal/infrastructure/scheduler"
	"github.com/jhoicas/lot-expiry-notifications/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/lot-expiry-notifications/internal/interfaces/http"
	"github.com/jhoicas/lot-expiry-notifications/pkg/config"
	"github.com/jhoicas/lot-expiry-notifications/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.EnsureMigrated(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	partnerRepo := postgres.NewPartnerRepository(pool)
	ruleRepo := postgres.NewRecipientRuleRepository(pool)
	configRepo := postgres.NewReportConfigRepository(pool)
	quantRepo := postgres.NewQuantRepository(pool)
	mailRepo := postgres.NewMailMessageRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Métricas Prometheus en un registry propio (más las del runtime de Go)
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := inframetrics.NewRecorder(registry)
	if err != nil {
		log.Fatal().Err(err).Msg("registro de métricas")
	}

	// Correo: SMTP si está configurado; si no, solo log
	var mailer report.Mailer
	if cfg.SMTP.Enabled() {
		mailer = inframail.NewSMTPMailer(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP_HOST vacío: los correos solo se registran en el log")
		mailer = inframail.NewLogMailer(log)
	}

	// Archivo de PDFs enviados en almacenamiento S3 compatible
	var archive report.ReportArchive = storage.NopArchive{}
	if cfg.Storage.Enabled() {
		minioArchive, err := storage.NewMinIOArchive(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Str("endpoint", cfg.Storage.Endpoint).Msg("almacenamiento de reportes")
		}
		archive = minioArchive
	}

	clock := report.Clock(time.Now)
	pdfGenerator := infrapdf.NewMarotoLotReportGenerator(cfg.App.Name)

	configUC := report.NewConfigUseCase(txRunner, configRepo, categoryRepo, cfg.Report.DefaultDaysThreshold, clock)
	finder := report.NewLotFinder(quantRepo, clock, loc)
	reportUC := report.NewReportUseCase(configUC, finder, userRepo, pdfGenerator, recorder)
	dispatcher := report.NewMailDispatcher(mailer, archive, mailRepo, recorder, clock)
	notifyUC := report.NewNotifyUseCase(report.NotifyDeps{
		Config:     configUC,
		Finder:     finder,
		Rules:      ruleRepo,
		Categories: categoryRepo,
		Users:      userRepo,
		Partners:   partnerRepo,
		Generator:  pdfGenerator,
		Dispatcher: dispatcher,
		Metrics:    recorder,
		Log:        log,
	})
	recipientUC := report.NewRecipientUseCase(ruleRepo, categoryRepo, userRepo, partnerRepo, clock)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(recorder.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Lotes por vencer API",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ConfigUC:    configUC,
		ReportUC:    reportUC,
		NotifyUC:    notifyUC,
		RecipientUC: recipientUC,
		Dispatcher:  dispatcher,
		JWTSecret:   cfg.JWT.Secret,
	})

	var weekly *scheduler.WeeklyScheduler
	if cfg.Scheduler.Enabled {
		weekly = scheduler.NewWeeklyScheduler(notifyUC, cfg.Scheduler.Interval, cfg.Scheduler.RunOnStart, log)
		weekly.Start(ctx)
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if weekly != nil {
		weekly.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
