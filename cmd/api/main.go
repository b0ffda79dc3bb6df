package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/auth"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dashboard"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/report"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/usecase"
	infrapdf "github.com/fab128k/gestionale-adempimenti-fiscali/internal/infrastructure/pdf"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/infrastructure/postgres"
	httpRouter "github.com/fab128k/gestionale-adempimenti-fiscali/internal/interfaces/http"
	"github.com/fab128k/gestionale-adempimenti-fiscali/pkg/config"
	"github.com/fab128k/gestionale-adempimenti-fiscali/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("caricamento configurazione: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("avvio applicazione")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connessione a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	deadlineRepo := postgres.NewDeadlineRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := usecase.NewClientUseCase(clientRepo, txRunner)
	deadlineUC := usecase.NewDeadlineUseCase(deadlineRepo, clientRepo)

	pdfGenerator := infrapdf.NewMarotoScadenzarioGenerator()
	reportUC := report.NewReportUseCase(userRepo, clientRepo, deadlineRepo, pdfGenerator)

	// Snapshot condiviso della dashboard, invalidato dal change feed.
	loader := dashboard.NewLoader(deadlineRepo, clientRepo, log)
	defer loader.Close()

	listenerCtx, stopListener := context.WithCancel(ctx)
	defer stopListener()
	listener := postgres.NewListener(pool, log, loader.Invalidate)
	go func() {
		if err := listener.Run(listenerCtx); err != nil && listenerCtx.Err() == nil {
			log.Error().Err(err).Msg("listener delle notifiche terminato")
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in locale: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestionale Adempimenti Fiscali API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ClientUC:   clientUC,
		DeadlineUC: deadlineUC,
		ReportUC:   reportUC,
		Loader:     loader,
		Log:        log,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("server HTTP terminato")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("segnale di arresto ricevuto, chiusura del server...")

	stopListener()
	loader.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arresto del server")
	}

	log.Info().Msg("applicazione arrestata")
}
