package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/auth"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dashboard"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/report"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/usecase"
	"github.com/fab128k/gestionale-adempimenti-fiscali/pkg/logger"
)

// RouterDeps dipendenze per il router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ClientUC   *usecase.ClientUseCase
	DeadlineUC *usecase.DeadlineUseCase
	ReportUC   *report.ReportUseCase
	Loader     *dashboard.Loader
	Log        *logger.Logger
	JWTSecret  string
}

// Router registra le rotte dell'API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (pubblico)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotte protette (richiedono Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Anagrafica clienti (protetto)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Scadenze (protetto)
	deadlines := protected.Group("/deadlines")
	deadlineHandler := NewDeadlineHandler(deps.DeadlineUC)
	deadlines.Post("/", deadlineHandler.Create)
	deadlines.Get("/", deadlineHandler.List)
	deadlines.Get("/:id", deadlineHandler.GetByID)
	deadlines.Put("/:id", deadlineHandler.Update)
	deadlines.Delete("/:id", deadlineHandler.Delete)

	// Dashboard (protetto)
	dash := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.Loader, deps.Log)
	eventsHandler := NewEventsHandler(deps.Loader, deps.Log)
	dash.Get("/summary", dashboardHandler.Summary)
	dash.Get("/events", eventsHandler.Stream)

	// Report (protetto)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.Log)
	reports.Get("/scadenzario", reportHandler.Scadenzario)
}
