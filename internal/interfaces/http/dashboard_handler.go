package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dashboard"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dto"
	"github.com/fab128k/gestionale-adempimenti-fiscali/pkg/logger"
)

// DashboardHandler serve il riassunto della dashboard a partire da un
// unico snapshot, così i tre pannelli restano coerenti fra loro.
type DashboardHandler struct {
	loader *dashboard.Loader
	log    *logger.Logger
}

func NewDashboardHandler(loader *dashboard.Loader, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{loader: loader, log: log}
}

// Summary godoc
// @Summary      Riassunto dashboard (statistiche, insight, prossime scadenze)
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      503  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	userID := GetUserID(c)
	snap, stale, err := h.loader.Load(c.Context(), userID)
	if err != nil {
		if errors.Is(err, dashboard.ErrClosed) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SHUTTING_DOWN", Message: "servizio in arresto"})
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("caricamento snapshot dashboard fallito")
		// Nessun dato valido noto: risposta degradata con i soli insight
		// di benvenuto, mai contatori azzerati spacciati per reali.
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.DashboardSummaryDTO{
			Insights:  dashboard.FallbackInsights(),
			FetchedAt: time.Now(),
			Stale:     true,
		})
	}
	return c.JSON(dashboard.Summary(snap, stale, time.Now()))
}
