package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dto"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/report"
	"github.com/fab128k/gestionale-adempimenti-fiscali/pkg/logger"
)

// ReportHandler espone i report PDF dello studio.
type ReportHandler struct {
	uc  *report.ReportUseCase
	log *logger.Logger
}

func NewReportHandler(uc *report.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Scadenzario godoc
// @Summary      Scadenzario PDF delle scadenze aperte
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/scadenzario [get]
func (h *ReportHandler) Scadenzario(c *fiber.Ctx) error {
	userID := GetUserID(c)
	pdfBytes, filename, err := h.uc.Scadenzario(c.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("generazione scadenzario fallita")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "REPORT_FAILED", Message: "generazione del report fallita"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
