package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dto"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/usecase"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/repository"
)

// DeadlineHandler gestisce il CRUD delle scadenze fiscali.
type DeadlineHandler struct {
	uc *usecase.DeadlineUseCase
}

func NewDeadlineHandler(uc *usecase.DeadlineUseCase) *DeadlineHandler {
	return &DeadlineHandler{uc: uc}
}

// Create godoc
// @Summary      Crea scadenza
// @Tags         deadlines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateDeadlineRequest  true  "scadenza"
// @Success      201   {object}  dto.DeadlineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deadlines [post]
func (h *DeadlineHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeadlineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return deadlineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Dettaglio scadenza
// @Tags         deadlines
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID scadenza"
// @Success      200  {object}  dto.DeadlineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deadlines/{id} [get]
func (h *DeadlineHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return deadlineError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "scadenza non trovata"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Elenco scadenze con filtri
// @Tags         deadlines
// @Produce      json
// @Security     BearerAuth
// @Param        status     query  string  false  "pending | in_progress | completed"
// @Param        client_id  query  string  false  "filtra per cliente"
// @Param        due_from   query  string  false  "RFC 3339"
// @Param        due_to     query  string  false  "RFC 3339"
// @Param        limit      query  int     false  "dimensione pagina (default 20, max 100)"
// @Param        offset     query  int     false  "offset"
// @Success      200  {object}  dto.DeadlineListResponse
// @Router       /api/deadlines [get]
func (h *DeadlineHandler) List(c *fiber.Ctx) error {
	filter, err := parseDeadlineFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	out, err := h.uc.List(c.Context(), GetUserID(c), filter)
	if err != nil {
		return deadlineError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Aggiorna scadenza (parziale)
// @Tags         deadlines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID scadenza"
// @Param        body  body  dto.UpdateDeadlineRequest  true  "campi da aggiornare"
// @Success      200   {object}  dto.DeadlineResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deadlines/{id} [put]
func (h *DeadlineHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeadlineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return deadlineError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "scadenza non trovata"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Elimina scadenza
// @Tags         deadlines
// @Security     BearerAuth
// @Param        id  path  string  true  "ID scadenza"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deadlines/{id} [delete]
func (h *DeadlineHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return deadlineError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseDeadlineFilter(c *fiber.Ctx) (repository.DeadlineFilter, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return repository.DeadlineFilter{}, errors.New("parametri di paginazione non validi")
	}
	page.DefaultPage()

	filter := repository.DeadlineFilter{
		Status:   c.Query("status"),
		ClientID: c.Query("client_id"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	if s := c.Query("due_from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return repository.DeadlineFilter{}, errors.New("due_from non è una data RFC 3339 valida")
		}
		filter.DueFrom = t
	}
	if s := c.Query("due_to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return repository.DeadlineFilter{}, errors.New("due_to non è una data RFC 3339 valida")
		}
		filter.DueTo = t
	}
	return filter, nil
}

func deadlineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "scadenza non trovata"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "accesso negato"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
