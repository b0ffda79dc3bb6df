package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dto"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/repository"
)

// DeadlineUseCase casi d'uso CRUD per le scadenze. Le transizioni di stato
// mantengono l'invariante: completed_at valorizzato se e solo se lo stato
// è "completed".
type DeadlineUseCase struct {
	repo       repository.DeadlineRepository
	clientRepo repository.ClientRepository
}

// NewDeadlineUseCase costruisce il caso d'uso.
func NewDeadlineUseCase(repo repository.DeadlineRepository, clientRepo repository.ClientRepository) *DeadlineUseCase {
	return &DeadlineUseCase{repo: repo, clientRepo: clientRepo}
}

// Create crea una scadenza verificando che il cliente esista e sia dell'utente.
func (uc *DeadlineUseCase) Create(ctx context.Context, userID string, in dto.CreateDeadlineRequest) (*dto.DeadlineResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if in.DueDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityNormal
	}
	if !entity.ValidPriority(priority) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	deadline := &entity.Deadline{
		ID:          uuid.New().String(),
		UserID:      userID,
		ClientID:    in.ClientID,
		Type:        in.Type,
		Description: in.Description,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		Status:      entity.StatusPending,
		Priority:    priority,
		AssignedTo:  in.AssignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, deadline); err != nil {
		return nil, err
	}
	return toDeadlineResponse(deadline, now), nil
}

// GetByID restituisce una scadenza dell'utente; nil se non esiste o non sua.
func (uc *DeadlineUseCase) GetByID(ctx context.Context, userID, id string) (*dto.DeadlineResponse, error) {
	deadline, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if deadline == nil || deadline.UserID != userID {
		return nil, nil
	}
	return toDeadlineResponse(deadline, time.Now()), nil
}

// List elenca le scadenze dell'utente applicando i filtri.
func (uc *DeadlineUseCase) List(ctx context.Context, userID string, filter repository.DeadlineFilter) (*dto.DeadlineListResponse, error) {
	if filter.Status != "" && !entity.ValidStatus(filter.Status) {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	list, err := uc.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]dto.DeadlineResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDeadlineResponse(d, now))
	}
	return &dto.DeadlineListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Update aggiorna la scadenza (campi nil invariati). Il passaggio a
// "completed" imposta completed_at; qualunque altro stato lo azzera.
func (uc *DeadlineUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateDeadlineRequest) (*dto.DeadlineResponse, error) {
	deadline, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if deadline == nil || deadline.UserID != userID {
		return nil, nil
	}
	if in.ClientID != nil && *in.ClientID != deadline.ClientID {
		client, err := uc.clientRepo.GetByID(ctx, *in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil || client.UserID != userID {
			return nil, domain.ErrNotFound
		}
		deadline.ClientID = *in.ClientID
	}
	if in.Type != nil {
		deadline.Type = *in.Type
	}
	if in.Description != nil {
		deadline.Description = *in.Description
	}
	if in.Amount != nil {
		deadline.Amount = *in.Amount
	}
	if in.DueDate != nil {
		if in.DueDate.IsZero() {
			return nil, domain.ErrInvalidInput
		}
		deadline.DueDate = *in.DueDate
	}
	if in.Priority != nil {
		if !entity.ValidPriority(*in.Priority) {
			return nil, domain.ErrInvalidInput
		}
		deadline.Priority = *in.Priority
	}
	if in.AssignedTo != nil {
		deadline.AssignedTo = *in.AssignedTo
	}
	now := time.Now()
	if in.Status != nil {
		if !entity.ValidStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		applyStatus(deadline, *in.Status, now)
	}
	deadline.UpdatedAt = now
	if err := uc.repo.Update(ctx, deadline); err != nil {
		return nil, err
	}
	return toDeadlineResponse(deadline, now), nil
}

// Delete elimina una scadenza dell'utente.
func (uc *DeadlineUseCase) Delete(ctx context.Context, userID, id string) error {
	deadline, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if deadline == nil || deadline.UserID != userID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// applyStatus applica la transizione mantenendo l'invariante su completed_at.
func applyStatus(d *entity.Deadline, status string, now time.Time) {
	d.Status = status
	if status == entity.StatusCompleted {
		if d.CompletedAt == nil {
			ts := now
			d.CompletedAt = &ts
		}
		return
	}
	d.CompletedAt = nil
}

func toDeadlineResponse(d *entity.Deadline, now time.Time) *dto.DeadlineResponse {
	if d == nil {
		return nil
	}
	return &dto.DeadlineResponse{
		ID:          d.ID,
		UserID:      d.UserID,
		ClientID:    d.ClientID,
		Type:        d.Type,
		Description: d.Description,
		Amount:      d.Amount,
		DueDate:     d.DueDate,
		Status:      d.Status,
		Overdue:     d.IsOverdue(now),
		Priority:    d.Priority,
		AssignedTo:  d.AssignedTo,
		CompletedAt: d.CompletedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
