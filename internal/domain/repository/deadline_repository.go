package repository

import (
	"context"
	"time"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
)

// DeadlineFilter predicati opzionali per i listati di scadenze.
// I campi zero-value non filtrano.
type DeadlineFilter struct {
	Status   string
	ClientID string
	DueFrom  time.Time
	DueTo    time.Time
	Limit    int
	Offset   int
}

// DeadlineRepository definisce la porta di persistenza per Deadline.
// ListAllByUser restituisce l'intero insieme dell'utente (usato dallo
// snapshot della dashboard); List applica i predicati del filtro.
type DeadlineRepository interface {
	Create(ctx context.Context, deadline *entity.Deadline) error
	GetByID(ctx context.Context, id string) (*entity.Deadline, error)
	ListAllByUser(ctx context.Context, userID string) ([]*entity.Deadline, error)
	List(ctx context.Context, userID string, filter DeadlineFilter) ([]*entity.Deadline, error)
	Update(ctx context.Context, deadline *entity.Deadline) error
	Delete(ctx context.Context, id string) error
	DeleteByClient(ctx context.Context, clientID string) error
}
