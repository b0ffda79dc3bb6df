package repository

import (
	"context"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
)

// ClientRepository definisce la porta di persistenza per Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Client, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
}
