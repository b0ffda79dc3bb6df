package repository

import (
	"context"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
)

// UserRepository definisce la porta di persistenza per User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
