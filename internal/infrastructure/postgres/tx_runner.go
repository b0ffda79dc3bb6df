package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/usecase"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner esegue callback dentro una transazione PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner costruisce il runner con il pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run apre la transazione, esegue fn con i repository legati alla tx e fa
// Commit o Rollback. Le notifiche del change feed emesse dai repository
// partono solo a Commit avvenuto, come da semantica pg_notify.
func (r *TxRunner) Run(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	deadlineRepo repository.DeadlineRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	clientRepo := NewClientRepository(tx)
	deadlineRepo := NewDeadlineRepository(tx)

	if err := fn(clientRepo, deadlineRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
