package usecase

import (
	"context"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/repository"
)

// TxRunner esegue una callback dentro una transazione, con i repository
// legati alla stessa tx. Usato dalla cancellazione cliente per far cadere
// in cascata le scadenze associate in modo atomico.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		clientRepo repository.ClientRepository,
		deadlineRepo repository.DeadlineRepository,
	) error) error
}
