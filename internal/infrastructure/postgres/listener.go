package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fab128k/gestionale-adempimenti-fiscali/pkg/logger"
)

// Listener consuma il change feed LISTEN/NOTIFY sulla tabella deadlines.
//
// Ogni notifica è solo un trigger di invalidazione: il payload (user id)
// indica quale snapshot rifare, mai lo stato finale dei dati. Alla
// cancellazione del context il loop termina e la connessione dedicata
// torna al pool.
type Listener struct {
	pool    *pgxpool.Pool
	log     *logger.Logger
	onEvent func(userID string)
}

// NewListener costruisce il listener. onEvent viene invocata per ogni
// notifica con lo user id proprietario della riga mutata.
func NewListener(pool *pgxpool.Pool, log *logger.Logger, onEvent func(userID string)) *Listener {
	return &Listener{pool: pool, log: log, onEvent: onEvent}
}

// Run occupa una connessione dedicata e attende notifiche fino alla
// cancellazione del context. Su errore di connessione riprova con un
// piccolo backoff, loggando la riconnessione.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.log.Warn().Err(err).Msg("change feed interrotto, riconnessione")
		select {
		case <-time.After(2 * time.Second):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+ChannelDeadlines); err != nil {
		return err
	}
	l.log.Info().Str("channel", ChannelDeadlines).Msg("change feed in ascolto")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if n.Payload == "" {
			continue
		}
		l.onEvent(n.Payload)
	}
}
