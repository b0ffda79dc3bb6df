// Package dashboard contiene la logica derivata della dashboard: lo snapshot
// condiviso dei dati dell'utente e le tre viste pure calcolate su di esso
// (statistiche, insight, prossime scadenze).
//
// Un solo Loader possiede il caricamento: i pannelli non interrogano mai il
// database per conto proprio, così i contatori, gli insight e il widget delle
// scadenze sono sempre coerenti fra loro all'interno dello stesso ciclo.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/repository"
	"github.com/fab128k/gestionale-adempimenti-fiscali/pkg/logger"
)

// ErrClosed viene restituito da Load dopo Close().
var ErrClosed = errors.New("dashboard: loader chiuso")

// Snapshot vista normalizzata in memoria dei dati di un utente.
// Autoconsistente per costruzione: scadenze e clienti provengono dalla
// stessa fetch.
type Snapshot struct {
	Deadlines map[string]*entity.Deadline
	Clients   map[string]*entity.Client
	FetchedAt time.Time
}

// userState stato di caricamento per singolo utente.
type userState struct {
	snap     *Snapshot     // ultimo snapshot valido noto (anche se invalidato)
	valid    bool          // false dopo Invalidate: la prossima Load rifà la fetch
	inflight chan struct{} // chiuso al termine della fetch in corso; nil se nessuna
	lastErr  error         // errore dell'ultima fetch fallita senza snapshot precedente
}

// Loader carica e mantiene gli snapshot per utente.
//
// Regole:
//   - una sola fetch in volo per utente: i chiamanti concorrenti attendono
//     il risultato della fetch già partita invece di emetterne un'altra;
//   - su errore di fetch con uno snapshot precedente disponibile viene
//     restituito quello (marcato stale), mai uno snapshot azzerato;
//   - dopo Close una fetch in volo che termina non muta più lo stato.
type Loader struct {
	deadlines repository.DeadlineRepository
	clients   repository.ClientRepository
	log       *logger.Logger

	mu      sync.Mutex
	states  map[string]*userState
	subs    map[int]func(userID string)
	nextSub int
	closed  bool
}

// NewLoader costruisce il loader con le dipendenze esplicite.
func NewLoader(deadlines repository.DeadlineRepository, clients repository.ClientRepository, log *logger.Logger) *Loader {
	return &Loader{
		deadlines: deadlines,
		clients:   clients,
		log:       log,
		states:    make(map[string]*userState),
		subs:      make(map[int]func(string)),
	}
}

// Load restituisce lo snapshot dell'utente. Il secondo valore indica che lo
// snapshot è l'ultimo valido noto dopo una fetch fallita (stale).
func (l *Loader) Load(ctx context.Context, userID string) (*Snapshot, bool, error) {
	l.mu.Lock()
	for {
		if l.closed {
			l.mu.Unlock()
			return nil, false, ErrClosed
		}
		st, ok := l.states[userID]
		if !ok {
			st = &userState{}
			l.states[userID] = st
		}
		if st.valid && st.snap != nil {
			snap := st.snap
			l.mu.Unlock()
			return snap, false, nil
		}
		if st.inflight != nil {
			// C'è già una fetch in corso: attendiamo il suo esito.
			ch := st.inflight
			l.mu.Unlock()
			select {
			case <-ch:
			case <-ctx.Done():
				return nil, false, ctx.Err()
			}
			l.mu.Lock()
			if l.closed {
				l.mu.Unlock()
				return nil, false, ErrClosed
			}
			if st.valid && st.snap != nil {
				snap := st.snap
				l.mu.Unlock()
				return snap, false, nil
			}
			if st.snap != nil {
				// La fetch è fallita ma abbiamo un ultimo valido noto.
				snap := st.snap
				l.mu.Unlock()
				return snap, true, nil
			}
			err := st.lastErr
			l.mu.Unlock()
			if err == nil {
				err = ctx.Err()
			}
			return nil, false, err
		}

		ch := make(chan struct{})
		st.inflight = ch
		l.mu.Unlock()

		snap, err := l.fetch(ctx, userID)

		l.mu.Lock()
		st.inflight = nil
		close(ch)
		if l.closed {
			// Teardown avvenuto durante la fetch: il risultato viene scartato.
			l.mu.Unlock()
			return nil, false, ErrClosed
		}
		if err != nil {
			st.lastErr = err
			if st.snap != nil {
				l.log.Warn().Err(err).Str("user_id", userID).
					Msg("fetch dello snapshot fallita, servo l'ultimo valido noto")
				snap := st.snap
				l.mu.Unlock()
				return snap, true, nil
			}
			l.mu.Unlock()
			return nil, false, err
		}
		st.snap = snap
		st.valid = true
		st.lastErr = nil
		l.mu.Unlock()
		return snap, false, nil
	}
}

// fetch carica scadenze e clienti dell'utente e li normalizza per id.
func (l *Loader) fetch(ctx context.Context, userID string) (*Snapshot, error) {
	deadlines, err := l.deadlines.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	clients, err := l.clients.ListByUser(ctx, userID, 0, 0)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Deadlines: make(map[string]*entity.Deadline, len(deadlines)),
		Clients:   make(map[string]*entity.Client, len(clients)),
		FetchedAt: time.Now(),
	}
	for _, d := range deadlines {
		snap.Deadlines[d.ID] = d
	}
	for _, c := range clients {
		snap.Clients[c.ID] = c
	}
	return snap, nil
}

// Invalidate marca lo snapshot dell'utente come non più valido e notifica
// gli iscritti. La prossima Load rifarà la fetch completa: il payload del
// change feed non viene mai usato come stato finale.
func (l *Loader) Invalidate(userID string) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if st, ok := l.states[userID]; ok {
		st.valid = false
	}
	fns := make([]func(string), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(userID)
	}
}

// Subscribe registra una callback di invalidazione e restituisce la funzione
// di rilascio. Una sottoscrizione non rilasciata è un difetto: causa ricalcoli
// duplicati a ogni navigazione.
func (l *Loader) Subscribe(fn func(userID string)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return func() {}
	}
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// Close congela il loader: le fetch in volo vengono scartate al loro arrivo
// e le sottoscrizioni rimosse.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.subs = map[int]func(string){}
}
