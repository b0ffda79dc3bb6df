package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dto"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/usecase"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake repositories
// ──────────────────────────────────────────────────────────────────────────────

type memClientRepo struct {
	mu      sync.Mutex
	clients map[string]*entity.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: map[string]*entity.Client{}}
}

func (r *memClientRepo) Create(ctx context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Client
	for _, c := range r.clients {
		if c.UserID == userID {
			cp := *c
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memClientRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	list, _ := r.ListByUser(ctx, userID, 0, 0)
	return len(list), nil
}

func (r *memClientRepo) Update(ctx context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
	return nil
}

type memDeadlineRepo struct {
	mu        sync.Mutex
	deadlines map[string]*entity.Deadline
}

func newMemDeadlineRepo() *memDeadlineRepo {
	return &memDeadlineRepo{deadlines: map[string]*entity.Deadline{}}
}

func (r *memDeadlineRepo) Create(ctx context.Context, d *entity.Deadline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.deadlines[d.ID] = &cp
	return nil
}

func (r *memDeadlineRepo) GetByID(ctx context.Context, id string) (*entity.Deadline, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deadlines[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memDeadlineRepo) ListAllByUser(ctx context.Context, userID string) ([]*entity.Deadline, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Deadline
	for _, d := range r.deadlines {
		if d.UserID == userID {
			cp := *d
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memDeadlineRepo) List(ctx context.Context, userID string, f repository.DeadlineFilter) ([]*entity.Deadline, error) {
	list, _ := r.ListAllByUser(ctx, userID)
	var out []*entity.Deadline
	for _, d := range list {
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.ClientID != "" && d.ClientID != f.ClientID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *memDeadlineRepo) Update(ctx context.Context, d *entity.Deadline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.deadlines[d.ID] = &cp
	return nil
}

func (r *memDeadlineRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.deadlines, id)
	return nil
}

func (r *memDeadlineRepo) DeleteByClient(ctx context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, d := range r.deadlines {
		if d.ClientID == clientID {
			delete(r.deadlines, id)
		}
	}
	return nil
}

// fakeTxRunner esegue la callback sugli stessi repository in memoria,
// senza semantica transazionale (sufficiente per verificare il cablaggio).
type fakeTxRunner struct {
	clientRepo   repository.ClientRepository
	deadlineRepo repository.DeadlineRepository
	runs         int
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	deadlineRepo repository.DeadlineRepository,
) error) error {
	f.runs++
	return fn(f.clientRepo, f.deadlineRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ClientUseCase
// ──────────────────────────────────────────────────────────────────────────────

func newClientUC() (*usecase.ClientUseCase, *memClientRepo, *memDeadlineRepo, *fakeTxRunner) {
	cr := newMemClientRepo()
	dr := newMemDeadlineRepo()
	tx := &fakeTxRunner{clientRepo: cr, deadlineRepo: dr}
	return usecase.NewClientUseCase(cr, tx), cr, dr, tx
}

func TestClientUseCase_CreateSocieta(t *testing.T) {
	uc, _, _, _ := newClientUC()

	out, err := uc.Create(context.Background(), "u1", dto.CreateClientRequest{
		Denominazione: "Bianchi & Partners SRL",
		Tipo:          entity.TipoSocieta,
		PartitaIva:    "01234567890",
	})

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "u1", out.UserID)
}

func TestClientUseCase_CreateValidazioneFiscale(t *testing.T) {
	uc, _, _, _ := newClientUC()

	cases := []struct {
		name string
		req  dto.CreateClientRequest
		want error
	}{
		{
			name: "persona fisica senza codice fiscale",
			req:  dto.CreateClientRequest{Denominazione: "Mario Rossi", Tipo: entity.TipoPersonaFisica},
			want: domain.ErrMissingTaxID,
		},
		{
			name: "societa senza partita iva",
			req:  dto.CreateClientRequest{Denominazione: "Verdi SRL", Tipo: entity.TipoSocieta, CodiceFiscale: "RSSMRA80A01H501U"},
			want: domain.ErrMissingTaxID,
		},
		{
			name: "altro senza alcun identificativo",
			req:  dto.CreateClientRequest{Denominazione: "Condominio Via Roma", Tipo: entity.TipoAltro},
			want: domain.ErrMissingTaxID,
		},
		{
			name: "tipo sconosciuto",
			req:  dto.CreateClientRequest{Denominazione: "X", Tipo: "ente_pubblico"},
			want: domain.ErrInvalidInput,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), "u1", tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// "altro" accetta indifferentemente codice fiscale o partita IVA.
func TestClientUseCase_CreateAltroConUnSoloIdentificativo(t *testing.T) {
	uc, _, _, _ := newClientUC()

	_, err := uc.Create(context.Background(), "u1", dto.CreateClientRequest{
		Denominazione: "Condominio Via Roma",
		Tipo:          entity.TipoAltro,
		CodiceFiscale: "97712730587",
	})

	assert.NoError(t, err)
}

func TestClientUseCase_GetByIDNegaAccessoAltrui(t *testing.T) {
	uc, cr, _, _ := newClientUC()
	cr.clients["c1"] = &entity.Client{ID: "c1", UserID: "altro-utente", Denominazione: "X", Tipo: entity.TipoAltro}

	out, err := uc.GetByID(context.Background(), "u1", "c1")

	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestClientUseCase_UpdateParziale(t *testing.T) {
	uc, cr, _, _ := newClientUC()
	cr.clients["c1"] = &entity.Client{
		ID: "c1", UserID: "u1",
		Denominazione: "Rossi SRL", Tipo: entity.TipoSocieta, PartitaIva: "01234567890",
		Pec: "vecchia@pec.it",
	}

	nuovaPec := "nuova@pec.it"
	out, err := uc.Update(context.Background(), "u1", "c1", dto.UpdateClientRequest{Pec: &nuovaPec})

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "nuova@pec.it", out.Pec)
	assert.Equal(t, "Rossi SRL", out.Denominazione) // invariata
}

// L'update non può lasciare il cliente senza identificativo fiscale valido.
func TestClientUseCase_UpdateRivalidaIdentificativi(t *testing.T) {
	uc, cr, _, _ := newClientUC()
	cr.clients["c1"] = &entity.Client{
		ID: "c1", UserID: "u1",
		Denominazione: "Rossi SRL", Tipo: entity.TipoSocieta, PartitaIva: "01234567890",
	}

	vuota := ""
	_, err := uc.Update(context.Background(), "u1", "c1", dto.UpdateClientRequest{PartitaIva: &vuota})

	assert.ErrorIs(t, err, domain.ErrMissingTaxID)
}

func TestClientUseCase_DeleteCascataScadenze(t *testing.T) {
	uc, cr, dr, tx := newClientUC()
	cr.clients["c1"] = &entity.Client{ID: "c1", UserID: "u1", Denominazione: "Rossi SRL", Tipo: entity.TipoSocieta, PartitaIva: "01234567890"}
	dr.deadlines["d1"] = &entity.Deadline{ID: "d1", UserID: "u1", ClientID: "c1", Status: entity.StatusPending}
	dr.deadlines["d2"] = &entity.Deadline{ID: "d2", UserID: "u1", ClientID: "c1", Status: entity.StatusCompleted}
	dr.deadlines["d3"] = &entity.Deadline{ID: "d3", UserID: "u1", ClientID: "c2", Status: entity.StatusPending}

	err := uc.Delete(context.Background(), "u1", "c1")

	require.NoError(t, err)
	assert.Equal(t, 1, tx.runs) // cancellazione dentro la transazione
	assert.NotContains(t, cr.clients, "c1")
	assert.NotContains(t, dr.deadlines, "d1")
	assert.NotContains(t, dr.deadlines, "d2")
	assert.Contains(t, dr.deadlines, "d3") // di un altro cliente: resta
}

func TestClientUseCase_DeleteNonTrovato(t *testing.T) {
	uc, _, _, tx := newClientUC()

	err := uc.Delete(context.Background(), "u1", "inesistente")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, tx.runs)
}
