package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dto"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/usecase"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/repository"
)

func newDeadlineUC() (*usecase.DeadlineUseCase, *memDeadlineRepo, *memClientRepo) {
	cr := newMemClientRepo()
	dr := newMemDeadlineRepo()
	cr.clients["c1"] = &entity.Client{
		ID: "c1", UserID: "u1",
		Denominazione: "Rossi SRL", Tipo: entity.TipoSocieta, PartitaIva: "01234567890",
	}
	return usecase.NewDeadlineUseCase(dr, cr), dr, cr
}

func validCreateReq() dto.CreateDeadlineRequest {
	return dto.CreateDeadlineRequest{
		ClientID: "c1",
		Type:     "IVA trimestrale",
		Amount:   decimal.NewFromFloat(1250.50),
		DueDate:  time.Now().AddDate(0, 1, 0),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestDeadlineUseCase_Create(t *testing.T) {
	uc, _, _ := newDeadlineUC()

	out, err := uc.Create(context.Background(), "u1", validCreateReq())

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, entity.StatusPending, out.Status)
	assert.Equal(t, entity.PriorityNormal, out.Priority) // default
	assert.Nil(t, out.CompletedAt)
	assert.False(t, out.Overdue)
}

func TestDeadlineUseCase_CreateClienteAltruiNegato(t *testing.T) {
	uc, _, cr := newDeadlineUC()
	cr.clients["c2"] = &entity.Client{ID: "c2", UserID: "altro-utente", Denominazione: "X", Tipo: entity.TipoAltro, CodiceFiscale: "97712730587"}

	req := validCreateReq()
	req.ClientID = "c2"
	_, err := uc.Create(context.Background(), "u1", req)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeadlineUseCase_CreateSenzaDueDate(t *testing.T) {
	uc, _, _ := newDeadlineUC()

	req := validCreateReq()
	req.DueDate = time.Time{}
	_, err := uc.Create(context.Background(), "u1", req)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeadlineUseCase_CreatePrioritaInvalida(t *testing.T) {
	uc, _, _ := newDeadlineUC()

	req := validCreateReq()
	req.Priority = "altissima"
	_, err := uc.Create(context.Background(), "u1", req)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update: transizioni di stato
// ──────────────────────────────────────────────────────────────────────────────

// Il passaggio a "completed" valorizza completed_at.
func TestDeadlineUseCase_CompletamentoImpostaCompletedAt(t *testing.T) {
	uc, _, _ := newDeadlineUC()
	created, err := uc.Create(context.Background(), "u1", validCreateReq())
	require.NoError(t, err)

	completed := entity.StatusCompleted
	out, err := uc.Update(context.Background(), "u1", created.ID, dto.UpdateDeadlineRequest{Status: &completed})

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, entity.StatusCompleted, out.Status)
	require.NotNil(t, out.CompletedAt)
	assert.WithinDuration(t, time.Now(), *out.CompletedAt, 5*time.Second)
}

// La riapertura azzera completed_at: il timestamp esiste se e solo se lo
// stato è "completed".
func TestDeadlineUseCase_RiaperturaAzzeraCompletedAt(t *testing.T) {
	uc, _, _ := newDeadlineUC()
	created, err := uc.Create(context.Background(), "u1", validCreateReq())
	require.NoError(t, err)

	completed := entity.StatusCompleted
	_, err = uc.Update(context.Background(), "u1", created.ID, dto.UpdateDeadlineRequest{Status: &completed})
	require.NoError(t, err)

	pending := entity.StatusPending
	out, err := uc.Update(context.Background(), "u1", created.ID, dto.UpdateDeadlineRequest{Status: &pending})

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, entity.StatusPending, out.Status)
	assert.Nil(t, out.CompletedAt)
}

// Completare due volte non sposta il timestamp originale.
func TestDeadlineUseCase_DoppioCompletamentoIdempotente(t *testing.T) {
	uc, _, _ := newDeadlineUC()
	created, err := uc.Create(context.Background(), "u1", validCreateReq())
	require.NoError(t, err)

	completed := entity.StatusCompleted
	first, err := uc.Update(context.Background(), "u1", created.ID, dto.UpdateDeadlineRequest{Status: &completed})
	require.NoError(t, err)

	second, err := uc.Update(context.Background(), "u1", created.ID, dto.UpdateDeadlineRequest{Status: &completed})
	require.NoError(t, err)

	require.NotNil(t, first.CompletedAt)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, first.CompletedAt.Equal(*second.CompletedAt))
}

func TestDeadlineUseCase_UpdateStatoInvalido(t *testing.T) {
	uc, _, _ := newDeadlineUC()
	created, err := uc.Create(context.Background(), "u1", validCreateReq())
	require.NoError(t, err)

	stato := "archiviata"
	_, err = uc.Update(context.Background(), "u1", created.ID, dto.UpdateDeadlineRequest{Status: &stato})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Lo spostamento su un cliente altrui viene rifiutato.
func TestDeadlineUseCase_UpdateClienteAltruiNegato(t *testing.T) {
	uc, _, cr := newDeadlineUC()
	cr.clients["c2"] = &entity.Client{ID: "c2", UserID: "altro-utente", Denominazione: "X", Tipo: entity.TipoAltro, CodiceFiscale: "97712730587"}
	created, err := uc.Create(context.Background(), "u1", validCreateReq())
	require.NoError(t, err)

	altro := "c2"
	_, err = uc.Update(context.Background(), "u1", created.ID, dto.UpdateDeadlineRequest{ClientID: &altro})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests List / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDeadlineUseCase_ListFiltroStatoInvalido(t *testing.T) {
	uc, _, _ := newDeadlineUC()

	_, err := uc.List(context.Background(), "u1", repository.DeadlineFilter{Status: "archiviata"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeadlineUseCase_ListFiltraPerStato(t *testing.T) {
	uc, dr, _ := newDeadlineUC()
	dr.deadlines["d1"] = &entity.Deadline{ID: "d1", UserID: "u1", ClientID: "c1", Status: entity.StatusPending}
	dr.deadlines["d2"] = &entity.Deadline{ID: "d2", UserID: "u1", ClientID: "c1", Status: entity.StatusCompleted}

	out, err := uc.List(context.Background(), "u1", repository.DeadlineFilter{Status: entity.StatusPending})

	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "d1", out.Items[0].ID)
}

func TestDeadlineUseCase_DeleteAltruiNegato(t *testing.T) {
	uc, dr, _ := newDeadlineUC()
	dr.deadlines["d1"] = &entity.Deadline{ID: "d1", UserID: "altro-utente", ClientID: "c1", Status: entity.StatusPending}

	err := uc.Delete(context.Background(), "u1", "d1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, dr.deadlines, "d1")
}
