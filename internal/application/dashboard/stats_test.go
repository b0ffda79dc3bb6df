package dashboard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dashboard"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers di test
// ──────────────────────────────────────────────────────────────────────────────

// clock fisso: mercoledì 15 aprile 2026, 10:00 locale.
var testNow = time.Date(2026, time.April, 15, 10, 0, 0, 0, time.Local)

func mkDeadline(id, status string, due time.Time) *entity.Deadline {
	return &entity.Deadline{
		ID:       id,
		UserID:   "u1",
		ClientID: "c1",
		Type:     "IVA trimestrale",
		DueDate:  due,
		Status:   status,
		Priority: entity.PriorityNormal,
	}
}

func buildSnapshot(deadlines ...*entity.Deadline) *dashboard.Snapshot {
	snap := &dashboard.Snapshot{
		Deadlines: make(map[string]*entity.Deadline, len(deadlines)),
		Clients: map[string]*entity.Client{
			"c1": {ID: "c1", UserID: "u1", Denominazione: "Rossi SRL", Tipo: entity.TipoSocieta},
		},
		FetchedAt: testNow,
	}
	for _, d := range deadlines {
		snap.Deadlines[d.ID] = d
	}
	return snap
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ComputeStats
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeStats_SnapshotVuoto(t *testing.T) {
	stats := dashboard.ComputeStats(buildSnapshot(), testNow)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Overdue)
	// Guardia divisione per zero: 0%, mai NaN o panic.
	assert.Equal(t, 0, stats.CompletionRate)
	assert.Equal(t, 1, stats.Clients)
}

func TestComputeStats_SnapshotNil(t *testing.T) {
	stats := dashboard.ComputeStats(nil, testNow)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Clients)
}

func TestComputeStats_Contatori(t *testing.T) {
	snap := buildSnapshot(
		mkDeadline("d1", entity.StatusPending, testNow.AddDate(0, 0, -3)),  // scaduta
		mkDeadline("d2", entity.StatusPending, testNow.AddDate(0, 0, 5)),   // nel mese
		mkDeadline("d3", entity.StatusCompleted, testNow.AddDate(0, 0, 2)), // nel mese
		mkDeadline("d4", entity.StatusInProgress, testNow.AddDate(0, 2, 0)),
	)

	stats := dashboard.ComputeStats(snap, testNow)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 3, stats.DueThisMonth) // d1, d2, d3 cadono ad aprile
	assert.Equal(t, 25, stats.CompletionRate)
}

// Una scadenza completata in ritardo non è mai "scaduta": la classificazione
// overdue vale solo per le pending.
func TestComputeStats_CompletataInRitardoNonScaduta(t *testing.T) {
	snap := buildSnapshot(
		mkDeadline("d1", entity.StatusCompleted, testNow.AddDate(0, 0, -10)),
	)

	stats := dashboard.ComputeStats(snap, testNow)

	assert.Equal(t, 0, stats.Overdue)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 100, stats.CompletionRate)
}

// Le righe con due date nulla restano nel totale ma non entrano nei
// conteggi derivati dalla data.
func TestComputeStats_DueDateNullaEsclusaDaiDerivati(t *testing.T) {
	snap := buildSnapshot(
		mkDeadline("d1", entity.StatusPending, time.Time{}),
		mkDeadline("d2", entity.StatusPending, testNow.AddDate(0, 0, 1)),
	)

	stats := dashboard.ComputeStats(snap, testNow)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 0, stats.Overdue)
	assert.Equal(t, 1, stats.DueThisMonth)
}

// Il cambio di mese riclassifica "in scadenza questo mese" senza alcuna
// scrittura: la stessa fotografia letta con un orologio diverso.
func TestComputeStats_RilettturaConOrologioDiverso(t *testing.T) {
	snap := buildSnapshot(
		mkDeadline("d1", entity.StatusPending, testNow.AddDate(0, 0, 10)), // 25 aprile
	)

	aprile := dashboard.ComputeStats(snap, testNow)
	maggio := dashboard.ComputeStats(snap, testNow.AddDate(0, 1, 0))

	assert.Equal(t, 1, aprile.DueThisMonth)
	assert.Equal(t, 0, maggio.DueThisMonth)
	assert.Equal(t, 0, aprile.Overdue)
	assert.Equal(t, 1, maggio.Overdue) // ormai nel passato
}
