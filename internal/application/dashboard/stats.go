package dashboard

import (
	"time"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dto"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
)

// ComputeStats calcola i contatori aggregati dallo snapshot.
//
// Funzione pura: l'orologio arriva dal chiamante, così la classificazione
// "scaduta" è sempre ricalcolata al momento della lettura e mai cacheata.
// Le righe con due date nulla restano nel totale ma sono escluse dai
// conteggi derivati dalla data.
func ComputeStats(snap *Snapshot, now time.Time) dto.DashboardStatsDTO {
	var stats dto.DashboardStatsDTO
	if snap == nil {
		return stats
	}

	for _, d := range snap.Deadlines {
		stats.Total++
		switch d.Status {
		case entity.StatusPending:
			stats.Pending++
		case entity.StatusCompleted:
			stats.Completed++
		}
		if d.IsOverdue(now) {
			stats.Overdue++
		}
		if !d.DueDate.IsZero() &&
			d.DueDate.Month() == now.Month() && d.DueDate.Year() == now.Year() {
			stats.DueThisMonth++
		}
	}

	stats.Clients = len(snap.Clients)

	// Guardia divisione per zero: 0% con zero scadenze, mai NaN.
	if stats.Total > 0 {
		stats.CompletionRate = stats.Completed * 100 / stats.Total
	}

	return stats
}
