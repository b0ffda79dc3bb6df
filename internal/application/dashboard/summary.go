package dashboard

import (
	"time"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dto"
)

// Summary assembla i tre pannelli della dashboard dallo stesso snapshot,
// garantendo la coerenza fra contatori, insight e prossime scadenze
// all'interno dello stesso ciclo.
func Summary(snap *Snapshot, stale bool, now time.Time) dto.DashboardSummaryDTO {
	var fetchedAt time.Time
	if snap != nil {
		fetchedAt = snap.FetchedAt
	}
	return dto.DashboardSummaryDTO{
		Stats:           ComputeStats(snap, now),
		Insights:        GenerateInsights(snap, now),
		RecentDeadlines: Recent(snap, now),
		FetchedAt:       fetchedAt,
		Stale:           stale,
	}
}
