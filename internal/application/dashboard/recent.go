package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dto"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
)

// recentWindow dimensione del widget "Prossime Scadenze".
const recentWindow = 5

var priorityLabels = map[string]string{
	entity.PriorityUrgent: "Urgente",
	entity.PriorityHigh:   "Alta",
	entity.PriorityNormal: "Normale",
	entity.PriorityLow:    "Bassa",
}

// Recent restituisce le prossime scadenze: solo pending, ordinate per due
// date crescente, al massimo recentWindow voci. Le righe senza due date
// sono scartate; un cliente mancante degrada a denominazione vuota.
func Recent(snap *Snapshot, now time.Time) []dto.RecentDeadlineDTO {
	items := make([]dto.RecentDeadlineDTO, 0, recentWindow)
	if snap == nil {
		return items
	}

	pending := make([]*entity.Deadline, 0, len(snap.Deadlines))
	for _, d := range snap.Deadlines {
		if d.Status != entity.StatusPending || d.DueDate.IsZero() {
			continue
		}
		pending = append(pending, d)
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].DueDate.Equal(pending[j].DueDate) {
			return pending[i].ID < pending[j].ID
		}
		return pending[i].DueDate.Before(pending[j].DueDate)
	})
	if len(pending) > recentWindow {
		pending = pending[:recentWindow]
	}

	for _, d := range pending {
		label, overdue := RelativeDayLabel(now, d.DueDate)
		var denominazione string
		if c, ok := snap.Clients[d.ClientID]; ok {
			denominazione = c.Denominazione
		}
		priorityLabel, ok := priorityLabels[d.Priority]
		if !ok {
			priorityLabel = d.Priority
		}
		items = append(items, dto.RecentDeadlineDTO{
			ID:            d.ID,
			Type:          d.Type,
			Description:   d.Description,
			Denominazione: denominazione,
			DueDate:       d.DueDate,
			Priority:      d.Priority,
			PriorityLabel: priorityLabel,
			DaysLabel:     label,
			Overdue:       overdue,
		})
	}
	return items
}

// RelativeDayLabel produce l'etichetta relativa in giorni di calendario:
// negativi -> "N giorni fa" con flag scaduta, 0 -> "Oggi", 1 -> "Domani",
// altrimenti "N giorni".
func RelativeDayLabel(now, due time.Time) (string, bool) {
	days := calendarDaysUntil(now, due)
	switch {
	case days < 0:
		return fmt.Sprintf("%d giorni fa", -days), true
	case days == 0:
		return "Oggi", false
	case days == 1:
		return "Domani", false
	default:
		return fmt.Sprintf("%d giorni", days), false
	}
}

// calendarDaysUntil differenza in giorni di calendario fra le due date,
// troncate a mezzanotte locale (il round assorbe i cambi di ora legale).
func calendarDaysUntil(now, due time.Time) int {
	diff := startOfDay(due).Sub(startOfDay(now))
	return int(math.Round(diff.Hours() / 24))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
