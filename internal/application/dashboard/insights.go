package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dto"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
)

// Tipologie di insight.
const (
	InsightUrgent  = "urgent"
	InsightWarning = "warning"
	InsightTrend   = "trend"
	InsightTip     = "tip"
)

const (
	maxInsights = 4 // il pannello mostra al massimo 4 suggerimenti

	// nearTermDays finestra della regola "prossimi giorni".
	nearTermDays = 7

	// advancedViewThreshold scadenze totali minime per suggerire la vista Kanban.
	advancedViewThreshold = 10
)

// GenerateInsights valuta le regole consultive sullo snapshot e restituisce
// la lista ordinata per priorità crescente, troncata a maxInsights.
//
// Le regole sono indipendenti: ognuna emette zero o un insight.
//  1. scadute (priorità 1)
//  2. in scadenza entro 7 giorni (priorità 2)
//  3. trend completamenti mese corrente vs precedente (priorità 3)
//  4. suggerimento produttività, sempre presente (priorità 4)
func GenerateInsights(snap *Snapshot, now time.Time) []dto.InsightDTO {
	if snap == nil {
		return FallbackInsights()
	}

	insights := make([]dto.InsightDTO, 0, maxInsights)

	if in, ok := overdueRule(snap, now); ok {
		insights = append(insights, in)
	}
	if in, ok := nearTermRule(snap, now); ok {
		insights = append(insights, in)
	}
	if in, ok := trendRule(snap, now); ok {
		insights = append(insights, in)
	}
	insights = append(insights, tipRule(snap))

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority < insights[j].Priority
	})
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

// FallbackInsights messaggio fisso di benvenuto, usato quando la fetch dei
// dati fallisce del tutto: il pannello non resta mai vuoto.
func FallbackInsights() []dto.InsightDTO {
	return []dto.InsightDTO{{
		Kind:        InsightTip,
		Title:       "Benvenuto nel tuo Gestionale Fiscale!",
		Description: "Inizia aggiungendo i tuoi clienti e le loro scadenze.",
		Action:      &dto.InsightActionDTO{Label: "Aggiungi cliente", Href: "/dashboard/clienti/new"},
		Priority:    1,
	}}
}

func overdueRule(snap *Snapshot, now time.Time) (dto.InsightDTO, bool) {
	count := 0
	for _, d := range snap.Deadlines {
		if d.IsOverdue(now) {
			count++
		}
	}
	if count == 0 {
		return dto.InsightDTO{}, false
	}
	return dto.InsightDTO{
		Kind:        InsightUrgent,
		Title:       fmt.Sprintf("%d scadenze non rispettate", count),
		Description: fmt.Sprintf("Hai %d scadenze scadute che richiedono attenzione immediata.", count),
		Action:      &dto.InsightActionDTO{Label: "Visualizza scadenze", Href: "/dashboard/scadenze?filter=overdue"},
		Priority:    1,
	}, true
}

func nearTermRule(snap *Snapshot, now time.Time) (dto.InsightDTO, bool) {
	count := 0
	for _, d := range snap.Deadlines {
		if d.Status != entity.StatusPending || d.DueDate.IsZero() {
			continue
		}
		days := calendarDaysUntil(now, d.DueDate)
		if days >= 0 && days <= nearTermDays {
			count++
		}
	}
	if count == 0 {
		return dto.InsightDTO{}, false
	}
	return dto.InsightDTO{
		Kind:        InsightWarning,
		Title:       fmt.Sprintf("%d scadenze nei prossimi 7 giorni", count),
		Description: "Pianifica il tuo tempo per completare queste attività.",
		Action:      &dto.InsightActionDTO{Label: "Pianifica ora", Href: "/dashboard/scadenze/calendar"},
		Priority:    2,
	}, true
}

// trendRule confronta i completamenti del mese di calendario corrente con il
// precedente. La classificazione usa completed_at, con updated_at come
// ripiego per le righe completate prive di timestamp.
func trendRule(snap *Snapshot, now time.Time) (dto.InsightDTO, bool) {
	// Confronto per indice di mese: AddDate(0, -1, 0) a fine mese
	// normalizza e può ricadere nel mese corrente.
	var current, previous int
	nowIdx := monthIndex(now)
	for _, d := range snap.Deadlines {
		if d.Status != entity.StatusCompleted {
			continue
		}
		ts := d.UpdatedAt
		if d.CompletedAt != nil {
			ts = *d.CompletedAt
		}
		switch monthIndex(ts) {
		case nowIdx:
			current++
		case nowIdx - 1:
			previous++
		}
	}
	if current == 0 && previous == 0 {
		return dto.InsightDTO{}, false
	}
	if current >= previous {
		return dto.InsightDTO{
			Kind:        InsightTrend,
			Title:       "Efficienza migliorata",
			Description: fmt.Sprintf("Hai completato %d scadenze questo mese, %d il mese scorso.", current, previous),
			Priority:    3,
		}, true
	}
	return dto.InsightDTO{
		Kind:        InsightTrend,
		Title:       "Efficienza in calo",
		Description: fmt.Sprintf("Hai completato %d scadenze questo mese contro le %d del mese scorso.", current, previous),
		Priority:    3,
	}, true
}

// monthIndex numera i mesi di calendario in sequenza continua.
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// tipRule emette sempre un suggerimento: con abbastanza dati propone la
// vista Kanban, altrimenti un consiglio di onboarding.
func tipRule(snap *Snapshot) dto.InsightDTO {
	if len(snap.Deadlines) >= advancedViewThreshold {
		return dto.InsightDTO{
			Kind:        InsightTip,
			Title:       "Suggerimento produttività",
			Description: "Prova la vista Kanban per organizzare meglio il tuo workflow.",
			Action:      &dto.InsightActionDTO{Label: "Prova ora", Href: "/dashboard/scadenze?view=kanban"},
			Priority:    4,
		}
	}
	return dto.InsightDTO{
		Kind:        InsightTip,
		Title:       "Suggerimento produttività",
		Description: "Aggiungi le tue scadenze ricorrenti per tenere tutto sotto controllo.",
		Priority:    4,
	}
}
