package dto

import "time"

// DashboardStatsDTO contatori aggregati della dashboard.
// Overdue e DueThisMonth sono ricalcolati dall'orologio corrente a ogni lettura.
type DashboardStatsDTO struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	Overdue        int `json:"overdue"`
	Completed      int `json:"completed"`
	Clients        int `json:"clients"`
	DueThisMonth   int `json:"due_this_month"`
	CompletionRate int `json:"completion_rate"` // percentuale 0-100, 0 se Total == 0
}

// InsightActionDTO deep link suggerito da un insight; la navigazione è a carico della shell UI.
type InsightActionDTO struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// InsightDTO messaggio consultivo della dashboard, ordinato per priorità crescente.
type InsightDTO struct {
	Kind        string            `json:"kind"` // urgent | warning | trend | tip
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Action      *InsightActionDTO `json:"action,omitempty"`
	Priority    int               `json:"priority"`
}

// RecentDeadlineDTO voce del widget "Prossime Scadenze".
type RecentDeadlineDTO struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Description   string    `json:"description,omitempty"`
	Denominazione string    `json:"denominazione"`
	DueDate       time.Time `json:"due_date"`
	Priority      string    `json:"priority"`
	PriorityLabel string    `json:"priority_label"`
	DaysLabel     string    `json:"days_label"` // "3 giorni fa" | "Oggi" | "Domani" | "5 giorni"
	Overdue       bool      `json:"overdue"`
}

// DashboardSummaryDTO risposta di GET /api/dashboard/summary.
// I tre pannelli sono calcolati dallo stesso snapshot, quindi coerenti fra loro.
// Stale indica che lo snapshot è l'ultimo valido noto (fetch fallita, dato non azzerato).
type DashboardSummaryDTO struct {
	Stats           DashboardStatsDTO   `json:"stats"`
	Insights        []InsightDTO        `json:"insights"`
	RecentDeadlines []RecentDeadlineDTO `json:"recent_deadlines"`
	FetchedAt       time.Time           `json:"fetched_at"`
	Stale           bool                `json:"stale"`
}
