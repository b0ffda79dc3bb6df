package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stati persistiti di una scadenza. "overdue" è solo derivato in lettura
// (pending con due date passata) e non compare mai in tabella.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Priorità di una scadenza.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Deadline rappresenta un adempimento fiscale con data di scadenza,
// appartenente a un cliente e a un utente.
type Deadline struct {
	ID          string
	UserID      string
	ClientID    string
	Type        string // es. "F24", "Dichiarazione IVA"
	Description string
	Amount      decimal.Decimal // importo opzionale, zero se assente
	DueDate     time.Time
	Status      string // pending | in_progress | completed
	Priority    string // low | normal | high | urgent
	AssignedTo  string
	CompletedAt *time.Time // valorizzato se e solo se Status == completed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidStatus verifica che lo stato sia uno di quelli persistibili.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidPriority verifica che la priorità sia una di quelle supportate.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// IsOverdue calcola la classificazione "scaduta" a tempo di lettura:
// pending con data di scadenza nel passato. Mai memorizzata.
func (d *Deadline) IsOverdue(now time.Time) bool {
	return d.Status == StatusPending && !d.DueDate.IsZero() && d.DueDate.Before(now)
}
