package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDeadlineRequest input per creare una scadenza.
type CreateDeadlineRequest struct {
	ClientID    string          `json:"client_id" validate:"required,uuid"`
	Type        string          `json:"type" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date" validate:"required"`
	Priority    string          `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	AssignedTo  string          `json:"assigned_to" validate:"omitempty,max=200"`
}

// UpdateDeadlineRequest input per aggiornamento parziale (campi nil = invariati).
// Il passaggio a "completed" valorizza CompletedAt; il passaggio inverso lo azzera.
type UpdateDeadlineRequest struct {
	ClientID    *string          `json:"client_id"`
	Type        *string          `json:"type"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *time.Time       `json:"due_date"`
	Status      *string          `json:"status"`
	Priority    *string          `json:"priority"`
	AssignedTo  *string          `json:"assigned_to"`
}

// DeadlineResponse output di una scadenza. Overdue è derivato in lettura.
type DeadlineResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	ClientID    string          `json:"client_id"`
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	Status      string          `json:"status"`
	Overdue     bool            `json:"overdue"`
	Priority    string          `json:"priority"`
	AssignedTo  string          `json:"assigned_to,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DeadlineListResponse pagina di scadenze.
type DeadlineListResponse struct {
	Items []DeadlineResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
