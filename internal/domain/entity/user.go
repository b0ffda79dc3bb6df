package entity

import "time"

// Piani disponibili per lo studio.
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// User rappresenta il titolare dello studio (proprietario di clienti e scadenze).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	StudioName   string
	Plan         string            // free | pro | enterprise
	Preferences  map[string]string // tema, vista predefinita, ecc.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidPlan verifica che il piano sia uno di quelli supportati.
func ValidPlan(p string) bool {
	switch p {
	case PlanFree, PlanPro, PlanEnterprise:
		return true
	}
	return false
}
