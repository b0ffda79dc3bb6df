package entity

import "time"

// Tipologie anagrafiche del cliente.
const (
	TipoPersonaFisica = "persona_fisica"
	TipoSocieta       = "societa"
	TipoAltro         = "altro"
)

// Client rappresenta l'anagrafica di un soggetto fiscale dello studio.
type Client struct {
	ID              string
	UserID          string
	Denominazione   string
	Tipo            string // persona_fisica | societa | altro
	CodiceFiscale   string
	PartitaIva      string
	Email           string
	Pec             string
	Telefono        string
	WhatsappEnabled bool
	Metadata        map[string]string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidTipo verifica che la tipologia sia una di quelle supportate.
func ValidTipo(t string) bool {
	switch t {
	case TipoPersonaFisica, TipoSocieta, TipoAltro:
		return true
	}
	return false
}

// HasRequiredTaxID applica la regola sugli identificativi fiscali:
// persona fisica richiede il codice fiscale, società la partita IVA,
// per "altro" basta uno dei due.
func (c *Client) HasRequiredTaxID() bool {
	switch c.Tipo {
	case TipoPersonaFisica:
		return c.CodiceFiscale != ""
	case TipoSocieta:
		return c.PartitaIva != ""
	default:
		return c.CodiceFiscale != "" || c.PartitaIva != ""
	}
}
