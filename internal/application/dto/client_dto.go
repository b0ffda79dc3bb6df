package dto

import "time"

// CreateClientRequest input per creare un'anagrafica cliente.
type CreateClientRequest struct {
	Denominazione   string            `json:"denominazione" validate:"required,min=1,max=200"`
	Tipo            string            `json:"tipo" validate:"required,oneof=persona_fisica societa altro"`
	CodiceFiscale   string            `json:"codice_fiscale" validate:"omitempty,max=16"`
	PartitaIva      string            `json:"partita_iva" validate:"omitempty,max=11"`
	Email           string            `json:"email" validate:"omitempty,email"`
	Pec             string            `json:"pec" validate:"omitempty,email"`
	Telefono        string            `json:"telefono" validate:"omitempty,max=20"`
	WhatsappEnabled bool              `json:"whatsapp_enabled"`
	Metadata        map[string]string `json:"metadata"`
}

// UpdateClientRequest input per aggiornamento parziale (campi nil = invariati).
type UpdateClientRequest struct {
	Denominazione   *string           `json:"denominazione"`
	Tipo            *string           `json:"tipo"`
	CodiceFiscale   *string           `json:"codice_fiscale"`
	PartitaIva      *string           `json:"partita_iva"`
	Email           *string           `json:"email"`
	Pec             *string           `json:"pec"`
	Telefono        *string           `json:"telefono"`
	WhatsappEnabled *bool             `json:"whatsapp_enabled"`
	Metadata        map[string]string `json:"metadata"`
}

// ClientResponse output di un'anagrafica cliente.
type ClientResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Denominazione   string            `json:"denominazione"`
	Tipo            string            `json:"tipo"`
	CodiceFiscale   string            `json:"codice_fiscale,omitempty"`
	PartitaIva      string            `json:"partita_iva,omitempty"`
	Email           string            `json:"email,omitempty"`
	Pec             string            `json:"pec,omitempty"`
	Telefono        string            `json:"telefono,omitempty"`
	WhatsappEnabled bool              `json:"whatsapp_enabled"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ClientListResponse pagina di clienti.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
