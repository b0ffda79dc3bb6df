package domain

import "errors"

// Errori di dominio (senza dipendenze esterne).
var (
	ErrNotFound           = errors.New("risorsa non trovata")
	ErrUserNotFound       = errors.New("utente non trovato")
	ErrEmailAlreadyExists = errors.New("l'email è già registrata")
	ErrInvalidInput       = errors.New("input non valido")
	ErrDuplicate          = errors.New("risorsa duplicata")
	ErrUnauthorized       = errors.New("non autorizzato")
	ErrForbidden          = errors.New("accesso negato")
	ErrMissingTaxID       = errors.New("codice fiscale o partita IVA richiesti")
	ErrInvalidTransition  = errors.New("transizione di stato non valida")
)
