package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/dto"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/repository"
)

// ClientUseCase casi d'uso CRUD per l'anagrafica clienti.
type ClientUseCase struct {
	repo     repository.ClientRepository
	txRunner TxRunner
}

// NewClientUseCase costruisce il caso d'uso.
func NewClientUseCase(repo repository.ClientRepository, txRunner TxRunner) *ClientUseCase {
	return &ClientUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un nuovo cliente dopo la validazione degli identificativi fiscali.
func (uc *ClientUseCase) Create(ctx context.Context, userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if !entity.ValidTipo(in.Tipo) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:              uuid.New().String(),
		UserID:          userID,
		Denominazione:   in.Denominazione,
		Tipo:            in.Tipo,
		CodiceFiscale:   in.CodiceFiscale,
		PartitaIva:      in.PartitaIva,
		Email:           in.Email,
		Pec:             in.Pec,
		Telefono:        in.Telefono,
		WhatsappEnabled: in.WhatsappEnabled,
		Metadata:        in.Metadata,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !client.HasRequiredTaxID() {
		return nil, domain.ErrMissingTaxID
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID restituisce un cliente dell'utente; nil se non esiste o non suo.
func (uc *ClientUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil || client.UserID != userID {
		return nil, nil
	}
	return toClientResponse(client), nil
}

// List elenca i clienti dell'utente con paginazione.
func (uc *ClientUseCase) List(ctx context.Context, userID string, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update aggiorna il cliente (campi nil invariati) rivalidando gli
// identificativi fiscali sul risultato.
func (uc *ClientUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil || client.UserID != userID {
		return nil, nil
	}
	if in.Denominazione != nil {
		client.Denominazione = *in.Denominazione
	}
	if in.Tipo != nil {
		if !entity.ValidTipo(*in.Tipo) {
			return nil, domain.ErrInvalidInput
		}
		client.Tipo = *in.Tipo
	}
	if in.CodiceFiscale != nil {
		client.CodiceFiscale = *in.CodiceFiscale
	}
	if in.PartitaIva != nil {
		client.PartitaIva = *in.PartitaIva
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Pec != nil {
		client.Pec = *in.Pec
	}
	if in.Telefono != nil {
		client.Telefono = *in.Telefono
	}
	if in.WhatsappEnabled != nil {
		client.WhatsappEnabled = *in.WhatsappEnabled
	}
	if len(in.Metadata) > 0 {
		client.Metadata = in.Metadata
	}
	if !client.HasRequiredTaxID() {
		return nil, domain.ErrMissingTaxID
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina il cliente e, nella stessa transazione, tutte le sue
// scadenze. Restituisce ErrNotFound se il cliente non esiste o non è
// dell'utente.
func (uc *ClientUseCase) Delete(ctx context.Context, userID, id string) error {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil || client.UserID != userID {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(
		clientRepo repository.ClientRepository,
		deadlineRepo repository.DeadlineRepository,
	) error {
		if err := deadlineRepo.DeleteByClient(ctx, id); err != nil {
			return err
		}
		return clientRepo.Delete(ctx, id)
	})
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		Denominazione:   c.Denominazione,
		Tipo:            c.Tipo,
		CodiceFiscale:   c.CodiceFiscale,
		PartitaIva:      c.PartitaIva,
		Email:           c.Email,
		Pec:             c.Pec,
		Telefono:        c.Telefono,
		WhatsappEnabled: c.WhatsappEnabled,
		Metadata:        c.Metadata,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
