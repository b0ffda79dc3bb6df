package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementazione di ClientRepository (usabile con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, user_id, denominazione, tipo,
	COALESCE(codice_fiscale, ''), COALESCE(partita_iva, ''), COALESCE(email, ''),
	COALESCE(pec, ''), COALESCE(telefono, ''), whatsapp_enabled,
	COALESCE(metadata, '{}'::jsonb), created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.UserID, &c.Denominazione, &c.Tipo,
		&c.CodiceFiscale, &c.PartitaIva, &c.Email,
		&c.Pec, &c.Telefono, &c.WhatsappEnabled,
		&c.Metadata, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuovo cliente.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (id, user_id, denominazione, tipo, codice_fiscale, partita_iva,
			email, pec, telefono, whatsapp_enabled, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		client.ID, client.UserID, client.Denominazione, client.Tipo,
		client.CodiceFiscale, client.PartitaIva, client.Email, client.Pec,
		client.Telefono, client.WhatsappEnabled, client.Metadata,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID recupera un cliente per ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// ListByUser elenca i clienti dell'utente ordinati per denominazione.
// limit <= 0 significa nessun limite (usato dallo snapshot della dashboard).
func (r *ClientRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1 ORDER BY denominazione`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CountByUser conta i clienti dell'utente.
func (r *ClientRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return count, nil
}

// Update aggiorna un cliente.
func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	query := `
		UPDATE clients SET denominazione = $2, tipo = $3, codice_fiscale = $4, partita_iva = $5,
			email = $6, pec = $7, telefono = $8, whatsapp_enabled = $9, metadata = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		client.ID, client.Denominazione, client.Tipo, client.CodiceFiscale, client.PartitaIva,
		client.Email, client.Pec, client.Telefono, client.WhatsappEnabled, client.Metadata,
		client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete elimina un cliente per ID. Le scadenze associate vengono eliminate
// dal caso d'uso nella stessa transazione.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
