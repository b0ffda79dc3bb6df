package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/entity"
	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/domain/repository"
)

// ChannelDeadlines canale LISTEN/NOTIFY su cui il repository segnala ogni
// mutazione della tabella deadlines. Il payload è lo user id proprietario:
// chi ascolta invalida e rifà la fetch completa, senza fidarsi del payload
// per lo stato finale.
const ChannelDeadlines = "deadlines_changed"

var _ repository.DeadlineRepository = (*DeadlineRepo)(nil)

// DeadlineRepo implementazione di DeadlineRepository (usabile con pool o tx).
// Ogni scrittura emette la notifica nella stessa transazione della mutazione,
// così il change feed non può perdere eventi delle scritture via API.
type DeadlineRepo struct {
	q Querier
}

// NewDeadlineRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewDeadlineRepository(q Querier) *DeadlineRepo {
	return &DeadlineRepo{q: q}
}

const deadlineColumns = `id, user_id, client_id, type, COALESCE(description, ''),
	COALESCE(amount, 0), due_date, status, priority, COALESCE(assigned_to, ''),
	completed_at, created_at, updated_at`

func scanDeadline(row pgx.Row) (*entity.Deadline, error) {
	var d entity.Deadline
	err := row.Scan(
		&d.ID, &d.UserID, &d.ClientID, &d.Type, &d.Description,
		&d.Amount, &d.DueDate, &d.Status, &d.Priority, &d.AssignedTo,
		&d.CompletedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DeadlineRepo) notify(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `SELECT pg_notify($1, $2)`, ChannelDeadlines, userID)
	return err
}

// Create persiste una nuova scadenza e notifica il change feed.
func (r *DeadlineRepo) Create(ctx context.Context, deadline *entity.Deadline) error {
	query := `
		INSERT INTO deadlines (id, user_id, client_id, type, description, amount, due_date,
			status, priority, assigned_to, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		deadline.ID, deadline.UserID, deadline.ClientID, deadline.Type, deadline.Description,
		deadline.Amount, deadline.DueDate, deadline.Status, deadline.Priority,
		deadline.AssignedTo, deadline.CompletedAt, deadline.CreatedAt, deadline.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deadline: %w", err)
	}
	return r.notify(ctx, deadline.UserID)
}

// GetByID recupera una scadenza per ID.
func (r *DeadlineRepo) GetByID(ctx context.Context, id string) (*entity.Deadline, error) {
	query := `SELECT ` + deadlineColumns + ` FROM deadlines WHERE id = $1`
	d, err := scanDeadline(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deadline: %w", err)
	}
	return d, nil
}

// ListAllByUser restituisce l'intero insieme di scadenze dell'utente
// ordinato per due date crescente (fetch dello snapshot dashboard).
func (r *DeadlineRepo) ListAllByUser(ctx context.Context, userID string) ([]*entity.Deadline, error) {
	query := `SELECT ` + deadlineColumns + ` FROM deadlines WHERE user_id = $1 ORDER BY due_date`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list all deadlines: %w", err)
	}
	defer rows.Close()
	return collectDeadlines(rows)
}

// List elenca le scadenze dell'utente applicando i predicati del filtro.
// Limit <= 0 significa nessun limite.
func (r *DeadlineRepo) List(ctx context.Context, userID string, filter repository.DeadlineFilter) ([]*entity.Deadline, error) {
	query := `SELECT ` + deadlineColumns + ` FROM deadlines WHERE user_id = $1`
	args := []any{userID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if !filter.DueFrom.IsZero() {
		args = append(args, filter.DueFrom)
		query += fmt.Sprintf(" AND due_date >= $%d", len(args))
	}
	if !filter.DueTo.IsZero() {
		args = append(args, filter.DueTo)
		query += fmt.Sprintf(" AND due_date <= $%d", len(args))
	}
	query += " ORDER BY due_date"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deadlines: %w", err)
	}
	defer rows.Close()
	return collectDeadlines(rows)
}

func collectDeadlines(rows pgx.Rows) ([]*entity.Deadline, error) {
	var list []*entity.Deadline
	for rows.Next() {
		d, err := scanDeadline(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deadline: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update aggiorna una scadenza e notifica il change feed.
func (r *DeadlineRepo) Update(ctx context.Context, deadline *entity.Deadline) error {
	query := `
		UPDATE deadlines SET client_id = $2, type = $3, description = $4, amount = $5,
			due_date = $6, status = $7, priority = $8, assigned_to = $9,
			completed_at = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		deadline.ID, deadline.ClientID, deadline.Type, deadline.Description, deadline.Amount,
		deadline.DueDate, deadline.Status, deadline.Priority, deadline.AssignedTo,
		deadline.CompletedAt, deadline.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update deadline: %w", err)
	}
	return r.notify(ctx, deadline.UserID)
}

// Delete elimina una scadenza e notifica il change feed.
func (r *DeadlineRepo) Delete(ctx context.Context, id string) error {
	var userID string
	err := r.q.QueryRow(ctx, `DELETE FROM deadlines WHERE id = $1 RETURNING user_id`, id).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("delete deadline: %w", err)
	}
	return r.notify(ctx, userID)
}

// DeleteByClient elimina tutte le scadenze del cliente (cascata della
// cancellazione anagrafica) e notifica il change feed una sola volta.
func (r *DeadlineRepo) DeleteByClient(ctx context.Context, clientID string) error {
	rows, err := r.q.Query(ctx, `DELETE FROM deadlines WHERE client_id = $1 RETURNING user_id`, clientID)
	if err != nil {
		return fmt.Errorf("delete deadlines by client: %w", err)
	}
	defer rows.Close()
	var userID string
	for rows.Next() {
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("scan deleted deadline: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if userID == "" {
		return nil // nessuna scadenza da eliminare
	}
	return r.notify(ctx, userID)
}
