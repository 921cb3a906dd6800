package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

// DraftRepo borradores de producto sobre PostgreSQL (usable con pool o tx).
type DraftRepo struct {
	q Querier
}

// NewDraftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDraftRepository(q Querier) *DraftRepo {
	return &DraftRepo{q: q}
}

// Save inserta el borrador o lo actualiza si ya existe y pertenece al mismo cliente.
// Un ID vacío genera uno nuevo; un ID ajeno devuelve domain.ErrNotFound.
func (r *DraftRepo) Save(ctx context.Context, d *entity.ProductDraft) error {
	now := time.Now().UTC()
	if d.ID == "" {
		d.ID = uuid.NewString()
		d.CreatedAt = now
	} else if _, err := uuid.Parse(d.ID); err != nil {
		return fmt.Errorf("%w: id de borrador", domain.ErrInvalidInput)
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	query := `
		INSERT INTO product_drafts (id, client_id, title, payload, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
			SET title = EXCLUDED.title, payload = EXCLUDED.payload, price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
			WHERE product_drafts.client_id = EXCLUDED.client_id`
	cmd, err := r.q.Exec(ctx, query,
		d.ID, d.ClientID.String(), d.Title, d.Payload, d.Price, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("save draft: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un borrador del cliente. (nil, nil) si no existe.
func (r *DraftRepo) GetByID(ctx context.Context, clientID entity.ID, id string) (*entity.ProductDraft, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `
		SELECT id, client_id, title, payload, price, created_at, updated_at
		FROM product_drafts WHERE id = $1 AND client_id = $2`
	d, err := scanDraft(r.q.QueryRow(ctx, query, id, clientID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return d, nil
}

// ListByClient lista los borradores del cliente, el más reciente primero.
func (r *DraftRepo) ListByClient(ctx context.Context, clientID entity.ID, limit, offset int) ([]*entity.ProductDraft, error) {
	query := `
		SELECT id, client_id, title, payload, price, created_at, updated_at
		FROM product_drafts WHERE client_id = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, clientID.String(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductDraft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Delete borra un borrador del cliente. domain.ErrNotFound si no existía.
func (r *DraftRepo) Delete(ctx context.Context, clientID entity.ID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM product_drafts WHERE id = $1 AND client_id = $2`, id, clientID.String())
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDraft(row pgx.Row) (*entity.ProductDraft, error) {
	var (
		d        entity.ProductDraft
		id       uuid.UUID
		clientID string
	)
	if err := row.Scan(&id, &clientID, &d.Title, &d.Payload, &d.Price, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.ID = id.String()
	d.ClientID = entity.ID(clientID)
	return &d, nil
}
