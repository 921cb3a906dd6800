package seller

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/pkg/money"
)

const (
	defaultDraftLimit = 20
	maxDraftLimit     = 100
	maxDraftPayload   = 256 << 10
)

// errDraftsDisabled sin base de datos configurada.
var errDraftsDisabled = fmt.Errorf("borradores deshabilitados: %w", domain.ErrUnavailable)

// SaveDraft crea (id vacío) o actualiza un borrador del vendedor.
func (s *Service) SaveDraft(ctx context.Context, clientID entity.ID, id string, req dto.DraftRequest) (*dto.DraftDTO, error) {
	if s.drafts == nil {
		return nil, errDraftsDisabled
	}
	if clientID.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	payload := []byte(strings.TrimSpace(string(req.Payload)))
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	if !json.Valid(payload) {
		return nil, invalid("payload", "JSON inválido")
	}
	if len(payload) > maxDraftPayload {
		return nil, invalid("payload", "borrador demasiado grande")
	}

	d := &entity.ProductDraft{
		ID:       strings.TrimSpace(id),
		ClientID: clientID,
		Title:    strings.TrimSpace(req.Title),
		Payload:  payload,
	}
	if strings.TrimSpace(string(req.Price)) != "" {
		price, err := money.Parse(string(req.Price))
		if err != nil {
			return nil, invalid("price", err.Error())
		}
		d.Price = decimal.NewNullDecimal(price)
	}
	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return toDraftDTO(d), nil
}

// Drafts borradores del vendedor, del más reciente al más antiguo.
func (s *Service) Drafts(ctx context.Context, clientID entity.ID, limit, offset int) ([]dto.DraftDTO, error) {
	if s.drafts == nil {
		return nil, errDraftsDisabled
	}
	if clientID.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 {
		limit = defaultDraftLimit
	}
	limit = min(limit, maxDraftLimit)
	offset = max(offset, 0)

	drafts, err := s.drafts.ListByClient(ctx, clientID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DraftDTO, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, *toDraftDTO(d))
	}
	return out, nil
}

// Draft borrador por ID; domain.ErrNotFound si no existe o es de otro vendedor.
func (s *Service) Draft(ctx context.Context, clientID entity.ID, id string) (*dto.DraftDTO, error) {
	if s.drafts == nil {
		return nil, errDraftsDisabled
	}
	if clientID.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	d, err := s.drafts.GetByID(ctx, clientID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return toDraftDTO(d), nil
}

// DeleteDraft elimina un borrador propio.
func (s *Service) DeleteDraft(ctx context.Context, clientID entity.ID, id string) error {
	if s.drafts == nil {
		return errDraftsDisabled
	}
	if clientID.IsZero() {
		return domain.ErrUnauthorized
	}
	return s.drafts.Delete(ctx, clientID, id)
}

func toDraftDTO(d *entity.ProductDraft) *dto.DraftDTO {
	out := &dto.DraftDTO{
		ID:        d.ID,
		Title:     d.Title,
		Payload:   json.RawMessage(d.Payload),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Price.Valid {
		price := d.Price.Decimal
		out.Price = &price
	}
	return out
}
