// Package seller implementa el panel del vendedor: listado por estado de moderación,
// alta, edición, reenvío y borrado de productos, selector de categoría y borradores.
package seller

import (
	"context"
	"fmt"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/application/storefront"
	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/event"
	"github.com/renexpress/storefront-api/internal/domain/moderation"
	"github.com/renexpress/storefront-api/internal/domain/repository"
	"github.com/renexpress/storefront-api/pkg/logger"
	"github.com/renexpress/storefront-api/pkg/money"
)

// Service casos de uso del vendedor. El cliente siempre viene del token, nunca del cuerpo.
type Service struct {
	products repository.SellerProductSource
	catalog  storefront.Provider
	drafts   repository.DraftRepository
	events   repository.EventPublisher
	log      *logger.Logger
}

// NewService construye el servicio. drafts y events pueden ser nil.
func NewService(
	products repository.SellerProductSource,
	catalog storefront.Provider,
	drafts repository.DraftRepository,
	events repository.EventPublisher,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		products: products,
		catalog:  catalog,
		drafts:   drafts,
		events:   events,
		log:      log.Component("seller"),
	}
}

// ListQuery filtros del listado "Mis productos".
type ListQuery struct {
	Tab      string
	Search   string
	Category entity.ID
}

// List productos del vendedor filtrados por pestaña, búsqueda y categoría (con descendientes).
// Los contadores se calculan sobre todos los productos.
func (s *Service) List(ctx context.Context, clientID entity.ID, q ListQuery) (*dto.SellerProductListResponse, error) {
	if clientID.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	products, err := s.products.MyProducts(ctx, clientID)
	if err != nil {
		return nil, err
	}

	view, err := s.catalog.View(ctx)
	if err != nil {
		if !q.Category.IsZero() {
			return nil, err
		}
		s.log.Warn().Err(err).Msg("catálogo no disponible, listado sin rutas de categoría")
		view = nil
	}

	tab := moderation.ParseTab(q.Tab)
	mq := moderation.Query{Tab: tab, Search: q.Search}
	if !q.Category.IsZero() {
		mq.Scope = view.Tree.DescendantIDs(q.Category)
	}
	filtered := moderation.Filter(products, mq)

	counters := moderation.Count(products)
	out := &dto.SellerProductListResponse{
		Tab:      string(tab),
		Items:    make([]dto.SellerProductDTO, 0, len(filtered)),
		Total:    len(filtered),
		Counters: make(map[string]int, len(counters)),
	}
	for t, n := range counters {
		out.Counters[string(t)] = n
	}
	for _, p := range filtered {
		item := toSellerProductDTO(p)
		if view != nil {
			if path := view.Tree.FullPath(p.CategoryID); path != "" {
				item.CategoryPath = path
			}
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func toSellerProductDTO(p entity.SellerProduct) dto.SellerProductDTO {
	item := dto.SellerProductDTO{
		ID:              p.ID,
		Name:            p.Name,
		SKU:             p.SKU,
		Article:         p.Article,
		Status:          p.Status,
		RejectionReason: p.RejectionReason,
		RetailPrice:     p.RetailPrice,
		PriceText:       money.Format(p.DisplayPrice()),
		StockQuantity:   p.StockQuantity,
		CategoryID:      p.CategoryID,
		CategoryPath:    p.CategoryFullPath,
		ViewsCount:      p.ViewsCount,
		SalesCount:      p.SalesCount,
		UpdatedAt:       p.UpdatedAt,
		CanEdit:         canEdit(p.Status),
		CanDelete:       p.Status.CanTransitionTo(entity.StatusDeleted),
		CanResubmit:     canResubmit(p.Status),
	}
	if p.DiscountPrice.Valid {
		discount := p.DiscountPrice.Decimal
		item.DiscountPrice = &discount
	}
	if gallery := p.Gallery(); len(gallery) > 0 {
		item.Image = gallery[0]
	}
	return item
}

// canEdit toda edición devuelve el producto a moderación.
func canEdit(st entity.ProductStatus) bool {
	return st.CanTransitionTo(entity.StatusPendingApproval)
}

func canResubmit(st entity.ProductStatus) bool {
	return st == entity.StatusDeleted || st == entity.StatusRejected
}

// Submit valida el formulario y lo envía a moderación.
func (s *Service) Submit(ctx context.Context, clientID entity.ID, req dto.SubmitProductRequest) (*dto.SubmitProductResponse, error) {
	if clientID.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	sub, err := s.validate(ctx, clientID, req)
	if err != nil {
		return nil, err
	}
	id, err := s.products.Submit(ctx, sub)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.TypeProductSubmitted, clientID, id, sub.Name, entity.StatusPendingApproval)
	return &dto.SubmitProductResponse{ID: id, Status: entity.StatusPendingApproval}, nil
}

// Update edita un producto propio y lo devuelve a moderación.
func (s *Service) Update(ctx context.Context, clientID, productID entity.ID, req dto.SubmitProductRequest) (*dto.SubmitProductResponse, error) {
	current, err := s.owned(ctx, clientID, productID)
	if err != nil {
		return nil, err
	}
	if !canEdit(current.Status) {
		return nil, fmt.Errorf("editar producto en estado %s: %w", current.Status, domain.ErrInvalidTransition)
	}
	sub, err := s.validate(ctx, clientID, req)
	if err != nil {
		return nil, err
	}
	sub.ProductID = productID
	if err := s.products.UpdateSubmit(ctx, sub); err != nil {
		return nil, err
	}
	s.publish(ctx, event.TypeProductSubmitted, clientID, productID, sub.Name, entity.StatusPendingApproval)
	return &dto.SubmitProductResponse{ID: productID, Status: entity.StatusPendingApproval}, nil
}

// Resubmit reenvía a moderación un producto eliminado o rechazado con sus datos actuales.
func (s *Service) Resubmit(ctx context.Context, clientID, productID entity.ID) (*dto.SubmitProductResponse, error) {
	current, err := s.owned(ctx, clientID, productID)
	if err != nil {
		return nil, err
	}
	if !canResubmit(current.Status) {
		return nil, fmt.Errorf("reenviar producto en estado %s: %w", current.Status, domain.ErrInvalidTransition)
	}
	if err := s.products.UpdateSubmit(ctx, submissionFrom(*current, clientID)); err != nil {
		return nil, err
	}
	s.publish(ctx, event.TypeProductResubmitted, clientID, productID, current.Name, entity.StatusPendingApproval)
	return &dto.SubmitProductResponse{ID: productID, Status: entity.StatusPendingApproval}, nil
}

// Delete elimina un producto propio. Un producto ya eliminado no se puede volver a eliminar.
func (s *Service) Delete(ctx context.Context, clientID, productID entity.ID) error {
	current, err := s.owned(ctx, clientID, productID)
	if err != nil {
		return err
	}
	if !current.Status.CanTransitionTo(entity.StatusDeleted) {
		return fmt.Errorf("eliminar producto en estado %s: %w", current.Status, domain.ErrInvalidTransition)
	}
	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}
	s.publish(ctx, event.TypeProductDeleted, clientID, productID, current.Name, entity.StatusDeleted)
	return nil
}

// owned busca el producto entre los del vendedor; si no es suyo responde como inexistente.
func (s *Service) owned(ctx context.Context, clientID, productID entity.ID) (*entity.SellerProduct, error) {
	if clientID.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if productID.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	products, err := s.products.MyProducts(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Service) validate(ctx context.Context, clientID entity.ID, req dto.SubmitProductRequest) (entity.ProductSubmission, error) {
	view, err := s.catalog.View(ctx)
	if err != nil {
		return entity.ProductSubmission{}, err
	}
	return buildSubmission(clientID, req, view.Tree, view.Snapshot.Colors)
}

func (s *Service) publish(ctx context.Context, typ string, clientID, productID entity.ID, name string, status entity.ProductStatus) {
	if s.events == nil {
		return
	}
	ev := event.New(typ, event.ProductModeration{
		ProductID: string(productID),
		ClientID:  string(clientID),
		Name:      name,
		Status:    string(status),
	})
	if err := s.events.Publish(ctx, string(clientID), ev); err != nil {
		s.log.Warn().Err(err).Str("type", typ).Msg("no se pudo publicar el evento")
	}
}
