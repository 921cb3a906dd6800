package usecase

import (
	"context"
	"strings"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/application/storefront"
	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/event"
	"github.com/renexpress/storefront-api/internal/domain/repository"
	"github.com/renexpress/storefront-api/internal/domain/variant"
	"github.com/renexpress/storefront-api/pkg/logger"
	"github.com/renexpress/storefront-api/pkg/money"
)

const (
	maxSimilar       = 10
	defaultColorHex  = "#888"
	colorAttribute   = "color"
	sizeAttribute    = "size"
	colorDisplayName = "Цвет"
	sizeDisplayName  = "Размер"
)

// Choice valor elegido para una dimensión.
type Choice struct {
	Code    string
	ValueID entity.ID
}

// ParseSelection interpreta "color:3,size:5". Los pares mal formados se ignoran.
func ParseSelection(s string) []Choice {
	var out []Choice
	for _, pair := range strings.Split(s, ",") {
		code, value, ok := strings.Cut(strings.TrimSpace(pair), ":")
		code, value = strings.TrimSpace(code), strings.TrimSpace(value)
		if !ok || code == "" || value == "" {
			continue
		}
		out = append(out, Choice{Code: code, ValueID: entity.ID(value)})
	}
	return out
}

// ProductUseCase ficha de producto: variantes, reseñas y productos similares.
type ProductUseCase struct {
	products repository.ProductSource
	catalog  storefront.Provider
	cache    repository.ProductCache
	events   repository.EventPublisher
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso. cache y events pueden ser nil.
func NewProductUseCase(
	products repository.ProductSource,
	catalog storefront.Provider,
	cache repository.ProductCache,
	events repository.EventPublisher,
	log *logger.Logger,
) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{
		products: products,
		catalog:  catalog,
		cache:    cache,
		events:   events,
		log:      log.Component("product"),
	}
}

// Detail arma la ficha completa. viewer es el cliente autenticado, vacío si es anónimo.
func (uc *ProductUseCase) Detail(ctx context.Context, id, viewer entity.ID, sel []Choice) (*dto.ProductDetailDTO, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resolver := uc.resolver(ctx, product, sel)

	reviews, err := uc.products.Reviews(ctx, product.ID)
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", string(product.ID)).Msg("reseñas no disponibles")
		reviews = nil
	}

	uc.publish(ctx, string(product.ID), event.New(event.TypeProductViewed, event.ProductViewed{
		ProductID:  string(product.ID),
		CategoryID: string(product.CategoryID),
		ClientID:   string(viewer),
	}))

	return &dto.ProductDetailDTO{
		ID:               product.ID,
		Name:             product.Name,
		Description:      product.Description,
		SKU:              product.SKU,
		Article:          product.Article,
		CategoryID:       product.CategoryID,
		CategoryFullPath: product.CategoryFullPath,
		Rating:           product.Rating,
		ReviewsCount:     product.ReviewsCount,
		Images:           product.Gallery(),
		Variants:         VariantState(resolver),
		Reviews:          reviewDTOs(reviews),
		Similar:          storefront.Cards(uc.similar(ctx, product)),
	}, nil
}

// Variants estado del selector tras aplicar sel en orden.
func (uc *ProductUseCase) Variants(ctx context.Context, id entity.ID, sel []Choice) (*dto.VariantStateDTO, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	state := VariantState(uc.resolver(ctx, product, sel))
	return &state, nil
}

func (uc *ProductUseCase) load(ctx context.Context, id entity.ID) (*entity.Product, error) {
	if id.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if uc.cache != nil {
		cached, err := uc.cache.GetProducts(ctx, []entity.ID{id})
		if err != nil {
			uc.log.Warn().Err(err).Msg("caché de productos no disponible")
		} else if p, ok := cached[id]; ok {
			return &p, nil
		}
	}
	product, err := uc.products.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.SetProducts(ctx, []entity.Product{*product}); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo cachear el producto")
		}
	}
	return product, nil
}

// resolver usa las combinaciones si son autoritativas; si no, colores y tallas del producto.
func (uc *ProductUseCase) resolver(ctx context.Context, product *entity.Product, sel []Choice) *variant.Resolver {
	var combos []entity.VariantCombination
	set, err := uc.products.Combinations(ctx, product.ID)
	switch {
	case err != nil:
		uc.log.Warn().Err(err).Str("product_id", string(product.ID)).Msg("combinaciones no disponibles")
	case set.Usable():
		combos = set.Combinations
	}

	var attrs []entity.VariantAttribute
	if len(combos) == 0 {
		attrs = independentAttributes(*product)
	}
	r := variant.New(*product, attrs, combos)
	for _, c := range sel {
		r.Select(c.Code, c.ValueID)
	}
	return r
}

func independentAttributes(p entity.Product) []entity.VariantAttribute {
	var attrs []entity.VariantAttribute
	if len(p.Colors) > 0 {
		values := make([]entity.VariantValue, 0, len(p.Colors))
		for _, c := range p.Colors {
			hex := c.HexCode
			if hex == "" {
				hex = defaultColorHex
			}
			values = append(values, entity.VariantValue{ValueID: c.ID, Value: c.Name, DisplayValue: c.Name, HexCode: hex})
		}
		attrs = append(attrs, entity.VariantAttribute{Code: colorAttribute, Name: colorDisplayName, Values: values})
	}
	if len(p.Sizes) > 0 {
		values := make([]entity.VariantValue, 0, len(p.Sizes))
		for _, s := range p.Sizes {
			values = append(values, entity.VariantValue{ValueID: s.ID, Value: s.Name, DisplayValue: s.Name})
		}
		attrs = append(attrs, entity.VariantAttribute{Code: sizeAttribute, Name: sizeDisplayName, Values: values})
	}
	return attrs
}

// VariantState convierte el estado del resolver, marcando disponibilidad y selección por valor.
func VariantState(r *variant.Resolver) dto.VariantStateDTO {
	selected := r.Selected()
	attrs := r.Attributes()
	out := dto.VariantStateDTO{
		Mode:       string(r.Mode()),
		Attributes: make([]dto.VariantAttributeDTO, 0, len(attrs)),
		Selected:   selected,
	}
	for _, a := range attrs {
		values := make([]dto.VariantValueDTO, 0, len(a.Values))
		for _, v := range a.Values {
			values = append(values, dto.VariantValueDTO{
				ValueID:      v.ValueID,
				Value:        v.Value,
				DisplayValue: v.DisplayValue,
				HexCode:      v.HexCode,
				Available:    r.IsAvailable(a.Code, v.ValueID),
				Selected:     selected[a.Code] == v.ValueID,
			})
		}
		out.Attributes = append(out.Attributes, dto.VariantAttributeDTO{Code: a.Code, Name: a.Name, Values: values})
	}
	if c, ok := r.Active(); ok {
		out.SKU = c.SKU
	}
	offer := r.EffectivePrice()
	out.Offer = dto.OfferDTO{
		Price:           offer.Price,
		OriginalPrice:   offer.OriginalPrice,
		WholesalePrice:  offer.WholesalePrice,
		PriceText:       money.Format(offer.Price),
		InStock:         offer.InStock,
		Quantity:        offer.Quantity,
		HasDiscount:     offer.HasDiscount,
		DiscountPercent: offer.DiscountPercent,
		Purchasable:     offer.Purchasable,
	}
	return out
}

// similar productos de la categoría raíz (por nombre en la ruta completa), sin el propio.
// Sin raíz reconocible usa la categoría del producto; sin categoría, cualquier producto.
// Un catálogo no disponible deja la lista vacía.
func (uc *ProductUseCase) similar(ctx context.Context, product *entity.Product) []entity.Product {
	v, err := uc.catalog.View(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("catálogo no disponible para similares")
		return nil
	}
	var scope map[entity.ID]struct{}
	if root, ok := v.Tree.RootOfPath(product.CategoryFullPath); ok {
		scope = v.Tree.DescendantIDs(root.ID)
	} else if !product.CategoryID.IsZero() {
		scope = v.Tree.DescendantIDs(product.CategoryID)
	}
	out := make([]entity.Product, 0, maxSimilar)
	for _, p := range v.Snapshot.Products {
		if p.ID == product.ID {
			continue
		}
		if scope != nil {
			if _, in := scope[p.CategoryID]; !in {
				continue
			}
		}
		out = append(out, p)
		if len(out) == maxSimilar {
			break
		}
	}
	return out
}

func reviewDTOs(reviews []entity.Review) []dto.ReviewDTO {
	out := make([]dto.ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, dto.ReviewDTO{
			ID:        r.ID,
			Author:    r.Author,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

func (uc *ProductUseCase) publish(ctx context.Context, key string, ev event.Envelope) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, key, ev); err != nil {
		uc.log.Warn().Err(err).Str("type", ev.Type).Msg("no se pudo publicar el evento")
	}
}
