package seller

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/catalog"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/pkg/money"
)

// ColorOptionName nombre de la opción de variante generada a partir de los colores elegidos.
const ColorOptionName = "Цвет"

// ValidationError campo del formulario que no pasa la validación. Envuelve domain.ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

func invalid(field, msg string) error { return &ValidationError{Field: field, Message: msg} }

// AsValidationError extrae el error de validación, si lo hay.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// buildSubmission valida el formulario y lo normaliza al envío que espera el backend.
func buildSubmission(clientID entity.ID, req dto.SubmitProductRequest, tree *catalog.Tree, palette []entity.Color) (entity.ProductSubmission, error) {
	s := entity.ProductSubmission{
		ClientID:    clientID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		CategoryID:  req.CategoryID,
		SKU:         strings.TrimSpace(req.SKU),
	}
	if s.Name == "" {
		return s, invalid("name", "el nombre es obligatorio")
	}

	switch {
	case s.CategoryID.IsZero():
		return s, invalid("category_id", "elige una categoría")
	case !tree.Contains(s.CategoryID):
		return s, invalid("category_id", "la categoría no existe")
	case tree.HasChildren(s.CategoryID):
		return s, invalid("category_id", "elige una subcategoría")
	}

	retail, err := money.Parse(string(req.RetailPrice))
	if err != nil {
		return s, invalid("retail_price", err.Error())
	}
	s.RetailPrice = retail

	if req.DiscountEnabled {
		discount, err := money.Parse(string(req.DiscountPrice))
		if err != nil {
			return s, invalid("discount_price", err.Error())
		}
		if !discount.LessThan(retail) {
			return s, invalid("discount_price", "el precio con descuento debe ser menor que el precio de venta")
		}
		s.DiscountPrice = decimal.NewNullDecimal(discount)
	}

	if strings.TrimSpace(string(req.WholesalePrice)) != "" {
		wholesale, err := money.Parse(string(req.WholesalePrice))
		if err != nil {
			return s, invalid("wholesale_price", err.Error())
		}
		s.WholesalePrice = decimal.NewNullDecimal(wholesale)
	}

	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return s, invalid("stock_quantity", "el stock no puede ser negativo")
		}
		s.StockQuantity = *req.StockQuantity
	}

	s.Characteristics = cleanCharacteristics(req.Characteristics)
	s.ImageURLs = cleanStrings(req.ImageURLs)
	s.VariantOptions = cleanOptions(req.VariantOptions)
	s.ColorIDs, s.VariantOptions = withColors(req.ColorIDs, s.VariantOptions, palette)
	return s, nil
}

func cleanCharacteristics(in []entity.Characteristic) []entity.Characteristic {
	out := make([]entity.Characteristic, 0, len(in))
	for _, c := range in {
		name, value := strings.TrimSpace(c.Name), strings.TrimSpace(c.Value)
		if name == "" || value == "" {
			continue
		}
		out = append(out, entity.Characteristic{Name: name, Value: value})
	}
	return out
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// cleanOptions descarta las opciones sin nombre o sin valores y la de color escrita a mano.
func cleanOptions(in []dto.VariantOptionInput) []entity.VariantOption {
	out := make([]entity.VariantOption, 0, len(in))
	for _, o := range in {
		name := strings.TrimSpace(o.Name)
		values := cleanStrings(o.Values)
		if name == "" || len(values) == 0 || strings.EqualFold(name, ColorOptionName) {
			continue
		}
		out = append(out, entity.VariantOption{Name: name, Values: values})
	}
	return out
}

// withColors resuelve los colores en la paleta (los desconocidos se ignoran) y agrega la opción de color.
func withColors(ids []entity.ID, options []entity.VariantOption, palette []entity.Color) ([]entity.ID, []entity.VariantOption) {
	byID := make(map[entity.ID]entity.Color, len(palette))
	for _, c := range palette {
		byID[c.ID] = c
	}
	var (
		keep   = make([]entity.ID, 0, len(ids))
		colors []entity.Color
		names  []string
		seen   = make(map[entity.ID]struct{}, len(ids))
	)
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		keep = append(keep, id)
		colors = append(colors, c)
		names = append(names, c.Name)
	}
	if len(colors) > 0 {
		options = append(options, entity.VariantOption{Name: ColorOptionName, Values: names, Colors: colors})
	}
	return keep, options
}

// submissionFrom reconstruye el envío de un producto existente para reenviarlo a moderación.
func submissionFrom(p entity.SellerProduct, clientID entity.ID) entity.ProductSubmission {
	stock := 0
	if p.StockQuantity != nil {
		stock = *p.StockQuantity
	}
	return entity.ProductSubmission{
		ProductID:       p.ID,
		ClientID:        clientID,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		RetailPrice:     p.RetailPrice,
		DiscountPrice:   p.DiscountPrice,
		WholesalePrice:  p.WholesalePrice,
		StockQuantity:   stock,
		SKU:             p.SKU,
		Characteristics: p.Characteristics,
		ImageURLs:       p.Gallery(),
		ColorIDs:        p.ColorIDs,
		VariantOptions:  p.VariantOptions,
	}
}
