// Package variant resuelve la selección de atributos de un producto (color × talla, etc.)
// a una combinación concreta con precio y stock, y calcula qué valores siguen disponibles.
package variant

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// Mode origen de los atributos del resolver.
type Mode string

const (
	// ModeCombinations combinaciones autoritativas con precio/stock por SKU.
	ModeCombinations Mode = "combinations"
	// ModeIndependent listas de valores por dimensión sin SKUs cruzados.
	ModeIndependent Mode = "independent"
	// ModeSimple producto sin dimensiones.
	ModeSimple Mode = "simple"
)

// Offer precio y stock efectivos de la selección actual.
type Offer struct {
	Price           decimal.Decimal
	OriginalPrice   decimal.Decimal
	WholesalePrice  decimal.Decimal
	InStock         bool
	Quantity        *int
	HasDiscount     bool
	DiscountPercent int
	// Purchasable es false cuando hay combinaciones pero ninguna coincide con la selección.
	Purchasable bool
}

// Resolver estado de selección de un producto. Se construye una vez con los datos ya cargados
// y se muta solo con Select; no es seguro para uso concurrente.
type Resolver struct {
	product  entity.Product
	mode     Mode
	attrs    []entity.VariantAttribute
	attrIdx  map[string]int
	combos   []entity.VariantCombination
	byKey    map[string]int
	selected map[string]entity.ID
	active   int // -1 = sin combinación
}

// New inicializa el resolver:
//   - con combinaciones: dimensiones = unión de valores vistos en las combinaciones (orden de aparición),
//     selección = la primera combinación;
//   - sin combinaciones pero con atributos: selección = primer valor de cada dimensión;
//   - sin nada: producto simple.
//
// attributes aporta nombres y orden de las dimensiones; las dimensiones que solo aparecen en
// combinaciones se agregan después, ordenadas por código.
func New(product entity.Product, attributes []entity.VariantAttribute, combinations []entity.VariantCombination) *Resolver {
	r := &Resolver{
		product:  product,
		attrIdx:  make(map[string]int),
		selected: make(map[string]entity.ID),
		active:   -1,
	}
	switch {
	case len(combinations) > 0:
		r.initCombinations(attributes, combinations)
	case hasValues(attributes):
		r.initIndependent(attributes)
	default:
		r.mode = ModeSimple
	}
	return r
}

func hasValues(attributes []entity.VariantAttribute) bool {
	for _, a := range attributes {
		if a.Code != "" && len(a.Values) > 0 {
			return true
		}
	}
	return false
}

func (r *Resolver) addDimension(code, name string) int {
	if i, ok := r.attrIdx[code]; ok {
		if r.attrs[i].Name == "" {
			r.attrs[i].Name = name
		}
		return i
	}
	r.attrs = append(r.attrs, entity.VariantAttribute{Code: code, Name: name})
	r.attrIdx[code] = len(r.attrs) - 1
	return len(r.attrs) - 1
}

func (r *Resolver) initCombinations(attributes []entity.VariantAttribute, combinations []entity.VariantCombination) {
	r.mode = ModeCombinations

	for _, a := range attributes {
		if a.Code != "" {
			r.addDimension(a.Code, a.Name)
		}
	}
	var extra []string
	seenExtra := make(map[string]struct{})
	for _, c := range combinations {
		for code := range c.Attributes {
			if _, known := r.attrIdx[code]; known {
				continue
			}
			if _, ok := seenExtra[code]; !ok {
				seenExtra[code] = struct{}{}
				extra = append(extra, code)
			}
		}
	}
	sort.Strings(extra)
	for _, code := range extra {
		r.addDimension(code, "")
	}

	// Valores: unión en orden de aparición a través de las combinaciones.
	seenValue := make(map[string]struct{})
	for _, c := range combinations {
		for _, a := range r.attrs {
			v, ok := c.Attributes[a.Code]
			if !ok {
				continue
			}
			k := a.Code + "\x00" + string(v.ValueID)
			if _, dup := seenValue[k]; dup {
				continue
			}
			seenValue[k] = struct{}{}
			i := r.attrIdx[a.Code]
			r.attrs[i].Values = append(r.attrs[i].Values, v)
		}
	}
	// Dimensiones declaradas que ninguna combinación usa no son seleccionables.
	kept := r.attrs[:0]
	for _, a := range r.attrs {
		if len(a.Values) > 0 {
			kept = append(kept, a)
		}
	}
	r.attrs = kept
	r.reindex()

	r.combos = combinations
	r.byKey = make(map[string]int, len(combinations))
	for i, c := range combinations {
		k := r.keyOf(func(code string) (entity.ID, bool) {
			v, ok := c.Attributes[code]
			return v.ValueID, ok
		})
		if _, dup := r.byKey[k]; dup {
			continue // SKU duplicado en el payload: gana el primero
		}
		r.byKey[k] = i
	}

	for code, v := range combinations[0].Attributes {
		if _, ok := r.attrIdx[code]; ok {
			r.selected[code] = v.ValueID
		}
	}
	r.resolve()
	if r.active < 0 {
		// La primera combinación no cubre todas las dimensiones: sigue siendo la inicial.
		r.active = 0
	}
}

func (r *Resolver) initIndependent(attributes []entity.VariantAttribute) {
	r.mode = ModeIndependent
	for _, a := range attributes {
		if a.Code == "" || len(a.Values) == 0 {
			continue
		}
		if _, dup := r.attrIdx[a.Code]; dup {
			continue
		}
		values := make([]entity.VariantValue, 0, len(a.Values))
		seen := make(map[entity.ID]struct{}, len(a.Values))
		for _, v := range a.Values {
			if _, ok := seen[v.ValueID]; ok {
				continue
			}
			seen[v.ValueID] = struct{}{}
			values = append(values, v)
		}
		r.attrs = append(r.attrs, entity.VariantAttribute{Code: a.Code, Name: a.Name, Values: values})
		r.attrIdx[a.Code] = len(r.attrs) - 1
		r.selected[a.Code] = values[0].ValueID
	}
}

func (r *Resolver) reindex() {
	r.attrIdx = make(map[string]int, len(r.attrs))
	for i, a := range r.attrs {
		r.attrIdx[a.Code] = i
	}
}

// keyOf clave compuesta: "code=valueID" por dimensión conocida, en orden de código.
// Una dimensión ausente deja el valor vacío y nunca coincide con una selección completa.
func (r *Resolver) keyOf(lookup func(code string) (entity.ID, bool)) string {
	codes := make([]string, 0, len(r.attrs))
	for _, a := range r.attrs {
		codes = append(codes, a.Code)
	}
	sort.Strings(codes)
	var b strings.Builder
	for _, code := range codes {
		v, _ := lookup(code)
		b.WriteString(code)
		b.WriteByte('=')
		b.WriteString(string(v))
		b.WriteByte('\x1f')
	}
	return b.String()
}

func (r *Resolver) resolve() {
	r.active = -1
	if r.mode != ModeCombinations || len(r.selected) != len(r.attrs) {
		return
	}
	k := r.keyOf(func(code string) (entity.ID, bool) {
		v, ok := r.selected[code]
		return v, ok
	})
	if i, ok := r.byKey[k]; ok {
		r.active = i
	}
}

// Mode devuelve el origen de los atributos.
func (r *Resolver) Mode() Mode { return r.mode }

// Attributes dimensiones seleccionables con sus valores.
func (r *Resolver) Attributes() []entity.VariantAttribute {
	out := make([]entity.VariantAttribute, len(r.attrs))
	copy(out, r.attrs)
	return out
}

// Selected copia de la selección actual (código → valueID).
func (r *Resolver) Selected() map[string]entity.ID {
	out := make(map[string]entity.ID, len(r.selected))
	for k, v := range r.selected {
		out[k] = v
	}
	return out
}

// Active combinación que corresponde a la selección actual.
func (r *Resolver) Active() (entity.VariantCombination, bool) {
	if r.active < 0 {
		return entity.VariantCombination{}, false
	}
	return r.combos[r.active], true
}

// Select cambia el valor de una dimensión y recalcula la combinación activa.
// Un código desconocido no cambia nada y devuelve false. Un valor no disponible, o que
// la dimensión no ofrece, queda seleccionado y deja la combinación activa sin definir.
func (r *Resolver) Select(code string, valueID entity.ID) bool {
	if _, ok := r.attrIdx[code]; !ok {
		return false
	}
	r.selected[code] = valueID
	r.resolve()
	return true
}

// IsAvailable indica si existe alguna combinación con code=valueID que coincida con el resto
// de la selección actual. Sin combinaciones siempre es true para dimensiones conocidas.
func (r *Resolver) IsAvailable(code string, valueID entity.ID) bool {
	if _, ok := r.attrIdx[code]; !ok {
		return false
	}
	if r.mode != ModeCombinations {
		return true
	}
	for _, c := range r.combos {
		if v, ok := c.Attributes[code]; !ok || v.ValueID != valueID {
			continue
		}
		if r.matchesOthers(c, code) {
			return true
		}
	}
	return false
}

func (r *Resolver) matchesOthers(c entity.VariantCombination, except string) bool {
	for other, want := range r.selected {
		if other == except {
			continue
		}
		v, ok := c.Attributes[other]
		if !ok || v.ValueID != want {
			return false
		}
	}
	return true
}

// EffectivePrice precio y stock de la combinación activa o, si no la hay, del propio producto.
// Con combinaciones y sin coincidencia la oferta sale con Purchasable=false y sin stock.
func (r *Resolver) EffectivePrice() Offer {
	if c, ok := r.Active(); ok {
		o := Offer{
			Price:          c.Price,
			OriginalPrice:  c.Price,
			WholesalePrice: decimal.Zero,
			InStock:        c.InStock,
			Quantity:       c.Quantity,
			Purchasable:    true,
		}
		if c.OriginalPrice.Valid {
			o.OriginalPrice = c.OriginalPrice.Decimal
		}
		switch {
		case c.WholesalePrice.Valid:
			o.WholesalePrice = c.WholesalePrice.Decimal
		case r.product.WholesalePrice.Valid:
			o.WholesalePrice = r.product.WholesalePrice.Decimal
		}
		if o.OriginalPrice.GreaterThan(o.Price) && o.OriginalPrice.IsPositive() {
			o.HasDiscount = true
			o.DiscountPercent = percentOff(o.Price, o.OriginalPrice)
		}
		return o
	}

	p := r.product
	o := Offer{
		Price:           p.DisplayPrice(),
		OriginalPrice:   p.RetailPrice,
		WholesalePrice:  decimal.Zero,
		InStock:         p.InStock(),
		Quantity:        p.StockQuantity,
		HasDiscount:     p.HasDiscount(),
		DiscountPercent: p.DiscountPercent(),
		Purchasable:     true,
	}
	if p.WholesalePrice.Valid {
		o.WholesalePrice = p.WholesalePrice.Decimal
	}
	if r.mode == ModeCombinations {
		zero := 0
		o.InStock = false
		o.Quantity = &zero
		o.Purchasable = false
	}
	return o
}

func percentOff(price, original decimal.Decimal) int {
	ratio := price.Div(original)
	return int(decimal.NewFromInt(1).Sub(ratio).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
