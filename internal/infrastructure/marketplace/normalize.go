package marketplace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// object payload JSON de un objeto con nombres de campo heterogéneos.
type object map[string]json.RawMessage

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null")) || bytes.Equal(t, []byte(`""`))
}

// first devuelve el primer campo presente y no nulo entre keys.
func (o object) first(keys ...string) json.RawMessage {
	for _, k := range keys {
		if v, ok := o[k]; ok && !isNull(v) {
			return v
		}
	}
	return nil
}

func (o object) str(keys ...string) string  { return looseString(o.first(keys...)) }
func (o object) id(keys ...string) entity.ID { return looseID(o.first(keys...)) }
func (o object) num(keys ...string) (decimal.Decimal, bool) {
	return looseDecimal(o.first(keys...))
}
func (o object) integer(keys ...string) *int { return looseInt(o.first(keys...)) }
func (o object) time(keys ...string) time.Time {
	return looseTime(o.first(keys...))
}

func (o object) nullDecimal(keys ...string) decimal.NullDecimal {
	d, ok := o.num(keys...)
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func (o object) boolean(keys ...string) (bool, bool) {
	raw := o.first(keys...)
	if raw == nil {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}
	s := strings.ToLower(looseString(raw))
	switch s {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

func decodeObject(raw json.RawMessage) (object, error) {
	if isNull(raw) {
		return object{}, nil
	}
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("marketplace: se esperaba un objeto: %w", err)
	}
	return o, nil
}

// unwrapList acepta un array o un objeto que lo envuelve bajo alguna de keys (por defecto "results").
func unwrapList(raw json.RawMessage, keys ...string) ([]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return nil, nil
	}
	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("marketplace: lista inválida: %w", err)
		}
		return items, nil
	}
	o, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		keys = []string{"results"}
	}
	if inner := o.first(keys...); inner != nil {
		return unwrapList(inner)
	}
	return nil, nil
}

func looseString(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}

// looseID acepta número, string u objeto con "id".
func looseID(raw json.RawMessage) entity.ID {
	if isNull(raw) {
		return ""
	}
	t := bytes.TrimSpace(raw)
	if t[0] == '{' {
		o, err := decodeObject(t)
		if err != nil {
			return ""
		}
		return o.id("id", "pk")
	}
	var id entity.ID
	if err := json.Unmarshal(t, &id); err != nil {
		return ""
	}
	return id
}

// looseDecimal acepta 12.5, "12.50" y "12,50"; cualquier otra cosa es ausencia de valor.
func looseDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	if isNull(raw) {
		return decimal.Zero, false
	}
	s := looseString(raw)
	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func looseInt(raw json.RawMessage) *int {
	d, ok := looseDecimal(raw)
	if !ok {
		return nil
	}
	n := int(d.IntPart())
	return &n
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func looseTime(raw json.RawMessage) time.Time {
	s := looseString(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

func normalizeCategories(raw json.RawMessage) ([]entity.Category, error) {
	items, err := unwrapList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Category, 0, len(items))
	for _, item := range items {
		c, err := normalizeCategory(item)
		if err != nil {
			return nil, err
		}
		if c.ID.IsZero() {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func normalizeCategory(raw json.RawMessage) (entity.Category, error) {
	o, err := decodeObject(raw)
	if err != nil {
		return entity.Category{}, err
	}
	c := entity.Category{
		ID:       o.id("id"),
		Name:     o.str("name", "title"),
		ParentID: o.id("parent_id", "parent"),
		Slug:     o.str("slug"),
		ImageURL: o.str("image_url", "image", "icon"),
	}
	if kids := o.first("children", "subcategories"); kids != nil {
		children, err := normalizeCategories(kids)
		if err != nil {
			return entity.Category{}, err
		}
		c.Children = children
	}
	return c, nil
}

func normalizeColors(raw json.RawMessage) ([]entity.Color, error) {
	items, err := unwrapList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Color, 0, len(items))
	for _, item := range items {
		o, err := decodeObject(item)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.Color{
			ID:      o.id("id"),
			Name:    o.str("name"),
			HexCode: o.str("hex_code", "color_code", "hex"),
		})
	}
	return out, nil
}

// imageURL acepta "url" o {image_url|image|url}.
func imageURL(raw json.RawMessage) string {
	t := bytes.TrimSpace(raw)
	if len(t) > 0 && t[0] == '{' {
		o, err := decodeObject(t)
		if err != nil {
			return ""
		}
		return o.str("image_url", "image", "url")
	}
	return looseString(raw)
}

func normalizeProducts(raw json.RawMessage, keys ...string) ([]entity.Product, error) {
	items, err := unwrapList(raw, keys...)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(items))
	for _, item := range items {
		o, err := decodeObject(item)
		if err != nil {
			return nil, err
		}
		out = append(out, productFromObject(o))
	}
	return out, nil
}

func normalizeProduct(raw json.RawMessage) (*entity.Product, error) {
	t := bytes.TrimSpace(raw)
	o, err := decodeObject(t)
	if err != nil {
		return nil, err
	}
	// algunos endpoints envuelven la ficha en {"product": {...}}
	if inner := o.first("product"); inner != nil && o.first("id") == nil {
		if o, err = decodeObject(inner); err != nil {
			return nil, err
		}
	}
	p := productFromObject(o)
	return &p, nil
}

func productFromObject(o object) entity.Product {
	p := entity.Product{
		ID:               o.id("id"),
		Name:             o.str("name", "title"),
		Description:      o.str("description"),
		SKU:              o.str("sku"),
		Article:          o.str("article", "vendor_code"),
		CategoryID:       o.id("category_id", "category"),
		CategoryFullPath: o.str("category_full_path", "category_path"),
		DiscountPrice:    o.nullDecimal("discount_price"),
		WholesalePrice:   o.nullDecimal("wholesale_price"),
		StockQuantity:    o.integer("stock_quantity", "quantity"),
		PrimaryImage:     imageURL(o.first("primary_image", "main_image")),
		ReviewsCount:     intOr(o.integer("reviews_count", "review_count"), 0),
		CreatedAt:        o.time("created_at"),
	}
	if d, ok := o.num("retail_price", "price"); ok {
		p.RetailPrice = d
	}
	if d, ok := o.num("rating", "average_rating"); ok {
		p.Rating = d
	}

	if raw := o.first("images", "gallery"); raw != nil {
		if items, err := unwrapList(raw); err == nil {
			for _, item := range items {
				if u := imageURL(item); u != "" {
					p.Images = append(p.Images, u)
				}
			}
		}
	}

	if raw := o.first("colors"); raw != nil {
		if colors, err := normalizeColors(raw); err == nil {
			p.Colors = colors
		}
	}
	if raw := o.first("sizes"); raw != nil {
		if items, err := unwrapList(raw); err == nil {
			for _, item := range items {
				so, err := decodeObject(item)
				if err != nil {
					continue
				}
				p.Sizes = append(p.Sizes, entity.Size{ID: so.id("id"), Name: so.str("name", "value")})
			}
		}
	}

	if raw := o.first("color_ids"); raw != nil {
		if items, err := unwrapList(raw); err == nil {
			for _, item := range items {
				if id := looseID(item); !id.IsZero() {
					p.ColorIDs = append(p.ColorIDs, id)
				}
			}
		}
	}
	if len(p.ColorIDs) == 0 {
		for _, c := range p.Colors {
			if !c.ID.IsZero() {
				p.ColorIDs = append(p.ColorIDs, c.ID)
			}
		}
	}
	return p
}

// ── Variantes y reseñas ───────────────────────────────────────────────────────

func normalizeVariantSet(raw json.RawMessage) (entity.VariantSet, error) {
	o, err := decodeObject(raw)
	if err != nil {
		return entity.VariantSet{}, err
	}
	set := entity.VariantSet{}
	set.Success, _ = o.boolean("success")
	set.IsSimple, _ = o.boolean("is_simple")

	items, err := unwrapList(o.first("combinations"))
	if err != nil {
		return entity.VariantSet{}, err
	}
	for _, item := range items {
		co, err := decodeObject(item)
		if err != nil {
			return entity.VariantSet{}, err
		}
		c := entity.VariantCombination{
			SKU:            co.str("sku"),
			Attributes:     map[string]entity.VariantValue{},
			OriginalPrice:  co.nullDecimal("original_price"),
			WholesalePrice: co.nullDecimal("wholesale_price"),
			Quantity:       co.integer("quantity", "stock_quantity"),
		}
		if d, ok := co.num("price"); ok {
			c.Price = d
		}
		if inStock, ok := co.boolean("in_stock"); ok {
			c.InStock = inStock
		} else {
			c.InStock = c.Quantity == nil || *c.Quantity > 0
		}

		attrs, err := decodeObject(co.first("attributes"))
		if err != nil {
			return entity.VariantSet{}, err
		}
		for code, rawValue := range attrs {
			vo, err := decodeObject(rawValue)
			if err != nil {
				return entity.VariantSet{}, err
			}
			v := entity.VariantValue{
				ValueID:      vo.id("value_id", "id"),
				Value:        vo.str("value", "name"),
				DisplayValue: vo.str("display_value", "value", "name"),
				HexCode:      vo.str("hex_code", "color_code"),
			}
			c.Attributes[code] = v
		}
		set.Combinations = append(set.Combinations, c)
	}
	return set, nil
}

func normalizeReviews(raw json.RawMessage) ([]entity.Review, error) {
	items, err := unwrapList(raw, "reviews", "results")
	if err != nil {
		return nil, err
	}
	out := make([]entity.Review, 0, len(items))
	for _, item := range items {
		o, err := decodeObject(item)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.Review{
			ID:        o.id("id"),
			Author:    o.str("author", "client_name", "user_name", "user"),
			Rating:    intOr(o.integer("rating"), 0),
			Comment:   o.str("comment", "text"),
			CreatedAt: o.time("created_at"),
		})
	}
	return out, nil
}

// ── Vendedor ──────────────────────────────────────────────────────────────────

func normalizeSellerProducts(raw json.RawMessage) ([]entity.SellerProduct, error) {
	items, err := unwrapList(raw, "products", "results")
	if err != nil {
		return nil, err
	}
	out := make([]entity.SellerProduct, 0, len(items))
	for _, item := range items {
		o, err := decodeObject(item)
		if err != nil {
			return nil, err
		}
		sp := entity.SellerProduct{
			Product:         productFromObject(o),
			Status:          entity.ProductStatus(strings.ToLower(o.str("status", "moderation_status"))),
			RejectionReason: o.str("rejection_reason", "moderation_comment"),
			ViewsCount:      intOr(o.integer("views_count", "views"), 0),
			SalesCount:      intOr(o.integer("sales_count", "sales"), 0),
			UpdatedAt:       o.time("updated_at"),
		}
		if !sp.Status.IsValid() {
			sp.Status = entity.StatusPendingApproval
		}
		sp.Characteristics = normalizeCharacteristics(o.first("characteristics_list", "characteristics", "characteristics_data"))
		if raw := o.first("variant_options"); raw != nil {
			_ = json.Unmarshal(raw, &sp.VariantOptions)
		}
		out = append(out, sp)
	}
	return out, nil
}

// normalizeCharacteristics acepta [{name,value}] o {"nombre": "valor"}.
func normalizeCharacteristics(raw json.RawMessage) []entity.Characteristic {
	if isNull(raw) {
		return nil
	}
	var list []entity.Characteristic
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err == nil {
		for k, v := range m {
			list = append(list, entity.Characteristic{Name: k, Value: v})
		}
		return list
	}
	return nil
}

func normalizeStats(raw json.RawMessage) (*entity.SellerStats, error) {
	root, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	o := root
	if inner := root.first("statistics", "stats"); inner != nil {
		if o, err = decodeObject(inner); err != nil {
			return nil, err
		}
	}
	s := &entity.SellerStats{
		TotalSales:      intOr(o.integer("total_sales"), 0),
		TotalViews:      intOr(o.integer("total_views"), 0),
		TotalOrders:     intOr(o.integer("total_orders"), 0),
		PendingOrders:   intOr(o.integer("pending_orders"), 0),
		CompletedOrders: intOr(o.integer("completed_orders"), 0),
	}
	s.TotalRevenue, _ = o.num("total_revenue")
	s.TotalProfit, _ = o.num("total_profit")
	s.AverageRating, _ = o.num("average_rating")

	if items, err := unwrapList(o.first("top_products")); err == nil {
		for _, item := range items {
			to, err := decodeObject(item)
			if err != nil {
				continue
			}
			tp := entity.TopProduct{
				ID:    to.id("id", "product_id"),
				Name:  to.str("name", "product_name"),
				Sales: intOr(to.integer("sales_count", "sales"), 0),
				Image: imageURL(to.first("primary_image")),
			}
			tp.Revenue, _ = to.num("revenue", "total_revenue")
			if tp.Image == "" {
				if imgs, err := unwrapList(to.first("images")); err == nil && len(imgs) > 0 {
					tp.Image = imageURL(imgs[0])
				}
			}
			s.TopProducts = append(s.TopProducts, tp)
		}
	}
	if items, err := unwrapList(o.first("sales_by_month")); err == nil {
		for _, item := range items {
			mo, err := decodeObject(item)
			if err != nil {
				continue
			}
			ms := entity.MonthlySales{
				Month: mo.str("month", "period"),
				Sales: intOr(mo.integer("sales", "count", "orders"), 0),
			}
			ms.Revenue, _ = mo.num("revenue", "total")
			s.SalesByMonth = append(s.SalesByMonth, ms)
		}
	}
	if items, err := unwrapList(o.first("recent_orders")); err == nil {
		for _, item := range items {
			ro, err := decodeObject(item)
			if err != nil {
				continue
			}
			order := entity.SellerOrder{
				ID:          ro.id("id", "order_id"),
				ProductName: ro.str("product_name"),
				Status:      strings.ToLower(ro.str("status")),
				CreatedAt:   ro.time("created_at"),
			}
			order.Amount, _ = ro.num("total", "amount")
			if order.ProductName == "" {
				order.ProductName = DefaultOrderProductName
			}
			if order.Status == "" {
				order.Status = "pending"
			}
			s.RecentOrders = append(s.RecentOrders, order)
		}
	}
	return s, nil
}

// DefaultOrderProductName nombre mostrado cuando el pedido no trae producto.
const DefaultOrderProductName = "Товар"

// ── Auth ──────────────────────────────────────────────────────────────────────

func normalizeClient(raw json.RawMessage) *entity.Client {
	o, err := decodeObject(raw)
	if err != nil || len(o) == 0 {
		return nil
	}
	return &entity.Client{
		ID:       o.id("id", "client_id"),
		Username: o.str("username", "login"),
		FullName: o.str("full_name", "name"),
		Phone:    o.str("phone"),
		Email:    o.str("email"),
	}
}
