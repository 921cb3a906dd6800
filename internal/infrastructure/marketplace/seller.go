package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/repository"
)

var (
	_ repository.SellerProductSource = (*Client)(nil)
	_ repository.SellerStatsSource   = (*Client)(nil)
)

// submitPayload cuerpo de /products/submit/ y /products/update_submit/. Los montos viajan como número.
type submitPayload struct {
	ProductID           entity.ID               `json:"product_id,omitempty"`
	ClientID            entity.ID               `json:"client_id"`
	Name                string                  `json:"name"`
	Description         string                  `json:"description"`
	CharacteristicsData []entity.Characteristic `json:"characteristics_data"`
	Category            entity.ID               `json:"category"`
	RetailPrice         json.Number             `json:"retail_price"`
	DiscountPrice       *json.Number            `json:"discount_price"`
	WholesalePrice      *json.Number            `json:"wholesale_price,omitempty"`
	StockQuantity       int                     `json:"stock_quantity"`
	SKU                 string                  `json:"sku,omitempty"`
	ImageURLs           []string                `json:"image_urls"`
	ColorIDs            []entity.ID             `json:"color_ids,omitempty"`
	VariantOptions      []entity.VariantOption  `json:"variant_options"`
}

func number(d decimal.Decimal) json.Number { return json.Number(d.String()) }

func nullNumber(d decimal.NullDecimal) *json.Number {
	if !d.Valid {
		return nil
	}
	n := number(d.Decimal)
	return &n
}

func newSubmitPayload(s entity.ProductSubmission) submitPayload {
	p := submitPayload{
		ProductID:           s.ProductID,
		ClientID:            s.ClientID,
		Name:                s.Name,
		Description:         s.Description,
		CharacteristicsData: s.Characteristics,
		Category:            s.CategoryID,
		RetailPrice:         number(s.RetailPrice),
		DiscountPrice:       nullNumber(s.DiscountPrice),
		WholesalePrice:      nullNumber(s.WholesalePrice),
		StockQuantity:       s.StockQuantity,
		SKU:                 s.SKU,
		ImageURLs:           s.ImageURLs,
		ColorIDs:            s.ColorIDs,
		VariantOptions:      s.VariantOptions,
	}
	if p.CharacteristicsData == nil {
		p.CharacteristicsData = []entity.Characteristic{}
	}
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	if p.VariantOptions == nil {
		p.VariantOptions = []entity.VariantOption{}
	}
	return p
}

// MyProducts GET /products/my_products/?client_id=.
func (c *Client) MyProducts(ctx context.Context, clientID entity.ID) ([]entity.SellerProduct, error) {
	raw, err := c.get(ctx, "/products/my_products/", url.Values{"client_id": {clientID.String()}})
	if err != nil {
		return nil, err
	}
	products, err := normalizeSellerProducts(raw)
	if err != nil {
		return nil, fmt.Errorf("marketplace: mis productos: %w", err)
	}
	return products, nil
}

// Submit POST /products/submit/. Devuelve el ID asignado si el backend lo informa.
func (c *Client) Submit(ctx context.Context, s entity.ProductSubmission) (entity.ID, error) {
	s.ProductID = ""
	raw, err := c.post(ctx, "/products/submit/", newSubmitPayload(s))
	if err != nil {
		return "", err
	}
	o, err := checkSuccess(raw, domain.ErrInvalidInput)
	if err != nil {
		return "", err
	}
	if id := o.id("product_id", "id"); !id.IsZero() {
		return id, nil
	}
	return looseID(o.first("product")), nil
}

// UpdateSubmit POST /products/update_submit/ con product_id: el producto vuelve a moderación.
func (c *Client) UpdateSubmit(ctx context.Context, s entity.ProductSubmission) error {
	if s.ProductID.IsZero() {
		return fmt.Errorf("marketplace: update_submit sin product_id: %w", domain.ErrInvalidInput)
	}
	raw, err := c.post(ctx, "/products/update_submit/", newSubmitPayload(s))
	if err != nil {
		return err
	}
	_, err = checkSuccess(raw, domain.ErrInvalidInput)
	return err
}

// Delete POST /products/{id}/delete_product/.
func (c *Client) Delete(ctx context.Context, productID entity.ID) error {
	raw, err := c.post(ctx, productPath(productID, "delete_product/"), struct{}{})
	if err != nil {
		return err
	}
	_, err = checkSuccess(raw, domain.ErrInvalidInput)
	return err
}

// MyStats GET /products/my_stats/?client_id=.
func (c *Client) MyStats(ctx context.Context, clientID entity.ID) (*entity.SellerStats, error) {
	raw, err := c.get(ctx, "/products/my_stats/", url.Values{"client_id": {clientID.String()}})
	if err != nil {
		return nil, err
	}
	stats, err := normalizeStats(raw)
	if err != nil {
		return nil, fmt.Errorf("marketplace: estadísticas: %w", err)
	}
	return stats, nil
}

// checkSuccess trata {"success": false, "message": ...} como error aunque el HTTP sea 2xx.
// Un cuerpo sin "success" se acepta.
func checkSuccess(raw json.RawMessage, kind error) (object, error) {
	o, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	if ok, present := o.boolean("success"); present && !ok {
		msg := o.str("message", "error", "detail")
		return nil, &APIError{Status: 200, Message: msg, kind: kind}
	}
	return o, nil
}
