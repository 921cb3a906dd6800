// Package marketplace es el adaptador HTTP del backend REST del marketplace. Todo lo que sale
// de aquí ya está normalizado al modelo de entity: el resto del servicio no conoce los nombres
// de campo alternativos del backend.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/pkg/config"
	"github.com/renexpress/storefront-api/pkg/logger"
)

// APIError respuesta no-2xx del backend. Unwrap devuelve el error de dominio equivalente.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("marketplace: HTTP %d", e.Status)
	}
	return fmt.Sprintf("marketplace: HTTP %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

// Client cliente del backend del marketplace sobre net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxBody    int64
	log        *logger.Logger
}

// NewClient construye el cliente. Timeout y tamaño máximo de respuesta salen de la configuración.
func NewClient(cfg config.MarketplaceConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 16 << 20
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxBody:    maxBody,
		log:        log.Component("marketplace"),
	}
}

// get hace GET y deja el cuerpo crudo en raw.
func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// post envía body como JSON.
func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marketplace: serializar request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("marketplace: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("marketplace: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("marketplace: llamada HTTP fallida: %w", errors.Join(domain.ErrUpstream, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, fmt.Errorf("marketplace: leer respuesta: %w", err)
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, raw)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage("null"), nil
	}
	return raw, nil
}

func newAPIError(status int, raw []byte) *APIError {
	e := &APIError{Status: status, Message: errorMessage(raw)}
	switch status {
	case http.StatusNotFound:
		e.kind = domain.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		e.kind = domain.ErrUnauthorized
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		e.kind = domain.ErrInvalidInput
	case http.StatusConflict:
		e.kind = domain.ErrConflict
	default:
		e.kind = domain.ErrUpstream
	}
	return e
}

// errorMessage extrae message|error|detail del cuerpo; si no es JSON devuelve el texto recortado.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, s := range []string{body.Message, body.Error, body.Detail} {
			if s != "" {
				return s
			}
		}
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
