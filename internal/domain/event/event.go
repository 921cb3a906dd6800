// Package event define los eventos que la tienda publica hacia el bus.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de evento.
const (
	TypeProductViewed      = "product.viewed"
	TypeProductSubmitted   = "product.submitted"
	TypeProductResubmitted = "product.resubmitted"
	TypeProductDeleted     = "product.deleted"
	TypeCatalogRefreshed   = "catalog.refreshed"
	TypeClientLoggedIn     = "client.logged_in"
)

// Envelope sobre común de todos los eventos.
type Envelope struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// New arma un sobre con ID y hora actuales.
func New(typ string, payload any) Envelope {
	return Envelope{ID: uuid.NewString(), Type: typ, OccurredAt: time.Now().UTC(), Payload: payload}
}

// ProductViewed vista de ficha de producto.
type ProductViewed struct {
	ProductID  string `json:"product_id"`
	CategoryID string `json:"category_id,omitempty"`
	ClientID   string `json:"client_id,omitempty"`
}

// ProductModeration envío, reenvío o borrado de un producto del vendedor.
type ProductModeration struct {
	ProductID string `json:"product_id,omitempty"`
	ClientID  string `json:"client_id"`
	Name      string `json:"name,omitempty"`
	Status    string `json:"status"`
}

// CatalogRefreshed refresco del snapshot del catálogo.
type CatalogRefreshed struct {
	Categories int   `json:"categories"`
	Products   int   `json:"products"`
	Colors     int   `json:"colors"`
	ElapsedMS  int64 `json:"elapsed_ms"`
}

// ClientLoggedIn inicio de sesión de un cliente.
type ClientLoggedIn struct {
	ClientID string `json:"client_id"`
	Username string `json:"username"`
}
