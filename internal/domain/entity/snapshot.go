package entity

import "time"

// CatalogSnapshot copia completa del catálogo público. Se reemplaza entera en cada refresco.
type CatalogSnapshot struct {
	Categories []Category `json:"categories"` // planas
	Products   []Product  `json:"products"`
	Colors     []Color    `json:"colors"`
	FetchedAt  time.Time  `json:"fetched_at"`
}

// Age antigüedad del snapshot respecto de now.
func (s *CatalogSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}
