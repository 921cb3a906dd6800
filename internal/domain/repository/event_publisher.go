package repository

import "context"

// EventPublisher publica eventos de la tienda (vistas, envíos a moderación). key agrupa por partición.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}
