package services

import "context"

// NotificationPublisher emits change events for external observers. Payloads
// carry identifiers only: consumers must re-derive balances and pending counts
// from the store, never trust event content. Publishing failures must not
// affect core correctness.
type NotificationPublisher interface {
	Publish(ctx context.Context, event string, payload map[string]string)
}
