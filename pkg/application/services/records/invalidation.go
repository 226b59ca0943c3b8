package records

import (
	"context"

	"github.com/vsinha/supplycover/pkg/infrastructure/events"
)

// Clearer drops every memoized projection
type Clearer interface {
	Clear(ctx context.Context) error
}

// InvalidateOnChange clears cache whenever a record is admitted, replaced or deleted
func InvalidateOnChange(store events.EventStore, cache Clearer) error {
	return store.Subscribe(events.ChangeEvents, events.HandlerFunc{
		Types: events.ChangeEvents,
		Fn: func(events.Event) error {
			return cache.Clear(context.Background())
		},
	})
}
