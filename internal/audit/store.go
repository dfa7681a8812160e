package audit

import "context"

// Store persists the event stream. Append must preserve arrival order; List
// returns the full stream oldest first.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
	ListByAction(ctx context.Context, action Action) ([]Event, error)
}
