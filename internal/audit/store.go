package audit

import "context"

// Store persists the audit trail. Events for one reader come back oldest
// first.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByReader(ctx context.Context, readerID string) ([]Event, error)
}
