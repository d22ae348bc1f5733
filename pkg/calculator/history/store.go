// Package history stores evaluated expressions per calculator session.
package history

import (
	"context"
	"errors"
	"time"
)

// Store persists session history.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append records an entry for a session.
	// A zero Timestamp is replaced with the current time.
	Append(ctx context.Context, sessionID string, e Entry) error

	// Recent returns up to limit entries for a session, most recent first.
	// A limit of zero or less returns every entry.
	// Returns an empty slice (not error) if the session has no entries.
	Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error)

	// Clear removes all entries for a session.
	// Returns nil if the session has no entries.
	Clear(ctx context.Context, sessionID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Entry is one successful evaluation.
type Entry struct {
	// Expression is the expression in display notation.
	Expression string
	// Result is the formatted result.
	Result string
	// Value is the unformatted result.
	Value     float64
	Timestamp time.Time
}

// String renders the entry as a history line.
func (e Entry) String() string {
	return e.Expression + " = " + e.Result
}

// ErrStoreClosed indicates the store has been closed.
var ErrStoreClosed = errors.New("history store closed")

// stamp fills in a missing timestamp.
func stamp(e Entry) Entry {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.Timestamp = e.Timestamp.UTC()
	return e
}
