// Package store declares the persistence interface for the application
// document. Services depend on this interface, never on a concrete backend —
// in tests they receive an in-memory fake, in production the jsonfile store.
package store

import (
	"context"

	"github.com/sakif/linkdeck/internal/model"
)

// DocumentStore loads and saves the whole document.
//
// CONSISTENCY CONTRACT:
// Load and Save each hold a cross-process lock for their own duration only.
// A load-mutate-save sequence is therefore NOT one transaction: two writers
// can both load, both mutate, and the second Save wins (last-writer-wins).
// That matches the expected single-writer-at-a-time usage; callers needing
// stricter guarantees would have to widen the lock around the whole sequence.
//
// Load is allowed to repair the in-memory shape (fill missing keys, normalize
// screens, drop expired sessions) but must not write to disk except for the
// first-run bootstrap. Save always overwrites the full document.
type DocumentStore interface {
	Load(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
}
