/*
store.go - Snapshot persistence interface

PURPOSE:
  Defines the key-value snapshot store the session persists into after every
  mutation. The engine does not care how snapshots are made durable - only
  that a missing or unreadable value falls back to defaults instead of
  surfacing as an error.

CONTRACT:
  - Load returns (false, nil) for a missing key OR a value that fails to
    decode into out. Malformed stored content is treated exactly like a
    missing key; it never raises to the caller.
  - Save overwrites the value under key.
  - Clear removes the key; clearing an absent key is a no-op.

IMPLEMENTATIONS:
  - pos/store: in-memory map (tests, dev)
  - store/sqlite: single-table SQLite store (production)

SEE ALSO:
  - session.go: the only consumer; persistence failures there are logged,
    never rolled back
*/
package pos

import "context"

// Snapshot keys. The names carry over from the system this replaces, so an
// exported localStorage dump can be imported untouched.
const (
	KeyProducts     = "fusion-eats-products"
	KeyHeldOrders   = "fusion-eats-held-orders"
	KeyStaff        = "fusion-eats-staff"
	KeySales        = "fusion-eats-sales"
	KeySettings     = "fusion-eats-settings"
	KeyCurrentOrder = "fusion-eats-current-order"
)

// Store persists JSON snapshots under string keys.
type Store interface {
	// Load decodes the value under key into out. Returns false (with a nil
	// error) when the key is missing or its value is malformed; the caller
	// falls back to defaults.
	Load(ctx context.Context, key string, out any) (bool, error)

	// Save overwrites the value under key with the JSON encoding of value.
	Save(ctx context.Context, key string, value any) error

	// Clear removes the key. Absent keys are a no-op.
	Clear(ctx context.Context, key string) error
}
