package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusioneats/pos-engine/pos"
	"github.com/fusioneats/pos-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	creds := pos.Credentials{Staff: "staff123", Admin: "admin123"}
	require.NoError(t, store.Save(ctx, pos.KeySettings, creds))

	var loaded pos.Credentials
	ok, err := store.Load(ctx, pos.KeySettings, &loaded)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, creds, loaded)
}

func TestStore_MissingKeyReportsFalse(t *testing.T) {
	store := newTestStore(t)

	var out pos.Credentials
	ok, err := store.Load(context.Background(), "never-saved", &out)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_MalformedValueTreatedAsMissing(t *testing.T) {
	// A snapshot that no longer decodes into the caller's type must behave
	// like a missing key, not an error.

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, pos.KeySettings, []string{"not", "credentials"}))

	var out pos.Credentials
	ok, err := store.Load(ctx, pos.KeySettings, &out)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, pos.KeySettings, pos.Credentials{Staff: "one", Admin: "a"}))
	require.NoError(t, store.Save(ctx, pos.KeySettings, pos.Credentials{Staff: "two", Admin: "b"}))

	var loaded pos.Credentials
	ok, err := store.Load(ctx, pos.KeySettings, &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "two", loaded.Staff)
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, pos.KeyStaff, []pos.Staff{{ID: 1, Name: "Alex"}}))
	require.NoError(t, store.Clear(ctx, pos.KeyStaff))
	require.NoError(t, store.Clear(ctx, pos.KeyStaff)) // absent key is a no-op

	var out []pos.Staff
	ok, err := store.Load(ctx, pos.KeyStaff, &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_BacksAFullSession(t *testing.T) {
	// GIVEN: a session persisting into SQLite
	// WHEN: a new session opens the same database
	// THEN: sales and held orders survive the restart

	store := newTestStore(t)
	ctx := context.Background()

	s := pos.NewSession(ctx, store, pos.Options{})
	_, err := s.AddToOrder(ctx, 15) // Cola, 1.50
	require.NoError(t, err)
	_, err = s.Pay(ctx, pos.PayCash)
	require.NoError(t, err)

	reloaded := pos.NewSession(ctx, store, pos.Options{})
	sales := reloaded.Sales()
	require.Len(t, sales.Transactions, 1)
	assert.Equal(t, "1.50", sales.CumulativeSales.StringFixed(2))
}
