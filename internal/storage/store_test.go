package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Load(KeySettings)
	assert.False(t, ok)

	assert.True(t, store.Save(KeySettings, []byte(`{"theme":"horizon"}`)))

	value, ok := store.Load(KeySettings)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"theme":"horizon"}`), value)

	// Overwrite replaces the previous blob.
	assert.True(t, store.Save(KeySettings, []byte(`{}`)))
	value, ok = store.Load(KeySettings)
	require.True(t, ok)
	assert.Equal(t, []byte(`{}`), value)

	assert.NoError(t, store.Close())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	original := []byte("abc")
	store.Save("key", original)

	// Mutating the caller's slice must not reach the stored copy.
	original[0] = 'x'
	value, ok := store.Load("key")
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), value)

	// Nor must mutating a loaded slice.
	value[0] = 'y'
	again, ok := store.Load("key")
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), again)
}

func TestBadgerStoreInMemoryRoundTrip(t *testing.T) {
	store, err := NewBadgerStore(BadgerConfig{InMemory: true}, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.Load(KeyPurchaseRequests)
	assert.False(t, ok)

	assert.True(t, store.Save(KeyPurchaseRequests, []byte(`[]`)))

	value, ok := store.Load(KeyPurchaseRequests)
	require.True(t, ok)
	assert.Equal(t, []byte(`[]`), value)
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewBadgerStore(BadgerConfig{Path: dir, SyncWrites: true}, zap.NewNop())
	require.NoError(t, err)
	require.True(t, store.Save(KeySettings, []byte(`{"density":"COMPACT"}`)))
	require.NoError(t, store.Close())

	reopened, err := NewBadgerStore(BadgerConfig{Path: dir, SyncWrites: true}, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	value, ok := reopened.Load(KeySettings)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"density":"COMPACT"}`), value)
}

func TestBadgerStoreRequiresPath(t *testing.T) {
	_, err := NewBadgerStore(BadgerConfig{}, zap.NewNop())
	assert.Error(t, err)
}
