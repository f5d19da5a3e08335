package credential

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	return store
}

func TestUpsertAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Upsert("alice", "secret-one"))

	secret, ok, err := store.Get("alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret-one", secret)

	_, ok, err = store.Get("nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpsertOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Upsert("alice", "first"))
	require.NoError(t, store.Upsert("alice", "second"))

	secret, ok, err := store.Get("alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", secret)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Upsert("bob", "pw"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	secret, ok, err := reopened.Get("bob")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "pw", secret)
}

func TestMissingFileIsEmptyStore(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.Get("anyone")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCorruptFileFailsAtOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestConcurrentUpsertsDistinctUsers(t *testing.T) {
	store := newTestStore(t)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.Upsert(fmt.Sprintf("user-%d", i), fmt.Sprintf("pw-%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for i := 0; i < writers; i++ {
		secret, ok, err := store.Get(fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		assert.True(t, ok, "user-%d missing after concurrent upserts", i)
		assert.Equal(t, fmt.Sprintf("pw-%d", i), secret)
	}
}

func TestConcurrentUpsertsSameUser(t *testing.T) {
	store := newTestStore(t)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Upsert("shared", fmt.Sprintf("pw-%d", i)))
		}(i)
	}
	wg.Wait()

	// Exactly one of the written values must have survived, uncorrupted.
	secret, ok, err := store.Get("shared")
	require.NoError(t, err)
	require.True(t, ok)

	valid := false
	for i := 0; i < writers; i++ {
		if secret == fmt.Sprintf("pw-%d", i) {
			valid = true
			break
		}
	}
	assert.True(t, valid, "stored secret %q is not one of the written values", secret)
}
