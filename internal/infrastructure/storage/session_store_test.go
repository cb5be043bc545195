package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

func exerciseStore(t *testing.T, store repository.SessionStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, repository.SessionAuthKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, repository.SessionAuthKey, "true"))
	require.NoError(t, store.Set(ctx, repository.SessionProfileKey, `{"email":"a@b.c"}`))

	value, ok, err := store.Get(ctx, repository.SessionAuthKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)

	require.NoError(t, store.Set(ctx, repository.SessionAuthKey, "false"))
	value, _, err = store.Get(ctx, repository.SessionAuthKey)
	require.NoError(t, err)
	assert.Equal(t, "false", value)

	require.NoError(t, store.Delete(ctx, repository.SessionProfileKey))
	_, ok, err = store.Get(ctx, repository.SessionProfileKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "missing"))
}

func TestMemorySessionStore(t *testing.T) {
	exerciseStore(t, NewMemorySessionStore())
}

func TestSQLiteSessionStore(t *testing.T) {
	store, err := NewSQLiteSessionStore(filepath.Join(t.TempDir(), "nested", "session.db"))
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestBoltSessionStore(t *testing.T) {
	store, err := NewBoltSessionStore(filepath.Join(t.TempDir(), "session.bolt"))
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestSQLiteSessionStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	store, err := NewSQLiteSessionStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, repository.SessionAuthKey, "true"))
	require.NoError(t, store.Close())

	store, err = NewSQLiteSessionStore(path)
	require.NoError(t, err)
	defer store.Close()

	value, ok, err := store.Get(ctx, repository.SessionAuthKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)
}

func TestBoltSessionStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bolt")
	ctx := context.Background()

	store, err := NewBoltSessionStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, repository.SessionProfileKey, "x"))
	require.NoError(t, store.Close())

	store, err = NewBoltSessionStore(path)
	require.NoError(t, err)
	defer store.Close()

	value, ok, err := store.Get(ctx, repository.SessionProfileKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", value)
}

func TestScopedStoreIsolatesKeys(t *testing.T) {
	ctx := context.Background()
	parent := NewMemorySessionStore()
	alice := Scoped(parent, "tg:1:")
	bob := Scoped(parent, "tg:2:")

	require.NoError(t, alice.Set(ctx, repository.SessionAuthKey, "true"))

	_, ok, err := bob.Get(ctx, repository.SessionAuthKey)
	require.NoError(t, err)
	assert.False(t, ok)

	value, ok, err := parent.Get(ctx, "tg:1:"+repository.SessionAuthKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)

	require.NoError(t, alice.Close())
	require.NoError(t, parent.Set(ctx, "still", "open"))
}

func TestOpenSessionStore(t *testing.T) {
	store, err := OpenSessionStore("memory", "")
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = OpenSessionStore("redis", "x")
	assert.Error(t, err)

	store, err = OpenSessionStore("", filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestStoreKeys(t *testing.T) {
	ctx := context.Background()
	sqlite, err := NewSQLiteSessionStore(filepath.Join(t.TempDir(), "keys.db"))
	require.NoError(t, err)
	defer sqlite.Close()
	bolt, err := NewBoltSessionStore(filepath.Join(t.TempDir(), "keys.bolt"))
	require.NoError(t, err)
	defer bolt.Close()

	for name, store := range map[string]repository.SessionStore{
		"memory": NewMemorySessionStore(),
		"sqlite": sqlite,
		"bolt":   bolt,
	} {
		t.Run(name, func(t *testing.T) {
			keys, err := store.Keys(ctx)
			require.NoError(t, err)
			assert.Empty(t, keys)

			require.NoError(t, store.Set(ctx, "a", "1"))
			require.NoError(t, store.Set(ctx, "b", "2"))
			keys, err = store.Keys(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"a", "b"}, keys)
		})
	}
}

func TestOperatorIDs(t *testing.T) {
	ctx := context.Background()
	parent := NewMemorySessionStore()

	require.NoError(t, Scoped(parent, OperatorPrefix(42)).Set(ctx, repository.SessionAuthKey, "true"))
	require.NoError(t, Scoped(parent, OperatorPrefix(42)).Set(ctx, repository.SessionProfileKey, "{}"))
	require.NoError(t, Scoped(parent, OperatorPrefix(-5)).Set(ctx, repository.SessionAuthKey, "false"))
	require.NoError(t, parent.Set(ctx, "tg:nope:Auth", "true"))
	require.NoError(t, parent.Set(ctx, repository.SessionAuthKey, "true"))

	ids, err := OperatorIDs(ctx, parent)
	require.NoError(t, err)
	assert.Equal(t, []int64{-5, 42}, ids)

	keys, err := Scoped(parent, OperatorPrefix(42)).Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{repository.SessionAuthKey, repository.SessionProfileKey}, keys)
}
