package electionstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/voteguard/internal/storage/memdb"
)

func TestStoreGetNotFound(t *testing.T) {
	store := New(memdb.New())
	_, err := store.Get("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorePutGet(t *testing.T) {
	store := New(memdb.New())
	require.NoError(t, store.Put(&Election{ID: "e1", Name: "Election One"}))

	e, err := store.Get("e1")
	require.NoError(t, err)
	require.Equal(t, "Election One", e.Name)
}

func TestStoreListOrdered(t *testing.T) {
	store := New(memdb.New())
	require.NoError(t, store.Put(&Election{ID: "b"}))
	require.NoError(t, store.Put(&Election{ID: "a"}))
	require.NoError(t, store.Put(&Election{ID: "c"}))

	all, err := store.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, []string{"a", "b", "c"}, []string{all[0].ID, all[1].ID, all[2].ID})
}
