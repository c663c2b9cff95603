package electionstore

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/voteguard/internal/storage/memdb"
)

func newTestElection(t *testing.T, id string) *Store {
	t.Helper()
	store := New(memdb.New())
	require.NoError(t, store.Put(&Election{
		ID:            id,
		Name:          "Test Election",
		Kind:          KindChoice,
		StartTime:     time.Now().Add(-time.Hour),
		EndTime:       time.Now().Add(time.Hour),
		AllowedVoters: map[string]struct{}{"alice": {}},
	}))
	return store
}

func TestGetKeysGeneratesOnce(t *testing.T) {
	store := newTestElection(t, "e1")
	ks := NewKeyStore(store, 1024)

	pub1, priv1, err := ks.GetKeys("e1")
	require.NoError(t, err)
	require.NotNil(t, pub1)
	require.NotNil(t, priv1)

	pub2, priv2, err := ks.GetKeys("e1")
	require.NoError(t, err)
	require.Equal(t, pub1.N, pub2.N)
	require.Equal(t, priv1.D, priv2.D)
}

func TestGetKeysPersisted(t *testing.T) {
	store := newTestElection(t, "e1")
	ks := NewKeyStore(store, 1024)

	_, _, err := ks.GetKeys("e1")
	require.NoError(t, err)

	e, err := store.Get("e1")
	require.NoError(t, err)
	require.True(t, e.HasKeys())
}

func TestGetKeysConcurrentConverges(t *testing.T) {
	store := newTestElection(t, "e1")
	ks := NewKeyStore(store, 1024)

	const n = 16
	var wg sync.WaitGroup
	moduli := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pub, _, err := ks.GetKeys("e1")
			require.NoError(t, err)
			moduli[i] = pub.N.String()
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		require.Equal(t, moduli[0], moduli[i], "all callers must converge on one keypair")
	}
}

func TestGetKeysUnknownElection(t *testing.T) {
	store := New(memdb.New())
	ks := NewKeyStore(store, 1024)
	_, _, err := ks.GetKeys("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPublicKeyPEMGeneratesLazily(t *testing.T) {
	store := newTestElection(t, "e1")
	ks := NewKeyStore(store, 1024)

	pem, err := ks.PublicKeyPEM("e1")
	require.NoError(t, err)
	require.Contains(t, string(pem), "RSA PUBLIC KEY")
}
