// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package electionstore

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luxfi/voteguard/internal/storagetest"
)

// TestGetKeysPersistsExactlyOnceUnderConcurrency wires storagetest's
// MockDatabase into KeyStore.GetKeys to assert on the call sequence a
// passing in-memory store would hide: no matter how many goroutines race
// to generate the first keypair, the database sees exactly one Put.
func TestGetKeysPersistsExactlyOnceUnderConcurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := storagetest.NewMockDatabase(ctrl)

	election := &Election{
		ID:            "e1",
		Kind:          KindChoice,
		StartTime:     time.Now().Add(-time.Hour),
		EndTime:       time.Now().Add(time.Hour),
		AllowedVoters: map[string]struct{}{"alice": {}},
	}

	var mu sync.Mutex
	stored, err := json.Marshal(election)
	require.NoError(t, err)

	db.EXPECT().Get(key("e1")).AnyTimes().DoAndReturn(func([]byte) ([]byte, error) {
		mu.Lock()
		defer mu.Unlock()
		out := make([]byte, len(stored))
		copy(out, stored)
		return out, nil
	})
	db.EXPECT().Put(key("e1"), gomock.Any()).Times(1).DoAndReturn(func(_ []byte, value []byte) error {
		mu.Lock()
		defer mu.Unlock()
		stored = append([]byte(nil), value...)
		return nil
	})

	store := New(db)
	ks := NewKeyStore(store, 1024)

	const n = 8
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
