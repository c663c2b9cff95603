// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storagetest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMockDatabaseGetPut(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := NewMockDatabase(ctrl)

	db.EXPECT().Put([]byte("k"), []byte("v")).Return(nil)
	db.EXPECT().Get([]byte("k")).Return([]byte("v"), nil)

	require.NoError(t, db.Put([]byte("k"), []byte("v")))
	got, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)
}

func TestMockDatabaseGetError(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := NewMockDatabase(ctrl)

	wantErr := errors.New("boom")
	db.EXPECT().Get([]byte("missing")).Return(nil, wantErr)

	_, err := db.Get([]byte("missing"))
	require.ErrorIs(t, err, wantErr)
}
