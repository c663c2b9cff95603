// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package blindsign implements the authenticated, single-use, idempotent
// endpoint that signs a voter's blinded commitment without ever seeing the
// unblinded ballot.
package blindsign

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/luxfi/voteguard/internal/electionstore"
	"github.com/luxfi/voteguard/internal/voterstatus"
)

// ErrNotFound is returned when the election does not exist.
var ErrNotFound = errors.New("blindsign: election not found")

// ErrBadRequest is returned for malformed blinded_message input.
var ErrBadRequest = errors.New("blindsign: malformed blinded message")

// ErrForbidden wraps voterstatus.ErrSignedDifferentBallot for callers that
// only depend on this package's error surface.
var ErrForbidden = voterstatus.ErrSignedDifferentBallot

// Signer produces blind signatures over per-election RSA keys.
type Signer struct {
	elections *electionstore.Store
	keys      *electionstore.KeyStore
	statuses  *voterstatus.Store
}

// New builds a Signer from its collaborator stores.
func New(elections *electionstore.Store, keys *electionstore.KeyStore, statuses *voterstatus.Store) *Signer {
	return &Signer{elections: elections, keys: keys, statuses: statuses}
}

// Result is the outcome of Sign: either a fresh signature or an
// already_signed_retry replay of a prior one.
type Result struct {
	SignatureB64 string
	Retry        bool
}

// Sign performs raw RSA blind-signing for voterID against electionID's
// stored keypair, given blindedMessageB64 exactly as received on the wire.
func (s *Signer) Sign(electionID, voterID, blindedMessageB64 string) (*Result, error) {
	if _, err := s.elections.Get(electionID); err != nil {
		if errors.Is(err, electionstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	blinded, err := base64.StdEncoding.DecodeString(blindedMessageB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	sum := sha256.Sum256([]byte(blindedMessageB64))
	incomingHash := hex.EncodeToString(sum[:])

	_, priv, err := s.keys.GetKeys(electionID)
	if err != nil {
		return nil, fmt.Errorf("blindsign: load keys: %w", err)
	}
	keyLen := (priv.N.BitLen() + 7) / 8

	res, err := s.statuses.RecordSignature(electionID, voterID, incomingHash, func() (string, error) {
		mInt := new(big.Int).SetBytes(blinded)
		sigInt := new(big.Int).Exp(mInt, priv.D, priv.N)
		sigBytes := sigInt.FillBytes(make([]byte, keyLen))
		return base64.StdEncoding.EncodeToString(sigBytes), nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{SignatureB64: res.Signature, Retry: res.Retry}, nil
}
