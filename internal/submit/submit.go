// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package submit implements the unauthenticated, signature-verifying,
// idempotent ballot-submission endpoint.
package submit

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/luxfi/voteguard/internal/ballotstore"
	"github.com/luxfi/voteguard/internal/canonicaljson"
	"github.com/luxfi/voteguard/internal/electionstore"
)

// ErrNotFound is returned when the election does not exist.
var ErrNotFound = errors.New("submit: election not found")

// ErrBadRequest covers every input-validation failure: malformed data,
// base64 decode failure, signature mismatch, and non-canonical form.
var ErrBadRequest = errors.New("submit: invalid ballot")

// ErrConflict aliases ballotstore.ErrConflict. Submit itself reports a
// token already bound to a different ballot as ErrBadRequest, so this
// error is not returned by Submit.
var ErrConflict = ballotstore.ErrConflict

// Submitter accepts and verifies anonymous ballots.
type Submitter struct {
	elections *electionstore.Store
	ballots   *ballotstore.Store
}

// New builds a Submitter from its collaborator stores.
func New(elections *electionstore.Store, ballots *ballotstore.Store) *Submitter {
	return &Submitter{elections: elections, ballots: ballots}
}

// Result is the outcome of Submit.
type Result struct {
	BulletinID string
	IsNew      bool
}

// Submit verifies the RSA signature over token+":"+data against the
// election's public key, then stores the ballot. data and token are the
// exact raw bytes/strings received on the wire;
// signatureB64 is base64 of the 256-byte big-endian RSA signature.
func (s *Submitter) Submit(electionID, token, data, signatureB64 string) (*Result, error) {
	e, err := s.elections.Get(electionID)
	if err != nil {
		if errors.Is(err, electionstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !canonicaljson.IsCanonical([]byte(data)) {
		return nil, fmt.Errorf("%w: result is not canonical JSON", ErrBadRequest)
	}

	sigBytes, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed signature: %v", ErrBadRequest, err)
	}

	pub, err := decodePublicKey(e)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	message := token + ":" + data
	digest := sha256.Sum256([]byte(message))
	mInt := new(big.Int).SetBytes(digest[:])

	sigInt := new(big.Int).SetBytes(sigBytes)
	eInt := big.NewInt(int64(pub.E))
	got := new(big.Int).Exp(sigInt, eInt, pub.N)

	if got.Cmp(mInt) != 0 {
		return nil, fmt.Errorf("%w: signature does not verify", ErrBadRequest)
	}

	res, err := s.ballots.Insert(&ballotstore.Ballot{
		ID:              uuid.NewString(),
		ElectionID:      electionID,
		Token:           token,
		Result:          data,
		ServerSignature: signatureB64,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ballotstore.ErrConflict) {
			return nil, fmt.Errorf("%w: token already bound to a different ballot", ErrBadRequest)
		}
		return nil, err
	}

	return &Result{BulletinID: token, IsNew: res.IsNew}, nil
}

// decodePublicKey parses an election's stored PEM public key. Submission
// never triggers key generation: an election with no keypair yet has never
// issued a blind signature, so no valid submission can exist for it.
func decodePublicKey(e *electionstore.Election) (*rsa.PublicKey, error) {
	if !e.HasKeys() {
		return nil, fmt.Errorf("no keypair generated for election %s", e.ID)
	}
	block, _ := pem.Decode(e.PublicKeyPEM)
	if block == nil {
		return nil, fmt.Errorf("malformed public key PEM for election %s", e.ID)
	}
	return x509.ParsePKCS1PublicKey(block.Bytes)
}
