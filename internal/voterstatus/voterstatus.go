// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package voterstatus implements the voter-status registry: one row per
// (voter, election), enforcing at most one signature per voter and
// memoizing that signature so a client retry is answered identically.
package voterstatus

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/database"
)

// ErrSignedDifferentBallot is returned when a voter who already has a
// memoized signature asks to sign a different blinded message.
var ErrSignedDifferentBallot = errors.New("voterstatus: voter already obtained a signature for a different ballot")

const keyPrefix = "voterstatus/"

func key(electionID, voterID string) []byte {
	return []byte(keyPrefix + electionID + "/" + voterID)
}

// Status is one (voter, election) row.
type Status struct {
	VoterID    string `json:"voter_id"`
	ElectionID string `json:"election_id"`
	HasSigned  bool   `json:"has_signed"`

	// BlindedMessageHash is sha256_hex of the base64 blinded payload that
	// was signed. Absent until the first successful sign.
	BlindedMessageHash string `json:"blinded_message_hash,omitempty"`

	// GeneratedSignature is base64(signature). Absent until the first
	// successful sign. Invariant: HasSigned implies both fields are set.
	GeneratedSignature string `json:"generated_signature,omitempty"`
}

// Store persists Status rows with a per-(voter,election) lock, which is
// the in-process equivalent of a database uniqueness constraint: two
// concurrent signing attempts for the same row serialize on the same
// mutex, so exactly one performs the signature and the other observes
// HasSigned already true.
type Store struct {
	db    database.Database
	locks sync.Map // electionID/voterID -> *sync.Mutex
}

// New wraps a database.Database as a voter-status Store.
func New(db database.Database) *Store {
	return &Store{db: db}
}

func (s *Store) lockFor(electionID, voterID string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(electionID+"/"+voterID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (s *Store) get(electionID, voterID string) (*Status, error) {
	raw, err := s.db.Get(key(electionID, voterID))
	if errors.Is(err, database.ErrNotFound) {
		return &Status{VoterID: voterID, ElectionID: electionID}, nil
	}
	if err != nil {
		return nil, err
	}
	var st Status
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("voterstatus: decode %s/%s: %w", electionID, voterID, err)
	}
	return &st, nil
}

func (s *Store) put(st *Status) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.db.Put(key(st.ElectionID, st.VoterID), raw)
}

// Get retrieves a voter's status. If none exists yet it returns a fresh
// unsigned row without writing it; rows are persisted by RecordSignature.
func (s *Store) Get(electionID, voterID string) (*Status, error) {
	lock := s.lockFor(electionID, voterID)
	lock.Lock()
	defer lock.Unlock()
	return s.get(electionID, voterID)
}

// SignResult reports what RecordSignature decided.
type SignResult struct {
	Signature string
	Retry     bool // true when this is an idempotent replay of a prior sign
}

// RecordSignature implements the single-use-and-idempotent sign transaction:
// compute must produce a fresh signature for incomingHash and is only
// invoked while the per-voter lock is held and no prior signature exists,
// so it never runs twice for the same voter.
func (s *Store) RecordSignature(electionID, voterID, incomingHash string, compute func() (string, error)) (*SignResult, error) {
	lock := s.lockFor(electionID, voterID)
	lock.Lock()
	defer lock.Unlock()

	st, err := s.get(electionID, voterID)
	if err != nil {
		return nil, err
	}

	if st.HasSigned {
		if st.BlindedMessageHash == incomingHash {
			return &SignResult{Signature: st.GeneratedSignature, Retry: true}, nil
		}
		return nil, ErrSignedDifferentBallot
	}

	sig, err := compute()
	if err != nil {
		return nil, err
	}

	st.HasSigned = true
	st.BlindedMessageHash = incomingHash
	st.GeneratedSignature = sig
	if err := s.put(st); err != nil {
		return nil, err
	}

	return &SignResult{Signature: sig, Retry: false}, nil
}
