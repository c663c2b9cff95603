// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ballotstore implements the urn: an append-only set of ballots
// keyed by token, unique per election, with no reference to any
// voter-identifying entity.
package ballotstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/luxfi/database"
)

// ErrConflict is returned when a token already holds a ballot whose content
// differs from what the caller is trying to store.
var ErrConflict = errors.New("ballotstore: token already has a different ballot")

// ErrNotFound is returned when a token has no stored ballot.
var ErrNotFound = errors.New("ballotstore: ballot not found")

const keyPrefix = "ballot/"

func key(electionID, token string) []byte {
	return []byte(keyPrefix + electionID + "/" + token)
}

// Ballot is one accepted submission. Result retains the exact
// canonical-JSON bytes received, never a re-serialized structure.
type Ballot struct {
	ID              string    `json:"id"`
	ElectionID      string    `json:"election_id"`
	Token           string    `json:"token"`
	Result          string    `json:"result"`
	ServerSignature string    `json:"server_signature"`
	CreatedAt       time.Time `json:"created_at"`
}

// Store persists Ballot rows, append-only, unique per (election, token).
type Store struct {
	db    database.Database
	locks sync.Map // electionID/token -> *sync.Mutex
}

// New wraps a database.Database as a ballot Store.
func New(db database.Database) *Store {
	return &Store{db: db}
}

func (s *Store) lockFor(electionID, token string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(electionID+"/"+token, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// InsertResult reports whether Insert created a new row or matched an
// existing identical one.
type InsertResult struct {
	Ballot *Ballot
	IsNew  bool
}

// Insert stores b if no ballot exists yet for (ElectionID, Token). If one
// already exists with byte-identical Result and ServerSignature, Insert is
// an idempotent no-op. Any other existing row is a conflict. The
// per-(election,token) lock gives the same serialization a unique index on
// (election, token) would under a real transactional database.
func (s *Store) Insert(b *Ballot) (*InsertResult, error) {
	lock := s.lockFor(b.ElectionID, b.Token)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.get(b.ElectionID, b.Token)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Result == b.Result && existing.ServerSignature == b.ServerSignature {
			return &InsertResult{Ballot: existing, IsNew: false}, nil
		}
		return nil, ErrConflict
	}

	if err := s.put(b); err != nil {
		return nil, err
	}
	return &InsertResult{Ballot: b, IsNew: true}, nil
}

func (s *Store) get(electionID, token string) (*Ballot, error) {
	raw, err := s.db.Get(key(electionID, token))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var b Ballot
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("ballotstore: decode %s/%s: %w", electionID, token, err)
	}
	return &b, nil
}

func (s *Store) put(b *Ballot) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return s.db.Put(key(b.ElectionID, b.Token), raw)
}

// Get retrieves a single ballot by token.
func (s *Store) Get(electionID, token string) (*Ballot, error) {
	return s.get(electionID, token)
}

// Cursor walks every ballot in electionID ordered by token ascending,
// decoding one row at a time. The caller must call Release when done.
type Cursor struct {
	it database.Iterator
}

// Next decodes the next ballot. At the end of the range it returns a nil
// ballot together with the iterator's error, so nil, nil means "done".
func (c *Cursor) Next() (*Ballot, error) {
	if !c.it.Next() {
		return nil, c.it.Error()
	}
	var b Ballot
	if err := json.Unmarshal(c.it.Value(), &b); err != nil {
		return nil, fmt.Errorf("ballotstore: decode cursor entry: %w", err)
	}
	return &b, nil
}

// Release frees the underlying iterator.
func (c *Cursor) Release() {
	c.it.Release()
}

// Cursor opens a streaming, ordered walk over electionID's ballots. Unlike
// List, it never materializes more than one row at a time, so callers that
// only need to fold over the urn (e.g. the audit digest) run in bounded
// memory regardless of urn size.
func (s *Store) Cursor(electionID string) *Cursor {
	prefix := []byte(keyPrefix + electionID + "/")
	return &Cursor{it: s.db.NewIteratorWithPrefix(prefix)}
}

// List returns every ballot in electionID ordered by token ascending. It
// materializes the full result, so callers that only need to fold over the
// urn should use Cursor instead.
func (s *Store) List(electionID string) ([]*Ballot, error) {
	c := s.Cursor(electionID)
	defer c.Release()

	var out []*Ballot
	for {
		b, err := c.Next()
		if err != nil {
			return nil, err
		}
		if b == nil {
			break
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out, nil
}
