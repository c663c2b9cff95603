package electionstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/luxfi/database"
)

// ErrNotFound is returned when an election UUID is unknown.
var ErrNotFound = errors.New("electionstore: election not found")

const keyPrefix = "election/"

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// Store persists Election rows.
type Store struct {
	db database.Database
}

// New wraps a database.Database as an election Store.
func New(db database.Database) *Store {
	return &Store{db: db}
}

// Get loads an election by id.
func (s *Store) Get(id string) (*Election, error) {
	raw, err := s.db.Get(key(id))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var e Election
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("electionstore: decode %s: %w", id, err)
	}
	return &e, nil
}

// Put creates or overwrites an election row. The expected caller is
// administrative configuration tooling, not the voter-facing API.
func (s *Store) Put(e *Election) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.db.Put(key(e.ID), raw)
}

// List returns every election, ordered by id.
func (s *Store) List() ([]*Election, error) {
	it := s.db.NewIteratorWithPrefix([]byte(keyPrefix))
	defer it.Release()

	var out []*Election
	for it.Next() {
		var e Election
		if err := json.Unmarshal(it.Value(), &e); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
