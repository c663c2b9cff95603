// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pebble adapts a cockroachdb/pebble on-disk LSM tree to
// github.com/luxfi/database's Database interface, so every store in this
// module can depend on database.Database without caring whether the
// underlying engine is pebble or an in-memory stand-in.
package pebble

import (
	"context"
	"errors"

	"github.com/cockroachdb/pebble"

	"github.com/luxfi/database"
)

// DB adapts a *pebble.DB to database.Database.
type DB struct {
	db *pebble.DB
}

var _ database.Database = (*DB)(nil)

// Open opens (and creates, if absent) a pebble database rooted at dir.
func Open(dir string) (*DB, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

func (d *DB) Has(key []byte) (bool, error) {
	_, closer, err := d.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, closer.Close()
}

func (d *DB) Get(key []byte) ([]byte, error) {
	value, closer, err := d.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, closer.Close()
}

func (d *DB) Put(key, value []byte) error {
	return d.db.Set(key, value, pebble.Sync)
}

func (d *DB) Delete(key []byte) error {
	return d.db.Delete(key, pebble.Sync)
}

func (d *DB) NewBatch() database.Batch {
	return &batch{db: d.db, b: d.db.NewBatch()}
}

func (d *DB) NewIterator() database.Iterator {
	return d.newIter(nil, nil)
}

func (d *DB) NewIteratorWithStart(start []byte) database.Iterator {
	return d.newIter(start, nil)
}

func (d *DB) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	return d.newIter(nil, prefix)
}

func (d *DB) NewIteratorWithStartAndPrefix(start, prefix []byte) database.Iterator {
	return d.newIter(start, prefix)
}

func (d *DB) newIter(start, prefix []byte) database.Iterator {
	lower := prefix
	if len(start) > 0 {
		lower = start
	}
	upper := prefixEnd(prefix)
	it, err := d.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return &iterator{err: err}
	}
	return &iterator{it: it, first: true}
}

// prefixEnd returns the smallest key that is strictly greater than every
// key beginning with prefix, for use as a pebble upper bound. A nil/empty
// prefix has no upper bound.
func prefixEnd(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil // prefix was all 0xff bytes: no upper bound
}

func (d *DB) Compact(start, limit []byte) error {
	return d.db.Compact(start, limit, true)
}

func (d *DB) HealthCheck(context.Context) (interface{}, error) {
	if _, closer, err := d.db.Get([]byte("\x00health")); err == nil {
		return nil, closer.Close()
	} else if !errors.Is(err, pebble.ErrNotFound) {
		return nil, err
	}
	return nil, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

type batch struct {
	db *pebble.DB
	b  *pebble.Batch
}

func (b *batch) Put(key, value []byte) error {
	return b.b.Set(key, value, nil)
}

func (b *batch) Delete(key []byte) error {
	return b.b.Delete(key, nil)
}

func (b *batch) Size() int {
	return int(b.b.Len())
}

func (b *batch) Write() error {
	return b.b.Commit(pebble.Sync)
}

func (b *batch) Reset() {
	b.b.Reset()
}

func (b *batch) Replay(w database.KeyValueWriter) error {
	reader := b.b.Reader()
	for {
		kind, key, value, ok, err := reader.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch kind {
		case pebble.InternalKeyKindDelete:
			if err := w.Delete(key); err != nil {
				return err
			}
		default:
			if err := w.Put(key, value); err != nil {
				return err
			}
		}
	}
}

func (b *batch) Inner() database.Batch { return b }

type iterator struct {
	it    *pebble.Iterator
	first bool
	err   error
}

func (i *iterator) Next() bool {
	if i.err != nil || i.it == nil {
		return false
	}
	if i.first {
		i.first = false
		return i.it.First()
	}
	return i.it.Next()
}

func (i *iterator) Key() []byte { return i.it.Key() }
func (i *iterator) Value() []byte { return i.it.Value() }

func (i *iterator) Error() error {
	if i.err != nil {
		return i.err
	}
	if i.it == nil {
		return nil
	}
	return i.it.Error()
}

func (i *iterator) Release() {
	if i.it != nil {
		_ = i.it.Close()
	}
}
