// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package memdb is an in-memory github.com/luxfi/database.Database, a
// drop-in stand-in for a real on-disk engine in unit tests.
package memdb

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/luxfi/database"
)

// DB is a sorted, mutex-guarded in-memory database.Database.
type DB struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ database.Database = (*DB)(nil)

// New returns an empty in-memory database.
func New() *DB {
	return &DB{data: make(map[string][]byte)}
}

func (d *DB) Has(key []byte) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.data[string(key)]
	return ok, nil
}

func (d *DB) Get(key []byte) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.data[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (d *DB) Put(key, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	d.data[string(key)] = v
	return nil
}

func (d *DB) Delete(key []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.data, string(key))
	return nil
}

func (d *DB) NewBatch() database.Batch {
	return &batch{db: d}
}

func (d *DB) NewIterator() database.Iterator {
	return d.NewIteratorWithStartAndPrefix(nil, nil)
}

func (d *DB) NewIteratorWithStart(start []byte) database.Iterator {
	return d.NewIteratorWithStartAndPrefix(start, nil)
}

func (d *DB) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	return d.NewIteratorWithStartAndPrefix(nil, prefix)
}

func (d *DB) NewIteratorWithStartAndPrefix(start, prefix []byte) database.Iterator {
	d.mu.RLock()
	defer d.mu.RUnlock()

	keys := make([]string, 0, len(d.data))
	for k := range d.data {
		if !strings.HasPrefix(k, string(prefix)) {
			continue
		}
		if len(start) > 0 && k < string(start) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = d.data[k]
	}
	return &iterator{keys: keys, values: values, index: -1}
}

func (d *DB) Compact(start, limit []byte) error {
	return nil
}

func (d *DB) HealthCheck(context.Context) (interface{}, error) {
	return nil, nil
}

func (d *DB) Close() error { return nil }

type batchOp struct {
	key, value []byte
	del        bool
}

type batch struct {
	db  *DB
	ops []batchOp
}

func (b *batch) Put(key, value []byte) error {
	b.ops = append(b.ops, batchOp{key: append([]byte(nil), key...), value: append([]byte(nil), value...)})
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, batchOp{key: append([]byte(nil), key...), del: true})
	return nil
}

func (b *batch) Size() int { return len(b.ops) }

func (b *batch) Write() error {
	b.db.mu.Lock()
	defer b.db.mu.Unlock()
	for _, op := range b.ops {
		if op.del {
			delete(b.db.data, string(op.key))
			continue
		}
		b.db.data[string(op.key)] = op.value
	}
	return nil
}

func (b *batch) Reset() { b.ops = nil }

func (b *batch) Replay(w database.KeyValueWriter) error {
	for _, op := range b.ops {
		if op.del {
			if err := w.Delete(op.key); err != nil {
				return err
			}
			continue
		}
		if err := w.Put(op.key, op.value); err != nil {
			return err
		}
	}
	return nil
}

func (b *batch) Inner() database.Batch { return b }

type iterator struct {
	keys   []string
	values [][]byte
	index  int
}

func (i *iterator) Next() bool {
	i.index++
	return i.index < len(i.keys)
}

func (i *iterator) Key() []byte   { return []byte(i.keys[i.index]) }
func (i *iterator) Value() []byte { return i.values[i.index] }
func (i *iterator) Error() error  { return nil }
func (i *iterator) Release()      {}
