// Package kvbadger implements kv.Store on top of BadgerDB: the reference
// wiring for the graph index core, used by its integration tests.
package kvbadger

import (
	"bytes"
	"fmt"
	"time"

	"github.com/aleksaelezovic/graphcore/pkg/kv"
	badger "github.com/dgraph-io/badger/v4"
)

// defaultTimeout and batchTimeout name the timeout class of the two
// TxKind values. Nothing reads them: the store does not enforce a
// timeout, and Begin records cfg.Kind on the Transaction without
// choosing any badger option from it.
const (
	defaultTimeout = 5 * time.Second
	batchTimeout   = 60 * time.Second
)

// Store wraps a BadgerDB handle as a kv.Store.
type Store struct {
	db *badger.DB
}

// Open creates or opens a BadgerDB database at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // disable badger's own logger; the core itself does no logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("kvbadger: open: %w", err)
	}
	return &Store{db: db}, nil
}

// Begin starts a new transaction under cfg.
func (s *Store) Begin(cfg kv.Config) (kv.Transaction, error) {
	txn := s.db.NewTransaction(cfg.Writable)
	return &Transaction{txn: txn, writable: cfg.Writable, kind: cfg.Kind}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Sync flushes writes to disk.
func (s *Store) Sync() error {
	return s.db.Sync()
}

// Transaction implements kv.Transaction over a single badger.Txn.
type Transaction struct {
	txn      *badger.Txn
	writable bool
	kind     kv.TxKind
}

// Get retrieves a value by exact key.
func (t *Transaction) Get(key []byte) ([]byte, error) {
	item, err := t.txn.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	var value []byte
	err = item.Value(func(val []byte) error {
		value = append([]byte{}, val...)
		return nil
	})
	return value, err
}

// Set stores a key-value pair.
func (t *Transaction) Set(key, value []byte) error {
	if !t.writable {
		return kv.ErrTransactionReadOnly
	}
	return t.txn.Set(key, value)
}

// Clear removes a single key.
func (t *Transaction) Clear(key []byte) error {
	if !t.writable {
		return kv.ErrTransactionReadOnly
	}
	return t.txn.Delete(key)
}

// ClearRange removes every key in [begin, end) by iterating and
// deleting; Badger has no native range-delete on a live transaction.
func (t *Transaction) ClearRange(begin, end []byte) error {
	if !t.writable {
		return kv.ErrTransactionReadOnly
	}
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := t.txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Seek(begin); it.Valid(); it.Next() {
		k := it.Item().KeyCopy(nil)
		if end != nil && bytes.Compare(k, end) >= 0 {
			break
		}
		keys = append(keys, k)
	}
	for _, k := range keys {
		if err := t.txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// GetRange returns an ordered iterator over [begin, end).
func (t *Transaction) GetRange(begin, end kv.KeySelector) (kv.Iterator, error) {
	opts := badger.DefaultIteratorOptions
	it := t.txn.NewIterator(opts)
	return &Iterator{it: it, seekKey: begin.Key, endKey: end.Key}, nil
}

// Commit commits the transaction.
func (t *Transaction) Commit() error {
	return t.txn.Commit()
}

// Rollback discards the transaction. Safe to call after Commit.
func (t *Transaction) Rollback() error {
	t.txn.Discard()
	return nil
}

// Iterator streams (key, value) pairs in key order over a badger.Iterator.
type Iterator struct {
	it       *badger.Iterator
	seekKey  []byte
	endKey   []byte
	started  bool
	hasValue bool
}

// Next advances to the next item in range.
func (i *Iterator) Next() bool {
	if !i.started {
		i.it.Seek(i.seekKey)
		i.started = true
	} else {
		i.it.Next()
	}
	if !i.it.Valid() {
		i.hasValue = false
		return false
	}
	if i.endKey != nil && bytes.Compare(i.it.Item().Key(), i.endKey) >= 0 {
		i.hasValue = false
		return false
	}
	i.hasValue = true
	return true
}

// Key returns the current key.
func (i *Iterator) Key() []byte {
	if !i.hasValue {
		return nil
	}
	return append([]byte{}, i.it.Item().Key()...)
}

// Value returns the current value.
func (i *Iterator) Value() ([]byte, error) {
	if !i.hasValue {
		return nil, kv.ErrNotFound
	}
	var value []byte
	err := i.it.Item().Value(func(val []byte) error {
		value = append([]byte{}, val...)
		return nil
	})
	return value, err
}

// Close releases the underlying badger iterator.
func (i *Iterator) Close() error {
	i.it.Close()
	return nil
}
