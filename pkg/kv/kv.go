// Package kv defines the ordered key-value store contract the graph index
// core is built on. The store itself — transactional, range-scan-capable —
// is an external collaborator; this package only names the interface the
// core consumes.
package kv

import "errors"

var (
	// ErrNotFound is returned by Get when the key does not exist.
	ErrNotFound = errors.New("kv: key not found")
	// ErrTransactionReadOnly is returned by Set/Clear/ClearRange on a
	// transaction opened with writable=false.
	ErrTransactionReadOnly = errors.New("kv: transaction is read-only")
	// ErrKeyTooLarge is returned when a packed key exceeds the store's
	// maximum key size.
	ErrKeyTooLarge = errors.New("kv: key exceeds maximum size")
)

// TxKind distinguishes the two transaction configurations used by the core:
// a short-lived strict default, and a longer-timeout batch mode for bulk
// scans (§5 "CONCURRENCY & RESOURCE MODEL").
type TxKind int

const (
	// TxDefault is short-lived and strict.
	TxDefault TxKind = iota
	// TxBatch allows a longer timeout for bulk range scans (e.g. a full
	// scanAllEdges or an algorithm's neighbor-list prefetch).
	TxBatch
)

// Config configures a transaction acquired via WithTransaction.
type Config struct {
	Kind     TxKind
	Writable bool
	// Snapshot requests snapshot-isolated reads; writes are always
	// serializable regardless of this flag.
	Snapshot bool
}

// Store is the KV store contract consumed by the core.
type Store interface {
	// Begin starts a new transaction under the given configuration.
	Begin(cfg Config) (Transaction, error)
	// Close releases all resources held by the store.
	Close() error
}

// KeySelector resolves to a concrete key at scan time. The core only
// requires FirstGreaterOrEqual, per §6.
type KeySelector struct {
	Key       []byte
	OrEqual   bool
	AllowPast bool
}

// FirstGreaterOrEqual builds a selector resolving to the first key >= k.
func FirstGreaterOrEqual(k []byte) KeySelector {
	return KeySelector{Key: k, OrEqual: true}
}

// Transaction is a single store transaction. Every scan and mutation is
// enclosed in one; release is guaranteed by the caller on every exit path.
type Transaction interface {
	// Get retrieves a value by exact key.
	Get(key []byte) ([]byte, error)
	// Set stores a key-value pair.
	Set(key, value []byte) error
	// Clear removes a single key.
	Clear(key []byte) error
	// ClearRange removes every key in [begin, end).
	ClearRange(begin, end []byte) error
	// GetRange returns an ordered iterator over [begin, end).
	GetRange(begin, end KeySelector) (Iterator, error)
	// Commit commits the transaction.
	Commit() error
	// Rollback rolls back the transaction. Safe to call after Commit.
	Rollback() error
}

// Iterator streams (key, value) pairs in key order. Dropping it (calling
// Close without exhausting Next) or aborting the owning transaction
// terminates scanning; iterators perform no background work.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() ([]byte, error)
	Close() error
}

// WithTransaction runs f against a fresh transaction, committing on a
// clean return and rolling back on any error or panic; release is
// guaranteed on every exit path.
func WithTransaction(store Store, cfg Config, f func(Transaction) error) (err error) {
	txn, err := store.Begin(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			_ = txn.Rollback()
			panic(r)
		}
		if err != nil {
			_ = txn.Rollback()
		}
	}()

	if err = f(txn); err != nil {
		return err
	}
	return txn.Commit()
}
