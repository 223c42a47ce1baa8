// Package indexmaint generates the 2/3/6 keys per triple on insert/delete
// and implements the sparse-index policy (§4.C).
package indexmaint

import (
	"errors"
	"fmt"

	"github.com/aleksaelezovic/graphcore/pkg/indexstrategy"
	"github.com/aleksaelezovic/graphcore/pkg/kv"
	"github.com/aleksaelezovic/graphcore/pkg/tupleenc"
)

// IndexErrorKind discriminates the index-maintenance error conditions
// named in §7.
type IndexErrorKind int

const (
	InvalidFieldType IndexErrorKind = iota
	UnexpectedElementType
	KeyTooLarge
	UnsupportedQueryPattern
)

// IndexError is the structured error kind for index-maintenance failures,
// in the style of ritamzico-pgraph's GraphError{Kind, Message}.
type IndexError struct {
	Kind    IndexErrorKind
	Message string
}

func (e *IndexError) Error() string { return e.Message }

// errNilValueCannotBeIndexed names the §7 error kind for a nil component.
// ComputeIndexKeys handles that case as a skip (sparse indexing) and never
// returns it to callers.
var errNilValueCannotBeIndexed = errors.New("indexmaint: nil value cannot be indexed")

// DefaultMaxKeySize is the key-size ceiling the maintainer enforces at
// write time when the caller does not configure its own.
const DefaultMaxKeySize = 1 << 16

// Item is a record the maintainer can extract (from, edge, to, graph)
// components from by field name. Item serialization itself is external
// to the core (§1); this is the minimal read surface the maintainer needs.
type Item interface {
	Field(name string) (tupleenc.TupleElement, bool)
}

// MapItem is a ready-made Item backed by a plain map, convenient for
// tests and for callers without a richer record type.
type MapItem map[string]tupleenc.TupleElement

func (m MapItem) Field(name string) (tupleenc.TupleElement, bool) {
	v, ok := m[name]
	return v, ok
}

// FieldNames configures which item fields the maintainer reads for each
// triple component. Edge and Graph are optional: an empty Edge field name
// means the strategy is adjacency-style (edge always defaults to "");
// an empty Graph field name means the index carries no graph component.
type FieldNames struct {
	From  string
	Edge  string
	To    string
	Graph string
}

// Maintainer builds and removes index keys for one (root subspace,
// strategy, field configuration). It is stateless and safe to share: key
// generation never reads concurrent mutations.
type Maintainer struct {
	root       tupleenc.Subspace
	strategy   indexstrategy.Strategy
	fields     FieldNames
	maxKeySize int
}

// New constructs a Maintainer. maxKeySize <= 0 selects DefaultMaxKeySize.
func New(root tupleenc.Subspace, strategy indexstrategy.Strategy, fields FieldNames, maxKeySize int) *Maintainer {
	if maxKeySize <= 0 {
		maxKeySize = DefaultMaxKeySize
	}
	return &Maintainer{root: root, strategy: strategy, fields: fields, maxKeySize: maxKeySize}
}

func (m *Maintainer) graphEnabled() bool { return m.fields.Graph != "" }

// ComputeIndexKeys builds the full key set for item per §4.C.1–3. Returns
// a nil slice (no error) when from or to is absent or nil — the sparse-index
// policy: no keys are written for that triple and none exist.
func (m *Maintainer) ComputeIndexKeys(item Item) ([][]byte, error) {
	from, ok := item.Field(m.fields.From)
	if !ok || from.Kind() == tupleenc.KindNil {
		return nil, nil
	}
	to, ok := item.Field(m.fields.To)
	if !ok || to.Kind() == tupleenc.KindNil {
		return nil, nil
	}

	edge := tupleenc.String("")
	if m.fields.Edge != "" {
		if v, ok := item.Field(m.fields.Edge); ok {
			edge = v
		}
	}

	var graph *tupleenc.TupleElement
	if m.graphEnabled() {
		v, ok := item.Field(m.fields.Graph)
		if !ok || v.Kind() == tupleenc.KindNil {
			return nil, nil // graph configured but absent or nil: sparse, no keys
		}
		graph = &v
	}

	for _, v := range []tupleenc.TupleElement{from, edge, to} {
		if err := validateScalar(v); err != nil {
			return nil, err
		}
	}
	if graph != nil {
		if err := validateScalar(*graph); err != nil {
			return nil, err
		}
	}

	vals := map[indexstrategy.Component]tupleenc.TupleElement{
		indexstrategy.From: from,
		indexstrategy.Edge: edge,
		indexstrategy.To:   to,
	}

	var keys [][]byte
	for _, ordering := range m.strategy.Orderings() {
		sub := m.root.Sub(tupleenc.Int(int64(ordering)))
		t := make(tupleenc.Tuple, 0, 4)
		for _, c := range ordering.Permutation() {
			t = append(t, vals[c])
		}
		if graph != nil {
			t = append(t, *graph)
		}
		key := sub.Pack(t)
		if len(key) > m.maxKeySize {
			return nil, &IndexError{Kind: KeyTooLarge, Message: fmt.Sprintf("indexmaint: key of %d bytes exceeds maximum %d", len(key), m.maxKeySize)}
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func validateScalar(v tupleenc.TupleElement) error {
	switch v.Kind() {
	case tupleenc.KindNil, tupleenc.KindBytes, tupleenc.KindString, tupleenc.KindInt, tupleenc.KindFloat, tupleenc.KindBool:
		return nil
	default:
		return &IndexError{Kind: InvalidFieldType, Message: "indexmaint: field is not a permitted tuple scalar"}
	}
}

// ScanItem is the write half of index maintenance only — generates and
// writes every key for item, storing coveringValue under each. Used when
// bulk-rebuilding an index.
func (m *Maintainer) ScanItem(tx kv.Transaction, item Item, coveringValue []byte) error {
	keys, err := m.ComputeIndexKeys(item)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := tx.Set(k, coveringValue); err != nil {
			return err
		}
	}
	return nil
}

// UpdateIndex removes every key of oldItem (if non-nil) then writes every
// key of newItem (if non-nil), storing an identical covering value under
// each new key.
func (m *Maintainer) UpdateIndex(tx kv.Transaction, oldItem Item, newItem Item, coveringValue []byte) error {
	if oldItem != nil {
		oldKeys, err := m.ComputeIndexKeys(oldItem)
		if err != nil {
			return err
		}
		for _, k := range oldKeys {
			if err := tx.Clear(k); err != nil {
				return err
			}
		}
	}
	if newItem != nil {
		return m.ScanItem(tx, newItem, coveringValue)
	}
	return nil
}
