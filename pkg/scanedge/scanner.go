// Package scanedge provides a uniform streaming iterator over outgoing,
// incoming, or all edges for any of the three index strategies, with an
// optional edge-label filter, riding on the tuple codec (pkg/tupleenc) and
// the KV transaction contract (pkg/kv).
package scanedge

import (
	"github.com/aleksaelezovic/graphcore/pkg/indexstrategy"
	"github.com/aleksaelezovic/graphcore/pkg/kv"
	"github.com/aleksaelezovic/graphcore/pkg/tupleenc"
)

// EdgeInfo is the scanner's output: one (source, target, label) triple
// and, when the index is graph-configured, the graph it was stored under.
// Its lifetime is scanner-owned — it is invalidated once the enclosing
// transaction ends.
type EdgeInfo struct {
	Source    tupleenc.TupleElement
	Target    tupleenc.TupleElement
	EdgeLabel tupleenc.TupleElement
	Graph     *tupleenc.TupleElement
}

// Scanner reads triples back out of an index built by
// pkg/indexmaint.Maintainer for the same root subspace and strategy.
type Scanner struct {
	root         tupleenc.Subspace
	strategy     indexstrategy.Strategy
	graphEnabled bool
}

// New constructs a Scanner over indexSubspace for the given strategy.
// graphEnabled must match how the maintainer that built the index was
// configured (whether a graph component is appended to every key).
func New(indexSubspace tupleenc.Subspace, strategy indexstrategy.Strategy, graphEnabled bool) *Scanner {
	return &Scanner{root: indexSubspace, strategy: strategy, graphEnabled: graphEnabled}
}

func (s *Scanner) orderingSubspace(o indexstrategy.Ordering) tupleenc.Subspace {
	return s.root.Sub(tupleenc.Int(int64(o)))
}

// bound names the known values for some subset of (edge, from, to) going
// into a scan.
type bound struct {
	vals map[indexstrategy.Component]tupleenc.TupleElement
}

func newBound() bound { return bound{vals: map[indexstrategy.Component]tupleenc.TupleElement{}} }

// split walks the ordering's permutation and returns the contiguous
// packable prefix (the leading run of bound components) plus whatever
// bound components fall after the first unbound one — those must be
// applied as an in-memory filter once the key is decoded.
func (b bound) split(o indexstrategy.Ordering) (prefix tupleenc.Tuple, remaining map[indexstrategy.Component]tupleenc.TupleElement) {
	remaining = map[indexstrategy.Component]tupleenc.TupleElement{}
	stopped := false
	for _, c := range o.Permutation() {
		v, ok := b.vals[c]
		if !ok || stopped {
			stopped = true
			if ok {
				remaining[c] = v
			}
			continue
		}
		prefix = append(prefix, v)
	}
	return prefix, remaining
}

func rangeForPrefix(sub tupleenc.Subspace, prefix tupleenc.Tuple) (begin, end []byte) {
	if len(prefix) == 0 {
		return sub.Range()
	}
	begin = sub.Pack(prefix)
	end = append([]byte{}, begin...)
	end = append(end, 0xff)
	return begin, end
}

func scanOutOrdering(strategy indexstrategy.Strategy, labelBound bool) indexstrategy.Ordering {
	switch strategy {
	case indexstrategy.Adjacency:
		return indexstrategy.OUT
	case indexstrategy.TripleStore:
		return indexstrategy.SPO
	default: // Hexastore: "choose the permutation whose first two components match" (§4.B), i.e. the §4.H table
		return strategy.SelectOrdering(indexstrategy.Shape{FromBound: true, EdgeBound: labelBound, ToBound: false})
	}
}

func scanInOrdering(strategy indexstrategy.Strategy, labelBound bool) indexstrategy.Ordering {
	switch strategy {
	case indexstrategy.Adjacency:
		return indexstrategy.IN
	case indexstrategy.TripleStore:
		return indexstrategy.POS
	default:
		return strategy.SelectOrdering(indexstrategy.Shape{FromBound: false, EdgeBound: labelBound, ToBound: true})
	}
}

// allEdgesOrdering picks, for scanAllEdges, the ordering whose leading
// component is Edge when a label filter is supplied (so the label narrows
// to a contiguous range), else the strategy's canonical first ordering.
func allEdgesOrdering(strategy indexstrategy.Strategy, labelBound bool) indexstrategy.Ordering {
	orderings := strategy.Orderings()
	if labelBound {
		for _, o := range orderings {
			perm := o.Permutation()
			if len(perm) > 0 && perm[0] == indexstrategy.Edge {
				return o
			}
		}
	}
	return orderings[0]
}

// Cursor streams EdgeInfo values lazily, one per matching key, in key
// order. It is single-pass; dropping it (Close without exhausting Next)
// or aborting the owning transaction terminates the scan early.
type Cursor struct {
	it       kv.Iterator
	scanner  *Scanner
	ordering indexstrategy.Ordering
	remain   map[indexstrategy.Component]tupleenc.TupleElement
	cur      EdgeInfo
	err      error
}

// Next advances the cursor, skipping keys that fail the in-memory filter.
// Returns false at end of range or on a decode error (check Err()).
func (c *Cursor) Next() bool {
	for c.it.Next() {
		info, ok, err := c.decode(c.it.Key())
		if err != nil {
			c.err = err
			return false
		}
		if !ok {
			continue
		}
		c.cur = info
		return true
	}
	return false
}

func (c *Cursor) decode(key []byte) (EdgeInfo, bool, error) {
	sub := c.scanner.orderingSubspace(c.ordering)
	tup, err := sub.Unpack(key)
	if err != nil {
		return EdgeInfo{}, false, err
	}
	perm := c.ordering.Permutation()
	vals := make(map[indexstrategy.Component]tupleenc.TupleElement, 3)
	for i, comp := range perm {
		if i >= len(tup) {
			return EdgeInfo{}, false, tupleenc.ErrMalformedTuple
		}
		vals[comp] = tup[i]
	}
	var graph *tupleenc.TupleElement
	if c.scanner.graphEnabled && len(tup) > len(perm) {
		g := tup[len(perm)]
		graph = &g
	}
	for comp, want := range c.remain {
		if got, ok := vals[comp]; !ok || !got.Equal(want) {
			return EdgeInfo{}, false, nil
		}
	}
	edge := tupleenc.Nil()
	if v, ok := vals[indexstrategy.Edge]; ok {
		edge = v
	}
	return EdgeInfo{
		Source:    vals[indexstrategy.From],
		Target:    vals[indexstrategy.To],
		EdgeLabel: edge,
		Graph:     graph,
	}, true, nil
}

// Edge returns the current edge. Valid only after Next returns true.
func (c *Cursor) Edge() EdgeInfo { return c.cur }

// Err returns the first error encountered, if any.
func (c *Cursor) Err() error { return c.err }

// Close releases the underlying iterator.
func (c *Cursor) Close() error { return c.it.Close() }

func (s *Scanner) scan(tx kv.Transaction, ordering indexstrategy.Ordering, b bound) (*Cursor, error) {
	prefix, remaining := b.split(ordering)
	sub := s.orderingSubspace(ordering)
	begin, end := rangeForPrefix(sub, prefix)
	it, err := tx.GetRange(kv.FirstGreaterOrEqual(begin), kv.FirstGreaterOrEqual(end))
	if err != nil {
		return nil, err
	}
	return &Cursor{it: it, scanner: s, ordering: ordering, remain: remaining}, nil
}

// ScanAllEdges yields every edge once, in key order, optionally narrowed
// to a single edge label.
func (s *Scanner) ScanAllEdges(tx kv.Transaction, label *tupleenc.TupleElement) (*Cursor, error) {
	b := newBound()
	if label != nil {
		b.vals[indexstrategy.Edge] = *label
	}
	ordering := allEdgesOrdering(s.strategy, label != nil)
	return s.scan(tx, ordering, b)
}

// ScanOutgoing yields edges whose source equals from, optionally
// narrowed to a single edge label.
func (s *Scanner) ScanOutgoing(tx kv.Transaction, from tupleenc.TupleElement, label *tupleenc.TupleElement) (*Cursor, error) {
	b := newBound()
	b.vals[indexstrategy.From] = from
	if label != nil {
		b.vals[indexstrategy.Edge] = *label
	}
	ordering := scanOutOrdering(s.strategy, label != nil)
	return s.scan(tx, ordering, b)
}

// ScanIncoming yields edges whose target equals to, optionally narrowed
// to a single edge label.
func (s *Scanner) ScanIncoming(tx kv.Transaction, to tupleenc.TupleElement, label *tupleenc.TupleElement) (*Cursor, error) {
	b := newBound()
	b.vals[indexstrategy.To] = to
	if label != nil {
		b.vals[indexstrategy.Edge] = *label
	}
	ordering := scanInOrdering(s.strategy, label != nil)
	return s.scan(tx, ordering, b)
}

// BatchScanOutgoing is equivalent to the union of per-id ScanOutgoing
// calls, performed as range reads on a single transaction.
func (s *Scanner) BatchScanOutgoing(tx kv.Transaction, ids []tupleenc.TupleElement, label *tupleenc.TupleElement) ([]*Cursor, error) {
	cursors := make([]*Cursor, 0, len(ids))
	for _, id := range ids {
		c, err := s.ScanOutgoing(tx, id, label)
		if err != nil {
			for _, prev := range cursors {
				_ = prev.Close()
			}
			return nil, err
		}
		cursors = append(cursors, c)
	}
	return cursors, nil
}

// BatchScanIncoming is equivalent to the union of per-id ScanIncoming
// calls, performed as range reads on a single transaction.
func (s *Scanner) BatchScanIncoming(tx kv.Transaction, ids []tupleenc.TupleElement, label *tupleenc.TupleElement) ([]*Cursor, error) {
	cursors := make([]*Cursor, 0, len(ids))
	for _, id := range ids {
		c, err := s.ScanIncoming(tx, id, label)
		if err != nil {
			for _, prev := range cursors {
				_ = prev.Close()
			}
			return nil, err
		}
		cursors = append(cursors, c)
	}
	return cursors, nil
}
