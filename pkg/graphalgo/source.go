package graphalgo

import (
	"sort"

	"github.com/aleksaelezovic/graphcore/pkg/kv"
	"github.com/aleksaelezovic/graphcore/pkg/scanedge"
	"github.com/aleksaelezovic/graphcore/pkg/tupleenc"
)

// Source is the scanner+store pair every algorithm rides on, plus the
// optional edge-label filter common to all of them. Each neighbor lookup
// opens and releases its own transaction — no algorithm holds more than
// one transaction at a time (§5).
type Source struct {
	Store   kv.Store
	Scanner *scanedge.Scanner
	Label   *tupleenc.TupleElement

	// Batch is not read by any traversal: each neighbor lookup opens its
	// own transaction and no frontier is prefetched in batches. batchSize
	// resolves an unset value to 100.
	Batch int
}

func (s *Source) batchSize() int {
	if s.Batch > 0 {
		return s.Batch
	}
	return 100
}

func (s *Source) txConfig(writable bool, kind kv.TxKind) kv.Config {
	return kv.Config{Kind: kind, Writable: writable, Snapshot: !writable}
}

// Edge is a (from, to) pair read off the scanner, label already applied.
type Edge struct {
	From NodeID
	To   NodeID
}

// Outgoing returns the sorted, deduplicated target set reachable
// directly from node.
func (s *Source) Outgoing(node NodeID) ([]NodeID, error) {
	var out []NodeID
	err := kv.WithTransaction(s.Store, s.txConfig(false, kv.TxDefault), func(tx kv.Transaction) error {
		cur, err := s.Scanner.ScanOutgoing(tx, node, s.Label)
		if err != nil {
			return err
		}
		defer cur.Close()
		for cur.Next() {
			out = append(out, cur.Edge().Target)
		}
		return cur.Err()
	})
	if err != nil {
		return nil, err
	}
	return dedupSorted(out), nil
}

// Incoming returns the sorted, deduplicated source set with a direct
// edge into node.
func (s *Source) Incoming(node NodeID) ([]NodeID, error) {
	var out []NodeID
	err := kv.WithTransaction(s.Store, s.txConfig(false, kv.TxDefault), func(tx kv.Transaction) error {
		cur, err := s.Scanner.ScanIncoming(tx, node, s.Label)
		if err != nil {
			return err
		}
		defer cur.Close()
		for cur.Next() {
			out = append(out, cur.Edge().Source)
		}
		return cur.Err()
	})
	if err != nil {
		return nil, err
	}
	return dedupSorted(out), nil
}

// AllEdges returns every (source, target) pair once, read under one
// batch-configured transaction. Used by algorithms needing the full
// adjacency at once (topological sort, SCC, PageRank, LPA).
func (s *Source) AllEdges() ([]Edge, error) {
	var edges []Edge
	err := kv.WithTransaction(s.Store, s.txConfig(false, kv.TxBatch), func(tx kv.Transaction) error {
		cur, err := s.Scanner.ScanAllEdges(tx, s.Label)
		if err != nil {
			return err
		}
		defer cur.Close()
		for cur.Next() {
			e := cur.Edge()
			edges = append(edges, Edge{From: e.Source, To: e.Target})
		}
		return cur.Err()
	})
	return edges, err
}

func dedupSorted(ids []NodeID) []NodeID {
	if len(ids) == 0 {
		return ids
	}
	keys := make(map[string]NodeID, len(ids))
	for _, id := range ids {
		keys[nodeKey(id)] = id
	}
	out := make([]NodeID, 0, len(keys))
	order := make([]string, 0, len(keys))
	for k := range keys {
		order = append(order, k)
	}
	sort.Strings(order)
	for _, k := range order {
		out = append(out, keys[k])
	}
	return out
}
