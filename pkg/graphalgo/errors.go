// Package graphalgo implements the graph algorithms that ride on the edge
// scanner (pkg/scanedge) and the KV transaction API (pkg/kv): shortest
// path (unweighted BFS, bidirectional, all-shortest, weighted Dijkstra),
// cycle detection, topological sort, Tarjan's SCC, label-propagation
// community detection, and PageRank.
//
// Every algorithm takes an optional edge-label filter and returns a
// result record carrying the answer, NodesExplored, Duration, and a
// completeness marker. An algorithm that enforces an exploration limit
// reports explicitly whether its negative answer is definitive — a limit
// condition is a successful result plus a marker, never a silent
// definitive-looking negative (§7).
package graphalgo

import (
	"fmt"

	"github.com/aleksaelezovic/graphcore/pkg/tupleenc"
	"github.com/zeebo/xxh3"
)

// LimitReasonKind names why an algorithm stopped before exhausting the
// search space.
type LimitReasonKind int

const (
	LimitNone LimitReasonKind = iota
	LimitMaxNodesReached
	LimitMaxCyclesReached
	LimitMaxComponentsReached
	LimitTimeout
)

// LimitReason is a non-error signal embedded in successful results.
type LimitReason struct {
	Kind     LimitReasonKind
	Explored int
	Found    int
	Limit    int
}

func (r LimitReason) String() string {
	switch r.Kind {
	case LimitNone:
		return "none"
	case LimitMaxNodesReached:
		return fmt.Sprintf("maxNodesReached(%d, %d)", r.Explored, r.Limit)
	case LimitMaxCyclesReached:
		return fmt.Sprintf("maxCyclesReached(%d, %d)", r.Found, r.Limit)
	case LimitMaxComponentsReached:
		return "maxComponentsReached"
	case LimitTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// CycleDetectionError is raised only by WouldCreateCycle, and only when
// the boolean answer would otherwise be ambiguous — its return value is
// inherently lossy, so it is the one algorithm that must raise rather
// than return a best-effort result (§7).
type CycleDetectionError struct {
	Message  string
	Explored int
	Limit    int
}

func (e *CycleDetectionError) Error() string { return e.Message }

// LimitReached builds the CycleDetectionError WouldCreateCycle raises
// when its bounded BFS exhausts maxNodes before resolving reachability.
func LimitReached(explored, limit int) *CycleDetectionError {
	return &CycleDetectionError{
		Message:  fmt.Sprintf("graphalgo: node limit %d reached before reachability was resolved", limit),
		Explored: explored,
		Limit:    limit,
	}
}

// SCCErrorKind discriminates strongly-connected-component failures.
type SCCErrorKind int

const (
	GraphIndexNotFound SCCErrorKind = iota
)

// SCCError is the structured error kind for SCC computation failures.
type SCCError struct {
	Kind    SCCErrorKind
	Message string
}

func (e *SCCError) Error() string { return e.Message }

// NodeID is the generic vertex identity used across algorithms: any
// permitted tuple scalar can name a node.
type NodeID = tupleenc.TupleElement

// nodeKey turns a NodeID into a comparable map key (TupleElement itself
// is not guaranteed comparable with ==, since it may carry a []byte
// payload), matching the sorted/deterministic-iteration discipline of
// katalvlaran-lvlath's core.Graph.
func nodeKey(n NodeID) string {
	switch n.Kind() {
	case tupleenc.KindString:
		s, _ := n.AsString()
		return "s:" + s
	case tupleenc.KindInt:
		i, _ := n.AsInt()
		return fmt.Sprintf("i:%d", i)
	case tupleenc.KindFloat:
		f, _ := n.AsFloat()
		return fmt.Sprintf("f:%g", f)
	case tupleenc.KindBool:
		b, _ := n.AsBool()
		return fmt.Sprintf("b:%t", b)
	case tupleenc.KindBytes:
		// Byte-string node ids are unbounded in length; hashing keeps the
		// map key fixed-width instead of copying arbitrarily long payloads
		// into every bucket the node touches across an algorithm's run.
		raw, _ := n.AsBytes()
		return fmt.Sprintf("x:%x", xxh3.Hash(raw))
	default:
		return "n:"
	}
}
