// Package indexstrategy names the storage strategies (2-index adjacency,
// 3-index triple-store, 6-index hexastore) that the graph index maintains
// over triples, and the subspace-child numbering each ordering is assigned.
package indexstrategy

// Strategy selects how many redundant key orderings are maintained per
// triple.
type Strategy int

const (
	// Adjacency maintains 2 orderings: OUT, IN.
	Adjacency Strategy = iota
	// TripleStore maintains 3 orderings: SPO, POS, OSP.
	TripleStore
	// Hexastore maintains 6 orderings: SPO, SOP, PSO, POS, OSP, OPS.
	Hexastore
)

func (s Strategy) String() string {
	switch s {
	case Adjacency:
		return "adjacency"
	case TripleStore:
		return "tripleStore"
	case Hexastore:
		return "hexastore"
	default:
		return "unknown"
	}
}

// Ordering is one permutation of (from, edge, to) maintained by a
// strategy. The integer value is the small subspace child assigned to it
// (persisted key layout, bit-exact per §6).
type Ordering int

const (
	OUT Ordering = iota
	IN
	SPO
	POS
	OSP
	SOP
	PSO
	OPS
)

func (o Ordering) String() string {
	switch o {
	case OUT:
		return "OUT"
	case IN:
		return "IN"
	case SPO:
		return "SPO"
	case POS:
		return "POS"
	case OSP:
		return "OSP"
	case SOP:
		return "SOP"
	case PSO:
		return "PSO"
	case OPS:
		return "OPS"
	default:
		return "unknown"
	}
}

// Component names a position in a (from, edge, to) triple.
type Component int

const (
	From Component = iota
	Edge
	To
)

// Permutation returns, for a given ordering, the sequence of Component
// values in the order they appear in the packed key (graph, when
// configured, is always appended last and is not part of this
// permutation).
func (o Ordering) Permutation() []Component {
	switch o {
	case OUT:
		return []Component{Edge, From, To} // scanOutgoing prefixes on (label, from), §4.B
	case IN:
		return []Component{Edge, To, From} // scanIncoming prefixes on (label, to), §4.B
	case SPO:
		return []Component{From, Edge, To}
	case POS:
		return []Component{Edge, To, From}
	case OSP:
		return []Component{To, From, Edge}
	case SOP:
		return []Component{From, To, Edge}
	case PSO:
		return []Component{Edge, From, To}
	case OPS:
		return []Component{To, Edge, From}
	default:
		return nil
	}
}

// Orderings returns the set of orderings a strategy maintains, in the
// order the Strategy constants above list them; for Hexastore this is not
// ascending subspace-child order.
func (s Strategy) Orderings() []Ordering {
	switch s {
	case Adjacency:
		return []Ordering{OUT, IN}
	case TripleStore:
		return []Ordering{SPO, POS, OSP}
	case Hexastore:
		return []Ordering{SPO, SOP, PSO, POS, OSP, OPS}
	default:
		return nil
	}
}

// Shape describes which of (from, edge, to) are bound in a query pattern,
// used by index selection (§4.H).
type Shape struct {
	FromBound bool
	EdgeBound bool
	ToBound   bool
}

// SelectOrdering implements the §4.H index-selection table verbatim: for a
// given strategy and bound-position shape, returns the ordering whose
// scan would be a single contiguous range for the query.
//
// Adjacency only ever maintains OUT/IN keys (§3), yet the table names
// OSP/POS as the "ideal" ordering for shapes adjacency cannot natively
// satisfy (from+to bound with edge free, or edge-only). Those orderings
// are absent from Strategy.Orderings(), so no keys exist under them. The
// scanner (pkg/scanedge) does not consult this table for Adjacency: it
// always scans OUT or IN and filters any bound component that falls past
// the key prefix in memory.
func (s Strategy) SelectOrdering(shape Shape) Ordering {
	f, e, t := shape.FromBound, shape.EdgeBound, shape.ToBound
	switch {
	case f && e && t, f && e && !t, f && !e && !t:
		return map[Strategy]Ordering{Adjacency: OUT, TripleStore: SPO, Hexastore: SPO}[s]
	case f && !e && t:
		return map[Strategy]Ordering{Adjacency: OSP, TripleStore: OSP, Hexastore: SOP}[s]
	case !f && e && t:
		return map[Strategy]Ordering{Adjacency: IN, TripleStore: POS, Hexastore: POS}[s]
	case !f && e && !t:
		return map[Strategy]Ordering{Adjacency: POS, TripleStore: POS, Hexastore: PSO}[s]
	case !f && !e && t:
		return map[Strategy]Ordering{Adjacency: IN, TripleStore: OSP, Hexastore: OSP}[s]
	default: // !f && !e && !t
		return map[Strategy]Ordering{Adjacency: OUT, TripleStore: SPO, Hexastore: SPO}[s]
	}
}
