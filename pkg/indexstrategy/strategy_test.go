package indexstrategy

import "testing"

func TestOrderingsPerStrategy(t *testing.T) {
	cases := []struct {
		strategy Strategy
		want     []Ordering
	}{
		{Adjacency, []Ordering{OUT, IN}},
		{TripleStore, []Ordering{SPO, POS, OSP}},
		{Hexastore, []Ordering{SPO, SOP, PSO, POS, OSP, OPS}},
	}
	for _, c := range cases {
		got := c.strategy.Orderings()
		if len(got) != len(c.want) {
			t.Fatalf("%s: got %v, want %v", c.strategy, got, c.want)
		}
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Errorf("%s[%d]: got %s, want %s", c.strategy, i, got[i], c.want[i])
			}
		}
	}
}

func TestSelectOrderingFullyBound(t *testing.T) {
	shape := Shape{FromBound: true, EdgeBound: true, ToBound: true}
	cases := map[Strategy]Ordering{Adjacency: OUT, TripleStore: SPO, Hexastore: SPO}
	for strategy, want := range cases {
		if got := strategy.SelectOrdering(shape); got != want {
			t.Errorf("%s: got %s, want %s", strategy, got, want)
		}
	}
}

func TestSelectOrderingUnbound(t *testing.T) {
	shape := Shape{}
	cases := map[Strategy]Ordering{Adjacency: OUT, TripleStore: SPO, Hexastore: SPO}
	for strategy, want := range cases {
		if got := strategy.SelectOrdering(shape); got != want {
			t.Errorf("%s: got %s, want %s", strategy, got, want)
		}
	}
}

func TestSelectOrderingFromToOnly(t *testing.T) {
	// Adjacency has no native index for this shape; the table still names
	// OSP, an ordering Adjacency does not maintain.
	shape := Shape{FromBound: true, ToBound: true}
	cases := map[Strategy]Ordering{Adjacency: OSP, TripleStore: OSP, Hexastore: SOP}
	for strategy, want := range cases {
		if got := strategy.SelectOrdering(shape); got != want {
			t.Errorf("%s: got %s, want %s", strategy, got, want)
		}
	}
}

func TestSelectOrderingEdgeToOnly(t *testing.T) {
	shape := Shape{EdgeBound: true, ToBound: true}
	cases := map[Strategy]Ordering{Adjacency: IN, TripleStore: POS, Hexastore: POS}
	for strategy, want := range cases {
		if got := strategy.SelectOrdering(shape); got != want {
			t.Errorf("%s: got %s, want %s", strategy, got, want)
		}
	}
}

func TestPermutationLeadsWithEdgeForOutAndIn(t *testing.T) {
	outPerm := OUT.Permutation()
	if len(outPerm) == 0 || outPerm[0] != Edge {
		t.Errorf("OUT permutation should lead with Edge (scanOutgoing prefixes on label), got %v", outPerm)
	}
	inPerm := IN.Permutation()
	if len(inPerm) == 0 || inPerm[0] != Edge {
		t.Errorf("IN permutation should lead with Edge (scanIncoming prefixes on label), got %v", inPerm)
	}
}

func TestOrderingStringers(t *testing.T) {
	orderings := []Ordering{OUT, IN, SPO, POS, OSP, SOP, PSO, OPS}
	for _, o := range orderings {
		if o.String() == "unknown" {
			t.Errorf("ordering %d missing String() case", o)
		}
	}
}
