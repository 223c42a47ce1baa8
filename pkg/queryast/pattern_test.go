package queryast

import "testing"

func triplePattern(s, p, o string) TriplePattern {
	return TriplePattern{Subject: NewVariable(s), Predicate: NewIRI(p), Object: NewVariable(o)}
}

func TestFlattenBasicMergesJoinChain(t *testing.T) {
	a := &BasicPattern{Triples: []TriplePattern{triplePattern("s1", "http://example.org/p1", "o1")}}
	b := &BasicPattern{Triples: []TriplePattern{triplePattern("s2", "http://example.org/p2", "o2")}}
	joined := &JoinPattern{Left: a, Right: b}

	flat, ok := FlattenBasic(joined)
	if !ok {
		t.Fatal("expected flattening to succeed")
	}
	if len(flat.Triples) != 2 {
		t.Errorf("got %d triples, want 2", len(flat.Triples))
	}
}

func TestFlattenBasicRejectsNonBasicChild(t *testing.T) {
	a := &BasicPattern{Triples: []TriplePattern{triplePattern("s1", "http://example.org/p1", "o1")}}
	union := &UnionPattern{Left: a, Right: a}
	joined := &JoinPattern{Left: a, Right: union}

	if _, ok := FlattenBasic(joined); ok {
		t.Error("expected flattening to fail across a union")
	}
}

func TestOptionalBuildsLeftJoinWithNilFilter(t *testing.T) {
	a := &BasicPattern{}
	b := &BasicPattern{}
	lj := Optional(a, b)
	if lj.Left != GraphPattern(a) || lj.Right != GraphPattern(b) {
		t.Error("expected Optional to wrap left/right unchanged")
	}
	if lj.Filter != nil {
		t.Error("expected Optional's implicit filter to be nil")
	}
	if lj.PatternKind() != PatternLeftJoin {
		t.Error("wrong pattern kind")
	}
}

func TestGraphPatternKindsAreDistinct(t *testing.T) {
	patterns := []GraphPattern{
		&BasicPattern{},
		&JoinPattern{},
		&LeftJoinPattern{},
		&MinusPattern{},
		&UnionPattern{},
		&FilterPattern{},
		&BindPattern{},
		&GraphNamePattern{},
		&ServicePattern{},
		&ValuesPattern{},
		&LateralPattern{},
		&PropertyPathPattern{},
		&SubqueryPattern{},
	}
	seen := map[GraphPatternKind]bool{}
	for _, p := range patterns {
		if seen[p.PatternKind()] {
			t.Errorf("duplicate pattern kind %d", p.PatternKind())
		}
		seen[p.PatternKind()] = true
	}
}
