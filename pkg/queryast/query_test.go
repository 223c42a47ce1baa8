package queryast

import "testing"

func TestSelectQueryProjectionShapes(t *testing.T) {
	limit := 10
	q := &SelectQuery{
		Distinct: true,
		Projection: []ProjectItem{
			{Variable: NewVariable("name")},
			{Variable: NewVariable("doubled"), Expr: &BinaryExpr{
				Left:     &VariableExpr{Variable: NewVariable("x")},
				Operator: OpMultiply,
				Right:    &TermExpr{Term: NewLiteral("2")},
			}},
		},
		Where: &BasicPattern{},
		Limit: &limit,
	}
	if len(q.Projection) != 2 {
		t.Fatalf("got %d projections, want 2", len(q.Projection))
	}
	if q.Projection[0].Expr != nil {
		t.Error("bare variable projection should have a nil expr")
	}
	if q.Projection[1].Expr == nil {
		t.Error("computed projection should carry an expr")
	}
	if q.Limit == nil || *q.Limit != 10 {
		t.Error("expected limit to round-trip")
	}
}

func TestConstructWhereShorthandTemplateEqualsBGP(t *testing.T) {
	where := &BasicPattern{Triples: []TriplePattern{triplePattern("s", "http://example.org/p", "o")}}
	flat, ok := FlattenBasic(where)
	if !ok {
		t.Fatal("expected where clause to flatten")
	}
	c := &ConstructQuery{Template: flat.Triples, Where: where}
	if len(c.Template) != 1 {
		t.Fatalf("got %d template triples, want 1", len(c.Template))
	}
}

func TestGraphRefVariants(t *testing.T) {
	refs := []*GraphRef{
		{IRI: NewIRI("http://example.org/g")},
		{Default: true},
		{Named: true},
		{All: true},
	}
	if refs[0].IRI == nil {
		t.Error("expected explicit graph ref to carry an IRI")
	}
	if !refs[1].Default || !refs[2].Named || !refs[3].All {
		t.Error("expected pseudo-graph flags to round-trip")
	}
}

func TestUpdateOperationModifyShape(t *testing.T) {
	op := &UpdateOperation{
		Kind:           UpdateModify,
		DeleteTemplate: []Quad{{Triple: triplePattern("s", "http://example.org/p", "o")}},
		InsertTemplate: []Quad{{Triple: triplePattern("s", "http://example.org/p2", "o2")}},
		Where:          &BasicPattern{},
	}
	if op.Kind != UpdateModify {
		t.Error("wrong update kind")
	}
	if len(op.DeleteTemplate) != 1 || len(op.InsertTemplate) != 1 {
		t.Error("expected delete/insert templates to round-trip")
	}
}
