package querybuild

import (
	"testing"

	"github.com/aleksaelezovic/graphcore/pkg/queryast"
)

func TestJoinAllBuildsLeftLeaningChain(t *testing.T) {
	a := Basic(Triple(Var("s").Variable, IRI("http://ex/a").Term, Var("o").Variable))
	b := Basic(Triple(Var("s").Variable, IRI("http://ex/b").Term, Var("o").Variable))
	c := Basic(Triple(Var("s").Variable, IRI("http://ex/c").Term, Var("o").Variable))

	joined := JoinAll(a, b, c)
	top, ok := joined.(*queryast.JoinPattern)
	if !ok {
		t.Fatalf("got %T, want *JoinPattern", joined)
	}
	if top.Right != c {
		t.Error("expected the last pattern on the right of the outermost join")
	}
	inner, ok := top.Left.(*queryast.JoinPattern)
	if !ok {
		t.Fatalf("got %T, want nested *JoinPattern", top.Left)
	}
	if inner.Left != a || inner.Right != b {
		t.Error("expected a left-leaning chain a-b then (a-b)-c")
	}
}

func TestJoinAllPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected JoinAll() with no patterns to panic")
		}
	}()
	JoinAll()
}

func TestFlattenBasicAcceptsJoinAllOutput(t *testing.T) {
	a := Basic(Triple(Var("s").Variable, IRI("http://ex/a").Term, Var("o").Variable))
	b := Basic(Triple(Var("s").Variable, IRI("http://ex/b").Term, Var("o").Variable))
	flat, ok := queryast.FlattenBasic(JoinAll(a, b))
	if !ok {
		t.Fatal("expected a join of two basic patterns to flatten")
	}
	if len(flat.Triples) != 2 {
		t.Fatalf("got %d triples, want 2", len(flat.Triples))
	}
}

func TestOptionalHasNoFilterByDefault(t *testing.T) {
	left := Basic()
	right := Basic()
	opt := Optional(left, right)
	if opt.Filter != nil {
		t.Error("expected a bare Optional to carry no filter")
	}
	ifOpt := OptionalIf(left, right, Eq(Var("s"), Lit("x")))
	if ifOpt.Filter == nil {
		t.Error("expected OptionalIf to carry the given filter")
	}
}

func TestUnionAllBuildsLeftLeaningChain(t *testing.T) {
	a, b, c := Basic(), Basic(), Basic()
	u := UnionAll(a, b, c).(*queryast.UnionPattern)
	if u.Right != c {
		t.Error("expected the last pattern on the right of the outermost union")
	}
}

func TestValuesBuildsMatchingVarsAndRows(t *testing.T) {
	v := Values([]string{"x", "y"},
		[]queryast.Term{queryast.NewLiteral("1"), nil},
		[]queryast.Term{queryast.NewLiteral("2"), queryast.NewLiteral("3")},
	)
	if len(v.Vars) != 2 || v.Vars[0].Name != "x" || v.Vars[1].Name != "y" {
		t.Fatalf("got vars %+v", v.Vars)
	}
	if len(v.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(v.Rows))
	}
	if v.Rows[0][1] != nil {
		t.Error("expected an UNDEF row entry to stay nil")
	}
}

func TestBindSetsVariableAndExpr(t *testing.T) {
	b := Bind(Basic(), "doubled", Mul(Var("x"), Lit("2")))
	if b.Variable.Name != "doubled" {
		t.Errorf("got variable %q", b.Variable.Name)
	}
	if b.Expr == nil {
		t.Error("expected Bind to carry the given expression")
	}
}

func TestSubqueryCarriesAlias(t *testing.T) {
	inner := Select().ProjectVar("s").Build()
	sp := Subquery(inner, "t")
	if sp.Alias != "t" {
		t.Errorf("got alias %q, want %q", sp.Alias, "t")
	}
	if sp.Query != inner.Select {
		t.Error("expected the subquery pattern to wrap the inner SelectQuery")
	}
}
