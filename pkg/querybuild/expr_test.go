package querybuild

import (
	"testing"

	"github.com/aleksaelezovic/graphcore/pkg/queryast"
)

func TestComparisonOperatorsProduceExpectedOperator(t *testing.T) {
	cases := []struct {
		name string
		expr *queryast.BinaryExpr
		op   queryast.Operator
	}{
		{"Eq", Eq(Var("a"), Lit("1")), queryast.OpEqual},
		{"Ne", Ne(Var("a"), Lit("1")), queryast.OpNotEqual},
		{"Lt", Lt(Var("a"), Lit("1")), queryast.OpLessThan},
		{"Le", Le(Var("a"), Lit("1")), queryast.OpLessThanOrEqual},
		{"Gt", Gt(Var("a"), Lit("1")), queryast.OpGreaterThan},
		{"Ge", Ge(Var("a"), Lit("1")), queryast.OpGreaterThanOrEqual},
		{"Add", Add(Var("a"), Lit("1")), queryast.OpAdd},
		{"Like", Like(Var("a"), Lit("x%")), queryast.OpLike},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.expr.Operator != c.op {
				t.Errorf("got operator %v, want %v", c.expr.Operator, c.op)
			}
		})
	}
}

func TestInAndBetweenNegation(t *testing.T) {
	in := In(Var("x"), Lit("1"), Lit("2"))
	if in.Negated {
		t.Error("expected In to build a non-negated form")
	}
	notIn := NotIn(Var("x"), Lit("1"))
	if !notIn.Negated {
		t.Error("expected NotIn to set Negated")
	}
	between := Between(Var("x"), Lit("1"), Lit("10"))
	if between.Negated {
		t.Error("expected Between to build a non-negated form")
	}
	notBetween := NotBetween(Var("x"), Lit("1"), Lit("10"))
	if !notBetween.Negated {
		t.Error("expected NotBetween to set Negated")
	}
}

func TestCaseWithAndWithoutElse(t *testing.T) {
	bare := Case(When(Eq(Var("x"), Lit("1")), Lit("one")))
	if bare.Default != nil {
		t.Error("expected Case with no ELSE to leave Default nil")
	}
	withElse := CaseElse(Lit("other"), When(Eq(Var("x"), Lit("1")), Lit("one")))
	if withElse.Default == nil {
		t.Error("expected CaseElse to set Default")
	}
	if len(withElse.Whens) != 1 {
		t.Fatalf("got %d whens, want 1", len(withElse.Whens))
	}
}

func TestCountStarHasNilArgument(t *testing.T) {
	c := CountStar()
	if c.Argument != nil {
		t.Error("expected COUNT(*) to carry a nil argument")
	}
	if c.Kind != queryast.AggCount {
		t.Errorf("got kind %v, want AggCount", c.Kind)
	}
}

func TestCountDistinctSetsDistinct(t *testing.T) {
	c := CountDistinct(Var("x"))
	if !c.Distinct {
		t.Error("expected CountDistinct to set Distinct")
	}
	if c.Argument == nil {
		t.Error("expected a non-nil argument")
	}
}

func TestGroupConcatSeparatorOptional(t *testing.T) {
	bare := GroupConcat(Var("x"), false, "")
	if bare.Separator != nil {
		t.Error("expected empty separator string to leave Separator nil")
	}
	withSep := GroupConcat(Var("x"), true, ",")
	if withSep.Separator == nil || *withSep.Separator != "," {
		t.Fatalf("got separator %v, want \",\"", withSep.Separator)
	}
	if !withSep.Distinct {
		t.Error("expected Distinct to round-trip")
	}
}

func TestExistsAndNotExists(t *testing.T) {
	pattern := Basic()
	e := Exists(pattern)
	if e.Negated {
		t.Error("expected Exists to build a non-negated form")
	}
	ne := NotExists(pattern)
	if !ne.Negated {
		t.Error("expected NotExists to set Negated")
	}
}

func TestScalarSubqueryWrapsSelectQuery(t *testing.T) {
	inner := Select().ProjectVar("s").Build()
	sub := ScalarSubquery(inner)
	if sub.Query != inner.Select {
		t.Error("expected ScalarSubquery to wrap the inner SelectQuery")
	}
}
