package querybuild

import "github.com/aleksaelezovic/graphcore/pkg/queryast"

func Var(name string) *queryast.VariableExpr {
	return &queryast.VariableExpr{Variable: queryast.NewVariable(name)}
}

func Lit(value string) *queryast.TermExpr {
	return &queryast.TermExpr{Term: queryast.NewLiteral(value)}
}

func IRI(iri string) *queryast.TermExpr {
	return &queryast.TermExpr{Term: queryast.NewIRI(iri)}
}

func TermOf(t queryast.Term) *queryast.TermExpr {
	return &queryast.TermExpr{Term: t}
}

func binary(op queryast.Operator, l, r queryast.Expression) *queryast.BinaryExpr {
	return &queryast.BinaryExpr{Left: l, Right: r, Operator: op}
}

func unary(op queryast.Operator, e queryast.Expression) *queryast.UnaryExpr {
	return &queryast.UnaryExpr{Operand: e, Operator: op}
}

func And(l, r queryast.Expression) *queryast.BinaryExpr { return binary(queryast.OpAnd, l, r) }
func Or(l, r queryast.Expression) *queryast.BinaryExpr  { return binary(queryast.OpOr, l, r) }
func Not(e queryast.Expression) *queryast.UnaryExpr     { return unary(queryast.OpNot, e) }

func Eq(l, r queryast.Expression) *queryast.BinaryExpr { return binary(queryast.OpEqual, l, r) }
func Ne(l, r queryast.Expression) *queryast.BinaryExpr { return binary(queryast.OpNotEqual, l, r) }
func Lt(l, r queryast.Expression) *queryast.BinaryExpr { return binary(queryast.OpLessThan, l, r) }
func Le(l, r queryast.Expression) *queryast.BinaryExpr {
	return binary(queryast.OpLessThanOrEqual, l, r)
}
func Gt(l, r queryast.Expression) *queryast.BinaryExpr { return binary(queryast.OpGreaterThan, l, r) }
func Ge(l, r queryast.Expression) *queryast.BinaryExpr {
	return binary(queryast.OpGreaterThanOrEqual, l, r)
}

func Add(l, r queryast.Expression) *queryast.BinaryExpr { return binary(queryast.OpAdd, l, r) }
func Sub(l, r queryast.Expression) *queryast.BinaryExpr { return binary(queryast.OpSubtract, l, r) }
func Mul(l, r queryast.Expression) *queryast.BinaryExpr { return binary(queryast.OpMultiply, l, r) }
func Div(l, r queryast.Expression) *queryast.BinaryExpr { return binary(queryast.OpDivide, l, r) }

func Like(l, r queryast.Expression) *queryast.BinaryExpr { return binary(queryast.OpLike, l, r) }

func IsNull(e queryast.Expression) *queryast.UnaryExpr { return unary(queryast.OpIsNull, e) }

// In builds `operand IN (list...)`; NotIn builds the negated form.
func In(operand queryast.Expression, list ...queryast.Expression) *queryast.InExpr {
	return &queryast.InExpr{Operand: operand, List: list}
}

func NotIn(operand queryast.Expression, list ...queryast.Expression) *queryast.InExpr {
	return &queryast.InExpr{Operand: operand, List: list, Negated: true}
}

// Between builds `operand BETWEEN low AND high`; NotBetween the negated form.
func Between(operand, low, high queryast.Expression) *queryast.BetweenExpr {
	return &queryast.BetweenExpr{Operand: operand, Low: low, High: high}
}

func NotBetween(operand, low, high queryast.Expression) *queryast.BetweenExpr {
	return &queryast.BetweenExpr{Operand: operand, Low: low, High: high, Negated: true}
}

// Case builds a CASE WHEN ... END expression with no ELSE arm; use
// CaseElse to attach a default.
func Case(whens ...queryast.CaseWhen) *queryast.CaseExpr {
	return &queryast.CaseExpr{Whens: whens}
}

func CaseElse(def queryast.Expression, whens ...queryast.CaseWhen) *queryast.CaseExpr {
	return &queryast.CaseExpr{Whens: whens, Default: def}
}

func When(cond, result queryast.Expression) queryast.CaseWhen {
	return queryast.CaseWhen{Condition: cond, Result: result}
}

func Call(function string, args ...queryast.Expression) *queryast.FunctionCallExpr {
	return &queryast.FunctionCallExpr{Function: function, Arguments: args}
}

func aggregate(kind queryast.AggregateKind, distinct bool, arg queryast.Expression) *queryast.AggregateExpr {
	return &queryast.AggregateExpr{Kind: kind, Distinct: distinct, Argument: arg}
}

// CountStar builds COUNT(*), the only aggregate form with a nil Argument.
func CountStar() *queryast.AggregateExpr { return aggregate(queryast.AggCount, false, nil) }

func Count(arg queryast.Expression) *queryast.AggregateExpr {
	return aggregate(queryast.AggCount, false, arg)
}

func CountDistinct(arg queryast.Expression) *queryast.AggregateExpr {
	return aggregate(queryast.AggCount, true, arg)
}

func Sum(arg queryast.Expression) *queryast.AggregateExpr { return aggregate(queryast.AggSum, false, arg) }
func Avg(arg queryast.Expression) *queryast.AggregateExpr { return aggregate(queryast.AggAvg, false, arg) }
func Min(arg queryast.Expression) *queryast.AggregateExpr { return aggregate(queryast.AggMin, false, arg) }
func Max(arg queryast.Expression) *queryast.AggregateExpr { return aggregate(queryast.AggMax, false, arg) }

// GroupConcat builds GROUP_CONCAT(arg [; SEPARATOR = sep]); pass sep == ""
// for no explicit separator clause.
func GroupConcat(arg queryast.Expression, distinct bool, sep string) *queryast.AggregateExpr {
	e := aggregate(queryast.AggGroupConcat, distinct, arg)
	if sep != "" {
		e.Separator = &sep
	}
	return e
}

// Exists builds EXISTS {pattern}; NotExists builds its negation.
func Exists(pattern queryast.GraphPattern) *queryast.ExistsExpr {
	return &queryast.ExistsExpr{Pattern: pattern}
}

func NotExists(pattern queryast.GraphPattern) *queryast.ExistsExpr {
	return &queryast.ExistsExpr{Pattern: pattern, Negated: true}
}

// ScalarSubquery wraps a full embedded SELECT as an expression, for use in
// a FILTER/IN operand or BIND source.
func ScalarSubquery(q *queryast.Query) *queryast.SubqueryExpr {
	return &queryast.SubqueryExpr{Query: q.Select}
}

// PathExpr lifts a property path into expression position, for functions
// that take a path rather than traversing it as a triple-pattern verb.
func PathExpr(path queryast.PropertyPath) *queryast.PropertyPathExpr {
	return &queryast.PropertyPathExpr{Path: path}
}
