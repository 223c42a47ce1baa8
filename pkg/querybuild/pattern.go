package querybuild

import "github.com/aleksaelezovic/graphcore/pkg/queryast"

// Triple builds a single triple pattern.
func Triple(s, p, o queryast.Term) queryast.TriplePattern {
	return queryast.TriplePattern{Subject: s, Predicate: p, Object: o}
}

// Basic builds a basic graph pattern (a flat conjunction of triples with no
// operator between them).
func Basic(triples ...queryast.TriplePattern) *queryast.BasicPattern {
	return &queryast.BasicPattern{Triples: triples}
}

// Join conjoins left and right. Chaining Join calls builds a left-leaning
// tree; callers that want the canonical flattened BasicPattern shape of
// §4.E should pass queryast.FlattenBasic the result.
func Join(left, right queryast.GraphPattern) *queryast.JoinPattern {
	return &queryast.JoinPattern{Left: left, Right: right}
}

// JoinAll folds a sequence of patterns into a left-leaning Join chain. It
// panics if patterns is empty — a builder call site should never reach
// here with no patterns to conjoin.
func JoinAll(patterns ...queryast.GraphPattern) queryast.GraphPattern {
	if len(patterns) == 0 {
		panic("querybuild: JoinAll requires at least one pattern")
	}
	out := patterns[0]
	for _, p := range patterns[1:] {
		out = Join(out, p)
	}
	return out
}

// Optional builds SPARQL OPTIONAL with no attached filter; use OptionalIf
// for an OPTIONAL { ... FILTER(...) } form.
func Optional(left, right queryast.GraphPattern) *queryast.LeftJoinPattern {
	return queryast.Optional(left, right)
}

// OptionalIf builds OPTIONAL with a filter compatible only with solutions
// satisfying cond.
func OptionalIf(left, right queryast.GraphPattern, cond queryast.Expression) *queryast.LeftJoinPattern {
	return &queryast.LeftJoinPattern{Left: left, Right: right, Filter: cond}
}

func Minus(left, right queryast.GraphPattern) *queryast.MinusPattern {
	return &queryast.MinusPattern{Left: left, Right: right}
}

func Union(left, right queryast.GraphPattern) *queryast.UnionPattern {
	return &queryast.UnionPattern{Left: left, Right: right}
}

// UnionAll folds a sequence of patterns into a left-leaning Union chain.
func UnionAll(patterns ...queryast.GraphPattern) queryast.GraphPattern {
	if len(patterns) == 0 {
		panic("querybuild: UnionAll requires at least one pattern")
	}
	out := patterns[0]
	for _, p := range patterns[1:] {
		out = Union(out, p)
	}
	return out
}

func Filter(pattern queryast.GraphPattern, cond queryast.Expression) *queryast.FilterPattern {
	return &queryast.FilterPattern{Pattern: pattern, Expr: cond}
}

func Bind(pattern queryast.GraphPattern, variable string, expr queryast.Expression) *queryast.BindPattern {
	return &queryast.BindPattern{Pattern: pattern, Variable: queryast.NewVariable(variable), Expr: expr}
}

func Graph(name queryast.Term, pattern queryast.GraphPattern) *queryast.GraphNamePattern {
	return &queryast.GraphNamePattern{Name: name, Pattern: pattern}
}

func Service(endpoint queryast.Term, pattern queryast.GraphPattern, silent bool) *queryast.ServicePattern {
	return &queryast.ServicePattern{Endpoint: endpoint, Pattern: pattern, Silent: silent}
}

// Values builds an inline VALUES table; a nil entry in a row leaves that
// variable unbound (UNDEF) for that row.
func Values(vars []string, rows ...[]queryast.Term) *queryast.ValuesPattern {
	vs := make([]*queryast.Variable, len(vars))
	for i, v := range vars {
		vs[i] = queryast.NewVariable(v)
	}
	return &queryast.ValuesPattern{Vars: vs, Rows: rows}
}

func Lateral(left, right queryast.GraphPattern) *queryast.LateralPattern {
	return &queryast.LateralPattern{Left: left, Right: right}
}

// Path builds a property-path triple pattern.
func Path(s queryast.Term, path queryast.PropertyPath, o queryast.Term) *queryast.PropertyPathPattern {
	return &queryast.PropertyPathPattern{Subject: s, Path: path, Object: o}
}

// Subquery embeds a nested SELECT as a pattern. alias is empty for a bare
// SPARQL `{ SELECT ... }` subquery, or set for a SQL `(SELECT ...) AS alias`
// FROM item.
func Subquery(q *queryast.Query, alias string) *queryast.SubqueryPattern {
	return &queryast.SubqueryPattern{Query: q.Select, Alias: alias}
}

// Relation builds a plain SQL table/CTE reference FROM item.
func Relation(name, alias string) *queryast.RelationPattern {
	return &queryast.RelationPattern{Name: name, Alias: alias}
}
