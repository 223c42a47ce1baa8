// Package querybuild is a fluent query builder: chained constructors that
// assemble the same queryast.Query tree the SPARQL and SQL/PGQ parsers
// produce, for callers that want to construct a query programmatically
// rather than generate and parse source text. Every method returns a new
// value; none mutates its receiver, so a partially-built query can be
// safely branched into several variants.
package querybuild

import "github.com/aleksaelezovic/graphcore/pkg/queryast"

// Select starts a SELECT query builder with an empty projection (SELECT *
// until Project is called at least once).
func Select() SelectBuilder {
	return SelectBuilder{q: queryast.SelectQuery{Star: true}}
}

// SelectBuilder builds a queryast.SelectQuery one clause at a time.
type SelectBuilder struct {
	q queryast.SelectQuery
}

// Project adds one or more projection items, switching off SELECT *.
func (b SelectBuilder) Project(items ...queryast.ProjectItem) SelectBuilder {
	b.q.Star = false
	b.q.Projection = append(append([]queryast.ProjectItem{}, b.q.Projection...), items...)
	return b
}

// ProjectVar is shorthand for Project with a bare-variable projection item.
func (b SelectBuilder) ProjectVar(name string) SelectBuilder {
	return b.Project(queryast.ProjectItem{Variable: queryast.NewVariable(name)})
}

// ProjectAs is shorthand for Project with a computed `(expr AS ?alias)`
// projection item.
func (b SelectBuilder) ProjectAs(alias string, expr queryast.Expression) SelectBuilder {
	return b.Project(queryast.ProjectItem{Variable: queryast.NewVariable(alias), Expr: expr})
}

func (b SelectBuilder) Distinct() SelectBuilder {
	b.q.Distinct = true
	b.q.Reduced = false
	return b
}

func (b SelectBuilder) Reduced() SelectBuilder {
	b.q.Reduced = true
	b.q.Distinct = false
	return b
}

func (b SelectBuilder) From(graph queryast.Term) SelectBuilder {
	b.q.From = append(append([]queryast.Term{}, b.q.From...), graph)
	return b
}

func (b SelectBuilder) FromNamed(graph queryast.Term) SelectBuilder {
	b.q.FromNamed = append(append([]queryast.Term{}, b.q.FromNamed...), graph)
	return b
}

// Where sets the query's pattern, replacing whatever was set before.
func (b SelectBuilder) Where(pattern queryast.GraphPattern) SelectBuilder {
	b.q.Where = pattern
	return b
}

func (b SelectBuilder) GroupBy(exprs ...queryast.Expression) SelectBuilder {
	b.q.GroupBy = append(append([]queryast.Expression{}, b.q.GroupBy...), exprs...)
	return b
}

func (b SelectBuilder) Having(expr queryast.Expression) SelectBuilder {
	b.q.Having = expr
	return b
}

func (b SelectBuilder) OrderBy(cond ...queryast.OrderCondition) SelectBuilder {
	b.q.OrderBy = append(append([]queryast.OrderCondition{}, b.q.OrderBy...), cond...)
	return b
}

// Asc builds an ascending ORDER BY key.
func Asc(expr queryast.Expression) queryast.OrderCondition {
	return queryast.OrderCondition{Expr: expr, Ascending: true}
}

// Desc builds a descending ORDER BY key.
func Desc(expr queryast.Expression) queryast.OrderCondition {
	return queryast.OrderCondition{Expr: expr, Ascending: false}
}

func (b SelectBuilder) Limit(n int) SelectBuilder {
	b.q.Limit = &n
	return b
}

func (b SelectBuilder) Offset(n int) SelectBuilder {
	b.q.Offset = &n
	return b
}

// Build finishes the SELECT query into a top-level Query value.
func (b SelectBuilder) Build() *queryast.Query {
	q := b.q
	return &queryast.Query{Form: queryast.FormSelect, Select: &q}
}

// AskBuilder builds an ASK query.
type AskBuilder struct {
	where queryast.GraphPattern
}

func Ask(pattern queryast.GraphPattern) AskBuilder { return AskBuilder{where: pattern} }

func (b AskBuilder) Build() *queryast.Query {
	return &queryast.Query{Form: queryast.FormAsk, Ask: &queryast.AskQuery{Where: b.where}}
}

// ConstructBuilder builds a CONSTRUCT query.
type ConstructBuilder struct {
	template []queryast.TriplePattern
	where    queryast.GraphPattern
}

func Construct(where queryast.GraphPattern) ConstructBuilder {
	return ConstructBuilder{where: where}
}

func (b ConstructBuilder) Template(triples ...queryast.TriplePattern) ConstructBuilder {
	b.template = append(append([]queryast.TriplePattern{}, b.template...), triples...)
	return b
}

func (b ConstructBuilder) Build() *queryast.Query {
	return &queryast.Query{
		Form: queryast.FormConstruct,
		Construct: &queryast.ConstructQuery{
			Template: b.template,
			Where:    b.where,
		},
	}
}

// DescribeBuilder builds a DESCRIBE query.
type DescribeBuilder struct {
	q queryast.DescribeQuery
}

func DescribeAll() DescribeBuilder { return DescribeBuilder{q: queryast.DescribeQuery{Star: true}} }

func DescribeResources(resources ...queryast.Term) DescribeBuilder {
	return DescribeBuilder{q: queryast.DescribeQuery{Resources: resources}}
}

func (b DescribeBuilder) Where(pattern queryast.GraphPattern) DescribeBuilder {
	b.q.Where = pattern
	return b
}

func (b DescribeBuilder) Build() *queryast.Query {
	q := b.q
	return &queryast.Query{Form: queryast.FormDescribe, Describe: &q}
}
