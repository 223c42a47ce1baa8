package queryast

// GraphPatternKind discriminates the variants of GraphPattern.
type GraphPatternKind byte

const (
	PatternBasic GraphPatternKind = iota
	PatternJoin
	PatternLeftJoin
	PatternMinus
	PatternUnion
	PatternFilter
	PatternBind
	PatternGraph
	PatternService
	PatternValues
	PatternLateral
	PatternPropertyPath
	PatternSubquery
	PatternRelation
	PatternGraphTable
)

// GraphPattern is the query algebra's pattern tree, produced identically
// by the SPARQL parser, the SQL/PGQ parser (via GRAPH_TABLE translation),
// and the fluent builder.
type GraphPattern interface {
	PatternKind() GraphPatternKind
}

// TriplePattern is a single (subject, predicate, object) pattern, any
// component of which may be a Variable.
type TriplePattern struct {
	Subject, Predicate, Object Term
}

// BasicPattern is a basic graph pattern: a flattened block of triple
// patterns sharing no operator between them (§4.E: the canonical
// flattening of adjacent basic patterns).
type BasicPattern struct {
	Triples []TriplePattern
}

func (p *BasicPattern) PatternKind() GraphPatternKind { return PatternBasic }

// JoinPattern is the conjunction of two patterns. Join is associative;
// builders and parsers may flatten chains of Join nodes but are not
// required to.
type JoinPattern struct{ Left, Right GraphPattern }

func (p *JoinPattern) PatternKind() GraphPatternKind { return PatternJoin }

// LeftJoinPattern is SPARQL OPTIONAL: Left extended by Right's bindings
// where Right matches and Filter holds, Left's own bindings otherwise.
// Filter may be nil (no attached boolean beyond pattern compatibility).
type LeftJoinPattern struct {
	Left, Right GraphPattern
	Filter      Expression
}

func (p *LeftJoinPattern) PatternKind() GraphPatternKind { return PatternLeftJoin }

// MinusPattern removes solutions of Left compatible with any solution of
// Right.
type MinusPattern struct{ Left, Right GraphPattern }

func (p *MinusPattern) PatternKind() GraphPatternKind { return PatternMinus }

// UnionPattern is the union of solutions from Left and Right.
type UnionPattern struct{ Left, Right GraphPattern }

func (p *UnionPattern) PatternKind() GraphPatternKind { return PatternUnion }

// FilterPattern restricts Pattern's solutions to those for which Expr
// evaluates true (effective boolean value).
type FilterPattern struct {
	Pattern GraphPattern
	Expr    Expression
}

func (p *FilterPattern) PatternKind() GraphPatternKind { return PatternFilter }

// BindPattern extends Pattern's solutions with Variable bound to Expr's
// value (SPARQL BIND / Extend in the algebra).
type BindPattern struct {
	Pattern  GraphPattern
	Variable *Variable
	Expr     Expression
}

func (p *BindPattern) PatternKind() GraphPatternKind { return PatternBind }

// GraphNamePattern evaluates Pattern against the named graph Name, which
// may be an IRI term or a Variable ranging over known graph names.
type GraphNamePattern struct {
	Name    Term
	Pattern GraphPattern
}

func (p *GraphNamePattern) PatternKind() GraphPatternKind { return PatternGraph }

// ServicePattern delegates Pattern to a remote SPARQL endpoint. Silent
// suppresses errors from an unreachable endpoint, yielding no solutions
// instead of failing the query.
type ServicePattern struct {
	Endpoint Term // IRI or Variable
	Pattern  GraphPattern
	Silent   bool
}

func (p *ServicePattern) PatternKind() GraphPatternKind { return PatternService }

// ValuesPattern is an inline VALUES table: each row binds Vars to Rows[i]
// in order; a nil entry in a row means that variable is unbound (UNDEF)
// for that row.
type ValuesPattern struct {
	Vars []*Variable
	Rows [][]Term
}

func (p *ValuesPattern) PatternKind() GraphPatternKind { return PatternValues }

// LateralPattern evaluates Right once per solution of Left, with Right
// able to reference variables already bound by Left (SPARQL 1.2 LATERAL).
type LateralPattern struct{ Left, Right GraphPattern }

func (p *LateralPattern) PatternKind() GraphPatternKind { return PatternLateral }

// PropertyPathPattern is a triple pattern whose predicate position is a
// PropertyPath rather than a single IRI. The parser demotes a PathIRI with
// no operators to a plain TriplePattern inside a BasicPattern instead of
// emitting this node (§4.E simple-verb rule); this node exists for every
// path expression with at least one operator.
type PropertyPathPattern struct {
	Subject, Object Term
	Path            PropertyPath
}

func (p *PropertyPathPattern) PatternKind() GraphPatternKind { return PatternPropertyPath }

// SubqueryPattern embeds a full SELECT as a nested pattern. Alias is set
// when the subquery is a SQL FROM item (`(SELECT ...) AS alias`); it is
// empty for a bare SPARQL `{ SELECT ... }` subquery.
type SubqueryPattern struct {
	Query *SelectQuery
	Alias string
}

func (p *SubqueryPattern) PatternKind() GraphPatternKind { return PatternSubquery }

// RelationPattern is a plain SQL table or CTE reference used as a FROM
// item, distinct from a SPARQL GraphNamePattern's named-graph semantics.
type RelationPattern struct {
	Name  string
	Alias string
}

func (p *RelationPattern) PatternKind() GraphPatternKind { return PatternRelation }

// FlattenBasic merges p into a single BasicPattern if p and everything
// reachable through a chain of JoinPattern nodes are themselves basic,
// implementing the "canonical flattening of adjacent basic patterns" rule
// from §4.E. Returns (flattened, true) on success, (p, false) if any
// non-basic pattern is encountered.
func FlattenBasic(p GraphPattern) (*BasicPattern, bool) {
	var triples []TriplePattern
	var walk func(GraphPattern) bool
	walk = func(p GraphPattern) bool {
		switch v := p.(type) {
		case *BasicPattern:
			triples = append(triples, v.Triples...)
			return true
		case *JoinPattern:
			return walk(v.Left) && walk(v.Right)
		default:
			return false
		}
	}
	if !walk(p) {
		return nil, false
	}
	return &BasicPattern{Triples: triples}, true
}

// Optional builds the LeftJoin-with-implicit-truth-filter algebra form for
// SPARQL OPTIONAL, per §4.E ("optional(p, q) -> LeftJoin with implicit
// truth filter; filters attached after optional remain outside the left
// join").
func Optional(left, right GraphPattern) *LeftJoinPattern {
	return &LeftJoinPattern{Left: left, Right: right, Filter: nil}
}
