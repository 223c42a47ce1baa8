package queryast

// PathMode enumerates the SQL/PGQ path-matching modes a MATCH path may
// declare (§4.G): WALK is the default (any walk, vertices/edges may
// repeat); TRAIL forbids repeated edges; ACYCLIC forbids repeated
// vertices; SIMPLE is an alias for ACYCLIC; SHORTEST/ALL SHORTEST restrict
// to (all) shortest walks between the path's endpoints.
type PathMode int

const (
	PathModeWalk PathMode = iota
	PathModeTrail
	PathModeAcyclic
	PathModeSimple
	PathModeShortest
	PathModeAllShortest
)

// EdgeDirection is the directionality an edge pattern carries, determined
// by which arrow/bracket combination surrounds it in the source text
// (§4.G's state table), not by a separate keyword.
type EdgeDirection int

const (
	EdgeOutgoing EdgeDirection = iota
	EdgeIncoming
	EdgeUndirected
	EdgeAnyDirection
)

// PropertyConstraint is one `key: value` entry of a node/edge pattern's
// `{ ... }` property map.
type PropertyConstraint struct {
	Key   string
	Value Expression
}

// NodePattern is one `(var? :Label? {prop: val, ...}?)` path element.
type NodePattern struct {
	Variable   string // "" if anonymous
	Label      string // "" if unconstrained
	Properties []PropertyConstraint
}

// EdgePattern is one edge path element; Direction is derived from the
// arrow/bracket shape surrounding it, never from a keyword.
type EdgePattern struct {
	Variable   string
	Label      string
	Properties []PropertyConstraint
	Direction  EdgeDirection
}

// PathElement is one element of a PathPattern's node/edge alternation.
// Exactly one of Node or Edge is set; a well-formed path starts and ends
// on a node with edges strictly alternating in between.
type PathElement struct {
	Node *NodePattern
	Edge *EdgePattern
}

// PathPattern is one `pathVar = mode node (edge node)*` path inside a
// GRAPH_TABLE MATCH clause.
type PathPattern struct {
	Variable string // "" if the path binding itself is unused
	Mode     PathMode
	Elements []PathElement
}

// GraphTablePattern is the SQL/PGQ `GRAPH_TABLE(graph, MATCH paths [WHERE
// expr] [COLUMNS (...)])` table-valued function, used as a FROM item.
type GraphTablePattern struct {
	GraphName string
	Paths     []PathPattern
	Where     Expression
	Columns   []ProjectItem
}

func (p *GraphTablePattern) PatternKind() GraphPatternKind { return PatternGraphTable }
