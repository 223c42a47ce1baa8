package querybuild

import "github.com/aleksaelezovic/graphcore/pkg/queryast"

// NodeBuilder assembles one GRAPH_TABLE node pattern.
type NodeBuilder struct {
	n queryast.NodePattern
}

// Node starts an unconstrained node pattern; chain With* methods to add a
// variable, label, or properties.
func Node() NodeBuilder { return NodeBuilder{} }

func (b NodeBuilder) WithVar(v string) NodeBuilder {
	b.n.Variable = v
	return b
}

func (b NodeBuilder) WithLabel(label string) NodeBuilder {
	b.n.Label = label
	return b
}

func (b NodeBuilder) WithProperty(key string, value queryast.Expression) NodeBuilder {
	b.n.Properties = append(append([]queryast.PropertyConstraint{}, b.n.Properties...),
		queryast.PropertyConstraint{Key: key, Value: value})
	return b
}

func (b NodeBuilder) Build() queryast.NodePattern { return b.n }

// EdgeBuilder assembles one GRAPH_TABLE edge pattern.
type EdgeBuilder struct {
	e queryast.EdgePattern
}

// Edge starts an outgoing, unconstrained edge pattern; chain With* methods
// to add a variable, label, properties, or change direction.
func Edge() EdgeBuilder {
	return EdgeBuilder{e: queryast.EdgePattern{Direction: queryast.EdgeOutgoing}}
}

func (b EdgeBuilder) WithVar(v string) EdgeBuilder {
	b.e.Variable = v
	return b
}

func (b EdgeBuilder) WithLabel(label string) EdgeBuilder {
	b.e.Label = label
	return b
}

func (b EdgeBuilder) WithProperty(key string, value queryast.Expression) EdgeBuilder {
	b.e.Properties = append(append([]queryast.PropertyConstraint{}, b.e.Properties...),
		queryast.PropertyConstraint{Key: key, Value: value})
	return b
}

func (b EdgeBuilder) WithDirection(dir queryast.EdgeDirection) EdgeBuilder {
	b.e.Direction = dir
	return b
}

func (b EdgeBuilder) Build() queryast.EdgePattern { return b.e }

// PathBuilder assembles one GRAPH_TABLE MATCH path: an alternating
// node/edge/node/... sequence, starting and ending on a node.
type PathBuilder struct {
	variable string
	mode     queryast.PathMode
	elements []queryast.PathElement
}

// NewPath starts a path with its first node.
func NewPath(first NodeBuilder) PathBuilder {
	n := first.Build()
	return PathBuilder{elements: []queryast.PathElement{{Node: &n}}}
}

func (b PathBuilder) WithVar(v string) PathBuilder {
	b.variable = v
	return b
}

func (b PathBuilder) WithMode(mode queryast.PathMode) PathBuilder {
	b.mode = mode
	return b
}

// Then appends an edge and the node it leads to.
func (b PathBuilder) Then(edge EdgeBuilder, node NodeBuilder) PathBuilder {
	e, n := edge.Build(), node.Build()
	b.elements = append(append([]queryast.PathElement{}, b.elements...),
		queryast.PathElement{Edge: &e}, queryast.PathElement{Node: &n})
	return b
}

func (b PathBuilder) Build() queryast.PathPattern {
	return queryast.PathPattern{Variable: b.variable, Mode: b.mode, Elements: b.elements}
}

// GraphTableBuilder assembles a GRAPH_TABLE(...) FROM item.
type GraphTableBuilder struct {
	p queryast.GraphTablePattern
}

func GraphTable(graphName string) GraphTableBuilder {
	return GraphTableBuilder{p: queryast.GraphTablePattern{GraphName: graphName}}
}

func (b GraphTableBuilder) Match(paths ...PathBuilder) GraphTableBuilder {
	built := make([]queryast.PathPattern, len(paths))
	for i, p := range paths {
		built[i] = p.Build()
	}
	b.p.Paths = append(append([]queryast.PathPattern{}, b.p.Paths...), built...)
	return b
}

func (b GraphTableBuilder) Where(expr queryast.Expression) GraphTableBuilder {
	b.p.Where = expr
	return b
}

func (b GraphTableBuilder) Columns(items ...queryast.ProjectItem) GraphTableBuilder {
	b.p.Columns = append(append([]queryast.ProjectItem{}, b.p.Columns...), items...)
	return b
}

func (b GraphTableBuilder) Build() *queryast.GraphTablePattern {
	p := b.p
	return &p
}
