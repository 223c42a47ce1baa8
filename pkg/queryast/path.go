package queryast

import "fmt"

// PropertyPathKind discriminates the variants of PropertyPath.
type PropertyPathKind byte

const (
	PathIRI PropertyPathKind = iota
	PathInverse
	PathSequence
	PathAlternative
	PathZeroOrMore
	PathOneOrMore
	PathZeroOrOne
	PathNegation
)

// PropertyPath is a SPARQL 1.1 property path expression, built with
// precedence Alternative > Sequence > Inverse > (primary with ? * +
// modifier) as parsed by the SPARQL front end, or directly by the fluent
// builder.
type PropertyPath interface {
	PathKind() PropertyPathKind
	String() string
}

// IRIPath is a plain predicate IRI used as a path element.
type IRIPath struct {
	IRI *IRI
}

func NewIRIPath(iri *IRI) *IRIPath { return &IRIPath{IRI: iri} }

func (p *IRIPath) PathKind() PropertyPathKind { return PathIRI }
func (p *IRIPath) String() string             { return p.IRI.Node.IRI }

// InversePath reverses the direction of p: ^p.
type InversePath struct{ Path PropertyPath }

func NewInversePath(p PropertyPath) *InversePath { return &InversePath{Path: p} }

func (p *InversePath) PathKind() PropertyPathKind { return PathInverse }
func (p *InversePath) String() string             { return "^" + p.Path.String() }

// SequencePath is p1/p2: traverse p1 then p2.
type SequencePath struct{ Left, Right PropertyPath }

func NewSequencePath(l, r PropertyPath) *SequencePath { return &SequencePath{Left: l, Right: r} }

func (p *SequencePath) PathKind() PropertyPathKind { return PathSequence }
func (p *SequencePath) String() string             { return p.Left.String() + "/" + p.Right.String() }

// AlternativePath is p1|p2: traverse either.
type AlternativePath struct{ Left, Right PropertyPath }

func NewAlternativePath(l, r PropertyPath) *AlternativePath {
	return &AlternativePath{Left: l, Right: r}
}

func (p *AlternativePath) PathKind() PropertyPathKind { return PathAlternative }
func (p *AlternativePath) String() string             { return p.Left.String() + "|" + p.Right.String() }

// ZeroOrMorePath is p*.
type ZeroOrMorePath struct{ Path PropertyPath }

func NewZeroOrMorePath(p PropertyPath) *ZeroOrMorePath { return &ZeroOrMorePath{Path: p} }

func (p *ZeroOrMorePath) PathKind() PropertyPathKind { return PathZeroOrMore }
func (p *ZeroOrMorePath) String() string             { return p.Path.String() + "*" }

// OneOrMorePath is p+.
type OneOrMorePath struct{ Path PropertyPath }

func NewOneOrMorePath(p PropertyPath) *OneOrMorePath { return &OneOrMorePath{Path: p} }

func (p *OneOrMorePath) PathKind() PropertyPathKind { return PathOneOrMore }
func (p *OneOrMorePath) String() string             { return p.Path.String() + "+" }

// ZeroOrOnePath is p?.
type ZeroOrOnePath struct{ Path PropertyPath }

func NewZeroOrOnePath(p PropertyPath) *ZeroOrOnePath { return &ZeroOrOnePath{Path: p} }

func (p *ZeroOrOnePath) PathKind() PropertyPathKind { return PathZeroOrOne }
func (p *ZeroOrOnePath) String() string             { return p.Path.String() + "?" }

// NegationPath is !(iri1|...|iriN) or !(^iri1|...), a negated property set.
type NegationPath struct {
	IRIs []PropertyPath // each is an IRIPath or InversePath over an IRIPath
}

func NewNegationPath(iris ...PropertyPath) *NegationPath { return &NegationPath{IRIs: iris} }

func (p *NegationPath) PathKind() PropertyPathKind { return PathNegation }
func (p *NegationPath) String() string {
	parts := make([]string, len(p.IRIs))
	for i, ip := range p.IRIs {
		parts[i] = ip.String()
	}
	return fmt.Sprintf("!(%s)", joinStrings(parts, "|"))
}

// SimpleIRI reports whether path is a bare IRIPath with no operators, the
// case the parser must recognize by lookahead and emit as a plain triple
// pattern verb instead of a PropertyPath node (§4.E).
func SimpleIRI(path PropertyPath) (*IRI, bool) {
	if ip, ok := path.(*IRIPath); ok {
		return ip.IRI, true
	}
	return nil, false
}
