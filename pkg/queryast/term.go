// Package queryast defines the algebraic query representation shared by the
// SPARQL parser, the SQL/PGQ parser, and the fluent query builder: terms,
// graph patterns, property paths, and expressions. All three front ends
// produce the same tree, so evaluation and optimization never need to know
// which surface syntax a query arrived through.
package queryast

import (
	"fmt"
	"strings"

	"github.com/aleksaelezovic/graphcore/pkg/rdf"
)

// TermKind discriminates the variants of Term.
type TermKind byte

const (
	TermVariable TermKind = iota
	TermIRI
	TermPrefixedName
	TermBlankNode
	TermLiteral
	TermQuotedTriple
	TermReifiedTriple
)

// Term is the query-level generalization of an RDF term: everything a
// parser can bind to the subject/predicate/object position of a triple
// pattern, including unbound variables and prefixed names that have not yet
// been resolved against a prologue.
type Term interface {
	Kind() TermKind
	String() string
}

// Variable is an unbound query variable, written "?name" or "$name" in
// SPARQL and referenced by bare name elsewhere.
type Variable struct {
	Name string
}

func NewVariable(name string) *Variable { return &Variable{Name: name} }

func (v *Variable) Kind() TermKind { return TermVariable }
func (v *Variable) String() string { return "?" + v.Name }

// IRI wraps rdf.NamedNode as a Term; it is always fully resolved (no prefix).
type IRI struct {
	Node *rdf.NamedNode
}

func NewIRI(iri string) *IRI { return &IRI{Node: rdf.NewNamedNode(iri)} }

func (i *IRI) Kind() TermKind { return TermIRI }
func (i *IRI) String() string { return i.Node.String() }

// PrefixedName is a `prefix:local` term as written in source, not yet
// expanded against the query's prologue. The parser resolves these into
// IRI terms once all PREFIX declarations are known; a PrefixedName term
// surviving past parse time means resolution was deferred intentionally
// (e.g. queryast produced directly by a builder without a prologue).
type PrefixedName struct {
	Prefix string
	Local  string
}

func (p *PrefixedName) Kind() TermKind { return TermPrefixedName }
func (p *PrefixedName) String() string { return p.Prefix + ":" + p.Local }

// Resolve expands a prefixed name into an IRI term given a prefix map.
func (p *PrefixedName) Resolve(prefixes map[string]string) (*IRI, error) {
	base, ok := prefixes[p.Prefix]
	if !ok {
		return nil, fmt.Errorf("undeclared prefix %q", p.Prefix)
	}
	return NewIRI(base + p.Local), nil
}

// BlankNode wraps rdf.BlankNode as a Term.
type BlankNode struct {
	Node *rdf.BlankNode
}

func NewBlankNode(id string) *BlankNode { return &BlankNode{Node: rdf.NewBlankNode(id)} }

func (b *BlankNode) Kind() TermKind { return TermBlankNode }
func (b *BlankNode) String() string { return b.Node.String() }

// Literal wraps rdf.Literal as a Term, carrying the RDF 1.2 language
// direction and datatype alongside the lexical value.
type Literal struct {
	Node *rdf.Literal
}

func NewLiteral(value string) *Literal { return &Literal{Node: rdf.NewLiteral(value)} }

func NewLangLiteral(value, lang string) *Literal {
	return &Literal{Node: rdf.NewLiteralWithLanguage(value, lang)}
}

func NewDirLiteral(value, lang, dir string) *Literal {
	return &Literal{Node: rdf.NewLiteralWithLanguageAndDirection(value, lang, dir)}
}

func NewTypedLiteral(value string, datatype *IRI) *Literal {
	return &Literal{Node: rdf.NewLiteralWithDatatype(value, datatype.Node)}
}

func (l *Literal) Kind() TermKind { return TermLiteral }
func (l *Literal) String() string { return l.Node.String() }

// QuotedTriple is an RDF-star `<<s p o>>` term usable as subject or object.
type QuotedTriple struct {
	Subject, Predicate, Object Term
}

func NewQuotedTriple(s, p, o Term) *QuotedTriple {
	return &QuotedTriple{Subject: s, Predicate: p, Object: o}
}

func (q *QuotedTriple) Kind() TermKind { return TermQuotedTriple }
func (q *QuotedTriple) String() string {
	return fmt.Sprintf("<< %s %s %s >>", q.Subject, q.Predicate, q.Object)
}

// ReifiedTriple is `<<s p o ~r>>`: a quoted triple with an explicit reifier
// identifier, per RDF 1.2 reification syntax.
type ReifiedTriple struct {
	Subject, Predicate, Object Term
	Reifier                    Term
}

func NewReifiedTriple(s, p, o, reifier Term) *ReifiedTriple {
	return &ReifiedTriple{Subject: s, Predicate: p, Object: o, Reifier: reifier}
}

func (r *ReifiedTriple) Kind() TermKind { return TermReifiedTriple }
func (r *ReifiedTriple) String() string {
	return fmt.Sprintf("<< %s %s %s ~ %s >>", r.Subject, r.Predicate, r.Object, r.Reifier)
}

// IsVariable reports whether t is a Variable, the common test a pattern
// matcher or index selector needs before treating a term as bound.
func IsVariable(t Term) bool {
	_, ok := t.(*Variable)
	return ok
}

// VariableNames collects the distinct variable names referenced by t,
// descending into quoted and reified triple terms.
func VariableNames(t Term) []string {
	var names []string
	var walk func(Term)
	walk = func(t Term) {
		switch v := t.(type) {
		case *Variable:
			names = append(names, v.Name)
		case *QuotedTriple:
			walk(v.Subject)
			walk(v.Predicate)
			walk(v.Object)
		case *ReifiedTriple:
			walk(v.Subject)
			walk(v.Predicate)
			walk(v.Object)
			walk(v.Reifier)
		}
	}
	walk(t)
	return names
}

// joinStrings is a small formatting helper shared across String() methods
// in this package (avoids pulling in strings.Join at every call site with
// a mismatched separator).
func joinStrings(parts []string, sep string) string {
	return strings.Join(parts, sep)
}
