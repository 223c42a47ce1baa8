// Package tupleenc packs ordered tuples of variable-typed scalars into
// lexicographically-ordered byte keys, and carves byte-prefixed subspaces
// out of a flat keyspace.
//
// The scalar family packed here is deliberately small — string, integer,
// byte string, float, bool, nil — mirroring the "tuple element" type named
// in the data model. RDF terms (pkg/rdf) convert to/from TupleElement at
// the index-maintainer boundary; callers with no RDF terms at all (the
// SQL/PGQ property-graph view) can build tuples directly.
package tupleenc

import "fmt"

// Kind discriminates the scalar families a TupleElement can hold.
type Kind byte

const (
	KindNil Kind = iota
	KindBytes
	KindString
	KindInt
	KindFloat
	KindBool
)

// TupleElement is one ordered, variable-typed component of a tuple.
type TupleElement struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
	raw  []byte
}

func Nil() TupleElement                { return TupleElement{kind: KindNil} }
func Int(v int64) TupleElement         { return TupleElement{kind: KindInt, i: v} }
func Float(v float64) TupleElement     { return TupleElement{kind: KindFloat, f: v} }
func Bool(v bool) TupleElement         { return TupleElement{kind: KindBool, b: v} }
func String(v string) TupleElement     { return TupleElement{kind: KindString, s: v} }
func Bytes(v []byte) TupleElement      { return TupleElement{kind: KindBytes, raw: append([]byte{}, v...)} }

func (e TupleElement) Kind() Kind { return e.kind }

func (e TupleElement) AsInt() (int64, bool)     { return e.i, e.kind == KindInt }
func (e TupleElement) AsFloat() (float64, bool) { return e.f, e.kind == KindFloat }
func (e TupleElement) AsBool() (bool, bool)     { return e.b, e.kind == KindBool }
func (e TupleElement) AsString() (string, bool) { return e.s, e.kind == KindString }
func (e TupleElement) AsBytes() ([]byte, bool)  { return e.raw, e.kind == KindBytes }

// Equal reports whether two elements carry the same kind and value.
func (e TupleElement) Equal(o TupleElement) bool {
	if e.kind != o.kind {
		return false
	}
	switch e.kind {
	case KindNil:
		return true
	case KindInt:
		return e.i == o.i
	case KindFloat:
		return e.f == o.f
	case KindBool:
		return e.b == o.b
	case KindString:
		return e.s == o.s
	case KindBytes:
		if len(e.raw) != len(o.raw) {
			return false
		}
		for i := range e.raw {
			if e.raw[i] != o.raw[i] {
				return false
			}
		}
		return true
	}
	return false
}

func (e TupleElement) String() string {
	switch e.kind {
	case KindNil:
		return "nil"
	case KindInt:
		return fmt.Sprintf("%d", e.i)
	case KindFloat:
		return fmt.Sprintf("%g", e.f)
	case KindBool:
		return fmt.Sprintf("%t", e.b)
	case KindString:
		return fmt.Sprintf("%q", e.s)
	case KindBytes:
		return fmt.Sprintf("%x", e.raw)
	default:
		return "<invalid>"
	}
}

// Tuple is an ordered sequence of TupleElement.
type Tuple []TupleElement
