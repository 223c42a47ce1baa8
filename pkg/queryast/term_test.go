package queryast

import "testing"

func TestVariableString(t *testing.T) {
	v := NewVariable("name")
	if v.String() != "?name" {
		t.Errorf("got %q, want ?name", v.String())
	}
	if v.Kind() != TermVariable {
		t.Errorf("wrong kind")
	}
}

func TestIsVariable(t *testing.T) {
	if !IsVariable(NewVariable("x")) {
		t.Error("expected variable to report IsVariable")
	}
	if IsVariable(NewIRI("http://example.org/x")) {
		t.Error("expected IRI to not report IsVariable")
	}
}

func TestPrefixedNameResolve(t *testing.T) {
	p := &PrefixedName{Prefix: "ex", Local: "Alice"}
	prefixes := map[string]string{"ex": "http://example.org/"}
	iri, err := p.Resolve(prefixes)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if iri.Node.IRI != "http://example.org/Alice" {
		t.Errorf("got %q", iri.Node.IRI)
	}

	if _, err := p.Resolve(map[string]string{}); err == nil {
		t.Error("expected error for undeclared prefix")
	}
}

func TestVariableNamesDescendsIntoQuotedTriple(t *testing.T) {
	qt := NewQuotedTriple(NewVariable("s"), NewIRI("http://example.org/p"), NewVariable("o"))
	names := VariableNames(qt)
	if len(names) != 2 || names[0] != "s" || names[1] != "o" {
		t.Errorf("got %v, want [s o]", names)
	}
}

func TestVariableNamesDescendsIntoReifiedTriple(t *testing.T) {
	rt := NewReifiedTriple(NewIRI("http://example.org/s"), NewIRI("http://example.org/p"), NewVariable("o"), NewVariable("r"))
	names := VariableNames(rt)
	if len(names) != 2 || names[0] != "o" || names[1] != "r" {
		t.Errorf("got %v, want [o r]", names)
	}
}

func TestLiteralVariants(t *testing.T) {
	plain := NewLiteral("hello")
	if plain.Node.Language != "" || plain.Node.Datatype != nil {
		t.Errorf("plain literal should have no language or datatype")
	}

	lang := NewLangLiteral("bonjour", "fr")
	if lang.Node.Language != "fr" {
		t.Errorf("got language %q, want fr", lang.Node.Language)
	}

	dir := NewDirLiteral("hello", "en", "ltr")
	if dir.Node.Direction != "ltr" {
		t.Errorf("got direction %q, want ltr", dir.Node.Direction)
	}

	typed := NewTypedLiteral("42", NewIRI("http://www.w3.org/2001/XMLSchema#integer"))
	if typed.Node.Datatype == nil || typed.Node.Datatype.IRI != "http://www.w3.org/2001/XMLSchema#integer" {
		t.Errorf("expected typed literal datatype to be set")
	}
}
