package sparql

import "testing"

func allTokens(t *testing.T, input string) []Token {
	t.Helper()
	lex := NewLexer(input)
	var toks []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("lex error: %v", err)
		}
		if tok.Kind == TokEOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestLexBasicTokens(t *testing.T) {
	toks := allTokens(t, `SELECT ?x WHERE { ?x <http://example.org/p> "hello" }`)
	want := []struct {
		kind TokenKind
		text string
	}{
		{TokKeyword, "SELECT"}, {TokVariable, "x"}, {TokKeyword, "WHERE"},
		{TokSymbol, "{"}, {TokVariable, "x"}, {TokIRI, "http://example.org/p"},
		{TokString, "hello"}, {TokSymbol, "}"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d: got {%v %q}, want {%v %q}", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestLexPrefixedNameAndVariableDollar(t *testing.T) {
	toks := allTokens(t, "foaf:name $var")
	if toks[0].Kind != TokPrefixedName || toks[0].Text != "foaf:name" {
		t.Errorf("got %+v", toks[0])
	}
	if toks[1].Kind != TokVariable || toks[1].Text != "var" {
		t.Errorf("got %+v", toks[1])
	}
}

func TestLexMultiCharSymbols(t *testing.T) {
	toks := allTokens(t, "<= >= != && || ^^ << >> {| |}")
	want := []string{"<=", ">=", "!=", "&&", "||", "^^", "<<", ">>", "{|", "|}"}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Text != w {
			t.Errorf("token %d: got %q, want %q", i, toks[i].Text, w)
		}
	}
}

func TestLexLangAndDirTaggedLiteral(t *testing.T) {
	toks := allTokens(t, `"hello"@en "bonjour"@fr--ltr`)
	if toks[0].Lang != "en" || toks[0].Dir != "" {
		t.Errorf("got lang=%q dir=%q", toks[0].Lang, toks[0].Dir)
	}
	if toks[1].Lang != "fr" || toks[1].Dir != "ltr" {
		t.Errorf("got lang=%q dir=%q", toks[1].Lang, toks[1].Dir)
	}
}

func TestLexNumericLiteralKinds(t *testing.T) {
	toks := allTokens(t, "42 3.14 1.0e10")
	if toks[0].Kind != TokInteger {
		t.Errorf("expected integer, got %v", toks[0].Kind)
	}
	if toks[1].Kind != TokDecimal {
		t.Errorf("expected decimal, got %v", toks[1].Kind)
	}
	if toks[2].Kind != TokDouble {
		t.Errorf("expected double, got %v", toks[2].Kind)
	}
}

func TestLexBlankNode(t *testing.T) {
	toks := allTokens(t, "_:b0")
	if toks[0].Kind != TokBlankNode || toks[0].Text != "b0" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestLexSkipsComments(t *testing.T) {
	toks := allTokens(t, "?x # a comment\n?y")
	if len(toks) != 2 || toks[0].Text != "x" || toks[1].Text != "y" {
		t.Errorf("got %+v", toks)
	}
}

func TestLexTripleQuotedString(t *testing.T) {
	toks := allTokens(t, `"""hello "world""""`)
	if toks[0].Kind != TokString || toks[0].Text != `hello "world"` {
		t.Errorf("got %+v", toks[0])
	}
}
