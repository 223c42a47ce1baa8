// Package sqlpgq implements a SQL + SQL/PGQ (GRAPH_TABLE) tokenizer and
// recursive-descent parser producing a queryast.Query tree, the same
// algebra the SPARQL front end targets. Tokenization reuses participle's
// lexer.Definition for its keyword/operator table; the GRAPH_TABLE
// edge-arrow syntax (§4.G) is then hand-driven over that token stream,
// since the direction-by-bracket-shape grammar is not expressible as a
// context-free production participle's declarative struct tags can parse.
package sqlpgq

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// rawLexer defines the token classes shared by the SQL statement grammar
// and the GRAPH_TABLE sub-grammar. Multi-character operators are listed
// before their single-character prefixes so the regex alternation prefers
// the longest match.
var rawLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*`},
	{Name: "String", Pattern: `'([^']|'')*'`},
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Op", Pattern: `->|<-|<=|>=|<>|!=|\|\||[(){}\[\],.;:=<>+\-*/%]`},
	{Name: "Ident", Pattern: "[A-Za-z_][A-Za-z0-9_]*|\"[^\"]*\""},
	{Name: "Whitespace", Pattern: `\s+`},
})

var symbolTypes = rawLexer.Symbols()

// TokenKind classifies a lexed token for the hand-written parser.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokKeyword
	TokIdent
	TokInt
	TokFloat
	TokString
	TokOp
)

// reservedWords is the fixed set of identifiers the lexer reclassifies as
// keywords; everything else lexed as an Ident stays TokIdent.
var reservedWords = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`
		WITH RECURSIVE MATERIALIZED AS SELECT DISTINCT FROM JOIN INNER LEFT
		RIGHT FULL CROSS OUTER ON USING WHERE GROUP BY HAVING ORDER ASC DESC
		NULLS FIRST LAST LIMIT OFFSET AND OR NOT IS NULL IN BETWEEN LIKE CASE
		WHEN THEN ELSE END GRAPH_TABLE MATCH COLUMNS WALK TRAIL ACYCLIC SIMPLE
		SHORTEST ALL PATH TRUE FALSE
	`) {
		reservedWords[w] = true
	}
}

// Token is one lexical unit: kind, literal text (keyword uppercased,
// string unescaped, identifier unquoted), and byte offset.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// Lexer wraps a participle lexer.Lexer, skipping elided token classes and
// reclassifying identifiers that match a reserved word into keywords.
type Lexer struct {
	inner lexer.Lexer
}

func NewLexer(input string) (*Lexer, error) {
	inner, err := rawLexer.Lex("", strings.NewReader(input))
	if err != nil {
		return nil, err
	}
	return &Lexer{inner: inner}, nil
}

func (l *Lexer) Next() (Token, error) {
	for {
		tok, err := l.inner.Next()
		if err != nil {
			return Token{}, err
		}
		if tok.EOF() {
			return Token{Kind: TokEOF, Pos: int(tok.Pos.Offset)}, nil
		}
		switch tok.Type {
		case symbolTypes["Whitespace"], symbolTypes["Comment"]:
			continue
		case symbolTypes["String"]:
			return Token{Kind: TokString, Text: unescapeSQLString(tok.Value), Pos: int(tok.Pos.Offset)}, nil
		case symbolTypes["Int"]:
			return Token{Kind: TokInt, Text: tok.Value, Pos: int(tok.Pos.Offset)}, nil
		case symbolTypes["Float"]:
			return Token{Kind: TokFloat, Text: tok.Value, Pos: int(tok.Pos.Offset)}, nil
		case symbolTypes["Op"]:
			return Token{Kind: TokOp, Text: tok.Value, Pos: int(tok.Pos.Offset)}, nil
		case symbolTypes["Ident"]:
			text := tok.Value
			if strings.HasPrefix(text, `"`) {
				return Token{Kind: TokIdent, Text: strings.Trim(text, `"`), Pos: int(tok.Pos.Offset)}, nil
			}
			upper := strings.ToUpper(text)
			if reservedWords[upper] {
				return Token{Kind: TokKeyword, Text: upper, Pos: int(tok.Pos.Offset)}, nil
			}
			return Token{Kind: TokIdent, Text: text, Pos: int(tok.Pos.Offset)}, nil
		default:
			return Token{}, &InvalidSyntax{Msg: "unrecognized token " + tok.Value, Pos: int(tok.Pos.Offset)}
		}
	}
}

// unescapeSQLString strips the surrounding quotes and collapses the `''`
// escape for an embedded single quote.
func unescapeSQLString(raw string) string {
	inner := raw[1 : len(raw)-1]
	return strings.ReplaceAll(inner, "''", "'")
}
