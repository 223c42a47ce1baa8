package sqlpgq

import (
	"strconv"

	"github.com/aleksaelezovic/graphcore/pkg/queryast"
)

// Parser consumes a token stream from a Lexer and builds a queryast.Query.
// A Parser is single-use: call Parse once; on error, discard it.
//
// buf holds tokens read ahead of the parser's current position but not yet
// consumed; only the GRAPH_TABLE path-variable lookahead (`pathVar =`) and
// the aggregate-call check (`COUNT(` and the like) need two tokens of
// lookahead, everything else needs at most one.
type Parser struct {
	lex     *Lexer
	buf     []Token
	ctes    map[string]bool
	colAnon int
}

// NewParser creates a parser over the given SQL/PGQ source text.
func NewParser(input string) (*Parser, error) {
	lex, err := NewLexer(input)
	if err != nil {
		return nil, err
	}
	return &Parser{lex: lex, ctes: make(map[string]bool)}, nil
}

// Parse parses a single SELECT statement, including a leading WITH clause.
func (p *Parser) Parse() (*queryast.Query, error) {
	sel, err := p.parseSelectStatement()
	if err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokEOF {
		return nil, &UnexpectedToken{Expected: "end of input", Found: tok.Text, Pos: tok.Pos}
	}
	return &queryast.Query{Form: queryast.FormSelect, Select: sel}, nil
}

// --- token stream plumbing ---

// fill ensures at least n tokens are buffered ahead of the read position.
func (p *Parser) fill(n int) error {
	for len(p.buf) < n {
		tok, err := p.lex.Next()
		if err != nil {
			return err
		}
		p.buf = append(p.buf, tok)
	}
	return nil
}

func (p *Parser) peek() (Token, error) {
	if err := p.fill(1); err != nil {
		return Token{}, err
	}
	return p.buf[0], nil
}

// peekAhead returns the token after the one peek() would return, without
// consuming either.
func (p *Parser) peekAhead() (Token, error) {
	if err := p.fill(2); err != nil {
		return Token{}, err
	}
	return p.buf[1], nil
}

func (p *Parser) next() (Token, error) {
	tok, err := p.peek()
	if err != nil {
		return Token{}, err
	}
	p.buf = p.buf[1:]
	return tok, nil
}

func (p *Parser) matchKeyword(kw string) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	if tok.Kind == TokKeyword && tok.Text == kw {
		p.next()
		return true, nil
	}
	return false, nil
}

func (p *Parser) matchOp(op string) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	if tok.Kind == TokOp && tok.Text == op {
		p.next()
		return true, nil
	}
	return false, nil
}

func (p *Parser) expectOp(op string) error {
	ok, err := p.matchOp(op)
	if err != nil {
		return err
	}
	if !ok {
		tok, _ := p.peek()
		return &UnexpectedToken{Expected: op, Found: tok.Text, Pos: tok.Pos}
	}
	return nil
}

func (p *Parser) expectKeyword(kw string) error {
	ok, err := p.matchKeyword(kw)
	if err != nil {
		return err
	}
	if !ok {
		tok, _ := p.peek()
		return &UnexpectedToken{Expected: kw, Found: tok.Text, Pos: tok.Pos}
	}
	return nil
}

// parseName accepts either an Ident or a keyword used loosely as a
// column/table alias or GRAPH_TABLE pattern variable, positions where SQL
// commonly reuses reserved words as plain identifiers.
func (p *Parser) parseName() (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	if tok.Kind != TokIdent && tok.Kind != TokKeyword {
		return "", &UnexpectedToken{Expected: "name", Found: tok.Text, Pos: tok.Pos}
	}
	return tok.Text, nil
}

func atoiPos(s string, pos int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &InvalidSyntax{Msg: "malformed integer " + s, Pos: pos}
	}
	return n, nil
}
