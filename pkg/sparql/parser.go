package sparql

import (
	"strings"

	"github.com/aleksaelezovic/graphcore/pkg/queryast"
	"github.com/google/uuid"
)

// Parser consumes a token stream from a Lexer and builds a queryast.Query.
// A Parser is single-use: call Parse once; on error, discard it.
type Parser struct {
	lex      *Lexer
	tok      Token
	peeked   bool
	prefixes map[string]string
	base     string
}

// NewParser creates a parser over the given SPARQL source text.
func NewParser(input string) *Parser {
	return &Parser{lex: NewLexer(input), prefixes: make(map[string]string)}
}

// Parse parses a full SPARQL query (SELECT/CONSTRUCT/ASK/DESCRIBE).
func (p *Parser) Parse() (*queryast.Query, error) {
	if err := p.parsePrologue(); err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Text {
	case "SELECT":
		sel, err := p.parseSelectQuery()
		if err != nil {
			return nil, err
		}
		return &queryast.Query{Form: queryast.FormSelect, Select: sel}, nil
	case "CONSTRUCT":
		c, err := p.parseConstructQuery()
		if err != nil {
			return nil, err
		}
		return &queryast.Query{Form: queryast.FormConstruct, Construct: c}, nil
	case "ASK":
		a, err := p.parseAskQuery()
		if err != nil {
			return nil, err
		}
		return &queryast.Query{Form: queryast.FormAsk, Ask: a}, nil
	case "DESCRIBE":
		d, err := p.parseDescribeQuery()
		if err != nil {
			return nil, err
		}
		return &queryast.Query{Form: queryast.FormDescribe, Describe: d}, nil
	default:
		return nil, &UnexpectedToken{Expected: "SELECT, CONSTRUCT, ASK, or DESCRIBE", Found: tok.Text, Pos: tok.Pos}
	}
}

// ParseUpdate parses a SPARQL Update request: one or more operations
// separated by ';'.
func (p *Parser) ParseUpdate() ([]queryast.UpdateOperation, error) {
	if err := p.parsePrologue(); err != nil {
		return nil, err
	}
	var ops []queryast.UpdateOperation
	for {
		op, err := p.parseUpdateOperation()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokSymbol && tok.Text == ";" {
			p.next()
			if err := p.parsePrologue(); err != nil {
				return nil, err
			}
			tok, err := p.peek()
			if err != nil {
				return nil, err
			}
			if tok.Kind == TokEOF {
				break
			}
			continue
		}
		break
	}
	return ops, nil
}

// --- token stream plumbing ---

func (p *Parser) peek() (Token, error) {
	if !p.peeked {
		tok, err := p.lex.Next()
		if err != nil {
			return Token{}, err
		}
		p.tok = tok
		p.peeked = true
	}
	return p.tok, nil
}

func (p *Parser) next() (Token, error) {
	tok, err := p.peek()
	if err != nil {
		return Token{}, err
	}
	p.peeked = false
	return tok, nil
}

// matchKeyword consumes and returns true if the next token is the given
// keyword (case-insensitive by construction, since the lexer uppercases
// keyword text).
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

func (p *Parser) matchSymbol(sym string) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	if tok.Kind == TokSymbol && tok.Text == sym {
		p.next()
		return true, nil
	}
	return false, nil
}

func (p *Parser) expectSymbol(sym string) error {
	ok, err := p.matchSymbol(sym)
	if err != nil {
		return err
	}
	if !ok {
		tok, _ := p.peek()
		return &UnexpectedToken{Expected: sym, Found: tok.Text, Pos: tok.Pos}
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

// --- prologue ---

func (p *Parser) parsePrologue() error {
	for {
		if ok, err := p.matchKeyword("PREFIX"); err != nil {
			return err
		} else if ok {
			nameTok, err := p.next()
			if err != nil {
				return err
			}
			prefix := strings.TrimSuffix(nameTok.Text, ":")
			iriTok, err := p.next()
			if err != nil {
				return err
			}
			if iriTok.Kind != TokIRI {
				return &UnexpectedToken{Expected: "IRI", Found: iriTok.Text, Pos: iriTok.Pos}
			}
			p.prefixes[prefix] = iriTok.Text
			continue
		}
		if ok, err := p.matchKeyword("BASE"); err != nil {
			return err
		} else if ok {
			iriTok, err := p.next()
			if err != nil {
				return err
			}
			if iriTok.Kind != TokIRI {
				return &UnexpectedToken{Expected: "IRI", Found: iriTok.Text, Pos: iriTok.Pos}
			}
			p.base = iriTok.Text
			continue
		}
		if ok, err := p.matchKeyword("VERSION"); err != nil {
			return err
		} else if ok {
			if _, err := p.next(); err != nil { // the version string literal, unused
				return err
			}
			continue
		}
		return nil
	}
}

// resolveIRIRef turns a lexer IRI token's text into a resolved IRI term,
// applying simplified RFC-3986 resolution against BASE when the reference
// is relative.
func (p *Parser) resolveIRIRef(ref string) *queryast.IRI {
	return queryast.NewIRI(resolveAgainstBase(p.base, ref))
}

// resolveAgainstBase implements the simplified resolution rule from §4.F:
// absolute IRIs pass through; a fragment-only reference appends to base;
// an absolute path (leading '/') replaces base's path; anything else is
// relative and strips base's last path segment before appending.
func resolveAgainstBase(base, ref string) string {
	if base == "" || strings.Contains(ref, "://") {
		return ref
	}
	if strings.HasPrefix(ref, "#") {
		if i := strings.IndexByte(base, '#'); i >= 0 {
			base = base[:i]
		}
		return base + ref
	}
	if strings.HasPrefix(ref, "/") {
		if i := strings.Index(base, "://"); i >= 0 {
			if j := strings.IndexByte(base[i+3:], '/'); j >= 0 {
				return base[:i+3+j] + ref
			}
		}
		return base + ref
	}
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		return base[:i+1] + ref
	}
	return base + ref
}

func (p *Parser) resolveTermIRI(tok Token) (*queryast.IRI, error) {
	switch tok.Kind {
	case TokIRI:
		return p.resolveIRIRef(tok.Text), nil
	case TokPrefixedName:
		parts := strings.SplitN(tok.Text, ":", 2)
		base, ok := p.prefixes[parts[0]]
		if !ok {
			return nil, &InvalidIRI{Msg: "undeclared prefix " + parts[0], Pos: tok.Pos}
		}
		return queryast.NewIRI(base + parts[1]), nil
	default:
		return nil, &UnexpectedToken{Expected: "IRI or prefixed name", Found: tok.Text, Pos: tok.Pos}
	}
}

// freshBlankNode mints an identifier for anonymous blank-node shorthand
// ([], [ p o ], and collection list nodes): a random
// identifier rather than a sequential counter, since a counter risks
// colliding with a user-written _:bN label appearing later in the same
// query's triple block.
func (p *Parser) freshBlankNode() *queryast.BlankNode {
	return queryast.NewBlankNode("u" + strings.ReplaceAll(uuid.NewString(), "-", ""))
}
