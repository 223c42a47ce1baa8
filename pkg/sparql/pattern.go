package sparql

import "github.com/aleksaelezovic/graphcore/pkg/queryast"

// parseGroupGraphPattern parses "{" GroupGraphPatternSub "}".
func (p *Parser) parseGroupGraphPattern() (queryast.GraphPattern, error) {
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	// A lone SELECT inside braces is a subquery, not a GroupGraphPatternSub.
	if tok, err := p.peek(); err != nil {
		return nil, err
	} else if tok.Kind == TokKeyword && tok.Text == "SELECT" {
		sel, err := p.parseSelectQuery()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("}"); err != nil {
			return nil, err
		}
		return &queryast.SubqueryPattern{Query: sel}, nil
	}
	pat, err := p.parseGroupGraphPatternSub()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("}"); err != nil {
		return nil, err
	}
	return pat, nil
}

// parseGroupGraphPatternSub implements the canonical algebra translation
// from §4.E: a running accumulator that folds in a leading BGP, then each
// GraphPatternNotTriples element in source order, joining any trailing
// triples block back in afterward.
func (p *Parser) parseGroupGraphPatternSub() (queryast.GraphPattern, error) {
	var acc queryast.GraphPattern

	if block, ok, err := p.tryParseTriplesBlock(); err != nil {
		return nil, err
	} else if ok {
		acc = block.asPattern()
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		joinAcc := func(next queryast.GraphPattern) {
			if acc == nil {
				acc = next
			} else {
				acc = &queryast.JoinPattern{Left: acc, Right: next}
			}
		}

		switch {
		case tok.Kind == TokKeyword && tok.Text == "OPTIONAL":
			p.next()
			inner, err := p.parseGroupGraphPattern()
			if err != nil {
				return nil, err
			}
			if acc == nil {
				acc = &queryast.BasicPattern{}
			}
			acc = queryast.Optional(acc, inner)
		case tok.Kind == TokKeyword && tok.Text == "MINUS":
			p.next()
			inner, err := p.parseGroupGraphPattern()
			if err != nil {
				return nil, err
			}
			if acc == nil {
				acc = &queryast.BasicPattern{}
			}
			acc = &queryast.MinusPattern{Left: acc, Right: inner}
		case tok.Kind == TokKeyword && tok.Text == "LATERAL":
			p.next()
			inner, err := p.parseGroupGraphPattern()
			if err != nil {
				return nil, err
			}
			if acc == nil {
				acc = &queryast.BasicPattern{}
			}
			acc = &queryast.LateralPattern{Left: acc, Right: inner}
		case tok.Kind == TokKeyword && tok.Text == "FILTER":
			p.next()
			expr, err := p.parseBracketedOrPrimaryExpr()
			if err != nil {
				return nil, err
			}
			if acc == nil {
				acc = &queryast.BasicPattern{}
			}
			acc = &queryast.FilterPattern{Pattern: acc, Expr: expr}
		case tok.Kind == TokKeyword && tok.Text == "BIND":
			p.next()
			if err := p.expectSymbol("("); err != nil {
				return nil, err
			}
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectKeyword("AS"); err != nil {
				return nil, err
			}
			vtok, err := p.next()
			if err != nil {
				return nil, err
			}
			if vtok.Kind != TokVariable {
				return nil, &UnexpectedToken{Expected: "variable", Found: vtok.Text, Pos: vtok.Pos}
			}
			if err := p.expectSymbol(")"); err != nil {
				return nil, err
			}
			if acc == nil {
				acc = &queryast.BasicPattern{}
			}
			acc = &queryast.BindPattern{Pattern: acc, Variable: queryast.NewVariable(vtok.Text), Expr: expr}
		case tok.Kind == TokKeyword && tok.Text == "VALUES":
			values, err := p.parseValuesClause()
			if err != nil {
				return nil, err
			}
			joinAcc(values)
		case tok.Kind == TokKeyword && tok.Text == "GRAPH":
			p.next()
			nameTok, err := p.next()
			if err != nil {
				return nil, err
			}
			var name queryast.Term
			if nameTok.Kind == TokVariable {
				name = queryast.NewVariable(nameTok.Text)
			} else {
				iri, err := p.resolveTermIRI(nameTok)
				if err != nil {
					return nil, err
				}
				name = iri
			}
			inner, err := p.parseGroupGraphPattern()
			if err != nil {
				return nil, err
			}
			joinAcc(&queryast.GraphNamePattern{Name: name, Pattern: inner})
		case tok.Kind == TokKeyword && tok.Text == "SERVICE":
			p.next()
			silent, err := p.matchKeyword("SILENT")
			if err != nil {
				return nil, err
			}
			epTok, err := p.next()
			if err != nil {
				return nil, err
			}
			var ep queryast.Term
			if epTok.Kind == TokVariable {
				ep = queryast.NewVariable(epTok.Text)
			} else {
				iri, err := p.resolveTermIRI(epTok)
				if err != nil {
					return nil, err
				}
				ep = iri
			}
			inner, err := p.parseGroupGraphPattern()
			if err != nil {
				return nil, err
			}
			joinAcc(&queryast.ServicePattern{Endpoint: ep, Pattern: inner, Silent: silent})
		case tok.Kind == TokSymbol && tok.Text == "{":
			group, err := p.parseGroupOrUnion()
			if err != nil {
				return nil, err
			}
			joinAcc(group)
		default:
			// no more GraphPatternNotTriples; fall through to the trailing-dot / trailing-triples rule below
			goto done
		}

		// optional '.' then an optional trailing triples block, joined in
		if ok, err := p.matchSymbol("."); err != nil {
			return nil, err
		} else if ok {
			if block, ok, err := p.tryParseTriplesBlock(); err != nil {
				return nil, err
			} else if ok {
				joinAcc(block.asPattern())
			}
		} else if block, ok, err := p.tryParseTriplesBlock(); err != nil {
			return nil, err
		} else if ok {
			joinAcc(block.asPattern())
		}
	}
done:
	if acc == nil {
		acc = &queryast.BasicPattern{}
	}
	return acc, nil
}

// parseGroupOrUnion parses one or more '{' GroupGraphPattern '}' separated
// by UNION, left-folding into UnionPattern nodes.
func (p *Parser) parseGroupOrUnion() (queryast.GraphPattern, error) {
	first, err := p.parseGroupGraphPattern()
	if err != nil {
		return nil, err
	}
	acc := first
	for {
		if ok, err := p.matchKeyword("UNION"); err != nil {
			return nil, err
		} else if !ok {
			break
		}
		next, err := p.parseGroupGraphPattern()
		if err != nil {
			return nil, err
		}
		acc = &queryast.UnionPattern{Left: acc, Right: next}
	}
	return acc, nil
}

func (p *Parser) parseValuesClause() (*queryast.ValuesPattern, error) {
	if err := p.expectKeyword("VALUES"); err != nil {
		return nil, err
	}
	vp := &queryast.ValuesPattern{}
	if ok, err := p.matchSymbol("("); err != nil {
		return nil, err
	} else if ok {
		for {
			tok, err := p.peek()
			if err != nil {
				return nil, err
			}
			if tok.Kind != TokVariable {
				break
			}
			p.next()
			vp.Vars = append(vp.Vars, queryast.NewVariable(tok.Text))
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
	} else {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokVariable {
			return nil, &UnexpectedToken{Expected: "variable", Found: tok.Text, Pos: tok.Pos}
		}
		vp.Vars = append(vp.Vars, queryast.NewVariable(tok.Text))
	}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	for {
		if ok, err := p.matchSymbol("}"); err != nil {
			return nil, err
		} else if ok {
			break
		}
		row, err := p.parseValuesRow(len(vp.Vars))
		if err != nil {
			return nil, err
		}
		vp.Rows = append(vp.Rows, row)
	}
	return vp, nil
}

func (p *Parser) parseValuesRow(width int) ([]queryast.Term, error) {
	multi := width != 1
	if multi {
		if err := p.expectSymbol("("); err != nil {
			return nil, err
		}
	}
	row := make([]queryast.Term, 0, width)
	for {
		if ok, err := p.matchKeyword("UNDEF"); err != nil {
			return nil, err
		} else if ok {
			row = append(row, nil)
		} else {
			term, err := p.parseGraphTerm()
			if err != nil {
				return nil, err
			}
			row = append(row, term)
		}
		if !multi {
			break
		}
		if ok, err := p.matchSymbol(")"); err != nil {
			return nil, err
		} else if ok {
			break
		}
	}
	return row, nil
}

// triplesAccum collects the two shapes a TriplesBlock can produce: plain
// triple patterns (destined for one flattened BasicPattern) and property-
// path patterns (each its own GraphPattern, joined in afterward).
type triplesAccum struct {
	triples []queryast.TriplePattern
	paths   []queryast.GraphPattern
}

func (a *triplesAccum) asPattern() queryast.GraphPattern {
	var acc queryast.GraphPattern = &queryast.BasicPattern{Triples: a.triples}
	for _, pp := range a.paths {
		acc = &queryast.JoinPattern{Left: acc, Right: pp}
	}
	return acc
}

// tryParseTriplesBlock parses zero or more TriplesSameSubject productions
// (the TriplesBlock from §4.E's translation table), returning ok=false if
// the next token cannot start one.
func (p *Parser) tryParseTriplesBlock() (*triplesAccum, bool, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, false, err
	}
	if !p.startsTerm(tok) {
		return nil, false, nil
	}
	acc := &triplesAccum{}
	for {
		if err := p.parseTriplesSameSubject(acc); err != nil {
			return nil, false, err
		}
		if ok, err := p.matchSymbol("."); err != nil {
			return nil, false, err
		} else if !ok {
			break
		}
		tok, err := p.peek()
		if err != nil {
			return nil, false, err
		}
		if !p.startsTerm(tok) {
			break
		}
	}
	return acc, true, nil
}

func (p *Parser) parseTriplesTemplate() ([]queryast.TriplePattern, error) {
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	acc, ok, err := p.tryParseTriplesBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("}"); err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return acc.triples, nil
}

func (p *Parser) startsTerm(tok Token) bool {
	switch tok.Kind {
	case TokIRI, TokPrefixedName, TokVariable, TokBlankNode, TokString, TokInteger, TokDecimal, TokDouble:
		return true
	}
	if tok.Kind == TokKeyword && tok.Text == "A" {
		return true
	}
	if tok.Kind == TokSymbol && (tok.Text == "[" || tok.Text == "(" || tok.Text == "<<") {
		return true
	}
	return false
}

// parseTriplesSameSubject parses `subject verb object (',' object)* (';' verb objectList)*`,
// feeding produced triples (and any blank-node-shorthand or property-path
// extras) into acc.
func (p *Parser) parseTriplesSameSubject(acc *triplesAccum) error {
	subject, extra, err := p.parseTriplesNodeOrVarOrTerm()
	if err != nil {
		return err
	}
	acc.triples = append(acc.triples, extra...)
	return p.parsePropertyListNotEmpty(subject, acc)
}

// parsePropertyListNotEmpty parses `verb objectList (';' (verb objectList)?)*`.
func (p *Parser) parsePropertyListNotEmpty(subject queryast.Term, acc *triplesAccum) error {
	for {
		verb, err := p.parseVerb()
		if err != nil {
			return err
		}
		if err := p.parseObjectList(subject, verb, acc); err != nil {
			return err
		}

		if ok, err := p.matchSymbol(";"); err != nil {
			return err
		} else if !ok {
			break
		}
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if !p.startsVerb(tok) {
			continue // trailing ';' with nothing after
		}
	}
	return nil
}

func (p *Parser) startsVerb(tok Token) bool {
	if tok.Kind == TokKeyword && tok.Text == "A" {
		return true
	}
	switch tok.Kind {
	case TokIRI, TokPrefixedName:
		return true
	}
	if tok.Kind == TokSymbol {
		switch tok.Text {
		case "^", "!", "(":
			return true
		}
	}
	return false
}

// parsedVerb is either a plain IRI (the common case, emitted as a
// TriplePattern predicate) or a property path with at least one operator
// (emitted as a PropertyPathPattern).
type parsedVerb struct {
	iri  *queryast.IRI
	path queryast.PropertyPath
}

func (p *Parser) parseVerb() (parsedVerb, error) {
	tok, err := p.peek()
	if err != nil {
		return parsedVerb{}, err
	}
	if tok.Kind == TokKeyword && tok.Text == "A" {
		p.next()
		return parsedVerb{iri: queryast.NewIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")}, nil
	}
	path, err := p.parsePath()
	if err != nil {
		return parsedVerb{}, err
	}
	if iri, ok := queryast.SimpleIRI(path); ok {
		return parsedVerb{iri: iri}, nil
	}
	return parsedVerb{path: path}, nil
}

func (p *Parser) parseObjectList(subject queryast.Term, verb parsedVerb, acc *triplesAccum) error {
	for {
		obj, extra, err := p.parseTriplesNodeOrVarOrTerm()
		if err != nil {
			return err
		}
		acc.triples = append(acc.triples, extra...)
		if verb.iri != nil {
			acc.triples = append(acc.triples, queryast.TriplePattern{Subject: subject, Predicate: verb.iri, Object: obj})
		} else {
			acc.paths = append(acc.paths, &queryast.PropertyPathPattern{Subject: subject, Object: obj, Path: verb.path})
		}
		if ok, err := p.matchSymbol(","); err != nil {
			return err
		} else if !ok {
			break
		}
	}
	return nil
}
