package sparql

import "github.com/aleksaelezovic/graphcore/pkg/queryast"

// parsePath parses a property path with precedence Alternative > Sequence
// > Inverse > Elt (Elt ::= Primary Modifier?), per §4.F. A bare IRI/
// prefixed-name/`a` verb with no trailing path operator is returned as an
// IRIPath with no wrapping, letting the caller's SimpleIRI check demote it
// to a plain triple-pattern predicate.
func (p *Parser) parsePath() (queryast.PropertyPath, error) {
	return p.parsePathAlternative()
}

func (p *Parser) parsePathAlternative() (queryast.PropertyPath, error) {
	left, err := p.parsePathSequence()
	if err != nil {
		return nil, err
	}
	for {
		if ok, err := p.matchSymbol("|"); err != nil {
			return nil, err
		} else if !ok {
			return left, nil
		}
		right, err := p.parsePathSequence()
		if err != nil {
			return nil, err
		}
		left = queryast.NewAlternativePath(left, right)
	}
}

func (p *Parser) parsePathSequence() (queryast.PropertyPath, error) {
	left, err := p.parsePathInverseOrElt()
	if err != nil {
		return nil, err
	}
	for {
		if ok, err := p.matchSymbol("/"); err != nil {
			return nil, err
		} else if !ok {
			return left, nil
		}
		right, err := p.parsePathInverseOrElt()
		if err != nil {
			return nil, err
		}
		left = queryast.NewSequencePath(left, right)
	}
}

// parsePathInverseOrElt parses `^ Elt` or a bare Elt, where Elt itself is
// Primary Modifier?: the * + ? modifier binds to the inverse as a whole
// (^:p* means (^:p)*, not ^(:p*)), so ^ is matched first and the modifier
// is applied after building the inverse, not before it.
func (p *Parser) parsePathInverseOrElt() (queryast.PropertyPath, error) {
	if ok, err := p.matchSymbol("^"); err != nil {
		return nil, err
	} else if ok {
		inner, err := p.parsePathPrimary()
		if err != nil {
			return nil, err
		}
		return p.parsePathModifier(queryast.NewInversePath(inner))
	}
	return p.parsePathElt()
}

// parsePathElt parses Primary Modifier?, where Modifier is one of * + ?.
func (p *Parser) parsePathElt() (queryast.PropertyPath, error) {
	primary, err := p.parsePathPrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePathModifier(primary)
}

// parsePathModifier applies a trailing * + ? modifier to path, if present.
func (p *Parser) parsePathModifier(path queryast.PropertyPath) (queryast.PropertyPath, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokSymbol {
		return path, nil
	}
	switch tok.Text {
	case "*":
		p.next()
		return queryast.NewZeroOrMorePath(path), nil
	case "+":
		p.next()
		return queryast.NewOneOrMorePath(path), nil
	case "?":
		p.next()
		return queryast.NewZeroOrOnePath(path), nil
	}
	return path, nil
}

func (p *Parser) parsePathPrimary() (queryast.PropertyPath, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Kind == TokSymbol && tok.Text == "(":
		p.next()
		inner, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return inner, nil
	case tok.Kind == TokSymbol && tok.Text == "!":
		p.next()
		return p.parsePathNegation()
	case tok.Kind == TokKeyword && tok.Text == "A":
		p.next()
		return queryast.NewIRIPath(queryast.NewIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")), nil
	case tok.Kind == TokIRI || tok.Kind == TokPrefixedName:
		p.next()
		iri, err := p.resolveTermIRI(tok)
		if err != nil {
			return nil, err
		}
		return queryast.NewIRIPath(iri), nil
	}
	return nil, &UnexpectedToken{Expected: "property path primary", Found: tok.Text, Pos: tok.Pos}
}

// parsePathNegation parses `!iri`, `!^iri`, or `!(iri1|^iri2|...)`.
func (p *Parser) parsePathNegation() (queryast.PropertyPath, error) {
	parseOne := func() (queryast.PropertyPath, error) {
		if ok, err := p.matchSymbol("^"); err != nil {
			return nil, err
		} else if ok {
			tok, err := p.next()
			if err != nil {
				return nil, err
			}
			iri, err := p.resolveTermIRI(tok)
			if err != nil {
				return nil, err
			}
			return queryast.NewInversePath(queryast.NewIRIPath(iri)), nil
		}
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		iri, err := p.resolveTermIRI(tok)
		if err != nil {
			return nil, err
		}
		return queryast.NewIRIPath(iri), nil
	}

	if ok, err := p.matchSymbol("("); err != nil {
		return nil, err
	} else if ok {
		var paths []queryast.PropertyPath
		for {
			one, err := parseOne()
			if err != nil {
				return nil, err
			}
			paths = append(paths, one)
			if ok, err := p.matchSymbol("|"); err != nil {
				return nil, err
			} else if !ok {
				break
			}
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return queryast.NewNegationPath(paths...), nil
	}
	one, err := parseOne()
	if err != nil {
		return nil, err
	}
	return queryast.NewNegationPath(one), nil
}
