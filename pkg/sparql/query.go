package sparql

import (
	"strconv"

	"github.com/aleksaelezovic/graphcore/pkg/queryast"
)

func (p *Parser) parseSelectQuery() (*queryast.SelectQuery, error) {
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}
	sel := &queryast.SelectQuery{}
	if ok, err := p.matchKeyword("DISTINCT"); err != nil {
		return nil, err
	} else if ok {
		sel.Distinct = true
	} else if ok, err := p.matchKeyword("REDUCED"); err != nil {
		return nil, err
	} else if ok {
		sel.Reduced = true
	}

	if ok, err := p.matchSymbol("*"); err != nil {
		return nil, err
	} else if ok {
		sel.Star = true
	} else {
		for {
			tok, err := p.peek()
			if err != nil {
				return nil, err
			}
			if tok.Kind == TokVariable {
				p.next()
				sel.Projection = append(sel.Projection, queryast.ProjectItem{Variable: queryast.NewVariable(tok.Text)})
				continue
			}
			if tok.Kind == TokSymbol && tok.Text == "(" {
				p.next()
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
				sel.Projection = append(sel.Projection, queryast.ProjectItem{Variable: queryast.NewVariable(vtok.Text), Expr: expr})
				continue
			}
			break
		}
	}

	if err := p.parseDatasetClauses(&sel.From, &sel.FromNamed); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("WHERE"); err != nil {
		return nil, err
	}
	where, err := p.parseGroupGraphPattern()
	if err != nil {
		return nil, err
	}
	sel.Where = where
	if err := p.parseSolutionModifiers(sel); err != nil {
		return nil, err
	}
	return sel, nil
}

func (p *Parser) parseDatasetClauses(from, fromNamed *[]queryast.Term) error {
	for {
		ok, err := p.matchKeyword("FROM")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		named, err := p.matchKeyword("NAMED")
		if err != nil {
			return err
		}
		tok, err := p.next()
		if err != nil {
			return err
		}
		iri, err := p.resolveTermIRI(tok)
		if err != nil {
			return err
		}
		if named {
			*fromNamed = append(*fromNamed, iri)
		} else {
			*from = append(*from, iri)
		}
	}
}

func (p *Parser) parseSolutionModifiers(sel *queryast.SelectQuery) error {
	if ok, err := p.matchKeyword("GROUP"); err != nil {
		return err
	} else if ok {
		if err := p.expectKeyword("BY"); err != nil {
			return err
		}
		for {
			tok, err := p.peek()
			if err != nil {
				return err
			}
			if tok.Kind == TokVariable {
				p.next()
				sel.GroupBy = append(sel.GroupBy, &queryast.VariableExpr{Variable: queryast.NewVariable(tok.Text)})
				continue
			}
			if tok.Kind == TokSymbol && tok.Text == "(" {
				p.next()
				expr, err := p.parseExpression()
				if err != nil {
					return err
				}
				if err := p.expectSymbol(")"); err != nil {
					return err
				}
				sel.GroupBy = append(sel.GroupBy, expr)
				continue
			}
			break
		}
	}
	if ok, err := p.matchKeyword("HAVING"); err != nil {
		return err
	} else if ok {
		expr, err := p.parseBracketedOrPrimaryExpr()
		if err != nil {
			return err
		}
		sel.Having = expr
	}
	if ok, err := p.matchKeyword("ORDER"); err != nil {
		return err
	} else if ok {
		if err := p.expectKeyword("BY"); err != nil {
			return err
		}
		for {
			cond, ok, err := p.tryParseOrderCondition()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			sel.OrderBy = append(sel.OrderBy, cond)
		}
	}
	if ok, err := p.matchKeyword("LIMIT"); err != nil {
		return err
	} else if ok {
		n, err := p.parseIntLiteral()
		if err != nil {
			return err
		}
		sel.Limit = &n
	}
	if ok, err := p.matchKeyword("OFFSET"); err != nil {
		return err
	} else if ok {
		n, err := p.parseIntLiteral()
		if err != nil {
			return err
		}
		sel.Offset = &n
	}
	return nil
}

func (p *Parser) tryParseOrderCondition() (queryast.OrderCondition, bool, error) {
	ascending := true
	explicit := false
	if ok, err := p.matchKeyword("ASC"); err != nil {
		return queryast.OrderCondition{}, false, err
	} else if ok {
		explicit = true
	} else if ok, err := p.matchKeyword("DESC"); err != nil {
		return queryast.OrderCondition{}, false, err
	} else if ok {
		ascending = false
		explicit = true
	}
	var expr queryast.Expression
	if explicit {
		e, err := p.parseBracketedOrPrimaryExpr()
		if err != nil {
			return queryast.OrderCondition{}, false, err
		}
		expr = e
	} else {
		tok, err := p.peek()
		if err != nil {
			return queryast.OrderCondition{}, false, err
		}
		if tok.Kind == TokVariable {
			p.next()
			expr = &queryast.VariableExpr{Variable: queryast.NewVariable(tok.Text)}
		} else if tok.Kind == TokSymbol && tok.Text == "(" {
			p.next()
			e, err := p.parseExpression()
			if err != nil {
				return queryast.OrderCondition{}, false, err
			}
			if err := p.expectSymbol(")"); err != nil {
				return queryast.OrderCondition{}, false, err
			}
			expr = e
		} else {
			return queryast.OrderCondition{}, false, nil
		}
	}
	return queryast.OrderCondition{Expr: expr, Ascending: ascending}, true, nil
}

func (p *Parser) parseBracketedOrPrimaryExpr() (queryast.Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokSymbol && tok.Text == "(" {
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return p.parseBuiltInOrPrimary()
}

func (p *Parser) parseIntLiteral() (int, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	if tok.Kind != TokInteger {
		return 0, &UnexpectedToken{Expected: "integer", Found: tok.Text, Pos: tok.Pos}
	}
	n, err := strconv.Atoi(tok.Text)
	if err != nil {
		return 0, &InvalidSyntax{Msg: "malformed integer " + tok.Text, Pos: tok.Pos}
	}
	return n, nil
}

func (p *Parser) parseConstructQuery() (*queryast.ConstructQuery, error) {
	if err := p.expectKeyword("CONSTRUCT"); err != nil {
		return nil, err
	}
	c := &queryast.ConstructQuery{}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokSymbol && tok.Text == "{" {
		tmpl, err := p.parseTriplesTemplate()
		if err != nil {
			return nil, err
		}
		c.Template = tmpl
		var from, fromNamed []queryast.Term
		if err := p.parseDatasetClauses(&from, &fromNamed); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("WHERE"); err != nil {
			return nil, err
		}
		where, err := p.parseGroupGraphPattern()
		if err != nil {
			return nil, err
		}
		c.Where = where
		return c, nil
	}

	// CONSTRUCT WHERE shorthand: template equals WHERE's flattened BGP.
	var from, fromNamed []queryast.Term
	if err := p.parseDatasetClauses(&from, &fromNamed); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("WHERE"); err != nil {
		return nil, err
	}
	where, err := p.parseGroupGraphPattern()
	if err != nil {
		return nil, err
	}
	c.Where = where
	if flat, ok := queryast.FlattenBasic(where); ok {
		c.Template = flat.Triples
	}
	return c, nil
}

func (p *Parser) parseAskQuery() (*queryast.AskQuery, error) {
	if err := p.expectKeyword("ASK"); err != nil {
		return nil, err
	}
	var from, fromNamed []queryast.Term
	if err := p.parseDatasetClauses(&from, &fromNamed); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("WHERE"); err != nil {
		return nil, err
	}
	where, err := p.parseGroupGraphPattern()
	if err != nil {
		return nil, err
	}
	return &queryast.AskQuery{Where: where}, nil
}

func (p *Parser) parseDescribeQuery() (*queryast.DescribeQuery, error) {
	if err := p.expectKeyword("DESCRIBE"); err != nil {
		return nil, err
	}
	d := &queryast.DescribeQuery{}
	if ok, err := p.matchSymbol("*"); err != nil {
		return nil, err
	} else if ok {
		d.Star = true
	} else {
		for {
			tok, err := p.peek()
			if err != nil {
				return nil, err
			}
			if tok.Kind == TokVariable {
				p.next()
				d.Resources = append(d.Resources, queryast.NewVariable(tok.Text))
				continue
			}
			if tok.Kind == TokIRI || tok.Kind == TokPrefixedName {
				p.next()
				iri, err := p.resolveTermIRI(tok)
				if err != nil {
					return nil, err
				}
				d.Resources = append(d.Resources, iri)
				continue
			}
			break
		}
	}
	var from, fromNamed []queryast.Term
	if err := p.parseDatasetClauses(&from, &fromNamed); err != nil {
		return nil, err
	}
	if ok, err := p.matchKeyword("WHERE"); err != nil {
		return nil, err
	} else if ok {
		where, err := p.parseGroupGraphPattern()
		if err != nil {
			return nil, err
		}
		d.Where = where
	}
	return d, nil
}
