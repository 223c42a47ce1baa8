package sparql

import (
	"github.com/aleksaelezovic/graphcore/pkg/queryast"
	"github.com/aleksaelezovic/graphcore/pkg/rdf"
)

// parseExpression parses a full SPARQL expression: OR > AND > relational
// (comparison/IN) > additive > multiplicative > unary > primary.
func (p *Parser) parseExpression() (queryast.Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (queryast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if ok, err := p.matchSymbol("||"); err != nil {
			return nil, err
		} else if !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &queryast.BinaryExpr{Left: left, Operator: queryast.OpOr, Right: right}
	}
}

func (p *Parser) parseAnd() (queryast.Expression, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		if ok, err := p.matchSymbol("&&"); err != nil {
			return nil, err
		} else if !ok {
			return left, nil
		}
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &queryast.BinaryExpr{Left: left, Operator: queryast.OpAnd, Right: right}
	}
}

var relOps = map[string]queryast.Operator{
	"=": queryast.OpEqual, "!=": queryast.OpNotEqual,
	"<": queryast.OpLessThan, "<=": queryast.OpLessThanOrEqual,
	">": queryast.OpGreaterThan, ">=": queryast.OpGreaterThanOrEqual,
}

func (p *Parser) parseRelational() (queryast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokSymbol {
		if op, ok := relOps[tok.Text]; ok {
			p.next()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			return &queryast.BinaryExpr{Left: left, Operator: op, Right: right}, nil
		}
	}

	negated := false
	if tok.Kind == TokKeyword && tok.Text == "NOT" {
		p.next()
		negated = true
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
	}
	if tok.Kind == TokKeyword && tok.Text == "IN" {
		p.next()
		list, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		return &queryast.InExpr{Operand: left, List: list, Negated: negated}, nil
	}
	if negated {
		return nil, &UnexpectedToken{Expected: "IN", Found: tok.Text, Pos: tok.Pos}
	}
	if tok.Kind == TokKeyword && tok.Text == "BETWEEN" {
		p.next()
		low, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("AND"); err != nil {
			return nil, err
		}
		high, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &queryast.BetweenExpr{Operand: left, Low: low, High: high}, nil
	}
	return left, nil
}

func (p *Parser) parseExpressionList() ([]queryast.Expression, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var list []queryast.Expression
	for {
		if ok, err := p.matchSymbol(")"); err != nil {
			return nil, err
		} else if ok {
			break
		}
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		if ok, err := p.matchSymbol(","); err != nil {
			return nil, err
		} else if !ok {
			if err := p.expectSymbol(")"); err != nil {
				return nil, err
			}
			break
		}
	}
	return list, nil
}

func (p *Parser) parseAdditive() (queryast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		var op queryast.Operator
		switch {
		case tok.Kind == TokSymbol && tok.Text == "+":
			op = queryast.OpAdd
		case tok.Kind == TokSymbol && tok.Text == "-":
			op = queryast.OpSubtract
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &queryast.BinaryExpr{Left: left, Operator: op, Right: right}
	}
}

func (p *Parser) parseMultiplicative() (queryast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		var op queryast.Operator
		switch {
		case tok.Kind == TokSymbol && tok.Text == "*":
			op = queryast.OpMultiply
		case tok.Kind == TokSymbol && tok.Text == "/":
			op = queryast.OpDivide
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &queryast.BinaryExpr{Left: left, Operator: op, Right: right}
	}
}

func (p *Parser) parseUnary() (queryast.Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokSymbol && tok.Text == "!" {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &queryast.UnaryExpr{Operator: queryast.OpNot, Operand: operand}, nil
	}
	if tok.Kind == TokSymbol && tok.Text == "-" {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &queryast.UnaryExpr{Operator: queryast.OpUnaryMinus, Operand: operand}, nil
	}
	if tok.Kind == TokSymbol && tok.Text == "+" {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &queryast.UnaryExpr{Operator: queryast.OpUnaryPlus, Operand: operand}, nil
	}
	return p.parseBuiltInOrPrimary()
}

// aggregateKeywords maps the allow-listed SPARQL set-function keywords to
// their AggregateKind.
var aggregateKeywords = map[string]queryast.AggregateKind{
	"COUNT": queryast.AggCount, "SUM": queryast.AggSum, "AVG": queryast.AggAvg,
	"MIN": queryast.AggMin, "MAX": queryast.AggMax, "SAMPLE": queryast.AggSample,
	"GROUP_CONCAT": queryast.AggGroupConcat,
}

// builtInOperators maps the fixed allow-list of built-in call keywords
// recognized as primary expressions (after FILTER/HAVING/BIND too, since
// those all route through parseExpression) to their Operator.
var builtInOperators = map[string]queryast.Operator{
	"STR": queryast.OpStr, "LANG": queryast.OpLang, "LANGMATCHES": queryast.OpLangMatches,
	"DATATYPE": queryast.OpDatatype, "ISNUMERIC": queryast.OpIsNumeric,
	"ISIRI": queryast.OpIsIRI, "ISURI": queryast.OpIsIRI, "ISBLANK": queryast.OpIsBlank,
	"ISLITERAL": queryast.OpIsLiteral, "ABS": queryast.OpAbs, "CEIL": queryast.OpCeil,
	"FLOOR": queryast.OpFloor, "ROUND": queryast.OpRound,
	"ISTRIPLE": queryast.OpIsTriple, "SUBJECT": queryast.OpTripleSubject,
	"PREDICATE": queryast.OpTriplePredicate, "OBJECT": queryast.OpTripleObject,
}

func (p *Parser) parseBuiltInOrPrimary() (queryast.Expression, error) {
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

	if tok.Kind == TokVariable {
		p.next()
		return &queryast.VariableExpr{Variable: queryast.NewVariable(tok.Text)}, nil
	}

	if tok.Kind == TokKeyword {
		switch tok.Text {
		case "EXISTS":
			p.next()
			pat, err := p.parseGroupGraphPattern()
			if err != nil {
				return nil, err
			}
			return &queryast.ExistsExpr{Pattern: pat}, nil
		case "NOT":
			// the only primary-position use of the bare NOT keyword is
			// "NOT EXISTS {...}"; unary negation uses '!' instead.
			p.next()
			if err := p.expectKeyword("EXISTS"); err != nil {
				return nil, err
			}
			pat, err := p.parseGroupGraphPattern()
			if err != nil {
				return nil, err
			}
			return &queryast.ExistsExpr{Pattern: pat, Negated: true}, nil
		case "TRUE":
			p.next()
			return &queryast.TermExpr{Term: &queryast.Literal{Node: rdf.NewBooleanLiteral(true)}}, nil
		case "FALSE":
			p.next()
			return &queryast.TermExpr{Term: &queryast.Literal{Node: rdf.NewBooleanLiteral(false)}}, nil
		case "CASE":
			return p.parseCaseExpr()
		}
		if kind, ok := aggregateKeywords[tok.Text]; ok {
			return p.parseAggregate(kind)
		}
		if op, ok := builtInOperators[tok.Text]; ok {
			p.next()
			if err := p.expectSymbol("("); err != nil {
				return nil, err
			}
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectSymbol(")"); err != nil {
				return nil, err
			}
			return &queryast.UnaryExpr{Operator: op, Operand: arg}, nil
		}
		if tok.Text == "REGEX" {
			p.next()
			if err := p.expectSymbol("("); err != nil {
				return nil, err
			}
			args := []queryast.Expression{}
			for {
				e, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, e)
				if ok, err := p.matchSymbol(","); err != nil {
					return nil, err
				} else if !ok {
					break
				}
			}
			if err := p.expectSymbol(")"); err != nil {
				return nil, err
			}
			return &queryast.FunctionCallExpr{Function: "REGEX", Arguments: args}, nil
		}
	}

	// Function calls name the function by IRI or prefixed name (resolved
	// to an IRI); an unrecognized bare keyword here is a syntax error,
	// caught by parseVarOrTerm below.
	if tok.Kind == TokIRI || tok.Kind == TokPrefixedName {
		return p.parseFunctionCallOrIRITerm(tok)
	}

	term, err := p.parseVarOrTerm()
	if err != nil {
		return nil, err
	}
	return &queryast.TermExpr{Term: term}, nil
}

func (p *Parser) parseFunctionCallOrIRITerm(tok Token) (queryast.Expression, error) {
	p.next()
	iri, err := p.resolveTermIRI(tok)
	if err != nil {
		return nil, err
	}
	nextTok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if nextTok.Kind == TokSymbol && nextTok.Text == "(" {
		args, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		return &queryast.FunctionCallExpr{Function: iri.Node.IRI, Arguments: args}, nil
	}
	return &queryast.TermExpr{Term: iri}, nil
}

func (p *Parser) parseAggregate(kind queryast.AggregateKind) (queryast.Expression, error) {
	p.next() // consume the aggregate keyword
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	distinct, err := p.matchKeyword("DISTINCT")
	if err != nil {
		return nil, err
	}
	agg := &queryast.AggregateExpr{Kind: kind, Distinct: distinct}

	if kind == queryast.AggCount {
		if ok, err := p.matchSymbol("*"); err != nil {
			return nil, err
		} else if ok {
			if err := p.expectSymbol(")"); err != nil {
				return nil, err
			}
			return agg, nil
		}
	}

	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	agg.Argument = arg

	if kind == queryast.AggGroupConcat {
		if ok, err := p.matchSymbol(";"); err != nil {
			return nil, err
		} else if ok {
			if err := p.expectKeyword("SEPARATOR"); err != nil {
				return nil, err
			}
			if err := p.expectSymbol("="); err != nil {
				return nil, err
			}
			sepTok, err := p.next()
			if err != nil {
				return nil, err
			}
			if sepTok.Kind != TokString {
				return nil, &UnexpectedToken{Expected: "string literal", Found: sepTok.Text, Pos: sepTok.Pos}
			}
			agg.Separator = &sepTok.Text
		}
	}

	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return agg, nil
}

func (p *Parser) parseCaseExpr() (queryast.Expression, error) {
	if err := p.expectKeyword("CASE"); err != nil {
		return nil, err
	}
	c := &queryast.CaseExpr{}
	for {
		if ok, err := p.matchKeyword("WHEN"); err != nil {
			return nil, err
		} else if !ok {
			break
		}
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("THEN"); err != nil {
			return nil, err
		}
		result, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Whens = append(c.Whens, queryast.CaseWhen{Condition: cond, Result: result})
	}
	if ok, err := p.matchKeyword("ELSE"); err != nil {
		return nil, err
	} else if ok {
		def, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Default = def
	}
	if err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	return c, nil
}
