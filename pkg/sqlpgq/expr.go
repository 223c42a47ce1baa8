package sqlpgq

import (
	"strings"

	"github.com/aleksaelezovic/graphcore/pkg/queryast"
)

// aggregateKeywords maps the standard SQL set-function names to their
// AggregateKind. Matched case-insensitively since, unlike SPARQL's
// reserved words, these are ordinary identifiers in SQL rather than
// lexer-level keywords.
var aggregateKeywords = map[string]queryast.AggregateKind{
	"COUNT": queryast.AggCount, "SUM": queryast.AggSum, "AVG": queryast.AggAvg,
	"MIN": queryast.AggMin, "MAX": queryast.AggMax,
}

// parseExpression parses a full SQL/PGQ expression per §4.G's precedence
// table: OR > AND > NOT > comparison > additive > multiplicative > unary >
// primary, with IS NULL, IN, BETWEEN and LIKE folded into the comparison
// tier; CASE WHEN is parsed as a primary.
func (p *Parser) parseExpression() (queryast.Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (queryast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if ok, err := p.matchKeyword("OR"); err != nil {
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
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		if ok, err := p.matchKeyword("AND"); err != nil {
			return nil, err
		} else if !ok {
			return left, nil
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &queryast.BinaryExpr{Left: left, Operator: queryast.OpAnd, Right: right}
	}
}

func (p *Parser) parseNot() (queryast.Expression, error) {
	if ok, err := p.matchKeyword("NOT"); err != nil {
		return nil, err
	} else if ok {
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &queryast.UnaryExpr{Operator: queryast.OpNot, Operand: operand}, nil
	}
	return p.parseComparison()
}

var relOps = map[string]queryast.Operator{
	"=": queryast.OpEqual, "<>": queryast.OpNotEqual, "!=": queryast.OpNotEqual,
	"<": queryast.OpLessThan, "<=": queryast.OpLessThanOrEqual,
	">": queryast.OpGreaterThan, ">=": queryast.OpGreaterThanOrEqual,
}

// parseComparison handles relational operators plus the IS [NOT] NULL, [NOT]
// IN, [NOT] BETWEEN, and [NOT] LIKE postfix forms, all of which share the
// additive tier as their left operand.
func (p *Parser) parseComparison() (queryast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokOp {
		if op, ok := relOps[tok.Text]; ok {
			p.next()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			return &queryast.BinaryExpr{Left: left, Operator: op, Right: right}, nil
		}
	}

	if tok.Kind == TokKeyword && tok.Text == "IS" {
		p.next()
		negated, err := p.matchKeyword("NOT")
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("NULL"); err != nil {
			return nil, err
		}
		expr := queryast.Expression(&queryast.UnaryExpr{Operator: queryast.OpIsNull, Operand: left})
		if negated {
			expr = &queryast.UnaryExpr{Operator: queryast.OpNot, Operand: expr}
		}
		return expr, nil
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

	switch {
	case tok.Kind == TokKeyword && tok.Text == "IN":
		p.next()
		list, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		return &queryast.InExpr{Operand: left, List: list, Negated: negated}, nil
	case tok.Kind == TokKeyword && tok.Text == "BETWEEN":
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
		return &queryast.BetweenExpr{Operand: left, Low: low, High: high, Negated: negated}, nil
	case tok.Kind == TokKeyword && tok.Text == "LIKE":
		p.next()
		pattern, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		expr := queryast.Expression(&queryast.BinaryExpr{Left: left, Operator: queryast.OpLike, Right: pattern})
		if negated {
			expr = &queryast.UnaryExpr{Operator: queryast.OpNot, Operand: expr}
		}
		return expr, nil
	}

	if negated {
		return nil, &UnexpectedToken{Expected: "IN, BETWEEN, or LIKE", Found: tok.Text, Pos: tok.Pos}
	}
	return left, nil
}

func (p *Parser) parseExpressionList() ([]queryast.Expression, error) {
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	var list []queryast.Expression
	for {
		if ok, err := p.matchOp(")"); err != nil {
			return nil, err
		} else if ok {
			break
		}
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		if ok, err := p.matchOp(","); err != nil {
			return nil, err
		} else if !ok {
			if err := p.expectOp(")"); err != nil {
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
		case tok.Kind == TokOp && tok.Text == "+":
			op = queryast.OpAdd
		case tok.Kind == TokOp && tok.Text == "-":
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
		case tok.Kind == TokOp && tok.Text == "*":
			op = queryast.OpMultiply
		case tok.Kind == TokOp && tok.Text == "/":
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
	if tok.Kind == TokOp && tok.Text == "-" {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &queryast.UnaryExpr{Operator: queryast.OpUnaryMinus, Operand: operand}, nil
	}
	if tok.Kind == TokOp && tok.Text == "+" {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &queryast.UnaryExpr{Operator: queryast.OpUnaryPlus, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (queryast.Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind == TokOp && tok.Text == "(" {
		p.next()
		// A parenthesized SELECT is a scalar subquery; anything else is a
		// grouped expression.
		if sub, err := p.peek(); err == nil && sub.Kind == TokKeyword && (sub.Text == "SELECT" || sub.Text == "WITH") {
			stmt, err := p.parseSelectStatement()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			return &queryast.SubqueryExpr{Query: stmt}, nil
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return expr, nil
	}

	switch tok.Kind {
	case TokInt, TokFloat:
		p.next()
		return &queryast.TermExpr{Term: queryast.NewLiteral(tok.Text)}, nil
	case TokString:
		p.next()
		return &queryast.TermExpr{Term: queryast.NewLiteral(tok.Text)}, nil
	}

	if tok.Kind == TokKeyword {
		switch tok.Text {
		case "TRUE":
			p.next()
			return &queryast.TermExpr{Term: queryast.NewLiteral("true")}, nil
		case "FALSE":
			p.next()
			return &queryast.TermExpr{Term: queryast.NewLiteral("false")}, nil
		case "NULL":
			p.next()
			return &queryast.TermExpr{Term: queryast.NewLiteral("")}, nil
		case "CASE":
			return p.parseCaseExpr()
		}
	}

	if tok.Kind == TokIdent {
		if kind, ok := aggregateKeywords[strings.ToUpper(tok.Text)]; ok {
			if nextTok, err := p.peekAhead(); err == nil && nextTok.Kind == TokOp && nextTok.Text == "(" {
				p.next()
				return p.parseAggregate(kind)
			}
		}
		p.next()
		nextTok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if nextTok.Kind == TokOp && nextTok.Text == "(" {
			args, err := p.parseExpressionList()
			if err != nil {
				return nil, err
			}
			return &queryast.FunctionCallExpr{Function: tok.Text, Arguments: args}, nil
		}
		name := tok.Text
		if nextTok.Kind == TokOp && nextTok.Text == "." {
			p.next()
			field, err := p.parseName()
			if err != nil {
				return nil, err
			}
			name = name + "." + field
		}
		return &queryast.VariableExpr{Variable: queryast.NewVariable(name)}, nil
	}

	return nil, &UnexpectedToken{Expected: "expression", Found: tok.Text, Pos: tok.Pos}
}

// parseAggregate parses the `(` already confirmed present by peekAhead
// through the closing `)`, handling DISTINCT and the COUNT(*) wildcard.
func (p *Parser) parseAggregate(kind queryast.AggregateKind) (queryast.Expression, error) {
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	distinct, err := p.matchKeyword("DISTINCT")
	if err != nil {
		return nil, err
	}
	agg := &queryast.AggregateExpr{Kind: kind, Distinct: distinct}

	if kind == queryast.AggCount {
		if ok, err := p.matchOp("*"); err != nil {
			return nil, err
		} else if ok {
			if err := p.expectOp(")"); err != nil {
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
	if err := p.expectOp(")"); err != nil {
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
