package sqlpgq

import (
	"strconv"

	"github.com/aleksaelezovic/graphcore/pkg/queryast"
)

// parseSelectStatement parses an optional WITH clause followed by a SELECT,
// the shape every top-level query and every subquery/CTE body shares.
func (p *Parser) parseSelectStatement() (*queryast.SelectQuery, error) {
	ctes, err := p.parseWithClause()
	if err != nil {
		return nil, err
	}
	sel, err := p.parseSelectQuery()
	if err != nil {
		return nil, err
	}
	if len(ctes) > 0 {
		sel.Where = wrapWithCTEs(ctes, sel.Where)
	}
	return sel, nil
}

// cteBinding is one `name [(cols)] AS [MATERIALIZED] (query)` entry of a
// WITH clause.
type cteBinding struct {
	name  string
	query *queryast.SelectQuery
}

// parseWithClause consumes `WITH [RECURSIVE] name AS [MATERIALIZED]
// (query) [, ...]` and records each name in p.ctes. Nothing reads p.ctes: a
// later FROM reference to a CTE name parses as a RelationPattern exactly as
// a base table does.
func (p *Parser) parseWithClause() ([]cteBinding, error) {
	if ok, err := p.matchKeyword("WITH"); err != nil {
		return nil, err
	} else if !ok {
		return nil, nil
	}
	if _, err := p.matchKeyword("RECURSIVE"); err != nil {
		return nil, err
	}
	var ctes []cteBinding
	for {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		p.ctes[name] = true
		if ok, err := p.matchOp("("); err != nil {
			return nil, err
		} else if ok {
			for {
				if _, err := p.parseName(); err != nil {
					return nil, err
				}
				if ok, err := p.matchOp(","); err != nil {
					return nil, err
				} else if !ok {
					break
				}
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
		}
		if err := p.expectKeyword("AS"); err != nil {
			return nil, err
		}
		if _, err := p.matchKeyword("MATERIALIZED"); err != nil {
			return nil, err
		}
		if err := p.expectOp("("); err != nil {
			return nil, err
		}
		q, err := p.parseSelectStatement()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		ctes = append(ctes, cteBinding{name: name, query: q})
		if ok, err := p.matchOp(","); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	return ctes, nil
}

// wrapWithCTEs joins each binding's subquery pattern ahead of the main
// WHERE pattern as a LateralPattern, making each CTE's rows visible to the
// clauses that follow, mirroring how SPARQL's inline VALUES and subquery
// patterns compose left-to-right in the algebra.
func wrapWithCTEs(ctes []cteBinding, where queryast.GraphPattern) queryast.GraphPattern {
	for i := len(ctes) - 1; i >= 0; i-- {
		sub := &queryast.SubqueryPattern{Query: ctes[i].query, Alias: ctes[i].name}
		if where == nil {
			where = sub
			continue
		}
		where = &queryast.LateralPattern{Left: sub, Right: where}
	}
	return where
}

func (p *Parser) parseSelectQuery() (*queryast.SelectQuery, error) {
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}
	sel := &queryast.SelectQuery{}
	if ok, err := p.matchKeyword("DISTINCT"); err != nil {
		return nil, err
	} else if ok {
		sel.Distinct = true
	}

	if ok, err := p.matchOp("*"); err != nil {
		return nil, err
	} else if ok {
		sel.Star = true
	} else {
		for {
			item, err := p.parseProjectItem()
			if err != nil {
				return nil, err
			}
			sel.Projection = append(sel.Projection, item)
			if ok, err := p.matchOp(","); err != nil {
				return nil, err
			} else if !ok {
				break
			}
		}
	}

	if ok, err := p.matchKeyword("FROM"); err != nil {
		return nil, err
	} else if ok {
		from, err := p.parseFromItem()
		if err != nil {
			return nil, err
		}
		for {
			joined, err := p.tryParseJoin(from)
			if err != nil {
				return nil, err
			}
			if joined == nil {
				break
			}
			from = joined
		}
		sel.Where = from
	}

	if ok, err := p.matchKeyword("WHERE"); err != nil {
		return nil, err
	} else if ok {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		sel.Where = &queryast.FilterPattern{Pattern: sel.Where, Expr: expr}
	}

	if err := p.parseSolutionModifiers(sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// parseProjectItem parses one SELECT/COLUMNS projection entry. A bare
// column reference needs no alias; any other expression may take an
// optional `AS alias` — when omitted, a positional placeholder name is
// synthesized so every ProjectItem still carries a usable Variable.
func (p *Parser) parseProjectItem() (queryast.ProjectItem, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return queryast.ProjectItem{}, err
	}
	if v, ok := expr.(*queryast.VariableExpr); ok {
		if ok, err := p.matchKeyword("AS"); err != nil {
			return queryast.ProjectItem{}, err
		} else if ok {
			alias, err := p.parseName()
			if err != nil {
				return queryast.ProjectItem{}, err
			}
			return queryast.ProjectItem{Variable: queryast.NewVariable(alias), Expr: expr}, nil
		}
		return queryast.ProjectItem{Variable: v.Variable}, nil
	}
	if ok, err := p.matchKeyword("AS"); err != nil {
		return queryast.ProjectItem{}, err
	} else if ok {
		alias, err := p.parseName()
		if err != nil {
			return queryast.ProjectItem{}, err
		}
		return queryast.ProjectItem{Variable: queryast.NewVariable(alias), Expr: expr}, nil
	}
	p.colAnon++
	return queryast.ProjectItem{Variable: queryast.NewVariable("_col" + strconv.Itoa(p.colAnon)), Expr: expr}, nil
}

// parseFromItem parses one FROM-list entry: a base relation, a CTE
// reference, a parenthesized subquery (with required alias), or a
// GRAPH_TABLE table-valued function.
func (p *Parser) parseFromItem() (queryast.GraphPattern, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind == TokKeyword && tok.Text == "GRAPH_TABLE" {
		return p.parseGraphTable()
	}

	if tok.Kind == TokOp && tok.Text == "(" {
		p.next()
		sub, err := p.parseSelectStatement()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("AS"); err != nil {
			return nil, err
		}
		alias, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return &queryast.SubqueryPattern{Query: sub, Alias: alias}, nil
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	alias := name
	if ok, err := p.matchKeyword("AS"); err != nil {
		return nil, err
	} else if ok {
		alias, err = p.parseName()
		if err != nil {
			return nil, err
		}
	} else if next, err := p.peek(); err == nil && next.Kind == TokIdent {
		alias, err = p.parseName()
		if err != nil {
			return nil, err
		}
	}
	return &queryast.RelationPattern{Name: name, Alias: alias}, nil
}

var joinKeywords = map[string]bool{"JOIN": true, "INNER": true, "LEFT": true, "RIGHT": true, "FULL": true, "CROSS": true}

// tryParseJoin consumes one JOIN clause if present, returning the combined
// pattern, or (nil, nil) if the next token doesn't start a JOIN.
func (p *Parser) tryParseJoin(left queryast.GraphPattern) (queryast.GraphPattern, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokKeyword || !joinKeywords[tok.Text] {
		return nil, nil
	}

	outer := false
	var kind string
	switch tok.Text {
	case "JOIN":
		kind = "INNER"
		p.next()
	case "CROSS":
		kind = "CROSS"
		p.next()
		if err := p.expectKeyword("JOIN"); err != nil {
			return nil, err
		}
	default:
		kind = tok.Text
		outer = kind == "LEFT" || kind == "RIGHT" || kind == "FULL"
		p.next()
		if _, err := p.matchKeyword("OUTER"); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("JOIN"); err != nil {
			return nil, err
		}
	}

	right, err := p.parseFromItem()
	if err != nil {
		return nil, err
	}

	var cond queryast.Expression
	if kind != "CROSS" {
		if ok, err := p.matchKeyword("ON"); err != nil {
			return nil, err
		} else if ok {
			cond, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		} else if ok, err := p.matchKeyword("USING"); err != nil {
			return nil, err
		} else if ok {
			if err := p.expectOp("("); err != nil {
				return nil, err
			}
			var eq queryast.Expression
			for {
				col, err := p.parseName()
				if err != nil {
					return nil, err
				}
				c := &queryast.BinaryExpr{
					Left:     &queryast.VariableExpr{Variable: queryast.NewVariable(col)},
					Operator: queryast.OpEqual,
					Right:    &queryast.VariableExpr{Variable: queryast.NewVariable(col)},
				}
				if eq == nil {
					eq = c
				} else {
					eq = &queryast.BinaryExpr{Left: eq, Operator: queryast.OpAnd, Right: c}
				}
				if ok, err := p.matchOp(","); err != nil {
					return nil, err
				} else if !ok {
					break
				}
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			cond = eq
		}
	}

	if outer && kind != "FULL" {
		if kind == "RIGHT" {
			return &queryast.LeftJoinPattern{Left: right, Right: left, Filter: cond}, nil
		}
		return &queryast.LeftJoinPattern{Left: left, Right: right, Filter: cond}, nil
	}
	joined := queryast.GraphPattern(&queryast.JoinPattern{Left: left, Right: right})
	if cond != nil {
		joined = &queryast.FilterPattern{Pattern: joined, Expr: cond}
	}
	return joined, nil
}

func (p *Parser) parseSolutionModifiers(sel *queryast.SelectQuery) error {
	if ok, err := p.matchKeyword("GROUP"); err != nil {
		return err
	} else if ok {
		if err := p.expectKeyword("BY"); err != nil {
			return err
		}
		for {
			expr, err := p.parseExpression()
			if err != nil {
				return err
			}
			sel.GroupBy = append(sel.GroupBy, expr)
			if ok, err := p.matchOp(","); err != nil {
				return err
			} else if !ok {
				break
			}
		}
	}
	if ok, err := p.matchKeyword("HAVING"); err != nil {
		return err
	} else if ok {
		expr, err := p.parseExpression()
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
			cond, err := p.parseOrderCondition()
			if err != nil {
				return err
			}
			sel.OrderBy = append(sel.OrderBy, cond)
			if ok, err := p.matchOp(","); err != nil {
				return err
			} else if !ok {
				break
			}
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

func (p *Parser) parseOrderCondition() (queryast.OrderCondition, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return queryast.OrderCondition{}, err
	}
	cond := queryast.OrderCondition{Expr: expr, Ascending: true}
	if ok, err := p.matchKeyword("ASC"); err != nil {
		return queryast.OrderCondition{}, err
	} else if ok {
		cond.Ascending = true
	} else if ok, err := p.matchKeyword("DESC"); err != nil {
		return queryast.OrderCondition{}, err
	} else if ok {
		cond.Ascending = false
	}
	if ok, err := p.matchKeyword("NULLS"); err != nil {
		return queryast.OrderCondition{}, err
	} else if ok {
		if ok, err := p.matchKeyword("FIRST"); err != nil {
			return queryast.OrderCondition{}, err
		} else if ok {
			cond.NullsFirst = true
		} else if err := p.expectKeyword("LAST"); err != nil {
			return queryast.OrderCondition{}, err
		} else {
			cond.NullsLast = true
		}
	}
	return cond, nil
}

func (p *Parser) parseIntLiteral() (int, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	if tok.Kind != TokInt {
		return 0, &UnexpectedToken{Expected: "integer", Found: tok.Text, Pos: tok.Pos}
	}
	return atoiPos(tok.Text, tok.Pos)
}
