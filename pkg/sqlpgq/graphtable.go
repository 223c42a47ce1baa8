package sqlpgq

import "github.com/aleksaelezovic/graphcore/pkg/queryast"

// parseGraphTable parses `GRAPH_TABLE(graphName, MATCH <paths> [WHERE
// <expr>] [COLUMNS (<expr> AS alias, ...)])`.
func (p *Parser) parseGraphTable() (*queryast.GraphTablePattern, error) {
	if err := p.expectKeyword("GRAPH_TABLE"); err != nil {
		return nil, err
	}
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	graphName, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(","); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("MATCH"); err != nil {
		return nil, err
	}

	gt := &queryast.GraphTablePattern{GraphName: graphName}
	for {
		path, err := p.parsePathPattern()
		if err != nil {
			return nil, err
		}
		gt.Paths = append(gt.Paths, path)
		if ok, err := p.matchOp(","); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}

	if ok, err := p.matchKeyword("WHERE"); err != nil {
		return nil, err
	} else if ok {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		gt.Where = expr
	}

	if ok, err := p.matchKeyword("COLUMNS"); err != nil {
		return nil, err
	} else if ok {
		if err := p.expectOp("("); err != nil {
			return nil, err
		}
		for {
			item, err := p.parseProjectItem()
			if err != nil {
				return nil, err
			}
			gt.Columns = append(gt.Columns, item)
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

	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return gt, nil
}

var pathModeKeywords = map[string]queryast.PathMode{
	"WALK": queryast.PathModeWalk, "TRAIL": queryast.PathModeTrail,
	"ACYCLIC": queryast.PathModeAcyclic, "SIMPLE": queryast.PathModeSimple,
}

// parsePathPattern parses one `pathVar = mode node (edge node)*` path.
func (p *Parser) parsePathPattern() (queryast.PathPattern, error) {
	path := queryast.PathPattern{}

	if tok, err := p.peek(); err != nil {
		return path, err
	} else if tok.Kind == TokIdent {
		if next, err := p.peekAhead(); err == nil && next.Kind == TokOp && next.Text == "=" {
			p.next()
			p.next()
			path.Variable = tok.Text
		}
	}

	if ok, err := p.matchKeyword("ALL"); err != nil {
		return path, err
	} else if ok {
		if err := p.expectKeyword("SHORTEST"); err != nil {
			return path, err
		}
		if _, err := p.matchKeyword("PATH"); err != nil {
			return path, err
		}
		path.Mode = queryast.PathModeAllShortest
	} else if ok, err := p.matchKeyword("SHORTEST"); err != nil {
		return path, err
	} else if ok {
		if _, err := p.matchKeyword("PATH"); err != nil {
			return path, err
		}
		path.Mode = queryast.PathModeShortest
	} else {
		tok, err := p.peek()
		if err != nil {
			return path, err
		}
		if tok.Kind == TokKeyword {
			if mode, ok := pathModeKeywords[tok.Text]; ok {
				p.next()
				path.Mode = mode
			}
		}
	}

	node, err := p.parseNodePattern()
	if err != nil {
		return path, err
	}
	path.Elements = append(path.Elements, queryast.PathElement{Node: node})

	for {
		tok, err := p.peek()
		if err != nil {
			return path, err
		}
		if tok.Kind != TokOp || (tok.Text != "-" && tok.Text != "<-" && tok.Text != "->") {
			break
		}
		edge, err := p.parseEdgePattern()
		if err != nil {
			return path, err
		}
		path.Elements = append(path.Elements, queryast.PathElement{Edge: edge})

		next, err := p.parseNodePattern()
		if err != nil {
			return path, err
		}
		path.Elements = append(path.Elements, queryast.PathElement{Node: next})
	}

	return path, nil
}

// parseNodePattern parses `(var? :Label? {prop: val, ...}?)`.
func (p *Parser) parseNodePattern() (*queryast.NodePattern, error) {
	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	n := &queryast.NodePattern{}
	if tok, err := p.peek(); err != nil {
		return nil, err
	} else if tok.Kind == TokIdent {
		p.next()
		n.Variable = tok.Text
	}
	if ok, err := p.matchOp(":"); err != nil {
		return nil, err
	} else if ok {
		label, err := p.parseName()
		if err != nil {
			return nil, err
		}
		n.Label = label
	}
	props, err := p.tryParseProperties()
	if err != nil {
		return nil, err
	}
	n.Properties = props
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return n, nil
}

// parseEdgePattern implements §4.G's 9-row edge-direction state table. The
// start symbol (`-` or `<-`) is read first; `->` alone is always the
// anonymous-outgoing row, and a bracketed body immediately after it is the
// table's documented error case (brackets must precede the arrow, never
// follow it). Otherwise an optional `[...]` body may follow, and then an
// end symbol (`-` or `->`) may or may not be present: its absence is the
// anonymous-edge row, sharing the bracketed row's direction mapping for the
// same start/end pair.
func (p *Parser) parseEdgePattern() (*queryast.EdgePattern, error) {
	start, err := p.next()
	if err != nil {
		return nil, err
	}

	if start.Text == "->" {
		if tok, err := p.peek(); err != nil {
			return nil, err
		} else if tok.Kind == TokOp && tok.Text == "[" {
			return nil, &InvalidSyntax{Msg: "brackets must precede the arrow in an edge pattern, not follow it", Pos: tok.Pos}
		}
		return &queryast.EdgePattern{Direction: queryast.EdgeOutgoing}, nil
	}

	edge := &queryast.EdgePattern{}
	bracketed := false
	if tok, err := p.peek(); err != nil {
		return nil, err
	} else if tok.Kind == TokOp && tok.Text == "[" {
		bracketed = true
		p.next()
		if vtok, err := p.peek(); err != nil {
			return nil, err
		} else if vtok.Kind == TokIdent {
			p.next()
			edge.Variable = vtok.Text
		}
		if ok, err := p.matchOp(":"); err != nil {
			return nil, err
		} else if ok {
			label, err := p.parseName()
			if err != nil {
				return nil, err
			}
			edge.Label = label
		}
		props, err := p.tryParseProperties()
		if err != nil {
			return nil, err
		}
		edge.Properties = props
		if err := p.expectOp("]"); err != nil {
			return nil, err
		}
	}

	var endText string
	if bracketed {
		end, err := p.next()
		if err != nil {
			return nil, err
		}
		if end.Text != "-" && end.Text != "->" {
			return nil, &UnexpectedToken{Expected: "- or ->", Found: end.Text, Pos: end.Pos}
		}
		endText = end.Text
	} else if tok, err := p.peek(); err != nil {
		return nil, err
	} else if tok.Kind == TokOp && (tok.Text == "-" || tok.Text == "->") {
		p.next()
		endText = tok.Text
	}

	switch {
	case start.Text == "-" && endText == "->":
		edge.Direction = queryast.EdgeOutgoing
	case start.Text == "<-" && endText == "-":
		edge.Direction = queryast.EdgeIncoming
	case start.Text == "-" && endText == "-":
		edge.Direction = queryast.EdgeUndirected
	case start.Text == "<-" && endText == "->":
		edge.Direction = queryast.EdgeAnyDirection
	case start.Text == "-" && endText == "":
		edge.Direction = queryast.EdgeUndirected
	case start.Text == "<-" && endText == "":
		edge.Direction = queryast.EdgeIncoming
	default:
		return nil, &InvalidSyntax{Msg: "unrecognized edge start/end combination " + start.Text + "/" + endText, Pos: start.Pos}
	}
	return edge, nil
}

// tryParseProperties consumes an optional `{key: val, ...}` property map.
func (p *Parser) tryParseProperties() ([]queryast.PropertyConstraint, error) {
	if ok, err := p.matchOp("{"); err != nil {
		return nil, err
	} else if !ok {
		return nil, nil
	}
	var props []queryast.PropertyConstraint
	for {
		key, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(":"); err != nil {
			return nil, err
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		props = append(props, queryast.PropertyConstraint{Key: key, Value: val})
		if ok, err := p.matchOp(","); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return props, nil
}
