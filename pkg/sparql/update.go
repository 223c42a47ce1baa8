package sparql

import "github.com/aleksaelezovic/graphcore/pkg/queryast"

func (p *Parser) parseUpdateOperation() (queryast.UpdateOperation, error) {
	tok, err := p.peek()
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	switch tok.Text {
	case "INSERT":
		return p.parseInsertOrModify()
	case "DELETE":
		return p.parseDeleteOrModify()
	case "LOAD":
		return p.parseLoad()
	case "CLEAR":
		return p.parseClear()
	case "CREATE":
		return p.parseCreate()
	case "DROP":
		return p.parseDrop()
	default:
		return queryast.UpdateOperation{}, &UnexpectedToken{Expected: "update operation", Found: tok.Text, Pos: tok.Pos}
	}
}

func (p *Parser) parseInsertOrModify() (queryast.UpdateOperation, error) {
	if err := p.expectKeyword("INSERT"); err != nil {
		return queryast.UpdateOperation{}, err
	}
	if ok, err := p.matchKeyword("DATA"); err != nil {
		return queryast.UpdateOperation{}, err
	} else if ok {
		quads, err := p.parseQuadData()
		if err != nil {
			return queryast.UpdateOperation{}, err
		}
		return queryast.UpdateOperation{Kind: queryast.UpdateInsertData, Data: quads}, nil
	}
	insertTmpl, err := p.parseQuadPattern()
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	return p.parseModifyTail(nil, insertTmpl)
}

func (p *Parser) parseDeleteOrModify() (queryast.UpdateOperation, error) {
	if err := p.expectKeyword("DELETE"); err != nil {
		return queryast.UpdateOperation{}, err
	}
	if ok, err := p.matchKeyword("DATA"); err != nil {
		return queryast.UpdateOperation{}, err
	} else if ok {
		quads, err := p.parseQuadData()
		if err != nil {
			return queryast.UpdateOperation{}, err
		}
		return queryast.UpdateOperation{Kind: queryast.UpdateDeleteData, Data: quads}, nil
	}
	deleteTmpl, err := p.parseQuadPattern()
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	var insertTmpl []queryast.Quad
	if ok, err := p.matchKeyword("INSERT"); err != nil {
		return queryast.UpdateOperation{}, err
	} else if ok {
		insertTmpl, err = p.parseQuadPattern()
		if err != nil {
			return queryast.UpdateOperation{}, err
		}
	}
	return p.parseModifyTail(deleteTmpl, insertTmpl)
}

func (p *Parser) parseModifyTail(deleteTmpl, insertTmpl []queryast.Quad) (queryast.UpdateOperation, error) {
	op := queryast.UpdateOperation{Kind: queryast.UpdateModify, DeleteTemplate: deleteTmpl, InsertTemplate: insertTmpl}
	for {
		if ok, err := p.matchKeyword("USING"); err != nil {
			return queryast.UpdateOperation{}, err
		} else if ok {
			named, err := p.matchKeyword("NAMED")
			if err != nil {
				return queryast.UpdateOperation{}, err
			}
			tok, err := p.next()
			if err != nil {
				return queryast.UpdateOperation{}, err
			}
			iri, err := p.resolveTermIRI(tok)
			if err != nil {
				return queryast.UpdateOperation{}, err
			}
			if named {
				op.UsingNamed = append(op.UsingNamed, iri)
			} else {
				op.Using = append(op.Using, iri)
			}
			continue
		}
		break
	}
	if err := p.expectKeyword("WHERE"); err != nil {
		return queryast.UpdateOperation{}, err
	}
	where, err := p.parseGroupGraphPattern()
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	op.Where = where
	return op, nil
}

// parseQuadData parses `{ quads }` for INSERT DATA / DELETE DATA,
// optionally wrapped per-graph with GRAPH <iri> { ... }. Variables in the
// triples are not rejected.
func (p *Parser) parseQuadData() ([]queryast.Quad, error) {
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	quads, err := p.parseQuadsInner()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("}"); err != nil {
		return nil, err
	}
	return quads, nil
}

// parseQuadPattern parses DELETE{}/INSERT{} templates; it delegates to
// parseQuadData and accepts exactly the same input.
func (p *Parser) parseQuadPattern() ([]queryast.Quad, error) {
	return p.parseQuadData()
}

func (p *Parser) parseQuadsInner() ([]queryast.Quad, error) {
	var quads []queryast.Quad
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokKeyword && tok.Text == "GRAPH" {
			p.next()
			gtok, err := p.next()
			if err != nil {
				return nil, err
			}
			var graph queryast.Term
			if gtok.Kind == TokVariable {
				graph = queryast.NewVariable(gtok.Text)
			} else {
				iri, err := p.resolveTermIRI(gtok)
				if err != nil {
					return nil, err
				}
				graph = iri
			}
			if err := p.expectSymbol("{"); err != nil {
				return nil, err
			}
			block, ok, err := p.tryParseTriplesBlock()
			if err != nil {
				return nil, err
			}
			if ok {
				for _, t := range block.triples {
					quads = append(quads, queryast.Quad{Triple: t, Graph: graph})
				}
			}
			if err := p.expectSymbol("}"); err != nil {
				return nil, err
			}
			continue
		}
		if !p.startsTerm(tok) {
			break
		}
		block, ok, err := p.tryParseTriplesBlock()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		for _, t := range block.triples {
			quads = append(quads, queryast.Quad{Triple: t})
		}
	}
	return quads, nil
}

func (p *Parser) parseLoad() (queryast.UpdateOperation, error) {
	if err := p.expectKeyword("LOAD"); err != nil {
		return queryast.UpdateOperation{}, err
	}
	silent, err := p.matchKeyword("SILENT")
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	srcTok, err := p.next()
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	src, err := p.resolveTermIRI(srcTok)
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	op := queryast.UpdateOperation{Kind: queryast.UpdateLoad, Source: src, Silent: silent}
	if ok, err := p.matchKeyword("INTO"); err != nil {
		return queryast.UpdateOperation{}, err
	} else if ok {
		if err := p.expectKeyword("GRAPH"); err != nil {
			return queryast.UpdateOperation{}, err
		}
		dstTok, err := p.next()
		if err != nil {
			return queryast.UpdateOperation{}, err
		}
		dst, err := p.resolveTermIRI(dstTok)
		if err != nil {
			return queryast.UpdateOperation{}, err
		}
		op.Into = dst
	}
	return op, nil
}

func (p *Parser) parseGraphRef() (*queryast.GraphRef, error) {
	if ok, err := p.matchKeyword("DEFAULT"); err != nil {
		return nil, err
	} else if ok {
		return &queryast.GraphRef{Default: true}, nil
	}
	if ok, err := p.matchKeyword("NAMED"); err != nil {
		return nil, err
	} else if ok {
		return &queryast.GraphRef{Named: true}, nil
	}
	if ok, err := p.matchKeyword("ALL"); err != nil {
		return nil, err
	} else if ok {
		return &queryast.GraphRef{All: true}, nil
	}
	if err := p.expectKeyword("GRAPH"); err != nil {
		return nil, err
	}
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	iri, err := p.resolveTermIRI(tok)
	if err != nil {
		return nil, err
	}
	return &queryast.GraphRef{IRI: iri}, nil
}

func (p *Parser) parseClear() (queryast.UpdateOperation, error) {
	if err := p.expectKeyword("CLEAR"); err != nil {
		return queryast.UpdateOperation{}, err
	}
	silent, err := p.matchKeyword("SILENT")
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	ref, err := p.parseGraphRef()
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	return queryast.UpdateOperation{Kind: queryast.UpdateClear, Target: ref, Silent: silent}, nil
}

func (p *Parser) parseCreate() (queryast.UpdateOperation, error) {
	if err := p.expectKeyword("CREATE"); err != nil {
		return queryast.UpdateOperation{}, err
	}
	silent, err := p.matchKeyword("SILENT")
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	ref, err := p.parseGraphRef()
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	return queryast.UpdateOperation{Kind: queryast.UpdateCreate, Target: ref, Silent: silent}, nil
}

func (p *Parser) parseDrop() (queryast.UpdateOperation, error) {
	if err := p.expectKeyword("DROP"); err != nil {
		return queryast.UpdateOperation{}, err
	}
	silent, err := p.matchKeyword("SILENT")
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	ref, err := p.parseGraphRef()
	if err != nil {
		return queryast.UpdateOperation{}, err
	}
	return queryast.UpdateOperation{Kind: queryast.UpdateDrop, Target: ref, Silent: silent}, nil
}
