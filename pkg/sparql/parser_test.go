package sparql

import (
	"testing"

	"github.com/aleksaelezovic/graphcore/pkg/queryast"
)

func mustParse(t *testing.T, src string) *queryast.Query {
	t.Helper()
	q, err := NewParser(src).Parse()
	if err != nil {
		t.Fatalf("parse error for %q: %v", src, err)
	}
	return q
}

func TestParseSimpleSelect(t *testing.T) {
	q := mustParse(t, `SELECT ?s ?p ?o WHERE { ?s ?p ?o }`)
	if q.Form != queryast.FormSelect {
		t.Fatalf("expected select form")
	}
	sel := q.Select
	if len(sel.Projection) != 3 {
		t.Fatalf("expected 3 projection vars, got %d", len(sel.Projection))
	}
	bp, ok := sel.Where.(*queryast.BasicPattern)
	if !ok {
		t.Fatalf("expected BasicPattern, got %T", sel.Where)
	}
	if len(bp.Triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(bp.Triples))
	}
}

func TestParseSelectStarDistinct(t *testing.T) {
	q := mustParse(t, `SELECT DISTINCT * WHERE { ?s ?p ?o }`)
	if !q.Select.Distinct || !q.Select.Star {
		t.Fatalf("expected distinct+star, got %+v", q.Select)
	}
}

func TestParsePrefixedNameResolution(t *testing.T) {
	q := mustParse(t, `PREFIX foaf: <http://xmlns.com/foaf/0.1/>
		SELECT ?name WHERE { ?x foaf:name ?name }`)
	bp := q.Select.Where.(*queryast.BasicPattern)
	pred, ok := bp.Triples[0].Predicate.(*queryast.IRI)
	if !ok {
		t.Fatalf("expected IRI predicate, got %T", bp.Triples[0].Predicate)
	}
	if pred.Node.IRI != "http://xmlns.com/foaf/0.1/name" {
		t.Fatalf("got %q", pred.Node.IRI)
	}
}

func TestParseBaseRelativeResolution(t *testing.T) {
	q := mustParse(t, `BASE <http://example.org/base/>
		SELECT ?s WHERE { ?s <rel> <#frag> }`)
	bp := q.Select.Where.(*queryast.BasicPattern)
	obj := bp.Triples[0].Predicate.(*queryast.IRI)
	if obj.Node.IRI != "http://example.org/base/rel" {
		t.Fatalf("got %q", obj.Node.IRI)
	}
	frag := bp.Triples[0].Object.(*queryast.IRI)
	if frag.Node.IRI != "http://example.org/base/#frag" {
		t.Fatalf("got %q", frag.Node.IRI)
	}
}

func TestParseFilterWrapsAccumulator(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { ?s ?p ?o . FILTER(?o > 5) }`)
	fp, ok := q.Select.Where.(*queryast.FilterPattern)
	if !ok {
		t.Fatalf("expected FilterPattern, got %T", q.Select.Where)
	}
	if _, ok := fp.Pattern.(*queryast.BasicPattern); !ok {
		t.Fatalf("expected inner BasicPattern, got %T", fp.Pattern)
	}
	be, ok := fp.Expr.(*queryast.BinaryExpr)
	if !ok || be.Operator != queryast.OpGreaterThan {
		t.Fatalf("expected > binary expr, got %+v", fp.Expr)
	}
}

func TestParseOptionalBuildsLeftJoin(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { ?s a ?type . OPTIONAL { ?s ?p ?o } }`)
	lj, ok := q.Select.Where.(*queryast.LeftJoinPattern)
	if !ok {
		t.Fatalf("expected LeftJoinPattern, got %T", q.Select.Where)
	}
	if lj.Filter != nil {
		t.Fatalf("expected nil filter for bare OPTIONAL")
	}
}

func TestParseMinusPattern(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { ?s ?p ?o . MINUS { ?s a ?x } }`)
	if _, ok := q.Select.Where.(*queryast.MinusPattern); !ok {
		t.Fatalf("expected MinusPattern, got %T", q.Select.Where)
	}
}

func TestParseUnionPattern(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { { ?s a ?x } UNION { ?s a ?y } }`)
	if _, ok := q.Select.Where.(*queryast.UnionPattern); !ok {
		t.Fatalf("expected UnionPattern, got %T", q.Select.Where)
	}
}

func TestParseBindPattern(t *testing.T) {
	q := mustParse(t, `SELECT ?v WHERE { ?s ?p ?o . BIND(?o + 1 AS ?v) }`)
	bp, ok := q.Select.Where.(*queryast.BindPattern)
	if !ok {
		t.Fatalf("expected BindPattern, got %T", q.Select.Where)
	}
	if bp.Variable.Name != "v" {
		t.Fatalf("got var %q", bp.Variable.Name)
	}
}

func TestParseGraphPattern(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { GRAPH <http://g/1> { ?s ?p ?o } }`)
	gp, ok := q.Select.Where.(*queryast.GraphNamePattern)
	if !ok {
		t.Fatalf("expected GraphNamePattern, got %T", q.Select.Where)
	}
	iri := gp.Name.(*queryast.IRI)
	if iri.Node.IRI != "http://g/1" {
		t.Fatalf("got %q", iri.Node.IRI)
	}
}

func TestParseServiceSilent(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { SERVICE SILENT <http://ep/> { ?s ?p ?o } }`)
	sp, ok := q.Select.Where.(*queryast.ServicePattern)
	if !ok {
		t.Fatalf("expected ServicePattern, got %T", q.Select.Where)
	}
	if !sp.Silent {
		t.Fatalf("expected silent=true")
	}
}

func TestParseValuesClauseSingleVar(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { VALUES ?s { <http://a/> <http://b/> } }`)
	vp, ok := q.Select.Where.(*queryast.ValuesPattern)
	if !ok {
		t.Fatalf("expected ValuesPattern, got %T", q.Select.Where)
	}
	if len(vp.Vars) != 1 || len(vp.Rows) != 2 {
		t.Fatalf("got vars=%d rows=%d", len(vp.Vars), len(vp.Rows))
	}
}

func TestParseValuesClauseMultiVarWithUndef(t *testing.T) {
	q := mustParse(t, `SELECT ?s ?o WHERE { VALUES (?s ?o) { (<http://a/> UNDEF) } }`)
	vp := q.Select.Where.(*queryast.ValuesPattern)
	if len(vp.Vars) != 2 {
		t.Fatalf("got %d vars", len(vp.Vars))
	}
	if vp.Rows[0][1] != nil {
		t.Fatalf("expected UNDEF to produce nil term, got %v", vp.Rows[0][1])
	}
}

func TestParseLateralPattern(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { ?s ?p ?o . LATERAL { SELECT ?s WHERE { ?s ?q ?r } } }`)
	if _, ok := q.Select.Where.(*queryast.LateralPattern); !ok {
		t.Fatalf("expected LateralPattern, got %T", q.Select.Where)
	}
}

func TestParsePropertyPathOperators(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/>
		SELECT ?s ?o WHERE { ?s ex:a/ex:b* ?o }`)
	// top level pattern should contain a PropertyPathPattern joined after a BasicPattern
	jp, ok := q.Select.Where.(*queryast.JoinPattern)
	if !ok {
		t.Fatalf("expected JoinPattern (basic + path), got %T", q.Select.Where)
	}
	ppp, ok := jp.Right.(*queryast.PropertyPathPattern)
	if !ok {
		t.Fatalf("expected PropertyPathPattern, got %T", jp.Right)
	}
	if ppp.Path.PathKind() != queryast.PathSequence {
		t.Fatalf("expected sequence path, got %v", ppp.Path.PathKind())
	}
}

func TestParsePropertyPathInverse(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/>
		SELECT ?s WHERE { ?s ^ex:a ?o }`)
	jp := q.Select.Where.(*queryast.JoinPattern)
	ppp := jp.Right.(*queryast.PropertyPathPattern)
	if ppp.Path.PathKind() != queryast.PathInverse {
		t.Fatalf("expected inverse path, got %v", ppp.Path.PathKind())
	}
}

func TestParsePropertyPathInverseWithModifier(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/>
		SELECT ?s WHERE { ?s ^ex:a* ?o }`)
	jp := q.Select.Where.(*queryast.JoinPattern)
	ppp := jp.Right.(*queryast.PropertyPathPattern)
	if ppp.Path.PathKind() != queryast.PathZeroOrMore {
		t.Fatalf("expected the * modifier to wrap the inverse path, got %v", ppp.Path.PathKind())
	}
	zom := ppp.Path.(*queryast.ZeroOrMorePath)
	if zom.Path.PathKind() != queryast.PathInverse {
		t.Fatalf("expected the modifier's operand to be the inverse path, got %v", zom.Path.PathKind())
	}
}

func TestParsePropertyPathAlternative(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/>
		SELECT ?s WHERE { ?s ex:a|ex:b ?o }`)
	jp := q.Select.Where.(*queryast.JoinPattern)
	ppp := jp.Right.(*queryast.PropertyPathPattern)
	if ppp.Path.PathKind() != queryast.PathAlternative {
		t.Fatalf("expected alternative path, got %v", ppp.Path.PathKind())
	}
}

func TestParseSimplePathDemotesToTriplePattern(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/> SELECT ?s WHERE { ?s ex:p ?o }`)
	bp, ok := q.Select.Where.(*queryast.BasicPattern)
	if !ok {
		t.Fatalf("expected BasicPattern (bare-IRI path demoted), got %T", q.Select.Where)
	}
	if len(bp.Triples) != 1 {
		t.Fatalf("expected 1 triple, got %d", len(bp.Triples))
	}
}

func TestParseRDFTypeShorthand(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { ?s a ?type }`)
	bp := q.Select.Where.(*queryast.BasicPattern)
	pred := bp.Triples[0].Predicate.(*queryast.IRI)
	if pred.Node.IRI != "http://www.w3.org/1999/02/22-rdf-syntax-ns#type" {
		t.Fatalf("got %q", pred.Node.IRI)
	}
}

func TestParseBlankNodePropertyList(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/>
		SELECT ?s WHERE { ?s ex:p [ ex:q ?v ] }`)
	bp := q.Select.Where.(*queryast.BasicPattern)
	if len(bp.Triples) != 2 {
		t.Fatalf("expected 2 triples (outer + bnode-internal), got %d", len(bp.Triples))
	}
}

func TestParseCollection(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/>
		SELECT ?s WHERE { ?s ex:p ( 1 2 3 ) }`)
	bp := q.Select.Where.(*queryast.BasicPattern)
	// 1 outer triple + 3 rdf:first + 3 rdf:rest = 7
	if len(bp.Triples) != 7 {
		t.Fatalf("expected 7 triples, got %d", len(bp.Triples))
	}
}

func TestParseQuotedTriple(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/>
		SELECT ?s WHERE { ?s ex:claims << ex:a ex:b ex:c >> }`)
	bp := q.Select.Where.(*queryast.BasicPattern)
	qt, ok := bp.Triples[0].Object.(*queryast.QuotedTriple)
	if !ok {
		t.Fatalf("expected QuotedTriple object, got %T", bp.Triples[0].Object)
	}
	if qt.Subject.(*queryast.IRI).Node.IRI != "http://ex/a" {
		t.Fatalf("got %v", qt.Subject)
	}
}

func TestParseReifiedTriple(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/>
		SELECT ?s WHERE { ?s ex:claims << ex:a ex:b ex:c ~ ex:r1 >> }`)
	bp := q.Select.Where.(*queryast.BasicPattern)
	rt, ok := bp.Triples[0].Object.(*queryast.ReifiedTriple)
	if !ok {
		t.Fatalf("expected ReifiedTriple object, got %T", bp.Triples[0].Object)
	}
	if rt.Reifier.(*queryast.IRI).Node.IRI != "http://ex/r1" {
		t.Fatalf("got %v", rt.Reifier)
	}
}

func TestParseTripleTermForm(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/>
		SELECT ?s WHERE { ?s ex:claims <<( ex:a ex:b ex:c )>> }`)
	bp := q.Select.Where.(*queryast.BasicPattern)
	if _, ok := bp.Triples[0].Object.(*queryast.QuotedTriple); !ok {
		t.Fatalf("expected QuotedTriple, got %T", bp.Triples[0].Object)
	}
}

func TestParseAggregatesAndGroupBy(t *testing.T) {
	q := mustParse(t, `SELECT ?s (COUNT(*) AS ?n) (GROUP_CONCAT(?o ; SEPARATOR = ",") AS ?cc)
		WHERE { ?s ?p ?o } GROUP BY ?s`)
	sel := q.Select
	if len(sel.Projection) != 3 {
		t.Fatalf("expected 3 projection items, got %d", len(sel.Projection))
	}
	countAgg, ok := sel.Projection[1].Expr.(*queryast.AggregateExpr)
	if !ok || countAgg.Kind != queryast.AggCount || countAgg.Argument != nil {
		t.Fatalf("expected COUNT(*) with nil argument, got %+v", sel.Projection[1].Expr)
	}
	gc, ok := sel.Projection[2].Expr.(*queryast.AggregateExpr)
	if !ok || gc.Kind != queryast.AggGroupConcat || gc.Separator == nil || *gc.Separator != "," {
		t.Fatalf("expected GROUP_CONCAT with separator, got %+v", sel.Projection[2].Expr)
	}
	if len(sel.GroupBy) != 1 {
		t.Fatalf("expected 1 group-by expr, got %d", len(sel.GroupBy))
	}
}

func TestParseOrderByLimitOffset(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { ?s ?p ?o } ORDER BY DESC(?o) ASC(?s) LIMIT 10 OFFSET 5`)
	sel := q.Select
	if len(sel.OrderBy) != 2 {
		t.Fatalf("expected 2 order conditions, got %d", len(sel.OrderBy))
	}
	if sel.OrderBy[0].Ascending {
		t.Fatalf("expected DESC first condition")
	}
	if !sel.OrderBy[1].Ascending {
		t.Fatalf("expected ASC second condition")
	}
	if sel.Limit == nil || *sel.Limit != 10 {
		t.Fatalf("expected limit 10, got %v", sel.Limit)
	}
	if sel.Offset == nil || *sel.Offset != 5 {
		t.Fatalf("expected offset 5, got %v", sel.Offset)
	}
}

func TestParseExistsAndNotExists(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { ?s ?p ?o . FILTER EXISTS { ?s a ?x } . FILTER NOT EXISTS { ?s a ?y } }`)
	outerFilter, ok := q.Select.Where.(*queryast.FilterPattern)
	if !ok {
		t.Fatalf("expected outer FilterPattern, got %T", q.Select.Where)
	}
	ee, ok := outerFilter.Expr.(*queryast.ExistsExpr)
	if !ok || !ee.Negated {
		t.Fatalf("expected negated exists expr, got %+v", outerFilter.Expr)
	}
	inner, ok := outerFilter.Pattern.(*queryast.FilterPattern)
	if !ok {
		t.Fatalf("expected inner FilterPattern, got %T", outerFilter.Pattern)
	}
	ie, ok := inner.Expr.(*queryast.ExistsExpr)
	if !ok || ie.Negated {
		t.Fatalf("expected non-negated exists expr, got %+v", inner.Expr)
	}
}

func TestParseCaseExpression(t *testing.T) {
	q := mustParse(t, `SELECT (CASE WHEN ?o > 5 THEN "big" WHEN ?o > 1 THEN "small" ELSE "tiny" END AS ?label)
		WHERE { ?s ?p ?o }`)
	ce, ok := q.Select.Projection[0].Expr.(*queryast.CaseExpr)
	if !ok {
		t.Fatalf("expected CaseExpr, got %T", q.Select.Projection[0].Expr)
	}
	if len(ce.Whens) != 2 || ce.Default == nil {
		t.Fatalf("expected 2 whens + default, got %+v", ce)
	}
}

func TestParseBuiltinFunctionCall(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { ?s ?p ?o . FILTER(ISIRI(?o)) }`)
	fp := q.Select.Where.(*queryast.FilterPattern)
	ue, ok := fp.Expr.(*queryast.UnaryExpr)
	if !ok || ue.Operator != queryast.OpIsIRI {
		t.Fatalf("expected ISIRI unary expr, got %+v", fp.Expr)
	}
}

func TestParseFunctionCallByIRI(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/>
		SELECT ?s WHERE { ?s ?p ?o . FILTER(ex:myfunc(?o, ?s)) }`)
	fp := q.Select.Where.(*queryast.FilterPattern)
	fc, ok := fp.Expr.(*queryast.FunctionCallExpr)
	if !ok || fc.Function != "http://ex/myfunc" || len(fc.Arguments) != 2 {
		t.Fatalf("got %+v", fp.Expr)
	}
}

func TestParseInAndBetween(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { ?s ?p ?o . FILTER(?o IN (1, 2, 3)) }`)
	fp := q.Select.Where.(*queryast.FilterPattern)
	ie, ok := fp.Expr.(*queryast.InExpr)
	if !ok || ie.Negated || len(ie.List) != 3 {
		t.Fatalf("got %+v", fp.Expr)
	}

	q2 := mustParse(t, `SELECT ?s WHERE { ?s ?p ?o . FILTER(?o NOT IN (1, 2)) }`)
	fp2 := q2.Select.Where.(*queryast.FilterPattern)
	ie2 := fp2.Expr.(*queryast.InExpr)
	if !ie2.Negated {
		t.Fatalf("expected negated IN")
	}

	q3 := mustParse(t, `SELECT ?s WHERE { ?s ?p ?o . FILTER(?o BETWEEN 1 AND 10) }`)
	fp3 := q3.Select.Where.(*queryast.FilterPattern)
	if _, ok := fp3.Expr.(*queryast.BetweenExpr); !ok {
		t.Fatalf("expected BetweenExpr, got %+v", fp3.Expr)
	}
}

func TestParseRegex(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE { ?s ?p ?o . FILTER(REGEX(?o, "^a.*", "i")) }`)
	fp := q.Select.Where.(*queryast.FilterPattern)
	fc, ok := fp.Expr.(*queryast.FunctionCallExpr)
	if !ok || fc.Function != "REGEX" || len(fc.Arguments) != 3 {
		t.Fatalf("got %+v", fp.Expr)
	}
}

func TestParseConstructExplicitTemplate(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/>
		CONSTRUCT { ?s ex:p ?o } WHERE { ?s ex:q ?o }`)
	if q.Form != queryast.FormConstruct {
		t.Fatalf("expected construct form")
	}
	if len(q.Construct.Template) != 1 {
		t.Fatalf("expected 1 template triple, got %d", len(q.Construct.Template))
	}
}

func TestParseConstructWhereShorthand(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/> CONSTRUCT WHERE { ?s ex:p ?o }`)
	if len(q.Construct.Template) != 1 {
		t.Fatalf("expected template from flattened WHERE, got %d", len(q.Construct.Template))
	}
}

func TestParseAskQuery(t *testing.T) {
	q := mustParse(t, `ASK { ?s ?p ?o }`)
	if q.Form != queryast.FormAsk {
		t.Fatalf("expected ask form")
	}
}

func TestParseDescribeQuery(t *testing.T) {
	q := mustParse(t, `PREFIX ex: <http://ex/> DESCRIBE ex:a ?x WHERE { ?x a ex:Thing }`)
	if q.Form != queryast.FormDescribe {
		t.Fatalf("expected describe form")
	}
	if len(q.Describe.Resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(q.Describe.Resources))
	}
}

func TestParseDescribeStar(t *testing.T) {
	q := mustParse(t, `DESCRIBE *`)
	if !q.Describe.Star {
		t.Fatalf("expected star describe")
	}
}

func TestParseFromAndFromNamed(t *testing.T) {
	q := mustParse(t, `SELECT ?s FROM <http://g/1> FROM NAMED <http://g/2> WHERE { ?s ?p ?o }`)
	if len(q.Select.From) != 1 || len(q.Select.FromNamed) != 1 {
		t.Fatalf("got from=%d fromNamed=%d", len(q.Select.From), len(q.Select.FromNamed))
	}
}

func TestParseInsertData(t *testing.T) {
	ops, err := NewParser(`PREFIX ex: <http://ex/> INSERT DATA { ex:a ex:b ex:c }`).ParseUpdate()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(ops) != 1 || ops[0].Kind != queryast.UpdateInsertData {
		t.Fatalf("got %+v", ops)
	}
	if len(ops[0].Data) != 1 {
		t.Fatalf("expected 1 quad, got %d", len(ops[0].Data))
	}
}

func TestParseDeleteDataWithGraph(t *testing.T) {
	ops, err := NewParser(`PREFIX ex: <http://ex/>
		DELETE DATA { GRAPH <http://g/1> { ex:a ex:b ex:c } }`).ParseUpdate()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if ops[0].Kind != queryast.UpdateDeleteData {
		t.Fatalf("got kind %v", ops[0].Kind)
	}
	if len(ops[0].Data) != 1 {
		t.Fatalf("expected 1 quad, got %d", len(ops[0].Data))
	}
	graphIRI, ok := ops[0].Data[0].Graph.(*queryast.IRI)
	if !ok || graphIRI.Node.IRI != "http://g/1" {
		t.Fatalf("got graph %v", ops[0].Data[0].Graph)
	}
}

func TestParseModifyWithUsing(t *testing.T) {
	ops, err := NewParser(`PREFIX ex: <http://ex/>
		DELETE { ?s ex:p ?o } INSERT { ?s ex:q ?o }
		USING <http://g/1> USING NAMED <http://g/2>
		WHERE { ?s ex:p ?o }`).ParseUpdate()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	op := ops[0]
	if op.Kind != queryast.UpdateModify {
		t.Fatalf("got kind %v", op.Kind)
	}
	if len(op.DeleteTemplate) != 1 || len(op.InsertTemplate) != 1 {
		t.Fatalf("got delete=%d insert=%d", len(op.DeleteTemplate), len(op.InsertTemplate))
	}
	if len(op.Using) != 1 || len(op.UsingNamed) != 1 {
		t.Fatalf("got using=%d usingNamed=%d", len(op.Using), len(op.UsingNamed))
	}
}

func TestParseLoadSilentInto(t *testing.T) {
	ops, err := NewParser(`LOAD SILENT <http://example.org/data.ttl> INTO GRAPH <http://g/1>`).ParseUpdate()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	op := ops[0]
	if op.Kind != queryast.UpdateLoad || !op.Silent {
		t.Fatalf("got %+v", op)
	}
	if op.Into == nil || op.Into.(*queryast.IRI).Node.IRI != "http://g/1" {
		t.Fatalf("got into %v", op.Into)
	}
}

func TestParseClearCreateDrop(t *testing.T) {
	ops, err := NewParser(`CLEAR SILENT DEFAULT ; CREATE GRAPH <http://g/1> ; DROP ALL`).ParseUpdate()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(ops) != 3 {
		t.Fatalf("expected 3 ops, got %d", len(ops))
	}
	if ops[0].Kind != queryast.UpdateClear || !ops[0].Target.Default {
		t.Fatalf("got %+v", ops[0])
	}
	if ops[1].Kind != queryast.UpdateCreate || ops[1].Target.IRI == nil {
		t.Fatalf("got %+v", ops[1])
	}
	if ops[2].Kind != queryast.UpdateDrop || !ops[2].Target.All {
		t.Fatalf("got %+v", ops[2])
	}
}

func TestParseErrorUndeclaredPrefix(t *testing.T) {
	_, err := NewParser(`SELECT ?s WHERE { ?s foo:bar ?o }`).Parse()
	if err == nil {
		t.Fatalf("expected error for undeclared prefix")
	}
	if _, ok := err.(*InvalidIRI); !ok {
		t.Fatalf("expected *InvalidIRI, got %T: %v", err, err)
	}
}

func TestParseErrorUnexpectedToken(t *testing.T) {
	_, err := NewParser(`SELECT ?s FOO { ?s ?p ?o }`).Parse()
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := err.(*UnexpectedToken); !ok {
		t.Fatalf("expected *UnexpectedToken, got %T: %v", err, err)
	}
}
