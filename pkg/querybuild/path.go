package querybuild

import "github.com/aleksaelezovic/graphcore/pkg/queryast"

func PathIRI(iri string) *queryast.IRIPath {
	return queryast.NewIRIPath(queryast.NewIRI(iri))
}

func PathInverse(p queryast.PropertyPath) *queryast.InversePath {
	return queryast.NewInversePath(p)
}

func PathSeq(l, r queryast.PropertyPath) *queryast.SequencePath {
	return queryast.NewSequencePath(l, r)
}

func PathAlt(l, r queryast.PropertyPath) *queryast.AlternativePath {
	return queryast.NewAlternativePath(l, r)
}

func PathStar(p queryast.PropertyPath) *queryast.ZeroOrMorePath {
	return queryast.NewZeroOrMorePath(p)
}

func PathPlus(p queryast.PropertyPath) *queryast.OneOrMorePath {
	return queryast.NewOneOrMorePath(p)
}

func PathOpt(p queryast.PropertyPath) *queryast.ZeroOrOnePath {
	return queryast.NewZeroOrOnePath(p)
}

func PathNegated(alternatives ...queryast.PropertyPath) *queryast.NegationPath {
	return queryast.NewNegationPath(alternatives...)
}
