package graphalgo

import (
	"testing"

	"github.com/aleksaelezovic/graphcore/pkg/indexmaint"
	"github.com/aleksaelezovic/graphcore/pkg/indexstrategy"
	"github.com/aleksaelezovic/graphcore/pkg/kv"
	"github.com/aleksaelezovic/graphcore/pkg/kvbadger"
	"github.com/aleksaelezovic/graphcore/pkg/scanedge"
	"github.com/aleksaelezovic/graphcore/pkg/tupleenc"
)

func newTestSource(t *testing.T, edges [][2]string) *Source {
	t.Helper()
	store, err := kvbadger.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	root := tupleenc.NewSubspace([]byte{0x77})
	fields := indexmaint.FieldNames{From: "from", To: "to"}
	m := indexmaint.New(root, indexstrategy.Hexastore, fields, 0)
	scanner := scanedge.New(root, indexstrategy.Hexastore, false)

	err = kv.WithTransaction(store, kv.Config{Writable: true}, func(tx kv.Transaction) error {
		for _, e := range edges {
			item := indexmaint.MapItem{"from": tupleenc.String(e[0]), "to": tupleenc.String(e[1])}
			if err := m.ScanItem(tx, item, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("insert edges: %v", err)
	}

	return &Source{Store: store, Scanner: scanner}
}

func n(s string) NodeID { return tupleenc.String(s) }

func pathStrings(path []NodeID) []string {
	var out []string
	for _, p := range path {
		s, _ := p.AsString()
		out = append(out, s)
	}
	return out
}

func TestShortestPathBasic(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"a", "d"}})
	res, err := s.ShortestPath(n("a"), n("d"), PathOptions{})
	if err != nil {
		t.Fatalf("shortest path: %v", err)
	}
	if !res.Found || res.Distance != 1 {
		t.Fatalf("expected direct 1-hop path, got %+v", res)
	}
}

func TestShortestPathSourceEqualsTarget(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}})
	res, err := s.ShortestPath(n("a"), n("a"), PathOptions{})
	if err != nil {
		t.Fatalf("shortest path: %v", err)
	}
	if !res.Found || res.Distance != 0 {
		t.Fatalf("expected singleton path, got %+v", res)
	}
}

func TestShortestPathNotFound(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}})
	res, err := s.ShortestPath(n("a"), n("z"), PathOptions{})
	if err != nil {
		t.Fatalf("shortest path: %v", err)
	}
	if res.Found || !res.IsComplete {
		t.Fatalf("expected definitive not-found, got %+v", res)
	}
}

func TestBidirectionalShortestPathMatchesUnidirectional(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "e"}})
	uni, err := s.ShortestPath(n("a"), n("e"), PathOptions{})
	if err != nil {
		t.Fatalf("uni: %v", err)
	}
	bi, err := s.BidirectionalShortestPath(n("a"), n("e"), PathOptions{})
	if err != nil {
		t.Fatalf("bi: %v", err)
	}
	if bi.Distance != uni.Distance {
		t.Errorf("bidirectional distance %d != unidirectional %d", bi.Distance, uni.Distance)
	}
}

func TestAllShortestPathsFindsBothRoutes(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}})
	res, err := s.AllShortestPaths(n("a"), n("d"), PathOptions{})
	if err != nil {
		t.Fatalf("all shortest: %v", err)
	}
	if !res.Found || len(res.Paths) != 2 {
		t.Fatalf("expected 2 shortest paths, got %+v", res)
	}
}

func TestDijkstraWeighted(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}})
	weights := map[[2]string]float64{
		{"a", "b"}: 5, {"a", "c"}: 1,
		{"b", "d"}: 1, {"c", "d"}: 1,
	}
	weight := func(from, to NodeID) float64 {
		fs, _ := from.AsString()
		ts, _ := to.AsString()
		return weights[[2]string{fs, ts}]
	}
	target := n("d")
	res, _, err := s.Dijkstra(n("a"), &target, weight, WeightedPathOptions{})
	if err != nil {
		t.Fatalf("dijkstra: %v", err)
	}
	if !res.Found || res.Distance != 2 {
		t.Fatalf("expected distance 2 via a-c-d, got %+v", res)
	}
	got := pathStrings(res.Path)
	if len(got) != 3 || got[1] != "c" {
		t.Errorf("expected path through c, got %v", got)
	}
}

func TestFindCyclesDetectsPositive(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	res, err := s.FindCycles(CycleOptions{})
	if err != nil {
		t.Fatalf("find cycles: %v", err)
	}
	if !res.HasCycle || !res.IsCycleDefinitive {
		t.Fatalf("expected a definitive cycle, got %+v", res)
	}
}

func TestFindCyclesDefinitiveNegativeOnDAG(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"b", "c"}})
	res, err := s.FindCycles(CycleOptions{})
	if err != nil {
		t.Fatalf("find cycles: %v", err)
	}
	if res.HasCycle || !res.IsComplete || !res.IsCycleDefinitive {
		t.Fatalf("expected definitive negative, got %+v", res)
	}
}

func TestWouldCreateCycle(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"b", "c"}})
	would, err := s.WouldCreateCycle(n("a"), n("c"), 0)
	if err != nil {
		t.Fatalf("would create cycle: %v", err)
	}
	if !would {
		t.Errorf("adding c->a should create a cycle")
	}

	wouldNot, err := s.WouldCreateCycle(n("x"), n("y"), 0)
	if err != nil {
		t.Fatalf("would create cycle: %v", err)
	}
	if wouldNot {
		t.Errorf("unrelated edge should not create a cycle")
	}
}

func TestTopologicalSortOrdersDependenciesFirst(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})
	res, err := s.TopologicalSort(TopoOptions{})
	if err != nil {
		t.Fatalf("toposort: %v", err)
	}
	if res.HasCycle || !res.IsComplete {
		t.Fatalf("expected a clean topological order, got %+v", res)
	}
	pos := map[string]int{}
	for i, node := range res.Order {
		s, _ := node.AsString()
		pos[s] = i
	}
	if pos["a"] >= pos["b"] || pos["b"] >= pos["c"] {
		t.Errorf("expected order a,b,c, got %v", pathStrings(res.Order))
	}
}

func TestTopologicalSortReportsCycleNodes(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"b", "a"}})
	res, err := s.TopologicalSort(TopoOptions{})
	if err != nil {
		t.Fatalf("toposort: %v", err)
	}
	if !res.HasCycle || len(res.CycleNodes) != 2 {
		t.Fatalf("expected both nodes reported as cyclic, got %+v", res)
	}
}

func TestDependenciesAndDependentsTransitive(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"b", "c"}})
	deps, err := s.Dependencies(n("c"))
	if err != nil {
		t.Fatalf("dependencies: %v", err)
	}
	if len(deps) != 2 {
		t.Fatalf("expected transitive dependencies [a b], got %v", pathStrings(deps))
	}

	dependents, err := s.Dependents(n("a"))
	if err != nil {
		t.Fatalf("dependents: %v", err)
	}
	if len(dependents) != 2 {
		t.Fatalf("expected transitive dependents [b c], got %v", pathStrings(dependents))
	}
}

func TestStronglyConnectedComponents(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}})
	res, err := s.StronglyConnectedComponents(SCCOptions{})
	if err != nil {
		t.Fatalf("scc: %v", err)
	}
	if len(res.Components) != 2 {
		t.Fatalf("expected 2 components ({a,b,c} and {d}), got %d: %+v", len(res.Components), res.Components)
	}
}

func TestIsStronglyConnected(t *testing.T) {
	cyclic := newTestSource(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	ok, err := cyclic.IsStronglyConnected(SCCOptions{})
	if err != nil {
		t.Fatalf("is strongly connected: %v", err)
	}
	if !ok {
		t.Errorf("expected a 3-cycle to be strongly connected")
	}

	dag := newTestSource(t, [][2]string{{"a", "b"}, {"b", "c"}})
	ok, err = dag.IsStronglyConnected(SCCOptions{})
	if err != nil {
		t.Fatalf("is strongly connected: %v", err)
	}
	if ok {
		t.Errorf("expected a DAG not to be strongly connected")
	}
}

func TestDetectCommunitiesDeterministicWithSeed(t *testing.T) {
	edges := [][2]string{
		{"a", "b"}, {"b", "a"}, {"b", "c"}, {"c", "b"}, {"a", "c"}, {"c", "a"},
		{"x", "y"}, {"y", "x"}, {"y", "z"}, {"z", "y"}, {"x", "z"}, {"z", "x"},
	}
	s1 := newTestSource(t, edges)
	s2 := newTestSource(t, edges)

	r1, err := s1.DetectCommunities(CommunityOptions{Seed: 42})
	if err != nil {
		t.Fatalf("detect communities: %v", err)
	}
	r2, err := s2.DetectCommunities(CommunityOptions{Seed: 42})
	if err != nil {
		t.Fatalf("detect communities: %v", err)
	}
	if r1.NumCommunities != r2.NumCommunities {
		t.Fatalf("same seed should give the same community count, got %d vs %d", r1.NumCommunities, r2.NumCommunities)
	}
	for k := range r1.Communities {
		if r1.Communities[k] != r2.Communities[k] {
			t.Errorf("node %s: community %d != %d across identically-seeded runs", k, r1.Communities[k], r2.Communities[k])
		}
	}
}

func TestDetectLocalCommunityIncludesSeed(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"b", "a"}, {"b", "c"}, {"c", "b"}})
	res, err := s.DetectLocalCommunity(n("a"), 2, CommunityOptions{})
	if err != nil {
		t.Fatalf("detect local community: %v", err)
	}
	found := false
	for _, m := range res.Members {
		if v, _ := m.AsString(); v == "a" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected seed node in its own local community, got %v", pathStrings(res.Members))
	}
}

func TestPageRankScoresSumToOne(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	res, err := s.PageRank(PageRankOptions{})
	if err != nil {
		t.Fatalf("pagerank: %v", err)
	}
	var sum float64
	for _, v := range res.Scores {
		sum += v
	}
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("expected scores to sum to ~1, got %f", sum)
	}
}

func TestPageRankSymmetricCycleEqualScores(t *testing.T) {
	s := newTestSource(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	res, err := s.PageRank(PageRankOptions{})
	if err != nil {
		t.Fatalf("pagerank: %v", err)
	}
	var scores []float64
	for _, v := range res.Scores {
		scores = append(scores, v)
	}
	for i := 1; i < len(scores); i++ {
		if diff := scores[i] - scores[0]; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("symmetric 3-cycle should have equal scores, got %v", scores)
		}
	}
}
