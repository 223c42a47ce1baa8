package graphalgo

import (
	"sort"
	"time"
)

// splitMix64 expands a narrow seed into a well-distributed 64-bit state,
// used once to seed the xorShift generator that drives tie-breaking
// during label propagation so two runs with the same seed always agree.
func splitMix64(seed uint64) uint64 {
	seed += 0x9E3779B97F4A7C15
	z := seed
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

type xorShiftRNG struct {
	state uint64
}

func newXorShiftRNG(seed uint64) *xorShiftRNG {
	s := splitMix64(seed)
	if s == 0 {
		s = 1
	}
	return &xorShiftRNG{state: s}
}

func (r *xorShiftRNG) next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// intn returns a deterministic value in [0, n).
func (r *xorShiftRNG) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.next() % uint64(n))
}

// shuffle permutes ids in place using a Fisher-Yates pass driven by r.
func (r *xorShiftRNG) shuffle(ids []string) {
	for i := len(ids) - 1; i > 0; i-- {
		j := r.intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// CommunityOptions configures label propagation.
type CommunityOptions struct {
	Seed              uint64
	MaxIterations     int // 0 = default 100
	MinCommunitySize  int // 0 = no merge pass
	ComputeModularity bool
}

func (o CommunityOptions) maxIterations() int {
	if o.MaxIterations > 0 {
		return o.MaxIterations
	}
	return 100
}

// CommunityResult assigns every discovered node to a community id
// (0-based, arbitrary numbering) and optionally reports modularity.
type CommunityResult struct {
	Communities    map[string]int
	NodeByKey      map[string]NodeID
	NumCommunities int
	Iterations     int
	Modularity     float64
	NodesExplored  int
	Duration       time.Duration
	IsComplete     bool
}

// neighborGraph is the undirected (OUT ∪ IN) adjacency LPA runs over.
type neighborGraph struct {
	order     []string
	nodeByKey map[string]NodeID
	neighbors map[string]map[string]bool
}

func buildNeighborGraph(edges []Edge) neighborGraph {
	neighbors := map[string]map[string]bool{}
	nodeByKey := map[string]NodeID{}
	add := func(a, b NodeID) {
		ak, bk := nodeKey(a), nodeKey(b)
		nodeByKey[ak] = a
		nodeByKey[bk] = b
		if neighbors[ak] == nil {
			neighbors[ak] = map[string]bool{}
		}
		neighbors[ak][bk] = true
	}
	for _, e := range edges {
		add(e.From, e.To)
		add(e.To, e.From)
	}
	var order []string
	for k := range nodeByKey {
		order = append(order, k)
	}
	sort.Strings(order)
	return neighborGraph{order: order, nodeByKey: nodeByKey, neighbors: neighbors}
}

// runLPA executes synchronous label propagation to convergence (or
// maxIterations) over g, returning each node's final label key and the
// iteration count.
func runLPA(g neighborGraph, seed uint64, maxIterations int) (map[string]string, int) {
	label := map[string]string{}
	for _, k := range g.order {
		label[k] = k
	}
	rng := newXorShiftRNG(seed)
	iterations := 0
	for ; iterations < maxIterations; iterations++ {
		shuffled := append([]string{}, g.order...)
		rng.shuffle(shuffled)
		changed := false
		for _, k := range shuffled {
			counts := map[string]int{}
			for nk := range g.neighbors[k] {
				counts[label[nk]]++
			}
			if len(counts) == 0 {
				continue
			}
			best := bestLabel(counts, rng)
			if best != label[k] {
				label[k] = best
				changed = true
			}
		}
		if !changed {
			iterations++
			break
		}
	}
	return label, iterations
}

// DetectCommunities runs synchronous label propagation over the
// undirected view of the graph (both edge directions count as
// neighbors): each round every node adopts the most frequent label among
// its neighbors, with ties broken deterministically by the seeded
// xorShift sequence rather than by map order (§4.D.6).
func (s *Source) DetectCommunities(opts CommunityOptions) (CommunityResult, error) {
	start := time.Now()
	edges, err := s.AllEdges()
	if err != nil {
		return CommunityResult{}, err
	}
	g := buildNeighborGraph(edges)
	label, iterations := runLPA(g, opts.Seed, opts.maxIterations())

	communities, numCommunities := renumberLabels(g.order, label)
	if opts.MinCommunitySize > 0 {
		mergeSmallCommunities(g.order, g.neighbors, communities, opts.MinCommunitySize)
		numCommunities = distinctValues(communities)
	}

	result := CommunityResult{
		Communities:    communities,
		NodeByKey:      g.nodeByKey,
		NumCommunities: numCommunities,
		Iterations:     iterations,
		NodesExplored:  len(g.order),
		Duration:       time.Since(start),
		IsComplete:     true,
	}
	if opts.ComputeModularity {
		result.Modularity = modularity(edges, communities)
	}
	return result, nil
}

// bestLabel picks the most frequent label in counts, breaking ties by
// drawing from rng over the sorted candidate set so the choice is
// reproducible for a given seed regardless of map iteration order.
func bestLabel(counts map[string]int, rng *xorShiftRNG) string {
	best := 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	var candidates []string
	for label, c := range counts {
		if c == best {
			candidates = append(candidates, label)
		}
	}
	sort.Strings(candidates)
	if len(candidates) == 1 {
		return candidates[0]
	}
	return candidates[rng.intn(len(candidates))]
}

func renumberLabels(order []string, label map[string]string) (map[string]int, int) {
	ids := map[string]int{}
	next := 0
	out := map[string]int{}
	for _, k := range order {
		l := label[k]
		id, ok := ids[l]
		if !ok {
			id = next
			ids[l] = id
			next++
		}
		out[k] = id
	}
	return out, next
}

func distinctValues(m map[string]int) int {
	seen := map[int]bool{}
	for _, v := range m {
		seen[v] = true
	}
	return len(seen)
}

// mergeSmallCommunities folds every community under minSize into
// whichever neighboring community its members touch most.
func mergeSmallCommunities(order []string, neighbors map[string]map[string]bool, communities map[string]int, minSize int) {
	size := map[int]int{}
	for _, c := range communities {
		size[c]++
	}
	for _, k := range order {
		c := communities[k]
		if size[c] >= minSize {
			continue
		}
		counts := map[int]int{}
		for nk := range neighbors[k] {
			nc := communities[nk]
			if nc != c {
				counts[nc]++
			}
		}
		if len(counts) == 0 {
			continue
		}
		best, bestCount := c, -1
		var ids []int
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			if counts[id] > bestCount {
				best, bestCount = id, counts[id]
			}
		}
		size[c]--
		size[best]++
		communities[k] = best
	}
}

// modularity computes Newman's Q = (inCommunityEdges/2m) −
// Σ_C (Σ_{v∈C} deg(v))² / (4m)², with deg counting both edge
// directions and m the total edge count (§4.D.6).
func modularity(edges []Edge, communities map[string]int) float64 {
	m := len(edges)
	if m == 0 {
		return 0
	}
	degree := map[string]int{}
	for _, e := range edges {
		degree[nodeKey(e.From)]++
		degree[nodeKey(e.To)]++
	}

	inCommunityEdges := 0
	for _, e := range edges {
		if communities[nodeKey(e.From)] == communities[nodeKey(e.To)] {
			inCommunityEdges++
		}
	}

	communityDegreeSum := map[int]int{}
	for k, d := range degree {
		communityDegreeSum[communities[k]] += d
	}
	var sumSq float64
	for _, sum := range communityDegreeSum {
		sumSq += float64(sum) * float64(sum)
	}

	twoM := float64(2 * m)
	fourM2 := twoM * twoM
	return float64(inCommunityEdges)/twoM - sumSq/fourM2
}

// LocalCommunityResult is the answer shape for DetectLocalCommunity.
type LocalCommunityResult struct {
	Members       []NodeID
	NodesExplored int
	Duration      time.Duration
	IsComplete    bool
}

// DetectLocalCommunity restricts LPA to the hops-ball around node (its
// (OUT ∪ IN) neighborhood out to the given radius) and returns the
// cohort sharing node's final label, rather than growing a community
// over the whole graph (§4.D.6).
func (s *Source) DetectLocalCommunity(node NodeID, hops int, opts CommunityOptions) (LocalCommunityResult, error) {
	start := time.Now()
	ball, err := s.hopsBall(node, hops)
	if err != nil {
		return LocalCommunityResult{}, err
	}

	var edges []Edge
	inBall := func(n NodeID) bool { _, ok := ball[nodeKey(n)]; return ok }
	for k, n := range ball {
		out, err := s.Outgoing(n)
		if err != nil {
			return LocalCommunityResult{}, err
		}
		for _, to := range out {
			if inBall(to) {
				edges = append(edges, Edge{From: n, To: to})
			}
		}
		_ = k
	}

	g := buildNeighborGraph(edges)
	for k, n := range ball {
		if _, ok := g.nodeByKey[k]; !ok {
			g.nodeByKey[k] = n
			g.order = append(g.order, k)
		}
	}
	sort.Strings(g.order)

	label, _ := runLPA(g, opts.Seed, opts.maxIterations())
	nodeLabel := label[nodeKey(node)]

	var members []NodeID
	for _, k := range g.order {
		if label[k] == nodeLabel {
			members = append(members, g.nodeByKey[k])
		}
	}

	return LocalCommunityResult{Members: members, NodesExplored: len(g.order), Duration: time.Since(start), IsComplete: true}, nil
}

// hopsBall returns every node (including the seed) reachable from node
// within hops steps over the undirected (OUT ∪ IN) adjacency.
func (s *Source) hopsBall(node NodeID, hops int) (map[string]NodeID, error) {
	ball := map[string]NodeID{nodeKey(node): node}
	frontier := []NodeID{node}
	for h := 0; h < hops && len(frontier) > 0; h++ {
		var next []NodeID
		for _, n := range frontier {
			out, err := s.Outgoing(n)
			if err != nil {
				return nil, err
			}
			in, err := s.Incoming(n)
			if err != nil {
				return nil, err
			}
			for _, nb := range append(out, in...) {
				k := nodeKey(nb)
				if _, ok := ball[k]; ok {
					continue
				}
				ball[k] = nb
				next = append(next, nb)
			}
		}
		frontier = next
	}
	return ball, nil
}
