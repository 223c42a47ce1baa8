package graphalgo

import (
	"sort"
	"time"
)

// SCCOptions bounds strongly-connected-component discovery.
type SCCOptions struct {
	MaxComponents int // 0 = unbounded
	MaxNodes      int // 0 = unbounded
}

// SCCResult groups nodes into their strongly connected components, in
// the order Tarjan's algorithm emits them (reverse topological order of
// the condensation).
type SCCResult struct {
	Components    [][]NodeID
	NodesExplored int
	Duration      time.Duration
	IsComplete    bool
	LimitReason   LimitReason
}

type tarjanFrame struct {
	node        NodeID
	neighbors   []NodeID
	neighborIdx int
}

// StronglyConnectedComponents runs iterative Tarjan — an explicit work
// stack standing in for the call stack, tracking (index, lowlink,
// onStack) per node — over a single full edge scan (§4.D.5).
func (s *Source) StronglyConnectedComponents(opts SCCOptions) (SCCResult, error) {
	start := time.Now()
	edges, err := s.AllEdges()
	if err != nil {
		return SCCResult{}, err
	}
	adj, nodeOrder := buildAdjacency(edges)
	nodeByKey := map[string]NodeID{}
	for _, n := range nodeOrder {
		nodeByKey[nodeKey(n)] = n
	}

	indices := map[string]int{}
	lowlink := map[string]int{}
	onStack := map[string]bool{}
	var compStack []string
	var components [][]NodeID
	idx := 0
	explored := 0
	limitHit := false
	var reason LimitReason

	for _, root := range nodeOrder {
		if limitHit {
			break
		}
		if _, ok := indices[nodeKey(root)]; ok {
			continue
		}

		var work []*tarjanFrame
		push := func(n NodeID) {
			k := nodeKey(n)
			indices[k] = idx
			lowlink[k] = idx
			idx++
			compStack = append(compStack, k)
			onStack[k] = true
			explored++
			work = append(work, &tarjanFrame{node: n, neighbors: adj[k]})
		}
		push(root)

		for len(work) > 0 && !limitHit {
			top := work[len(work)-1]
			tk := nodeKey(top.node)

			if top.neighborIdx < len(top.neighbors) {
				w := top.neighbors[top.neighborIdx]
				top.neighborIdx++
				wk := nodeKey(w)
				if _, seen := indices[wk]; !seen {
					if opts.MaxNodes > 0 && explored >= opts.MaxNodes {
						limitHit = true
						reason = LimitReason{Kind: LimitMaxNodesReached, Explored: explored, Limit: opts.MaxNodes}
						continue
					}
					push(w)
				} else if onStack[wk] {
					if indices[wk] < lowlink[tk] {
						lowlink[tk] = indices[wk]
					}
				}
				continue
			}

			// finished top.node
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1]
				pk := nodeKey(parent.node)
				if lowlink[tk] < lowlink[pk] {
					lowlink[pk] = lowlink[tk]
				}
			}

			if lowlink[tk] == indices[tk] {
				var comp []NodeID
				for {
					n := len(compStack) - 1
					k := compStack[n]
					compStack = compStack[:n]
					onStack[k] = false
					comp = append(comp, nodeByKey[k])
					if k == tk {
						break
					}
				}
				sort.Slice(comp, func(i, j int) bool { return nodeKey(comp[i]) < nodeKey(comp[j]) })
				components = append(components, comp)
				if opts.MaxComponents > 0 && len(components) >= opts.MaxComponents {
					limitHit = true
					reason = LimitReason{Kind: LimitMaxComponentsReached, Found: len(components), Limit: opts.MaxComponents}
				}
			}
		}
	}

	return SCCResult{
		Components:    components,
		NodesExplored: explored,
		Duration:      time.Since(start),
		IsComplete:    !limitHit,
		LimitReason:   reason,
	}, nil
}

// IsStronglyConnected reports whether the entire graph forms a single
// strongly connected component.
func (s *Source) IsStronglyConnected(opts SCCOptions) (bool, error) {
	result, err := s.StronglyConnectedComponents(opts)
	if err != nil {
		return false, err
	}
	return len(result.Components) == 1, nil
}

// CondensationEdge is an edge between two distinct components in the
// condensation graph.
type CondensationEdge struct {
	From int
	To   int
}

// CondensationGraph collapses each strongly connected component into a
// single node, producing the DAG of component indices into
// SCCResult.Components.
func (s *Source) CondensationGraph(opts SCCOptions) (SCCResult, []CondensationEdge, error) {
	result, err := s.StronglyConnectedComponents(opts)
	if err != nil {
		return SCCResult{}, nil, err
	}
	edges, err := s.AllEdges()
	if err != nil {
		return SCCResult{}, nil, err
	}

	compOf := map[string]int{}
	for i, comp := range result.Components {
		for _, n := range comp {
			compOf[nodeKey(n)] = i
		}
	}

	seen := map[[2]int]bool{}
	var cEdges []CondensationEdge
	for _, e := range edges {
		from, to := compOf[nodeKey(e.From)], compOf[nodeKey(e.To)]
		if from == to {
			continue
		}
		key := [2]int{from, to}
		if seen[key] {
			continue
		}
		seen[key] = true
		cEdges = append(cEdges, CondensationEdge{From: from, To: to})
	}
	sort.Slice(cEdges, func(i, j int) bool {
		if cEdges[i].From != cEdges[j].From {
			return cEdges[i].From < cEdges[j].From
		}
		return cEdges[i].To < cEdges[j].To
	})

	return result, cEdges, nil
}
