package graphalgo

import (
	"sort"
	"time"
)

// TopoOptions bounds a topological sort.
type TopoOptions struct {
	MaxNodes int // 0 = unbounded
}

// TopoResult is the answer shape for TopologicalSort. HasCycle is set
// when Kahn's algorithm exhausts the queue before every node is ordered:
// the remaining nodes all sit on some cycle.
type TopoResult struct {
	Order         []NodeID
	HasCycle      bool
	CycleNodes    []NodeID
	NodesExplored int
	Duration      time.Duration
	IsComplete    bool
	LimitReason   LimitReason
}

// TopologicalSort runs Kahn's algorithm: repeatedly peel zero-in-degree
// nodes off the graph built from a single full edge scan. Ties are broken
// by ascending node key so the order is deterministic.
func (s *Source) TopologicalSort(opts TopoOptions) (TopoResult, error) {
	start := time.Now()
	edges, err := s.AllEdges()
	if err != nil {
		return TopoResult{}, err
	}
	adj, nodeOrder := buildAdjacency(edges)

	inDegree := map[string]int{}
	nodeByKey := map[string]NodeID{}
	for _, n := range nodeOrder {
		inDegree[nodeKey(n)] = 0
		nodeByKey[nodeKey(n)] = n
	}
	for _, neighbors := range adj {
		for _, n := range neighbors {
			inDegree[nodeKey(n)]++
		}
	}

	var ready []string
	for _, n := range nodeOrder {
		if inDegree[nodeKey(n)] == 0 {
			ready = append(ready, nodeKey(n))
		}
	}
	sort.Strings(ready)

	var order []NodeID
	explored := 0
	for len(ready) > 0 {
		if opts.MaxNodes > 0 && explored >= opts.MaxNodes {
			return TopoResult{Order: order, NodesExplored: explored, Duration: time.Since(start), IsComplete: false,
				LimitReason: LimitReason{Kind: LimitMaxNodesReached, Explored: explored, Limit: opts.MaxNodes}}, nil
		}
		k := ready[0]
		ready = ready[1:]
		order = append(order, nodeByKey[k])
		explored++

		var freed []string
		for _, n := range adj[k] {
			nk := nodeKey(n)
			inDegree[nk]--
			if inDegree[nk] == 0 {
				freed = append(freed, nk)
			}
		}
		sort.Strings(freed)
		ready = append(ready, freed...)
		sort.Strings(ready)
	}

	if len(order) < len(nodeOrder) {
		var remaining []NodeID
		for _, n := range nodeOrder {
			if inDegree[nodeKey(n)] > 0 {
				remaining = append(remaining, n)
			}
		}
		return TopoResult{Order: order, HasCycle: true, CycleNodes: remaining, NodesExplored: explored,
			Duration: time.Since(start), IsComplete: true}, nil
	}

	return TopoResult{Order: order, NodesExplored: explored, Duration: time.Since(start), IsComplete: true}, nil
}

// Dependencies runs a backward BFS over IN edges from of, returning
// every transitive predecessor in reverse-BFS order (deepest first):
// everything of depends on, farthest first (§4.D.4).
func (s *Source) Dependencies(of NodeID) ([]NodeID, error) {
	levels, err := bfsLevels(of, s.Incoming)
	if err != nil {
		return nil, err
	}
	var out []NodeID
	for i := len(levels) - 1; i >= 0; i-- {
		out = append(out, levels[i]...)
	}
	return out, nil
}

// Dependents runs a forward BFS over OUT edges from of, returning every
// transitive successor in BFS order: everything that depends on of,
// nearest first (§4.D.4).
func (s *Source) Dependents(of NodeID) ([]NodeID, error) {
	levels, err := bfsLevels(of, s.Outgoing)
	if err != nil {
		return nil, err
	}
	var out []NodeID
	for _, level := range levels {
		out = append(out, level...)
	}
	return out, nil
}

// bfsLevels runs BFS from of using expand (Outgoing or Incoming) and
// returns the node set discovered at each successive depth, excluding
// of itself.
func bfsLevels(of NodeID, expand func(NodeID) ([]NodeID, error)) ([][]NodeID, error) {
	visited := map[string]bool{nodeKey(of): true}
	frontier := []NodeID{of}
	var levels [][]NodeID
	for len(frontier) > 0 {
		var next []NodeID
		for _, n := range frontier {
			neighbors, err := expand(n)
			if err != nil {
				return nil, err
			}
			for _, m := range neighbors {
				k := nodeKey(m)
				if visited[k] {
					continue
				}
				visited[k] = true
				next = append(next, m)
			}
		}
		if len(next) > 0 {
			levels = append(levels, next)
		}
		frontier = next
	}
	return levels, nil
}

// CriticalPathResult is the longest path through a DAG, measured in edge
// count.
type CriticalPathResult struct {
	Path       []NodeID
	Length     int
	IsComplete bool
}

// CriticalPath finds the longest path in the DAG by dynamic programming
// over a topological order. If the graph has a cycle the order is
// necessarily partial and IsComplete is false.
func (s *Source) CriticalPath(opts TopoOptions) (CriticalPathResult, error) {
	topo, err := s.TopologicalSort(opts)
	if err != nil {
		return CriticalPathResult{}, err
	}
	edges, err := s.AllEdges()
	if err != nil {
		return CriticalPathResult{}, err
	}
	adj, _ := buildAdjacency(edges)

	longest := map[string]int{}
	next := map[string]NodeID{}
	for i := len(topo.Order) - 1; i >= 0; i-- {
		n := topo.Order[i]
		k := nodeKey(n)
		best := 0
		var bestNext NodeID
		hasNext := false
		for _, m := range adj[k] {
			if l := longest[nodeKey(m)] + 1; l > best {
				best = l
				bestNext = m
				hasNext = true
			}
		}
		longest[k] = best
		if hasNext {
			next[k] = bestNext
		}
	}

	bestStart := ""
	bestLen := -1
	for _, n := range topo.Order {
		if l := longest[nodeKey(n)]; l > bestLen {
			bestLen = l
			bestStart = nodeKey(n)
		}
	}
	if bestStart == "" {
		return CriticalPathResult{IsComplete: topo.IsComplete && !topo.HasCycle}, nil
	}

	byKey := map[string]NodeID{}
	for _, n := range topo.Order {
		byKey[nodeKey(n)] = n
	}
	var path []NodeID
	cur := bestStart
	for {
		path = append(path, byKey[cur])
		n, ok := next[cur]
		if !ok {
			break
		}
		cur = nodeKey(n)
	}

	return CriticalPathResult{Path: path, Length: len(path) - 1, IsComplete: topo.IsComplete && !topo.HasCycle}, nil
}
