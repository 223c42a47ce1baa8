package graphalgo

import (
	"sort"
	"time"
)

type color int

const (
	white color = iota
	gray
	black
)

// CycleOptions bounds cycle detection.
type CycleOptions struct {
	MaxCycles int // 0 = unbounded
	MaxNodes  int // 0 = unbounded
}

// CycleResult distinguishes a definitive positive, a definitive negative
// (graph acyclic under the filter), and an indeterminate negative that a
// caller must not treat as proof of acyclicity (§4.D.3, §7).
type CycleResult struct {
	HasCycle          bool
	Cycles            [][]NodeID
	NodesExplored     int
	Duration          time.Duration
	IsComplete        bool
	LimitReason       LimitReason
	IsCycleDefinitive bool // true iff HasCycle || IsComplete
}

type dfsFrame struct {
	node        NodeID
	neighbors   []NodeID
	neighborIdx int
}

// FindCycles runs an iterative DFS with three-color marking over an
// explicit work stack of frames (node, its sorted neighbors, index of the
// next neighbor to visit), across every node reachable from a single full
// edge scan.
func (s *Source) FindCycles(opts CycleOptions) (CycleResult, error) {
	start := time.Now()
	edges, err := s.AllEdges()
	if err != nil {
		return CycleResult{}, err
	}
	adj, nodeOrder := buildAdjacency(edges)

	colors := map[string]color{}
	var cycles [][]NodeID
	explored := 0
	limitHit := false
	var reason LimitReason

	for _, root := range nodeOrder {
		if limitHit {
			break
		}
		if colors[nodeKey(root)] != white {
			continue
		}
		var stack []*dfsFrame
		var path []NodeID
		colors[nodeKey(root)] = gray
		path = append(path, root)
		explored++
		stack = append(stack, &dfsFrame{node: root, neighbors: adj[nodeKey(root)]})

		for len(stack) > 0 && !limitHit {
			top := stack[len(stack)-1]
			if top.neighborIdx >= len(top.neighbors) {
				colors[nodeKey(top.node)] = black
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
				continue
			}
			n := top.neighbors[top.neighborIdx]
			top.neighborIdx++
			nk := nodeKey(n)

			switch colors[nk] {
			case white:
				if opts.MaxNodes > 0 && explored >= opts.MaxNodes {
					limitHit = true
					reason = LimitReason{Kind: LimitMaxNodesReached, Explored: explored, Limit: opts.MaxNodes}
					continue
				}
				colors[nk] = gray
				explored++
				path = append(path, n)
				stack = append(stack, &dfsFrame{node: n, neighbors: adj[nk]})
			case gray:
				cycle := extractCycle(path, n)
				cycles = append(cycles, cycle)
				if opts.MaxCycles > 0 && len(cycles) >= opts.MaxCycles {
					limitHit = true
					reason = LimitReason{Kind: LimitMaxCyclesReached, Found: len(cycles), Limit: opts.MaxCycles}
				}
			case black:
				// cross/forward edge, not a back-edge: ignore
			}
		}
	}

	hasCycle := len(cycles) > 0
	isComplete := !limitHit
	return CycleResult{
		HasCycle:          hasCycle,
		Cycles:            cycles,
		NodesExplored:      explored,
		Duration:          time.Since(start),
		IsComplete:        isComplete,
		LimitReason:       reason,
		IsCycleDefinitive: hasCycle || isComplete,
	}, nil
}

func buildAdjacency(edges []Edge) (map[string][]NodeID, []NodeID) {
	adj := map[string][]NodeID{}
	seen := map[string]NodeID{}
	var order []string
	for _, e := range edges {
		for _, n := range []NodeID{e.From, e.To} {
			k := nodeKey(n)
			if _, ok := seen[k]; !ok {
				seen[k] = n
				order = append(order, k)
			}
		}
		adj[nodeKey(e.From)] = append(adj[nodeKey(e.From)], e.To)
	}
	sort.Strings(order)
	nodes := make([]NodeID, len(order))
	for i, k := range order {
		nodes[i] = seen[k]
	}
	return adj, nodes
}

// extractCycle walks path from the back-edge target to the back-edge
// source and rotates the result so it begins at its lexicographically
// minimum node key, giving a canonical representation independent of
// traversal order (§8 property 4).
func extractCycle(path []NodeID, backEdgeTarget NodeID) []NodeID {
	idx := -1
	for i, n := range path {
		if nodeKey(n) == nodeKey(backEdgeTarget) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	cycle := append([]NodeID{}, path[idx:]...)
	cycle = append(cycle, backEdgeTarget)
	return rotateToMinimum(cycle)
}

func rotateToMinimum(cycle []NodeID) []NodeID {
	if len(cycle) <= 1 {
		return cycle
	}
	body := cycle[:len(cycle)-1] // drop the repeated closing node
	minIdx := 0
	for i, n := range body {
		if nodeKey(n) < nodeKey(body[minIdx]) {
			minIdx = i
		}
	}
	rotated := make([]NodeID, 0, len(cycle))
	for i := 0; i < len(body); i++ {
		rotated = append(rotated, body[(minIdx+i)%len(body)])
	}
	rotated = append(rotated, rotated[0])
	return rotated
}

// WouldCreateCycle checks whether a path already exists to → from via
// BFS; this is the one algorithm that raises CycleDetectionError rather
// than returning a best-effort result, because a boolean return here
// would otherwise silently hide an indeterminate answer (§4.D.3, §7).
func (s *Source) WouldCreateCycle(from, to NodeID, maxNodes int) (bool, error) {
	visited := map[string]bool{nodeKey(to): true}
	frontier := []NodeID{to}
	explored := 1

	for len(frontier) > 0 {
		var next []NodeID
		for _, node := range frontier {
			if nodeKey(node) == nodeKey(from) {
				return true, nil
			}
			neighbors, err := s.Outgoing(node)
			if err != nil {
				return false, err
			}
			for _, n := range neighbors {
				k := nodeKey(n)
				if visited[k] {
					continue
				}
				visited[k] = true
				explored++
				if maxNodes > 0 && explored > maxNodes {
					return false, LimitReached(explored, maxNodes)
				}
				next = append(next, n)
			}
		}
		frontier = next
	}
	return false, nil
}
