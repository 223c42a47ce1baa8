package graphalgo

import (
	"time"
)

// PathResult is the answer shape for every unweighted shortest-path
// query (§4.D.1).
type PathResult struct {
	Found         bool
	Path          []NodeID
	Distance      int
	NodesExplored int
	Duration      time.Duration
	IsComplete    bool
	LimitReason   LimitReason
}

// PathOptions bounds an unweighted shortest-path search.
type PathOptions struct {
	MaxDepth         int // 0 = unbounded
	MaxNodesExplored int // 0 = unbounded
}

func (o PathOptions) depthOK(d int) bool {
	return o.MaxDepth <= 0 || d <= o.MaxDepth
}

func (o PathOptions) nodesOK(explored int) bool {
	return o.MaxNodesExplored <= 0 || explored < o.MaxNodesExplored
}

// ShortestPath runs unidirectional, frontier-per-level BFS from source to
// target with parent-pointer reconstruction. source == target yields a
// singleton path immediately.
func (s *Source) ShortestPath(source, target NodeID, opts PathOptions) (PathResult, error) {
	start := time.Now()
	if nodeKey(source) == nodeKey(target) {
		return PathResult{Found: true, Path: []NodeID{source}, Distance: 0, NodesExplored: 1, Duration: time.Since(start), IsComplete: true}, nil
	}

	visited := map[string]NodeID{nodeKey(source): source}
	parent := map[string]NodeID{}
	frontier := []NodeID{source}
	explored := 1
	depth := 0

	for len(frontier) > 0 {
		if !opts.depthOK(depth + 1) {
			return PathResult{Found: false, NodesExplored: explored, Duration: time.Since(start), IsComplete: false,
				LimitReason: LimitReason{Kind: LimitMaxNodesReached, Explored: explored, Limit: opts.MaxDepth}}, nil
		}
		depth++
		var next []NodeID
		for _, node := range frontier {
			neighbors, err := s.Outgoing(node)
			if err != nil {
				return PathResult{}, err
			}
			for _, n := range neighbors {
				k := nodeKey(n)
				if _, ok := visited[k]; ok {
					continue
				}
				visited[k] = n
				parent[k] = node
				explored++
				if k == nodeKey(target) {
					path := reconstruct(parent, source, target)
					return PathResult{Found: true, Path: path, Distance: len(path) - 1, NodesExplored: explored, Duration: time.Since(start), IsComplete: true}, nil
				}
				if !opts.nodesOK(explored) {
					return PathResult{Found: false, NodesExplored: explored, Duration: time.Since(start), IsComplete: false,
						LimitReason: LimitReason{Kind: LimitMaxNodesReached, Explored: explored, Limit: opts.MaxNodesExplored}}, nil
				}
				next = append(next, n)
			}
		}
		frontier = next
	}
	return PathResult{Found: false, NodesExplored: explored, Duration: time.Since(start), IsComplete: true}, nil
}

func reconstruct(parent map[string]NodeID, source, target NodeID) []NodeID {
	var rev []NodeID
	cur := target
	for nodeKey(cur) != nodeKey(source) {
		rev = append(rev, cur)
		cur = parent[nodeKey(cur)]
	}
	rev = append(rev, source)
	path := make([]NodeID, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}

// BidirectionalShortestPath alternates expanding the smaller of two
// frontiers — forward over outgoing edges, backward over incoming edges —
// terminating when either visited set contains a node newly inserted by
// the other. Path reconstruction concatenates forward(source→meeting)
// with backward(meeting→target).
func (s *Source) BidirectionalShortestPath(source, target NodeID, opts PathOptions) (PathResult, error) {
	start := time.Now()
	if nodeKey(source) == nodeKey(target) {
		return PathResult{Found: true, Path: []NodeID{source}, Distance: 0, NodesExplored: 1, Duration: time.Since(start), IsComplete: true}, nil
	}

	fParent := map[string]NodeID{nodeKey(source): source}
	bParent := map[string]NodeID{nodeKey(target): target}
	fFrontier := []NodeID{source}
	bFrontier := []NodeID{target}
	explored := 2
	depth := 0

	for len(fFrontier) > 0 && len(bFrontier) > 0 {
		if !opts.depthOK(depth + 1) {
			return PathResult{Found: false, NodesExplored: explored, Duration: time.Since(start), IsComplete: false,
				LimitReason: LimitReason{Kind: LimitMaxNodesReached, Explored: explored, Limit: opts.MaxDepth}}, nil
		}
		depth++

		forward := len(fFrontier) <= len(bFrontier)
		var frontier *[]NodeID
		var parent, other map[string]NodeID
		if forward {
			frontier, parent, other = &fFrontier, fParent, bParent
		} else {
			frontier, parent, other = &bFrontier, bParent, fParent
		}

		var next []NodeID
		for _, node := range *frontier {
			var neighbors []NodeID
			var err error
			if forward {
				neighbors, err = s.Outgoing(node)
			} else {
				neighbors, err = s.Incoming(node)
			}
			if err != nil {
				return PathResult{}, err
			}
			for _, n := range neighbors {
				k := nodeKey(n)
				if _, ok := parent[k]; ok {
					continue
				}
				parent[k] = node
				explored++
				if _, met := other[k]; met {
					path := stitchBidirectional(fParent, bParent, source, target, n)
					return PathResult{Found: true, Path: path, Distance: len(path) - 1, NodesExplored: explored, Duration: time.Since(start), IsComplete: true}, nil
				}
				if !opts.nodesOK(explored) {
					return PathResult{Found: false, NodesExplored: explored, Duration: time.Since(start), IsComplete: false,
						LimitReason: LimitReason{Kind: LimitMaxNodesReached, Explored: explored, Limit: opts.MaxNodesExplored}}, nil
				}
				next = append(next, n)
			}
		}
		*frontier = next
	}
	return PathResult{Found: false, NodesExplored: explored, Duration: time.Since(start), IsComplete: true}, nil
}

func stitchBidirectional(fParent, bParent map[string]NodeID, source, target, meeting NodeID) []NodeID {
	forwardHalf := reconstruct(fParent, source, meeting)
	var backwardHalf []NodeID
	cur := meeting
	for nodeKey(cur) != nodeKey(target) {
		next := bParent[nodeKey(cur)]
		backwardHalf = append(backwardHalf, next)
		cur = next
	}
	return append(forwardHalf, backwardHalf...)
}

// AllPathsResult is the outcome of AllShortestPaths.
type AllPathsResult struct {
	Found         bool
	Paths         [][]NodeID
	Distance      int
	NodesExplored int
	Duration      time.Duration
	IsComplete    bool
}

// AllShortestPaths runs unidirectional BFS but tracks multi-parent sets
// per node; once target is first reached at depth d, additional parents
// reaching it at the same depth d are admitted, then expansion past d
// stops. Paths are reconstructed by DFS over the resulting parent DAG.
func (s *Source) AllShortestPaths(source, target NodeID, opts PathOptions) (AllPathsResult, error) {
	start := time.Now()
	if nodeKey(source) == nodeKey(target) {
		return AllPathsResult{Found: true, Paths: [][]NodeID{{source}}, Distance: 0, NodesExplored: 1, Duration: time.Since(start), IsComplete: true}, nil
	}

	parents := map[string][]NodeID{}
	depthOf := map[string]int{nodeKey(source): 0}
	frontier := []NodeID{source}
	explored := 1
	targetDepth := -1
	depth := 0

	for len(frontier) > 0 {
		depth++
		if targetDepth >= 0 && depth > targetDepth {
			break
		}
		if !opts.depthOK(depth) {
			break
		}
		var next []NodeID
		seenThisLevel := map[string]bool{}
		for _, node := range frontier {
			neighbors, err := s.Outgoing(node)
			if err != nil {
				return AllPathsResult{}, err
			}
			for _, n := range neighbors {
				k := nodeKey(n)
				if d, ok := depthOf[k]; ok {
					if d == depth && k == nodeKey(target) {
						parents[k] = append(parents[k], node)
					}
					continue
				}
				depthOf[k] = depth
				parents[k] = append(parents[k], node)
				if !seenThisLevel[k] {
					seenThisLevel[k] = true
					explored++
					next = append(next, n)
				}
				if k == nodeKey(target) && targetDepth < 0 {
					targetDepth = depth
				}
			}
		}
		frontier = next
		if targetDepth >= 0 && depth >= targetDepth {
			break
		}
	}

	if targetDepth < 0 {
		return AllPathsResult{Found: false, NodesExplored: explored, Duration: time.Since(start), IsComplete: true}, nil
	}

	var paths [][]NodeID
	var dfs func(node NodeID, acc []NodeID)
	dfs = func(node NodeID, acc []NodeID) {
		acc = append([]NodeID{node}, acc...)
		if nodeKey(node) == nodeKey(source) {
			paths = append(paths, append([]NodeID{}, acc...))
			return
		}
		for _, p := range parents[nodeKey(node)] {
			dfs(p, acc)
		}
	}
	dfs(target, nil)

	return AllPathsResult{Found: true, Paths: paths, Distance: targetDepth, NodesExplored: explored, Duration: time.Since(start), IsComplete: true}, nil
}
