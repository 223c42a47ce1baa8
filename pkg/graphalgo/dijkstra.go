package graphalgo

import (
	"container/heap"
	"time"
)

// WeightExtractor is a caller-supplied pure function producing the
// weight of an edge. Edges with negative weight are skipped with no
// error — negative weights are not supported; the caller must
// precondition against them (§4.D.2).
type WeightExtractor func(from, to NodeID) float64

// WeightedPathOptions bounds a Dijkstra search.
type WeightedPathOptions struct {
	MaxWeight float64 // 0 = unbounded
	MaxNodes  int     // 0 = unbounded
}

// WeightedPathResult is the answer shape for a single-target Dijkstra
// query.
type WeightedPathResult struct {
	Found         bool
	Path          []NodeID
	Distance      float64
	NodesExplored int
	Duration      time.Duration
	IsComplete    bool
}

// SingleSourceResult is returned by Dijkstra's single-source mode: full
// distance and parent maps, keyed by the canonical node string key.
type SingleSourceResult struct {
	Distances     map[string]float64
	Nodes         map[string]NodeID
	Parents       map[string]NodeID
	NodesExplored int
	Duration      time.Duration
	IsComplete    bool
}

type heapEntry struct {
	node NodeID
	dist float64
}

type distHeap []heapEntry

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *distHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Dijkstra runs single-source Dijkstra with a binary min-heap keyed by
// cumulative distance, stopping early on dequeuing target when target is
// non-nil. Stale heap entries (current best distance less than the
// dequeued distance) are discarded.
func (s *Source) Dijkstra(source NodeID, target *NodeID, weight WeightExtractor, opts WeightedPathOptions) (WeightedPathResult, SingleSourceResult, error) {
	start := time.Now()

	dist := map[string]float64{nodeKey(source): 0}
	nodes := map[string]NodeID{nodeKey(source): source}
	parent := map[string]NodeID{}
	visited := map[string]bool{}

	h := &distHeap{{node: source, dist: 0}}
	heap.Init(h)
	explored := 0

	for h.Len() > 0 {
		entry := heap.Pop(h).(heapEntry)
		k := nodeKey(entry.node)
		if visited[k] {
			continue
		}
		if best, ok := dist[k]; ok && entry.dist > best {
			continue // stale entry
		}
		visited[k] = true
		explored++

		if target != nil && k == nodeKey(*target) {
			path := reconstruct(parent, source, *target)
			wr := WeightedPathResult{Found: true, Path: path, Distance: dist[k], NodesExplored: explored, Duration: time.Since(start), IsComplete: true}
			return wr, SingleSourceResult{}, nil
		}
		if opts.MaxNodes > 0 && explored >= opts.MaxNodes {
			break
		}

		neighbors, err := s.Outgoing(entry.node)
		if err != nil {
			return WeightedPathResult{}, SingleSourceResult{}, err
		}
		for _, n := range neighbors {
			w := weight(entry.node, n)
			if w < 0 {
				continue // negative weights unsupported: skip, no error
			}
			nd := dist[k] + w
			if opts.MaxWeight > 0 && nd > opts.MaxWeight {
				continue // skip only, do not reject
			}
			nk := nodeKey(n)
			if best, ok := dist[nk]; !ok || nd < best {
				dist[nk] = nd
				nodes[nk] = n
				parent[nk] = entry.node
				heap.Push(h, heapEntry{node: n, dist: nd})
			}
		}
	}

	if target != nil {
		return WeightedPathResult{Found: false, NodesExplored: explored, Duration: time.Since(start), IsComplete: h.Len() == 0}, SingleSourceResult{}, nil
	}

	return WeightedPathResult{}, SingleSourceResult{
		Distances:     dist,
		Nodes:         nodes,
		Parents:       parent,
		NodesExplored: explored,
		Duration:      time.Since(start),
		IsComplete:    true,
	}, nil
}
