package graphalgo

import (
	"sort"
	"time"
)

// PageRankOptions configures the power iteration.
type PageRankOptions struct {
	Damping       float64 // 0 = default 0.85
	MaxIterations int     // 0 = default 100
	Tolerance     float64 // 0 = default 1e-6, L1 norm of successive deltas

	// PersonalizedStart, when set, runs personalized PageRank: the
	// (1-d) teleport mass goes only to this node, and the initial score
	// vector starts entirely concentrated on it, rather than uniform
	// over every node (§4.D.7).
	PersonalizedStart *NodeID
}

func (o PageRankOptions) damping() float64 {
	if o.Damping > 0 {
		return o.Damping
	}
	return 0.85
}

func (o PageRankOptions) maxIterations() int {
	if o.MaxIterations > 0 {
		return o.MaxIterations
	}
	return 100
}

func (o PageRankOptions) tolerance() float64 {
	if o.Tolerance > 0 {
		return o.Tolerance
	}
	return 1e-6
}

// PageRankResult holds the converged (or best-effort) rank vector.
type PageRankResult struct {
	Scores        map[string]float64
	NodeByKey     map[string]NodeID
	Iterations    int
	Converged     bool
	NodesExplored int
	Duration      time.Duration
	IsComplete    bool
}

// PageRank runs the classic power iteration with dangling-node mass
// redistributed uniformly (or, in personalized mode, sent back to the
// start node) each round, stopping once the L1 norm of the score delta
// drops below tolerance or MaxIterations is hit (§4.D.7).
func (s *Source) PageRank(opts PageRankOptions) (PageRankResult, error) {
	start := time.Now()
	edges, err := s.AllEdges()
	if err != nil {
		return PageRankResult{}, err
	}
	outAdj, order := buildAdjacency(edges)
	nodeByKey := map[string]NodeID{}
	for _, n := range order {
		nodeByKey[nodeKey(n)] = n
	}
	n := len(order)
	if n == 0 {
		return PageRankResult{Scores: map[string]float64{}, NodeByKey: nodeByKey, IsComplete: true, Duration: time.Since(start)}, nil
	}

	outDegree := map[string]int{}
	for _, k := range order {
		outDegree[k] = len(outAdj[k])
	}

	restart := make(map[string]float64, n)
	scores := make(map[string]float64, n)
	if opts.PersonalizedStart != nil {
		startKey := nodeKey(*opts.PersonalizedStart)
		for _, k := range order {
			restart[k] = 0
			scores[k] = 0
		}
		restart[startKey] = 1
		scores[startKey] = 1
	} else {
		for _, k := range order {
			restart[k] = 1.0 / float64(n)
			scores[k] = 1.0 / float64(n)
		}
	}

	d := opts.damping()
	converged := false
	iterations := 0

	for ; iterations < opts.maxIterations(); iterations++ {
		next := make(map[string]float64, n)
		var danglingMass float64
		for _, k := range order {
			if outDegree[k] == 0 {
				danglingMass += scores[k]
			}
		}

		for _, k := range order {
			next[k] = (1 - d) * restart[k]
		}
		for _, k := range order {
			if outDegree[k] == 0 {
				continue
			}
			share := d * scores[k] / float64(outDegree[k])
			for _, to := range outAdj[k] {
				next[nodeKey(to)] += share
			}
		}
		for _, k := range order {
			next[k] += d * danglingMass * restart[k]
		}

		var delta float64
		for _, k := range order {
			diff := next[k] - scores[k]
			if diff < 0 {
				diff = -diff
			}
			delta += diff
		}
		scores = next
		if delta < opts.tolerance() {
			converged = true
			iterations++
			break
		}
	}

	sort.Strings(order)
	return PageRankResult{
		Scores:        scores,
		NodeByKey:     nodeByKey,
		Iterations:    iterations,
		Converged:     converged,
		NodesExplored: n,
		Duration:      time.Since(start),
		IsComplete:    true,
	}, nil
}
