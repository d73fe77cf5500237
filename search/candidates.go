// Package search implements the three hill-climbing candidate
// evaluators: MaxAdd, MaxRemove, MaxReverse. Each scans every legal
// single-edge modification once and returns the best strictly-improving
// delta, with deterministic index-ascending tie-breaking so results are
// reproducible.
package search

import (
	"github.com/JohnPierman/bnstruct/network"
	"github.com/JohnPierman/bnstruct/score"
)

// Edge is a candidate arc a->b.
type Edge struct {
	From, To int
}

// AddResult is the outcome of MaxAdd: the best strictly-positive score
// delta from adding a single edge, and which edge achieves it. Found is
// false when no candidate addition improves the score.
type AddResult struct {
	Delta float64
	Edge  Edge
	Found bool
}

// MaxAdd scans every (a,b) with a a non-parent of b, a != b, that would
// not create a cycle, and returns the addition with the largest
// strictly-positive δ = score(b, Pa(b)∪{a}) - scores[b]. Ties go to the
// first (a,b) encountered under ascending b, then ascending a.
func MaxAdd(net *network.Network, d [][]int, scores []float64, cache *score.Cache) (AddResult, error) {
	var best AddResult

	for b := 0; b < net.M(); b++ {
		pa := net.ParentIndices(b)
		for _, a := range net.NonParentIndices(b) {
			if net.CausesCycle(a, b, false) {
				continue
			}
			candidate := append(append([]int{}, pa...), a)
			s, err := score.BIC(net, d, b, candidate, cache)
			if err != nil {
				return AddResult{}, err
			}
			delta := s - scores[b]
			if delta > 0 && (!best.Found || delta > best.Delta) {
				best = AddResult{Delta: delta, Edge: Edge{From: a, To: b}, Found: true}
			}
		}
	}
	return best, nil
}

// RemoveResult is the outcome of MaxRemove, analogous to AddResult.
type RemoveResult struct {
	Delta float64
	Edge  Edge
	Found bool
}

// MaxRemove scans every existing arc a->b and returns the removal with
// the largest strictly-positive δ = score(b, Pa(b)\{a}) - scores[b].
func MaxRemove(net *network.Network, d [][]int, scores []float64, cache *score.Cache) (RemoveResult, error) {
	var best RemoveResult

	for b := 0; b < net.M(); b++ {
		pa := net.ParentIndices(b)
		for _, a := range pa {
			candidate := withoutValue(pa, a)
			s, err := score.BIC(net, d, b, candidate, cache)
			if err != nil {
				return RemoveResult{}, err
			}
			delta := s - scores[b]
			if delta > 0 && (!best.Found || delta > best.Delta) {
				best = RemoveResult{Delta: delta, Edge: Edge{From: a, To: b}, Found: true}
			}
		}
	}
	return best, nil
}

// ReverseResult is the outcome of MaxReverse: reversing arc a->b to
// b->a changes the parent sets (and hence scores) of both endpoints.
type ReverseResult struct {
	Delta     float64 // δ_a + δ_b
	DeltaFrom float64 // δ_a: change in score(a)
	DeltaTo   float64 // δ_b: change in score(b)
	Edge      Edge    // the existing arc being reversed (From=a, To=b)
	Found     bool
}

// MaxReverse scans every existing arc a->b, skipping any whose reversal
// would create a cycle, and returns the reversal with the largest
// strictly-positive δ_a+δ_b, where δ_a is the score change for a
// gaining b as a parent and δ_b is the score change for b losing a.
func MaxReverse(net *network.Network, d [][]int, scores []float64, cache *score.Cache) (ReverseResult, error) {
	var best ReverseResult

	for b := 0; b < net.M(); b++ {
		pa := net.ParentIndices(b)
		for _, a := range pa {
			if net.CausesCycle(b, a, true) {
				continue
			}

			paA := net.ParentIndices(a)
			candidateA := append(append([]int{}, paA...), b)
			sA, err := score.BIC(net, d, a, candidateA, cache)
			if err != nil {
				return ReverseResult{}, err
			}
			deltaA := sA - scores[a]

			candidateB := withoutValue(pa, a)
			sB, err := score.BIC(net, d, b, candidateB, cache)
			if err != nil {
				return ReverseResult{}, err
			}
			deltaB := sB - scores[b]

			total := deltaA + deltaB
			if total > 0 && (!best.Found || total > best.Delta) {
				best = ReverseResult{
					Delta:     total,
					DeltaFrom: deltaA,
					DeltaTo:   deltaB,
					Edge:      Edge{From: a, To: b},
					Found:     true,
				}
			}
		}
	}
	return best, nil
}

func withoutValue(xs []int, v int) []int {
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
