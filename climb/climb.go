// Package climb implements the greedy hill-climbing loop that drives
// the three candidate evaluators in package search to a local optimum
// of the network BIC score.
package climb

import (
	"github.com/JohnPierman/bnstruct/network"
	"github.com/JohnPierman/bnstruct/score"
	"github.com/JohnPierman/bnstruct/search"
)

// opKind distinguishes the three move types for tie-breaking: ADD wins
// over REMOVE wins over REVERSE when deltas are exactly equal.
type opKind int

const (
	opNone opKind = iota
	opAdd
	opRemove
	opReverse
)

// Result summarizes a completed hill-climb run.
type Result struct {
	// Improvement is Σscores_after - Σscores_before, always >= 0.
	Improvement float64
	// Iterations is the number of accepted moves applied.
	Iterations int
}

// Run seeds scores[i] = score(i, d, Pa(i), cache) for every variable,
// then repeatedly evaluates MaxAdd, MaxRemove and MaxReverse against
// net and applies the single best strictly-improving move, mutating
// net and the internal score vector in place, until none of the three
// evaluators find a strictly-positive delta. Ties between op kinds with
// equal top deltas favor ADD over REMOVE over REVERSE; ties within one
// evaluator favor the first (a,b) encountered under ascending index
// iteration, per package search.
//
// cache may be nil to disable memoization. Run never returns an error
// for an already-optimal net; it returns an error only if scoring
// itself fails (e.g. d's column count does not match net.M()).
func Run(net *network.Network, d [][]int, cache *score.Cache) (Result, error) {
	scores := make([]float64, net.M())
	var initial float64
	for i := 0; i < net.M(); i++ {
		s, err := score.BIC(net, d, i, nil, cache)
		if err != nil {
			return Result{}, err
		}
		scores[i] = s
		initial += s
	}

	iterations := 0
	for {
		add, err := search.MaxAdd(net, d, scores, cache)
		if err != nil {
			return Result{}, err
		}
		remove, err := search.MaxRemove(net, d, scores, cache)
		if err != nil {
			return Result{}, err
		}
		reverse, err := search.MaxReverse(net, d, scores, cache)
		if err != nil {
			return Result{}, err
		}

		kind, delta := bestOp(add, remove, reverse)
		if kind == opNone || delta <= 0 {
			break
		}

		switch kind {
		case opAdd:
			if err := net.AddEdge(add.Edge.From, add.Edge.To); err != nil {
				return Result{}, err
			}
			scores[add.Edge.To] += add.Delta
		case opRemove:
			net.RemoveEdge(remove.Edge.From, remove.Edge.To)
			scores[remove.Edge.To] += remove.Delta
		case opReverse:
			a, b := reverse.Edge.From, reverse.Edge.To
			net.RemoveEdge(a, b)
			if err := net.AddEdge(b, a); err != nil {
				return Result{}, err
			}
			scores[a] += reverse.DeltaFrom
			scores[b] += reverse.DeltaTo
		}
		iterations++
	}

	var final float64
	for _, s := range scores {
		final += s
	}
	return Result{Improvement: final - initial, Iterations: iterations}, nil
}

// bestOp picks the largest of the three candidate deltas, breaking ties
// ADD > REMOVE > REVERSE by evaluating them in that order and requiring
// a strict improvement to displace an earlier, equally-good candidate.
func bestOp(add search.AddResult, remove search.RemoveResult, reverse search.ReverseResult) (opKind, float64) {
	kind := opNone
	var delta float64

	if add.Found {
		kind, delta = opAdd, add.Delta
	}
	if remove.Found && (kind == opNone || remove.Delta > delta) {
		kind, delta = opRemove, remove.Delta
	}
	if reverse.Found && (kind == opNone || reverse.Delta > delta) {
		kind, delta = opReverse, reverse.Delta
	}
	return kind, delta
}
