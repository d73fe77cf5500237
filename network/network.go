// Package network implements the DAG representation of a Bayesian
// network over a fixed, ordered tuple of variables, indexed by integer
// position. All graph queries are methods on Network; variables
// themselves carry no back-reference (see variable.Variable).
package network

import (
	"fmt"
	"strings"

	"github.com/JohnPierman/bnstruct/variable"
)

// Network is a DAG over M variables, fixed at construction. Pa(i) is
// the set of parent indices of variable i. Mutation is only through
// AddEdge/RemoveEdge; the variable order and count are immutable once
// constructed.
type Network struct {
	vars    []variable.Variable
	byName  map[string]int
	parents []row // parents[i] has bit j set iff j ∈ Pa(i)
}

// New constructs a Network over vars, with Pa(i) = ∅ for every i.
// Returns an error if two variables share a name.
func New(vars []variable.Variable) (*Network, error) {
	byName := make(map[string]int, len(vars))
	for i, v := range vars {
		if _, dup := byName[v.Name()]; dup {
			return nil, fmt.Errorf("network: duplicate variable name %q", v.Name())
		}
		byName[v.Name()] = i
	}

	cp := make([]variable.Variable, len(vars))
	copy(cp, vars)

	parents := make([]row, len(vars))
	for i := range parents {
		parents[i] = newRow(len(vars))
	}

	return &Network{vars: cp, byName: byName, parents: parents}, nil
}

// M returns the number of variables in the network.
func (n *Network) M() int {
	return len(n.vars)
}

// Variables returns the ordered tuple of variables the network was
// constructed over.
func (n *Network) Variables() []variable.Variable {
	cp := make([]variable.Variable, len(n.vars))
	copy(cp, n.vars)
	return cp
}

// Variable returns the variable at index i.
func (n *Network) Variable(i int) variable.Variable {
	return n.vars[i]
}

// VariableIndex returns the index of the variable with the given name.
func (n *Network) VariableIndex(name string) (int, error) {
	i, ok := n.byName[name]
	if !ok {
		return 0, &UnknownVariableError{Name: name}
	}
	return i, nil
}

// HasEdge reports whether a ∈ Pa(b).
func (n *Network) HasEdge(a, b int) bool {
	return n.parents[b].test(a)
}

// AddEdge inserts arc a->b. It fails with *InvalidEdgeError when a == b
// or the arc would create a cycle. Adding an arc that already exists is
// a successful no-op: Pa(b) is a set, so a is never duplicated.
func (n *Network) AddEdge(a, b int) error {
	if a == b {
		return &InvalidEdgeError{From: a, To: b, Reason: "self-loop"}
	}
	if n.CausesCycle(a, b, false) {
		return &InvalidEdgeError{From: a, To: b, Reason: "would create a cycle"}
	}
	n.parents[b].set(a)
	return nil
}

// RemoveEdge deletes arc a->b. It is a no-op if the arc is absent.
func (n *Network) RemoveEdge(a, b int) {
	n.parents[b].clear(a)
}

// CausesCycle reports whether a path from b back to a already exists in
// the current graph, which combined with a proposed arc a->b would form
// a cycle; also true when a == b.
//
// When reversal is true, an existing arc b->a is ignored while walking
// parent edges from a — this answers "would reversing b->a to a->b
// create a cycle?" (a->b would create a cycle iff a path from b to a
// other than the direct arc already exists).
func (n *Network) CausesCycle(a, b int, reversal bool) bool {
	if a == b {
		return true
	}

	queue := []int{a}
	visited := map[int]bool{a: true}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, p := range n.ParentIndices(v) {
			if reversal && v == a && p == b {
				// Pretend the arc b->a doesn't exist while reversal-testing.
				continue
			}
			if p == b {
				return true
			}
			if !visited[p] {
				visited[p] = true
				queue = append(queue, p)
			}
		}
	}
	return false
}

// ParentIndices returns Pa(i) in ascending order.
func (n *Network) ParentIndices(i int) []int {
	return n.parents[i].indices(len(n.vars))
}

// NonParentIndices returns [0,M) \ ({i} ∪ Pa(i)) in ascending order.
func (n *Network) NonParentIndices(i int) []int {
	out := make([]int, 0, len(n.vars))
	for j := 0; j < len(n.vars); j++ {
		if j == i || n.parents[i].test(j) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// Dimension returns dim(i, parents) = (|dom(i)|-1) * Π_{j∈parents} |dom(j)|.
func (n *Network) Dimension(i int, parents []int) int {
	dim := n.vars[i].Arity() - 1
	for _, j := range parents {
		dim *= n.vars[j].Arity()
	}
	return dim
}

// TotalDimension returns Σ_i dim(i, Pa(i)) for the network's current
// parent sets.
func (n *Network) TotalDimension() int {
	total := 0
	for i := range n.vars {
		total += n.Dimension(i, n.ParentIndices(i))
	}
	return total
}

// Copy returns a deep copy of n. Edits to the copy never affect n.
func (n *Network) Copy() *Network {
	parents := make([]row, len(n.parents))
	for i, r := range n.parents {
		parents[i] = r.clone()
	}
	byName := make(map[string]int, len(n.byName))
	for k, v := range n.byName {
		byName[k] = v
	}
	vars := make([]variable.Variable, len(n.vars))
	copy(vars, n.vars)

	return &Network{vars: vars, byName: byName, parents: parents}
}

// Equal reports whether n and other share the same ordered variable
// tuple and the same Pa sets.
func (n *Network) Equal(other *Network) bool {
	if other == nil || len(n.vars) != len(other.vars) {
		return false
	}
	for i := range n.vars {
		if !n.vars[i].Equal(other.vars[i]) {
			return false
		}
	}
	for i := range n.parents {
		if !n.parents[i].equal(other.parents[i]) {
			return false
		}
	}
	return true
}

// String returns the bnlearn DAG notation: the concatenation, in index
// order, of "[name]" for a parentless variable or "[name|p1:p2:...]"
// with parents listed in parent-index order.
func (n *Network) String() string {
	var sb strings.Builder
	for i, v := range n.vars {
		parents := n.ParentIndices(i)
		if len(parents) == 0 {
			fmt.Fprintf(&sb, "[%s]", v.Name())
			continue
		}
		names := make([]string, len(parents))
		for k, p := range parents {
			names[k] = n.vars[p].Name()
		}
		fmt.Fprintf(&sb, "[%s|%s]", v.Name(), strings.Join(names, ":"))
	}
	return sb.String()
}
