// Package score computes per-variable log-likelihood and BIC
// contributions from sufficient statistics, with an optional
// memoization cache keyed by (variable index, canonical parent tuple).
package score

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/JohnPierman/bnstruct/network"
	"github.com/JohnPierman/bnstruct/stats"
)

// Cache maps a variable index to a map from canonical (sorted) parent
// tuple to its previously computed BIC score. Entries are pure
// functions of (i, parents, data) so the cache is never invalidated;
// the zero value is not usable, use NewCache.
type Cache struct {
	entries map[int]map[string]float64
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[int]map[string]float64)}
}

func (c *Cache) get(i int, key string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	row, ok := c.entries[i]
	if !ok {
		return 0, false
	}
	v, ok := row[key]
	return v, ok
}

func (c *Cache) put(i int, key string, v float64) {
	if c == nil {
		return
	}
	row, ok := c.entries[i]
	if !ok {
		row = make(map[string]float64)
		c.entries[i] = row
	}
	row[key] = v
}

// canonicalKey sorts a copy of parents ascending and returns both the
// canonical slice and its string cache key, so that score results are
// invariant under permutation of the input parent order.
func canonicalKey(parents []int) ([]int, string) {
	sorted := make([]int, len(parents))
	copy(sorted, parents)
	sort.Ints(sorted)

	var sb strings.Builder
	for _, p := range sorted {
		sb.WriteString(strconv.Itoa(p))
		sb.WriteByte(',')
	}
	return sorted, sb.String()
}

// BIC computes BIC(i, P) = LL(i, P) - 0.5*log(N)*dim(i, P) for variable
// i under the given parent set P against data d. If parents is nil, the
// network's current Pa(i) is used. Results are cached in cache when
// cache is non-nil, keyed by (i, canonical(parents)) so they are
// unaffected by the order of parents passed in.
func BIC(net *network.Network, d [][]int, i int, parents []int, cache *Cache) (float64, error) {
	if len(d) > 0 && len(d[0]) != net.M() {
		return 0, &ShapeMismatchError{Got: len(d[0]), Want: net.M()}
	}

	effective := parents
	if effective == nil {
		effective = net.ParentIndices(i)
	}
	canonical, key := canonicalKey(effective)

	if v, ok := cache.get(i, key); ok {
		return v, nil
	}

	ll, err := logLikelihood(d, i, canonical)
	if err != nil {
		return 0, err
	}
	n := float64(len(d))
	dim := float64(net.Dimension(i, canonical))
	bic := ll - 0.5*math.Log(n)*dim

	cache.put(i, key, bic)
	return bic, nil
}

// LogLikelihood computes LL(i, P) = Σ N(x_i,x_P)·log(N(x_i,x_P)/N(x_P))
// over observed configurations. Configurations that never occur
// contribute nothing: log(0) is never evaluated.
func LogLikelihood(net *network.Network, d [][]int, i int, parents []int) (float64, error) {
	if len(d) > 0 && len(d[0]) != net.M() {
		return 0, &ShapeMismatchError{Got: len(d[0]), Want: net.M()}
	}
	effective := parents
	if effective == nil {
		effective = net.ParentIndices(i)
	}
	return logLikelihood(d, i, effective)
}

func logLikelihood(d [][]int, i int, parents []int) (float64, error) {
	counts, err := stats.Count(d, i, parents)
	if err != nil {
		return 0, err
	}

	ll := 0.0
	for _, je := range counts.Joint {
		marginal := counts.Marginal[je.ParentKey]
		ll += float64(je.Count) * math.Log(float64(je.Count)/float64(marginal))
	}
	return ll, nil
}

// NetworkBIC returns the sum of BIC(i, Pa(i)) over every variable in
// the network — the decomposable network-level score.
func NetworkBIC(net *network.Network, d [][]int, cache *Cache) (float64, error) {
	total := 0.0
	for i := 0; i < net.M(); i++ {
		b, err := BIC(net, d, i, nil, cache)
		if err != nil {
			return 0, err
		}
		total += b
	}
	return total, nil
}
