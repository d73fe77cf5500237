// Package stats computes sufficient statistics (joint and marginal
// counts) for a child variable given a parent set, by projecting the
// data matrix to the relevant columns and grouping identical rows.
package stats

import (
	"fmt"
	"strings"
)

// JointEntry is one observed (x_i, x_P) configuration's count, paired
// with the key of its parent assignment x_P so callers can look up the
// matching marginal without re-deriving it.
type JointEntry struct {
	ParentKey string
	Count     int
}

// Counts holds the sufficient statistics for one (child, parents)
// projection of the data matrix: for every observed joint assignment
// (x_i, x_P), its count (Joint), and for every observed x_P, the
// marginal Σ_{x_i} N(x_i, x_P) (Marginal, keyed by the same ParentKey).
// Configurations that never occur in the data are simply absent.
type Counts struct {
	Joint    []JointEntry
	Marginal map[string]int
}

// Count projects D onto column i and the ordered parent columns in
// parents, groups identical rows, and returns the resulting joint and
// marginal counts. D must have exactly M columns matching the network
// the caller derived i and parents from; callers are responsible for
// that invariant (stats has no Network dependency).
func Count(d [][]int, i int, parents []int) (Counts, error) {
	joint := make(map[string]int)
	marginal := make(map[string]int)

	for rowIdx, row := range d {
		if i >= len(row) {
			return Counts{}, fmt.Errorf("stats: row %d has %d columns, need index %d", rowIdx, len(row), i)
		}
		xi := row[i]
		xp := make([]int, len(parents))
		for k, p := range parents {
			if p >= len(row) {
				return Counts{}, fmt.Errorf("stats: row %d has %d columns, need index %d", rowIdx, len(row), p)
			}
			xp[k] = row[p]
		}

		mkey := packKey(xp)
		jkey := mkey + "/" + packKey([]int{xi})

		joint[jkey]++
		marginal[mkey]++
	}

	entries := make([]JointEntry, 0, len(joint))
	for jkey, count := range joint {
		mkey := jkey[:strings.LastIndex(jkey, "/")]
		entries = append(entries, JointEntry{ParentKey: mkey, Count: count})
	}

	return Counts{Joint: entries, Marginal: marginal}, nil
}

// packKey packs a small tuple of non-negative ints into a string key
// that preserves equality: distinct tuples never collide. Each value is
// written as decimal digits followed by a '|' delimiter, rather than a numeric
// Cantor packing, since parent arities are not bounded small enough
// here to guarantee no overflow.
func packKey(values []int) string {
	buf := make([]byte, 0, len(values)*5)
	for _, v := range values {
		buf = appendVarint(buf, v)
		buf = append(buf, '|')
	}
	return string(buf)
}

func appendVarint(buf []byte, v int) []byte {
	if v < 0 {
		buf = append(buf, '-')
		v = -v
	}
	start := len(buf)
	if v == 0 {
		return append(buf, '0')
	}
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	// digits were appended least-significant first; reverse them in place
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}
