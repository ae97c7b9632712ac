// SPDX-License-Identifier: MIT
// indexset.go - ordered multi-index sets with O(1) membership.
//
// A pivot set stores the partial multi-indices anchoring one side of a bond.
// Order matters: row t of the set labels slice t of the adjacent core, so
// the set behaves like an append-only list with a hash index bolted on.
// Width-0 sets (the outer boundaries) hold exactly one empty row, which
// makes every fiber product well defined without special cases.

package cross

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/ttcross/tt"
)

// indexSet is an ordered list of integer rows of a fixed width plus a
// position index keyed by the encoded row.
type indexSet struct {
	width int
	rows  [][]int
	pos   map[string]int
}

// newIndexSet returns an empty set of the given row width (0 allowed).
func newIndexSet(width int) *indexSet {
	return &indexSet{width: width, pos: make(map[string]int)}
}

// indexKey encodes a row as a comma-joined decimal string.
func indexKey(row []int) string {
	var sb strings.Builder
	for t, v := range row {
		if t > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}

	return sb.String()
}

// Len reports the number of stored rows.
func (s *indexSet) Len() int { return len(s.rows) }

// Row returns row t. The slice is owned by the set; callers must not
// mutate it.
func (s *indexSet) Row(t int) []int { return s.rows[t] }

// Append inserts a copy of row and reports its position. When the row is
// already present the existing position is returned with inserted=false.
func (s *indexSet) Append(row []int) (int, bool) {
	var k = indexKey(row)
	if at, ok := s.pos[k]; ok {
		return at, false
	}

	var cp = make([]int, len(row))
	copy(cp, row)
	s.rows = append(s.rows, cp)
	s.pos[k] = len(s.rows) - 1

	return len(s.rows) - 1, true
}

// Replace swaps the whole content for copies of the given rows.
func (s *indexSet) Replace(rows [][]int) {
	s.rows = make([][]int, 0, len(rows))
	s.pos = make(map[string]int, len(rows))
	for _, row := range rows {
		s.Append(row)
	}
}

// Contains reports whether the row is already stored.
func (s *indexSet) Contains(row []int) bool {
	_, ok := s.pos[indexKey(row)]

	return ok
}

// Position returns the stored position of the row, if any.
func (s *indexSet) Position(row []int) (int, bool) {
	at, ok := s.pos[indexKey(row)]

	return at, ok
}

// productLeft materializes the rows of the (set × phys) product so that the
// row at flat position a matches column pairing a of tt.(*Core).UnfoldLeft
// under the same ordering: RowMajor pairs a = t·phys + i, ColMajor pairs
// a = t + len(set)·i.
func productLeft(o tt.Order, set *indexSet, phys int) [][]int {
	var (
		rl   = set.Len()
		out  = make([][]int, 0, rl*phys)
		t, i int
	)
	switch o {
	case tt.RowMajor:
		for t = 0; t < rl; t++ {
			for i = 0; i < phys; i++ {
				out = append(out, extendRight(set.Row(t), i))
			}
		}
	default:
		for i = 0; i < phys; i++ {
			for t = 0; t < rl; t++ {
				out = append(out, extendRight(set.Row(t), i))
			}
		}
	}

	return out
}

// productRight mirrors productLeft for the (phys × set) product and
// tt.(*Core).UnfoldRight: RowMajor pairs c = i·len(set) + t, ColMajor pairs
// c = i + phys·t.
func productRight(o tt.Order, phys int, set *indexSet) [][]int {
	var (
		rg   = set.Len()
		out  = make([][]int, 0, phys*rg)
		t, i int
	)
	switch o {
	case tt.RowMajor:
		for i = 0; i < phys; i++ {
			for t = 0; t < rg; t++ {
				out = append(out, extendLeft(i, set.Row(t)))
			}
		}
	default:
		for t = 0; t < rg; t++ {
			for i = 0; i < phys; i++ {
				out = append(out, extendLeft(i, set.Row(t)))
			}
		}
	}

	return out
}

// extendRight copies prefix and appends one trailing index.
func extendRight(prefix []int, i int) []int {
	var row = make([]int, len(prefix)+1)
	copy(row, prefix)
	row[len(prefix)] = i

	return row
}

// extendLeft copies suffix behind one leading index.
func extendLeft(i int, suffix []int) []int {
	var row = make([]int, len(suffix)+1)
	row[0] = i
	copy(row[1:], suffix)

	return row
}
