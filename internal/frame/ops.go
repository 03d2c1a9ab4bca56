package frame

import (
	"fmt"
	"sort"
	"strings"
)

// Explode expands a DTypeList column so each list element becomes its
// own row, repeating every other column's value across the expansion.
// A null or empty list produces exactly one output row with a null in
// the exploded column.
func Explode(f *Frame, col string) (*Frame, error) {
	s, ok := f.Column(col)
	if !ok {
		return nil, fmt.Errorf("frame: explode: no such column %q", col)
	}
	if s.DType != DTypeList {
		return nil, fmt.Errorf("frame: explode: column %q is not a list column", col)
	}

	var idx []int
	var elems []any
	var elemValid []bool
	for i := 0; i < f.NumRows(); i++ {
		list, ok := s.ListAt(i)
		if !ok || len(list) == 0 {
			idx = append(idx, i)
			elems = append(elems, nil)
			elemValid = append(elemValid, false)
			continue
		}
		for _, v := range list {
			idx = append(idx, i)
			elems = append(elems, v)
			elemValid = append(elemValid, v != nil)
		}
	}

	out := f.Take(idx)
	exploded := &Series{Name: col, DType: s.ElemType, Values: elems, Valid: elemValid}
	return out.WithColumn(exploded), nil
}

// ExplodeSequential explodes each of cols independently, one after
// another, so sequential explodes yield the Cartesian product — the
// `Cross` list-expander.
func ExplodeSequential(f *Frame, cols []string) (*Frame, error) {
	cur := f
	for _, c := range cols {
		var err error
		cur, err = Explode(cur, c)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// ZipExplode explodes the given marked columns together: row i's
// lists are walked in lockstep. When pad is false (ZipMin) the
// lockstep length is the shortest marked list in that row and any row
// left with nulls from truncation is dropped entirely; when pad is
// true (ZipMax) the lockstep length is the longest, with nulls for
// columns exhausted early.
func ZipExplode(f *Frame, cols []string, pad bool) (*Frame, error) {
	if len(cols) == 0 {
		return f, nil
	}
	lists := make([]*Series, len(cols))
	for i, c := range cols {
		s, ok := f.Column(c)
		if !ok {
			return nil, fmt.Errorf("frame: zip-explode: no such column %q", c)
		}
		if s.DType != DTypeList {
			return nil, fmt.Errorf("frame: zip-explode: column %q is not a list column", c)
		}
		lists[i] = s
	}

	var idx []int
	perCol := make([][]any, len(cols))
	perColValid := make([][]bool, len(cols))

	for row := 0; row < f.NumRows(); row++ {
		rowLists := make([][]any, len(cols))
		length := -1
		for i, s := range lists {
			l, _ := s.ListAt(row)
			rowLists[i] = l
			if pad {
				if len(l) > length {
					length = len(l)
				}
			} else {
				if length == -1 || len(l) < length {
					length = len(l)
				}
			}
		}
		if length < 0 {
			length = 0
		}
		if !pad && length == 0 {
			continue // ZipMin truncation drops rows with no common length
		}
		for k := 0; k < length; k++ {
			idx = append(idx, row)
			for i := range cols {
				if k < len(rowLists[i]) {
					perCol[i] = append(perCol[i], rowLists[i][k])
					perColValid[i] = append(perColValid[i], rowLists[i][k] != nil)
				} else {
					perCol[i] = append(perCol[i], nil)
					perColValid[i] = append(perColValid[i], false)
				}
			}
		}
	}

	out := f.Take(idx)
	for i, c := range cols {
		out = out.WithColumn(&Series{Name: c, DType: lists[i].ElemType, Values: perCol[i], Valid: perColValid[i]})
	}
	return out, nil
}

func rowKey(cols []*Series, i int) (string, bool) {
	var b strings.Builder
	allValid := true
	for _, s := range cols {
		v, ok := s.StringAt(i)
		if !ok {
			allValid = false
			b.WriteByte(1)
			continue
		}
		b.WriteByte(2)
		b.WriteString(v)
		b.WriteByte(0)
	}
	return b.String(), allValid
}

func columnsFor(f *Frame, names []string) ([]*Series, error) {
	out := make([]*Series, len(names))
	for i, n := range names {
		s, ok := f.Column(n)
		if !ok {
			return nil, fmt.Errorf("frame: no such column %q", n)
		}
		out[i] = s
	}
	return out, nil
}

// JoinKind selects the join semantics used by Join.
type JoinKind uint8

const (
	JoinInner JoinKind = iota
	JoinLeftOuter
	JoinCross
)

// Join joins left and right on equal values in onCols (present in
// both frames under the same names), per the kind requested. A column
// present in both frames outside onCols appears once in the output,
// holding right's values — callers are expected to have renamed ahead
// of time, as the expansion/SPARQL layers do.
func Join(left, right *Frame, onCols []string, kind JoinKind) (*Frame, error) {
	if kind == JoinCross {
		return crossJoin(left, right)
	}

	lkeys, err := columnsFor(left, onCols)
	if err != nil {
		return nil, err
	}
	rkeys, err := columnsFor(right, onCols)
	if err != nil {
		return nil, err
	}

	buckets := map[string][]int{}
	for i := 0; i < right.NumRows(); i++ {
		k, ok := rowKey(rkeys, i)
		if !ok {
			continue
		}
		buckets[k] = append(buckets[k], i)
	}

	var leftIdx, rightIdx []int
	for i := 0; i < left.NumRows(); i++ {
		k, ok := rowKey(lkeys, i)
		matches := buckets[k]
		if !ok || len(matches) == 0 {
			if kind == JoinLeftOuter {
				leftIdx = append(leftIdx, i)
				rightIdx = append(rightIdx, -1)
			}
			continue
		}
		for _, j := range matches {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, j)
		}
	}

	leftOut := left.Take(leftIdx)
	rightOut := right.Take(rightIdx)
	onSet := map[string]bool{}
	for _, c := range onCols {
		onSet[c] = true
	}
	rightOut = rightOut.DropColumns(onCols...)

	out := leftOut
	for _, name := range rightOut.ColumnNames() {
		out = out.WithColumn(rightOut.MustColumn(name))
	}
	return out, nil
}

func crossJoin(left, right *Frame) (*Frame, error) {
	var leftIdx, rightIdx []int
	for i := 0; i < left.NumRows(); i++ {
		for j := 0; j < right.NumRows(); j++ {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, j)
		}
	}
	leftOut := left.Take(leftIdx)
	rightOut := right.Take(rightIdx)
	out := leftOut
	for _, name := range rightOut.ColumnNames() {
		if out.HasColumn(name) {
			continue
		}
		out = out.WithColumn(rightOut.MustColumn(name))
	}
	return out, nil
}

// UniqueKeepFirst drops duplicate rows, keeping the first occurrence,
// comparing on the given columns (nil means every column — the
// unique-keep-first projection used by both store.Deduplicate and
// sparql's Distinct node).
func UniqueKeepFirst(f *Frame, onCols []string) (*Frame, error) {
	cols := onCols
	if cols == nil {
		cols = f.ColumnNames()
	}
	keyCols, err := columnsFor(f, cols)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var idx []int
	for i := 0; i < f.NumRows(); i++ {
		k, _ := rowKey(keyCols, i)
		if seen[k] {
			continue
		}
		seen[k] = true
		idx = append(idx, i)
	}
	return f.Take(idx), nil
}

// Concat appends right's rows after left's. Columns present in only
// one side are filled with nulls on the other, matching SPARQL
// Union's "non-shared columns are filled with nulls" semantics.
func Concat(left, right *Frame) (*Frame, error) {
	names := map[string]bool{}
	var order []string
	for _, n := range left.ColumnNames() {
		if !names[n] {
			names[n] = true
			order = append(order, n)
		}
	}
	for _, n := range right.ColumnNames() {
		if !names[n] {
			names[n] = true
			order = append(order, n)
		}
	}

	out := NewFrame()
	for _, n := range order {
		var ls, rs *Series
		if c, ok := left.Column(n); ok {
			ls = c
		}
		if c, ok := right.Column(n); ok {
			rs = c
		}
		dtype, elemType := DTypeString, DTypeString
		if ls != nil {
			dtype, elemType = ls.DType, ls.ElemType
		} else if rs != nil {
			dtype, elemType = rs.DType, rs.ElemType
		}
		merged := &Series{Name: n, DType: dtype, ElemType: elemType}
		if ls != nil {
			merged.Values = append(merged.Values, ls.Values...)
			merged.Valid = append(merged.Valid, ls.Valid...)
		} else {
			merged.Values = append(merged.Values, make([]any, left.NumRows())...)
			merged.Valid = append(merged.Valid, make([]bool, left.NumRows())...)
		}
		if rs != nil {
			merged.Values = append(merged.Values, rs.Values...)
			merged.Valid = append(merged.Valid, rs.Valid...)
		} else {
			merged.Values = append(merged.Values, make([]any, right.NumRows())...)
			merged.Valid = append(merged.Valid, make([]bool, right.NumRows())...)
		}
		if err := out.addSeries(merged); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SortKey is one OrderBy expression column, ascending or descending.
type SortKey struct {
	Column     string
	Descending bool
}

// Sort orders f's rows by the given keys, nulls sort last regardless
// of direction.
func Sort(f *Frame, keys []SortKey) (*Frame, error) {
	cols := make([]*Series, len(keys))
	for i, k := range keys {
		s, ok := f.Column(k.Column)
		if !ok {
			return nil, fmt.Errorf("frame: sort: no such column %q", k.Column)
		}
		cols[i] = s
	}
	idx := make([]int, f.NumRows())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		for i, s := range cols {
			va, oka := s.StringAt(ia)
			vb, okb := s.StringAt(ib)
			if oka != okb {
				return oka // non-null sorts before null
			}
			if !oka {
				continue
			}
			if va == vb {
				continue
			}
			if keys[i].Descending {
				return va > vb
			}
			return va < vb
		}
		return false
	})
	return f.Take(idx), nil
}
