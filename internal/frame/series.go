// Package frame implements a minimal lazy columnar engine: named
// columns, and a deferred operation chain (select/filter/rename/
// withColumn/explode/join/groupBy) that only materializes at Collect.
// No ecosystem dataframe library surfaced anywhere in the retrieved
// example pack (see DESIGN.md), so this is built directly on slices.
package frame

import "fmt"

// DType is the storage type of a Series cell.
type DType uint8

const (
	DTypeString DType = iota
	DTypeInt64
	DTypeFloat64
	DTypeBool
	DTypeList // element-wise lists; ElemType describes the element DType
)

func (d DType) String() string {
	switch d {
	case DTypeString:
		return "string"
	case DTypeInt64:
		return "int64"
	case DTypeFloat64:
		return "float64"
	case DTypeBool:
		return "bool"
	default:
		return "list"
	}
}

// Series is a single named column: a value slice plus a null bitmap.
// Values hold native Go values (string, int64, float64, bool, or
// []any for DTypeList); a false entry in Valid means the cell is
// null regardless of what Values holds there.
type Series struct {
	Name     string
	DType    DType
	ElemType DType // meaningful only when DType == DTypeList
	Values   []any
	Valid    []bool
}

// NewSeries builds a Series of the given length with every cell null.
func NewSeries(name string, dtype DType, n int) *Series {
	return &Series{
		Name:   name,
		DType:  dtype,
		Values: make([]any, n),
		Valid:  make([]bool, n),
	}
}

func (s *Series) Len() int { return len(s.Values) }

func (s *Series) Clone() *Series {
	out := &Series{Name: s.Name, DType: s.DType, ElemType: s.ElemType}
	out.Values = append([]any(nil), s.Values...)
	out.Valid = append([]bool(nil), s.Valid...)
	return out
}

func (s *Series) Rename(name string) *Series {
	c := s.Clone()
	c.Name = name
	return c
}

// SetString sets a non-null string cell at i.
func (s *Series) SetString(i int, v string) {
	s.Values[i] = v
	s.Valid[i] = true
}

func (s *Series) SetList(i int, v []any) {
	s.Values[i] = v
	s.Valid[i] = true
}

func (s *Series) SetNull(i int) {
	s.Values[i] = nil
	s.Valid[i] = false
}

// StringAt returns the cell as a string and whether it is non-null.
// Non-string DTypes are rendered with fmt, matching how the triple
// store treats the lexical form of any literal as text.
func (s *Series) StringAt(i int) (string, bool) {
	if !s.Valid[i] {
		return "", false
	}
	if s.DType == DTypeString {
		return s.Values[i].(string), true
	}
	return fmt.Sprint(s.Values[i]), true
}

// BoolAt returns the cell as a bool and whether it is non-null. Used
// by filter masks and expression results (internal/sparql).
func (s *Series) BoolAt(i int) (bool, bool) {
	if !s.Valid[i] {
		return false, false
	}
	if s.DType == DTypeBool {
		return s.Values[i].(bool), true
	}
	return false, false
}

// Float64At returns the cell as a float64 and whether it is non-null,
// the arithmetic-expression counterpart to StringAt (internal/sparql).
func (s *Series) Float64At(i int) (float64, bool) {
	if !s.Valid[i] {
		return 0, false
	}
	switch v := s.Values[i].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func (s *Series) ListAt(i int) ([]any, bool) {
	if !s.Valid[i] {
		return nil, false
	}
	return s.Values[i].([]any), true
}

// Append returns a new Series with other's rows appended after s's.
// Mismatched names are taken from s; callers are responsible for
// type-compatibility (mirrors Union's "non-shared columns filled with
// nulls" contract being resolved before Append is called).
func (s *Series) Append(other *Series) *Series {
	out := s.Clone()
	out.Values = append(out.Values, other.Values...)
	out.Valid = append(out.Valid, other.Valid...)
	return out
}

// FilterMask returns a new Series keeping only rows where mask[i] is true.
func (s *Series) FilterMask(mask []bool) *Series {
	out := &Series{Name: s.Name, DType: s.DType, ElemType: s.ElemType}
	for i, keep := range mask {
		if keep {
			out.Values = append(out.Values, s.Values[i])
			out.Valid = append(out.Valid, s.Valid[i])
		}
	}
	return out
}

// Take returns a new Series built by gathering rows at the given
// indices; idx == -1 produces a null row (used by outer joins).
func (s *Series) Take(idx []int) *Series {
	out := &Series{Name: s.Name, DType: s.DType, ElemType: s.ElemType}
	out.Values = make([]any, len(idx))
	out.Valid = make([]bool, len(idx))
	for i, j := range idx {
		if j < 0 {
			continue
		}
		out.Values[i] = s.Values[j]
		out.Valid[i] = s.Valid[j]
	}
	return out
}
