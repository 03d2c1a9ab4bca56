package frame

import (
	"fmt"
	"strconv"
	"strings"
)

// AggKind enumerates the aggregates a Group node can compute.
type AggKind uint8

const (
	AggCount AggKind = iota
	AggSum
	AggMin
	AggMax
	AggAvg
	AggSample
	AggGroupConcat
)

// AggSpec is one named aggregate computed over a grouped Frame.
type AggSpec struct {
	Output   string
	Kind     AggKind
	Column   string // input column; "" for Count(*)
	Distinct bool   // only meaningful for AggCount
	Sep      string // only meaningful for AggGroupConcat
}

// GroupBy groups f by byCols and computes each aggregate, producing
// one output row per distinct group.
func GroupBy(f *Frame, byCols []string, aggs []AggSpec) (*Frame, error) {
	keyCols, err := columnsFor(f, byCols)
	if err != nil {
		return nil, err
	}

	order := []string{}
	groups := map[string][]int{}
	for i := 0; i < f.NumRows(); i++ {
		k, ok := rowKey(keyCols, i)
		if !ok {
			k = "\x00NULL\x00" + k
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	out := NewFrame()
	for _, name := range byCols {
		col := f.MustColumn(name)
		vals := make([]any, len(order))
		valid := make([]bool, len(order))
		for gi, k := range order {
			rows := groups[k]
			vals[gi] = col.Values[rows[0]]
			valid[gi] = col.Valid[rows[0]]
		}
		if err := out.addSeries(&Series{Name: name, DType: col.DType, ElemType: col.ElemType, Values: vals, Valid: valid}); err != nil {
			return nil, err
		}
	}

	for _, agg := range aggs {
		s, err := computeAgg(f, groups, order, agg)
		if err != nil {
			return nil, err
		}
		if err := out.addSeries(s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func computeAgg(f *Frame, groups map[string][]int, order []string, agg AggSpec) (*Series, error) {
	var input *Series
	if agg.Column != "" {
		c, ok := f.Column(agg.Column)
		if !ok {
			return nil, fmt.Errorf("frame: groupby: no such column %q", agg.Column)
		}
		input = c
	}

	values := make([]any, len(order))
	valid := make([]bool, len(order))
	dtype := DTypeFloat64
	if agg.Kind == AggCount {
		dtype = DTypeInt64
	}
	if agg.Kind == AggGroupConcat || agg.Kind == AggSample {
		dtype = DTypeString
	}

	for gi, k := range order {
		rows := groups[k]
		switch agg.Kind {
		case AggCount:
			if agg.Column == "" {
				values[gi] = int64(len(rows))
				valid[gi] = true
				continue
			}
			seen := map[string]bool{}
			n := int64(0)
			for _, r := range rows {
				v, ok := input.StringAt(r)
				if !ok {
					continue
				}
				if agg.Distinct {
					if seen[v] {
						continue
					}
					seen[v] = true
				}
				n++
			}
			values[gi] = n
			valid[gi] = true
		case AggSum, AggMin, AggMax, AggAvg:
			var sum, cur float64
			var count int
			have := false
			for _, r := range rows {
				v, ok := input.StringAt(r)
				if !ok {
					continue
				}
				f64, err := strconv.ParseFloat(v, 64)
				if err != nil {
					continue
				}
				count++
				sum += f64
				if !have {
					cur = f64
					have = true
				} else if agg.Kind == AggMin && f64 < cur {
					cur = f64
				} else if agg.Kind == AggMax && f64 > cur {
					cur = f64
				}
			}
			if !have {
				continue
			}
			switch agg.Kind {
			case AggSum:
				values[gi] = sum
			case AggAvg:
				values[gi] = sum / float64(count)
			default:
				values[gi] = cur
			}
			valid[gi] = true
		case AggSample:
			if len(rows) == 0 {
				continue
			}
			v, ok := input.StringAt(rows[0])
			if !ok {
				continue
			}
			values[gi] = v
			valid[gi] = true
		case AggGroupConcat:
			sep := agg.Sep
			if sep == "" {
				sep = " "
			}
			var parts []string
			for _, r := range rows {
				if v, ok := input.StringAt(r); ok {
					parts = append(parts, v)
				}
			}
			values[gi] = strings.Join(parts, sep)
			valid[gi] = true
		}
	}
	return &Series{Name: agg.Output, DType: dtype, Values: values, Valid: valid}, nil
}
