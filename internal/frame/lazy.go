package frame

import "fmt"

// op is one deferred step in a LazyFrame's plan.
type op func(*Frame) (*Frame, error)

// LazyFrame is a deferred columnar computation: a root Frame plus an
// ordered list of ops that only run when Collect is called. Operations
// compose a plan that materializes only at emission boundaries (triple
// insertion, query result).
type LazyFrame struct {
	root *Frame
	ops  []op
}

// NewLazyFrame wraps an already-materialized Frame as the root of a
// new plan.
func NewLazyFrame(f *Frame) *LazyFrame {
	return &LazyFrame{root: f}
}

func (lf *LazyFrame) push(o op) *LazyFrame {
	next := &LazyFrame{root: lf.root, ops: make([]op, len(lf.ops), len(lf.ops)+1)}
	copy(next.ops, lf.ops)
	next.ops = append(next.ops, o)
	return next
}

// Collect runs every deferred op in order and returns the resulting Frame.
func (lf *LazyFrame) Collect() (*Frame, error) {
	cur := lf.root
	for i, o := range lf.ops {
		var err error
		cur, err = o(cur)
		if err != nil {
			return nil, fmt.Errorf("frame: op %d: %w", i, err)
		}
	}
	return cur, nil
}

// Select projects the plan down to exactly the named columns.
func (lf *LazyFrame) Select(names ...string) *LazyFrame {
	return lf.push(func(f *Frame) (*Frame, error) { return f.Select(names...) })
}

// Rename renames a single column.
func (lf *LazyFrame) Rename(from, to string) *LazyFrame {
	return lf.push(func(f *Frame) (*Frame, error) { return f.Rename(from, to) })
}

// DropColumns drops the named columns if present.
func (lf *LazyFrame) DropColumns(names ...string) *LazyFrame {
	return lf.push(func(f *Frame) (*Frame, error) { return f.DropColumns(names...), nil })
}

// WithColumn adds or replaces a column. build receives the frame as
// it stands at that point in the plan so computed columns can read
// sibling columns.
func (lf *LazyFrame) WithColumn(name string, build func(*Frame) (*Series, error)) *LazyFrame {
	return lf.push(func(f *Frame) (*Frame, error) {
		s, err := build(f)
		if err != nil {
			return nil, err
		}
		s.Name = name
		return f.WithColumn(s), nil
	})
}

// Filter keeps rows where predicate returns true.
func (lf *LazyFrame) Filter(predicate func(*Frame) ([]bool, error)) *LazyFrame {
	return lf.push(func(f *Frame) (*Frame, error) {
		mask, err := predicate(f)
		if err != nil {
			return nil, err
		}
		return f.FilterMask(mask), nil
	})
}

// Apply appends an arbitrary frame-to-frame step, used by callers
// (store, sparql, pathmat) that need operations not otherwise exposed
// here (explode, join, groupBy — see ops.go).
func (lf *LazyFrame) Apply(o func(*Frame) (*Frame, error)) *LazyFrame {
	return lf.push(o)
}
