package pathmat

import (
	"github.com/magbak/stottr-go/internal/algebra"
	"github.com/magbak/stottr-go/internal/frame"
)

// evaluateDataframe is the non-closure fallback: direct joins for
// paths that never need a fixed point at all.
func evaluateDataframe(src LeafSource, path algebra.PropertyPath) (*frame.Frame, error) {
	switch path.Kind {
	case algebra.PathNamedNode:
		f, _, err := src.Lookup(path.IRI)
		if err != nil {
			return nil, err
		}
		if f == nil || f.NumRows() == 0 {
			return emptyPairs(), nil
		}
		return f.Select("subject", "object")

	case algebra.PathReverse:
		inner, err := evaluateDataframe(src, *path.Left)
		if err != nil {
			return nil, err
		}
		newSubj := inner.MustColumn("object").Rename("subject")
		newObj := inner.MustColumn("subject").Rename("object")
		out, err := frame.FrameFromSeries(newSubj, newObj)
		if err != nil {
			return nil, err
		}
		return out, nil

	case algebra.PathSequence:
		left, err := evaluateDataframe(src, *path.Left)
		if err != nil {
			return nil, err
		}
		right, err := evaluateDataframe(src, *path.Right)
		if err != nil {
			return nil, err
		}
		leftMid, err := left.Rename("object", "__mid")
		if err != nil {
			return nil, err
		}
		rightMid, err := right.Rename("subject", "__mid")
		if err != nil {
			return nil, err
		}
		joined, err := frame.Join(leftMid, rightMid, []string{"__mid"}, frame.JoinInner)
		if err != nil {
			return nil, err
		}
		return joined.Select("subject", "object")

	case algebra.PathAlternative:
		left, err := evaluateDataframe(src, *path.Left)
		if err != nil {
			return nil, err
		}
		right, err := evaluateDataframe(src, *path.Right)
		if err != nil {
			return nil, err
		}
		return frame.Concat(left, right)

	case algebra.PathZeroOrOne:
		inner, err := evaluateDataframe(src, *path.Left)
		if err != nil {
			return nil, err
		}
		identity := identityPairsFrom(inner)
		return frame.Concat(inner, identity)

	case algebra.PathNegatedPropertySet:
		excluded := excludedSet(path.Excluded)
		acc := emptyPairs()
		for _, p := range src.Predicates() {
			if excluded[p] {
				continue
			}
			f, _, err := src.Lookup(p)
			if err != nil {
				return nil, err
			}
			if f == nil || f.NumRows() == 0 {
				continue
			}
			sel, err := f.Select("subject", "object")
			if err != nil {
				return nil, err
			}
			acc, err = frame.Concat(acc, sel)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil

	case algebra.PathZeroOrMore, algebra.PathOneOrMore:
		// Unreachable: RequiresClosure() routes these to Evaluate's
		// matrix path before evaluateDataframe is ever called.
		return nil, &UnsupportedPathError{Kind: int(path.Kind)}

	default:
		return nil, &UnsupportedPathError{Kind: int(path.Kind)}
	}
}

func emptyPairs() *frame.Frame {
	f, _ := frame.FrameFromSeries(
		frame.NewSeries("subject", frame.DTypeString, 0),
		frame.NewSeries("object", frame.DTypeString, 0),
	)
	return f
}

// identityPairsFrom builds (v, v) rows for every node appearing as a
// subject or object of inner, the `ZeroOrOne(p) = p ∨ I` restriction to
// the domain actually touched by p.
func identityPairsFrom(inner *frame.Frame) *frame.Frame {
	seen := map[string]struct{}{}
	var ordered []string
	collect := func(col string) {
		s, ok := inner.Column(col)
		if !ok {
			return
		}
		for i := 0; i < s.Len(); i++ {
			v, ok := s.StringAt(i)
			if !ok {
				continue
			}
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				ordered = append(ordered, v)
			}
		}
	}
	collect("subject")
	collect("object")

	subj := frame.NewSeries("subject", frame.DTypeString, len(ordered))
	obj := frame.NewSeries("object", frame.DTypeString, len(ordered))
	for i, v := range ordered {
		subj.SetString(i, v)
		obj.SetString(i, v)
	}
	out, err := frame.FrameFromSeries(subj, obj)
	if err != nil {
		return emptyPairs()
	}
	return out
}
