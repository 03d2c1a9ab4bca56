package pathmat

import (
	"github.com/magbak/stottr-go/internal/algebra"
	"github.com/magbak/stottr-go/internal/dictionary"
	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/rdfterm"
)

// LeafSource is the subset of *store.TripleStore the evaluator needs:
// a per-predicate partition lookup and the full predicate list (for
// NegatedPropertySet's "every predicate not in the excluded set").
// *store.TripleStore satisfies this structurally.
type LeafSource interface {
	Lookup(predicate string) (*frame.Frame, rdfterm.NodeKind, error)
	Predicates() []string
}

// Evaluate computes a property path's (subject, object) solution as a
// two-column *frame.Frame, choosing the sparse-matrix strategy when the
// path requires transitive closure and the direct dataframe-join
// fallback otherwise.
func Evaluate(src LeafSource, path algebra.PropertyPath, bound int) (*frame.Frame, error) {
	if !path.RequiresClosure() {
		return evaluateDataframe(src, path)
	}

	dict := dictionary.New()
	touched := map[string]bool{}
	collectTouched(path, src.Predicates(), touched)
	for predicate := range touched {
		f, _, err := src.Lookup(predicate)
		if err != nil {
			return nil, err
		}
		populateDict(dict, f)
	}

	n := dict.Len()
	m, err := buildMatrix(src, path, dict, n, bound)
	if err != nil {
		return nil, err
	}
	return matrixToFrame(m, dict), nil
}

func populateDict(dict *dictionary.Dictionary, f *frame.Frame) {
	if f == nil {
		return
	}
	if subj, ok := f.Column("subject"); ok {
		for i := 0; i < subj.Len(); i++ {
			if v, ok := subj.StringAt(i); ok {
				dict.ID(v)
			}
		}
	}
	if obj, ok := f.Column("object"); ok {
		for i := 0; i < obj.Len(); i++ {
			if v, ok := obj.StringAt(i); ok {
				dict.ID(v)
			}
		}
	}
}

func collectTouched(path algebra.PropertyPath, allPredicates []string, touched map[string]bool) {
	switch path.Kind {
	case algebra.PathNamedNode:
		touched[path.IRI] = true
	case algebra.PathReverse, algebra.PathZeroOrMore, algebra.PathOneOrMore, algebra.PathZeroOrOne:
		collectTouched(*path.Left, allPredicates, touched)
	case algebra.PathSequence, algebra.PathAlternative:
		collectTouched(*path.Left, allPredicates, touched)
		collectTouched(*path.Right, allPredicates, touched)
	case algebra.PathNegatedPropertySet:
		excluded := excludedSet(path.Excluded)
		for _, p := range allPredicates {
			if !excluded[p] {
				touched[p] = true
			}
		}
	}
}

func excludedSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

func buildMatrix(src LeafSource, path algebra.PropertyPath, dict *dictionary.Dictionary, n, bound int) (*BoolMatrix, error) {
	switch path.Kind {
	case algebra.PathNamedNode:
		return leafMatrix(src, path.IRI, dict, n)
	case algebra.PathReverse:
		inner, err := buildMatrix(src, *path.Left, dict, n, bound)
		if err != nil {
			return nil, err
		}
		return inner.Transpose(), nil
	case algebra.PathSequence:
		left, err := buildMatrix(src, *path.Left, dict, n, bound)
		if err != nil {
			return nil, err
		}
		right, err := buildMatrix(src, *path.Right, dict, n, bound)
		if err != nil {
			return nil, err
		}
		return left.Mul(right), nil
	case algebra.PathAlternative:
		left, err := buildMatrix(src, *path.Left, dict, n, bound)
		if err != nil {
			return nil, err
		}
		right, err := buildMatrix(src, *path.Right, dict, n, bound)
		if err != nil {
			return nil, err
		}
		return left.Or(right), nil
	case algebra.PathZeroOrMore:
		inner, err := buildMatrix(src, *path.Left, dict, n, bound)
		if err != nil {
			return nil, err
		}
		closure, err := Closure(inner, bound)
		if err != nil {
			return nil, err
		}
		return closure.Or(Identity(n)), nil
	case algebra.PathOneOrMore:
		inner, err := buildMatrix(src, *path.Left, dict, n, bound)
		if err != nil {
			return nil, err
		}
		return Closure(inner, bound)
	case algebra.PathZeroOrOne:
		inner, err := buildMatrix(src, *path.Left, dict, n, bound)
		if err != nil {
			return nil, err
		}
		return inner.Or(Identity(n)), nil
	case algebra.PathNegatedPropertySet:
		excluded := excludedSet(path.Excluded)
		out := NewBoolMatrix(n)
		for _, p := range src.Predicates() {
			if excluded[p] {
				continue
			}
			leaf, err := leafMatrix(src, p, dict, n)
			if err != nil {
				return nil, err
			}
			out = out.Or(leaf)
		}
		return out, nil
	default:
		return nil, &UnsupportedPathError{Kind: int(path.Kind)}
	}
}

func leafMatrix(src LeafSource, predicate string, dict *dictionary.Dictionary, n int) (*BoolMatrix, error) {
	f, _, err := src.Lookup(predicate)
	if err != nil {
		return nil, err
	}
	m := NewBoolMatrix(n)
	if f == nil || f.NumRows() == 0 {
		return m, nil
	}
	subj := f.MustColumn("subject")
	obj := f.MustColumn("object")
	for i := 0; i < f.NumRows(); i++ {
		sv, ok1 := subj.StringAt(i)
		ov, ok2 := obj.StringAt(i)
		if !ok1 || !ok2 {
			continue
		}
		si, ok1 := dict.Lookup(sv)
		oi, ok2 := dict.Lookup(ov)
		if ok1 && ok2 {
			m.Set(si, oi)
		}
	}
	return m, nil
}

func matrixToFrame(m *BoolMatrix, dict *dictionary.Dictionary) *frame.Frame {
	pairs := m.Pairs()
	subj := frame.NewSeries("subject", frame.DTypeString, len(pairs))
	obj := frame.NewSeries("object", frame.DTypeString, len(pairs))
	for i, pr := range pairs {
		sv, _ := dict.Value(pr[0])
		ov, _ := dict.Value(pr[1])
		subj.SetString(i, sv)
		obj.SetString(i, ov)
	}
	f, err := frame.FrameFromSeries(subj, obj)
	if err != nil {
		return frame.NewFrame()
	}
	return f
}
