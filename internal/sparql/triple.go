package sparql

import (
	"github.com/magbak/stottr-go/internal/algebra"
	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/pathmat"
	"github.com/magbak/stottr-go/internal/rdfterm"
)

// evalBGP evaluates a basic graph pattern: triple patterns left-to-
// right, threading the solution mapping through.
func evalBGP(ds Dataset, triples []algebra.TriplePattern, pathBound int) (SolutionMappings, error) {
	var acc *SolutionMappings
	for _, tp := range triples {
		sm, err := evalTriplePattern(ds, tp, pathBound)
		if err != nil {
			return SolutionMappings{}, err
		}
		if acc == nil {
			acc = &sm
			continue
		}
		joined, err := joinMappings(*acc, sm)
		if err != nil {
			return SolutionMappings{}, err
		}
		acc = &joined
	}
	if acc == nil {
		return newMappings(frame.NewFrame(), map[string]bool{}, map[string]rdfterm.NodeKind{}), nil
	}
	return *acc, nil
}

// evalTriplePattern evaluates a single triple pattern against the
// dataset.
func evalTriplePattern(ds Dataset, tp algebra.TriplePattern, pathBound int) (SolutionMappings, error) {
	var f *frame.Frame
	var objKind rdfterm.NodeKind

	if tp.Path != nil {
		var err error
		f, err = pathmat.Evaluate(ds, *tp.Path, pathBound)
		if err != nil {
			return SolutionMappings{}, err
		}
		objKind = rdfterm.IRI()
	} else {
		if tp.Verb.IsVariable() {
			return SolutionMappings{}, &UnboundPredicateError{Pattern: tp.Verb.Variable}
		}
		var err error
		f, objKind, err = ds.Lookup(*tp.Verb.IRI)
		if err != nil {
			return SolutionMappings{}, &MultipleDatatypesError{Predicate: *tp.Verb.IRI, Err: err}
		}
	}
	f = ensureSubjectObjectColumns(f)

	columns := map[string]bool{}
	datatypes := map[string]rdfterm.NodeKind{}

	var err error
	f, err = bindTerm(f, "subject", tp.Subject, rdfterm.IRI(), columns, datatypes)
	if err != nil {
		return SolutionMappings{}, err
	}
	f, err = bindTerm(f, "object", tp.Object, objKind, columns, datatypes)
	if err != nil {
		return SolutionMappings{}, err
	}

	return newMappings(f, columns, datatypes), nil
}

// bindTerm implements the subject/object slot contract: a variable
// renames the column and records its datatype; a bound IRI or literal
// filters on equality and drops the column.
func bindTerm(f *frame.Frame, col string, term algebra.TermPattern, kind rdfterm.NodeKind, columns map[string]bool, datatypes map[string]rdfterm.NodeKind) (*frame.Frame, error) {
	if term.IsVariable() {
		renamed, err := f.Rename(col, term.Variable)
		if err != nil {
			return nil, err
		}
		columns[term.Variable] = true
		datatypes[term.Variable] = kind
		return renamed, nil
	}

	match := termLexical(term)
	s := f.MustColumn(col)
	mask := make([]bool, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		v, ok := s.StringAt(i)
		mask[i] = ok && v == match
	}
	return f.FilterMask(mask).DropColumns(col), nil
}

// ensureSubjectObjectColumns guards against store.Lookup's "no
// partition for this predicate" result, a truly empty Frame with no
// columns at all, so bindTerm's column access never panics.
func ensureSubjectObjectColumns(f *frame.Frame) *frame.Frame {
	if f.HasColumn("subject") && f.HasColumn("object") {
		return f
	}
	out, err := frame.FrameFromSeries(
		frame.NewSeries("subject", frame.DTypeString, 0),
		frame.NewSeries("object", frame.DTypeString, 0),
	)
	if err != nil {
		return f
	}
	return out
}

func termLexical(term algebra.TermPattern) string {
	if term.IRI != nil {
		return *term.IRI
	}
	if term.Literal != nil {
		return term.Literal.Lexical
	}
	return ""
}
