package sparql

import (
	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/rdfterm"
)

// Dataset is the subset of *store.TripleStore the evaluator depends
// on. Satisfied structurally, so internal/sparql never imports
// internal/store.
type Dataset interface {
	Lookup(predicate string) (*frame.Frame, rdfterm.NodeKind, error)
	Predicates() []string
	Deduplicated() bool
	Deduplicate() error
}

// SolutionMappings is the post-order evaluator's per-node result: the
// plan so far, the set of bound variable names, and each bound
// variable's RDF node type.
type SolutionMappings struct {
	Plan      *frame.LazyFrame
	Columns   map[string]bool
	Datatypes map[string]rdfterm.NodeKind
}

func newMappings(f *frame.Frame, columns map[string]bool, datatypes map[string]rdfterm.NodeKind) SolutionMappings {
	return SolutionMappings{Plan: frame.NewLazyFrame(f), Columns: columns, Datatypes: datatypes}
}

func sharedColumns(a, b map[string]bool) []string {
	var out []string
	for c := range a {
		if b[c] {
			out = append(out, c)
		}
	}
	return out
}

func unionColumns(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool, len(a)+len(b))
	for c := range a {
		out[c] = true
	}
	for c := range b {
		out[c] = true
	}
	return out
}

func mergeDatatypes(a, b map[string]rdfterm.NodeKind) (map[string]rdfterm.NodeKind, error) {
	out := make(map[string]rdfterm.NodeKind, len(a)+len(b))
	for v, k := range a {
		out[v] = k
	}
	for v, k := range b {
		if existing, ok := out[v]; ok && !existing.Equal(k) {
			return nil, &DatatypeMismatchError{Variable: v, Left: existing.String(), Right: k.String()}
		}
		out[v] = k
	}
	return out, nil
}
