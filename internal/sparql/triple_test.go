package sparql

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magbak/stottr-go/internal/algebra"
)

func TestEvalTriplePatternBindsVariables(t *testing.T) {
	ds := newFakeDataset(map[string][][2]string{
		"http://example.org/knows": {{"http://example.org/a", "http://example.org/b"}},
	})

	sm, err := evalTriplePattern(ds, algebra.TriplePattern{
		Subject: algebra.Var("s"),
		Verb:    algebra.IRITerm("http://example.org/knows"),
		Object:  algebra.Var("o"),
	}, 0)
	require.NoError(t, err)
	require.True(t, sm.Columns["s"])
	require.True(t, sm.Columns["o"])

	f, err := sm.Plan.Collect()
	require.NoError(t, err)
	require.Equal(t, 1, f.NumRows())
}

func TestEvalTriplePatternFiltersOnConstantSubject(t *testing.T) {
	ds := newFakeDataset(map[string][][2]string{
		"http://example.org/knows": {
			{"http://example.org/a", "http://example.org/b"},
			{"http://example.org/x", "http://example.org/y"},
		},
	})

	sm, err := evalTriplePattern(ds, algebra.TriplePattern{
		Subject: algebra.IRITerm("http://example.org/a"),
		Verb:    algebra.IRITerm("http://example.org/knows"),
		Object:  algebra.Var("o"),
	}, 0)
	require.NoError(t, err)
	require.False(t, sm.Columns["s"])

	f, err := sm.Plan.Collect()
	require.NoError(t, err)
	require.Equal(t, 1, f.NumRows())
	v, ok := f.MustColumn("o").StringAt(0)
	require.True(t, ok)
	require.Equal(t, "http://example.org/b", v)
}

func TestEvalTriplePatternUnboundPredicate(t *testing.T) {
	ds := newFakeDataset(nil)
	_, err := evalTriplePattern(ds, algebra.TriplePattern{
		Subject: algebra.Var("s"),
		Verb:    algebra.Var("p"),
		Object:  algebra.Var("o"),
	}, 0)
	require.ErrorAs(t, err, new(*UnboundPredicateError))
}

func TestEvalBGPJoinsSharedVariables(t *testing.T) {
	ds := newFakeDataset(map[string][][2]string{
		"http://example.org/knows": {{"http://example.org/a", "http://example.org/b"}},
		"http://example.org/name":  {{"http://example.org/b", "Bob"}},
	})

	sm, err := evalBGP(ds, []algebra.TriplePattern{
		{Subject: algebra.Var("s"), Verb: algebra.IRITerm("http://example.org/knows"), Object: algebra.Var("mid")},
		{Subject: algebra.Var("mid"), Verb: algebra.IRITerm("http://example.org/name"), Object: algebra.Var("n")},
	}, 0)
	require.NoError(t, err)

	f, err := sm.Plan.Collect()
	require.NoError(t, err)
	require.Equal(t, 1, f.NumRows())
	v, _ := f.MustColumn("n").StringAt(0)
	require.Equal(t, "Bob", v)
}

func TestEvalBGPEmptyReturnsEmptyMappings(t *testing.T) {
	ds := newFakeDataset(nil)
	sm, err := evalBGP(ds, nil, 0)
	require.NoError(t, err)
	require.Empty(t, sm.Columns)
}

func TestTermLexical(t *testing.T) {
	iri := "http://example.org/a"
	require.Equal(t, iri, termLexical(algebra.TermPattern{IRI: &iri}))
	require.Equal(t, "42", termLexical(algebra.TermPattern{Literal: &algebra.LiteralPattern{Lexical: "42"}}))
	require.Equal(t, "", termLexical(algebra.TermPattern{Variable: "x"}))
}
