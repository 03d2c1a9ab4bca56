package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/rdfterm"
)

func strCol(name string, vals ...string) *frame.Series {
	s := frame.NewSeries(name, frame.DTypeString, len(vals))
	for i, v := range vals {
		if v == "" {
			s.SetNull(i)
			continue
		}
		s.SetString(i, v)
	}
	return s
}

func TestAddTriplesVecStaticVerbAndLookup(t *testing.T) {
	st, err := New("", nil)
	require.NoError(t, err)

	f, err := frame.FrameFromSeries(strCol("subject", "a", "b"), strCol("object", "1", "2"))
	require.NoError(t, err)

	verb := "http://example.org/p"
	err = st.AddTriplesVec([]TriplesToAdd{{Frame: f, ObjectKind: rdfterm.Literal(rdfterm.XSDString), StaticVerb: &verb}}, NewCallUUID())
	require.NoError(t, err)

	got, kind, err := st.Lookup(verb)
	require.NoError(t, err)
	require.Equal(t, 2, got.NumRows())
	require.True(t, kind.IsStringLiteral())
}

func TestAddTriplesVecDropsNullSubjectOrObject(t *testing.T) {
	st, err := New("", nil)
	require.NoError(t, err)

	f, err := frame.FrameFromSeries(strCol("subject", "a", ""), strCol("object", "1", "2"))
	require.NoError(t, err)

	verb := "http://example.org/p"
	err = st.AddTriplesVec([]TriplesToAdd{{Frame: f, ObjectKind: rdfterm.Literal(rdfterm.XSDString), StaticVerb: &verb}}, NewCallUUID())
	require.NoError(t, err)

	got, _, err := st.Lookup(verb)
	require.NoError(t, err)
	require.Equal(t, 1, got.NumRows())
}

func TestAddTriplesVecDynamicVerbPartitionsByPredicate(t *testing.T) {
	st, err := New("", nil)
	require.NoError(t, err)

	f, err := frame.FrameFromSeries(
		strCol("subject", "a", "b"),
		strCol("verb", "http://example.org/p1", "http://example.org/p2"),
		strCol("object", "1", "2"),
	)
	require.NoError(t, err)

	err = st.AddTriplesVec([]TriplesToAdd{{Frame: f, ObjectKind: rdfterm.Literal(rdfterm.XSDString)}}, NewCallUUID())
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"http://example.org/p1", "http://example.org/p2"}, st.Predicates())
}

func TestAddTriplesVecMissingVerbColumn(t *testing.T) {
	st, err := New("", nil)
	require.NoError(t, err)

	f, err := frame.FrameFromSeries(strCol("subject", "a"), strCol("object", "1"))
	require.NoError(t, err)

	err = st.AddTriplesVec([]TriplesToAdd{{Frame: f, ObjectKind: rdfterm.Literal(rdfterm.XSDString)}}, NewCallUUID())
	require.ErrorAs(t, err, new(*MissingVerbColumnError))
}

func TestLookupUnknownPredicateReturnsEmpty(t *testing.T) {
	st, err := New("", nil)
	require.NoError(t, err)

	f, kind, err := st.Lookup("http://example.org/missing")
	require.NoError(t, err)
	require.Equal(t, 0, f.NumRows())
	require.True(t, kind.Equal(rdfterm.None()))
}

func TestDeduplicateCollapsesDuplicateRows(t *testing.T) {
	st, err := New("", nil)
	require.NoError(t, err)

	verb := "http://example.org/p"
	f1, err := frame.FrameFromSeries(strCol("subject", "a"), strCol("object", "1"))
	require.NoError(t, err)
	f2, err := frame.FrameFromSeries(strCol("subject", "a"), strCol("object", "1"))
	require.NoError(t, err)

	require.NoError(t, st.AddTriplesVec([]TriplesToAdd{{Frame: f1, ObjectKind: rdfterm.Literal(rdfterm.XSDString), StaticVerb: &verb}}, NewCallUUID()))
	require.NoError(t, st.AddTriplesVec([]TriplesToAdd{{Frame: f2, ObjectKind: rdfterm.Literal(rdfterm.XSDString), StaticVerb: &verb}}, NewCallUUID()))
	require.False(t, st.Deduplicated())

	require.NoError(t, st.Deduplicate())
	require.True(t, st.Deduplicated())

	got, _, err := st.Lookup(verb)
	require.NoError(t, err)
	require.Equal(t, 1, got.NumRows())
}

func TestObjectPropertyAndLiteralPartitions(t *testing.T) {
	st, err := New("", nil)
	require.NoError(t, err)

	iriVerb := "http://example.org/knows"
	f, err := frame.FrameFromSeries(strCol("subject", "a"), strCol("object", "http://example.org/b"))
	require.NoError(t, err)
	require.NoError(t, st.AddTriplesVec([]TriplesToAdd{{Frame: f, ObjectKind: rdfterm.IRI(), StaticVerb: &iriVerb}}, NewCallUUID()))

	litVerb := "http://example.org/age"
	lf, err := frame.FrameFromSeries(strCol("subject", "a"), strCol("object", "30"))
	require.NoError(t, err)
	require.NoError(t, st.AddTriplesVec([]TriplesToAdd{{Frame: lf, ObjectKind: rdfterm.Literal("http://www.w3.org/2001/XMLSchema#integer"), StaticVerb: &litVerb}}, NewCallUUID()))

	objProps, err := st.ObjectPropertyPartitions()
	require.NoError(t, err)
	require.Contains(t, objProps, iriVerb)

	nonStr, err := st.NonStringLiteralPartitions()
	require.NoError(t, err)
	require.Contains(t, nonStr, litVerb)
	require.Equal(t, "http://www.w3.org/2001/XMLSchema#integer", nonStr[litVerb].Datatype)
}
