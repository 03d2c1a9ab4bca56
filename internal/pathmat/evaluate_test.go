package pathmat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magbak/stottr-go/internal/algebra"
	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/rdfterm"
)

// fakeSource is a minimal LeafSource backed by an in-memory predicate
// map, standing in for *store.TripleStore in these tests.
type fakeSource struct {
	partitions map[string][][2]string
}

func (f *fakeSource) Lookup(predicate string) (*frame.Frame, rdfterm.NodeKind, error) {
	rows := f.partitions[predicate]
	subj := frame.NewSeries("subject", frame.DTypeString, len(rows))
	obj := frame.NewSeries("object", frame.DTypeString, len(rows))
	for i, r := range rows {
		subj.SetString(i, r[0])
		obj.SetString(i, r[1])
	}
	fr, err := frame.FrameFromSeries(subj, obj)
	return fr, rdfterm.IRI(), err
}

func (f *fakeSource) Predicates() []string {
	var out []string
	for p := range f.partitions {
		out = append(out, p)
	}
	return out
}

func pairsOf(f *frame.Frame) map[[2]string]bool {
	out := map[[2]string]bool{}
	subj := f.MustColumn("subject")
	obj := f.MustColumn("object")
	for i := 0; i < f.NumRows(); i++ {
		s, _ := subj.StringAt(i)
		o, _ := obj.StringAt(i)
		out[[2]string{s, o}] = true
	}
	return out
}

func TestEvaluateNamedNode(t *testing.T) {
	src := &fakeSource{partitions: map[string][][2]string{
		"knows": {{"a", "b"}, {"b", "c"}},
	}}

	out, err := Evaluate(src, algebra.NamedNode("knows"), 10)
	require.NoError(t, err)
	require.Equal(t, map[[2]string]bool{{"a", "b"}: true, {"b", "c"}: true}, pairsOf(out))
}

func TestEvaluateSequence(t *testing.T) {
	src := &fakeSource{partitions: map[string][][2]string{
		"parent": {{"a", "b"}},
		"knows":  {{"b", "c"}},
	}}

	path := algebra.Sequence(algebra.NamedNode("parent"), algebra.NamedNode("knows"))
	out, err := Evaluate(src, path, 10)
	require.NoError(t, err)
	require.Equal(t, map[[2]string]bool{{"a", "c"}: true}, pairsOf(out))
}

func TestEvaluateOneOrMore(t *testing.T) {
	src := &fakeSource{partitions: map[string][][2]string{
		"parent": {{"a", "b"}, {"b", "c"}, {"c", "d"}},
	}}

	path := algebra.OneOrMore(algebra.NamedNode("parent"))
	out, err := Evaluate(src, path, 10)
	require.NoError(t, err)
	require.Equal(t, map[[2]string]bool{
		{"a", "b"}: true, {"a", "c"}: true, {"a", "d"}: true,
		{"b", "c"}: true, {"b", "d"}: true,
		{"c", "d"}: true,
	}, pairsOf(out))
}

func TestEvaluateZeroOrMoreIncludesIdentity(t *testing.T) {
	src := &fakeSource{partitions: map[string][][2]string{
		"parent": {{"a", "b"}},
	}}

	path := algebra.ZeroOrMore(algebra.NamedNode("parent"))
	out, err := Evaluate(src, path, 10)
	require.NoError(t, err)
	pairs := pairsOf(out)
	require.True(t, pairs[[2]string{"a", "b"}])
	require.True(t, pairs[[2]string{"a", "a"}])
	require.True(t, pairs[[2]string{"b", "b"}])
}

func TestEvaluateReverseDataframePath(t *testing.T) {
	src := &fakeSource{partitions: map[string][][2]string{
		"parent": {{"a", "b"}},
	}}

	path := algebra.Reverse(algebra.NamedNode("parent"))
	out, err := Evaluate(src, path, 10)
	require.NoError(t, err)
	require.Equal(t, map[[2]string]bool{{"b", "a"}: true}, pairsOf(out))
}

func TestEvaluateNegatedPropertySet(t *testing.T) {
	src := &fakeSource{partitions: map[string][][2]string{
		"knows": {{"a", "b"}},
		"likes": {{"a", "c"}},
	}}

	path := algebra.NegatedPropertySet("knows")
	out, err := Evaluate(src, path, 10)
	require.NoError(t, err)
	require.Equal(t, map[[2]string]bool{{"a", "c"}: true}, pairsOf(out))
}
