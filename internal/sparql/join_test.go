package sparql

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/rdfterm"
)

func strColS(name string, vals ...string) *frame.Series {
	s := frame.NewSeries(name, frame.DTypeString, len(vals))
	for i, v := range vals {
		s.SetString(i, v)
	}
	return s
}

func mappingsFrom(t *testing.T, f *frame.Frame, vars ...string) SolutionMappings {
	t.Helper()
	cols := make(map[string]bool, len(vars))
	types := make(map[string]rdfterm.NodeKind, len(vars))
	for _, v := range vars {
		cols[v] = true
		types[v] = rdfterm.IRI()
	}
	return newMappings(f, cols, types)
}

func TestJoinMappingsInner(t *testing.T) {
	left, err := frame.FrameFromSeries(strColS("x", "a", "b"), strColS("y", "1", "2"))
	require.NoError(t, err)
	right, err := frame.FrameFromSeries(strColS("x", "a", "c"), strColS("z", "p", "q"))
	require.NoError(t, err)

	out, err := joinMappings(mappingsFrom(t, left, "x", "y"), mappingsFrom(t, right, "x", "z"))
	require.NoError(t, err)

	f, err := out.Plan.Collect()
	require.NoError(t, err)
	require.Equal(t, 1, f.NumRows())
	require.True(t, out.Columns["x"])
	require.True(t, out.Columns["y"])
	require.True(t, out.Columns["z"])
}

func TestJoinMappingsCrossWhenNoSharedColumns(t *testing.T) {
	left, err := frame.FrameFromSeries(strColS("x", "a", "b"))
	require.NoError(t, err)
	right, err := frame.FrameFromSeries(strColS("y", "p", "q"))
	require.NoError(t, err)

	out, err := joinMappings(mappingsFrom(t, left, "x"), mappingsFrom(t, right, "y"))
	require.NoError(t, err)

	f, err := out.Plan.Collect()
	require.NoError(t, err)
	require.Equal(t, 4, f.NumRows())
}

func TestLeftJoinMappingsNullsOutRightOnlyWhenUnmatched(t *testing.T) {
	left, err := frame.FrameFromSeries(strColS("x", "a", "b"))
	require.NoError(t, err)
	right, err := frame.FrameFromSeries(strColS("x", "a"), strColS("z", "p"))
	require.NoError(t, err)

	out, err := leftJoinMappings(mappingsFrom(t, left, "x"), mappingsFrom(t, right, "x", "z"), nil, Context{"leftjoin"})
	require.NoError(t, err)

	f, err := out.Plan.Collect()
	require.NoError(t, err)
	require.Equal(t, 2, f.NumRows())
}

func TestUnionMappingsFillsMissingWithNull(t *testing.T) {
	left, err := frame.FrameFromSeries(strColS("x", "a"))
	require.NoError(t, err)
	right, err := frame.FrameFromSeries(strColS("y", "b"))
	require.NoError(t, err)

	out, err := unionMappings(mappingsFrom(t, left, "x"), mappingsFrom(t, right, "y"))
	require.NoError(t, err)

	f, err := out.Plan.Collect()
	require.NoError(t, err)
	require.Equal(t, 2, f.NumRows())
	require.True(t, out.Columns["x"])
	require.True(t, out.Columns["y"])
}

func TestMinusMappingsRemovesMatchingRows(t *testing.T) {
	left, err := frame.FrameFromSeries(strColS("x", "a", "b", "c"))
	require.NoError(t, err)
	right, err := frame.FrameFromSeries(strColS("x", "b"))
	require.NoError(t, err)

	out, err := minusMappings(mappingsFrom(t, left, "x"), mappingsFrom(t, right, "x"))
	require.NoError(t, err)

	f, err := out.Plan.Collect()
	require.NoError(t, err)
	require.Equal(t, 2, f.NumRows())
	vals := make([]string, 0, 2)
	for i := 0; i < f.NumRows(); i++ {
		v, _ := f.MustColumn("x").StringAt(i)
		vals = append(vals, v)
	}
	require.ElementsMatch(t, []string{"a", "c"}, vals)
}

func TestMinusMappingsVacuousWhenNoSharedColumns(t *testing.T) {
	left, err := frame.FrameFromSeries(strColS("x", "a", "b"))
	require.NoError(t, err)
	right, err := frame.FrameFromSeries(strColS("y", "p"))
	require.NoError(t, err)

	out, err := minusMappings(mappingsFrom(t, left, "x"), mappingsFrom(t, right, "y"))
	require.NoError(t, err)

	f, err := out.Plan.Collect()
	require.NoError(t, err)
	require.Equal(t, 2, f.NumRows())
}
