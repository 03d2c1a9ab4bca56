package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func listSeries(name string, lists [][]any) *Series {
	s := NewSeries(name, DTypeList, len(lists))
	s.ElemType = DTypeString
	for i, l := range lists {
		if l == nil {
			s.SetNull(i)
			continue
		}
		s.SetList(i, l)
	}
	return s
}

func TestExplode(t *testing.T) {
	f, err := FrameFromSeries(
		strSeries("s", "a", "b"),
		listSeries("o", [][]any{{"x", "y"}, nil}),
	)
	require.NoError(t, err)

	out, err := Explode(f, "o")
	require.NoError(t, err)
	require.Equal(t, 3, out.NumRows())

	sCol := out.MustColumn("s")
	oCol := out.MustColumn("o")
	s0, _ := sCol.StringAt(0)
	o0, _ := oCol.StringAt(0)
	require.Equal(t, "a", s0)
	require.Equal(t, "x", o0)

	s2, _ := sCol.StringAt(2)
	require.Equal(t, "b", s2)
	_, ok := oCol.StringAt(2)
	require.False(t, ok, "null list explodes to one null row")
}

func TestZipExplodeMin(t *testing.T) {
	f, err := FrameFromSeries(
		strSeries("s", "a"),
		listSeries("x", [][]any{{"1", "2", "3"}}),
		listSeries("y", [][]any{{"p", "q"}}),
	)
	require.NoError(t, err)

	out, err := ZipExplode(f, []string{"x", "y"}, false)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())
}

func TestZipExplodeMaxPads(t *testing.T) {
	f, err := FrameFromSeries(
		strSeries("s", "a"),
		listSeries("x", [][]any{{"1", "2", "3"}}),
		listSeries("y", [][]any{{"p", "q"}}),
	)
	require.NoError(t, err)

	out, err := ZipExplode(f, []string{"x", "y"}, true)
	require.NoError(t, err)
	require.Equal(t, 3, out.NumRows())
	_, ok := out.MustColumn("y").StringAt(2)
	require.False(t, ok, "exhausted column pads with null")
}

func TestJoinInner(t *testing.T) {
	left, err := FrameFromSeries(strSeries("k", "a", "b"), strSeries("l", "1", "2"))
	require.NoError(t, err)
	right, err := FrameFromSeries(strSeries("k", "a", "c"), strSeries("r", "x", "y"))
	require.NoError(t, err)

	out, err := Join(left, right, []string{"k"}, JoinInner)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())
	k, _ := out.MustColumn("k").StringAt(0)
	r, _ := out.MustColumn("r").StringAt(0)
	require.Equal(t, "a", k)
	require.Equal(t, "x", r)
}

func TestJoinLeftOuterFillsNull(t *testing.T) {
	left, err := FrameFromSeries(strSeries("k", "a", "b"))
	require.NoError(t, err)
	right, err := FrameFromSeries(strSeries("k", "a"), strSeries("r", "x"))
	require.NoError(t, err)

	out, err := Join(left, right, []string{"k"}, JoinLeftOuter)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())
	_, ok := out.MustColumn("r").StringAt(1)
	require.False(t, ok)
}

func TestJoinCross(t *testing.T) {
	left, err := FrameFromSeries(strSeries("a", "1", "2"))
	require.NoError(t, err)
	right, err := FrameFromSeries(strSeries("b", "x", "y"))
	require.NoError(t, err)

	out, err := Join(left, right, nil, JoinCross)
	require.NoError(t, err)
	require.Equal(t, 4, out.NumRows())
}

func TestUniqueKeepFirst(t *testing.T) {
	f, err := FrameFromSeries(strSeries("a", "1", "1", "2"))
	require.NoError(t, err)

	out, err := UniqueKeepFirst(f, nil)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())
}

func TestConcatFillsMissingWithNull(t *testing.T) {
	left, err := FrameFromSeries(strSeries("a", "1"))
	require.NoError(t, err)
	right, err := FrameFromSeries(strSeries("b", "2"))
	require.NoError(t, err)

	out, err := Concat(left, right)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())
	_, ok := out.MustColumn("a").StringAt(1)
	require.False(t, ok)
	_, ok = out.MustColumn("b").StringAt(0)
	require.False(t, ok)
}

func TestSortAscendingNullsLast(t *testing.T) {
	s := strSeries("a", "b", "a", "")
	s.SetNull(2)
	f, err := FrameFromSeries(s)
	require.NoError(t, err)

	out, err := Sort(f, []SortKey{{Column: "a"}})
	require.NoError(t, err)
	v0, _ := out.MustColumn("a").StringAt(0)
	v1, _ := out.MustColumn("a").StringAt(1)
	require.Equal(t, "a", v0)
	require.Equal(t, "b", v1)
	_, ok := out.MustColumn("a").StringAt(2)
	require.False(t, ok)
}
