package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupByCount(t *testing.T) {
	f, err := FrameFromSeries(strSeries("t", "person", "person", "org"))
	require.NoError(t, err)

	out, err := GroupBy(f, []string{"t"}, []AggSpec{{Output: "c", Kind: AggCount}})
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())

	counts := map[string]int64{}
	tCol, cCol := out.MustColumn("t"), out.MustColumn("c")
	for i := 0; i < out.NumRows(); i++ {
		tv, _ := tCol.StringAt(i)
		counts[tv] = cCol.Values[i].(int64)
	}
	require.Equal(t, int64(2), counts["person"])
	require.Equal(t, int64(1), counts["org"])
}

func TestGroupBySumAvg(t *testing.T) {
	age := strSeries("age", "10", "20", "30")
	t2 := strSeries("g", "a", "a", "b")
	f, err := FrameFromSeries(t2, age)
	require.NoError(t, err)

	out, err := GroupBy(f, []string{"g"}, []AggSpec{
		{Output: "sum", Kind: AggSum, Column: "age"},
		{Output: "avg", Kind: AggAvg, Column: "age"},
	})
	require.NoError(t, err)

	gCol, sumCol, avgCol := out.MustColumn("g"), out.MustColumn("sum"), out.MustColumn("avg")
	for i := 0; i < out.NumRows(); i++ {
		gv, _ := gCol.StringAt(i)
		if gv == "a" {
			require.Equal(t, 30.0, sumCol.Values[i])
			require.Equal(t, 15.0, avgCol.Values[i])
		}
	}
}

func TestGroupConcat(t *testing.T) {
	f, err := FrameFromSeries(strSeries("g", "a", "a"), strSeries("v", "x", "y"))
	require.NoError(t, err)

	out, err := GroupBy(f, []string{"g"}, []AggSpec{{Output: "c", Kind: AggGroupConcat, Column: "v", Sep: ","}})
	require.NoError(t, err)
	v, _ := out.MustColumn("c").StringAt(0)
	require.Equal(t, "x,y", v)
}

func TestGroupByDistinctCount(t *testing.T) {
	f, err := FrameFromSeries(strSeries("g", "a", "a", "a"), strSeries("v", "x", "x", "y"))
	require.NoError(t, err)

	out, err := GroupBy(f, []string{"g"}, []AggSpec{{Output: "c", Kind: AggCount, Column: "v", Distinct: true}})
	require.NoError(t, err)
	require.Equal(t, int64(2), out.MustColumn("c").Values[0])
}
