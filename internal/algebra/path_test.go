package algebra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequiresClosure(t *testing.T) {
	simple := Sequence(NamedNode("a"), NamedNode("b"))
	require.False(t, simple.RequiresClosure())

	nested := Alternative(NamedNode("a"), OneOrMore(NamedNode("b")))
	require.True(t, nested.RequiresClosure())

	reversed := Reverse(ZeroOrMore(NamedNode("c")))
	require.True(t, reversed.RequiresClosure())
}

func TestNamedLeaves(t *testing.T) {
	p := Sequence(NamedNode("a"), Alternative(NamedNode("b"), Reverse(NamedNode("c"))))
	require.ElementsMatch(t, []string{"a", "b", "c"}, p.NamedLeaves())

	require.Empty(t, NegatedPropertySet("x").NamedLeaves())
}
