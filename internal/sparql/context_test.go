package sparql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextPushIsImmutable(t *testing.T) {
	base := Context{"bgp"}
	pushed := base.Push("join")
	require.Equal(t, Context{"bgp"}, base)
	require.Equal(t, Context{"bgp", "join"}, pushed)
}

func TestContextPushIndexed(t *testing.T) {
	c := Context{"union"}.PushIndexed("branch", 2)
	require.Equal(t, Context{"union", "branch(2)"}, c)
}

func TestContextColumnUnique(t *testing.T) {
	a := Context{"join", "left"}.Column("x")
	b := Context{"join", "right"}.Column("x")
	require.NotEqual(t, a, b)
	require.Equal(t, "__join/left/x", a)
	require.Equal(t, "__join/right/x", b)
}

func TestContextColumnRootEmpty(t *testing.T) {
	var c Context
	require.Equal(t, "__x", c.Column("x"))
}
