package astmodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magbak/stottr-go/internal/rdfterm"
)

func TestSignatureParameterNames(t *testing.T) {
	sig := Signature{Parameters: []Parameter{{Name: "a"}, {Name: "b"}}}
	require.Equal(t, []string{"a", "b"}, sig.ParameterNames())
}

func TestSignatureParameterLookup(t *testing.T) {
	sig := Signature{Parameters: []Parameter{{Name: "a"}}}
	p, ok := sig.Parameter("a")
	require.True(t, ok)
	require.Equal(t, "a", p.Name)

	_, ok = sig.Parameter("missing")
	require.False(t, ok)
}

func TestStottrTermVariants(t *testing.T) {
	v := Variable("x")
	require.True(t, v.IsVariable())
	require.False(t, v.IsConstant())

	c := Constant(rdfterm.ConstIRI("http://example.org/a"))
	require.True(t, c.IsConstant())
	require.False(t, c.IsVariable())

	l := StottrTerm{List: []StottrTerm{v, c}}
	require.True(t, l.IsList())
}

func TestTemplateName(t *testing.T) {
	tpl := Template{Signature: Signature{TemplateName: "ex:Foo"}}
	require.Equal(t, "ex:Foo", tpl.Name())
}
