package rdfterm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeKindEqual(t *testing.T) {
	require.True(t, IRI().Equal(IRI()))
	require.True(t, Literal(XSDString).Equal(Literal(XSDString)))
	require.False(t, Literal(XSDString).Equal(Literal(XSDAnyURI)))
	require.False(t, IRI().Equal(BlankNode()))
}

func TestNodeKindIsStringLiteral(t *testing.T) {
	require.True(t, Literal(XSDString).IsStringLiteral())
	require.False(t, Literal(XSDAnyURI).IsStringLiteral())
	require.False(t, IRI().IsStringLiteral())
}

func TestPTypeEqual(t *testing.T) {
	require.True(t, Basic(XSDAnyURI).Equal(Basic(XSDAnyURI)))
	require.False(t, Basic(XSDAnyURI).Equal(Basic(XSDString)))

	a := ListOf(Basic(XSDString))
	b := ListOf(Basic(XSDString))
	require.True(t, a.Equal(b))

	c := NonEmptyListOf(Basic(XSDString))
	require.False(t, a.Equal(c))
}

func TestPTypeString(t *testing.T) {
	require.Equal(t, XSDAnyURI, Basic(XSDAnyURI).String())
	require.Equal(t, "List(" + XSDString + ")", ListOf(Basic(XSDString)).String())
}

func TestToGonumTerm(t *testing.T) {
	iri := ConstantLiteral{Kind: KindIRI, Value: "http://example.org/a"}
	term, err := iri.ToGonumTerm()
	require.NoError(t, err)
	require.Equal(t, "<http://example.org/a>", term.Value)

	_, err = (ConstantLiteral{Kind: KindNone}).ToGonumTerm()
	require.Error(t, err)
}
