package templates

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magbak/stottr-go/internal/astmodel"
)

func TestAddAndGet(t *testing.T) {
	ds := New(nil)
	require.NoError(t, ds.Add(astmodel.Template{Signature: astmodel.Signature{TemplateName: "ex:Foo"}}))

	tpl, ok := ds.Get("ex:Foo")
	require.True(t, ok)
	require.Equal(t, "ex:Foo", tpl.Name())
}

func TestAddDuplicateRejected(t *testing.T) {
	ds := New(nil)
	require.NoError(t, ds.Add(astmodel.Template{Signature: astmodel.Signature{TemplateName: "ex:Foo"}}))
	err := ds.Add(astmodel.Template{Signature: astmodel.Signature{TemplateName: "ex:Foo"}})
	require.ErrorAs(t, err, new(*DuplicateTemplateNameError))
}

func TestAddEmptyNameRejected(t *testing.T) {
	ds := New(nil)
	err := ds.Add(astmodel.Template{})
	require.ErrorAs(t, err, new(*InvalidTemplateNameError))
}

func TestResolveDirectHit(t *testing.T) {
	ds := New(nil)
	require.NoError(t, ds.Add(astmodel.Template{Signature: astmodel.Signature{TemplateName: "http://example.org/Foo"}}))

	tpl, err := ds.Resolve("http://example.org/Foo")
	require.NoError(t, err)
	require.Equal(t, "http://example.org/Foo", tpl.Name())
}

func TestResolveViaPrefix(t *testing.T) {
	ds := New(map[string]string{"ex": "http://example.org/"})
	require.NoError(t, ds.Add(astmodel.Template{Signature: astmodel.Signature{TemplateName: "http://example.org/Foo"}}))

	tpl, err := ds.Resolve("ex:Foo")
	require.NoError(t, err)
	require.Equal(t, "http://example.org/Foo", tpl.Name())
}

func TestResolveUnknownPrefix(t *testing.T) {
	ds := New(nil)
	_, err := ds.Resolve("ex:Foo")
	require.ErrorAs(t, err, new(*TemplateNotFoundError))
}

func TestResolveKnownPrefixNoTemplate(t *testing.T) {
	ds := New(map[string]string{"ex": "http://example.org/"})
	_, err := ds.Resolve("ex:Foo")
	require.ErrorAs(t, err, new(*NoTemplateForTemplateNameFromPrefixError))
}

func TestCloneIsIndependent(t *testing.T) {
	ds := New(map[string]string{"ex": "http://example.org/"})
	require.NoError(t, ds.Add(astmodel.Template{Signature: astmodel.Signature{TemplateName: "ex:Foo"}}))

	clone := ds.Clone()
	require.NoError(t, clone.Add(astmodel.Template{Signature: astmodel.Signature{TemplateName: "ex:Bar"}}))

	_, ok := ds.Get("ex:Bar")
	require.False(t, ok, "adding to the clone must not affect the original")
}

func TestMergePrefixesLastWriteWins(t *testing.T) {
	ds := New(map[string]string{"ex": "http://a/"})
	ds.MergePrefixes(map[string]string{"ex": "http://b/"})
	require.Equal(t, "http://b/", ds.PrefixMap["ex"])
}
