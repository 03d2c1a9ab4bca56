package column

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magbak/stottr-go/internal/astmodel"
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

func TestValidateMissingRequiredColumn(t *testing.T) {
	sig := astmodel.Signature{Parameters: []astmodel.Parameter{{Name: "name"}}}
	table, err := frame.FrameFromSeries(strCol("other", "x"))
	require.NoError(t, err)

	_, err = Validate(sig, table, Options{})
	require.ErrorAs(t, err, new(*MissingParameterColumnError))
}

func TestValidateIrrelevantColumn(t *testing.T) {
	sig := astmodel.Signature{Parameters: []astmodel.Parameter{{Name: "name"}}}
	table, err := frame.FrameFromSeries(strCol("name", "x"), strCol("extra", "y"))
	require.NoError(t, err)

	_, err = Validate(sig, table, Options{})
	require.ErrorAs(t, err, new(*ContainsIrrelevantColumnsError))
}

func TestValidateInfersIRIFromLexicalShape(t *testing.T) {
	sig := astmodel.Signature{Parameters: []astmodel.Parameter{{Name: "p"}}}
	table, err := frame.FrameFromSeries(strCol("p", "http://example.org/a"))
	require.NoError(t, err)

	cols, err := Validate(sig, table, Options{})
	require.NoError(t, err)
	require.True(t, cols["p"].Kind.Equal(rdfterm.IRI()))
}

func TestValidateInfersStringLiteral(t *testing.T) {
	sig := astmodel.Signature{Parameters: []astmodel.Parameter{{Name: "p"}}}
	table, err := frame.FrameFromSeries(strCol("p", "hello"))
	require.NoError(t, err)

	cols, err := Validate(sig, table, Options{})
	require.NoError(t, err)
	require.True(t, cols["p"].Kind.IsStringLiteral())
}

func TestValidateExplicitTypeMismatch(t *testing.T) {
	anyURI := rdfterm.Basic(rdfterm.XSDAnyURI)
	sig := astmodel.Signature{Parameters: []astmodel.Parameter{{Name: "p", Type: &anyURI}}}
	col := frame.NewSeries("p", frame.DTypeInt64, 1)
	col.Values[0], col.Valid[0] = int64(1), true
	table, err := frame.FrameFromSeries(col)
	require.NoError(t, err)

	_, err = Validate(sig, table, Options{})
	require.ErrorAs(t, err, new(*ColumnDataTypeMismatchError))
}

func TestValidateNonOptionalColumnHasNull(t *testing.T) {
	sig := astmodel.Signature{Parameters: []astmodel.Parameter{{Name: "p"}}}
	table, err := frame.FrameFromSeries(strCol("p", ""))
	require.NoError(t, err)

	_, err = Validate(sig, table, Options{})
	require.ErrorAs(t, err, new(*NonOptionalColumnHasNullError))
}

func TestValidateOptionalColumnAllowsNull(t *testing.T) {
	sig := astmodel.Signature{Parameters: []astmodel.Parameter{{Name: "p", Optional: true}}}
	table, err := frame.FrameFromSeries(strCol("p", ""))
	require.NoError(t, err)

	cols, err := Validate(sig, table, Options{})
	require.NoError(t, err)
	require.Contains(t, cols, "p")
}

func TestValidateNonBlankRejectsBlankNode(t *testing.T) {
	sig := astmodel.Signature{Parameters: []astmodel.Parameter{{Name: "p", NonBlank: true}}}
	table, err := frame.FrameFromSeries(strCol("p", "_:b1"))
	require.NoError(t, err)

	_, err = Validate(sig, table, Options{})
	require.ErrorAs(t, err, new(*NonBlankColumnHasBlankNodeError))
}

func TestValidateLanguageTag(t *testing.T) {
	sig := astmodel.Signature{Parameters: []astmodel.Parameter{{Name: "label"}}}
	table, err := frame.FrameFromSeries(strCol("label", "hello"))
	require.NoError(t, err)

	cols, err := Validate(sig, table, Options{LanguageTags: map[string]string{"label": "en"}})
	require.NoError(t, err)
	require.NotNil(t, cols["label"].Language)
	require.Equal(t, "en", *cols["label"].Language)
}

func TestValidateInvalidLanguageTag(t *testing.T) {
	sig := astmodel.Signature{Parameters: []astmodel.Parameter{{Name: "label"}}}
	table, err := frame.FrameFromSeries(strCol("label", "hello"))
	require.NoError(t, err)

	_, err = Validate(sig, table, Options{LanguageTags: map[string]string{"label": "not a tag!!"}})
	require.Error(t, err)
}
