package export

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportOxrdfTriplesCoversAllKinds(t *testing.T) {
	st := newStoreWithTriples(t)

	stmts, err := ExportOxrdfTriples(st)
	require.NoError(t, err)
	require.Len(t, stmts, 3)

	var predicates []string
	for _, s := range stmts {
		predicates = append(predicates, s.Predicate.Value)
	}
	require.ElementsMatch(t, []string{
		"<http://example.org/knows>",
		"<http://example.org/label>",
		"<http://example.org/age>",
	}, predicates)
}
