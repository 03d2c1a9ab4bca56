package expand

import (
	"github.com/magbak/stottr-go/internal/astmodel"
	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/rdfterm"
	"github.com/magbak/stottr-go/internal/templates"
)

// ExpandDefault synthesizes a flat template from the table's shape
// (one primary-key column, N foreign-key columns typed as IRIs, and
// every remaining column producing one `ottr:Triple` pattern instance
// each) and expands it — useful for a table with no template of its
// own, one row per subject and one column per predicate. prefix
// defaults to templates.DefaultPrefix.
func (m *Mapping) ExpandDefault(table *frame.Frame, pkCol string, fkCols []string, prefix string, opts Options) (MappingReport, error) {
	if prefix == "" {
		prefix = templates.DefaultPrefix
	}

	fkSet := map[string]bool{pkCol: true}
	for _, c := range fkCols {
		fkSet[c] = true
	}

	params := []astmodel.Parameter{{Name: pkCol}}
	var pattern []astmodel.Instance
	anyIRI := rdfterm.Basic(rdfterm.XSDAnyURI)

	for _, fk := range fkCols {
		params = append(params, astmodel.Parameter{Name: fk, Type: &anyIRI})
		pattern = append(pattern, tripleInstanceFor(pkCol, prefix+fk, fk))
	}

	for _, name := range table.ColumnNames() {
		if fkSet[name] {
			continue
		}
		params = append(params, astmodel.Parameter{Name: name, Optional: true})
		pattern = append(pattern, tripleInstanceFor(pkCol, prefix+name, name))
	}

	tpl := astmodel.Template{
		Signature: astmodel.Signature{TemplateName: prefix + "DefaultTable", Parameters: params},
		Pattern:   pattern,
	}
	return m.expandTable(tpl, table, opts)
}

// tripleInstanceFor builds an `ottr:Triple(subjectVar, <predicateIRI>, objectVar)` instance.
func tripleInstanceFor(subjectVar, predicateIRI, objectVar string) astmodel.Instance {
	return astmodel.Instance{
		TemplateName: astmodel.OTTRTriple,
		Arguments: []astmodel.Argument{
			{Term: astmodel.Variable(subjectVar)},
			{Term: astmodel.Constant(rdfterm.ConstIRI(predicateIRI))},
			{Term: astmodel.Variable(objectVar)},
		},
	}
}
