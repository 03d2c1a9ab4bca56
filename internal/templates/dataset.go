// Package templates implements the TemplateDataset: the loaded
// template catalogue an expansion Mapping clones into its own session,
// plus template name resolution.
package templates

import (
	"strings"

	"github.com/magbak/stottr-go/internal/astmodel"
)

// DefaultPrefix is the well-known namespace ExpandDefault synthesizes
// templates under.
const DefaultPrefix = "http://example.net/ns#"

// TemplateDataset is the catalogue of loaded templates plus the
// prefix map used to resolve abbreviated template names.
type TemplateDataset struct {
	byName    map[string]astmodel.Template
	PrefixMap map[string]string
}

// New builds an empty dataset with the given prefix map (may be nil).
func New(prefixMap map[string]string) *TemplateDataset {
	if prefixMap == nil {
		prefixMap = map[string]string{}
	}
	return &TemplateDataset{byName: map[string]astmodel.Template{}, PrefixMap: prefixMap}
}

// Clone deep-copies the dataset for a new Mapping session.
func (d *TemplateDataset) Clone() *TemplateDataset {
	out := New(nil)
	for k, v := range d.PrefixMap {
		out.PrefixMap[k] = v
	}
	for k, v := range d.byName {
		out.byName[k] = v
	}
	return out
}

// Add registers a template. Two templates sharing a name is rejected.
func (d *TemplateDataset) Add(t astmodel.Template) error {
	name := t.Name()
	if name == "" {
		return &InvalidTemplateNameError{Name: name}
	}
	if _, exists := d.byName[name]; exists {
		return &DuplicateTemplateNameError{Name: name}
	}
	d.byName[name] = t
	return nil
}

// MergePrefixes merges another prefix map into this dataset's, last
// write wins per prefix.
func (d *TemplateDataset) MergePrefixes(other map[string]string) {
	for k, v := range other {
		d.PrefixMap[k] = v
	}
}

// Get looks a template up by its exact, fully-resolved name.
func (d *TemplateDataset) Get(name string) (astmodel.Template, bool) {
	t, ok := d.byName[name]
	return t, ok
}

// Resolve looks up a template name: direct lookup first; on miss,
// split at the first ':' and retry against the prefix map.
func (d *TemplateDataset) Resolve(name string) (astmodel.Template, error) {
	if t, ok := d.Get(name); ok {
		return t, nil
	}
	prefix, rest, found := strings.Cut(name, ":")
	if !found {
		return astmodel.Template{}, &TemplateNotFoundError{Name: name}
	}
	ns, ok := d.PrefixMap[prefix]
	if !ok {
		return astmodel.Template{}, &TemplateNotFoundError{Name: name}
	}
	resolved := ns + rest
	if t, ok := d.Get(resolved); ok {
		return t, nil
	}
	return astmodel.Template{}, &NoTemplateForTemplateNameFromPrefixError{ResolvedName: resolved}
}
