// Package column implements the column validator/inferrer: checking
// an input table against a template signature and producing a
// PrimitiveColumn descriptor per parameter column.
package column

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"github.com/magbak/stottr-go/internal/astmodel"
	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/rdfterm"
)

// PrimitiveColumn is the per-column descriptor (RDF node kind, and an
// optional language tag for string literal columns) that validation
// attaches to each parameter column.
type PrimitiveColumn struct {
	Kind     rdfterm.NodeKind
	Language *string
}

// Options carries per-call validation knobs, currently just the
// language tags to attach to string literal columns.
type Options struct {
	LanguageTags map[string]string // column name -> BCP-47 tag
}

// Validate checks an input table against a template's signature:
// every required parameter column is present, no column is left over
// that the signature doesn't name, and each present column's RDF node
// kind is resolved (from an explicit PType or inferred from storage),
// with non-blank and non-null constraints enforced along the way. It
// returns the primitive column descriptor per parameter column; the
// input table itself is not modified or returned, since the Frame's
// DType is already the storage shape the expander assumes.
func Validate(sig astmodel.Signature, table *frame.Frame, opts Options) (map[string]PrimitiveColumn, error) {
	paramNames := map[string]astmodel.Parameter{}
	for _, p := range sig.Parameters {
		paramNames[p.Name] = p
	}

	// Step 1: required columns present.
	for _, p := range sig.Parameters {
		if p.Optional {
			continue
		}
		if !table.HasColumn(p.Name) {
			return nil, &MissingParameterColumnError{Column: p.Name}
		}
	}

	// Step 2: no extra columns.
	var irrelevant []string
	for _, name := range table.ColumnNames() {
		if _, ok := paramNames[name]; !ok {
			irrelevant = append(irrelevant, name)
		}
	}
	if len(irrelevant) > 0 {
		return nil, &ContainsIrrelevantColumnsError{Columns: irrelevant}
	}

	out := map[string]PrimitiveColumn{}
	for _, p := range sig.Parameters {
		if !table.HasColumn(p.Name) {
			continue // optional and absent: nothing to validate
		}
		s := table.MustColumn(p.Name)

		kind, err := resolveKind(p, s)
		if err != nil {
			return nil, err
		}

		if p.NonBlank {
			if err := checkNonBlank(p.Name, s); err != nil {
				return nil, err
			}
		}
		if !p.Optional {
			if err := checkNoNulls(p.Name, s); err != nil {
				return nil, err
			}
		}

		var lang *string
		if kind.IsStringLiteral() {
			if tag, ok := opts.LanguageTags[p.Name]; ok {
				if _, err := language.Parse(tag); err != nil {
					return nil, fmt.Errorf("column %q: invalid BCP-47 language tag %q: %w", p.Name, tag, err)
				}
				t := tag
				lang = &t
			}
		}

		out[p.Name] = PrimitiveColumn{Kind: kind, Language: lang}
	}
	return out, nil
}

func resolveKind(p astmodel.Parameter, s *frame.Series) (rdfterm.NodeKind, error) {
	if p.Type != nil {
		return kindFromPType(*p.Type, s, p.Name)
	}
	kind, ok := inferKind(s)
	if !ok {
		return rdfterm.NodeKind{}, &CouldNotInferStottrDatatypeForColumnError{Column: p.Name}
	}
	return kind, nil
}

// kindFromPType verifies the table column's storage shape is
// compatible with an explicitly declared PType, failing if the
// storage can't hold the declared datatype.
func kindFromPType(pt rdfterm.PType, s *frame.Series, name string) (rdfterm.NodeKind, error) {
	elem := pt
	if pt.Shape != rdfterm.PBasic && pt.Inner != nil {
		elem = *pt.Inner
	}
	switch elem.IRI {
	case rdfterm.XSDAnyURI:
		if s.DType != frame.DTypeString && s.DType != frame.DTypeList {
			return rdfterm.NodeKind{}, &ColumnDataTypeMismatchError{Column: name, Expected: elem.IRI}
		}
		return rdfterm.IRI(), nil
	case rdfterm.BlankIRI:
		return rdfterm.BlankNode(), nil
	case rdfterm.NoneIRI:
		return rdfterm.None(), nil
	default:
		if !storageCompatible(elem.IRI, s.DType) && s.DType != frame.DTypeList {
			return rdfterm.NodeKind{}, &ColumnDataTypeMismatchError{Column: name, Expected: elem.IRI}
		}
		return rdfterm.Literal(elem.IRI), nil
	}
}

func storageCompatible(datatypeIRI string, dtype frame.DType) bool {
	switch dtype {
	case frame.DTypeInt64:
		return strings.HasSuffix(datatypeIRI, "integer") || strings.HasSuffix(datatypeIRI, "int") || strings.HasSuffix(datatypeIRI, "long")
	case frame.DTypeFloat64:
		return strings.HasSuffix(datatypeIRI, "double") || strings.HasSuffix(datatypeIRI, "float") || strings.HasSuffix(datatypeIRI, "decimal")
	case frame.DTypeBool:
		return strings.HasSuffix(datatypeIRI, "boolean")
	default:
		return true // string storage is compatible with any lexical datatype
	}
}

// inferKind infers a column's RDF node kind from its storage when the
// signature declares no PType for it: textual columns are checked for
// IRI syntax lexically and literal otherwise, the numeric/boolean
// DTypes map to their natural XSD datatype, and list-typed storage
// infers its element kind and reports that, since a list column's RDF
// shape is carried by its elements, not the list wrapper itself.
func inferKind(s *frame.Series) (rdfterm.NodeKind, bool) {
	switch s.DType {
	case frame.DTypeString:
		for i := 0; i < s.Len(); i++ {
			v, ok := s.StringAt(i)
			if !ok {
				continue
			}
			if looksLikeIRI(v) {
				return rdfterm.IRI(), true
			}
			return rdfterm.Literal(rdfterm.XSDString), true
		}
		return rdfterm.Literal(rdfterm.XSDString), true
	case frame.DTypeInt64:
		return rdfterm.Literal("http://www.w3.org/2001/XMLSchema#integer"), true
	case frame.DTypeFloat64:
		return rdfterm.Literal("http://www.w3.org/2001/XMLSchema#double"), true
	case frame.DTypeBool:
		return rdfterm.Literal("http://www.w3.org/2001/XMLSchema#boolean"), true
	case frame.DTypeList:
		return inferElementKind(s)
	default:
		return rdfterm.NodeKind{}, false
	}
}

// inferElementKind inspects a list column's elements to infer the
// shared element kind, the same way inferKind does for a scalar
// string column: the first non-null element decides IRI vs literal,
// falling back on the list's declared element DType for non-string
// elements.
func inferElementKind(s *frame.Series) (rdfterm.NodeKind, bool) {
	switch s.ElemType {
	case frame.DTypeString:
		for i := 0; i < s.Len(); i++ {
			items, ok := s.ListAt(i)
			if !ok {
				continue
			}
			for _, item := range items {
				v, ok := item.(string)
				if !ok {
					continue
				}
				if looksLikeIRI(v) {
					return rdfterm.IRI(), true
				}
				return rdfterm.Literal(rdfterm.XSDString), true
			}
		}
		return rdfterm.Literal(rdfterm.XSDString), true
	case frame.DTypeInt64:
		return rdfterm.Literal("http://www.w3.org/2001/XMLSchema#integer"), true
	case frame.DTypeFloat64:
		return rdfterm.Literal("http://www.w3.org/2001/XMLSchema#double"), true
	case frame.DTypeBool:
		return rdfterm.Literal("http://www.w3.org/2001/XMLSchema#boolean"), true
	default:
		return rdfterm.NodeKind{}, false
	}
}

// looksLikeIRI applies a lexical IRI-syntax check. No ecosystem IRI
// validator surfaced anywhere in the retrieved pack, so net/url
// (stdlib) is used directly — see DESIGN.md.
func looksLikeIRI(v string) bool {
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Scheme != ""
}

func checkNonBlank(name string, s *frame.Series) error {
	for i := 0; i < s.Len(); i++ {
		if v, ok := s.StringAt(i); ok && strings.HasPrefix(v, "_:") {
			return &NonBlankColumnHasBlankNodeError{Column: name}
		}
	}
	return nil
}

func checkNoNulls(name string, s *frame.Series) error {
	for i := 0; i < s.Len(); i++ {
		if !s.Valid[i] {
			return &NonOptionalColumnHasNullError{Column: name}
		}
	}
	return nil
}
