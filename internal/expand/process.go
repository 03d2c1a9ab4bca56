package expand

import (
	"fmt"

	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/rdfterm"
	"github.com/magbak/stottr-go/internal/store"
)

// processResults materializes each collected triple instance,
// validates and extracts its verb and object descriptor, and hands
// every resulting batch to the store in one AddTriplesVec call.
func (m *Mapping) processResults(templateName string, collected []tripleInstance) (MappingReport, error) {
	batch := make([]store.TriplesToAdd, 0, len(collected))

	for _, ti := range collected {
		f, err := ti.Plan.Collect()
		if err != nil {
			return MappingReport{}, err
		}

		var staticVerb *string
		if se, hasStatic := ti.Static["verb"]; hasStatic {
			if se.Term.Literal == nil || se.Term.Literal.Kind != rdfterm.KindIRI {
				return MappingReport{}, &store.InvalidPredicateConstantError{Reason: fmt.Sprintf("static verb must be an IRI constant, got %s", se.PType)}
			}
			v := se.Term.Literal.Value
			staticVerb = &v
		} else if _, hasDynamic := ti.Dynamic["verb"]; !hasDynamic {
			return MappingReport{}, &store.MissingVerbColumnError{}
		}

		if se, ok := ti.Static["subject"]; ok {
			f, err = materializeStatic(f, "subject", se)
			if err != nil {
				return MappingReport{}, err
			}
		}

		var objKind rdfterm.NodeKind
		var lang *string
		if desc, ok := ti.Dynamic["object"]; ok {
			objKind, lang = desc.Kind, desc.Language
		} else if se, ok := ti.Static["object"]; ok {
			broadcast, _, kind, language, err := rdfterm.EncodeConstant(se.Term, nil)
			if err != nil {
				return MappingReport{}, err
			}
			s, err := broadcast(f.NumRows())
			if err != nil {
				return MappingReport{}, err
			}
			s.Name = "object"
			f = f.WithColumn(s)
			objKind, lang = kind, language
		} else {
			return MappingReport{}, fmt.Errorf("expand: triple instance of %s has no object column or constant", templateName)
		}

		batch = append(batch, store.TriplesToAdd{
			Frame:           f,
			ObjectKind:      objKind,
			LanguageTag:     lang,
			StaticVerb:      staticVerb,
			HasUniqueSubset: false,
		})
	}

	callUUID := store.NewCallUUID()
	if err := m.Store.AddTriplesVec(batch, callUUID); err != nil {
		return MappingReport{}, err
	}
	return MappingReport{TemplateName: templateName, TripleBatchesAdded: len(batch)}, nil
}

func materializeStatic(f *frame.Frame, name string, se staticEntry) (*frame.Frame, error) {
	broadcast, _, _, _, err := rdfterm.EncodeConstant(se.Term, nil)
	if err != nil {
		return nil, err
	}
	s, err := broadcast(f.NumRows())
	if err != nil {
		return nil, err
	}
	s.Name = name
	return f.WithColumn(s), nil
}
