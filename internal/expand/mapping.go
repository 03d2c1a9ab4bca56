// Package expand implements the template expansion engine: recursive
// instance expansion into triple batches, handed off to the triple
// store in a single batched call per expand/expand_default invocation.
package expand

import (
	"go.uber.org/zap"

	"github.com/magbak/stottr-go/internal/store"
	"github.com/magbak/stottr-go/internal/templates"
)

// Mapping is the expansion session owner: a cloned template catalogue
// plus the triple store it appends to.
type Mapping struct {
	Templates *templates.TemplateDataset
	Store     *store.TripleStore
	log       *zap.SugaredLogger
}

// New constructs an empty mapping session: a cloned template
// catalogue and a fresh triple store. cacheDir enables the store's
// Parquet spill path when non-empty.
func New(ds *templates.TemplateDataset, cacheDir string, logger *zap.Logger) (*Mapping, error) {
	st, err := store.New(cacheDir, logger)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapping{Templates: ds.Clone(), Store: st, log: logger.Sugar()}, nil
}

// Options carries per-call expansion knobs, currently just the
// language tags to attach to string literal columns.
type Options struct {
	LanguageTags map[string]string
}

// MappingReport summarizes a completed expand/expand_default call.
type MappingReport struct {
	TemplateName       string
	TripleBatchesAdded int
}
