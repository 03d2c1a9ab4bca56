// Package store implements the triple store: a map from predicate IRI
// to a map from RDF node type to a partition table, with batched
// vectorized insertion, deferred deduplication, and an optional
// Parquet spill path.
package store

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/rdfterm"
)

// TriplesToAdd is one entry of an AddTriplesVec batch.
type TriplesToAdd struct {
	Frame           *frame.Frame
	ObjectKind      rdfterm.NodeKind
	LanguageTag     *string // uniform tag applied when ObjectKind is Literal(xsd:string)
	StaticVerb      *string // IRI text; nil means Frame carries a dynamic "verb" column
	HasUniqueSubset bool
}

// partition is one (predicate, object_type) partition's state.
type partition struct {
	predicate  string
	objectKind rdfterm.NodeKind
	unique     bool
	callUUID   string
	batches    []*frame.Frame // in-memory mode
	spillFiles []string       // spill mode: file paths instead of batches
}

// TripleStore is a single-writer, exclusive-owner mutable store. All
// mutating entry points require exclusive access; callers are expected
// to serialize their own concurrent use — the store does not arbitrate
// ownership itself, mu here only protects the partition map against
// the store's own internal parallel preparation workers.
type TripleStore struct {
	mu           sync.Mutex
	partitions   map[string]*partition
	byPredicate  map[string][]string
	deduplicated bool
	cacheDir     string
	log          *zap.SugaredLogger
}

var alnumOnly = regexp.MustCompile(`[^a-zA-Z0-9]`)

func sanitize(s string) string { return alnumOnly.ReplaceAllString(s, "") }

// Sanitize keeps only alphanumeric characters, the rule applied to
// every Parquet filename segment derived from a predicate or datatype
// IRI. Exported so internal/export can reuse the same rule.
func Sanitize(s string) string { return sanitize(s) }

func partitionKey(predicate string, kind rdfterm.NodeKind) string {
	return predicate + "\x00" + kind.String()
}

// New constructs an empty store. cacheDir, if non-empty, enables the
// Parquet spill path and must already exist on disk. logger may be
// nil, in which case a no-op logger is used.
func New(cacheDir string, logger *zap.Logger) (*TripleStore, error) {
	if cacheDir != "" {
		if err := requireDir(cacheDir); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TripleStore{
		partitions:  map[string]*partition{},
		byPredicate: map[string][]string{},
		cacheDir:    cacheDir,
		log:         logger.Sugar(),
	}, nil
}

func (s *TripleStore) Deduplicated() bool { return s.deduplicated }

// NewCallUUID mints a fresh call UUID for an AddTriplesVec batch.
func NewCallUUID() string { return uuid.NewString() }

// preparedBatch is one (predicate, kind) slice ready for sequential
// insertion, the output of AddTriplesVec's parallel preparation step.
type preparedBatch struct {
	predicate string
	kind      rdfterm.NodeKind
	frame     *frame.Frame
}

// AddTriplesVec runs parallel per-entry preparation, then sequential
// partition-map insertion.
func (s *TripleStore) AddTriplesVec(batch []TriplesToAdd, callUUID string) error {
	prepared := make([][]preparedBatch, len(batch))
	errs := make([]error, len(batch))

	var wg sync.WaitGroup
	for i, entry := range batch {
		wg.Add(1)
		go func(i int, entry TriplesToAdd) {
			defer wg.Done()
			out, err := prepare(entry)
			prepared[i] = out
			errs[i] = err
		}(i, entry)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, group := range prepared {
		for _, p := range group {
			if err := s.insert(p, callUUID); err != nil {
				return err
			}
		}
	}
	return nil
}

// prepare runs the four-step per-entry preparation of AddTriplesVec.
func prepare(entry TriplesToAdd) ([]preparedBatch, error) {
	f := entry.Frame

	// 1. Drop rows whose subject or object is null.
	f = dropNulls(f, "subject", "object")

	// 2. Deduplicate unless the caller guarantees uniqueness.
	if !entry.HasUniqueSubset {
		var err error
		f, err = frame.UniqueKeepFirst(f, nil)
		if err != nil {
			return nil, err
		}
	}

	var groups []preparedBatch
	if entry.StaticVerb != nil {
		sel, err := f.Select("subject", "object")
		if err != nil {
			return nil, err
		}
		groups = append(groups, preparedBatch{predicate: *entry.StaticVerb, kind: entry.ObjectKind, frame: sel})
	} else {
		if !f.HasColumn("verb") {
			return nil, &MissingVerbColumnError{}
		}
		byVerb, err := partitionByVerb(f)
		if err != nil {
			return nil, err
		}
		for predicate, pf := range byVerb {
			groups = append(groups, preparedBatch{predicate: predicate, kind: entry.ObjectKind, frame: pf})
		}
	}

	// 4. Attach a uniform language_tag column for string literals.
	if entry.ObjectKind.IsStringLiteral() {
		for i, g := range groups {
			groups[i].frame = withLanguageTag(g.frame, entry.LanguageTag)
		}
	}

	return groups, nil
}

func dropNulls(f *frame.Frame, cols ...string) *frame.Frame {
	n := f.NumRows()
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	for _, c := range cols {
		s, ok := f.Column(c)
		if !ok {
			continue
		}
		for i := 0; i < n; i++ {
			if !s.Valid[i] {
				mask[i] = false
			}
		}
	}
	return f.FilterMask(mask)
}

func partitionByVerb(f *frame.Frame) (map[string]*frame.Frame, error) {
	verb := f.MustColumn("verb")
	byPredicate := map[string][]int{}
	var order []string
	for i := 0; i < f.NumRows(); i++ {
		v, ok := verb.StringAt(i)
		if !ok {
			continue
		}
		if _, seen := byPredicate[v]; !seen {
			order = append(order, v)
		}
		byPredicate[v] = append(byPredicate[v], i)
	}
	out := map[string]*frame.Frame{}
	for _, predicate := range order {
		sub := f.Take(byPredicate[predicate]).DropColumns("verb")
		out[predicate] = sub
	}
	return out, nil
}

func withLanguageTag(f *frame.Frame, tag *string) *frame.Frame {
	n := f.NumRows()
	s := frame.NewSeries("language_tag", frame.DTypeString, n)
	if tag != nil {
		for i := 0; i < n; i++ {
			s.SetString(i, *tag)
		}
	}
	return f.WithColumn(s)
}

// insert is the sequential partition-map mutation step of
// AddTriplesVec: create-or-append, tracking whether the partition
// remains known-unique.
func (s *TripleStore) insert(p preparedBatch, callUUID string) error {
	key := partitionKey(p.predicate, p.kind)
	part, exists := s.partitions[key]
	if !exists {
		part = &partition{predicate: p.predicate, objectKind: p.kind, unique: true, callUUID: callUUID}
		s.partitions[key] = part
		s.byPredicate[p.predicate] = append(s.byPredicate[p.predicate], key)
	} else {
		part.unique = part.unique && callUUID == part.callUUID
		if !part.unique {
			s.deduplicated = false
		}
	}

	if s.cacheDir != "" {
		path, err := s.spillWrite(p.predicate, p.frame)
		if err != nil {
			return err
		}
		part.spillFiles = append(part.spillFiles, path)
	} else {
		part.batches = append(part.batches, p.frame)
	}

	s.log.Debugw("inserted triple batch",
		"predicate", p.predicate, "object_kind", p.kind.String(),
		"rows", p.frame.NumRows(), "call_uuid", callUUID, "unique", part.unique)
	return nil
}

// Deduplicate collapses every non-unique partition to a single batch
// of pairwise-distinct rows.
func (s *TripleStore) Deduplicate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, part := range s.partitions {
		if part.unique {
			continue
		}
		merged, err := s.materialize(part)
		if err != nil {
			return err
		}
		deduped, err := frame.UniqueKeepFirst(merged, nil)
		if err != nil {
			return err
		}
		if s.cacheDir != "" {
			path, err := s.spillWrite(part.predicate, deduped)
			if err != nil {
				return err
			}
			part.spillFiles = []string{path}
		} else {
			part.batches = []*frame.Frame{deduped}
		}
		part.unique = true
		s.log.Infow("deduplicated partition", "predicate", part.predicate, "object_kind", part.objectKind.String(), "rows", deduped.NumRows())
	}
	s.deduplicated = true
	return nil
}

// materialize concatenates a partition's batches (in-memory or
// spilled) into a single Frame.
func (s *TripleStore) materialize(part *partition) (*frame.Frame, error) {
	if s.cacheDir != "" {
		var out *frame.Frame
		for _, path := range part.spillFiles {
			f, err := readParquet(path)
			if err != nil {
				return nil, &ReadParquetError{Path: path, Err: err}
			}
			if out == nil {
				out = f
				continue
			}
			out, err = frame.Concat(out, f)
			if err != nil {
				return nil, err
			}
		}
		if out == nil {
			out = frame.NewFrame()
		}
		return out, nil
	}

	var out *frame.Frame
	for _, b := range part.batches {
		if out == nil {
			out = b
			continue
		}
		var err error
		out, err = frame.Concat(out, b)
		if err != nil {
			return nil, err
		}
	}
	if out == nil {
		out = frame.NewFrame()
	}
	return out, nil
}

// Lookup returns the single materialized partition for a predicate.
// More than one object datatype for the same predicate is rejected —
// triple patterns need one unambiguous node kind per predicate.
func (s *TripleStore) Lookup(predicate string) (*frame.Frame, rdfterm.NodeKind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.byPredicate[predicate]
	if len(keys) == 0 {
		return frame.NewFrame(), rdfterm.None(), nil
	}
	if len(keys) > 1 {
		return nil, rdfterm.NodeKind{}, fmt.Errorf("store: multiple datatypes not supported yet for predicate %s", predicate)
	}
	part := s.partitions[keys[0]]
	f, err := s.materialize(part)
	if err != nil {
		return nil, rdfterm.NodeKind{}, err
	}
	return f, part.objectKind, nil
}

// ObjectPropertyPartitions returns every partition whose object kind
// is IRI, keyed by predicate.
func (s *TripleStore) ObjectPropertyPartitions() (map[string]*frame.Frame, error) {
	return s.collectWhere(func(k rdfterm.NodeKind) bool { return k.Variant == rdfterm.KindIRI })
}

// StringLiteralPartitions returns every Literal(xsd:string) partition.
func (s *TripleStore) StringLiteralPartitions() (map[string]*frame.Frame, error) {
	return s.collectWhere(func(k rdfterm.NodeKind) bool { return k.IsStringLiteral() })
}

// NonStringLiteralBatch pairs a non-string-literal partition's batch
// with its datatype IRI.
type NonStringLiteralBatch struct {
	Frame    *frame.Frame
	Datatype string
}

// NonStringLiteralPartitions returns every literal partition whose
// datatype is not xsd:string, alongside that datatype IRI.
func (s *TripleStore) NonStringLiteralPartitions() (map[string]NonStringLiteralBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[string]NonStringLiteralBatch{}
	for predicate, keys := range s.byPredicate {
		for _, key := range keys {
			part := s.partitions[key]
			if part.objectKind.Variant != rdfterm.KindLiteral || part.objectKind.IsStringLiteral() {
				continue
			}
			f, err := s.materialize(part)
			if err != nil {
				return nil, err
			}
			out[predicate] = NonStringLiteralBatch{Frame: f, Datatype: part.objectKind.Datatype}
		}
	}
	return out, nil
}

func (s *TripleStore) collectWhere(keep func(rdfterm.NodeKind) bool) (map[string]*frame.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[string]*frame.Frame{}
	for predicate, keys := range s.byPredicate {
		for _, key := range keys {
			part := s.partitions[key]
			if !keep(part.objectKind) {
				continue
			}
			f, err := s.materialize(part)
			if err != nil {
				return nil, err
			}
			out[predicate] = f
		}
	}
	return out, nil
}

// Predicates returns every distinct predicate IRI known to the store,
// sorted — used by the property-path evaluator's NegatedPropertySet
// combinator.
func (s *TripleStore) Predicates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.byPredicate))
	for p := range s.byPredicate {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
