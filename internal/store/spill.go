package store

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/magbak/stottr-go/internal/frame"
)

// spillRow is the fixed Parquet row shape for a spilled batch. Every
// prepared batch handed to insert() is already exactly (subject,
// object[, language_tag]) — predicate and object_type live in the
// partition key, never as columns — so a single generic row struct
// covers every partition.
type spillRow struct {
	Subject  string  `parquet:"subject"`
	Object   string  `parquet:"object"`
	Language *string `parquet:"language_tag,optional"`
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &PathDoesNotExistError{Path: path}
	}
	if !info.IsDir() {
		return &PathDoesNotExistError{Path: path}
	}
	return nil
}

// spillWrite writes a prepared batch to a Parquet file under the
// store's caching folder, named `<sanitized_predicate>_<uuidv4>.parquet`.
func (s *TripleStore) spillWrite(predicate string, f *frame.Frame) (string, error) {
	filename := sanitize(predicate) + "_" + uuid.NewString() + ".parquet"
	path := filepath.Join(s.cacheDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", &FileCreateIOError{Path: path, Err: err}
	}
	defer file.Close()

	rows := framesToRows(f)
	w := parquet.NewGenericWriter[spillRow](file)
	if _, err := w.Write(rows); err != nil {
		return "", &WriteParquetError{Path: path, Err: err}
	}
	if err := w.Close(); err != nil {
		return "", &WriteParquetError{Path: path, Err: err}
	}
	return path, nil
}

func framesToRows(f *frame.Frame) []spillRow {
	n := f.NumRows()
	rows := make([]spillRow, n)
	subj := f.MustColumn("subject")
	obj := f.MustColumn("object")
	lang, hasLang := f.Column("language_tag")
	for i := 0; i < n; i++ {
		s, _ := subj.StringAt(i)
		o, _ := obj.StringAt(i)
		rows[i] = spillRow{Subject: s, Object: o}
		if hasLang {
			if v, ok := lang.StringAt(i); ok {
				l := v
				rows[i].Language = &l
			}
		}
	}
	return rows
}

// readParquet reads a spilled batch back as a Frame. The read itself
// is eager rather than a lazy scan, since its only consumer,
// Deduplicate, immediately concatenates and materializes every file
// regardless.
func readParquet(path string) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := parquet.NewGenericReader[spillRow](file)
	defer r.Close()

	rows := make([]spillRow, r.NumRows())
	if len(rows) > 0 {
		if _, err := r.Read(rows); err != nil {
			return nil, err
		}
	}

	n := len(rows)
	subject := frame.NewSeries("subject", frame.DTypeString, n)
	object := frame.NewSeries("object", frame.DTypeString, n)
	var language *frame.Series
	for i, row := range rows {
		subject.SetString(i, row.Subject)
		object.SetString(i, row.Object)
		if row.Language != nil {
			if language == nil {
				language = frame.NewSeries("language_tag", frame.DTypeString, n)
			}
			language.SetString(i, *row.Language)
		}
	}

	cols := []*frame.Series{subject, object}
	if language != nil {
		cols = append(cols, language)
	}
	return frame.FrameFromSeries(cols...)
}
