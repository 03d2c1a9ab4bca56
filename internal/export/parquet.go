package export

import (
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/magbak/stottr-go/internal/store"
)

// DefaultRowGroupSize is the native Parquet layout's row-group size
// used when a caller doesn't override it via config.
const DefaultRowGroupSize = 1000

type objectRow struct {
	Subject string `parquet:"subject"`
	Object  string `parquet:"object"`
}

type literalRow struct {
	Subject  string  `parquet:"subject"`
	Object   string  `parquet:"object"`
	Language *string `parquet:"language_tag,optional"`
}

// WriteNativeParquet writes every partition of st to dir using the
// native layout:
// `<alnum-sanitized predicate>_<optional sanitized datatype|object_property>_part_<i>.parquet`,
// at the given row-group size (pass DefaultRowGroupSize absent a
// config override). Each partition is written as a single part file
// (part index 0); partitions are not split across multiple parts.
func WriteNativeParquet(dir string, st *store.TripleStore, rowGroupSize int) error {
	if rowGroupSize <= 0 {
		rowGroupSize = DefaultRowGroupSize
	}
	if err := requireDir(dir); err != nil {
		return err
	}

	objProps, err := st.ObjectPropertyPartitions()
	if err != nil {
		return err
	}
	for predicate, f := range objProps {
		rows := make([]objectRow, f.NumRows())
		subj, obj := f.MustColumn("subject"), f.MustColumn("object")
		for i := range rows {
			s, _ := subj.StringAt(i)
			o, _ := obj.StringAt(i)
			rows[i] = objectRow{Subject: s, Object: o}
		}
		name := store.Sanitize(predicate) + "_object_property_part_0.parquet"
		if err := writeRows(filepath.Join(dir, name), rows, rowGroupSize); err != nil {
			return err
		}
	}

	strLits, err := st.StringLiteralPartitions()
	if err != nil {
		return err
	}
	for predicate, f := range strLits {
		rows := make([]literalRow, f.NumRows())
		subj, obj := f.MustColumn("subject"), f.MustColumn("object")
		lang, hasLang := f.Column("language_tag")
		for i := range rows {
			s, _ := subj.StringAt(i)
			o, _ := obj.StringAt(i)
			rows[i] = literalRow{Subject: s, Object: o}
			if hasLang {
				if l, ok := lang.StringAt(i); ok {
					v := l
					rows[i].Language = &v
				}
			}
		}
		name := store.Sanitize(predicate) + "_" + store.Sanitize("http://www.w3.org/2001/XMLSchema#string") + "_part_0.parquet"
		if err := writeRows(filepath.Join(dir, name), rows, rowGroupSize); err != nil {
			return err
		}
	}

	nonStrLits, err := st.NonStringLiteralPartitions()
	if err != nil {
		return err
	}
	for predicate, batch := range nonStrLits {
		rows := make([]objectRow, batch.Frame.NumRows())
		subj, obj := batch.Frame.MustColumn("subject"), batch.Frame.MustColumn("object")
		for i := range rows {
			s, _ := subj.StringAt(i)
			o, _ := obj.StringAt(i)
			rows[i] = objectRow{Subject: s, Object: o}
		}
		name := store.Sanitize(predicate) + "_" + store.Sanitize(batch.Datatype) + "_part_0.parquet"
		if err := writeRows(filepath.Join(dir, name), rows, rowGroupSize); err != nil {
			return err
		}
	}

	return nil
}

func writeRows[T any](path string, rows []T, rowGroupSize int) error {
	file, err := os.Create(path)
	if err != nil {
		return &store.FileCreateIOError{Path: path, Err: err}
	}
	defer file.Close()

	w := parquet.NewGenericWriter[T](file, parquet.MaxRowsPerRowGroup(rowGroupSize))
	if _, err := w.Write(rows); err != nil {
		return &store.WriteParquetError{Path: path, Err: err}
	}
	return w.Close()
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &store.PathDoesNotExistError{Path: path}
	}
	if !info.IsDir() {
		return &store.PathDoesNotExistError{Path: path}
	}
	return nil
}
