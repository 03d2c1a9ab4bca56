package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/magbak/stottr-go/internal/frame"
)

// loadCSV reads a comma-delimited file at path into a *frame.Frame,
// one string column per header field — input tables are untyped until
// column.Validate infers PTypes from the signature. An empty field is
// treated as SQL-null rather than the literal string "", matching the
// null handling internal/column expects.
func loadCSV(path string) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stottr: open csv %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ','
	r.Comment = '#'

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("stottr: read csv header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stottr: read csv row: %w", err)
		}
		rows = append(rows, rec)
	}

	cols := make([]*frame.Series, len(header))
	for i, name := range header {
		s := frame.NewSeries(name, frame.DTypeString, len(rows))
		for j, rec := range rows {
			if i >= len(rec) || rec[i] == "" {
				s.SetNull(j)
				continue
			}
			s.SetString(j, rec[i])
		}
		cols[i] = s
	}
	return frame.FrameFromSeries(cols...)
}
