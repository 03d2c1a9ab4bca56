// Package export implements the store's serialization collaborators:
// the N-Triples writer, the native Parquet layout writer, and the
// oxrdf-style triple iterator.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/magbak/stottr-go/internal/store"
)

// WriteNTriples serializes every partition of st as N-Triples: object
// triples as `<S> <P> <O> .`, string literals as `<S> <P> "LEX" .` or
// `"LEX"@LANG .`, and non-string literals as `"LEX"^^<DT> .`. Control
// characters and quotes in LEX are escaped, which is stricter than
// strictly required but keeps the output parseable by any conformant
// N-Triples reader.
func WriteNTriples(w io.Writer, st *store.TripleStore) error {
	bw := bufio.NewWriter(w)

	objProps, err := st.ObjectPropertyPartitions()
	if err != nil {
		return err
	}
	for predicate, f := range objProps {
		subj := f.MustColumn("subject")
		obj := f.MustColumn("object")
		for i := 0; i < f.NumRows(); i++ {
			s, _ := subj.StringAt(i)
			o, _ := obj.StringAt(i)
			if _, err := fmt.Fprintf(bw, "<%s> <%s> <%s> .\n", s, predicate, o); err != nil {
				return err
			}
		}
	}

	strLits, err := st.StringLiteralPartitions()
	if err != nil {
		return err
	}
	for predicate, f := range strLits {
		subj := f.MustColumn("subject")
		obj := f.MustColumn("object")
		lang, hasLang := f.Column("language_tag")
		for i := 0; i < f.NumRows(); i++ {
			s, _ := subj.StringAt(i)
			o, _ := obj.StringAt(i)
			var line string
			if hasLang {
				if l, ok := lang.StringAt(i); ok && l != "" {
					line = fmt.Sprintf("<%s> <%s> \"%s\"@%s .\n", s, predicate, escapeLex(o), l)
				}
			}
			if line == "" {
				line = fmt.Sprintf("<%s> <%s> \"%s\" .\n", s, predicate, escapeLex(o))
			}
			if _, err := bw.WriteString(line); err != nil {
				return err
			}
		}
	}

	nonStrLits, err := st.NonStringLiteralPartitions()
	if err != nil {
		return err
	}
	for predicate, batch := range nonStrLits {
		subj := batch.Frame.MustColumn("subject")
		obj := batch.Frame.MustColumn("object")
		for i := 0; i < batch.Frame.NumRows(); i++ {
			s, _ := subj.StringAt(i)
			o, _ := obj.StringAt(i)
			if _, err := fmt.Fprintf(bw, "<%s> <%s> \"%s\"^^<%s> .\n", s, predicate, escapeLex(o), batch.Datatype); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// escapeLex applies N-Triples-compliant escaping of backslashes,
// double quotes, and control characters in a literal's lexical form.
func escapeLex(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
