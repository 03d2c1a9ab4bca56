package export

import (
	gonumrdf "gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/magbak/stottr-go/internal/rdfterm"
	"github.com/magbak/stottr-go/internal/store"
)

// ExportOxrdfTriples renders every triple in the store as a gonum
// rdf.Statement, the way an OWL decoder builds rdf.Statement values
// for every fact it emits. Language tags are not representable on a
// gonum rdf.Term (the library has no language-literal constructor);
// the N-Triples writer is the round-trip-faithful export path for
// those, this is a convenience view.
func ExportOxrdfTriples(st *store.TripleStore) ([]gonumrdf.Statement, error) {
	var out []gonumrdf.Statement

	objProps, err := st.ObjectPropertyPartitions()
	if err != nil {
		return nil, err
	}
	for predicate, f := range objProps {
		pred, err := gonumrdf.NewIRITerm(predicate)
		if err != nil {
			return nil, err
		}
		subj, obj := f.MustColumn("subject"), f.MustColumn("object")
		for i := 0; i < f.NumRows(); i++ {
			s, _ := subj.StringAt(i)
			o, _ := obj.StringAt(i)
			stmt, err := statement(s, pred, rdfterm.ConstIRI(o))
			if err != nil {
				return nil, err
			}
			out = append(out, stmt)
		}
	}

	strLits, err := st.StringLiteralPartitions()
	if err != nil {
		return nil, err
	}
	for predicate, f := range strLits {
		pred, err := gonumrdf.NewIRITerm(predicate)
		if err != nil {
			return nil, err
		}
		subj, obj := f.MustColumn("subject"), f.MustColumn("object")
		for i := 0; i < f.NumRows(); i++ {
			s, _ := subj.StringAt(i)
			o, _ := obj.StringAt(i)
			stmt, err := statement(s, pred, rdfterm.ConstLiteral(o, rdfterm.XSDString, nil))
			if err != nil {
				return nil, err
			}
			out = append(out, stmt)
		}
	}

	nonStrLits, err := st.NonStringLiteralPartitions()
	if err != nil {
		return nil, err
	}
	for predicate, batch := range nonStrLits {
		pred, err := gonumrdf.NewIRITerm(predicate)
		if err != nil {
			return nil, err
		}
		subj, obj := batch.Frame.MustColumn("subject"), batch.Frame.MustColumn("object")
		for i := 0; i < batch.Frame.NumRows(); i++ {
			s, _ := subj.StringAt(i)
			o, _ := obj.StringAt(i)
			stmt, err := statement(s, pred, rdfterm.ConstLiteral(o, batch.Datatype, nil))
			if err != nil {
				return nil, err
			}
			out = append(out, stmt)
		}
	}

	return out, nil
}

func statement(subjectIRI string, predicate gonumrdf.Term, objectConst rdfterm.ConstantTerm) (gonumrdf.Statement, error) {
	subj, err := gonumrdf.NewIRITerm(subjectIRI)
	if err != nil {
		return gonumrdf.Statement{}, err
	}
	obj, err := objectConst.Literal.ToGonumTerm()
	if err != nil {
		return gonumrdf.Statement{}, err
	}
	return gonumrdf.Statement{Subject: subj, Predicate: predicate, Object: obj}, nil
}
