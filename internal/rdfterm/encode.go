package rdfterm

import "github.com/magbak/stottr-go/internal/frame"

// Broadcast materializes an encoded constant as a Series of length n,
// every row holding the same value — the column expression a constant
// encoding produces.
type Broadcast func(n int) (*frame.Series, error)

// EncodeConstant encodes a constant term against an optional expected
// PType, producing a Broadcast column expression, the inferred PType,
// the RDF node kind, and an optional language tag.
func EncodeConstant(term ConstantTerm, expected *PType) (Broadcast, PType, NodeKind, *string, error) {
	if term.List != nil {
		return encodeConstantList(term.List, expected)
	}
	return encodeLiteral(*term.Literal, expected)
}

func encodeLiteral(lit ConstantLiteral, expected *PType) (Broadcast, PType, NodeKind, *string, error) {
	var (
		pt   PType
		kind NodeKind
		lang *string
	)
	switch lit.Kind {
	case KindIRI:
		pt = Basic(XSDAnyURI)
		kind = IRI()
	case KindBlankNode:
		pt = Basic(BlankIRI)
		kind = BlankNode()
	case KindLiteral:
		pt = Basic(lit.Datatype)
		kind = Literal(lit.Datatype)
		lang = lit.Language
	default:
		pt = Basic(NoneIRI)
		kind = None()
	}

	if expected != nil && !expected.Equal(pt) {
		return nil, PType{}, NodeKind{}, nil, &ConstantDoesNotMatchDataTypeError{Expected: *expected, Inferred: pt}
	}

	value := lit.Value
	isNull := lit.Kind == KindNone
	b := func(n int) (*frame.Series, error) {
		s := frame.NewSeries("", frame.DTypeString, n)
		if isNull {
			return s, nil
		}
		for i := 0; i < n; i++ {
			s.SetString(i, value)
		}
		return s, nil
	}
	return b, pt, kind, lang, nil
}

func encodeConstantList(items []ConstantTerm, expected *PType) (Broadcast, PType, NodeKind, *string, error) {
	var innerExpected *PType
	if expected != nil && expected.Shape != PBasic {
		innerExpected = expected.Inner
	}

	var (
		firstPType PType
		firstKind  NodeKind
		firstLang  *string
		values     []string
		nulls      []bool
	)
	for i, item := range items {
		_, pt, kind, lang, err := EncodeConstant(item, innerExpected)
		if err != nil {
			return nil, PType{}, NodeKind{}, nil, err
		}
		if i == 0 {
			firstPType, firstKind, firstLang = pt, kind, lang
		} else if !pt.Equal(firstPType) || !kind.Equal(firstKind) {
			return nil, PType{}, NodeKind{}, nil, &ConstantListHasInconsistentPTypeError{First: firstPType, Other: pt}
		}
		if item.Literal != nil && item.Literal.Kind == KindNone {
			values = append(values, "")
			nulls = append(nulls, true)
		} else if item.Literal != nil {
			values = append(values, item.Literal.Value)
			nulls = append(nulls, false)
		} else {
			values = append(values, "")
			nulls = append(nulls, true)
		}
	}

	listPType := ListOf(firstPType)
	if expected != nil && !expected.Equal(listPType) {
		return nil, PType{}, NodeKind{}, nil, &ConstantDoesNotMatchDataTypeError{Expected: *expected, Inferred: listPType}
	}

	b := func(n int) (*frame.Series, error) {
		s := frame.NewSeries("", frame.DTypeList, n)
		s.ElemType = frame.DTypeString
		list := make([]any, len(values))
		for i, v := range values {
			if nulls[i] {
				list[i] = nil
			} else {
				list[i] = v
			}
		}
		for i := 0; i < n; i++ {
			s.SetList(i, list)
		}
		return s, nil
	}
	return b, listPType, firstKind, firstLang, nil
}
