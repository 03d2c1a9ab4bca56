// Package rdfterm implements the RDF term type model: node kinds,
// parameter types (PType), and constant terms, plus the constant
// encoder that turns a ConstantTerm into a column expression.
package rdfterm

import (
	"fmt"

	gonumrdf "gonum.org/v1/gonum/graph/formats/rdf"
)

// NodeKind is the closed tagged union of RDF term kinds a column can
// carry: IRI, BlankNode, Literal(datatype) or None (unbound). Two
// literal kinds are equal iff their datatype IRIs match.
type NodeKind struct {
	Variant  NodeKindVariant
	Datatype string // only meaningful when Variant == Literal
}

type NodeKindVariant uint8

const (
	KindNone NodeKindVariant = iota
	KindIRI
	KindBlankNode
	KindLiteral
)

// XSDString is singled out because it is the only datatype that may
// carry a language tag.
const XSDString = "http://www.w3.org/2001/XMLSchema#string"

const (
	XSDAnyURI = "http://www.w3.org/2001/XMLSchema#anyURI"

	// BlankIRI and NoneIRI are the sentinel Basic() IRIs used for the
	// BlankNode and None PType variants (there is no real IRI for
	// either, since they are RDF node kinds, not datatypes).
	BlankIRI = "blank"
	NoneIRI  = "none"
)

func IRI() NodeKind                 { return NodeKind{Variant: KindIRI} }
func BlankNode() NodeKind           { return NodeKind{Variant: KindBlankNode} }
func Literal(datatype string) NodeKind { return NodeKind{Variant: KindLiteral, Datatype: datatype} }
func None() NodeKind                { return NodeKind{Variant: KindNone} }

// Equal implements the "same kind iff datatype IRIs equal" rule.
func (k NodeKind) Equal(other NodeKind) bool {
	if k.Variant != other.Variant {
		return false
	}
	if k.Variant == KindLiteral {
		return k.Datatype == other.Datatype
	}
	return true
}

func (k NodeKind) IsStringLiteral() bool {
	return k.Variant == KindLiteral && k.Datatype == XSDString
}

func (k NodeKind) String() string {
	switch k.Variant {
	case KindIRI:
		return "IRI"
	case KindBlankNode:
		return "BlankNode"
	case KindLiteral:
		return fmt.Sprintf("Literal(%s)", k.Datatype)
	default:
		return "None"
	}
}

// PType is the recursive parameter type lattice: Basic(iri) |
// List(PType) | NonEmptyList(PType) | LUB(PType). Equality is
// structural.
type PType struct {
	Shape PShape
	IRI   string // only set when Shape == PBasic
	Inner *PType // only set when Shape != PBasic
}

type PShape uint8

const (
	PBasic PShape = iota
	PList
	PNonEmptyList
	PLUB
)

func Basic(iri string) PType           { return PType{Shape: PBasic, IRI: iri} }
func ListOf(inner PType) PType         { return PType{Shape: PList, Inner: &inner} }
func NonEmptyListOf(inner PType) PType { return PType{Shape: PNonEmptyList, Inner: &inner} }
func LUBOf(inner PType) PType          { return PType{Shape: PLUB, Inner: &inner} }

// Equal compares two PTypes structurally.
func (t PType) Equal(other PType) bool {
	if t.Shape != other.Shape {
		return false
	}
	if t.Shape == PBasic {
		return t.IRI == other.IRI
	}
	if t.Inner == nil || other.Inner == nil {
		return t.Inner == other.Inner
	}
	return t.Inner.Equal(*other.Inner)
}

func (t PType) String() string {
	switch t.Shape {
	case PBasic:
		return t.IRI
	case PList:
		return fmt.Sprintf("List(%s)", t.Inner)
	case PNonEmptyList:
		return fmt.Sprintf("NEList(%s)", t.Inner)
	default:
		return fmt.Sprintf("LUB(%s)", t.Inner)
	}
}

// ConstantLiteral is one of IRI(iri) | BlankNode(label) |
// Literal{value, datatype, language?} | None.
type ConstantLiteral struct {
	Kind     NodeKindVariant
	Value    string // IRI text, blank label, or literal lexical value
	Datatype string // only for Kind == KindLiteral
	Language *string
}

// ConstantTerm is Constant(ConstantLiteral) | ConstantList([]ConstantTerm).
type ConstantTerm struct {
	Literal *ConstantLiteral
	List    []ConstantTerm
}

func ConstIRI(iri string) ConstantTerm {
	return ConstantTerm{Literal: &ConstantLiteral{Kind: KindIRI, Value: iri}}
}

func ConstBlank(label string) ConstantTerm {
	return ConstantTerm{Literal: &ConstantLiteral{Kind: KindBlankNode, Value: label}}
}

func ConstNone() ConstantTerm {
	return ConstantTerm{Literal: &ConstantLiteral{Kind: KindNone}}
}

func ConstLiteral(value, datatype string, language *string) ConstantTerm {
	return ConstantTerm{Literal: &ConstantLiteral{Kind: KindLiteral, Value: value, Datatype: datatype, Language: language}}
}

func ConstList(items ...ConstantTerm) ConstantTerm {
	return ConstantTerm{List: items}
}

// ToGonumTerm renders a ConstantLiteral as a gonum RDF term, reused at
// the export boundary (internal/export) exactly as the teacher's OWL
// decoder builds rdf.Term values for every triple it emits.
func (c ConstantLiteral) ToGonumTerm() (gonumrdf.Term, error) {
	switch c.Kind {
	case KindIRI:
		return gonumrdf.NewIRITerm(c.Value)
	case KindBlankNode:
		return gonumrdf.NewBlankTerm(c.Value)
	case KindLiteral:
		return gonumrdf.NewLiteralTerm(c.Value, c.Datatype)
	default:
		return gonumrdf.Term{}, fmt.Errorf("rdfterm: cannot render None as an RDF term")
	}
}
