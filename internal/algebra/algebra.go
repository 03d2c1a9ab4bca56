// Package algebra defines the pre-parsed SPARQL algebra tree the
// evaluator (internal/sparql) walks. Parsing SPARQL surface syntax
// into this tree is a black box callers may implement separately;
// callers hand the evaluator an already-built GraphPattern.
package algebra

// TermPattern is one subject/predicate/object slot of a triple
// pattern: a bound IRI, a bound literal (lexical form + datatype), or
// a variable.
type TermPattern struct {
	Variable string // set iff this slot is unbound
	IRI      *string
	Literal  *LiteralPattern
}

type LiteralPattern struct {
	Lexical  string
	Datatype string
	Language *string
}

func Var(name string) TermPattern       { return TermPattern{Variable: name} }
func IRITerm(iri string) TermPattern    { return TermPattern{IRI: &iri} }
func LitTerm(lex, dt string) TermPattern { return TermPattern{Literal: &LiteralPattern{Lexical: lex, Datatype: dt}} }

func (t TermPattern) IsVariable() bool { return t.Variable != "" }

// TriplePattern is a single (subject, predicate, object) pattern; the
// predicate position may instead carry a PropertyPath.
type TriplePattern struct {
	Subject  TermPattern
	Object   TermPattern
	Verb     TermPattern   // bound IRI or variable; ignored if Path != nil
	Path     *PropertyPath // non-nil selects the property-path evaluator
}

// GraphPattern is the closed union of algebra node kinds the
// evaluator handles, one field populated per variant.
type GraphPattern struct {
	Kind Kind

	// BGP
	Triples []TriplePattern

	// Join, LeftJoin, Union, Minus
	Left, Right *GraphPattern
	Cond        Expression // LeftJoin only; zero value means unconditional

	// Filter
	Inner *GraphPattern
	Expr  Expression

	// Extend
	ExtendVar  string
	ExtendExpr Expression

	// OrderBy
	OrderKeys []OrderKey

	// Project, Group-by vars
	Vars []string

	// Distinct: no extra fields (Inner only)

	// Group
	Aggregates []Aggregate
}

type Kind uint8

const (
	KindBGP Kind = iota
	KindJoin
	KindLeftJoin
	KindFilter
	KindUnion
	KindExtend
	KindMinus
	KindOrderBy
	KindProject
	KindDistinct
	KindGroup
)

type OrderKey struct {
	Expr       Expression
	Descending bool
}

type AggKind uint8

const (
	AggCount AggKind = iota
	AggSum
	AggMin
	AggMax
	AggAvg
	AggSample
	AggGroupConcat
)

// Aggregate is one Group aggregate: `Name = Kind(Expr)`.
type Aggregate struct {
	Name     string
	Kind     AggKind
	Expr     Expression // zero value for Count(*)
	Distinct bool
	Sep      *string // GroupConcat separator, defaults to " "
}
