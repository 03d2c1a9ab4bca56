package algebra

// PropertyPath is the closed union of property-path expression kinds
// the evaluator supports: NamedNode, Reverse, Sequence, Alternative,
// ZeroOrMore, OneOrMore, ZeroOrOne, NegatedPropertySet.
type PropertyPath struct {
	Kind PathKind

	// NamedNode
	IRI string

	// Reverse, ZeroOrMore, OneOrMore, ZeroOrOne (Left only)
	// Sequence, Alternative (both)
	Left, Right *PropertyPath

	// NegatedPropertySet
	Excluded []string
}

type PathKind uint8

const (
	PathNamedNode PathKind = iota
	PathReverse
	PathSequence
	PathAlternative
	PathZeroOrMore
	PathOneOrMore
	PathZeroOrOne
	PathNegatedPropertySet
)

func NamedNode(iri string) PropertyPath { return PropertyPath{Kind: PathNamedNode, IRI: iri} }
func Reverse(p PropertyPath) PropertyPath { return PropertyPath{Kind: PathReverse, Left: &p} }
func Sequence(p, q PropertyPath) PropertyPath {
	return PropertyPath{Kind: PathSequence, Left: &p, Right: &q}
}
func Alternative(p, q PropertyPath) PropertyPath {
	return PropertyPath{Kind: PathAlternative, Left: &p, Right: &q}
}
func ZeroOrMore(p PropertyPath) PropertyPath { return PropertyPath{Kind: PathZeroOrMore, Left: &p} }
func OneOrMore(p PropertyPath) PropertyPath  { return PropertyPath{Kind: PathOneOrMore, Left: &p} }
func ZeroOrOne(p PropertyPath) PropertyPath  { return PropertyPath{Kind: PathZeroOrOne, Left: &p} }
func NegatedPropertySet(excluded ...string) PropertyPath {
	return PropertyPath{Kind: PathNegatedPropertySet, Excluded: excluded}
}

// RequiresClosure reports whether p contains ZeroOrMore or OneOrMore
// anywhere, the test pathmat uses to choose its evaluation strategy.
func (p PropertyPath) RequiresClosure() bool {
	switch p.Kind {
	case PathZeroOrMore, PathOneOrMore:
		return true
	case PathReverse, PathZeroOrOne:
		return p.Left.RequiresClosure()
	case PathSequence, PathAlternative:
		return p.Left.RequiresClosure() || p.Right.RequiresClosure()
	default:
		return false
	}
}

// NamedLeaves collects every NamedNode IRI reachable in p.
func (p PropertyPath) NamedLeaves() []string {
	switch p.Kind {
	case PathNamedNode:
		return []string{p.IRI}
	case PathReverse, PathZeroOrMore, PathOneOrMore, PathZeroOrOne:
		return p.Left.NamedLeaves()
	case PathSequence, PathAlternative:
		return append(p.Left.NamedLeaves(), p.Right.NamedLeaves()...)
	default:
		return nil
	}
}
