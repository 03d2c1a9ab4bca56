// Package astmodel defines the pre-parsed OTTR template tree the
// expansion engine (internal/expand) consumes. Parsing the OTTR
// surface syntax into this tree is out of scope; callers hand the
// engine an already-built Template/Instance graph.
package astmodel

import "github.com/magbak/stottr-go/internal/rdfterm"

// OTTRTriple is the built-in base template name every recursive
// expansion bottoms out at.
const OTTRTriple = "http://ns.ottr.xyz/0.4/Triple"

// ListExpanderType annotates an Instance with how its list-typed
// arguments should be expanded into repeated rows.
type ListExpanderType uint8

const (
	NoListExpander ListExpanderType = iota
	Cross
	ZipMin
	ZipMax
)

// StottrTerm is an argument's payload: a variable reference, a
// constant, or a nested list of terms.
type StottrTerm struct {
	Variable string // set iff this term is a variable reference
	Constant *rdfterm.ConstantTerm
	List     []StottrTerm
}

func Variable(name string) StottrTerm { return StottrTerm{Variable: name} }
func Constant(c rdfterm.ConstantTerm) StottrTerm {
	return StottrTerm{Constant: &c}
}

func (t StottrTerm) IsVariable() bool { return t.Variable != "" }
func (t StottrTerm) IsConstant() bool { return t.Constant != nil }
func (t StottrTerm) IsList() bool     { return t.List != nil }

// Argument is one positional argument of an Instance.
type Argument struct {
	Term        StottrTerm
	ListExpand  bool
}

// Parameter is one entry of a Signature.
type Parameter struct {
	Name     string
	Type     *rdfterm.PType // nil means "infer from input data"
	Optional bool
	NonBlank bool
	Default  *rdfterm.ConstantTerm // fallback value for an optional parameter's null cells during remap
}

// Signature names a template's parameter list.
type Signature struct {
	TemplateName string
	Parameters   []Parameter
}

// ParameterNames returns the signature's parameter names in order.
func (s Signature) ParameterNames() []string {
	out := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		out[i] = p.Name
	}
	return out
}

// Parameter looks up a parameter by name.
func (s Signature) Parameter(name string) (Parameter, bool) {
	for _, p := range s.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Instance is a call-site of a template within another template's
// pattern list (GLOSSARY).
type Instance struct {
	TemplateName string
	ListExpander ListExpanderType
	Arguments    []Argument
}

// Template is a named signature plus its pattern (body) of instances.
// The built-in ottr:Triple template has an empty Pattern; the
// expansion engine special-cases its name instead of recursing into
// it.
type Template struct {
	Signature Signature
	Pattern   []Instance
}

func (t Template) Name() string { return t.Signature.TemplateName }
