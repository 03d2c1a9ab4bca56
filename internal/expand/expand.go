package expand

import (
	"fmt"

	"github.com/magbak/stottr-go/internal/astmodel"
	"github.com/magbak/stottr-go/internal/column"
	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/rdfterm"
	"github.com/magbak/stottr-go/internal/templates"
)

// staticEntry is one static_columns entry: a constant term plus its
// inferred PType, the recursive expansion's record of an argument that
// was bound to a constant rather than a column.
type staticEntry struct {
	Term  rdfterm.ConstantTerm
	PType rdfterm.PType
}

// tripleInstance is one collected base-case triple instance: a lazy
// plan plus the dynamic/static column maps in effect when the
// recursion bottomed out at ottr:Triple.
type tripleInstance struct {
	Plan    *frame.LazyFrame
	Dynamic map[string]column.PrimitiveColumn
	Static  map[string]staticEntry
}

// tripleSignature is the built-in ottr:Triple callee signature: three
// positional parameters subject, verb, object.
func tripleSignature() astmodel.Signature {
	return astmodel.Signature{
		TemplateName: astmodel.OTTRTriple,
		Parameters: []astmodel.Parameter{
			{Name: "subject"},
			{Name: "verb"},
			{Name: "object"},
		},
	}
}

// Expand resolves a template by name, validates and infers the input
// table against its signature, recursively expands its pattern, and
// hands the resulting triple batches to the store in one call.
func (m *Mapping) Expand(templateName string, table *frame.Frame, opts Options) (MappingReport, error) {
	tpl, err := m.Templates.Resolve(templateName)
	if err != nil {
		return MappingReport{}, err
	}
	return m.expandTable(tpl, table, opts)
}

func (m *Mapping) expandTable(tpl astmodel.Template, table *frame.Frame, opts Options) (MappingReport, error) {
	dynamicCols, err := column.Validate(tpl.Signature, table, column.Options{LanguageTags: opts.LanguageTags})
	if err != nil {
		return MappingReport{}, err
	}

	var collected []tripleInstance
	plan := frame.NewLazyFrame(table)
	stack := map[string]bool{}
	if err := m.expandInto(tpl.Name(), tpl.Pattern, plan, dynamicCols, map[string]staticEntry{}, stack, &collected); err != nil {
		return MappingReport{}, err
	}

	report, err := m.processResults(tpl.Name(), collected)
	if err != nil {
		return MappingReport{}, err
	}
	m.log.Infow("expand complete", "template", tpl.Name(), "batches", report.TripleBatchesAdded)
	return report, nil
}

// expandInto is the recursive core of expansion: the base case (the
// built-in ottr:Triple template) emits a collected triple instance;
// the recursive case walks tplName's pattern, remapping each
// instance's arguments into a child plan/dynamic/static state before
// recursing into the callee.
func (m *Mapping) expandInto(
	tplName string,
	pattern []astmodel.Instance,
	plan *frame.LazyFrame,
	dynamic map[string]column.PrimitiveColumn,
	static map[string]staticEntry,
	stack map[string]bool,
	collected *[]tripleInstance,
) error {
	if tplName == astmodel.OTTRTriple {
		*collected = append(*collected, tripleInstance{Plan: plan, Dynamic: dynamic, Static: static})
		return nil
	}

	if stack[tplName] {
		return &templates.CyclicTemplateError{Name: tplName}
	}
	stack[tplName] = true
	defer delete(stack, tplName)

	for _, inst := range pattern {
		childName, childSig, childPattern, err := m.resolveCallee(inst.TemplateName)
		if err != nil {
			return err
		}
		if len(inst.Arguments) != len(childSig.Parameters) {
			return &ArityMismatchError{TemplateName: childName, Want: len(childSig.Parameters), Got: len(inst.Arguments)}
		}

		childPlan, childDynamic, childStatic, marked, err := remap(plan, dynamic, static, inst, childSig)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(childDynamic))
		for n := range childDynamic {
			names = append(names, n)
		}
		childPlan = projectDynamic(childPlan, names)
		childPlan = applyListExpander(childPlan, inst.ListExpander, marked)

		if err := m.expandInto(childName, childPattern, childPlan, childDynamic, childStatic, stack, collected); err != nil {
			return err
		}
	}
	return nil
}

// resolveCallee resolves an instance's template name to a (name,
// signature, pattern) triple, special-casing the built-in ottr:Triple
// base template.
func (m *Mapping) resolveCallee(name string) (string, astmodel.Signature, []astmodel.Instance, error) {
	if name == astmodel.OTTRTriple {
		return astmodel.OTTRTriple, tripleSignature(), nil, nil
	}
	tpl, err := m.Templates.Resolve(name)
	if err != nil {
		return "", astmodel.Signature{}, nil, err
	}
	return tpl.Name(), tpl.Signature, tpl.Pattern, nil
}

// remap walks an instance's arguments against the callee's signature,
// building the child plan/dynamic/static state and the set of child
// parameter names marked list_expand. A variable argument renames its
// source column into the callee's parameter name; if the callee
// parameter is optional and declares a default, null cells in that
// column are backfilled with the default constant before the child
// recurses, so a row that leaves the argument unbound still sees the
// parameter's default rather than an unbound column.
func remap(
	plan *frame.LazyFrame,
	dynamic map[string]column.PrimitiveColumn,
	static map[string]staticEntry,
	inst astmodel.Instance,
	childSig astmodel.Signature,
) (*frame.LazyFrame, map[string]column.PrimitiveColumn, map[string]staticEntry, []string, error) {
	childDynamic := map[string]column.PrimitiveColumn{}
	childStatic := map[string]staticEntry{}
	var marked []string
	cur := plan

	for i, arg := range inst.Arguments {
		param := childSig.Parameters[i]
		term := arg.Term

		switch {
		case term.IsVariable():
			name := term.Variable
			if pc, ok := dynamic[name]; ok {
				src := name
				def := param.Default
				cur = cur.WithColumn(param.Name, func(f *frame.Frame) (*frame.Series, error) {
					s, ok := f.Column(src)
					if !ok {
						return nil, fmt.Errorf("expand: column %q not found during remap", src)
					}
					s = s.Clone()
					if param.Optional && def != nil {
						if err := fillDefaultNulls(s, *def); err != nil {
							return nil, err
						}
					}
					return s, nil
				})
				childDynamic[param.Name] = pc
				if arg.ListExpand {
					marked = append(marked, param.Name)
				}
			} else if se, ok := static[name]; ok {
				childStatic[param.Name] = se
			} else {
				return nil, nil, nil, nil, &UnknownVariableError{Name: name}
			}

		case term.IsConstant():
			if !arg.ListExpand {
				_, pt, _, _, err := rdfterm.EncodeConstant(*term.Constant, param.Type)
				if err != nil {
					return nil, nil, nil, nil, err
				}
				childStatic[param.Name] = staticEntry{Term: *term.Constant, PType: pt}
			} else {
				broadcast, _, kind, lang, err := rdfterm.EncodeConstant(*term.Constant, param.Type)
				if err != nil {
					return nil, nil, nil, nil, err
				}
				cur = cur.WithColumn(param.Name, func(f *frame.Frame) (*frame.Series, error) {
					return broadcast(f.NumRows())
				})
				childDynamic[param.Name] = column.PrimitiveColumn{Kind: kind, Language: lang}
				marked = append(marked, param.Name)
			}

		case term.IsList():
			return nil, nil, nil, nil, &ListLiteralArgumentError{TemplateName: childSig.TemplateName}
		}
	}

	return cur, childDynamic, childStatic, marked, nil
}

// fillDefaultNulls replaces every null cell of s in place with def,
// encoded against no expected PType and broadcast to s's length.
func fillDefaultNulls(s *frame.Series, def rdfterm.ConstantTerm) error {
	broadcast, _, _, _, err := rdfterm.EncodeConstant(def, nil)
	if err != nil {
		return err
	}
	filler, err := broadcast(s.Len())
	if err != nil {
		return err
	}
	for i := 0; i < s.Len(); i++ {
		if !s.Valid[i] {
			s.Values[i] = filler.Values[i]
			s.Valid[i] = filler.Valid[i]
		}
	}
	return nil
}

// projectDynamic projects the plan down to exactly the child's new
// column set after remapping — static entries are metadata only and
// never live in the plan.
func projectDynamic(plan *frame.LazyFrame, names []string) *frame.LazyFrame {
	return plan.Select(names...)
}

func applyListExpander(plan *frame.LazyFrame, kind astmodel.ListExpanderType, marked []string) *frame.LazyFrame {
	if kind == astmodel.NoListExpander || len(marked) == 0 {
		return plan
	}
	switch kind {
	case astmodel.Cross:
		return plan.Apply(func(f *frame.Frame) (*frame.Frame, error) { return frame.ExplodeSequential(f, marked) })
	case astmodel.ZipMin:
		return plan.Apply(func(f *frame.Frame) (*frame.Frame, error) { return frame.ZipExplode(f, marked, false) })
	case astmodel.ZipMax:
		return plan.Apply(func(f *frame.Frame) (*frame.Frame, error) { return frame.ZipExplode(f, marked, true) })
	default:
		return plan
	}
}
