package sparql

import (
	"fmt"

	"github.com/magbak/stottr-go/internal/algebra"
	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/rdfterm"
)

// defaultPathBound is the fixed-point loop safety valve handed to
// internal/pathmat when a triple pattern's predicate is a property
// path. The evaluator doesn't know the path's matrix dimension ahead
// of time, so this generous default lets pathmat's own bound checking
// catch runaway closures.
const defaultPathBound = 10000

// Query evaluates an already-built algebra pattern against the dataset,
// deduplicating the dataset first if needed. It does no parsing;
// callers hand in an already-built algebra.GraphPattern.
func Query(ds Dataset, pattern algebra.GraphPattern) (*frame.Frame, error) {
	if !ds.Deduplicated() {
		if err := ds.Deduplicate(); err != nil {
			return nil, err
		}
	}
	sm, err := eval(ds, pattern, Context{})
	if err != nil {
		return nil, err
	}
	return sm.Plan.Collect()
}

// eval is the post-order walk over the algebra producing
// SolutionMappings.
func eval(ds Dataset, g algebra.GraphPattern, ctx Context) (SolutionMappings, error) {
	switch g.Kind {
	case algebra.KindBGP:
		return evalBGP(ds, g.Triples, defaultPathBound)

	case algebra.KindJoin:
		left, err := eval(ds, *g.Left, ctx.Push("JoinLeft"))
		if err != nil {
			return SolutionMappings{}, err
		}
		right, err := eval(ds, *g.Right, ctx.Push("JoinRight"))
		if err != nil {
			return SolutionMappings{}, err
		}
		return joinMappings(left, right)

	case algebra.KindLeftJoin:
		left, err := eval(ds, *g.Left, ctx.Push("LeftJoinLeft"))
		if err != nil {
			return SolutionMappings{}, err
		}
		right, err := eval(ds, *g.Right, ctx.Push("LeftJoinRight"))
		if err != nil {
			return SolutionMappings{}, err
		}
		var cond *compiledExpr
		if !isZeroExpr(g.Cond) {
			c, err := compileExpr(g.Cond)
			if err != nil {
				return SolutionMappings{}, err
			}
			cond = c
		}
		return leftJoinMappings(left, right, cond, ctx)

	case algebra.KindFilter:
		inner, err := eval(ds, *g.Inner, ctx.Push("Filter"))
		if err != nil {
			return SolutionMappings{}, err
		}
		return evalFilter(inner, g.Expr)

	case algebra.KindUnion:
		left, err := eval(ds, *g.Left, ctx.Push("UnionLeft"))
		if err != nil {
			return SolutionMappings{}, err
		}
		right, err := eval(ds, *g.Right, ctx.Push("UnionRight"))
		if err != nil {
			return SolutionMappings{}, err
		}
		return unionMappings(left, right)

	case algebra.KindExtend:
		inner, err := eval(ds, *g.Inner, ctx.Push("Extend"))
		if err != nil {
			return SolutionMappings{}, err
		}
		return evalExtend(inner, g.ExtendVar, g.ExtendExpr)

	case algebra.KindMinus:
		left, err := eval(ds, *g.Left, ctx.Push("MinusLeft"))
		if err != nil {
			return SolutionMappings{}, err
		}
		right, err := eval(ds, *g.Right, ctx.Push("MinusRight"))
		if err != nil {
			return SolutionMappings{}, err
		}
		return minusMappings(left, right)

	case algebra.KindOrderBy:
		inner, err := eval(ds, *g.Inner, ctx.Push("OrderBy"))
		if err != nil {
			return SolutionMappings{}, err
		}
		return evalOrderBy(inner, g.OrderKeys, ctx.Push("OrderBy"))

	case algebra.KindProject:
		inner, err := eval(ds, *g.Inner, ctx.Push("Project"))
		if err != nil {
			return SolutionMappings{}, err
		}
		return evalProject(inner, g.Vars)

	case algebra.KindDistinct:
		inner, err := eval(ds, *g.Inner, ctx.Push("Distinct"))
		if err != nil {
			return SolutionMappings{}, err
		}
		return evalDistinct(inner)

	case algebra.KindGroup:
		inner, err := eval(ds, *g.Inner, ctx.Push("Group"))
		if err != nil {
			return SolutionMappings{}, err
		}
		return evalGroup(inner, g.Vars, g.Aggregates, ctx.Push("Group"))

	default:
		return SolutionMappings{}, fmt.Errorf("sparql: unrecognized graph pattern kind %d", g.Kind)
	}
}

// evalFilter keeps only rows where expr evaluates true.
func evalFilter(inner SolutionMappings, expr algebra.Expression) (SolutionMappings, error) {
	compiled, err := compileExpr(expr)
	if err != nil {
		return SolutionMappings{}, err
	}
	plan := inner.Plan.Filter(func(f *frame.Frame) ([]bool, error) {
		col, err := compiled.eval(f)
		if err != nil {
			return nil, err
		}
		mask := make([]bool, f.NumRows())
		for i := range mask {
			v, ok := boolAt(col, i)
			mask[i] = ok && v
		}
		return mask, nil
	})
	return SolutionMappings{Plan: plan, Columns: inner.Columns, Datatypes: inner.Datatypes}, nil
}

// evalExtend binds a new variable to expr's result; a no-op if the
// variable is already bound.
func evalExtend(inner SolutionMappings, v string, expr algebra.Expression) (SolutionMappings, error) {
	if inner.Columns[v] {
		return inner, nil
	}
	compiled, err := compileExpr(expr)
	if err != nil {
		return SolutionMappings{}, err
	}
	plan := inner.Plan.WithColumn(v, func(f *frame.Frame) (*frame.Series, error) {
		s, err := compiled.eval(f)
		if err != nil {
			return nil, err
		}
		s.Name = v
		return s, nil
	})
	columns := map[string]bool{}
	for c := range inner.Columns {
		columns[c] = true
	}
	columns[v] = true
	datatypes := map[string]rdfterm.NodeKind{}
	for c, k := range inner.Datatypes {
		datatypes[c] = k
	}
	datatypes[v] = rdfterm.Literal(rdfterm.XSDString)
	return SolutionMappings{Plan: plan, Columns: columns, Datatypes: datatypes}, nil
}

// evalOrderBy sorts the mappings by a list of expressions: each order
// expression is evaluated into a fresh column named by the context
// path, sorted upon, then dropped.
func evalOrderBy(inner SolutionMappings, keys []algebra.OrderKey, ctx Context) (SolutionMappings, error) {
	f, err := inner.Plan.Collect()
	if err != nil {
		return SolutionMappings{}, err
	}

	sortKeys := make([]frame.SortKey, len(keys))
	tmpCols := make([]string, len(keys))
	for i, k := range keys {
		compiled, err := compileExpr(k.Expr)
		if err != nil {
			return SolutionMappings{}, err
		}
		col, err := compiled.eval(f)
		if err != nil {
			return SolutionMappings{}, err
		}
		name := ctx.PushIndexed("OrderKey", i).Column("key")
		col.Name = name
		f = f.WithColumn(col)
		tmpCols[i] = name
		sortKeys[i] = frame.SortKey{Column: name, Descending: k.Descending}
	}

	sorted, err := frame.Sort(f, sortKeys)
	if err != nil {
		return SolutionMappings{}, err
	}
	sorted = sorted.DropColumns(tmpCols...)
	return SolutionMappings{Plan: frame.NewLazyFrame(sorted), Columns: inner.Columns, Datatypes: inner.Datatypes}, nil
}

// evalProject narrows the mappings down to a chosen variable list.
func evalProject(inner SolutionMappings, vars []string) (SolutionMappings, error) {
	plan := inner.Plan.Select(vars...)
	columns := map[string]bool{}
	datatypes := map[string]rdfterm.NodeKind{}
	for _, v := range vars {
		if inner.Columns[v] {
			columns[v] = true
		}
		if k, ok := inner.Datatypes[v]; ok {
			datatypes[v] = k
		}
	}
	return SolutionMappings{Plan: plan, Columns: columns, Datatypes: datatypes}, nil
}

// evalDistinct keeps the first occurrence of each distinct row across
// all columns.
func evalDistinct(inner SolutionMappings) (SolutionMappings, error) {
	f, err := inner.Plan.Collect()
	if err != nil {
		return SolutionMappings{}, err
	}
	out, err := frame.UniqueKeepFirst(f, nil)
	if err != nil {
		return SolutionMappings{}, err
	}
	return SolutionMappings{Plan: frame.NewLazyFrame(out), Columns: inner.Columns, Datatypes: inner.Datatypes}, nil
}
