package sparql

import (
	"github.com/magbak/stottr-go/internal/algebra"
	"github.com/magbak/stottr-go/internal/frame"
	"github.com/magbak/stottr-go/internal/rdfterm"
)

// evalGroup groups by vars and computes each aggregate as a named
// column. Columns produced by
// aggregate sub-expressions are never copied into the grouped output
// in the first place (frame.GroupBy only emits byCols plus aggregate
// outputs), so no separate drop step is needed.
func evalGroup(inner SolutionMappings, vars []string, aggregates []algebra.Aggregate, ctx Context) (SolutionMappings, error) {
	f, err := inner.Plan.Collect()
	if err != nil {
		return SolutionMappings{}, err
	}

	specs := make([]frame.AggSpec, len(aggregates))
	for i, agg := range aggregates {
		var inputCol string
		if !isZeroExpr(agg.Expr) {
			compiled, err := compileExpr(agg.Expr)
			if err != nil {
				return SolutionMappings{}, err
			}
			col, err := compiled.eval(f)
			if err != nil {
				return SolutionMappings{}, err
			}
			inputCol = ctx.PushIndexed("GroupAggregation", i).Column("input")
			col.Name = inputCol
			f = f.WithColumn(col)
		}
		sep := ""
		if agg.Sep != nil {
			sep = *agg.Sep
		}
		specs[i] = frame.AggSpec{
			Output:   agg.Name,
			Kind:     frame.AggKind(agg.Kind),
			Column:   inputCol,
			Distinct: agg.Distinct,
			Sep:      sep,
		}
	}

	grouped, err := frame.GroupBy(f, vars, specs)
	if err != nil {
		return SolutionMappings{}, err
	}

	columns := map[string]bool{}
	datatypes := map[string]rdfterm.NodeKind{}
	for _, v := range vars {
		columns[v] = true
		if k, ok := inner.Datatypes[v]; ok {
			datatypes[v] = k
		}
	}
	for _, agg := range aggregates {
		columns[agg.Name] = true
		datatypes[agg.Name] = aggregateDatatype(agg.Kind)
	}

	return SolutionMappings{Plan: frame.NewLazyFrame(grouped), Columns: columns, Datatypes: datatypes}, nil
}

func aggregateDatatype(kind algebra.AggKind) rdfterm.NodeKind {
	switch kind {
	case algebra.AggCount:
		return rdfterm.Literal("http://www.w3.org/2001/XMLSchema#integer")
	case algebra.AggSum, algebra.AggMin, algebra.AggMax, algebra.AggAvg:
		return rdfterm.Literal("http://www.w3.org/2001/XMLSchema#double")
	default:
		return rdfterm.Literal(rdfterm.XSDString)
	}
}
