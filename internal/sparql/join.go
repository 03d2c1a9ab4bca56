package sparql

import (
	"github.com/magbak/stottr-go/internal/frame"
)

// joinMappings implements the triple-pattern/BGP/Join threading
// contract: inner join on shared variable columns, cross-join if none
// are shared. All join keys here are plain string columns already; a
// categorical-encoding cast would be a performance detail frame.Join
// does not need to expose, since its join already compares by string
// key.
func joinMappings(left, right SolutionMappings) (SolutionMappings, error) {
	leftF, err := left.Plan.Collect()
	if err != nil {
		return SolutionMappings{}, err
	}
	rightF, err := right.Plan.Collect()
	if err != nil {
		return SolutionMappings{}, err
	}

	shared := sharedColumns(left.Columns, right.Columns)
	kind := frame.JoinInner
	if len(shared) == 0 {
		kind = frame.JoinCross
	}
	joined, err := frame.Join(leftF, rightF, shared, kind)
	if err != nil {
		return SolutionMappings{}, err
	}

	datatypes, err := mergeDatatypes(left.Datatypes, right.Datatypes)
	if err != nil {
		return SolutionMappings{}, err
	}
	return newMappings(joined, unionColumns(left.Columns, right.Columns), datatypes), nil
}

// leftJoinMappings implements SPARQL's LeftJoin (OPTIONAL) semantics:
// outer join on shared variables; if cond is present, rows where cond
// is false or null on the right side are treated as unmatched — their
// right-only columns are nulled out rather than the row being dropped.
func leftJoinMappings(left, right SolutionMappings, cond *compiledExpr, ctx Context) (SolutionMappings, error) {
	leftF, err := left.Plan.Collect()
	if err != nil {
		return SolutionMappings{}, err
	}
	rightF, err := right.Plan.Collect()
	if err != nil {
		return SolutionMappings{}, err
	}

	shared := sharedColumns(left.Columns, right.Columns)
	joined, err := frame.Join(leftF, rightF, shared, frame.JoinLeftOuter)
	if err != nil {
		return SolutionMappings{}, err
	}

	rightOnly := rightOnlyColumns(left.Columns, right.Columns)

	if cond != nil {
		condCol, err := cond.eval(joined)
		if err != nil {
			return SolutionMappings{}, err
		}
		for i := 0; i < joined.NumRows(); i++ {
			v, ok := condCol.BoolAt(i)
			if ok && v {
				continue
			}
			for _, c := range rightOnly {
				joined.MustColumn(c).SetNull(i)
			}
		}
	}

	datatypes, err := mergeDatatypes(left.Datatypes, right.Datatypes)
	if err != nil {
		return SolutionMappings{}, err
	}
	return newMappings(joined, unionColumns(left.Columns, right.Columns), datatypes), nil
}

func rightOnlyColumns(left, right map[string]bool) []string {
	var out []string
	for c := range right {
		if !left[c] {
			out = append(out, c)
		}
	}
	return out
}

// unionMappings implements SPARQL's Union: concatenate, filling
// non-shared columns with nulls; datatypes is the pointwise merge.
func unionMappings(left, right SolutionMappings) (SolutionMappings, error) {
	leftF, err := left.Plan.Collect()
	if err != nil {
		return SolutionMappings{}, err
	}
	rightF, err := right.Plan.Collect()
	if err != nil {
		return SolutionMappings{}, err
	}
	combined, err := frame.Concat(leftF, rightF)
	if err != nil {
		return SolutionMappings{}, err
	}
	datatypes, err := mergeDatatypes(left.Datatypes, right.Datatypes)
	if err != nil {
		return SolutionMappings{}, err
	}
	return newMappings(combined, unionColumns(left.Columns, right.Columns), datatypes), nil
}

// minusMappings implements SPARQL's Minus: tag left's rows with a
// cumulative row identifier, join the tagged rows with right on their
// shared columns, retain exactly the left rows whose identifier does
// not appear in that join, then drop the identifier. right arrives
// already evaluated on its own; it is not evaluated with left's
// mappings as input, so with no shared columns no row is removed.
func minusMappings(left, right SolutionMappings) (SolutionMappings, error) {
	leftF, err := left.Plan.Collect()
	if err != nil {
		return SolutionMappings{}, err
	}
	rightF, err := right.Plan.Collect()
	if err != nil {
		return SolutionMappings{}, err
	}

	const idCol = "__minus_row_id"
	ids := frame.NewSeries(idCol, frame.DTypeInt64, leftF.NumRows())
	for i := 0; i < leftF.NumRows(); i++ {
		ids.Values[i] = int64(i)
		ids.Valid[i] = true
	}
	tagged := leftF.WithColumn(ids)

	shared := sharedColumns(left.Columns, right.Columns)
	var excludeIDs map[int64]bool
	if len(shared) == 0 {
		// No shared variables: Minus never removes anything (every
		// left row is compatible with every right row vacuously, but
		// SPARQL's MINUS only removes rows that share at least one
		// bound variable with the right side).
		excludeIDs = map[int64]bool{}
	} else {
		joined, err := frame.Join(tagged, rightF, shared, frame.JoinInner)
		if err != nil {
			return SolutionMappings{}, err
		}
		excludeIDs = map[int64]bool{}
		idColSeries := joined.MustColumn(idCol)
		for i := 0; i < joined.NumRows(); i++ {
			if v, ok := idColSeries.Values[i].(int64); ok && idColSeries.Valid[i] {
				excludeIDs[v] = true
			}
		}
	}

	mask := make([]bool, tagged.NumRows())
	for i := 0; i < tagged.NumRows(); i++ {
		id := tagged.MustColumn(idCol).Values[i].(int64)
		mask[i] = !excludeIDs[id]
	}
	out := tagged.FilterMask(mask).DropColumns(idCol)

	return newMappings(out, left.Columns, left.Datatypes), nil
}
