package sparql

import (
	"strconv"
	"strings"

	"github.com/magbak/stottr-go/internal/algebra"
	"github.com/magbak/stottr-go/internal/frame"
)

// compiledExpr wraps the column-producing closure built for one
// algebra.Expression node.
type compiledExpr struct {
	fn func(f *frame.Frame) (*frame.Series, error)
}

func (c *compiledExpr) eval(f *frame.Frame) (*frame.Series, error) { return c.fn(f) }

const exprResultCol = "__expr"

func isZeroExpr(e algebra.Expression) bool {
	return e.Kind == algebra.ExprLiteral && e.Literal == nil && e.Variable == "" &&
		e.Left == nil && e.Right == nil && len(e.Args) == 0 && e.FuncName == ""
}

func isNumericDatatype(dt string) bool {
	return strings.HasSuffix(dt, "integer") || strings.HasSuffix(dt, "int") ||
		strings.HasSuffix(dt, "long") || strings.HasSuffix(dt, "double") ||
		strings.HasSuffix(dt, "float") || strings.HasSuffix(dt, "decimal")
}

func floatAt(s *frame.Series, i int) (float64, bool) {
	if v, ok := s.Float64At(i); ok {
		return v, true
	}
	lex, ok := s.StringAt(i)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func boolAt(s *frame.Series, i int) (bool, bool) {
	if v, ok := s.BoolAt(i); ok {
		return v, true
	}
	lex, ok := s.StringAt(i)
	if !ok {
		return false, false
	}
	return lex == "true", true
}

// compileExpr compiles an algebra.Expression into a column-producing
// closure.
func compileExpr(e algebra.Expression) (*compiledExpr, error) {
	switch e.Kind {
	case algebra.ExprLiteral:
		lit := e.Literal
		return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
			n := f.NumRows()
			if isNumericDatatype(lit.Datatype) {
				v, err := strconv.ParseFloat(lit.Lexical, 64)
				if err != nil {
					return constStringSeries(lit.Lexical, n), nil
				}
				s := frame.NewSeries(exprResultCol, frame.DTypeFloat64, n)
				for i := 0; i < n; i++ {
					s.Values[i] = v
					s.Valid[i] = true
				}
				return s, nil
			}
			return constStringSeries(lit.Lexical, n), nil
		}}, nil

	case algebra.ExprVariable:
		name := e.Variable
		return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
			if !f.HasColumn(name) {
				return frame.NewSeries(exprResultCol, frame.DTypeString, f.NumRows()), nil
			}
			return f.MustColumn(name).Clone(), nil
		}}, nil

	case algebra.ExprBound:
		name := e.Variable
		return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
			n := f.NumRows()
			s := frame.NewSeries(exprResultCol, frame.DTypeBool, n)
			col, has := f.Column(name)
			for i := 0; i < n; i++ {
				s.Values[i] = has && col.Valid[i]
				s.Valid[i] = true
			}
			return s, nil
		}}, nil

	case algebra.ExprNot:
		inner, err := compileExpr(*e.Left)
		if err != nil {
			return nil, err
		}
		return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
			in, err := inner.eval(f)
			if err != nil {
				return nil, err
			}
			out := frame.NewSeries(exprResultCol, frame.DTypeBool, f.NumRows())
			for i := 0; i < f.NumRows(); i++ {
				v, ok := boolAt(in, i)
				out.Values[i] = ok && !v
				out.Valid[i] = ok
			}
			return out, nil
		}}, nil

	case algebra.ExprAdd, algebra.ExprSub, algebra.ExprMul, algebra.ExprDiv:
		return compileArith(e)

	case algebra.ExprEq, algebra.ExprNeq, algebra.ExprLt, algebra.ExprLte, algebra.ExprGt, algebra.ExprGte:
		return compileCompare(e)

	case algebra.ExprAnd, algebra.ExprOr:
		return compileLogic(e)

	case algebra.ExprIf:
		cond, err := compileExpr(*e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := compileExpr(*e.Then)
		if err != nil {
			return nil, err
		}
		els, err := compileExpr(*e.Else)
		if err != nil {
			return nil, err
		}
		return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
			c, err := cond.eval(f)
			if err != nil {
				return nil, err
			}
			t, err := then.eval(f)
			if err != nil {
				return nil, err
			}
			el, err := els.eval(f)
			if err != nil {
				return nil, err
			}
			out := frame.NewSeries(exprResultCol, t.DType, f.NumRows())
			for i := 0; i < f.NumRows(); i++ {
				v, ok := boolAt(c, i)
				if ok && v {
					out.Values[i], out.Valid[i] = t.Values[i], t.Valid[i]
				} else {
					out.Values[i], out.Valid[i] = el.Values[i], el.Valid[i]
				}
			}
			return out, nil
		}}, nil

	case algebra.ExprCoalesce:
		compiled := make([]*compiledExpr, len(e.Args))
		for i, a := range e.Args {
			c, err := compileExpr(a)
			if err != nil {
				return nil, err
			}
			compiled[i] = c
		}
		return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
			cols := make([]*frame.Series, len(compiled))
			for i, c := range compiled {
				s, err := c.eval(f)
				if err != nil {
					return nil, err
				}
				cols[i] = s
			}
			out := frame.NewSeries(exprResultCol, frame.DTypeString, f.NumRows())
			for row := 0; row < f.NumRows(); row++ {
				for _, col := range cols {
					if col.Valid[row] {
						out.Values[row], out.Valid[row] = col.Values[row], true
						break
					}
				}
			}
			return out, nil
		}}, nil

	case algebra.ExprIn:
		needle, err := compileExpr(*e.Left)
		if err != nil {
			return nil, err
		}
		haystack := make([]*compiledExpr, len(e.Args))
		for i, a := range e.Args {
			c, err := compileExpr(a)
			if err != nil {
				return nil, err
			}
			haystack[i] = c
		}
		return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
			n, err := needle.eval(f)
			if err != nil {
				return nil, err
			}
			cols := make([]*frame.Series, len(haystack))
			for i, c := range haystack {
				s, err := c.eval(f)
				if err != nil {
					return nil, err
				}
				cols[i] = s
			}
			out := frame.NewSeries(exprResultCol, frame.DTypeBool, f.NumRows())
			for row := 0; row < f.NumRows(); row++ {
				nv, ok := n.StringAt(row)
				found := false
				if ok {
					for _, col := range cols {
						if cv, ok := col.StringAt(row); ok && cv == nv {
							found = true
							break
						}
					}
				}
				out.Values[row], out.Valid[row] = found, true
			}
			return out, nil
		}}, nil

	case algebra.ExprFunctionCall:
		return compileFunctionCall(e)

	default:
		return nil, &UnsupportedFunctionError{Name: "expression kind"}
	}
}

func constStringSeries(v string, n int) *frame.Series {
	s := frame.NewSeries(exprResultCol, frame.DTypeString, n)
	for i := 0; i < n; i++ {
		s.SetString(i, v)
	}
	return s
}

func compileArith(e algebra.Expression) (*compiledExpr, error) {
	left, err := compileExpr(*e.Left)
	if err != nil {
		return nil, err
	}
	right, err := compileExpr(*e.Right)
	if err != nil {
		return nil, err
	}
	kind := e.Kind
	return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
		l, err := left.eval(f)
		if err != nil {
			return nil, err
		}
		r, err := right.eval(f)
		if err != nil {
			return nil, err
		}
		out := frame.NewSeries(exprResultCol, frame.DTypeFloat64, f.NumRows())
		for i := 0; i < f.NumRows(); i++ {
			lv, ok1 := floatAt(l, i)
			rv, ok2 := floatAt(r, i)
			if !ok1 || !ok2 {
				continue
			}
			var v float64
			switch kind {
			case algebra.ExprAdd:
				v = lv + rv
			case algebra.ExprSub:
				v = lv - rv
			case algebra.ExprMul:
				v = lv * rv
			case algebra.ExprDiv:
				if rv == 0 {
					continue
				}
				v = lv / rv
			}
			out.Values[i] = v
			out.Valid[i] = true
		}
		return out, nil
	}}, nil
}

func compileCompare(e algebra.Expression) (*compiledExpr, error) {
	left, err := compileExpr(*e.Left)
	if err != nil {
		return nil, err
	}
	right, err := compileExpr(*e.Right)
	if err != nil {
		return nil, err
	}
	kind := e.Kind
	return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
		l, err := left.eval(f)
		if err != nil {
			return nil, err
		}
		r, err := right.eval(f)
		if err != nil {
			return nil, err
		}
		out := frame.NewSeries(exprResultCol, frame.DTypeBool, f.NumRows())
		for i := 0; i < f.NumRows(); i++ {
			lf, lok := floatAt(l, i)
			rf, rok := floatAt(r, i)
			if lok && rok {
				out.Values[i] = compareFloat(kind, lf, rf)
				out.Valid[i] = true
				continue
			}
			ls, lsok := l.StringAt(i)
			rs, rsok := r.StringAt(i)
			if !lsok || !rsok {
				continue
			}
			out.Values[i] = compareString(kind, ls, rs)
			out.Valid[i] = true
		}
		return out, nil
	}}, nil
}

func compareFloat(kind algebra.ExprKind, l, r float64) bool {
	switch kind {
	case algebra.ExprEq:
		return l == r
	case algebra.ExprNeq:
		return l != r
	case algebra.ExprLt:
		return l < r
	case algebra.ExprLte:
		return l <= r
	case algebra.ExprGt:
		return l > r
	case algebra.ExprGte:
		return l >= r
	}
	return false
}

func compareString(kind algebra.ExprKind, l, r string) bool {
	switch kind {
	case algebra.ExprEq:
		return l == r
	case algebra.ExprNeq:
		return l != r
	case algebra.ExprLt:
		return l < r
	case algebra.ExprLte:
		return l <= r
	case algebra.ExprGt:
		return l > r
	case algebra.ExprGte:
		return l >= r
	}
	return false
}

func compileLogic(e algebra.Expression) (*compiledExpr, error) {
	left, err := compileExpr(*e.Left)
	if err != nil {
		return nil, err
	}
	right, err := compileExpr(*e.Right)
	if err != nil {
		return nil, err
	}
	isAnd := e.Kind == algebra.ExprAnd
	return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
		l, err := left.eval(f)
		if err != nil {
			return nil, err
		}
		r, err := right.eval(f)
		if err != nil {
			return nil, err
		}
		out := frame.NewSeries(exprResultCol, frame.DTypeBool, f.NumRows())
		for i := 0; i < f.NumRows(); i++ {
			lv, lok := boolAt(l, i)
			rv, rok := boolAt(r, i)
			if !lok || !rok {
				continue
			}
			if isAnd {
				out.Values[i] = lv && rv
			} else {
				out.Values[i] = lv || rv
			}
			out.Valid[i] = true
		}
		return out, nil
	}}, nil
}

// compileFunctionCall implements a handful of the more commonly used
// SPARQL built-ins; anything else is an explicit UnsupportedFunctionError
// rather than a silent no-op.
func compileFunctionCall(e algebra.Expression) (*compiledExpr, error) {
	name := strings.ToUpper(e.FuncName)
	switch name {
	case "STR", "UCASE", "LCASE", "STRLEN":
		if len(e.Args) != 1 {
			return nil, &UnsupportedFunctionError{Name: e.FuncName}
		}
		arg, err := compileExpr(e.Args[0])
		if err != nil {
			return nil, err
		}
		return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
			a, err := arg.eval(f)
			if err != nil {
				return nil, err
			}
			if name == "STRLEN" {
				out := frame.NewSeries(exprResultCol, frame.DTypeFloat64, f.NumRows())
				for i := 0; i < f.NumRows(); i++ {
					v, ok := a.StringAt(i)
					if !ok {
						continue
					}
					out.Values[i] = float64(len(v))
					out.Valid[i] = true
				}
				return out, nil
			}
			out := frame.NewSeries(exprResultCol, frame.DTypeString, f.NumRows())
			for i := 0; i < f.NumRows(); i++ {
				v, ok := a.StringAt(i)
				if !ok {
					continue
				}
				switch name {
				case "UCASE":
					v = strings.ToUpper(v)
				case "LCASE":
					v = strings.ToLower(v)
				}
				out.SetString(i, v)
			}
			return out, nil
		}}, nil

	case "CONCAT":
		compiled := make([]*compiledExpr, len(e.Args))
		for i, a := range e.Args {
			c, err := compileExpr(a)
			if err != nil {
				return nil, err
			}
			compiled[i] = c
		}
		return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
			cols := make([]*frame.Series, len(compiled))
			for i, c := range compiled {
				s, err := c.eval(f)
				if err != nil {
					return nil, err
				}
				cols[i] = s
			}
			out := frame.NewSeries(exprResultCol, frame.DTypeString, f.NumRows())
			for row := 0; row < f.NumRows(); row++ {
				var b strings.Builder
				for _, col := range cols {
					if v, ok := col.StringAt(row); ok {
						b.WriteString(v)
					}
				}
				out.SetString(row, b.String())
			}
			return out, nil
		}}, nil

	case "CONTAINS":
		if len(e.Args) != 2 {
			return nil, &UnsupportedFunctionError{Name: e.FuncName}
		}
		haystack, err := compileExpr(e.Args[0])
		if err != nil {
			return nil, err
		}
		needle, err := compileExpr(e.Args[1])
		if err != nil {
			return nil, err
		}
		return &compiledExpr{fn: func(f *frame.Frame) (*frame.Series, error) {
			h, err := haystack.eval(f)
			if err != nil {
				return nil, err
			}
			n, err := needle.eval(f)
			if err != nil {
				return nil, err
			}
			out := frame.NewSeries(exprResultCol, frame.DTypeBool, f.NumRows())
			for i := 0; i < f.NumRows(); i++ {
				hv, ok1 := h.StringAt(i)
				nv, ok2 := n.StringAt(i)
				if !ok1 || !ok2 {
					continue
				}
				out.Values[i] = strings.Contains(hv, nv)
				out.Valid[i] = true
			}
			return out, nil
		}}, nil

	default:
		return nil, &UnsupportedFunctionError{Name: e.FuncName}
	}
}
