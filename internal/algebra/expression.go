package algebra

// Expression is the closed union of SPARQL expression node kinds the
// evaluator compiles (literal, variable, arithmetic, comparison,
// logical, Bound, If, Coalesce, In, Not, FunctionCall).
type Expression struct {
	Kind ExprKind

	// Literal
	Literal *LiteralPattern
	IRI     *string

	// Variable, Bound
	Variable string

	// Arithmetic/comparison/logical (binary) and Not (unary, Left only)
	Left, Right *Expression

	// If
	Cond, Then, Else *Expression

	// Coalesce, In's candidate list, FunctionCall's arguments
	Args []Expression

	// FunctionCall
	FuncName string
}

type ExprKind uint8

const (
	ExprLiteral ExprKind = iota
	ExprVariable
	ExprAdd
	ExprSub
	ExprMul
	ExprDiv
	ExprEq
	ExprNeq
	ExprLt
	ExprLte
	ExprGt
	ExprGte
	ExprAnd
	ExprOr
	ExprNot
	ExprBound
	ExprIf
	ExprCoalesce
	ExprIn
	ExprFunctionCall
)

func Lit(lex, dt string) Expression { return Expression{Kind: ExprLiteral, Literal: &LiteralPattern{Lexical: lex, Datatype: dt}} }
func VarExpr(name string) Expression { return Expression{Kind: ExprVariable, Variable: name} }
func Bound(name string) Expression   { return Expression{Kind: ExprBound, Variable: name} }
func Not(e Expression) Expression    { return Expression{Kind: ExprNot, Left: &e} }

func Bin(kind ExprKind, left, right Expression) Expression {
	return Expression{Kind: kind, Left: &left, Right: &right}
}

func IfExpr(cond, then, els Expression) Expression {
	return Expression{Kind: ExprIf, Cond: &cond, Then: &then, Else: &els}
}

func Coalesce(args ...Expression) Expression {
	return Expression{Kind: ExprCoalesce, Args: args}
}

func In(needle Expression, haystack ...Expression) Expression {
	return Expression{Kind: ExprIn, Left: &needle, Args: haystack}
}

func Call(name string, args ...Expression) Expression {
	return Expression{Kind: ExprFunctionCall, FuncName: name, Args: args}
}
