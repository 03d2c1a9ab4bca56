// Package pathmat implements the sparse boolean adjacency matrix and
// property-path evaluator: transitive-closure path expressions
// (ZeroOrMore, OneOrMore) evaluated over CSR-like boolean matrices,
// with a direct dataframe-join fallback for paths that don't require
// closure.
package pathmat

// BoolMatrix is an N×N sparse boolean adjacency matrix, row-major, a
// set of column indices per row (CSR's essential shape without the
// fixed-width offset arrays gonum.org/v1/gonum/mat's dense Dense
// would force on a domain that is overwhelmingly sparse — RDF
// property graphs rarely approach N² edges). Its Dims/At shape
// mirrors gonum.org/v1/gonum/mat.Matrix's contract for stylistic
// consistency with the rest of the RDF term model's gonum usage.
type BoolMatrix struct {
	n    int
	rows []map[int32]struct{}
}

// NewBoolMatrix builds an empty n×n matrix.
func NewBoolMatrix(n int) *BoolMatrix {
	m := &BoolMatrix{n: n, rows: make([]map[int32]struct{}, n)}
	for i := range m.rows {
		m.rows[i] = map[int32]struct{}{}
	}
	return m
}

// Dims mirrors gonum mat.Matrix.Dims.
func (m *BoolMatrix) Dims() (r, c int) { return m.n, m.n }

// At mirrors gonum mat.Matrix.At, returning 1 for a set bit, 0
// otherwise.
func (m *BoolMatrix) At(i, j int) float64 {
	if _, ok := m.rows[i][int32(j)]; ok {
		return 1
	}
	return 0
}

// Set marks bit (i,j).
func (m *BoolMatrix) Set(i, j int32) {
	m.rows[i][j] = struct{}{}
}

// NNZ is the number of set bits, used to detect the fixed point of
// the closure loops.
func (m *BoolMatrix) NNZ() int {
	n := 0
	for _, row := range m.rows {
		n += len(row)
	}
	return n
}

// Identity returns the n×n identity matrix.
func Identity(n int) *BoolMatrix {
	m := NewBoolMatrix(n)
	for i := int32(0); i < int32(n); i++ {
		m.Set(i, i)
	}
	return m
}

// Transpose implements the `Reverse(p)` combinator.
func (m *BoolMatrix) Transpose() *BoolMatrix {
	out := NewBoolMatrix(m.n)
	for i, row := range m.rows {
		for j := range row {
			out.Set(j, int32(i))
		}
	}
	return out
}

// Or implements the `Alternative(p, q)` combinator: element-wise OR,
// addition then clamp to 0/1.
func (m *BoolMatrix) Or(other *BoolMatrix) *BoolMatrix {
	out := NewBoolMatrix(m.n)
	for i, row := range m.rows {
		for j := range row {
			out.Set(int32(i), j)
		}
	}
	for i, row := range other.rows {
		for j := range row {
			out.Set(int32(i), j)
		}
	}
	return out
}

// Mul implements the `Sequence(p, q)` combinator: boolean matrix
// product — (i,k) set iff some j has p[i][j] and q[j][k].
func (m *BoolMatrix) Mul(other *BoolMatrix) *BoolMatrix {
	out := NewBoolMatrix(m.n)
	for i, row := range m.rows {
		for j := range row {
			for k := range other.rows[j] {
				out.Set(int32(i), k)
			}
		}
	}
	return out
}

// Pairs returns every set (i,j) bit, the "iterate nonzeros" step of
// converting the matrix back into result rows.
func (m *BoolMatrix) Pairs() [][2]int32 {
	var out [][2]int32
	for i, row := range m.rows {
		for j := range row {
			out = append(out, [2]int32{int32(i), j})
		}
	}
	return out
}
