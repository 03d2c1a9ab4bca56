package pathmat

// DefaultBound is the recommended fixed-point loop safety valve: N
// iterations.
func DefaultBound(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Closure computes p's transitive closure (p+): repeatedly compute
// `p·p + p`, clamped to 0/1, until the nonzero count reaches a fixed
// point (`OneOrMore`). `ZeroOrMore` is this result unioned with the
// identity matrix by the caller.
func Closure(p *BoolMatrix, bound int) (*BoolMatrix, error) {
	cur := p
	for i := 0; i < bound; i++ {
		next := cur.Or(cur.Mul(cur))
		if next.NNZ() == cur.NNZ() {
			return next, nil
		}
		cur = next
	}
	return nil, &FixedPointBoundExceededError{Bound: bound}
}
