package rdfterm

import "fmt"

// ConstantDoesNotMatchDataTypeError is returned when an encoded
// constant's inferred PType differs from a caller-supplied expected
// PType.
type ConstantDoesNotMatchDataTypeError struct {
	Expected PType
	Inferred PType
}

func (e *ConstantDoesNotMatchDataTypeError) Error() string {
	return fmt.Sprintf("constant does not match expected data type: expected %s, inferred %s", e.Expected, e.Inferred)
}

// ConstantListHasInconsistentPTypeError is returned when a
// ConstantList's elements do not all share one PType/NodeKind.
type ConstantListHasInconsistentPTypeError struct {
	First PType
	Other PType
}

func (e *ConstantListHasInconsistentPTypeError) Error() string {
	return fmt.Sprintf("constant list has inconsistent ptype: %s vs %s", e.First, e.Other)
}
