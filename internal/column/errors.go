package column

import "fmt"

type MissingParameterColumnError struct{ Column string }

func (e *MissingParameterColumnError) Error() string {
	return fmt.Sprintf("missing parameter column: %s", e.Column)
}

type ContainsIrrelevantColumnsError struct{ Columns []string }

func (e *ContainsIrrelevantColumnsError) Error() string {
	return fmt.Sprintf("table contains irrelevant columns: %v", e.Columns)
}

type ColumnDataTypeMismatchError struct {
	Column   string
	Expected string
}

func (e *ColumnDataTypeMismatchError) Error() string {
	return fmt.Sprintf("column %q does not match expected data type %s", e.Column, e.Expected)
}

type CouldNotInferStottrDatatypeForColumnError struct{ Column string }

func (e *CouldNotInferStottrDatatypeForColumnError) Error() string {
	return fmt.Sprintf("could not infer stottr datatype for column: %s", e.Column)
}

type NonBlankColumnHasBlankNodeError struct{ Column string }

func (e *NonBlankColumnHasBlankNodeError) Error() string {
	return fmt.Sprintf("non-blank column %q has a blank node value", e.Column)
}

type NonOptionalColumnHasNullError struct{ Column string }

func (e *NonOptionalColumnHasNullError) Error() string {
	return fmt.Sprintf("non-optional column %q has a null value", e.Column)
}
