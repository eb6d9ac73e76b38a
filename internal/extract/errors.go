package extract

import "fmt"

// ErrorKind classifies extraction failures.
type ErrorKind string

const (
	// KindTableNotFound means the match-log table is missing from the page.
	// This is fatal: the page structure is not what we expect.
	KindTableNotFound ErrorKind = "TABLE_NOT_FOUND"
	// KindFieldParse means a single cell held a value that could not be
	// coerced to its field type. The affected row is skipped.
	KindFieldParse ErrorKind = "FIELD_PARSE"
)

// ExtractionError describes a failure while mapping the document to records.
type ExtractionError struct {
	Kind  ErrorKind
	Field string // set for KindFieldParse
	Raw   string // offending cell text, set for KindFieldParse
}

func (e *ExtractionError) Error() string {
	if e.Kind == KindFieldParse {
		return fmt.Sprintf("%s: field %q: cannot parse %q", e.Kind, e.Field, e.Raw)
	}
	return string(e.Kind)
}

// Is matches extraction errors by kind.
func (e *ExtractionError) Is(target error) bool {
	t, ok := target.(*ExtractionError)
	return ok && e.Kind == t.Kind
}

// ErrTableNotFound is a sentinel for errors.Is checks at the CLI boundary.
var ErrTableNotFound = &ExtractionError{Kind: KindTableNotFound}
