package dataset

import "fmt"

// LoadError means the input file is missing, unreadable, or structurally
// unusable (bad header, broken CSV framing). Fatal at startup: the
// server must not come up without a dataset.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseError means a field on a specific row did not match its expected
// format. There is no partial-dataset fallback: one bad row fails the
// whole load.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: parse %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
