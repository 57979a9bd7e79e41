package relindex

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCarrier is returned when a requested carrier is not in the index.
var ErrUnknownCarrier = errors.New("unknown carrier")

// SchemaError reports required columns that are absent from the header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s (expected header: %s)",
		strings.Join(e.Missing, ", "), ExpectedHeaderLine())
}

// ParseError reports bytes that cannot be decoded as the declared format.
type ParseError struct {
	Format string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot read %s file: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot read %s file: %s", e.Format, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsSchemaError reports whether err is or wraps a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
