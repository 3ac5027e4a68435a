package types

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is the envelope every pipeline failure is reported under.
// The inner error stays reachable through errors.As for status mapping.
var ErrInvalidFormat = errors.New("Data has invalid format")

// SchemaError reports a column count or column name mismatch in the file.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return e.Msg }

// PermissionError reports an unknown username or team during resolution.
type PermissionError struct {
	Msg string
}

func (e *PermissionError) Error() string { return e.Msg }

// ValueError reports a malformed value: a bad caller-supplied date, a
// non-numeric dv01, or a row date that survived cleaning but cannot parse.
type ValueError struct {
	Msg string
}

func (e *ValueError) Error() string { return e.Msg }

func NewSchemaError(format string, args ...any) *SchemaError {
	return &SchemaError{Msg: fmt.Sprintf(format, args...)}
}

func NewPermissionError(format string, args ...any) *PermissionError {
	return &PermissionError{Msg: fmt.Sprintf(format, args...)}
}

func NewValueError(format string, args ...any) *ValueError {
	return &ValueError{Msg: fmt.Sprintf(format, args...)}
}
