package wire

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPrefixKind = errors.New("mmowire: length prefix kind must be a fixed width integer")
	ErrPrefixOnFixed     = errors.New("mmowire: fixed width field must not declare a length prefix")
)

// TruncatedError reports that the buffer ran out before a field's
// declared width was satisfied.
type TruncatedError struct {
	Field string
	Want  int
	Have  int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("mmowire: field %v truncated, want %v bytes have %v", e.Field, e.Want, e.Have)
}

// InvalidLengthError reports a negative declared blob length.
type InvalidLengthError struct {
	Field string
	Len   int64
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("mmowire: field %v declares invalid length %v", e.Field, e.Len)
}

// SizeLimitError reports a declared blob length above MaxBytesLen.
type SizeLimitError struct {
	Field string
	Len   uint64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("mmowire: field %v declares length %v over limit %v", e.Field, e.Len, MaxBytesLen)
}

// LengthOverflowError reports a blob too long for its prefix kind.
type LengthOverflowError struct {
	Field  string
	Len    int
	Prefix Kind
}

func (e *LengthOverflowError) Error() string {
	return fmt.Sprintf("mmowire: field %v length %v overflows %v prefix", e.Field, e.Len, e.Prefix)
}

// ValueTypeError reports a value whose dynamic type does not match
// the field's declared kind.
type ValueTypeError struct {
	Field string
	Kind  Kind
	Value interface{}
}

func (e *ValueTypeError) Error() string {
	return fmt.Sprintf("mmowire: field %v wants kind %v, got value of type %T", e.Field, e.Kind, e.Value)
}
