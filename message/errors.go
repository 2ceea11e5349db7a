package message

import (
	"errors"
	"fmt"
)

var ErrEmptyMessage = errors.New("mmowire: empty message, need at least an opcode byte")

// UnknownOpcodeError reports an opcode with no registered message type
// in a codec without a catch-all variant.
type UnknownOpcodeError struct {
	Op int8
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("mmowire: unknown opcode %#02x", uint8(e.Op))
}

// TypeMismatchError reports an As conversion to the wrong variant.
type TypeMismatchError struct {
	Want string
	Got  Message
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("mmowire: message is %T, not %v", e.Got, e.Want)
}

// ReservedOpcodeError reports an attempt to encode an Unknown whose
// opcode belongs to a handshake variant.
type ReservedOpcodeError struct {
	Op int8
}

func (e *ReservedOpcodeError) Error() string {
	return fmt.Sprintf("mmowire: opcode %#02x is reserved for the handshake", uint8(e.Op))
}

// InvalidChecksumConfigError reports a checksum size selector outside
// {0, 1, 4..32}.
type InvalidChecksumConfigError struct {
	Value int8
}

func (e *InvalidChecksumConfigError) Error() string {
	return fmt.Sprintf("mmowire: invalid checksum size selector %v", e.Value)
}
