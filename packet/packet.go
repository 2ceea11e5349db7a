package packet

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	// 长度字段自含 (length prefix counts itself)
	LenFieldSize = 2

	// MaxFrameLen is the largest value the i16 length field can carry.
	MaxFrameLen = math.MaxInt16

	// MaxBodyLen is the largest opcode+body payload a frame can carry.
	MaxBodyLen = MaxFrameLen - LenFieldSize
)

// TooLargeError reports a payload over the 16-bit frame budget.
type TooLargeError struct {
	Len int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("mmowire: message of %v bytes exceeds frame budget %v", e.Len, MaxBodyLen)
}

// InvalidFrameLengthError reports a frame length field below 2.
type InvalidFrameLengthError struct {
	Len int16
}

func (e *InvalidFrameLengthError) Error() string {
	return fmt.Sprintf("mmowire: invalid frame length %v", e.Len)
}

// Write frames data with a self-inclusive 2-byte little-endian length
// prefix. The framing is codec-agnostic: data is an opaque opcode+body
// payload. Errors from w surface unchanged.
func Write(w io.Writer, data []byte) error {
	if len(data) > MaxBodyLen {
		return &TooLargeError{Len: len(data)}
	}
	var hdr [LenFieldSize]byte
	binary.LittleEndian.PutUint16(hdr[:], uint16(len(data)+LenFieldSize))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// Read reads one full frame and returns its payload. Short reads at
// either step surface as the reader's own (io) errors, distinct from
// the typed protocol failures.
func Read(r io.Reader) ([]byte, error) {
	var hdr [LenFieldSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	l := int16(binary.LittleEndian.Uint16(hdr[:]))
	if l < LenFieldSize {
		return nil, &InvalidFrameLengthError{Len: l}
	}
	data := make([]byte, l-LenFieldSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}
