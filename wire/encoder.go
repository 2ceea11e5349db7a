package wire

import "encoding/binary"

// Encoder appends little-endian field encodings to an internal buffer.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the accumulated encoding. The slice is only valid
// until the next Put or Reset.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) Len() int {
	return len(e.buf)
}

func (e *Encoder) PutInt8(v int8) {
	e.buf = append(e.buf, byte(v))
}

func (e *Encoder) PutUint8(v uint8) {
	e.buf = append(e.buf, v)
}

func (e *Encoder) PutInt16(v int16) {
	e.PutUint16(uint16(v))
}

func (e *Encoder) PutUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) PutInt32(v int32) {
	e.PutUint32(uint32(v))
}

func (e *Encoder) PutUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *Encoder) PutInt64(v int64) {
	e.PutUint64(uint64(v))
}

func (e *Encoder) PutUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// PutBytes appends a length prefix of the given kind followed by the
// raw blob. The blob length must be representable in the prefix kind.
func (e *Encoder) PutBytes(field string, prefix Kind, b []byte) error {
	if !prefix.Fixed() {
		return ErrInvalidPrefixKind
	}
	n := len(b)
	if int64(n) > prefix.maxLen() {
		return &LengthOverflowError{Field: field, Len: n, Prefix: prefix}
	}
	e.putUint(prefix, uint64(n))
	e.buf = append(e.buf, b...)
	return nil
}

func (e *Encoder) putUint(k Kind, v uint64) {
	switch k.Size() {
	case 1:
		e.PutUint8(uint8(v))
	case 2:
		e.PutUint16(uint16(v))
	case 4:
		e.PutUint32(uint32(v))
	case 8:
		e.PutUint64(v)
	}
}
