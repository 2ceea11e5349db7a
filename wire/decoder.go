package wire

import "encoding/binary"

// Decoder consumes little-endian field encodings from a byte slice.
// The first failed field aborts decoding; the offset is not advanced
// past a failure.
type Decoder struct {
	data []byte
	off  int
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Consumed reports how many bytes have been decoded so far.
func (d *Decoder) Consumed() int {
	return d.off
}

func (d *Decoder) Remaining() int {
	return len(d.data) - d.off
}

// Rest returns a copy of all undecoded bytes and consumes them.
func (d *Decoder) Rest() []byte {
	rest := make([]byte, d.Remaining())
	copy(rest, d.data[d.off:])
	d.off = len(d.data)
	return rest
}

func (d *Decoder) take(field string, n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, &TruncatedError{Field: field, Want: n, Have: d.Remaining()}
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *Decoder) Int8(field string) (int8, error) {
	b, err := d.take(field, 1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (d *Decoder) Uint8(field string) (uint8, error) {
	b, err := d.take(field, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) Int16(field string) (int16, error) {
	v, err := d.Uint16(field)
	return int16(v), err
}

func (d *Decoder) Uint16(field string) (uint16, error) {
	b, err := d.take(field, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *Decoder) Int32(field string) (int32, error) {
	v, err := d.Uint32(field)
	return int32(v), err
}

func (d *Decoder) Uint32(field string) (uint32, error) {
	b, err := d.take(field, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *Decoder) Int64(field string) (int64, error) {
	v, err := d.Uint64(field)
	return int64(v), err
}

func (d *Decoder) Uint64(field string) (uint64, error) {
	b, err := d.take(field, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Bytes reads a length prefix of the given kind then exactly that many
// raw bytes. A negative prefix (signed kinds) fails with
// InvalidLengthError, a prefix over MaxBytesLen with SizeLimitError.
// The returned slice is a copy.
func (d *Decoder) Bytes(field string, prefix Kind) ([]byte, error) {
	if !prefix.Fixed() {
		return nil, ErrInvalidPrefixKind
	}
	raw, err := d.take(field, prefix.Size())
	if err != nil {
		return nil, err
	}
	var n uint64
	switch prefix.Size() {
	case 1:
		n = uint64(raw[0])
	case 2:
		n = uint64(binary.LittleEndian.Uint16(raw))
	case 4:
		n = uint64(binary.LittleEndian.Uint32(raw))
	case 8:
		n = binary.LittleEndian.Uint64(raw)
	}
	if prefix.Signed() {
		if sv := signExtend(n, prefix.Size()); sv < 0 {
			return nil, &InvalidLengthError{Field: field, Len: sv}
		}
	}
	if n > MaxBytesLen {
		return nil, &SizeLimitError{Field: field, Len: n}
	}
	b, err := d.take(field, int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func signExtend(v uint64, size int) int64 {
	shift := uint(64 - size*8)
	return int64(v<<shift) >> shift
}
