package wire

import "math"

// 最大可变长度字段字节数 (10 MiB)
const MaxBytesLen = 10 * 1024 * 1024

// Kind is the wire representation of one field.
// Fixed width kinds are little-endian, signed kinds two's complement.
// Bytes is a variable length blob with a leading length prefix whose
// width is declared separately by the field.
type Kind uint8

const (
	None   Kind = iota // 无前缀
	Int8   Kind = 1
	Uint8  Kind = 2
	Int16  Kind = 3
	Uint16 Kind = 4
	Int32  Kind = 5
	Uint32 Kind = 6
	Int64  Kind = 7
	Uint64 Kind = 8
	Bytes  Kind = 9
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Int8:
		return "i8"
	case Uint8:
		return "u8"
	case Int16:
		return "i16"
	case Uint16:
		return "u16"
	case Int32:
		return "i32"
	case Uint32:
		return "u32"
	case Int64:
		return "i64"
	case Uint64:
		return "u64"
	case Bytes:
		return "bytes"
	}
	return "invalid"
}

// Size returns the encoded width of a fixed kind, 0 for Bytes and None.
func (k Kind) Size() int {
	switch k {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32:
		return 4
	case Int64, Uint64:
		return 8
	}
	return 0
}

func (k Kind) Fixed() bool {
	return k >= Int8 && k <= Uint64
}

func (k Kind) Signed() bool {
	switch k {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// maxLen is the largest blob length representable when k is used
// as a length prefix.
func (k Kind) maxLen() int64 {
	switch k {
	case Int8:
		return math.MaxInt8
	case Uint8:
		return math.MaxUint8
	case Int16:
		return math.MaxInt16
	case Uint16:
		return math.MaxUint16
	case Int32:
		return math.MaxInt32
	case Uint32:
		return math.MaxUint32
	case Int64, Uint64:
		return math.MaxInt64
	}
	return 0
}
