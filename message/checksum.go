package message

import "fmt"

// Checksum is the ServerHello checksum size selector, carried on the
// wire as one signed byte. 0 selects no checksum, 1 selects CRC16,
// 4..32 select HMAC-SHA256 truncated to that many bytes. The selector
// only configures a stage that is not implemented here; it is parsed,
// validated and stored for the caller.
type Checksum int8

const (
	ChecksumNone  Checksum = 0
	ChecksumCrc16 Checksum = 1

	checksumHmacMin Checksum = 4
	checksumHmacMax Checksum = 32
)

func (c Checksum) Valid() bool {
	return c == ChecksumNone || c == ChecksumCrc16 || (c >= checksumHmacMin && c <= checksumHmacMax)
}

// DigestSize is the byte width of the selected checksum. Note the
// CRC16 selector value (1) differs from its digest width (2); the wire
// byte stays the selector value.
func (c Checksum) DigestSize() int {
	switch {
	case c == ChecksumNone:
		return 0
	case c == ChecksumCrc16:
		return 2
	case c >= checksumHmacMin && c <= checksumHmacMax:
		return int(c)
	}
	return 0
}

func (c Checksum) String() string {
	switch {
	case c == ChecksumNone:
		return "none"
	case c == ChecksumCrc16:
		return "crc16"
	case c >= checksumHmacMin && c <= checksumHmacMax:
		return fmt.Sprintf("hmac-sha256/%d", int(c))
	}
	return fmt.Sprintf("invalid(%d)", int8(c))
}
