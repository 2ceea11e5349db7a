package packet

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/golang/snappy"
)

// Application payload compression. This never touches the handshake
// wire format: frames carry whatever bytes the caller hands them, and
// only the msg layer runs payloads through a compressor.

type CompressType int8

const (
	CompressNone   CompressType = iota
	CompressZlib   CompressType = 1
	CompressGzip   CompressType = 2
	CompressSnappy CompressType = 3
	CompressMax    CompressType = 4
)

var ErrCompressTypeInvalid = errors.New("mmowire: compress type invalid")

func IsValidCompressType(typ CompressType) bool {
	return typ >= CompressNone && typ < CompressMax
}

type ICompressor interface {
	Compress([]byte) ([]byte, error)
	Close() error
}

type IDecompressor interface {
	Decompress([]byte) ([]byte, error)
	Close() error
}

// NewCompressor returns nil for CompressNone.
func NewCompressor(typ CompressType) (ICompressor, error) {
	switch typ {
	case CompressNone:
		return nil, nil
	case CompressZlib:
		return NewZlibCompressor(), nil
	case CompressGzip:
		return NewGzipCompressor(), nil
	case CompressSnappy:
		return NewSnappyCompressor(), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrCompressTypeInvalid, typ)
}

func NewDecompressor(typ CompressType) (IDecompressor, error) {
	switch typ {
	case CompressNone:
		return nil, nil
	case CompressZlib:
		return NewZlibDecompressor(), nil
	case CompressGzip:
		return NewGzipDecompressor(), nil
	case CompressSnappy:
		return NewSnappyDecompressor(), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrCompressTypeInvalid, typ)
}

type ZlibCompressor struct {
	writer      *zlib.Writer
	writeBuffer bytes.Buffer
	closed      bool
}

func NewZlibCompressor() *ZlibCompressor {
	c := &ZlibCompressor{}
	c.writer = zlib.NewWriter(&c.writeBuffer)
	return c
}

func (c *ZlibCompressor) Compress(data []byte) ([]byte, error) {
	c.writeBuffer.Reset()
	c.writer.Reset(&c.writeBuffer)
	if _, err := c.writer.Write(data); err != nil {
		return nil, err
	}
	// each message must be a complete stream with its trailer, so the
	// decompressor can drain it standalone; Reset reopens the writer
	if err := c.writer.Close(); err != nil {
		return nil, err
	}
	out := make([]byte, c.writeBuffer.Len())
	copy(out, c.writeBuffer.Bytes())
	return out, nil
}

func (c *ZlibCompressor) Close() error {
	if c.closed {
		return nil
	}
	err := c.writer.Close()
	if err == nil {
		c.closed = true
	}
	return err
}

type ZlibDecompressor struct{}

func NewZlibDecompressor() *ZlibDecompressor {
	return &ZlibDecompressor{}
}

func (c *ZlibDecompressor) Decompress(data []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var rd bytes.Buffer
	_, err = io.Copy(&rd, reader)
	reader.Close()
	if err != nil {
		return nil, err
	}
	return rd.Bytes(), nil
}

func (c *ZlibDecompressor) Close() error {
	return nil
}

type GzipCompressor struct {
	writer      *gzip.Writer
	writeBuffer bytes.Buffer
	closed      bool
}

func NewGzipCompressor() *GzipCompressor {
	c := &GzipCompressor{}
	c.writer = gzip.NewWriter(&c.writeBuffer)
	return c
}

func (c *GzipCompressor) Compress(data []byte) ([]byte, error) {
	c.writeBuffer.Reset()
	c.writer.Reset(&c.writeBuffer)
	if _, err := c.writer.Write(data); err != nil {
		return nil, err
	}
	if err := c.writer.Close(); err != nil {
		return nil, err
	}
	out := make([]byte, c.writeBuffer.Len())
	copy(out, c.writeBuffer.Bytes())
	return out, nil
}

func (c *GzipCompressor) Close() error {
	if c.closed {
		return nil
	}
	err := c.writer.Close()
	if err == nil {
		c.closed = true
	}
	return err
}

type GzipDecompressor struct{}

func NewGzipDecompressor() *GzipDecompressor {
	return &GzipDecompressor{}
}

func (c *GzipDecompressor) Decompress(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var rd bytes.Buffer
	_, err = io.Copy(&rd, reader)
	reader.Close()
	if err != nil {
		return nil, err
	}
	return rd.Bytes(), nil
}

func (c *GzipDecompressor) Close() error {
	return nil
}

type SnappyCompressor struct{}

func NewSnappyCompressor() *SnappyCompressor {
	return &SnappyCompressor{}
}

func (c *SnappyCompressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (c *SnappyCompressor) Close() error {
	return nil
}

type SnappyDecompressor struct{}

func NewSnappyDecompressor() *SnappyDecompressor {
	return &SnappyDecompressor{}
}

func (c *SnappyDecompressor) Decompress(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}

func (c *SnappyDecompressor) Close() error {
	return nil
}
