package options

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/mmonet/mmowire/message"
	"github.com/mmonet/mmowire/packet"
)

const (
	DefaultWriteBuffSize = 4096
	DefaultReadBuffSize  = 4096
)

// RandInt64Func supplies the client's random integrity value.
type RandInt64Func func() (int64, error)

// DefaultRandInt64 draws from crypto/rand.
func DefaultRandInt64() (int64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// 选项结构
type Options struct {
	obf           message.Obfuscation
	checksum      message.Checksum
	catchAll      bool
	randInt64     RandInt64Func
	readTimeout   time.Duration
	writeTimeout  time.Duration
	writeBuffSize int
	readBuffSize  int
	compressType  packet.CompressType
	reuseAddr     bool
	reusePort     bool
}

type Option func(*Options)

func NewOptions(opts ...Option) *Options {
	options := &Options{
		obf:           message.DefaultObfuscation(),
		checksum:      message.ChecksumNone,
		catchAll:      true,
		randInt64:     DefaultRandInt64,
		writeBuffSize: DefaultWriteBuffSize,
		readBuffSize:  DefaultReadBuffSize,
		compressType:  packet.CompressNone,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (o *Options) GetObfuscation() message.Obfuscation {
	return o.obf
}

func (o *Options) GetChecksum() message.Checksum {
	return o.checksum
}

func (o *Options) GetCatchAll() bool {
	return o.catchAll
}

func (o *Options) GetRandInt64() RandInt64Func {
	return o.randInt64
}

func (o *Options) GetReadTimeout() time.Duration {
	return o.readTimeout
}

func (o *Options) GetWriteTimeout() time.Duration {
	return o.writeTimeout
}

func (o *Options) GetWriteBuffSize() int {
	return o.writeBuffSize
}

func (o *Options) GetReadBuffSize() int {
	return o.readBuffSize
}

func (o *Options) GetCompressType() packet.CompressType {
	return o.compressType
}

func (o *Options) GetReuseAddr() bool {
	return o.reuseAddr
}

func (o *Options) GetReusePort() bool {
	return o.reusePort
}

// WithObfuscation sets the pre-agreed obfuscation constants.
func WithObfuscation(obf message.Obfuscation) Option {
	return func(o *Options) {
		o.obf = obf
	}
}

// WithChecksum sets the checksum size selector the server advertises.
func WithChecksum(c message.Checksum) Option {
	return func(o *Options) {
		o.checksum = c
	}
}

// WithCatchAll declares (or removes) the Unknown variant of the codec
// union.
func WithCatchAll(enable bool) Option {
	return func(o *Options) {
		o.catchAll = enable
	}
}

// WithRandInt64 overrides the integrity value source.
func WithRandInt64(f RandInt64Func) Option {
	return func(o *Options) {
		o.randInt64 = f
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.readTimeout = d
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.writeTimeout = d
	}
}

func WithWriteBuffSize(size int) Option {
	return func(o *Options) {
		o.writeBuffSize = size
	}
}

func WithReadBuffSize(size int) Option {
	return func(o *Options) {
		o.readBuffSize = size
	}
}

// WithCompressType selects the application payload compression used
// by the msg layer. Handshake frames are never compressed.
func WithCompressType(typ packet.CompressType) Option {
	return func(o *Options) {
		o.compressType = typ
	}
}

func WithReuseAddr(enable bool) Option {
	return func(o *Options) {
		o.reuseAddr = enable
	}
}

func WithReusePort(enable bool) Option {
	return func(o *Options) {
		o.reusePort = enable
	}
}
