package msg

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/mmonet/mmowire/message"
	"github.com/mmonet/mmowire/msg/codec"
	"github.com/mmonet/mmowire/packet"
)

// Application messages ride the same framing and opcode byte space as
// the handshake, on opcodes outside the reserved {0x00, 0x01, 0x02}.
// The message codec surfaces them as Unknown values; the dispatcher
// decompresses, decodes and routes them.

var (
	ErrReservedOpcode = errors.New("mmowire: opcode reserved by the handshake protocol")
	ErrOpcodeInUse    = errors.New("mmowire: opcode already registered")
)

// NoHandlerError reports an app opcode with no registered handler.
type NoHandlerError struct {
	Op int8
}

func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("mmowire: no handler for app opcode %#02x", uint8(e.Op))
}

// Handler consumes one decoded application message.
type Handler func(op int8, v any) error

type handlerEntry struct {
	newValue func() any
	handle   Handler
}

// Dispatcher encodes and routes post-handshake application messages.
// Not safe for concurrent registration; register everything up front.
type Dispatcher struct {
	codec        codec.ICodec
	compressor   packet.ICompressor
	decompressor packet.IDecompressor
	handles      map[int8]handlerEntry
}

func NewDispatcher(c codec.ICodec, compressType packet.CompressType) (*Dispatcher, error) {
	compressor, err := packet.NewCompressor(compressType)
	if err != nil {
		return nil, err
	}
	decompressor, err := packet.NewDecompressor(compressType)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		codec:        c,
		compressor:   compressor,
		decompressor: decompressor,
		handles:      make(map[int8]handlerEntry),
	}, nil
}

func reservedOpcode(op int8) bool {
	switch op {
	case message.OpClientHello, message.OpServerHello, message.OpClientReady, message.OpUnknown:
		return true
	}
	return false
}

// Register binds an app opcode to a value factory and a handler.
func (d *Dispatcher) Register(op int8, newValue func() any, handle Handler) error {
	if reservedOpcode(op) {
		return errors.Wrapf(ErrReservedOpcode, "opcode %#02x", uint8(op))
	}
	if _, o := d.handles[op]; o {
		return errors.Wrapf(ErrOpcodeInUse, "opcode %#02x", uint8(op))
	}
	d.handles[op] = handlerEntry{newValue: newValue, handle: handle}
	return nil
}

// Encode serializes (and optionally compresses) an application value
// into a raw opcode+payload message ready for the wire.
func (d *Dispatcher) Encode(op int8, v any) (*message.Unknown, error) {
	if reservedOpcode(op) {
		return nil, errors.Wrapf(ErrReservedOpcode, "opcode %#02x", uint8(op))
	}
	data, err := d.codec.Encode(v)
	if err != nil {
		return nil, errors.Wrapf(err, "encode app message %#02x", uint8(op))
	}
	if d.compressor != nil {
		if data, err = d.compressor.Compress(data); err != nil {
			return nil, errors.Wrapf(err, "compress app message %#02x", uint8(op))
		}
	}
	return &message.Unknown{Op: op, Data: data}, nil
}

// Dispatch decodes a raw opcode+payload message and invokes its
// handler.
func (d *Dispatcher) Dispatch(m message.Message) error {
	u, err := message.As[*message.Unknown](m)
	if err != nil {
		return err
	}
	entry, o := d.handles[u.Op]
	if !o {
		return &NoHandlerError{Op: u.Op}
	}
	data := u.Data
	if d.decompressor != nil {
		if data, err = d.decompressor.Decompress(data); err != nil {
			return errors.Wrapf(err, "decompress app message %#02x", uint8(u.Op))
		}
	}
	v := entry.newValue()
	if err = d.codec.Decode(data, v); err != nil {
		return errors.Wrapf(err, "decode app message %#02x", uint8(u.Op))
	}
	return entry.handle(u.Op, v)
}

// Close releases the compressor pair.
func (d *Dispatcher) Close() {
	if d.compressor != nil {
		d.compressor.Close()
		d.compressor = nil
	}
	if d.decompressor != nil {
		d.decompressor.Close()
		d.decompressor = nil
	}
}
