package message

import (
	"fmt"

	"github.com/mmonet/mmowire/wire"
)

// Codec encodes and decodes the opcode-tagged message union. The
// first payload byte is the opcode; the rest is the field encoding of
// the matching type. With the catch-all enabled decode is total over
// the opcode space, otherwise an unregistered opcode fails with
// UnknownOpcodeError.
type Codec struct {
	obf     Obfuscation
	unknown bool
}

// NewCodec builds a codec with the given obfuscation constants.
// withUnknown declares the catch-all variant.
func NewCodec(obf Obfuscation, withUnknown bool) *Codec {
	return &Codec{obf: obf, unknown: withUnknown}
}

// NewDefaultCodec uses the pre-agreed obfuscation constants and
// declares the catch-all.
func NewDefaultCodec() *Codec {
	return NewCodec(DefaultObfuscation(), true)
}

func (c *Codec) Encode(m Message) ([]byte, error) {
	enc := wire.NewEncoder()
	switch m := m.(type) {
	case *ClientHello:
		enc.PutUint8(uint8(m.Opcode()))
		if err := m.encodeBody(enc, c.obf); err != nil {
			return nil, err
		}
	case *ServerHello:
		enc.PutUint8(uint8(m.Opcode()))
		if err := m.encodeBody(enc, c.obf); err != nil {
			return nil, err
		}
	case *ClientReady:
		enc.PutUint8(uint8(m.Opcode()))
		if err := m.encodeBody(enc, c.obf); err != nil {
			return nil, err
		}
	case *Unknown:
		switch m.Op {
		case OpClientHello, OpServerHello, OpClientReady:
			// the peer would decode these as handshake variants
			return nil, &ReservedOpcodeError{Op: m.Op}
		}
		// stored payload goes out verbatim, not re-serialized
		out := make([]byte, 1+len(m.Data))
		out[0] = uint8(m.Op)
		copy(out[1:], m.Data)
		return out, nil
	default:
		return nil, fmt.Errorf("mmowire: message type %T not in codec union", m)
	}
	out := make([]byte, enc.Len())
	copy(out, enc.Bytes())
	return out, nil
}

func (c *Codec) Decode(data []byte) (Message, error) {
	if len(data) < 1 {
		return nil, ErrEmptyMessage
	}
	op := int8(data[0])
	body := data[1:]
	switch op {
	case OpClientHello:
		return decodeClientHello(body, c.obf)
	case OpServerHello:
		return decodeServerHello(body, c.obf)
	case OpClientReady:
		return decodeClientReady(body, c.obf)
	}
	if !c.unknown {
		return nil, &UnknownOpcodeError{Op: op}
	}
	rest := make([]byte, len(body))
	copy(rest, body)
	return &Unknown{Op: op, Data: rest}, nil
}

// As converts the union back to a concrete variant, failing with
// TypeMismatchError when m holds a different variant.
func As[T Message](m Message) (T, error) {
	v, ok := m.(T)
	if !ok {
		var zero T
		return zero, &TypeMismatchError{Want: fmt.Sprintf("%T", zero), Got: m}
	}
	return v, nil
}
