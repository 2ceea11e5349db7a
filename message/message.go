package message

import (
	"math"

	"github.com/mmonet/mmowire/wire"
)

// 操作码 (int8 on the wire, cast to a raw byte when written)
const (
	OpClientHello int8 = 0x00
	OpServerHello int8 = 0x01
	OpClientReady int8 = 0x02
	// OpUnknown is the reserved nominal opcode of the catch-all
	// variant. An Unknown value reports the raw opcode it was decoded
	// from, never this constant.
	OpUnknown int8 = math.MinInt8
)

// Message is one member of the codec union.
type Message interface {
	Opcode() int8
}

// Obfuscation holds the two pre-shared 64-bit constants XORed into
// ClientHello fields. They are not secret and provide no integrity.
type Obfuscation struct {
	Primary   int64
	Secondary int64
}

func DefaultObfuscation() Obfuscation {
	return Obfuscation{
		Primary:   3214621489648854472,
		Secondary: -4214651440992349575,
	}
}

var (
	clientHelloSchema = wire.Schema{
		Name: "client_hello",
		Fields: []wire.Field{
			{Name: "obfuscated_integrity", Kind: wire.Int64},
			{Name: "obfuscated_timestamp", Kind: wire.Int64},
		},
	}
	serverHelloSchema = wire.Schema{
		Name: "server_hello",
		Fields: []wire.Field{
			{Name: "public_key", Kind: wire.Bytes, Prefix: wire.Int16},
			{Name: "signature", Kind: wire.Bytes, Prefix: wire.Int16},
			{Name: "checksum_size", Kind: wire.Int8},
		},
	}
	clientReadySchema = wire.Schema{
		Name: "client_ready",
		Fields: []wire.Field{
			{Name: "public_key", Kind: wire.Bytes, Prefix: wire.Int16},
		},
	}
)

// ClientHello opens the handshake. The struct holds the recovered
// values; the XOR obfuscation chain is applied on encode and undone on
// decode, so any integrity/timestamp pair round-trips exactly.
type ClientHello struct {
	Integrity       int64
	TimestampMillis int64
}

func (m *ClientHello) Opcode() int8 {
	return OpClientHello
}

func (m *ClientHello) encodeBody(enc *wire.Encoder, obf Obfuscation) error {
	oi := m.Integrity ^ obf.Primary
	ot := m.TimestampMillis ^ m.Integrity ^ obf.Secondary
	return clientHelloSchema.Encode(enc, []interface{}{oi, ot})
}

func decodeClientHello(data []byte, obf Obfuscation) (*ClientHello, error) {
	values, _, err := clientHelloSchema.Decode(data)
	if err != nil {
		return nil, err
	}
	oi := values[0].(int64)
	ot := values[1].(int64)
	integrity := oi ^ obf.Primary
	return &ClientHello{
		Integrity:       integrity,
		TimestampMillis: ot ^ integrity ^ obf.Secondary,
	}, nil
}

// ServerHello answers a ClientHello with the server's public key, a
// DER signature over that key, and the checksum size selector. The
// signature is parsed and stored, not verified; verifying it against a
// trusted key is the caller's responsibility.
type ServerHello struct {
	PublicKey    []byte
	Signature    []byte
	ChecksumSize Checksum
}

func (m *ServerHello) Opcode() int8 {
	return OpServerHello
}

func (m *ServerHello) encodeBody(enc *wire.Encoder, _ Obfuscation) error {
	return serverHelloSchema.Encode(enc, []interface{}{m.PublicKey, m.Signature, int8(m.ChecksumSize)})
}

func decodeServerHello(data []byte, _ Obfuscation) (*ServerHello, error) {
	values, _, err := serverHelloSchema.Decode(data)
	if err != nil {
		return nil, err
	}
	cs := Checksum(values[2].(int8))
	if !cs.Valid() {
		return nil, &InvalidChecksumConfigError{Value: int8(cs)}
	}
	return &ServerHello{
		PublicKey:    values[0].([]byte),
		Signature:    values[1].([]byte),
		ChecksumSize: cs,
	}, nil
}

// ClientReady completes the handshake with the client's public key.
type ClientReady struct {
	PublicKey []byte
}

func (m *ClientReady) Opcode() int8 {
	return OpClientReady
}

func (m *ClientReady) encodeBody(enc *wire.Encoder, _ Obfuscation) error {
	return clientReadySchema.Encode(enc, []interface{}{m.PublicKey})
}

func decodeClientReady(data []byte, _ Obfuscation) (*ClientReady, error) {
	values, _, err := clientReadySchema.Decode(data)
	if err != nil {
		return nil, err
	}
	return &ClientReady{PublicKey: values[0].([]byte)}, nil
}

// Unknown is the catch-all variant. It owns the raw opcode byte it was
// decoded from and the undecoded remainder of the payload, and
// re-emits both verbatim on encode.
type Unknown struct {
	Op   int8
	Data []byte
}

func (m *Unknown) Opcode() int8 {
	return m.Op
}
