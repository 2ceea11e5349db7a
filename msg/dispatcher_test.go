package msg

import (
	"errors"
	"testing"

	"github.com/mmonet/mmowire/message"
	"github.com/mmonet/mmowire/msg/codec"
	"github.com/mmonet/mmowire/packet"
)

type chatLine struct {
	From string `json:"from" msgpack:"from"`
	Text string `json:"text" msgpack:"text"`
}

func testDispatcherRoundTrip(t *testing.T, c codec.ICodec, compressType packet.CompressType) {
	d, err := NewDispatcher(c, compressType)
	if err != nil {
		t.Fatalf("new dispatcher err: %v", err)
	}
	defer d.Close()

	var got *chatLine
	err = d.Register(0x10, func() any { return &chatLine{} }, func(op int8, v any) error {
		got = v.(*chatLine)
		return nil
	})
	if err != nil {
		t.Fatalf("register err: %v", err)
	}

	want := &chatLine{From: "ash", Text: "hello from pallet town"}
	u, err := d.Encode(0x10, want)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	// run it through the real union codec like a connection would
	mcodec := message.NewDefaultCodec()
	raw, err := mcodec.Encode(u)
	if err != nil {
		t.Fatalf("union encode err: %v", err)
	}
	m, err := mcodec.Decode(raw)
	if err != nil {
		t.Fatalf("union decode err: %v", err)
	}
	if err = d.Dispatch(m); err != nil {
		t.Fatalf("dispatch err: %v", err)
	}
	if got == nil || *got != *want {
		t.Errorf("handled %+v, want %+v", got, want)
	}
}

func TestDispatcherJson(t *testing.T) {
	testDispatcherRoundTrip(t, codec.NewJsonCodec(), packet.CompressNone)
}

func TestDispatcherMsgpack(t *testing.T) {
	testDispatcherRoundTrip(t, codec.NewMsgpackCodec(), packet.CompressNone)
}

func TestDispatcherMsgpackSnappy(t *testing.T) {
	testDispatcherRoundTrip(t, codec.NewMsgpackCodec(), packet.CompressSnappy)
}

func TestDispatcherJsonZlib(t *testing.T) {
	testDispatcherRoundTrip(t, codec.NewJsonCodec(), packet.CompressZlib)
}

func TestDispatcherReservedOpcode(t *testing.T) {
	d, err := NewDispatcher(codec.NewJsonCodec(), packet.CompressNone)
	if err != nil {
		t.Fatalf("new dispatcher err: %v", err)
	}
	for _, op := range []int8{0x00, 0x01, 0x02, -128} {
		if err := d.Register(op, func() any { return &chatLine{} }, nil); !errors.Is(err, ErrReservedOpcode) {
			t.Errorf("opcode %v: want ErrReservedOpcode, got %v", op, err)
		}
		if _, err := d.Encode(op, &chatLine{}); !errors.Is(err, ErrReservedOpcode) {
			t.Errorf("encode opcode %v: want ErrReservedOpcode, got %v", op, err)
		}
	}
}

func TestDispatcherNoHandler(t *testing.T) {
	d, err := NewDispatcher(codec.NewJsonCodec(), packet.CompressNone)
	if err != nil {
		t.Fatalf("new dispatcher err: %v", err)
	}
	err = d.Dispatch(&message.Unknown{Op: 0x33, Data: []byte("{}")})
	var ne *NoHandlerError
	if !errors.As(err, &ne) {
		t.Errorf("want NoHandlerError, got %v", err)
	}
	if ne != nil && ne.Op != 0x33 {
		t.Errorf("want opcode 0x33, got %#02x", uint8(ne.Op))
	}
}

func TestCodecByName(t *testing.T) {
	for _, name := range []string{"json", "msgpack", "protobuf", "thrift"} {
		c, err := codec.New(name)
		if err != nil {
			t.Errorf("codec %v err: %v", name, err)
			continue
		}
		if c.Name() != name {
			t.Errorf("codec name %v, want %v", c.Name(), name)
		}
	}
	if _, err := codec.New("capnp"); err == nil {
		t.Errorf("unnamed codec built")
	}
}
