package packet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/rand"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 20; i++ {
		payload := make([]byte, rand.Intn(512))
		rand.Read(payload)
		buf.Reset()
		if err := Write(&buf, payload); err != nil {
			t.Fatalf("write err: %v", err)
		}
		if got := int16(binary.LittleEndian.Uint16(buf.Bytes()[:2])); got != int16(len(payload)+2) {
			t.Errorf("frame length %v, want %v", got, len(payload)+2)
		}
		out, err := Read(&buf)
		if err != nil {
			t.Fatalf("read err: %v", err)
		}
		if !bytes.Equal(out, payload) {
			t.Errorf("payload mismatch")
		}
	}
}

func TestFrameBudget(t *testing.T) {
	var buf bytes.Buffer
	// 32765 bytes gives the max representable frame length 32767
	payload := make([]byte, MaxBodyLen)
	if err := Write(&buf, payload); err != nil {
		t.Fatalf("write max payload err: %v", err)
	}
	if got := int16(binary.LittleEndian.Uint16(buf.Bytes()[:2])); got != MaxFrameLen {
		t.Errorf("frame length %v, want %v", got, MaxFrameLen)
	}
	out, err := Read(&buf)
	if err != nil {
		t.Fatalf("read max payload err: %v", err)
	}
	if len(out) != MaxBodyLen {
		t.Errorf("payload length %v, want %v", len(out), MaxBodyLen)
	}

	err = Write(io.Discard, make([]byte, MaxBodyLen+1))
	var tl *TooLargeError
	if !errors.As(err, &tl) {
		t.Errorf("want TooLargeError, got %v", err)
	}
}

func TestReadInvalidFrameLength(t *testing.T) {
	for _, l := range []int16{1, 0, -1, -32768} {
		var buf bytes.Buffer
		var hdr [2]byte
		binary.LittleEndian.PutUint16(hdr[:], uint16(l))
		buf.Write(hdr[:])
		_, err := Read(&buf)
		var fe *InvalidFrameLengthError
		if !errors.As(err, &fe) {
			t.Errorf("length %v: want InvalidFrameLengthError, got %v", l, err)
		}
	}
	// zero payload frame is representable
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("write empty payload err: %v", err)
	}
	out, err := Read(&buf)
	if err != nil {
		t.Fatalf("read empty payload err: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("payload length %v, want 0", len(out))
	}
}

func TestReadShortStream(t *testing.T) {
	// short reads are io failures, not protocol failures
	_, err := Read(bytes.NewReader([]byte{0x05}))
	if err != io.ErrUnexpectedEOF {
		t.Errorf("short header: want ErrUnexpectedEOF, got %v", err)
	}
	_, err = Read(bytes.NewReader([]byte{0x05, 0x00, 0xAA}))
	if err != io.ErrUnexpectedEOF {
		t.Errorf("short body: want ErrUnexpectedEOF, got %v", err)
	}
	_, err = Read(bytes.NewReader(nil))
	if err != io.EOF {
		t.Errorf("empty stream: want EOF, got %v", err)
	}
}
