package wire

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

var testSchema = Schema{
	Name: "test_all_kinds",
	Fields: []Field{
		{Name: "a", Kind: Int8},
		{Name: "b", Kind: Uint8},
		{Name: "c", Kind: Int16},
		{Name: "d", Kind: Uint16},
		{Name: "e", Kind: Int32},
		{Name: "f", Kind: Uint32},
		{Name: "g", Kind: Int64},
		{Name: "h", Kind: Uint64},
		{Name: "blob", Kind: Bytes, Prefix: Int16},
	},
}

func randTestValues() []interface{} {
	blob := make([]byte, rand.Intn(64))
	rand.Read(blob)
	return []interface{}{
		int8(rand.Intn(256) - 128),
		uint8(rand.Intn(256)),
		int16(rand.Intn(65536) - 32768),
		uint16(rand.Intn(65536)),
		int32(rand.Int63()),
		uint32(rand.Uint64()),
		rand.Int63() - rand.Int63(),
		rand.Uint64(),
		blob,
	}
}

func TestSchemaRoundTrip(t *testing.T) {
	if err := testSchema.Validate(); err != nil {
		t.Fatalf("schema validate err: %v", err)
	}
	for i := 0; i < 100; i++ {
		values := randTestValues()
		enc := NewEncoder()
		if err := testSchema.Encode(enc, values); err != nil {
			t.Fatalf("encode err: %v", err)
		}
		decoded, n, err := testSchema.Decode(enc.Bytes())
		if err != nil {
			t.Fatalf("decode err: %v", err)
		}
		if n != enc.Len() {
			t.Errorf("consumed %v of %v bytes", n, enc.Len())
		}
		for j := range values {
			if b, ok := values[j].([]byte); ok {
				if !bytes.Equal(b, decoded[j].([]byte)) {
					t.Errorf("field %v: %v != %v", testSchema.Fields[j].Name, decoded[j], values[j])
				}
				continue
			}
			if values[j] != decoded[j] {
				t.Errorf("field %v: %v != %v", testSchema.Fields[j].Name, decoded[j], values[j])
			}
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	enc := NewEncoder()
	if err := testSchema.Encode(enc, randTestValues()); err != nil {
		t.Fatalf("encode err: %v", err)
	}
	full := enc.Bytes()
	for n := 0; n < len(full); n++ {
		_, _, err := testSchema.Decode(full[:n])
		if err == nil {
			t.Fatalf("decode of %v/%v bytes succeeded", n, len(full))
		}
		var te *TruncatedError
		if !errors.As(err, &te) {
			t.Errorf("prefix %v: want TruncatedError, got %v", n, err)
		}
	}
}

func TestBytesSizeLimit(t *testing.T) {
	// exactly at the ceiling
	blob := make([]byte, MaxBytesLen)
	enc := NewEncoder()
	if err := enc.PutBytes("blob", Uint32, blob); err != nil {
		t.Fatalf("encode 10MiB blob err: %v", err)
	}
	dec := NewDecoder(enc.Bytes())
	out, err := dec.Bytes("blob", Uint32)
	if err != nil {
		t.Fatalf("decode 10MiB blob err: %v", err)
	}
	if len(out) != MaxBytesLen {
		t.Errorf("got %v bytes, want %v", len(out), MaxBytesLen)
	}

	// one byte over: only the declared length matters
	enc.Reset()
	enc.PutUint32(MaxBytesLen + 1)
	dec = NewDecoder(enc.Bytes())
	_, err = dec.Bytes("blob", Uint32)
	var se *SizeLimitError
	if !errors.As(err, &se) {
		t.Errorf("want SizeLimitError, got %v", err)
	}
}

func TestBytesNegativeLength(t *testing.T) {
	enc := NewEncoder()
	enc.PutInt16(-1)
	dec := NewDecoder(enc.Bytes())
	_, err := dec.Bytes("blob", Int16)
	var ie *InvalidLengthError
	if !errors.As(err, &ie) {
		t.Errorf("want InvalidLengthError, got %v", err)
	}
	if ie != nil && ie.Len != -1 {
		t.Errorf("want length -1, got %v", ie.Len)
	}
}

func TestBytesLengthOverflow(t *testing.T) {
	blob := make([]byte, 32768)
	enc := NewEncoder()
	err := enc.PutBytes("blob", Int16, blob)
	var oe *LengthOverflowError
	if !errors.As(err, &oe) {
		t.Fatalf("want LengthOverflowError, got %v", err)
	}
	// 32767 still fits an i16 prefix
	if err = enc.PutBytes("blob", Int16, blob[:32767]); err != nil {
		t.Errorf("encode 32767 bytes err: %v", err)
	}
}

func TestEncodeValueType(t *testing.T) {
	schema := Schema{Name: "t", Fields: []Field{{Name: "x", Kind: Int64}}}
	enc := NewEncoder()
	err := schema.Encode(enc, []interface{}{int32(1)})
	var ve *ValueTypeError
	if !errors.As(err, &ve) {
		t.Errorf("want ValueTypeError, got %v", err)
	}
}

func TestSchemaValidate(t *testing.T) {
	bad := Schema{Name: "bad1", Fields: []Field{{Name: "x", Kind: Bytes}}}
	if bad.Validate() == nil {
		t.Errorf("bytes field without prefix validated")
	}
	bad = Schema{Name: "bad2", Fields: []Field{{Name: "x", Kind: Int32, Prefix: Int16}}}
	if bad.Validate() == nil {
		t.Errorf("fixed field with prefix validated")
	}
	bad = Schema{Name: "bad3", Fields: []Field{{Name: "x", Kind: Bytes, Prefix: Bytes}}}
	if bad.Validate() == nil {
		t.Errorf("bytes prefix kind validated")
	}
}
