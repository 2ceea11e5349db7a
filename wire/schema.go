package wire

import "fmt"

// Field describes one wire field: a name for diagnostics, the wire
// kind, and for Bytes fields the kind of the leading length prefix.
type Field struct {
	Name   string
	Kind   Kind
	Prefix Kind
}

// Schema is the ordered field table of one message body. Encoding is
// the concatenation of every field in declared order; decoding
// consumes the same sequence and short-circuits on the first failure.
type Schema struct {
	Name   string
	Fields []Field
}

func (s Schema) Validate() error {
	for _, f := range s.Fields {
		switch {
		case f.Kind == Bytes:
			if !f.Prefix.Fixed() {
				return fmt.Errorf("mmowire: schema %v field %v: %w", s.Name, f.Name, ErrInvalidPrefixKind)
			}
		case f.Kind.Fixed():
			if f.Prefix != None {
				return fmt.Errorf("mmowire: schema %v field %v: %w", s.Name, f.Name, ErrPrefixOnFixed)
			}
		default:
			return fmt.Errorf("mmowire: schema %v field %v: invalid kind %v", s.Name, f.Name, f.Kind)
		}
	}
	return nil
}

// Encode appends the fields' encodings to enc. values must supply one
// value per field with the Go type matching the field kind
// (int8..uint64, []byte for Bytes).
func (s Schema) Encode(enc *Encoder, values []interface{}) error {
	if len(values) != len(s.Fields) {
		return fmt.Errorf("mmowire: schema %v: %v values for %v fields", s.Name, len(values), len(s.Fields))
	}
	for i, f := range s.Fields {
		if err := encodeField(enc, f, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// Decode consumes one value per field from data, returning the values
// and the number of bytes consumed. No partial result is returned: the
// first field error aborts the whole decode.
func (s Schema) Decode(data []byte) ([]interface{}, int, error) {
	dec := NewDecoder(data)
	values := make([]interface{}, 0, len(s.Fields))
	for _, f := range s.Fields {
		v, err := decodeField(dec, f)
		if err != nil {
			return nil, 0, err
		}
		values = append(values, v)
	}
	return values, dec.Consumed(), nil
}

func encodeField(enc *Encoder, f Field, value interface{}) error {
	switch f.Kind {
	case Int8:
		v, ok := value.(int8)
		if !ok {
			return &ValueTypeError{Field: f.Name, Kind: f.Kind, Value: value}
		}
		enc.PutInt8(v)
	case Uint8:
		v, ok := value.(uint8)
		if !ok {
			return &ValueTypeError{Field: f.Name, Kind: f.Kind, Value: value}
		}
		enc.PutUint8(v)
	case Int16:
		v, ok := value.(int16)
		if !ok {
			return &ValueTypeError{Field: f.Name, Kind: f.Kind, Value: value}
		}
		enc.PutInt16(v)
	case Uint16:
		v, ok := value.(uint16)
		if !ok {
			return &ValueTypeError{Field: f.Name, Kind: f.Kind, Value: value}
		}
		enc.PutUint16(v)
	case Int32:
		v, ok := value.(int32)
		if !ok {
			return &ValueTypeError{Field: f.Name, Kind: f.Kind, Value: value}
		}
		enc.PutInt32(v)
	case Uint32:
		v, ok := value.(uint32)
		if !ok {
			return &ValueTypeError{Field: f.Name, Kind: f.Kind, Value: value}
		}
		enc.PutUint32(v)
	case Int64:
		v, ok := value.(int64)
		if !ok {
			return &ValueTypeError{Field: f.Name, Kind: f.Kind, Value: value}
		}
		enc.PutInt64(v)
	case Uint64:
		v, ok := value.(uint64)
		if !ok {
			return &ValueTypeError{Field: f.Name, Kind: f.Kind, Value: value}
		}
		enc.PutUint64(v)
	case Bytes:
		v, ok := value.([]byte)
		if !ok {
			return &ValueTypeError{Field: f.Name, Kind: f.Kind, Value: value}
		}
		return enc.PutBytes(f.Name, f.Prefix, v)
	default:
		return &ValueTypeError{Field: f.Name, Kind: f.Kind, Value: value}
	}
	return nil
}

func decodeField(dec *Decoder, f Field) (interface{}, error) {
	switch f.Kind {
	case Int8:
		return dec.Int8(f.Name)
	case Uint8:
		return dec.Uint8(f.Name)
	case Int16:
		return dec.Int16(f.Name)
	case Uint16:
		return dec.Uint16(f.Name)
	case Int32:
		return dec.Int32(f.Name)
	case Uint32:
		return dec.Uint32(f.Name)
	case Int64:
		return dec.Int64(f.Name)
	case Uint64:
		return dec.Uint64(f.Name)
	case Bytes:
		return dec.Bytes(f.Name, f.Prefix)
	}
	return nil, &ValueTypeError{Field: f.Name, Kind: f.Kind, Value: nil}
}
