package codec

import "fmt"

// ICodec serializes application message bodies. The wire layers treat
// the result as opaque bytes.
type ICodec interface {
	Name() string
	Encode(i any) ([]byte, error)
	Decode(d []byte, i any) error
}

// New builds a codec by name: "json", "msgpack", "protobuf", "thrift".
func New(name string) (ICodec, error) {
	switch name {
	case "json":
		return NewJsonCodec(), nil
	case "msgpack":
		return NewMsgpackCodec(), nil
	case "protobuf":
		return NewProtobufCodec(), nil
	case "thrift":
		return NewThriftCodec(), nil
	}
	return nil, fmt.Errorf("mmowire: no codec named %v", name)
}
