package codec

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
)

type ProtobufCodec struct{}

func NewProtobufCodec() *ProtobufCodec {
	return &ProtobufCodec{}
}

func (c *ProtobufCodec) Name() string {
	return "protobuf"
}

func (c *ProtobufCodec) Encode(i any) ([]byte, error) {
	m, ok := i.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("mmowire: %T is not a proto.Message", i)
	}
	return proto.Marshal(m)
}

func (c *ProtobufCodec) Decode(d []byte, i any) error {
	m, ok := i.(proto.Message)
	if !ok {
		return fmt.Errorf("mmowire: %T is not a proto.Message", i)
	}
	return proto.Unmarshal(d, m)
}
