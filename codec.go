package pubnode

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Codec marshals typed messages (typically structs generated from a
// schema) to and from bytes. Implementations must be deterministic and
// must return an error, never panic, on malformed input.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Proto returns the protobuf binary Codec. Messages must be pointers to
// protobuf-generated structs. This is the default codec for a session.
func Proto() Codec { return protoCodec{} }

type protoCodec struct{}

func (protoCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("pubnode: %T does not implement proto.Message", v)
	}
	return proto.Marshal(m)
}

func (protoCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(proto.Message)
	if !ok {
		return fmt.Errorf("pubnode: %T does not implement proto.Message", v)
	}
	return proto.Unmarshal(data, m)
}

// JSON returns a Codec backed by encoding/json, for message types
// without generated schema code.
func JSON() Codec { return jsonCodec{} }

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
