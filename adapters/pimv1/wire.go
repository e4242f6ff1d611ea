// Package pimv1 is the wire contract of the ansys.api.platform.instancemanagement.v1 ProductInstanceManager service.
//
// Messages are encoded by hand with protowire and travel inside emptypb.Empty as unknown fields, so the
// default gRPC proto codec carries them without generated code. Unknown fields on decode are skipped.
package pimv1

import (
	"maps"
	"slices"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/emptypb"
)

// Message is implemented by every request and response of the service.
type Message interface {
	Marshal() []byte
	Unmarshal(b []byte) error
}

// ToEmpty packs m into an emptypb.Empty ready to be sent with the proto codec.
func ToEmpty(m Message) *emptypb.Empty {
	e := &emptypb.Empty{}
	e.ProtoReflect().SetUnknown(protoreflect.RawFields(m.Marshal()))
	return e
}

// FromEmpty decodes the raw bytes carried by e into m.
func FromEmpty(e *emptypb.Empty, m Message) error {
	return m.Unmarshal(e.ProtoReflect().GetUnknown())
}

// decode walks every field of b. field returns the number of bytes it consumed, or 0 to skip the field.
func decode(b []byte, field func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		n, err := field(num, typ, b)
		if err != nil {
			return err
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func consumeString(typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

func consumeBool(typ protowire.Type, b []byte, dst *bool) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = protowire.DecodeBool(v)
	}
	return n
}

func consumeMessage(typ protowire.Type, b []byte, fn func(b []byte) error) (int, error) {
	if typ != protowire.BytesType {
		return 0, nil
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n, nil
	}
	return n, fn(v)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendRepeatedString(b []byte, num protowire.Number, vs []string) []byte {
	for _, v := range vs {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, v)
	}
	return b
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendMessage(b []byte, num protowire.Number, m []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m)
}

// Map entries are messages with key=1 and value=2; keys are sorted so encoding is deterministic.
func appendStringMap(b []byte, num protowire.Number, m map[string]string) []byte {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		entry := appendString(nil, 1, k)
		entry = appendString(entry, 2, m[k])
		b = appendMessage(b, num, entry)
	}
	return b
}

func consumeStringMapEntry(b []byte, dst map[string]string) error {
	var k, v string
	err := decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &k), nil
		case 2:
			return consumeString(typ, b, &v), nil
		}
		return 0, nil
	})
	if err != nil {
		return err
	}
	dst[k] = v
	return nil
}
