package wire

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/danmuck/phenopackets/internal/observability"
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
	"google.golang.org/protobuf/encoding/protowire"
)

const codecName = "binary"

// Marshal encodes m in field-number order. Fields at their default value are
// omitted, repeated numerics are packed and map entries are written in key
// order, so equal trees always produce equal bytes. Unknown fields retained
// by a decoder are written after the known ones.
func Marshal(m *dynamic.Message) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	var out []byte
	err := observability.ObserveCodec(codecName, "encode", m.Descriptor().FullName(), func() (int, error) {
		var err error
		out, err = AppendMessage(nil, m)
		return len(out), err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendMessage appends the encoding of m to b.
func AppendMessage(b []byte, m *dynamic.Message) ([]byte, error) {
	if err := dynamic.CheckOneofs(m); err != nil {
		return b, err
	}
	var err error
	m.Range(func(fd registry.FieldDescriptor, v dynamic.Value) bool {
		b, err = appendField(b, m.Descriptor().FullName(), fd, v)
		return err == nil
	})
	if err != nil {
		return b, err
	}
	return append(b, m.Unknown()...), nil
}

func appendField(b []byte, typeName string, fd registry.FieldDescriptor, v dynamic.Value) ([]byte, error) {
	switch {
	case fd.IsMap():
		return appendMap(b, typeName, fd, v)
	case fd.IsList() && fd.Kind.Packable():
		var run []byte
		for _, el := range v.List {
			run = appendScalar(run, fd.Kind, el)
		}
		b = protowire.AppendTag(b, fd.Number, protowire.BytesType)
		return protowire.AppendBytes(b, run), nil
	case fd.IsList():
		var err error
		for _, el := range v.List {
			if b, err = appendSingle(b, typeName, fd, fd.Number, el); err != nil {
				return b, err
			}
		}
		return b, nil
	default:
		return appendSingle(b, typeName, fd, fd.Number, v)
	}
}

// appendMap writes each entry as a message with key=1 and value=2. Both are
// always written, defaults included.
func appendMap(b []byte, typeName string, fd registry.FieldDescriptor, v dynamic.Value) ([]byte, error) {
	for _, key := range dynamic.SortedKeys(v) {
		if !utf8.ValidString(key) {
			return b, fmt.Errorf("%w: %s.%s key", ErrInvalidUTF8, typeName, fd.Name)
		}
		entry := protowire.AppendTag(nil, 1, protowire.BytesType)
		entry = protowire.AppendString(entry, key)
		var err error
		if entry, err = appendSingle(entry, typeName, fd, 2, v.Map[key]); err != nil {
			return b, err
		}
		b = protowire.AppendTag(b, fd.Number, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	return b, nil
}

func appendSingle(b []byte, typeName string, fd registry.FieldDescriptor, num protowire.Number, v dynamic.Value) ([]byte, error) {
	switch fd.Kind {
	case registry.KindMessage:
		sub, err := AppendMessage(nil, v.Message)
		if err != nil {
			return b, err
		}
		b = protowire.AppendTag(b, num, protowire.BytesType)
		return protowire.AppendBytes(b, sub), nil
	case registry.KindString:
		if !utf8.ValidString(v.Str) {
			return b, fmt.Errorf("%w: %s.%s", ErrInvalidUTF8, typeName, fd.Name)
		}
	}
	b = protowire.AppendTag(b, num, fd.Kind.WireType())
	return appendScalar(b, fd.Kind, v), nil
}

// appendScalar appends a value without its tag.
func appendScalar(b []byte, kind registry.Kind, v dynamic.Value) []byte {
	switch kind {
	case registry.KindBool:
		return protowire.AppendVarint(b, protowire.EncodeBool(v.Bool))
	case registry.KindInt32, registry.KindInt64, registry.KindEnum:
		return protowire.AppendVarint(b, uint64(v.Int))
	case registry.KindUint32, registry.KindUint64:
		return protowire.AppendVarint(b, v.Uint)
	case registry.KindSint32, registry.KindSint64:
		return protowire.AppendVarint(b, protowire.EncodeZigZag(v.Int))
	case registry.KindFixed32:
		return protowire.AppendFixed32(b, uint32(v.Uint))
	case registry.KindSfixed32:
		return protowire.AppendFixed32(b, uint32(int32(v.Int)))
	case registry.KindFloat:
		return protowire.AppendFixed32(b, math.Float32bits(float32(v.Float)))
	case registry.KindFixed64:
		return protowire.AppendFixed64(b, v.Uint)
	case registry.KindSfixed64:
		return protowire.AppendFixed64(b, uint64(v.Int))
	case registry.KindDouble:
		return protowire.AppendFixed64(b, math.Float64bits(v.Float))
	case registry.KindString:
		return protowire.AppendString(b, v.Str)
	case registry.KindBytes:
		return protowire.AppendBytes(b, v.Bytes)
	default:
		return b
	}
}
