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

const maxDepth = 100

// UnmarshalOptions configures decoding.
type UnmarshalOptions struct {
	// PreserveUnknown keeps the raw bytes of undeclared fields on each
	// message so that Marshal writes them back. They are dropped otherwise.
	PreserveUnknown bool
}

// Unmarshal decodes b as a message of type desc, resolving nested message
// types through types.
func Unmarshal(types registry.Types, b []byte, desc *registry.MessageDescriptor) (*dynamic.Message, error) {
	return UnmarshalOptions{}.Unmarshal(types, b, desc)
}

func (o UnmarshalOptions) Unmarshal(types registry.Types, b []byte, desc *registry.MessageDescriptor) (*dynamic.Message, error) {
	m := dynamic.New(desc)
	if err := o.Merge(types, m, b); err != nil {
		return nil, err
	}
	return m, nil
}

// Merge decodes b into dst. Singular fields present in b replace those of
// dst, sub-messages merge recursively and repeated fields append, so
// decoding a concatenation equals merging the decoded parts in order.
func (o UnmarshalOptions) Merge(types registry.Types, dst *dynamic.Message, b []byte) error {
	return observability.ObserveCodec(codecName, "decode", dst.Descriptor().FullName(), func() (int, error) {
		d := decoder{opts: o, types: types}
		return len(b), d.merge(dst, b, 0)
	})
}

type decoder struct {
	opts  UnmarshalOptions
	types registry.Types
}

func (d decoder) merge(m *dynamic.Message, b []byte, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: exceeded maximum nesting depth %d", ErrMalformed, maxDepth)
	}
	desc := m.Descriptor()
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return parseError(n)
		}
		tagLen := n
		fd, known := desc.Field(num)
		if !known {
			vn := protowire.ConsumeFieldValue(num, typ, b[tagLen:])
			if vn < 0 {
				return parseError(vn)
			}
			if d.opts.PreserveUnknown {
				m.AppendUnknown(b[:tagLen+vn])
			}
			b = b[tagLen+vn:]
			continue
		}
		vn, err := d.field(m, fd, typ, b[tagLen:], depth)
		if err != nil {
			return err
		}
		b = b[tagLen+vn:]
	}
	return nil
}

func (d decoder) field(m *dynamic.Message, fd registry.FieldDescriptor, typ protowire.Type, b []byte, depth int) (int, error) {
	typeName := m.Descriptor().FullName()
	want := fd.Kind.WireType()
	if fd.IsMap() {
		want = protowire.BytesType
	}
	if fd.IsList() && fd.Kind.Packable() && typ == protowire.BytesType {
		run, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, parseError(n)
		}
		for len(run) > 0 {
			v, vn, err := d.scalar(typeName, fd, want, run, depth)
			if err != nil {
				return 0, err
			}
			if err := m.Append(fd.Number, v); err != nil {
				return 0, err
			}
			run = run[vn:]
		}
		return n, nil
	}
	if typ != want {
		return 0, &WireTypeError{Type: typeName, Field: fd.Name, Number: fd.Number, Got: typ, Want: want}
	}

	switch {
	case fd.IsMap():
		entry, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, parseError(n)
		}
		return n, d.mapEntry(m, fd, entry, depth)
	case fd.IsList():
		v, n, err := d.scalar(typeName, fd, typ, b, depth)
		if err != nil {
			return 0, err
		}
		return n, m.Append(fd.Number, v)
	case fd.Kind == registry.KindMessage:
		raw, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return 0, parseError(n)
		}
		sub := m.Get(fd.Number).Message
		if sub == nil {
			var err error
			if sub, err = d.newMessage(fd); err != nil {
				return 0, err
			}
		}
		if err := d.merge(sub, raw, depth+1); err != nil {
			return 0, err
		}
		return n, d.set(m, fd, dynamic.OfMessage(sub))
	default:
		v, n, err := d.scalar(typeName, fd, typ, b, depth)
		if err != nil {
			return 0, err
		}
		return n, d.set(m, fd, v)
	}
}

// set stores a singular value; a oneof member replaces its siblings.
func (d decoder) set(m *dynamic.Message, fd registry.FieldDescriptor, v dynamic.Value) error {
	if fd.InOneof() {
		return m.SetOneof(fd.Number, v)
	}
	return m.Set(fd.Number, v)
}

func (d decoder) newMessage(fd registry.FieldDescriptor) (*dynamic.Message, error) {
	desc, err := d.types.Message(fd.TypeName)
	if err != nil {
		return nil, err
	}
	return dynamic.New(desc), nil
}

func (d decoder) mapEntry(m *dynamic.Message, fd registry.FieldDescriptor, b []byte, depth int) error {
	typeName := m.Descriptor().FullName()
	var key string
	var val dynamic.Value
	haveVal := false
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return parseError(n)
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			s, vn := protowire.ConsumeString(b)
			if vn < 0 {
				return parseError(vn)
			}
			if !utf8.ValidString(s) {
				return fmt.Errorf("%w: %s.%s key", ErrInvalidUTF8, typeName, fd.Name)
			}
			key = s
			b = b[vn:]
		case num == 2 && typ == fd.Kind.WireType():
			v, vn, err := d.scalar(typeName, fd, typ, b, depth)
			if err != nil {
				return err
			}
			val, haveVal = v, true
			b = b[vn:]
		case num == 1 || num == 2:
			want := fd.Kind.WireType()
			if num == 1 {
				want = protowire.BytesType
			}
			return &WireTypeError{Type: typeName, Field: fd.Name, Number: num, Got: typ, Want: want}
		default:
			vn := protowire.ConsumeFieldValue(num, typ, b)
			if vn < 0 {
				return parseError(vn)
			}
			b = b[vn:]
		}
	}
	if !haveVal && fd.Kind == registry.KindMessage {
		sub, err := d.newMessage(fd)
		if err != nil {
			return err
		}
		val = dynamic.OfMessage(sub)
	}
	return m.PutMapEntry(fd.Number, key, val)
}

// scalar decodes one value of fd's kind without its tag. Message values are
// decoded into a fresh message.
func (d decoder) scalar(typeName string, fd registry.FieldDescriptor, typ protowire.Type, b []byte, depth int) (dynamic.Value, int, error) {
	switch typ {
	case protowire.VarintType:
		x, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return dynamic.Value{}, 0, parseError(n)
		}
		return varintValue(fd.Kind, x), n, nil
	case protowire.Fixed32Type:
		x, n := protowire.ConsumeFixed32(b)
		if n < 0 {
			return dynamic.Value{}, 0, parseError(n)
		}
		switch fd.Kind {
		case registry.KindFloat:
			return dynamic.OfFloat(float64(math.Float32frombits(x))), n, nil
		case registry.KindSfixed32:
			return dynamic.OfInt(int64(int32(x))), n, nil
		default:
			return dynamic.OfUint(uint64(x)), n, nil
		}
	case protowire.Fixed64Type:
		x, n := protowire.ConsumeFixed64(b)
		if n < 0 {
			return dynamic.Value{}, 0, parseError(n)
		}
		switch fd.Kind {
		case registry.KindDouble:
			return dynamic.OfFloat(math.Float64frombits(x)), n, nil
		case registry.KindSfixed64:
			return dynamic.OfInt(int64(x)), n, nil
		default:
			return dynamic.OfUint(x), n, nil
		}
	case protowire.BytesType:
		raw, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return dynamic.Value{}, 0, parseError(n)
		}
		switch fd.Kind {
		case registry.KindString:
			if !utf8.Valid(raw) {
				return dynamic.Value{}, 0, fmt.Errorf("%w: %s.%s", ErrInvalidUTF8, typeName, fd.Name)
			}
			return dynamic.OfString(string(raw)), n, nil
		case registry.KindMessage:
			sub, err := d.newMessage(fd)
			if err != nil {
				return dynamic.Value{}, 0, err
			}
			if err := d.merge(sub, raw, depth+1); err != nil {
				return dynamic.Value{}, 0, err
			}
			return dynamic.OfMessage(sub), n, nil
		default:
			return dynamic.OfBytes(append([]byte(nil), raw...)), n, nil
		}
	default:
		return dynamic.Value{}, 0, fmt.Errorf("%w: unsupported wire type %d for %s.%s", ErrMalformed, typ, typeName, fd.Name)
	}
}

func varintValue(kind registry.Kind, x uint64) dynamic.Value {
	switch kind {
	case registry.KindBool:
		return dynamic.OfBool(x != 0)
	case registry.KindInt32, registry.KindEnum:
		return dynamic.OfInt(int64(int32(x)))
	case registry.KindInt64:
		return dynamic.OfInt(int64(x))
	case registry.KindUint32:
		return dynamic.OfUint(uint64(uint32(x)))
	case registry.KindSint32:
		return dynamic.OfInt(int64(int32(protowire.DecodeZigZag(x & math.MaxUint32))))
	case registry.KindSint64:
		return dynamic.OfInt(protowire.DecodeZigZag(x))
	default:
		return dynamic.OfUint(x)
	}
}
