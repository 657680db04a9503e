package jsonpb

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/danmuck/phenopackets/internal/observability"
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/pretty"
)

const codecName = "json"

// MarshalOptions configures JSON output.
type MarshalOptions struct {
	// EmitDefaults writes unpopulated fields with their default value:
	// scalars as their zero, lists as [], maps as {} and messages as null.
	// Unset oneof members are never written.
	EmitDefaults bool
	// UseProtoNames writes snake_case field names instead of lowerCamelCase.
	UseProtoNames bool
	// Indent, when non-empty, pretty-prints the output with this indent.
	Indent string
}

// Marshal writes m as canonical JSON, resolving enum names through types.
func Marshal(types registry.Types, m *dynamic.Message) ([]byte, error) {
	return MarshalOptions{}.Marshal(types, m)
}

func (o MarshalOptions) Marshal(types registry.Types, m *dynamic.Message) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	var out []byte
	err := observability.ObserveCodec(codecName, "encode", m.Descriptor().FullName(), func() (int, error) {
		e := encoder{opts: o, types: types, w: &jwriter.Writer{NoEscapeHTML: true}}
		if err := e.message(m); err != nil {
			return 0, err
		}
		if e.w.Error != nil {
			return 0, e.w.Error
		}
		buf, err := e.w.BuildBytes()
		if err != nil {
			return 0, err
		}
		if o.Indent != "" {
			buf = pretty.PrettyOptions(buf, &pretty.Options{Width: 80, Indent: o.Indent})
		}
		out = buf
		return len(out), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type encoder struct {
	opts  MarshalOptions
	types registry.Types
	w     *jwriter.Writer
}

func (e encoder) message(m *dynamic.Message) error {
	desc := m.Descriptor()
	switch desc.WellKnown() {
	case registry.WellKnownTimestamp:
		s, err := FormatTimestamp(m.Get(1).Int, int32(m.Get(2).Int))
		if err != nil {
			return invalid(desc.FullName(), "", "%v", err)
		}
		e.w.String(s)
		return nil
	case registry.WellKnownDuration:
		s, err := FormatDuration(m.Get(1).Int, int32(m.Get(2).Int))
		if err != nil {
			return invalid(desc.FullName(), "", "%v", err)
		}
		e.w.String(s)
		return nil
	}
	if err := dynamic.CheckOneofs(m); err != nil {
		return err
	}

	e.w.RawByte('{')
	first := true
	for i := 0; i < desc.NumFields(); i++ {
		fd := desc.FieldAt(i)
		present := m.Has(fd.Number)
		if !present && (!e.opts.EmitDefaults || fd.InOneof()) {
			continue
		}
		if !first {
			e.w.RawByte(',')
		}
		first = false
		name := fd.JSONName
		if e.opts.UseProtoNames {
			name = fd.Name
		}
		e.w.String(name)
		e.w.RawByte(':')
		var err error
		if present {
			err = e.value(desc.FullName(), fd, m.Get(fd.Number))
		} else {
			err = e.defaultValue(desc.FullName(), fd)
		}
		if err != nil {
			return err
		}
	}
	e.w.RawByte('}')
	return nil
}

func (e encoder) value(typeName string, fd registry.FieldDescriptor, v dynamic.Value) error {
	switch {
	case fd.IsList():
		e.w.RawByte('[')
		for i, el := range v.List {
			if i > 0 {
				e.w.RawByte(',')
			}
			if err := e.scalar(typeName, fd, el); err != nil {
				return err
			}
		}
		e.w.RawByte(']')
		return nil
	case fd.IsMap():
		e.w.RawByte('{')
		for i, key := range dynamic.SortedKeys(v) {
			if i > 0 {
				e.w.RawByte(',')
			}
			e.w.String(key)
			e.w.RawByte(':')
			if err := e.scalar(typeName, fd, v.Map[key]); err != nil {
				return err
			}
		}
		e.w.RawByte('}')
		return nil
	default:
		return e.scalar(typeName, fd, v)
	}
}

func (e encoder) defaultValue(typeName string, fd registry.FieldDescriptor) error {
	switch {
	case fd.IsList():
		e.w.RawString("[]")
	case fd.IsMap():
		e.w.RawString("{}")
	case fd.Kind == registry.KindMessage:
		e.w.RawString("null")
	default:
		return e.scalar(typeName, fd, dynamic.Value{})
	}
	return nil
}

func (e encoder) scalar(typeName string, fd registry.FieldDescriptor, v dynamic.Value) error {
	w := e.w
	switch fd.Kind {
	case registry.KindBool:
		w.Bool(v.Bool)
	case registry.KindInt32, registry.KindSint32, registry.KindSfixed32:
		w.Int32(int32(v.Int))
	case registry.KindUint32, registry.KindFixed32:
		w.Uint32(uint32(v.Uint))
	case registry.KindInt64, registry.KindSint64, registry.KindSfixed64:
		w.Int64Str(v.Int)
	case registry.KindUint64, registry.KindFixed64:
		w.Uint64Str(v.Uint)
	case registry.KindFloat:
		if !writeSpecialFloat(w, v.Float) {
			w.Float32(float32(v.Float))
		}
	case registry.KindDouble:
		if !writeSpecialFloat(w, v.Float) {
			w.Float64(v.Float)
		}
	case registry.KindString:
		if !utf8.ValidString(v.Str) {
			return invalid(typeName, fd.Name, "invalid UTF-8")
		}
		w.String(v.Str)
	case registry.KindBytes:
		if len(v.Bytes) == 0 {
			w.String("")
		} else {
			w.Base64Bytes(v.Bytes)
		}
	case registry.KindEnum:
		ed, err := e.types.Enum(fd.TypeName)
		if err != nil {
			return err
		}
		if name, ok := ed.NameOf(v.Enum()); ok {
			w.String(name)
		} else {
			w.Int32(v.Enum())
		}
	case registry.KindMessage:
		if v.Message == nil {
			w.RawString("null")
			return nil
		}
		return e.message(v.Message)
	default:
		return fmt.Errorf("%w: %s.%s has kind %s", ErrInvalidValue, typeName, fd.Name, fd.Kind)
	}
	return nil
}

func writeSpecialFloat(w *jwriter.Writer, f float64) bool {
	switch {
	case math.IsNaN(f):
		w.String("NaN")
	case math.IsInf(f, 1):
		w.String("Infinity")
	case math.IsInf(f, -1):
		w.String("-Infinity")
	default:
		return false
	}
	return true
}
