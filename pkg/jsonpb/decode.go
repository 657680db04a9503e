package jsonpb

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/danmuck/phenopackets/internal/observability"
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
	"github.com/tidwall/gjson"
	"google.golang.org/protobuf/encoding/protowire"
)

const maxDepth = 100

// UnmarshalOptions configures JSON decoding.
type UnmarshalOptions struct {
	// RejectUnknown fails on object keys the message does not declare.
	// They are ignored otherwise.
	RejectUnknown bool
}

// Unmarshal decodes a JSON document into a message of type desc. Both
// lowerCamelCase and snake_case keys are accepted. Enum values may be given
// by name or number; an unknown name fails with ErrUnknownEnumValue.
func Unmarshal(types registry.Types, data []byte, desc *registry.MessageDescriptor) (*dynamic.Message, error) {
	return UnmarshalOptions{}.Unmarshal(types, data, desc)
}

func (o UnmarshalOptions) Unmarshal(types registry.Types, data []byte, desc *registry.MessageDescriptor) (*dynamic.Message, error) {
	var out *dynamic.Message
	err := observability.ObserveCodec(codecName, "decode", desc.FullName(), func() (int, error) {
		if !gjson.ValidBytes(data) {
			return 0, ErrInvalidJSON
		}
		d := decoder{opts: o, types: types}
		m, err := d.message(desc, "", gjson.ParseBytes(data), 0)
		if err != nil {
			return 0, err
		}
		out = m
		return len(data), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type decoder struct {
	opts  UnmarshalOptions
	types registry.Types
}

func jsonKind(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	}
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "bool"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		return "value"
	}
}

// message decodes r into a fresh message. field names the enclosing field
// for error context.
func (d decoder) message(desc *registry.MessageDescriptor, field string, r gjson.Result, depth int) (*dynamic.Message, error) {
	if depth > maxDepth {
		return nil, invalid(desc.FullName(), field, "exceeded maximum nesting depth %d", maxDepth)
	}
	m := dynamic.New(desc)
	switch desc.WellKnown() {
	case registry.WellKnownTimestamp, registry.WellKnownDuration:
		return m, d.wellKnown(m, field, r)
	}
	if !r.IsObject() {
		return nil, &JSONTypeError{Type: desc.FullName(), Field: field, Want: "object", Got: jsonKind(r)}
	}

	seen := make(map[protowire.Number]bool)
	oneofs := make(map[string]string)
	var err error
	r.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		fd, ok := desc.FieldByName(name)
		if !ok {
			if d.opts.RejectUnknown {
				err = fmt.Errorf("%w: %s.%s", ErrUnknownField, desc.FullName(), name)
				return false
			}
			return true
		}
		if seen[fd.Number] {
			err = fmt.Errorf("%w: %s.%s", ErrDuplicateField, desc.FullName(), fd.Name)
			return false
		}
		seen[fd.Number] = true
		if value.Type == gjson.Null {
			return true
		}
		if fd.InOneof() {
			if prev, dup := oneofs[fd.OneofName]; dup {
				err = &dynamic.OneofError{
					Type:     desc.FullName(),
					Oneof:    fd.OneofName,
					Branches: []string{prev, fd.Name},
				}
				return false
			}
			oneofs[fd.OneofName] = fd.Name
		}
		err = d.field(m, fd, value, depth)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (d decoder) wellKnown(m *dynamic.Message, field string, r gjson.Result) error {
	desc := m.Descriptor()
	if r.Type != gjson.String {
		return &JSONTypeError{Type: desc.FullName(), Field: field, Want: "string", Got: jsonKind(r)}
	}
	var seconds int64
	var nanos int32
	var err error
	if desc.WellKnown() == registry.WellKnownTimestamp {
		seconds, nanos, err = ParseTimestamp(r.Str)
	} else {
		seconds, nanos, err = ParseDuration(r.Str)
	}
	if err != nil {
		return invalid(desc.FullName(), field, "%v", err)
	}
	if err := m.Set(1, dynamic.OfInt(seconds)); err != nil {
		return err
	}
	return m.Set(2, dynamic.OfInt(int64(nanos)))
}

func (d decoder) field(m *dynamic.Message, fd registry.FieldDescriptor, r gjson.Result, depth int) error {
	typeName := m.Descriptor().FullName()
	switch {
	case fd.IsList():
		if !r.IsArray() {
			return &JSONTypeError{Type: typeName, Field: fd.Name, Want: "array", Got: jsonKind(r)}
		}
		var err error
		r.ForEach(func(_, el gjson.Result) bool {
			if el.Type == gjson.Null {
				err = &JSONTypeError{Type: typeName, Field: fd.Name, Want: "list element", Got: "null"}
				return false
			}
			var v dynamic.Value
			if v, err = d.scalar(typeName, fd, el, depth); err != nil {
				return false
			}
			err = m.Append(fd.Number, v)
			return err == nil
		})
		return err
	case fd.IsMap():
		if !r.IsObject() {
			return &JSONTypeError{Type: typeName, Field: fd.Name, Want: "object", Got: jsonKind(r)}
		}
		var err error
		r.ForEach(func(key, el gjson.Result) bool {
			var v dynamic.Value
			if v, err = d.scalar(typeName, fd, el, depth); err != nil {
				return false
			}
			err = m.PutMapEntry(fd.Number, key.String(), v)
			return err == nil
		})
		return err
	default:
		v, err := d.scalar(typeName, fd, r, depth)
		if err != nil {
			return err
		}
		return m.Set(fd.Number, v)
	}
}

func (d decoder) scalar(typeName string, fd registry.FieldDescriptor, r gjson.Result, depth int) (dynamic.Value, error) {
	mismatch := func(want string) error {
		return &JSONTypeError{Type: typeName, Field: fd.Name, Want: want, Got: jsonKind(r)}
	}
	switch fd.Kind.Category() {
	case registry.CategoryBool:
		switch r.Type {
		case gjson.True:
			return dynamic.OfBool(true), nil
		case gjson.False:
			return dynamic.OfBool(false), nil
		}
		return dynamic.Value{}, mismatch("bool")
	case registry.CategoryInt:
		raw, ok := numberText(r)
		if !ok {
			return dynamic.Value{}, mismatch("integer")
		}
		n, err := parseInt(raw, fd.Kind.Is32Bit())
		if err != nil {
			return dynamic.Value{}, invalid(typeName, fd.Name, "%v", err)
		}
		return dynamic.OfInt(n), nil
	case registry.CategoryUint:
		raw, ok := numberText(r)
		if !ok {
			return dynamic.Value{}, mismatch("unsigned integer")
		}
		n, err := parseUint(raw, fd.Kind.Is32Bit())
		if err != nil {
			return dynamic.Value{}, invalid(typeName, fd.Name, "%v", err)
		}
		return dynamic.OfUint(n), nil
	case registry.CategoryFloat:
		f, err := parseFloat(r, fd.Kind == registry.KindFloat)
		if err != nil {
			if r.Type != gjson.Number && r.Type != gjson.String {
				return dynamic.Value{}, mismatch("number")
			}
			return dynamic.Value{}, invalid(typeName, fd.Name, "%v", err)
		}
		return dynamic.OfFloat(f), nil
	case registry.CategoryString:
		if r.Type != gjson.String {
			return dynamic.Value{}, mismatch("string")
		}
		return dynamic.OfString(r.Str), nil
	case registry.CategoryBytes:
		if r.Type != gjson.String {
			return dynamic.Value{}, mismatch("base64 string")
		}
		b, err := decodeBase64(r.Str)
		if err != nil {
			return dynamic.Value{}, invalid(typeName, fd.Name, "%v", err)
		}
		return dynamic.OfBytes(b), nil
	case registry.CategoryEnum:
		return d.enum(typeName, fd, r)
	case registry.CategoryMessage:
		desc, err := d.types.Message(fd.TypeName)
		if err != nil {
			return dynamic.Value{}, err
		}
		sub, err := d.message(desc, fd.Name, r, depth+1)
		if err != nil {
			return dynamic.Value{}, err
		}
		return dynamic.OfMessage(sub), nil
	default:
		return dynamic.Value{}, mismatch(fd.Kind.String())
	}
}

func (d decoder) enum(typeName string, fd registry.FieldDescriptor, r gjson.Result) (dynamic.Value, error) {
	ed, err := d.types.Enum(fd.TypeName)
	if err != nil {
		return dynamic.Value{}, err
	}
	switch r.Type {
	case gjson.String:
		n, ok := ed.NumberOf(r.Str)
		if !ok {
			return dynamic.Value{}, &UnknownEnumError{Enum: ed.FullName(), Field: typeName + "." + fd.Name, Name: r.Str}
		}
		return dynamic.OfEnum(n), nil
	case gjson.Number:
		n, err := parseInt(r.Raw, true)
		if err != nil {
			return dynamic.Value{}, invalid(typeName, fd.Name, "%v", err)
		}
		return dynamic.OfInt(n), nil
	default:
		return dynamic.Value{}, &JSONTypeError{Type: typeName, Field: fd.Name, Want: "enum name or number", Got: jsonKind(r)}
	}
}

// numberText returns the text of a JSON number or a quoted number.
func numberText(r gjson.Result) (string, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Raw, true
	case gjson.String:
		return r.Str, true
	default:
		return "", false
	}
}

func parseInt(s string, is32 bool) (int64, error) {
	bits := 64
	if is32 {
		bits = 32
	}
	if n, err := strconv.ParseInt(s, 10, bits); err == nil {
		return n, nil
	}
	// Accept integral values written with a fraction or exponent, e.g. 1e3.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	if is32 && (f < math.MinInt32 || f > math.MaxInt32) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%q out of range", s)
	}
	return int64(f), nil
}

func parseUint(s string, is32 bool) (uint64, error) {
	bits := 64
	if is32 {
		bits = 32
	}
	if n, err := strconv.ParseUint(s, 10, bits); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < 0 {
		return 0, fmt.Errorf("%q is not an unsigned integer", s)
	}
	if is32 && f > math.MaxUint32 || f >= math.MaxUint64 {
		return 0, fmt.Errorf("%q out of range", s)
	}
	return uint64(f), nil
}

func parseFloat(r gjson.Result, is32 bool) (float64, error) {
	var s string
	switch r.Type {
	case gjson.Number:
		s = r.Raw
	case gjson.String:
		switch r.Str {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
		s = r.Str
	default:
		return 0, fmt.Errorf("not a number")
	}
	bits := 64
	if is32 {
		bits = 32
	}
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid number", s)
	}
	return f, nil
}

// decodeBase64 accepts standard and URL-safe alphabets, padded or not.
func decodeBase64(s string) ([]byte, error) {
	enc := base64.StdEncoding
	if strings.ContainsAny(s, "-_") {
		enc = base64.URLEncoding
	}
	if len(s)%4 != 0 {
		enc = enc.WithPadding(base64.NoPadding)
	}
	return enc.DecodeString(s)
}
