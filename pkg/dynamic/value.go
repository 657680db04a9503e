package dynamic

import (
	"bytes"
	"math"

	"github.com/danmuck/phenopackets/pkg/registry"
)

// Value holds one field value. Which member is meaningful is decided by the
// field descriptor: scalars use the member matching the kind category,
// repeated fields use List and map fields use Map.
type Value struct {
	Bool    bool
	Int     int64
	Uint    uint64
	Float   float64
	Str     string
	Bytes   []byte
	Message *Message
	List    []Value
	Map     map[string]Value
}

func OfBool(v bool) Value            { return Value{Bool: v} }
func OfInt(v int64) Value            { return Value{Int: v} }
func OfUint(v uint64) Value          { return Value{Uint: v} }
func OfFloat(v float64) Value        { return Value{Float: v} }
func OfString(v string) Value        { return Value{Str: v} }
func OfBytes(v []byte) Value         { return Value{Bytes: v} }
func OfEnum(v int32) Value           { return Value{Int: int64(v)} }
func OfMessage(v *Message) Value     { return Value{Message: v} }
func OfList(vs ...Value) Value       { return Value{List: vs} }
func OfMap(m map[string]Value) Value { return Value{Map: m} }

// Enum returns the enum number stored in v.
func (v Value) Enum() int32 { return int32(v.Int) }

// isZero reports whether v is the declared default for fd.
func isZero(fd registry.FieldDescriptor, v Value) bool {
	switch fd.Cardinality {
	case registry.Repeated:
		return len(v.List) == 0
	case registry.Map:
		return len(v.Map) == 0
	}
	return scalarZero(fd.Kind, v)
}

func scalarZero(kind registry.Kind, v Value) bool {
	switch kind.Category() {
	case registry.CategoryBool:
		return !v.Bool
	case registry.CategoryInt, registry.CategoryEnum:
		return v.Int == 0
	case registry.CategoryUint:
		return v.Uint == 0
	case registry.CategoryFloat:
		// -0.0 is not the default; its sign bit survives a round trip.
		return math.Float64bits(v.Float) == 0
	case registry.CategoryString:
		return v.Str == ""
	case registry.CategoryBytes:
		return len(v.Bytes) == 0
	case registry.CategoryMessage:
		return v.Message == nil
	default:
		return true
	}
}

// normalize checks v against fd and returns the canonical stored form.
func normalize(typeName string, fd registry.FieldDescriptor, v Value) (Value, error) {
	switch fd.Cardinality {
	case registry.Repeated:
		if v.Map != nil {
			return Value{}, mismatch(typeName, fd.Name, "map value for repeated field")
		}
		out := make([]Value, 0, len(v.List))
		for _, el := range v.List {
			if fd.Kind == registry.KindMessage && el.Message == nil {
				continue
			}
			n, err := normalizeScalar(typeName, fd, el)
			if err != nil {
				return Value{}, err
			}
			out = append(out, n)
		}
		return Value{List: out}, nil
	case registry.Map:
		if v.List != nil {
			return Value{}, mismatch(typeName, fd.Name, "list value for map field")
		}
		out := make(map[string]Value, len(v.Map))
		for k, el := range v.Map {
			n, err := normalizeScalar(typeName, fd, el)
			if err != nil {
				return Value{}, err
			}
			out[k] = n
		}
		return Value{Map: out}, nil
	}
	if v.List != nil || v.Map != nil {
		return Value{}, mismatch(typeName, fd.Name, "collection value for singular field")
	}
	return normalizeScalar(typeName, fd, v)
}

func normalizeScalar(typeName string, fd registry.FieldDescriptor, v Value) (Value, error) {
	switch fd.Kind.Category() {
	case registry.CategoryBool:
		return Value{Bool: v.Bool}, nil
	case registry.CategoryInt, registry.CategoryEnum:
		if fd.Kind.Is32Bit() && (v.Int < math.MinInt32 || v.Int > math.MaxInt32) {
			return Value{}, mismatch(typeName, fd.Name, "value overflows 32 bits")
		}
		return Value{Int: v.Int}, nil
	case registry.CategoryUint:
		if fd.Kind.Is32Bit() && v.Uint > math.MaxUint32 {
			return Value{}, mismatch(typeName, fd.Name, "value overflows 32 bits")
		}
		return Value{Uint: v.Uint}, nil
	case registry.CategoryFloat:
		if fd.Kind == registry.KindFloat {
			return Value{Float: float64(float32(v.Float))}, nil
		}
		return Value{Float: v.Float}, nil
	case registry.CategoryString:
		return Value{Str: v.Str}, nil
	case registry.CategoryBytes:
		return Value{Bytes: v.Bytes}, nil
	case registry.CategoryMessage:
		if v.Message != nil && v.Message.desc.FullName() != fd.TypeName {
			return Value{}, mismatch(typeName, fd.Name,
				"message "+v.Message.desc.FullName()+" for field of type "+fd.TypeName)
		}
		return Value{Message: v.Message}, nil
	default:
		return Value{}, mismatch(typeName, fd.Name, "invalid kind")
	}
}

func equalValue(fd registry.FieldDescriptor, a, b Value) bool {
	switch fd.Cardinality {
	case registry.Repeated:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !equalScalar(fd.Kind, a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case registry.Map:
		if len(a.Map) != len(b.Map) {
			return false
		}
		for k, av := range a.Map {
			bv, ok := b.Map[k]
			if !ok || !equalScalar(fd.Kind, av, bv) {
				return false
			}
		}
		return true
	}
	return equalScalar(fd.Kind, a, b)
}

func equalScalar(kind registry.Kind, a, b Value) bool {
	switch kind.Category() {
	case registry.CategoryBool:
		return a.Bool == b.Bool
	case registry.CategoryInt, registry.CategoryEnum:
		return a.Int == b.Int
	case registry.CategoryUint:
		return a.Uint == b.Uint
	case registry.CategoryFloat:
		return math.Float64bits(a.Float) == math.Float64bits(b.Float)
	case registry.CategoryString:
		return a.Str == b.Str
	case registry.CategoryBytes:
		return bytes.Equal(a.Bytes, b.Bytes)
	case registry.CategoryMessage:
		return a.Message.Equal(b.Message)
	default:
		return false
	}
}

func cloneValue(fd registry.FieldDescriptor, v Value) Value {
	switch fd.Cardinality {
	case registry.Repeated:
		out := make([]Value, len(v.List))
		for i, el := range v.List {
			out[i] = cloneScalar(el)
		}
		return Value{List: out}
	case registry.Map:
		out := make(map[string]Value, len(v.Map))
		for k, el := range v.Map {
			out[k] = cloneScalar(el)
		}
		return Value{Map: out}
	}
	return cloneScalar(v)
}

func cloneScalar(v Value) Value {
	if v.Bytes != nil {
		v.Bytes = bytes.Clone(v.Bytes)
	}
	if v.Message != nil {
		v.Message = v.Message.Clone()
	}
	return v
}
