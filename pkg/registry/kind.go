package registry

import "google.golang.org/protobuf/encoding/protowire"

// Kind is the semantic type of a field.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindSint32
	KindSint64
	KindFixed32
	KindFixed64
	KindSfixed32
	KindSfixed64
	KindFloat
	KindDouble
	KindString
	KindBytes
	KindEnum
	KindMessage
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindBool:     "bool",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindSint32:   "sint32",
	KindSint64:   "sint64",
	KindFixed32:  "fixed32",
	KindFixed64:  "fixed64",
	KindSfixed32: "sfixed32",
	KindSfixed64: "sfixed64",
	KindFloat:    "float",
	KindDouble:   "double",
	KindString:   "string",
	KindBytes:    "bytes",
	KindEnum:     "enum",
	KindMessage:  "message",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool {
	return k > KindInvalid && k <= KindMessage
}

// Category groups kinds by the Go representation of their values.
type Category uint8

const (
	CategoryInvalid Category = iota
	CategoryBool
	CategoryInt
	CategoryUint
	CategoryFloat
	CategoryString
	CategoryBytes
	CategoryEnum
	CategoryMessage
)

func (k Kind) Category() Category {
	switch k {
	case KindBool:
		return CategoryBool
	case KindInt32, KindInt64, KindSint32, KindSint64, KindSfixed32, KindSfixed64:
		return CategoryInt
	case KindUint32, KindUint64, KindFixed32, KindFixed64:
		return CategoryUint
	case KindFloat, KindDouble:
		return CategoryFloat
	case KindString:
		return CategoryString
	case KindBytes:
		return CategoryBytes
	case KindEnum:
		return CategoryEnum
	case KindMessage:
		return CategoryMessage
	default:
		return CategoryInvalid
	}
}

// WireType is the wire type a single value of this kind is written with.
func (k Kind) WireType() protowire.Type {
	switch k {
	case KindBool, KindInt32, KindInt64, KindUint32, KindUint64, KindSint32, KindSint64, KindEnum:
		return protowire.VarintType
	case KindFixed32, KindSfixed32, KindFloat:
		return protowire.Fixed32Type
	case KindFixed64, KindSfixed64, KindDouble:
		return protowire.Fixed64Type
	default:
		return protowire.BytesType
	}
}

// Packable reports whether repeated values of this kind are packed into one
// length-delimited run.
func (k Kind) Packable() bool {
	switch k {
	case KindString, KindBytes, KindMessage, KindInvalid:
		return false
	default:
		return k.Valid()
	}
}

// Wide reports whether the kind holds integers wider than 53 bits, which the
// JSON mapping writes as strings.
func (k Kind) Wide() bool {
	switch k {
	case KindInt64, KindUint64, KindSint64, KindFixed64, KindSfixed64:
		return true
	default:
		return false
	}
}

// Is32Bit reports whether integer values of this kind are limited to 32 bits.
func (k Kind) Is32Bit() bool {
	switch k {
	case KindInt32, KindUint32, KindSint32, KindFixed32, KindSfixed32, KindEnum:
		return true
	default:
		return false
	}
}
