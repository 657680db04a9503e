package registry

import (
	"fmt"
	"slices"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"
)

type Cardinality uint8

const (
	Singular Cardinality = iota
	Repeated
	Map
)

func (c Cardinality) String() string {
	switch c {
	case Singular:
		return "singular"
	case Repeated:
		return "repeated"
	case Map:
		return "map"
	default:
		return "invalid"
	}
}

// WellKnown marks message types with a fixed cross-implementation text form.
type WellKnown uint8

const (
	NotWellKnown WellKnown = iota
	WellKnownTimestamp
	WellKnownDuration
)

// FieldDescriptor declares one field of a message type.
//
// Map fields always have string keys; Kind and TypeName describe the value.
type FieldDescriptor struct {
	Name        string
	JSONName    string
	Number      protowire.Number
	Kind        Kind
	Cardinality Cardinality
	TypeName    string
	OneofName   string
}

// Field declares a singular scalar field.
func Field(name string, number protowire.Number, kind Kind) FieldDescriptor {
	return FieldDescriptor{Name: name, Number: number, Kind: kind}
}

// MessageField declares a singular field holding the named message type.
func MessageField(name string, number protowire.Number, typeName string) FieldDescriptor {
	return FieldDescriptor{Name: name, Number: number, Kind: KindMessage, TypeName: typeName}
}

// EnumField declares a singular field holding the named enum type.
func EnumField(name string, number protowire.Number, typeName string) FieldDescriptor {
	return FieldDescriptor{Name: name, Number: number, Kind: KindEnum, TypeName: typeName}
}

// MapField declares a map<string, kind> field.
func MapField(name string, number protowire.Number, value Kind) FieldDescriptor {
	return FieldDescriptor{Name: name, Number: number, Kind: value, Cardinality: Map}
}

func (f FieldDescriptor) Repeated() FieldDescriptor {
	f.Cardinality = Repeated
	return f
}

// Oneof places the field in the named oneof group.
func (f FieldDescriptor) Oneof(group string) FieldDescriptor {
	f.OneofName = group
	return f
}

func (f FieldDescriptor) IsList() bool  { return f.Cardinality == Repeated }
func (f FieldDescriptor) IsMap() bool   { return f.Cardinality == Map }
func (f FieldDescriptor) InOneof() bool { return f.OneofName != "" }

// HasPresence reports whether a zero value is still encoded when set.
func (f FieldDescriptor) HasPresence() bool {
	return f.Cardinality == Singular && (f.Kind == KindMessage || f.OneofName != "")
}

// Default is the declared default of a singular field, as the Go value the
// dynamic tree stores for its kind category. Messages default to nil.
func (f FieldDescriptor) Default() any {
	if f.Cardinality != Singular {
		return nil
	}
	switch f.Kind.Category() {
	case CategoryBool:
		return false
	case CategoryInt, CategoryEnum:
		return int64(0)
	case CategoryUint:
		return uint64(0)
	case CategoryFloat:
		return float64(0)
	case CategoryString:
		return ""
	case CategoryBytes:
		return []byte(nil)
	default:
		return nil
	}
}

func (f FieldDescriptor) String() string {
	kind := f.Kind.String()
	if f.TypeName != "" {
		kind = f.TypeName
	}
	if f.Cardinality != Singular {
		kind = f.Cardinality.String() + " " + kind
	}
	return fmt.Sprintf("%s %s = %d", kind, f.Name, f.Number)
}

// OneofDescriptor is a group of mutually exclusive fields.
type OneofDescriptor struct {
	Name   string
	Fields []protowire.Number
}

// MessageDescriptor describes one message type. Descriptors are immutable
// once built.
type MessageDescriptor struct {
	pkg       string
	name      string
	fullName  string
	source    string
	wellKnown WellKnown

	fields   []FieldDescriptor
	byNumber map[protowire.Number]int
	byName   map[string]int
	oneofs   []OneofDescriptor
}

// NewMessageDescriptor builds a descriptor for pkg.name. Fields are sorted by
// number; JSON names are derived when left empty. Structural problems are
// reported when the descriptor is registered.
func NewMessageDescriptor(pkg, name, source string, fields ...FieldDescriptor) *MessageDescriptor {
	d := &MessageDescriptor{
		pkg:      pkg,
		name:     name,
		fullName: FullName(pkg, name),
		source:   source,
		fields:   make([]FieldDescriptor, len(fields)),
		byNumber: make(map[protowire.Number]int, len(fields)),
		byName:   make(map[string]int, 2*len(fields)),
	}
	copy(d.fields, fields)
	sort.SliceStable(d.fields, func(i, j int) bool { return d.fields[i].Number < d.fields[j].Number })
	for i := range d.fields {
		f := &d.fields[i]
		if f.JSONName == "" {
			f.JSONName = JSONName(f.Name)
		}
		if _, dup := d.byNumber[f.Number]; !dup {
			d.byNumber[f.Number] = i
		}
		if _, dup := d.byName[f.Name]; !dup {
			d.byName[f.Name] = i
		}
		if _, dup := d.byName[f.JSONName]; !dup {
			d.byName[f.JSONName] = i
		}
		if f.OneofName == "" {
			continue
		}
		idx := slices.IndexFunc(d.oneofs, func(o OneofDescriptor) bool { return o.Name == f.OneofName })
		if idx < 0 {
			d.oneofs = append(d.oneofs, OneofDescriptor{Name: f.OneofName})
			idx = len(d.oneofs) - 1
		}
		d.oneofs[idx].Fields = append(d.oneofs[idx].Fields, f.Number)
	}
	return d
}

func (d *MessageDescriptor) Package() string      { return d.pkg }
func (d *MessageDescriptor) Name() string         { return d.name }
func (d *MessageDescriptor) FullName() string     { return d.fullName }
func (d *MessageDescriptor) Source() string       { return d.source }
func (d *MessageDescriptor) WellKnown() WellKnown { return d.wellKnown }
func (d *MessageDescriptor) NumFields() int       { return len(d.fields) }

// Fields returns the field list ordered by field number.
func (d *MessageDescriptor) Fields() []FieldDescriptor {
	return slices.Clone(d.fields)
}

// FieldAt returns the i-th field in number order.
func (d *MessageDescriptor) FieldAt(i int) FieldDescriptor {
	return d.fields[i]
}

func (d *MessageDescriptor) Field(n protowire.Number) (FieldDescriptor, bool) {
	i, ok := d.byNumber[n]
	if !ok {
		return FieldDescriptor{}, false
	}
	return d.fields[i], true
}

// FieldByName accepts either the snake_case name or the JSON name.
func (d *MessageDescriptor) FieldByName(name string) (FieldDescriptor, bool) {
	i, ok := d.byName[name]
	if !ok {
		return FieldDescriptor{}, false
	}
	return d.fields[i], true
}

// MustField is FieldByName for names known to exist; it panics otherwise.
func (d *MessageDescriptor) MustField(name string) FieldDescriptor {
	f, ok := d.FieldByName(name)
	if !ok {
		panic(unknownField(d.fullName, name))
	}
	return f
}

func (d *MessageDescriptor) Oneofs() []OneofDescriptor {
	out := make([]OneofDescriptor, len(d.oneofs))
	for i, o := range d.oneofs {
		out[i] = OneofDescriptor{Name: o.Name, Fields: slices.Clone(o.Fields)}
	}
	return out
}

// Oneof returns the group with the given name.
func (d *MessageDescriptor) Oneof(name string) (OneofDescriptor, bool) {
	for _, o := range d.oneofs {
		if o.Name == name {
			return OneofDescriptor{Name: o.Name, Fields: slices.Clone(o.Fields)}, true
		}
	}
	return OneofDescriptor{}, false
}

// Equal compares structure only; the source file does not take part.
func (d *MessageDescriptor) Equal(o *MessageDescriptor) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.fullName == o.fullName &&
		d.wellKnown == o.wellKnown &&
		slices.Equal(d.fields, o.fields)
}

// diff describes the first structural difference between d and o.
func (d *MessageDescriptor) diff(o *MessageDescriptor) string {
	if d.wellKnown != o.wellKnown {
		return "well-known marker differs"
	}
	if len(d.fields) != len(o.fields) {
		return fmt.Sprintf("field count %d != %d", len(d.fields), len(o.fields))
	}
	for i := range d.fields {
		if d.fields[i] != o.fields[i] {
			return fmt.Sprintf("field %q != %q", d.fields[i].String(), o.fields[i].String())
		}
	}
	return "descriptors differ"
}

func (d *MessageDescriptor) validate() error {
	if !validDotted(d.fullName) {
		return &DescriptorError{Type: d.fullName, Reason: "invalid type name"}
	}
	numbers := make(map[protowire.Number]struct{}, len(d.fields))
	names := make(map[string]struct{}, 2*len(d.fields))
	for _, f := range d.fields {
		bad := func(reason string) error {
			return &DescriptorError{Type: d.fullName, Field: f.Name, Reason: reason}
		}
		if !validIdent(f.Name) {
			return bad("invalid field name")
		}
		if !f.Number.IsValid() {
			return bad(fmt.Sprintf("invalid field number %d", f.Number))
		}
		if _, dup := numbers[f.Number]; dup {
			return bad(fmt.Sprintf("duplicate field number %d", f.Number))
		}
		numbers[f.Number] = struct{}{}
		if _, dup := names[f.Name]; dup {
			return bad("duplicate field name")
		}
		names[f.Name] = struct{}{}
		if f.JSONName != f.Name {
			if _, dup := names[f.JSONName]; dup {
				return bad("duplicate json name " + f.JSONName)
			}
			names[f.JSONName] = struct{}{}
		}
		if !f.Kind.Valid() {
			return bad("invalid kind")
		}
		needsType := f.Kind == KindMessage || f.Kind == KindEnum
		if needsType && !validDotted(f.TypeName) {
			return bad("missing type name for " + f.Kind.String())
		}
		if !needsType && f.TypeName != "" {
			return bad("type name on scalar field")
		}
		if f.Cardinality > Map {
			return bad("invalid cardinality")
		}
		if f.OneofName != "" && f.Cardinality != Singular {
			return bad("oneof member must be singular")
		}
	}
	return nil
}

// EnumValue is one named constant of an enum.
type EnumValue struct {
	Name   string
	Number int32
}

// EnumDescriptor describes an enum and its bidirectional name/number table.
type EnumDescriptor struct {
	pkg      string
	name     string
	fullName string
	source   string
	values   []EnumValue
	byName   map[string]int32
	byNumber map[int32]string
}

// NewEnumDescriptor builds an enum descriptor. The first value declared for a
// number owns that number's name.
func NewEnumDescriptor(pkg, name, source string, values ...EnumValue) *EnumDescriptor {
	d := &EnumDescriptor{
		pkg:      pkg,
		name:     name,
		fullName: FullName(pkg, name),
		source:   source,
		values:   slices.Clone(values),
		byName:   make(map[string]int32, len(values)),
		byNumber: make(map[int32]string, len(values)),
	}
	for _, v := range values {
		if _, ok := d.byName[v.Name]; !ok {
			d.byName[v.Name] = v.Number
		}
		if _, ok := d.byNumber[v.Number]; !ok {
			d.byNumber[v.Number] = v.Name
		}
	}
	return d
}

func (d *EnumDescriptor) Package() string  { return d.pkg }
func (d *EnumDescriptor) Name() string     { return d.name }
func (d *EnumDescriptor) FullName() string { return d.fullName }
func (d *EnumDescriptor) Source() string   { return d.source }

func (d *EnumDescriptor) Values() []EnumValue {
	return slices.Clone(d.values)
}

// NameOf returns the symbolic name of n.
func (d *EnumDescriptor) NameOf(n int32) (string, bool) {
	name, ok := d.byNumber[n]
	return name, ok
}

// NumberOf returns the number for a symbolic name.
func (d *EnumDescriptor) NumberOf(name string) (int32, bool) {
	n, ok := d.byName[name]
	return n, ok
}

// String formats n as its name, or as the bare number if it has none.
func (d *EnumDescriptor) String(n int32) string {
	if name, ok := d.byNumber[n]; ok {
		return name
	}
	return fmt.Sprintf("%d", n)
}

func (d *EnumDescriptor) Equal(o *EnumDescriptor) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.fullName == o.fullName && slices.Equal(d.values, o.values)
}

func (d *EnumDescriptor) validate() error {
	if !validDotted(d.fullName) {
		return &DescriptorError{Type: d.fullName, Reason: "invalid type name"}
	}
	if len(d.values) == 0 {
		return &DescriptorError{Type: d.fullName, Reason: "enum has no values"}
	}
	if d.values[0].Number != 0 {
		return &DescriptorError{Type: d.fullName, Reason: "first enum value must be zero"}
	}
	seen := make(map[string]struct{}, len(d.values))
	for _, v := range d.values {
		if !validIdent(v.Name) {
			return &DescriptorError{Type: d.fullName, Field: v.Name, Reason: "invalid enum value name"}
		}
		if _, dup := seen[v.Name]; dup {
			return &DescriptorError{Type: d.fullName, Field: v.Name, Reason: "duplicate enum value name"}
		}
		seen[v.Name] = struct{}{}
	}
	return nil
}
