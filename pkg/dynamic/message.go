package dynamic

import (
	"bytes"
	"slices"
	"sort"
	"strconv"

	"github.com/danmuck/phenopackets/pkg/registry"
	"google.golang.org/protobuf/encoding/protowire"
)

// Message is a value tree for one message type, keyed by field number and
// interpreted through its descriptor. A Message is not safe for concurrent
// mutation; trees handed to the codecs are only read.
type Message struct {
	desc    *registry.MessageDescriptor
	fields  map[protowire.Number]Value
	unknown []byte
}

func New(desc *registry.MessageDescriptor) *Message {
	return &Message{desc: desc, fields: make(map[protowire.Number]Value)}
}

func (m *Message) Descriptor() *registry.MessageDescriptor { return m.desc }

// Has reports whether field n is populated.
func (m *Message) Has(n protowire.Number) bool {
	if m == nil {
		return false
	}
	_, ok := m.fields[n]
	return ok
}

// Get returns the value of field n, or the zero Value when unset.
func (m *Message) Get(n protowire.Number) Value {
	if m == nil {
		return Value{}
	}
	return m.fields[n]
}

// Lookup returns the value of a field by snake_case or JSON name.
func (m *Message) Lookup(name string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	fd, ok := m.desc.FieldByName(name)
	if !ok {
		return Value{}, false
	}
	v, ok := m.fields[fd.Number]
	return v, ok
}

func (m *Message) field(n protowire.Number) (registry.FieldDescriptor, error) {
	fd, ok := m.desc.Field(n)
	if !ok {
		return fd, mismatch(m.desc.FullName(), protowireName(n), "no such field")
	}
	return fd, nil
}

// Set stores v in field n. A value equal to the field default clears the
// field, except for message fields and oneof members, which keep presence.
// Set never touches sibling oneof branches; see SetOneof.
func (m *Message) Set(n protowire.Number, v Value) error {
	fd, err := m.field(n)
	if err != nil {
		return err
	}
	v, err = normalize(m.desc.FullName(), fd, v)
	if err != nil {
		return err
	}
	if isZero(fd, v) && !(fd.HasPresence() && fd.Kind != registry.KindMessage) {
		delete(m.fields, n)
		return nil
	}
	m.fields[n] = v
	return nil
}

// SetOneof clears every other branch of n's oneof, then sets n.
func (m *Message) SetOneof(n protowire.Number, v Value) error {
	fd, err := m.field(n)
	if err != nil {
		return err
	}
	if fd.InOneof() {
		m.ClearOneof(fd.OneofName)
	}
	return m.Set(n, v)
}

// SetByName is Set addressed by snake_case or JSON name.
func (m *Message) SetByName(name string, v Value) error {
	fd, ok := m.desc.FieldByName(name)
	if !ok {
		return mismatch(m.desc.FullName(), name, "no such field")
	}
	return m.Set(fd.Number, v)
}

func (m *Message) Clear(n protowire.Number) {
	delete(m.fields, n)
}

// ClearOneof unsets every branch of the named oneof.
func (m *Message) ClearOneof(name string) {
	o, ok := m.desc.Oneof(name)
	if !ok {
		return
	}
	for _, n := range o.Fields {
		delete(m.fields, n)
	}
}

// WhichOneof returns the populated branches of a oneof in field order.
func (m *Message) WhichOneof(name string) []registry.FieldDescriptor {
	if m == nil {
		return nil
	}
	o, ok := m.desc.Oneof(name)
	if !ok {
		return nil
	}
	var out []registry.FieldDescriptor
	for _, n := range o.Fields {
		if _, set := m.fields[n]; set {
			fd, _ := m.desc.Field(n)
			out = append(out, fd)
		}
	}
	return out
}

// Which names the first populated branch of a oneof, or "" when none is.
func (m *Message) Which(oneof string) string {
	if set := m.WhichOneof(oneof); len(set) > 0 {
		return set[0].Name
	}
	return ""
}

// Append adds one element to repeated field n. Nil message elements are
// dropped.
func (m *Message) Append(n protowire.Number, el Value) error {
	fd, err := m.field(n)
	if err != nil {
		return err
	}
	if !fd.IsList() {
		return mismatch(m.desc.FullName(), fd.Name, "append to non-repeated field")
	}
	if fd.Kind == registry.KindMessage && el.Message == nil {
		return nil
	}
	el, err = normalizeScalar(m.desc.FullName(), fd, el)
	if err != nil {
		return err
	}
	cur := m.fields[n]
	cur.List = append(cur.List, el)
	m.fields[n] = cur
	return nil
}

// PutMapEntry stores key -> el in map field n.
func (m *Message) PutMapEntry(n protowire.Number, key string, el Value) error {
	fd, err := m.field(n)
	if err != nil {
		return err
	}
	if !fd.IsMap() {
		return mismatch(m.desc.FullName(), fd.Name, "map entry for non-map field")
	}
	el, err = normalizeScalar(m.desc.FullName(), fd, el)
	if err != nil {
		return err
	}
	cur := m.fields[n]
	if cur.Map == nil {
		cur.Map = make(map[string]Value)
	}
	cur.Map[key] = el
	m.fields[n] = cur
	return nil
}

// Range calls fn for every populated field in field-number order.
func (m *Message) Range(fn func(fd registry.FieldDescriptor, v Value) bool) {
	if m == nil {
		return
	}
	for i := 0; i < m.desc.NumFields(); i++ {
		fd := m.desc.FieldAt(i)
		v, ok := m.fields[fd.Number]
		if !ok {
			continue
		}
		if !fn(fd, v) {
			return
		}
	}
}

// Len is the number of populated fields.
func (m *Message) Len() int {
	if m == nil {
		return 0
	}
	return len(m.fields)
}

// Unknown returns raw bytes of fields the descriptor does not declare,
// retained only when the decoder was asked to preserve them.
func (m *Message) Unknown() []byte {
	if m == nil {
		return nil
	}
	return m.unknown
}

func (m *Message) AppendUnknown(b []byte) {
	m.unknown = append(m.unknown, b...)
}

func (m *Message) ClearUnknown() {
	m.unknown = nil
}

// Equal compares two trees structurally. Descriptors match by full name.
func (m *Message) Equal(o *Message) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.desc.FullName() != o.desc.FullName() || len(m.fields) != len(o.fields) {
		return false
	}
	for n, av := range m.fields {
		bv, ok := o.fields[n]
		if !ok {
			return false
		}
		fd, _ := m.desc.Field(n)
		if !equalValue(fd, av, bv) {
			return false
		}
	}
	return bytes.Equal(m.unknown, o.unknown)
}

// Clone returns a deep copy of m.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	out := &Message{
		desc:    m.desc,
		fields:  make(map[protowire.Number]Value, len(m.fields)),
		unknown: slices.Clone(m.unknown),
	}
	for n, v := range m.fields {
		fd, _ := m.desc.Field(n)
		out.fields[n] = cloneValue(fd, v)
	}
	return out
}

// CheckOneofs returns a *OneofError for the first oneof of m, in declaration
// order, that has more than one populated branch. Only m itself is checked.
func CheckOneofs(m *Message) error {
	if m == nil {
		return nil
	}
	for _, o := range m.desc.Oneofs() {
		set := m.WhichOneof(o.Name)
		if len(set) < 2 {
			continue
		}
		names := make([]string, len(set))
		for i, fd := range set {
			names[i] = fd.Name
		}
		return &OneofError{Type: m.desc.FullName(), Oneof: o.Name, Branches: names}
	}
	return nil
}

// SortedKeys returns the keys of a map value in byte order.
func SortedKeys(v Value) []string {
	keys := make([]string, 0, len(v.Map))
	for k := range v.Map {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func protowireName(n protowire.Number) string {
	return "#" + strconv.Itoa(int(n))
}
