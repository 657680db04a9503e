package dynamic

import (
	"fmt"

	"github.com/danmuck/phenopackets/pkg/registry"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Builder assembles a Message from typed Go values by field name. The first
// error sticks and Done panics with it: a failing build means the Go model
// and its descriptor disagree.
type Builder struct {
	m   *Message
	err error
}

func Build(desc *registry.MessageDescriptor) *Builder {
	return &Builder{m: New(desc)}
}

func (b *Builder) set(name string, v Value) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.m.SetByName(name, v)
	return b
}

func (b *Builder) String(name, v string) *Builder        { return b.set(name, OfString(v)) }
func (b *Builder) Bool(name string, v bool) *Builder     { return b.set(name, OfBool(v)) }
func (b *Builder) Int(name string, v int64) *Builder     { return b.set(name, OfInt(v)) }
func (b *Builder) Uint(name string, v uint64) *Builder   { return b.set(name, OfUint(v)) }
func (b *Builder) Float(name string, v float64) *Builder { return b.set(name, OfFloat(v)) }
func (b *Builder) Bytes(name string, v []byte) *Builder  { return b.set(name, OfBytes(v)) }
func (b *Builder) Enum(name string, v int32) *Builder    { return b.set(name, OfEnum(v)) }

// Message sets a sub-message; nil leaves the field unset.
func (b *Builder) Message(name string, v *Message) *Builder {
	if v == nil {
		return b
	}
	return b.set(name, OfMessage(v))
}

func (b *Builder) Messages(name string, vs []*Message) *Builder {
	list := make([]Value, 0, len(vs))
	for _, v := range vs {
		if v != nil {
			list = append(list, OfMessage(v))
		}
	}
	return b.set(name, OfList(list...))
}

func (b *Builder) Strings(name string, vs []string) *Builder {
	list := make([]Value, len(vs))
	for i, v := range vs {
		list[i] = OfString(v)
	}
	return b.set(name, OfList(list...))
}

func (b *Builder) StringMap(name string, vs map[string]string) *Builder {
	m := make(map[string]Value, len(vs))
	for k, v := range vs {
		m[k] = OfString(v)
	}
	return b.set(name, OfMap(m))
}

// Timestamp sets a google.protobuf.Timestamp field; nil leaves it unset.
func (b *Builder) Timestamp(name string, ts *timestamppb.Timestamp) *Builder {
	return b.Message(name, FromTimestamp(ts))
}

// Duration sets a google.protobuf.Duration field; nil leaves it unset.
func (b *Builder) Duration(name string, d *durationpb.Duration) *Builder {
	return b.Message(name, FromDuration(d))
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error { return b.err }

// Done returns the built message.
func (b *Builder) Done() *Message {
	if b.err != nil {
		panic(fmt.Sprintf("dynamic: build %s: %v", b.m.desc.FullName(), b.err))
	}
	return b.m
}

func (m *Message) mustField(name string) registry.FieldDescriptor {
	return m.desc.MustField(name)
}

func (m *Message) GetString(name string) string {
	return m.Get(m.mustField(name).Number).Str
}

func (m *Message) GetBool(name string) bool {
	return m.Get(m.mustField(name).Number).Bool
}

func (m *Message) GetInt(name string) int64 {
	return m.Get(m.mustField(name).Number).Int
}

func (m *Message) GetUint(name string) uint64 {
	return m.Get(m.mustField(name).Number).Uint
}

func (m *Message) GetFloat(name string) float64 {
	return m.Get(m.mustField(name).Number).Float
}

func (m *Message) GetBytes(name string) []byte {
	return m.Get(m.mustField(name).Number).Bytes
}

func (m *Message) GetEnum(name string) int32 {
	return m.Get(m.mustField(name).Number).Enum()
}

// GetMessage returns the sub-message, or nil when the field is unset.
func (m *Message) GetMessage(name string) *Message {
	return m.Get(m.mustField(name).Number).Message
}

// HasField reports presence by field name.
func (m *Message) HasField(name string) bool {
	return m.Has(m.mustField(name).Number)
}

func (m *Message) GetMessages(name string) []*Message {
	list := m.Get(m.mustField(name).Number).List
	if len(list) == 0 {
		return nil
	}
	out := make([]*Message, len(list))
	for i, v := range list {
		out[i] = v.Message
	}
	return out
}

func (m *Message) GetStrings(name string) []string {
	list := m.Get(m.mustField(name).Number).List
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = v.Str
	}
	return out
}

func (m *Message) GetStringMap(name string) map[string]string {
	mv := m.Get(m.mustField(name).Number).Map
	if len(mv) == 0 {
		return nil
	}
	out := make(map[string]string, len(mv))
	for k, v := range mv {
		out[k] = v.Str
	}
	return out
}

func (m *Message) GetTimestamp(name string) *timestamppb.Timestamp {
	return ToTimestamp(m.GetMessage(name))
}

func (m *Message) GetDuration(name string) *durationpb.Duration {
	return ToDuration(m.GetMessage(name))
}
