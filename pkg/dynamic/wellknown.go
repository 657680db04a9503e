package dynamic

import (
	"github.com/danmuck/phenopackets/pkg/registry"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// FromTimestamp converts ts into a google.protobuf.Timestamp tree.
func FromTimestamp(ts *timestamppb.Timestamp) *Message {
	if ts == nil {
		return nil
	}
	return secondsNanos(registry.TimestampDescriptor(), ts.GetSeconds(), ts.GetNanos())
}

// ToTimestamp converts a google.protobuf.Timestamp tree; nil stays nil.
func ToTimestamp(m *Message) *timestamppb.Timestamp {
	if m == nil {
		return nil
	}
	return &timestamppb.Timestamp{Seconds: m.Get(1).Int, Nanos: int32(m.Get(2).Int)}
}

func FromDuration(d *durationpb.Duration) *Message {
	if d == nil {
		return nil
	}
	return secondsNanos(registry.DurationDescriptor(), d.GetSeconds(), d.GetNanos())
}

func ToDuration(m *Message) *durationpb.Duration {
	if m == nil {
		return nil
	}
	return &durationpb.Duration{Seconds: m.Get(1).Int, Nanos: int32(m.Get(2).Int)}
}

func secondsNanos(desc *registry.MessageDescriptor, seconds int64, nanos int32) *Message {
	m := New(desc)
	if seconds != 0 {
		m.fields[1] = OfInt(seconds)
	}
	if nanos != 0 {
		m.fields[2] = OfInt(int64(nanos))
	}
	return m
}
