package dynamic

import (
	"errors"
	"testing"

	"github.com/danmuck/phenopackets/internal/testutil/testlog"
	"github.com/danmuck/phenopackets/pkg/registry"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var (
	termDesc = registry.NewMessageDescriptor("test.v1", "Term", "test.proto",
		registry.Field("id", 1, registry.KindString),
		registry.Field("label", 2, registry.KindString),
	)
	elementDesc = registry.NewMessageDescriptor("test.v1", "Element", "test.proto",
		registry.MessageField("term", 1, "test.v1.Term").Oneof("element"),
		registry.Field("text", 2, registry.KindString).Oneof("element"),
		registry.MessageField("timestamp", 3, registry.TimestampName).Oneof("element"),
		registry.Field("count", 4, registry.KindInt32),
		registry.Field("score", 5, registry.KindFloat),
		registry.MessageField("terms", 6, "test.v1.Term").Repeated(),
		registry.MapField("attributes", 7, registry.KindString),
	)
)

func term(id, label string) *Message {
	return Build(termDesc).String("id", id).String("label", label).Done()
}

func TestSetElidesDefaults(t *testing.T) {
	testlog.Start(t)
	m := New(termDesc)
	if err := m.Set(1, OfString("HP:0001300")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !m.Has(1) {
		t.Fatalf("expected id to be present")
	}
	if err := m.Set(1, OfString("")); err != nil {
		t.Fatalf("set empty: %v", err)
	}
	if m.Has(1) || m.Len() != 0 {
		t.Fatalf("default value must clear the field")
	}
}

func TestOneofPresenceAndExclusivity(t *testing.T) {
	testlog.Start(t)
	m := New(elementDesc)
	if err := m.Set(2, OfString("")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !m.Has(2) {
		t.Fatalf("oneof member set to its zero value must stay present")
	}
	if err := m.Set(1, OfMessage(term("HP:1", "a"))); err != nil {
		t.Fatalf("set: %v", err)
	}
	err := CheckOneofs(m)
	if !errors.Is(err, ErrMultipleOneofBranches) {
		t.Fatalf("expected ErrMultipleOneofBranches, got %v", err)
	}
	var oe *OneofError
	if !errors.As(err, &oe) || oe.Oneof != "element" || len(oe.Branches) != 2 {
		t.Fatalf("unexpected oneof error: %+v", err)
	}
	if err := m.SetOneof(3, OfMessage(FromTimestamp(timestamppb.Now()))); err != nil {
		t.Fatalf("set oneof: %v", err)
	}
	set := m.WhichOneof("element")
	if len(set) != 1 || set[0].Name != "timestamp" {
		t.Fatalf("SetOneof must clear siblings, got %v", set)
	}
	if err := CheckOneofs(m); err != nil {
		t.Fatalf("unexpected oneof error: %v", err)
	}
}

func TestSetRejectsMismatchedValues(t *testing.T) {
	testlog.Start(t)
	m := New(elementDesc)
	if err := m.Set(4, OfInt(1<<40)); !errors.Is(err, ErrValueMismatch) {
		t.Fatalf("expected int32 overflow to fail, got %v", err)
	}
	if err := m.Set(1, OfMessage(New(elementDesc))); !errors.Is(err, ErrValueMismatch) {
		t.Fatalf("expected wrong message type to fail, got %v", err)
	}
	if err := m.Set(6, OfMessage(term("a", "b"))); !errors.Is(err, ErrValueMismatch) {
		t.Fatalf("expected singular value on repeated field to fail, got %v", err)
	}
	if err := m.Set(99, OfString("x")); !errors.Is(err, ErrValueMismatch) {
		t.Fatalf("expected unknown field number to fail, got %v", err)
	}
	if err := m.Set(5, OfFloat(0.1)); err != nil {
		t.Fatalf("set float: %v", err)
	}
	if got := m.Get(5).Float; got != float64(float32(0.1)) {
		t.Fatalf("float fields hold float32 precision, got %v", got)
	}
}

func TestEqualAndClone(t *testing.T) {
	testlog.Start(t)
	a := Build(elementDesc).
		Message("term", term("HP:0001300", "Parkinsonism")).
		Messages("terms", []*Message{term("a", "1"), nil, term("b", "2")}).
		StringMap("attributes", map[string]string{"k": "v"}).
		Done()
	if got := len(a.GetMessages("terms")); got != 2 {
		t.Fatalf("nil list elements must be dropped, got %d", got)
	}
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatalf("clone must be equal")
	}
	if err := b.GetMessage("term").Set(2, OfString("changed")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if a.Equal(b) {
		t.Fatalf("clone must be deep")
	}
	if a.GetMessage("term").GetString("label") != "Parkinsonism" {
		t.Fatalf("mutating the clone changed the original")
	}
	if got := a.GetStringMap("attributes")["k"]; got != "v" {
		t.Fatalf("unexpected map value %q", got)
	}
}

func TestRangeOrder(t *testing.T) {
	testlog.Start(t)
	m := Build(elementDesc).
		StringMap("attributes", map[string]string{"k": "v"}).
		Int("count", 3).
		String("text", "x").
		Done()
	var seen []string
	m.Range(func(fd registry.FieldDescriptor, _ Value) bool {
		seen = append(seen, fd.Name)
		return true
	})
	want := []string{"text", "count", "attributes"}
	if len(seen) != len(want) {
		t.Fatalf("unexpected fields %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("fields out of number order: %v", seen)
		}
	}
}

func TestTimestampConversion(t *testing.T) {
	testlog.Start(t)
	ts := &timestamppb.Timestamp{Seconds: -123456798, Nanos: 500}
	m := FromTimestamp(ts)
	back := ToTimestamp(m)
	if back.GetSeconds() != ts.GetSeconds() || back.GetNanos() != ts.GetNanos() {
		t.Fatalf("timestamp round trip: %v", back)
	}
	if FromTimestamp(nil) != nil || ToTimestamp(nil) != nil {
		t.Fatalf("nil timestamps must stay nil")
	}
}

func TestBuilderPanicsOnModelMismatch(t *testing.T) {
	testlog.Start(t)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Done to panic on an unknown field name")
		}
	}()
	Build(termDesc).String("iri", "x").Done()
}
