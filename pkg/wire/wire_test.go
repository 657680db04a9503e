package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/danmuck/phenopackets/internal/testutil/testlog"
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const pkg = "test.wire.v1"

var (
	termDesc = registry.NewMessageDescriptor(pkg, "Term", "wire_test.proto",
		registry.Field("id", 1, registry.KindString),
		registry.Field("label", 2, registry.KindString),
	)
	sampleDesc = registry.NewMessageDescriptor(pkg, "Sample", "wire_test.proto",
		registry.Field("id", 1, registry.KindString),
		registry.MessageField("term", 2, pkg+".Term"),
		registry.Field("flag", 3, registry.KindBool),
		registry.Field("counts", 4, registry.KindInt32).Repeated(),
		registry.Field("big", 5, registry.KindInt64),
		registry.Field("pos", 6, registry.KindUint64),
		registry.Field("delta", 7, registry.KindSint32),
		registry.Field("ratio", 8, registry.KindDouble),
		registry.Field("weight", 9, registry.KindFloat),
		registry.Field("fx32", 10, registry.KindFixed32),
		registry.Field("sfx64", 11, registry.KindSfixed64),
		registry.Field("blob", 12, registry.KindBytes),
		registry.EnumField("status", 13, pkg+".Status"),
		registry.MessageField("terms", 14, pkg+".Term").Repeated(),
		registry.MapField("attributes", 15, registry.KindString),
		registry.MessageField("created", 16, registry.TimestampName),
		registry.MessageField("ontology_class", 20, pkg+".Term").Oneof("element"),
		registry.Field("text", 21, registry.KindString).Oneof("element"),
		registry.Field("aliases", 22, registry.KindString).Repeated(),
	)
	statusDesc = registry.NewEnumDescriptor(pkg, "Status", "wire_test.proto",
		registry.EnumValue{Name: "UNKNOWN", Number: 0},
		registry.EnumValue{Name: "SOLVED", Number: 3},
	)
)

func testTypes(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	if err := registry.RegisterWellKnownTypes(r); err != nil {
		t.Fatalf("register wkt: %v", err)
	}
	if err := r.RegisterEnum(statusDesc); err != nil {
		t.Fatalf("register enum: %v", err)
	}
	for _, d := range []*registry.MessageDescriptor{termDesc, sampleDesc} {
		if err := r.RegisterMessage(d); err != nil {
			t.Fatalf("register %s: %v", d.FullName(), err)
		}
	}
	if err := r.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	return r
}

func term(id, label string) *dynamic.Message {
	return dynamic.Build(termDesc).String("id", id).String("label", label).Done()
}

func fullSample(t *testing.T) *dynamic.Message {
	t.Helper()
	b := dynamic.Build(sampleDesc).
		String("id", "PPKT:1").
		Message("term", term("HP:0001300", "Parkinsonism")).
		Bool("flag", true).
		Int("big", math.MinInt64).
		Uint("pos", math.MaxUint64).
		Int("delta", -42).
		Float("ratio", 0.25).
		Float("weight", 1.5).
		Uint("fx32", 7).
		Int("sfx64", -9).
		Bytes("blob", []byte{0, 1, 2}).
		Enum("status", 3).
		Messages("terms", []*dynamic.Message{term("HG2G:00001", "Hoopy"), term("HG2G:00002", "Frood")}).
		StringMap("attributes", map[string]string{"b": "2", "a": "1", "": "empty-key"}).
		Timestamp("created", &timestamppb.Timestamp{Seconds: -123456798, Nanos: 1000}).
		Message("ontology_class", term("NCIT:C1", "x")).
		Strings("aliases", []string{"one", "", "three"})
	m := b.Done()
	if err := m.Set(4, dynamic.OfList(dynamic.OfInt(1), dynamic.OfInt(-1), dynamic.OfInt(300))); err != nil {
		t.Fatalf("set counts: %v", err)
	}
	return m
}

func TestRoundTripAllKinds(t *testing.T) {
	testlog.Start(t)
	types := testTypes(t)
	in := fullSample(t)
	raw, err := Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out, err := Unmarshal(types, raw, sampleDesc)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.Equal(out) {
		t.Fatalf("round trip changed the tree")
	}
	again, err := Marshal(out)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if !bytes.Equal(raw, again) {
		t.Fatalf("encoding is not deterministic")
	}
}

func TestDefaultsAreOmitted(t *testing.T) {
	testlog.Start(t)
	m := dynamic.Build(sampleDesc).String("id", "").Bool("flag", false).Int("big", 0).Done()
	raw, err := Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected empty encoding, got %x", raw)
	}

	present := dynamic.Build(sampleDesc).Message("term", dynamic.New(termDesc)).String("text", "").Done()
	raw, err = Marshal(present)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := []byte{0x12, 0x00, 0xaa, 0x01, 0x00}
	if !bytes.Equal(raw, want) {
		t.Fatalf("empty sub-message and empty oneof member must be written: got %x want %x", raw, want)
	}
}

func TestPackedAndUnpackedRepeated(t *testing.T) {
	testlog.Start(t)
	types := testTypes(t)
	m := dynamic.New(sampleDesc)
	if err := m.Set(4, dynamic.OfList(dynamic.OfInt(1), dynamic.OfInt(2), dynamic.OfInt(3))); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, err := Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := []byte{0x22, 0x03, 0x01, 0x02, 0x03}; !bytes.Equal(raw, want) {
		t.Fatalf("packed encoding: got %x want %x", raw, want)
	}

	var unpacked []byte
	for _, v := range []uint64{1, 2, 3} {
		unpacked = protowire.AppendTag(unpacked, 4, protowire.VarintType)
		unpacked = protowire.AppendVarint(unpacked, v)
	}
	out, err := Unmarshal(types, unpacked, sampleDesc)
	if err != nil {
		t.Fatalf("unmarshal unpacked: %v", err)
	}
	if !m.Equal(out) {
		t.Fatalf("unpacked and packed forms must decode equally")
	}
}

func TestForwardCompatibility(t *testing.T) {
	testlog.Start(t)
	types := testTypes(t)
	known := dynamic.Build(sampleDesc).String("id", "PPKT:1").Message("term", term("HP:1", "a")).Done()
	raw, err := Marshal(known)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Fields a newer schema would add: a string, a varint and a fixed64.
	extra := protowire.AppendTag(nil, 99, protowire.BytesType)
	extra = protowire.AppendString(extra, "from the future")
	extra = protowire.AppendTag(extra, 100, protowire.VarintType)
	extra = protowire.AppendVarint(extra, 12345)
	extra = protowire.AppendTag(extra, 101, protowire.Fixed64Type)
	extra = protowire.AppendFixed64(extra, 1)
	newer := append(append([]byte(nil), raw...), extra...)

	out, err := Unmarshal(types, newer, sampleDesc)
	if err != nil {
		t.Fatalf("unmarshal newer payload: %v", err)
	}
	if !known.Equal(out) || len(out.Unknown()) != 0 {
		t.Fatalf("unknown fields must be skipped silently")
	}

	kept, err := UnmarshalOptions{PreserveUnknown: true}.Unmarshal(types, newer, sampleDesc)
	if err != nil {
		t.Fatalf("unmarshal preserving unknown: %v", err)
	}
	if !bytes.Equal(kept.Unknown(), extra) {
		t.Fatalf("unexpected preserved bytes %x", kept.Unknown())
	}
	back, err := Marshal(kept)
	if err != nil {
		t.Fatalf("marshal preserved: %v", err)
	}
	if !bytes.Equal(back, newer) {
		t.Fatalf("preserved unknown fields must be re-emitted")
	}
}

func TestOneofExclusivity(t *testing.T) {
	testlog.Start(t)
	types := testTypes(t)
	m := dynamic.New(sampleDesc)
	if err := m.Set(20, dynamic.OfMessage(term("HP:1", "a"))); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.Set(21, dynamic.OfString("free text")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := Marshal(m); !errors.Is(err, ErrMultipleOneofBranches) {
		t.Fatalf("expected ErrMultipleOneofBranches, got %v", err)
	}

	first, _ := Marshal(dynamic.Build(sampleDesc).Message("ontology_class", term("HP:1", "a")).Done())
	second, _ := Marshal(dynamic.Build(sampleDesc).String("text", "last").Done())
	out, err := Unmarshal(types, append(first, second...), sampleDesc)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	set := out.WhichOneof("element")
	if len(set) != 1 || set[0].Name != "text" || out.GetString("text") != "last" {
		t.Fatalf("last decoded branch must win, got %v", set)
	}
}

func TestConcatenationMerges(t *testing.T) {
	testlog.Start(t)
	types := testTypes(t)
	a, _ := Marshal(dynamic.Build(sampleDesc).
		String("id", "first").
		Message("term", term("HP:1", "")).
		Strings("aliases", []string{"x"}).
		Done())
	b, _ := Marshal(dynamic.Build(sampleDesc).
		String("id", "second").
		Message("term", term("", "label")).
		Strings("aliases", []string{"y"}).
		Done())
	out, err := Unmarshal(types, append(a, b...), sampleDesc)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.GetString("id") != "second" {
		t.Fatalf("last singular value must win, got %q", out.GetString("id"))
	}
	tm := out.GetMessage("term")
	if tm.GetString("id") != "HP:1" || tm.GetString("label") != "label" {
		t.Fatalf("sub-messages must merge, got id=%q label=%q", tm.GetString("id"), tm.GetString("label"))
	}
	if got := out.GetStrings("aliases"); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Fatalf("repeated fields must append, got %v", got)
	}
}

func TestWireTypeMismatch(t *testing.T) {
	testlog.Start(t)
	types := testTypes(t)
	raw := protowire.AppendTag(nil, 1, protowire.VarintType)
	raw = protowire.AppendVarint(raw, 7)
	_, err := Unmarshal(types, raw, sampleDesc)
	if !errors.Is(err, ErrWireTypeMismatch) {
		t.Fatalf("expected ErrWireTypeMismatch, got %v", err)
	}
	var wte *WireTypeError
	if !errors.As(err, &wte) || wte.Field != "id" || wte.Got != protowire.VarintType {
		t.Fatalf("unexpected wire type error %+v", err)
	}
}

func TestTruncatedInput(t *testing.T) {
	testlog.Start(t)
	types := testTypes(t)
	raw, err := Marshal(fullSample(t))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, cut := range []int{1, 5, len(raw) - 1} {
		_, err := Unmarshal(types, raw[:cut], sampleDesc)
		if !errors.Is(err, ErrTruncatedInput) {
			t.Fatalf("cut at %d: expected ErrTruncatedInput, got %v", cut, err)
		}
	}
	if _, err := Unmarshal(types, []byte{0x0a}, sampleDesc); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("tag without value: expected ErrTruncatedInput, got %v", err)
	}
}

func TestInvalidUTF8(t *testing.T) {
	testlog.Start(t)
	types := testTypes(t)
	raw := protowire.AppendTag(nil, 1, protowire.BytesType)
	raw = protowire.AppendBytes(raw, []byte{0xff, 0xfe})
	if _, err := Unmarshal(types, raw, sampleDesc); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	bad := dynamic.Build(sampleDesc).String("id", string([]byte{0xff})).Done()
	if _, err := Marshal(bad); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8 on encode, got %v", err)
	}
}

func TestMapEntriesSortedAndTolerant(t *testing.T) {
	testlog.Start(t)
	types := testTypes(t)
	m := dynamic.Build(sampleDesc).StringMap("attributes", map[string]string{"z": "1", "a": ""}).Done()
	raw, err := Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := []byte{
		0x7a, 0x05, 0x0a, 0x01, 'a', 0x12, 0x00,
		0x7a, 0x06, 0x0a, 0x01, 'z', 0x12, 0x01, '1',
	}
	if !bytes.Equal(raw, want) {
		t.Fatalf("map encoding: got %x want %x", raw, want)
	}

	// An entry missing its value, with an unknown field inside it.
	entry := protowire.AppendTag(nil, 1, protowire.BytesType)
	entry = protowire.AppendString(entry, "k")
	entry = protowire.AppendTag(entry, 3, protowire.VarintType)
	entry = protowire.AppendVarint(entry, 1)
	in := protowire.AppendTag(nil, 15, protowire.BytesType)
	in = protowire.AppendBytes(in, entry)
	out, err := Unmarshal(types, in, sampleDesc)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := out.GetStringMap("attributes")
	if v, ok := got["k"]; !ok || v != "" {
		t.Fatalf("entry without value must default, got %v", got)
	}
}

func TestNegativeInt32UsesTenBytes(t *testing.T) {
	testlog.Start(t)
	types := testTypes(t)
	m := dynamic.New(sampleDesc)
	if err := m.Set(13, dynamic.OfEnum(-1)); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, err := Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(raw) != 1+10 {
		t.Fatalf("negative enum must be sign extended to 10 bytes, got %d", len(raw))
	}
	out, err := Unmarshal(types, raw, sampleDesc)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.GetEnum("status") != -1 {
		t.Fatalf("unexpected enum %d", out.GetEnum("status"))
	}
}
