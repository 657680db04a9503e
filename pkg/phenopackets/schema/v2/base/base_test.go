package base

import (
	"testing"

	"github.com/danmuck/phenopackets/internal/testutil/testlog"
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
	"github.com/danmuck/phenopackets/pkg/wire"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func baseTypes(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	if err := registry.RegisterWellKnownTypes(r); err != nil {
		t.Fatalf("register wkt: %v", err)
	}
	if err := Register(r); err != nil {
		t.Fatalf("register base: %v", err)
	}
	if err := r.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	return r
}

func TestNewGestationalAge(t *testing.T) {
	testlog.Start(t)
	ga, err := NewGestationalAge(33, 2)
	if err != nil {
		t.Fatalf("valid age: %v", err)
	}
	if ga.Weeks != 33 || ga.Days != 2 {
		t.Fatalf("unexpected age %+v", ga)
	}
	for _, tc := range []struct{ weeks, days int32 }{{-1, 0}, {46, 0}, {20, 7}, {20, -1}} {
		if _, err := NewGestationalAge(tc.weeks, tc.days); err == nil {
			t.Fatalf("expected error for %d+%d", tc.weeks, tc.days)
		}
	}
}

func TestTimestampElement(t *testing.T) {
	testlog.Start(t)
	te, err := TimestampElement("2021-03-02T10:00:00.5Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ts, ok := te.Element.(TimeElementTimestamp)
	if !ok {
		t.Fatalf("expected timestamp branch, got %T", te.Element)
	}
	if ts.Timestamp.GetSeconds() != 1614679200 || ts.Timestamp.GetNanos() != 500000000 {
		t.Fatalf("unexpected timestamp %v", ts.Timestamp)
	}
	if _, err := TimestampElement("yesterday"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTimeElementBranchesRoundTrip(t *testing.T) {
	testlog.Start(t)
	types := baseTypes(t)
	elements := []*TimeElement{
		AgeElement("P25Y3M2D"),
		{Element: TimeElementAgeRange{AgeRange: &AgeRange{Start: &Age{ISO8601Duration: "P40Y"}, End: &Age{ISO8601Duration: "P45Y"}}}},
		{Element: TimeElementOntologyClass{OntologyClass: NewOntologyClass("HP:0003593", "Infantile onset")}},
		{Element: TimeElementTimestamp{Timestamp: &timestamppb.Timestamp{Seconds: 1, Nanos: 2}}},
		{Element: TimeElementInterval{Interval: &TimeInterval{
			Start: &timestamppb.Timestamp{Seconds: 100},
			End:   &timestamppb.Timestamp{Seconds: 200},
		}}},
		{Element: TimeElementGestationalAge{GestationalAge: &GestationalAge{Weeks: 20}}},
	}
	for _, want := range elements {
		b, err := wire.Marshal(want.ToMessage())
		if err != nil {
			t.Fatalf("marshal %T: %v", want.Element, err)
		}
		m, err := wire.Unmarshal(types, b, TimeElementDesc)
		if err != nil {
			t.Fatalf("unmarshal %T: %v", want.Element, err)
		}
		got := dynamic.Load[TimeElement](m)
		if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
			t.Fatalf("%T mismatch (-want +got):\n%s", want.Element, diff)
		}
	}
}

func TestNilWrapperIsUnset(t *testing.T) {
	testlog.Start(t)
	m := (&TimeElement{Element: TimeElementAge{}}).ToMessage()
	if m.Which("element") != "" {
		t.Fatalf("nil branch should be unset, got %q", m.Which("element"))
	}
	var te TimeElement
	te.FromMessage(m)
	if te.Element != nil {
		t.Fatalf("expected no element, got %T", te.Element)
	}
}

func TestFileMapsRoundTrip(t *testing.T) {
	testlog.Start(t)
	types := baseTypes(t)
	want := &File{
		URI:                         "file://data/genomes/P000001C",
		IndividualToFileIdentifiers: map[string]string{"P000001C": "Sample_1", "P000002": "Sample_2"},
		FileAttributes:              map[string]string{"genomeAssembly": "GRCh38", "fileFormat": "vcf"},
	}
	b, err := wire.Marshal(want.ToMessage())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	m, err := wire.Unmarshal(types, b, FileDesc)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(want, dynamic.Load[File](m)); diff != "" {
		t.Fatalf("file mismatch (-want +got):\n%s", diff)
	}
}
