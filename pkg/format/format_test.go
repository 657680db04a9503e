package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/phenopackets/internal/testutil/testlog"
	"github.com/danmuck/phenopackets/pkg/catalog"
	v2 "github.com/danmuck/phenopackets/pkg/phenopackets/schema/v2"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestParseAndFromPath(t *testing.T) {
	testlog.Start(t)
	for in, want := range map[string]Format{"json": JSON, "YAML": YAML, "yml": YAML, "pb": Binary, "binary": Binary} {
		got, err := Parse(in)
		if err != nil || got != want {
			t.Fatalf("parse %q: got %v %v", in, got, err)
		}
	}
	if _, err := Parse("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if f, ok := FromPath("testdata/covid19.json"); !ok || f != JSON {
		t.Fatalf("json path: %v %v", f, ok)
	}
	if f, ok := FromPath("/tmp/case.yml"); !ok || f != YAML {
		t.Fatalf("yml path: %v %v", f, ok)
	}
	if _, ok := FromPath("/tmp/case"); ok {
		t.Fatal("no extension should not guess a format")
	}
}

func TestJSONYAMLKeepsOrderAndTypes(t *testing.T) {
	testlog.Start(t)
	in := `{"id":"PPKT:1","subject":{"id":"Zaphod","sex":"MALE","dateOfBirth":"1966-02-02T02:26:42Z"},"count":"12","flags":[1,2.5,true,null]}`

	y, err := JSONToYAML([]byte(in))
	if err != nil {
		t.Fatalf("json to yaml: %v", err)
	}
	text := string(y)
	if strings.Contains(text, "{") {
		t.Fatalf("expected block style yaml, got:\n%s", text)
	}
	if !strings.Contains(text, `count: "12"`) {
		t.Fatalf("numeric-looking string must stay quoted, got:\n%s", text)
	}
	if !strings.HasPrefix(text, "id:") || strings.Index(text, "subject:") > strings.Index(text, "count:") {
		t.Fatalf("key order not preserved:\n%s", text)
	}

	back, err := YAMLToJSON(y)
	if err != nil {
		t.Fatalf("yaml to json: %v", err)
	}
	if string(back) != in {
		t.Fatalf("round trip mismatch:\n got %s\nwant %s", back, in)
	}
}

func TestYAMLToJSONErrors(t *testing.T) {
	testlog.Start(t)
	if _, err := YAMLToJSON([]byte("a: [1, 2")); err == nil {
		t.Fatal("expected a parse error")
	}
	out, err := YAMLToJSON(nil)
	if err != nil || string(out) != "{}" {
		t.Fatalf("empty document: %s %v", out, err)
	}
}

func TestCodecConvertsEveryFormat(t *testing.T) {
	testlog.Start(t)
	c := catalog.MustLoad()
	codec := New(c.Types)
	p := &v2.Phenopacket{
		ID: "PPKT:1",
		Subject: &v2.Individual{
			ID:          "Zaphod",
			Sex:         v2.Male,
			DateOfBirth: &timestamppb.Timestamp{Seconds: -123456798},
		},
		PhenotypicFeatures: []*v2.PhenotypicFeature{
			{Type: v2.NewOntologyClass("HG2G:00001", "Hoopy")},
			{Type: v2.NewOntologyClass("HG2G:00002", "Frood"), Excluded: true},
		},
		MetaData: &v2.MetaData{PhenopacketSchemaVersion: v2.SchemaVersion},
	}
	js, err := codec.Encode(JSON, p.ToMessage())
	if err != nil {
		t.Fatalf("encode json: %v", err)
	}

	y, err := codec.Convert(JSON, YAML, js, v2.PhenopacketDesc)
	if err != nil {
		t.Fatalf("json to yaml: %v", err)
	}
	bin, err := codec.Convert(YAML, Binary, y, v2.PhenopacketDesc)
	if err != nil {
		t.Fatalf("yaml to binary: %v", err)
	}
	again, err := codec.Convert(Binary, JSON, bin, v2.PhenopacketDesc)
	if err != nil {
		t.Fatalf("binary to json: %v", err)
	}
	if !bytes.Equal(js, again) {
		t.Fatalf("json changed across formats:\n%s\n%s", js, again)
	}
	if !strings.Contains(string(y), "sex: MALE") {
		t.Fatalf("yaml should carry enum names:\n%s", y)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	testlog.Start(t)
	codec := New(catalog.MustLoad().Types)
	if _, err := codec.Encode(Format(9), (&v2.OntologyClass{ID: "HP:1"}).ToMessage()); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
