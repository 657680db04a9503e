package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/danmuck/phenopackets/internal/testutil/testlog"
	"github.com/danmuck/phenopackets/pkg/catalog"
	"github.com/danmuck/phenopackets/pkg/dynamic"
	v2 "github.com/danmuck/phenopackets/pkg/phenopackets/schema/v2"
	"github.com/danmuck/phenopackets/pkg/wire"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/testing/protocmp"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "packets.db"), catalog.MustLoad().Types, wire.UnmarshalOptions{PreserveUnknown: true})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func packet(id, label string) *v2.Phenopacket {
	return &v2.Phenopacket{
		ID:      id,
		Subject: &v2.Individual{ID: "subject-" + id, Sex: v2.Female},
		PhenotypicFeatures: []*v2.PhenotypicFeature{
			{Type: v2.NewOntologyClass("HP:0001250", label)},
		},
		MetaData: &v2.MetaData{CreatedBy: "store test", PhenopacketSchemaVersion: v2.SchemaVersion},
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	testlog.Start(t)
	s := openStore(t)
	ctx := context.Background()

	want := packet("PPKT:1", "Seizure")
	id, err := s.Put(ctx, want.ToMessage())
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if id != "PPKT:1" {
		t.Fatalf("unexpected id: %q", id)
	}
	m, err := s.Get(ctx, v2.PhenopacketDesc, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(want, dynamic.Load[v2.Phenopacket](m), protocmp.Transform()); diff != "" {
		t.Fatalf("stored packet changed (-want +got):\n%s", diff)
	}
}

func TestPutReplaces(t *testing.T) {
	testlog.Start(t)
	s := openStore(t)
	ctx := context.Background()

	if _, err := s.Put(ctx, packet("PPKT:1", "Seizure").ToMessage()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, packet("PPKT:1", "Ataxia").ToMessage()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	m, err := s.Get(ctx, v2.PhenopacketDesc, "PPKT:1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := dynamic.Load[v2.Phenopacket](m).PhenotypicFeatures[0].Type.Label; got != "Ataxia" {
		t.Fatalf("expected replaced packet, got label %q", got)
	}
	entries, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %+v", entries)
	}
}

func TestListOrdersAndFilters(t *testing.T) {
	testlog.Start(t)
	s := openStore(t)
	ctx := context.Background()

	for _, id := range []string{"PPKT:2", "PPKT:1"} {
		if _, err := s.Put(ctx, packet(id, "Seizure").ToMessage()); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}
	family := &v2.Family{ID: "FAM:1", Proband: packet("PPKT:3", "Ataxia")}
	if _, err := s.Put(ctx, family.ToMessage()); err != nil {
		t.Fatalf("put family: %v", err)
	}

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []string
	for _, e := range all {
		got = append(got, e.Type+"/"+e.ID)
		if e.Size == 0 || e.UpdatedAt.IsZero() {
			t.Fatalf("entry missing size or time: %+v", e)
		}
	}
	want := []string{
		v2.FamilyDesc.FullName() + "/FAM:1",
		v2.PhenopacketDesc.FullName() + "/PPKT:1",
		v2.PhenopacketDesc.FullName() + "/PPKT:2",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list order (-want +got):\n%s", diff)
	}

	packets, err := s.List(ctx, v2.PhenopacketDesc.FullName())
	if err != nil {
		t.Fatalf("list packets: %v", err)
	}
	if len(packets) != 2 {
		t.Fatalf("expected two packets, got %+v", packets)
	}
}

func TestMissingAndInvalid(t *testing.T) {
	testlog.Start(t)
	s := openStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, v2.PhenopacketDesc, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, v2.PhenopacketDesc, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	if _, err := s.Put(ctx, (&v2.Phenopacket{}).ToMessage()); !errors.Is(err, ErrNoID) {
		t.Fatalf("expected ErrNoID, got %v", err)
	}
	if _, err := s.Put(ctx, (&v2.MetaData{CreatedBy: "x"}).ToMessage()); !errors.Is(err, ErrNoID) {
		t.Fatalf("expected ErrNoID for a type without id, got %v", err)
	}
	if _, err := Open(" ", catalog.MustLoad().Types, wire.UnmarshalOptions{}); err == nil {
		t.Fatal("expected an error for an empty path")
	}
}

func TestDelete(t *testing.T) {
	testlog.Start(t)
	s := openStore(t)
	ctx := context.Background()

	if _, err := s.Put(ctx, packet("PPKT:1", "Seizure").ToMessage()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Delete(ctx, v2.PhenopacketDesc, "PPKT:1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, v2.PhenopacketDesc, "PPKT:1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "packets.db")
	types := catalog.MustLoad().Types
	s, err := Open(path, types, wire.UnmarshalOptions{})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if _, err := s.Put(context.Background(), packet("PPKT:1", "Seizure").ToMessage()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	again, err := Open(path, types, wire.UnmarshalOptions{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	if _, err := again.Get(context.Background(), v2.PhenopacketDesc, "PPKT:1"); err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
}
