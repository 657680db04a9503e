package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/phenopackets/internal/config"
	"github.com/danmuck/phenopackets/internal/testutil/testlog"
	v2 "github.com/danmuck/phenopackets/pkg/phenopackets/schema/v2"
	"github.com/tidwall/gjson"
)

const zaphodJSON = `{"id":"PPKT:1","subject":{"id":"Zaphod","sex":"MALE"},"metaData":{"createdBy":"phenoctl test","phenopacketSchemaVersion":"2.0"}}`

type harness struct {
	t      *testing.T
	dir    string
	config string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	testlog.Start(t)
	t.Setenv(config.EnvConfigPath, "")
	dir := t.TempDir()
	h := &harness{t: t, dir: dir, config: filepath.Join(dir, config.DefaultFileName)}
	h.write(config.DefaultFileName, "log_level = \"debug\"\nstore_path = \"db/packets.db\"\njson_indent = 0\n")
	return h
}

func (h *harness) path(name string) string { return filepath.Join(h.dir, name) }

func (h *harness) write(name, body string) string {
	h.t.Helper()
	p := h.path(name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		h.t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCommand(newState(strings.NewReader(stdin), &out, &errOut))
	root.SetArgs(append([]string{"--config", h.config}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(stdin string, args ...string) string {
	h.t.Helper()
	out, err := h.run(stdin, args...)
	if err != nil {
		h.t.Fatalf("phenoctl %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestConvertThroughEveryFormat(t *testing.T) {
	h := newHarness(t)
	in := h.write("case.json", zaphodJSON)

	h.mustRun("", "convert", "-o", h.path("case.yaml"), in)
	y, err := os.ReadFile(h.path("case.yaml"))
	if err != nil {
		t.Fatalf("read yaml: %v", err)
	}
	if !strings.Contains(string(y), "sex: MALE") {
		t.Fatalf("unexpected yaml:\n%s", y)
	}

	h.mustRun("", "convert", "-o", h.path("case.pb"), h.path("case.yaml"))
	out := h.mustRun("", "convert", h.path("case.pb"))
	if strings.TrimSpace(out) != zaphodJSON {
		t.Fatalf("json changed across formats:\n got %s\nwant %s", out, zaphodJSON)
	}
}

func TestConvertFromStdinWithFlatAndVersionedTypes(t *testing.T) {
	h := newHarness(t)
	for _, typ := range []string{"Phenopacket", "phenopackets.Phenopacket", v2.PhenopacketDesc.FullName()} {
		out := h.mustRun(zaphodJSON, "convert", "--type", typ, "--to", "yaml", "-")
		if !strings.HasPrefix(out, "id: PPKT:1") {
			t.Fatalf("%s: unexpected yaml:\n%s", typ, out)
		}
	}
	if _, err := h.run(zaphodJSON, "convert", "--type", "NoSuchThing", "-"); err == nil {
		t.Fatal("expected an unknown type error")
	}
	if _, err := h.run(zaphodJSON, "convert", "--to", "xml", "-"); err == nil {
		t.Fatal("expected an unknown format error")
	}
}

func TestValidate(t *testing.T) {
	h := newHarness(t)
	good := h.write("good.json", zaphodJSON)
	noMeta := h.write("nometa.json", `{"id":"PPKT:2","subject":{"id":"Arthur"}}`)
	unknown := h.write("unknown.json", `{"id":"PPKT:3","towel":true,"metaData":{}}`)

	out := h.mustRun("", "validate", good)
	if !strings.HasPrefix(out, "ok") {
		t.Fatalf("unexpected output: %s", out)
	}

	out, err := h.run("", "validate", good, noMeta)
	if !errors.Is(err, errInvalidInputs) {
		t.Fatalf("expected errInvalidInputs, got %v", err)
	}
	if !strings.Contains(out, "FAIL "+noMeta) || !strings.Contains(out, "meta_data") {
		t.Fatalf("missing failure line:\n%s", out)
	}

	h.mustRun("", "validate", unknown)
	if _, err := h.run("", "validate", "--strict", unknown); !errors.Is(err, errInvalidInputs) {
		t.Fatalf("strict validation should reject unknown keys, got %v", err)
	}

	h.write(config.DefaultFileName, "store_path = \"db/packets.db\"\nrequire_meta_data = false\n")
	h.mustRun("", "validate", noMeta)
}

func TestResolve(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("", "resolve", "Phenopacket", "VitalStatus.Status", "Allele")
	for _, want := range []string{
		v2.PhenopacketDesc.FullName(),
		"org.phenopackets.schema.v2.core.VitalStatus.Status",
		"enum",
		"org.ga4gh.vrs.v1.Allele",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("resolve output missing %q:\n%s", want, out)
		}
	}
	if _, err := h.run("", "resolve", "--namespace", "versioned", "Nope"); err == nil {
		t.Fatal("expected an unknown type error")
	}
	list := h.mustRun("", "resolve", "--list")
	if !strings.Contains(list, "VariationDescriptor") {
		t.Fatalf("alias table missing entries:\n%s", list)
	}
}

func TestStoreCommands(t *testing.T) {
	h := newHarness(t)
	in := h.write("case.json", zaphodJSON)

	out := h.mustRun("", "store", "put", in)
	if !strings.Contains(out, "stored "+v2.PhenopacketDesc.FullName()+" PPKT:1") {
		t.Fatalf("unexpected put output: %s", out)
	}
	if _, err := os.Stat(h.path("db/packets.db")); err != nil {
		t.Fatalf("store_path should be relative to the config: %v", err)
	}

	got := h.mustRun("", "store", "get", "PPKT:1")
	if gjson.Get(got, "subject.id").String() != "Zaphod" {
		t.Fatalf("unexpected get output: %s", got)
	}

	list := h.mustRun("", "store", "list")
	if !strings.Contains(list, "PPKT:1") {
		t.Fatalf("unexpected list output:\n%s", list)
	}

	h.mustRun("", "store", "delete", "PPKT:1")
	if _, err := h.run("", "store", "get", "PPKT:1"); err == nil {
		t.Fatal("expected not found after delete")
	}

	bad := h.write("nometa.json", `{"id":"PPKT:2"}`)
	if _, err := h.run("", "store", "put", bad); !errors.Is(err, v2.ErrMissingMetaData) {
		t.Fatalf("expected ErrMissingMetaData, got %v", err)
	}
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t)
	target := h.path("fresh.toml")
	h.mustRun("", "config", "init", target)
	if _, err := h.run("", "config", "init", target); !errors.Is(err, config.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	h.mustRun("", "config", "init", "--force", target)

	out := h.mustRun("", "config", "show")
	if !strings.Contains(out, "log_level = 'debug'") && !strings.Contains(out, `log_level = "debug"`) {
		t.Fatalf("show should print the loaded config:\n%s", out)
	}

	out = h.mustRun("", "--log-level", "warn", "config", "show")
	if !strings.Contains(out, "warn") {
		t.Fatalf("--log-level should override the config:\n%s", out)
	}
	if _, err := h.run("", "--log-level", "loud", "config", "show"); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for a bad level, got %v", err)
	}
}
