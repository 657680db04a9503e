package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/phenopackets/internal/testutil/testlog"
	"github.com/danmuck/phenopackets/pkg/catalog"
	"github.com/danmuck/phenopackets/pkg/format"
	"github.com/danmuck/phenopackets/pkg/jsonpb"
	v2 "github.com/danmuck/phenopackets/pkg/phenopackets/schema/v2"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
log_level = "debug"
json_indent = 4
emit_defaults = true
preserve_unknown = false
store_path = "cases.db"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
	if cfg.JSONIndent != 4 {
		t.Fatalf("unexpected indent: %d", cfg.JSONIndent)
	}
	if !cfg.EmitDefaults {
		t.Fatalf("expected emit_defaults enabled")
	}
	if cfg.PreserveUnknown {
		t.Fatalf("expected preserve_unknown disabled")
	}
	if cfg.RejectUnknownJSON {
		t.Fatalf("reject_unknown_json should keep its default")
	}
	if !cfg.RequireMetaData {
		t.Fatalf("require_meta_data should keep its default")
	}
	if want := filepath.Join(filepath.Dir(path), "cases.db"); cfg.StorePath != want {
		t.Fatalf("store path = %q, want %q", cfg.StorePath, want)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	testlog.Start(t)
	for name, body := range map[string]string{
		"level":   `log_level = "loud"`,
		"indent":  `json_indent = 12`,
		"store":   `store_path = " "`,
		"unknown": `mirage_policy = "headless"`,
	} {
		if _, err := Load(writeConfig(t, body)); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
	if _, err := Load(writeConfig(t, `json_indent = "two"`)); err == nil {
		t.Fatal("expected a decode error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	testlog.Start(t)
	t.Setenv(EnvConfigPath, "")
	cfg, err := LoadOrDefault("")
	if err != nil || cfg != Default() {
		t.Fatalf("expected defaults, got %+v %v", cfg, err)
	}

	t.Setenv(EnvConfigPath, writeConfig(t, `require_meta_data = false`))
	cfg, err = LoadOrDefault("")
	if err != nil {
		t.Fatalf("load from env: %v", err)
	}
	if cfg.RequireMetaData {
		t.Fatalf("env config was not applied")
	}
}

func TestWriteTemplateRoundTrips(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("overwrite template: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		t.Fatalf("template is not valid toml: %v\n%s", err, data)
	}
	for _, key := range []string{"log_level", "json_indent", "emit_defaults", "preserve_unknown", "reject_unknown_json", "store_path", "require_meta_data"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("template missing %s:\n%s", key, data)
		}
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	want := Default()
	want.StorePath = filepath.Join(filepath.Dir(path), DefaultStorePath)
	if cfg != want {
		t.Fatalf("template config = %+v, want %+v", cfg, want)
	}
}

func TestApplyCodec(t *testing.T) {
	testlog.Start(t)
	cfg := Default()
	cfg.JSONIndent = 0
	cfg.RejectUnknownJSON = true
	c := cfg.ApplyCodec(format.New(catalog.MustLoad().Types))
	if c.JSONOut.Indent != "" || !c.JSONIn.RejectUnknown || !c.BinaryIn.PreserveUnknown {
		t.Fatalf("unexpected codec options: %+v", c)
	}
	if c.YAMLIndent != 2 {
		t.Fatalf("yaml indent should keep its default, got %d", c.YAMLIndent)
	}

	_, err := c.Decode(format.JSON, []byte(`{"id":"x","hoopy":true}`), v2.PhenopacketDesc)
	if !errors.Is(err, jsonpb.ErrUnknownField) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}
