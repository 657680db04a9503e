// Package config loads the phenoctl TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/phenopackets/internal/logging"
	"github.com/danmuck/phenopackets/pkg/format"
	"github.com/danmuck/phenopackets/pkg/jsonpb"
	"github.com/danmuck/phenopackets/pkg/wire"
	gotoml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultFileName  = "phenoctl.toml"
	DefaultStorePath = "phenopackets.db"
	EnvConfigPath    = "PHENO_CONFIG"
)

var (
	ErrInvalid = errors.New("config: invalid")
	ErrExists  = errors.New("config: file already exists")
)

// Config is the resolved phenoctl configuration.
type Config struct {
	LogLevel          string `toml:"log_level"`
	JSONIndent        int    `toml:"json_indent"`
	EmitDefaults      bool   `toml:"emit_defaults"`
	PreserveUnknown   bool   `toml:"preserve_unknown"`
	RejectUnknownJSON bool   `toml:"reject_unknown_json"`
	StorePath         string `toml:"store_path"`
	RequireMetaData   bool   `toml:"require_meta_data"`
}

func Default() Config {
	return Config{
		LogLevel:        "info",
		JSONIndent:      2,
		PreserveUnknown: true,
		StorePath:       DefaultStorePath,
		RequireMetaData: true,
	}
}

// fileConfig mirrors Config so unset keys can be told apart from zero values.
type fileConfig struct {
	LogLevel          string `toml:"log_level"`
	JSONIndent        int    `toml:"json_indent"`
	EmitDefaults      bool   `toml:"emit_defaults"`
	PreserveUnknown   bool   `toml:"preserve_unknown"`
	RejectUnknownJSON bool   `toml:"reject_unknown_json"`
	StorePath         string `toml:"store_path"`
	RequireMetaData   bool   `toml:"require_meta_data"`
}

// Load reads path over Default. Keys missing from the file keep their
// default; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("json_indent") {
		cfg.JSONIndent = raw.JSONIndent
	}
	if meta.IsDefined("emit_defaults") {
		cfg.EmitDefaults = raw.EmitDefaults
	}
	if meta.IsDefined("preserve_unknown") {
		cfg.PreserveUnknown = raw.PreserveUnknown
	}
	if meta.IsDefined("reject_unknown_json") {
		cfg.RejectUnknownJSON = raw.RejectUnknownJSON
	}
	if meta.IsDefined("store_path") {
		cfg.StorePath = strings.TrimSpace(raw.StorePath)
	}
	if meta.IsDefined("require_meta_data") {
		cfg.RequireMetaData = raw.RequireMetaData
	}
	if cfg.StorePath != "" && !filepath.IsAbs(cfg.StorePath) {
		cfg.StorePath = filepath.Join(filepath.Dir(path), cfg.StorePath)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads path when it is set, then $PHENO_CONFIG, and
// otherwise returns Default.
func LoadOrDefault(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func Validate(cfg Config) error {
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, cfg.LogLevel)
	}
	if cfg.JSONIndent < 0 || cfg.JSONIndent > 8 {
		return fmt.Errorf("%w: json_indent %d out of range 0..8", ErrInvalid, cfg.JSONIndent)
	}
	if strings.TrimSpace(cfg.StorePath) == "" {
		return fmt.Errorf("%w: store_path is required", ErrInvalid)
	}
	return nil
}

// ApplyCodec copies the codec options of cfg onto c.
func (cfg Config) ApplyCodec(c *format.Codec) *format.Codec {
	c.JSONOut = jsonpb.MarshalOptions{
		EmitDefaults: cfg.EmitDefaults,
		Indent:       strings.Repeat(" ", cfg.JSONIndent),
	}
	c.JSONIn = jsonpb.UnmarshalOptions{RejectUnknown: cfg.RejectUnknownJSON}
	c.BinaryIn = wire.UnmarshalOptions{PreserveUnknown: cfg.PreserveUnknown}
	if cfg.JSONIndent > 0 {
		c.YAMLIndent = cfg.JSONIndent
	}
	return c
}

// Render writes cfg as TOML.
func Render(cfg Config) ([]byte, error) {
	out, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	return out, nil
}

// WriteTemplate writes the default configuration to path.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}
	data, err := Render(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
