// Package format converts messages between the binary, JSON and YAML
// representations of the schema.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danmuck/phenopackets/internal/observability"
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/jsonpb"
	"github.com/danmuck/phenopackets/pkg/registry"
	"github.com/danmuck/phenopackets/pkg/wire"
)

var ErrUnknownFormat = errors.New("format: unknown format")

type Format int

const (
	JSON Format = iota
	YAML
	Binary
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Parse accepts a format name or a common alias of one.
func Parse(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "binary", "bin", "pb", "protobuf":
		return Binary, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FromPath guesses a format from a file extension.
func FromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, false
	}
	f, err := Parse(ext)
	return f, err == nil
}

// Codec encodes and decodes messages in any Format against one registry.
// The zero options match the codec defaults.
type Codec struct {
	Types      registry.Types
	JSONOut    jsonpb.MarshalOptions
	JSONIn     jsonpb.UnmarshalOptions
	BinaryIn   wire.UnmarshalOptions
	YAMLIndent int
}

func New(types registry.Types) *Codec {
	return &Codec{Types: types, YAMLIndent: 2}
}

func (c *Codec) Encode(f Format, m *dynamic.Message) ([]byte, error) {
	switch f {
	case Binary:
		return wire.Marshal(m)
	case JSON:
		return c.JSONOut.Marshal(c.Types, m)
	case YAML:
		opts := c.JSONOut
		opts.Indent = ""
		data, err := opts.Marshal(c.Types, m)
		if err != nil {
			return nil, err
		}
		return jsonToYAML(data, c.YAMLIndent)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

func (c *Codec) Decode(f Format, data []byte, desc *registry.MessageDescriptor) (*dynamic.Message, error) {
	switch f {
	case Binary:
		return c.BinaryIn.Unmarshal(c.Types, data, desc)
	case JSON:
		return c.JSONIn.Unmarshal(c.Types, data, desc)
	case YAML:
		js, err := YAMLToJSON(data)
		if err != nil {
			return nil, err
		}
		return c.JSONIn.Unmarshal(c.Types, js, desc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// Convert decodes data as a desc message in one format and encodes it in
// another.
func (c *Codec) Convert(from, to Format, data []byte, desc *registry.MessageDescriptor) ([]byte, error) {
	m, err := c.Decode(from, data, desc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", from, err)
	}
	out, err := c.Encode(to, m)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", to, err)
	}
	logger := observability.Logger("format")
	logger.Debug().
		Str("type", desc.FullName()).
		Stringer("from", from).
		Stringer("to", to).
		Int("in", len(data)).
		Int("out", len(out)).
		Msg("converted")
	return out, nil
}
