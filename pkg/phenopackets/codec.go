package phenopackets

import (
	"fmt"

	"github.com/danmuck/phenopackets/pkg/catalog"
	"github.com/danmuck/phenopackets/pkg/compat"
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/format"
	"github.com/danmuck/phenopackets/pkg/jsonpb"
	"github.com/danmuck/phenopackets/pkg/wire"
)

// Message is a typed record of the schema that can also load itself.
type Message[T any] interface {
	*T
	dynamic.Model
	FromMessage(m *dynamic.Message)
}

// Resolve looks a type name up in the flat namespace.
func Resolve(name string) (compat.Handle, error) {
	c, err := catalog.Load()
	if err != nil {
		return compat.Handle{}, err
	}
	return c.Resolve(name, compat.Flat)
}

// Marshal writes x in the binary wire format.
func Marshal(x dynamic.Model) ([]byte, error) {
	return wire.Marshal(x.ToMessage())
}

// Unmarshal reads the binary wire format into a new *T.
func Unmarshal[T any, P Message[T]](b []byte) (*T, error) {
	return decode[T, P](format.Binary, b)
}

// MarshalJSON writes x as canonical JSON.
func MarshalJSON(x dynamic.Model) ([]byte, error) {
	return encode(format.JSON, x)
}

// UnmarshalJSON reads canonical JSON into a new *T.
func UnmarshalJSON[T any, P Message[T]](data []byte) (*T, error) {
	return decode[T, P](format.JSON, data)
}

// MarshalYAML writes x as YAML with the JSON key names.
func MarshalYAML(x dynamic.Model) ([]byte, error) {
	return encode(format.YAML, x)
}

func UnmarshalYAML[T any, P Message[T]](data []byte) (*T, error) {
	return decode[T, P](format.YAML, data)
}

// MarshalIndentJSON is MarshalJSON with two-space indentation.
func MarshalIndentJSON(x dynamic.Model) ([]byte, error) {
	c, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	return jsonpb.MarshalOptions{Indent: "  "}.Marshal(c.Types, x.ToMessage())
}

func encode(f format.Format, x dynamic.Model) ([]byte, error) {
	c, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	return format.New(c.Types).Encode(f, x.ToMessage())
}

func decode[T any, P Message[T]](f format.Format, data []byte) (*T, error) {
	c, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	var zero P
	desc := zero.Descriptor()
	m, err := format.New(c.Types).Decode(f, data, desc)
	if err != nil {
		return nil, fmt.Errorf("phenopackets: %s %s: %w", f, desc.Name(), err)
	}
	return dynamic.Load[T, P](m), nil
}
