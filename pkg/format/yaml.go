package format

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/mailru/easyjson/jwriter"
	"gopkg.in/yaml.v3"
)

var ErrYAML = errors.New("format: unsupported yaml")

// JSONToYAML rewrites a JSON document as block-style YAML, keeping the key
// order of every object.
func JSONToYAML(data []byte) ([]byte, error) {
	return jsonToYAML(data, 2)
}

func jsonToYAML(data []byte, indent int) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("format: json to yaml: %w", err)
	}
	blockStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("format: json to yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blockStyle drops the flow and quoting styles JSON input carries; the
// encoder re-quotes any string that would otherwise read back as another
// type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// YAMLToJSON rewrites a YAML document as compact JSON, keeping key order.
// Only string keys are supported.
func YAMLToJSON(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("format: yaml to json: %w", err)
	}
	w := &jwriter.Writer{NoEscapeHTML: true}
	if doc.Kind == 0 {
		w.RawString("{}")
		return w.BuildBytes()
	}
	if err := writeNode(w, &doc, 0); err != nil {
		return nil, err
	}
	if w.Error != nil {
		return nil, w.Error
	}
	return w.BuildBytes()
}

const maxYAMLDepth = 100

func writeNode(w *jwriter.Writer, n *yaml.Node, depth int) error {
	if depth > maxYAMLDepth {
		return fmt.Errorf("%w: nesting deeper than %d", ErrYAML, maxYAMLDepth)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			w.RawString("null")
			return nil
		}
		return writeNode(w, n.Content[0], depth)
	case yaml.AliasNode:
		return writeNode(w, n.Alias, depth+1)
	case yaml.MappingNode:
		w.RawByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return fmt.Errorf("%w: non-scalar key at line %d", ErrYAML, key.Line)
			}
			if i > 0 {
				w.RawByte(',')
			}
			w.String(key.Value)
			w.RawByte(':')
			if err := writeNode(w, n.Content[i+1], depth+1); err != nil {
				return err
			}
		}
		w.RawByte('}')
	case yaml.SequenceNode:
		w.RawByte('[')
		for i, c := range n.Content {
			if i > 0 {
				w.RawByte(',')
			}
			if err := writeNode(w, c, depth+1); err != nil {
				return err
			}
		}
		w.RawByte(']')
	case yaml.ScalarNode:
		return writeScalar(w, n)
	default:
		return fmt.Errorf("%w: node kind %d at line %d", ErrYAML, n.Kind, n.Line)
	}
	return nil
}

func writeScalar(w *jwriter.Writer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		w.RawString("null")
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrYAML, n.Line, err)
		}
		w.Bool(b)
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			var u uint64
			if uerr := n.Decode(&u); uerr != nil {
				return fmt.Errorf("%w: line %d: %v", ErrYAML, n.Line, err)
			}
			w.Uint64(u)
			return nil
		}
		w.Int64(i)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrYAML, n.Line, err)
		}
		switch {
		case math.IsNaN(f):
			w.String("NaN")
		case math.IsInf(f, 1):
			w.String("Infinity")
		case math.IsInf(f, -1):
			w.String("-Infinity")
		default:
			w.RawString(strconv.FormatFloat(f, 'g', -1, 64))
		}
	default:
		w.String(n.Value)
	}
	return nil
}
