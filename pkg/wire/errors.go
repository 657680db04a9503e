package wire

import (
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/phenopackets/pkg/dynamic"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrWireTypeMismatch = errors.New("wire: wire type mismatch")
	ErrTruncatedInput   = errors.New("wire: truncated input")
	ErrMalformed        = errors.New("wire: malformed input")
	ErrInvalidUTF8      = errors.New("wire: invalid UTF-8 in string field")

	// ErrMultipleOneofBranches is returned by Marshal, wrapped in a
	// *dynamic.OneofError.
	ErrMultipleOneofBranches = dynamic.ErrMultipleOneofBranches
)

// WireTypeError reports a known field that arrived with the wrong wire type.
type WireTypeError struct {
	Type   string
	Field  string
	Number protowire.Number
	Got    protowire.Type
	Want   protowire.Type
}

func (e *WireTypeError) Error() string {
	return fmt.Sprintf(
		"wire: %s.%s (#%d): got wire type %d, want %d",
		e.Type,
		e.Field,
		e.Number,
		e.Got,
		e.Want,
	)
}

func (e *WireTypeError) Unwrap() error {
	return ErrWireTypeMismatch
}

// parseError maps a negative protowire length into the package errors.
func parseError(n int) error {
	err := protowire.ParseError(n)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncatedInput, err)
	}
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}
