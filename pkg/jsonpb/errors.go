package jsonpb

import (
	"errors"
	"fmt"

	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
)

var (
	ErrInvalidJSON      = errors.New("jsonpb: invalid JSON")
	ErrJSONTypeMismatch = errors.New("jsonpb: JSON type mismatch")
	ErrUnknownEnumValue = errors.New("jsonpb: unknown enum value")
	ErrDuplicateField   = errors.New("jsonpb: duplicate field")
	ErrInvalidValue     = errors.New("jsonpb: invalid value")

	// ErrUnknownField is returned for unknown keys when RejectUnknown is set.
	ErrUnknownField = registry.ErrUnknownField
	// ErrMultipleOneofBranches is returned when one document sets two
	// branches of a oneof, or when Marshal is handed such a tree.
	ErrMultipleOneofBranches = dynamic.ErrMultipleOneofBranches
)

// JSONTypeError reports a JSON value whose shape does not fit its field.
type JSONTypeError struct {
	Type  string
	Field string
	Want  string
	Got   string
}

func (e *JSONTypeError) Error() string {
	return fmt.Sprintf("jsonpb: %s.%s: want %s, got %s", e.Type, e.Field, e.Want, e.Got)
}

func (e *JSONTypeError) Unwrap() error {
	return ErrJSONTypeMismatch
}

// UnknownEnumError reports a symbolic enum name the enum does not declare.
type UnknownEnumError struct {
	Enum  string
	Field string
	Name  string
}

func (e *UnknownEnumError) Error() string {
	return fmt.Sprintf("jsonpb: field %s: %q is not a value of %s", e.Field, e.Name, e.Enum)
}

func (e *UnknownEnumError) Unwrap() error {
	return ErrUnknownEnumValue
}

func invalid(typeName, field, format string, args ...any) error {
	return fmt.Errorf("%w: %s.%s: %s", ErrInvalidValue, typeName, field, fmt.Sprintf(format, args...))
}
