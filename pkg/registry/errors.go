package registry

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaConflict    = errors.New("registry: schema conflict")
	ErrUnknownType       = errors.New("registry: unknown type")
	ErrUnknownField      = errors.New("registry: unknown field")
	ErrInvalidDescriptor = errors.New("registry: invalid descriptor")
	ErrFrozen            = errors.New("registry: frozen")
)

// SchemaConflictError reports two incompatible definitions of one type name.
type SchemaConflictError struct {
	Name     string
	Existing string
	Incoming string
	Reason   string
}

func (e *SchemaConflictError) Error() string {
	return fmt.Sprintf(
		"registry: schema conflict for %s: defined by %q and %q: %s",
		e.Name,
		e.Existing,
		e.Incoming,
		e.Reason,
	)
}

func (e *SchemaConflictError) Unwrap() error {
	return ErrSchemaConflict
}

// DescriptorError reports a descriptor that cannot be registered as written.
type DescriptorError struct {
	Type   string
	Field  string
	Reason string
}

func (e *DescriptorError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("registry: type=%s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("registry: type=%s field=%s: %s", e.Type, e.Field, e.Reason)
}

func (e *DescriptorError) Unwrap() error {
	return ErrInvalidDescriptor
}

func unknownType(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownType, name)
}

func unknownField(typeName, field string) error {
	return fmt.Errorf("%w: %s.%s", ErrUnknownField, typeName, field)
}
