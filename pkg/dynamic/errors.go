package dynamic

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMultipleOneofBranches = errors.New("dynamic: multiple oneof branches populated")
	ErrValueMismatch         = errors.New("dynamic: value does not fit field")
)

// OneofError names the branches populated at once in one oneof group.
type OneofError struct {
	Type     string
	Oneof    string
	Branches []string
}

func (e *OneofError) Error() string {
	return fmt.Sprintf(
		"dynamic: %s.%s has %d branches populated: %s",
		e.Type,
		e.Oneof,
		len(e.Branches),
		strings.Join(e.Branches, ", "),
	)
}

func (e *OneofError) Unwrap() error {
	return ErrMultipleOneofBranches
}

func mismatch(typeName, field, reason string) error {
	return fmt.Errorf("%w: %s.%s: %s", ErrValueMismatch, typeName, field, reason)
}
