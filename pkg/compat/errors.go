package compat

import (
	"errors"
	"fmt"
)

var (
	ErrAliasCollision = errors.New("compat: alias collision")
	ErrNotMessage     = errors.New("compat: not a message type")
)

// AliasCollisionError reports two distinct types that would share one flat
// name.
type AliasCollisionError struct {
	Alias    string
	Existing string
	Incoming string
}

func (e *AliasCollisionError) Error() string {
	return fmt.Sprintf("compat: alias %q claimed by %s and %s", e.Alias, e.Existing, e.Incoming)
}

func (e *AliasCollisionError) Unwrap() error {
	return ErrAliasCollision
}
