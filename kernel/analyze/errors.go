package analyze

import (
	"errors"
	"fmt"
)

var (
	ErrTextRequired      = errors.New("text is missing")
	ErrTokenizerRequired = errors.New("char filters or token filters given without a tokenizer")
	ErrNoMapping         = errors.New("no mapping stored, cannot resolve an analyzer from a field")
)

// NotFoundError reports an analysis component name that resolved nowhere.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("failed to find %s [%s]", e.Kind, e.Name)
}

// StoreError wraps a definition store failure so callers can tell an internal
// persistence fault from a bad request.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("definition store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
