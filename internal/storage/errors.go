package storage

import (
	"errors"
	"fmt"
)

// ErrInvalidImport marks an import payload whose top-level shape is wrong.
// The stored data is left untouched when it is returned.
var ErrInvalidImport = errors.New("import payload has unexpected shape")

// PersistenceError is returned when the backing store rejects a write.
// Callers must surface it and must not assume the write took effect.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
