// internal/fasta/errors.go
package fasta

import "fmt"

// IOError wraps a read failure on an input file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("IO error reading %s: %v", e.Path, e.Err) }

func (e *IOError) Unwrap() error { return e.Err }

// EmptyInputError is returned when an input holds no FASTA records.
type EmptyInputError struct {
	Path string
}

func (e *EmptyInputError) Error() string { return fmt.Sprintf("no records found in %s", e.Path) }
