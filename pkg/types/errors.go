package types

import "errors"

// Pipeline errors. Structural and encoding failures abort the current file;
// everything else in the pipeline degrades to a Warning instead of an error.
var (
	ErrUndecodableInput = errors.New("no supported encoding decodes the input")
	ErrEmptyInput       = errors.New("input is empty")
)

// Mapping table errors.
var (
	ErrMappingNotFound = errors.New("mapping file not found")
	ErrInvalidMapping  = errors.New("invalid mapping table")
	ErrFormNotMapped   = errors.New("form code not in mapping")
)

// Store errors.
var (
	ErrStoreClosed   = errors.New("store is closed")
	ErrBatchNotFound = errors.New("batch not found")
)
