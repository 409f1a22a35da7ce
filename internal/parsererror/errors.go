// Package parsererror holds the typed errors shared by the ingest, storage and export layers.
package parsererror

import (
	"errors"
	"fmt"
)

// ParseError is a failure to interpret a value coming from outside the program.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports an input that exists but cannot be used.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError reports an unsupported format: a file that is not what it claims
// to be, or an export format name nobody implements.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("invalid format: %s. Expected: %s", e.Msg, e.ExpectedFormat)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// OracleError is a transport failure while calling the language model.
type OracleError struct {
	Provider string
	Err      error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s: request failed: %v", e.Provider, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// ReplyError is a model reply that does not have the requested shape.
type ReplyError struct {
	Reason string
	Reply  string
	Err    error
}

func (e *ReplyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unusable oracle reply: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unusable oracle reply: %s", e.Reason)
}

func (e *ReplyError) Unwrap() error {
	return e.Err
}

// StorageError wraps an I/O or schema failure from the record store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("record store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsOracleFailure reports whether err came from the oracle, in transport or reply shape.
func IsOracleFailure(err error) bool {
	var oe *OracleError
	var re *ReplyError
	return errors.As(err, &oe) || errors.As(err, &re)
}

// IsStorageFailure reports whether err is a StorageError.
func IsStorageFailure(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
