// Package errors provides standardized error handling for mover.
// It defines the error kinds the organizer can produce, typed errors that
// carry them, and helpers for creating, wrapping and classifying errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Fatal kinds: the run stops before touching any file
	ConfigNotFound
	ConfigUnreadable
	ConfigMalformed
	DirectoryUnreadable
	// Per-file kinds: the file is abandoned and the run continues
	EntryAccessError
	DirectoryCreateFailed
	CopyFailed
	MoveFailed
	RemoveFailed
)

var kindNames = map[ErrorKind]string{
	Unknown:               "unknown",
	ConfigNotFound:        "config_not_found",
	ConfigUnreadable:      "config_unreadable",
	ConfigMalformed:       "config_malformed",
	DirectoryUnreadable:   "directory_unreadable",
	EntryAccessError:      "entry_access_error",
	DirectoryCreateFailed: "directory_create_failed",
	CopyFailed:            "copy_failed",
	MoveFailed:            "move_failed",
	RemoveFailed:          "remove_failed",
}

// String returns the snake_case name of the kind
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Fatal reports whether errors of this kind abort the whole run
func (k ErrorKind) Fatal() bool {
	switch k {
	case ConfigNotFound, ConfigUnreadable, ConfigMalformed, DirectoryUnreadable:
		return true
	}
	return false
}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to the rule file
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error. param names the offending
// field, for example "rules[1].destination".
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the first non-Unknown kind found in err's chain.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsKind reports whether err's chain carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// IsConfigNotFound checks if the error is a missing rule file error
func IsConfigNotFound(err error) bool {
	return IsKind(err, ConfigNotFound)
}

// IsConfigMalformed checks if the error is a rule file parse error
func IsConfigMalformed(err error) bool {
	return IsKind(err, ConfigMalformed)
}

// IsFatal reports whether err should stop the run
func IsFatal(err error) bool {
	return KindOf(err).Fatal()
}
