// Package errors provides structured error types for the skills installer.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error codes for installer operations.
const (
	// Config errors
	CodeConfigMissingField = "CONFIG_001" // Missing required field
	CodeConfigInvalidValue = "CONFIG_002" // Invalid value

	// Platform errors
	CodeUnknownPlatform    = "PLATFORM_001" // Platform id not registered
	CodeNoPlatformDetected = "PLATFORM_002" // Nothing detected and none given
	CodeInvalidDescriptor  = "PLATFORM_003" // Registry table violates an invariant

	// Install errors
	CodePreconditionFailed = "INSTALL_001" // Interpreter check failed
	CodeTargetDirMissing   = "INSTALL_002" // Project target does not exist
	CodeHooksSourceMissing = "INSTALL_003" // Hook scripts not shipped

	// IO errors
	CodeIOFileNotFound = "IO_001" // File not found
	CodeIOPermission   = "IO_002" // Permission denied
	CodeIOReadError    = "IO_004" // Read error
	CodeIOWriteError   = "IO_005" // Write error
)

// SkillsError is the structured error type for installer operations.
type SkillsError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

// Error implements the error interface.
func (e *SkillsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *SkillsError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error.
func (e *SkillsError) WithDetail(key string, value any) *SkillsError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause wraps an underlying error.
func (e *SkillsError) WithCause(err error) *SkillsError {
	e.Cause = err
	return e
}

// MarshalJSON includes the cause message.
func (e *SkillsError) MarshalJSON() ([]byte, error) {
	type alias SkillsError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// New creates a new SkillsError.
func New(code, message string) *SkillsError {
	return &SkillsError{Code: code, Message: message}
}

// Newf creates a new SkillsError with formatted message.
func Newf(code, format string, args ...any) *SkillsError {
	return &SkillsError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a SkillsError.
func Wrap(code, message string, err error) *SkillsError {
	return &SkillsError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an error with a formatted SkillsError.
func Wrapf(code string, err error, format string, args ...any) *SkillsError {
	return &SkillsError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// --- Config Errors ---

// ConfigMissingField creates an error for missing config field.
func ConfigMissingField(field string) *SkillsError {
	return Newf(CodeConfigMissingField, "missing required config field: %s", field).
		WithDetail("field", field)
}

// ConfigInvalidValue creates an error for invalid config value.
func ConfigInvalidValue(field string, value any, reason string) *SkillsError {
	return Newf(CodeConfigInvalidValue, "invalid config value for %s: %s", field, reason).
		WithDetail("field", field).
		WithDetail("value", value).
		WithDetail("reason", reason)
}

// --- Platform Errors ---

// UnknownPlatform creates an error for an unregistered platform id.
// The message lists every valid id so the user can correct the flag.
func UnknownPlatform(id string, valid []string) *SkillsError {
	return Newf(CodeUnknownPlatform, "unknown platform: %s. Supported: %s", id, strings.Join(valid, ", ")).
		WithDetail("platform", id).
		WithDetail("supported", valid)
}

// NoPlatformDetected creates an error for a run with nothing to target.
func NoPlatformDetected() *SkillsError {
	return New(CodeNoPlatformDetected,
		"no supported platform detected. Install Claude Code or Cursor first, or specify a platform with --platform")
}

// InvalidDescriptor creates an error for a malformed registry entry.
func InvalidDescriptor(id, reason string) *SkillsError {
	return Newf(CodeInvalidDescriptor, "invalid platform descriptor %q: %s", id, reason).
		WithDetail("platform", id).
		WithDetail("reason", reason)
}

// --- Install Errors ---

// PreconditionFailed creates an error for a failed environment check.
func PreconditionFailed(problems []string) *SkillsError {
	msg := "environment check failed"
	if len(problems) > 0 {
		msg += ": " + strings.Join(problems, "; ")
	}
	return New(CodePreconditionFailed, msg).WithDetail("errors", problems)
}

// TargetDirMissing creates an error for a nonexistent project directory.
func TargetDirMissing(dir string) *SkillsError {
	return Newf(CodeTargetDirMissing, "target directory does not exist: %s", dir).
		WithDetail("path", dir)
}

// HooksSourceMissing creates an error for missing hook scripts.
func HooksSourceMissing(dir string) *SkillsError {
	return Newf(CodeHooksSourceMissing, "hooks source not found: %s", dir).
		WithDetail("path", dir)
}

// --- IO Errors ---

// IOFileNotFound creates an error for missing file.
func IOFileNotFound(path string) *SkillsError {
	return Newf(CodeIOFileNotFound, "file not found: %s", path).
		WithDetail("path", path)
}

// IOPermissionDenied creates an error for permission issues.
func IOPermissionDenied(path string, err error) *SkillsError {
	return Wrap(CodeIOPermission, "permission denied", err).
		WithDetail("path", path)
}

// IOReadError creates an error for read failures.
func IOReadError(path string, err error) *SkillsError {
	return Wrap(CodeIOReadError, "failed to read file", err).
		WithDetail("path", path)
}

// IOWriteError creates an error for write failures.
func IOWriteError(path string, err error) *SkillsError {
	return Wrap(CodeIOWriteError, "failed to write file", err).
		WithDetail("path", path)
}

// HasCode checks if an error is a SkillsError with the given code.
// It handles wrapped errors by unwrapping to find a SkillsError.
func HasCode(err error, code string) bool {
	var serr *SkillsError
	if errors.As(err, &serr) {
		return serr.Code == code
	}
	return false
}

// Code returns the error code if err is a SkillsError, empty string otherwise.
func Code(err error) string {
	var serr *SkillsError
	if errors.As(err, &serr) {
		return serr.Code
	}
	return ""
}
