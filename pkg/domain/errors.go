package domain

import (
	"fmt"
	"strings"
)

// The closed error taxonomy. Every service operation returns either a success
// value or one of these types; callers dispatch with errors.As.

// ValidationError reports an input violating a stated precondition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced key that does not exist.
type NotFoundError struct {
	Entity EntityType
	Key    string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// DuplicateKeyError reports an insert that would violate a unique key.
type DuplicateKeyError struct {
	Entity EntityType
	Key    string
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Key)
}

// StateError reports an operation not permitted in the current state
// (pen full, allocation already closed, litter already registered, ...).
type StateError struct {
	Entity EntityType
	ID     string
	Reason string
}

func (e StateError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Reason)
}

// AuthError reports a failed authentication attempt.
type AuthError struct {
	Matricula string
	Reason    string
}

func (e AuthError) Error() string {
	return fmt.Sprintf("authentication failed for %q: %s", e.Matricula, e.Reason)
}

// PermissionDeniedError reports an authenticated user lacking a permission.
type PermissionDeniedError struct {
	Role       string
	Permission string
}

func (e PermissionDeniedError) Error() string {
	return fmt.Sprintf("role %q lacks permission %q", e.Role, e.Permission)
}

// ConflictError reports exhausted compare-and-swap retries against the
// persistent store.
type ConflictError struct {
	Attempts int
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("storage conflict after %d attempts", e.Attempts)
}

// StorageError wraps an underlying file system or database failure.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	if len(e.Result.Violations) == 0 {
		return "transaction blocked by rules"
	}
	msgs := make([]string, 0, len(e.Result.Violations))
	for _, v := range e.Result.Violations {
		msgs = append(msgs, v.Message)
	}
	return "transaction blocked by rules: " + strings.Join(msgs, "; ")
}
