package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind groups error codes by how the caller should treat them.
type Kind string

const (
	KindParse      Kind = "PARSE"      // malformed, missing or duplicate arguments
	KindValidation Kind = "VALIDATION" // a field value fails its constraint
	KindCommand    Kind = "COMMAND"    // execution-time failure, collection unchanged
	KindStorage    Kind = "STORAGE"    // persistence collaborator failure
	KindInternal   Kind = "INTERNAL"
)

// ErrorCode represents a fitbook error code.
type ErrorCode string

const (
	ErrInvalidCommandFormat ErrorCode = "INVALID_COMMAND_FORMAT" // parse
	ErrUnknownCommand       ErrorCode = "UNKNOWN_COMMAND"        // parse
	ErrMissingIndex         ErrorCode = "MISSING_INDEX"          // parse
	ErrInvalidIndex         ErrorCode = "INVALID_INDEX"          // parse
	ErrDuplicateField       ErrorCode = "DUPLICATE_FIELD"        // parse
	ErrNothingToEdit        ErrorCode = "NOTHING_TO_EDIT"        // parse
	ErrInvalidRange         ErrorCode = "INVALID_RANGE"          // parse
	ErrInvalidValue         ErrorCode = "INVALID_VALUE"          // validation
	ErrIndexOutOfRange      ErrorCode = "INDEX_OUT_OF_RANGE"     // command
	ErrDuplicateClient      ErrorCode = "DUPLICATE_CLIENT"       // command
	ErrExerciseNotFound     ErrorCode = "EXERCISE_NOT_FOUND"     // command
	ErrEmptySeries          ErrorCode = "EMPTY_SERIES"           // command
	ErrNothingToDelete      ErrorCode = "NOTHING_TO_DELETE"      // command
	ErrInvalidRequest       ErrorCode = "INVALID_REQUEST"        // command (export/import/report)
	ErrFileNotFound         ErrorCode = "FILE_NOT_FOUND"         // command
	ErrStorage              ErrorCode = "STORAGE"                // storage
	ErrCancelled            ErrorCode = "CANCELLED"              // internal
	ErrInternal             ErrorCode = "INTERNAL"               // internal
)

// FitError represents a structured error with kind, code, message and details.
// Usage holds the usage text of the offending command for parse errors.
type FitError struct {
	Kind    Kind
	Code    ErrorCode
	Message string
	Usage   string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *FitError) Error() string {
	if e.Usage != "" {
		return fmt.Sprintf("%s: %s\n%s", e.Code, e.Message, e.Usage)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *FitError) Unwrap() error {
	return e.Err
}

// Display returns the message shown to the user, followed by the usage text if present.
func (e *FitError) Display() string {
	if e.Usage != "" {
		return e.Message + "\n" + e.Usage
	}
	return e.Message
}

// NewInvalidCommandFormat creates a parse error carrying the command's usage text.
func NewInvalidCommandFormat(usage string) *FitError {
	return &FitError{
		Kind:    KindParse,
		Code:    ErrInvalidCommandFormat,
		Message: "Invalid command format!",
		Usage:   usage,
	}
}

// NewUnknownCommand creates a parse error for an unrecognized command word.
// suggestion may be empty.
func NewUnknownCommand(word, suggestion string) *FitError {
	msg := fmt.Sprintf("Unknown command: %q", word)
	if suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return &FitError{
		Kind:    KindParse,
		Code:    ErrUnknownCommand,
		Message: msg,
		Details: map[string]any{"word": word, "suggestion": suggestion},
	}
}

// NewMissingIndex creates a parse error for a command that needs an index but got none.
func NewMissingIndex(usage string) *FitError {
	return &FitError{
		Kind:    KindParse,
		Code:    ErrMissingIndex,
		Message: "Index is missing.",
		Usage:   usage,
	}
}

// NewInvalidIndex creates a parse error for a non-numeric or non-positive index.
func NewInvalidIndex(raw, usage string) *FitError {
	return &FitError{
		Kind:    KindParse,
		Code:    ErrInvalidIndex,
		Message: "Index is not a non-zero unsigned integer.",
		Usage:   usage,
		Details: map[string]any{"index": raw},
	}
}

// NewDuplicateField creates a parse error for repeated single-valued prefixes.
func NewDuplicateField(prefixes []string) *FitError {
	return &FitError{
		Kind:    KindParse,
		Code:    ErrDuplicateField,
		Message: fmt.Sprintf("Multiple values specified for the following single-valued field(s): %v", prefixes),
		Details: map[string]any{"prefixes": prefixes},
	}
}

// NewNothingToEdit creates a parse error for an edit that names no field.
func NewNothingToEdit(usage string) *FitError {
	return &FitError{
		Kind:    KindParse,
		Code:    ErrNothingToEdit,
		Message: "At least one field to edit must be provided.",
		Usage:   usage,
	}
}

// NewInvalidRange creates a parse error for a malformed "low, high" range.
func NewInvalidRange(raw string) *FitError {
	return &FitError{
		Kind:    KindParse,
		Code:    ErrInvalidRange,
		Message: fmt.Sprintf("Invalid range %q: expected \"LOW, HIGH\" with LOW <= HIGH", raw),
		Details: map[string]any{"range": raw},
	}
}

// NewInvalidValue creates a validation error with a field-specific constraint message.
func NewInvalidValue(field, constraint string) *FitError {
	return &FitError{
		Kind:    KindValidation,
		Code:    ErrInvalidValue,
		Message: constraint,
		Details: map[string]any{"field": field},
	}
}

// NewIndexOutOfRange creates a command error for an index beyond the filtered view.
func NewIndexOutOfRange(index, size int) *FitError {
	return &FitError{
		Kind:    KindCommand,
		Code:    ErrIndexOutOfRange,
		Message: "The client index provided is invalid",
		Details: map[string]any{"index": index, "size": size},
	}
}

// NewDuplicateClient creates a command error when a client with the same identity exists.
func NewDuplicateClient(name, phone string) *FitError {
	return &FitError{
		Kind:    KindCommand,
		Code:    ErrDuplicateClient,
		Message: "This client already exists in the client book",
		Details: map[string]any{"name": name, "phone": phone},
	}
}

// NewExerciseNotFound creates a command error for deleting a missing exercise.
func NewExerciseNotFound(name string) *FitError {
	return &FitError{
		Kind:    KindCommand,
		Code:    ErrExerciseNotFound,
		Message: fmt.Sprintf("Exercise %q does not exist for this client", name),
		Details: map[string]any{"name": name},
	}
}

// NewEmptySeries creates a command error for removing from an empty time series.
func NewEmptySeries(field string) *FitError {
	return &FitError{
		Kind:    KindCommand,
		Code:    ErrEmptySeries,
		Message: fmt.Sprintf("There is no %s entry to remove", field),
		Details: map[string]any{"field": field},
	}
}

// NewNothingToDelete creates a command error for a delete-all with nothing to delete.
func NewNothingToDelete(what string) *FitError {
	return &FitError{
		Kind:    KindCommand,
		Code:    ErrNothingToDelete,
		Message: fmt.Sprintf("There are no %s to delete", what),
	}
}

// NewInvalidRequest creates a command error for invalid export/import/report parameters.
func NewInvalidRequest(msg string) *FitError {
	return &FitError{
		Kind:    KindCommand,
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewFileNotFound creates a command error for a missing import file.
func NewFileNotFound(path string) *FitError {
	return &FitError{
		Kind:    KindCommand,
		Code:    ErrFileNotFound,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewStorage wraps a persistence failure. The message is the collaborator's own.
func NewStorage(op string, err error) *FitError {
	msg := op + " failed"
	if err != nil {
		msg = fmt.Sprintf("%s failed: %v", op, err)
	}
	return &FitError{
		Kind:    KindStorage,
		Code:    ErrStorage,
		Message: msg,
		Details: map[string]any{"op": op},
		Err:     err,
	}
}

// NewCancelled creates an error for an operation stopped by context cancellation.
func NewCancelled(op string) *FitError {
	return &FitError{
		Kind:    KindInternal,
		Code:    ErrCancelled,
		Message: fmt.Sprintf("%s cancelled", op),
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *FitError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &FitError{
		Kind:    KindInternal,
		Code:    ErrInternal,
		Message: msg,
		Err:     err,
	}
}

// Is checks if an error is (or wraps) a FitError with the given code.
func Is(err error, code ErrorCode) bool {
	var fErr *FitError
	if stderrors.As(err, &fErr) {
		return fErr.Code == code
	}
	return false
}

// IsKind checks if an error is (or wraps) a FitError of the given kind.
func IsKind(err error, kind Kind) bool {
	var fErr *FitError
	if stderrors.As(err, &fErr) {
		return fErr.Kind == kind
	}
	return false
}

// WithUsage attaches usage text to a parse or validation error and returns it.
// Other errors are returned unchanged.
func WithUsage(err error, usage string) error {
	var fErr *FitError
	if !stderrors.As(err, &fErr) {
		return err
	}
	if fErr.Kind != KindParse || fErr.Usage != "" {
		return err
	}
	cp := *fErr
	cp.Usage = usage
	return &cp
}
