package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors represent client-side failures.
// These are distinct from the backend's own failures (see BackendError).
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	// Every ValidationError unwraps to it.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrRequestPending indicates a submission while a previous one is unresolved.
	ErrRequestPending = errors.New("request already pending")

	// ErrBackendUnavailable indicates the backend could not be reached at all.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Validation Errors.
//
// These are detected before a request is made and prevent it entirely.
var (
	// ErrEmptyText indicates submitted text content is blank.
	ErrEmptyText = &ValidationError{Reason: "Text content cannot be empty"}

	// ErrTextTooShort indicates submitted text is under MinTextLength.
	ErrTextTooShort = &ValidationError{
		Reason: fmt.Sprintf("Text content is too short (minimum %d characters)", MinTextLength),
	}

	// ErrNegativePrice indicates a product price below zero.
	ErrNegativePrice = &ValidationError{Reason: "Price must not be negative"}

	// ErrPriceNotNumber indicates a NaN or infinite product price.
	ErrPriceNotNumber = &ValidationError{Reason: "Price must be a number"}

	// ErrInvalidURL indicates a string that is not an absolute http(s) URL.
	ErrInvalidURL = &ValidationError{Reason: "Please enter a valid URL"}

	// ErrEmptyQuery indicates a blank chat message.
	ErrEmptyQuery = &ValidationError{Reason: "Message cannot be empty"}

	// ErrEmptyList indicates an attempt to process a URL list with no entries.
	ErrEmptyList = &ValidationError{Reason: "No URLs to process"}

	// ErrMissingField indicates a required field was left blank.
	ErrMissingField = &ValidationError{Reason: "Missing required field"}

	// ErrUnknownAction indicates a manage action other than add, update or remove.
	ErrUnknownAction = &ValidationError{Reason: "Invalid action. Must be add, update, or remove"}

	// ErrUnknownKind indicates a content kind other than description or product.
	ErrUnknownKind = &ValidationError{Reason: "Kind must be desc or product"}

	// ErrUnsupportedFormat indicates a local file no extractor can read.
	ErrUnsupportedFormat = &ValidationError{Reason: "Unsupported file format"}
)

// ValidationError is a user-facing rejection of input.
// Reason is shown verbatim.
type ValidationError struct {
	Reason string

	// kind links a derived error (e.g. MissingField) to its sentinel.
	kind error
}

// Error implements error.
func (e *ValidationError) Error() string {
	return e.Reason
}

// Unwrap exposes ErrInvalidInput and, for derived errors, the sentinel kind.
func (e *ValidationError) Unwrap() []error {
	if e.kind != nil {
		return []error{ErrInvalidInput, e.kind}
	}
	return []error{ErrInvalidInput}
}

// MissingField returns a validation error naming the blank field.
// It matches ErrMissingField under errors.Is.
func MissingField(name string) error {
	return &ValidationError{Reason: fmt.Sprintf("Missing required field: %s", name), kind: ErrMissingField}
}

// BackendError is returned when the backend answers with a non-2xx status.
// Message carries the server's error field verbatim when one was sent.
type BackendError struct {
	Status  int
	Message string
}

// Error implements error.
func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// IsNotFound reports whether the backend rejected the request with 404.
func (e *BackendError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// UserMessage returns the text shown to a user for a failed operation.
// Validation and backend errors are shown verbatim; anything else falls
// back to the supplied generic message, or the raw error when none is given.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var be *BackendError
	if errors.As(err, &be) {
		return be.Error()
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
