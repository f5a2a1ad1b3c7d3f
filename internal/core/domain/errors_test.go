package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrRequestPending", ErrRequestPending},
		{"ErrBackendUnavailable", ErrBackendUnavailable},
		{"ErrEmptyText", ErrEmptyText},
		{"ErrTextTooShort", ErrTextTooShort},
		{"ErrNegativePrice", ErrNegativePrice},
		{"ErrInvalidURL", ErrInvalidURL},
		{"ErrEmptyQuery", ErrEmptyQuery},
		{"ErrEmptyList", ErrEmptyList},
		{"ErrMissingField", ErrMissingField},
		{"ErrUnknownAction", ErrUnknownAction},
		{"ErrUnknownKind", ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestValidationErrors_WrapInvalidInput(t *testing.T) {
	for _, err := range []error{
		ErrEmptyText, ErrTextTooShort, ErrNegativePrice, ErrInvalidURL,
		ErrEmptyQuery, ErrEmptyList, ErrMissingField, ErrUnknownAction,
	} {
		assert.ErrorIs(t, err, ErrInvalidInput, err.Error())
	}
	assert.NotErrorIs(t, ErrNotFound, ErrInvalidInput)
}

func TestErrTextTooShort_Message(t *testing.T) {
	assert.Equal(t, "Text content is too short (minimum 50 characters)", ErrTextTooShort.Error())
	assert.Equal(t, "Text content cannot be empty", ErrEmptyText.Error())
}

func TestMissingField(t *testing.T) {
	err := MissingField("name")

	assert.Equal(t, "Missing required field: name", err.Error())
	assert.ErrorIs(t, err, ErrMissingField)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrNegativePrice)
}

func TestBackendError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *BackendError
		want string
	}{
		{"server message", &BackendError{Status: 400, Message: "URL is required"}, "URL is required"},
		{"status text", &BackendError{Status: 500}, "Internal Server Error"},
		{"unknown status", &BackendError{Status: 599}, "backend returned status 599"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestBackendError_IsNotFound(t *testing.T) {
	assert.True(t, (&BackendError{Status: 404}).IsNotFound())
	assert.False(t, (&BackendError{Status: 500}).IsNotFound())
}

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("chat: %w", &BackendError{Status: 500, Message: "model offline"})

	assert.Equal(t, "", UserMessage(nil, "fallback"))
	assert.Equal(t, "model offline", UserMessage(wrapped, "fallback"))
	assert.Equal(t, "Text content cannot be empty", UserMessage(fmt.Errorf("text: %w", ErrEmptyText), "fallback"))
	assert.Equal(t, "fallback", UserMessage(errors.New("dial tcp: refused"), "fallback"))
	assert.Equal(t, "timeout", UserMessage(errors.New("timeout"), ""))
}
