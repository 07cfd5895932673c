package validation

import (
	"errors"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/dispatcher/internal/errors"
)

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "valid string",
			input:     "validstring",
			shouldErr: false,
		},
		{
			name:      "empty string is left to Required",
			input:     "",
			shouldErr: false,
		},
		{
			name:      "only spaces",
			input:     "   ",
			shouldErr: true,
		},
		{
			name:      "only tabs",
			input:     "\t\t",
			shouldErr: true,
		},
		{
			name:      "mixed whitespace",
			input:     " \t\n ",
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotBlank.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, NoWhitespace.Validate("sqlite"))
	assert.Error(t, NoWhitespace.Validate(" sqlite"))
	assert.Error(t, NoWhitespace.Validate("sqlite\n"))
}

func TestOneOf(t *testing.T) {
	rule := OneOf("success", "failure")

	assert.NoError(t, validation.Validate("success", rule))
	assert.NoError(t, validation.Validate("", rule))

	err := validation.Validate("pending", rule)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of: success, failure")
}

func TestBase64(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		shouldErr bool
	}{
		{name: "valid", input: "c2VjcmV0", shouldErr: false},
		{name: "empty", input: "", shouldErr: false},
		{name: "invalid characters", input: "not base64!", shouldErr: true},
		{name: "not a string", input: 42, shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.input, Base64)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(errors.New("body: must not be blank."))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "body: must not be blank.")
	assert.Contains(t, err.Error(), "invalid input")
}
