package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	verr := NewValidationError()
	assert.False(t, verr.HasErrors())
	assert.NoError(t, verr.OrNil())

	verr.Add("password2", "passwords do not match")
	verr.Add("password2", "ignored")
	verr.Add("email", "this field is required")

	assert.True(t, verr.HasErrors())
	assert.Equal(t, "passwords do not match", verr.Fields["password2"])
	assert.Equal(t, "validation error: email: this field is required; password2: passwords do not match", verr.Error())

	err := fmt.Errorf("register: %w", verr.OrNil())
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrConflict))

	var target *ValidationError
	assert.True(t, errors.As(err, &target))
	assert.Len(t, target.Fields, 2)
}

func TestFieldError(t *testing.T) {
	err := FieldError("stock_quantity", "must be greater than or equal to 0")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, map[string]string{"stock_quantity": "must be greater than or equal to 0"}, err.Fields)
}

func TestNew(t *testing.T) {
	err := New(ErrConflict, "username already taken")

	assert.EqualError(t, err, "username already taken")
	assert.ErrorIs(t, err, ErrConflict)
	assert.False(t, errors.Is(err, ErrNotFound))
}
