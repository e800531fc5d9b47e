package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := fmt.Errorf("signup: %w", newError(KindStore, cause, "Failed to create user"))

	var appErr *AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Failed to create user", appErr.Message)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to create user: dial tcp: timeout", appErr.Error())
	assert.Equal(t, "store", appErr.Kind.String())

	assert.Equal(t, "Invalid body", newError(KindValidation, nil, "Invalid body").Error())
}
