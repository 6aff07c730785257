package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCarriesKindAndMessage(t *testing.T) {
	err := E(ErrInvalidInput, "Missing name")

	assert.EqualError(t, err, "Missing name")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("upload failed: %w", E(ErrStorageFailure, "disk full"))

	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.False(t, errors.Is(err, ErrConflict))
}
