package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(ClientNotFound(), ErrNotFound))
	assert.False(t, IsCode(ClientNotFound(), ErrConflict))
	assert.False(t, IsCode(nil, ErrNotFound))
	assert.False(t, IsCode(fmt.Errorf("plain"), ErrNotFound))
}

func TestIsCodeMatchesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("saving appointment: %w", DuplicateName("Maria"))
	assert.True(t, IsCode(wrapped, ErrConflict))
	assert.False(t, IsCode(wrapped, ErrValidation))
}

func TestErrorsIsAgainstSentinel(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", AppointmentNotFound())
	assert.ErrorIs(t, wrapped, AppointmentNotFound())
	assert.NotErrorIs(t, wrapped, ClientNotFound())
}
