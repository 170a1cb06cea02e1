package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(ErrMissingAPIKey, "assemblyai")

	assert.True(t, stderrors.Is(err, ErrMissingAPIKey))
	assert.False(t, stderrors.Is(err, ErrInvalidAPIKey))
	assert.Equal(t, "assemblyai: API key is required", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}

func TestIsThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("stage upload: %w", Wrapf(ErrFileWriteFailed, "copy %s", "a.mp3"))

	assert.True(t, stderrors.Is(err, ErrFileWriteFailed))
	assert.Contains(t, err.Error(), "copy a.mp3: file write failed")
}
