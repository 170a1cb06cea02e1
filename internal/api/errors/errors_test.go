package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want int
	}{
		{KindValidation, http.StatusUnprocessableEntity},
		{KindBadRequest, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{KindInternal, http.StatusInternalServerError},
		{ErrorKind("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, (&APIError{Kind: tt.kind}).HTTPStatus())
		})
	}
}

func TestWrapError(t *testing.T) {
	cause := stderrors.New("disk full")

	apiErr := WrapError(cause, KindInternal, "Internal Server Error during processing: disk full")

	assert.Equal(t, "Internal Server Error during processing: disk full", apiErr.Error())
	assert.True(t, stderrors.Is(apiErr, cause))
	assert.Nil(t, WrapError(nil, KindInternal, "ignored"))
}

func TestWrapErrorPreservesDetails(t *testing.T) {
	inner := NewValidationError("bad", map[string]string{"file": "required"})
	inner.Code = "missing_file"

	apiErr := WrapError(inner, KindBadRequest, "outer")

	assert.Equal(t, map[string]string{"file": "required"}, apiErr.Details)
	assert.Equal(t, "missing_file", apiErr.Code)
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus())
}

func TestNewPayloadTooLargeError(t *testing.T) {
	apiErr := NewPayloadTooLargeError(1 << 20)

	assert.Equal(t, KindPayloadTooLarge, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "1048576")
}
