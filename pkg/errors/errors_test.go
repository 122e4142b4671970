package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeUnauthenticated, http.StatusUnauthorized},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeDuplicateRegistration, http.StatusConflict},
		{CodeUpstreamUnavailable, http.StatusServiceUnavailable},
		{CodeUpstreamFailure, http.StatusInternalServerError},
		{ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, NewAppError(tt.code, "msg", nil).HTTPStatus())
		})
	}
}

func TestAppError_ToErrorResponse(t *testing.T) {
	cause := errors.New("notion: 502 bad gateway")

	resp := NewAppError(CodeUpstreamFailure, "Failed to submit registration", cause).ToErrorResponse("req-1")
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to submit registration", resp.Error)
	assert.Equal(t, "notion: 502 bad gateway", resp.Details)
	assert.Equal(t, CodeUpstreamFailure, resp.Code)
	assert.Equal(t, "req-1", resp.TraceID)

	// Client errors never leak the cause.
	resp = NewAppError(CodeBadRequest, "Invalid request body", cause).ToErrorResponse("")
	assert.Empty(t, resp.Details)

	resp = NewAppError(CodeDuplicateRegistration, "taken", nil).WithDetails("already registered").ToErrorResponse("")
	assert.Equal(t, "already registered", resp.Details)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("handler: %w", NewAppError(CodeInternalError, "failed", cause))

	assert.ErrorIs(t, err, cause)

	appErr := AsAppError(err)
	assert.Equal(t, CodeInternalError, appErr.Code)
	assert.Contains(t, appErr.Error(), "caused by: boom")
}

func TestAsAppError_PlainError(t *testing.T) {
	appErr := AsAppError(errors.New("unexpected"))
	assert.Equal(t, CodeInternalError, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus())
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ignored"))

	wrapped := WrapError(NewAppError(CodeRateLimited, "slow down", nil), "gate")
	var appErr *AppError
	require.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, CodeRateLimited, appErr.Code)
	assert.True(t, appErr.IsRetryable())

	wrapped = WrapError(errors.New("x"), "ctx")
	require.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, CodeInternalError, appErr.Code)
	assert.False(t, appErr.IsRetryable())
}

func TestNewAppErrorf(t *testing.T) {
	err := NewAppErrorf(CodeBadRequest, nil, "missing %s", "email")
	assert.Equal(t, "BAD_REQUEST: missing email", err.Error())
}
